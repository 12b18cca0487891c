package usecase_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfcastro/Flota-api/internal/application/dto"
	"github.com/dfcastro/Flota-api/internal/application/usecase"
	"github.com/dfcastro/Flota-api/internal/domain"
	"github.com/dfcastro/Flota-api/internal/domain/entity"
	"github.com/dfcastro/Flota-api/internal/domain/session"
	"github.com/dfcastro/Flota-api/internal/infrastructure/memory"
)

type otFixture struct {
	uc       *usecase.WorkOrderUseCase
	buses    *memory.BusStore
	empresaA string
	empresaB string
	busA     string
	busB     string
	sessA    session.Session
}

func newOTFixture(t *testing.T) *otFixture {
	t.Helper()
	buses := memory.NewBusStore()
	ots := memory.NewWorkOrderStore()

	f := &otFixture{
		uc:       usecase.NewWorkOrderUseCase(ots, buses),
		buses:    buses,
		empresaA: uuid.New().String(),
		empresaB: uuid.New().String(),
	}
	f.sessA = session.NewCompanyAdmin("admin-a", f.empresaA)

	busA := &entity.Bus{ID: uuid.New().String(), CompanyID: f.empresaA, Plate: "AAA-111", Active: true}
	busB := &entity.Bus{ID: uuid.New().String(), CompanyID: f.empresaB, Plate: "BBB-222", Active: true}
	require.NoError(t, buses.Create(busA))
	require.NoError(t, buses.Create(busB))
	f.busA, f.busB = busA.ID, busB.ID
	return f
}

func (f *otFixture) crearOT(t *testing.T, tipo string) *dto.WorkOrderResponse {
	t.Helper()
	out, err := f.uc.Create(f.sessA, dto.CreateWorkOrderRequest{
		BusID:       f.busA,
		Type:        tipo,
		Description: "cambio de aceite y filtros",
		Cost:        decimal.NewFromFloat(350.75),
	})
	require.NoError(t, err)
	return out
}

func TestWorkOrderCreate_ArrancaPendiente(t *testing.T) {
	f := newOTFixture(t)

	out := f.crearOT(t, entity.OTTypeMantenimiento)
	assert.Equal(t, entity.OTStatusPendiente, out.Status)
	assert.Equal(t, f.empresaA, out.CompanyID)
	assert.Equal(t, "admin-a", out.CreatedBy)
	assert.Nil(t, out.CompletedAt)
	assert.True(t, out.Cost.Equal(decimal.NewFromFloat(350.75)))
}

func TestWorkOrderCreate_BusDeOtraEmpresaEsInvalido(t *testing.T) {
	f := newOTFixture(t)

	// Un bus ajeno y un bus inexistente producen el mismo error: no se filtra
	// la existencia de recursos de otros tenants.
	_, err := f.uc.Create(f.sessA, dto.CreateWorkOrderRequest{
		BusID: f.busB, Type: entity.OTTypeReparacion,
	})
	assert.ErrorIs(t, err, domain.ErrBusInvalido)

	_, err = f.uc.Create(f.sessA, dto.CreateWorkOrderRequest{
		BusID: "no-existe", Type: entity.OTTypeReparacion,
	})
	assert.ErrorIs(t, err, domain.ErrBusInvalido)
}

func TestWorkOrderAdvance_FlujoCompleto(t *testing.T) {
	f := newOTFixture(t)
	ot := f.crearOT(t, entity.OTTypeRevision)

	out, err := f.uc.AdvanceStatus(f.sessA, ot.ID, entity.OTStatusEnProceso)
	require.NoError(t, err)
	assert.Equal(t, entity.OTStatusEnProceso, out.Status)
	assert.Nil(t, out.CompletedAt)

	out, err = f.uc.AdvanceStatus(f.sessA, ot.ID, entity.OTStatusCompletada)
	require.NoError(t, err)
	assert.Equal(t, entity.OTStatusCompletada, out.Status)
	require.NotNil(t, out.CompletedAt, "completar debe estampar CompletedAt")
	assert.WithinDuration(t, time.Now(), *out.CompletedAt, 5*time.Second)
}

func TestWorkOrderAdvance_SaltosYRetrocesosProhibidos(t *testing.T) {
	f := newOTFixture(t)
	ot := f.crearOT(t, entity.OTTypeRevision)

	// pendiente → completada (salto)
	_, err := f.uc.AdvanceStatus(f.sessA, ot.ID, entity.OTStatusCompletada)
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)

	_, err = f.uc.AdvanceStatus(f.sessA, ot.ID, entity.OTStatusEnProceso)
	require.NoError(t, err)

	// en_proceso → pendiente (retroceso)
	_, err = f.uc.AdvanceStatus(f.sessA, ot.ID, entity.OTStatusPendiente)
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)

	_, err = f.uc.AdvanceStatus(f.sessA, ot.ID, entity.OTStatusCompletada)
	require.NoError(t, err)

	// Una OT completada no se reabre ni se vuelve a completar.
	_, err = f.uc.AdvanceStatus(f.sessA, ot.ID, entity.OTStatusCompletada)
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
}

func TestWorkOrderCompletarMantenimiento_RegistraMantenimientoDelBus(t *testing.T) {
	f := newOTFixture(t)
	ot := f.crearOT(t, entity.OTTypeMantenimiento)

	_, err := f.uc.AdvanceStatus(f.sessA, ot.ID, entity.OTStatusEnProceso)
	require.NoError(t, err)
	_, err = f.uc.AdvanceStatus(f.sessA, ot.ID, entity.OTStatusCompletada)
	require.NoError(t, err)

	bus, err := f.buses.GetByID(f.busA)
	require.NoError(t, err)
	require.NotNil(t, bus.LastMaintenanceDate,
		"completar una OT de mantenimiento actualiza el último mantenimiento del bus")
	assert.WithinDuration(t, time.Now(), *bus.LastMaintenanceDate, 5*time.Second)
}

func TestWorkOrderCompletarReparacion_NoTocaElBus(t *testing.T) {
	f := newOTFixture(t)
	ot := f.crearOT(t, entity.OTTypeReparacion)

	_, err := f.uc.AdvanceStatus(f.sessA, ot.ID, entity.OTStatusEnProceso)
	require.NoError(t, err)
	_, err = f.uc.AdvanceStatus(f.sessA, ot.ID, entity.OTStatusCompletada)
	require.NoError(t, err)

	bus, err := f.buses.GetByID(f.busA)
	require.NoError(t, err)
	assert.Nil(t, bus.LastMaintenanceDate,
		"solo las OTs de tipo mantenimiento registran mantenimiento")
}

func TestWorkOrderAdvance_OtroTenantNoPuedeAvanzar(t *testing.T) {
	f := newOTFixture(t)
	ot := f.crearOT(t, entity.OTTypeRevision)

	sessB := session.NewCompanyAdmin("admin-b", f.empresaB)
	_, err := f.uc.AdvanceStatus(sessB, ot.ID, entity.OTStatusEnProceso)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
