package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfcastro/Flota-api/internal/application/report"
	"github.com/dfcastro/Flota-api/internal/domain"
	"github.com/dfcastro/Flota-api/internal/domain/entity"
	"github.com/dfcastro/Flota-api/internal/domain/scheduling"
	"github.com/dfcastro/Flota-api/internal/domain/session"
	"github.com/dfcastro/Flota-api/internal/infrastructure/memory"
)

// fakeGenerator captura los argumentos con los que se pidió el PDF.
type fakeGenerator struct {
	company   *entity.Company
	urgencias []scheduling.BusUrgencia
	stats     scheduling.EstadisticasOTs
}

func (g *fakeGenerator) GenerateFleetReport(_ context.Context, company *entity.Company,
	urgencias []scheduling.BusUrgencia, stats scheduling.EstadisticasOTs,
	_ scheduling.Umbrales) ([]byte, error) {
	g.company = company
	g.urgencias = urgencias
	g.stats = stats
	return []byte("%PDF-fake"), nil
}

func TestDownloadFleetReport_NombreDeArchivoYContenido(t *testing.T) {
	companies := memory.NewCompanyStore()
	buses := memory.NewBusStore()
	ots := memory.NewWorkOrderStore()

	empresa := &entity.Company{
		ID: uuid.New().String(), NIT: "900111222",
		LegalName: "Transportes Norte S.A.S.", Active: true,
	}
	require.NoError(t, companies.Create(empresa))
	require.NoError(t, buses.Create(&entity.Bus{
		ID: "b1", CompanyID: empresa.ID, Plate: "ABC-123", Active: true,
	}))

	gen := &fakeGenerator{}
	fixedNow := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	uc := report.NewReportUseCase(companies, buses, ots, gen,
		scheduling.UmbralesPorDefecto(), func() time.Time { return fixedNow })

	sess := session.NewCompanyAdmin("admin", empresa.ID)
	pdf, filename, err := uc.DownloadFleetReport(context.Background(), sess, "")
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "flota_900111222_2025-06-15.pdf", filename)

	require.NotNil(t, gen.company)
	assert.Equal(t, empresa.ID, gen.company.ID)
	require.Len(t, gen.urgencias, 1)
	assert.Equal(t, scheduling.SentinelNuncaMantenido, gen.urgencias[0].DiasSinMantenimiento)
	assert.Equal(t, 0, gen.stats.Total)
}

func TestDownloadFleetReport_EmpresaInexistente(t *testing.T) {
	uc := report.NewReportUseCase(memory.NewCompanyStore(), memory.NewBusStore(),
		memory.NewWorkOrderStore(), &fakeGenerator{},
		scheduling.UmbralesPorDefecto(), nil)

	_, _, err := uc.DownloadFleetReport(context.Background(),
		session.NewSuperAdmin("sa"), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadFleetReport_CruceDeTenantEsForbidden(t *testing.T) {
	uc := report.NewReportUseCase(memory.NewCompanyStore(), memory.NewBusStore(),
		memory.NewWorkOrderStore(), &fakeGenerator{},
		scheduling.UmbralesPorDefecto(), nil)

	sess := session.NewCompanyAdmin("admin", "empresa-1")
	_, _, err := uc.DownloadFleetReport(context.Background(), sess, "empresa-2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
