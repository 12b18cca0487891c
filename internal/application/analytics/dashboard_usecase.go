// Package analytics contiene el caso de uso del panel operativo: urgencias de
// mantenimiento de la flota y estadísticas de OTs de la empresa.
package analytics

import (
	"fmt"
	"time"

	"github.com/dfcastro/Flota-api/internal/application/dto"
	"github.com/dfcastro/Flota-api/internal/domain/entity"
	"github.com/dfcastro/Flota-api/internal/domain/repository"
	"github.com/dfcastro/Flota-api/internal/domain/scheduling"
	"github.com/dfcastro/Flota-api/internal/domain/session"
)

// DashboardUseCase arma el resumen del panel para una empresa.
//
// Las vistas derivadas (urgencia, estadísticas) se recalculan completas en cada
// llamada: no hay caché que invalidar, y con flotas de decenas a pocos cientos
// de buses el escaneo O(n) por vista es un costo aceptado.
type DashboardUseCase struct {
	busRepo  repository.BusRepository
	otRepo   repository.WorkOrderRepository
	umbrales scheduling.Umbrales
	now      func() time.Time // inyectable para tests deterministas
}

// NewDashboardUseCase construye el caso de uso. Un "now" en nil usa time.Now.
func NewDashboardUseCase(
	busRepo repository.BusRepository,
	otRepo repository.WorkOrderRepository,
	umbrales scheduling.Umbrales,
	now func() time.Time,
) *DashboardUseCase {
	if now == nil {
		now = time.Now
	}
	return &DashboardUseCase{busRepo: busRepo, otRepo: otRepo, umbrales: umbrales, now: now}
}

// GetDashboard construye el DashboardResponse de la empresa efectiva.
//
// Dos consultas en paralelo: la flota completa y todas las OTs. Una empresa
// desconocida o vacía produce un estado cero válido (listas vacías, contadores
// en cero), nunca un error: el panel siempre debe poder pintarse.
func (uc *DashboardUseCase) GetDashboard(sess session.Session, companyID string) (*dto.DashboardResponse, error) {
	effective, err := sess.Scope(companyID)
	if err != nil {
		return nil, err
	}

	type busesResult struct {
		buses []*entity.Bus
		err   error
	}
	type otsResult struct {
		ots []*entity.WorkOrder
		err error
	}

	busesCh := make(chan busesResult, 1)
	otsCh := make(chan otsResult, 1)

	go func() {
		buses, err := uc.busRepo.ListAllByCompany(effective)
		busesCh <- busesResult{buses, err}
	}()
	go func() {
		ots, err := uc.otRepo.ListAllByCompany(effective)
		otsCh <- otsResult{ots, err}
	}()

	buses := <-busesCh
	ots := <-otsCh

	if buses.err != nil {
		return nil, fmt.Errorf("dashboard: flota: %w", buses.err)
	}
	if ots.err != nil {
		return nil, fmt.Errorf("dashboard: OTs: %w", ots.err)
	}

	urgencias := scheduling.ClasificarFlota(buses.buses, uc.now(), uc.umbrales)
	stats := scheduling.CalcularEstadisticasOTs(ots.ots)

	busDTOs := make([]dto.BusUrgenciaDTO, 0, len(urgencias))
	for _, u := range urgencias {
		busDTOs = append(busDTOs, dto.BusUrgenciaDTO{
			BusID:                u.BusID,
			Plate:                u.Plate,
			DiasSinMantenimiento: u.DiasSinMantenimiento,
			Urgencia:             u.Urgencia,
		})
	}

	return &dto.DashboardResponse{
		CompanyID: effective,
		Buses:     busDTOs,
		Estadisticas: dto.EstadisticasOTsDTO{
			Total:       stats.Total,
			Pendientes:  stats.Pendientes,
			EnProceso:   stats.EnProceso,
			Completadas: stats.Completadas,
			CostoTotal:  stats.CostoTotal,
		},
		UmbralesDias: dto.UmbralesDTO{
			Atencion: uc.umbrales.AtencionDias,
			Urgente:  uc.umbrales.UrgenteDias,
		},
	}, nil
}
