package scheduling

import (
	"github.com/shopspring/decimal"

	"github.com/dfcastro/Flota-api/internal/domain/entity"
)

// EstadisticasOTs es el agregado de órdenes de trabajo de una empresa.
// Invariante: Pendientes + EnProceso + Completadas == Total.
type EstadisticasOTs struct {
	Total       int
	Pendientes  int
	EnProceso   int
	Completadas int
	CostoTotal  decimal.Decimal // suma de costos de OTs completadas
}

// CalcularEstadisticasOTs agrega las OTs en una sola pasada. Una lista vacía
// (empresa desconocida o sin OTs) produce el estado cero, no un error.
func CalcularEstadisticasOTs(ots []*entity.WorkOrder) EstadisticasOTs {
	stats := EstadisticasOTs{CostoTotal: decimal.Zero}
	for _, ot := range ots {
		stats.Total++
		switch ot.Status {
		case entity.OTStatusPendiente:
			stats.Pendientes++
		case entity.OTStatusEnProceso:
			stats.EnProceso++
		case entity.OTStatusCompletada:
			stats.Completadas++
			stats.CostoTotal = stats.CostoTotal.Add(ot.Cost)
		}
	}
	return stats
}
