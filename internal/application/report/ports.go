// Package report contiene el caso de uso del informe de estado de flota
// (PDF descargable con las urgencias de mantenimiento y el agregado de OTs).
package report

import (
	"context"

	"github.com/dfcastro/Flota-api/internal/domain/entity"
	"github.com/dfcastro/Flota-api/internal/domain/scheduling"
)

// FleetReportGenerator es el puerto de generación del PDF del informe.
// La implementación (Maroto) vive en infrastructure/pdf.
type FleetReportGenerator interface {
	GenerateFleetReport(
		ctx context.Context,
		company *entity.Company,
		urgencias []scheduling.BusUrgencia,
		stats scheduling.EstadisticasOTs,
		umbrales scheduling.Umbrales,
	) ([]byte, error)
}
