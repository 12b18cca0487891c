package report

import (
	"context"
	"fmt"
	"time"

	"github.com/dfcastro/Flota-api/internal/domain"
	"github.com/dfcastro/Flota-api/internal/domain/repository"
	"github.com/dfcastro/Flota-api/internal/domain/scheduling"
	"github.com/dfcastro/Flota-api/internal/domain/session"
)

// ReportUseCase genera el informe de estado de flota en PDF.
type ReportUseCase struct {
	companyRepo repository.CompanyRepository
	busRepo     repository.BusRepository
	otRepo      repository.WorkOrderRepository
	generator   FleetReportGenerator
	umbrales    scheduling.Umbrales
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso. Un "now" en nil usa time.Now.
func NewReportUseCase(
	companyRepo repository.CompanyRepository,
	busRepo repository.BusRepository,
	otRepo repository.WorkOrderRepository,
	generator FleetReportGenerator,
	umbrales scheduling.Umbrales,
	now func() time.Time,
) *ReportUseCase {
	if now == nil {
		now = time.Now
	}
	return &ReportUseCase{
		companyRepo: companyRepo,
		busRepo:     busRepo,
		otRepo:      otRepo,
		generator:   generator,
		umbrales:    umbrales,
		now:         now,
	}
}

// DownloadFleetReport arma el informe de la empresa efectiva y devuelve el PDF
// con su nombre de archivo sugerido.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la empresa no existe.
//   - domain.ErrForbidden        si la sesión pide otra empresa.
func (uc *ReportUseCase) DownloadFleetReport(
	ctx context.Context,
	sess session.Session,
	companyID string,
) (pdfBytes []byte, filename string, err error) {
	effective, err := sess.Scope(companyID)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companyRepo.GetByID(effective)
	if err != nil {
		return nil, "", fmt.Errorf("report: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}

	buses, err := uc.busRepo.ListAllByCompany(effective)
	if err != nil {
		return nil, "", fmt.Errorf("report: flota: %w", err)
	}
	ots, err := uc.otRepo.ListAllByCompany(effective)
	if err != nil {
		return nil, "", fmt.Errorf("report: OTs: %w", err)
	}

	now := uc.now()
	urgencias := scheduling.ClasificarFlota(buses, now, uc.umbrales)
	stats := scheduling.CalcularEstadisticasOTs(ots)

	pdf, err := uc.generator.GenerateFleetReport(ctx, company, urgencias, stats, uc.umbrales)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar PDF: %w", err)
	}

	filename = fmt.Sprintf("flota_%s_%s.pdf", company.NIT, now.Format("2006-01-02"))
	return pdf, filename, nil
}
