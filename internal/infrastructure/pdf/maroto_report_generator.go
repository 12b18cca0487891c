// Package pdf implementa la generación del Informe de Estado de Flota.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  Fecha del informe           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN OTs: Total | Pendientes | En proceso | Completadas │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Placa | Días sin mant. | Urgencia                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: umbrales vigentes + nota del sentinel              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/dfcastro/Flota-api/internal/application/report"
	"github.com/dfcastro/Flota-api/internal/domain/entity"
	"github.com/dfcastro/Flota-api/internal/domain/scheduling"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorWarn    = &props.Color{Red: 190, Green: 120, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.FleetReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

var _ report.FleetReportGenerator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateFleetReport genera el PDF del informe y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateFleetReport(
	_ context.Context,
	company *entity.Company,
	urgencias []scheduling.BusUrgencia,
	stats scheduling.EstadisticasOTs,
	umbrales scheduling.Umbrales,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de Estado de Flota", true).
		WithAuthor(company.LegalName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(statsRow(stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range busRows(urgencias) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(umbrales))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + NIT (izq) y fecha del informe (der).
func headerRow(company *entity.Company) core.Row {
	fecha := time.Now().Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.LegalName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+company.NIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INFORME DE ESTADO DE FLOTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// statsRow: resumen de OTs de la empresa.
func statsRow(stats scheduling.EstadisticasOTs) core.Row {
	stat := func(label string, value int) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", value), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 6,
			}),
		)
	}
	return row.New(16).Add(
		stat("OTs TOTALES", stats.Total),
		stat("PENDIENTES", stats.Pendientes),
		stat("EN PROCESO", stats.EnProceso),
		stat("COMPLETADAS", stats.Completadas),
	)
}

// tableHeaderRow: cabecera de la tabla de urgencias.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Placa", 4, align.Left),
		h("Días sin mantenimiento", 4, align.Center),
		h("Urgencia", 4, align.Center),
	)
}

// busRows: una fila por bus, del más atrasado al menos.
func busRows(urgencias []scheduling.BusUrgencia) []core.Row {
	result := make([]core.Row, 0, len(urgencias))
	for _, u := range urgencias {
		dias := fmt.Sprintf("%d", u.DiasSinMantenimiento)
		if u.DiasSinMantenimiento == scheduling.SentinelNuncaMantenido {
			dias = "nunca mantenido"
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				u.Plate,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				dias,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				u.Urgencia,
				props.Text{Size: 8, Align: align.Center, Top: 1,
					Style: urgencyStyle(u.Urgencia), Color: urgencyColor(u.Urgencia)},
			)),
		))
	}
	return result
}

// footerRow: umbrales vigentes.
func footerRow(umbrales scheduling.Umbrales) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Umbrales vigentes: ATENCION a partir de %d días, URGENTE pasados %d días. "+
				"Un bus sin mantenimiento registrado figura como URGENTE.",
				umbrales.AtencionDias, umbrales.UrgenteDias),
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func urgencyColor(nivel string) *props.Color {
	switch nivel {
	case scheduling.UrgenciaUrgente:
		return colorDanger
	case scheduling.UrgenciaAtencion:
		return colorWarn
	default:
		return colorGray
	}
}

func urgencyStyle(nivel string) fontstyle.Type {
	if nivel == scheduling.UrgenciaUrgente {
		return fontstyle.Bold
	}
	return fontstyle.Normal
}
