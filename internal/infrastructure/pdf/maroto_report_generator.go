// Package pdf implementa el informe semanal de suministros en PDF con Maroto.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del niño  │  Fecha del informe               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: puntaje de preparación / días de cobertura         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | Disponible | En camino | Tasa | Días     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: gasto mensual proyectado                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	appforecast "github.com/jhoicas/Nido-api/internal/application/forecast"
	appreport "github.com/jhoicas/Nido-api/internal/application/report"
	"github.com/jhoicas/Nido-api/internal/domain/entity"
	domforecast "github.com/jhoicas/Nido-api/internal/domain/forecast"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 110, Blue: 90}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCritical = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appreport.SupplyReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.SupplyReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateSupplyReport genera el PDF del informe y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSupplyReport(
	_ context.Context,
	child *entity.Child,
	summary *domforecast.DashboardSummary,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de Suministros", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(child, summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(readinessRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range categoryRows(summary.Categories) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(spendRow(summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del niño (izq) y fecha del informe (der).
func headerRow(child *entity.Child, summary *domforecast.DashboardSummary) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Informe de Suministros", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(child.Name, props.Text{Size: 10, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Generado: "+summary.AsOf.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// readinessRow: puntaje y cobertura en una línea destacada.
func readinessRow(summary *domforecast.DashboardSummary) core.Row {
	scoreColor := colorPrimary
	if summary.ReadinessScore < 40 {
		scoreColor = colorCritical
	}
	return row.New(14).Add(
		col.New(4).Add(
			text.New("Preparación", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d / 100", summary.ReadinessScore), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: scoreColor, Top: 6,
			}),
		),
		col.New(4).Add(
			text.New("Días de cobertura", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%.1f", summary.DaysOfCoverage), props.Text{
				Style: fontstyle.Bold, Size: 14, Top: 6,
			}),
		),
		col.New(4).Add(
			text.New("Lotes críticos", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", summary.CountsByBucket[domforecast.BucketCritical]), props.Text{
				Style: fontstyle.Bold, Size: 14, Top: 6,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla por categoría.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Categoría", 4, align.Left),
		h("Disponible", 2, align.Right),
		h("En camino", 2, align.Right),
		h("Tasa/día", 2, align.Right),
		h("Se agota en", 2, align.Right),
	)
}

// categoryRows: una fila por categoría activa.
func categoryRows(categories []domforecast.CategorySupply) []core.Row {
	result := make([]core.Row, 0, len(categories))
	for _, cs := range categories {
		depletionColor := colorGray
		if cs.DaysUntilDepletion <= 3 {
			depletionColor = colorCritical
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(cs.CategoryKey, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", cs.OnHandQuantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", cs.PendingQuantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%.1f", cs.DailyRate),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%.1f días", cs.DaysUntilDepletion),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: depletionColor})),
		))
	}
	return result
}

// spendRow: gasto mensual proyectado alineado a la derecha.
func spendRow(summary *domforecast.DashboardSummary) core.Row {
	spend := appforecast.EstimatedMonthlySpend(summary)
	return row.New(10).Add(
		col.New(8).Add(text.New("Gasto mensual proyectado", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 2,
		})),
		col.New(4).Add(text.New("$"+spend.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Right: 1, Top: 1, Color: colorPrimary,
		})),
	)
}
