// Package pdf implementa la generación del Reporte de Vencimientos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: VitaStock + fecha de generación                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: vencidos | ≤7 días | ≤30 días | bajo stock | merma    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Lotes vencidos (producto, ubicación, fecha, cant)    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Próximos a vencer (30 días)                          │
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vitastock/vitastock-api/internal/application/analytics"
	"github.com/vitastock/vitastock-api/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 98, Blue: 64}
	colorDanger  = &props.Color{Red: 170, Green: 30, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Números con separador de miles en formato español.
var printer = message.NewPrinter(language.Spanish)

var _ analytics.ExpiryReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa analytics.ExpiryReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateExpiryReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateExpiryReport(_ context.Context, data *analytics.ExpiryReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Vencimientos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.GeneratedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("LOTES VENCIDOS", colorDanger))
	m.AddRows(tableHeaderRow())
	for _, r := range alertRows(data.Expired) {
		m.AddRows(r)
	}
	if len(data.Expired) == 0 {
		m.AddRows(emptyRow("Sin lotes vencidos"))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitleRow("PRÓXIMOS A VENCER (30 DÍAS)", colorPrimary))
	m.AddRows(tableHeaderRow())
	for _, r := range alertRows(data.Expiring) {
		m.AddRows(r)
	}
	if len(data.Expiring) == 0 {
		m.AddRows(emptyRow("Sin vencimientos en los próximos 30 días"))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("VitaStock", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de Vencimientos", props.Text{
				Size: 9, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func kpiRow(data *analytics.ExpiryReportData) core.Row {
	kpi := func(label, value string, color *props.Color) core.Col {
		return col.New(2).Add(
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: color, Top: 1,
			}),
			text.New(label, props.Text{
				Size: 7, Align: align.Center, Top: 8, Color: colorGray,
			}),
		)
	}
	return row.New(14).Add(
		col.New(1),
		kpi("Vencidos", printer.Sprintf("%d", data.KPIs.ExpiredCount), colorDanger),
		kpi("Vencen ≤ 7 días", printer.Sprintf("%d", data.KPIs.Soon7Count), colorPrimary),
		kpi("Vencen ≤ 30 días", printer.Sprintf("%d", data.KPIs.Soon30Count), colorPrimary),
		kpi("Bajo stock", printer.Sprintf("%d", data.KPIs.LowStockCount), colorPrimary),
		kpi("Tasa de merma", data.KPIs.WasteRatePct+"%", colorGray),
		col.New(1),
	)
}

func sectionTitleRow(title string, color *props.Color) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: color, Top: 2,
		}),
	))
}

func tableHeaderRow() core.Row {
	header := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Color: colorPrimary,
		})
	}
	return row.New(6).Add(
		col.New(5).Add(header("Producto", align.Left)),
		col.New(3).Add(header("Ubicación", align.Left)),
		col.New(2).Add(header("Vence", align.Center)),
		col.New(2).Add(header("Cantidad", align.Right)),
	)
}

func alertRows(alerts []repository.BatchAlertResult) []core.Row {
	result := make([]core.Row, 0, len(alerts))
	for _, a := range alerts {
		result = append(result, row.New(5).Add(
			col.New(5).Add(text.New(a.ProductName, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(a.LocationName, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(a.ExpiryDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New(printer.Sprintf("%d", a.Quantity), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
	))
}
