// Package pdf implementa la exportación del reporte de ventas a PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda  │  Rango del reporte          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Ventas / Ingresos / Utilidad / Ticket promedio    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Ventas | Ingresos | Costo | Utilidad        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/profitzen/analytics-api/internal/application/dto"
	"github.com/profitzen/analytics-api/internal/application/ports"
)

// Verificar en tiempo de compilación que implementa el puerto.
var _ ports.ReportExporter = (*MarotoReportExporter)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportExporter implementa ports.ReportExporter usando Maroto v2.
type MarotoReportExporter struct{}

// NewMarotoReportExporter construye el exportador.
func NewMarotoReportExporter() *MarotoReportExporter { return &MarotoReportExporter{} }

// ExportSalesReport genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportExporter) ExportSalesReport(report *dto.SalesReportDTO, storeName string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Ventas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report, storeName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, d := range report.Days {
		m.AddRows(dayRow(d))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *dto.SalesReportDTO, storeName string) core.Row {
	rango := fmt.Sprintf("Del %s al %s", report.StartDate, report.EndDate)

	return row.New(16).Add(
		col.New(7).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de ventas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(rango, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 4,
			}),
		),
	)
}

func totalsRow(report *dto.SalesReportDTO) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("Ventas", fmt.Sprintf("%d", report.TotalSales)),
		cell("Ingresos", "S/ "+report.TotalRevenue.StringFixed(2)),
		cell("Utilidad", "S/ "+report.TotalProfit.StringFixed(2)),
		cell("Ticket promedio", "S/ "+report.AverageTicket.StringFixed(2)),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string, al align.Type) core.Col {
		return col.New(size).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: al, Color: colorPrimary}),
		)
	}
	return row.New(6).Add(
		header(3, "Fecha", align.Left),
		header(2, "Ventas", align.Right),
		header(3, "Ingresos", align.Right),
		header(2, "Costo", align.Right),
		header(2, "Utilidad", align.Right),
	)
}

func dayRow(d dto.DailySummaryDTO) core.Row {
	cell := func(size int, value string, al align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: al}))
	}
	return row.New(5).Add(
		cell(3, d.Date, align.Left),
		cell(2, fmt.Sprintf("%d", d.TotalSales), align.Right),
		cell(3, d.TotalRevenue.StringFixed(2), align.Right),
		cell(2, d.TotalCost.StringFixed(2), align.Right),
		cell(2, d.TotalProfit.StringFixed(2), align.Right),
	)
}
