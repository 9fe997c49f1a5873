// Package pdf genera el reporte de ventas descargable en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: TechStore + título     │  Período + fecha generado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | N° Venta | Cliente | Subtotal | IGV | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: N° de ventas / TOTAL DEL PERÍODO                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/techstore-pos/internal/application/dto"
	"github.com/jhoicas/techstore-pos/internal/application/reporting"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ reporting.SalesReportRenderer = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa reporting.SalesReportRenderer usando Maroto v2.
type MarotoPDFGenerator struct {
	storeName string
	printer   *message.Printer
}

// NewMarotoPDFGenerator construye el generador. storeName se imprime en la cabecera.
func NewMarotoPDFGenerator(storeName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{
		storeName: storeName,
		printer:   message.NewPrinter(language.MustParse("es-PE")),
	}
}

// RenderSalesReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) RenderSalesReport(report *dto.SalesReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(report.Sales) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay ventas en el período seleccionado.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	for _, r := range g.tableDetailRows(report.Sales) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y período + fecha de generación (der).
func (g *MarotoPDFGenerator) headerRow(report *dto.SalesReportDTO) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("REPORTE DE VENTAS", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Período: "+periodLabel(report.StartDate, report.EndDate), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2,
			}),
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de ventas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("N° Venta", 3, align.Left),
		h("Cliente", 2, align.Left),
		h("Subtotal", 2, align.Right),
		h("IGV", 1, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableDetailRows: una fila por venta.
func (g *MarotoPDFGenerator) tableDetailRows(sales []dto.SaleResponse) []core.Row {
	result := make([]core.Row, 0, len(sales))
	for _, s := range sales {
		customer := "Público general"
		if s.CustomerID != nil {
			customer = shortID(*s.CustomerID)
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(s.Date.Format("02/01/2006 15:04"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(3).Add(text.New(shortID(s.ID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(customer,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.money(s.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(g.money(s.TaxAmount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.money(s.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func (g *MarotoPDFGenerator) totalsRow(report *dto.SalesReportDTO) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 6,
		})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("N° de ventas:"),
			text.New("TOTAL DEL PERÍODO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(g.printer.Sprintf("%d", report.SaleCount), props.Text{Size: 9, Align: align.Right, Right: 1}),
			grand(g.money(report.GrandTotal)),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea un importe en soles con separadores de la configuración regional es-PE.
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return "S/ " + g.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func periodLabel(start, end *time.Time) string {
	switch {
	case start == nil && end == nil:
		return "todas las ventas"
	case start == nil:
		return "hasta " + end.Format("02/01/2006")
	case end == nil:
		return "desde " + start.Format("02/01/2006")
	default:
		return start.Format("02/01/2006") + " – " + end.Format("02/01/2006")
	}
}

// shortID recorta un UUID a su primer bloque para la tabla impresa.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
