// Package pdf genera la representación impresa de una orden de reposición.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: N° Orden + Estado   │  Fechas (creada / ordenada)   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Nombre + NIT + Email                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Cant | Recibido | Costo | Subtotal        │
//	│  TOTALES: Mercancía / Flete / TOTAL                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECEPCIONES: Fecha | Producto | Cant | Costo unitario       │
//	│  NOTAS                                                       │
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Inventario-ledger/internal/application/restock"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var statusLabels = map[entity.RestockOrderStatus]string{
	entity.RestockStatusDraft:             "BORRADOR",
	entity.RestockStatusOrdered:           "ORDENADA",
	entity.RestockStatusPartiallyReceived: "RECIBIDA PARCIALMENTE",
	entity.RestockStatusCompleted:         "COMPLETADA",
	entity.RestockStatusCancelled:         "CANCELADA",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa restock.OrderDocumentGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

var _ restock.OrderDocumentGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador con formato de miles en español.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateRestockOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateRestockOrderPDF(_ context.Context, doc restock.OrderDocument) ([]byte, error) {
	if doc.Order == nil {
		return nil, fmt.Errorf("pdf: orden vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de reposición "+doc.Order.OrderNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(doc.Supplier, doc.Order.SupplierID))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(itemsHeaderRow())
	m.AddRows(g.itemRows(doc)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(doc.Order))

	if len(doc.Receipts) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(g.receiptRows(doc)...)
	}
	if doc.Order.Notes != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("NOTAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(doc.Order.Notes, props.Text{Size: 8, Top: 6, Color: colorGray}),
		)))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(o *entity.RestockOrder) core.Row {
	dates := "Creada: " + formatDate(o.CreatedAt)
	if o.OrderedAt != nil {
		dates += "   Ordenada: " + formatDate(*o.OrderedAt)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("ORDEN DE REPOSICIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(o.OrderNumber, props.Text{Style: fontstyle.Bold, Size: 11, Top: 9}),
		),
		col.New(5).Add(
			text.New(statusLabels[o.Status], props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(dates, props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

// supplierRow el proveedor pudo haber sido eliminado del catálogo.
func supplierRow(s *entity.Supplier, supplierID string) core.Row {
	name, detail := supplierID, "Proveedor no disponible"
	if s != nil {
		name = s.Name
		detail = fmt.Sprintf("NIT: %s   |   Email: %s", nonEmpty(s.TaxID, "—"), nonEmpty(s.Email, "—"))
	}
	return row.New(14).Add(col.New(12).Add(
		text.New("PROVEEDOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		text.New(detail, props.Text{Size: 8, Top: 11, Color: colorGray}),
	))
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 5, align.Left),
		h("Cant.", 1, align.Center),
		h("Recibido", 2, align.Center),
		h("Costo unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

func (g *MarotoPDFGenerator) itemRows(doc restock.OrderDocument) []core.Row {
	rows := make([]core.Row, 0, len(doc.Order.Items))
	for _, it := range doc.Order.Items {
		rows = append(rows, row.New(7).Add(
			col.New(5).Add(text.New(productName(doc.ProductNames, it.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(g.printer.Sprintf("%d", it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.printer.Sprintf("%d", it.QuantityReceived), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.money(it.Cost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.money(it.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func (g *MarotoPDFGenerator) totalsRow(o *entity.RestockOrder) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(18).Add(
		col.New(6),
		col.New(3).Add(label("Mercancía:"), label("Flete:"), label("TOTAL:")),
		col.New(3).Add(
			value(g.money(o.TotalAmount)),
			value(g.money(o.ShippingCost)),
			value(g.money(o.TotalAmount.Add(o.ShippingCost))),
		),
	)
}

// receiptRows historial de recepciones con el costo unitario ya prorrateado.
func (g *MarotoPDFGenerator) receiptRows(doc restock.OrderDocument) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("RECEPCIONES", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
	}
	for _, mv := range doc.Receipts {
		cost := "—"
		if mv.Cost != nil {
			cost = g.money(*mv.Cost)
		}
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(formatDate(mv.CreatedAt), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(productName(doc.ProductNames, mv.ProductID), props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(g.printer.Sprintf("%d", mv.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(cost, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money redondea a pesos y agrupa miles: 1234567 → "$1.234.567".
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return "$" + g.printer.Sprintf("%d", d.Round(0).IntPart())
}

func formatDate(t time.Time) string { return t.Format("02/01/2006") }

func productName(names map[string]string, id string) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return id
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
