// Package pdf implementa la representación imprimible de una factura de compra.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: FoodFlow  │  N° Factura + Fecha                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: nombre + moneda                                 │
//	│  SOLICITUD: consecutivo + título + estado                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Monto de la factura / vencimiento                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: quién subió la factura + leyenda interna           │
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

	"github.com/tu-usuario/foodflow-api/internal/application/procurement"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 20, Green: 90, Blue: 50}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ procurement.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa procurement.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	companyName string
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(companyName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{companyName: companyName}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.PurchaseInvoice,
	request *entity.PurchaseRequest,
	uploader *entity.Profile,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de compra "+invoice.Number, true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(invoice))
	m.AddRows(requestRow(request))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(invoice, uploader)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la empresa (izq) y N° de factura + fecha (der).
func (g *MarotoPDFGenerator) headerRow(invoice *entity.PurchaseInvoice) core.Row {
	fecha := invoice.CreatedAt.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Área de Compras", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Registrada: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// supplierRow: datos del proveedor.
func supplierRow(invoice *entity.PurchaseInvoice) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Moneda: %s   |   Estado: %s",
				invoice.Supplier, invoice.Currency, invoice.Status,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// requestRow: solicitud de compra a la que pertenece la factura.
func requestRow(request *entity.PurchaseRequest) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("SOLICITUD DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s — %s", request.Number, request.Title), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Estado: %s   |   Presupuesto: %s %s",
				request.Status, request.Amount.StringFixed(2), request.Currency,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// totalsRow: monto de la factura y vencimiento, alineados a la derecha.
func totalsRow(invoice *entity.PurchaseInvoice) core.Row {
	dueDate := "—"
	if invoice.DueDate != nil {
		dueDate = invoice.DueDate.Format("02/01/2006")
	}
	return row.New(20).Add(
		col.New(5),
		col.New(4).Add(
			text.New("Vencimiento:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			}),
			text.New("TOTAL FACTURA:", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 8, Right: 2,
			}),
		),
		col.New(3).Add(
			text.New(dueDate, props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(invoice.Amount.StringFixed(2)+" "+invoice.Currency, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 8, Right: 1,
			}),
		),
	)
}

// footerRows: quién registró la factura + leyenda de uso interno.
func footerRows(invoice *entity.PurchaseInvoice, uploader *entity.Profile) []core.Row {
	uploadedBy := invoice.UploadedBy
	if uploader != nil {
		uploadedBy = fmt.Sprintf("%s (%s)", uploader.DisplayName, uploader.Email)
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Registrada por: "+uploadedBy, props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Documento de uso interno generado por el sistema de compras. "+
					"No reemplaza la factura emitida por el proveedor.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}
