package pdf

import (
	"context"
	"fmt"

	"github.com/guidefari/invoicing/internal/domain"
	"github.com/guidefari/invoicing/internal/infrastructure/document"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 77, Blue: 95}
	colorGray    = &props.Color{Red: 102, Green: 102, Blue: 102}
)

// MarotoEngine dibuja la factura con Maroto v2 en el mismo proceso, a partir de la
// vista ya formateada. Alternativa para hosts sin Chromium; ignora el HTML.
type MarotoEngine struct{}

// NewMarotoEngine construye el motor.
func NewMarotoEngine() *MarotoEngine { return &MarotoEngine{} }

// Name identifica el motor en logs y métricas.
func (e *MarotoEngine) Name() string { return "maroto" }

// Render genera el PDF y devuelve sus bytes.
func (e *MarotoEngine) Render(ctx context.Context, doc *document.Rendered, opts document.PageOptions) ([]byte, error) {
	if doc == nil {
		return nil, &domain.RenderEngineError{Stage: string(StageIdle), Err: ErrEmptyDocument}
	}
	if err := ctx.Err(); err != nil {
		return nil, &domain.RenderEngineError{Stage: string(StageIdle), Err: err}
	}
	v := doc.View

	size := pagesize.A4
	if w, _ := opts.PaperSizeMM(); w != 210 {
		size = pagesize.Letter
	}
	cfg := config.NewBuilder().
		WithPageSize(size).
		WithTopMargin(opts.MarginTop).WithRightMargin(opts.MarginRight).
		WithBottomMargin(opts.MarginBottom).WithLeftMargin(opts.MarginLeft).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(v.Title, true).
		WithAuthor(v.Company.Name, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(v))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow(v))
	m.AddRows(line.NewRow(4))
	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(itemRows(v.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(totalsRows(v)...)
	if v.Notes != "" {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New(v.Notes, props.Text{Size: 8, Top: 3, Color: colorGray}),
		)))
	}
	m.AddRows(line.NewRow(6))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(v))

	out, err := m.Generate()
	if err != nil {
		return nil, &domain.RenderEngineError{Stage: string(StageRendering), Err: fmt.Errorf("generar documento: %w", err)}
	}
	data := out.GetBytes()
	if len(data) == 0 {
		return nil, &domain.RenderEngineError{Stage: string(StageRendering), Err: ErrEmptyOutput}
	}
	return data, nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: logo + título (izq) y monto adeudado (der).
func headerRow(v document.View) core.Row {
	left := col.New(7).Add(
		text.New("INVOICE", props.Text{Style: fontstyle.Bold, Size: 20, Color: colorPrimary, Top: 4}),
	)
	if ext, ok := imageExtension(v.Logo); ok {
		left = col.New(7).Add(
			image.NewFromBytes(v.Logo.Data, ext, props.Rect{Percent: 80}),
		)
	}
	return row.New(20).Add(
		left,
		col.New(5).Add(
			text.New("Amount Due ("+v.CurrencyCode+")", props.Text{Size: 9, Align: align.Right, Color: colorGray, Top: 3}),
			text.New(v.AmountDue, props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Right, Top: 9}),
		),
	)
}

// infoRow: "BILL TO" (izq) y datos de la factura (der).
func infoRow(v document.View) core.Row {
	c := v.Customer
	billTo := []core.Component{
		text.New("BILL TO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 2}),
		text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 7}),
	}
	top := 12.0
	lines := []string{c.StreetAddress, c.City, c.PostalCode + ", " + c.Country, c.Phone, c.Email}
	if c.VATNumber != "" {
		lines = append([]string{"VAT: " + c.VATNumber}, lines...)
	}
	for _, l := range lines {
		billTo = append(billTo, text.New(l, props.Text{Size: 8, Top: top}))
		top += 4
	}

	detail := func(label, value string, top float64) core.Component {
		return text.New(label+" "+value, props.Text{Size: 8, Align: align.Right, Top: top})
	}
	return row.New(top+2).Add(
		col.New(6).Add(billTo...),
		col.New(6).Add(
			detail("Invoice Number:", v.InvoiceNumber, 2),
			detail("Invoice Date:", v.InvoiceDate, 7),
			detail("Payment Due:", v.DueDate, 12),
			detail("Amount Due ("+v.CurrencyCode+"):", v.AmountDue, 17),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("ITEMS", 6, align.Left),
		h("QUANTITY", 2, align.Right),
		h("PRICE", 2, align.Right),
		h("AMOUNT", 2, align.Right),
	)
}

// itemRows: una fila por línea; las notas van debajo de la descripción.
func itemRows(items []document.ItemView) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		height := 8.0
		desc := []core.Component{text.New(it.Description, props.Text{Size: 9, Top: 2})}
		if it.Notes != "" {
			desc = append(desc, text.New(it.Notes, props.Text{Size: 7, Top: 7, Color: colorGray}))
			height = 12
		}
		result = append(result, row.New(height).Add(
			col.New(6).Add(desc...),
			col.New(2).Add(text.New(it.Quantity, props.Text{Size: 9, Align: align.Right, Top: 2})),
			col.New(2).Add(text.New(it.UnitPrice, props.Text{Size: 9, Align: align.Right, Top: 2})),
			col.New(2).Add(text.New(it.Amount, props.Text{Size: 9, Align: align.Right, Top: 2})),
		))
	}
	return result
}

// totalsRows: subtotal, IVA (si aplica) y monto adeudado, alineados a la derecha.
func totalsRows(v document.View) []core.Row {
	total := func(label, value string, final bool) core.Row {
		style, size := fontstyle.Normal, 9.0
		if final {
			style, size = fontstyle.Bold, 11
		}
		return row.New(7).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: size, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(value, props.Text{Style: style, Size: size, Align: align.Right, Top: 1})),
		)
	}
	rows := []core.Row{total("Subtotal:", v.Subtotal, false)}
	if v.VAT != nil {
		rows = append(rows, total(v.VAT.Label, v.VAT.Amount, false))
	}
	return append(rows, total("Amount Due ("+v.CurrencyCode+"):", v.Total, true))
}

// footerRow: emisor, contacto y datos bancarios.
func footerRow(v document.View) core.Row {
	c := v.Company
	bank := fmt.Sprintf("Bank: %s   |   Account: %s   |   Branch Code: %s", c.BankName, c.AccountNumber, c.BranchCode)
	if c.IBAN != "" {
		bank += "   |   IBAN: " + c.IBAN
	}
	return row.New(30).Add(
		col.New(6).Add(
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 8, Top: 2}),
			text.New("VAT: "+c.VATNumber, props.Text{Size: 8, Top: 6}),
			text.New(c.StreetAddress, props.Text{Size: 8, Top: 10}),
			text.New(c.City+" "+c.PostalCode, props.Text{Size: 8, Top: 14}),
			text.New(c.Country, props.Text{Size: 8, Top: 18}),
			text.New(bank, props.Text{Size: 7, Top: 24, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("Contact Information", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2}),
			text.New(c.Email, props.Text{Size: 8, Align: align.Right, Top: 6}),
			text.New(c.Phone, props.Text{Size: 8, Align: align.Right, Top: 10}),
		),
	)
}

// imageExtension sólo PNG y JPEG se pueden incrustar; SVG se omite.
func imageExtension(logo *document.Logo) (extension.Type, bool) {
	if logo == nil || len(logo.Data) == 0 {
		return "", false
	}
	switch logo.MIMEType {
	case "image/png":
		return extension.Png, true
	case "image/jpeg":
		return extension.Jpg, true
	default:
		return "", false
	}
}
