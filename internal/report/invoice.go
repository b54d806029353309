package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/obeidat/fahs/internal/domain"
)

// templateStyle captures what distinguishes the invoice templates: the accent
// colour, whether table rows alternate a fill, and how dense the layout is.
type templateStyle struct {
	accent    rgb
	zebra     bool
	titleSize float64
	rowPad    float64
}

func styleFor(t domain.InvoiceTemplate) templateStyle {
	switch t {
	case domain.TemplateModern:
		return templateStyle{accent: rgb{13, 110, 110}, zebra: true, titleSize: 22, rowPad: 2.5}
	case domain.TemplateCompact:
		return templateStyle{accent: rgb{60, 60, 60}, zebra: false, titleSize: 15, rowPad: 1.2}
	default:
		return templateStyle{accent: colorBrand, zebra: true, titleSize: 18, rowPad: 2.0}
	}
}

// Invoice renders a tax invoice in the document's selected template.
func (r *Renderer) Invoice(inv *domain.Invoice) ([]byte, error) {
	d := r.newDoc("Tax Invoice", inv.InvoiceNumber)
	style := styleFor(inv.Template)

	d.invoiceTitle(inv, style)
	d.billTo(inv)
	d.servicesTable(inv, style)
	d.totals(inv, style)
	if inv.Notes != "" {
		d.sectionHeader("Notes", "ملاحظات")
		d.paragraph(inv.Notes, 9.5)
	}

	out, err := d.output()
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", inv.InvoiceNumber, err)
	}
	return out, nil
}

func (d *doc) invoiceTitle(inv *domain.Invoice, style templateStyle) {
	y := d.pdf.GetY()
	d.pdf.SetFont(d.latin, "B", style.titleSize)
	d.pdf.SetTextColor(style.accent.r, style.accent.g, style.accent.b)
	d.pdf.SetXY(marginLeft, y)
	d.pdf.CellFormat(contentWidth/2, 10, "INVOICE", "", 0, "L", false, 0, "")

	d.pdf.SetFont(d.arabic, "B", style.titleSize)
	d.pdf.RTL()
	d.pdf.CellFormat(contentWidth/2, 10, "فاتورة ضريبية", "", 0, "R", false, 0, "")
	d.pdf.LTR()
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetXY(marginLeft, y+12)

	d.labelledValue("Invoice Number", inv.InvoiceNumber)
	d.labelledValue("Invoice Date", inv.InvoiceDate)
	if inv.DueDate != "" {
		d.labelledValue("Due Date", inv.DueDate)
	}
	d.labelledValue("Status", string(inv.Status))
	d.pdf.SetY(d.pdf.GetY() + sectionGap)
}

func (d *doc) billTo(inv *domain.Invoice) {
	d.sectionHeader("Bill To", "فاتورة إلى")
	d.labelledValue("Client", inv.ClientName)
	if inv.ClientAddress != "" {
		d.labelledValue("Address", inv.ClientAddress)
	}
	if inv.ClientEmail != "" {
		d.labelledValue("Email", inv.ClientEmail)
	}
	if inv.PropertyLocation != "" {
		d.labelledValue("Property", inv.PropertyLocation)
	}
	d.pdf.SetY(d.pdf.GetY() + sectionGap)
}

// Column widths of the services table.
const (
	colQty   = 20.0
	colPrice = 30.0
	colTotal = 30.0
	colDesc  = contentWidth - colQty - colPrice - colTotal
)

func (d *doc) servicesTable(inv *domain.Invoice, style templateStyle) {
	d.sectionHeader("Services", "الخدمات")
	lh := lineHeight(9.5)

	headH := lh + 2*style.rowPad
	d.ensureSpace(headH + 12)
	y := d.pdf.GetY()
	d.pdf.SetFillColor(style.accent.r, style.accent.g, style.accent.b)
	d.pdf.Rect(marginLeft, y, contentWidth, headH, "F")
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.SetFont(d.latin, "B", 9.5)
	d.pdf.SetXY(marginLeft+2, y+style.rowPad)
	d.pdf.CellFormat(colDesc-2, lh, "Description", "", 0, "L", false, 0, "")
	d.pdf.CellFormat(colQty, lh, "Qty", "", 0, "R", false, 0, "")
	d.pdf.CellFormat(colPrice, lh, "Unit Price", "", 0, "R", false, 0, "")
	d.pdf.CellFormat(colTotal-2, lh, "Total", "", 0, "R", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetXY(marginLeft, y+headH)

	for i, svc := range inv.Services {
		descH := d.measureText(svc.Description, colDesc-4, 9.5, "")
		rowH := max(descH, lh) + 2*style.rowPad
		d.ensureSpace(rowH)
		y = d.pdf.GetY()

		if style.zebra && i%2 == 1 {
			d.pdf.SetFillColor(245, 247, 250)
			d.pdf.Rect(marginLeft, y, contentWidth, rowH, "F")
		}
		d.pdf.SetDrawColor(colorBorder.r, colorBorder.g, colorBorder.b)
		d.pdf.Line(marginLeft, y+rowH, marginLeft+contentWidth, y+rowH)

		d.pdf.SetXY(marginLeft+2, y+style.rowPad)
		d.writeText(svc.Description, marginLeft+2, colDesc-4, 9.5, "")

		d.pdf.SetFont(d.latin, "", 9.5)
		d.pdf.SetXY(marginLeft+colDesc, y+style.rowPad)
		d.pdf.CellFormat(colQty, lh, svc.Quantity.String(), "", 0, "R", false, 0, "")
		d.pdf.CellFormat(colPrice, lh, money(svc.UnitPrice), "", 0, "R", false, 0, "")
		d.pdf.CellFormat(colTotal-2, lh, money(svc.Total), "", 0, "R", false, 0, "")
		d.pdf.SetXY(marginLeft, y+rowH)
	}
	d.pdf.SetY(d.pdf.GetY() + sectionGap)
}

// totals draws the right-aligned summary box with the tax breakdown and the
// balance remaining.
func (d *doc) totals(inv *domain.Invoice, style templateStyle) {
	const boxW = 80.0
	x := marginLeft + contentWidth - boxW
	lh := lineHeight(10) + 1.5

	rows := []struct {
		label  string
		value  decimal.Decimal
		strong bool
	}{
		{"Subtotal", inv.Subtotal, false},
		{"Tax (5%)", inv.Tax, false},
		{"Total", inv.TotalAmount, true},
		{"Amount Paid", inv.AmountPaid, false},
		{"Balance Due", inv.BalanceDue(), true},
	}
	h := float64(len(rows))*lh + 4
	d.ensureSpace(h)
	y := d.pdf.GetY()

	d.pdf.SetDrawColor(style.accent.r, style.accent.g, style.accent.b)
	d.pdf.Rect(x, y, boxW, h, "D")

	cy := y + 2
	for _, row := range rows {
		face := ""
		if row.strong {
			face = "B"
		}
		d.pdf.SetFont(d.latin, face, 10)
		d.pdf.SetXY(x+3, cy)
		d.pdf.CellFormat(boxW/2-3, lh, row.label, "", 0, "L", false, 0, "")
		d.pdf.CellFormat(boxW/2-3, lh, money(row.value), "", 0, "R", false, 0, "")
		cy += lh
	}
	d.pdf.SetXY(marginLeft, y+h+sectionGap)
}

func money(v decimal.Decimal) string {
	return "AED " + v.StringFixed(2)
}
