package report

import (
	"fmt"

	"github.com/obeidat/fahs/internal/domain"
)

// Inspection renders the full inspection report: disclaimer and grading
// pages, the property details, the AI summary when one has been generated,
// and the per-area findings with photographs.
func (r *Renderer) Inspection(insp *domain.Inspection) ([]byte, error) {
	footer := insp.PropertyLocation
	if footer == "" {
		footer = insp.ClientName
	}
	d := r.newDoc("Property Inspection Report", footer)

	d.disclaimer()

	d.pdf.AddPage()
	d.inspectionDetails(insp)
	if insp.AISummary != "" {
		d.summaryBox(insp.AISummary)
	}
	d.findings(insp)

	out, err := d.output()
	if err != nil {
		return nil, fmt.Errorf("failed to render inspection report: %w", err)
	}
	return out, nil
}

func (d *doc) inspectionDetails(insp *domain.Inspection) {
	d.sectionHeader("Property Details", "بيانات العقار")
	d.labelledValue("Client", insp.ClientName)
	d.labelledValue("Property Location", insp.PropertyLocation)
	d.labelledValue("Property Type", string(insp.PropertyType))
	d.labelledValue("Inspection Date", insp.InspectionDate)
	d.labelledValue("Inspector", insp.InspectorName)
	d.pdf.SetY(d.pdf.GetY() + sectionGap)
}

// summaryBox draws the generated summary inside a bordered callout sized to
// its content.
func (d *doc) summaryBox(text string) {
	d.sectionHeader("Executive Summary", "الملخص التنفيذي")

	const pad = 4.0
	innerW := contentWidth - 2*pad
	h := d.measureText(text, innerW, 10, "") + 2*pad
	d.ensureSpace(h)
	y := d.pdf.GetY()

	d.pdf.SetFillColor(247, 249, 252)
	d.pdf.SetDrawColor(colorBrand.r, colorBrand.g, colorBrand.b)
	d.pdf.Rect(marginLeft, y, contentWidth, h, "FD")

	d.pdf.SetXY(marginLeft+pad, y+pad)
	d.writeText(text, marginLeft+pad, innerW, 10, "")
	d.pdf.SetXY(marginLeft, y+h+sectionGap)
}
