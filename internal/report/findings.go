package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/jung-kurt/gofpdf"

	"github.com/obeidat/fahs/internal/domain"
)

const (
	cardPad    = 3.5
	photoCols  = 3
	photoGap   = 3.0
	photoRatio = 3.0 / 4.0
)

// findings renders every area in entry order, each checklist item as a
// bordered card. Card heights are measured before anything is drawn so the
// background rectangle and its content always land on the same page.
func (d *doc) findings(insp *domain.Inspection) {
	d.sectionHeader("Inspection Findings", "نتائج الفحص")

	if countItems(insp) == 0 {
		d.paragraph("No checklist items were recorded for this inspection.", 10)
		return
	}
	for _, area := range insp.Areas {
		if len(area.Items) == 0 {
			continue
		}
		d.areaHeading(area.Name)
		for _, item := range area.Items {
			d.itemCard(item)
		}
		d.pdf.SetY(d.pdf.GetY() + sectionGap)
	}
}

func countItems(insp *domain.Inspection) int {
	n := 0
	for _, a := range insp.Areas {
		n += len(a.Items)
	}
	return n
}

// areaHeading draws a filled sub-heading for one area of the property.
func (d *doc) areaHeading(name string) {
	const h = 8.0
	d.ensureSpace(h + 20) // keep at least the start of the first card with it
	y := d.pdf.GetY()

	d.pdf.SetFillColor(226, 232, 240)
	d.pdf.Rect(marginLeft, y, contentWidth, h, "F")

	family, script := d.familyFor(name)
	d.pdf.SetFont(family, "B", 11)
	d.pdf.SetTextColor(colorBrand.r, colorBrand.g, colorBrand.b)
	d.pdf.SetXY(marginLeft+3, y)
	if script.RTL() {
		d.pdf.RTL()
	}
	d.pdf.CellFormat(contentWidth-6, h, name, "", 0, script.Align(), false, 0, "")
	if script.RTL() {
		d.pdf.LTR()
	}
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetXY(marginLeft, y+h+2)
}

// itemCard draws one checklist item: category and point title, a status
// badge, location and comments when present, and a photo grid. Photos are
// decoded and validated first so a bad payload is skipped instead of
// poisoning the document. A photo set too tall for one page is split at row
// boundaries into continuation cards, so no card ever exceeds the content
// area.
func (d *doc) itemCard(item domain.Item) {
	photos := d.decodePhotos(item)
	innerW := contentWidth - 2*cardPad
	photoW := (innerW - photoGap*(photoCols-1)) / photoCols
	rowH := photoW*photoRatio + photoGap
	maxH := pageHeight - marginTop - marginBottom

	textH := d.measureItemCard(item, nil, innerW, true)
	firstRows := (maxH - textH - 1) / rowH
	n := 0
	if firstRows >= 1 {
		n = photosThatFit(len(photos), firstRows)
	}
	d.drawItemCard(item, photos[:n], innerW, true)
	photos = photos[n:]

	for len(photos) > 0 {
		n = photosThatFit(len(photos), (maxH-2*cardPad-1)/rowH)
		d.drawItemCard(item, photos[:n], innerW, false)
		photos = photos[n:]
	}
}

// photosThatFit caps a chunk at whole grid rows; at least one row is always
// taken so a continuation card makes progress.
func photosThatFit(n int, rows float64) int {
	r := int(rows)
	if r < 1 {
		r = 1
	}
	if n > r*photoCols {
		return r * photoCols
	}
	return n
}

func (d *doc) drawItemCard(item domain.Item, photos []renderablePhoto, innerW float64, withText bool) {
	h := d.measureItemCard(item, photos, innerW, withText)
	d.ensureSpace(h)
	y := d.pdf.GetY()

	d.pdf.SetFillColor(252, 252, 253)
	d.pdf.SetDrawColor(colorBorder.r, colorBorder.g, colorBorder.b)
	d.pdf.Rect(marginLeft, y, contentWidth, h, "FD")

	x := marginLeft + cardPad
	d.pdf.SetXY(x, y+cardPad)
	if withText {
		d.writeText(itemTitle(item), x, innerW-26, 11, "B")
		d.statusBadge(item.Status, marginLeft+contentWidth-cardPad-22, y+cardPad)
		d.pdf.SetY(d.pdf.GetY() + 1.5)

		if item.Location != "" {
			d.cardField(x, innerW, "Location", item.Location)
		}
		if item.Comments != "" {
			d.cardField(x, innerW, "Comments", item.Comments)
		}
	}
	if len(photos) > 0 {
		d.photoGrid(photos, x, innerW)
	}
	d.pdf.SetXY(marginLeft, y+h+2.5)
}

// measureItemCard performs the layout dry run for a card; it must mirror the
// drawing path in drawItemCard exactly.
func (d *doc) measureItemCard(item domain.Item, photos []renderablePhoto, innerW float64, withText bool) float64 {
	h := cardPad
	if withText {
		h += d.measureText(itemTitle(item), innerW-26, 11, "B")
		h += 1.5
		if item.Location != "" {
			h += d.measureCardField(innerW, "Location", item.Location)
		}
		if item.Comments != "" {
			h += d.measureCardField(innerW, "Comments", item.Comments)
		}
	}
	if len(photos) > 0 {
		rows := (len(photos) + photoCols - 1) / photoCols
		photoW := (innerW - photoGap*(photoCols-1)) / photoCols
		h += float64(rows)*(photoW*photoRatio+photoGap) + 1
	}
	return h + cardPad
}

func itemTitle(item domain.Item) string {
	if item.Category == "" {
		return item.Point
	}
	return item.Category + ": " + item.Point
}

func (d *doc) measureCardField(innerW float64, label, value string) float64 {
	const labelW = 24.0
	return max(lineHeight(9), d.measureText(value, innerW-labelW, 9.5, "")) + 1
}

func (d *doc) cardField(x, innerW float64, label, value string) {
	const labelW = 24.0
	y := d.pdf.GetY()
	d.pdf.SetFont(d.latin, "B", 9)
	d.pdf.SetTextColor(colorMuted.r, colorMuted.g, colorMuted.b)
	d.pdf.SetXY(x, y)
	d.pdf.CellFormat(labelW, lineHeight(9), label, "", 0, "L", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetXY(x+labelW, y)
	used := d.writeText(value, x+labelW, innerW-labelW, 9.5, "")
	d.pdf.SetXY(x, y+max(lineHeight(9), used)+1)
}

// statusBadge draws the colour-coded grade pill at a fixed position.
func (d *doc) statusBadge(status domain.ItemStatus, x, y float64) {
	bg, fg, label := badgeColors(status)
	const w, h = 22.0, 6.5
	d.pdf.SetFillColor(bg.r, bg.g, bg.b)
	d.pdf.RoundedRect(x, y, w, h, 1.5, "1234", "F")
	d.pdf.SetFont(d.latin, "B", 8.5)
	d.pdf.SetTextColor(fg.r, fg.g, fg.b)
	d.pdf.SetXY(x, y)
	d.pdf.CellFormat(w, h, label, "", 0, "C", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
}

func badgeColors(status domain.ItemStatus) (bg, fg rgb, label string) {
	switch status {
	case domain.StatusPass:
		return rgb{220, 245, 225}, rgb{27, 94, 32}, "PASS"
	case domain.StatusFail:
		return rgb{250, 220, 220}, rgb{183, 28, 28}, "FAIL"
	default:
		return rgb{235, 235, 235}, rgb{97, 97, 97}, "N/A"
	}
}

// renderablePhoto is a photo payload that survived decoding and is safe to
// hand to gofpdf.
type renderablePhoto struct {
	name      string
	imageType string
	data      []byte
}

// decodePhotos validates each photo payload up front. gofpdf errors are
// sticky, so an undecodable or unsupported image must never reach it; such
// photos are logged and dropped from the grid.
func (d *doc) decodePhotos(item domain.Item) []renderablePhoto {
	out := make([]renderablePhoto, 0, len(item.Photos))
	for i, p := range item.Photos {
		raw, err := decodePhotoData(p.Data)
		if err != nil {
			d.logger.Warn("skipping undecodable photo", "photo", p.ID, "item", item.ID, "error", err)
			continue
		}
		_, format, err := image.DecodeConfig(bytes.NewReader(raw))
		if err != nil {
			d.logger.Warn("skipping unreadable photo", "photo", p.ID, "item", item.ID, "error", err)
			continue
		}
		var imageType string
		switch format {
		case "jpeg":
			imageType = "JPEG"
		case "png":
			imageType = "PNG"
		case "gif":
			imageType = "GIF"
		default:
			d.logger.Warn("skipping photo with unsupported format", "photo", p.ID, "format", format)
			continue
		}
		// gofpdf keys registered images by name and silently reuses the first
		// registration, so the name must be unique per photo.
		name := p.ID
		if name == "" {
			name = fmt.Sprintf("%s-%d-%s", item.ID, i, p.Name)
		}
		out = append(out, renderablePhoto{name: name, imageType: imageType, data: raw})
	}
	return out
}

// decodePhotoData accepts either a bare base64 payload or a data URL.
func decodePhotoData(data string) ([]byte, error) {
	if i := strings.Index(data, ";base64,"); i >= 0 && strings.HasPrefix(data, "data:") {
		data = data[i+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(data))
}

// photoGrid lays validated photos three to a row at a 4:3 aspect.
func (d *doc) photoGrid(photos []renderablePhoto, x, innerW float64) {
	photoW := (innerW - photoGap*(photoCols-1)) / photoCols
	photoH := photoW * photoRatio
	y := d.pdf.GetY() + 1

	for i, p := range photos {
		col := i % photoCols
		if i > 0 && col == 0 {
			y += photoH + photoGap
		}
		px := x + float64(col)*(photoW+photoGap)
		d.pdf.RegisterImageOptionsReader(p.name, gofpdf.ImageOptions{ImageType: p.imageType}, bytes.NewReader(p.data))
		d.pdf.ImageOptions(p.name, px, y, photoW, photoH, false, gofpdf.ImageOptions{ImageType: p.imageType}, 0, "")
	}
	d.pdf.SetXY(x, y+photoH+photoGap)
}