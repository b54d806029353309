package report

const (
	columnGap    = 6.0
	paragraphGap = 2.5
	sectionGap   = 4.0
)

// lineHeight converts a font size in points to a line height in millimetres.
func lineHeight(sizePt float64) float64 {
	return sizePt * 0.3528 * 1.35
}

// ensureSpace starts a new page when fewer than h millimetres remain above
// the bottom margin. Content that follows can then assume it fits, so blocks
// measured up front are never split across a page boundary.
func (d *doc) ensureSpace(h float64) {
	if d.pdf.GetY()+h > pageHeight-marginBottom {
		d.pdf.AddPage()
	}
}

// familyFor picks the font family registered for the script of the text.
func (d *doc) familyFor(text string) (family string, script Script) {
	script = DetectScript(text)
	if script == ScriptArabic {
		return d.arabic, script
	}
	return d.latin, script
}

// measureText returns the height a text block occupies when wrapped to width w.
func (d *doc) measureText(text string, w, sizePt float64, style string) float64 {
	if text == "" {
		return 0
	}
	family, _ := d.familyFor(text)
	d.pdf.SetFont(family, style, sizePt)
	lines := d.pdf.SplitText(text, w)
	return float64(len(lines)) * lineHeight(sizePt)
}

// writeText draws a script-routed text block at (x, current y) wrapped to
// width w and returns the height consumed. Arabic fields render right-to-left
// and right-aligned. The cursor is restored to x with y advanced past the
// block.
func (d *doc) writeText(text string, x, w, sizePt float64, style string) float64 {
	if text == "" {
		return 0
	}
	family, script := d.familyFor(text)
	d.pdf.SetFont(family, style, sizePt)
	y := d.pdf.GetY()
	d.pdf.SetXY(x, y)
	if script.RTL() {
		d.pdf.RTL()
	}
	d.pdf.MultiCell(w, lineHeight(sizePt), text, "", script.Align(), false)
	if script.RTL() {
		d.pdf.LTR()
	}
	used := d.pdf.GetY() - y
	d.pdf.SetXY(x, y+used)
	return used
}

// paragraph writes a full-width script-routed paragraph at the left margin.
func (d *doc) paragraph(text string, sizePt float64) {
	if text == "" {
		return
	}
	d.ensureSpace(d.measureText(text, contentWidth, sizePt, ""))
	d.writeText(text, marginLeft, contentWidth, sizePt, "")
	d.pdf.SetY(d.pdf.GetY() + paragraphGap)
}

// bilingualParagraph lays English and Arabic renditions of the same passage
// side by side, English in the left column and Arabic right-to-left in the
// right column. The cursor advances by the taller of the two columns.
func (d *doc) bilingualParagraph(english, arabic string, sizePt float64) {
	colW := (contentWidth - columnGap) / 2
	lh := lineHeight(sizePt)

	d.pdf.SetFont(d.latin, "", sizePt)
	enH := float64(len(d.pdf.SplitText(english, colW))) * lh
	d.pdf.SetFont(d.arabic, "", sizePt)
	arH := float64(len(d.pdf.SplitText(arabic, colW))) * lh
	h := max(enH, arH)
	d.ensureSpace(h)

	y := d.pdf.GetY()
	d.pdf.SetFont(d.latin, "", sizePt)
	d.pdf.SetXY(marginLeft, y)
	d.pdf.MultiCell(colW, lh, english, "", "L", false)

	d.pdf.SetFont(d.arabic, "", sizePt)
	d.pdf.SetXY(marginLeft+colW+columnGap, y)
	d.pdf.RTL()
	d.pdf.MultiCell(colW, lh, arabic, "", "R", false)
	d.pdf.LTR()

	d.pdf.SetXY(marginLeft, y+h+paragraphGap)
}

// sectionHeader draws a brand-coloured title bar with an accent stripe on the
// left edge, the English title on the left and the Arabic title on the right.
func (d *doc) sectionHeader(english, arabic string) {
	const barH = 9.0
	d.ensureSpace(barH + sectionGap)
	y := d.pdf.GetY()

	d.pdf.SetFillColor(colorBrand.r, colorBrand.g, colorBrand.b)
	d.pdf.Rect(marginLeft, y, contentWidth, barH, "F")
	d.pdf.SetFillColor(colorAccent.r, colorAccent.g, colorAccent.b)
	d.pdf.Rect(marginLeft, y, 1.8, barH, "F")

	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.SetFont(d.latin, "B", 12)
	d.pdf.SetXY(marginLeft+4, y)
	d.pdf.CellFormat(contentWidth/2-4, barH, english, "", 0, "L", false, 0, "")
	if arabic != "" {
		d.pdf.SetFont(d.arabic, "B", 12)
		d.pdf.RTL()
		d.pdf.CellFormat(contentWidth/2-4, barH, arabic, "", 0, "R", false, 0, "")
		d.pdf.LTR()
	}
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetXY(marginLeft, y+barH+sectionGap)
}

// labelledValue draws a muted label followed by a script-routed value on one
// logical row.
func (d *doc) labelledValue(label, value string) {
	const labelW = 42.0
	lh := lineHeight(10)
	h := max(lh, d.measureText(value, contentWidth-labelW, 10, ""))
	d.ensureSpace(h)
	y := d.pdf.GetY()

	d.pdf.SetFont(d.latin, "B", 10)
	d.pdf.SetTextColor(colorMuted.r, colorMuted.g, colorMuted.b)
	d.pdf.SetXY(marginLeft, y)
	d.pdf.CellFormat(labelW, lh, label, "", 0, "L", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)

	d.pdf.SetXY(marginLeft+labelW, y)
	d.writeText(value, marginLeft+labelW, contentWidth-labelW, 10, "")
	d.pdf.SetXY(marginLeft, y+h+1)
}
