// Package report renders inspection reports and invoices as PDF documents.
package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// Page geometry in millimetres (A4 portrait).
const (
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 28.0
	marginBottom = 18.0
	pageWidth    = 210.0
	pageHeight   = 297.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// Brand palette.
var (
	colorBrand  = rgb{31, 78, 121}
	colorAccent = rgb{197, 90, 17}
	colorMuted  = rgb{110, 110, 110}
	colorBorder = rgb{205, 210, 218}
)

type rgb struct{ r, g, b int }

// Options configures a Renderer. Font files are optional: when a TTF is not
// configured or cannot be found the renderer falls back to the built-in
// Helvetica, which degrades Arabic text but never fails the document.
type Options struct {
	CompanyName   string
	WatermarkText string
	FontDir       string
	LatinFont     string
	ArabicFont    string
}

// Renderer produces PDF documents. It is safe for concurrent use; every
// document is built on its own gofpdf instance.
type Renderer struct {
	logger *slog.Logger
	opts   Options
}

func New(logger *slog.Logger, opts Options) *Renderer {
	return &Renderer{logger: logger, opts: opts}
}

// doc wraps one in-progress PDF together with the font families resolved for
// each script.
type doc struct {
	pdf    *gofpdf.Fpdf
	latin  string
	arabic string
	logger *slog.Logger
}

// newDoc creates a page-managed document: fonts registered, watermark and
// header drawn on every page, footer carrying the page total, and the first
// page added.
func (r *Renderer) newDoc(title, footerNote string) *doc {
	pdf := gofpdf.New("P", "mm", "A4", r.opts.FontDir)
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AliasNbPages("")

	d := &doc{pdf: pdf, latin: "Helvetica", arabic: "Helvetica", logger: r.logger}
	if fam, ok := r.registerFont(pdf, "latinbody", r.opts.LatinFont); ok {
		d.latin = fam
		d.arabic = fam
	}
	if fam, ok := r.registerFont(pdf, "arabicbody", r.opts.ArabicFont); ok {
		d.arabic = fam
	} else if r.opts.ArabicFont != "" || d.arabic == "Helvetica" {
		r.logger.Warn("arabic font unavailable, arabic text will degrade", "font", r.opts.ArabicFont)
	}

	company := r.opts.CompanyName
	watermark := r.opts.WatermarkText
	pdf.SetHeaderFuncMode(func() {
		d.drawWatermark(watermark)
		pdf.SetFont(d.latin, "B", 11)
		pdf.SetTextColor(colorBrand.r, colorBrand.g, colorBrand.b)
		pdf.SetXY(marginLeft, 10)
		pdf.CellFormat(contentWidth/2, 6, company, "", 0, "L", false, 0, "")
		pdf.SetFont(d.latin, "", 10)
		pdf.SetTextColor(colorMuted.r, colorMuted.g, colorMuted.b)
		pdf.CellFormat(contentWidth/2, 6, title, "", 0, "R", false, 0, "")
		pdf.SetDrawColor(colorAccent.r, colorAccent.g, colorAccent.b)
		pdf.SetLineWidth(0.5)
		pdf.Line(marginLeft, 18, pageWidth-marginRight, 18)
		pdf.SetLineWidth(0.2)
	}, true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont(d.latin, "", 8)
		pdf.SetTextColor(colorMuted.r, colorMuted.g, colorMuted.b)
		pdf.CellFormat(contentWidth/2, 5, footerNote, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentWidth/2, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()
	return d
}

// registerFont adds a UTF-8 TTF under the given family name for the regular
// and bold styles. A missing file is tolerated, not fatal.
func (r *Renderer) registerFont(pdf *gofpdf.Fpdf, family, file string) (string, bool) {
	if file == "" {
		return "", false
	}
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.opts.FontDir, file)
	}
	if _, err := os.Stat(path); err != nil {
		r.logger.Warn("font file not found, falling back to built-in font", "font", file, "error", err)
		return "", false
	}
	pdf.AddUTF8Font(family, "", file)
	pdf.AddUTF8Font(family, "B", file)
	if err := pdf.Error(); err != nil {
		r.logger.Warn("failed to register font, falling back to built-in font", "font", file, "error", err)
		// Clearing is not possible on a poisoned instance, so report failure
		// before any drawing happened.
		return "", false
	}
	return family, true
}

// drawWatermark paints a translucent diagonal mark across the page centre.
func (d *doc) drawWatermark(text string) {
	if text == "" {
		return
	}
	d.pdf.SetFont(d.latin, "B", 72)
	d.pdf.SetTextColor(150, 150, 150)
	d.pdf.SetAlpha(0.08, "Normal")
	d.pdf.TransformBegin()
	d.pdf.TransformRotate(45, pageWidth/2, pageHeight/2)
	w := d.pdf.GetStringWidth(text)
	d.pdf.Text(pageWidth/2-w/2, pageHeight/2, text)
	d.pdf.TransformEnd()
	d.pdf.SetAlpha(1, "Normal")
	d.pdf.SetTextColor(0, 0, 0)
}

// output finalises the document, surfacing any error gofpdf accumulated.
func (d *doc) output() ([]byte, error) {
	if err := d.pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to build document: %w", err)
	}
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write document: %w", err)
	}
	return buf.Bytes(), nil
}
