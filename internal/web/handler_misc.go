package web

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/obeidat/fahs/internal/domain"
	"github.com/obeidat/fahs/internal/export"
)

func (s *Server) handleExportRegisters(w http.ResponseWriter, r *http.Request) {
	invoices, err := s.invoices.List(r.Context())
	if err != nil && !isCorrupt(err) {
		s.serviceError(w, err, "failed to list invoices")
		return
	}
	inspections, err := s.inspections.List(r.Context())
	if err != nil && !isCorrupt(err) {
		s.serviceError(w, err, "failed to list inspections")
		return
	}

	invs := make([]domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		invs = append(invs, *inv)
	}
	insps := make([]domain.Inspection, 0, len(inspections))
	for _, insp := range inspections {
		insps = append(insps, *insp)
	}

	book, err := export.Workbook(invs, insps)
	if err != nil {
		s.logger.Error("register export failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to generate export")
		return
	}

	filename := fmt.Sprintf("registers_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(book)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(book); err != nil {
		s.logger.Error("write export failed", "error", err)
	}
}

const maxPhotoSize = 50 * 1024 * 1024 // 50 MB

// allowedImageTypes is the set of MIME types accepted for uploaded photos.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the WHATWG sniff spec (and
// therefore the stdlib) does not include a WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

// handleDescribeDefect accepts a multipart photo plus the checklist point it
// belongs to and returns a one-line defect description from the AI gateway.
func (s *Server) handleDescribeDefect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer closeWithLog(file, "upload file", s.logger)

	imageData, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to read file")
		s.logger.Error("read upload failed", "error", err)
		return
	}

	mimeType, ok := allowedImageMIME(imageData)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "unsupported image format")
		return
	}

	point := strings.TrimSpace(r.FormValue("point"))
	description, err := s.assistant.DescribeDefect(r.Context(), imageData, mimeType, point)
	if err != nil {
		s.logger.Error("defect description failed", "point", point, "error", err)
		s.writeError(w, http.StatusBadGateway, aiUnavailable)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"description": description})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	overview, err := s.dashboard.Overview(r.Context())
	if err != nil {
		s.serviceError(w, err, "failed to build dashboard")
		return
	}
	s.writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleTaxonomy(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.taxonomy)
}

func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("close failed", "what", label, "error", err)
	}
}
