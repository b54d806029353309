// Package web is the JSON HTTP surface of the application: collection CRUD,
// report and invoice downloads, the register export, the AI endpoints, and
// the dashboard feed.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/obeidat/fahs/internal/ai"
	"github.com/obeidat/fahs/internal/report"
	"github.com/obeidat/fahs/internal/service"
	"github.com/obeidat/fahs/internal/store"
	"github.com/obeidat/fahs/internal/taxonomy"
)

type Server struct {
	inspections *service.InspectionService
	clients     *service.ClientService
	invoices    *service.InvoiceService
	dashboard   *service.DashboardService
	renderer    *report.Renderer
	assistant   ai.Assistant
	taxonomy    *taxonomy.Taxonomy
	mux         *http.ServeMux
	logger      *slog.Logger
}

// Services bundles the application services the server fronts.
type Services struct {
	Inspections *service.InspectionService
	Clients     *service.ClientService
	Invoices    *service.InvoiceService
	Dashboard   *service.DashboardService
	Renderer    *report.Renderer
	Assistant   ai.Assistant
	Taxonomy    *taxonomy.Taxonomy
}

func NewServer(deps Services, logger *slog.Logger) *Server {
	s := &Server{
		inspections: deps.Inspections,
		clients:     deps.Clients,
		invoices:    deps.Invoices,
		dashboard:   deps.Dashboard,
		renderer:    deps.Renderer,
		assistant:   deps.Assistant,
		taxonomy:    deps.Taxonomy,
		mux:         http.NewServeMux(),
		logger:      logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/inspections", s.handleListInspections)
	s.mux.HandleFunc("POST /api/inspections", s.handleSaveInspection)
	s.mux.HandleFunc("GET /api/inspections/{id}", s.handleGetInspection)
	s.mux.HandleFunc("PUT /api/inspections/{id}", s.handleSaveInspection)
	s.mux.HandleFunc("DELETE /api/inspections/{id}", s.handleDeleteInspection)
	s.mux.HandleFunc("POST /api/inspections/{id}/summary", s.handleGenerateSummary)
	s.mux.HandleFunc("GET /api/inspections/{id}/report", s.handleInspectionReport)

	s.mux.HandleFunc("GET /api/clients", s.handleListClients)
	s.mux.HandleFunc("POST /api/clients", s.handleSaveClient)
	s.mux.HandleFunc("GET /api/clients/{id}", s.handleGetClient)
	s.mux.HandleFunc("PUT /api/clients/{id}", s.handleSaveClient)
	s.mux.HandleFunc("DELETE /api/clients/{id}", s.handleDeleteClient)

	s.mux.HandleFunc("GET /api/invoices", s.handleListInvoices)
	s.mux.HandleFunc("POST /api/invoices", s.handleSaveInvoice)
	s.mux.HandleFunc("POST /api/invoices/for-property", s.handleInvoiceForProperty)
	s.mux.HandleFunc("GET /api/invoices/{id}", s.handleGetInvoice)
	s.mux.HandleFunc("PUT /api/invoices/{id}", s.handleSaveInvoice)
	s.mux.HandleFunc("DELETE /api/invoices/{id}", s.handleDeleteInvoice)
	s.mux.HandleFunc("GET /api/invoices/{id}/document", s.handleInvoiceDocument)

	s.mux.HandleFunc("GET /api/export/registers", s.handleExportRegisters)
	s.mux.HandleFunc("POST /api/ai/describe", s.handleDescribeDefect)
	s.mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	s.mux.HandleFunc("GET /api/taxonomy", s.handleTaxonomy)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// serviceError maps an error from the service layer onto an HTTP status:
// validation failures become 400, missing records 404, anything else 500.
func (s *Server) serviceError(w http.ResponseWriter, err error, logMsg string) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		s.writeError(w, http.StatusBadRequest, verr.Error())
		return
	}
	if isNotFound(err) {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeError(w, http.StatusInternalServerError, logMsg)
	s.logger.Error(logMsg, "error", err)
}

func isNotFound(err error) bool {
	return err != nil && strings.HasSuffix(err.Error(), "not found")
}

// isCorrupt reports whether err only flags undecodable rows. Such an error
// never fails a listing, even when every row was corrupt and no records came
// back at all.
func isCorrupt(err error) bool {
	var cerr *store.CorruptError
	return errors.As(err, &cerr)
}

// markCorrupt surfaces a corrupt-row count without failing the listing; the
// ids themselves were already logged by the store.
func markCorrupt(w http.ResponseWriter, err error) {
	var cerr *store.CorruptError
	if errors.As(err, &cerr) {
		w.Header().Set("X-Corrupt-Records", strconv.Itoa(len(cerr.IDs)))
	}
}
