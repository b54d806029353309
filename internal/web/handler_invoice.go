package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/obeidat/fahs/internal/domain"
)

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	list, err := s.invoices.List(r.Context())
	if err != nil && !isCorrupt(err) {
		s.serviceError(w, err, "failed to list invoices")
		return
	}
	markCorrupt(w, err)
	if list == nil {
		list = []*domain.Invoice{}
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSaveInvoice(w http.ResponseWriter, r *http.Request) {
	var inv domain.Invoice
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid invoice payload")
		return
	}
	if id := r.PathValue("id"); id != "" {
		inv.ID = id
	}
	if err := s.invoices.Save(r.Context(), &inv); err != nil {
		s.serviceError(w, err, "failed to save invoice")
		return
	}
	s.writeJSON(w, http.StatusOK, &inv)
}

// handleInvoiceForProperty returns an unsaved draft pre-populated from a
// client's property: snapshot of the client fields plus one service line
// priced from the property's size and use.
func (s *Server) handleInvoiceForProperty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID   string `json:"clientId"`
		PropertyID string `json:"propertyId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	inv, err := s.invoices.NewDraftForProperty(r.Context(), req.ClientID, req.PropertyID)
	if err != nil {
		s.serviceError(w, err, "failed to draft invoice")
		return
	}
	s.writeJSON(w, http.StatusOK, inv)
}

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := s.invoices.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.serviceError(w, err, "failed to get invoice")
		return
	}
	if inv == nil {
		s.writeError(w, http.StatusNotFound, "invoice not found")
		return
	}
	s.writeJSON(w, http.StatusOK, inv)
}

func (s *Server) handleDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := s.invoices.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.serviceError(w, err, "failed to delete invoice")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInvoiceDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	inv, err := s.invoices.Get(r.Context(), id)
	if err != nil {
		s.serviceError(w, err, "failed to get invoice")
		return
	}
	if inv == nil {
		s.writeError(w, http.StatusNotFound, "invoice not found")
		return
	}

	pdf, err := s.renderer.Invoice(inv)
	if err != nil {
		s.logger.Error("invoice rendering failed", "invoice_id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to render invoice")
		return
	}

	filename := fmt.Sprintf("%s.pdf", inv.InvoiceNumber)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		s.logger.Error("write invoice failed", "invoice_id", id, "error", err)
	}
}
