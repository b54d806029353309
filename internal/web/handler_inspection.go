package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/obeidat/fahs/internal/domain"
)

func (s *Server) handleListInspections(w http.ResponseWriter, r *http.Request) {
	var (
		list []*domain.Inspection
		err  error
	)
	if t := r.URL.Query().Get("type"); t != "" {
		list, err = s.inspections.ListByPropertyType(r.Context(), domain.PropertyType(t))
	} else {
		list, err = s.inspections.List(r.Context())
	}
	if err != nil && !isCorrupt(err) {
		s.serviceError(w, err, "failed to list inspections")
		return
	}
	markCorrupt(w, err)
	if list == nil {
		list = []*domain.Inspection{}
	}
	s.writeJSON(w, http.StatusOK, list)
}

// handleSaveInspection persists the full record posted by the client; the
// same handler backs create and update because saves are whole-record
// upserts. On PUT the path id wins over any id in the body.
func (s *Server) handleSaveInspection(w http.ResponseWriter, r *http.Request) {
	var insp domain.Inspection
	if err := json.NewDecoder(r.Body).Decode(&insp); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid inspection payload")
		return
	}
	if id := r.PathValue("id"); id != "" {
		insp.ID = id
	}
	if err := s.inspections.Save(r.Context(), &insp); err != nil {
		s.serviceError(w, err, "failed to save inspection")
		return
	}
	s.writeJSON(w, http.StatusOK, &insp)
}

func (s *Server) handleGetInspection(w http.ResponseWriter, r *http.Request) {
	insp, err := s.inspections.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.serviceError(w, err, "failed to get inspection")
		return
	}
	if insp == nil {
		s.writeError(w, http.StatusNotFound, "inspection not found")
		return
	}
	s.writeJSON(w, http.StatusOK, insp)
}

func (s *Server) handleDeleteInspection(w http.ResponseWriter, r *http.Request) {
	if err := s.inspections.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.serviceError(w, err, "failed to delete inspection")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// aiUnavailable is the fixed degradation message shown whenever an AI call
// fails; the underlying error goes to the log only.
const aiUnavailable = "AI service unavailable. Please try again."

func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	insp, err := s.inspections.GenerateSummary(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.Error("summary generation failed", "inspection_id", id, "error", err)
		s.writeError(w, http.StatusBadGateway, aiUnavailable)
		return
	}
	s.writeJSON(w, http.StatusOK, insp)
}

func (s *Server) handleInspectionReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	insp, err := s.inspections.Get(r.Context(), id)
	if err != nil {
		s.serviceError(w, err, "failed to get inspection")
		return
	}
	if insp == nil {
		s.writeError(w, http.StatusNotFound, "inspection not found")
		return
	}

	pdf, err := s.renderer.Inspection(insp)
	if err != nil {
		s.logger.Error("report rendering failed", "inspection_id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	filename := fmt.Sprintf("inspection_%s_%s.pdf", insp.ID, insp.InspectionDate)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		s.logger.Error("write report failed", "inspection_id", id, "error", err)
	}
}
