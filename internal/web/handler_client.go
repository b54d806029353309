package web

import (
	"encoding/json"
	"net/http"

	"github.com/obeidat/fahs/internal/domain"
)

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	list, err := s.clients.List(r.Context())
	if err != nil && !isCorrupt(err) {
		s.serviceError(w, err, "failed to list clients")
		return
	}
	markCorrupt(w, err)
	if list == nil {
		list = []*domain.Client{}
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSaveClient(w http.ResponseWriter, r *http.Request) {
	var c domain.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid client payload")
		return
	}
	if id := r.PathValue("id"); id != "" {
		c.ID = id
	}
	if err := s.clients.Save(r.Context(), &c); err != nil {
		s.serviceError(w, err, "failed to save client")
		return
	}
	s.writeJSON(w, http.StatusOK, &c)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	c, err := s.clients.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.serviceError(w, err, "failed to get client")
		return
	}
	if c == nil {
		s.writeError(w, http.StatusNotFound, "client not found")
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := s.clients.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.serviceError(w, err, "failed to delete client")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
