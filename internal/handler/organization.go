package handler

import (
	"net/http"

	"github.com/pkordes/hr-ops/internal/domain"
)

type organizationRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	City string `json:"city" validate:"max=100"`
}

type organizationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

func (s *Server) listOrganizations(w http.ResponseWriter, r *http.Request) {
	items, err := s.Organizations.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	out := make([]organizationResponse, len(items))
	for i, o := range items {
		out[i] = organizationToResponse(o)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	o, err := s.Organizations.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "organization not found")
		return
	}
	writeJSON(w, http.StatusOK, organizationToResponse(o))
}

func (s *Server) createOrganization(w http.ResponseWriter, r *http.Request) {
	var req organizationRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	created, err := s.Organizations.Create(r.Context(), domain.Organization{Name: req.Name, City: req.City})
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, organizationToResponse(created))
}

func (s *Server) updateOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req organizationRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	updated, err := s.Organizations.Update(r.Context(), domain.Organization{ID: id, Name: req.Name, City: req.City})
	if err != nil {
		s.writeError(w, r, err, "organization not found")
		return
	}
	writeJSON(w, http.StatusOK, organizationToResponse(updated))
}

// deleteOrganization handles DELETE /organizations/{id}. Organizations
// referenced by a trip cannot be deleted.
func (s *Server) deleteOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.Organizations.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "organization not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func organizationToResponse(o domain.Organization) organizationResponse {
	return organizationResponse{ID: o.ID, Name: o.Name, City: o.City}
}
