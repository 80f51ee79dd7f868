package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/events"
)

type instrumentRequest struct {
	Name             string             `json:"name" validate:"required,max=200"`
	Type             string             `json:"type" validate:"max=200"`
	SerialNumber     string             `json:"serial_number" validate:"max=100"`
	InventoryNumber  string             `json:"inventory_number" validate:"max=100"`
	LastVerification openapi_types.Date `json:"last_verification"`
	NextVerification openapi_types.Date `json:"next_verification"`
	Notes            string             `json:"notes" validate:"max=2000"`
}

type instrumentResponse struct {
	ID               int64              `json:"id"`
	Name             string             `json:"name"`
	Type             string             `json:"type"`
	SerialNumber     string             `json:"serial_number"`
	InventoryNumber  string             `json:"inventory_number"`
	LastVerification openapi_types.Date `json:"last_verification"`
	NextVerification openapi_types.Date `json:"next_verification"`
	Notes            string             `json:"notes"`
	Status           string             `json:"status"`
	DaysLeft         int                `json:"days_left"`
}

func (s *Server) listInstruments(w http.ResponseWriter, r *http.Request) {
	items, err := s.Verification.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	out := make([]instrumentResponse, len(items))
	for i, m := range items {
		out[i] = s.instrumentToResponse(m)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getInstrument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	m, err := s.Verification.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "instrument not found")
		return
	}
	writeJSON(w, http.StatusOK, s.instrumentToResponse(m))
}

func (s *Server) createInstrument(w http.ResponseWriter, r *http.Request) {
	var req instrumentRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	created, err := s.Verification.Create(r.Context(), req.toDomain(0))
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	s.changed(events.VerificationUpdated)
	writeJSON(w, http.StatusCreated, s.instrumentToResponse(created))
}

func (s *Server) updateInstrument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req instrumentRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	updated, err := s.Verification.Update(r.Context(), req.toDomain(id))
	if err != nil {
		s.writeError(w, r, err, "instrument not found")
		return
	}
	s.changed(events.VerificationUpdated)
	writeJSON(w, http.StatusOK, s.instrumentToResponse(updated))
}

func (s *Server) deleteInstrument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.Verification.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "instrument not found")
		return
	}
	s.changed(events.VerificationUpdated)
	w.WriteHeader(http.StatusNoContent)
}

// getVerificationStats handles GET /verification/stats, the dashboard
// counters of the verification schedule.
func (s *Server) getVerificationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Verification.Stats(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, statsToResponse(stats))
}

func (req instrumentRequest) toDomain(id int64) domain.MeasuringInstrument {
	return domain.MeasuringInstrument{
		ID:               id,
		Name:             req.Name,
		Type:             req.Type,
		SerialNumber:     req.SerialNumber,
		InventoryNumber:  req.InventoryNumber,
		LastVerification: req.LastVerification.Time,
		NextVerification: req.NextVerification.Time,
		Notes:            req.Notes,
	}
}

func (s *Server) instrumentToResponse(m domain.MeasuringInstrument) instrumentResponse {
	today := s.now()
	return instrumentResponse{
		ID:               m.ID,
		Name:             m.Name,
		Type:             m.Type,
		SerialNumber:     m.SerialNumber,
		InventoryNumber:  m.InventoryNumber,
		LastVerification: openapi_types.Date{Time: m.LastVerification},
		NextVerification: openapi_types.Date{Time: m.NextVerification},
		Notes:            m.Notes,
		Status:           string(m.Expiry(today)),
		DaysLeft:         domain.DaysLeft(m.NextVerification, today),
	}
}
