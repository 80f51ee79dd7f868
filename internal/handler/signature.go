package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/events"
)

type signatureRequest struct {
	FullName  string             `json:"full_name" validate:"required,max=300"`
	Position  string             `json:"position" validate:"max=200"`
	INN       string             `json:"inn" validate:"omitempty,numeric,len=10|len=12"`
	ECPNumber string             `json:"ecp_number" validate:"required,max=100"`
	ValidFrom openapi_types.Date `json:"valid_from"`
	ValidTo   openapi_types.Date `json:"valid_to"`
}

// signatureResponse reports the expiry state as of the request, so clients
// never re-derive the window themselves.
type signatureResponse struct {
	ID        int64              `json:"id"`
	FullName  string             `json:"full_name"`
	Position  string             `json:"position"`
	INN       string             `json:"inn"`
	ECPNumber string             `json:"ecp_number"`
	ValidFrom openapi_types.Date `json:"valid_from"`
	ValidTo   openapi_types.Date `json:"valid_to"`
	Status    string             `json:"status"`
	DaysLeft  int                `json:"days_left"`
}

// expiryStatsResponse is shared by the signature and verification dashboards.
type expiryStatsResponse struct {
	Total    int `json:"total"`
	Valid    int `json:"valid"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
}

func (s *Server) listSignatures(w http.ResponseWriter, r *http.Request) {
	items, err := s.Signatures.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	out := make([]signatureResponse, len(items))
	for i, sig := range items {
		out[i] = s.signatureToResponse(sig)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getSignature(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	sig, err := s.Signatures.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "signature not found")
		return
	}
	writeJSON(w, http.StatusOK, s.signatureToResponse(sig))
}

// createSignature handles POST /eds. A duplicate ECP number is a 409.
func (s *Server) createSignature(w http.ResponseWriter, r *http.Request) {
	var req signatureRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	created, err := s.Signatures.Create(r.Context(), req.toDomain(0))
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	s.changed(events.SignaturesUpdated)
	writeJSON(w, http.StatusCreated, s.signatureToResponse(created))
}

func (s *Server) updateSignature(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req signatureRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	updated, err := s.Signatures.Update(r.Context(), req.toDomain(id))
	if err != nil {
		s.writeError(w, r, err, "signature not found")
		return
	}
	s.changed(events.SignaturesUpdated)
	writeJSON(w, http.StatusOK, s.signatureToResponse(updated))
}

func (s *Server) deleteSignature(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.Signatures.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "signature not found")
		return
	}
	s.changed(events.SignaturesUpdated)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getSignatureStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Signatures.Stats(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, statsToResponse(stats))
}

func (req signatureRequest) toDomain(id int64) domain.DigitalSignature {
	return domain.DigitalSignature{
		ID:        id,
		FullName:  req.FullName,
		Position:  req.Position,
		INN:       req.INN,
		ECPNumber: req.ECPNumber,
		ValidFrom: req.ValidFrom.Time,
		ValidTo:   req.ValidTo.Time,
	}
}

func (s *Server) signatureToResponse(sig domain.DigitalSignature) signatureResponse {
	today := s.now()
	return signatureResponse{
		ID:        sig.ID,
		FullName:  sig.FullName,
		Position:  sig.Position,
		INN:       sig.INN,
		ECPNumber: sig.ECPNumber,
		ValidFrom: openapi_types.Date{Time: sig.ValidFrom},
		ValidTo:   openapi_types.Date{Time: sig.ValidTo},
		Status:    string(sig.Expiry(today)),
		DaysLeft:  domain.DaysLeft(sig.ValidTo, today),
	}
}

func statsToResponse(st domain.ExpiryStats) expiryStatsResponse {
	return expiryStatsResponse{Total: st.Total, Valid: st.Valid, Expiring: st.Expiring, Expired: st.Expired}
}
