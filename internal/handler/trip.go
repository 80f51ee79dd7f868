package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/events"
)

// tripRequest is the body of POST /trips and PUT /trips/{id}. Dates are
// required; their presence is checked by domain validation because the
// validator cannot see into openapi_types.Date.
type tripRequest struct {
	Destination    string             `json:"destination" validate:"required"`
	OrganizationID *int64             `json:"organization_id" validate:"omitempty,gt=0"`
	StartDate      openapi_types.Date `json:"start_date"`
	EndDate        openapi_types.Date `json:"end_date"`
	Transport      *string            `json:"transport" validate:"omitempty,oneof=car train plane"`
	ParticipantIDs []int64            `json:"participant_ids" validate:"required,min=1,dive,gt=0"`
}

// tripResponse is the JSON representation of a trip.
type tripResponse struct {
	ID             int64              `json:"id"`
	Destination    string             `json:"destination"`
	OrganizationID *int64             `json:"organization_id"`
	StartDate      openapi_types.Date `json:"start_date"`
	EndDate        openapi_types.Date `json:"end_date"`
	Transport      *string            `json:"transport"`
	ParticipantIDs []int64            `json:"participant_ids"`
}

// conflictResponse is the body of GET /trips/conflicts.
type conflictResponse struct {
	Conflict bool              `json:"conflict"`
	Employee *conflictEmployee `json:"employee,omitempty"`
}

type conflictEmployee struct {
	ID        int64  `json:"id"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
}

// listTrips handles GET /trips?year=&employee_id=.
func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	var filter domain.TripFilter
	if !queryParam(w, r, "year", false, &filter.Year) || !queryParam(w, r, "employee_id", false, &filter.EmployeeID) {
		return
	}
	trips, err := s.Trips.List(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, tripsToResponse(trips))
}

// getTrip handles GET /trips/{id}.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	trip, err := s.Trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// createTrip handles POST /trips.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	created, err := s.Trips.Create(r.Context(), req.toDomain(0))
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	s.changed(events.TripsUpdated)
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// updateTrip handles PUT /trips/{id}. The participant list in the body
// replaces the stored one entirely.
func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req tripRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	updated, err := s.Trips.Update(r.Context(), req.toDomain(id))
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	s.changed(events.TripsUpdated)
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// deleteTrip handles DELETE /trips/{id}.
func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.Trips.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	s.changed(events.TripsUpdated)
	w.WriteHeader(http.StatusNoContent)
}

// findConflict handles GET /trips/conflicts, the read-only pre-check a form
// runs before submitting a trip or vacation.
func (s *Server) findConflict(w http.ResponseWriter, r *http.Request) {
	var (
		participants []int64
		start, end   string
		opts         domain.ConflictOptions
	)
	if !queryParam(w, r, "participants", true, &participants) ||
		!queryParam(w, r, "start_date", true, &start) ||
		!queryParam(w, r, "end_date", true, &end) ||
		!queryParam(w, r, "exclude_trip_id", false, &opts.ExcludeTripID) ||
		!queryParam(w, r, "exclude_vacation_id", false, &opts.ExcludeVacationID) {
		return
	}
	from, ok := queryDate(w, "start_date", start)
	if !ok {
		return
	}
	to, ok := queryDate(w, "end_date", end)
	if !ok {
		return
	}

	found, err := s.Trips.FindConflictingEmployee(r.Context(), participants, domain.NewDateRange(from, to), opts)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	resp := conflictResponse{Conflict: found != nil}
	if found != nil {
		resp.Employee = &conflictEmployee{ID: found.ID, LastName: found.LastName, FirstName: found.FirstName}
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- mapping helpers --------------------------------------------------------

func (req tripRequest) toDomain(id int64) domain.Trip {
	t := domain.Trip{
		ID:             id,
		Destination:    req.Destination,
		OrganizationID: req.OrganizationID,
		StartDate:      req.StartDate.Time,
		EndDate:        req.EndDate.Time,
		ParticipantIDs: req.ParticipantIDs,
	}
	if req.Transport != nil {
		t.Transport = domain.Transport(*req.Transport)
	}
	return t
}

func tripToResponse(t domain.Trip) tripResponse {
	resp := tripResponse{
		ID:             t.ID,
		Destination:    t.Destination,
		OrganizationID: t.OrganizationID,
		StartDate:      openapi_types.Date{Time: t.StartDate},
		EndDate:        openapi_types.Date{Time: t.EndDate},
		ParticipantIDs: t.ParticipantIDs,
	}
	if resp.ParticipantIDs == nil {
		resp.ParticipantIDs = []int64{}
	}
	if t.Transport != domain.TransportNone {
		s := string(t.Transport)
		resp.Transport = &s
	}
	return resp
}

func tripsToResponse(trips []domain.Trip) []tripResponse {
	out := make([]tripResponse, len(trips))
	for i, t := range trips {
		out[i] = tripToResponse(t)
	}
	return out
}
