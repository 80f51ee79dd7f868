package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/events"
)

type vacationRequest struct {
	EmployeeID int64              `json:"employee_id" validate:"required,gt=0"`
	StartDate  openapi_types.Date `json:"start_date"`
	EndDate    openapi_types.Date `json:"end_date"`
}

type vacationResponse struct {
	ID         int64              `json:"id"`
	EmployeeID int64              `json:"employee_id"`
	StartDate  openapi_types.Date `json:"start_date"`
	EndDate    openapi_types.Date `json:"end_date"`
}

// listVacations handles GET /vacations?employee_id=.
func (s *Server) listVacations(w http.ResponseWriter, r *http.Request) {
	var employeeID *int64
	if !queryParam(w, r, "employee_id", false, &employeeID) {
		return
	}
	items, err := s.Vacations.List(r.Context(), employeeID)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, vacationsToResponse(items))
}

// getVacation handles GET /vacations/{id}.
func (s *Server) getVacation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := s.Vacations.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "vacation not found")
		return
	}
	writeJSON(w, http.StatusOK, vacationToResponse(v))
}

// createVacation handles POST /vacations.
func (s *Server) createVacation(w http.ResponseWriter, r *http.Request) {
	var req vacationRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	created, err := s.Vacations.Create(r.Context(), req.toDomain(0))
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	s.changed(events.VacationsUpdated)
	writeJSON(w, http.StatusCreated, vacationToResponse(created))
}

// updateVacation handles PUT /vacations/{id}.
func (s *Server) updateVacation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req vacationRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	updated, err := s.Vacations.Update(r.Context(), req.toDomain(id))
	if err != nil {
		s.writeError(w, r, err, "vacation not found")
		return
	}
	s.changed(events.VacationsUpdated)
	writeJSON(w, http.StatusOK, vacationToResponse(updated))
}

// deleteVacation handles DELETE /vacations/{id}.
func (s *Server) deleteVacation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.Vacations.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "vacation not found")
		return
	}
	s.changed(events.VacationsUpdated)
	w.WriteHeader(http.StatusNoContent)
}

func (req vacationRequest) toDomain(id int64) domain.Vacation {
	return domain.Vacation{
		ID:         id,
		EmployeeID: req.EmployeeID,
		StartDate:  req.StartDate.Time,
		EndDate:    req.EndDate.Time,
	}
}

func vacationToResponse(v domain.Vacation) vacationResponse {
	return vacationResponse{
		ID:         v.ID,
		EmployeeID: v.EmployeeID,
		StartDate:  openapi_types.Date{Time: v.StartDate},
		EndDate:    openapi_types.Date{Time: v.EndDate},
	}
}

func vacationsToResponse(items []domain.Vacation) []vacationResponse {
	out := make([]vacationResponse, len(items))
	for i, v := range items {
		out[i] = vacationToResponse(v)
	}
	return out
}
