package handler

import (
	"net/http"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/events"
)

type employeeRequest struct {
	LastName   string `json:"last_name" validate:"required,max=100"`
	FirstName  string `json:"first_name" validate:"required,max=100"`
	Patronymic string `json:"patronymic" validate:"max=100"`
	Position   string `json:"position" validate:"max=200"`
}

type employeeResponse struct {
	ID         int64  `json:"id"`
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	Patronymic string `json:"patronymic"`
	Position   string `json:"position"`
	FullName   string `json:"full_name"`
	ShortName  string `json:"short_name"`
}

// employeeProfileResponse is the body of GET /employees/{id}/profile.
type employeeProfileResponse struct {
	Employee  employeeResponse   `json:"employee"`
	Trips     []tripResponse     `json:"trips"`
	Vacations []vacationResponse `json:"vacations"`
}

// listEmployees handles GET /employees.
func (s *Server) listEmployees(w http.ResponseWriter, r *http.Request) {
	items, err := s.Employees.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	out := make([]employeeResponse, len(items))
	for i, e := range items {
		out[i] = employeeToResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}

// getEmployee handles GET /employees/{id}.
func (s *Server) getEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := s.Employees.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "employee not found")
		return
	}
	writeJSON(w, http.StatusOK, employeeToResponse(e))
}

// createEmployee handles POST /employees.
func (s *Server) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	created, err := s.Employees.Create(r.Context(), req.toDomain(0))
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	s.changed(events.EmployeesUpdated)
	writeJSON(w, http.StatusCreated, employeeToResponse(created))
}

// updateEmployee handles PUT /employees/{id}.
func (s *Server) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req employeeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	updated, err := s.Employees.Update(r.Context(), req.toDomain(id))
	if err != nil {
		s.writeError(w, r, err, "employee not found")
		return
	}
	s.changed(events.EmployeesUpdated)
	writeJSON(w, http.StatusOK, employeeToResponse(updated))
}

// deleteEmployee handles DELETE /employees/{id}. Employees still listed on a
// trip or vacation cannot be deleted.
func (s *Server) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.Employees.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "employee not found")
		return
	}
	s.changed(events.EmployeesUpdated)
	w.WriteHeader(http.StatusNoContent)
}

// getEmployeeProfile handles GET /employees/{id}/profile.
func (s *Server) getEmployeeProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := s.Employees.Profile(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "employee not found")
		return
	}
	writeJSON(w, http.StatusOK, employeeProfileResponse{
		Employee:  employeeToResponse(p.Employee),
		Trips:     tripsToResponse(p.Trips),
		Vacations: vacationsToResponse(p.Vacations),
	})
}

// getEmployeeTrips handles GET /employees/{id}/trips.
func (s *Server) getEmployeeTrips(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	trips, err := s.Employees.Trips(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "employee not found")
		return
	}
	writeJSON(w, http.StatusOK, tripsToResponse(trips))
}

func (req employeeRequest) toDomain(id int64) domain.Employee {
	return domain.Employee{
		ID:         id,
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		Patronymic: req.Patronymic,
		Position:   req.Position,
	}
}

func employeeToResponse(e domain.Employee) employeeResponse {
	return employeeResponse{
		ID:         e.ID,
		LastName:   e.LastName,
		FirstName:  e.FirstName,
		Patronymic: e.Patronymic,
		Position:   e.Position,
		FullName:   e.FullName(),
		ShortName:  e.ShortName(),
	}
}
