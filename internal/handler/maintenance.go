package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/hr-ops/internal/calendar"
	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/events"
)

type serviceDefinitionBody struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name" validate:"required,max=200"`
	Frequency string `json:"frequency" validate:"required,oneof=monthly quarterly semi_annual annual biennial"`
}

type equipmentRequest struct {
	Name         string                  `json:"name" validate:"required,max=200"`
	SerialNumber string                  `json:"serial_number" validate:"max=100"`
	Location     string                  `json:"location" validate:"max=200"`
	StartDate    openapi_types.Date      `json:"start_date"`
	Services     []serviceDefinitionBody `json:"services" validate:"dive"`
}

type equipmentResponse struct {
	ID           int64                   `json:"id"`
	Name         string                  `json:"name"`
	SerialNumber string                  `json:"serial_number"`
	Location     string                  `json:"location"`
	StartDate    openapi_types.Date      `json:"start_date"`
	Services     []serviceDefinitionBody `json:"services"`
}

// projectionRequest is the body of POST /maintenance/projection.
type projectionRequest struct {
	StartDate openapi_types.Date      `json:"start_date"`
	Services  []serviceDefinitionBody `json:"services" validate:"required,min=1,dive"`
	Years     int                     `json:"years" validate:"gte=0"`
}

// projectedDateResponse carries both ISO dates and the short DD.MM form the
// schedule is usually printed in.
type projectedDateResponse struct {
	Service       string             `json:"service"`
	Frequency     string             `json:"frequency"`
	OriginalDate  openapi_types.Date `json:"original_date"`
	ActualDate    openapi_types.Date `json:"actual_date"`
	WasMoved      bool               `json:"was_moved"`
	ActualDisplay string             `json:"actual_display"`
}

func (s *Server) listEquipment(w http.ResponseWriter, r *http.Request) {
	items, err := s.Maintenance.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	out := make([]equipmentResponse, len(items))
	for i, e := range items {
		out[i] = equipmentToResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := s.Maintenance.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "equipment not found")
		return
	}
	writeJSON(w, http.StatusOK, equipmentToResponse(e))
}

func (s *Server) createEquipment(w http.ResponseWriter, r *http.Request) {
	var req equipmentRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	created, err := s.Maintenance.Create(r.Context(), req.toDomain(0))
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	s.changed(events.MaintenanceUpdated)
	writeJSON(w, http.StatusCreated, equipmentToResponse(created))
}

// updateEquipment handles PUT /maintenance/equipment/{id}. The service list
// in the body replaces the stored one.
func (s *Server) updateEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req equipmentRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	updated, err := s.Maintenance.Update(r.Context(), req.toDomain(id))
	if err != nil {
		s.writeError(w, r, err, "equipment not found")
		return
	}
	s.changed(events.MaintenanceUpdated)
	writeJSON(w, http.StatusOK, equipmentToResponse(updated))
}

func (s *Server) deleteEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.Maintenance.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "equipment not found")
		return
	}
	s.changed(events.MaintenanceUpdated)
	w.WriteHeader(http.StatusNoContent)
}

// getSchedule handles GET /maintenance/equipment/{id}/schedule?years=N.
func (s *Server) getSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var years *int
	if !queryParam(w, r, "years", false, &years) {
		return
	}
	horizon := 0
	if years != nil {
		horizon = *years
	}
	dates, err := s.Maintenance.Schedule(r.Context(), id, horizon)
	if err != nil {
		s.writeError(w, r, err, "equipment not found")
		return
	}
	writeJSON(w, http.StatusOK, projectedToResponse(dates))
}

// projectSchedule handles POST /maintenance/projection.
func (s *Server) projectSchedule(w http.ResponseWriter, r *http.Request) {
	var req projectionRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	dates, err := s.Maintenance.Project(req.StartDate.Time, servicesToDomain(req.Services), req.Years)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, projectedToResponse(dates))
}

func (req equipmentRequest) toDomain(id int64) domain.Equipment {
	return domain.Equipment{
		ID:           id,
		Name:         req.Name,
		SerialNumber: req.SerialNumber,
		Location:     req.Location,
		StartDate:    req.StartDate.Time,
		Services:     servicesToDomain(req.Services),
	}
}

func servicesToDomain(in []serviceDefinitionBody) []domain.ServiceDefinition {
	out := make([]domain.ServiceDefinition, len(in))
	for i, svc := range in {
		out[i] = domain.ServiceDefinition{ID: svc.ID, Name: svc.Name, Frequency: domain.Frequency(svc.Frequency)}
	}
	return out
}

func equipmentToResponse(e domain.Equipment) equipmentResponse {
	services := make([]serviceDefinitionBody, len(e.Services))
	for i, svc := range e.Services {
		services[i] = serviceDefinitionBody{ID: svc.ID, Name: svc.Name, Frequency: string(svc.Frequency)}
	}
	return equipmentResponse{
		ID:           e.ID,
		Name:         e.Name,
		SerialNumber: e.SerialNumber,
		Location:     e.Location,
		StartDate:    openapi_types.Date{Time: e.StartDate},
		Services:     services,
	}
}

func projectedToResponse(dates []domain.ProjectedDate) []projectedDateResponse {
	out := make([]projectedDateResponse, len(dates))
	for i, d := range dates {
		out[i] = projectedDateResponse{
			Service:       d.Service.Name,
			Frequency:     string(d.Service.Frequency),
			OriginalDate:  openapi_types.Date{Time: d.OriginalDate},
			ActualDate:    openapi_types.Date{Time: d.ActualDate},
			WasMoved:      d.WasMoved,
			ActualDisplay: calendar.FormatDate(d.ActualDate),
		}
	}
	return out
}
