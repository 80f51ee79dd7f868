package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/events"
	"github.com/pkordes/hr-ops/internal/handler"
)

func TestCreateEquipment_201(t *testing.T) {
	records := &mockRecordsServicer{}
	broker := &recordingBroker{}
	svc := &mockMaintenanceServicer{
		create: func(_ context.Context, e domain.Equipment) (domain.Equipment, error) {
			require.Len(t, e.Services, 1)
			assert.Equal(t, domain.FrequencyQuarterly, e.Services[0].Frequency)
			e.ID = 2
			e.Services[0].ID = 10
			e.Services[0].EquipmentID = 2
			return e, nil
		},
	}
	h := newHTTPHandler(handler.Services{Maintenance: svc, Records: records, Events: broker})

	rec := do(h, http.MethodPost, "/maintenance/equipment", jsonBody(t, map[string]any{
		"name":          "Boiler",
		"serial_number": "B-1",
		"start_date":    "2025-01-15",
		"services":      []map[string]any{{"name": "Inspection", "frequency": "quarterly"}},
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":2,"name":"Boiler","serial_number":"B-1","location":"","start_date":"2025-01-15",
		"services":[{"id":10,"name":"Inspection","frequency":"quarterly"}]}`, rec.Body.String())
	assert.Equal(t, []string{events.MaintenanceUpdated}, broker.types())
	assert.Zero(t, records.invalidations, "maintenance does not feed the records summary")
}

func TestCreateEquipment_422_UnknownFrequency(t *testing.T) {
	h := newHTTPHandler(handler.Services{Maintenance: &mockMaintenanceServicer{}})

	rec := do(h, http.MethodPost, "/maintenance/equipment", jsonBody(t, map[string]any{
		"name":       "Boiler",
		"start_date": "2025-01-15",
		"services":   []map[string]any{{"name": "Inspection", "frequency": "weekly"}},
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "frequency")
}

func TestGetSchedule_PassesYears(t *testing.T) {
	svc := &mockMaintenanceServicer{
		schedule: func(_ context.Context, id int64, years int) ([]domain.ProjectedDate, error) {
			assert.Equal(t, int64(2), id)
			assert.Equal(t, 3, years)
			return []domain.ProjectedDate{{
				OriginalDate: day(2025, 5, 3),
				ActualDate:   day(2025, 4, 30),
				WasMoved:     true,
				Service:      domain.ServiceDefinition{Name: "Inspection", Frequency: domain.FrequencyQuarterly},
			}}, nil
		},
	}
	h := newHTTPHandler(handler.Services{Maintenance: svc})

	rec := do(h, http.MethodGet, "/maintenance/equipment/2/schedule?years=3", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"service":"Inspection","frequency":"quarterly","original_date":"2025-05-03",
		"actual_date":"2025-04-30","was_moved":true,"actual_display":"30.04"}]`, rec.Body.String())
}

func TestGetSchedule_DefaultYears(t *testing.T) {
	svc := &mockMaintenanceServicer{
		schedule: func(_ context.Context, _ int64, years int) ([]domain.ProjectedDate, error) {
			assert.Zero(t, years)
			return []domain.ProjectedDate{}, nil
		},
	}
	h := newHTTPHandler(handler.Services{Maintenance: svc})

	rec := do(h, http.MethodGet, "/maintenance/equipment/2/schedule", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetSchedule_404(t *testing.T) {
	svc := &mockMaintenanceServicer{
		schedule: func(_ context.Context, _ int64, _ int) ([]domain.ProjectedDate, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := newHTTPHandler(handler.Services{Maintenance: svc})

	rec := do(h, http.MethodGet, "/maintenance/equipment/2/schedule", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "equipment not found", decodeError(t, rec).Message)
}

func TestProjectSchedule_200(t *testing.T) {
	svc := &mockMaintenanceServicer{
		project: func(start time.Time, services []domain.ServiceDefinition, years int) ([]domain.ProjectedDate, error) {
			assert.Equal(t, day(2025, 1, 1), start)
			assert.Equal(t, 1, years)
			require.Len(t, services, 1)
			return []domain.ProjectedDate{{OriginalDate: day(2026, 1, 1), ActualDate: day(2025, 12, 31), WasMoved: true, Service: services[0]}}, nil
		},
	}
	h := newHTTPHandler(handler.Services{Maintenance: svc})

	rec := do(h, http.MethodPost, "/maintenance/projection", jsonBody(t, map[string]any{
		"start_date": "2025-01-01",
		"years":      1,
		"services":   []map[string]any{{"name": "Audit", "frequency": "annual"}},
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "2025-12-31", resp[0]["actual_date"])
}

func TestProjectSchedule_422_YearsOutOfRange(t *testing.T) {
	svc := &mockMaintenanceServicer{
		project: func(_ time.Time, _ []domain.ServiceDefinition, _ int) ([]domain.ProjectedDate, error) {
			return nil, fmt.Errorf("%w: years must be between 1 and 100", domain.ErrValidation)
		},
	}
	h := newHTTPHandler(handler.Services{Maintenance: svc})

	rec := do(h, http.MethodPost, "/maintenance/projection", jsonBody(t, map[string]any{
		"start_date": "2025-01-01",
		"years":      500,
		"services":   []map[string]any{{"name": "Audit", "frequency": "annual"}},
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "years must be between 1 and 100", decodeError(t, rec).Message)
}

func TestProjectSchedule_422_NoServices(t *testing.T) {
	h := newHTTPHandler(handler.Services{Maintenance: &mockMaintenanceServicer{}})

	rec := do(h, http.MethodPost, "/maintenance/projection", jsonBody(t, map[string]any{
		"start_date": "2025-01-01",
		"services":   []map[string]any{},
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
