// Package handler implements the HTTP handlers for the HR operations API.
// All handlers are methods on Server. They are split into resource-specific
// files (trip.go, vacation.go, etc.) but share the same Server struct so they
// can access its dependencies. NewRouter wires them onto a chi router.
package handler

import (
	"context"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/hr-ops/internal/calendar"
	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/events"
)

// The servicer interfaces below are defined here, in the consumer package,
// so handler tests can inject func-field mocks without a database.

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id int64) (domain.Trip, error)
	List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id int64) error
	FindConflictingEmployee(ctx context.Context, employeeIDs []int64, r domain.DateRange, opts domain.ConflictOptions) (*domain.ConflictingEmployee, error)
}

// VacationServicer defines the business operations the vacation handlers depend on.
type VacationServicer interface {
	Create(ctx context.Context, v domain.Vacation) (domain.Vacation, error)
	GetByID(ctx context.Context, id int64) (domain.Vacation, error)
	List(ctx context.Context, employeeID *int64) ([]domain.Vacation, error)
	Update(ctx context.Context, v domain.Vacation) (domain.Vacation, error)
	Delete(ctx context.Context, id int64) error
}

// EmployeeServicer defines the business operations the employee handlers depend on.
type EmployeeServicer interface {
	Create(ctx context.Context, e domain.Employee) (domain.Employee, error)
	GetByID(ctx context.Context, id int64) (domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, e domain.Employee) (domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	Profile(ctx context.Context, id int64) (domain.EmployeeProfile, error)
	Trips(ctx context.Context, id int64) ([]domain.Trip, error)
}

// OrganizationServicer defines the business operations the organization handlers depend on.
type OrganizationServicer interface {
	Create(ctx context.Context, o domain.Organization) (domain.Organization, error)
	GetByID(ctx context.Context, id int64) (domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
	Update(ctx context.Context, o domain.Organization) (domain.Organization, error)
	Delete(ctx context.Context, id int64) error
}

// MaintenanceServicer defines the equipment and projection operations.
type MaintenanceServicer interface {
	Create(ctx context.Context, e domain.Equipment) (domain.Equipment, error)
	GetByID(ctx context.Context, id int64) (domain.Equipment, error)
	List(ctx context.Context) ([]domain.Equipment, error)
	Update(ctx context.Context, e domain.Equipment) (domain.Equipment, error)
	Delete(ctx context.Context, id int64) error
	Schedule(ctx context.Context, id int64, years int) ([]domain.ProjectedDate, error)
	Project(start time.Time, services []domain.ServiceDefinition, years int) ([]domain.ProjectedDate, error)
}

// SignatureServicer defines the digital signature register operations.
type SignatureServicer interface {
	Create(ctx context.Context, s domain.DigitalSignature) (domain.DigitalSignature, error)
	GetByID(ctx context.Context, id int64) (domain.DigitalSignature, error)
	List(ctx context.Context) ([]domain.DigitalSignature, error)
	Update(ctx context.Context, s domain.DigitalSignature) (domain.DigitalSignature, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (domain.ExpiryStats, error)
}

// VerificationServicer defines the verification schedule operations.
type VerificationServicer interface {
	Create(ctx context.Context, m domain.MeasuringInstrument) (domain.MeasuringInstrument, error)
	GetByID(ctx context.Context, id int64) (domain.MeasuringInstrument, error)
	List(ctx context.Context) ([]domain.MeasuringInstrument, error)
	Update(ctx context.Context, m domain.MeasuringInstrument) (domain.MeasuringInstrument, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (domain.ExpiryStats, error)
}

// RecordsServicer serves the cached per-employee summary.
type RecordsServicer interface {
	Records(ctx context.Context) ([]domain.EmployeeRecord, error)
	Invalidate()
}

// EventBroker publishes change notifications and hands out subscriptions.
type EventBroker interface {
	Publish(eventType string) events.Event
	Subscribe() (<-chan events.Event, func())
}

// Services bundles the Server's dependencies.
type Services struct {
	Trips         TripServicer
	Vacations     VacationServicer
	Employees     EmployeeServicer
	Organizations OrganizationServicer
	Maintenance   MaintenanceServicer
	Signatures    SignatureServicer
	Verification  VerificationServicer
	Records       RecordsServicer
	Events        EventBroker
	Calendar      *calendar.Calendar
}

// Server holds every dependency the HTTP handlers need.
type Server struct {
	Services

	log       *slog.Logger
	validate  *validator.Validate
	now       func() time.Time
	heartbeat time.Duration
}

// defaultHeartbeat is how often an idle event stream receives a comment line
// so proxies keep the connection open.
const defaultHeartbeat = 25 * time.Second

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, log *slog.Logger) *Server {
	v := validator.New()
	// Report JSON field names, not Go field names, in validation messages.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if svc.Calendar == nil {
		svc.Calendar = calendar.Default()
	}
	return &Server{
		Services:  svc,
		log:       log,
		validate:  v,
		now:       time.Now,
		heartbeat: defaultHeartbeat,
	}
}

// changed runs the post-write collaborators: the records cache is dropped
// for data that feeds it and subscribers are notified.
func (s *Server) changed(eventType string) {
	switch eventType {
	case events.TripsUpdated, events.VacationsUpdated, events.EmployeesUpdated:
		if s.Records != nil {
			s.Records.Invalidate()
		}
	}
	if s.Events != nil {
		s.Events.Publish(eventType)
	}
}
