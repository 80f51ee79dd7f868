package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/hr-ops/internal/middleware"
)

// RouterOptions tunes the middleware stack.
type RouterOptions struct {
	CORSOrigins    []string
	MaxBodyBytes   int64
	RequestTimeout time.Duration // 0 disables the per-request timeout
}

// NewRouter registers every route on a chi router.
// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS.
// The event stream is long-lived, so the body limit and request timeout only
// wrap the regular API group.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(s.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(opts.CORSOrigins))

	r.Get("/events", s.streamEvents)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewMaxBodySizeHandler(opts.MaxBodyBytes))
		if opts.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(opts.RequestTimeout))
		}

		r.Get("/healthz", s.getHealth)
		r.Get("/openapi.yaml", s.getOpenAPI)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", s.listEmployees)
			r.Post("/", s.createEmployee)
			r.Get("/{id}", s.getEmployee)
			r.Put("/{id}", s.updateEmployee)
			r.Delete("/{id}", s.deleteEmployee)
			r.Get("/{id}/profile", s.getEmployeeProfile)
			r.Get("/{id}/trips", s.getEmployeeTrips)
		})

		r.Route("/organizations", func(r chi.Router) {
			r.Get("/", s.listOrganizations)
			r.Post("/", s.createOrganization)
			r.Get("/{id}", s.getOrganization)
			r.Put("/{id}", s.updateOrganization)
			r.Delete("/{id}", s.deleteOrganization)
		})

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.listTrips)
			r.Post("/", s.createTrip)
			r.Get("/conflicts", s.findConflict)
			r.Get("/{id}", s.getTrip)
			r.Put("/{id}", s.updateTrip)
			r.Delete("/{id}", s.deleteTrip)
		})

		r.Route("/vacations", func(r chi.Router) {
			r.Get("/", s.listVacations)
			r.Post("/", s.createVacation)
			r.Get("/{id}", s.getVacation)
			r.Put("/{id}", s.updateVacation)
			r.Delete("/{id}", s.deleteVacation)
		})

		r.Route("/maintenance", func(r chi.Router) {
			r.Get("/equipment", s.listEquipment)
			r.Post("/equipment", s.createEquipment)
			r.Get("/equipment/{id}", s.getEquipment)
			r.Put("/equipment/{id}", s.updateEquipment)
			r.Delete("/equipment/{id}", s.deleteEquipment)
			r.Get("/equipment/{id}/schedule", s.getSchedule)
			r.Post("/projection", s.projectSchedule)
		})

		r.Route("/eds", func(r chi.Router) {
			r.Get("/", s.listSignatures)
			r.Post("/", s.createSignature)
			r.Get("/stats", s.getSignatureStats)
			r.Get("/{id}", s.getSignature)
			r.Put("/{id}", s.updateSignature)
			r.Delete("/{id}", s.deleteSignature)
		})

		r.Route("/verification", func(r chi.Router) {
			r.Get("/equipment", s.listInstruments)
			r.Post("/equipment", s.createInstrument)
			r.Get("/equipment/{id}", s.getInstrument)
			r.Put("/equipment/{id}", s.updateInstrument)
			r.Delete("/equipment/{id}", s.deleteInstrument)
			r.Get("/stats", s.getVerificationStats)
		})

		r.Get("/calendar/holidays", s.listHolidays)
		r.Get("/records", s.getRecords)
	})
	return r
}
