package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/repo"
)

// RecordsService serves the per-employee trip/vacation summary from an
// in-memory cache. Writers call Invalidate after every successful change;
// the next read recomputes the summary once, however many callers wait on it.
type RecordsService struct {
	store repo.Store
	log   *slog.Logger
	now   func() time.Time

	group singleflight.Group

	mu         sync.Mutex
	generation uint64
	cached     []domain.EmployeeRecord
	cachedDay  time.Time
}

// NewRecordsService constructs a RecordsService. now supplies "today" for the
// on-trip / on-vacation flags; nil means time.Now.
func NewRecordsService(store repo.Store, log *slog.Logger, now func() time.Time) *RecordsService {
	if now == nil {
		now = time.Now
	}
	return &RecordsService{store: store, log: log, now: now}
}

// Records returns the cached summary, recomputing it after an invalidation
// or when the calendar day has changed.
func (s *RecordsService) Records(ctx context.Context) ([]domain.EmployeeRecord, error) {
	today := domain.Day(s.now())

	s.mu.Lock()
	if s.cached != nil && s.cachedDay.Equal(today) {
		records := s.cached
		s.mu.Unlock()
		return records, nil
	}
	gen := s.generation
	s.mu.Unlock()

	// Keyed by generation so a load that started before an invalidation is
	// never handed to callers that arrive after it.
	v, err, _ := s.group.Do(strconv.FormatUint(gen, 10), func() (any, error) {
		s.mu.Lock()
		if s.generation == gen && s.cached != nil && s.cachedDay.Equal(today) {
			records := s.cached
			s.mu.Unlock()
			return records, nil
		}
		s.mu.Unlock()

		records, err := s.compute(context.WithoutCancel(ctx), today)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if s.generation == gen {
			s.cached = records
			s.cachedDay = today
		}
		s.mu.Unlock()
		s.log.Debug("records summary loaded", "employees", len(records), "generation", gen)
		return records, nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.RecordsService.Records: %w", err)
	}
	return v.([]domain.EmployeeRecord), nil
}

// Invalidate drops the cached summary.
func (s *RecordsService) Invalidate() {
	s.mu.Lock()
	s.generation++
	s.cached = nil
	s.mu.Unlock()
}

func (s *RecordsService) compute(ctx context.Context, today time.Time) ([]domain.EmployeeRecord, error) {
	employees, err := s.store.Employees().List(ctx)
	if err != nil {
		return nil, err
	}
	trips, err := s.store.Trips().List(ctx, domain.TripFilter{})
	if err != nil {
		return nil, err
	}
	vacations, err := s.store.Vacations().List(ctx, nil)
	if err != nil {
		return nil, err
	}

	records := make([]domain.EmployeeRecord, len(employees))
	index := make(map[int64]*domain.EmployeeRecord, len(employees))
	for i, e := range employees {
		records[i] = domain.EmployeeRecord{Employee: e}
		index[e.ID] = &records[i]
	}

	for _, t := range trips {
		r := t.Range()
		for _, id := range t.ParticipantIDs {
			rec, ok := index[id]
			if !ok {
				continue
			}
			rec.TripCount++
			rec.TripDays += r.Days()
			if r.Contains(today) {
				rec.OnTrip = true
			}
		}
	}
	for _, v := range vacations {
		rec, ok := index[v.EmployeeID]
		if !ok {
			continue
		}
		r := v.Range()
		rec.VacationCount++
		rec.VacationDays += r.Days()
		if r.Contains(today) {
			rec.OnVacation = true
		}
	}
	return records, nil
}
