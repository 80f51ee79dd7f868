package service

import (
	"context"
	"fmt"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/repo"
)

// OrganizationService implements business logic for organizations trips
// may be sent to.
type OrganizationService struct {
	store repo.Store
}

// NewOrganizationService constructs an OrganizationService backed by the provided Store.
func NewOrganizationService(store repo.Store) *OrganizationService {
	return &OrganizationService{store: store}
}

func (s *OrganizationService) Create(ctx context.Context, o domain.Organization) (domain.Organization, error) {
	o = o.Normalize()
	if err := o.Validate(); err != nil {
		return domain.Organization{}, err
	}
	result, err := s.store.Organizations().Create(ctx, o)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("service.OrganizationService.Create: %w", err)
	}
	return result, nil
}

func (s *OrganizationService) GetByID(ctx context.Context, id int64) (domain.Organization, error) {
	result, err := s.store.Organizations().GetByID(ctx, id)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("service.OrganizationService.GetByID: %w", err)
	}
	return result, nil
}

func (s *OrganizationService) List(ctx context.Context) ([]domain.Organization, error) {
	orgs, err := s.store.Organizations().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.OrganizationService.List: %w", err)
	}
	if orgs == nil {
		return []domain.Organization{}, nil
	}
	return orgs, nil
}

func (s *OrganizationService) Update(ctx context.Context, o domain.Organization) (domain.Organization, error) {
	o = o.Normalize()
	if err := o.Validate(); err != nil {
		return domain.Organization{}, err
	}
	result, err := s.store.Organizations().Update(ctx, o)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("service.OrganizationService.Update: %w", err)
	}
	return result, nil
}

// Delete returns domain.ErrInUse while trips reference the organization.
func (s *OrganizationService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Organizations().Delete(ctx, id); err != nil {
		return fmt.Errorf("service.OrganizationService.Delete: %w", err)
	}
	return nil
}
