package catalog

import (
	"context"
	"encoding/json"

	"cleanbook/internal/domain"
	"cleanbook/internal/repository"
)

type Service struct {
	storeRepo   *repository.StoreRepository
	catalogRepo *repository.CatalogRepository
}

func NewService(storeRepo *repository.StoreRepository, catalogRepo *repository.CatalogRepository) *Service {
	return &Service{storeRepo: storeRepo, catalogRepo: catalogRepo}
}

// StorePage is the public store view: the store itself plus its active
// services with their options.
func (s *Service) StorePage(ctx context.Context, slug string) (*StorePageResponse, error) {
	store, err := s.storeRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	services, err := s.catalogRepo.ServicesByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	return &StorePageResponse{Store: store, Services: services}, nil
}

func (s *Service) CreateService(ctx context.Context, actor *domain.User, storeID int64, req CreateServiceRequest) (*domain.Service, error) {
	store, err := s.authorizeStore(ctx, actor, storeID)
	if err != nil {
		return nil, err
	}

	svc := &domain.Service{
		StoreID:     store.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		BufferMin:   req.BufferMin,
		Active:      true,
	}
	if err := s.catalogRepo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) CreateOption(ctx context.Context, actor *domain.User, storeID, serviceID int64, req CreateOptionRequest) (*domain.ServiceOption, error) {
	if _, err := s.authorizeStore(ctx, actor, storeID); err != nil {
		return nil, err
	}

	opt := &domain.ServiceOption{
		ServiceID:   serviceID,
		Name:        req.Name,
		Price:       req.Price,
		DurationMin: req.DurationMin,
	}
	if err := s.catalogRepo.CreateOption(ctx, opt); err != nil {
		return nil, err
	}
	return opt, nil
}

// UpdateBusinessHours replaces the top-level schedule. A schedule left
// nested in the settings blob by an older tenant stays there; the top-level
// field shadows it from now on.
func (s *Service) UpdateBusinessHours(ctx context.Context, actor *domain.User, storeID int64, req UpdateHoursRequest) error {
	if _, err := s.authorizeStore(ctx, actor, storeID); err != nil {
		return err
	}
	if err := validateSchedule(req.BusinessHours); err != nil {
		return err
	}
	return s.storeRepo.UpdateBusinessHours(ctx, storeID, req.BusinessHours)
}

func (s *Service) UpdateCapacitySettings(ctx context.Context, actor *domain.User, storeID int64, req UpdateCapacityRequest) (*domain.Store, error) {
	store, err := s.authorizeStore(ctx, actor, storeID)
	if err != nil {
		return nil, err
	}

	maxCapacity := store.MaxCapacity
	if req.MaxCapacity != nil {
		if *req.MaxCapacity < 0 {
			return nil, ErrInvalidCapacity
		}
		maxCapacity = *req.MaxCapacity
	}
	mode := store.SlotMode()
	if req.Mode != nil {
		if *req.Mode != domain.AvailabilityCapacityPool && *req.Mode != domain.AvailabilityStaffShift {
			return nil, ErrInvalidMode
		}
		mode = *req.Mode
	}

	if err := s.storeRepo.UpdateCapacitySettings(ctx, storeID, maxCapacity, mode); err != nil {
		return nil, err
	}
	store.MaxCapacity = maxCapacity
	store.Mode = mode
	return store, nil
}

// authorizeStore loads the store and checks the actor manages it. Staff can
// read but only owners and admins change catalog or settings.
func (s *Service) authorizeStore(ctx context.Context, actor *domain.User, storeID int64) (*domain.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if actor == nil || store.OrganizationID != actor.OrganizationID {
		return nil, ErrForbidden
	}
	if actor.Role != domain.RoleOwner && actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return store, nil
}

var weekdayKeys = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true,
	"fri": true, "sat": true, "sun": true,
}

// validateSchedule rejects blobs that are not weekday-keyed objects. The
// per-day entry shapes are left to the resolver, which treats anything it
// cannot parse as a closed day.
func validateSchedule(raw json.RawMessage) error {
	var byDay map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byDay); err != nil {
		return ErrInvalidHours
	}
	for key := range byDay {
		if !weekdayKeys[key] {
			return ErrInvalidHours
		}
	}
	return nil
}
