package availability

import (
	"context"
	"errors"
	"time"

	"cleanbook/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	stores   StoreRepository
	catalog  CatalogRepository
	bookings BookingRepository
	shifts   ShiftRepository
	cache    *Cache

	intervalMin      int
	travelPaddingMin int
}

func NewService(
	stores StoreRepository,
	catalog CatalogRepository,
	bookings BookingRepository,
	shifts ShiftRepository,
	cache *Cache,
	intervalMin int,
	travelPaddingMin int,
) *Service {
	return &Service{
		stores:           stores,
		catalog:          catalog,
		bookings:         bookings,
		shifts:           shifts,
		cache:            cache,
		intervalMin:      intervalMin,
		travelPaddingMin: travelPaddingMin,
	}
}

// ForDate computes the bookable slots for a store, date and cart. The whole
// computation runs against one snapshot read; no locks are taken and the
// result is advisory only, since the commit procedure re-checks capacity
// authoritatively.
func (s *Service) ForDate(ctx context.Context, slug, dateStr string, items []domain.CartItem) (*Result, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	store, err := s.stores.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	key := CacheKey(store.ID, dateStr, items)
	if res, ok := s.cache.Get(ctx, key); ok {
		return res, nil
	}

	services, err := s.catalog.ServicesByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	options, err := s.catalog.OptionsByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	dayStart := date
	dayEnd := date.Add(24 * time.Hour)
	bookings, err := s.bookings.ActiveInRange(ctx, store.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	snap := Snapshot{
		Store:            store,
		Date:             date,
		Items:            items,
		Services:         services,
		Options:          options,
		Bookings:         bookings,
		Now:              time.Now().UTC(),
		IntervalMin:      s.intervalMin,
		TravelPaddingMin: s.travelPaddingMin,
	}

	if store.SlotMode() == domain.AvailabilityStaffShift {
		snap.Shifts, err = s.shifts.PublishedInRange(ctx, store.ID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
	}

	res, err := ForStore(store).Slots(snap)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, res)
	return res, nil
}
