package availability

import (
	"context"
	"time"

	"cleanbook/internal/domain"
)

type StoreRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
}

type CatalogRepository interface {
	ServicesByStore(ctx context.Context, storeID int64) ([]domain.Service, error)
	OptionsByStore(ctx context.Context, storeID int64) ([]domain.ServiceOption, error)
}

type BookingRepository interface {
	// ActiveInRange returns the store's non-cancelled bookings whose time
	// range intersects [from, to]. Expiry filtering is the engines' job.
	ActiveInRange(ctx context.Context, storeID int64, from, to time.Time) ([]domain.Booking, error)
}

type ShiftRepository interface {
	PublishedInRange(ctx context.Context, storeID int64, from, to time.Time) ([]domain.Shift, error)
}
