package booking

import (
	"context"
	"time"

	"cleanbook/internal/domain"
	"cleanbook/internal/repository"
)

type StoreResolver interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	GetOrganization(ctx context.Context, id int64) (*domain.Organization, error)
}

type CatalogRepository interface {
	ServicesByIDs(ctx context.Context, ids []int64) ([]domain.Service, error)
	OptionsByIDs(ctx context.Context, ids []int64) ([]domain.ServiceOption, error)
}

// BookingCommitter is the transactional boundary. The procedure behind it is
// the single authority on capacity: the orchestrator never re-checks
// capacity at commit time, only the advisory engines do at read time.
type BookingCommitter interface {
	CommitBooking(ctx context.Context, p repository.CommitParams) (bookingID, customerID int64, err error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SetPaymentOutcome(ctx context.Context, bookingID int64, status domain.BookingStatus, expiresAt *time.Time) error
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error
}

type AuditAppender interface {
	Append(ctx context.Context, rec *domain.AuditRecord) error
}
