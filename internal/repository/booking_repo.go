package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"cleanbook/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrCapacityExceeded is the commit-time conflict: the transactional
// procedure refused the insert because the slot filled up between the
// advisory availability read and the commit.
var ErrCapacityExceeded = errors.New("capacity exceeded")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CommitParams is the input of the commit_booking stored procedure. The
// procedure upserts the customer, re-checks capacity under row locks inside
// its own transaction and inserts the booking row; this call is the only
// authoritative capacity enforcement in the system.
type CommitParams struct {
	StoreSlug     string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	CustomerAddr  string
	BookingTime   time.Time
	Items         []domain.CartItem
}

type commitRow struct {
	BookingID  int64 `gorm:"column:booking_id"`
	CustomerID int64 `gorm:"column:customer_id"`
}

func (r *BookingRepository) CommitBooking(ctx context.Context, p CommitParams) (bookingID, customerID int64, err error) {
	items, err := json.Marshal(p.Items)
	if err != nil {
		return 0, 0, err
	}

	var row commitRow
	tx := r.db.WithContext(ctx).Raw(`
SELECT booking_id, customer_id
FROM commit_booking(?, ?, ?, ?, ?, ?, ?::jsonb)
`, p.StoreSlug, p.CustomerName, p.CustomerPhone, p.CustomerEmail, p.CustomerAddr,
		p.BookingTime.UTC().Format(time.RFC3339), string(items)).Scan(&row)
	if tx.Error != nil {
		return 0, 0, mapCommitError(tx.Error)
	}
	return row.BookingID, row.CustomerID, nil
}

// mapCommitError translates the procedure's refusals into the conflict
// sentinel. The procedure raises P0001 with a capacity_exceeded message;
// the no-overbooking unique index is the belt-and-braces fallback.
func mapCommitError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "P0001" && strings.HasPrefix(pgErr.Message, "capacity_exceeded") {
			return ErrCapacityExceeded
		}
		if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_no_overbooking" {
			return ErrCapacityExceeded
		}
	}
	return err
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	tx := r.db.WithContext(ctx).First(&b, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &b, nil
}

// ActiveInRange returns non-cancelled bookings intersecting [from, to].
// Expired pending_payment rows are intentionally included: logical expiry
// is applied lazily by the availability engines, not in SQL, so that the
// answer never depends on the sweeper having run.
func (r *BookingRepository) ActiveInRange(ctx context.Context, storeID int64, from, to time.Time) ([]domain.Booking, error) {
	var bookings []domain.Booking
	tx := r.db.WithContext(ctx).
		Where("store_id = ? AND status <> ? AND start_time <= ? AND end_time >= ?",
			storeID, domain.BookingCancelled, to, from).
		Order("start_time").
		Find(&bookings)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return bookings, nil
}

// SetPaymentOutcome applies the payment-dependent fields right after commit:
// online payments hold the slot as pending_payment with an expiry, pay-on-site
// confirms immediately.
func (r *BookingRepository) SetPaymentOutcome(ctx context.Context, bookingID int64, status domain.BookingStatus, expiresAt *time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Booking{}).Where("id = ?", bookingID).
		Updates(map[string]any{
			"status":     status,
			"expires_at": expiresAt,
		}).Error
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Booking{}).Where("id = ?", bookingID).
		Update("status", status).Error
}

// CancelExpired physically cancels pending_payment rows whose hold lapsed
// before the cutoff. Availability correctness never depends on this; it is
// pure hygiene for reporting and storage.
func (r *BookingRepository) CancelExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", domain.BookingPendingPayment, cutoff).
		Updates(map[string]any{
			"status":       domain.BookingCancelled,
			"cancelled_at": time.Now().UTC(),
		})
	return tx.RowsAffected, tx.Error
}
