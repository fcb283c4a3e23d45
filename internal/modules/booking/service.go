package booking

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"cleanbook/internal/domain"
	"cleanbook/internal/modules/pricing"
	"cleanbook/internal/notify"
	"cleanbook/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Service struct {
	stores     StoreResolver
	catalog    CatalogRepository
	committer  BookingCommitter
	bookings   BookingRepository
	audit      AuditAppender
	dispatcher notify.Dispatcher
	log        zerolog.Logger

	travelPaddingMin int
	pendingTTL       time.Duration
	now              func() time.Time
}

func NewService(
	stores StoreResolver,
	catalog CatalogRepository,
	committer BookingCommitter,
	bookings BookingRepository,
	audit AuditAppender,
	dispatcher notify.Dispatcher,
	log zerolog.Logger,
	travelPaddingMin int,
	pendingTTL time.Duration,
) *Service {
	if travelPaddingMin <= 0 {
		travelPaddingMin = pricing.DefaultTravelPaddingMin
	}
	if pendingTTL <= 0 {
		pendingTTL = domain.PendingPaymentTTL
	}
	return &Service{
		stores:           stores,
		catalog:          catalog,
		committer:        committer,
		bookings:         bookings,
		audit:            audit,
		dispatcher:       dispatcher,
		log:              log,
		travelPaddingMin: travelPaddingMin,
		pendingTTL:       pendingTTL,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// CreateBooking is the end-to-end use case: resolve, price, commit through
// the transactional procedure, finalize payment-dependent status, then fire
// best-effort side effects. Capacity is enforced only inside the commit
// procedure; on conflict the caller gets ErrCapacityExceeded and must
// re-check availability before retrying.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	store, err := s.stores.GetBySlug(ctx, req.StoreSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	org, err := s.stores.GetOrganization(ctx, store.OrganizationID)
	if err != nil {
		return nil, err
	}

	services, err := s.catalog.ServicesByIDs(ctx, serviceIDs(req.CartItems))
	if err != nil {
		return nil, err
	}
	options, err := s.catalog.OptionsByIDs(ctx, optionIDs(req.CartItems))
	if err != nil {
		return nil, err
	}

	quote, err := pricing.BuildQuote(req.CartItems, services, options, s.travelPaddingMin)
	if err != nil {
		// Pricing validation failures propagate unchanged.
		return nil, err
	}

	start := req.StartTime.UTC()
	end := start.Add(time.Duration(quote.TotalDurationMin) * time.Minute)

	bookingID, customerID, err := s.committer.CommitBooking(ctx, repository.CommitParams{
		StoreSlug:     store.Slug,
		CustomerName:  strings.TrimSpace(req.Customer.Name),
		CustomerPhone: strings.TrimSpace(req.Customer.Phone),
		CustomerEmail: strings.ToLower(strings.TrimSpace(req.Customer.Email)),
		CustomerAddr:  strings.TrimSpace(req.Customer.Address),
		BookingTime:   start,
		Items:         req.CartItems,
	})
	if err != nil {
		return nil, err
	}

	status := domain.BookingConfirmed
	var expiresAt *time.Time
	if req.PaymentMethod == domain.PayOnlineCard {
		status = domain.BookingPendingPayment
		t := s.now().Add(s.pendingTTL)
		expiresAt = &t
	}
	if err := s.bookings.SetPaymentOutcome(ctx, bookingID, status, expiresAt); err != nil {
		return nil, err
	}

	s.appendAudit(ctx, store, bookingID, "booking.created", map[string]any{
		"payment_method": req.PaymentMethod,
		"total_amount":   quote.TotalAmount,
		"duration_min":   quote.TotalDurationMin,
	})

	if s.dispatcher != nil && org.NotificationsEnabled() {
		s.dispatcher.BookingCreated(ctx, notify.BookingEvent{
			BookingID:           bookingID,
			StoreID:             store.ID,
			OrganizationID:      org.ID,
			CustomerID:          customerID,
			CustomerName:        req.Customer.Name,
			ChannelUserID:       req.Customer.ChannelUserID,
			StaffID:             req.StaffID,
			StartTime:           start,
			EndTime:             end,
			TotalAmount:         quote.TotalAmount,
			Status:              string(status),
			CalendarSyncEnabled: org.CalendarSyncEnabled(),
		})
	}

	return &CreateBookingResult{
		BookingID:        bookingID,
		CustomerID:       customerID,
		StoreID:          store.ID,
		OrganizationID:   org.ID,
		Status:           status,
		StartTime:        start,
		EndTime:          end,
		ExpiresAt:        expiresAt,
		TotalAmount:      quote.TotalAmount,
		TotalDurationMin: quote.TotalDurationMin,
		Breakdown:        quote.Items,
	}, nil
}

// CancellationFee quotes what cancelling now would cost, without changing
// anything.
func (s *Service) CancellationFee(ctx context.Context, bookingID int64) (int, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return pricing.CancellationFee(b.TotalAmount, b.StartTime, s.now(), nil), nil
}

// CancelBooking cancels and returns the fee owed under the default policy.
func (s *Service) CancelBooking(ctx context.Context, bookingID int64) (*CancelBookingResult, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.Status == domain.BookingCancelled || b.Status == domain.BookingCompleted {
		return nil, ErrNotCancelable
	}

	fee := pricing.CancellationFee(b.TotalAmount, b.StartTime, s.now(), nil)
	if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingCancelled); err != nil {
		return nil, err
	}

	s.appendAudit(ctx, &domain.Store{ID: b.StoreID}, bookingID, "booking.cancelled", map[string]any{
		"fee": fee,
	})

	return &CancelBookingResult{BookingID: bookingID, Fee: fee}, nil
}

// appendAudit is best-effort: a failed write is logged and forgotten.
func (s *Service) appendAudit(ctx context.Context, store *domain.Store, bookingID int64, action string, detail map[string]any) {
	if s.audit == nil {
		return
	}
	raw, _ := json.Marshal(detail)
	rec := &domain.AuditRecord{
		OrganizationID: store.OrganizationID,
		StoreID:        store.ID,
		BookingID:      bookingID,
		Action:         action,
		Detail:         raw,
	}
	if err := s.audit.Append(ctx, rec); err != nil {
		s.log.Warn().Err(err).Int64("booking_id", bookingID).Str("action", action).
			Msg("audit append failed")
	}
}

func validateRequest(req CreateBookingRequest) error {
	if req.StoreSlug == "" || req.StartTime.IsZero() || len(req.CartItems) == 0 {
		return ErrValidation
	}
	if strings.TrimSpace(req.Customer.Name) == "" || strings.TrimSpace(req.Customer.Phone) == "" {
		return ErrValidation
	}
	if req.PaymentMethod != domain.PayOnSite && req.PaymentMethod != domain.PayOnlineCard {
		return ErrValidation
	}
	return nil
}

func serviceIDs(items []domain.CartItem) []int64 {
	seen := make(map[int64]bool, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if !seen[it.ServiceID] {
			seen[it.ServiceID] = true
			ids = append(ids, it.ServiceID)
		}
	}
	return ids
}

func optionIDs(items []domain.CartItem) []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for _, it := range items {
		for _, id := range it.SelectedOptions {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
