package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"cleanbook/internal/domain"
	"cleanbook/internal/modules/pricing"
	"cleanbook/internal/notify"
	"cleanbook/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockStoreResolver struct {
	mock.Mock
}

func (m *MockStoreResolver) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Store), args.Error(1)
}

func (m *MockStoreResolver) GetOrganization(ctx context.Context, id int64) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ServicesByIDs(ctx context.Context, ids []int64) ([]domain.Service, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *MockCatalogRepository) OptionsByIDs(ctx context.Context, ids []int64) ([]domain.ServiceOption, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.ServiceOption), args.Error(1)
}

type MockCommitter struct {
	mock.Mock
}

func (m *MockCommitter) CommitBooking(ctx context.Context, p repository.CommitParams) (int64, int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) SetPaymentOutcome(ctx context.Context, bookingID int64, status domain.BookingStatus, expiresAt *time.Time) error {
	args := m.Called(ctx, bookingID, status, expiresAt)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	args := m.Called(ctx, bookingID, status)
	return args.Error(0)
}

type MockAuditAppender struct {
	mock.Mock
}

func (m *MockAuditAppender) Append(ctx context.Context, rec *domain.AuditRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

type recordingDispatcher struct {
	events []notify.BookingEvent
}

func (d *recordingDispatcher) BookingCreated(_ context.Context, evt notify.BookingEvent) {
	d.events = append(d.events, evt)
}

var fixedNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

type fixture struct {
	stores     *MockStoreResolver
	catalog    *MockCatalogRepository
	committer  *MockCommitter
	bookings   *MockBookingRepository
	audit      *MockAuditAppender
	dispatcher *recordingDispatcher
	service    *Service
}

func newFixture() *fixture {
	f := &fixture{
		stores:     new(MockStoreResolver),
		catalog:    new(MockCatalogRepository),
		committer:  new(MockCommitter),
		bookings:   new(MockBookingRepository),
		audit:      new(MockAuditAppender),
		dispatcher: &recordingDispatcher{},
	}
	f.service = NewService(
		f.stores, f.catalog, f.committer, f.bookings, f.audit, f.dispatcher,
		zerolog.Nop(), pricing.DefaultTravelPaddingMin, domain.PendingPaymentTTL,
	)
	f.service.now = func() time.Time { return fixedNow }
	return f
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		StoreSlug: "downtown",
		Customer: CustomerInput{
			Name:  "Jordan Lee",
			Phone: "+15550100",
			Email: "jordan@example.com",
		},
		StartTime:     time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		PaymentMethod: domain.PayOnSite,
		CartItems:     []domain.CartItem{{ServiceID: 1, Quantity: 2, SelectedOptions: []int64{11}}},
	}
}

func (f *fixture) expectHappyLookups(plan domain.Plan) {
	f.stores.On("GetBySlug", mock.Anything, "downtown").Return(&domain.Store{
		ID: 5, OrganizationID: 9, Slug: "downtown",
	}, nil)
	f.stores.On("GetOrganization", mock.Anything, int64(9)).Return(&domain.Organization{
		ID: 9, Plan: plan,
	}, nil)
	f.catalog.On("ServicesByIDs", mock.Anything, []int64{1}).Return([]domain.Service{
		{ID: 1, Price: 5000, DurationMin: 60, BufferMin: 10},
	}, nil)
	f.catalog.On("OptionsByIDs", mock.Anything, []int64{11}).Return([]domain.ServiceOption{
		{ID: 11, ServiceID: 1, Price: 1000, DurationMin: 15},
	}, nil)
}

func TestCreateBooking_PayOnSiteConfirmed(t *testing.T) {
	f := newFixture()
	f.expectHappyLookups(domain.PlanFree)
	f.committer.On("CommitBooking", mock.Anything, mock.Anything).Return(int64(42), int64(7), nil)
	f.bookings.On("SetPaymentOutcome", mock.Anything, int64(42), domain.BookingConfirmed, (*time.Time)(nil)).Return(nil)
	f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), result.BookingID)
	assert.Equal(t, int64(7), result.CustomerID)
	assert.Equal(t, domain.BookingConfirmed, result.Status)
	assert.Nil(t, result.ExpiresAt)
	assert.Equal(t, 12000, result.TotalAmount)
	assert.Equal(t, 200, result.TotalDurationMin)
	assert.Equal(t, result.StartTime.Add(200*time.Minute), result.EndTime)
	f.committer.AssertExpectations(t)
	f.bookings.AssertExpectations(t)
}

func TestCreateBooking_OnlinePaymentPendingWithExpiry(t *testing.T) {
	f := newFixture()
	f.expectHappyLookups(domain.PlanFree)
	f.committer.On("CommitBooking", mock.Anything, mock.Anything).Return(int64(42), int64(7), nil)
	wantExpiry := fixedNow.Add(domain.PendingPaymentTTL)
	f.bookings.On("SetPaymentOutcome", mock.Anything, int64(42), domain.BookingPendingPayment, &wantExpiry).Return(nil)
	f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.PaymentMethod = domain.PayOnlineCard

	result, err := f.service.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPendingPayment, result.Status)
	require.NotNil(t, result.ExpiresAt)
	assert.Equal(t, wantExpiry, *result.ExpiresAt)
}

func TestCreateBooking_StoreNotFound(t *testing.T) {
	f := newFixture()
	f.stores.On("GetBySlug", mock.Anything, "downtown").Return(nil, gorm.ErrRecordNotFound)

	_, err := f.service.CreateBooking(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStoreNotFound)
	f.committer.AssertNotCalled(t, "CommitBooking", mock.Anything, mock.Anything)
}

func TestCreateBooking_UnknownServiceAbortsBeforeCommit(t *testing.T) {
	f := newFixture()
	f.stores.On("GetBySlug", mock.Anything, "downtown").Return(&domain.Store{ID: 5, OrganizationID: 9, Slug: "downtown"}, nil)
	f.stores.On("GetOrganization", mock.Anything, int64(9)).Return(&domain.Organization{ID: 9}, nil)
	f.catalog.On("ServicesByIDs", mock.Anything, []int64{1}).Return([]domain.Service{}, nil)
	f.catalog.On("OptionsByIDs", mock.Anything, []int64{11}).Return([]domain.ServiceOption{}, nil)

	_, err := f.service.CreateBooking(context.Background(), validRequest())
	assert.ErrorIs(t, err, pricing.ErrUnknownService)
	f.committer.AssertNotCalled(t, "CommitBooking", mock.Anything, mock.Anything)
}

func TestCreateBooking_CapacityConflictBubblesUp(t *testing.T) {
	f := newFixture()
	f.expectHappyLookups(domain.PlanFree)
	f.committer.On("CommitBooking", mock.Anything, mock.Anything).
		Return(int64(0), int64(0), repository.ErrCapacityExceeded)

	_, err := f.service.CreateBooking(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	f.bookings.AssertNotCalled(t, "SetPaymentOutcome", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_AuditFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture()
	f.expectHappyLookups(domain.PlanFree)
	f.committer.On("CommitBooking", mock.Anything, mock.Anything).Return(int64(42), int64(7), nil)
	f.bookings.On("SetPaymentOutcome", mock.Anything, int64(42), domain.BookingConfirmed, (*time.Time)(nil)).Return(nil)
	f.audit.On("Append", mock.Anything, mock.Anything).Return(errors.New("audit store down"))

	result, err := f.service.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(42), result.BookingID)
}

func TestCreateBooking_NotificationsGatedByPlan(t *testing.T) {
	f := newFixture()
	f.expectHappyLookups(domain.PlanFree)
	f.committer.On("CommitBooking", mock.Anything, mock.Anything).Return(int64(42), int64(7), nil)
	f.bookings.On("SetPaymentOutcome", mock.Anything, int64(42), domain.BookingConfirmed, (*time.Time)(nil)).Return(nil)
	f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)

	_, err := f.service.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, f.dispatcher.events)
}

func TestCreateBooking_NotificationsDispatchedOnPaidPlan(t *testing.T) {
	f := newFixture()
	f.expectHappyLookups(domain.PlanPro)
	f.committer.On("CommitBooking", mock.Anything, mock.Anything).Return(int64(42), int64(7), nil)
	f.bookings.On("SetPaymentOutcome", mock.Anything, int64(42), domain.BookingConfirmed, (*time.Time)(nil)).Return(nil)
	f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)

	_, err := f.service.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, f.dispatcher.events, 1)
	evt := f.dispatcher.events[0]
	assert.Equal(t, int64(42), evt.BookingID)
	assert.Equal(t, int64(7), evt.CustomerID)
	assert.True(t, evt.CalendarSyncEnabled)
}

func TestCreateBooking_Validation(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.CartItems = nil
	_, err := f.service.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)

	req = validRequest()
	req.Customer.Phone = "  "
	_, err = f.service.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCancelBooking_FeeAndStatus(t *testing.T) {
	f := newFixture()
	start := fixedNow.Add(30 * time.Hour)
	f.bookings.On("GetByID", mock.Anything, int64(42)).Return(&domain.Booking{
		ID: 42, StoreID: 5, StartTime: start, TotalAmount: 10000,
		Status: domain.BookingConfirmed,
	}, nil)
	f.bookings.On("UpdateStatus", mock.Anything, int64(42), domain.BookingCancelled).Return(nil)
	f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.CancelBooking(context.Background(), 42)
	require.NoError(t, err)
	// 30h before start falls in the 30% tier.
	assert.Equal(t, 3000, result.Fee)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(42)).Return(&domain.Booking{
		ID: 42, Status: domain.BookingCancelled,
	}, nil)

	_, err := f.service.CancelBooking(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotCancelable)
	f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
