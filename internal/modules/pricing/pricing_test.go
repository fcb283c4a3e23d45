package pricing

import (
	"testing"
	"time"

	"cleanbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() ([]domain.Service, []domain.ServiceOption) {
	services := []domain.Service{
		{ID: 1, Price: 5000, DurationMin: 60, BufferMin: 10},
		{ID: 2, Price: 8000, DurationMin: 90},
	}
	options := []domain.ServiceOption{
		{ID: 11, ServiceID: 1, Price: 1000, DurationMin: 15},
		{ID: 12, ServiceID: 1, Price: 500, DurationMin: 5},
	}
	return services, options
}

func TestBuildQuote_SingleLineWithOption(t *testing.T) {
	services, options := catalog()
	items := []domain.CartItem{
		{ServiceID: 1, Quantity: 2, SelectedOptions: []int64{11}},
	}

	q, err := BuildQuote(items, services, options, DefaultTravelPaddingMin)
	require.NoError(t, err)

	// 2×5000 + 2×1000
	assert.Equal(t, 12000, q.TotalAmount)
	// (60+10)×2 + 15×2 + 30
	assert.Equal(t, 200, q.TotalDurationMin)

	require.Len(t, q.Items, 1)
	line := q.Items[0]
	assert.Equal(t, 10000, line.ServicePrice)
	assert.Equal(t, 2000, line.OptionsPrice)
	assert.Equal(t, 12000, line.Subtotal)
	assert.Equal(t, 170, line.DurationMin)
}

func TestBuildQuote_MultipleLinesOnePadding(t *testing.T) {
	services, options := catalog()
	items := []domain.CartItem{
		{ServiceID: 1, Quantity: 1},
		{ServiceID: 2, Quantity: 1},
	}

	q, err := BuildQuote(items, services, options, DefaultTravelPaddingMin)
	require.NoError(t, err)

	assert.Equal(t, 13000, q.TotalAmount)
	// 70 + 90 + one padding
	assert.Equal(t, 190, q.TotalDurationMin)
}

func TestBuildQuote_MultipleOptionsSumIndependently(t *testing.T) {
	services, options := catalog()
	items := []domain.CartItem{
		{ServiceID: 1, Quantity: 3, SelectedOptions: []int64{11, 12}},
	}

	q, err := BuildQuote(items, services, options, DefaultTravelPaddingMin)
	require.NoError(t, err)

	assert.Equal(t, 3*5000+3*1000+3*500, q.TotalAmount)
	assert.Equal(t, 3*70+3*15+3*5+30, q.TotalDurationMin)
}

func TestBuildQuote_EmptyCart(t *testing.T) {
	services, options := catalog()

	q, err := BuildQuote(nil, services, options, DefaultTravelPaddingMin)
	require.NoError(t, err)
	assert.Zero(t, q.TotalAmount)
	assert.Zero(t, q.TotalDurationMin)
	assert.Empty(t, q.Items)
}

func TestBuildQuote_ZeroQuantityLine(t *testing.T) {
	services, options := catalog()
	items := []domain.CartItem{{ServiceID: 1, Quantity: 0, SelectedOptions: []int64{11}}}

	q, err := BuildQuote(items, services, options, DefaultTravelPaddingMin)
	require.NoError(t, err)
	assert.Zero(t, q.TotalAmount)
	// Cart is not empty, so the per-booking padding still applies.
	assert.Equal(t, DefaultTravelPaddingMin, q.TotalDurationMin)
}

func TestBuildQuote_UnknownServiceFatal(t *testing.T) {
	services, options := catalog()
	items := []domain.CartItem{
		{ServiceID: 1, Quantity: 1},
		{ServiceID: 999, Quantity: 1},
	}

	q, err := BuildQuote(items, services, options, DefaultTravelPaddingMin)
	assert.Nil(t, q)
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestBuildQuote_UnknownOptionIgnored(t *testing.T) {
	services, options := catalog()
	items := []domain.CartItem{
		{ServiceID: 1, Quantity: 1, SelectedOptions: []int64{999}},
	}

	q, err := BuildQuote(items, services, options, DefaultTravelPaddingMin)
	require.NoError(t, err)
	assert.Equal(t, 5000, q.TotalAmount)
	assert.Zero(t, q.Items[0].OptionsPrice)
}

func TestBuildQuote_NegativeQuantity(t *testing.T) {
	services, options := catalog()
	items := []domain.CartItem{{ServiceID: 1, Quantity: -1}}

	_, err := BuildQuote(items, services, options, DefaultTravelPaddingMin)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCancellationFee_Tiers(t *testing.T) {
	start := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		cancelAt time.Time
		want     int
	}{
		{"49h before", start.Add(-49 * time.Hour), 0},
		{"exactly 48h before", start.Add(-48 * time.Hour), 0},
		{"30h before", start.Add(-30 * time.Hour), 3000},
		{"5h before", start.Add(-5 * time.Hour), 5000},
		{"at start", start, 10000},
		{"after start", start.Add(2 * time.Hour), 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CancellationFee(10000, start, tt.cancelAt, nil))
		})
	}
}

func TestCancellationFee_CustomBoundaries(t *testing.T) {
	start := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	policy := &CancellationPolicy{FreeBeforeHours: 72, LateBeforeHours: 12}

	assert.Equal(t, 0, CancellationFee(10000, start, start.Add(-80*time.Hour), policy))
	assert.Equal(t, 3000, CancellationFee(10000, start, start.Add(-30*time.Hour), policy))
	assert.Equal(t, 5000, CancellationFee(10000, start, start.Add(-5*time.Hour), policy))
}

func TestCancellationFee_FloorsToInteger(t *testing.T) {
	start := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	// 30% of 101 is 30.3, floored to 30.
	assert.Equal(t, 30, CancellationFee(101, start, start.Add(-30*time.Hour), nil))
}
