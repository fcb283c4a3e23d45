package hours

import (
	"encoding/json"
	"testing"
	"time"

	"cleanbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-04 is a Wednesday.
var wednesday = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

func storeWithHours(t *testing.T, week map[string]any) *domain.Store {
	t.Helper()
	raw, err := json.Marshal(week)
	require.NoError(t, err)
	return &domain.Store{BusinessHours: raw}
}

func TestResolve_NoSource(t *testing.T) {
	assert.Nil(t, Resolve(&domain.Store{}, wednesday))
}

func TestResolve_PairShape(t *testing.T) {
	s := storeWithHours(t, map[string]any{"wed": []string{"08:30", "19:00"}})

	w := Resolve(s, wednesday)
	require.NotNil(t, w)
	assert.True(t, w.IsOpen)
	assert.True(t, w.Explicit)
	assert.Equal(t, "08:30", w.Open)
	assert.Equal(t, "19:00", w.Close)
}

func TestResolve_ObjectShape(t *testing.T) {
	s := storeWithHours(t, map[string]any{
		"wed": map[string]any{"open": "10:00", "close": "16:00", "isOpen": false},
	})

	w := Resolve(s, wednesday)
	require.NotNil(t, w)
	assert.False(t, w.IsOpen)
	assert.True(t, w.Explicit)
	assert.Equal(t, "10:00", w.Open)
}

func TestResolve_ObjectShapeIsOpenOmitted(t *testing.T) {
	s := storeWithHours(t, map[string]any{
		"wed": map[string]any{"open": "10:00", "close": "16:00"},
	})

	w := Resolve(s, wednesday)
	require.NotNil(t, w)
	assert.True(t, w.IsOpen)
}

func TestResolve_MissingWeekdayDefaultsClosed(t *testing.T) {
	s := storeWithHours(t, map[string]any{"mon": []string{"09:00", "18:00"}})

	w := Resolve(s, wednesday)
	require.NotNil(t, w)
	assert.False(t, w.IsOpen)
	assert.False(t, w.Explicit)
	assert.Equal(t, DefaultOpen, w.Open)
	assert.Equal(t, DefaultClose, w.Close)
}

func TestResolve_MalformedEntryClosesDay(t *testing.T) {
	s := storeWithHours(t, map[string]any{"wed": 42})

	w := Resolve(s, wednesday)
	require.NotNil(t, w)
	assert.False(t, w.IsOpen)
	assert.True(t, w.Explicit)
}

func TestResolve_SettingsFallback(t *testing.T) {
	settings, err := json.Marshal(map[string]any{
		"business_hours": map[string]any{"wed": []string{"07:00", "15:00"}},
		"theme":          "dark",
	})
	require.NoError(t, err)

	w := Resolve(&domain.Store{Settings: settings}, wednesday)
	require.NotNil(t, w)
	assert.True(t, w.IsOpen)
	assert.Equal(t, "07:00", w.Open)
}

func TestResolve_TopLevelWinsOverSettings(t *testing.T) {
	top, _ := json.Marshal(map[string]any{"wed": []string{"08:00", "20:00"}})
	settings, _ := json.Marshal(map[string]any{
		"business_hours": map[string]any{"wed": []string{"07:00", "15:00"}},
	})

	w := Resolve(&domain.Store{BusinessHours: top, Settings: settings}, wednesday)
	require.NotNil(t, w)
	assert.Equal(t, "08:00", w.Open)
}

func TestBounds(t *testing.T) {
	w := &Window{Open: "09:00", Close: "18:00", IsOpen: true}

	open, close, ok := w.Bounds(wednesday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC), open)
	assert.Equal(t, time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC), close)
}

func TestBounds_ClosedOrInvalid(t *testing.T) {
	_, _, ok := (&Window{Open: "09:00", Close: "18:00", IsOpen: false}).Bounds(wednesday)
	assert.False(t, ok)

	_, _, ok = (&Window{Open: "bogus", Close: "18:00", IsOpen: true}).Bounds(wednesday)
	assert.False(t, ok)

	_, _, ok = (&Window{Open: "18:00", Close: "09:00", IsOpen: true}).Bounds(wednesday)
	assert.False(t, ok)
}

func TestWeekdayKey(t *testing.T) {
	assert.Equal(t, "wed", WeekdayKey(wednesday))
	assert.Equal(t, "sun", WeekdayKey(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
}
