package hours

import (
	"encoding/json"
	"strings"
	"time"

	"cleanbook/internal/domain"
)

// Placeholder times used whenever a day has no usable schedule entry.
const (
	DefaultOpen  = "09:00"
	DefaultClose = "18:00"
)

// Window is the canonical per-day schedule. Explicit distinguishes a stored
// weekday entry (well-formed or not) from the default-closed fallback for a
// missing key; the two availability engines treat non-explicit days
// differently and that asymmetry is long-standing tenant-visible behavior,
// so it must survive here.
type Window struct {
	Open     string `json:"open"`
	Close    string `json:"close"`
	IsOpen   bool   `json:"is_open"`
	Explicit bool   `json:"-"`
}

type dayEntry struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	IsOpen *bool  `json:"isOpen"`
}

// Resolve returns the schedule window for the date's weekday, or nil when
// the store has no business-hours source at all. It never returns an error:
// a malformed entry closes the store for that day instead of failing the
// caller.
func Resolve(store *domain.Store, date time.Time) *Window {
	src := source(store)
	if src == nil {
		return nil
	}

	var week map[string]json.RawMessage
	if err := json.Unmarshal(src, &week); err != nil {
		return nil
	}

	raw, ok := week[WeekdayKey(date)]
	if !ok {
		return &Window{Open: DefaultOpen, Close: DefaultClose, IsOpen: false}
	}
	return parseEntry(raw)
}

// WeekdayKey is the lower-cased 3-letter code schedules are keyed by.
func WeekdayKey(date time.Time) string {
	return strings.ToLower(date.Weekday().String()[:3])
}

// source picks the schedule blob: the top-level store field wins over the
// same-shaped entry nested in the legacy settings blob.
func source(store *domain.Store) json.RawMessage {
	if len(store.BusinessHours) > 0 && string(store.BusinessHours) != "null" {
		return store.BusinessHours
	}
	if len(store.Settings) == 0 {
		return nil
	}
	var settings map[string]json.RawMessage
	if err := json.Unmarshal(store.Settings, &settings); err != nil {
		return nil
	}
	if raw, ok := settings["business_hours"]; ok && string(raw) != "null" {
		return raw
	}
	return nil
}

// parseEntry accepts the two stored shapes: an ["09:00","18:00"] pair, which
// implies the day is open, or an {open, close, isOpen} object where isOpen
// defaults to true. Anything else closes the day.
func parseEntry(raw json.RawMessage) *Window {
	var pair []string
	if err := json.Unmarshal(raw, &pair); err == nil {
		if len(pair) >= 2 && pair[0] != "" && pair[1] != "" {
			return &Window{Open: pair[0], Close: pair[1], IsOpen: true, Explicit: true}
		}
		return closedEntry()
	}

	var entry dayEntry
	if err := json.Unmarshal(raw, &entry); err == nil && entry.Open != "" && entry.Close != "" {
		isOpen := true
		if entry.IsOpen != nil {
			isOpen = *entry.IsOpen
		}
		return &Window{Open: entry.Open, Close: entry.Close, IsOpen: isOpen, Explicit: true}
	}

	return closedEntry()
}

func closedEntry() *Window {
	return &Window{Open: DefaultOpen, Close: DefaultClose, IsOpen: false, Explicit: true}
}

// Bounds anchors the window's clock times onto the given date in UTC. ok is
// false when the day is closed or a time string does not parse.
func (w *Window) Bounds(date time.Time) (open, close time.Time, ok bool) {
	if w == nil || !w.IsOpen {
		return time.Time{}, time.Time{}, false
	}
	openT, err := time.Parse("15:04", w.Open)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	closeT, err := time.Parse("15:04", w.Close)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	open = time.Date(date.Year(), date.Month(), date.Day(), openT.Hour(), openT.Minute(), 0, 0, time.UTC)
	close = time.Date(date.Year(), date.Month(), date.Day(), closeT.Hour(), closeT.Minute(), 0, 0, time.UTC)
	if !close.After(open) {
		return time.Time{}, time.Time{}, false
	}
	return open, close, true
}
