package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// CalendarClient mirrors a staff booking into an external calendar. It is
// plan-gated and best-effort; callers must tolerate any error.
type CalendarClient interface {
	PushBooking(ctx context.Context, calendarID string, evt BookingEvent) error
}

// HTTPCalendarClient posts events to the calendar bridge. An empty base URL
// disables the client entirely.
type HTTPCalendarClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPCalendarClient(baseURL string) *HTTPCalendarClient {
	return &HTTPCalendarClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *HTTPCalendarClient) PushBooking(ctx context.Context, calendarID string, evt BookingEvent) error {
	if c == nil || c.baseURL == "" || calendarID == "" {
		return nil
	}

	body, err := json.Marshal(map[string]any{
		"calendar_id": calendarID,
		"booking_id":  evt.BookingID,
		"start":       evt.StartTime,
		"end":         evt.EndTime,
		"summary":     fmt.Sprintf("Booking #%d: %s", evt.BookingID, evt.CustomerName),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/events", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("calendar bridge returned %d", resp.StatusCode)
	}
	return nil
}
