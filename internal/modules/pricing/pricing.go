package pricing

import (
	"fmt"

	"cleanbook/internal/domain"
)

// DefaultTravelPaddingMin is added once per booking, never per cart line.
const DefaultTravelPaddingMin = 30

type LineBreakdown struct {
	ServiceID    int64 `json:"service_id"`
	Quantity     int   `json:"quantity"`
	ServicePrice int   `json:"service_price"`
	OptionsPrice int   `json:"options_price"`
	Subtotal     int   `json:"subtotal"`
	DurationMin  int   `json:"duration"`
}

type Quote struct {
	TotalAmount      int             `json:"total_amount"`
	TotalDurationMin int             `json:"total_duration_minutes"`
	Items            []LineBreakdown `json:"item_breakdown"`
}

// BuildQuote prices a cart against the given catalog snapshot.
//
// A line referencing an unknown service id aborts the whole quote; an
// unknown option id inside a valid line is silently skipped. The asymmetry
// is deliberate: services are the contract, options are decoration that may
// have been deleted between page load and submit.
func BuildQuote(items []domain.CartItem, services []domain.Service, options []domain.ServiceOption, travelPaddingMin int) (*Quote, error) {
	if len(items) == 0 {
		return &Quote{Items: []LineBreakdown{}}, nil
	}

	svcByID := make(map[int64]domain.Service, len(services))
	for _, s := range services {
		svcByID[s.ID] = s
	}
	optByID := make(map[int64]domain.ServiceOption, len(options))
	for _, o := range options {
		optByID[o.ID] = o
	}

	q := &Quote{Items: make([]LineBreakdown, 0, len(items))}
	for _, item := range items {
		svc, ok := svcByID[item.ServiceID]
		if !ok {
			return nil, fmt.Errorf("%w: service %d", ErrUnknownService, item.ServiceID)
		}
		if item.Quantity < 0 {
			return nil, fmt.Errorf("%w: service %d", ErrInvalidQuantity, item.ServiceID)
		}

		line := LineBreakdown{
			ServiceID:    item.ServiceID,
			Quantity:     item.Quantity,
			ServicePrice: item.Quantity * svc.Price,
			DurationMin:  item.Quantity * (svc.DurationMin + svc.BufferMin),
		}

		// Options apply per unit of quantity and sum independently.
		for _, optID := range item.SelectedOptions {
			opt, ok := optByID[optID]
			if !ok {
				continue
			}
			line.OptionsPrice += item.Quantity * opt.Price
			line.DurationMin += item.Quantity * opt.DurationMin
		}

		line.Subtotal = line.ServicePrice + line.OptionsPrice
		q.TotalAmount += line.Subtotal
		q.TotalDurationMin += line.DurationMin
		q.Items = append(q.Items, line)
	}

	q.TotalDurationMin += travelPaddingMin
	return q, nil
}
