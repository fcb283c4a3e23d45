package pricing

import "time"

// CancellationPolicy configures the tier boundaries. The tier structure
// itself (free, 30%, 50%, 100%) is fixed; only the hour thresholds move.
type CancellationPolicy struct {
	FreeBeforeHours int `json:"free_before_hours"`
	LateBeforeHours int `json:"late_before_hours"`
}

func DefaultCancellationPolicy() CancellationPolicy {
	return CancellationPolicy{FreeBeforeHours: 48, LateBeforeHours: 24}
}

// CancellationFee returns the fee owed for cancelling at cancelAt a booking
// of the given amount starting at start. The result is floored to an
// integer.
func CancellationFee(amount int, start, cancelAt time.Time, policy *CancellationPolicy) int {
	p := DefaultCancellationPolicy()
	if policy != nil {
		p = *policy
	}

	lead := start.Sub(cancelAt)
	switch {
	case lead >= time.Duration(p.FreeBeforeHours)*time.Hour:
		return 0
	case lead >= time.Duration(p.LateBeforeHours)*time.Hour:
		return amount * 30 / 100
	case lead > 0:
		return amount * 50 / 100
	default:
		return amount
	}
}
