package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// QueryState selects which view of a reservation list a caller wants.
// Current, Past, and Future partition on time regardless of status;
// Pending and Declined partition on status regardless of time. The views
// deliberately overlap: a declined booking in the future shows up under
// both "future" and "declined".
type QueryState string

const (
	StateAll      QueryState = "ALL"
	StateCurrent  QueryState = "CURRENT"
	StatePast     QueryState = "PAST"
	StateFuture   QueryState = "FUTURE"
	StatePending  QueryState = "PENDING"
	StateDeclined QueryState = "DECLINED"
)

// ParseQueryState converts a request token into a QueryState.
// Matching is case-insensitive; an empty token means StateAll.
// Unrecognized tokens fail with ErrValidation.
func ParseQueryState(token string) (QueryState, error) {
	if token == "" {
		return StateAll, nil
	}
	state := QueryState(strings.ToUpper(token))
	switch state {
	case StateAll, StateCurrent, StatePast, StateFuture, StatePending, StateDeclined:
		return state, nil
	}
	return "", fmt.Errorf("%w: unknown state: %s", ErrValidation, token)
}

// matches reports whether the booking belongs to the state's view at the
// given instant. Current uses inclusive bounds on both ends.
func (s QueryState) matches(b Booking, now time.Time) bool {
	switch s {
	case StateCurrent:
		return !b.Start.After(now) && !b.End.Before(now)
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StatePending:
		return b.Status == StatusPending
	case StateDeclined:
		return b.Status == StatusDeclined
	default:
		return true
	}
}

// Classify filters bookings down to the requested state view and returns
// them sorted by start descending (future-most first). The input slice is
// not modified. Classifying an already classified list with the same state
// and now returns an equal list.
func Classify(bookings []Booking, state QueryState, now time.Time) []Booking {
	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		if state.matches(b, now) {
			out = append(out, b)
		}
	}
	// Stable so bookings with equal starts keep their relative order and
	// classification stays deterministic.
	slices.SortStableFunc(out, func(a, b Booking) int {
		return b.Start.Compare(a.Start)
	})
	return out
}
