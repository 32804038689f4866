// Package domain contains the core data types and booking rules for the
// item-sharing service. This package has no transport or storage
// dependencies and is imported by every other internal package
// (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a booking.
// It is a closed set: Pending is the only initial state, Confirmed and
// Declined are terminal. All transition rules live in the transitions table
// below; nothing else in the codebase decides what moves are legal.
type Status string

const (
	// StatusPending is the initial state of every booking: created by the
	// booker, awaiting the owner's decision.
	StatusPending Status = "PENDING"
	// StatusConfirmed means the owner approved the booking. Terminal.
	StatusConfirmed Status = "CONFIRMED"
	// StatusDeclined means the owner rejected the booking. Terminal.
	StatusDeclined Status = "DECLINED"
)

// transitions is the full state machine: the only legal moves are
// Pending → Confirmed and Pending → Declined.
var transitions = map[Status][]Status{
	StatusPending: {StatusConfirmed, StatusDeclined},
}

// CanTransitionTo reports whether the move from s to next is legal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDeclined:
		return true
	}
	return false
}

// Booking is a reservation of one item by one booker for the closed time
// interval [Start, End]. Start < End is an invariant enforced at creation
// and by the database CHECK constraint; item and booker references never
// change after creation, and only Status is ever mutated (by the state
// machine above). Bookings are never deleted.
type Booking struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	BookerID  uuid.UUID
	Start     time.Time
	End       time.Time
	Status    Status
	CreatedAt time.Time
}

// BookingRef is the short booking reference attached to item details
// (the "last" and "next" booking annotations).
type BookingRef struct {
	ID       uuid.UUID
	BookerID uuid.UUID
}

// Ref projects the booking into its short reference form.
func (b Booking) Ref() BookingRef {
	return BookingRef{ID: b.ID, BookerID: b.BookerID}
}

// ReservationView is the read projection of one booking with denormalized
// item and booker summaries. It is produced on read and never persisted.
type ReservationView struct {
	Booking
	Item   ItemSummary
	Booker UserSummary
}

// Overlaps reports whether the intervals [aStart, aEnd] and [bStart, bEnd]
// share at least one instant. Boundaries are inclusive: a booking ending at
// T conflicts with one starting at T, so back-to-back same-instant handoffs
// are disallowed.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aEnd.Before(bStart) && !aStart.After(bEnd)
}

// ConflictsWith reports whether the candidate interval [start, end] overlaps
// any of the given bookings that are confirmed. Pending and declined
// bookings never block a new reservation.
func ConflictsWith(bookings []Booking, start, end time.Time) bool {
	for _, b := range bookings {
		if b.Status != StatusConfirmed {
			continue
		}
		if Overlaps(b.Start, b.End, start, end) {
			return true
		}
	}
	return false
}

// LastBooking picks, among the item's confirmed bookings, the one that ended
// most recently or is currently active: end <= now, or start < now with
// end >= now. Of the candidates the greatest end wins. The boolean is false
// when no candidate exists.
func LastBooking(confirmed []Booking, now time.Time) (Booking, bool) {
	var last Booking
	found := false
	for _, b := range confirmed {
		if b.Status != StatusConfirmed {
			continue
		}
		ended := !b.End.After(now)
		active := b.Start.Before(now) && !b.End.Before(now)
		if !ended && !active {
			continue
		}
		if !found || b.End.After(last.End) {
			last = b
			found = true
		}
	}
	return last, found
}

// NextBooking picks, among the item's confirmed bookings, the upcoming one
// with start > now and the smallest start. The boolean is false when no
// candidate exists.
func NextBooking(confirmed []Booking, now time.Time) (Booking, bool) {
	var next Booking
	found := false
	for _, b := range confirmed {
		if b.Status != StatusConfirmed {
			continue
		}
		if !b.Start.After(now) {
			continue
		}
		if !found || b.Start.Before(next.Start) {
			next = b
			found = true
		}
	}
	return next, found
}

// CanComment reports whether the given booker has a confirmed booking among
// the item's bookings that has already ended (end <= now). Only such users
// may leave feedback on the item.
func CanComment(bookings []Booking, bookerID uuid.UUID, now time.Time) bool {
	for _, b := range bookings {
		if b.Status == StatusConfirmed && b.BookerID == bookerID && !b.End.After(now) {
			return true
		}
	}
	return false
}
