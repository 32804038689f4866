// Package service contains the business logic for the sharing service.
// Services validate inputs, enforce booking rules, and orchestrate repo
// calls. No SQL lives here; services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Nikolas7zip/shareit/internal/domain"
	"github.com/Nikolas7zip/shareit/internal/repo"
)

// BookingService implements the reservation core: creation with overlap
// detection, the approve/decline lifecycle, state-classified listings, and
// the per-item last/next lookups.
type BookingService struct {
	bookings repo.BookingRepo
	items    repo.ItemRepo
	users    repo.UserRepo
	clock    domain.Clock
	locks    *itemLocks
}

// NewBookingService constructs a BookingService backed by the provided
// repos and clock.
func NewBookingService(bookings repo.BookingRepo, items repo.ItemRepo, users repo.UserRepo, clock domain.Clock) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		clock:    clock,
		locks:    newItemLocks(),
	}
}

// BookingRequest carries a new reservation request from the HTTP layer.
type BookingRequest struct {
	ItemID uuid.UUID
	Start  time.Time
	End    time.Time
}

// startGrace is how far in the past a booking may start, absorbing clock
// and network skew between client and server.
const startGrace = time.Minute

// Create validates a reservation request and persists it in the pending
// state. Checks run in order, first failure wins:
// booker exists, item exists (domain.ErrNotFound); start < end and start
// not more than a minute in the past (domain.ErrValidation); item available
// (domain.ErrValidation); booker is not the owner (domain.ErrNotFound, see
// asNotFound); no overlap with confirmed bookings (domain.ErrConflict).
//
// The overlap check and the insert run under the item's lock, so two
// concurrent requests for the same item are serialized and cannot both
// pass the check.
func (s *BookingService) Create(ctx context.Context, bookerID uuid.UUID, req BookingRequest) (domain.ReservationView, error) {
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	item, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}

	if err := s.validateInterval(req.Start, req.End); err != nil {
		return domain.ReservationView{}, err
	}
	if !item.Available {
		return domain.ReservationView{}, fmt.Errorf("%w: item not available", domain.ErrValidation)
	}
	if item.OwnerID == bookerID {
		// Owners cannot book their own items.
		return domain.ReservationView{}, asNotFound("BookingService.Create")
	}

	unlock := s.locks.lock(item.ID)
	defer unlock()

	confirmed, err := s.bookings.ListConfirmedByItem(ctx, item.ID)
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	if domain.ConflictsWith(confirmed, req.Start, req.End) {
		return domain.ReservationView{}, fmt.Errorf("%w: intersects confirmed booking", domain.ErrConflict)
	}

	created, err := s.bookings.Create(ctx, domain.Booking{
		ItemID:   item.ID,
		BookerID: bookerID,
		Start:    req.Start,
		End:      req.End,
		Status:   domain.StatusPending,
	})
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}

	return domain.ReservationView{Booking: created, Item: item.Summary(), Booker: booker.Summary()}, nil
}

// ChangeStatus approves or declines a pending booking. Only the owner of
// the booked item may decide; anyone else gets domain.ErrNotFound. A
// booking that already reached a terminal state fails with
// domain.ErrValidation. The write itself is a compare-and-swap conditioned
// on the pending status, so concurrent decisions cannot both succeed.
func (s *BookingService) ChangeStatus(ctx context.Context, actorID, bookingID uuid.UUID, approve bool) (domain.ReservationView, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("service.BookingService.ChangeStatus: %w", err)
	}
	item, err := s.items.GetByID(ctx, booking.ItemID)
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("service.BookingService.ChangeStatus: %w", err)
	}
	if item.OwnerID != actorID {
		return domain.ReservationView{}, asNotFound("BookingService.ChangeStatus")
	}

	target := domain.StatusDeclined
	if approve {
		target = domain.StatusConfirmed
	}
	if !booking.Status.CanTransitionTo(target) {
		return domain.ReservationView{}, fmt.Errorf("%w: cannot change booking status", domain.ErrValidation)
	}

	updated, err := s.bookings.UpdateStatus(ctx, booking.ID, domain.StatusPending, target)
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("service.BookingService.ChangeStatus: %w", err)
	}

	booker, err := s.users.GetByID(ctx, updated.BookerID)
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("service.BookingService.ChangeStatus: %w", err)
	}

	return domain.ReservationView{Booking: updated, Item: item.Summary(), Booker: booker.Summary()}, nil
}

// Get returns a single booking, visible only to its booker or the item's
// owner. Anyone else gets domain.ErrNotFound.
func (s *BookingService) Get(ctx context.Context, userID, bookingID uuid.UUID) (domain.ReservationView, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("service.BookingService.Get: %w", err)
	}
	item, err := s.items.GetByID(ctx, booking.ItemID)
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("service.BookingService.Get: %w", err)
	}
	if booking.BookerID != userID && item.OwnerID != userID {
		return domain.ReservationView{}, asNotFound("BookingService.Get")
	}

	booker, err := s.users.GetByID(ctx, booking.BookerID)
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("service.BookingService.Get: %w", err)
	}

	return domain.ReservationView{Booking: booking, Item: item.Summary(), Booker: booker.Summary()}, nil
}

// ListByBooker returns the caller's own bookings in the requested state
// view, windowed. The state token is parsed case-insensitively; an unknown
// token fails with domain.ErrValidation.
func (s *BookingService) ListByBooker(ctx context.Context, bookerID uuid.UUID, stateToken string, w domain.Window) ([]domain.ReservationView, error) {
	return s.listViews(ctx, bookerID, stateToken, w, s.bookings.ListByBooker)
}

// ListByOwnerItems returns all bookings of the caller's items in the
// requested state view, windowed.
func (s *BookingService) ListByOwnerItems(ctx context.Context, ownerID uuid.UUID, stateToken string, w domain.Window) ([]domain.ReservationView, error) {
	return s.listViews(ctx, ownerID, stateToken, w, s.bookings.ListByOwnerItems)
}

// LastBooking returns the item's most recent ended-or-active confirmed
// booking. The boolean is false when none exists.
func (s *BookingService) LastBooking(ctx context.Context, itemID uuid.UUID) (domain.Booking, bool, error) {
	confirmed, err := s.bookings.ListConfirmedByItem(ctx, itemID)
	if err != nil {
		return domain.Booking{}, false, fmt.Errorf("service.BookingService.LastBooking: %w", err)
	}
	last, ok := domain.LastBooking(confirmed, s.clock.Now())
	return last, ok, nil
}

// NextBooking returns the item's nearest upcoming confirmed booking.
// The boolean is false when none exists.
func (s *BookingService) NextBooking(ctx context.Context, itemID uuid.UUID) (domain.Booking, bool, error) {
	confirmed, err := s.bookings.ListConfirmedByItem(ctx, itemID)
	if err != nil {
		return domain.Booking{}, false, fmt.Errorf("service.BookingService.NextBooking: %w", err)
	}
	next, ok := domain.NextBooking(confirmed, s.clock.Now())
	return next, ok, nil
}

// CanComment reports whether the user has a confirmed booking of the item
// that has already ended, which is the gate for leaving feedback.
func (s *BookingService) CanComment(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	confirmed, err := s.bookings.ListConfirmedByItem(ctx, itemID)
	if err != nil {
		return false, fmt.Errorf("service.BookingService.CanComment: %w", err)
	}
	return domain.CanComment(confirmed, userID, s.clock.Now()), nil
}

// listViews is the shared body of both listings: the party must exist, the
// state token must parse, then the party's bookings are classified at the
// current instant, windowed, and denormalized into views.
func (s *BookingService) listViews(ctx context.Context, partyID uuid.UUID, stateToken string, w domain.Window,
	fetch func(context.Context, uuid.UUID) ([]domain.Booking, error)) ([]domain.ReservationView, error) {

	exists, err := s.users.Exists(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.listViews: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("service.BookingService.listViews: %w", domain.ErrNotFound)
	}

	state, err := domain.ParseQueryState(stateToken)
	if err != nil {
		return nil, err
	}

	all, err := fetch(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.listViews: %w", err)
	}

	page := domain.Cut(domain.Classify(all, state, s.clock.Now()), w)
	return s.toViews(ctx, page)
}

// toViews denormalizes bookings into reservation views, memoizing item and
// booker lookups so each referenced record is fetched once per page.
func (s *BookingService) toViews(ctx context.Context, bookings []domain.Booking) ([]domain.ReservationView, error) {
	itemSums := make(map[uuid.UUID]domain.ItemSummary)
	bookerSums := make(map[uuid.UUID]domain.UserSummary)

	views := make([]domain.ReservationView, 0, len(bookings))
	for _, b := range bookings {
		itemSum, ok := itemSums[b.ItemID]
		if !ok {
			item, err := s.items.GetByID(ctx, b.ItemID)
			if err != nil {
				return nil, fmt.Errorf("service.BookingService.toViews: %w", err)
			}
			itemSum = item.Summary()
			itemSums[b.ItemID] = itemSum
		}

		bookerSum, ok := bookerSums[b.BookerID]
		if !ok {
			booker, err := s.users.GetByID(ctx, b.BookerID)
			if err != nil {
				return nil, fmt.Errorf("service.BookingService.toViews: %w", err)
			}
			bookerSum = booker.Summary()
			bookerSums[b.BookerID] = bookerSum
		}

		views = append(views, domain.ReservationView{Booking: b, Item: itemSum, Booker: bookerSum})
	}

	return views, nil
}

// validateInterval enforces the booking time rules: start strictly before
// end, and start no more than startGrace in the past.
func (s *BookingService) validateInterval(start, end time.Time) error {
	if !start.Before(end) {
		return fmt.Errorf("%w: wrong start/end booking datetime", domain.ErrValidation)
	}
	if start.Before(s.clock.Now().Add(-startGrace)) {
		return fmt.Errorf("%w: wrong start/end booking datetime", domain.ErrValidation)
	}
	return nil
}

// asNotFound reports an authorization failure on an owner-gated operation
// as domain.ErrNotFound, so callers cannot distinguish "not yours" from
// "does not exist". Whether this should become a distinct Forbidden kind is
// an open question; every call site goes through here so the answer is a
// one-line change.
func asNotFound(op string) error {
	return fmt.Errorf("service.%s: %w", op, domain.ErrNotFound)
}
