package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Nikolas7zip/shareit/internal/domain"
	"github.com/Nikolas7zip/shareit/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Unset function fields
// fall back to permissive defaults (zero values, existing users) so each
// test only wires the calls it cares about.

// ---- mockBookingRepo -------------------------------------------------------

type mockBookingRepo struct {
	create              func(ctx context.Context, booking domain.Booking) (domain.Booking, error)
	getByID             func(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	listByBooker        func(ctx context.Context, bookerID uuid.UUID) ([]domain.Booking, error)
	listByOwnerItems    func(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error)
	listConfirmedByItem func(ctx context.Context, itemID uuid.UUID) ([]domain.Booking, error)
	updateStatus        func(ctx context.Context, id uuid.UUID, from, to domain.Status) (domain.Booking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	if m.create != nil {
		return m.create(ctx, booking)
	}
	booking.ID = uuid.New()
	return booking, nil
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	return m.getByID(ctx, id)
}

func (m *mockBookingRepo) ListByBooker(ctx context.Context, bookerID uuid.UUID) ([]domain.Booking, error) {
	return m.listByBooker(ctx, bookerID)
}

func (m *mockBookingRepo) ListByOwnerItems(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error) {
	return m.listByOwnerItems(ctx, ownerID)
}

func (m *mockBookingRepo) ListConfirmedByItem(ctx context.Context, itemID uuid.UUID) ([]domain.Booking, error) {
	if m.listConfirmedByItem != nil {
		return m.listConfirmedByItem(ctx, itemID)
	}
	return nil, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) (domain.Booking, error) {
	return m.updateStatus(ctx, id, from, to)
}

var _ repo.BookingRepo = (*mockBookingRepo)(nil)

// ---- mockItemRepo ----------------------------------------------------------

type mockItemRepo struct {
	create          func(ctx context.Context, item domain.Item) (domain.Item, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.Item, error)
	getByIDAndOwner func(ctx context.Context, id, ownerID uuid.UUID) (domain.Item, error)
	listByOwner     func(ctx context.Context, ownerID uuid.UUID, w domain.Window) ([]domain.Item, error)
	searchAvailable func(ctx context.Context, text string, w domain.Window) ([]domain.Item, error)
	update          func(ctx context.Context, item domain.Item) (domain.Item, error)
}

func (m *mockItemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	if m.create != nil {
		return m.create(ctx, item)
	}
	item.ID = uuid.New()
	return item, nil
}

func (m *mockItemRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error) {
	return m.getByID(ctx, id)
}

func (m *mockItemRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (domain.Item, error) {
	return m.getByIDAndOwner(ctx, id, ownerID)
}

func (m *mockItemRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, w domain.Window) ([]domain.Item, error) {
	return m.listByOwner(ctx, ownerID, w)
}

func (m *mockItemRepo) SearchAvailable(ctx context.Context, text string, w domain.Window) ([]domain.Item, error) {
	return m.searchAvailable(ctx, text, w)
}

func (m *mockItemRepo) Update(ctx context.Context, item domain.Item) (domain.Item, error) {
	return m.update(ctx, item)
}

var _ repo.ItemRepo = (*mockItemRepo)(nil)

// ---- mockUserRepo ----------------------------------------------------------

type mockUserRepo struct {
	create  func(ctx context.Context, user domain.User) (domain.User, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.User, error)
	exists  func(ctx context.Context, id uuid.UUID) (bool, error)
	list    func(ctx context.Context) ([]domain.User, error)
	update  func(ctx context.Context, user domain.User) (domain.User, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return domain.User{ID: id, Name: "booker", Email: "booker@example.com"}, nil
}

func (m *mockUserRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.exists != nil {
		return m.exists(ctx, id)
	}
	return true, nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	return m.list(ctx)
}

func (m *mockUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	return m.update(ctx, user)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

// ---- mockCommentRepo -------------------------------------------------------

type mockCommentRepo struct {
	create     func(ctx context.Context, comment domain.Comment) (domain.CommentView, error)
	listByItem func(ctx context.Context, itemID uuid.UUID) ([]domain.CommentView, error)
}

func (m *mockCommentRepo) Create(ctx context.Context, comment domain.Comment) (domain.CommentView, error) {
	return m.create(ctx, comment)
}

func (m *mockCommentRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.CommentView, error) {
	if m.listByItem != nil {
		return m.listByItem(ctx, itemID)
	}
	return nil, nil
}

var _ repo.CommentRepo = (*mockCommentRepo)(nil)

// ---- fixedClock ------------------------------------------------------------

// fixedClock pins domain time so interval and classification tests are
// deterministic.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var _ domain.Clock = fixedClock{}
