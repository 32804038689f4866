package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nikolas7zip/shareit/internal/domain"
	"github.com/Nikolas7zip/shareit/internal/handler"
	"github.com/Nikolas7zip/shareit/internal/service"
)

// Hand-written test doubles for the handler's Servicer interfaces.

// ---- mockBookingServicer ---------------------------------------------------

type mockBookingServicer struct {
	create           func(ctx context.Context, bookerID uuid.UUID, req service.BookingRequest) (domain.ReservationView, error)
	changeStatus     func(ctx context.Context, actorID, bookingID uuid.UUID, approve bool) (domain.ReservationView, error)
	get              func(ctx context.Context, userID, bookingID uuid.UUID) (domain.ReservationView, error)
	listByBooker     func(ctx context.Context, bookerID uuid.UUID, stateToken string, w domain.Window) ([]domain.ReservationView, error)
	listByOwnerItems func(ctx context.Context, ownerID uuid.UUID, stateToken string, w domain.Window) ([]domain.ReservationView, error)
}

func (m *mockBookingServicer) Create(ctx context.Context, bookerID uuid.UUID, req service.BookingRequest) (domain.ReservationView, error) {
	return m.create(ctx, bookerID, req)
}

func (m *mockBookingServicer) ChangeStatus(ctx context.Context, actorID, bookingID uuid.UUID, approve bool) (domain.ReservationView, error) {
	return m.changeStatus(ctx, actorID, bookingID, approve)
}

func (m *mockBookingServicer) Get(ctx context.Context, userID, bookingID uuid.UUID) (domain.ReservationView, error) {
	return m.get(ctx, userID, bookingID)
}

func (m *mockBookingServicer) ListByBooker(ctx context.Context, bookerID uuid.UUID, stateToken string, w domain.Window) ([]domain.ReservationView, error) {
	return m.listByBooker(ctx, bookerID, stateToken, w)
}

func (m *mockBookingServicer) ListByOwnerItems(ctx context.Context, ownerID uuid.UUID, stateToken string, w domain.Window) ([]domain.ReservationView, error) {
	return m.listByOwnerItems(ctx, ownerID, stateToken, w)
}

var _ handler.BookingServicer = (*mockBookingServicer)(nil)

// ---- mockItemServicer ------------------------------------------------------

type mockItemServicer struct {
	create      func(ctx context.Context, ownerID uuid.UUID, item domain.Item) (domain.Item, error)
	update      func(ctx context.Context, ownerID, itemID uuid.UUID, upd service.ItemUpdate) (domain.Item, error)
	get         func(ctx context.Context, userID, itemID uuid.UUID) (domain.ItemDetails, error)
	listByOwner func(ctx context.Context, ownerID uuid.UUID, w domain.Window) ([]domain.ItemDetails, error)
	search      func(ctx context.Context, userID uuid.UUID, text string, w domain.Window) ([]domain.Item, error)
	addComment  func(ctx context.Context, userID, itemID uuid.UUID, text string) (domain.CommentView, error)
}

func (m *mockItemServicer) Create(ctx context.Context, ownerID uuid.UUID, item domain.Item) (domain.Item, error) {
	return m.create(ctx, ownerID, item)
}

func (m *mockItemServicer) Update(ctx context.Context, ownerID, itemID uuid.UUID, upd service.ItemUpdate) (domain.Item, error) {
	return m.update(ctx, ownerID, itemID, upd)
}

func (m *mockItemServicer) Get(ctx context.Context, userID, itemID uuid.UUID) (domain.ItemDetails, error) {
	return m.get(ctx, userID, itemID)
}

func (m *mockItemServicer) ListByOwner(ctx context.Context, ownerID uuid.UUID, w domain.Window) ([]domain.ItemDetails, error) {
	return m.listByOwner(ctx, ownerID, w)
}

func (m *mockItemServicer) Search(ctx context.Context, userID uuid.UUID, text string, w domain.Window) ([]domain.Item, error) {
	return m.search(ctx, userID, text, w)
}

func (m *mockItemServicer) AddComment(ctx context.Context, userID, itemID uuid.UUID, text string) (domain.CommentView, error) {
	return m.addComment(ctx, userID, itemID, text)
}

var _ handler.ItemServicer = (*mockItemServicer)(nil)

// ---- mockUserServicer ------------------------------------------------------

type mockUserServicer struct {
	create  func(ctx context.Context, user domain.User) (domain.User, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.User, error)
	list    func(ctx context.Context) ([]domain.User, error)
	update  func(ctx context.Context, id uuid.UUID, upd service.UserUpdate) (domain.User, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserServicer) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}

func (m *mockUserServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}

func (m *mockUserServicer) List(ctx context.Context) ([]domain.User, error) {
	return m.list(ctx)
}

func (m *mockUserServicer) Update(ctx context.Context, id uuid.UUID, upd service.UserUpdate) (domain.User, error) {
	return m.update(ctx, id, upd)
}

func (m *mockUserServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

// ---- request helpers ---------------------------------------------------------

// newServer builds a routed server over the given mocks; nil mocks are
// replaced with empty doubles so routes still register.
func newServer(bookings *mockBookingServicer, items *mockItemServicer, users *mockUserServicer) http.Handler {
	if bookings == nil {
		bookings = &mockBookingServicer{}
	}
	if items == nil {
		items = &mockItemServicer{}
	}
	if users == nil {
		users = &mockUserServicer{}
	}
	return handler.NewServer(bookings, items, users).Routes()
}

// doRequest performs an in-memory request against the router. A non-nil
// userID is sent in the X-Sharer-User-Id header; body is raw JSON.
func doRequest(h http.Handler, method, target string, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if userID != uuid.Nil {
		req.Header.Set("X-Sharer-User-Id", userID.String())
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// sampleView builds a reservation view fixture.
func sampleView(status domain.Status) domain.ReservationView {
	start := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return domain.ReservationView{
		Booking: domain.Booking{
			ID:       uuid.New(),
			ItemID:   uuid.New(),
			BookerID: uuid.New(),
			Start:    start,
			End:      start.Add(2 * time.Hour),
			Status:   status,
		},
		Item:   domain.ItemSummary{ID: uuid.New(), Name: "cordless drill"},
		Booker: domain.UserSummary{ID: uuid.New(), Name: "Maria"},
	}
}
