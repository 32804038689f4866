// Package handler implements the HTTP surface of the sharing service.
// All handlers are methods on Server; files are split by resource
// (booking.go, item.go, user.go, health.go) but share the same struct so
// they can access its dependencies. Authenticated requests identify the
// caller with the X-Sharer-User-Id header.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Nikolas7zip/shareit/internal/domain"
	"github.com/Nikolas7zip/shareit/internal/service"
)

// userIDHeader carries the acting user's id on every authenticated request.
const userIDHeader = "X-Sharer-User-Id"

// Listing defaults when the from/size query params are absent.
const (
	defaultFrom = 0
	defaultSize = 10
)

// BookingServicer defines the reservation operations the booking handler
// depends on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service
// layer.
type BookingServicer interface {
	Create(ctx context.Context, bookerID uuid.UUID, req service.BookingRequest) (domain.ReservationView, error)
	ChangeStatus(ctx context.Context, actorID, bookingID uuid.UUID, approve bool) (domain.ReservationView, error)
	Get(ctx context.Context, userID, bookingID uuid.UUID) (domain.ReservationView, error)
	ListByBooker(ctx context.Context, bookerID uuid.UUID, stateToken string, w domain.Window) ([]domain.ReservationView, error)
	ListByOwnerItems(ctx context.Context, ownerID uuid.UUID, stateToken string, w domain.Window) ([]domain.ReservationView, error)
}

// ItemServicer defines the catalog and comment operations the item handler
// depends on.
type ItemServicer interface {
	Create(ctx context.Context, ownerID uuid.UUID, item domain.Item) (domain.Item, error)
	Update(ctx context.Context, ownerID, itemID uuid.UUID, upd service.ItemUpdate) (domain.Item, error)
	Get(ctx context.Context, userID, itemID uuid.UUID) (domain.ItemDetails, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, w domain.Window) ([]domain.ItemDetails, error)
	Search(ctx context.Context, userID uuid.UUID, text string, w domain.Window) ([]domain.Item, error)
	AddComment(ctx context.Context, userID, itemID uuid.UUID, text string) (domain.CommentView, error)
}

// UserServicer defines the account operations the user handler depends on.
type UserServicer interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id uuid.UUID, upd service.UserUpdate) (domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Server holds the handlers' dependencies. Methods are in resource-specific
// files but all operate on this struct.
type Server struct {
	bookings BookingServicer
	items    ItemServicer
	users    UserServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(bookings BookingServicer, items ItemServicer, users UserServicer) *Server {
	return &Server{bookings: bookings, items: items, users: users}
}

// Routes builds the chi router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", s.createBooking)
		r.Get("/", s.listBookingsByBooker)
		r.Get("/owner", s.listBookingsByOwner)
		r.Get("/{bookingID}", s.getBooking)
		r.Patch("/{bookingID}", s.changeBookingStatus)
	})

	r.Route("/items", func(r chi.Router) {
		r.Post("/", s.createItem)
		r.Get("/", s.listItemsByOwner)
		r.Get("/search", s.searchItems)
		r.Get("/{itemID}", s.getItem)
		r.Patch("/{itemID}", s.updateItem)
		r.Post("/{itemID}/comments", s.addComment)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", s.createUser)
		r.Get("/", s.listUsers)
		r.Get("/{userID}", s.getUser)
		r.Patch("/{userID}", s.updateUser)
		r.Delete("/{userID}", s.deleteUser)
	})

	return r
}

// --- shared request plumbing ------------------------------------------------

// callerID extracts and parses the X-Sharer-User-Id header.
func callerID(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		return uuid.Nil, errMissingUserHeader
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errBadUserHeader
	}
	return id, nil
}

// pathID parses a UUID route parameter.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// window parses the from/size query pair, applying defaults when absent.
// Validation of the pair itself (alignment, bounds) happens in
// domain.NewWindow.
func window(r *http.Request) (domain.Window, error) {
	from, err := intQuery(r, "from", defaultFrom)
	if err != nil {
		return domain.Window{}, err
	}
	size, err := intQuery(r, "size", defaultSize)
	if err != nil {
		return domain.Window{}, err
	}
	return domain.NewWindow(from, size)
}

func intQuery(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, name)
	}
	return n, nil
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
