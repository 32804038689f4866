package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Nikolas7zip/shareit/internal/domain"
	"github.com/Nikolas7zip/shareit/internal/metrics"
	"github.com/Nikolas7zip/shareit/internal/service"
)

// createBookingRequest is the POST /bookings body.
type createBookingRequest struct {
	ItemID uuid.UUID `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// bookingResponse is the wire form of a reservation view.
type bookingResponse struct {
	ID     uuid.UUID     `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status string        `json:"status"`
	Item   itemShortBody `json:"item"`
	Booker userShortBody `json:"booker"`
}

type itemShortBody struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type userShortBody struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// createBooking handles POST /bookings.
func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, err := callerID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var body createBookingRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if body.ItemID == uuid.Nil {
		writeBadRequest(w, "itemId is required")
		return
	}
	if body.Start.IsZero() || body.End.IsZero() {
		writeBadRequest(w, "start and end are required")
		return
	}

	view, err := s.bookings.Create(r.Context(), bookerID, service.BookingRequest{
		ItemID: body.ItemID,
		Start:  body.Start,
		End:    body.End,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	metrics.IncBookingCreated()
	writeJSON(w, http.StatusCreated, viewToResponse(view))
}

// changeBookingStatus handles PATCH /bookings/{bookingID}?approved=true|false.
func (s *Server) changeBookingStatus(w http.ResponseWriter, r *http.Request) {
	actorID, err := callerID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	bookingID, err := pathID(r, "bookingID")
	if err != nil {
		writeBadRequest(w, "booking id must be a UUID")
		return
	}
	approve, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeBadRequest(w, "approved query param is required")
		return
	}

	view, err := s.bookings.ChangeStatus(r.Context(), actorID, bookingID, approve)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	decision := "declined"
	if approve {
		decision = "confirmed"
	}
	metrics.IncOwnerDecision(decision)
	writeJSON(w, http.StatusOK, viewToResponse(view))
}

// getBooking handles GET /bookings/{bookingID}.
func (s *Server) getBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	bookingID, err := pathID(r, "bookingID")
	if err != nil {
		writeBadRequest(w, "booking id must be a UUID")
		return
	}

	view, err := s.bookings.Get(r.Context(), userID, bookingID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, viewToResponse(view))
}

// listBookingsByBooker handles GET /bookings?state=&from=&size=.
func (s *Server) listBookingsByBooker(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.bookings.ListByBooker)
}

// listBookingsByOwner handles GET /bookings/owner?state=&from=&size=.
func (s *Server) listBookingsByOwner(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.bookings.ListByOwnerItems)
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request,
	list func(context.Context, uuid.UUID, string, domain.Window) ([]domain.ReservationView, error)) {

	userID, err := callerID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	win, err := window(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views, err := list(r.Context(), userID, r.URL.Query().Get("state"), win)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]bookingResponse, 0, len(views))
	for _, v := range views {
		out = append(out, viewToResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

// viewToResponse converts a domain.ReservationView into its wire form.
func viewToResponse(v domain.ReservationView) bookingResponse {
	return bookingResponse{
		ID:     v.ID,
		Start:  v.Start,
		End:    v.End,
		Status: string(v.Booking.Status),
		Item:   itemShortBody{ID: v.Item.ID, Name: v.Item.Name},
		Booker: userShortBody{ID: v.Booker.ID, Name: v.Booker.Name},
	}
}
