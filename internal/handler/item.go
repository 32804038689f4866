package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Nikolas7zip/shareit/internal/domain"
	"github.com/Nikolas7zip/shareit/internal/metrics"
	"github.com/Nikolas7zip/shareit/internal/service"
)

// createItemRequest is the POST /items body. Available is a pointer so a
// missing field can be told apart from an explicit false.
type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

// updateItemRequest is the PATCH /items/{itemID} body; all fields optional.
type updateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// itemResponse is the wire form of a catalog item.
type itemResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
}

// itemDetailsResponse is the wire form of an item detail view.
type itemDetailsResponse struct {
	itemResponse
	LastBooking *bookingRefBody   `json:"lastBooking,omitempty"`
	NextBooking *bookingRefBody   `json:"nextBooking,omitempty"`
	Comments    []commentResponse `json:"comments"`
}

type bookingRefBody struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
}

// commentRequest is the POST /items/{itemID}/comments body.
type commentRequest struct {
	Text string `json:"text"`
}

// commentResponse is the wire form of a comment view.
type commentResponse struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// createItem handles POST /items.
func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var body createItemRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if body.Available == nil {
		writeBadRequest(w, "available is required")
		return
	}

	created, err := s.items.Create(r.Context(), ownerID, domain.Item{
		Name:        body.Name,
		Description: body.Description,
		Available:   *body.Available,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, itemToResponse(created))
}

// updateItem handles PATCH /items/{itemID}.
func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeBadRequest(w, "item id must be a UUID")
		return
	}

	var body updateItemRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	updated, err := s.items.Update(r.Context(), ownerID, itemID, service.ItemUpdate{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, itemToResponse(updated))
}

// getItem handles GET /items/{itemID}.
func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeBadRequest(w, "item id must be a UUID")
		return
	}

	details, err := s.items.Get(r.Context(), userID, itemID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detailsToResponse(details))
}

// listItemsByOwner handles GET /items?from=&size=.
func (s *Server) listItemsByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	win, err := window(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	details, err := s.items.ListByOwner(r.Context(), ownerID, win)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]itemDetailsResponse, 0, len(details))
	for _, d := range details {
		out = append(out, detailsToResponse(d))
	}
	writeJSON(w, http.StatusOK, out)
}

// searchItems handles GET /items/search?text=&from=&size=.
func (s *Server) searchItems(w http.ResponseWriter, r *http.Request) {
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

	items, err := s.items.Search(r.Context(), userID, r.URL.Query().Get("text"), win)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemToResponse(item))
	}
	writeJSON(w, http.StatusOK, out)
}

// addComment handles POST /items/{itemID}/comments.
func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeBadRequest(w, "item id must be a UUID")
		return
	}

	var body commentRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	created, err := s.items.AddComment(r.Context(), userID, itemID, body.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	metrics.IncCommentCreated()
	writeJSON(w, http.StatusCreated, commentToResponse(created))
}

// --- mapping helpers --------------------------------------------------------

func itemToResponse(item domain.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
	}
}

func detailsToResponse(d domain.ItemDetails) itemDetailsResponse {
	resp := itemDetailsResponse{
		itemResponse: itemToResponse(d.Item),
		Comments:     make([]commentResponse, 0, len(d.Comments)),
	}
	if d.LastBooking != nil {
		resp.LastBooking = &bookingRefBody{ID: d.LastBooking.ID, BookerID: d.LastBooking.BookerID}
	}
	if d.NextBooking != nil {
		resp.NextBooking = &bookingRefBody{ID: d.NextBooking.ID, BookerID: d.NextBooking.BookerID}
	}
	for _, c := range d.Comments {
		resp.Comments = append(resp.Comments, commentToResponse(c))
	}
	return resp
}

func commentToResponse(c domain.CommentView) commentResponse {
	return commentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    c.CreatedAt,
	}
}
