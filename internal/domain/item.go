package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item is a physical thing published by its owner for others to rent.
// Available controls whether new bookings may be created for it; existing
// bookings are untouched when the owner flips it off.
type Item struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Available   bool
	CreatedAt   time.Time
}

// ItemSummary is the denormalized item reference embedded in read views.
type ItemSummary struct {
	ID   uuid.UUID
	Name string
}

// Summary projects the item into its view form.
func (i Item) Summary() ItemSummary {
	return ItemSummary{ID: i.ID, Name: i.Name}
}

// ItemDetails is the read projection of an item served to clients.
// LastBooking and NextBooking are attached only when the requester owns the
// item; they are nil otherwise and when no candidate booking exists.
type ItemDetails struct {
	Item
	LastBooking *BookingRef
	NextBooking *BookingRef
	Comments    []CommentView
}
