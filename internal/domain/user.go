package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered party. A user can own items, book other users' items,
// and leave comments on items they have rented.
// Identity by email: the database enforces email uniqueness.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

// UserSummary is the denormalized party reference embedded in read views.
type UserSummary struct {
	ID   uuid.UUID
	Name string
}

// Summary projects the user into its view form.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name}
}
