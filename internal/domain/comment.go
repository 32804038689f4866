package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is feedback left on an item by a user who has completed a
// confirmed booking of it (see CanComment).
type Comment struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	AuthorID  uuid.UUID
	Text      string
	CreatedAt time.Time
}

// CommentView is the read projection of a comment with the author's name
// joined in.
type CommentView struct {
	ID         uuid.UUID
	Text       string
	AuthorName string
	CreatedAt  time.Time
}
