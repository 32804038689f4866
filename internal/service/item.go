package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Nikolas7zip/shareit/internal/domain"
	"github.com/Nikolas7zip/shareit/internal/repo"
)

// ItemService implements business logic for the item catalog and comments.
// It holds the booking repo as well because item detail views are annotated
// with the owner's last/next confirmed bookings, and comment creation is
// gated on a completed booking.
type ItemService struct {
	items    repo.ItemRepo
	users    repo.UserRepo
	bookings repo.BookingRepo
	comments repo.CommentRepo
	clock    domain.Clock
}

// NewItemService constructs an ItemService backed by the provided repos and
// clock.
func NewItemService(items repo.ItemRepo, users repo.UserRepo, bookings repo.BookingRepo, comments repo.CommentRepo, clock domain.Clock) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		clock:    clock,
	}
}

// ItemUpdate carries a partial item update; nil fields keep their current
// value.
type ItemUpdate struct {
	Name        *string
	Description *string
	Available   *bool
}

// Create validates and persists a new item for the given owner.
func (s *ItemService) Create(ctx context.Context, ownerID uuid.UUID, item domain.Item) (domain.Item, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	if err := validateItem(item); err != nil {
		return domain.Item{}, err
	}

	item.OwnerID = ownerID
	created, err := s.items.Create(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	return created, nil
}

// Update applies a partial update to an item. Only the owner may update;
// the owner-scoped lookup makes a foreign item indistinguishable from a
// missing one.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID uuid.UUID, upd ItemUpdate) (domain.Item, error) {
	item, err := s.items.GetByIDAndOwner(ctx, itemID, ownerID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Update: %w", err)
	}

	if upd.Name != nil {
		item.Name = *upd.Name
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.Available != nil {
		item.Available = *upd.Available
	}
	if err := validateItem(item); err != nil {
		return domain.Item{}, err
	}

	updated, err := s.items.Update(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Update: %w", err)
	}
	return updated, nil
}

// Get returns the item's detail view. Last/next booking annotations are
// attached only when the requester owns the item; comments are visible to
// everyone.
func (s *ItemService) Get(ctx context.Context, userID, itemID uuid.UUID) (domain.ItemDetails, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return domain.ItemDetails{}, fmt.Errorf("service.ItemService.Get: %w", err)
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return domain.ItemDetails{}, fmt.Errorf("service.ItemService.Get: %w", err)
	}

	details := domain.ItemDetails{Item: item}
	if item.OwnerID == userID {
		if err := s.annotateBookings(ctx, &details); err != nil {
			return domain.ItemDetails{}, fmt.Errorf("service.ItemService.Get: %w", err)
		}
	}

	comments, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return domain.ItemDetails{}, fmt.Errorf("service.ItemService.Get: %w", err)
	}
	details.Comments = comments
	if details.Comments == nil {
		details.Comments = []domain.CommentView{}
	}

	return details, nil
}

// ListByOwner returns the owner's items with booking annotations and
// comments, windowed.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID uuid.UUID, w domain.Window) ([]domain.ItemDetails, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, fmt.Errorf("service.ItemService.ListByOwner: %w", err)
	}

	items, err := s.items.ListByOwner(ctx, ownerID, w)
	if err != nil {
		return nil, fmt.Errorf("service.ItemService.ListByOwner: %w", err)
	}

	details := make([]domain.ItemDetails, 0, len(items))
	for _, item := range items {
		d := domain.ItemDetails{Item: item}
		if err := s.annotateBookings(ctx, &d); err != nil {
			return nil, fmt.Errorf("service.ItemService.ListByOwner: %w", err)
		}
		comments, err := s.comments.ListByItem(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("service.ItemService.ListByOwner: %w", err)
		}
		d.Comments = comments
		if d.Comments == nil {
			d.Comments = []domain.CommentView{}
		}
		details = append(details, d)
	}

	return details, nil
}

// Search returns available items matching the text. A blank query yields an
// empty result without touching storage.
func (s *ItemService) Search(ctx context.Context, userID uuid.UUID, text string, w domain.Window) ([]domain.Item, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("service.ItemService.Search: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return []domain.Item{}, nil
	}

	items, err := s.items.SearchAvailable(ctx, text, w)
	if err != nil {
		return nil, fmt.Errorf("service.ItemService.Search: %w", err)
	}
	if items == nil {
		return []domain.Item{}, nil
	}
	return items, nil
}

// AddComment persists feedback on an item. The author must have a confirmed
// booking of the item that has already ended; otherwise the request fails
// with domain.ErrValidation.
func (s *ItemService) AddComment(ctx context.Context, userID, itemID uuid.UUID, text string) (domain.CommentView, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return domain.CommentView{}, fmt.Errorf("service.ItemService.AddComment: %w", err)
	}
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return domain.CommentView{}, fmt.Errorf("service.ItemService.AddComment: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return domain.CommentView{}, fmt.Errorf("%w: comment text required", domain.ErrValidation)
	}

	confirmed, err := s.bookings.ListConfirmedByItem(ctx, itemID)
	if err != nil {
		return domain.CommentView{}, fmt.Errorf("service.ItemService.AddComment: %w", err)
	}
	if !domain.CanComment(confirmed, userID, s.clock.Now()) {
		return domain.CommentView{}, fmt.Errorf("%w: booking required", domain.ErrValidation)
	}

	created, err := s.comments.Create(ctx, domain.Comment{
		ItemID:   itemID,
		AuthorID: userID,
		Text:     text,
	})
	if err != nil {
		return domain.CommentView{}, fmt.Errorf("service.ItemService.AddComment: %w", err)
	}
	return created, nil
}

// annotateBookings attaches the last/next confirmed booking refs computed
// from the item's bounded confirmed-bookings scan.
func (s *ItemService) annotateBookings(ctx context.Context, details *domain.ItemDetails) error {
	confirmed, err := s.bookings.ListConfirmedByItem(ctx, details.ID)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	if last, ok := domain.LastBooking(confirmed, now); ok {
		ref := last.Ref()
		details.LastBooking = &ref
	}
	if next, ok := domain.NextBooking(confirmed, now); ok {
		ref := next.Ref()
		details.NextBooking = &ref
	}
	return nil
}

// requireUser fails with domain.ErrNotFound when the user does not exist.
func (s *ItemService) requireUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}

// validateItem enforces the catalog rules common to Create and Update.
func validateItem(item domain.Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(item.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	return nil
}
