package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Nikolas7zip/shareit/internal/domain"
)

// ItemRepo defines the persistence operations for Items.
type ItemRepo interface {
	// Create inserts a new item and returns the persisted record.
	Create(ctx context.Context, item domain.Item) (domain.Item, error)

	// GetByID retrieves a single item by its UUID primary key.
	// Returns domain.ErrNotFound if no item with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error)

	// GetByIDAndOwner retrieves an item only if it belongs to the given
	// owner. Returns domain.ErrNotFound otherwise, so a non-owner cannot
	// tell a foreign item from a missing one.
	GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (domain.Item, error)

	// ListByOwner returns the owner's items ordered by creation time
	// ascending, limited to the given window.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, w domain.Window) ([]domain.Item, error)

	// SearchAvailable returns available items whose name or description
	// contains the text, case-insensitively, limited to the given window.
	SearchAvailable(ctx context.Context, text string, w domain.Window) ([]domain.Item, error)

	// Update overwrites the mutable fields of an existing item and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, item domain.Item) (domain.Item, error)
}

// pgItemRepo is the Postgres implementation of ItemRepo.
type pgItemRepo struct {
	db db
}

// NewItemRepo constructs an ItemRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewItemRepo(db db) ItemRepo {
	return &pgItemRepo{db: db}
}

const itemColumns = `id, owner_id, name, description, available, created_at`

func (r *pgItemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	const q = `
		INSERT INTO items (owner_id, name, description, available)
		VALUES (@owner_id, @name, @description, @available)
		RETURNING ` + itemColumns

	args := pgx.NamedArgs{
		"owner_id":    item.OwnerID,
		"name":        item.Name,
		"description": item.Description,
		"available":   item.Available,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanItem(row)
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgItemRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM items
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanItem(row)
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgItemRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (domain.Item, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM items
		WHERE id = @id AND owner_id = @owner_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	result, err := scanItem(row)
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.GetByIDAndOwner: %w", err)
	}
	return result, nil
}

func (r *pgItemRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, w domain.Window) ([]domain.Item, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM items
		WHERE owner_id = @owner_id
		ORDER BY created_at ASC, id ASC
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"owner_id": ownerID,
		"limit":    w.Size,
		"offset":   w.From,
	}
	return r.list(ctx, "ListByOwner", q, args)
}

func (r *pgItemRepo) SearchAvailable(ctx context.Context, text string, w domain.Window) ([]domain.Item, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM items
		WHERE available
		  AND (name ILIKE '%' || @text || '%' OR description ILIKE '%' || @text || '%')
		ORDER BY created_at ASC, id ASC
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"text":   text,
		"limit":  w.Size,
		"offset": w.From,
	}
	return r.list(ctx, "SearchAvailable", q, args)
}

func (r *pgItemRepo) Update(ctx context.Context, item domain.Item) (domain.Item, error) {
	const q = `
		UPDATE items
		SET name        = @name,
		    description = @description,
		    available   = @available
		WHERE id = @id
		RETURNING ` + itemColumns

	args := pgx.NamedArgs{
		"id":          item.ID,
		"name":        item.Name,
		"description": item.Description,
		"available":   item.Available,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanItem(row)
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgItemRepo) list(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ItemRepo.%s: scan: %w", op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.%s: rows: %w", op, err)
	}

	return items, nil
}

// scanItem maps a single database row into a domain.Item.
func scanItem(s scanner) (domain.Item, error) {
	var (
		item    domain.Item
		id      pgtype.UUID
		ownerID pgtype.UUID
	)

	err := s.Scan(&id, &ownerID, &item.Name, &item.Description, &item.Available, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Item{}, domain.ErrNotFound
		}
		return domain.Item{}, err
	}

	item.ID = uuid.UUID(id.Bytes)
	item.OwnerID = uuid.UUID(ownerID.Bytes)

	return item, nil
}
