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

// CommentRepo defines the persistence operations for Comments.
// Eligibility checks happen in the service layer before Create is called.
type CommentRepo interface {
	// Create inserts a new comment and returns its view with the author
	// name resolved.
	Create(ctx context.Context, comment domain.Comment) (domain.CommentView, error)

	// ListByItem returns all comments for an item as views with author
	// names, newest first.
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.CommentView, error)
}

// pgCommentRepo is the Postgres implementation of CommentRepo.
type pgCommentRepo struct {
	db db
}

// NewCommentRepo constructs a CommentRepo backed by the provided db connection.
func NewCommentRepo(db db) CommentRepo {
	return &pgCommentRepo{db: db}
}

func (r *pgCommentRepo) Create(ctx context.Context, comment domain.Comment) (domain.CommentView, error) {
	const q = `
		WITH inserted AS (
			INSERT INTO comments (item_id, author_id, text)
			VALUES (@item_id, @author_id, @text)
			RETURNING id, author_id, text, created_at
		)
		SELECT c.id, c.text, u.name, c.created_at
		FROM inserted c
		JOIN users u ON u.id = c.author_id`

	args := pgx.NamedArgs{
		"item_id":   comment.ItemID,
		"author_id": comment.AuthorID,
		"text":      comment.Text,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCommentView(row)
	if err != nil {
		return domain.CommentView{}, fmt.Errorf("repo.CommentRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgCommentRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.CommentView, error) {
	const q = `
		SELECT c.id, c.text, u.name, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = @item_id
		ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"item_id": itemID})
	if err != nil {
		return nil, fmt.Errorf("repo.CommentRepo.ListByItem: %w", err)
	}
	defer rows.Close()

	var comments []domain.CommentView
	for rows.Next() {
		c, err := scanCommentView(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CommentRepo.ListByItem: scan: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CommentRepo.ListByItem: rows: %w", err)
	}

	return comments, nil
}

// scanCommentView maps a joined comment/author row into a domain.CommentView.
func scanCommentView(s scanner) (domain.CommentView, error) {
	var (
		c  domain.CommentView
		id pgtype.UUID
	)

	err := s.Scan(&id, &c.Text, &c.AuthorName, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CommentView{}, domain.ErrNotFound
		}
		return domain.CommentView{}, err
	}

	c.ID = uuid.UUID(id.Bytes)

	return c, nil
}
