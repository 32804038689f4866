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

// BookingRepo defines the persistence operations for Bookings.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
//
// Bookings are never deleted; the only mutation is the status transition
// performed by UpdateStatus.
type BookingRepo interface {
	// Create inserts a new booking and returns the persisted record (with
	// DB-generated id and created_at populated). A write rejected by the
	// confirmed-interval exclusion constraint returns domain.ErrConflict.
	Create(ctx context.Context, booking domain.Booking) (domain.Booking, error)

	// GetByID retrieves a single booking by its UUID primary key.
	// Returns domain.ErrNotFound if no booking with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error)

	// ListByBooker returns all bookings made by the given booker,
	// ordered by start_date descending.
	ListByBooker(ctx context.Context, bookerID uuid.UUID) ([]domain.Booking, error)

	// ListByOwnerItems returns all bookings of items owned by the given
	// owner, ordered by start_date descending.
	ListByOwnerItems(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error)

	// ListConfirmedByItem returns the item's confirmed bookings ordered by
	// start_date ascending. This is the bounded scan behind overlap checks,
	// last/next lookups, and comment eligibility.
	ListConfirmedByItem(ctx context.Context, itemID uuid.UUID) ([]domain.Booking, error)

	// UpdateStatus atomically moves a booking from one status to another
	// and returns the updated record. The update is conditioned on the
	// current status, so of two concurrent transitions exactly one wins;
	// the loser gets domain.ErrValidation ("cannot change booking status").
	// A transition rejected by the confirmed-interval exclusion constraint
	// returns domain.ErrConflict.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) (domain.Booking, error)
}

// pgBookingRepo is the Postgres implementation of BookingRepo.
type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

const bookingColumns = `id, item_id, booker_id, start_date, end_date, status, created_at`

func (r *pgBookingRepo) Create(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	const q = `
		INSERT INTO bookings (item_id, booker_id, start_date, end_date, status)
		VALUES (@item_id, @booker_id, @start_date, @end_date, @status)
		RETURNING ` + bookingColumns

	args := pgx.NamedArgs{
		"item_id":    booking.ItemID,
		"booker_id":  booking.BookerID,
		"start_date": booking.Start,
		"end_date":   booking.End,
		"status":     string(booking.Status),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanBooking(row)
	if err != nil {
		if isConstraintConflict(err) {
			return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: %w: intersects confirmed booking", domain.ErrConflict)
		}
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanBooking(row)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgBookingRepo) ListByBooker(ctx context.Context, bookerID uuid.UUID) ([]domain.Booking, error) {
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE booker_id = @booker_id
		ORDER BY start_date DESC`

	return r.list(ctx, "ListByBooker", q, pgx.NamedArgs{"booker_id": bookerID})
}

func (r *pgBookingRepo) ListByOwnerItems(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error) {
	const q = `
		SELECT b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status, b.created_at
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE i.owner_id = @owner_id
		ORDER BY b.start_date DESC`

	return r.list(ctx, "ListByOwnerItems", q, pgx.NamedArgs{"owner_id": ownerID})
}

func (r *pgBookingRepo) ListConfirmedByItem(ctx context.Context, itemID uuid.UUID) ([]domain.Booking, error) {
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE item_id = @item_id AND status = @status
		ORDER BY start_date ASC`

	args := pgx.NamedArgs{"item_id": itemID, "status": string(domain.StatusConfirmed)}
	return r.list(ctx, "ListConfirmedByItem", q, args)
}

func (r *pgBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) (domain.Booking, error) {
	const q = `
		UPDATE bookings
		SET status = @to
		WHERE id = @id AND status = @from
		RETURNING ` + bookingColumns

	args := pgx.NamedArgs{
		"id":   id,
		"from": string(from),
		"to":   string(to),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanBooking(row)
	if err != nil {
		// No row matched: either the booking is gone or another transition
		// won the race. Both mean the precondition no longer holds.
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Booking{}, fmt.Errorf("repo.BookingRepo.UpdateStatus: %w: cannot change booking status", domain.ErrValidation)
		}
		if isConstraintConflict(err) {
			return domain.Booking{}, fmt.Errorf("repo.BookingRepo.UpdateStatus: %w: intersects confirmed booking", domain.ErrConflict)
		}
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.UpdateStatus: %w", err)
	}
	return result, nil
}

// list runs a query returning booking rows and scans them all.
func (r *pgBookingRepo) list(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.BookingRepo.%s: scan: %w", op, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.%s: rows: %w", op, err)
	}

	return bookings, nil
}

// scanBooking maps a single database row into a domain.Booking.
func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b        domain.Booking
		id       pgtype.UUID
		itemID   pgtype.UUID
		bookerID pgtype.UUID
		status   string
	)

	err := s.Scan(&id, &itemID, &bookerID, &b.Start, &b.End, &status, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}

	b.ID = uuid.UUID(id.Bytes)
	b.ItemID = uuid.UUID(itemID.Bytes)
	b.BookerID = uuid.UUID(bookerID.Bytes)
	b.Status = domain.Status(status)

	return b, nil
}
