package repository

import (
	"context"
	"time"

	"ticketbari-api/internal/model"
	apperrors "ticketbari-api/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	ListByUser(ctx context.Context, userEmail string) ([]*model.Booking, error)
	ListByVendor(ctx context.Context, vendorEmail string) ([]*model.Booking, error)
	SetDecision(ctx context.Context, id uuid.UUID, status model.BookingStatus) (*model.Booking, error)

	// Transaction methods
	MarkPaid(ctx context.Context, tx pgx.Tx, id uuid.UUID, transactionID string) (*model.Booking, error)
}

type BookingRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &BookingRepositoryImpl{
		pool: pool,
	}
}

const bookingColumns = `id, user_email, ticket_id, vendor_email, ticket_title,
		quantity, unit_price, status, transaction_id, created_at, updated_at`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserEmail,
		&booking.TicketID,
		&booking.VendorEmail,
		&booking.TicketTitle,
		&booking.Quantity,
		&booking.UnitPrice,
		&booking.Status,
		&booking.TransactionID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*model.Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*model.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepositoryImpl) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	query := `
		INSERT INTO bookings (
			user_email, ticket_id, vendor_email, ticket_title,
			quantity, unit_price, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + bookingColumns

	row := r.pool.QueryRow(ctx, query,
		booking.UserEmail, booking.TicketID, booking.VendorEmail,
		booking.TicketTitle, booking.Quantity, booking.UnitPrice,
		model.BookingStatusPending,
	)

	return scanBooking(row)
}

func (r *BookingRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`

	booking, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	return booking, nil
}

func (r *BookingRepositoryImpl) ListByUser(ctx context.Context, userEmail string) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_email = $1
		ORDER BY created_at DESC
	`
	return r.queryBookings(ctx, query, userEmail)
}

func (r *BookingRepositoryImpl) ListByVendor(ctx context.Context, vendorEmail string) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE vendor_email = $1
		ORDER BY created_at DESC
	`
	return r.queryBookings(ctx, query, vendorEmail)
}

// SetDecision records the vendor's accept/reject verdict. The status guard
// in the WHERE clause keeps decided or paid bookings immutable.
func (r *BookingRepositoryImpl) SetDecision(ctx context.Context, id uuid.UUID, status model.BookingStatus) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.pool.QueryRow(ctx, query, status, time.Now().UTC(), id, model.BookingStatusPending))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, r.noRowsReason(ctx, id)
		}
		return nil, err
	}

	return booking, nil
}

func (r *BookingRepositoryImpl) MarkPaid(ctx context.Context, tx pgx.Tx, id uuid.UUID, transactionID string) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, transaction_id = $2, updated_at = $3
		WHERE id = $4 AND status IN ($5, $6)
		RETURNING ` + bookingColumns

	booking, err := scanBooking(tx.QueryRow(ctx, query,
		model.BookingStatusPaid, transactionID, time.Now().UTC(), id,
		model.BookingStatusPending, model.BookingStatusAccepted,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, r.noRowsReason(ctx, id)
		}
		return nil, err
	}

	return booking, nil
}

// noRowsReason distinguishes a missing booking from a guarded update that
// matched no rows because of its current status.
func (r *BookingRepositoryImpl) noRowsReason(ctx context.Context, id uuid.UUID) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrBookingNotFound
	}
	return apperrors.ErrInvalidTransition
}
