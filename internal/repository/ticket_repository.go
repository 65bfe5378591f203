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

// adSlotLockKey serializes advertisement-slot changes across connections so
// the six-slot limit cannot be raced past between count and set.
const adSlotLockKey = int64(0x7469636b6574) // "ticket"

type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	ListByVendor(ctx context.Context, vendorEmail string) ([]*model.Ticket, error)
	ListApproved(ctx context.Context) ([]*model.Ticket, error)
	ListAdvertised(ctx context.Context, limit int) ([]*model.Ticket, error)
	ListLatest(ctx context.Context, limit int) ([]*model.Ticket, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.TicketStatus) (*model.Ticket, error)
	SetAdvertised(ctx context.Context, id uuid.UUID, advertised bool) error
	CountByVendor(ctx context.Context, vendorEmail string) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Transaction methods
	DecrementQuantity(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error
	HideByVendor(ctx context.Context, tx pgx.Tx, vendorEmail string) error
}

type TicketRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &TicketRepositoryImpl{
		pool: pool,
	}
}

const ticketColumns = `id, vendor_email, title, description, price, quantity,
		image_url, event_date, location, status, is_advertised, is_fraud,
		created_at, updated_at`

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	var ticket model.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.VendorEmail,
		&ticket.Title,
		&ticket.Description,
		&ticket.Price,
		&ticket.Quantity,
		&ticket.ImageURL,
		&ticket.EventDate,
		&ticket.Location,
		&ticket.Status,
		&ticket.IsAdvertised,
		&ticket.IsFraud,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *TicketRepositoryImpl) queryTickets(ctx context.Context, query string, args ...interface{}) ([]*model.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*model.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *TicketRepositoryImpl) Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	query := `
		INSERT INTO tickets (
			vendor_email, title, description, price, quantity,
			image_url, event_date, location, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + ticketColumns

	row := r.pool.QueryRow(ctx, query,
		ticket.VendorEmail, ticket.Title, ticket.Description, ticket.Price,
		ticket.Quantity, ticket.ImageURL, ticket.EventDate, ticket.Location,
		model.TicketStatusPending,
	)

	return scanTicket(row)
}

func (r *TicketRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE id = $1
	`

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepositoryImpl) ListByVendor(ctx context.Context, vendorEmail string) ([]*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE vendor_email = $1
		ORDER BY created_at DESC
	`
	return r.queryTickets(ctx, query, vendorEmail)
}

func (r *TicketRepositoryImpl) ListApproved(ctx context.Context) ([]*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE status = $1 AND is_fraud = FALSE
		ORDER BY created_at DESC
	`
	return r.queryTickets(ctx, query, model.TicketStatusApproved)
}

func (r *TicketRepositoryImpl) ListAdvertised(ctx context.Context, limit int) ([]*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE status = $1 AND is_advertised = TRUE AND is_fraud = FALSE
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.queryTickets(ctx, query, model.TicketStatusApproved, limit)
}

func (r *TicketRepositoryImpl) ListLatest(ctx context.Context, limit int) ([]*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE status = $1 AND is_fraud = FALSE
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.queryTickets(ctx, query, model.TicketStatusApproved, limit)
}

func (r *TicketRepositoryImpl) SetStatus(ctx context.Context, id uuid.UUID, status model.TicketStatus) (*model.Ticket, error) {
	query := `
		UPDATE tickets
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + ticketColumns

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, status, time.Now().UTC(), id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return ticket, nil
}

// SetAdvertised enforces the six-slot limit under an advisory lock so two
// concurrent requests cannot both pass the count. Clearing the flag is
// unconditional.
func (r *TicketRepositoryImpl) SetAdvertised(ctx context.Context, id uuid.UUID, advertised bool) error {
	if !advertised {
		result, err := r.pool.Exec(ctx, `
			UPDATE tickets
			SET is_advertised = FALSE, updated_at = $1
			WHERE id = $2
		`, time.Now().UTC(), id)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrTicketNotFound
		}
		return nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, adSlotLockKey); err != nil {
		return err
	}

	var count int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM tickets WHERE is_advertised = TRUE AND id <> $1
	`, id).Scan(&count)
	if err != nil {
		return err
	}
	if count >= model.MaxAdvertisedTickets {
		return apperrors.ErrAdSlotsFull
	}

	result, err := tx.Exec(ctx, `
		UPDATE tickets
		SET is_advertised = TRUE, updated_at = $1
		WHERE id = $2
	`, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}

	return tx.Commit(ctx)
}

func (r *TicketRepositoryImpl) CountByVendor(ctx context.Context, vendorEmail string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM tickets WHERE vendor_email = $1
	`, vendorEmail).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TicketRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}

	return nil
}

// DecrementQuantity applies the decrement and the non-negativity check in a
// single conditional update.
func (r *TicketRepositoryImpl) DecrementQuantity(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error {
	query := `
		UPDATE tickets
		SET quantity = quantity - $1, updated_at = $2
		WHERE id = $3 AND quantity >= $1
	`

	result, err := tx.Exec(ctx, query, quantity, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrTicketNotFound
		}
		return apperrors.ErrInsufficientInventory
	}

	return nil
}

func (r *TicketRepositoryImpl) HideByVendor(ctx context.Context, tx pgx.Tx, vendorEmail string) error {
	query := `
		UPDATE tickets
		SET status = $1, is_fraud = TRUE, is_advertised = FALSE, updated_at = $2
		WHERE vendor_email = $3
	`

	_, err := tx.Exec(ctx, query, model.TicketStatusHidden, time.Now().UTC(), vendorEmail)
	return err
}
