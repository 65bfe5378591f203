package repository

import (
	"context"
	"errors"

	"ticketbari-api/internal/model"
	apperrors "ticketbari-api/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const uniqueViolationCode = "23505"

type PaymentRepository interface {
	ListByUser(ctx context.Context, userEmail string) ([]*model.Payment, error)
	StatsByVendor(ctx context.Context, vendorEmail string) (int, decimal.Decimal, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) (*model.Payment, error)
}

type PaymentRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &PaymentRepositoryImpl{
		pool: pool,
	}
}

// Create inserts the immutable charge record. The unique constraint on
// transaction_id makes recording idempotent: a replay surfaces as
// ErrDuplicatePayment before any other write happens.
func (r *PaymentRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) (*model.Payment, error) {
	query := `
		INSERT INTO payments (
			user_email, booking_id, ticket_id, vendor_email,
			quantity, amount, transaction_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_email, booking_id, ticket_id, vendor_email,
			quantity, amount, transaction_id, paid_at
	`

	err := tx.QueryRow(ctx, query,
		payment.UserEmail, payment.BookingID, payment.TicketID,
		payment.VendorEmail, payment.Quantity, payment.Amount,
		payment.TransactionID,
	).Scan(
		&payment.ID,
		&payment.UserEmail,
		&payment.BookingID,
		&payment.TicketID,
		&payment.VendorEmail,
		&payment.Quantity,
		&payment.Amount,
		&payment.TransactionID,
		&payment.PaidAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.ErrDuplicatePayment
		}
		return nil, err
	}

	return payment, nil
}

func (r *PaymentRepositoryImpl) ListByUser(ctx context.Context, userEmail string) ([]*model.Payment, error) {
	query := `
		SELECT id, user_email, booking_id, ticket_id, vendor_email,
			quantity, amount, transaction_id, paid_at
		FROM payments
		WHERE user_email = $1
		ORDER BY paid_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]*model.Payment, 0)
	for rows.Next() {
		var payment model.Payment
		err := rows.Scan(
			&payment.ID,
			&payment.UserEmail,
			&payment.BookingID,
			&payment.TicketID,
			&payment.VendorEmail,
			&payment.Quantity,
			&payment.Amount,
			&payment.TransactionID,
			&payment.PaidAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, &payment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *PaymentRepositoryImpl) StatsByVendor(ctx context.Context, vendorEmail string) (int, decimal.Decimal, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(amount), 0)
		FROM payments
		WHERE vendor_email = $1
	`

	var count int
	var revenue decimal.Decimal
	err := r.pool.QueryRow(ctx, query, vendorEmail).Scan(&count, &revenue)
	if err != nil {
		return 0, decimal.Zero, err
	}

	return count, revenue, nil
}
