package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is an immutable record of a completed charge. TransactionID is
// unique and doubles as the idempotency key for payment recording.
type Payment struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	UserEmail     string          `json:"user_email" db:"user_email"`
	BookingID     uuid.UUID       `json:"booking_id" db:"booking_id"`
	TicketID      uuid.UUID       `json:"ticket_id" db:"ticket_id"`
	VendorEmail   string          `json:"vendor_email" db:"vendor_email"`
	Quantity      int             `json:"quantity" db:"quantity"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	TransactionID string          `json:"transaction_id" db:"transaction_id"`
	PaidAt        time.Time       `json:"paid_at" db:"paid_at"`
}

type RecordPaymentRequest struct {
	BookingID     uuid.UUID       `json:"booking_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	TransactionID string          `json:"transaction_id" binding:"required"`
}

type CreateIntentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// VendorStats aggregates a single vendor's marketplace activity.
type VendorStats struct {
	VendorEmail  string          `json:"vendor_email"`
	TicketCount  int             `json:"ticket_count"`
	PaymentCount int             `json:"payment_count"`
	Revenue      decimal.Decimal `json:"revenue"`
}
