package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus lifecycle. The vendor decides pending -> accepted|rejected;
// payment completion moves pending|accepted -> paid. Paid is terminal.
type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusAccepted BookingStatus = "accepted"
	BookingStatusRejected BookingStatus = "rejected"
	BookingStatusPaid     BookingStatus = "paid"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected, BookingStatusPaid:
		return true
	}
	return false
}

// IsVendorDecision reports whether the status is one a vendor may set.
func (s BookingStatus) IsVendorDecision() bool {
	return s == BookingStatusAccepted || s == BookingStatusRejected
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	transitions := map[BookingStatus][]BookingStatus{
		BookingStatusPending:  {BookingStatusAccepted, BookingStatusRejected, BookingStatusPaid},
		BookingStatusAccepted: {BookingStatusPaid},
		BookingStatusRejected: {},
		BookingStatusPaid:     {},
	}

	for _, status := range transitions[s] {
		if status == target {
			return true
		}
	}
	return false
}

// Booking snapshots the ticket's vendor and unit price at creation time.
type Booking struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	UserEmail     string          `json:"user_email" db:"user_email"`
	TicketID      uuid.UUID       `json:"ticket_id" db:"ticket_id"`
	VendorEmail   string          `json:"vendor_email" db:"vendor_email"`
	TicketTitle   string          `json:"ticket_title" db:"ticket_title"`
	Quantity      int             `json:"quantity" db:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price" db:"unit_price"`
	Status        BookingStatus   `json:"status" db:"status"`
	TransactionID *string         `json:"transaction_id,omitempty" db:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateBookingRequest struct {
	TicketID uuid.UUID `json:"ticket_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

type SetBookingStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}
