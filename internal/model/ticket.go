package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketStatus moderation states. New tickets always start pending.
type TicketStatus string

const (
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusApproved TicketStatus = "approved"
	TicketStatusRejected TicketStatus = "rejected"
	TicketStatusHidden   TicketStatus = "hidden"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusPending, TicketStatusApproved, TicketStatusRejected, TicketStatusHidden:
		return true
	}
	return false
}

// IsModerationDecision reports whether the status is one an admin may set
// directly. Hidden is only ever applied by the fraud cascade.
func (s TicketStatus) IsModerationDecision() bool {
	return s == TicketStatusApproved || s == TicketStatusRejected
}

// MaxAdvertisedTickets is the number of concurrent featured placements.
const MaxAdvertisedTickets = 6

// Ticket is owned by a vendor through VendorEmail (weak reference, no
// cascading delete). IsFraud is a denormalized copy of the owning vendor's
// fraud flag, kept in sync transactionally by the fraud cascade.
type Ticket struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	VendorEmail  string          `json:"vendor_email" db:"vendor_email"`
	Title        string          `json:"title" db:"title"`
	Description  string          `json:"description" db:"description"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Quantity     int             `json:"quantity" db:"quantity"`
	ImageURL     *string         `json:"image_url,omitempty" db:"image_url"`
	EventDate    *time.Time      `json:"event_date,omitempty" db:"event_date"`
	Location     *string         `json:"location,omitempty" db:"location"`
	Status       TicketStatus    `json:"status" db:"status"`
	IsAdvertised bool            `json:"is_advertised" db:"is_advertised"`
	IsFraud      bool            `json:"is_fraud" db:"is_fraud"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateTicketRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	ImageURL    *string         `json:"image_url"`
	EventDate   *time.Time      `json:"event_date"`
	Location    *string         `json:"location"`
}

type SetTicketStatusRequest struct {
	Status TicketStatus `json:"status" binding:"required"`
}

type SetAdvertisedRequest struct {
	Advertised *bool `json:"advertised" binding:"required"`
}
