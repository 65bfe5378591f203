package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to accepted", BookingStatusPending, BookingStatusAccepted, true},
		{"pending to rejected", BookingStatusPending, BookingStatusRejected, true},
		{"pending to paid", BookingStatusPending, BookingStatusPaid, true},
		{"accepted to paid", BookingStatusAccepted, BookingStatusPaid, true},
		{"accepted to rejected", BookingStatusAccepted, BookingStatusRejected, false},
		{"rejected to paid", BookingStatusRejected, BookingStatusPaid, false},
		{"paid to accepted", BookingStatusPaid, BookingStatusAccepted, false},
		{"paid to paid", BookingStatusPaid, BookingStatusPaid, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestBookingStatus_IsVendorDecision(t *testing.T) {
	assert.True(t, BookingStatusAccepted.IsVendorDecision())
	assert.True(t, BookingStatusRejected.IsVendorDecision())
	assert.False(t, BookingStatusPending.IsVendorDecision())
	assert.False(t, BookingStatusPaid.IsVendorDecision())
}

func TestTicketStatus_IsModerationDecision(t *testing.T) {
	assert.True(t, TicketStatusApproved.IsModerationDecision())
	assert.True(t, TicketStatusRejected.IsModerationDecision())
	assert.False(t, TicketStatusPending.IsModerationDecision())
	assert.False(t, TicketStatusHidden.IsModerationDecision())
}

func TestRole_IsValid(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleVendor, RoleAdmin} {
		assert.True(t, role.IsValid())
	}
	assert.False(t, Role("superuser").IsValid())
	assert.False(t, Role("").IsValid())
}
