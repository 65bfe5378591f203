package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ticketbari-api/internal/model"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTickets(t *testing.T) []*model.Ticket {
	t.Helper()
	return []*model.Ticket{
		{
			ID:          uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			VendorEmail: "vendor@example.com",
			Title:       "Concert",
			Price:       decimal.NewFromInt(500),
			Quantity:    10,
			Status:      model.TicketStatusApproved,
		},
	}
}

func TestRedisListingCache_GetTickets_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisListingCache(db)

	mock.ExpectGet(KeyApprovedTickets).RedisNil()

	tickets, found, err := c.GetTickets(context.Background(), KeyApprovedTickets)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, tickets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisListingCache_GetTickets_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisListingCache(db)

	expected := sampleTickets(t)
	raw, err := json.Marshal(expected)
	require.NoError(t, err)

	mock.ExpectGet(KeyLatestTickets).SetVal(string(raw))

	tickets, found, err := c.GetTickets(context.Background(), KeyLatestTickets)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, tickets, 1)
	assert.Equal(t, expected[0].ID, tickets[0].ID)
	assert.True(t, expected[0].Price.Equal(tickets[0].Price))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisListingCache_SetTickets(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisListingCache(db)

	tickets := sampleTickets(t)
	raw, err := json.Marshal(tickets)
	require.NoError(t, err)

	mock.ExpectSet(KeyAdvertisedTickets, raw, 30*time.Second).SetVal("OK")

	require.NoError(t, c.SetTickets(context.Background(), KeyAdvertisedTickets, tickets))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisListingCache_Invalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisListingCache(db)

	mock.ExpectDel(KeyApprovedTickets, KeyAdvertisedTickets, KeyLatestTickets).SetVal(3)

	require.NoError(t, c.Invalidate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
