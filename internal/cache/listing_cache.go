package cache

import (
	"context"
	"encoding/json"
	"time"

	"ticketbari-api/internal/model"

	"github.com/redis/go-redis/v9"
)

// Public listing cache keys. Every ticket mutation invalidates all three;
// listings tolerate the short TTL of staleness.
const (
	KeyApprovedTickets   = "tickets:approved"
	KeyAdvertisedTickets = "tickets:advertised"
	KeyLatestTickets     = "tickets:latest"
)

const listingTTL = 30 * time.Second

type ListingCache interface {
	GetTickets(ctx context.Context, key string) ([]*model.Ticket, bool, error)
	SetTickets(ctx context.Context, key string, tickets []*model.Ticket) error
	Invalidate(ctx context.Context) error
}

type RedisListingCache struct {
	client *redis.Client
}

func NewRedisListingCache(client *redis.Client) ListingCache {
	return &RedisListingCache{
		client: client,
	}
}

func (c *RedisListingCache) GetTickets(ctx context.Context, key string) ([]*model.Ticket, bool, error) {
	raw, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var tickets []*model.Ticket
	if err := json.Unmarshal([]byte(raw), &tickets); err != nil {
		return nil, false, err
	}

	return tickets, true, nil
}

func (c *RedisListingCache) SetTickets(ctx context.Context, key string, tickets []*model.Ticket) error {
	raw, err := json.Marshal(tickets)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, raw, listingTTL).Err()
}

func (c *RedisListingCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, KeyApprovedTickets, KeyAdvertisedTickets, KeyLatestTickets).Err()
}
