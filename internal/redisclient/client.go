package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"inquiry-service/internal/models"

	"github.com/go-redis/redis/v8"
)

// Client caches inquiry list payloads. Lists are read far more often
// than inquiries change (sellers refreshing their inbox), so a short
// TTL plus write-time invalidation keeps reads off Postgres.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates a new Redis client and verifies connectivity
func NewClient(addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func buyerListKey(buyerID int64) string {
	return fmt.Sprintf("inquiries:buyer:%d", buyerID)
}

func sellerListKey(sellerID int64) string {
	return fmt.Sprintf("inquiries:seller:%d", sellerID)
}

// GetBuyerList returns the cached outgoing list for a buyer. A miss or
// any Redis error reports !ok and the caller falls through to the DB.
func (c *Client) GetBuyerList(ctx context.Context, buyerID int64) ([]models.InquiryDetail, bool) {
	return c.getList(ctx, buyerListKey(buyerID))
}

// SetBuyerList caches a buyer's outgoing list
func (c *Client) SetBuyerList(ctx context.Context, buyerID int64, items []models.InquiryDetail) {
	c.setList(ctx, buyerListKey(buyerID), items)
}

// GetSellerList returns the cached incoming list for a seller
func (c *Client) GetSellerList(ctx context.Context, sellerID int64) ([]models.InquiryDetail, bool) {
	return c.getList(ctx, sellerListKey(sellerID))
}

// SetSellerList caches a seller's incoming list
func (c *Client) SetSellerList(ctx context.Context, sellerID int64, items []models.InquiryDetail) {
	c.setList(ctx, sellerListKey(sellerID), items)
}

// Invalidate drops both parties' cached lists after a write
func (c *Client) Invalidate(ctx context.Context, buyerID, sellerID int64) {
	c.rdb.Del(ctx, buyerListKey(buyerID), sellerListKey(sellerID))
}

func (c *Client) getList(ctx context.Context, key string) ([]models.InquiryDetail, bool) {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var items []models.InquiryDetail
	if err := json.Unmarshal(payload, &items); err != nil {
		c.rdb.Del(ctx, key)
		return nil, false
	}
	return items, true
}

func (c *Client) setList(ctx context.Context, key string, items []models.InquiryDetail) {
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, payload, c.ttl)
}
