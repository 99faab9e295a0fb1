package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"rento-service/internal/config"
	"rento-service/internal/models"
)

// Key prefixes
const (
	RevokedTokenPrefix = "auth:revoked:"
	NoticesPrefix      = "notices:tenant:"
)

// noticeCacheTTL bounds staleness of the tenant notices page between
// invalidations
const noticeCacheTTL = 5 * time.Minute

// Client wraps the Redis client with application-specific methods
type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping checks the connection to Redis
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// RevokeToken marks a session token revoked until its natural expiry
func (c *Client) RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	return c.rdb.Set(ctx, RevokedTokenPrefix+token, "1", ttl).Err()
}

// IsTokenRevoked reports whether a token has been revoked
func (c *Client) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	result, err := c.rdb.Exists(ctx, RevokedTokenPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return result > 0, nil
}

// GetNotices returns a tenant's cached notice list, if present
func (c *Client) GetNotices(ctx context.Context, tenantID uuid.UUID) ([]models.Notice, bool) {
	data, err := c.rdb.Get(ctx, NoticesPrefix+tenantID.String()).Bytes()
	if err != nil {
		return nil, false
	}
	var notices []models.Notice
	if err := json.Unmarshal(data, &notices); err != nil {
		return nil, false
	}
	return notices, true
}

// SetNotices caches a tenant's visible notice list
func (c *Client) SetNotices(ctx context.Context, tenantID uuid.UUID, notices []models.Notice) error {
	data, err := json.Marshal(notices)
	if err != nil {
		return fmt.Errorf("failed to marshal notices: %w", err)
	}
	return c.rdb.Set(ctx, NoticesPrefix+tenantID.String(), data, noticeCacheTTL).Err()
}

// InvalidateNotices drops every cached notice list. A broadcast can
// change what any tenant sees, so invalidation is global.
func (c *Client) InvalidateNotices(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, NoticesPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
