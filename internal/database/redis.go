package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minchan-k/cinelog/internal/models"
)

// RedisClient wraps the redis client.
type RedisClient struct {
	*redis.Client
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(cfg RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("unable to ping Redis: %w", err)
	}

	log.Println("Connected to Redis")

	return &RedisClient{Client: client}, nil
}

// Close closes the Redis connection.
func (r *RedisClient) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Health checks the Redis connection.
func (r *RedisClient) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return r.Ping(ctx).Err()
}

// SearchCache keeps recently decoded search responses so repeated queries
// skip the upstream API. A miss is never an error to the caller.
type SearchCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewSearchCache creates a search cache with the given entry TTL.
func NewSearchCache(client *RedisClient, ttl time.Duration) *SearchCache {
	if ttl == 0 {
		ttl = 10 * time.Minute
	}
	return &SearchCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *SearchCache) key(field, query string) string {
	return fmt.Sprintf("search:%s:%s", field, query)
}

// Get returns the cached records for a query, or ok=false on miss or any
// cache failure.
func (c *SearchCache) Get(ctx context.Context, field, query string) ([]models.MovieRecord, bool) {
	val, err := c.client.Get(ctx, c.key(field, query)).Bytes()
	if err != nil {
		return nil, false
	}

	var records []models.MovieRecord
	if err := json.Unmarshal(val, &records); err != nil {
		return nil, false
	}
	return records, true
}

// Set stores the records for a query. Failures are dropped; the cache is
// best-effort.
func (c *SearchCache) Set(ctx context.Context, field, query string, records []models.MovieRecord) {
	val, err := json.Marshal(records)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.key(field, query), val, c.ttl)
}
