package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
)

const listingKey = "directory:businesses:v1"

// cachedBusiness is the stored form of a listing entry. Only ratings are
// kept from reviews; summaries are recomputed on every read.
type cachedBusiness struct {
	domain.Business
	Ratings []domain.Rating `json:"ratings"`
}

// ListingCache implements repository.ListingCache using Redis.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache creates a new Redis-backed listing cache.
func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached business index.
func (c *ListingCache) Get(ctx context.Context) ([]domain.Business, bool, error) {
	data, err := c.client.Get(ctx, listingKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get listing: %w", err)
	}

	var cached []cachedBusiness
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("unmarshal listing: %w", err)
	}

	out := make([]domain.Business, len(cached))
	for i, cb := range cached {
		b := cb.Business
		b.Reviews = make([]domain.Review, len(cb.Ratings))
		for j, r := range cb.Ratings {
			b.Reviews[j] = domain.Review{Rating: r}
		}
		out[i] = b
	}
	return out, true, nil
}

// Set stores the business index with the configured TTL.
func (c *ListingCache) Set(ctx context.Context, businesses []domain.Business) error {
	cached := make([]cachedBusiness, len(businesses))
	for i, b := range businesses {
		ratings := make([]domain.Rating, len(b.Reviews))
		for j, r := range b.Reviews {
			ratings[j] = r.Rating
		}
		cached[i] = cachedBusiness{Business: b, Ratings: ratings}
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal listing: %w", err)
	}

	if err := c.client.Set(ctx, listingKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set listing: %w", err)
	}
	return nil
}

// Invalidate drops the cached index.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, listingKey).Err(); err != nil {
		return fmt.Errorf("redis del listing: %w", err)
	}
	return nil
}
