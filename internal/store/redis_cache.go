package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abd0-omar/url-shortener-with-a-twist/internal/shortener"
)

// RedisCacheRepository wraps a link repository with Redis caching for
// resolution reads. Links are immutable once created, so cached entries can
// never go stale; the TTL only bounds memory use.
type RedisCacheRepository struct {
	repo   shortener.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	repo shortener.Repository, client *redis.Client, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		repo:   repo,
		client: client,
		prefix: "link:",
		ttl:    ttl,
	}
}

// SaveLink stores a link in the underlying repository and, on success,
// writes through to the cache.
func (r *RedisCacheRepository) SaveLink(ctx context.Context, link *shortener.Link) error {
	if err := r.repo.SaveLink(ctx, link); err != nil {
		return err
	}

	r.cacheLink(ctx, link)

	return nil
}

// GetLink retrieves a link by id, checking the cache first.
func (r *RedisCacheRepository) GetLink(ctx context.Context, id string) (*shortener.Link, error) {
	if link, err := r.getFromCache(ctx, id); err == nil {
		return link, nil
	}

	link, err := r.repo.GetLink(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, id string) (*shortener.Link, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+id).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, shortener.ErrNotFound
	}

	var createdAt time.Time

	if ts, ok := result["created_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			createdAt = time.Unix(0, nanos)
		}
	}

	return &shortener.Link{
		ID:        result["id"],
		TargetURL: result["target_url"],
		CreatedAt: createdAt,
	}, nil
}

func (r *RedisCacheRepository) cacheLink(ctx context.Context, link *shortener.Link) {
	pipe := r.client.Pipeline()
	key := r.prefix + link.ID

	pipe.HSet(ctx, key, map[string]interface{}{
		"id":         link.ID,
		"target_url": link.TargetURL,
		"created_at": link.CreatedAt.UnixNano(),
	})

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	_, _ = pipe.Exec(ctx)
}

// Compile-time check.
var _ shortener.Repository = (*RedisCacheRepository)(nil)
