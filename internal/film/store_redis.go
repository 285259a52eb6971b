// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/filmdeck/internal/platform/constants"
)

// CachedSource is a read-through Redis cache in front of another [Source].
// Cache failures are logged and never fail a load.
type CachedSource struct {
	next   Source
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedSource wraps next with a cache whose entries expire after ttl.
func NewCachedSource(next Source, client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *CachedSource {
	return &CachedSource{next: next, client: client, ttl: ttl, logger: logger}
}

// Films returns the cached film list, filling it from the wrapped source on a miss.
func (cache *CachedSource) Films(context context.Context) ([]FilmRecord, error) {
	return readThrough(context, cache, constants.RedisKeyFilms, func() ([]FilmRecord, error) {
		return cache.next.Films(context)
	})
}

// Comments returns the cached comments of filmID, filling them on a miss.
func (cache *CachedSource) Comments(context context.Context, filmID string) ([]CommentRecord, error) {
	return readThrough(context, cache, constants.RedisPrefixFilmComment+filmID, func() ([]CommentRecord, error) {
		return cache.next.Comments(context, filmID)
	})
}

// Invalidate drops the film list and the comments of the given films.
func (cache *CachedSource) Invalidate(context context.Context, filmIDs ...string) error {
	keys := []string{constants.RedisKeyFilms}
	for _, id := range filmIDs {
		keys = append(keys, constants.RedisPrefixFilmComment+id)
	}
	return cache.client.Del(context, keys...).Err()
}

func readThrough[T any](context context.Context, cache *CachedSource, key string, fill func() ([]T, error)) ([]T, error) {

	// 1. Try the cache
	payload, err := cache.client.Get(context, key).Bytes()
	switch {
	case err == nil:
		var cached []T
		if jsonErr := json.Unmarshal(payload, &cached); jsonErr == nil {
			return cached, nil
		}
		cache.logger.Warn("catalog_cache_corrupt", slog.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		cache.logger.Warn("catalog_cache_unavailable", slog.String("key", key), slog.String("error", err.Error()))
	}

	// 2. Miss: ask the wrapped source
	records, err := fill()
	if err != nil {
		return nil, err
	}

	// 3. Store for the next reader
	encoded, err := json.Marshal(records)
	if err == nil {
		err = cache.client.Set(context, key, encoded, cache.ttl).Err()
	}
	if err != nil {
		cache.logger.Warn("catalog_cache_store_failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	return records, nil
}
