// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/platform/apperr"
)

func newCache(t *testing.T, source film.Source) (*film.CachedSource, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return film.NewCachedSource(source, client, time.Minute, discardLogger), server
}

/*
TestCachedSource_ReadThrough serves the second read from Redis.
*/
func TestCachedSource_ReadThrough(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{
		films:    []film.FilmRecord{filmRecord("0", "c1")},
		comments: map[string][]film.CommentRecord{"0": {commentRecord("c1")}},
	}
	cache, server := newCache(t, source)

	// 1. Miss fills the cache
	first, err := cache.Films(ctx)
	require.NoError(t, err)
	assert.True(t, server.Exists("catalog:films"))

	// 2. Hit does not reach the source
	second, err := cache.Films(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, source.filmCalls.Load())

	_, err = cache.Comments(ctx, "0")
	require.NoError(t, err)
	comments, err := cache.Comments(ctx, "0")
	require.NoError(t, err)
	assert.Equal(t, "c1", comments[0].ID)
	assert.EqualValues(t, 1, source.commentCalls.Load())

	// 3. TTL expiry and invalidation both force a refill
	server.FastForward(2 * time.Minute)
	_, err = cache.Films(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, source.filmCalls.Load())

	require.NoError(t, cache.Invalidate(ctx, "0"))
	assert.False(t, server.Exists("catalog:comments:0"))
	_, err = cache.Comments(ctx, "0")
	require.NoError(t, err)
	assert.EqualValues(t, 2, source.commentCalls.Load())
}

/*
TestCachedSource_Degrades falls through to the source when Redis is down or
the entry is corrupt, and never caches a failure.
*/
func TestCachedSource_Degrades(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{films: []film.FilmRecord{filmRecord("0")}}
	cache, server := newCache(t, source)

	// Corrupt entry
	require.NoError(t, server.Set("catalog:films", "{not json"))
	records, err := cache.Films(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	// Source failure propagates and is not stored
	server.FlushAll()
	source.filmsErr = apperr.LoadError("down", nil)
	_, err = cache.Films(ctx)
	assert.True(t, apperr.HasCode(err, apperr.CodeLoad))
	assert.False(t, server.Exists("catalog:films"))

	// Redis unavailable
	source.filmsErr = nil
	server.Close()
	records, err = cache.Films(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
