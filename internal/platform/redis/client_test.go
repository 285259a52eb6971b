// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/taibuivan/filmdeck/internal/platform/redis"
)

/*
TestNewClient connects to an in-memory server and fails on a bad URL.
*/
func TestNewClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := redisstore.NewClient(context.Background(), "redis://"+server.Addr()+"/0", slog.Default())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, redisstore.Ping(context.Background(), client))

	_, err = redisstore.NewClient(context.Background(), "not a url", slog.Default())
	assert.Error(t, err)
}

/*
TestPing_ServerDown reports an error once the server is gone.
*/
func TestPing_ServerDown(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := redisstore.NewClient(context.Background(), "redis://"+server.Addr(), slog.Default())
	require.NoError(t, err)
	defer client.Close()

	server.Close()
	assert.Error(t, redisstore.Ping(context.Background(), client))
}
