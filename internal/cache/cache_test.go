package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"gigboard/internal/cache"
	"gigboard/internal/models"
)

// TestNoopCache checks the disabled-cache stand-in
func TestNoopCache(t *testing.T) {
	noop := cache.Noop{}
	ctx := context.Background()

	var dest []models.CityVenues
	assert.False(t, noop.Get(ctx, "board:venues", &dest))

	// Set and Invalidate must be safe no-ops
	noop.Set(ctx, "board:venues", []models.CityVenues{})
	noop.Invalidate(ctx, "board:venues", "board:artists")
}

// TestCacheIntegration exercises the board cache against a real Redis container
func TestCacheIntegration(t *testing.T) {
	// Skip if short test mode
	if testing.Short() {
		t.Skip("Skipping Redis integration test in short mode")
	}

	ctx := context.Background()
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:latest",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer func() {
		_ = redisContainer.Terminate(ctx)
	}()

	endpoint, err := redisContainer.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	defer client.Close()
	require.NoError(t, client.Ping(ctx).Err())

	boardCache := cache.New(client, time.Minute)

	board := []models.CityVenues{
		{
			City:  "San Francisco",
			State: "CA",
			Venues: []models.VenueSummary{
				{ID: 1, Name: "The Musical Hop", NumUpcomingShows: 1},
			},
		},
	}

	// Miss before any write
	var loaded []models.CityVenues
	assert.False(t, boardCache.Get(ctx, "board:venues", &loaded))

	// Round trip
	boardCache.Set(ctx, "board:venues", board)
	require.True(t, boardCache.Get(ctx, "board:venues", &loaded))
	assert.Equal(t, board, loaded)

	// Invalidation brings back the miss
	boardCache.Invalidate(ctx, "board:venues")
	assert.False(t, boardCache.Get(ctx, "board:venues", &loaded))

	// A corrupt payload is dropped instead of served
	require.NoError(t, client.Set(ctx, "board:venues", "not json", time.Minute).Err())
	assert.False(t, boardCache.Get(ctx, "board:venues", &loaded))
	_, err = client.Get(ctx, "board:venues").Result()
	assert.ErrorIs(t, err, redis.Nil)
}
