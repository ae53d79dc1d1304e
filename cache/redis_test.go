package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cocktail-bar-api/config"
	"cocktail-bar-api/models"
)

func newCache(t *testing.T) (*CocktailCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), config.RedisConfig{Addr: srv.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewCocktailCache(client, time.Minute, zerolog.Nop()), srv
}

func TestCocktailCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, srv := newCache(t)

	_, ok := c.GetList(ctx)
	assert.False(t, ok, "empty cache is a miss")

	want := []models.Cocktail{{
		ID:          7,
		Name:        "Mojito",
		Price:       decimal.RequireFromString("8.50"),
		Category:    models.CategoryCocktail,
		IsAvailable: true,
		Ingredients: []string{"Rum", "Mint"},
		Status:      models.CocktailActive,
	}}
	c.SetList(ctx, want)
	assert.Equal(t, time.Minute, srv.TTL(cocktailListKey))

	got, ok := c.GetList(ctx)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Mojito", got[0].Name)
	assert.True(t, want[0].Price.Equal(got[0].Price))
	assert.Equal(t, []string{"Rum", "Mint"}, got[0].Ingredients)
	assert.True(t, got[0].IsAvailable)

	c.Invalidate(ctx)
	_, ok = c.GetList(ctx)
	assert.False(t, ok)
}

func TestCocktailCacheCorruptEntryIsAMiss(t *testing.T) {
	c, srv := newCache(t)
	require.NoError(t, srv.Set(cocktailListKey, "{not json"))

	_, ok := c.GetList(context.Background())
	assert.False(t, ok)
}

func TestCocktailCacheUnavailableServerIsAMiss(t *testing.T) {
	ctx := context.Background()
	c, srv := newCache(t)
	srv.Close()

	c.SetList(ctx, []models.Cocktail{{Name: "Mojito"}})
	_, ok := c.GetList(ctx)
	assert.False(t, ok)
}

func TestNewRedisClientFailsWithoutServer(t *testing.T) {
	srv, err := miniredis.Run()
	require.NoError(t, err)
	addr := srv.Addr()
	srv.Close()

	client, err := NewRedisClient(context.Background(), config.RedisConfig{Addr: addr})
	assert.ErrorContains(t, err, "redis ping")
	assert.Nil(t, client)
}
