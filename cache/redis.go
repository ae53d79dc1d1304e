package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"cocktail-bar-api/config"
	"cocktail-bar-api/models"
)

const cocktailListKey = "cocktails:list"

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// CocktailCache stores the unfiltered cocktail listing in redis. Redis
// failures are logged and treated as a miss.
type CocktailCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewCocktailCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *CocktailCache {
	return &CocktailCache{client: client, ttl: ttl, log: log}
}

func (c *CocktailCache) GetList(ctx context.Context) ([]models.Cocktail, bool) {
	raw, err := c.client.Get(ctx, cocktailListKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("cocktail cache read failed")
		}
		return nil, false
	}

	var cocktails []models.Cocktail
	if err := json.Unmarshal(raw, &cocktails); err != nil {
		c.log.Warn().Err(err).Msg("cocktail cache entry corrupt")
		return nil, false
	}
	return cocktails, true
}

func (c *CocktailCache) SetList(ctx context.Context, cocktails []models.Cocktail) {
	raw, err := json.Marshal(cocktails)
	if err != nil {
		c.log.Warn().Err(err).Msg("cocktail cache encode failed")
		return
	}
	if err := c.client.Set(ctx, cocktailListKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cocktail cache write failed")
	}
}

func (c *CocktailCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, cocktailListKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cocktail cache invalidate failed")
	}
}
