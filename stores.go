package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"cocktail-bar-api/cache"
	"cocktail-bar-api/config"
	"cocktail-bar-api/handlers"
	"cocktail-bar-api/repository"
	"cocktail-bar-api/service"
)

type stores struct {
	users         repository.UserRepository
	cocktails     repository.CocktailRepository
	orders        repository.OrderRepository
	apiKeys       repository.APIKeyRepository
	cocktailCache service.CocktailCache
	checks        map[string]handlers.Check

	db    *gorm.DB
	redis *redis.Client
}

// openStores picks the repository backend from database.driver and connects
// the optional redis cache.
func openStores(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) (*stores, error) {
	st := &stores{checks: make(map[string]handlers.Check)}

	if cfg.Database.Driver == "memory" {
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		st.users = repository.NewMemoryUserRepository()
		st.cocktails = repository.NewMemoryCocktailRepository()
		st.orders = repository.NewMemoryOrderRepository()
		st.apiKeys = repository.NewMemoryAPIKeyRepository()
	} else {
		db, err := config.OpenDB(cfg.Database, log)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("database handle: %w", err)
		}
		st.db = db
		st.users = repository.NewGormUserRepository(db)
		st.cocktails = repository.NewGormCocktailRepository(db)
		st.orders = repository.NewGormOrderRepository(db)
		st.apiKeys = repository.NewGormAPIKeyRepository(db)
		st.checks["database"] = sqlDB.PingContext
	}

	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, cocktail cache disabled")
		} else {
			st.redis = client
			st.cocktailCache = cache.NewCocktailCache(client, cfg.Redis.CocktailTTL, log)
			st.checks["cache"] = func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			}
		}
	}
	return st, nil
}

func (st *stores) close(log zerolog.Logger) {
	if st.redis != nil {
		if err := st.redis.Close(); err != nil {
			log.Error().Err(err).Msg("redis close error")
		}
	}
	if st.db != nil {
		if sqlDB, err := st.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Error().Err(err).Msg("database close error")
			}
		}
	}
}
