package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"cocktail-bar-api/config"
	"cocktail-bar-api/handlers"
	"cocktail-bar-api/jobs"
	"cocktail-bar-api/logger"
	"cocktail-bar-api/metrics"
	"cocktail-bar-api/middleware"
	"cocktail-bar-api/routes"
	"cocktail-bar-api/security"
	"cocktail-bar-api/seed"
	"cocktail-bar-api/service"
)

func main() {
	flags := pflag.NewFlagSet("cocktail-bar-api", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to a YAML config file")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)
	ctx := context.Background()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}

	tokens := security.NewTokenIssuer(cfg.Security.JWTSecret)
	cocktails := service.NewCocktailService(st.cocktails, st.cocktailCache)
	orders := service.NewOrderService(st.orders, st.cocktails, cfg.Orders.RequireKnownCocktails)
	apiKeys := service.NewAPIKeyService(st.apiKeys)

	if cfg.Seed.Cocktails {
		if _, err := seed.Cocktails(ctx, st.cocktails, cocktails, log); err != nil {
			log.Error().Err(err).Msg("cocktail seed failed")
		}
	}

	h := handlers.New(handlers.Deps{
		Auth:        service.NewAuthService(st.users, tokens, cfg.Security),
		Users:       service.NewUserService(st.users, cfg.Security.BcryptCost),
		Orders:      orders,
		Cocktails:   cocktails,
		APIKeys:     apiKeys,
		Checks:      st.checks,
		Environment: cfg.Environment,
		Log:         log,
	})

	var m *metrics.Metrics
	var scheduler *jobs.Scheduler
	if cfg.Metrics.Enabled {
		m = metrics.New()
		scheduler = jobs.NewScheduler(st.orders, m, cfg.Metrics.RefreshSpec, log)
		if err := scheduler.Start(); err != nil {
			log.Error().Err(err).Msg("scheduler start failed")
		}
	}

	engine := routes.NewEngine(cfg, log, m)
	routes.SetupRoutes(engine, routes.Deps{
		Handler:      h,
		Tokens:       tokens,
		APIKeys:      apiKeys,
		LoginLimiter: middleware.NewRateLimiter(cfg.Security.LoginRatePerSecond, cfg.Security.LoginBurst, log),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("driver", cfg.Database.Driver).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(log, srv, scheduler, st)
}

func waitForShutdown(log zerolog.Logger, srv *http.Server, scheduler *jobs.Scheduler, st *stores) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if scheduler != nil {
		scheduler.Stop()
	}

	st.close(log)
	log.Info().Msg("server exited cleanly")
}
