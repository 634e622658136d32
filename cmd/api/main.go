package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gracecommunity/churchhub/internal/auth"
	"github.com/gracecommunity/churchhub/internal/cache"
	"github.com/gracecommunity/churchhub/internal/config"
	"github.com/gracecommunity/churchhub/internal/db"
	httpx "github.com/gracecommunity/churchhub/internal/http"
	"github.com/gracecommunity/churchhub/internal/observability"
	"github.com/gracecommunity/churchhub/internal/repo/memory"
	"github.com/gracecommunity/churchhub/internal/repo/postgres"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)

	if cfg.Env != "dev" && cfg.JWTSecret == "dev-only-secret" {
		log.Error("JWT_SECRET must be set outside dev")
		os.Exit(1)
	}

	// tracing is opt-in via OTLP_ENDPOINT
	tracing := cfg.OTLPEndpoint != ""

	if tracing {
		shutdown, err := observability.InitTracer(context.Background(), "churchhub", cfg.OTLPEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()

			if err := shutdown(ctx); err != nil {
				log.Error("tracer shutdown failed", "err", err)
			}
		}()
	}

	deps := httpx.Deps{
		Log:     log,
		Cfg:     cfg,
		JWT:     auth.NewManager(cfg.JWTSecret, cfg.TokenTTL),
		Groups:  memory.NewGroupsRepo(),
		Tracing: tracing,
	}

	// DB_URL unset means the in-memory store: good enough for dev and demos.
	if cfg.DBURL != "" {
		if cfg.MigrateOnStart {
			if err := db.RunMigrations(cfg.DBURL, cfg.MigrationsDir); err != nil {
				log.Error("migrations failed", "err", err)
				os.Exit(1)
			}
		}

		pool, err := db.NewPool(cfg.DBURL)

		if err != nil {
			log.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		deps.Users = postgres.NewUsersRepo(pool)
		deps.Events = postgres.NewEventsRepo(pool)
		deps.Sermons = postgres.NewSermonsRepo(pool)
		deps.Gallery = postgres.NewGalleryRepo(pool)
		deps.Contacts = postgres.NewContactsRepo(pool)
		deps.Ping = pool.Ping
	} else {
		log.Info("DB_URL not set, using in-memory stores")

		deps.Users = memory.NewUsersRepo()
		deps.Events = memory.NewEventsRepo()
		deps.Sermons = memory.NewSermonsRepo()
		deps.Gallery = memory.NewGalleryRepo()
		deps.Contacts = memory.NewContactsRepo()
	}

	// seed the configured admin account so a fresh deployment has one
	seedCtx, cancelSeed := config.WithTimeout(5 * time.Second)
	if err := db.EnsureAdminUser(seedCtx, deps.Users, cfg); err != nil {
		cancelSeed()
		log.Error("admin seed failed", "err", err)
		os.Exit(1)
	}
	cancelSeed()

	// listing cache: shared redis when configured, per-process otherwise
	if cfg.RedisAddr != "" {
		rc := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})

		pingCtx, cancelPing := config.WithTimeout(2 * time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn("redis unreachable, continuing without shared cache", "err", err)
		}
		cancelPing()

		defer rc.Close()

		deps.Cache = rc
	} else {
		deps.Cache = cache.NewMemory(cfg.CacheTTL)
	}

	registry := prometheus.NewRegistry()
	deps.Prom = observability.NewProm(registry)
	deps.Metrics = registry

	// set up routers with the wired dependencies
	router := httpx.NewRouter(deps)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server using a concurrent go-routine driven anonymous function.

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
