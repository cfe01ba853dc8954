package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rogerio-castellano/catalog-api/internal/auth"
	"github.com/rogerio-castellano/catalog-api/internal/config"
	"github.com/rogerio-castellano/catalog-api/internal/db"
	"github.com/rogerio-castellano/catalog-api/internal/http/ban"
	"github.com/rogerio-castellano/catalog-api/internal/http/handlers"
	mw "github.com/rogerio-castellano/catalog-api/internal/http/middleware"
	rl "github.com/rogerio-castellano/catalog-api/internal/http/rate_limiter"
	"github.com/rogerio-castellano/catalog-api/internal/http/router"
	"github.com/rogerio-castellano/catalog-api/internal/logger"
	"github.com/rogerio-castellano/catalog-api/internal/query"
	"github.com/rogerio-castellano/catalog-api/internal/redissvc"
	"github.com/rogerio-castellano/catalog-api/internal/repo"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func serve(ctx context.Context, cfg config.Config) error {
	log := logger.Get()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	handlers.SetProductRepo(store)
	handlers.SetComposer(query.NewComposer(cfg.Pagination.DefaultLimit, cfg.Pagination.MaxLimit))
	handlers.SetIssuer(issuer)
	handlers.SetAdmin(handlers.Admin{Username: cfg.Auth.AdminUser, PasswordHash: cfg.Auth.AdminPasswordHash})
	if cfg.Auth.AdminPasswordHash == "" {
		log.Warn("no admin password hash configured, login is disabled")
	}

	opts := router.Options{
		Issuer:         issuer,
		Metrics:        mw.NewMetrics(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}

	if cfg.RateLimit.Enabled {
		var banStore ban.Store = ban.NewMemoryStore()
		if cfg.Redis.Addr != "" {
			rs, err := redissvc.Connect(ctx, cfg.Redis)
			if err != nil {
				return err
			}
			defer rs.Close()
			banStore = ban.NewRedisStore(rs)
		}

		limiter := rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		tracker := ban.NewTracker(banStore, cfg.RateLimit)
		go limiter.StartCleanupLoop(ctx, time.Minute, 5*time.Minute)
		go tracker.StartDailySummary(ctx)
		opts.Limiter, opts.Bans = limiter, tracker
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", cfg.Server.Addr, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (repo.ProductRepository, func(), error) {
	switch cfg.Store.Driver {
	case "postgres":
		database, err := db.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Database.MigrateOnStart {
			if err := db.Migrate(database); err != nil {
				database.Close()
				return nil, nil, err
			}
		}
		return repo.NewPostgresProductRepository(database, cfg.Store.QueryTimeout), func() { database.Close() }, nil

	case "mongo":
		client, database, err := db.ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() { _ = client.Disconnect(context.Background()) }
		return repo.NewMongoProductRepository(database, cfg.Store.QueryTimeout), disconnect, nil

	default:
		mem := repo.NewInMemoryProductRepository()
		general := mem.AddCategory("General")
		logger.Get().Info("using in-memory store", "category", general.Name, "category_id", general.ID)
		return mem, func() {}, nil
	}
}
