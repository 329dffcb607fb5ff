package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/hofhaeckerei/solr-utility/internal/cache"
	"github.com/hofhaeckerei/solr-utility/internal/database"
	"github.com/hofhaeckerei/solr-utility/internal/handlers"
	"github.com/hofhaeckerei/solr-utility/internal/indexing"
	"github.com/hofhaeckerei/solr-utility/internal/middleware"
	"github.com/hofhaeckerei/solr-utility/internal/router"
	"github.com/hofhaeckerei/solr-utility/internal/store"
	"github.com/hofhaeckerei/solr-utility/internal/taxonomy"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// serve connects to the database and Valkey, then runs the HTTP server until
// ctx is cancelled.
func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"db_driver", cfg.DBDriver,
	)

	db, err := database.Connect(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(ctx, db, cfg.DBDriver); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
	}

	// The result cache is optional; without Valkey every request resolves.
	var resultCache *cache.ResultCache
	if cfg.CacheEnabled() {
		client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return fmt.Errorf("connect valkey: %w", err)
		}
		defer client.Close()
		resultCache = cache.NewResultCache(client, cfg.ResultCacheTTL)
	} else {
		slog.Warn("valkey not configured, result cache disabled")
	}

	// Initialize data stores.
	categories := store.NewCategoryStore(db, cfg.DBDriver)
	relations := store.NewRelationStore(db, cfg.DBDriver)
	pages := store.NewPageStore(db, cfg.DBDriver)
	localizations := store.NewLocalizationStore(db, cfg.DBDriver)

	resolver := taxonomy.NewResolver(categories, categories, taxonomy.WithMaxDepth(cfg.MaxDepth))
	policy := indexing.Chain(
		indexing.NewTranslationGate(pages),
		indexing.NewTranslationBehavior(localizations),
	)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute, middleware.TrustProxyHeaders(cfg.TrustProxy))
	defer limiter.Stop()

	r := router.New(
		handlers.NewHealth(db),
		handlers.NewCategories(resolver, relations, categories, resultCache),
		handlers.NewIndex(localizations, pages, policy, cfg.IndexLanguages),
		limiter,
	)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
