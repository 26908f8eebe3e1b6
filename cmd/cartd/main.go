// cartd - Multi-vendor storefront cart service.
// Serves the catalog, per-vendor carts and wishlists, and coupon validation
// over REST and MCP transports.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketcart/internal/cart"
	"marketcart/internal/catalog"
	"marketcart/internal/config"
	"marketcart/internal/coupon"
	"marketcart/internal/handler"
	"marketcart/internal/metrics"
	"marketcart/internal/middleware"
	"marketcart/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	logger := initLogger()

	// Load configuration
	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.String("data_dir", cfg.DataDir),
		slog.Bool("remote_coupons", cfg.Coupon.Endpoint != ""),
	)

	// Load the catalog: built-in demo data unless a YAML override is given
	cat, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	// Open the cart store
	store, err := openStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	promReg := metrics.NewRegistry()

	registry := cart.NewRegistry(cart.RegistryConfig{
		Vendors:   cat.Vendors(),
		Store:     store,
		Validator: newValidator(cfg),
		OnPersistError: func(error) {
			promReg.PersistFailures.Inc()
		},
		Logger: logger,
	})

	h := handler.New(registry, cat, promReg, logger)

	// Setup routes
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	// Apply middleware chain: recovery → metrics → logging → agent → handler
	// Recovery must be outermost to catch panics from the rest of the chain
	httpHandler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.Metrics(promReg),
		middleware.AgentIdentity(),
		middleware.Logging(logger),
	)(mux)

	// Create HTTP server with timeouts
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Channel for server errors
	serverErr := make(chan error, 1)

	// Start server in goroutine
	go func() {
		logger.Info("server starting",
			slog.String("port", cfg.Port),
			slog.String("addr", server.Addr),
		)
		serverErr <- server.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErr:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-shutdown:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Give outstanding requests time to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			// Force close if graceful shutdown fails
			server.Close()
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	// Let outstanding cart writes land before the store closes
	registry.Flush()

	logger.Info("server stopped")
	return nil
}

// loadCatalog returns the configured catalog.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogFile != "" {
		return catalog.LoadFile(cfg.CatalogFile)
	}
	return catalog.Builtin(), nil
}

// openStore opens the persistent cart store, or an in-memory one when no
// data directory is configured.
func openStore(cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	if cfg.DataDir == "" {
		logger.Warn("no data directory configured, cart state will not survive restarts")
		return storage.NewMemoryStore(), nil
	}
	return storage.OpenPebble(cfg.DataDir)
}

// newValidator picks the coupon validator: the built-in code table, or an
// HTTP client when a remote endpoint is configured.
func newValidator(cfg *config.Config) cart.Validator {
	if cfg.Coupon.Endpoint == "" {
		return coupon.Local{}
	}
	return coupon.NewClient(coupon.ClientConfig{
		Endpoint:           cfg.Coupon.Endpoint,
		Timeout:            time.Duration(cfg.Coupon.TimeoutSeconds) * time.Second,
		ImpersonateBrowser: cfg.Coupon.ImpersonateBrowser,
	})
}

// initLogger creates a structured logger configured for the environment.
// Production uses JSON format for GCP Cloud Logging compatibility.
// Development uses text format for readability.
func initLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		// Add source location in debug mode
		AddSource: level == slog.LevelDebug,
	}

	// JSON for production (Cloud Logging compatible), text for development
	if os.Getenv("ENVIRONMENT") == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
