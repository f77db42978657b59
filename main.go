// main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frozo-api/cache"
	"frozo-api/config"
	"frozo-api/controllers"
	"frozo-api/logger"
	"frozo-api/metrics"
	"frozo-api/pricing"
	"frozo-api/repository"
	"frozo-api/routes"
	"frozo-api/services"
	"frozo-api/utils"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: cfg.App.ServiceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "server exited", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	// Connect to MongoDB
	client, err := utils.ConnectDB(ctx, cfg.Mongo.URI, cfg.Mongo.ConnectTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logg.Warn(ctx, "mongo disconnect failed", err)
		}
	}()

	db := client.Database(cfg.Mongo.Database)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	contactRepo := repository.NewContactRepository(db)
	cartRepo.Timeout = cfg.App.RequestTimeout
	productRepo.Timeout = cfg.App.RequestTimeout
	wishlistRepo.Timeout = cfg.App.RequestTimeout
	adminRepo.Timeout = cfg.App.RequestTimeout
	contactRepo.Timeout = cfg.App.RequestTimeout

	checks := map[string]controllers.HealthCheck{
		"mongo": func(ctx context.Context) error {
			return utils.PingDB(ctx, client, time.Second)
		},
	}

	// Product snapshots go through redis when configured
	var catalog services.ProductCatalog = productRepo
	var invalidator services.CacheInvalidator
	if cfg.Redis.Enabled() {
		rdb, err := cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer rdb.Close()

		productCache := cache.NewProductCache(rdb, productRepo, cfg.Redis.ProductTTL, logg)
		catalog = productCache
		invalidator = productCache
		checks["redis"] = productCache.Ping
		logg.Info(ctx, "product cache enabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	tokens := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	mailer, err := utils.NewMailer(cfg.Email, logg)
	if err != nil {
		return err
	}

	policy := pricing.Policy{
		FreeShippingThreshold: cfg.Pricing.FreeShippingThreshold,
		FlatShipping:          cfg.Pricing.FlatShipping,
		TaxRate:               cfg.Pricing.TaxRate,
	}

	// Initialize services
	cartService := services.NewCartService(cartRepo, catalog, policy,
		services.WithOptimisticLocking(cfg.Cart.OptimisticLocking),
		services.WithCartMetrics(appMetrics),
	)
	productService := services.NewProductService(productRepo, invalidator)
	wishlistService := services.NewWishlistService(wishlistRepo, catalog, cartService)
	adminService := services.NewAdminService(adminRepo, tokens)
	contactService := services.NewContactService(contactRepo, mailer, cfg.Email.NotifyAddress, logg)

	if cfg.Admin.Email != "" {
		created, err := adminService.EnsureBootstrapAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			return err
		}
		if created {
			logg.Info(logg.WithField(ctx, "email", cfg.Admin.Email), "bootstrap admin created")
		}
	}

	// Initialize controllers and routes
	router := routes.NewRouter(routes.Handlers{
		Cart:        controllers.NewCartController(cartService, logg),
		Product:     controllers.NewProductController(productService, logg),
		Wishlist:    controllers.NewWishlistController(wishlistService, logg),
		Admin:       controllers.NewAdminController(adminService, logg),
		Contact:     controllers.NewContactController(contactService, logg),
		Health:      controllers.NewHealthController(checks, logg),
		Tokens:      tokens,
		Log:         logg,
		Metrics:     appMetrics,
		Gatherer:    registry,
		CORSOrigins: cfg.CORS.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "addr", server.Addr), "server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
