package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epeers/folio/config"
	_ "github.com/epeers/folio/docs"
	"github.com/epeers/folio/internal/alphavantage"
	"github.com/epeers/folio/internal/cache"
	"github.com/epeers/folio/internal/handlers"
	"github.com/epeers/folio/internal/middleware"
	"github.com/epeers/folio/internal/naver"
	"github.com/epeers/folio/internal/repository"
	"github.com/epeers/folio/internal/services"
	"github.com/epeers/folio/internal/valuation"
	"github.com/epeers/folio/internal/yahoo"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Folio Portfolio Valuation API
// @version         0.1.0
// @description     Values a multi-account portfolio against live quotes, classifies holdings and simulates rebalances.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// Create context for initialization
	ctx := context.Background()

	// Quote providers: Yahoo for everything, Naver as the home-market
	// fallback, AlphaVantage as the foreign fallback when a key is configured
	naverClient := naver.NewClient()
	yahooClient := yahoo.NewClient()
	homeProviders := []services.QuoteProvider{yahooClient, naverClient}
	foreignProviders := []services.QuoteProvider{yahooClient}
	fxProviders := []services.FXProvider{yahooClient}
	if cfg.AVKey != "" {
		avClient := alphavantage.NewClient(cfg.AVKey)
		foreignProviders = append(foreignProviders, avClient)
		fxProviders = append(fxProviders, avClient)
	} else {
		log.Info("AV_KEY not set, AlphaVantage fallback disabled")
	}

	// Listing directory: PostgreSQL first when configured, then Naver
	directories := []services.ListingDirectory{}
	var listingStore services.ListingStore
	if cfg.PGURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PGURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		securityRepo := repository.NewSecurityRepository(pool)
		if err := securityRepo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare listing table: %v", err)
		}
		directories = append(directories, securityRepo)
		listingStore = securityRepo
	} else {
		log.Info("PG_URL not set, listing directory limited to Naver")
	}
	directories = append(directories, naverClient)

	listingSvc := services.NewListingService(cfg.LookupTimeout, directories...)
	if listingStore != nil {
		listingSvc = listingSvc.WithStore(listingStore)
	}

	// Initialize services
	opts := cfg.ValuationOptions()
	memCache := cache.NewMemoryCache(cfg.QuoteTTL)
	pricingSvc := services.NewPricingService(services.PricingConfig{
		Options:        opts,
		FallbackFXRate: cfg.FXFallbackRate,
		LookupTimeout:  cfg.LookupTimeout,
		Concurrency:    cfg.QuoteConcurrency,
	}, memCache, homeProviders, foreignProviders, fxProviders)
	sessionSvc := services.NewSessionService(opts, listingSvc)
	dashboardSvc := services.NewDashboardService(sessionSvc, pricingSvc, valuation.AccountNameFilter(cfg.ExcludedAccounts...))

	// Initialize handlers
	portfolioHandler := handlers.NewPortfolioHandler(sessionSvc)
	valuationHandler := handlers.NewValuationHandler(dashboardSvc)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterRoutes(router, portfolioHandler, valuationHandler)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Info("Server exited")
}
