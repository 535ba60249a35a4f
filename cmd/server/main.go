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

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"

	"github.com/cryptofolio/cryptofolio-backend/internal/adapter/coingecko"
	httpadapter "github.com/cryptofolio/cryptofolio-backend/internal/adapter/http"
	"github.com/cryptofolio/cryptofolio-backend/internal/adapter/repository/postgres"
	"github.com/cryptofolio/cryptofolio-backend/internal/config"
	"github.com/cryptofolio/cryptofolio-backend/internal/usecase/auth"
	"github.com/cryptofolio/cryptofolio-backend/internal/usecase/ledger"
	"github.com/cryptofolio/cryptofolio-backend/internal/usecase/market"
	"github.com/cryptofolio/cryptofolio-backend/internal/usecase/portfolio"
)

const tokenTTL = 24 * time.Hour

func main() {
	// .env is optional, real deployments set env vars directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// 1. Setup Database
	// Add 2-second delay to ensure Postgres is up (Simple retry)
	time.Sleep(2 * time.Second)

	db, err := postgres.NewDB(cfg.DBConnStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	if err := postgres.RunMigrations(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// 2. Initialize Repositories (Postgres)
	accountRepo := postgres.NewAccountRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// 3. Initialize Services (Use Cases)
	priceSource := coingecko.NewClient(cfg.PriceAPIURL)
	ledgerService := ledger.NewService(accountRepo)
	portfolioService := portfolio.NewService(accountRepo, priceSource)
	authService := auth.NewService(userRepo, accountRepo)
	marketService := market.NewService(priceSource, cfg.TrackedSymbols)

	// Warm the quote cache and keep it fresh in the background
	if err := marketService.Refresh(ctx); err != nil {
		log.Printf("Initial quote refresh failed: %v", err)
	}
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.RefreshSpec, func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := marketService.Refresh(refreshCtx); err != nil {
			log.Printf("Quote refresh failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule quote refresh: %v", err)
	}
	scheduler.Start()

	// 4. Start HTTP Server
	tokenSecret := []byte(cfg.JWTSecret)
	authHandler := httpadapter.NewAuthHandler(authService, tokenSecret, tokenTTL)
	accountHandler := httpadapter.NewAccountHandler(ledgerService, marketService, accountRepo)
	portfolioHandler := httpadapter.NewPortfolioHandler(portfolioService)
	marketHandler := httpadapter.NewMarketHandler(marketService)

	e := httpadapter.NewRouter(authHandler, accountHandler, portfolioHandler, marketHandler, tokenSecret)

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve HTTP server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(e, scheduler, db)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(e *echo.Echo, scheduler *cron.Cron, db *postgres.DB) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Failed to shut down HTTP server cleanly: %v", err)
	}

	if err := db.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
	log.Println("HTTP server stopped")
}
