package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/cenoskoczek/backend/config"
	httpDelivery "github.com/cenoskoczek/backend/internal/delivery/http"
	"github.com/cenoskoczek/backend/internal/infrastructure/fetch"
	"github.com/cenoskoczek/backend/internal/infrastructure/registry"
	"github.com/cenoskoczek/backend/internal/infrastructure/store"
	"github.com/cenoskoczek/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting CenoSkoczek Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Database: %s", cfg.Database.Path)

	// Initialize infrastructure dependencies
	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	if err := db.Seed(context.Background()); err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}

	sources, err := registry.Load(cfg.Registry.Path)
	if err != nil {
		log.Fatalf("Failed to load source registry: %v", err)
	}
	for _, source := range sources {
		log.Printf("Source: %s (%d keyword mappings)", source.Name, len(source.ProductMapping))
	}

	fetcher := fetch.NewClient(fetch.Config{
		Timeout:       cfg.Fetcher.Timeout,
		UserAgent:     cfg.Fetcher.UserAgent,
		RatePerSecond: cfg.Fetcher.RatePerSecond,
		Burst:         cfg.Fetcher.Burst,
	})
	log.Printf("Fetcher: timeout=%s, rate=%.1f req/s", cfg.Fetcher.Timeout, cfg.Fetcher.RatePerSecond)

	// Initialize usecase layer
	comparisonService := usecase.NewComparisonService(
		fetcher,
		sources,
		usecase.ComparisonServiceConfig{
			MaxConcurrency: cfg.Comparison.MaxConcurrency,
		},
	)
	log.Printf("Comparison: concurrency=%d over %d sources", cfg.Comparison.MaxConcurrency, len(sources))

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(db, db, comparisonService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
