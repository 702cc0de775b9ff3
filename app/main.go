package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sduras/webwatch/app/api"
	"github.com/sduras/webwatch/app/cfg"
	"github.com/sduras/webwatch/app/metrics"
	"github.com/sduras/webwatch/app/scrape"
	"github.com/sduras/webwatch/app/sources"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// .env is optional, ignore load errors
	godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	log.Printf("Starting WebWatch v%s...", appCfg.Version)

	// Load source definitions
	specs, err := sources.Load(appCfg.SourcesFile)
	if err != nil {
		log.Fatalf("Failed to load sources: %v", err)
	}
	log.Printf("Loaded %d source definitions from %s", len(specs), appCfg.SourcesFile)

	// Initialize core components
	m := metrics.New(prometheus.DefaultRegisterer)
	httpClient := &http.Client{}
	engine := scrape.NewEngine(httpClient, time.Local, m)

	// Initialize HTTP server
	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(engine, specs)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	// Create HTTP server with timeouts. A cold snapshot fetches every
	// source, so the write timeout allows for retries across the batch.
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		log.Printf("Endpoints available:")
		log.Printf("  Updates:       http://localhost:%s/updates", appCfg.Port)
		log.Printf("  Digest:        http://localhost:%s/digest", appCfg.Port)
		log.Printf("  RSS:           http://localhost:%s/updates.rss", appCfg.Port)
		log.Printf("  Health check:  http://localhost:%s/health", appCfg.Port)
		log.Printf("  Metrics:       http://localhost:%s/metrics", appCfg.Port)

		if appCfg.APIAccessKey != "" {
			log.Printf("  Refresh:       http://localhost:%s/api/refresh (POST, requires API key)", appCfg.Port)
		} else {
			log.Printf("  API endpoints: DISABLED (API_ACCESS_KEY not set)")
		}

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("WebWatch started successfully!")
	log.Println("Press Ctrl+C to shutdown gracefully...")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	log.Println("WebWatch shutdown complete")
}
