package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hippogriff-ai/roomscan/internal/api"
	"github.com/hippogriff-ai/roomscan/internal/config"
	"github.com/hippogriff-ai/roomscan/internal/db"
	"github.com/hippogriff-ai/roomscan/internal/monitoring"
	"github.com/hippogriff-ai/roomscan/internal/version"
)

var (
	listen     = flag.String("listen", "", "Listen address (overrides config)")
	dbPath     = flag.String("db", "", "SQLite database path (overrides config)")
	configPath = flag.String("config", "", "Path to service config JSON")
	migrate    = flag.Bool("migrate", false, "Apply pending schema migrations and continue")
)

func main() {
	flag.Parse()

	cfg := config.EmptyServiceConfig()
	if *configPath != "" {
		loaded, err := config.LoadServiceConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	addr := cfg.GetListen()
	if *listen != "" {
		addr = *listen
	}
	path := cfg.GetDatabasePath()
	if *dbPath != "" {
		path = *dbPath
	}

	monitoring.Logf("roomscan %s (%s) starting", version.Version, version.GitSHA)

	database, err := db.NewDB(path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if *migrate {
		if err := database.MigrateUp(cfg.GetMigrationsDir()); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	}

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := http.NewServeMux()

		// mount the admin debugging routes
		database.AttachAdminRoutes(mux)

		// mount the API handlers
		apiMux := api.NewServer(database, cfg.GetDisplayUnits(), cfg.GetPlotMaxPoints()).ServeMux()
		mux.Handle("/api/", http.StripPrefix("/api", apiMux))

		server := &http.Server{
			Addr:    addr,
			Handler: api.LoggingMiddleware(mux),
		}

		go func() {
			monitoring.Logf("listening on %s", addr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		// Wait for context cancellation to shut down server
		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
