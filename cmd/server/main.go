package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/mentorboard/internal/auth"
	"github.com/mmynk/mentorboard/internal/config"
	"github.com/mmynk/mentorboard/internal/middleware"
	"github.com/mmynk/mentorboard/internal/models"
	"github.com/mmynk/mentorboard/internal/seed"
	"github.com/mmynk/mentorboard/internal/service"
	"github.com/mmynk/mentorboard/internal/storage"
	"github.com/mmynk/mentorboard/internal/storage/memory"
	"github.com/mmynk/mentorboard/internal/storage/sqlite"
	"github.com/mmynk/mentorboard/pkg/api"
	"github.com/mmynk/mentorboard/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	// Setup structured logging
	logging.SetupWithLevel(cfg.LogLevel)

	// Initialize storage (in-memory unless STORE_BACKEND=sqlite)
	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.StoreBackend)

	// Fill the store in the background; the dashboard reports loading until then
	people, err := readSeed(cfg.SeedPath)
	if err != nil {
		slog.Error("Failed to read seed", "path", cfg.SeedPath, "error", err)
		os.Exit(1)
	}
	loader := seed.NewLoader(store, people, seed.WithDelay(cfg.LoadDelay))
	loader.Start()

	// Report unlock tokens (random signing key unless REPORT_TOKEN_SECRET is set)
	tokens, err := auth.NewReportTokenManager(cfg.ReportTokenSecret, cfg.ReportTokenTTL)
	if err != nil {
		slog.Error("Failed to initialize report tokens", "error", err)
		os.Exit(1)
	}

	// One shared secret gates every confirmation
	authz := auth.SharedSecret{}

	// Report tokens are only checked on the report service
	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor())
	reportInterceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.ReportAccess(tokens),
	)

	mux := http.NewServeMux()

	// Register Connect services
	peoplePath, peopleHandler := api.NewPeopleServiceHandler(service.NewPeopleService(store, authz, loader), interceptors)
	mux.Handle(peoplePath, peopleHandler)

	editorPath, editorHandler := api.NewEditorServiceHandler(service.NewEditorService(store, authz), interceptors)
	mux.Handle(editorPath, editorHandler)

	reportPath, reportHandler := api.NewReportServiceHandler(service.NewReportService(store, authz, tokens), reportInterceptors)
	mux.Handle(reportPath, reportHandler)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	// Add logging and CORS middleware
	handler := middleware.HTTPLogging(middleware.CORS(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler = h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Stop on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		return sqlite.New(cfg.SQLiteDSN)
	default:
		return memory.New(), nil
	}
}

func readSeed(path string) ([]models.Person, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.ReadFile(path)
}
