package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/tudorv/payme/internal/handler"
	"github.com/tudorv/payme/internal/middleware"
	"github.com/tudorv/payme/internal/service"
	"github.com/tudorv/payme/internal/storage/sqlite"
	"github.com/tudorv/payme/pkg/logging"
)

type config struct {
	Port       string
	DBPath     string
	StaticPath string
	BaseURL    string
}

func loadConfig() config {
	return config{
		Port:       getEnv("PORT", "3000"),
		DBPath:     getEnv("DB_PATH", "./data/payments.db"),
		StaticPath: getEnv("STATIC_PATH", "./public"),
		BaseURL:    getEnv("BASE_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logger := logging.Setup()

	cfg := loadConfig()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("storage initialized", "database", cfg.DBPath)

	// Services
	accounts := service.NewAccountService(store, logger)
	requests := service.NewRequestService(store, logger)
	settlements := service.NewSettlementService(store, logger)

	// Router
	router := mux.NewRouter()

	handler.NewAccountHandler(accounts, logger).RegisterRoutes(router)
	handler.NewRequestHandler(requests, settlements, cfg.BaseURL, logger).RegisterRoutes(router)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Serve the frontend for everything that isn't an API route
	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		logger.Error("failed to resolve static path", "error", err)
		os.Exit(1)
	}
	router.PathPrefix("/").HandlerFunc(staticHandler(staticDir))
	logger.Info("serving static files", "path", staticDir)

	router.Use(middleware.Logging(logger))
	router.Use(middleware.Metrics())

	// Wrap with h2c for HTTP/2 without TLS
	h2cHandler := h2c.NewHandler(router, &http2.Server{})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h2cHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited gracefully")
}

// staticHandler serves files from dir, falling back to index.html for
// unknown paths so the hash-routed frontend keeps working.
func staticHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}
		if strings.HasPrefix(urlPath, "/api/") {
			http.NotFound(w, r)
			return
		}

		filePath := filepath.Join(dir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	}
}
