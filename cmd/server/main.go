package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"viber/internal/catalog"
	"viber/internal/config"
	"viber/internal/handler"
	"viber/internal/middleware"
	"viber/internal/service/chat"
	"viber/internal/service/gateway"
	"viber/internal/service/preview"
	"viber/internal/service/workspace"
	"viber/internal/store"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer f.Close()
		logOut = io.MultiWriter(os.Stdout, f)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
	)

	// Settings store
	settingsStore, err := store.NewSettingsStore(cfg.SettingsPath, logger)
	if err != nil {
		log.Fatalf("Failed to open settings store: %v", err)
	}

	// Provider catalog
	catalogRegistry, err := catalog.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize provider catalog: %v", err)
	}
	logger.Info("provider catalog initialized")

	// Services
	workspaceService := workspace.NewService(logger)
	applier := workspace.NewApplier(logger)
	providerGateway := gateway.New(logger)
	chatService := chat.NewService(providerGateway, workspaceService, applier, settingsStore, logger)
	previewCompiler := preview.NewCompiler(logger)

	// Handlers
	chatHandler := handler.NewChatHandler(chatService, logger)
	projectHandler := handler.NewProjectHandler(workspaceService, logger)
	previewHandler := handler.NewPreviewHandler(previewCompiler, workspaceService, logger)
	settingsHandler := handler.NewSettingsHandler(settingsStore, catalogRegistry, logger)
	catalogHandler := handler.NewCatalogHandler(catalogRegistry, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Chat routes
	mux.HandleFunc("POST /api/chat", chatHandler.SendMessage)
	mux.HandleFunc("GET /api/chat/messages", chatHandler.ListMessages)
	mux.HandleFunc("GET /api/chat/status", chatHandler.Status)

	// Project routes
	mux.HandleFunc("GET /api/project", projectHandler.GetProject)
	mux.HandleFunc("GET /api/project/files", projectHandler.GetFile)
	mux.HandleFunc("PUT /api/project/files/{id}", projectHandler.UpdateFile)

	// Preview route
	mux.HandleFunc("GET /api/preview", previewHandler.GetPreview)

	// Settings routes
	mux.HandleFunc("GET /api/settings", settingsHandler.GetSettings)
	mux.HandleFunc("PUT /api/settings", settingsHandler.UpdateSettings)
	mux.HandleFunc("PUT /api/settings/keys/{provider}", settingsHandler.SetCredential)

	// Catalog route
	mux.HandleFunc("GET /api/catalog", catalogHandler.ListProviders)

	// Middleware chain: CORS wraps Recovery wraps routes
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	done := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
		close(done)
	}()

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
	<-done
}
