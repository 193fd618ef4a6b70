package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"eduportal/internal/auth"
	"eduportal/internal/config"
	"eduportal/internal/gemini"
	"eduportal/internal/logger"
	"eduportal/internal/metrics"
	"eduportal/internal/server"
	"eduportal/internal/storage"
	"eduportal/internal/upload"
)

func main() {
	cfg := config.MustLoad()

	log := logger.SetupLogger(cfg.Env, os.Stdout)
	slog.SetDefault(log)
	slog.Info("config loaded",
		"env", cfg.Env,
		"addr", cfg.HTTPServer.Address(),
		"db_host", cfg.Database.Host,
		"db_name", cfg.Database.Name,
		"uploads_dir", cfg.Uploads.Dir,
		"gemini_model", cfg.Gemini.Model,
	)
	if cfg.Gemini.APIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set, chat requests will fail")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	files := upload.NewStore(cfg.Uploads.Dir)
	if err := files.Init(); err != nil {
		slog.Error("failed to prepare upload directories", "err", err)
		os.Exit(1)
	}

	if cfg.Database.Migrate {
		if err := storage.Migrate(cfg.Database.DSN()); err != nil {
			slog.Error("failed to migrate database", "err", err)
			os.Exit(1)
		}
	}

	db, err := storage.NewStorage(ctx, cfg.Database.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	router := server.NewRouter(server.Deps{
		DB:             db,
		Files:          files,
		Generator:      gemini.NewClient(cfg.Gemini.BaseURL, cfg.Gemini.Model, cfg.Gemini.APIKey, cfg.Gemini.Timeout),
		Tokens:         auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Metrics:        metrics.New(),
		TeacherEmail:   cfg.Auth.TeacherEmail,
		MaxUploadBytes: cfg.Uploads.MaxBytes,
	})

	if err := server.Run(ctx, cfg.HTTPServer, router); err != nil {
		slog.Error("http server error", "err", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
