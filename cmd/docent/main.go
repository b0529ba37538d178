package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ingelean/docent/internal/chatlog"
	"github.com/ingelean/docent/internal/config"
	"github.com/ingelean/docent/internal/conversation"
	"github.com/ingelean/docent/internal/events"
	"github.com/ingelean/docent/internal/gemini"
	"github.com/ingelean/docent/internal/knowledge"
	"github.com/ingelean/docent/internal/processor"
	"github.com/ingelean/docent/internal/prompt"
	"github.com/ingelean/docent/internal/responder"
	"github.com/ingelean/docent/internal/sentiment"
	"github.com/ingelean/docent/internal/web"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("docent starting", "port", cfg.Port)

	ctx := context.Background()

	// Knowledge base — loaded once, immutable for the process lifetime.
	// A missing document is not fatal: the predict path refuses gracefully.
	kb, err := knowledge.Load(cfg.KnowledgePath)
	if err != nil {
		if errors.Is(err, knowledge.ErrUnavailable) {
			slog.Warn("knowledge base unavailable — questions will be refused", "path", cfg.KnowledgePath, "error", err)
		} else {
			slog.Error("failed to load knowledge base", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Info("knowledge base loaded", "path", cfg.KnowledgePath, "bytes", len(kb.Text()))
	}

	// Gemini client
	if cfg.GeminiAPIKey == "" {
		slog.Error("GEMINI_API_KEY is required")
		os.Exit(1)
	}
	llm := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	slog.Info("gemini client ready", "model", cfg.GeminiModel)

	// Session store — memory by default, bolt file or redis when configured.
	store, closeStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open session store", "backend", cfg.SessionBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("session store ready", "backend", cfg.SessionBackend)

	// Chat log — the shared append-only transcript store.
	chatLog, err := chatlog.NewLogger(cfg.ChatLogPath, slog.Default())
	if err != nil {
		slog.Error("failed to open chat log", "path", cfg.ChatLogPath, "error", err)
		os.Exit(1)
	}
	defer chatLog.Close()

	// Event publisher (optional — docent works without NATS, just no
	// rated-session notifications).
	var notifier processor.Notifier
	if cfg.NatsURL != "" {
		pub, err := events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer pub.Close()
		notifier = pub
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured — running without rated-session events")
	}

	// Processor — the conversation pipeline.
	proc := processor.New(
		sentiment.New(llm, slog.Default()),
		prompt.NewBuilder(cfg.MissingInfoPolicy),
		responder.New(llm, slog.Default()),
		kb,
		chatLog,
		notifier,
		slog.Default(),
	)

	srv := web.NewServer(cfg.Port, store, proc, cfg.ChatLogPath, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("web server error", "error", err)
		}
	}()

	slog.Info("docent ready", "port", cfg.Port, "missing_info_policy", cfg.MissingInfoPolicy)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	slog.Info("docent stopped")
}

func newSessionStore(ctx context.Context, cfg config.Config) (conversation.Store, func(), error) {
	switch cfg.SessionBackend {
	case "redis":
		store, err := conversation.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case "bolt":
		store, err := conversation.NewBoltStore(cfg.SessionDBPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return conversation.NewMemoryStore(), func() {}, nil
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
