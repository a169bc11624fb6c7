// Command jaal runs the conversational scam honeypot: an HTTP front
// over the engagement pipeline, a session store (Redis or in-memory),
// the Gemini-backed reply generator, and the dossier dispatcher.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jaal-labs/jaal/pkg/api"
	"github.com/jaal-labs/jaal/pkg/callback"
	"github.com/jaal-labs/jaal/pkg/config"
	"github.com/jaal-labs/jaal/pkg/detect"
	"github.com/jaal-labs/jaal/pkg/engage"
	"github.com/jaal-labs/jaal/pkg/reply"
	"github.com/jaal-labs/jaal/pkg/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("service failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting scam honeypot",
		zap.Bool("redis", cfg.UseRedis),
		zap.Bool("llm", cfg.GeminiAPIKey != ""),
		zap.Bool("callback", cfg.CallbackURL != ""),
		zap.Int("port", cfg.Port))

	loadLexicon(cfg, logger)

	store := buildStore(cfg, logger)
	defer store.Close()

	manager := session.NewManager(store, int64(cfg.MaxConcurrentSessions), logger)
	manager.StartSweeper()
	defer manager.Stop()

	generator := reply.NewGenerator(buildCapability(cfg, logger), logger)
	dispatcher := callback.NewDispatcher(cfg.CallbackURL, logger)

	pipeline := engage.NewPipeline(engage.Config{
		Sessions:  manager,
		Generator: generator,
		Reporter:  dispatcher,
		MaxTurns:  cfg.MaxEngagementTurns,
		Threshold: cfg.ScamThreshold,
		Log:       logger,
	})

	srv := api.New(cfg, pipeline, manager, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen(cfg.Addr()) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		if err := srv.Shutdown(); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// buildLogger maps LOG_LEVEL onto a production zap config; DEBUG_MODE
// switches to the development config for human-readable output.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.DebugMode {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.LogLevel {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "warn", "warning":
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return zapCfg.Build()
}

// loadLexicon applies the optional YAML keyword overlay. A missing
// overlay is the normal case; a malformed one keeps the built-ins.
func loadLexicon(cfg *config.Config, logger *zap.Logger) {
	dir := cfg.LexiconConfigDir
	if dir == "" {
		dir = detect.FindLexiconDir()
	}
	if dir == "" {
		return
	}
	if err := detect.LoadLexicon(dir); err != nil {
		logger.Warn("lexicon overlay rejected, using built-in tables",
			zap.String("dir", dir), zap.Error(err))
		return
	}
	logger.Info("lexicon overlay loaded", zap.String("dir", dir))
}

// buildStore selects the session backend. Redis is used only when
// configured and reachable; any failure degrades to the in-memory
// store so the service always comes up.
func buildStore(cfg *config.Config, logger *zap.Logger) session.Store {
	ttl := time.Duration(cfg.SessionTimeoutSeconds) * time.Second

	if !cfg.UseRedis {
		return session.NewMemoryStore(ttl)
	}

	store, err := session.NewRedisStore(cfg.RedisURL, ttl)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory sessions", zap.Error(err))
		return session.NewMemoryStore(ttl)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		logger.Warn("redis ping failed, using in-memory sessions", zap.Error(err))
		_ = store.Close()
		return session.NewMemoryStore(ttl)
	}

	logger.Info("redis session store connected")
	return store
}

// buildCapability constructs the Gemini capability when a key is
// configured. Failure is not fatal; the generator falls back to the
// template pools.
func buildCapability(cfg *config.Config, logger *zap.Logger) reply.TextCapability {
	if cfg.GeminiAPIKey == "" {
		logger.Info("no gemini key, template-only replies")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	capability, err := reply.NewGeminiCapability(ctx, cfg.GeminiAPIKey, "")
	if err != nil {
		logger.Warn("gemini client unavailable, template-only replies", zap.Error(err))
		return nil
	}
	return capability
}
