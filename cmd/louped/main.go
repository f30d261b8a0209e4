package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/loupe-search/loupe/internal/catalog"
	"github.com/loupe-search/loupe/internal/config"
	"github.com/loupe-search/loupe/internal/engine"
	logpkg "github.com/loupe-search/loupe/internal/logger"
	"github.com/loupe-search/loupe/internal/metrics"
	"github.com/loupe-search/loupe/internal/textindex"
	chiTransport "github.com/loupe-search/loupe/internal/transport/chi"
	"github.com/loupe-search/loupe/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting loupe match server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog", cfg.Catalog.Path),
	)

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	profiles, err := catalog.Load(cfg.Catalog.Path, logger)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	snap := catalog.NewSnapshot(profiles)
	logger.Info("Catalog loaded", zap.Int("records", snap.Len()))

	docs := make([]textindex.Document, snap.Len())
	for i := 0; i < snap.Len(); i++ {
		p := snap.Profile(i)
		docs[i] = textindex.Document{Name: p.Name, Website: p.Website, Address: p.Address}
	}
	index, err := textindex.New(docs)
	if err != nil {
		logger.Fatal("Failed to build text index", zap.Error(err))
	}
	defer func() { _ = index.Close() }()
	logger.Info("Text index built")

	var names engine.NameSource
	if cfg.Catalog.NamesPath != "" {
		names = catalog.NewNameDirectory(cfg.Catalog.NamesPath, logger)
	}

	svc := engine.New(snap, index, names, engine.Config{
		CandidateCap:  cfg.Engine.CandidateCap,
		BruteForceMax: cfg.Engine.BruteForceMax,
	}, logger)

	server := chiTransport.NewServer(svc, logger, chiTransport.Options{
		APIKeys:      cfg.Auth.APIKeys,
		RateLimitRPM: cfg.HTTP.RateLimitRPM,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
		CacheSize:    cfg.Engine.CacheSize,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
