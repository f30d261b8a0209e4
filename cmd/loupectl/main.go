// Command loupectl runs the offline halves of loupe: crawling company
// websites for contact signals and building the match catalog.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/loupe-search/loupe/internal/config"
	logpkg "github.com/loupe-search/loupe/internal/logger"
	"github.com/loupe-search/loupe/internal/store"
	storeFile "github.com/loupe-search/loupe/internal/store/file"
	storeRedis "github.com/loupe-search/loupe/internal/store/redis"
	"github.com/loupe-search/loupe/internal/version"
)

func main() {
	root := &cobra.Command{
		Use:           "loupectl",
		Short:         "loupe data pipeline tool",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCrawlCmd())
	root.AddCommand(newBuildCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads config and builds the logger shared by the subcommands.
func setup() (config.Config, *zap.Logger, error) {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}

// openStore connects the configured signal store: Redis when addrs are set,
// a local directory otherwise.
func openStore(ctx context.Context, cfg config.Config) (store.SignalStore, error) {
	var st store.SignalStore
	if len(cfg.Store.Addrs) > 0 {
		redisStore, err := storeRedis.NewStore(storeRedis.Config{
			Addrs:     cfg.Store.Addrs,
			Password:  cfg.Store.Password,
			KeyPrefix: cfg.Store.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("create signal store: %w", err)
		}
		st = redisStore
	} else {
		fileStore, err := storeFile.NewStore(cfg.Store.Dir)
		if err != nil {
			return nil, fmt.Errorf("create signal store: %w", err)
		}
		st = fileStore
	}

	readiness := time.Duration(cfg.Store.ReadinessTimeout) * time.Second
	if err := st.WaitForReady(ctx, readiness); err != nil {
		st.Close()
		return nil, fmt.Errorf("signal store not ready: %w", err)
	}
	return st, nil
}
