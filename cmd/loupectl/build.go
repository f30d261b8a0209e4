package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/loupe-search/loupe/internal/builder"
	"github.com/loupe-search/loupe/internal/catalog"
)

func newBuildCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the catalog dataset from names and crawled signals",
		Long: `Build merges the name dataset with any crawled signals found in the
signal store and writes the result as NDJSON, one company profile per line.
The store is Redis when store.addrs is configured, a local signal directory
otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if cfg.Catalog.NamesPath == "" {
				return fmt.Errorf("catalog.names_path is required")
			}
			entries, err := catalog.NewNameDirectory(cfg.Catalog.NamesPath, logger).Entries()
			if err != nil {
				return fmt.Errorf("read name dataset: %w", err)
			}

			ctx := cmd.Context()
			sigStore, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer sigStore.Close()

			if outPath == "" {
				outPath = cfg.Catalog.Path
			}
			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}

			n, err := builder.New(sigStore, logger).Build(ctx, entries, out)
			if cerr := out.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close output file: %w", cerr)
			}
			if err != nil {
				return err
			}

			logger.Info("catalog built",
				zap.String("path", outPath),
				zap.Int("profiles", n),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "output NDJSON path (defaults to catalog.path)")
	return cmd
}
