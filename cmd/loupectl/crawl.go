package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/loupe-search/loupe/internal/catalog"
	"github.com/loupe-search/loupe/internal/crawler"
)

func newCrawlCmd() *cobra.Command {
	var sitesFile string

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl company websites and store their contact signals",
		Long: `Crawl fetches each website, extracts contact signals (phones, social
links, page titles) and writes them to the signal store. Sites come either
from a plain-text file (one site per line) via --sites, or from the name
dataset configured as catalog.names_path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			sites, err := loadSites(sitesFile, cfg.Catalog.NamesPath, logger)
			if err != nil {
				return err
			}
			if len(sites) == 0 {
				return fmt.Errorf("no sites to crawl")
			}

			ctx := cmd.Context()
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			c := crawler.New(st, crawler.Config{
				Concurrency:  cfg.Crawler.Concurrency,
				Timeout:      time.Duration(cfg.Crawler.TimeoutSec) * time.Second,
				RetryMax:     cfg.Crawler.RetryMax,
				UserAgent:    cfg.Crawler.UserAgent,
				MaxBodyBytes: cfg.Crawler.MaxBodyBytes,
			}, logger)

			report, err := c.Run(ctx, sites)
			if err != nil {
				return err
			}
			logger.Info("crawl report",
				zap.String("run_id", report.RunID),
				zap.Int("crawled", report.Crawled),
				zap.Int("failed", report.Failed),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&sitesFile, "sites", "", "plain-text file with one site per line")
	return cmd
}

// loadSites reads the crawl targets: an explicit sites file wins over the
// configured name dataset.
func loadSites(sitesFile, namesPath string, logger *zap.Logger) ([]string, error) {
	if sitesFile != "" {
		return readSiteLines(sitesFile)
	}
	if namesPath == "" {
		return nil, fmt.Errorf("either --sites or catalog.names_path is required")
	}

	entries, err := catalog.NewNameDirectory(namesPath, logger).Entries()
	if err != nil {
		return nil, fmt.Errorf("read name dataset: %w", err)
	}
	sites := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Website != "" {
			sites = append(sites, e.Website)
		}
	}
	return sites, nil
}

func readSiteLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sites file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sites []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sites = append(sites, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read sites file: %w", err)
	}
	return sites, nil
}
