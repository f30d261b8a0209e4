// Package crawler fetches company websites and extracts contact signals
// (phones, social links, site titles) into the signal store.
package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/loupe-search/loupe/internal/canonical"
	"github.com/loupe-search/loupe/internal/store"
)

// Config holds crawler behavior settings.
type Config struct {
	Concurrency  int
	Timeout      time.Duration
	RetryMax     int
	UserAgent    string
	MaxBodyBytes int64
}

func (c *Config) applyDefaults() {
	if c.Concurrency <= 0 {
		c.Concurrency = 8
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "loupe-crawler/1.0"
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 2 << 20
	}
}

// Report summarizes one crawl run.
type Report struct {
	RunID   string
	Crawled int
	Failed  int
}

// Crawler fetches sites with a bounded worker pool and persists the
// extracted signals.
type Crawler struct {
	client *retryablehttp.Client
	store  store.SignalStore
	cfg    Config
	logger *zap.Logger
}

// New creates a crawler writing to the given signal store.
func New(st store.SignalStore, cfg Config, logger *zap.Logger) *Crawler {
	cfg.applyDefaults()

	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.HTTPClient.Timeout = cfg.Timeout
	client.Logger = nil

	return &Crawler{
		client: client,
		store:  st,
		cfg:    cfg,
		logger: logger,
	}
}

// Run crawls the given sites concurrently. Individual failures are counted,
// not fatal; the run stops early only on context cancellation.
func (c *Crawler) Run(ctx context.Context, sites []string) (Report, error) {
	report := Report{RunID: uuid.NewString()}
	log := c.logger.With(zap.String("run_id", report.RunID))
	log.Info("crawl started", zap.Int("sites", len(sites)), zap.Int("concurrency", c.cfg.Concurrency))

	jobs := make(chan string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < c.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for site := range jobs {
				err := c.crawlSite(ctx, site, report.RunID)
				mu.Lock()
				if err != nil {
					report.Failed++
				} else {
					report.Crawled++
				}
				mu.Unlock()
				if err != nil {
					log.Warn("site crawl failed", zap.String("site", site), zap.Error(err))
				}
			}
		}()
	}

feed:
	for _, site := range sites {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- site:
		}
	}
	close(jobs)
	wg.Wait()

	log.Info("crawl finished", zap.Int("crawled", report.Crawled), zap.Int("failed", report.Failed))
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("crawl interrupted: %w", err)
	}
	return report, nil
}

// crawlSite tries the URL variants of one site until a page fetches, then
// extracts and stores its signals.
func (c *Crawler) crawlSite(ctx context.Context, site string, runID string) error {
	canonicalSite := canonical.Website(site)
	if canonicalSite == "" {
		return fmt.Errorf("unusable site %q", site)
	}

	var lastErr error
	for _, u := range Variants(canonicalSite) {
		body, err := c.fetch(ctx, u)
		if err != nil {
			lastErr = err
			continue
		}

		sig := Extract(canonicalSite, body)
		sig.RunID = runID
		sig.FetchedAt = time.Now().UTC()
		if err := c.store.Put(ctx, sig); err != nil {
			return fmt.Errorf("store signals for %s: %w", canonicalSite, err)
		}
		return nil
	}
	return fmt.Errorf("all variants failed for %s: %w", canonicalSite, lastErr)
}

// fetch retrieves one URL and returns the body capped at MaxBodyBytes.
func (c *Crawler) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}

// Variants lists the fetchable URL forms of a canonical site, most likely
// first.
func Variants(canonicalSite string) []string {
	return []string{
		"https://" + canonicalSite,
		"https://www." + canonicalSite,
		"http://" + canonicalSite,
		"http://www." + canonicalSite,
	}
}
