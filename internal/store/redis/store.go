// Package redis implements the crawl-signal store via rueidis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/loupe-search/loupe/internal/domain"
	"github.com/loupe-search/loupe/internal/store"
)

// Compile-time check: Store implements store.SignalStore.
var _ store.SignalStore = (*Store)(nil)

const signalSegment = "signals:"

// Config holds connection parameters for a Redis signal store.
type Config struct {
	Addrs     []string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
}

// Store persists crawl signals as JSON values under prefixed keys.
type Store struct {
	client rueidis.Client
	prefix string
}

// NewStore creates a Redis signal store via rueidis.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, prefix: cfg.KeyPrefix}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return &store.Error{Op: store.OpPing, Err: err}
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for signal store: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Put stores signals for one site, overwriting any previous crawl.
func (s *Store) Put(ctx context.Context, sig domain.CrawlSignals) error {
	data, err := json.Marshal(sig)
	if err != nil {
		return fmt.Errorf("marshal signals: %w", err)
	}
	cmd := s.client.B().Set().Key(s.key(sig.Website)).Value(string(data)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return &store.Error{Op: store.OpSet, Err: err}
	}
	return nil
}

// Get retrieves the stored signals for a site.
func (s *Store) Get(ctx context.Context, site string) (domain.CrawlSignals, error) {
	cmd := s.client.B().Get().Key(s.key(site)).Build()
	data, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return domain.CrawlSignals{}, store.ErrNotFound
		}
		return domain.CrawlSignals{}, &store.Error{Op: store.OpGet, Err: err}
	}

	var sig domain.CrawlSignals
	if err := json.Unmarshal(data, &sig); err != nil {
		return domain.CrawlSignals{}, fmt.Errorf("unmarshal signals: %w", err)
	}
	return sig, nil
}

// Sites lists every site with stored signals.
func (s *Store) Sites(ctx context.Context) ([]string, error) {
	var sites []string
	var cursor uint64

	for {
		cmd := s.client.B().Scan().Cursor(cursor).Match(s.key("*")).Count(100).Build()
		res, err := s.client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, &store.Error{Op: store.OpScan, Err: err}
		}
		for _, k := range res.Elements {
			sites = append(sites, strings.TrimPrefix(k, s.prefix+signalSegment))
		}
		cursor = res.Cursor
		if cursor == 0 {
			break
		}
	}

	return sites, nil
}

func (s *Store) key(site string) string {
	return s.prefix + signalSegment + site
}
