// Package loupe matches noisy partial company descriptions against a fixed
// company catalog. It embeds the full match engine in process: the catalog
// is loaded once at construction, indexed in memory, and queried through a
// fluent builder.
//
//	client, _ := loupe.New(loupe.WithCatalogFile("data/catalog.ndjson"))
//	defer client.Close()
//	res, _ := client.Match().Name("Acme Corp").Website("acme.com").Do(ctx)
package loupe

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/loupe-search/loupe/internal/catalog"
	"github.com/loupe-search/loupe/internal/domain"
	"github.com/loupe-search/loupe/internal/engine"
	"github.com/loupe-search/loupe/internal/textindex"
)

// Client is the loupe SDK entry point. It is safe for concurrent use.
type Client struct {
	snap *catalog.Snapshot
	idx  *textindex.Index
	svc  *engine.Service
}

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	catalogPath string
	profiles    []Profile

	namesPath string

	candidateCap  int
	bruteForceMax int

	logger *zap.Logger
}

// WithCatalogFile loads the catalog from an NDJSON file, one company
// profile per line.
func WithCatalogFile(path string) Option {
	return func(c *clientConfig) {
		c.catalogPath = path
	}
}

// WithProfiles uses an in-memory catalog. Takes precedence over
// WithCatalogFile.
func WithProfiles(profiles []Profile) Option {
	return func(c *clientConfig) {
		c.profiles = profiles
	}
}

// WithNamesFile sets the auxiliary {website, name} dataset backing the
// name-only fallback. Optional; without it the fallback tier is disabled.
func WithNamesFile(path string) Option {
	return func(c *clientConfig) {
		c.namesPath = path
	}
}

// WithWorkBounds overrides the engine work limits: the candidate union cap
// and the brute-force scan bound. Zero keeps the default.
func WithWorkBounds(candidateCap, bruteForceMax int) Option {
	return func(c *clientConfig) {
		c.candidateCap = candidateCap
		c.bruteForceMax = bruteForceMax
	}
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// New creates a loupe Client: loads the catalog, builds the lookup tables
// and the text index, and wires the match engine.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	profiles, err := loadProfiles(cfg)
	if err != nil {
		return nil, err
	}

	snap := catalog.NewSnapshot(profiles)

	docs := make([]textindex.Document, snap.Len())
	for i := 0; i < snap.Len(); i++ {
		p := snap.Profile(i)
		docs[i] = textindex.Document{Name: p.Name, Website: p.Website, Address: p.Address}
	}
	idx, err := textindex.New(docs)
	if err != nil {
		return nil, fmt.Errorf("loupe: build text index: %w", err)
	}

	var names engine.NameSource
	if cfg.namesPath != "" {
		names = catalog.NewNameDirectory(cfg.namesPath, cfg.logger)
	}

	svc := engine.New(snap, idx, names, engine.Config{
		CandidateCap:  cfg.candidateCap,
		BruteForceMax: cfg.bruteForceMax,
	}, cfg.logger)

	return &Client{snap: snap, idx: idx, svc: svc}, nil
}

func loadProfiles(cfg *clientConfig) ([]domain.CompanyProfile, error) {
	if cfg.profiles != nil {
		out := make([]domain.CompanyProfile, 0, len(cfg.profiles))
		for _, p := range cfg.profiles {
			out = append(out, toDomainProfile(p))
		}
		return out, nil
	}
	if cfg.catalogPath == "" {
		return nil, errors.New("loupe: catalog required (use WithCatalogFile or WithProfiles)")
	}
	profiles, err := catalog.Load(cfg.catalogPath, cfg.logger)
	if err != nil {
		return nil, fmt.Errorf("loupe: load catalog: %w", err)
	}
	return profiles, nil
}

// Close releases the text index resources.
func (c *Client) Close() {
	if c.idx != nil {
		_ = c.idx.Close()
	}
}

// CatalogSize reports the number of records in the loaded catalog.
func (c *Client) CatalogSize() int { return c.snap.Len() }

// Match starts a fluent match query.
func (c *Client) Match() *MatchBuilder {
	return &MatchBuilder{client: c}
}
