package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/loupe-search/loupe/internal/catalog"
	"github.com/loupe-search/loupe/internal/domain"
	"github.com/loupe-search/loupe/internal/domain/match"
	"github.com/loupe-search/loupe/internal/logger"
	"github.com/loupe-search/loupe/internal/metrics"
	"github.com/loupe-search/loupe/internal/textindex"
)

// Config bounds the engine's worst-case work per request.
type Config struct {
	// CandidateCap caps the tier-1 candidate union before scoring.
	CandidateCap int
	// BruteForceMax bounds the brute-force tier: larger catalogs are
	// sampled with a uniform stride instead of scanned in full.
	BruteForceMax int
}

// Default work bounds.
const (
	DefaultCandidateCap  = 500
	DefaultBruteForceMax = 25000
)

func (c *Config) applyDefaults() {
	if c.CandidateCap <= 0 {
		c.CandidateCap = DefaultCandidateCap
	}
	if c.BruteForceMax <= 0 {
		c.BruteForceMax = DefaultBruteForceMax
	}
}

// Service resolves match queries against one immutable catalog snapshot.
// All state is read-only after construction except the lazily built
// name-dataset index, which is guarded by a sync.Once; concurrent requests
// share the service freely.
type Service struct {
	snap   *catalog.Snapshot
	text   TextSearcher
	names  NameSource
	cfg    Config
	logger *zap.Logger

	nameOnce    sync.Once
	nameIdx     *textindex.Index
	nameEntries []domain.NameEntry
}

// New creates a match service over the given snapshot and text index.
// names may be nil; that only disables the name-only fallback tier.
func New(snap *catalog.Snapshot, text TextSearcher, names NameSource, cfg Config, logger *zap.Logger) *Service {
	cfg.applyDefaults()
	metrics.CatalogRecords.Set(float64(snap.Len()))
	return &Service{
		snap:   snap,
		text:   text,
		names:  names,
		cfg:    cfg,
		logger: logger,
	}
}

// CatalogSize reports the number of records in the underlying snapshot.
func (s *Service) CatalogSize() int { return s.snap.Len() }

// Match resolves a query to its best-effort candidate ranking. It never
// fails: malformed identifiers degrade during canonicalization, exhausted
// tiers degrade to an empty ranking with a nil best.
func (s *Service) Match(ctx context.Context, q *match.Query, page *match.Page) match.Result {
	f := newQueryFeatures(q)
	out := s.run(q, &f)

	var items []rankedItem
	if out.tier == TierNameOnly {
		items = make([]rankedItem, 0, len(out.stubs))
		for i, c := range out.stubs {
			items = append(items, rankedItem{profile: c.Profile, score: c.Score, pos: i})
		}
	} else {
		items = make([]rankedItem, 0, len(out.scored))
		for _, sc := range out.scored {
			items = append(items, rankedItem{
				profile: s.snap.Profile(sc.Index),
				score:   sc.Score,
				pos:     sc.Index,
			})
		}
	}

	metrics.MatchRequestsTotal.WithLabelValues(string(out.tier)).Inc()
	metrics.MatchCandidates.Observe(float64(len(items)))

	logger.FromContext(ctx).Debug("match resolved",
		zap.String("tier", string(out.tier)),
		zap.Int("candidates", len(items)),
	)

	return rankAndPage(items, page)
}

// nameIndex lazily builds the text index over the auxiliary name dataset.
// Built at most once per process; failure leaves the tier disabled.
func (s *Service) nameIndex() (*textindex.Index, []domain.NameEntry) {
	s.nameOnce.Do(func() {
		if s.names == nil {
			return
		}
		entries, err := s.names.Entries()
		if err != nil || len(entries) == 0 {
			return
		}
		docs := make([]textindex.Document, len(entries))
		for i, e := range entries {
			docs[i] = textindex.Document{Name: e.Name, Website: e.Website}
		}
		idx, err := textindex.New(docs)
		if err != nil {
			s.logger.Warn("name dataset index build failed", zap.Error(err))
			return
		}
		s.nameIdx = idx
		s.nameEntries = entries
	})
	return s.nameIdx, s.nameEntries
}
