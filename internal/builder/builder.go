// Package builder produces the NDJSON company catalog by merging the
// {website, name} dataset with crawl signals from the signal store.
package builder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"

	"github.com/loupe-search/loupe/internal/canonical"
	"github.com/loupe-search/loupe/internal/domain"
	"github.com/loupe-search/loupe/internal/store"
)

// Builder assembles catalog profiles. The signal store is optional: without
// one the catalog carries names and websites only.
type Builder struct {
	store  store.SignalStore
	logger *zap.Logger
}

// New creates a catalog builder.
func New(st store.SignalStore, logger *zap.Logger) *Builder {
	return &Builder{store: st, logger: logger}
}

// Build merges name entries with stored crawl signals and writes one JSON
// profile per line. Name entries come first in their given order; crawled
// sites absent from the name dataset follow in lexicographic order. Returns
// the number of profiles written.
func (b *Builder) Build(ctx context.Context, names []domain.NameEntry, out io.Writer) (int, error) {
	enc := json.NewEncoder(out)
	seen := make(map[string]struct{}, len(names))
	written := 0

	for _, entry := range names {
		site := canonical.Website(entry.Website)
		if site == "" {
			b.logger.Warn("skipping name entry without website", zap.String("name", entry.Name))
			continue
		}
		if _, dup := seen[site]; dup {
			continue
		}
		seen[site] = struct{}{}

		profile := domain.CompanyProfile{Website: entry.Website, Name: entry.Name}
		b.merge(ctx, site, &profile)

		if err := enc.Encode(profile); err != nil {
			return written, fmt.Errorf("write profile for %s: %w", site, err)
		}
		written++
	}

	extra, err := b.crawledOnly(ctx, seen)
	if err != nil {
		return written, err
	}
	for _, profile := range extra {
		if err := enc.Encode(profile); err != nil {
			return written, fmt.Errorf("write profile for %s: %w", profile.Website, err)
		}
		written++
	}

	return written, nil
}

// merge copies crawl signals into a profile. The name dataset wins on name;
// signals fill everything else.
func (b *Builder) merge(ctx context.Context, site string, profile *domain.CompanyProfile) {
	if b.store == nil {
		return
	}
	sig, err := b.store.Get(ctx, site)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			b.logger.Warn("signal lookup failed", zap.String("site", site), zap.Error(err))
		}
		return
	}
	if profile.Name == "" {
		profile.Name = sig.Name
	}
	profile.Phones = sig.Phones
	profile.Social = sig.Social
	profile.Address = sig.Address
}

// crawledOnly returns profiles for crawled sites missing from the name
// dataset, ordered by site for a reproducible catalog.
func (b *Builder) crawledOnly(ctx context.Context, seen map[string]struct{}) ([]domain.CompanyProfile, error) {
	if b.store == nil {
		return nil, nil
	}
	sites, err := b.store.Sites(ctx)
	if err != nil {
		return nil, fmt.Errorf("list crawled sites: %w", err)
	}
	sort.Strings(sites)

	var profiles []domain.CompanyProfile
	for _, site := range sites {
		if _, dup := seen[site]; dup {
			continue
		}
		sig, err := b.store.Get(ctx, site)
		if err != nil {
			b.logger.Warn("signal lookup failed", zap.String("site", site), zap.Error(err))
			continue
		}
		profiles = append(profiles, domain.CompanyProfile{
			Website: sig.Website,
			Name:    sig.Name,
			Phones:  sig.Phones,
			Social:  sig.Social,
			Address: sig.Address,
		})
	}
	return profiles, nil
}
