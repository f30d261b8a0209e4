// Package file implements the signal store on a plain directory: one JSON
// file per site. It backs local runs where no Redis is available.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/loupe-search/loupe/internal/domain"
	"github.com/loupe-search/loupe/internal/store"
)

const fileExt = ".json"

// Store persists crawl signals as JSON files under one directory.
type Store struct {
	dir string
}

// NewStore creates a directory-backed signal store. The directory is created
// on the first WaitForReady or Put.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is required")
	}
	return &Store{dir: dir}, nil
}

// path maps a site to its file. Sites are query-escaped so separators and
// ports survive the filename round trip.
func (s *Store) path(site string) string {
	return filepath.Join(s.dir, url.QueryEscape(site)+fileExt)
}

// Ping checks that the directory exists and is a directory.
func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return &store.Error{Op: store.OpPing, Err: err}
	}
	if !info.IsDir() {
		return &store.Error{Op: store.OpPing, Err: fmt.Errorf("%s is not a directory", s.dir)}
	}
	return nil
}

// Put writes the signals for one site, replacing any previous record.
func (s *Store) Put(_ context.Context, sig domain.CrawlSignals) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &store.Error{Op: store.OpSet, Err: err}
	}
	buf, err := json.Marshal(sig)
	if err != nil {
		return &store.Error{Op: store.OpSet, Err: err}
	}
	if err := os.WriteFile(s.path(sig.Website), buf, 0o644); err != nil {
		return &store.Error{Op: store.OpSet, Err: err}
	}
	return nil
}

// Get reads the signals for one site.
func (s *Store) Get(_ context.Context, site string) (domain.CrawlSignals, error) {
	buf, err := os.ReadFile(s.path(site))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.CrawlSignals{}, store.ErrNotFound
		}
		return domain.CrawlSignals{}, &store.Error{Op: store.OpGet, Err: err}
	}
	var sig domain.CrawlSignals
	if err := json.Unmarshal(buf, &sig); err != nil {
		return domain.CrawlSignals{}, &store.Error{Op: store.OpGet, Err: err}
	}
	return sig, nil
}

// Sites lists every site with stored signals, sorted.
func (s *Store) Sites(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &store.Error{Op: store.OpScan, Err: err}
	}

	var sites []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		site, err := url.QueryUnescape(strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		sites = append(sites, site)
	}
	sort.Strings(sites)
	return sites, nil
}

// Close is a no-op; the store holds no open handles.
func (s *Store) Close() {}

// WaitForReady creates the directory if needed.
func (s *Store) WaitForReady(_ context.Context, _ time.Duration) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &store.Error{Op: store.OpPing, Err: err}
	}
	return nil
}
