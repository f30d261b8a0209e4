// Package store defines the crawl-signal persistence contract. Crawler runs
// write signals here; the catalog build step reads them back out.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/loupe-search/loupe/internal/domain"
)

// ErrNotFound is returned when no signals exist for a site.
var ErrNotFound = errors.New("store: signals not found")

// Op constants name store operations for error context. The Redis backend
// maps them 1:1 onto command names.
const (
	OpGet  = "GET"
	OpSet  = "SET"
	OpScan = "SCAN"
	OpPing = "PING"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// SignalStore persists crawl signals keyed by canonical website.
type SignalStore interface {
	Ping(ctx context.Context) error
	Put(ctx context.Context, sig domain.CrawlSignals) error
	Get(ctx context.Context, site string) (domain.CrawlSignals, error)
	Sites(ctx context.Context) ([]string, error)
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
