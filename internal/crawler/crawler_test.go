package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/loupe-search/loupe/internal/domain"
	"github.com/loupe-search/loupe/internal/store"
)

type memStore struct {
	mu      sync.Mutex
	signals map[string]domain.CrawlSignals
}

func newMemStore() *memStore {
	return &memStore{signals: make(map[string]domain.CrawlSignals)}
}

func (m *memStore) Ping(context.Context) error { return nil }
func (m *memStore) Close()                     {}

func (m *memStore) WaitForReady(context.Context, time.Duration) error { return nil }

func (m *memStore) Put(_ context.Context, sig domain.CrawlSignals) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signals[sig.Website] = sig
	return nil
}

func (m *memStore) Get(_ context.Context, site string) (domain.CrawlSignals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sig, ok := m.signals[site]
	if !ok {
		return domain.CrawlSignals{}, store.ErrNotFound
	}
	return sig, nil
}

func (m *memStore) Sites(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sites := make([]string, 0, len(m.signals))
	for s := range m.signals {
		sites = append(sites, s)
	}
	return sites, nil
}

func TestCrawler_Run(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	t.Cleanup(srv.Close)

	site := strings.TrimPrefix(srv.URL, "http://")

	st := newMemStore()
	c := New(st, Config{Concurrency: 2, Timeout: 2 * time.Second}, zap.NewNop())

	report, err := c.Run(context.Background(), []string{site})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Crawled != 1 || report.Failed != 0 {
		t.Fatalf("report = %+v, want 1 crawled", report)
	}
	if report.RunID == "" {
		t.Error("run id is empty")
	}

	sig, err := st.Get(context.Background(), site)
	if err != nil {
		t.Fatalf("stored signals missing: %v", err)
	}
	if sig.Name != "Acme Corporation | Home" {
		t.Errorf("name = %q, want page title", sig.Name)
	}
	if len(sig.Phones) != 1 {
		t.Errorf("phones = %v, want one entry", sig.Phones)
	}
	if sig.RunID != report.RunID {
		t.Errorf("signal run id = %q, want %q", sig.RunID, report.RunID)
	}
	if sig.FetchedAt.IsZero() {
		t.Error("fetched at is zero")
	}
}

func TestCrawler_CountsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	site := strings.TrimPrefix(srv.URL, "http://")

	st := newMemStore()
	c := New(st, Config{Concurrency: 1, Timeout: 2 * time.Second}, zap.NewNop())

	report, err := c.Run(context.Background(), []string{site})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Failed != 1 || report.Crawled != 0 {
		t.Errorf("report = %+v, want 1 failed", report)
	}
	if sites, _ := st.Sites(context.Background()); len(sites) != 0 {
		t.Errorf("stored sites = %v, want none", sites)
	}
}

func TestCrawler_UnusableSite(t *testing.T) {
	st := newMemStore()
	c := New(st, Config{Concurrency: 1, Timeout: time.Second}, zap.NewNop())

	report, err := c.Run(context.Background(), []string{"   "})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Failed != 1 {
		t.Errorf("report = %+v, want 1 failed", report)
	}
}

func TestCrawler_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := newMemStore()
	c := New(st, Config{Concurrency: 1, Timeout: time.Second}, zap.NewNop())

	_, err := c.Run(ctx, []string{"acme.example", "contoso.example"})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
