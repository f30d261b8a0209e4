package catalog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/loupe-search/loupe/internal/domain"
)

// NameDirectory is the auxiliary flat {website, name} dataset used by the
// catalog build step and by the engine's last-resort fallback tier. It is
// loaded lazily exactly once and cached for the process lifetime; a missing
// or unreadable file disables the fallback tier, nothing else.
type NameDirectory struct {
	path   string
	logger *zap.Logger

	once    sync.Once
	entries []domain.NameEntry
	err     error
}

// NewNameDirectory creates a directory backed by an NDJSON file of
// NameEntry rows. The file is not touched until the first Entries call.
func NewNameDirectory(path string, logger *zap.Logger) *NameDirectory {
	return &NameDirectory{path: path, logger: logger}
}

// Entries returns the cached dataset, loading it on first call. Concurrent
// first calls share a single load. A load failure is cached too and
// reported as domain.ErrNamesUnavailable.
func (d *NameDirectory) Entries() ([]domain.NameEntry, error) {
	d.once.Do(d.load)
	return d.entries, d.err
}

func (d *NameDirectory) load() {
	if d.path == "" {
		d.err = domain.ErrNamesUnavailable
		return
	}

	f, err := os.Open(d.path)
	if err != nil {
		d.logger.Warn("name dataset unavailable", zap.String("path", d.path), zap.Error(err))
		d.err = fmt.Errorf("%w: %v", domain.ErrNamesUnavailable, err)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var e domain.NameEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			continue
		}
		if e.Website == "" && e.Name == "" {
			continue
		}
		d.entries = append(d.entries, e)
	}
	if err := scanner.Err(); err != nil {
		d.entries = nil
		d.err = fmt.Errorf("%w: %v", domain.ErrNamesUnavailable, err)
		return
	}

	d.logger.Info("name dataset loaded",
		zap.String("path", d.path), zap.Int("entries", len(d.entries)))
}
