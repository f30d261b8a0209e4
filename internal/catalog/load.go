package catalog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/loupe-search/loupe/internal/domain"
)

// maxLineBytes bounds a single NDJSON line.
const maxLineBytes = 1 << 20

// Load reads a catalog file: newline-delimited JSON, one CompanyProfile per
// line. Records without a website are skipped with a warning; website is
// the one required field of the catalog contract. Blank lines are ignored.
func Load(path string, logger *zap.Logger) ([]domain.CompanyProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	var profiles []domain.CompanyProfile
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var p domain.CompanyProfile
		if err := json.Unmarshal(raw, &p); err != nil {
			logger.Warn("skipping malformed catalog line",
				zap.Int("line", line), zap.Error(err))
			continue
		}
		if p.Website == "" {
			logger.Warn("skipping catalog record without website", zap.Int("line", line))
			continue
		}
		profiles = append(profiles, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	logger.Info("catalog loaded", zap.String("path", path), zap.Int("records", len(profiles)))
	return profiles, nil
}
