package catalog

import "github.com/loupe-search/loupe/internal/domain"

// Snapshot is the immutable unit the engine reads: the loaded profiles,
// their augmented records, and the exact-lookup indexes, all built in one
// pass at load time. Concurrent queries share a Snapshot freely; a catalog
// reload would be a new Snapshot swapped in behind a single reference, never
// an in-place mutation.
type Snapshot struct {
	profiles []domain.CompanyProfile
	records  []domain.AugmentedRecord
	lookup   *Lookup
}

// NewSnapshot augments the profiles and builds the lookup indexes.
func NewSnapshot(profiles []domain.CompanyProfile) *Snapshot {
	records := AugmentAll(profiles)
	return &Snapshot{
		profiles: profiles,
		records:  records,
		lookup:   BuildLookup(records),
	}
}

// Len returns the number of catalog records.
func (s *Snapshot) Len() int { return len(s.profiles) }

// Profile returns the profile at the given catalog position.
func (s *Snapshot) Profile(pos int) domain.CompanyProfile { return s.profiles[pos] }

// Record returns the augmented record at the given catalog position.
func (s *Snapshot) Record(pos int) *domain.AugmentedRecord { return &s.records[pos] }

// Records returns all augmented records, ordered by catalog position.
func (s *Snapshot) Records() []domain.AugmentedRecord { return s.records }

// Lookup returns the exact-lookup indexes.
func (s *Snapshot) Lookup() *Lookup { return s.lookup }
