package engine

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/loupe-search/loupe/internal/domain"
	"github.com/loupe-search/loupe/internal/domain/match"
	"github.com/loupe-search/loupe/internal/textindex"
)

// Tier identifies the cascade state that produced a response's candidates.
type Tier string

// Cascade tiers, in escalation order.
const (
	TierSignals     Tier = "signals"
	TierStrictFuzzy Tier = "strict_fuzzy"
	TierSafetyNet   Tier = "safety_net"
	TierBruteForce  Tier = "brute_force"
	TierNameOnly    Tier = "name_only"
)

// Per-tier result limits and fuzzy-score shaping. Fuzzy-derived scores live
// well below genuine signal scores: floor 0.05, ceiling 0.55, and the
// name-only tier rescales that by 0.4 again.
const (
	strictFuzzyLimit = 20
	safetyNetLimit   = 10
	bruteForceKeep   = 10
	nameOnlyLimit    = 10

	signalSearchLimit = 50

	fuzzyScoreFloor = 0.05
	fuzzyScoreScale = 0.5
	nameOnlyRescale = 0.4
)

// cascadeResult is the outcome of one pass through the escalation cascade.
// Tiers 1-4 yield scored catalog positions; the name-only tier yields bare
// stub candidates instead, with no catalog position behind them.
type cascadeResult struct {
	tier   Tier
	scored []match.ScoredCandidate
	stubs  []match.Candidate
}

// candidateSet accumulates candidate positions in first-added order with a
// hard cap. Once the cap is reached new positions are dropped; entries
// added earliest survive.
type candidateSet struct {
	limit int
	order []int
	seen  map[int]struct{}
}

func newCandidateSet(limit int) *candidateSet {
	return &candidateSet{limit: limit, seen: make(map[int]struct{})}
}

func (s *candidateSet) add(positions ...int) {
	for _, pos := range positions {
		if len(s.order) >= s.limit {
			return
		}
		if _, dup := s.seen[pos]; dup {
			continue
		}
		s.seen[pos] = struct{}{}
		s.order = append(s.order, pos)
	}
}

func (s *candidateSet) addHits(hits []textindex.Hit) {
	for _, h := range hits {
		s.add(h.Position)
	}
}

// run executes the escalation cascade for one query. Transitions are driven
// by emptiness (or an all-zero scoring), never by errors: every tier
// degrades to "no candidates" and hands over to the next.
func (s *Service) run(q *match.Query, f *queryFeatures) cascadeResult {
	// Tier 1: per-signal union of exact-lookup and text-index hits.
	positions := s.signalUnion(q, f)
	tier := TierSignals

	// Tier 2: strict fuzzy over the concatenated query fields.
	if len(positions) == 0 {
		positions = s.fuzzyPositions(q.Text(), textindex.FuzzinessStrict, strictFuzzyLimit)
		tier = TierStrictFuzzy
	}

	scored := make([]match.ScoredCandidate, 0, len(positions))
	allZero := true
	for _, pos := range positions {
		sc := score(f, s.snap.Record(pos))
		if sc > 0 {
			allZero = false
		}
		scored = append(scored, match.ScoredCandidate{Index: pos, Score: sc})
	}

	// Tier 3: a candidate list with no genuine signal match is treated the
	// same as an empty one. Strict first, then loose.
	if len(scored) == 0 || allZero {
		if rescored := s.fuzzyRescored(q.Text(), textindex.FuzzinessStrict, safetyNetLimit); len(rescored) > 0 {
			return cascadeResult{tier: TierSafetyNet, scored: rescored}
		}
		if rescored := s.fuzzyRescored(q.Text(), textindex.FuzzinessLoose, safetyNetLimit); len(rescored) > 0 {
			return cascadeResult{tier: TierSafetyNet, scored: rescored}
		}

		// Tier 4: brute force over the catalog (strided above the cap).
		if brute := s.bruteForce(f); len(brute) > 0 {
			return cascadeResult{tier: TierBruteForce, scored: brute}
		}

		// Tier 5: loose fuzzy over the auxiliary name dataset.
		return cascadeResult{tier: TierNameOnly, stubs: s.nameOnly(q.Text())}
	}

	return cascadeResult{tier: tier, scored: scored}
}

// signalUnion unions candidate positions per present query field, in a
// fixed field order so the generation order is deterministic.
func (s *Service) signalUnion(q *match.Query, f *queryFeatures) []int {
	set := newCandidateSet(s.cfg.CandidateCap)
	lookup := s.snap.Lookup()

	if f.site != "" {
		set.add(lookup.Site(f.site)...)
		for _, tok := range f.domainTokens {
			set.add(lookup.Domain(tok)...)
		}
		for _, tok := range f.domainTokens {
			set.addHits(s.prefixHits(tok))
		}
		set.addHits(s.strictHits(q.Website()))
	}

	if f.phoneKey != "" {
		set.add(lookup.Phone(f.phoneKey)...)
	}

	if fb := q.Facebook(); fb != "" {
		if f.facebookHandle != "" {
			set.add(lookup.Social(f.facebookHandle)...)
		}
		// Vanity URLs often embed the brand name: search the handle's
		// sub-tokens against the text index.
		for _, tok := range handleTokens(f.facebookHandle) {
			set.addHits(s.prefixHits(tok))
			set.addHits(s.strictHits(tok))
		}
	}

	if name := q.Name(); name != "" {
		set.addHits(s.strictHits(name))
		for _, tok := range f.nameTokens {
			set.addHits(s.prefixHits(tok))
			set.addHits(s.strictHits(tok))
		}
	}

	return set.order
}

// fuzzyPositions returns candidate positions from a fuzzy search, hit order
// preserved.
func (s *Service) fuzzyPositions(text string, fuzziness, limit int) []int {
	hits, err := s.text.Fuzzy(text, fuzziness, limit)
	if err != nil {
		s.logger.Debug("fuzzy search failed", zap.Error(err))
		return nil
	}
	positions := make([]int, 0, len(hits))
	for _, h := range hits {
		positions = append(positions, h.Position)
	}
	return positions
}

// fuzzyRescored maps fuzzy hits to candidates whose score derives from the
// text engine's relative score, bounded into [fuzzyScoreFloor, 0.55] so a
// fuzzy-only match is always visibly weaker than a genuine signal match.
func (s *Service) fuzzyRescored(text string, fuzziness, limit int) []match.ScoredCandidate {
	hits, err := s.text.Fuzzy(text, fuzziness, limit)
	if err != nil {
		s.logger.Debug("fuzzy search failed", zap.Error(err))
		return nil
	}
	return rescoreHits(hits, 1)
}

// rescoreHits converts relevance scores to bounded confidence scores,
// optionally rescaled (the name-only tier passes nameOnlyRescale).
func rescoreHits(hits []textindex.Hit, rescale float64) []match.ScoredCandidate {
	if len(hits) == 0 {
		return nil
	}
	max := hits[0].Score
	for _, h := range hits {
		if h.Score > max {
			max = h.Score
		}
	}
	scored := make([]match.ScoredCandidate, 0, len(hits))
	for _, h := range hits {
		rel := 0.0
		if max > 0 {
			rel = h.Score / max
		}
		sc := fuzzyScoreFloor + rel*fuzzyScoreScale
		scored = append(scored, match.ScoredCandidate{Index: h.Position, Score: sc * rescale})
	}
	return scored
}

// bruteForce scores the whole catalog, or a uniformly strided sample when
// the catalog exceeds the configured bound, and keeps the best few. Zero
// scores are kept: as long as the catalog is non-empty this tier always
// produces candidates.
func (s *Service) bruteForce(f *queryFeatures) []match.ScoredCandidate {
	n := s.snap.Len()
	if n == 0 {
		return nil
	}

	stride := 1
	if n > s.cfg.BruteForceMax {
		stride = (n + s.cfg.BruteForceMax - 1) / s.cfg.BruteForceMax
	}

	scored := make([]match.ScoredCandidate, 0, n/stride+1)
	for pos := 0; pos < n; pos += stride {
		scored = append(scored, match.ScoredCandidate{
			Index: pos,
			Score: score(f, s.snap.Record(pos)),
		})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		if scored[a].Score != scored[b].Score {
			return scored[a].Score > scored[b].Score
		}
		return scored[a].Index < scored[b].Index
	})
	if len(scored) > bruteForceKeep {
		scored = scored[:bruteForceKeep]
	}
	return scored
}

// nameOnly searches the auxiliary name dataset at loose fuzziness and
// returns bare stub candidates. A missing dataset yields no candidates and
// nothing else.
func (s *Service) nameOnly(text string) []match.Candidate {
	idx, entries := s.nameIndex()
	if idx == nil {
		return nil
	}

	hits, err := idx.Fuzzy(text, textindex.FuzzinessLoose, nameOnlyLimit)
	if err != nil {
		s.logger.Debug("name dataset search failed", zap.Error(err))
		return nil
	}

	stubs := make([]match.Candidate, 0, len(hits))
	for _, sc := range rescoreHits(hits, nameOnlyRescale) {
		if sc.Index < 0 || sc.Index >= len(entries) {
			continue
		}
		e := entries[sc.Index]
		stubs = append(stubs, match.Candidate{
			Profile: domain.CompanyProfile{Website: e.Website, Name: e.Name},
			Score:   sc.Score,
		})
	}
	return stubs
}

func (s *Service) prefixHits(token string) []textindex.Hit {
	hits, err := s.text.Prefix(token, signalSearchLimit)
	if err != nil {
		s.logger.Debug("prefix search failed", zap.String("token", token), zap.Error(err))
		return nil
	}
	return hits
}

func (s *Service) strictHits(text string) []textindex.Hit {
	hits, err := s.text.Fuzzy(text, textindex.FuzzinessStrict, signalSearchLimit)
	if err != nil {
		s.logger.Debug("strict search failed", zap.Error(err))
		return nil
	}
	return hits
}

// handleTokens splits a canonical facebook handle into alphanumeric
// sub-tokens of length two or more.
func handleTokens(handle string) []string {
	_, after, ok := strings.Cut(handle, "/")
	if !ok {
		return nil
	}
	fields := strings.FieldsFunc(after, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	tokens := fields[:0]
	for _, tok := range fields {
		if len(tok) > 1 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
