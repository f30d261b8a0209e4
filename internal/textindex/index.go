// Package textindex wraps an in-memory bleve index over the name, website,
// and address fields of the catalog. It serves candidate discovery only:
// prefix queries for token recall and match queries at two fuzziness tiers.
// Hit scores are bleve's relevance scores; callers normalize them when a
// fallback tier needs an approximate confidence.
package textindex

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Fuzziness tiers. Strict tolerates a single edit; loose is bleve's maximum
// and exists for last-resort recall.
const (
	FuzzinessStrict = 1
	FuzzinessLoose  = 2
)

// indexBatchSize bounds the number of documents per indexing batch.
const indexBatchSize = 1000

var searchFields = []string{"name", "website", "address"}

// Document is one indexable row, parallel to a catalog position.
type Document struct {
	Name    string
	Website string
	Address string
}

// Hit is a matching position with bleve's relevance score.
type Hit struct {
	Position int
	Score    float64
}

// Index is a read-only full-text index over a fixed document sequence.
type Index struct {
	idx bleve.Index
}

// New builds an in-memory index over docs. The document ID is the position
// in the slice, so search hits map straight back to catalog positions.
func New(docs []Document) (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	batch := idx.NewBatch()
	for pos, doc := range docs {
		fields := map[string]interface{}{}
		if doc.Name != "" {
			fields["name"] = doc.Name
		}
		if doc.Website != "" {
			fields["website"] = doc.Website
		}
		if doc.Address != "" {
			fields["address"] = doc.Address
		}
		if len(fields) == 0 {
			continue
		}
		if err := batch.Index(strconv.Itoa(pos), fields); err != nil {
			return nil, fmt.Errorf("index document %d: %w", pos, err)
		}
		if batch.Size() >= indexBatchSize {
			if err := idx.Batch(batch); err != nil {
				return nil, fmt.Errorf("flush batch: %w", err)
			}
			batch = idx.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := idx.Batch(batch); err != nil {
			return nil, fmt.Errorf("flush batch: %w", err)
		}
	}

	return &Index{idx: idx}, nil
}

// Close releases the index.
func (i *Index) Close() error { return i.idx.Close() }

// Fuzzy runs an analyzed match query across all fields at the given
// fuzziness tier and returns up to limit hits, best first.
func (i *Index) Fuzzy(q string, fuzziness, limit int) ([]Hit, error) {
	q = strings.TrimSpace(q)
	if q == "" || limit <= 0 {
		return nil, nil
	}

	dis := bleve.NewDisjunctionQuery()
	for _, field := range searchFields {
		mq := bleve.NewMatchQuery(q)
		mq.SetField(field)
		mq.SetFuzziness(fuzziness)
		dis.AddQuery(mq)
	}
	return i.run(dis, limit)
}

// Prefix matches indexed tokens sharing the given prefix in any field and
// returns up to limit hits, best first. Prefix terms bypass the analyzer,
// so the token is lowercased here.
func (i *Index) Prefix(token string, limit int) ([]Hit, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" || limit <= 0 {
		return nil, nil
	}

	dis := bleve.NewDisjunctionQuery()
	for _, field := range searchFields {
		pq := bleve.NewPrefixQuery(token)
		pq.SetField(field)
		dis.AddQuery(pq)
	}
	return i.run(dis, limit)
}

func (i *Index) run(q query.Query, limit int) ([]Hit, error) {
	req := bleve.NewSearchRequest(q)
	req.Size = limit

	res, err := i.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		pos, err := strconv.Atoi(h.ID)
		if err != nil {
			continue
		}
		hits = append(hits, Hit{Position: pos, Score: h.Score})
	}

	// bleve breaks score ties by document ID string order; re-break them by
	// numeric position so result order is stable across catalog sizes.
	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].Position < hits[b].Position
	})
	return hits, nil
}
