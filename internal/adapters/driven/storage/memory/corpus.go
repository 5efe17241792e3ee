// Package memory provides an in-memory corpus provider, used by tests
// and as a reference implementation of the corpus contract.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
	"github.com/keeper-labs/keeper-cli/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.CorpusProvider = (*Provider)(nil)

// Provider is an in-memory implementation of driven.CorpusProvider.
type Provider struct {
	mu      sync.Mutex
	corpora map[string]*Corpus
}

// NewProvider creates a new in-memory corpus provider.
func NewProvider() *Provider {
	return &Provider{
		corpora: make(map[string]*Corpus),
	}
}

// Corpus returns the named collection, creating it on first use.
func (p *Provider) Corpus(name string) driven.Corpus {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.corpora[name]
	if !ok {
		c = NewCorpus()
		p.corpora[name] = c
	}
	return c
}

// Close releases nothing; it exists to satisfy the interface.
func (p *Provider) Close() error {
	return nil
}

// Corpus is an in-memory implementation of driven.Corpus.
// Records are kept in insertion order, which makes similarity ties and
// scan results deterministic.
type Corpus struct {
	mu      sync.RWMutex
	records []domain.Record
}

var _ driven.Corpus = (*Corpus)(nil)

// NewCorpus creates a new empty in-memory corpus.
func NewCorpus() *Corpus {
	return &Corpus{}
}

// Add inserts records built from four parallel slices.
func (c *Corpus) Add(_ context.Context, ids, texts []string, vectors [][]float32, metadatas []domain.Metadata) error {
	n := len(ids)
	if n == 0 || len(texts) != n || len(vectors) != n || len(metadatas) != n {
		return fmt.Errorf("%w: ids=%d texts=%d vectors=%d metadatas=%d",
			domain.ErrInvalidInput, len(ids), len(texts), len(vectors), len(metadatas))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := 0; i < n; i++ {
		c.records = append(c.records, domain.Record{
			ID:       ids[i],
			Text:     texts[i],
			Vector:   vectors[i],
			Metadata: metadatas[i],
		})
	}
	return nil
}

// Get returns all records whose metadata matches the filter.
func (c *Corpus) Get(_ context.Context, filter domain.Filter) ([]domain.Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var result []domain.Record
	for _, rec := range c.records {
		if filter.Matches(rec.Metadata) {
			result = append(result, rec)
		}
	}
	return result, nil
}

// SimilaritySearch ranks matching records by cosine similarity.
func (c *Corpus) SimilaritySearch(_ context.Context, vector []float32, k int, filter domain.Filter) ([]domain.Record, error) {
	if k <= 0 {
		return nil, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var candidates []domain.Record
	var scores []float64
	for _, rec := range c.records {
		if filter.Matches(rec.Metadata) {
			candidates = append(candidates, rec)
			scores = append(scores, cosineSimilarity(vector, rec.Vector))
		}
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}
	ranked := make([]domain.Record, 0, k)
	for _, idx := range order[:k] {
		ranked = append(ranked, candidates[idx])
	}
	return ranked, nil
}

// ContainsText returns records containing the substring, case-sensitive.
func (c *Corpus) ContainsText(_ context.Context, substring string) ([]domain.Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var result []domain.Record
	for _, rec := range c.records {
		if strings.Contains(rec.Text, substring) {
			result = append(result, rec)
		}
	}
	return result, nil
}

// Delete removes records by id. Unknown ids are a no-op.
func (c *Corpus) Delete(_ context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.records[:0]
	for _, rec := range c.records {
		if !drop[rec.ID] {
			kept = append(kept, rec)
		}
	}
	c.records = kept
	return nil
}

// Len returns the number of stored records.
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// cosineSimilarity computes the cosine of the angle between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
