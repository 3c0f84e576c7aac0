// Package popularity tracks search term and category frequencies in hash
// counters. Counts feed the suggestion ordering and the popular endpoint.
package popularity

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/kailas-cloud/shopdex/internal/db"
	"github.com/kailas-cloud/shopdex/internal/domain"
)

const (
	termsSuffix      = "stats:terms"
	categoriesSuffix = "stats:categories"
)

// TermCount is a search term with its recorded frequency.
type TermCount struct {
	Term  string
	Count int64
}

// CategoryCount is a category with its recorded frequency.
type CategoryCount struct {
	Category domain.Category
	Count    int64
}

// Repository persists popularity counters in a hash store.
type Repository struct {
	hashes db.HashStore
	prefix string
}

// New creates a popularity repository. prefix namespaces all keys in the store.
func New(hashes db.HashStore, prefix string) *Repository {
	return &Repository{hashes: hashes, prefix: prefix}
}

// RecordSearch increments the counters touched by one executed search.
// Best-effort: callers treat failures as non-fatal.
func (r *Repository) RecordSearch(ctx context.Context, term string, category *domain.Category) error {
	if term != "" {
		if err := r.hashes.HIncrBy(ctx, r.prefix+termsSuffix, term, 1); err != nil {
			return fmt.Errorf("record term: %w", err)
		}
	}
	if category != nil {
		if err := r.hashes.HIncrBy(ctx, r.prefix+categoriesSuffix, string(*category), 1); err != nil {
			return fmt.Errorf("record category: %w", err)
		}
	}
	return nil
}

// TermCounts returns every recorded term with its count.
func (r *Repository) TermCounts(ctx context.Context) (map[string]int64, error) {
	fields, err := r.hashes.HGetAll(ctx, r.prefix+termsSuffix)
	if err != nil {
		return nil, fmt.Errorf("term counts: %w", err)
	}
	return parseCounts(fields), nil
}

// TopSearches returns the n most frequent search terms, count descending
// then term ascending.
func (r *Repository) TopSearches(ctx context.Context, n int) ([]TermCount, error) {
	counts, err := r.TermCounts(ctx)
	if err != nil {
		return nil, err
	}

	terms := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		terms = append(terms, TermCount{Term: term, Count: count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})

	if len(terms) > n {
		terms = terms[:n]
	}
	return terms, nil
}

// TrendingCategories returns the n most searched categories, count
// descending then category ascending.
func (r *Repository) TrendingCategories(ctx context.Context, n int) ([]CategoryCount, error) {
	fields, err := r.hashes.HGetAll(ctx, r.prefix+categoriesSuffix)
	if err != nil {
		return nil, fmt.Errorf("trending categories: %w", err)
	}

	cats := make([]CategoryCount, 0, len(fields))
	for field, count := range parseCounts(fields) {
		c := domain.Category(field)
		if !c.IsValid() {
			continue
		}
		cats = append(cats, CategoryCount{Category: c, Count: count})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].Count != cats[j].Count {
			return cats[i].Count > cats[j].Count
		}
		return cats[i].Category < cats[j].Category
	})

	if len(cats) > n {
		cats = cats[:n]
	}
	return cats, nil
}

func parseCounts(fields map[string]string) map[string]int64 {
	counts := make(map[string]int64, len(fields))
	for field, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		counts[field] = n
	}
	return counts
}
