package search

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// Semantic scores entries by the intersection of language-normalized keyword
// sets. Results for a normalized query are cached for a bounded window
// because the FAQ corpus changes rarely; every FAQ mutation must call
// InvalidateAll.
type Semantic struct {
	src   Source
	an    *Analyzer
	cache *expirable.LRU[string, []Candidate]
	group singleflight.Group
}

// NewSemantic returns a keyword matcher over src using an for analysis.
// size bounds the number of cached queries and ttl their lifetime.
func NewSemantic(src Source, an *Analyzer, size int, ttl time.Duration) *Semantic {
	return &Semantic{
		src:   src,
		an:    an,
		cache: expirable.NewLRU[string, []Candidate](size, nil, ttl),
	}
}

// Match extracts the query's keyword set and scores each entry by keyword
// intersection. An empty keyword set (blank input or stopwords only) returns
// nil without scanning the store. Concurrent identical queries collapse into
// one computation via singleflight.
func (s *Semantic) Match(ctx context.Context, query string) ([]Candidate, error) {
	key := Normalize(query)
	if key == "" {
		return nil, nil
	}
	qkw := s.an.Keywords(key)
	if len(qkw) == 0 {
		return nil, nil
	}

	if hit, ok := s.cache.Get(key); ok {
		return hit, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		if hit, ok := s.cache.Get(key); ok {
			return hit, nil
		}
		out, err := s.compute(ctx, qkw)
		if err != nil {
			return nil, err
		}
		s.cache.Add(key, out)
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Candidate), nil
}

// InvalidateAll drops every cached result. Wired into the FAQ create, update,
// delete, and bulk-import paths.
func (s *Semantic) InvalidateAll() {
	s.cache.Purge()
}

func (s *Semantic) compute(ctx context.Context, qkw map[string]struct{}) ([]Candidate, error) {
	entries, err := s.src.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		text := foldAccents(strings.ToLower(e.Question + " " + e.Answer))
		// Cheap containment pre-filter: the stemmer strips suffixes, so every
		// keyword that could intersect appears as a substring of the folded
		// text. Skipping early avoids building keyword sets for unrelated rows.
		if !containsAny(text, qkw) {
			continue
		}
		score := overlap(qkw, s.an.Keywords(e.Question+" "+e.Answer))
		if score == 0 {
			continue
		}
		out = append(out, Candidate{Entry: e, Score: score})
	}
	if len(out) == 0 {
		return nil, nil
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	return out, nil
}

func containsAny(text string, kws map[string]struct{}) bool {
	for k := range kws {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
