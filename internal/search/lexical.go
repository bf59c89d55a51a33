package search

import (
	"context"
	"sort"
	"strings"
)

// questionWeight doubles question-word hits relative to answer-word hits.
const questionWeight = 2

// Lexical scores entries by word-set overlap between the query and each
// entry's question and answer. Question hits count double.
type Lexical struct {
	src Source
}

// NewLexical returns a matcher backed by src.
func NewLexical(src Source) *Lexical {
	return &Lexical{src: src}
}

// Match tokenizes the query into a lowercase word set and scores every entry
// as 2*|q∩question| + |q∩answer|. Zero-score entries are dropped; the rest
// are sorted by score descending with ties keeping retrieval order. A blank
// query returns nil without touching the source.
func (l *Lexical) Match(ctx context.Context, query string) ([]Candidate, error) {
	q := wordSet(query)
	if len(q) == 0 {
		return nil, nil
	}

	entries, err := l.src.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		score := questionWeight*overlap(q, wordSet(e.Question)) + overlap(q, wordSet(e.Answer))
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

// wordSet lowercases s and splits it on whitespace into a set.
func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(fields))
	for _, w := range fields {
		out[w] = struct{}{}
	}
	return out
}

func overlap(a, b map[string]struct{}) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := 0
	if len(a) > len(b) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
