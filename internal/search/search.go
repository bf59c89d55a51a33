// Package search implements the FAQ matching pipeline: a lexical word-overlap
// matcher, a keyword matcher built on Portuguese stemming, and a TTL cache
// shared by concurrent requests. It is deliberately small and deterministic:
//
//   - No logging in the library (callers decide how/what to log)
//   - Matchers share one interface so the dispatcher can swap them freely
//   - Deterministic scoring and sorting (stable order for ties)
//   - Empty or whitespace-only queries short-circuit before any store access
package search

import "context"

// Entry is the slice of a FAQ the matchers need: identifier plus the two
// scored text fields. Media and attachment columns never reach this layer.
type Entry struct {
	ID       string
	Question string
	Answer   string
}

// Candidate pairs an entry with its relevance score. Candidate lists are
// always ordered by descending score, ties keeping retrieval order.
type Candidate struct {
	Entry Entry
	Score int
}

// Matcher ranks FAQ entries against a free-text query.
type Matcher interface {
	Match(ctx context.Context, query string) ([]Candidate, error)
}

// Source supplies the candidate pool. Implementations typically wrap the FAQ
// repository; tests substitute fakes that count invocations.
type Source interface {
	All(ctx context.Context) ([]Entry, error)
}
