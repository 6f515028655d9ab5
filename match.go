// Package fuzzymatch is a fuzzy string matching engine: it scores a short
// query against candidate strings, producing a ranked relevance score in
// [0, 1] and a match classification, and rejecting non-matches as cheaply as
// possible.
//
// Callers prepare a query once, create one ScoringBuffer per worker, then
// call Score repeatedly. A PreparedQuery is immutable and safe to share; a
// ScoringBuffer is exclusively owned and makes repeated scoring
// allocation-free after warm-up.
package fuzzymatch

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// MatchKind classifies how the candidate matched.
type MatchKind uint8

const (
	KindExact MatchKind = iota
	KindPrefix
	KindSubstring
	KindAcronym
	KindAlignment
)

func (k MatchKind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindPrefix:
		return "prefix"
	case KindSubstring:
		return "substring"
	case KindAcronym:
		return "acronym"
	case KindAlignment:
		return "alignment"
	}
	return "unknown"
}

// ScoredMatch is one scoring outcome: a score in [0, 1] and the kind of
// match that produced it. Value type, no identity.
type ScoredMatch struct {
	Score float64
	Kind  MatchKind
}

// MatchResult pairs a scored match with the candidate it came from.
type MatchResult struct {
	Candidate string
	Index     int
	ScoredMatch
}

// Score runs one candidate through the pipeline selected by the query's
// configuration. The zero-allocation hot path: buf must be owned exclusively
// by the calling goroutine.
func Score(candidate string, q *PreparedQuery, buf *ScoringBuffer) (ScoredMatch, bool) {
	return scoreQuery(candidate, q, buf)
}

// ScoreString is the one-shot convenience wrapper; it allocates per call.
func ScoreString(candidate, query string) (ScoredMatch, bool) {
	return scoreQuery(candidate, Prepare(query), NewBuffer())
}

func better(a, b MatchResult) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Index < b.Index
}

func sortResults(results []MatchResult) {
	sort.Slice(results, func(i, j int) bool { return better(results[i], results[j]) })
}

func weakest(results []MatchResult) int {
	w := 0
	for i := 1; i < len(results); i++ {
		if better(results[w], results[i]) {
			w = i
		}
	}
	return w
}

// TopMatches scores every candidate and returns up to limit results sorted
// descending by score, ties broken by candidate index. Retention is bounded:
// once at capacity the weakest entry is replaced in place.
func TopMatches(candidates []string, q *PreparedQuery, limit int) []MatchResult {
	if limit <= 0 || len(candidates) == 0 {
		return nil
	}
	buf := NewBuffer()
	capacity := limit
	if capacity > len(candidates) {
		capacity = len(candidates)
	}
	results := make([]MatchResult, 0, capacity)
	minIdx := -1
	for i, c := range candidates {
		m, ok := scoreQuery(c, q, buf)
		if !ok {
			continue
		}
		r := MatchResult{Candidate: c, Index: i, ScoredMatch: m}
		if len(results) < limit {
			results = append(results, r)
			if len(results) == limit {
				minIdx = weakest(results)
			}
			continue
		}
		if better(r, results[minIdx]) {
			results[minIdx] = r
			minIdx = weakest(results)
		}
	}
	sortResults(results)
	return results
}

// Matches scores every candidate and returns all matches, fully sorted.
// Candidates are sharded across workers, each owning one buffer; the shared
// PreparedQuery is read-only, so no further synchronization is needed.
func Matches(candidates []string, q *PreparedQuery) []MatchResult {
	if len(candidates) == 0 {
		return nil
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > len(candidates) {
		workers = len(candidates)
	}

	if workers <= 1 {
		buf := NewBuffer()
		var results []MatchResult
		for i, c := range candidates {
			if m, ok := scoreQuery(c, q, buf); ok {
				results = append(results, MatchResult{Candidate: c, Index: i, ScoredMatch: m})
			}
		}
		sortResults(results)
		return results
	}

	parts := make([][]MatchResult, workers)
	chunk := (len(candidates) + workers - 1) / workers
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		end := start + chunk
		if end > len(candidates) {
			end = len(candidates)
		}
		if start >= end {
			break
		}
		g.Go(func() error {
			buf := NewBuffer()
			var local []MatchResult
			for i := start; i < end; i++ {
				if m, ok := scoreQuery(candidates[i], q, buf); ok {
					local = append(local, MatchResult{Candidate: candidates[i], Index: i, ScoredMatch: m})
				}
			}
			parts[w] = local
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	results := make([]MatchResult, 0, total)
	for _, p := range parts {
		results = append(results, p...)
	}
	sortResults(results)
	return results
}
