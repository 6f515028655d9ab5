package fuzzymatch

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Trigram index: 3-byte window hashes used only for similarity estimation.
// Windows spanning a space are excluded from both the query set and the
// candidate scan so multi-word queries stay filterable.

const trigramSize = 3

func trigramSpansSpace(w []byte) bool {
	return w[0] == ' ' || w[1] == ' ' || w[2] == ' '
}

// buildTrigrams returns the sorted distinct trigram hashes of folded text.
// Query-side only; allocates.
func buildTrigrams(text []byte) []uint64 {
	if len(text) < trigramSize {
		return nil
	}
	hashes := make([]uint64, 0, len(text)-trigramSize+1)
	for i := 0; i+trigramSize <= len(text); i++ {
		w := text[i : i+trigramSize]
		if trigramSpansSpace(w) {
			continue
		}
		hashes = append(hashes, xxhash.Sum64(w))
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })
	// Dedupe in place.
	out := hashes[:0]
	for i, h := range hashes {
		if i == 0 || h != hashes[i-1] {
			out = append(out, h)
		}
	}
	return out
}

// countSharedTrigrams counts distinct query trigrams present in the folded
// candidate, early-exiting once need is reached. seen must hold at least
// len(query) entries and is reset here.
func countSharedTrigrams(cand []byte, query []uint64, seen []bool, need int) int {
	for i := range query {
		seen[i] = false
	}
	count := 0
	for i := 0; i+trigramSize <= len(cand); i++ {
		w := cand[i : i+trigramSize]
		if trigramSpansSpace(w) {
			continue
		}
		h := xxhash.Sum64(w)
		// Binary search over the sorted query set.
		lo, hi := 0, len(query)
		for lo < hi {
			mid := (lo + hi) / 2
			if query[mid] < h {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo < len(query) && query[lo] == h && !seen[lo] {
			seen[lo] = true
			count++
			if count >= need {
				return count
			}
		}
	}
	return count
}
