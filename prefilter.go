package fuzzymatch

import (
	"math/bits"
)

// Prefilter pipeline: three cheap hard-reject stages run before any DP pays
// for the candidate. No partial credit; a rejected candidate scores nothing.

// passLengthBound rejects candidates too short to reach the query within the
// edit budget. No upper bound: short queries may still match long candidates
// as subsequences or acronyms.
func (q *PreparedQuery) passLengthBound(rawLen int) bool {
	// Folding never grows output, so the raw length bounds the folded one.
	return rawLen >= q.minCandLen
}

// passBitmask rejects candidates missing more query characters than the
// tolerance allows. Runs against the raw candidate bytes, folded inline,
// before the full lowercase pass.
func (q *PreparedQuery) passBitmask(candidate string) bool {
	missing := bits.OnesCount64(q.mask &^ rawMask(candidate))
	return missing <= q.maskTolerance
}

// passTrigrams rejects candidates sharing too few trigrams with the query.
// Only selective when the query carries more trigrams than edits can destroy:
// one edit spoils up to three overlapping windows.
func (q *PreparedQuery) passTrigrams(folded []byte, buf *ScoringBuffer) bool {
	if len(q.folded) < trigramSize+1 {
		return true
	}
	if len(q.trigrams) <= trigramSpoilFactor*q.maxDist {
		return true
	}
	need := len(q.trigrams) - trigramSpoilFactor*q.maxDist
	return countSharedTrigrams(folded, q.trigrams, buf.trigramSeen, need) >= need
}
