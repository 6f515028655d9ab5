package fuzzymatch

// Acronym matcher: does the query spell out the word initials of the
// candidate, in order? Applies only to single-word queries of 2-8 bytes
// against candidates with at least as many words as query bytes and at least
// 3 words total; the orchestrator gates on the word count before calling in.

// collectInitials gathers the first byte of every detected word into dst,
// which must hold at least len(cand) bytes. The byte-class array covers every
// position, so words beyond the 64-bit boundary mask's reach are included.
func collectInitials(cand []byte, class []byteClass, dst []byte) []byte {
	n := 0
	for i, cl := range class {
		if cl != classNone {
			dst[n] = cand[i]
			n++
		}
	}
	return dst[:n]
}

// acronymScore verifies the query is an in-order subsequence of the initials
// and scores it by coverage: full coverage reaches 0.95, partial coverage
// scales down.
func acronymScore(initials, query []byte, weight float64) (float64, bool) {
	if len(initials) == 0 || !isSubsequence(initials, query) {
		return 0, false
	}
	coverage := float64(len(query)) / float64(len(initials))
	s := (acronymBaseScore + acronymCoverageWeight*coverage) * weight
	if s < 0 {
		return 0, false
	}
	if s > 1 {
		s = 1
	}
	return s, true
}
