package fuzzymatch

// Edit-distance engine: Damerau-Levenshtein (optimal string alignment) over a
// rolling 1x(q+1) window with three retained rows, so an adjacent
// transposition costs 1 instead of 2. Two variants share the recurrence: the
// prefix variant anchors the match at the candidate start, the substring
// variant restarts for free at every candidate position.

// prefixDistance returns the best edit distance between the query and any
// prefix of cand, and whether it stayed within maxDist. The scan is capped at
// len(query)+maxDist candidate bytes; no longer prefix can do better.
func prefixDistance(buf *ScoringBuffer, cand, query []byte, maxDist int) (int, bool) {
	qn := len(query)
	limit := len(cand)
	if limit > qn+maxDist {
		limit = qn + maxDist
	}

	prev2 := buf.rows[0][:qn+1]
	prev := buf.rows[1][:qn+1]
	cur := buf.rows[2][:qn+1]
	for j := 0; j <= qn; j++ {
		prev[j] = int32(j)
	}

	best := prev[qn] // zero-length prefix: qn deletions
	for i := 1; i <= limit; i++ {
		cur[0] = int32(i)
		rowMin := cur[0]
		ci := cand[i-1]
		for j := 1; j <= qn; j++ {
			cost := int32(1)
			if ci == query[j-1] {
				cost = 0
			}
			v := prev[j] + 1
			if cur[j-1]+1 < v {
				v = cur[j-1] + 1
			}
			if prev[j-1]+cost < v {
				v = prev[j-1] + cost
			}
			if i > 1 && j > 1 && ci == query[j-2] && cand[i-2] == query[j-1] {
				if prev2[j-2]+1 < v {
					v = prev2[j-2] + 1
				}
			}
			cur[j] = v
			if v < rowMin {
				rowMin = v
			}
		}
		if cur[qn] < best {
			best = cur[qn]
		}
		// The row minimum never decreases, so once it clears the budget plus
		// the steps left, no future row can recover.
		if int(rowMin) > maxDist+(limit-i) {
			break
		}
		prev2, prev, cur = prev, cur, prev2
	}
	if int(best) > maxDist {
		return 0, false
	}
	return int(best), true
}

// substringDistance is the same recurrence with a free restart at every
// candidate position, so the match may begin anywhere. Terminates immediately
// on an exact occurrence.
func substringDistance(buf *ScoringBuffer, cand, query []byte, maxDist int) (int, bool) {
	qn := len(query)
	cn := len(cand)

	prev2 := buf.rows[0][:qn+1]
	prev := buf.rows[1][:qn+1]
	cur := buf.rows[2][:qn+1]
	for j := 0; j <= qn; j++ {
		prev[j] = int32(j)
	}

	best := prev[qn]
	for i := 1; i <= cn; i++ {
		cur[0] = 0
		ci := cand[i-1]
		for j := 1; j <= qn; j++ {
			cost := int32(1)
			if ci == query[j-1] {
				cost = 0
			}
			v := prev[j] + 1
			if cur[j-1]+1 < v {
				v = cur[j-1] + 1
			}
			if prev[j-1]+cost < v {
				v = prev[j-1] + cost
			}
			if i > 1 && j > 1 && ci == query[j-2] && cand[i-2] == query[j-1] {
				if prev2[j-2]+1 < v {
					v = prev2[j-2] + 1
				}
			}
			cur[j] = v
		}
		if cur[qn] < best {
			best = cur[qn]
			if best == 0 {
				return 0, true
			}
		}
		prev2, prev, cur = prev, cur, prev2
	}
	if int(best) > maxDist {
		return 0, false
	}
	return int(best), true
}

// distanceScore converts an edit distance to a base score in [0,1].
func distanceScore(d, qLen int) float64 {
	if qLen == 0 || d >= qLen {
		return 0
	}
	return 1 - float64(d)/float64(qLen)
}

// weighted reshapes a base score asymptotically: exact matches keep 1.0
// regardless of weight, near-misses are boosted toward it.
func weighted(base, weight float64) float64 {
	if weight <= 0 {
		return base
	}
	s := 1 - (1-base)/weight
	if s < 0 {
		return 0
	}
	return s
}

// isSubsequence reports whether query appears in order within cand. O(n)
// existence check run before paying for the alignment DP.
func isSubsequence(cand, query []byte) bool {
	if len(query) == 0 {
		return true
	}
	j := 0
	for _, c := range cand {
		if c == query[j] {
			j++
			if j == len(query) {
				return true
			}
		}
	}
	return false
}
