package fuzzymatch

import (
	"math"
)

// Smith-Waterman engine: a single forward pass of an integer three-state
// local-alignment DP, O(query) space via three parallel rows plus scalar
// diagonal carries. Per-position bonuses come from the candidate's byte
// classes through the five-tier table prepared with the query.

const swInvalid = int32(math.MinInt32 / 2)

// swTheoreticalMax is the raw score of a perfect match: every character
// matched consecutively with the full whitespace-tier bonus, the first one
// multiplied up.
func swTheoreticalMax(qLen int, sw *SmithWatermanConfig) int32 {
	if qLen <= 0 {
		return 0
	}
	first := sw.MatchScore + sw.WhitespaceBonus*sw.FirstCharMultiplier
	return first + int32(qLen-1)*(sw.MatchScore+sw.WhitespaceBonus)
}

// swScore runs the DP for one query (or atom) against the folded candidate
// and returns the best raw score, or 0 when the query does not match.
func swScore(buf *ScoringBuffer, cand []byte, class []byteClass, query []byte, tiers *[classCount]int32, sw *SmithWatermanConfig) int32 {
	qn := len(query)
	if qn == 0 || len(cand) == 0 {
		return 0
	}

	m := buf.swMatch[:qn]
	g := buf.swGap[:qn]
	carry := buf.swBonus[:qn]
	for j := 0; j < qn; j++ {
		m[j] = swInvalid
		g[j] = swInvalid
		carry[j] = 0
	}

	var best int32
	for i := 0; i < len(cand); i++ {
		// Diagonal carries: the (i-1, j-1) cell values.
		var diagM, diagG, diagB int32 = swInvalid, swInvalid, 0
		ci := cand[i]
		bonus := tiers[class[i]]
		for j := 0; j < qn; j++ {
			saveM, saveG, saveB := m[j], g[j], carry[j]

			// Gap state: skip this candidate byte after query[j] matched.
			ng := swInvalid
			if saveM > swInvalid {
				ng = saveM - sw.GapOpen
			}
			if v := saveG - sw.GapExtend; saveG > swInvalid && v > ng {
				ng = v
			}
			g[j] = ng

			nm, nb := swInvalid, int32(0)
			if ci == query[j] {
				if j == 0 {
					nm = sw.MatchScore + bonus*sw.FirstCharMultiplier
					nb = bonus
				} else {
					// Continue the consecutive run, carrying the run's
					// boundary bonus forward, or restart after a gap.
					cont, fresh := swInvalid, swInvalid
					contB := diagB
					if sw.ConsecutiveBonus > contB {
						contB = sw.ConsecutiveBonus
					}
					if bonus >= tiers[classBoundary] && bonus > contB {
						contB = bonus
					}
					if diagM > swInvalid {
						cont = diagM + sw.MatchScore + contB
					}
					if diagG > swInvalid {
						fresh = diagG + sw.MatchScore + bonus
					}
					if cont >= fresh {
						nm, nb = cont, contB
					} else {
						nm, nb = fresh, bonus
					}
					if nm <= swInvalid {
						nm, nb = swInvalid, 0
					}
				}
			}
			m[j] = nm
			carry[j] = nb

			diagM, diagG, diagB = saveM, saveG, saveB
		}
		if m[qn-1] > best {
			best = m[qn-1]
		}
		if g[qn-1] > best {
			best = g[qn-1]
		}
	}
	if best < 0 {
		return 0
	}
	return best
}
