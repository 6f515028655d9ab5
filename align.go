package fuzzymatch

import (
	"math"
)

// Optimal-alignment engine: a bonus-maximizing DP over a candidate x query
// grid with two states per cell, "matched consecutively" and "matched with a
// gap before". The edit-distance pipeline uses it to place query characters
// where they collect the most word-boundary/consecutive bonuses, with a full
// traceback to recover concrete match positions. Candidates longer than
// alignMaxCandidate, and queries short enough that optimality cannot pay for
// the grid, fall back to a greedy nearest-boundary walk.

type alignResult struct {
	bonus float64 // total bonus net of gap penalties, non-negative
	first int     // candidate position of the first matched query byte
	last  int     // candidate position of the last matched query byte
	ok    bool
}

// Traceback codes for the match state.
const (
	traceNone      uint8 = iota
	traceFresh           // first query byte, fresh start
	traceFromMatch       // diagonal, previous byte matched consecutively
	traceFromGap         // diagonal, previous byte matched before a gap
)

// Traceback codes for the gap state.
const (
	gapNone     uint8 = iota
	gapFromMatch      // gap opened after a match one row up
	gapFromGap        // gap extended from one row up
)

const greedyBoundaryWindow = 8

func gapCosts(ec *EditDistanceConfig) (open, extend float64) {
	switch ec.Gap {
	case GapLinear:
		return ec.GapOpen, ec.GapOpen
	case GapAffine:
		return ec.GapOpen, ec.GapExtend
	}
	return 0, 0
}

func gapCharge(gap int, ec *EditDistanceConfig) float64 {
	if gap <= 0 {
		return 0
	}
	open, extend := gapCosts(ec)
	return open + extend*float64(gap-1)
}

// firstMatchBonus decays linearly to zero over the configured byte range.
func firstMatchBonus(first int, ec *EditDistanceConfig) float64 {
	if ec.FirstMatchBonus <= 0 || ec.FirstMatchDecay <= 0 || first >= ec.FirstMatchDecay {
		return 0
	}
	return ec.FirstMatchBonus * float64(ec.FirstMatchDecay-first) / float64(ec.FirstMatchDecay)
}

// optimalAlign finds the bonus-maximizing placement of the query in the
// candidate. Both inputs are folded; class describes the candidate.
func optimalAlign(buf *ScoringBuffer, cand []byte, class []byteClass, query []byte, ec *EditDistanceConfig) alignResult {
	cn, qn := len(cand), len(query)
	if cn == 0 || qn == 0 {
		return alignResult{}
	}
	if cn > alignMaxCandidate || qn < alignMinQuery {
		return greedyAlign(buf, cand, class, query, ec)
	}

	open, extend := gapCosts(ec)
	negInf := math.Inf(-1)

	prevM, curM := buf.alignM[0][:qn], buf.alignM[1][:qn]
	prevG, curG := buf.alignG[0][:qn], buf.alignG[1][:qn]
	traceM := buf.traceM[:cn*qn]
	traceG := buf.traceG[:cn*qn]

	bestScore := negInf
	bestI := -1
	bestGap := false

	for i := 0; i < cn; i++ {
		base := i * qn
		for j := 0; j < qn; j++ {
			g := negInf
			tg := gapNone
			if i > 0 {
				if v := prevM[j] - open; v > g {
					g, tg = v, gapFromMatch
				}
				if v := prevG[j] - extend; v > g {
					g, tg = v, gapFromGap
				}
			}
			curG[j] = g
			traceG[base+j] = tg

			m := negInf
			tm := traceNone
			if cand[i] == query[j] {
				var bb float64
				if class[i] != classNone {
					bb = ec.BoundaryBonus
				}
				if j == 0 {
					m, tm = bb, traceFresh
				} else if i > 0 {
					if v := prevM[j-1] + ec.ConsecutiveBonus + bb; v > m {
						m, tm = v, traceFromMatch
					}
					if v := prevG[j-1] + bb; v > m {
						m, tm = v, traceFromGap
					}
				}
			}
			curM[j] = m
			traceM[base+j] = tm
		}
		if curM[qn-1] > bestScore {
			bestScore, bestI, bestGap = curM[qn-1], i, false
		}
		if curG[qn-1] > bestScore {
			bestScore, bestI, bestGap = curG[qn-1], i, true
		}
		prevM, curM = curM, prevM
		prevG, curG = curG, prevG
	}
	if bestI < 0 || math.IsInf(bestScore, -1) {
		return alignResult{}
	}

	// Traceback. A gap terminal retraces upward to the nearest match cell
	// before the per-query-byte walk begins.
	pos := buf.matchPos[:qn]
	i, j := bestI, qn-1
	inGap := bestGap
	for j >= 0 {
		if inGap {
			t := traceG[i*qn+j]
			if t == gapNone {
				return alignResult{}
			}
			i--
			if t == gapFromMatch {
				inGap = false
			}
			continue
		}
		t := traceM[i*qn+j]
		if t == traceNone {
			return alignResult{}
		}
		pos[j] = int32(i)
		switch t {
		case traceFresh:
			j--
		case traceFromMatch:
			i--
			j--
		case traceFromGap:
			inGap = true
			i--
			j--
		}
	}

	first, last := int(pos[0]), int(pos[qn-1])
	bonus := bestScore + firstMatchBonus(first, ec)
	if bonus < 0 {
		bonus = 0
	}
	return alignResult{bonus: bonus, first: first, last: last, ok: true}
}

// greedyAlign walks the query greedily through the candidate, preferring a
// boundary occurrence within a short window over the nearest plain one.
// Optimality gains are negligible here relative to the DP cost.
func greedyAlign(buf *ScoringBuffer, cand []byte, class []byteClass, query []byte, ec *EditDistanceConfig) alignResult {
	qn := len(query)
	if qn == 0 {
		return alignResult{}
	}
	pos := buf.matchPos[:qn]
	prev := -1
	var bonus float64
	for j := 0; j < qn; j++ {
		qc := query[j]
		found, firstHit := -1, -1
		for i := prev + 1; i < len(cand); i++ {
			if firstHit >= 0 && i-firstHit > greedyBoundaryWindow {
				break
			}
			if cand[i] != qc {
				continue
			}
			if class[i] != classNone {
				found = i
				break
			}
			if firstHit < 0 {
				firstHit = i
			}
		}
		if found < 0 {
			found = firstHit
		}
		if found < 0 {
			return alignResult{}
		}
		pos[j] = int32(found)
		if class[found] != classNone {
			bonus += ec.BoundaryBonus
		}
		if j > 0 {
			if found == prev+1 {
				bonus += ec.ConsecutiveBonus
			} else {
				bonus -= gapCharge(found-prev-1, ec)
			}
		}
		prev = found
	}

	first, last := int(pos[0]), int(pos[qn-1])
	bonus += firstMatchBonus(first, ec)
	if bonus < 0 {
		bonus = 0
	}
	return alignResult{bonus: bonus, first: first, last: last, ok: true}
}
