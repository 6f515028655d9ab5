package fuzzymatch

import (
	"bytes"
	"math/bits"

	"github.com/segmentio/asm/ascii"
)

// Scoring orchestrator: per-algorithm state machines sequencing prefilters,
// the exact-match short-circuit, phase-specific scoring and best-score
// selection. All score composition arithmetic lives here.

// scoreQuery runs one candidate through the configured pipeline.
func scoreQuery(candidate string, q *PreparedQuery, buf *ScoringBuffer) (ScoredMatch, bool) {
	if len(q.folded) == 0 {
		// Empty query matches any non-empty candidate.
		if len(candidate) == 0 {
			return ScoredMatch{}, false
		}
		return ScoredMatch{Score: 1, Kind: KindExact}, true
	}
	if len(candidate) == 0 {
		return ScoredMatch{}, false
	}

	// ASCII exact-match fast path: vectorized case-insensitive equality
	// before any buffer work.
	if q.asciiOnly && len(candidate) == len(q.foldedStr) &&
		ascii.ValidString(candidate) && ascii.EqualFoldString(candidate, q.foldedStr) {
		return ScoredMatch{Score: 1, Kind: KindExact}, true
	}

	buf.beginCall(len(q.folded), len(candidate))
	if q.cfg.Algorithm == AlgorithmSmithWaterman {
		return q.scoreSmithWaterman(candidate, buf)
	}
	return q.scoreEditDistance(candidate, buf)
}

// scoreEditDistance runs the penalty-driven pipeline: prefilters, exact,
// prefix, substring, subsequence fallback, acronym, threshold.
func (q *PreparedQuery) scoreEditDistance(candidate string, buf *ScoringBuffer) (ScoredMatch, bool) {
	ec := &q.cfg.Edit

	if !q.passLengthBound(len(candidate)) {
		return ScoredMatch{}, false
	}
	if !q.passBitmask(candidate) {
		return ScoredMatch{}, false
	}

	n, _, _, words := foldScan(buf.candidate, candidate, buf.class)
	cb := buf.candidate[:n]
	class := buf.class[:n]
	if n == 0 || n < q.minCandLen {
		return ScoredMatch{}, false
	}
	qb := q.folded
	qn := len(qb)

	if n == qn && bytes.Equal(cb, qb) {
		return ScoredMatch{Score: 1, Kind: KindExact}, true
	}

	if !q.passTrigrams(cb, buf) {
		return ScoredMatch{}, false
	}

	var best ScoredMatch
	has := false
	var align alignResult
	alignReady := false

	// Prefix phase.
	prefixZero := false
	if d, ok := prefixDistance(buf, cb, qb, q.maxDist); ok {
		// Short queries produce cross-length noise: a 3-byte query one edit
		// away from a longer candidate's start says nothing.
		skip := qn <= shortQueryLen && n != qn && d != 0
		if !skip {
			s := weighted(distanceScore(d, qn), ec.PrefixWeight)
			switch {
			case n == qn && d > 0:
				// Same length, near exact: recover most of the gap to 1.0.
				s += recoverSameLength * (1 - s)
			case n > qn:
				pen := float64(n-qn) * ec.LengthPenalty
				if d == 0 {
					// Exact prefix is a clean fit.
					pen *= 1 - cleanFitRecovery
				}
				s -= pen
				if s < 0 {
					s = 0
				}
			}
			if q.hasAlignBonus && s < 1 {
				if !alignReady {
					align = optimalAlign(buf, cb, class, qb, ec)
					alignReady = true
				}
				s = q.recoverBonus(s, align, d > 0)
			}
			if d == 0 {
				prefixZero = true
			}
			if !has || s > best.Score {
				best, has = ScoredMatch{Score: s, Kind: KindPrefix}, true
			}
		}
	}

	// Substring phase, skipped when the prefix already settled it.
	if !prefixZero && best.Score < substringSkipScore {
		if d, ok := substringDistance(buf, cb, qb, q.maxDist); ok {
			s := weighted(distanceScore(d, qn), ec.SubstringWeight)
			if n > qn {
				pen := float64(n-qn) * ec.LengthPenalty
				if d == 0 && wordEdgeOccurrence(cb, qb, class) >= 0 {
					// The real occurrence sits on word edges: recover most of
					// the length penalty.
					pen *= 1 - cleanFitRecovery
				}
				s -= pen
				if s < 0 {
					s = 0
				}
			}
			if q.hasAlignBonus && s < 1 {
				if !alignReady {
					align = optimalAlign(buf, cb, class, qb, ec)
					alignReady = true
				}
				s = q.recoverBonus(s, align, d > 0)
			}
			if !has || s > best.Score {
				best, has = ScoredMatch{Score: s, Kind: KindSubstring}, true
			}
		}
	}

	// Subsequence fallback, only when nothing has cleared the threshold yet.
	// An O(n) existence check runs before the alignment DP is paid for.
	if (!has || best.Score < q.cfg.MinScore) && isSubsequence(cb, qb) {
		if !alignReady {
			align = optimalAlign(buf, cb, class, qb, ec)
			alignReady = true
		}
		if align.ok {
			span := align.last - align.first + 1
			density := float64(qn) / float64(span)
			if density >= subsequenceMinDensity {
				s := subsequenceCeil * density
				s = q.recoverBonus(s, align, true)
				if !has || s > best.Score {
					best, has = ScoredMatch{Score: s, Kind: KindAlignment}, true
				}
			}
		}
	}

	// Acronym phase always competes for 2-8 byte single-word queries.
	if q.acronymOK && words >= acronymMinWords && words >= qn {
		initials := collectInitials(cb, class, buf.initials)
		if s, ok := acronymScore(initials, qb, ec.AcronymWeight); ok {
			if !has || s > best.Score {
				best, has = ScoredMatch{Score: s, Kind: KindAcronym}, true
			}
		}
	}

	if !has || best.Score < q.cfg.MinScore {
		return ScoredMatch{}, false
	}
	if best.Score > 1 {
		best.Score = 1
	}
	return best, true
}

// recoverBonus lifts a score toward 1.0 by the alignment bonus fraction. A
// non-zero edit distance caps recovery so bonuses cannot disguise a typo as a
// perfect match.
func (q *PreparedQuery) recoverBonus(s float64, align alignResult, typo bool) float64 {
	if !align.ok || q.maxAlignBonus <= 0 || s >= 1 {
		return s
	}
	frac := align.bonus / q.maxAlignBonus
	if frac > 1 {
		frac = 1
	}
	if typo && frac > bonusRecoveryCap {
		frac = bonusRecoveryCap
	}
	return s + (1-s)*frac
}

// scoreSmithWaterman runs the bonus-driven pipeline: bitmask prefilter,
// lowercase+class precompute, exact check, DP (single- or multi-atom),
// normalization, acronym competition, threshold.
func (q *PreparedQuery) scoreSmithWaterman(candidate string, buf *ScoringBuffer) (ScoredMatch, bool) {
	sw := &q.cfg.SmithWaterman

	if bits.OnesCount64(q.mask&^rawMask(candidate)) > q.maskTolerance {
		return ScoredMatch{}, false
	}

	n, _, _, words := foldScan(buf.candidate, candidate, buf.class)
	cb := buf.candidate[:n]
	class := buf.class[:n]
	if n == 0 {
		return ScoredMatch{}, false
	}
	qb := q.folded
	qn := len(qb)

	if n == qn && bytes.Equal(cb, qb) {
		return ScoredMatch{Score: 1, Kind: KindExact}, true
	}

	var best ScoredMatch
	has := false

	var raw int32
	if q.hasSpace && sw.SplitAtoms && len(q.atoms) > 1 {
		// Multi-word AND semantics: every atom must score, scores sum.
		raw = 0
		for _, a := range q.atoms {
			s := swScore(buf, cb, class, qb[a[0]:a[1]], &q.swTiers, sw)
			if s <= 0 {
				raw = 0
				break
			}
			raw += s
		}
	} else {
		raw = swScore(buf, cb, class, qb, &q.swTiers, sw)
	}
	if raw > 0 && q.swMax > 0 {
		s := float64(raw) / float64(q.swMax)
		if s > 1 {
			s = 1
		}
		best, has = ScoredMatch{Score: s, Kind: KindAlignment}, true
	}

	if q.acronymOK && words >= acronymMinWords && words >= qn {
		initials := collectInitials(cb, class, buf.initials)
		if s, ok := acronymScore(initials, qb, 1); ok {
			if !has || s > best.Score {
				best, has = ScoredMatch{Score: s, Kind: KindAcronym}, true
			}
		}
	}

	if !has || best.Score < q.cfg.MinScore {
		return ScoredMatch{}, false
	}
	return best, true
}

// wordEdgeOccurrence returns the offset of an exact occurrence of query in
// cand whose start and end sit on word edges, or -1.
func wordEdgeOccurrence(cand, query []byte, class []byteClass) int {
	off := 0
	for {
		idx := bytes.Index(cand[off:], query)
		if idx < 0 {
			return -1
		}
		idx += off
		startOK := idx == 0 || class[idx] != classNone
		end := idx + len(query)
		endOK := end == len(cand) || !isWordByte(cand[end]) || class[end] != classNone
		if startOK && endOK {
			return idx
		}
		off = idx + 1
	}
}
