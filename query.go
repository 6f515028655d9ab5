package fuzzymatch

import (
	"github.com/segmentio/asm/ascii"
)

// PreparedQuery is the immutable, reusable form of a query. Prepare it once
// and share it freely across concurrent Score calls; it is never mutated.
type PreparedQuery struct {
	// Text is the original query string.
	Text string

	cfg    MatchConfig
	folded []byte
	// foldedStr backs the ASCII exact-match fast path without a per-call
	// string conversion.
	foldedStr string
	asciiOnly bool

	mask     uint64
	trigrams []uint64
	hasSpace bool

	maxDist       int // adaptive maximum edit distance
	maskTolerance int // 0 for queries <= 3 bytes, else maxDist
	minCandLen    int

	// atoms are the space-delimited sub-query byte ranges into folded, in
	// order, when the query contains spaces and atom splitting is enabled.
	atoms [][2]int

	swTiers   [classCount]int32
	swMax     int32   // theoretical maximum raw Smith-Waterman score
	swAtomMax []int32 // per-atom theoretical maxima

	hasAlignBonus bool
	maxAlignBonus float64
	acronymOK     bool
}

// Config returns the configuration the query was prepared with.
func (q *PreparedQuery) Config() MatchConfig { return q.cfg }

// Prepare builds a PreparedQuery with the default configuration. Pure
// function: no side effects beyond allocation, and idempotent.
func Prepare(query string) *PreparedQuery {
	return PrepareWithConfig(query, DefaultConfig())
}

// PrepareWithConfig builds a PreparedQuery for the given configuration.
func PrepareWithConfig(query string, cfg MatchConfig) *PreparedQuery {
	q := &PreparedQuery{Text: query, cfg: cfg}

	buf := make([]byte, len(query))
	n, mask, _, _ := foldScan(buf, query, nil)
	q.folded = buf[:n]
	q.foldedStr = string(q.folded)
	q.asciiOnly = ascii.ValidString(query)
	q.mask = mask

	for _, b := range q.folded {
		if b == ' ' {
			q.hasSpace = true
			break
		}
	}

	q.maxDist = adaptiveMaxDistance(n, &cfg.Edit)
	if n <= shortQueryLen {
		q.maskTolerance = 0
	} else {
		q.maskTolerance = q.maxDist
	}
	q.minCandLen = n - q.maxDist
	if q.minCandLen < 0 {
		q.minCandLen = 0
	}

	if n >= trigramSize+1 {
		q.trigrams = buildTrigrams(q.folded)
	}

	q.atoms = splitAtoms(q.folded)

	sw := &cfg.SmithWaterman
	q.swTiers = [classCount]int32{
		classNone:       0,
		classCamel:      sw.CamelBonus,
		classBoundary:   sw.BoundaryBonus,
		classDelimiter:  sw.DelimiterBonus,
		classWhitespace: sw.WhitespaceBonus,
	}
	if q.hasSpace && sw.SplitAtoms {
		q.swAtomMax = make([]int32, len(q.atoms))
		for i, a := range q.atoms {
			q.swAtomMax[i] = swTheoreticalMax(a[1]-a[0], sw)
			q.swMax += q.swAtomMax[i]
		}
	} else {
		q.swMax = swTheoreticalMax(n, sw)
	}

	ec := &cfg.Edit
	q.hasAlignBonus = ec.BoundaryBonus > 0 || ec.ConsecutiveBonus > 0 || ec.FirstMatchBonus > 0
	q.maxAlignBonus = float64(n)*ec.BoundaryBonus + float64(max(0, n-1))*ec.ConsecutiveBonus + ec.FirstMatchBonus

	q.acronymOK = !q.hasSpace && n >= acronymMinQuery && n <= acronymMaxQuery
	return q
}

// adaptiveMaxDistance tightens the edit budget for short queries, where even
// one edit rewrites a large fraction of the query.
func adaptiveMaxDistance(qLen int, ec *EditDistanceConfig) int {
	switch {
	case qLen == 0:
		return 0
	case qLen <= 4:
		return 1
	case qLen >= ec.LongQueryLen:
		return ec.MaxDistanceLong
	}
	return ec.MaxDistance
}

// splitAtoms returns the space-delimited word ranges of the folded query.
func splitAtoms(folded []byte) [][2]int {
	var atoms [][2]int
	start := -1
	for i, b := range folded {
		if b == ' ' {
			if start >= 0 {
				atoms = append(atoms, [2]int{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		atoms = append(atoms, [2]int{start, len(folded)})
	}
	return atoms
}
