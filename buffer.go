package fuzzymatch

// ScoringBuffer bundles every engine's scratch state so repeated Score calls
// allocate nothing after warm-up. One buffer per concurrent caller; never
// share one without external synchronization.
type ScoringBuffer struct {
	candidate []byte      // folded candidate bytes
	class     []byteClass // per-position byte class of the folded candidate

	rows [3][]int32 // edit-distance rolling rows (current, i-1, i-2)

	swMatch []int32 // Smith-Waterman match row
	swGap   []int32 // Smith-Waterman gap row
	swBonus []int32 // carried consecutive-bonus row

	alignM [2][]float64 // alignment DP match rows (previous, current)
	alignG [2][]float64 // alignment DP gap rows
	traceM []uint8      // alignment traceback, match state, cand x query
	traceG []uint8      // alignment traceback, gap state

	matchPos    []int32 // alignment match positions, one per query byte
	initials    []byte  // word-initial scratch for the acronym matcher
	trigramSeen []bool

	calls     int
	highQuery int // high-water marks driving the periodic shrink
	highCand  int
}

const (
	shrinkInterval = 1000
	shrinkTrigger  = 4 // shrink when capacity exceeds this multiple of the high-water mark
	shrinkTarget   = 2

	initialQueryCap = 64
	initialCandCap  = 256
)

// NewBuffer allocates a buffer with initial capacity. One per worker.
func NewBuffer() *ScoringBuffer {
	b := &ScoringBuffer{}
	b.grow(initialQueryCap, initialCandCap)
	return b
}

func ensureBytes(b []byte, n int) []byte {
	if cap(b) < n {
		return make([]byte, n)
	}
	return b[:n]
}

func ensureClass(b []byteClass, n int) []byteClass {
	if cap(b) < n {
		return make([]byteClass, n)
	}
	return b[:n]
}

func ensureI32(b []int32, n int) []int32 {
	if cap(b) < n {
		return make([]int32, n)
	}
	return b[:n]
}

func ensureF64(b []float64, n int) []float64 {
	if cap(b) < n {
		return make([]float64, n)
	}
	return b[:n]
}

func ensureU8(b []uint8, n int) []uint8 {
	if cap(b) < n {
		return make([]uint8, n)
	}
	return b[:n]
}

func ensureBool(b []bool, n int) []bool {
	if cap(b) < n {
		return make([]bool, n)
	}
	return b[:n]
}

// grow sizes every scratch array for a query of qLen bytes and a candidate of
// candLen raw bytes. Folding never grows output, so candLen bounds every
// candidate-sized array.
func (b *ScoringBuffer) grow(qLen, candLen int) {
	b.candidate = ensureBytes(b.candidate, candLen)
	b.class = ensureClass(b.class, candLen)
	b.initials = ensureBytes(b.initials, candLen)
	for i := range b.rows {
		b.rows[i] = ensureI32(b.rows[i], qLen+1)
	}
	b.swMatch = ensureI32(b.swMatch, qLen)
	b.swGap = ensureI32(b.swGap, qLen)
	b.swBonus = ensureI32(b.swBonus, qLen)
	b.matchPos = ensureI32(b.matchPos, qLen)
	b.trigramSeen = ensureBool(b.trigramSeen, qLen)
	for i := range b.alignM {
		b.alignM[i] = ensureF64(b.alignM[i], qLen)
		b.alignG[i] = ensureF64(b.alignG[i], qLen)
	}
	traceLen := qLen * min(candLen, alignMaxCandidate)
	b.traceM = ensureU8(b.traceM, traceLen)
	b.traceG = ensureU8(b.traceG, traceLen)
}

// beginCall prepares the buffer for one Score call. Every shrinkInterval
// calls, capacity shrinks back toward 2x the recent high-water mark if it
// exceeds 4x, amortizing reclamation without per-call overhead.
func (b *ScoringBuffer) beginCall(qLen, candLen int) {
	b.calls++
	if qLen > b.highQuery {
		b.highQuery = qLen
	}
	if candLen > b.highCand {
		b.highCand = candLen
	}
	if b.calls%shrinkInterval == 0 {
		b.shrink()
	}
	b.grow(qLen, candLen)
}

func (b *ScoringBuffer) shrink() {
	hq, hc := b.highQuery, b.highCand
	if hq < initialQueryCap {
		hq = initialQueryCap
	}
	if hc < initialCandCap {
		hc = initialCandCap
	}
	if cap(b.candidate) > shrinkTrigger*hc {
		b.candidate = make([]byte, 0, shrinkTarget*hc)
		b.class = make([]byteClass, 0, shrinkTarget*hc)
		b.initials = make([]byte, 0, shrinkTarget*hc)
	}
	if cap(b.rows[0]) > shrinkTrigger*(hq+1) {
		for i := range b.rows {
			b.rows[i] = make([]int32, 0, shrinkTarget*(hq+1))
		}
		b.swMatch = make([]int32, 0, shrinkTarget*hq)
		b.swGap = make([]int32, 0, shrinkTarget*hq)
		b.swBonus = make([]int32, 0, shrinkTarget*hq)
		b.matchPos = make([]int32, 0, shrinkTarget*hq)
		b.trigramSeen = make([]bool, 0, shrinkTarget*hq)
		for i := range b.alignM {
			b.alignM[i] = make([]float64, 0, shrinkTarget*hq)
			b.alignG[i] = make([]float64, 0, shrinkTarget*hq)
		}
	}
	traceHigh := hq * min(hc, alignMaxCandidate)
	if cap(b.traceM) > shrinkTrigger*traceHigh {
		b.traceM = make([]uint8, 0, shrinkTarget*traceHigh)
		b.traceG = make([]uint8, 0, shrinkTarget*traceHigh)
	}
	b.highQuery = 0
	b.highCand = 0
}
