package fuzzymatch

// Algorithm selects which scoring pipeline Score runs.
type Algorithm uint8

const (
	// AlgorithmEditDistance scores with the penalty-driven Damerau-Levenshtein
	// pipeline (prefix, substring, subsequence and acronym phases).
	AlgorithmEditDistance Algorithm = iota
	// AlgorithmSmithWaterman scores with the bonus-driven integer
	// local-alignment pipeline.
	AlgorithmSmithWaterman
)

// GapModel selects how the alignment engine charges for unmatched candidate
// bytes between two matched query characters.
type GapModel uint8

const (
	GapNone   GapModel = iota // gaps are free
	GapLinear                 // every skipped byte costs GapOpen
	GapAffine                 // opening a gap costs GapOpen, extending it GapExtend
)

// Empirically tuned score-composition constants. These change ranking
// behavior; keep them in sync with the documented scoring contract.
const (
	// recoverSameLength is the fraction of the gap to 1.0 recovered by a
	// near-exact prefix match whose candidate has the same length as the query.
	recoverSameLength = 0.7
	// bonusRecoveryCap bounds how much alignment bonus can recover toward 1.0
	// when the underlying edit distance is non-zero. Bonuses must not disguise
	// a typo as a perfect match.
	bonusRecoveryCap = 0.8
	// substringSkipScore is the prefix-phase score at which the substring
	// phase is skipped entirely.
	substringSkipScore = 0.7
	// cleanFitRecovery is the fraction of the length penalty recovered when
	// the residual structure (exact prefix, word-edge substring) indicates a
	// clean fit.
	cleanFitRecovery = 0.9
	// subsequenceCeil is the highest score a subsequence fallback match can
	// reach before bonus recovery.
	subsequenceCeil = 0.75
	// subsequenceMinDensity rejects subsequence matches spread too thin over
	// the candidate.
	subsequenceMinDensity = 0.15

	acronymBaseScore      = 0.55
	acronymCoverageWeight = 0.4
	acronymMinQuery       = 2
	acronymMaxQuery       = 8
	acronymMinWords       = 3

	shortQueryLen = 3

	// alignMaxCandidate caps the candidate length for the optimal-alignment
	// DP; longer candidates downgrade to the greedy heuristic.
	alignMaxCandidate = 512
	// alignMinQuery is the shortest query worth the full alignment DP.
	alignMinQuery = 5

	// trigramSpoilFactor is how many overlapping trigrams a single edit can
	// destroy.
	trigramSpoilFactor = 3
)

// EditDistanceConfig tunes the Damerau-Levenshtein pipeline.
type EditDistanceConfig struct {
	MaxDistance     int // edit budget for ordinary queries
	MaxDistanceLong int // edit budget once the query reaches LongQueryLen
	LongQueryLen    int

	PrefixWeight    float64 // asymptotic weight for prefix-phase scores
	SubstringWeight float64
	AcronymWeight   float64

	BoundaryBonus    float64 // alignment bonus for matching at a word boundary
	ConsecutiveBonus float64 // alignment bonus per consecutively matched byte
	FirstMatchBonus  float64 // bonus for matching early in the candidate
	FirstMatchDecay  int     // byte range over which FirstMatchBonus decays to zero

	Gap       GapModel
	GapOpen   float64
	GapExtend float64

	// LengthPenalty is charged per candidate byte in excess of the query.
	LengthPenalty float64
}

// SmithWatermanConfig tunes the integer local-alignment pipeline. All values
// are integer scores in raw (pre-normalization) units.
type SmithWatermanConfig struct {
	MatchScore int32
	GapOpen    int32
	GapExtend  int32

	ConsecutiveBonus int32
	BoundaryBonus    int32 // generic non-word boundary
	DelimiterBonus   int32 // boundary after a delimiter byte
	WhitespaceBonus  int32 // boundary after whitespace or at the string start
	CamelBonus       int32 // camelCase or digit transition

	// FirstCharMultiplier scales the bonus of the first matched query byte.
	FirstCharMultiplier int32

	// SplitAtoms scores each space-separated query word independently with
	// AND semantics.
	SplitAtoms bool
}

// MatchConfig is the full scoring configuration: a minimum score and exactly
// one algorithm with its payload. Pure data, cheaply copyable, no globals.
type MatchConfig struct {
	MinScore      float64
	Algorithm     Algorithm
	Edit          EditDistanceConfig
	SmithWaterman SmithWatermanConfig
}

// DefaultEditDistanceConfig returns the tuned defaults for the edit-distance
// pipeline.
func DefaultEditDistanceConfig() EditDistanceConfig {
	return EditDistanceConfig{
		MaxDistance:      2,
		MaxDistanceLong:  3,
		LongQueryLen:     12,
		PrefixWeight:     2.0,
		SubstringWeight:  1.5,
		AcronymWeight:    1.0,
		BoundaryBonus:    0.08,
		ConsecutiveBonus: 0.04,
		FirstMatchBonus:  0.05,
		FirstMatchDecay:  16,
		Gap:              GapAffine,
		GapOpen:          0.03,
		GapExtend:        0.01,
		LengthPenalty:    0.01,
	}
}

// DefaultSmithWatermanConfig returns the tuned defaults for the
// Smith-Waterman pipeline.
func DefaultSmithWatermanConfig() SmithWatermanConfig {
	return SmithWatermanConfig{
		MatchScore:          16,
		GapOpen:             3,
		GapExtend:           1,
		ConsecutiveBonus:    4,
		BoundaryBonus:       6,
		DelimiterBonus:      8,
		WhitespaceBonus:     10,
		CamelBonus:          4,
		FirstCharMultiplier: 2,
		SplitAtoms:          true,
	}
}

// DefaultConfig returns the edit-distance pipeline with its defaults and a
// 0.25 score floor.
func DefaultConfig() MatchConfig {
	return MatchConfig{
		MinScore:      0.25,
		Algorithm:     AlgorithmEditDistance,
		Edit:          DefaultEditDistanceConfig(),
		SmithWaterman: DefaultSmithWatermanConfig(),
	}
}
