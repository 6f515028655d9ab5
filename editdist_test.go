package fuzzymatch

import (
	"math/rand"
	"testing"

	"github.com/hbollon/go-edlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixDistanceBasics(t *testing.T) {
	buf := NewBuffer()
	buf.beginCall(16, 64)

	d, ok := prefixDistance(buf, []byte("getuserbyid"), []byte("get"), 1)
	require.True(t, ok)
	assert.Equal(t, 0, d)

	d, ok = prefixDistance(buf, []byte("user"), []byte("user"), 2)
	require.True(t, ok)
	assert.Equal(t, 0, d)

	// Adjacent transposition costs 1, not 2.
	d, ok = prefixDistance(buf, []byte("usre"), []byte("user"), 2)
	require.True(t, ok)
	assert.Equal(t, 1, d)

	d, ok = prefixDistance(buf, []byte("uxer"), []byte("user"), 2)
	require.True(t, ok)
	assert.Equal(t, 1, d)

	// Candidate shorter than the query: deletions count.
	d, ok = prefixDistance(buf, []byte("use"), []byte("user"), 2)
	require.True(t, ok)
	assert.Equal(t, 1, d)

	_, ok = prefixDistance(buf, []byte("xxxxxxx"), []byte("user"), 2)
	assert.False(t, ok)
}

func TestSubstringDistanceBasics(t *testing.T) {
	buf := NewBuffer()
	buf.beginCall(16, 64)

	d, ok := substringDistance(buf, []byte("getcurrentuser"), []byte("user"), 1)
	require.True(t, ok)
	assert.Equal(t, 0, d)

	d, ok = substringDistance(buf, []byte("xxuserxx"), []byte("usre"), 2)
	require.True(t, ok)
	assert.Equal(t, 1, d, "transposition inside a substring")

	_, ok = substringDistance(buf, []byte("zzzzzz"), []byte("user"), 2)
	assert.False(t, ok)
}

// Oracle: our rolling-row prefix distance must equal the minimum OSA
// Damerau-Levenshtein distance over every candidate prefix.
func TestPrefixDistanceOracle(t *testing.T) {
	buf := NewBuffer()
	rng := rand.New(rand.NewSource(42))
	const alphabet = "abcd"

	randWord := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(b)
	}

	for iter := 0; iter < 400; iter++ {
		query := randWord(1 + rng.Intn(6))
		cand := randWord(rng.Intn(9))

		want := len(query)
		for i := 0; i <= len(cand); i++ {
			if d := edlib.OSADamerauLevenshteinDistance(query, cand[:i]); d < want {
				want = d
			}
		}

		buf.beginCall(len(query), len(cand)+1)
		got, ok := prefixDistance(buf, []byte(cand), []byte(query), len(query)+len(cand))
		require.True(t, ok, "query=%q cand=%q", query, cand)
		assert.Equal(t, want, got, "query=%q cand=%q", query, cand)
	}
}

// Oracle: the free-restart variant must equal the minimum OSA distance over
// every candidate substring.
func TestSubstringDistanceOracle(t *testing.T) {
	buf := NewBuffer()
	rng := rand.New(rand.NewSource(43))
	const alphabet = "abc"

	randWord := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(b)
	}

	for iter := 0; iter < 300; iter++ {
		query := randWord(1 + rng.Intn(5))
		cand := randWord(rng.Intn(8))

		want := len(query)
		for i := 0; i <= len(cand); i++ {
			for j := i; j <= len(cand); j++ {
				if d := edlib.OSADamerauLevenshteinDistance(query, cand[i:j]); d < want {
					want = d
				}
			}
		}

		buf.beginCall(len(query), len(cand)+1)
		got, ok := substringDistance(buf, []byte(cand), []byte(query), len(query)+len(cand))
		require.True(t, ok, "query=%q cand=%q", query, cand)
		assert.Equal(t, want, got, "query=%q cand=%q", query, cand)
	}
}

func TestDistanceScoreShaping(t *testing.T) {
	assert.Equal(t, 1.0, distanceScore(0, 4))
	assert.Equal(t, 0.75, distanceScore(1, 4))
	assert.Equal(t, 0.0, distanceScore(4, 4))
	assert.Equal(t, 0.0, distanceScore(9, 4))

	// Exact matches keep 1.0 regardless of weight.
	assert.Equal(t, 1.0, weighted(1.0, 2.0))
	assert.Equal(t, 1.0, weighted(1.0, 0.5))
	// Near misses are pulled toward 1.0 by weights above 1.
	assert.InDelta(t, 0.875, weighted(0.75, 2.0), 1e-9)
	assert.Greater(t, weighted(0.75, 2.0), 0.75)
	// Degenerate weight leaves the base untouched.
	assert.Equal(t, 0.6, weighted(0.6, 0))
}

func TestIsSubsequence(t *testing.T) {
	assert.True(t, isSubsequence([]byte("getcurrentuser"), []byte("gcu")))
	assert.True(t, isSubsequence([]byte("abc"), nil))
	assert.False(t, isSubsequence([]byte("abc"), []byte("acb")))
	assert.False(t, isSubsequence([]byte("ab"), []byte("abc")))
}
