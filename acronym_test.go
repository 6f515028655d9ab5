package fuzzymatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initialsOf(t *testing.T, s string) []byte {
	t.Helper()
	buf := NewBuffer()
	cand, class := foldInto(buf, s)
	out := collectInitials(cand, class, make([]byte, len(cand)))
	return append([]byte(nil), out...)
}

func TestCollectInitials(t *testing.T) {
	assert.Equal(t, []byte("icag"), initialsOf(t, "International Consolidated Airlines Group"))
	assert.Equal(t, []byte("gubi"), initialsOf(t, "getUserById"))
	assert.Equal(t, []byte("fbb"), initialsOf(t, "foo_bar-baz"))
	assert.Equal(t, []byte("h"), initialsOf(t, "hello"))
	assert.Empty(t, initialsOf(t, "___"))
}

func TestAcronymScore(t *testing.T) {
	initials := []byte("icag")

	s, ok := acronymScore(initials, []byte("icag"), 1)
	require.True(t, ok)
	assert.InDelta(t, 0.95, s, 1e-9)

	// Partial coverage scales down.
	s, ok = acronymScore(initials, []byte("ica"), 1)
	require.True(t, ok)
	assert.InDelta(t, 0.85, s, 1e-9)

	// Order matters.
	_, ok = acronymScore(initials, []byte("icga"), 1)
	assert.False(t, ok)

	_, ok = acronymScore(nil, []byte("ic"), 1)
	assert.False(t, ok)

	// Weight scales the final score.
	s, ok = acronymScore(initials, []byte("icag"), 0.5)
	require.True(t, ok)
	assert.InDelta(t, 0.475, s, 1e-9)
}

func TestAcronymEndToEnd(t *testing.T) {
	m, ok := ScoreString("International Consolidated Airlines Group", "icag")
	require.True(t, ok)
	assert.Equal(t, KindAcronym, m.Kind)
	assert.InDelta(t, 0.95, m.Score, 1e-9)

	// Two words are below the word-count gate: the query still matches, but
	// never as an acronym.
	m, ok = ScoreString("index calc", "ic")
	require.True(t, ok)
	assert.NotEqual(t, KindAcronym, m.Kind)
}
