package fuzzymatch

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func foldString(t *testing.T, s string) (string, uint64) {
	t.Helper()
	dst := make([]byte, len(s))
	n, mask, _, _ := foldScan(dst, s, nil)
	return string(dst[:n]), mask
}

func TestFoldASCII(t *testing.T) {
	out, mask := foldString(t, "Hello_World42")
	assert.Equal(t, "hello_world42", out)

	// Letters, digits and underscore each have their bit.
	assert.NotZero(t, mask&(1<<('h'-'a')))
	assert.NotZero(t, mask&(1<<('w'-'a')))
	assert.NotZero(t, mask&(1<<(maskDigitBase+4)))
	assert.NotZero(t, mask&(1<<(maskDigitBase+2)))
	assert.NotZero(t, mask&(1<<maskUnderscore))
	assert.Zero(t, mask&(1<<('z'-'a')))
}

func TestFoldLatin1Collapse(t *testing.T) {
	// Diacritics with an ASCII base collapse to one byte.
	out, mask := foldString(t, "Café")
	assert.Equal(t, "cafe", out)
	assert.NotZero(t, mask&(1<<('e'-'a')))

	out, _ = foldString(t, "À la Pâte")
	assert.Equal(t, "a la pate", out)

	// No ASCII base: fold in place, stay two bytes.
	out, _ = foldString(t, "Æon")
	assert.Equal(t, "æon", out)

	out, _ = foldString(t, "straße")
	assert.Equal(t, "straße", out)
}

func TestFoldGreek(t *testing.T) {
	out, _ := foldString(t, "ΣΙΓΜΑ")
	assert.Equal(t, "σιγμα", out)

	// Final sigma folds to sigma.
	out, _ = foldString(t, "ς")
	assert.Equal(t, "σ", out)
}

func TestFoldCyrillic(t *testing.T) {
	out, _ := foldString(t, "Привет")
	assert.Equal(t, "привет", out)

	out, _ = foldString(t, "ЁЖ")
	assert.Equal(t, "ёж", out)
}

func TestFoldCombiningMarksStripped(t *testing.T) {
	// Decomposed e + U+0301 and precomposed é both fold to plain e.
	decomposed, _ := foldString(t, "éclair")
	precomposed, _ := foldString(t, "éclair")
	assert.Equal(t, "eclair", decomposed)
	assert.Equal(t, decomposed, precomposed)
}

func TestFoldInvalidUTF8PassThrough(t *testing.T) {
	// Stray continuation bytes and truncated sequences pass through
	// unmodified; the engine never panics on arbitrary byte sequences.
	for _, s := range []string{"\x80abc", "abc\xff", "\xc3", "a\xe2\x28b", "\xf0\x9f"} {
		require.NotPanics(t, func() {
			out, _ := foldString(t, s)
			assert.NotEmpty(t, out)
		})
	}

	out, _ := foldString(t, "\x80Abc")
	assert.Equal(t, "\x80abc", out)
}

func TestFoldOutputNeverGrows(t *testing.T) {
	inputs := []string{"Café", "ΣΙΓΜΑ", "Привет", "é", "hello", "\x80\x81"}
	for _, s := range inputs {
		out, _ := foldString(t, s)
		assert.LessOrEqual(t, len(out), len(s), "folding %q must not grow", s)
	}
}

func TestRawMaskMatchesFoldScan(t *testing.T) {
	fixed := []string{
		"", "a", "Hello_World42", "Café au lait", "ΣΙΓΜΑ", "Привет мир",
		"éclair", "\x80abc\xff", "getUserById", "x/y-z.w",
	}
	for _, s := range fixed {
		_, mask := foldString(t, s)
		assert.Equal(t, mask, rawMask(s), "mask mismatch for %q", s)
	}

	rng := rand.New(rand.NewSource(7))
	alphabet := []byte("aZ9_ é×\x80\xc3\xcc\x81")
	for i := 0; i < 500; i++ {
		b := make([]byte, rng.Intn(20))
		for j := range b {
			b[j] = alphabet[rng.Intn(len(alphabet))]
		}
		s := string(b)
		_, mask := foldString(t, s)
		assert.Equal(t, mask, rawMask(s), "mask mismatch for %q", s)
	}
}

func TestWordBoundaryClasses(t *testing.T) {
	classes := func(s string) []byteClass {
		dst := make([]byte, len(s))
		cls := make([]byteClass, len(s))
		n, _, _, _ := foldScan(dst, s, cls)
		return cls[:n]
	}

	cls := classes("foo_bar")
	assert.Equal(t, classWhitespace, cls[0], "string start")
	assert.Equal(t, classNone, cls[1])
	assert.Equal(t, classNone, cls[3], "underscore itself is not a word start")
	assert.Equal(t, classDelimiter, cls[4], "post-underscore")

	cls = classes("fooBar")
	assert.Equal(t, classCamel, cls[3], "camelCase transition")

	cls = classes("foo bar")
	assert.Equal(t, classWhitespace, cls[4])

	cls = classes("foo/bar")
	assert.Equal(t, classDelimiter, cls[4])

	cls = classes("a1b2")
	assert.Equal(t, classCamel, cls[1], "digit after letter")
	assert.Equal(t, classCamel, cls[2], "letter after digit")
}

func TestWordCount(t *testing.T) {
	count := func(s string) int {
		dst := make([]byte, len(s))
		_, _, _, words := foldScan(dst, s, nil)
		return words
	}
	assert.Equal(t, 1, count("hello"))
	assert.Equal(t, 2, count("foo_bar"))
	assert.Equal(t, 4, count("getUserById"))
	assert.Equal(t, 4, count("International Consolidated Airlines Group"))
	assert.Equal(t, 0, count("___"))
}

func TestBoundaryMaskMatchesClasses(t *testing.T) {
	s := "one two_threeFour five.six"
	dst := make([]byte, len(s))
	cls := make([]byteClass, len(s))
	n, _, boundary, _ := foldScan(dst, s, cls)
	for i := 0; i < n && i < 64; i++ {
		bit := boundary&(1<<i) != 0
		assert.Equal(t, cls[i] != classNone, bit, "position %d", i)
	}
}
