package fuzzymatch

// Word-boundary detection. A boundary is a byte position that starts a new
// word: the string start, a position after whitespace, a delimiter or other
// punctuation, a camelCase transition, or a letter/digit changeover. The
// classes are ordered by bonus tier for the Smith-Waterman engine: whitespace
// beats delimiter beats generic boundary beats camelCase.

type byteClass uint8

const (
	classNone byteClass = iota
	classCamel
	classBoundary
	classDelimiter
	classWhitespace

	classCount
)

// delimiterLUT marks punctuation bytes that separate words; whitespace is
// classified on its own tier.
var delimiterLUT = [256]bool{
	'.': true, ',': true, ';': true, ':': true,
	'!': true, '?': true, '-': true, '_': true,
	'/': true, '\\': true, '(': true, ')': true,
	'[': true, ']': true, '{': true, '}': true,
	'"': true, '\'': true, '|': true,
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

// isWordByte reports whether b belongs to a word. Non-ASCII bytes count as
// word bytes; underscore is a delimiter, not a word start.
func isWordByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_':
		return true
	case b >= 0x80:
		return true
	}
	return false
}

// classOf classifies the position holding cur given its raw predecessor byte.
// prev is 0 at the string start.
func classOf(prev, cur byte) byteClass {
	if !isWordByte(cur) || cur == '_' {
		return classNone
	}
	switch {
	case prev == 0 || isSpaceByte(prev):
		return classWhitespace
	case delimiterLUT[prev]:
		return classDelimiter
	case prev < 0x80 && !isWordByte(prev):
		return classBoundary
	case cur >= 'A' && cur <= 'Z' && ((prev >= 'a' && prev <= 'z') || isDigitByte(prev)):
		return classCamel
	case isDigitByte(prev) != isDigitByte(cur) && prev < 0x80 && isWordByte(prev):
		return classCamel
	}
	return classNone
}
