package fuzzymatch

import (
	"github.com/segmentio/asm/ascii"
)

// Byte case-folding and character bitmask. Matching is defined over raw
// bytes: ASCII, the Latin-1 Supplement, Greek and basic Cyrillic fold to
// lowercase, combining diacritical marks (U+0300-U+036F) are stripped, and
// Latin-1 letters with an ASCII base collapse to that base byte (à -> a), so
// folded output can be shorter than the input. Anything else, including
// invalid UTF-8, passes through unmodified.
//
// The same scan produces a 64-bit character-presence bitmask: bits 0-25 for
// letters, 26-35 for digits, 36 for underscore, 37-63 a hash bucket for
// non-ASCII characters.

const (
	maskDigitBase      = 26
	maskUnderscore     = 36
	maskBucketBase     = 37
	maskBucketCount    = 64 - maskBucketBase
	combiningMarkFirst = 0x300
	combiningMarkLast  = 0x36F
)

// latin1Base maps U+00C0..U+00FF to an ASCII base letter, or 0 when the
// character has none and folds in place.
var latin1Base = [64]byte{
	'a', 'a', 'a', 'a', 'a', 'a', 0, 'c', // À Á Â Ã Ä Å Æ Ç
	'e', 'e', 'e', 'e', 'i', 'i', 'i', 'i', // È É Ê Ë Ì Í Î Ï
	0, 'n', 'o', 'o', 'o', 'o', 'o', 0, // Ð Ñ Ò Ó Ô Õ Ö ×
	'o', 'u', 'u', 'u', 'u', 'y', 0, 0, // Ø Ù Ú Û Ü Ý Þ ß
	'a', 'a', 'a', 'a', 'a', 'a', 0, 'c', // à á â ã ä å æ ç
	'e', 'e', 'e', 'e', 'i', 'i', 'i', 'i', // è é ê ë ì í î ï
	0, 'n', 'o', 'o', 'o', 'o', 'o', 0, // ð ñ ò ó ô õ ö ÷
	'o', 'u', 'u', 'u', 'u', 'y', 0, 'y', // ø ù ú û ü ý þ ÿ
}

// asciiMaskBit returns the bitmask contribution of a folded ASCII byte.
func asciiMaskBit(c byte) uint64 {
	switch {
	case c >= 'a' && c <= 'z':
		return 1 << (c - 'a')
	case c >= '0' && c <= '9':
		return 1 << (maskDigitBase + c - '0')
	case c == '_':
		return 1 << maskUnderscore
	}
	return 0
}

// bucketBit hashes a non-ASCII byte pair into the bucket bits 37-63.
func bucketBit(b0, b1 byte) uint64 {
	return 1 << (maskBucketBase + (uint32(b0)*31+uint32(b1))%maskBucketCount)
}

// foldRune2 folds a two-byte codepoint to lowercase. It returns the folded
// rune and, for Latin-1 letters with one, the ASCII base byte.
func foldRune2(r rune) (rune, byte) {
	switch {
	case r >= 0xC0 && r <= 0xFF:
		if base := latin1Base[r-0xC0]; base != 0 {
			return r, base
		}
		if r <= 0xDE && r != 0xD7 {
			return r + 0x20, 0
		}
	case r >= 0x391 && r <= 0x3A9 && r != 0x3A2: // Greek capitals
		return r + 0x20, 0
	case r == 0x3C2: // final sigma folds to sigma
		return 0x3C3, 0
	case r >= 0x410 && r <= 0x42F: // Cyrillic А-Я
		return r + 0x20, 0
	case r >= 0x400 && r <= 0x40F: // Cyrillic Ѐ-Џ
		return r + 0x50, 0
	}
	return r, 0
}

// encode2 writes a codepoint below U+0800 as two UTF-8 bytes.
func encode2(r rune) (byte, byte) {
	return byte(0xC0 | r>>6), byte(0x80 | r&0x3F)
}

// foldScan lowercases s into dst, which must hold at least len(s) bytes.
// It returns the folded length, the character bitmask, a word-boundary mask
// over the first 64 output positions and the number of word starts. When
// class is non-nil it receives the byte class of every output position (it
// must also hold at least len(s) entries).
func foldScan(dst []byte, s string, class []byteClass) (n int, mask, boundary uint64, words int) {
	if ascii.ValidString(s) {
		return foldScanASCII(dst, s, class)
	}

	var prev byte // previous raw byte, 0 at the string start
	for i := 0; i < len(s); {
		b := s[i]

		if b < 0x80 {
			c := b
			if c >= 'A' && c <= 'Z' {
				c |= 0x20
			}
			cl := classOf(prev, b)
			if class != nil {
				class[n] = cl
			}
			if cl != classNone {
				if n < 64 {
					boundary |= 1 << n
				}
				words++
			}
			dst[n] = c
			mask |= asciiMaskBit(c)
			n++
			prev = b
			i++
			continue
		}

		if b < 0xC2 || i+1 >= len(s) {
			// Stray continuation byte or truncated sequence: pass through.
			if class != nil {
				class[n] = classNone
			}
			dst[n] = b
			mask |= bucketBit(b, 0)
			n++
			prev = b
			i++
			continue
		}

		if b < 0xE0 {
			r := rune(b&0x1F)<<6 | rune(s[i+1]&0x3F)
			if r >= combiningMarkFirst && r <= combiningMarkLast {
				// Combining diacritical mark: strip so decomposed and
				// precomposed forms compare equal.
				prev = b
				i += 2
				continue
			}
			folded, base := foldRune2(r)
			cl := classOf(prev, b)
			if class != nil {
				class[n] = cl
			}
			if cl != classNone {
				if n < 64 {
					boundary |= 1 << n
				}
				words++
			}
			if base != 0 {
				dst[n] = base
				mask |= asciiMaskBit(base)
				n++
			} else {
				b0, b1 := encode2(folded)
				dst[n] = b0
				dst[n+1] = b1
				if class != nil {
					class[n+1] = classNone
				}
				mask |= bucketBit(b0, b1)
				n += 2
			}
			prev = b
			i += 2
			continue
		}

		// Three- and four-byte sequences pass through unmodified.
		size := 3
		if b >= 0xF0 {
			size = 4
		}
		if i+size > len(s) {
			size = len(s) - i
		}
		cl := classOf(prev, b)
		if class != nil {
			class[n] = cl
		}
		if cl != classNone {
			if n < 64 {
				boundary |= 1 << n
			}
			words++
		}
		mask |= bucketBit(b, s[i+1])
		for k := 0; k < size; k++ {
			if class != nil && k > 0 {
				class[n] = classNone
			}
			dst[n] = s[i+k]
			n++
		}
		prev = b
		i += size
	}
	return n, mask, boundary, words
}

// foldScanASCII is the pure-ASCII fast path: no multi-byte logic at all.
func foldScanASCII(dst []byte, s string, class []byteClass) (n int, mask, boundary uint64, words int) {
	var prev byte
	for i := 0; i < len(s); i++ {
		b := s[i]
		c := b
		if c >= 'A' && c <= 'Z' {
			c |= 0x20
		}
		cl := classOf(prev, b)
		if class != nil {
			class[i] = cl
		}
		if cl != classNone {
			if i < 64 {
				boundary |= 1 << i
			}
			words++
		}
		dst[i] = c
		mask |= asciiMaskBit(c)
		prev = b
	}
	return len(s), mask, boundary, words
}

// rawMask computes the character bitmask of s with inline folding, without
// producing the folded bytes. It matches foldScan's mask exactly, so the
// bitmask prefilter can run before paying for the lowercase copy.
func rawMask(s string) uint64 {
	if ascii.ValidString(s) {
		var mask uint64
		for i := 0; i < len(s); i++ {
			c := s[i]
			if c >= 'A' && c <= 'Z' {
				c |= 0x20
			}
			mask |= asciiMaskBit(c)
		}
		return mask
	}

	var mask uint64
	for i := 0; i < len(s); {
		b := s[i]
		if b < 0x80 {
			c := b
			if c >= 'A' && c <= 'Z' {
				c |= 0x20
			}
			mask |= asciiMaskBit(c)
			i++
			continue
		}
		if b < 0xC2 || i+1 >= len(s) {
			mask |= bucketBit(b, 0)
			i++
			continue
		}
		if b < 0xE0 {
			r := rune(b&0x1F)<<6 | rune(s[i+1]&0x3F)
			if r >= combiningMarkFirst && r <= combiningMarkLast {
				i += 2
				continue
			}
			folded, base := foldRune2(r)
			if base != 0 {
				mask |= asciiMaskBit(base)
			} else {
				b0, b1 := encode2(folded)
				mask |= bucketBit(b0, b1)
			}
			i += 2
			continue
		}
		size := 3
		if b >= 0xF0 {
			size = 4
		}
		if i+size > len(s) {
			size = len(s) - i
		}
		mask |= bucketBit(b, s[i+1])
		i += size
	}
	return mask
}
