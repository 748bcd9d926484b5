// Package runes decodes UTF-8 byte strings into addressable codepoint
// sequences and re-encodes ranges of them back to bytes. It is the
// substrate every other hanseg package builds word ranges on top of.
package runes

import "unicode/utf8"

// Rune addresses a single codepoint inside a source byte buffer.
type Rune struct {
	Codepoint  rune
	ByteOffset int
	ByteLength uint8
}

// String is an ordered sequence of Runes paired with the backing byte
// buffer they were decoded from. Encode takes half-open [i,j) indices
// into Runes.
type String struct {
	Runes []Rune
	Bytes []byte
}

// Len returns the number of codepoints.
func (s String) Len() int { return len(s.Runes) }

// Decode walks b and emits one Rune per codepoint. Invalid UTF-8 bytes are
// decoded permissively: each one becomes its own single-byte Rune carrying
// utf8.RuneError, matching cppjieba's DecodeRunesInString behavior of
// advancing one byte on a decode failure rather than aborting.
func Decode(b []byte) String {
	out := String{Bytes: b, Runes: make([]Rune, 0, len(b))}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if size == 0 {
			break
		}
		out.Runes = append(out.Runes, Rune{
			Codepoint:  r,
			ByteOffset: i,
			ByteLength: uint8(size),
		})
		i += size
	}
	return out
}

// Encode concatenates the backing bytes for runes[i:j] — a cheap substring
// of the original buffer since Rune offsets are contiguous.
func Encode(s String, i, j int) []byte {
	if i >= j || i < 0 || j > len(s.Runes) {
		return nil
	}
	start := s.Runes[i].ByteOffset
	last := s.Runes[j-1]
	end := last.ByteOffset + int(last.ByteLength)
	return s.Bytes[start:end]
}

// CharCount counts codepoints in the first byteLen bytes of b. Used to
// reject DAT hits whose character length exceeds max_word_len despite a
// shorter byte length.
func CharCount(b []byte, byteLen int) int {
	if byteLen > len(b) {
		byteLen = len(b)
	}
	n := 0
	for i := 0; i < byteLen; {
		_, size := utf8.DecodeRune(b[i:])
		if size == 0 {
			break
		}
		i += size
		n++
	}
	return n
}

// IsASCII reports whether r is below the Han/multi-byte threshold used by
// HMM block splitting (0x80).
func IsASCII(r rune) bool { return r < 0x80 }
