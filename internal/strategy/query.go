package strategy

import (
	"github.com/hanzinlp/hanseg/internal/dat"
	hrunes "github.com/hanzinlp/hanseg/internal/runes"
)

// QuerySegment implements spec §4.5.5: run Mix, then for every Mix
// word longer than 2 characters additionally emit any 2- or 3-char
// sub-word of it that exists in the dictionary.
type QuerySegment struct {
	Mix  *MixSegment
	Trie *dat.Trie
}

var _ Strategy = (*QuerySegment)(nil)

func (s *QuerySegment) Cut(rs hrunes.String, begin, end int, withHMM bool, maxWordLen int) []WordRange {
	mixRanges := s.Mix.Cut(rs, begin, end, withHMM, maxWordLen)

	var out []WordRange
	for _, wr := range mixRanges {
		out = append(out, wr)
		wordLen := wr.Right - wr.Left + 1
		if wordLen <= 2 {
			continue
		}
		out = append(out, s.subWords(rs, wr, 2)...)
		out = append(out, s.subWords(rs, wr, 3)...)
	}
	return out
}

// subWords slides a window of size windowChars across wr, emitting
// every sub-range whose encoded bytes are an exact dictionary hit.
func (s *QuerySegment) subWords(rs hrunes.String, wr WordRange, windowChars int) []WordRange {
	wordLen := wr.Right - wr.Left + 1
	if wordLen < windowChars {
		return nil
	}
	var out []WordRange
	for i := wr.Left; i+windowChars-1 <= wr.Right; i++ {
		j := i + windowChars - 1
		key := hrunes.Encode(rs, i, j+1)
		if _, ok := s.Trie.FindExactCached(key); ok {
			out = append(out, WordRange{Left: i, Right: j})
		}
	}
	return out
}
