package strategy

import (
	hrunes "github.com/hanzinlp/hanseg/internal/runes"
)

// MixSegment implements spec §4.5.3: run MP, then replace every
// maximal run of single-character MP results whose character is not a
// single-character user-dict entry with that run's HMM cut.
type MixSegment struct {
	MP                *MPSegment
	HMM               *HMMSegment
	UserSingleCharSet map[rune]bool
}

var _ Strategy = (*MixSegment)(nil)

func (s *MixSegment) Cut(rs hrunes.String, begin, end int, withHMM bool, maxWordLen int) []WordRange {
	mpRanges := s.MP.Cut(rs, begin, end, withHMM, maxWordLen)
	if !withHMM || s.HMM == nil {
		return mpRanges
	}

	var out []WordRange
	i := 0
	for i < len(mpRanges) {
		if !s.isEligibleSingle(rs, mpRanges[i]) {
			out = append(out, mpRanges[i])
			i++
			continue
		}
		runStart := i
		for i < len(mpRanges) && s.isEligibleSingle(rs, mpRanges[i]) {
			i++
		}
		runBeginRune := mpRanges[runStart].Left
		runEndRune := mpRanges[i-1].Right + 1
		out = append(out, s.HMM.Cut(rs, runBeginRune, runEndRune, withHMM, maxWordLen)...)
	}
	return out
}

// isEligibleSingle reports whether wr is a single-character MP result
// whose character is not itself a single-character user-dict word.
func (s *MixSegment) isEligibleSingle(rs hrunes.String, wr WordRange) bool {
	if wr.Left != wr.Right {
		return false
	}
	r := rs.Runes[wr.Left].Codepoint
	return !s.UserSingleCharSet[r]
}
