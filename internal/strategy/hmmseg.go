package strategy

import (
	"unicode"

	"github.com/hanzinlp/hanseg/internal/hmm"
	hrunes "github.com/hanzinlp/hanseg/internal/runes"
)

// HMMSegment implements spec §4.5.2: split at the ASCII/non-ASCII
// boundary, Viterbi-decode each non-ASCII run, and apply the two
// greedy lexical rules to each ASCII run.
type HMMSegment struct {
	Model *hmm.Model
}

var _ Strategy = (*HMMSegment)(nil)

// Cut ignores withHMM and maxWordLen: this strategy has no DAG, so
// neither knob applies.
func (s *HMMSegment) Cut(rs hrunes.String, begin, end int, withHMM bool, maxWordLen int) []WordRange {
	var out []WordRange
	i := begin
	for i < end {
		if hrunes.IsASCII(rs.Runes[i].Codepoint) {
			j := s.cutASCIIRun(rs, i, end)
			out = append(out, j...)
			i = j[len(j)-1].Right + 1
			continue
		}
		j := i
		for j < end && !hrunes.IsASCII(rs.Runes[j].Codepoint) {
			j++
		}
		out = append(out, s.cutNonASCIIRun(rs, i, j)...)
		i = j
	}
	return out
}

func (s *HMMSegment) cutNonASCIIRun(rs hrunes.String, begin, end int) []WordRange {
	if begin >= end {
		return nil
	}
	states := s.Model.Decode(rs, begin, end)
	ranges := hmm.CutPoints(states)
	out := make([]WordRange, len(ranges))
	for i, r := range ranges {
		out[i] = WordRange{Left: begin + r[0], Right: begin + r[1] - 1}
	}
	return out
}

// cutASCIIRun always returns at least one WordRange so the caller can
// advance past what it consumed.
func (s *HMMSegment) cutASCIIRun(rs hrunes.String, pos, end int) []WordRange {
	r := rs.Runes[pos].Codepoint
	switch {
	case isLetter(r):
		j := pos + 1
		for j < end && isLetterOrDigit(rs.Runes[j].Codepoint) {
			j++
		}
		return []WordRange{{Left: pos, Right: j - 1}}
	case isDigit(r):
		j := pos + 1
		for j < end && (isDigit(rs.Runes[j].Codepoint) || rs.Runes[j].Codepoint == '.') {
			j++
		}
		return []WordRange{{Left: pos, Right: j - 1}}
	default:
		return []WordRange{{Left: pos, Right: pos}}
	}
}

func isLetter(r rune) bool     { return unicode.IsLetter(r) && r < 0x80 }
func isDigit(r rune) bool      { return r >= '0' && r <= '9' }
func isLetterOrDigit(r rune) bool { return isLetter(r) || isDigit(r) }
