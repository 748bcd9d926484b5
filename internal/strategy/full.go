package strategy

import (
	"github.com/hanzinlp/hanseg/internal/dat"
	hrunes "github.com/hanzinlp/hanseg/internal/runes"
)

// FullSegment implements spec §4.5.4: every dictionary word of length
// ≥2 found anywhere in the DAG, plus every single-character position
// not yet covered by a longer word.
type FullSegment struct {
	Trie *dat.Trie
}

var _ Strategy = (*FullSegment)(nil)

// Cut ignores withHMM: full mode has no HMM participation.
func (s *FullSegment) Cut(rs hrunes.String, begin, end int, withHMM bool, maxWordLen int) []WordRange {
	n := end - begin
	dag := make([]dat.DagCell, n)
	s.Trie.FindAllPrefixes(rs, begin, end, maxWordLen, dag)

	var out []WordRange
	maxWordEndPos := 0
	for i := 0; i < n; i++ {
		cell := dag[i]
		for _, tr := range cell.Nexts[1:] {
			out = append(out, WordRange{Left: begin + i, Right: begin + tr.NextPos - 1})
			if tr.NextPos > maxWordEndPos {
				maxWordEndPos = tr.NextPos
			}
		}
		if len(cell.Nexts) == 1 && maxWordEndPos <= i {
			out = append(out, WordRange{Left: begin + i, Right: begin + i})
			if i+1 > maxWordEndPos {
				maxWordEndPos = i + 1
			}
		}
	}
	return out
}
