package strategy

import (
	"github.com/hanzinlp/hanseg/internal/dat"
	hrunes "github.com/hanzinlp/hanseg/internal/runes"
)

// MPSegment implements the maximum-probability DAG dynamic program
// (spec §4.5.1) directly over a dat.Trie.
type MPSegment struct {
	Trie *dat.Trie
}

var _ Strategy = (*MPSegment)(nil)

// Cut ignores withHMM; HMM participation is MixSegment's concern.
func (s *MPSegment) Cut(rs hrunes.String, begin, end int, withHMM bool, maxWordLen int) []WordRange {
	dag := s.buildDAG(rs, begin, end, maxWordLen)
	s.dp(dag)
	return s.walk(dag, begin)
}

// buildDAG runs the common-prefix scan over runes[begin:end] and returns
// one DagCell per position for the DP below.
func (s *MPSegment) buildDAG(rs hrunes.String, begin, end, maxWordLen int) []dat.DagCell {
	dag := make([]dat.DagCell, end-begin)
	s.Trie.FindAllPrefixes(rs, begin, end, maxWordLen, dag)
	return dag
}

// dp fills MaxWeight/MaxNext right-to-left per spec §4.5.1 step 2: for
// each cell, score = (elem weight or trie floor) + downstream max, tie
// broken by earliest transition (strict greater-than comparison keeps
// the first winner).
func (s *MPSegment) dp(dag []dat.DagCell) {
	n := len(dag)
	minWeight := s.Trie.MinWeight()
	for i := n - 1; i >= 0; i-- {
		best := negInf
		bestNext := i + 1
		for _, tr := range dag[i].Nexts {
			w := minWeight
			if tr.Elem != nil {
				w = tr.Elem.Weight
			}
			downstream := 0.0
			if tr.NextPos < n {
				downstream = dag[tr.NextPos].MaxWeight
			}
			score := w + downstream
			if score > best {
				best = score
				bestNext = tr.NextPos
			}
		}
		dag[i].MaxWeight = best
		dag[i].MaxNext = bestNext
	}
}

const negInf = -1e308

// walk follows MaxNext left to right, emitting WordRanges as rune
// indices relative to the whole RuneString (begin-offset).
func (s *MPSegment) walk(dag []dat.DagCell, begin int) []WordRange {
	var out []WordRange
	i := 0
	n := len(dag)
	for i < n {
		next := dag[i].MaxNext
		out = append(out, WordRange{Left: begin + i, Right: begin + next - 1})
		i = next
	}
	return out
}
