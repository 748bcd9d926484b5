package hmm

import (
	hrunes "github.com/hanzinlp/hanseg/internal/runes"
)

// Decode decodes runes[begin:end] with Viterbi and returns the resulting
// state sequence, one State per rune. Cut boundaries fall immediately
// after any E or S state (spec §4.4); callers turn that into word
// ranges.
func (m *Model) Decode(rs hrunes.String, begin, end int) []State {
	n := end - begin
	if n == 0 {
		return nil
	}

	// w[x][y]: best log-prob of any path ending in state y at
	// observation x. path[x][y]: the predecessor state that achieved it.
	w := make([][numStates]float64, n)
	path := make([][numStates]State, n)

	r0 := rs.Runes[begin].Codepoint
	for y := State(0); y < numStates; y++ {
		w[0][y] = m.Start[y] + m.Emission(y, r0)
	}

	for x := 1; x < n; x++ {
		r := rs.Runes[begin+x].Codepoint
		for y := State(0); y < numStates; y++ {
			best := negInf
			var bestPrev State
			for yp := State(0); yp < numStates; yp++ {
				cand := w[x-1][yp] + m.Trans[yp][y]
				if cand > best {
					best = cand
					bestPrev = yp
				}
			}
			w[x][y] = best + m.Emission(y, r)
			path[x][y] = bestPrev
		}
	}

	last := n - 1
	var end_ State
	if w[last][E] >= w[last][S] {
		end_ = E
	} else {
		end_ = S
	}

	states := make([]State, n)
	states[last] = end_
	for x := last; x > 0; x-- {
		states[x-1] = path[x][states[x]]
	}
	return states
}

const negInf = -1e308

// CutPoints converts a state sequence into half-open word ranges
// relative to the slice the states were decoded over: a boundary falls
// immediately after any E or S state.
func CutPoints(states []State) [][2]int {
	var ranges [][2]int
	start := 0
	for i, st := range states {
		if st == E || st == S {
			ranges = append(ranges, [2]int{start, i + 1})
			start = i + 1
		}
	}
	if start < len(states) {
		ranges = append(ranges, [2]int{start, len(states)})
	}
	return ranges
}
