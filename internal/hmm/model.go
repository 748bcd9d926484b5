// Package hmm implements the four-state (B/E/M/S) character-tagging
// hidden Markov model and its Viterbi decoder, used to segment
// out-of-vocabulary spans that the dictionary trie cannot cover.
package hmm

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hanzinlp/hanseg/internal/herr"
)

// State is a hidden character-tagging state.
type State int

const (
	B State = iota
	E
	M
	S
	numStates = 4
)

func (st State) String() string {
	switch st {
	case B:
		return "B"
	case E:
		return "E"
	case M:
		return "M"
	case S:
		return "S"
	default:
		return "?"
	}
}

// MinDouble is the emission-probability floor assigned to a codepoint
// never seen for a given state, per spec §4.4.
const MinDouble = -3.14e+100

// Model holds the start/transition/emission tables, all natural
// log-probabilities.
type Model struct {
	Start [numStates]float64
	Trans [numStates][numStates]float64
	Emit  [numStates]map[rune]float64
}

// Emission looks up emit[state][r], falling back to MinDouble.
func (m *Model) Emission(state State, r rune) float64 {
	if p, ok := m.Emit[state][r]; ok {
		return p
	}
	return MinDouble
}

//go:embed data/default_model.txt
var defaultModelText string

// DefaultModel parses the model bundled with the package.
func DefaultModel() (*Model, error) {
	return ParseModel(strings.NewReader(defaultModelText))
}

// ParseModel reads a model in the text format described in spec §4.4:
// one line of 4 start log-probs, four lines of 4 transition
// log-probs each (B,E,M,S row order), then four emission lines (for
// B,E,M,S in that order) formatted as "char1:logp1,char2:logp2,...".
// Blank lines and lines starting with '#' are skipped.
func ParseModel(r io.Reader) (*Model, error) {
	lines, err := significantLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) != 1+numStates+numStates {
		return nil, herr.New(herr.ValueError, fmt.Sprintf("hmm model: expected %d lines, got %d", 1+2*numStates, len(lines)))
	}

	var m Model
	start, err := parseFloatRow(lines[0], numStates)
	if err != nil {
		return nil, err
	}
	copy(m.Start[:], start)

	for s := 0; s < numStates; s++ {
		row, err := parseFloatRow(lines[1+s], numStates)
		if err != nil {
			return nil, err
		}
		copy(m.Trans[s][:], row)
	}

	for s := 0; s < numStates; s++ {
		emit, err := parseEmitRow(lines[1+numStates+s])
		if err != nil {
			return nil, err
		}
		m.Emit[s] = emit
	}
	return &m, nil
}

func significantLines(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, herr.Wrap(herr.FileOperationError, "scan hmm model", err)
	}
	return out, nil
}

func parseFloatRow(line string, n int) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) != n {
		return nil, herr.New(herr.ValueError, fmt.Sprintf("hmm model: expected %d fields, got %d", n, len(fields)))
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, herr.Wrap(herr.ValueError, "hmm model: bad float "+f, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseEmitRow(line string) (map[rune]float64, error) {
	emit := make(map[rune]float64)
	if line == "" {
		return emit, nil
	}
	for _, pair := range strings.Split(line, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idx := strings.LastIndexByte(pair, ':')
		if idx < 0 {
			return nil, herr.New(herr.ValueError, "hmm model: bad emit pair "+pair)
		}
		ch, logpStr := pair[:idx], pair[idx+1:]
		runes := []rune(ch)
		if len(runes) != 1 {
			return nil, herr.New(herr.ValueError, "hmm model: emit key must be one codepoint: "+ch)
		}
		logp, err := strconv.ParseFloat(logpStr, 64)
		if err != nil {
			return nil, herr.Wrap(herr.ValueError, "hmm model: bad emit logp "+logpStr, err)
		}
		emit[runes[0]] = logp
	}
	return emit, nil
}
