package hmm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	hrunes "github.com/hanzinlp/hanseg/internal/runes"
)

func TestDefaultModelParses(t *testing.T) {
	m, err := DefaultModel()
	require.NoError(t, err)
	require.Len(t, m.Emit[B], len(m.Emit[E]))
	require.NotZero(t, m.Start[B])
}

func TestParseModelRejectsWrongLineCount(t *testing.T) {
	_, err := ParseModel(strings.NewReader("0 0 0 0\n"))
	require.Error(t, err)
}

func TestParseModelSkipsCommentsAndBlankLines(t *testing.T) {
	text := `
# a comment
-0.1 -1 -1 -1

-1 -0.2 -1 -1
-0.3 -1 -1 -1
-1 -0.4 -1 -1
-1 -1 -0.5 -1
甲:-0.1,乙:-0.2
甲:-0.2,乙:-0.1
甲:-0.3
甲:-0.4
`
	m, err := ParseModel(strings.NewReader(text))
	require.NoError(t, err)
	require.InDelta(t, -0.1, m.Emit[B]['甲'], 1e-9)
}

func TestEmissionFallsBackToMinDouble(t *testing.T) {
	m := &Model{Emit: [4]map[rune]float64{{}, {}, {}, {}}}
	require.Equal(t, MinDouble, m.Emission(B, '未'))
}

func TestDecodeAndCutPointsOnKnownSpan(t *testing.T) {
	m, err := DefaultModel()
	require.NoError(t, err)

	rs := hrunes.Decode([]byte("杭研"))
	states := m.Decode(rs, 0, rs.Len())
	require.Len(t, states, 2)

	ranges := CutPoints(states)
	require.NotEmpty(t, ranges)
	require.Equal(t, 0, ranges[0][0])
	last := ranges[len(ranges)-1]
	require.Equal(t, rs.Len(), last[1])
}
