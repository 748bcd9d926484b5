package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hanzinlp/hanseg/internal/dat"
	"github.com/hanzinlp/hanseg/internal/hmm"
	hrunes "github.com/hanzinlp/hanseg/internal/runes"
)

func canonicalElements() []dat.Element {
	return []dat.Element{
		{Word: "小明", Tag: "nr", Weight: -8.1},
		{Word: "硕士", Tag: "n", Weight: -9.2},
		{Word: "毕业", Tag: "v", Weight: -9.0},
		{Word: "于", Tag: "p", Weight: -4.0},
		{Word: "中国科学院", Tag: "ns", Weight: -10.5},
		{Word: "中国", Tag: "ns", Weight: -7.0},
		{Word: "科学", Tag: "n", Weight: -7.5},
		{Word: "学院", Tag: "n", Weight: -7.7},
		{Word: "科学院", Tag: "n", Weight: -9.8},
		{Word: "计算所", Tag: "n", Weight: -10.1},
		{Word: "我", Tag: "r", Weight: -5.0},
		{Word: "来到", Tag: "v", Weight: -8.5},
		{Word: "北京", Tag: "ns", Weight: -7.3},
		{Word: "清华", Tag: "nz", Weight: -9.1},
		{Word: "清华大学", Tag: "nt", Weight: -10.8},
		{Word: "华大", Tag: "nz", Weight: -11.0},
		{Word: "大学", Tag: "n", Weight: -7.9},
	}
}

func wordsFromRanges(text string, rs hrunes.String, ranges []WordRange) []string {
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = string(hrunes.Encode(rs, r.Left, r.Right+1))
	}
	return out
}

func TestMPSegmentScenario1(t *testing.T) {
	trie, err := dat.NewInMemory(canonicalElements(), -20)
	require.NoError(t, err)
	defer trie.Close()

	text := "小明硕士毕业于中国科学院计算所"
	rs := hrunes.Decode([]byte(text))
	mp := &MPSegment{Trie: trie}
	ranges := mp.Cut(rs, 0, rs.Len(), false, DefaultMaxWordLength)

	got := wordsFromRanges(text, rs, ranges)
	require.Equal(t, []string{"小明", "硕士", "毕业", "于", "中国科学院", "计算所"}, got)
}

func TestFullSegmentScenario3(t *testing.T) {
	trie, err := dat.NewInMemory(canonicalElements(), -20)
	require.NoError(t, err)
	defer trie.Close()

	text := "我来到北京清华大学"
	rs := hrunes.Decode([]byte(text))
	full := &FullSegment{Trie: trie}
	ranges := full.Cut(rs, 0, rs.Len(), false, DefaultMaxWordLength)

	got := wordsFromRanges(text, rs, ranges)
	require.Equal(t, []string{"我", "来到", "北京", "清华", "清华大学", "华大", "大学"}, got)
}

func TestQuerySegmentScenario4SubWords(t *testing.T) {
	trie, err := dat.NewInMemory(canonicalElements(), -20)
	require.NoError(t, err)
	defer trie.Close()

	text := "中国科学院"
	rs := hrunes.Decode([]byte(text))
	mp := &MPSegment{Trie: trie}
	m, err := hmm.DefaultModel()
	require.NoError(t, err)
	mix := &MixSegment{MP: mp, HMM: &HMMSegment{Model: m}, UserSingleCharSet: map[rune]bool{}}
	query := &QuerySegment{Mix: mix, Trie: trie}

	ranges := query.Cut(rs, 0, rs.Len(), true, DefaultMaxWordLength)
	got := wordsFromRanges(text, rs, ranges)

	require.Contains(t, got, "中国科学院")
	require.Contains(t, got, "中国")
	require.Contains(t, got, "科学")
	require.Contains(t, got, "学院")
	require.Contains(t, got, "科学院")
}

func TestWordRangesPartitionInput(t *testing.T) {
	trie, err := dat.NewInMemory(canonicalElements(), -20)
	require.NoError(t, err)
	defer trie.Close()

	text := "小明硕士毕业于中国科学院计算所"
	rs := hrunes.Decode([]byte(text))
	mp := &MPSegment{Trie: trie}
	ranges := mp.Cut(rs, 0, rs.Len(), false, DefaultMaxWordLength)

	require.Equal(t, 0, ranges[0].Left)
	for i := 1; i < len(ranges); i++ {
		require.Equal(t, ranges[i-1].Right+1, ranges[i].Left)
		require.Less(t, ranges[i-1].Left, ranges[i].Left)
	}
	require.Equal(t, rs.Len()-1, ranges[len(ranges)-1].Right)
}
