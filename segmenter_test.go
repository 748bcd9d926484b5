package hanseg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeCanonicalDict(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "dict.txt")
	lines := []string{
		"小明 2 nr", "硕士 5 n", "毕业 8 v", "于 100 p",
		"中国科学院 3 ns", "中国 500 ns", "科学 200 n", "学院 150 n",
		"科学院 30 n", "计算所 10 n", "我 300 r", "来到 80 v",
		"北京 400 ns", "清华 60 nz", "清华大学 20 nt", "华大 5 nz",
		"大学 250 n",
	}
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestSegmenter(t *testing.T) *Segmenter {
	t.Helper()
	dir := t.TempDir()
	dictPath := writeCanonicalDict(t, dir)
	s, err := New(dictPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCutScenario1MPWords(t *testing.T) {
	s := newTestSegmenter(t)
	got := s.Cut("小明硕士毕业于中国科学院计算所", true)
	require.Equal(t, []string{"小明", "硕士", "毕业", "于", "中国科学院", "计算所"}, got)
}

func TestCutFullScenario3(t *testing.T) {
	s := newTestSegmenter(t)
	got := s.CutFull("我来到北京清华大学")
	require.Equal(t, []string{"我", "来到", "北京", "清华", "清华大学", "华大", "大学"}, got)
}

func TestCutQueryScenario4(t *testing.T) {
	s := newTestSegmenter(t)
	got := s.CutQuery("小明硕士毕业于中国科学院计算所", true)
	require.Contains(t, got, "中国科学院")
	require.Contains(t, got, "中国")
	require.Contains(t, got, "科学")
	require.Contains(t, got, "学院")
	require.Contains(t, got, "科学院")
}

func TestCutRangesCoverWholeInput(t *testing.T) {
	s := newTestSegmenter(t)
	text := "小明硕士毕业于中国科学院计算所"
	ranges := s.CutRanges(text, true)
	require.Equal(t, 0, ranges[0][0])
	for i := 1; i < len(ranges); i++ {
		require.Equal(t, ranges[i-1][1], ranges[i][0])
	}
	require.Equal(t, len(text), ranges[len(ranges)-1][1])
}

func TestTagAssignsNonEmptyTagToEveryWord(t *testing.T) {
	s := newTestSegmenter(t)
	tagged := s.Tag("小明硕士毕业")
	require.NotEmpty(t, tagged)
	for _, tw := range tagged {
		require.NotEmpty(t, tw.Tag)
	}
}

func TestSuggestFrequencyIsPositive(t *testing.T) {
	s := newTestSegmenter(t)
	freq := s.SuggestFrequency("中国科学院")
	require.Greater(t, freq, 0.0)
}

func TestCutParallelMatchesSequentialOrdered(t *testing.T) {
	s := newTestSegmenter(t)
	text := "小明硕士毕业于中国科学院计算所"
	sequential := s.Cut(text, true)
	parallel := s.CutParallel(text, true, 4, true)
	require.Equal(t, sequential, parallel)
}

func TestNewKeywordExtractorRanksTopWord(t *testing.T) {
	dir := t.TempDir()
	dictPath := writeCanonicalDict(t, dir)
	s, err := New(dictPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	idfPath := filepath.Join(dir, "idf.txt")
	require.NoError(t, os.WriteFile(idfPath, []byte("中国科学院 9.0\n计算所 5.0\n小明 4.0\n硕士 3.0\n毕业 2.0\n"), 0644))
	stopPath := filepath.Join(dir, "stop.txt")
	require.NoError(t, os.WriteFile(stopPath, []byte("于\n"), 0644))

	ex, err := s.NewKeywordExtractor(idfPath, stopPath)
	require.NoError(t, err)

	results := ex.Extract("小明硕士毕业于中国科学院计算所", 3)
	require.NotEmpty(t, results)
	require.Equal(t, "中国科学院", results[0].Word)
}

func TestEmptyInputYieldsEmptyOutput(t *testing.T) {
	s := newTestSegmenter(t)
	require.Empty(t, s.Cut("", true))
	require.Empty(t, s.CutRanges("", true))
}
