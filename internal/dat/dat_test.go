package dat

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	hrunes "github.com/hanzinlp/hanseg/internal/runes"
)

func sampleElements() []Element {
	return []Element{
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
		{Word: "计", Tag: "n", Weight: -6.0},
	}
}

func TestFindExact(t *testing.T) {
	trie, err := NewInMemory(sampleElements(), -20)
	require.NoError(t, err)

	elem, ok := trie.FindExact([]byte("小明"))
	require.True(t, ok)
	require.Equal(t, "nr", elem.TagString())

	_, ok = trie.FindExact([]byte("不存在"))
	require.False(t, ok)
}

func TestFindAllPrefixesCommonPrefixes(t *testing.T) {
	trie, err := NewInMemory(sampleElements(), -20)
	require.NoError(t, err)

	text := "中国科学院计算所"
	rs := hrunes.Decode([]byte(text))
	dag := make([]DagCell, rs.Len())
	trie.FindAllPrefixes(rs, 0, rs.Len(), 5, dag)

	// position 0 ("中") should match 中国 and 中国科学院 (len<=5); 中 alone is not a word here
	var nexts []int
	for _, tr := range dag[0].Nexts {
		nexts = append(nexts, tr.NextPos)
	}
	require.Contains(t, nexts, 2) // 中国
	require.Contains(t, nexts, 5) // 中国科学院
}

func TestDuplicateKeysKeepHighestWeight(t *testing.T) {
	elements := []Element{
		{Word: "重复", Tag: "n", Weight: -5.0},
		{Word: "重复", Tag: "n", Weight: -1.0}, // higher weight, should win
	}
	trie, err := NewInMemory(elements, -20)
	require.NoError(t, err)
	elem, ok := trie.FindExact([]byte("重复"))
	require.True(t, ok)
	require.Equal(t, -1.0, elem.Weight)
}

func TestCacheBuildOpenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "test.dat_cache")
	md5 := "0123456789abcdef0123456789abcdef"

	err := BuildAndPersist(sampleElements(), -20, cachePath, md5, zap.NewNop())
	require.NoError(t, err)

	trie, err := Open(cachePath, md5)
	require.NoError(t, err)
	defer trie.Close()

	elem, ok := trie.FindExact([]byte("小明"))
	require.True(t, ok)
	require.InDelta(t, -8.1, elem.Weight, 1e-9)
	require.Equal(t, math.Round(trie.MinWeight()), math.Round(-20.0))
}

func TestCacheOpenMd5Mismatch(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "test.dat_cache")
	md5 := "0123456789abcdef0123456789abcdef"
	require.NoError(t, BuildAndPersist(sampleElements(), -20, cachePath, md5, zap.NewNop()))

	_, err := Open(cachePath, "ffffffffffffffffffffffffffffffff")
	require.Error(t, err)
}

func TestCacheOpenLengthMismatch(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "test.dat_cache")
	md5 := "0123456789abcdef0123456789abcdef"
	require.NoError(t, BuildAndPersist(sampleElements(), -20, cachePath, md5, zap.NewNop()))

	f, err := os.OpenFile(cachePath, os.O_WRONLY|os.O_APPEND, 0644)
	require.NoError(t, err)
	_, _ = f.Write([]byte{1, 2, 3})
	require.NoError(t, f.Close())

	_, err = Open(cachePath, md5)
	require.Error(t, err)
}

func TestFindExactCachedMatchesFindExact(t *testing.T) {
	trie, err := NewInMemory(sampleElements(), -20)
	require.NoError(t, err)
	require.NoError(t, trie.EnableHotCache(0))

	elem, ok := trie.FindExactCached([]byte("小明"))
	require.True(t, ok)
	require.Equal(t, "nr", elem.TagString())

	// second lookup should hit the cached entry, not just recompute it
	elem2, ok := trie.FindExactCached([]byte("小明"))
	require.True(t, ok)
	require.Equal(t, elem, elem2)

	_, ok = trie.FindExactCached([]byte("不存在"))
	require.False(t, ok)
	_, ok = trie.FindExactCached([]byte("不存在"))
	require.False(t, ok)
}

func TestFindExactCachedWithoutEnableDegradesToPlain(t *testing.T) {
	trie, err := NewInMemory(sampleElements(), -20)
	require.NoError(t, err)

	elem, ok := trie.FindExactCached([]byte("小明"))
	require.True(t, ok)
	require.Equal(t, "nr", elem.TagString())
}

func TestHashFilesEmptyUserDict(t *testing.T) {
	dir := t.TempDir()
	dictPath := filepath.Join(dir, "dict.txt")
	require.NoError(t, os.WriteFile(dictPath, []byte("word 1 n\n"), 0644))

	sum1, _, err := HashFiles(dictPath, "")
	require.NoError(t, err)
	sum2, _, err := HashFiles(dictPath)
	require.NoError(t, err)
	require.Equal(t, sum2, sum1)
}
