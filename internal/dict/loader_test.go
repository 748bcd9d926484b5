package dict

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hanzinlp/hanseg/internal/dat"
)

func writeTestDict(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "dict.txt")
	content := "小明 2 nr\n硕士 5 n\n毕业 8 v\n于 100 p\n中国科学院 3 ns\n中国 500 ns\n科学 200 n\n学院 150 n\n科学院 30 n\n计算所 10 n\n计 20 n\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadBuildsCacheAndFindsWords(t *testing.T) {
	dir := t.TempDir()
	dictPath := writeTestDict(t, dir)

	d, err := Load(Options{DictPath: dictPath})
	require.NoError(t, err)
	defer d.Trie.Close()

	elem, ok := d.Trie.FindExact([]byte("中国"))
	require.True(t, ok)
	require.Equal(t, "ns", elem.TagString())
	require.Empty(t, d.UserSingleCharSet)
}

func TestLoadReopensExistingCache(t *testing.T) {
	dir := t.TempDir()
	dictPath := writeTestDict(t, dir)

	d1, err := Load(Options{DictPath: dictPath})
	require.NoError(t, err)
	d1.Trie.Close()

	d2, err := Load(Options{DictPath: dictPath})
	require.NoError(t, err)
	defer d2.Trie.Close()

	_, ok := d2.Trie.FindExact([]byte("硕士"))
	require.True(t, ok)
}

func TestLoadUserDictAddsSingleCharSet(t *testing.T) {
	dir := t.TempDir()
	dictPath := writeTestDict(t, dir)
	userPath := filepath.Join(dir, "user.txt")
	require.NoError(t, os.WriteFile(userPath, []byte("云 5 n\n凱 n\n蘋果派\n"), 0644))

	d, err := Load(Options{DictPath: dictPath, UserDictPaths: []string{userPath}})
	require.NoError(t, err)
	defer d.Trie.Close()

	_, ok := d.Trie.FindExact([]byte("蘋果派"))
	require.True(t, ok)
	require.True(t, d.UserSingleCharSet['云'])
	require.True(t, d.UserSingleCharSet['凱'])
	require.False(t, d.UserSingleCharSet['派'])
}

func TestPickUserDefaultWeightVariants(t *testing.T) {
	elems := []dat.Element{
		{Word: "a", Weight: -3.0},
		{Word: "b", Weight: -1.0},
		{Word: "c", Weight: -2.0},
	}
	require.Equal(t, -3.0, pickUserDefaultWeight(elems, WordWeightMin))
	require.Equal(t, -1.0, pickUserDefaultWeight(elems, WordWeightMax))
	require.Equal(t, -2.0, pickUserDefaultWeight(elems, WordWeightMedian))
}
