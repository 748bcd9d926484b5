package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hanseg.toml")
	content := `
dict_path = "dict.txt"
user_dict_paths = ["user.txt"]
max_word_length = 6
user_word_weight = "median"
idf_path = "idf.txt"
stop_words_path = "stop.txt"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "dict.txt", c.DictPath)
	require.Equal(t, []string{"user.txt"}, c.UserDictPaths)
	require.Equal(t, 6, c.MaxWordLength)
	require.Equal(t, "median", c.UserWordWeight)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}
