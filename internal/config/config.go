// Package config loads the optional hanseg.toml configuration file
// used by cmd/hanseg. The library itself never requires a config file;
// the dictionary, cache, HMM and word-length settings have functional-option
// equivalents on hanseg.New, and the IDF and stop-word paths are arguments
// of Segmenter.NewKeywordExtractor.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/hanzinlp/hanseg/internal/herr"
)

// Config mirrors the options accepted by hanseg.New plus the keyword
// extractor's IDF and stop-word paths.
type Config struct {
	DictPath      string   `toml:"dict_path"`
	UserDictPaths []string `toml:"user_dict_paths"`
	CachePath     string   `toml:"cache_path"`
	HMMModelPath  string   `toml:"hmm_model_path"`
	MaxWordLength int      `toml:"max_word_length"`
	UserWordWeight string  `toml:"user_word_weight"` // "min" | "median" | "max"
	IDFPath       string   `toml:"idf_path"`
	StopWordsPath string   `toml:"stop_words_path"`
}

// Load parses path as TOML into a Config. Missing fields keep their
// zero value; callers apply their own defaults on top.
func Load(path string) (Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return c, herr.Wrap(herr.ValueError, "decode config file", err)
	}
	return c, nil
}
