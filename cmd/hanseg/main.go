// Command hanseg is a thin CLI wrapper over the hanseg library:
// segment, tag, or extract keywords from text given as a command-line
// argument, and
// pre-build a dictionary's DAT cache file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	hanseg "github.com/hanzinlp/hanseg"
	"github.com/hanzinlp/hanseg/internal/config"
	"github.com/hanzinlp/hanseg/internal/dict"
)

var (
	cfgPath        string
	dictPath       string
	userDictPaths  []string
	maxWordLength  int
	userWordWeight string
	idfPath        string
	stopWordsPath  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hanseg",
		Short: "Chinese word segmentation and keyword extraction",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to hanseg.toml")
	root.PersistentFlags().StringVar(&dictPath, "dict", "", "default dictionary path")
	root.PersistentFlags().StringArrayVar(&userDictPaths, "user-dict", nil, "user dictionary path (repeatable)")
	root.PersistentFlags().IntVar(&maxWordLength, "max-word-length", 0, "max dictionary word length in characters")
	root.PersistentFlags().StringVar(&userWordWeight, "user-word-weight", "", "min|median|max")
	root.PersistentFlags().StringVar(&idfPath, "idf", "", "IDF dictionary path (extract only)")
	root.PersistentFlags().StringVar(&stopWordsPath, "stop-words", "", "stop-word list path (extract only)")

	root.AddCommand(newCutCmd(), newTagCmd(), newExtractCmd(), newCacheCmd())
	return root
}

func resolvedConfig() (config.Config, error) {
	if cfgPath == "" {
		return config.Config{}, nil
	}
	return config.Load(cfgPath)
}

func buildSegmenter() (*hanseg.Segmenter, error) {
	c, err := resolvedConfig()
	if err != nil {
		return nil, err
	}
	dp := firstNonEmpty(dictPath, c.DictPath)
	if dp == "" {
		return nil, fmt.Errorf("no dictionary path given: pass --dict or set dict_path in --config")
	}

	opts := []hanseg.Option{zapLoggerOption()}
	if paths := firstNonEmptySlice(userDictPaths, c.UserDictPaths); len(paths) > 0 {
		opts = append(opts, hanseg.WithUserDicts(paths...))
	}
	if mwl := firstNonZero(maxWordLength, c.MaxWordLength); mwl > 0 {
		opts = append(opts, hanseg.WithMaxWordLength(mwl))
	}
	if w := firstNonEmpty(userWordWeight, c.UserWordWeight); w != "" {
		opts = append(opts, hanseg.WithUserWordWeight(parseWeightOption(w)))
	}
	if c.CachePath != "" {
		opts = append(opts, hanseg.WithCachePath(c.CachePath))
	}
	if c.HMMModelPath != "" {
		opts = append(opts, hanseg.WithHMMModelPath(c.HMMModelPath))
	}
	return hanseg.New(dp, opts...)
}

func zapLoggerOption() hanseg.Option {
	logger, _ := zap.NewProduction()
	if logger == nil {
		logger = zap.NewNop()
	}
	return hanseg.WithLogger(logger)
}

func parseWeightOption(s string) dict.UserWordWeightOption {
	switch s {
	case "min":
		return dict.WordWeightMin
	case "max":
		return dict.WordWeightMax
	default:
		return dict.WordWeightMedian
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmptySlice(slices ...[]string) []string {
	for _, s := range slices {
		if len(s) > 0 {
			return s
		}
	}
	return nil
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
