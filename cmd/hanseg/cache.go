package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hanzinlp/hanseg/internal/dict"
)

func newCacheCmd() *cobra.Command {
	cache := &cobra.Command{
		Use:   "cache",
		Short: "Manage the DAT dictionary cache file",
	}
	cache.AddCommand(newCacheBuildCmd())
	return cache
}

func newCacheBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build (or rebuild, if stale) the DAT cache for the configured dictionary",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolvedConfig()
			if err != nil {
				return err
			}
			dp := firstNonEmpty(dictPath, c.DictPath)
			if dp == "" {
				return fmt.Errorf("no dictionary path given: pass --dict or set dict_path in --config")
			}
			logger, _ := zap.NewProduction()
			if logger == nil {
				logger = zap.NewNop()
			}

			d, err := dict.Load(dict.Options{
				DictPath:      dp,
				UserDictPaths: firstNonEmptySlice(userDictPaths, c.UserDictPaths),
				CachePath:     c.CachePath,
				WeightOption:  parseWeightOption(firstNonEmpty(userWordWeight, c.UserWordWeight)),
				Logger:        logger,
			})
			if err != nil {
				return err
			}
			defer d.Trie.Close()
			fmt.Printf("cache built: %d elements, min_weight=%g\n", d.Trie.ElementsNum(), d.Trie.MinWeight())
			return nil
		},
	}
}
