package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var topN int

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [text]",
		Short: "Extract top-N TF-IDF keywords from text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSegmenter()
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := resolvedConfig()
			if err != nil {
				return err
			}
			idf := firstNonEmpty(idfPath, c.IDFPath)
			stop := firstNonEmpty(stopWordsPath, c.StopWordsPath)
			if idf == "" || stop == "" {
				return fmt.Errorf("extract requires --idf and --stop-words (or idf_path/stop_words_path in --config)")
			}

			ex, err := s.NewKeywordExtractor(idf, stop)
			if err != nil {
				return err
			}
			for _, kw := range ex.Extract(args[0], topN) {
				fmt.Printf("%s\t%.4f\n", kw.Word, kw.Weight)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&topN, "top-n", 10, "number of keywords to return")
	return cmd
}
