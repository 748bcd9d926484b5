package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	noHMM    bool
	fullMode bool
	query    bool
)

func newCutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cut [text]",
		Short: "Segment text into words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSegmenter()
			if err != nil {
				return err
			}
			defer s.Close()

			text := args[0]
			var words []string
			switch {
			case fullMode:
				words = s.CutFull(text)
			case query:
				words = s.CutQuery(text, !noHMM)
			default:
				words = s.Cut(text, !noHMM)
			}
			fmt.Println(strings.Join(words, " / "))
			return nil
		},
	}
	cmd.Flags().BoolVar(&noHMM, "no-hmm", false, "disable HMM participation in Mix/Query cuts")
	cmd.Flags().BoolVar(&fullMode, "full", false, "use FullSegment instead of Mix")
	cmd.Flags().BoolVar(&query, "query", false, "use QuerySegment instead of Mix")
	return cmd
}
