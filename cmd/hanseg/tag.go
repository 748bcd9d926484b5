package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag [text]",
		Short: "Segment text and print each word's part-of-speech tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSegmenter()
			if err != nil {
				return err
			}
			defer s.Close()

			for _, tw := range s.Tag(args[0]) {
				fmt.Printf("%s/%s ", tw.Word, tw.Tag)
			}
			fmt.Println()
			return nil
		},
	}
}
