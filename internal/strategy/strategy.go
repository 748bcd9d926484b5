// Package strategy implements the five segmentation strategies (MP,
// HMM, Mix, Full, Query) that turn a rune sequence into word ranges,
// composing the DAT trie and the HMM Viterbi decoder.
package strategy

import (
	hrunes "github.com/hanzinlp/hanseg/internal/runes"
)

// WordRange is a (left_inclusive, right_inclusive) pair of rune indices
// (spec §4.5).
type WordRange struct {
	Left  int
	Right int
}

// Strategy is the shared shape of every cut algorithm: a pure function
// of the rune slice [begin,end) plus the with_hmm/max_word_len knobs.
type Strategy interface {
	Cut(rs hrunes.String, begin, end int, withHMM bool, maxWordLen int) []WordRange
}

// DefaultMaxWordLength is the canonical jieba value (spec §9).
const DefaultMaxWordLength = 5
