package strategy

import (
	"github.com/hanzinlp/hanseg/internal/dat"
	hrunes "github.com/hanzinlp/hanseg/internal/runes"
)

// TaggedWord pairs a segmented word with its part-of-speech tag.
type TaggedWord struct {
	Word string
	Tag  string
}

// FallbackTag is assigned to any word range that isn't an exact
// dictionary hit — almost always an HMM-derived OOV token.
const FallbackTag = "x"

// Tag resolves a POS tag for every range in ranges by an exact DAT
// lookup, falling back to FallbackTag for anything the dictionary
// doesn't recognise (spec.md §6's tag(text) surface, supplemented from
// cppjieba's PosTagger per SPEC_FULL.md §7).
func Tag(trie *dat.Trie, rs hrunes.String, ranges []WordRange) []TaggedWord {
	out := make([]TaggedWord, len(ranges))
	for i, r := range ranges {
		key := hrunes.Encode(rs, r.Left, r.Right+1)
		word := string(key)
		tag := FallbackTag
		if elem, ok := trie.FindExactCached(key); ok {
			if t := elem.TagString(); t != "" {
				tag = t
			}
		}
		out[i] = TaggedWord{Word: word, Tag: tag}
	}
	return out
}
