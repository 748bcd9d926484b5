// Package hanseg segments UTF-8 Chinese text into words and extracts
// TF-IDF keywords. It composes a double-array trie dictionary
// (internal/dat), a four-state HMM Viterbi decoder (internal/hmm), and
// the MP/HMM/Mix/Full/Query segmentation strategies (internal/strategy)
// behind a single Segmenter type.
package hanseg

import (
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/hanzinlp/hanseg/internal/dict"
	"github.com/hanzinlp/hanseg/internal/hmm"
	"github.com/hanzinlp/hanseg/internal/keyword"
	hrunes "github.com/hanzinlp/hanseg/internal/runes"
	"github.com/hanzinlp/hanseg/internal/strategy"
)

// Segmenter is the immutable, concurrently-readable facade over a
// loaded dictionary and HMM model. Construct one with New and reuse it
// across calls and goroutines; it holds no mutable state after
// construction (spec.md §5).
type Segmenter struct {
	dictionary *dict.Dictionary
	model      *hmm.Model
	maxWordLen int
	logger     *zap.Logger

	mp    *strategy.MPSegment
	hmmS  *strategy.HMMSegment
	mix   *strategy.MixSegment
	full  *strategy.FullSegment
	query *strategy.QuerySegment
}

// Option configures New.
type Option func(*config)

type config struct {
	userDictPaths []string
	cachePath     string
	weightOption  dict.UserWordWeightOption
	maxWordLen    int
	hmmModelPath  string
	logger        *zap.Logger
}

// WithUserDicts adds one or more user dictionary files.
func WithUserDicts(paths ...string) Option {
	return func(c *config) { c.userDictPaths = append(c.userDictPaths, paths...) }
}

// WithCachePath overrides the default "<dict>.<md5>.<opt>.dat_cache" path.
func WithCachePath(path string) Option {
	return func(c *config) { c.cachePath = path }
}

// WithUserWordWeight selects how user words with no explicit frequency
// are weighted.
func WithUserWordWeight(opt dict.UserWordWeightOption) Option {
	return func(c *config) { c.weightOption = opt }
}

// WithMaxWordLength overrides strategy.DefaultMaxWordLength.
func WithMaxWordLength(n int) Option {
	return func(c *config) { c.maxWordLen = n }
}

// WithHMMModelPath loads the HMM model from a file instead of the
// embedded default.
func WithHMMModelPath(path string) Option {
	return func(c *config) { c.hmmModelPath = path }
}

// WithLogger attaches a zap logger for construction and self-heal
// events; defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// New builds a Segmenter from a default dictionary path and options.
// Construction is the only blocking operation in this package: it
// reads dictionary files, computes MD5, builds or reopens the DAT
// cache, and mmaps it (spec.md §5).
func New(dictPath string, opts ...Option) (*Segmenter, error) {
	c := config{maxWordLen: strategy.DefaultMaxWordLength, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&c)
	}

	d, err := dict.Load(dict.Options{
		DictPath:      dictPath,
		UserDictPaths: c.userDictPaths,
		CachePath:     c.cachePath,
		WeightOption:  c.weightOption,
		Logger:        c.logger,
	})
	if err != nil {
		return nil, err
	}
	if err := d.Trie.EnableHotCache(0); err != nil {
		d.Trie.Close()
		return nil, err
	}

	var model *hmm.Model
	if c.hmmModelPath != "" {
		f, ferr := os.Open(c.hmmModelPath)
		if ferr != nil {
			d.Trie.Close()
			return nil, ferr
		}
		model, err = hmm.ParseModel(f)
		f.Close()
	} else {
		model, err = hmm.DefaultModel()
	}
	if err != nil {
		d.Trie.Close()
		return nil, err
	}

	s := &Segmenter{dictionary: d, model: model, maxWordLen: c.maxWordLen, logger: c.logger}
	s.mp = &strategy.MPSegment{Trie: d.Trie}
	s.hmmS = &strategy.HMMSegment{Model: model}
	s.mix = &strategy.MixSegment{MP: s.mp, HMM: s.hmmS, UserSingleCharSet: d.UserSingleCharSet}
	s.full = &strategy.FullSegment{Trie: d.Trie}
	s.query = &strategy.QuerySegment{Mix: s.mix, Trie: d.Trie}
	return s, nil
}

// Close releases the DAT's mmap'd cache file.
func (s *Segmenter) Close() error {
	return s.dictionary.Trie.Close()
}

// Cut segments text with MixSegment, returning words as strings
// (spec.md §6). Empty input yields empty output, never an error.
func (s *Segmenter) Cut(text string, withHMM bool) []string {
	rs := hrunes.Decode([]byte(text))
	ranges := s.mix.Cut(rs, 0, rs.Len(), withHMM, s.maxWordLen)
	return wordsOf(rs, ranges)
}

// CutRanges segments text and returns byte-offset ranges [begin,end)
// per word, suitable for highlighting spans in the original string.
func (s *Segmenter) CutRanges(text string, withHMM bool) [][2]int {
	rs := hrunes.Decode([]byte(text))
	ranges := s.mix.Cut(rs, 0, rs.Len(), withHMM, s.maxWordLen)
	out := make([][2]int, len(ranges))
	for i, r := range ranges {
		out[i] = [2]int{rs.Runes[r.Left].ByteOffset, rs.Runes[r.Right].ByteOffset + int(rs.Runes[r.Right].ByteLength)}
	}
	return out
}

// CutFull runs FullSegment (spec.md §4.5.4).
func (s *Segmenter) CutFull(text string) []string {
	rs := hrunes.Decode([]byte(text))
	ranges := s.full.Cut(rs, 0, rs.Len(), false, s.maxWordLen)
	return wordsOf(rs, ranges)
}

// CutQuery runs QuerySegment (spec.md §4.5.5).
func (s *Segmenter) CutQuery(text string, withHMM bool) []string {
	rs := hrunes.Decode([]byte(text))
	ranges := s.query.Cut(rs, 0, rs.Len(), withHMM, s.maxWordLen)
	return wordsOf(rs, ranges)
}

// NewKeywordExtractor loads an IDF dictionary and stop-word list and
// returns a keyword.Extractor wired to this Segmenter's Mix strategy
// (spec.md §4.6). The returned extractor is independent of s after
// construction and may be used concurrently.
func (s *Segmenter) NewKeywordExtractor(idfPath, stopWordsPath string) (*keyword.Extractor, error) {
	return keyword.NewExtractor(s.mix, s.maxWordLen, idfPath, stopWordsPath, s.logger)
}

// Tag runs Mix segmentation and resolves a POS tag per word, falling
// back to strategy.FallbackTag for HMM-derived OOV tokens (supplemented
// from cppjieba's PosTagger per SPEC_FULL.md §7).
func (s *Segmenter) Tag(text string) []strategy.TaggedWord {
	rs := hrunes.Decode([]byte(text))
	ranges := s.mix.Cut(rs, 0, rs.Len(), true, s.maxWordLen)
	return strategy.Tag(s.dictionary.Trie, rs, ranges)
}

// SuggestFrequency estimates a natural frequency for word by
// MP-segmenting it against the loaded dictionary and multiplying the
// product of its sub-piece weights back out; a piece with no dictionary
// entry contributes the dictionary's floor weight. It never mutates the loaded DAT — per
// spec.md §1's Non-goals, dictionary mutation after construction is
// out of scope, so this only suggests a number for a caller assembling
// a user-dictionary line by hand (supplemented from the teacher's
// Tokenizer.AddWord/suggestFreq per SPEC_FULL.md §7).
func (s *Segmenter) SuggestFrequency(word string) float64 {
	rs := hrunes.Decode([]byte(word))
	ranges := s.mp.Cut(rs, 0, rs.Len(), false, s.maxWordLen)
	logSum := 0.0
	for _, r := range ranges {
		key := hrunes.Encode(rs, r.Left, r.Right+1)
		if elem, ok := s.dictionary.Trie.FindExact(key); ok {
			logSum += elem.Weight
		} else {
			logSum += s.dictionary.Trie.MinWeight()
		}
	}
	return math.Exp(logSum)
}

func wordsOf(rs hrunes.String, ranges []strategy.WordRange) []string {
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = string(hrunes.Encode(rs, r.Left, r.Right+1))
	}
	return out
}
