// Package keyword implements TF-IDF keyword extraction over a mixed
// segmentation, with stop-word filtering (spec §4.6).
package keyword

import (
	"bufio"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hanzinlp/hanseg/internal/herr"
	hrunes "github.com/hanzinlp/hanseg/internal/runes"
	"github.com/hanzinlp/hanseg/internal/strategy"
)

// Keyword is one ranked result: the word, its TF×IDF weight, and the
// byte offsets at which it occurred.
type Keyword struct {
	Word    string
	Weight  float64
	Offsets []int
}

// Extractor holds the loaded IDF table and stop-word set plus the Mix
// strategy it cuts sentences with.
type Extractor struct {
	Mix        *strategy.MixSegment
	MaxWordLen int
	IDF        map[string]float64
	IDFAverage float64
	StopWords  map[string]bool
	Logger     *zap.Logger
}

// NewExtractor loads idfPath ("word<SP>idf" per line) and stopWordsPath
// (one word per line) and wires them to mix for segmentation. Always
// returns on success — spec §9's "KeywordExtractor::Create forgets to
// return" bug is not reproduced.
func NewExtractor(mix *strategy.MixSegment, maxWordLen int, idfPath, stopWordsPath string, logger *zap.Logger) (*Extractor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	idf, avg, err := loadIDF(idfPath)
	if err != nil {
		return nil, err
	}
	stop, err := loadStopWords(stopWordsPath)
	if err != nil {
		return nil, err
	}
	return &Extractor{Mix: mix, MaxWordLen: maxWordLen, IDF: idf, IDFAverage: avg, StopWords: stop, Logger: logger}, nil
}

func loadIDF(path string) (map[string]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, herr.Wrap(herr.OpenFileFailed, "open idf dict", err)
	}
	defer f.Close()

	idf := make(map[string]float64)
	var sum float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, 0, herr.New(herr.ValueError, "idf dict: expected 2 fields: "+line)
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, 0, herr.Wrap(herr.ValueError, "idf dict: bad value", err)
		}
		idf[fields[0]] = v
		sum += v
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, herr.Wrap(herr.FileOperationError, "scan idf dict", err)
	}
	if len(idf) == 0 {
		return nil, 0, herr.New(herr.ValueError, "empty idf dict")
	}
	return idf, sum / float64(len(idf)), nil
}

func loadStopWords(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, herr.Wrap(herr.OpenFileFailed, "open stop words", err)
	}
	defer f.Close()

	out := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}
		out[w] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, herr.Wrap(herr.FileOperationError, "scan stop words", err)
	}
	return out, nil
}

type aggregate struct {
	count   float64
	offsets []int
}

// Extract implements spec §4.6's extract(sentence, top_n): Mix-cut,
// drop single-char tokens and stop words, aggregate by count, weight
// by IDF (falling back to IDFAverage), and return the top_n entries
// descending by weight.
func (e *Extractor) Extract(sentence string, topN int) []Keyword {
	rs := hrunes.Decode([]byte(sentence))
	ranges := e.Mix.Cut(rs, 0, rs.Len(), true, e.MaxWordLen)

	wordmap := make(map[string]*aggregate)
	var order []string
	cumulative := 0
	for _, r := range ranges {
		key := hrunes.Encode(rs, r.Left, r.Right+1)
		word := string(key)
		offset := cumulative
		cumulative += len(key)

		if r.Right == r.Left {
			continue // single-character token, dropped per spec §4.6 step 2
		}
		if e.StopWords[word] {
			continue
		}
		agg, ok := wordmap[word]
		if !ok {
			agg = &aggregate{}
			wordmap[word] = agg
			order = append(order, word)
		}
		agg.count++
		agg.offsets = append(agg.offsets, offset)
	}

	if cumulative != len(sentence) {
		e.Logger.Error("keyword offset integrity check failed",
			zap.Int("cumulative", cumulative), zap.Int("want", len(sentence)))
	}

	results := make([]Keyword, 0, len(order))
	for _, word := range order {
		agg := wordmap[word]
		idf, ok := e.IDF[word]
		if !ok {
			idf = e.IDFAverage
		}
		results = append(results, Keyword{Word: word, Weight: agg.count * idf, Offsets: agg.offsets})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Weight > results[j].Weight })

	if topN < 0 {
		topN = 0
	}
	if topN < len(results) {
		results = results[:topN]
	}
	return results
}
