// Package dict loads the default and user dictionaries, normalises raw
// frequencies into natural log-probabilities, and builds (or reopens) the
// DAT cache described in internal/dat.
package dict

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hanzinlp/hanseg/internal/dat"
	"github.com/hanzinlp/hanseg/internal/herr"
	hrunes "github.com/hanzinlp/hanseg/internal/runes"
)

// UserWordWeightOption selects how a user-dictionary word with no
// explicit frequency is weighted.
type UserWordWeightOption int

const (
	WordWeightMin UserWordWeightOption = iota
	WordWeightMedian
	WordWeightMax
)

func (o UserWordWeightOption) String() string {
	switch o {
	case WordWeightMin:
		return "min"
	case WordWeightMax:
		return "max"
	default:
		return "median"
	}
}

// Dictionary is the loaded, queryable result: a DAT trie plus the set of
// single-character words contributed by user dictionaries (needed by
// MixSegment to decide whether a singleton MP result should still be
// handed to the HMM).
type Dictionary struct {
	Trie                *dat.Trie
	UserSingleCharSet   map[rune]bool
	TotalDictByteLength int64
}

// Options configures Load.
type Options struct {
	DictPath      string
	UserDictPaths []string
	CachePath     string // if empty, derived from DictPath+md5+option
	WeightOption  UserWordWeightOption
	Logger        *zap.Logger
}

// Load implements spec §4.3: compute the MD5 cache key over the default
// and user dictionary contents, attach an existing valid cache, or parse
// the dictionaries fresh, normalise weights to log-probabilities, and
// build a new cache.
func Load(opts Options) (*Dictionary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	hashPaths := append([]string{opts.DictPath}, opts.UserDictPaths...)
	md5Hex, totalLen, err := dat.HashFiles(hashPaths...)
	if err != nil {
		return nil, err
	}

	cachePath := opts.CachePath
	if cachePath == "" {
		cachePath = fmt.Sprintf("%s.%s.%d.dat_cache", opts.DictPath, md5Hex, int(opts.WeightOption))
	}

	userSingle, err := scanUserSingleChars(opts.UserDictPaths)
	if err != nil {
		return nil, err
	}

	if trie, err := dat.Open(cachePath, md5Hex); err == nil {
		logger.Info("dict cache hit", zap.String("path", cachePath))
		return &Dictionary{Trie: trie, UserSingleCharSet: userSingle, TotalDictByteLength: totalLen}, nil
	} else {
		logger.Info("dict cache miss, rebuilding", zap.Error(err))
	}

	defaultElems, err := loadDefaultDict(opts.DictPath)
	if err != nil {
		return nil, err
	}

	freqSum, minWeight, maxWeight := calculateWeights(defaultElems)
	_ = maxWeight

	userDefaultWeight := pickUserDefaultWeight(defaultElems, opts.WeightOption)

	userElems, err := loadUserDicts(opts.UserDictPaths, freqSum, userDefaultWeight)
	if err != nil {
		return nil, err
	}

	all := append(defaultElems, userElems...)

	if err := dat.BuildAndPersist(all, minWeight, cachePath, md5Hex, logger); err != nil {
		return nil, err
	}
	trie, err := dat.Open(cachePath, md5Hex)
	if err != nil {
		return nil, err
	}
	return &Dictionary{Trie: trie, UserSingleCharSet: userSingle, TotalDictByteLength: totalLen}, nil
}

// loadDefaultDict parses "word freq tag" lines, rejecting any line that
// doesn't split into exactly three whitespace-separated fields or whose
// freq isn't positive.
func loadDefaultDict(path string) ([]dat.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, herr.Wrap(herr.OpenFileFailed, "open default dict", err)
	}
	defer f.Close()

	var elems []dat.Element
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, herr.New(herr.ValueError, fmt.Sprintf("default dict line %d: expected 3 fields", lineno))
		}
		freq, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || freq <= 0 {
			return nil, herr.New(herr.ValueError, fmt.Sprintf("default dict line %d: bad freq %q", lineno, fields[1]))
		}
		elems = append(elems, dat.Element{Word: fields[0], Tag: fields[2], Weight: freq})
	}
	if err := scanner.Err(); err != nil {
		return nil, herr.Wrap(herr.FileOperationError, "scan default dict", err)
	}
	if len(elems) == 0 {
		return nil, herr.New(herr.ValueError, "empty default dict")
	}
	return elems, nil
}

// calculateWeights computes freqSum/min/max over raw frequencies and
// transforms every element's Weight in place to log(freq/freqSum).
func calculateWeights(elems []dat.Element) (freqSum, minWeight, maxWeight float64) {
	minWeight = elems[0].Weight
	maxWeight = elems[0].Weight
	for _, e := range elems {
		freqSum += e.Weight
		if e.Weight < minWeight {
			minWeight = e.Weight
		}
		if e.Weight > maxWeight {
			maxWeight = e.Weight
		}
	}
	for i := range elems {
		elems[i].Weight = math.Log(elems[i].Weight / freqSum)
	}
	return freqSum, minWeight, maxWeight
}

// pickUserDefaultWeight picks the fallback weight for user words with no
// explicit frequency, per option. elems are assumed already log-transformed
// by calculateWeights. The median is computed by sorting the transformed
// weights ascending and taking index n/2, matching the source's convention
// (spec §4.3 step d implementer note).
func pickUserDefaultWeight(elems []dat.Element, opt UserWordWeightOption) float64 {
	weights := make([]float64, len(elems))
	for i, e := range elems {
		weights[i] = e.Weight
	}
	sort.Float64s(weights)
	switch opt {
	case WordWeightMin:
		return weights[0]
	case WordWeightMax:
		return weights[len(weights)-1]
	default:
		return weights[len(weights)/2]
	}
}

// loadUserDicts parses 1-3 field lines ("word", "word tag", or
// "word freq tag"). If freq is present and freqSum>0, its weight is
// log(freq/freqSum); otherwise it inherits userDefaultWeight.
func loadUserDicts(paths []string, freqSum, userDefaultWeight float64) ([]dat.Element, error) {
	var out []dat.Element
	for _, path := range paths {
		if path == "" {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, herr.Wrap(herr.OpenFileFailed, "open user dict", err)
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), "\r\n")
			if line == "" {
				continue
			}
			fields := strings.Fields(line)
			elem := dat.Element{Word: fields[0], Weight: userDefaultWeight}
			switch len(fields) {
			case 1:
			case 2:
				elem.Tag = fields[1]
			case 3:
				elem.Tag = fields[2]
				if freq, err := strconv.ParseFloat(fields[1], 64); err == nil && freqSum > 0 {
					elem.Weight = math.Log(freq / freqSum)
				}
			default:
				f.Close()
				return nil, herr.New(herr.ValueError, "user dict line has too many fields: "+line)
			}
			out = append(out, elem)
		}
		err = scanner.Err()
		f.Close()
		if err != nil {
			return nil, herr.Wrap(herr.FileOperationError, "scan user dict", err)
		}
	}
	return out, nil
}

// scanUserSingleChars re-derives the set of codepoints contributed by
// single-character user-dict words. This always runs, even on a cache
// hit, because the cache file itself doesn't record which words came
// from a user dict (spec §4.3 step 2).
func scanUserSingleChars(paths []string) (map[rune]bool, error) {
	out := make(map[rune]bool)
	for _, path := range paths {
		if path == "" {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, herr.Wrap(herr.OpenFileFailed, "open user dict", err)
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), "\r\n")
			if line == "" {
				continue
			}
			fields := strings.Fields(line)
			word := fields[0]
			rs := hrunes.Decode([]byte(word))
			if rs.Len() == 1 {
				out[rs.Runes[0].Codepoint] = true
			}
		}
		err = scanner.Err()
		f.Close()
		if err != nil {
			return nil, herr.Wrap(herr.FileOperationError, "scan user dict", err)
		}
	}
	return out, nil
}
