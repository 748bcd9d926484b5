package dat

import (
	"sort"

	"github.com/hanzinlp/hanseg/internal/herr"
)

// Element is a build-time dictionary entry: a UTF-8 word, its POS tag
// (truncated to 7 bytes + NUL on write), and its weight (a natural
// log-probability once produced by internal/dict, or a raw frequency
// before that transform runs).
type Element struct {
	Word   string
	Tag    string
	Weight float64
}

// DatMemElem is the 16-byte mmap record: weight plus an 8-byte
// NUL-padded tag. Its size and layout are invariants of the cache file
// format (spec §3).
type DatMemElem struct {
	Weight float64
	Tag    [8]byte
}

func (e DatMemElem) TagString() string {
	n := 0
	for n < len(e.Tag) && e.Tag[n] != 0 {
		n++
	}
	return string(e.Tag[:n])
}

func tagBytes(tag string) [8]byte {
	var out [8]byte
	n := copy(out[:7], tag) // reserve the last byte as a guaranteed NUL
	_ = n
	return out
}

// sortElements orders entries by word ascending, then by weight
// descending on ties, then drops later duplicates — this keeps exactly
// the highest-weight variant of any repeated key, per spec §3.
func sortElements(elements []Element) []Element {
	sorted := make([]Element, len(elements))
	copy(sorted, elements)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Word != sorted[j].Word {
			return sorted[i].Word < sorted[j].Word
		}
		return sorted[i].Weight > sorted[j].Weight
	})

	out := sorted[:0]
	var prevWord string
	havePrev := false
	for _, e := range sorted {
		if havePrev && e.Word == prevWord {
			continue
		}
		out = append(out, e)
		prevWord = e.Word
		havePrev = true
	}
	return out
}

// buildTask tracks one pending node whose children still need a base
// assigned: the key range [lo,hi) shares the same depth-byte prefix.
type buildTask struct {
	parent int32
	lo, hi int
	depth  int
}

type byteGroup struct {
	label  byte
	lo, hi int
}

// buildUnits constructs the double-array unit table for the given
// (already-terminated) keys, where keys[i] corresponds to element i.
// Every key must end with an explicit 0x00 terminator byte appended by
// the caller (see Build below) so that a word which is itself a prefix
// of another word gets its own distinct leaf unit.
func buildUnits(keys [][]byte) ([]unit, error) {
	units := make([]unit, 1, len(keys)*2+16)
	used := make([]bool, 1, len(keys)*2+16)
	used[0] = true

	grow := func(n int) {
		for len(units) <= n {
			units = append(units, 0)
			used = append(used, false)
		}
	}

	queue := []buildTask{{parent: 0, lo: 0, hi: len(keys), depth: 0}}
	hint := int32(1)
	// Lookups check only a child's label, not its parent, so no two nodes
	// may share a base.
	usedBase := make(map[int32]bool)

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]

		groups, err := groupByByte(keys, t.lo, t.hi, t.depth)
		if err != nil {
			return nil, err
		}

		labels := make([]byte, len(groups))
		for i, g := range groups {
			labels[i] = g.label
		}

		base, err := findBase(used, labels, hint)
		for err == nil && usedBase[base] {
			base, err = findBase(used, labels, base+1)
		}
		if err != nil {
			return nil, err
		}
		usedBase[base] = true
		hint = base

		preservedLabel := units[t.parent].label()
		units[t.parent] = packNode(base, preservedLabel)

		for _, g := range groups {
			childIdx := int32(base) ^ int32(g.label)
			grow(int(childIdx))
			used[childIdx] = true

			if g.label == 0 {
				if g.hi-g.lo != 1 {
					return nil, herr.New(herr.BuildTrieError, "duplicate key survived dedup")
				}
				units[childIdx] = packLeaf(int32(g.lo), 0)
				continue
			}

			units[childIdx] = packNode(0, g.label)
			queue = append(queue, buildTask{parent: childIdx, lo: g.lo, hi: g.hi, depth: t.depth + 1})
		}
	}

	return units, nil
}

func groupByByte(keys [][]byte, lo, hi, depth int) ([]byteGroup, error) {
	var groups []byteGroup
	i := lo
	for i < hi {
		if depth >= len(keys[i]) {
			return nil, herr.New(herr.BuildTrieError, "key shorter than expected depth; missing terminator")
		}
		b := keys[i][depth]
		j := i + 1
		for j < hi && keys[j][depth] == b {
			j++
		}
		groups = append(groups, byteGroup{label: b, lo: i, hi: j})
		i = j
	}
	return groups, nil
}

func findBase(used []bool, labels []byte, hint int32) (int32, error) {
	for base := hint; base < maxUnitField; base++ {
		ok := true
		for _, l := range labels {
			idx := int(base) ^ int(l)
			if idx < len(used) && used[idx] {
				ok = false
				break
			}
		}
		if ok {
			return base, nil
		}
	}
	return 0, herr.New(herr.BuildTrieError, "double array exhausted addressable range")
}

// Build sorts and dedups elements, constructs the double-array unit
// table, and returns it alongside the parallel DatMemElem table ready
// for serialization by Persist.
func Build(elements []Element) ([]unit, []DatMemElem, error) {
	sorted := sortElements(elements)
	if len(sorted) == 0 {
		return nil, nil, herr.New(herr.ValueError, "no elements to build")
	}
	if len(sorted) > maxUnitField {
		return nil, nil, herr.New(herr.BuildTrieError, "too many elements for 23-bit unit field")
	}

	keys := make([][]byte, len(sorted))
	mem := make([]DatMemElem, len(sorted))
	for i, e := range sorted {
		keys[i] = append([]byte(e.Word), 0)
		mem[i] = DatMemElem{Weight: e.Weight, Tag: tagBytes(e.Tag)}
	}

	units, err := buildUnits(keys)
	if err != nil {
		return nil, nil, err
	}
	return units, mem, nil
}
