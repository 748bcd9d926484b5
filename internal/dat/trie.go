package dat

import (
	"encoding/binary"
	"math"

	lru "github.com/hashicorp/golang-lru"

	hrunes "github.com/hanzinlp/hanseg/internal/runes"
)

// Transition is one outgoing edge of a DAG cell: nextPos is the rune
// index just past the matched word, elem is nil for the single-rune
// fallback and non-nil for an actual dictionary hit.
type Transition struct {
	NextPos int
	Elem    *DatMemElem
}

// DagCell holds every DAT-matched transition starting at a given rune
// position, plus DP scratch fields filled in by the MP strategy. Its
// first transition always leads to i+1 so that every position has at
// least one outgoing edge — DP always terminates. That transition's Elem
// is nil unless the single character is itself a dictionary word.
type DagCell struct {
	Nexts     []Transition
	MaxWeight float64
	MaxNext   int
}

// Trie is a read-only double-array trie over UTF-8 byte keys, paired
// with its DatMemElem side table. It is safe for concurrent reads by
// any number of goroutines once constructed; it has no mutation API.
type Trie struct {
	raw         []byte
	datOff      int
	elementsOff int
	elementsNum uint32
	datSize     uint32
	minWeight   float64
	closer      func() error
	hotCache    *lru.Cache
}

func (t *Trie) unitAt(i int32) unit {
	off := t.datOff + int(i)*unitSize
	return unit(binary.LittleEndian.Uint32(t.raw[off : off+unitSize]))
}

func (t *Trie) elementAt(i int32) DatMemElem {
	off := t.elementsOff + int(i)*16
	w := math.Float64frombits(binary.LittleEndian.Uint64(t.raw[off : off+8]))
	var tag [8]byte
	copy(tag[:], t.raw[off+8:off+16])
	return DatMemElem{Weight: w, Tag: tag}
}

// MinWeight returns the OOV DP floor stored in the cache header.
func (t *Trie) MinWeight() float64 { return t.minWeight }

// ElementsNum returns the number of DatMemElem rows.
func (t *Trie) ElementsNum() uint32 { return t.elementsNum }

// Close releases the backing mmap region, if any. All DatMemElem values
// returned by FindExact/FindAllPrefixes are copies and remain valid after
// Close; only further calls on the Trie itself are invalidated.
func (t *Trie) Close() error {
	if t.closer != nil {
		return t.closer()
	}
	return nil
}

// FindExact returns the metadata for key iff an exact match exists.
func (t *Trie) FindExact(key []byte) (DatMemElem, bool) {
	node := int32(0)
	for _, b := range key {
		u := t.unitAt(node)
		child := u.base() ^ int32(b)
		if child < 0 || uint32(child) >= t.datSize {
			return DatMemElem{}, false
		}
		cu := t.unitAt(child)
		if cu.isUnused() || cu.label() != b {
			return DatMemElem{}, false
		}
		node = child
	}
	// consume the implicit terminator
	u := t.unitAt(node)
	child := u.base() ^ 0
	if child < 0 || uint32(child) >= t.datSize {
		return DatMemElem{}, false
	}
	cu := t.unitAt(child)
	if !cu.isUnused() && cu.hasLeaf() && cu.label() == 0 {
		v := cu.value()
		if v >= 0 && uint32(v) < t.elementsNum {
			return t.elementAt(v), true
		}
	}
	return DatMemElem{}, false
}

// FindAllPrefixes performs a common-prefix search starting at every
// position in [begin, end), filling dagOut (already sized to end-begin,
// indexed relative to begin) with one DagCell per position. maxWordLenChars caps the
// character length of dictionary hits considered; anything longer is
// dropped even if its byte length would otherwise fit.
func (t *Trie) FindAllPrefixes(rs hrunes.String, begin, end int, maxWordLenChars int, dagOut []DagCell) {
	n := end - begin
	for i := 0; i < n; i++ {
		dagOut[i] = DagCell{Nexts: []Transition{{NextPos: i + 1, Elem: nil}}}

		node := int32(0)
		runeIdx := begin + i
		bytePos := rs.Runes[runeIdx].ByteOffset
		for k := runeIdx; k < end; k++ {
			r := rs.Runes[k]
			// walk one rune's worth of UTF-8 bytes through the trie
			ok := true
			cur := node
			for bi := 0; bi < int(r.ByteLength); bi++ {
				b := rs.Bytes[r.ByteOffset+bi]
				u := t.unitAt(cur)
				child := u.base() ^ int32(b)
				if child < 0 || uint32(child) >= t.datSize {
					ok = false
					break
				}
				cu := t.unitAt(child)
				if cu.isUnused() || cu.label() != b {
					ok = false
					break
				}
				cur = child
			}
			if !ok {
				break
			}
			node = cur

			// check whether `node` terminates a word here
			u := t.unitAt(node)
			leafChild := u.base() ^ 0
			if leafChild >= 0 && uint32(leafChild) < t.datSize {
				cu := t.unitAt(leafChild)
				if !cu.isUnused() && cu.hasLeaf() && cu.label() == 0 {
					v := cu.value()
					if v >= 0 && uint32(v) < t.elementsNum {
						endByteOff := r.ByteOffset + int(r.ByteLength)
						charNum := hrunes.CharCount(rs.Bytes[bytePos:], endByteOff-bytePos)
						if charNum <= maxWordLenChars {
							elem := t.elementAt(v)
							nextPos := k + 1 - begin
							if charNum == 1 {
								dagOut[i].Nexts[0].Elem = &elem
							} else {
								dagOut[i].Nexts = append(dagOut[i].Nexts, Transition{NextPos: nextPos, Elem: &elem})
							}
						}
					}
				}
			}
		}
	}
}
