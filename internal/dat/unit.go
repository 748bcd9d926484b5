package dat

// unit is a single 4-byte slot of the double array. It is addressed by
// XOR: for a node at index s with base(s) and an outgoing byte label b,
// the child lives at s' = base(s) ^ b. Every key is conceptually
// terminated with a virtual 0x00 byte, so a node that is itself a
// dictionary entry gets a child at label 0 whose unit carries the value
// instead of a base (see build.go). This keeps every unit exactly 4
// bytes regardless of whether it is an internal transition node or a
// value-carrying leaf, matching the spec's "array of 4-byte units"
// on-disk contract without requiring a real darts-clone binding.
//
// Bit layout (low to high):
//
//	bit 0      : hasLeaf
//	bits 1-8   : label (the byte that reached this unit from its parent;
//	             meaningless for the root)
//	bits 9-31  : base (if !hasLeaf) or value (if hasLeaf) — 23 bits,
//	             i.e. up to 8,388,607 array slots / element indices.
type unit uint32

const maxUnitField = 1<<23 - 1

func packNode(base int32, label byte) unit {
	return unit(uint32(base)<<9 | uint32(label)<<1)
}

func packLeaf(value int32, label byte) unit {
	return unit(uint32(value)<<9 | uint32(label)<<1 | 1)
}

func (u unit) hasLeaf() bool  { return u&1 == 1 }
func (u unit) label() byte    { return byte((u >> 1) & 0xFF) }
func (u unit) base() int32    { return int32(u >> 9) }
func (u unit) value() int32   { return int32(u >> 9) }
func (u unit) isUnused() bool { return u == 0 }

const unitSize = 4 // bytes per DAT unit, matches spec's "4-byte units"
