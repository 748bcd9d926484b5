// Package dat implements the double-array trie dictionary index and its
// memory-mappable cache file: build from a sorted element list, persist
// to disk with an atomic rename, and reopen with an mmap'd, content-hash
// validated read.
package dat

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hanzinlp/hanseg/internal/herr"
)

// headerSize is the on-disk size of CacheFileHeader: 32 (md5 hex) + 8
// (float64) + 4 (uint32) + 4 (uint32) = 48 bytes, a multiple of the
// 16-byte DatMemElem size per spec §3.
const headerSize = 48

// CacheFileHeader is the fixed 48-byte prefix of a cache file.
type CacheFileHeader struct {
	MD5Hex      [32]byte
	MinWeight   float64
	ElementsNum uint32
	DatSize     uint32
}

func encodeHeader(h CacheFileHeader) []byte {
	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.LittleEndian, h)
	return buf.Bytes()
}

func decodeHeader(b []byte) (CacheFileHeader, error) {
	var h CacheFileHeader
	if len(b) < headerSize {
		return h, herr.New(herr.FileOperationError, "file shorter than header")
	}
	if err := binary.Read(bytes.NewReader(b[:headerSize]), binary.LittleEndian, &h); err != nil {
		return h, herr.Wrap(herr.FileOperationError, "decode header", err)
	}
	return h, nil
}

// BuildAndPersist builds the double-array trie from elements and writes
// a complete cache file at cachePath: a temp sibling file is written in
// full, chmod'd 0644, then atomically renamed over cachePath so a crash
// mid-write never corrupts an existing cache (spec §4.2/§5). md5Hex must
// be exactly 32 lowercase hex characters.
func BuildAndPersist(elements []Element, minWeight float64, cachePath, md5Hex string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	units, mem, err := Build(elements)
	if err != nil {
		return err
	}

	var header CacheFileHeader
	if len(md5Hex) != len(header.MD5Hex) {
		return herr.New(herr.ValueError, "md5 hex must be 32 characters")
	}
	copy(header.MD5Hex[:], md5Hex)
	header.MinWeight = minWeight
	header.ElementsNum = uint32(len(mem))
	header.DatSize = uint32(len(units))

	tmpPath := cachePath + "." + uuid.NewString() + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return herr.Wrap(herr.OpenFileFailed, "create temp cache file", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath) // no-op once renamed away
	}()

	if _, err := f.Write(encodeHeader(header)); err != nil {
		return herr.Wrap(herr.FileOperationError, "write header", err)
	}
	memBuf := &bytes.Buffer{}
	for _, e := range mem {
		_ = binary.Write(memBuf, binary.LittleEndian, e.Weight)
		_, _ = memBuf.Write(e.Tag[:])
	}
	if _, err := f.Write(memBuf.Bytes()); err != nil {
		return herr.Wrap(herr.FileOperationError, "write elements table", err)
	}
	unitsBuf := &bytes.Buffer{}
	for _, u := range units {
		_ = binary.Write(unitsBuf, binary.LittleEndian, uint32(u))
	}
	if _, err := f.Write(unitsBuf.Bytes()); err != nil {
		return herr.Wrap(herr.FileOperationError, "write dat array", err)
	}
	if err := f.Close(); err != nil {
		return herr.Wrap(herr.FileOperationError, "close temp cache file", err)
	}
	if err := os.Rename(tmpPath, cachePath); err != nil {
		return herr.Wrap(herr.FileOperationError, "rename temp cache file into place", err)
	}
	logger.Info("dat cache built", zap.String("path", cachePath),
		zap.Uint32("elements", header.ElementsNum), zap.Uint32("dat_size", header.DatSize))
	return nil
}

// Open memory-maps cachePath read-only and validates its header against
// expectedMD5Hex and the file's own length. A mismatch returns a
// herr.Error wrapping herr.ValueError/herr.MmapError; callers should
// treat that as "cache invalid" and rebuild rather than propagate it as
// a hard failure (spec §4.2/§7).
func Open(cachePath, expectedMD5Hex string) (*Trie, error) {
	f, err := os.Open(cachePath)
	if err != nil {
		return nil, herr.Wrap(herr.OpenFileFailed, "open cache file", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, herr.Wrap(herr.FileOperationError, "stat cache file", err)
	}
	if info.Size() < headerSize {
		f.Close()
		return nil, herr.New(herr.FileOperationError, "cache file too short")
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, herr.Wrap(herr.MmapError, "mmap cache file", err)
	}

	header, err := decodeHeader(m)
	if err != nil {
		m.Unmap()
		f.Close()
		return nil, err
	}

	gotMD5 := string(bytes.TrimRight(header.MD5Hex[:], "\x00"))
	if gotMD5 != expectedMD5Hex {
		m.Unmap()
		f.Close()
		return nil, herr.New(herr.ValueError, "md5 checksum mismatch")
	}

	wantLen := int64(headerSize) + int64(header.ElementsNum)*16 + int64(header.DatSize)*unitSize
	if int64(len(m)) != wantLen {
		m.Unmap()
		f.Close()
		return nil, herr.New(herr.ValueError, "cache file length mismatch")
	}

	return &Trie{
		raw:         m,
		datOff:      headerSize + int(header.ElementsNum)*16,
		elementsOff: headerSize,
		elementsNum: header.ElementsNum,
		datSize:     header.DatSize,
		minWeight:   header.MinWeight,
		closer: func() error {
			if err := m.Unmap(); err != nil {
				return err
			}
			return f.Close()
		},
	}, nil
}

// NewInMemory builds a Trie directly from elements without touching
// disk, useful for tests and for callers that want to skip the cache
// file entirely. The returned Trie owns its backing buffer and Close is
// a no-op.
func NewInMemory(elements []Element, minWeight float64) (*Trie, error) {
	units, mem, err := Build(elements)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	header := CacheFileHeader{MinWeight: minWeight, ElementsNum: uint32(len(mem)), DatSize: uint32(len(units))}
	copy(header.MD5Hex[:], "00000000000000000000000000000000"[:32])
	buf.Write(encodeHeader(header))
	for _, e := range mem {
		_ = binary.Write(buf, binary.LittleEndian, e.Weight)
		buf.Write(e.Tag[:])
	}
	for _, u := range units {
		_ = binary.Write(buf, binary.LittleEndian, uint32(u))
	}
	raw := buf.Bytes()
	return &Trie{
		raw:         raw,
		datOff:      headerSize + len(mem)*16,
		elementsOff: headerSize,
		elementsNum: uint32(len(mem)),
		datSize:     uint32(len(units)),
		minWeight:   minWeight,
	}, nil
}
