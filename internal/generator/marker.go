package generator

import (
	"encoding/binary"
)

// MarkerWidth is the encoded size of a copy-index marker
const MarkerWidth = 8

// DefaultBlockSize is the number of seed bytes between two inserted markers
const DefaultBlockSize = 65536

// EncodeMarker returns the copy index as a native byte order int64
func EncodeMarker(index int) []byte {
	m := make([]byte, MarkerWidth)
	binary.NativeEndian.PutUint64(m, uint64(int64(index)))
	return m
}

// EffectiveSegmentSize returns how many seed bytes go between markers.
// Buffers shorter than blockSize are split in half so they still get a marker;
// the result is never below 1 for a non-empty buffer. Empty buffers yield 0.
func EffectiveSegmentSize(length, blockSize int) int {
	if length <= 0 {
		return 0
	}
	if length >= blockSize {
		return blockSize
	}
	if s := length / 2; s > 0 {
		return s
	}
	return 1
}

// SegmentCount returns how many segments, and therefore markers, a buffer of length produces
func SegmentCount(length, blockSize int) int {
	s := EffectiveSegmentSize(length, blockSize)
	if s == 0 {
		return 0
	}
	return (length + s - 1) / s
}

// OutputSize returns the length of the perturbed copy of a buffer of length
func OutputSize(length, blockSize int) int64 {
	return int64(length) + int64(SegmentCount(length, blockSize))*MarkerWidth
}
