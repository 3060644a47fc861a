package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
)

// NewChecksum returns the running hash every written copy file is fed through
func NewChecksum() hash.Hash {
	return sha256.New()
}

// FormatChecksum renders the digest of h as lowercase hex
func FormatChecksum(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}

// ComputeChecksum returns the checksum of data, matching what WriteCopy records
func ComputeChecksum(data []byte) string {
	h := NewChecksum()
	h.Write(data)
	return FormatChecksum(h)
}

// GenerateFileData fills size bytes from rng
func GenerateFileData(rng *RNG, size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(rng.Intn(256))
	}
	return data
}
