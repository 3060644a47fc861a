package generator

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

// TestComputeChecksum tests the SHA256 checksum generation
func TestComputeChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty data", data: []byte{}},
		{name: "nil data", data: nil},
		{name: "hello world", data: []byte("hello world")},
		{name: "binary data", data: []byte{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe, 0xfd}},
		{name: "with marker", data: append([]byte("xxxxx"), EncodeMarker(3)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := sha256.Sum256(tt.data)
			expected := hex.EncodeToString(hash[:])

			result := ComputeChecksum(tt.data)
			if len(result) != 64 {
				t.Errorf("ComputeChecksum() returned string of length %d, want 64", len(result))
			}
			if result != expected {
				t.Errorf("ComputeChecksum() = %s, want %s", result, expected)
			}
		})
	}
}

// TestComputeChecksumDifferentInputs tests that different inputs produce different checksums
func TestComputeChecksumDifferentInputs(t *testing.T) {
	inputs := [][]byte{
		[]byte("test1"),
		[]byte("test2"),
		[]byte(""),
		EncodeMarker(0),
		EncodeMarker(1),
	}

	checksums := make(map[string]bool)
	for _, input := range inputs {
		checksum := ComputeChecksum(input)
		if checksums[checksum] {
			t.Errorf("Duplicate checksum for different inputs: %s", checksum)
		}
		checksums[checksum] = true
	}
}

// TestStreamingChecksum checks that chunked writes hash the same as one-shot hashing
func TestStreamingChecksum(t *testing.T) {
	data := append(bytes.Repeat([]byte("x"), 10), EncodeMarker(1)...)

	h := NewChecksum()
	for _, chunk := range [][]byte{data[:3], data[3:10], data[10:]} {
		h.Write(chunk)
	}

	if got, want := FormatChecksum(h), ComputeChecksum(data); got != want {
		t.Errorf("FormatChecksum() = %s, want %s", got, want)
	}
	if got := FormatChecksum(NewChecksum()); got != ComputeChecksum(nil) {
		t.Errorf("empty FormatChecksum() = %s, want %s", got, ComputeChecksum(nil))
	}
}

func BenchmarkComputeChecksum(b *testing.B) {
	data := make([]byte, DefaultBlockSize)
	for i := range data {
		data[i] = byte(i % 256)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeChecksum(data)
	}
}
