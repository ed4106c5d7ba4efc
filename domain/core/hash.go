package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Short returns the first 12 hex characters, for log lines
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// Domain-specific hash types
type (
	DatasetHash Hash
	ViewHash    Hash
)

func (h DatasetHash) String() string { return Hash(h).String() }
func (h ViewHash) String() string    { return Hash(h).String() }
func (h DatasetHash) Short() string  { return Hash(h).Short() }
func (h ViewHash) Short() string     { return Hash(h).Short() }

// ComputeDatasetHash fingerprints a loaded table by its header and cell contents
func ComputeDatasetHash(header []string, rows [][]string) DatasetHash {
	h := sha256.New()
	h.Write([]byte(strings.Join(header, "\x1f")))
	for _, row := range rows {
		h.Write([]byte{'\x1e'})
		h.Write([]byte(strings.Join(row, "\x1f")))
	}
	return DatasetHash(hex.EncodeToString(h.Sum(nil)))
}

// ComputeViewHash fingerprints a row subset of a dataset. Row order is ignored.
func ComputeViewHash(dataset DatasetHash, rows []int) ViewHash {
	sorted := append([]int(nil), rows...)
	sort.Ints(sorted)

	h := sha256.New()
	h.Write([]byte(dataset))
	var buf [8]byte
	for _, r := range sorted {
		binary.LittleEndian.PutUint64(buf[:], uint64(r))
		h.Write(buf[:])
	}
	return ViewHash(hex.EncodeToString(h.Sum(nil)))
}
