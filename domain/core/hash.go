package core

import (
	"crypto/sha256"
	"encoding/hex"
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
	PromptsHash Hash
)

func NewDatasetHash(data []byte) DatasetHash { return DatasetHash(NewHash(data)) }
func NewPromptsHash(data []byte) PromptsHash { return PromptsHash(NewHash(data)) }

func (h DatasetHash) String() string { return Hash(h).String() }
func (h PromptsHash) String() string { return Hash(h).String() }

// ComputeFingerprint hashes ordered parts with a separator that cannot occur in them
func ComputeFingerprint(parts ...string) Hash {
	return NewHash([]byte(strings.Join(parts, "\x00")))
}
