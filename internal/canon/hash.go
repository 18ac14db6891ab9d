package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes keep keys of different entity families apart even when
// their canonical encodings coincide. The version suffix allows migrating
// the key algorithm.
const (
	DomainType = "irkit/type/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data) as hex.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Key computes the content-addressed key of v within domain.
// Structurally equal values always produce the same key.
func Key(domain string, v Value) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("canonical key: %w", err)
	}
	return hashWithDomain(domain, data), nil
}

// MustKey is like Key but panics on error.
// Use only when v is built from known-valid parts.
func MustKey(domain string, v Value) string {
	k, err := Key(domain, v)
	if err != nil {
		panic(err)
	}
	return k
}
