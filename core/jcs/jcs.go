package jcs

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"github.com/gowebpki/jcs"
)

// Canonicalize returns the RFC 8785 (JCS) canonical form of JSON input.
func Canonicalize(input []byte) ([]byte, error) {
	return jcs.Transform(input)
}

// Digest canonicalizes JSON (RFC 8785) and returns a sha256 hex digest.
// Used to fingerprint opaque policy documents without reformatting them.
func Digest(input []byte) (string, error) {
	canonical, err := Canonicalize(input)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Equivalent reports whether two JSON documents have the same canonical form.
func Equivalent(a, b []byte) (bool, error) {
	canonicalA, err := Canonicalize(a)
	if err != nil {
		return false, err
	}
	canonicalB, err := Canonicalize(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(canonicalA, canonicalB), nil
}
