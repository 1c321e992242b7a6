// Package digest computes content digests used as dedup keys.
//
// The digest is a SHA-256 over the file's raw bytes, hex-encoded.
// Content addressing correctness depends on near-zero collision
// probability, so a cryptographic hash is used rather than a checksum.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// blockSize is the read block size. Files are hashed in bounded
// sequential blocks so large inputs never need full in-memory buffering.
const blockSize = 4096

// Reader computes the content digest of everything readable from r.
func Reader(r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, blockSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// File computes the content digest of the file at path.
// I/O errors propagate to the caller.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sum, err := Reader(f)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return sum, nil
}
