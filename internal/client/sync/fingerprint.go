package sync

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
)

// Fingerprint computes the content digest of a byte buffer using the git
// blob convention: sha1 over "blob <len>\x00<content>", lowercase hex.
// The server computes the same digest, so fingerprints are directly
// comparable across the wire and independently verifiable with git.
func Fingerprint(content []byte) string {
	h := sha1.New()
	fmt.Fprintf(h, "blob %d\x00", len(content))
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// FingerprintFile reads the file at path and returns its Fingerprint.
func FingerprintFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %q: %w", path, err)
	}
	return Fingerprint(content), nil
}
