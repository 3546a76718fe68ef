package media

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// contentIDLen is how many trailing hex digits of the SHA-256 digest
// make up a content identifier. 40 bits is plenty for pool-scale dedup.
const contentIDLen = 10

// FileContentID derives a short stable identifier from a file's bytes.
// Identical files always map to the same identifier, so re-ingesting a
// source that is already in the pool is a no-op.
func FileContentID(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, 8192)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	sum := hex.EncodeToString(h.Sum(nil))
	return sum[len(sum)-contentIDLen:], nil
}
