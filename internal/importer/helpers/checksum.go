package helpers

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
)

// Checksum calculates the SHA256 hash of everything read through it.
type Checksum struct {
	r io.Reader
	h hash.Hash
}

// NewChecksum wraps r.
func NewChecksum(r io.Reader) *Checksum {
	h := sha256.New()
	return &Checksum{r: io.TeeReader(r, h), h: h}
}

func (c *Checksum) Read(p []byte) (int, error) {
	return c.r.Read(p)
}

// Drain reads the rest of the input so that the checksum covers all of it.
func (c *Checksum) Drain() error {
	_, err := io.Copy(io.Discard, c.r)
	return err
}

// String returns the hex representation of the hash of all data read so far.
func (c *Checksum) String() string {
	return fmt.Sprintf("%x", c.h.Sum(nil))
}
