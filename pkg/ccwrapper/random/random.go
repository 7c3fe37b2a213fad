// Package random provides cryptographically secure random bytes from the
// operating system entropy source.
package random

import (
	"crypto/rand"

	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
)

// Bytes returns n cryptographically random bytes.
func Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ccwrapper.Wrap("random.Bytes", ccwrapper.ErrParam)
	}
	out := make([]byte, n)
	if err := Read(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Read fills p with cryptographically random bytes.
func Read(p []byte) error {
	if _, err := rand.Read(p); err != nil {
		return ccwrapper.Wrap("random.Read", ccwrapper.ErrRNG)
	}
	return nil
}
