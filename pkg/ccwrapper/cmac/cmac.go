// Package cmac provides AES-CMAC (NIST SP 800-38B) message authentication
// with one-shot and incremental interfaces.
package cmac

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"hash"

	"github.com/aead/cmac"

	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
)

// TagSize is the length of an AES-CMAC authentication code in bytes.
const TagSize = 16

func newBlock(key []byte) (cipher.Block, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, ccwrapper.ErrKeySize
	}
	b, err := aes.NewCipher(key)
	if err != nil {
		return nil, ccwrapper.ErrKeySize
	}
	return b, nil
}

// MAC is an incremental AES-CMAC computation. A MAC is not safe for
// concurrent use.
type MAC struct {
	h         hash.Hash
	finalized bool
}

// New returns an incremental CMAC keyed with an AES-128, AES-192 or AES-256
// key.
func New(key []byte) (*MAC, error) {
	b, err := newBlock(key)
	if err != nil {
		return nil, ccwrapper.Wrap("cmac.New", err)
	}
	h, err := cmac.New(b)
	if err != nil {
		return nil, ccwrapper.Wrap("cmac.New", ccwrapper.ErrParam)
	}
	return &MAC{h: h}, nil
}

// Update absorbs more message data.
func (m *MAC) Update(data []byte) error {
	if m == nil || m.h == nil {
		return ccwrapper.Wrap("cmac.Update", ccwrapper.ErrParam)
	}
	if m.finalized {
		return ccwrapper.Wrap("cmac.Update", ccwrapper.ErrCallSequence)
	}
	m.h.Write(data)
	return nil
}

// Final returns the authentication code. After Final the context only accepts
// Reset and Close.
func (m *MAC) Final() ([]byte, error) {
	if m == nil || m.h == nil {
		return nil, ccwrapper.Wrap("cmac.Final", ccwrapper.ErrParam)
	}
	if m.finalized {
		return nil, ccwrapper.Wrap("cmac.Final", ccwrapper.ErrCallSequence)
	}
	m.finalized = true
	return m.h.Sum(nil), nil
}

// Reset returns the context to its freshly keyed state.
func (m *MAC) Reset() error {
	if m == nil || m.h == nil {
		return ccwrapper.Wrap("cmac.Reset", ccwrapper.ErrParam)
	}
	m.h.Reset()
	m.finalized = false
	return nil
}

// Size returns TagSize.
func (m *MAC) Size() int {
	return TagSize
}

// Close releases the context. It is safe to call multiple times.
func (m *MAC) Close() error {
	if m == nil {
		return ccwrapper.Wrap("cmac.Close", ccwrapper.ErrParam)
	}
	m.h = nil
	return nil
}

// Sum computes the AES-CMAC of data in one call.
func Sum(key, data []byte) ([]byte, error) {
	b, err := newBlock(key)
	if err != nil {
		return nil, ccwrapper.Wrap("cmac.Sum", err)
	}
	mac, err := cmac.Sum(data, b, TagSize)
	if err != nil {
		return nil, ccwrapper.Wrap("cmac.Sum", ccwrapper.ErrParam)
	}
	return mac, nil
}

// Verify recomputes the CMAC of data and compares it against expected in
// constant time, failing with a not verified error on mismatch.
func Verify(key, data, expected []byte) error {
	mac, err := Sum(key, data)
	if err != nil {
		return err
	}
	if len(expected) != len(mac) || subtle.ConstantTimeCompare(mac, expected) != 1 {
		return ccwrapper.Wrap("cmac.Verify", ccwrapper.ErrNotVerified)
	}
	return nil
}
