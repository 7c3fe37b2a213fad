// Package hmac provides keyed-hash message authentication over the digest
// algorithms, with both one-shot and incremental interfaces.
package hmac

import (
	"crypto/hmac"
	"crypto/subtle"
	"hash"

	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper/digest"
)

// MAC is an incremental HMAC computation. A MAC is not safe for concurrent
// use.
type MAC struct {
	h         hash.Hash
	size      int
	finalized bool
}

// New returns an incremental HMAC keyed with key. The key may be of any
// length; it is not retained.
func New(alg digest.Algorithm, key []byte) (*MAC, error) {
	h, err := newKeyed(alg, key)
	if err != nil {
		return nil, ccwrapper.Wrap("hmac.New", ccwrapper.ErrUnimplemented)
	}
	return &MAC{h: h, size: alg.Size()}, nil
}

func newKeyed(alg digest.Algorithm, key []byte) (hash.Hash, error) {
	a := alg
	newFn := func() hash.Hash {
		h, _ := digest.New(a)
		return h
	}
	if _, err := digest.New(alg); err != nil {
		return nil, err
	}
	return hmac.New(newFn, key), nil
}

// Update absorbs more message data.
func (m *MAC) Update(data []byte) error {
	if m == nil || m.h == nil {
		return ccwrapper.Wrap("hmac.Update", ccwrapper.ErrParam)
	}
	if m.finalized {
		return ccwrapper.Wrap("hmac.Update", ccwrapper.ErrCallSequence)
	}
	m.h.Write(data)
	return nil
}

// Final returns the authentication code. After Final the context only accepts
// Reset and Close.
func (m *MAC) Final() ([]byte, error) {
	if m == nil || m.h == nil {
		return nil, ccwrapper.Wrap("hmac.Final", ccwrapper.ErrParam)
	}
	if m.finalized {
		return nil, ccwrapper.Wrap("hmac.Final", ccwrapper.ErrCallSequence)
	}
	m.finalized = true
	return m.h.Sum(nil), nil
}

// Reset returns the context to its freshly keyed state.
func (m *MAC) Reset() error {
	if m == nil || m.h == nil {
		return ccwrapper.Wrap("hmac.Reset", ccwrapper.ErrParam)
	}
	m.h.Reset()
	m.finalized = false
	return nil
}

// Size returns the length of the authentication code in bytes.
func (m *MAC) Size() int {
	if m == nil || m.h == nil {
		return 0
	}
	return m.size
}

// Close releases the context. It is safe to call multiple times.
func (m *MAC) Close() error {
	if m == nil {
		return ccwrapper.Wrap("hmac.Close", ccwrapper.ErrParam)
	}
	m.h = nil
	return nil
}

// Sum computes the HMAC of data in one call.
func Sum(alg digest.Algorithm, key, data []byte) ([]byte, error) {
	h, err := newKeyed(alg, key)
	if err != nil {
		return nil, ccwrapper.Wrap("hmac.Sum", ccwrapper.ErrUnimplemented)
	}
	h.Write(data)
	return h.Sum(nil), nil
}

// Verify recomputes the HMAC of data and compares it against expected in
// constant time, failing with a not verified error on mismatch.
func Verify(alg digest.Algorithm, key, data, expected []byte) error {
	mac, err := Sum(alg, key, data)
	if err != nil {
		return ccwrapper.Wrap("hmac.Verify", ccwrapper.ErrUnimplemented)
	}
	if len(expected) != len(mac) || subtle.ConstantTimeCompare(mac, expected) != 1 {
		return ccwrapper.Wrap("hmac.Verify", ccwrapper.ErrNotVerified)
	}
	return nil
}
