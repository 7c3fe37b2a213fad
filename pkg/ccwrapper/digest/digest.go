// Package digest provides message digest algorithms behind a single closed
// algorithm enum. Raw selector values match CommonCrypto's CCDigestAlgorithm
// so they can be exchanged with systems speaking the native encoding.
//
// MD4, MD5 and RIPEMD-160 are provided for compatibility with legacy formats
// only and must not be used in new designs.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160"

	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
)

// Algorithm identifies a message digest. The zero value is invalid.
type Algorithm int32

const (
	MD4    Algorithm = 2
	MD5    Algorithm = 3
	RMD160 Algorithm = 5
	SHA1   Algorithm = 8
	SHA224 Algorithm = 9
	SHA256 Algorithm = 10
	SHA384 Algorithm = 11
	SHA512 Algorithm = 12
)

// Raw returns the native selector value.
func (a Algorithm) Raw() int32 {
	return int32(a)
}

// String returns a human-readable name for the algorithm.
func (a Algorithm) String() string {
	switch a {
	case MD4:
		return "MD4"
	case MD5:
		return "MD5"
	case RMD160:
		return "RIPEMD-160"
	case SHA1:
		return "SHA-1"
	case SHA224:
		return "SHA-224"
	case SHA256:
		return "SHA-256"
	case SHA384:
		return "SHA-384"
	case SHA512:
		return "SHA-512"
	default:
		return "Unknown"
	}
}

// Size returns the digest length in bytes, or 0 for unknown algorithms.
func (a Algorithm) Size() int {
	switch a {
	case MD4, MD5:
		return 16
	case RMD160, SHA1:
		return 20
	case SHA224:
		return 28
	case SHA256:
		return 32
	case SHA384:
		return 48
	case SHA512:
		return 64
	default:
		return 0
	}
}

// BlockSize returns the internal block length in bytes, or 0 for unknown
// algorithms.
func (a Algorithm) BlockSize() int {
	switch a {
	case MD4, MD5, RMD160, SHA1, SHA224, SHA256:
		return 64
	case SHA384, SHA512:
		return 128
	default:
		return 0
	}
}

// New returns a fresh hash state for the algorithm.
func New(a Algorithm) (hash.Hash, error) {
	switch a {
	case MD4:
		return md4.New(), nil
	case MD5:
		return md5.New(), nil
	case RMD160:
		return ripemd160.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA224:
		return sha256.New224(), nil
	case SHA256:
		return sha256.New(), nil
	case SHA384:
		return sha512.New384(), nil
	case SHA512:
		return sha512.New(), nil
	default:
		return nil, ccwrapper.Wrap("digest.New", ccwrapper.ErrUnimplemented)
	}
}

// Sum computes the digest of data in one call.
func Sum(a Algorithm, data []byte) ([]byte, error) {
	h, err := New(a)
	if err != nil {
		return nil, err
	}
	h.Write(data)
	return h.Sum(nil), nil
}
