package cryptor

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"

	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/cast5"

	"github.com/Craz1k0ek/CCWrapper/internal/rc2"
	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
)

// Operation selects the direction of a cipher context. Raw values match
// CCOperation.
type Operation int32

const (
	Encrypt Operation = 0
	Decrypt Operation = 1
	// Both creates a bidirectional context for the explicit-IV data block
	// operations. It is valid only with the CBC and XTS modes and cannot be
	// used for incremental Update/Final processing.
	Both Operation = 3
)

// String returns a human-readable name for the operation.
func (o Operation) String() string {
	switch o {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	case Both:
		return "both"
	default:
		return "Unknown"
	}
}

func (o Operation) valid() bool {
	return o == Encrypt || o == Decrypt || o == Both
}

// Algorithm identifies a symmetric cipher. Raw values match CCAlgorithm.
type Algorithm int32

const (
	AES       Algorithm = 0
	DES       Algorithm = 1
	TripleDES Algorithm = 2
	CAST      Algorithm = 3
	RC4       Algorithm = 4
	RC2       Algorithm = 5
	Blowfish  Algorithm = 6
)

// String returns a human-readable name for the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AES:
		return "AES"
	case DES:
		return "DES"
	case TripleDES:
		return "3DES"
	case CAST:
		return "CAST"
	case RC4:
		return "RC4"
	case RC2:
		return "RC2"
	case Blowfish:
		return "Blowfish"
	default:
		return "Unknown"
	}
}

func (a Algorithm) valid() bool {
	return a >= AES && a <= Blowfish
}

// BlockSize returns the cipher block size in bytes. RC4 is a stream cipher
// and reports 1.
func (a Algorithm) BlockSize() int {
	switch a {
	case AES:
		return 16
	case DES, TripleDES, CAST, RC2, Blowfish:
		return 8
	case RC4:
		return 1
	default:
		return 0
	}
}

// validKeySize reports whether n bytes is an acceptable key length.
func (a Algorithm) validKeySize(n int) bool {
	switch a {
	case AES:
		return n == 16 || n == 24 || n == 32
	case DES:
		return n == 8
	case TripleDES:
		return n == 24
	case CAST:
		return n >= 5 && n <= 16
	case RC4:
		return n >= 1 && n <= 512
	case RC2:
		return n >= 1 && n <= 128
	case Blowfish:
		return n >= 8 && n <= 56
	default:
		return false
	}
}

// newBlock builds the block cipher for the algorithm. RC4 has no block form.
func newBlock(a Algorithm, key []byte) (cipher.Block, error) {
	switch a {
	case AES:
		return aes.NewCipher(key)
	case DES:
		return des.NewCipher(key)
	case TripleDES:
		return des.NewTripleDESCipher(key)
	case CAST:
		// cast5 requires the full 16 bytes; shorter keys are zero padded
		// per RFC 2144 section 2.5.
		padded := make([]byte, 16)
		copy(padded, key)
		defer ccwrapper.ZeroizeBytes(padded)
		return cast5.NewCipher(padded)
	case RC2:
		return rc2.New(key, 8*len(key))
	case Blowfish:
		return blowfish.NewCipher(key)
	default:
		return nil, ccwrapper.ErrParam
	}
}
