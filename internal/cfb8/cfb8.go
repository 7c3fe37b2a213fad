// Package cfb8 implements 8-bit cipher feedback mode: one block encryption
// per byte of data, shifting a single byte of feedback into the register at a
// time.
package cfb8

import "crypto/cipher"

type cfb8 struct {
	b       cipher.Block
	sr      []byte // shift register
	out     []byte
	decrypt bool
}

// NewEncrypter returns a Stream which encrypts with 8-bit cipher feedback
// mode using the given Block. The iv must equal the Block's block size.
func NewEncrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, false)
}

// NewDecrypter returns a Stream which decrypts with 8-bit cipher feedback
// mode using the given Block. The iv must equal the Block's block size.
func NewDecrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, true)
}

func newCFB8(block cipher.Block, iv []byte, decrypt bool) cipher.Stream {
	blockSize := block.BlockSize()
	if len(iv) != blockSize {
		panic("cfb8: IV length must equal block size")
	}
	x := &cfb8{
		b:       block,
		sr:      make([]byte, blockSize),
		out:     make([]byte, blockSize),
		decrypt: decrypt,
	}
	copy(x.sr, iv)
	return x
}

func (x *cfb8) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("cfb8: output smaller than input")
	}
	n := len(x.sr)
	for i := range src {
		x.b.Encrypt(x.out, x.sr)
		c := src[i] ^ x.out[0]
		copy(x.sr, x.sr[1:])
		if x.decrypt {
			x.sr[n-1] = src[i]
		} else {
			x.sr[n-1] = c
		}
		dst[i] = c
	}
}
