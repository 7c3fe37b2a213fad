package cryptor

import (
	"crypto/cipher"
	"crypto/subtle"

	"github.com/pion/dtls/v2/pkg/crypto/ccm"

	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
)

// newGCM builds the GCM instance for the buffered nonce and tag size. The
// standard 12 byte nonce supports tag sizes 12 through 16; any other nonce
// length is only available with the full 16 byte tag.
func (c *Cryptor) newGCM() (cipher.AEAD, error) {
	switch {
	case len(c.nonce) == 0:
		return nil, ccwrapper.ErrParam
	case len(c.nonce) == 12 && c.macSize == 16:
		return cipher.NewGCM(c.block)
	case len(c.nonce) == 12:
		return cipher.NewGCMWithTagSize(c.block, c.macSize)
	case c.macSize == 16:
		return cipher.NewGCMWithNonceSize(c.block, len(c.nonce))
	default:
		return nil, ccwrapper.ErrParam
	}
}

func (c *Cryptor) finalGCM(out []byte) (int, error) {
	aead, err := c.newGCM()
	if err != nil {
		return 0, ccwrapper.ErrParam
	}
	if c.op == Encrypt {
		return c.seal(aead, out)
	}
	if len(c.expectedTag) == 0 {
		// GCM decryption always verifies; the expected tag is part of the
		// required call sequence.
		return 0, ccwrapper.ErrCallSequence
	}
	return c.open(aead, out)
}

func (c *Cryptor) finalCCM(out []byte) (int, error) {
	if c.macSize == 0 || c.dataSize < 0 {
		return 0, ccwrapper.ErrCallSequence
	}
	if len(c.nonce) < 7 || len(c.nonce) > 13 {
		return 0, ccwrapper.ErrParam
	}
	if len(c.buf) != c.dataSize {
		return 0, ccwrapper.ErrParam
	}
	aead, err := ccm.NewCCM(c.block, c.macSize, len(c.nonce))
	if err != nil {
		return 0, ccwrapper.ErrParam
	}
	if c.op == Encrypt {
		return c.seal(aead, out)
	}
	if len(c.expectedTag) == 0 {
		return c.openCCMUnverified(out)
	}
	return c.open(aead, out)
}

// seal encrypts the buffered payload, stores the tag for GetParameter and
// writes the ciphertext to out.
func (c *Cryptor) seal(aead cipher.AEAD, out []byte) (int, error) {
	n := len(c.buf)
	if len(out) < n {
		return n, ccwrapper.ErrBufferTooSmall
	}
	sealed := aead.Seal(nil, c.nonce, c.buf, c.aad)
	copy(out[:n], sealed[:n])
	c.tag = append([]byte(nil), sealed[n:]...)
	ccwrapper.ZeroizeBytes(sealed)
	c.clearBuf()
	c.state = stateFinal
	return n, nil
}

// open decrypts the buffered ciphertext against the expected tag. A tag
// mismatch yields ErrNotVerified and releases no plaintext.
func (c *Cryptor) open(aead cipher.AEAD, out []byte) (int, error) {
	if len(c.expectedTag) != c.macSize {
		return 0, ccwrapper.ErrParam
	}
	n := len(c.buf)
	if len(out) < n {
		return n, ccwrapper.ErrBufferTooSmall
	}
	sealed := make([]byte, 0, n+len(c.expectedTag))
	sealed = append(sealed, c.buf...)
	sealed = append(sealed, c.expectedTag...)
	plain, err := aead.Open(nil, c.nonce, sealed, c.aad)
	if err != nil {
		return 0, ccwrapper.ErrNotVerified
	}
	copy(out[:n], plain)
	ccwrapper.ZeroizeBytes(plain)
	c.tag = append([]byte(nil), c.expectedTag...)
	c.clearBuf()
	c.state = stateFinal
	return n, nil
}

// openCCMUnverified recovers the plaintext when no expected tag was supplied
// and recomputes the tag over the recovered plaintext so it can be fetched
// and compared afterwards. CCM encrypts the payload in CTR mode with the
// counter starting at one; the block with counter zero feeds the tag only.
func (c *Cryptor) openCCMUnverified(out []byte) (int, error) {
	n := len(c.buf)
	if len(out) < n {
		return n, ccwrapper.ErrBufferTooSmall
	}
	iv := make([]byte, 16)
	iv[0] = byte(14 - len(c.nonce))
	copy(iv[1:], c.nonce)
	iv[15] = 1
	plain := make([]byte, n)
	defer ccwrapper.ZeroizeBytes(plain)
	cipher.NewCTR(c.block, iv).XORKeyStream(plain, c.buf)

	aead, err := ccm.NewCCM(c.block, c.macSize, len(c.nonce))
	if err != nil {
		return 0, ccwrapper.ErrParam
	}
	sealed := aead.Seal(nil, c.nonce, plain, c.aad)
	c.tag = append([]byte(nil), sealed[n:]...)
	ccwrapper.ZeroizeBytes(sealed)
	copy(out[:n], plain)
	c.clearBuf()
	c.state = stateFinal
	return n, nil
}

// VerifyTag compares tag against the tag computed by Final in constant time.
func (c *Cryptor) VerifyTag(tag []byte) error {
	const op = "cryptor.VerifyTag"
	if c == nil || c.state == stateClosed {
		return ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	if !c.mode.authenticated() {
		return ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
	}
	if c.state != stateFinal {
		return ccwrapper.Wrap(op, ccwrapper.ErrCallSequence)
	}
	if len(tag) != len(c.tag) || subtle.ConstantTimeCompare(tag, c.tag) != 1 {
		return ccwrapper.Wrap(op, ccwrapper.ErrNotVerified)
	}
	return nil
}
