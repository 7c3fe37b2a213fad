package cryptor

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rc4"
	"encoding/binary"
	"runtime"

	"github.com/andreburgaud/crypt2go/ecb"
	ccpad "github.com/andreburgaud/crypt2go/padding"
	"golang.org/x/crypto/xts"

	"github.com/Craz1k0ek/CCWrapper/internal/cfb8"
	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
)

type state uint8

const (
	stateInitial state = iota
	stateUpdating
	stateFinal
	stateClosed
)

// phase orders the parameter protocol of the authenticated modes: nonce
// material first, then additional authenticated data, then payload. The
// phase only moves forward.
type phase uint8

const (
	phaseIV phase = iota
	phaseAuthData
	phaseData
)

// Cryptor is a symmetric cipher context. It is created with New, fed with
// Update, completed with Final and released with Close. A Cryptor is not
// safe for concurrent use.
type Cryptor struct {
	op      Operation
	alg     Algorithm
	mode    Mode
	padding Padding

	key   []byte
	tweak []byte

	// iv is the working initialization vector of the feedback modes. It
	// holds the value the engine was last (re)built with.
	iv []byte
	// createIV remembers the nonce given at creation so the authenticated
	// modes can return to their post-create state on Reset.
	createIV []byte

	block  cipher.Block
	bm     cipher.BlockMode
	stream cipher.Stream
	xtsc   *xts.Cipher
	sector uint64

	padder ccpad.Padding

	// carry buffers the sub-block remainder between Update calls in the
	// block modes. During an unpadding decryption it additionally holds
	// back one full block until Final.
	carry []byte
	// buf accumulates the whole payload for the modes that cannot stream:
	// GCM, CCM and XTS.
	buf []byte

	aad         []byte
	nonce       []byte
	macSize     int
	dataSize    int
	expectedTag []byte
	tag         []byte

	state state
	phase phase
}

// New creates a cipher context for the given operation, algorithm, mode and
// padding scheme.
//
// The iv is optional for the feedback modes; when absent an all-zero vector
// is used. ECB and RC4 reject an IV. The authenticated modes treat iv as the
// nonce, which may also be supplied later through AddParameter. XTS requires
// a tweak key of the same length as the cipher key and interprets the iv as
// a little-endian sector number; all other modes reject a tweak.
//
// Padding is only meaningful for ECB and CBC. The Both operation is limited
// to the CBC and XTS data block interfaces.
func New(op Operation, alg Algorithm, mode Mode, pad Padding, key, iv, tweak []byte) (*Cryptor, error) {
	const opName = "cryptor.New"
	if !op.valid() || !alg.valid() || !mode.valid() || !pad.valid() {
		return nil, ccwrapper.Wrap(opName, ccwrapper.ErrParam)
	}
	if (mode == ModeRC4) != (alg == RC4) {
		return nil, ccwrapper.Wrap(opName, ccwrapper.ErrParam)
	}
	if (mode == ModeGCM || mode == ModeCCM || mode == ModeXTS) && alg != AES {
		return nil, ccwrapper.Wrap(opName, ccwrapper.ErrParam)
	}
	if pad == PaddingPKCS7 && mode != ModeECB && mode != ModeCBC {
		return nil, ccwrapper.Wrap(opName, ccwrapper.ErrParam)
	}
	if op == Both {
		if mode != ModeCBC && mode != ModeXTS {
			return nil, ccwrapper.Wrap(opName, ccwrapper.ErrParam)
		}
		if pad != PaddingNone {
			return nil, ccwrapper.Wrap(opName, ccwrapper.ErrParam)
		}
	}
	if !alg.validKeySize(len(key)) {
		return nil, ccwrapper.Wrap(opName, ccwrapper.ErrKeySize)
	}
	if mode == ModeXTS {
		if len(tweak) != len(key) {
			return nil, ccwrapper.Wrap(opName, ccwrapper.ErrParam)
		}
	} else if len(tweak) != 0 {
		return nil, ccwrapper.Wrap(opName, ccwrapper.ErrParam)
	}

	c := &Cryptor{
		op:       op,
		alg:      alg,
		mode:     mode,
		padding:  pad,
		key:      append([]byte(nil), key...),
		dataSize: -1,
	}
	if len(tweak) != 0 {
		c.tweak = append([]byte(nil), tweak...)
	}

	if err := c.initCipher(); err != nil {
		c.Close()
		return nil, ccwrapper.Wrap(opName, err)
	}
	if err := c.applyCreateIV(iv); err != nil {
		c.Close()
		return nil, ccwrapper.Wrap(opName, err)
	}
	if c.mode == ModeGCM {
		c.macSize = 16
	}
	if c.mode == ModeECB || c.mode == ModeCBC {
		c.padder = ccpad.NewPkcs7Padding(c.block.BlockSize())
	}
	if c.op != Both {
		c.initEngine()
	}
	runtime.SetFinalizer(c, (*Cryptor).Close)
	return c, nil
}

// initCipher builds the keyed primitive: the block cipher, the RC4 key
// stream or the XTS pair.
func (c *Cryptor) initCipher() error {
	switch {
	case c.alg == RC4:
		// Key bytes beyond 256 never influence the RC4 key schedule.
		ks := c.key
		if len(ks) > 256 {
			ks = ks[:256]
		}
		s, err := rc4.NewCipher(ks)
		if err != nil {
			return ccwrapper.ErrKeySize
		}
		c.stream = s
		return nil
	case c.mode == ModeXTS:
		combined := make([]byte, 0, len(c.key)+len(c.tweak))
		combined = append(combined, c.key...)
		combined = append(combined, c.tweak...)
		defer ccwrapper.ZeroizeBytes(combined)
		x, err := xts.NewCipher(aes.NewCipher, combined)
		if err != nil {
			return ccwrapper.ErrKeySize
		}
		c.xtsc = x
		return nil
	default:
		b, err := newBlock(c.alg, c.key)
		if err != nil {
			return ccwrapper.ErrKeySize
		}
		c.block = b
		return nil
	}
}

// applyCreateIV validates and installs the IV given to New.
func (c *Cryptor) applyCreateIV(iv []byte) error {
	switch c.mode {
	case ModeECB, ModeRC4:
		if len(iv) != 0 {
			return ccwrapper.ErrParam
		}
		return nil
	case ModeGCM:
		c.nonce = append([]byte(nil), iv...)
		c.createIV = append([]byte(nil), iv...)
		return nil
	case ModeCCM:
		if len(iv) != 0 && (len(iv) < 7 || len(iv) > 13) {
			return ccwrapper.ErrParam
		}
		c.nonce = append([]byte(nil), iv...)
		c.createIV = append([]byte(nil), iv...)
		return nil
	case ModeXTS:
		sector, err := parseSectorIV(iv)
		if err != nil {
			return err
		}
		c.sector = sector
		return nil
	default:
		bs := c.block.BlockSize()
		if len(iv) != 0 && len(iv) != bs {
			return ccwrapper.ErrParam
		}
		c.iv = make([]byte, bs)
		copy(c.iv, iv)
		return nil
	}
}

// parseSectorIV interprets an XTS initialization vector as a little-endian
// sector number. Both the bare 8 byte form and a 16 byte form with a zero
// upper half are accepted.
func parseSectorIV(iv []byte) (uint64, error) {
	switch len(iv) {
	case 0:
		return 0, nil
	case 8:
		return binary.LittleEndian.Uint64(iv), nil
	case 16:
		for _, b := range iv[8:] {
			if b != 0 {
				return 0, ccwrapper.ErrParam
			}
		}
		return binary.LittleEndian.Uint64(iv[:8]), nil
	default:
		return 0, ccwrapper.ErrParam
	}
}

// initEngine builds the streaming engine for the feedback modes from the
// current key and IV. The buffered modes keep no engine between calls.
func (c *Cryptor) initEngine() {
	switch c.mode {
	case ModeECB:
		if c.op == Encrypt {
			c.bm = ecb.NewECBEncrypter(c.block)
		} else {
			c.bm = ecb.NewECBDecrypter(c.block)
		}
	case ModeCBC:
		if c.op == Encrypt {
			c.bm = cipher.NewCBCEncrypter(c.block, c.iv)
		} else {
			c.bm = cipher.NewCBCDecrypter(c.block, c.iv)
		}
	case ModeCFB:
		if c.op == Encrypt {
			c.stream = cipher.NewCFBEncrypter(c.block, c.iv)
		} else {
			c.stream = cipher.NewCFBDecrypter(c.block, c.iv)
		}
	case ModeCFB8:
		if c.op == Encrypt {
			c.stream = cfb8.NewEncrypter(c.block, c.iv)
		} else {
			c.stream = cfb8.NewDecrypter(c.block, c.iv)
		}
	case ModeOFB:
		c.stream = cipher.NewOFB(c.block, c.iv)
	case ModeCTR:
		c.stream = cipher.NewCTR(c.block, c.iv)
	}
}

// setIV installs iv through the parameter interface. The feedback modes
// rebuild their engine, the authenticated modes append nonce material.
func (c *Cryptor) setIV(iv []byte) error {
	switch c.mode {
	case ModeECB, ModeRC4:
		return ccwrapper.ErrUnimplemented
	case ModeGCM, ModeCCM:
		if c.state != stateInitial || c.phase != phaseIV {
			return ccwrapper.ErrCallSequence
		}
		c.nonce = append(c.nonce, iv...)
		return nil
	case ModeXTS:
		if c.state != stateInitial {
			return ccwrapper.ErrCallSequence
		}
		sector, err := parseSectorIV(iv)
		if err != nil {
			return err
		}
		c.sector = sector
		return nil
	default:
		if c.state != stateInitial {
			return ccwrapper.ErrCallSequence
		}
		if len(iv) != c.block.BlockSize() {
			return ccwrapper.ErrParam
		}
		copy(c.iv, iv)
		if c.op != Both {
			c.initEngine()
		}
		return nil
	}
}

// Update feeds payload into the context and writes any ready output to out,
// returning the number of bytes written. The block modes emit in block
// multiples and buffer the remainder; the buffered modes emit nothing until
// Final. If out is too small the required size is returned alongside
// ErrBufferTooSmall and the input is not consumed. Output may alias input.
func (c *Cryptor) Update(in, out []byte) (int, error) {
	const op = "cryptor.Update"
	if c == nil || c.state == stateClosed {
		return 0, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	if c.state == stateFinal {
		return 0, ccwrapper.Wrap(op, ccwrapper.ErrCallSequence)
	}
	if c.op == Both {
		return 0, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	switch {
	case c.mode.authenticated():
		n, err := c.updateAEAD(in)
		return n, ccwrapper.Wrap(op, err)
	case c.mode == ModeXTS:
		c.buf = append(c.buf, in...)
		c.state = stateUpdating
		return 0, nil
	case c.mode.streaming():
		if len(out) < len(in) {
			return len(in), ccwrapper.Wrap(op, ccwrapper.ErrBufferTooSmall)
		}
		c.stream.XORKeyStream(out[:len(in)], in)
		c.state = stateUpdating
		return len(in), nil
	default:
		n, err := c.updateBlock(in, out)
		return n, ccwrapper.Wrap(op, err)
	}
}

// updateBlock implements Update for ECB and CBC. The emitted length is
// computed before the input is absorbed so a short output buffer leaves the
// context untouched.
func (c *Cryptor) updateBlock(in, out []byte) (int, error) {
	bs := c.block.BlockSize()
	total := len(c.carry) + len(in)
	emit := total - total%bs
	// An unpadding decryption holds back one block: the final block must
	// go through Final so its padding can be removed.
	if c.op == Decrypt && c.padding == PaddingPKCS7 && emit == total && total > 0 {
		emit -= bs
	}
	if emit < 0 {
		emit = 0
	}
	if len(out) < emit {
		return emit, ccwrapper.ErrBufferTooSmall
	}
	c.carry = append(c.carry, in...)
	c.state = stateUpdating
	if emit == 0 {
		return 0, nil
	}
	c.bm.CryptBlocks(out[:emit], c.carry[:emit])
	n := copy(c.carry, c.carry[emit:])
	ccwrapper.ZeroizeBytes(c.carry[n:])
	c.carry = c.carry[:n]
	return emit, nil
}

// updateAEAD implements Update for GCM and CCM, which buffer the payload
// until Final. CCM insists on its tag and payload sizes up front and on the
// declared payload length not being exceeded.
func (c *Cryptor) updateAEAD(in []byte) (int, error) {
	if c.mode == ModeCCM && (c.macSize == 0 || c.dataSize < 0) {
		return 0, ccwrapper.ErrCallSequence
	}
	if c.mode == ModeCCM && len(c.buf)+len(in) > c.dataSize {
		return 0, ccwrapper.ErrParam
	}
	c.phase = phaseData
	c.state = stateUpdating
	c.buf = append(c.buf, in...)
	return 0, nil
}

// Final completes the operation, writing any remaining output to out and
// returning the number of bytes written. After a successful Final the
// context only accepts GetParameter, Reset and Close.
func (c *Cryptor) Final(out []byte) (int, error) {
	const op = "cryptor.Final"
	if c == nil || c.state == stateClosed {
		return 0, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	if c.state == stateFinal {
		return 0, ccwrapper.Wrap(op, ccwrapper.ErrCallSequence)
	}
	if c.op == Both {
		return 0, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	switch {
	case c.mode == ModeGCM:
		n, err := c.finalGCM(out)
		return n, ccwrapper.Wrap(op, err)
	case c.mode == ModeCCM:
		n, err := c.finalCCM(out)
		return n, ccwrapper.Wrap(op, err)
	case c.mode == ModeXTS:
		n, err := c.finalXTS(out)
		return n, ccwrapper.Wrap(op, err)
	case c.mode.streaming():
		c.state = stateFinal
		return 0, nil
	default:
		n, err := c.finalBlock(out)
		return n, ccwrapper.Wrap(op, err)
	}
}

// finalBlock implements Final for ECB and CBC: pad and emit the remainder on
// encryption, unpad the held back block on decryption.
func (c *Cryptor) finalBlock(out []byte) (int, error) {
	bs := c.block.BlockSize()
	if c.op == Encrypt {
		if c.padding != PaddingPKCS7 {
			if len(c.carry) != 0 {
				return 0, ccwrapper.ErrAlignment
			}
			c.state = stateFinal
			return 0, nil
		}
		padded, err := c.padder.Pad(append([]byte(nil), c.carry...))
		if err != nil {
			return 0, ccwrapper.ErrParam
		}
		defer ccwrapper.ZeroizeBytes(padded)
		if len(out) < len(padded) {
			return len(padded), ccwrapper.ErrBufferTooSmall
		}
		c.bm.CryptBlocks(out[:len(padded)], padded)
		c.clearCarry()
		c.state = stateFinal
		return len(padded), nil
	}

	if c.padding != PaddingPKCS7 {
		if len(c.carry) != 0 {
			return 0, ccwrapper.ErrAlignment
		}
		c.state = stateFinal
		return 0, nil
	}
	if len(c.carry) == 0 {
		// A padded message is never empty.
		return 0, ccwrapper.ErrDecode
	}
	if len(c.carry) != bs {
		return 0, ccwrapper.ErrAlignment
	}
	if len(out) < bs {
		return bs, ccwrapper.ErrBufferTooSmall
	}
	block := make([]byte, bs)
	defer ccwrapper.ZeroizeBytes(block)
	c.bm.CryptBlocks(block, c.carry)
	plain, err := c.padder.Unpad(block)
	if err != nil {
		return 0, ccwrapper.ErrDecode
	}
	n := copy(out, plain)
	c.clearCarry()
	c.state = stateFinal
	return n, nil
}

// finalXTS processes the buffered payload as a single data unit at the
// configured sector number.
func (c *Cryptor) finalXTS(out []byte) (int, error) {
	if len(c.buf) == 0 {
		c.state = stateFinal
		return 0, nil
	}
	if len(c.buf)%16 != 0 {
		return 0, ccwrapper.ErrAlignment
	}
	if len(out) < len(c.buf) {
		return len(c.buf), ccwrapper.ErrBufferTooSmall
	}
	if c.op == Encrypt {
		c.xtsc.Encrypt(out[:len(c.buf)], c.buf, c.sector)
	} else {
		c.xtsc.Decrypt(out[:len(c.buf)], c.buf, c.sector)
	}
	n := len(c.buf)
	c.clearBuf()
	c.state = stateFinal
	return n, nil
}

// Reset returns the context to its initial state so a new message can be
// processed with the same key. A nil iv selects an all-zero vector for the
// feedback modes and restores the creation-time nonce for the authenticated
// modes. ECB, RC4 and XTS contexts cannot be reset.
func (c *Cryptor) Reset(iv []byte) error {
	const op = "cryptor.Reset"
	if c == nil || c.state == stateClosed {
		return ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	switch c.mode {
	case ModeECB, ModeRC4, ModeXTS:
		return ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
	case ModeGCM, ModeCCM:
		c.clearBuf()
		ccwrapper.ZeroizeBytes(c.aad)
		c.aad = nil
		ccwrapper.ZeroizeBytes(c.expectedTag)
		c.expectedTag = nil
		c.tag = nil
		c.nonce = append(c.nonce[:0], c.createIV...)
		if len(iv) != 0 {
			c.nonce = append(c.nonce[:0], iv...)
		}
		c.macSize = 0
		if c.mode == ModeGCM {
			c.macSize = 16
		}
		c.dataSize = -1
		c.phase = phaseIV
		c.state = stateInitial
		return nil
	default:
		bs := c.block.BlockSize()
		if len(iv) != 0 && len(iv) != bs {
			return ccwrapper.Wrap(op, ccwrapper.ErrParam)
		}
		for i := range c.iv {
			c.iv[i] = 0
		}
		copy(c.iv, iv)
		c.clearCarry()
		if c.op != Both {
			c.initEngine()
		}
		c.state = stateInitial
		return nil
	}
}

// OutputLength returns the output buffer size needed for an Update call with
// inputLen bytes, or for an Update plus Final when final is true. The
// buffered modes only produce output at Final.
func (c *Cryptor) OutputLength(inputLen int, final bool) int {
	if c == nil || c.state == stateClosed || inputLen < 0 {
		return 0
	}
	switch {
	case c.mode.streaming():
		return inputLen
	case c.mode.authenticated() || c.mode == ModeXTS:
		if final {
			return len(c.buf) + inputLen
		}
		return 0
	}
	bs := c.block.BlockSize()
	total := len(c.carry) + inputLen
	if final {
		if c.op == Encrypt && c.padding == PaddingPKCS7 {
			return (total/bs)*bs + bs
		}
		return (total / bs) * bs
	}
	emit := total - total%bs
	if c.op == Decrypt && c.padding == PaddingPKCS7 && emit == total && total > 0 {
		emit -= bs
	}
	if emit < 0 {
		emit = 0
	}
	return emit
}

func (c *Cryptor) clearCarry() {
	ccwrapper.ZeroizeBytes(c.carry)
	c.carry = c.carry[:0]
}

func (c *Cryptor) clearBuf() {
	ccwrapper.ZeroizeBytes(c.buf)
	c.buf = c.buf[:0]
}

// Close zeroizes the key material and buffered payload and releases the
// context. It is safe to call multiple times.
func (c *Cryptor) Close() error {
	if c == nil || c.state == stateClosed {
		return nil
	}
	ccwrapper.ZeroizeBytes(c.key)
	ccwrapper.ZeroizeBytes(c.tweak)
	ccwrapper.ZeroizeBytes(c.iv)
	ccwrapper.ZeroizeBytes(c.createIV)
	ccwrapper.ZeroizeBytes(c.carry)
	ccwrapper.ZeroizeBytes(c.buf)
	ccwrapper.ZeroizeBytes(c.aad)
	ccwrapper.ZeroizeBytes(c.nonce)
	ccwrapper.ZeroizeBytes(c.expectedTag)
	ccwrapper.ZeroizeBytes(c.tag)
	c.key, c.tweak, c.iv, c.createIV = nil, nil, nil, nil
	c.carry, c.buf, c.aad, c.nonce = nil, nil, nil, nil
	c.expectedTag, c.tag = nil, nil
	c.block, c.bm, c.stream, c.xtsc = nil, nil, nil, nil
	c.state = stateClosed
	runtime.SetFinalizer(c, nil)
	return nil
}

// Crypt is the one-shot convenience form: it creates a context, processes in
// completely and returns the output. The authenticated modes need their
// parameter protocol and are rejected; XTS requires a tweak and therefore
// also has no one-shot form.
func Crypt(op Operation, alg Algorithm, mode Mode, pad Padding, key, iv, in []byte) ([]byte, error) {
	const opName = "cryptor.Crypt"
	if mode == ModeGCM || mode == ModeCCM {
		return nil, ccwrapper.Wrap(opName, ccwrapper.ErrParam)
	}
	c, err := New(op, alg, mode, pad, key, iv, nil)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	out := make([]byte, c.OutputLength(len(in), true))
	n, err := c.Update(in, out)
	if err != nil {
		return nil, err
	}
	m, err := c.Final(out[n:])
	if err != nil {
		return nil, err
	}
	return out[:n+m], nil
}
