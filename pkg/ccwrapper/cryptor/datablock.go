package cryptor

import (
	"crypto/cipher"

	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
)

// EncryptDataBlock encrypts a block-aligned chunk with an explicit IV,
// independent of the incremental state of the context. It is supported for
// the CBC and XTS modes; CBC interprets iv as the chaining vector, XTS as
// the sector number. No padding is applied. The number of bytes written is
// returned.
func (c *Cryptor) EncryptDataBlock(iv, in, out []byte) (int, error) {
	const op = "cryptor.EncryptDataBlock"
	n, err := c.dataBlock(Encrypt, iv, in, out)
	return n, ccwrapper.Wrap(op, err)
}

// DecryptDataBlock is the decryption counterpart of EncryptDataBlock.
func (c *Cryptor) DecryptDataBlock(iv, in, out []byte) (int, error) {
	const op = "cryptor.DecryptDataBlock"
	n, err := c.dataBlock(Decrypt, iv, in, out)
	return n, ccwrapper.Wrap(op, err)
}

func (c *Cryptor) dataBlock(dir Operation, iv, in, out []byte) (int, error) {
	if c == nil || c.state == stateClosed {
		return 0, ccwrapper.ErrParam
	}
	if c.op != Both && c.op != dir {
		return 0, ccwrapper.ErrParam
	}
	switch c.mode {
	case ModeCBC:
		bs := c.block.BlockSize()
		if len(iv) != bs {
			return 0, ccwrapper.ErrParam
		}
		if len(in) == 0 || len(in)%bs != 0 {
			return 0, ccwrapper.ErrAlignment
		}
		if len(out) < len(in) {
			return len(in), ccwrapper.ErrBufferTooSmall
		}
		var bm cipher.BlockMode
		if dir == Encrypt {
			bm = cipher.NewCBCEncrypter(c.block, iv)
		} else {
			bm = cipher.NewCBCDecrypter(c.block, iv)
		}
		bm.CryptBlocks(out[:len(in)], in)
		return len(in), nil
	case ModeXTS:
		if len(iv) == 0 {
			return 0, ccwrapper.ErrParam
		}
		sector, err := parseSectorIV(iv)
		if err != nil {
			return 0, err
		}
		if len(in) == 0 || len(in)%16 != 0 {
			return 0, ccwrapper.ErrAlignment
		}
		if len(out) < len(in) {
			return len(in), ccwrapper.ErrBufferTooSmall
		}
		if dir == Encrypt {
			c.xtsc.Encrypt(out[:len(in)], in, sector)
		} else {
			c.xtsc.Decrypt(out[:len(in)], in, sector)
		}
		return len(in), nil
	default:
		return 0, ccwrapper.ErrUnimplemented
	}
}
