package cfb8

import (
	"bytes"
	"crypto/aes"
	"encoding/hex"
	"testing"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

// NIST SP 800-38A F.3.7: CFB8-AES128.Encrypt.
func TestCFB8AES128Vector(t *testing.T) {
	key := unhex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	iv := unhex(t, "000102030405060708090a0b0c0d0e0f")
	plaintext := unhex(t, "6bc1bee22e409f96e93d7e117393172aae2d")
	want := unhex(t, "3b79424c9c0dd436bace9e0ed4586a4f32b9")

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}
	dst := make([]byte, len(plaintext))
	NewEncrypter(block, iv).XORKeyStream(dst, plaintext)
	if !bytes.Equal(dst, want) {
		t.Fatalf("encrypt = %x, want %x", dst, want)
	}

	recovered := make([]byte, len(want))
	NewDecrypter(block, iv).XORKeyStream(recovered, dst)
	if !bytes.Equal(recovered, plaintext) {
		t.Fatalf("decrypt = %x, want %x", recovered, plaintext)
	}
}

func TestByteAtATimeMatchesBulk(t *testing.T) {
	key := unhex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	iv := make([]byte, 16)
	msg := []byte("stream one byte at a time")

	block, _ := aes.NewCipher(key)
	bulk := make([]byte, len(msg))
	NewEncrypter(block, iv).XORKeyStream(bulk, msg)

	stream := NewEncrypter(block, iv)
	pieces := make([]byte, len(msg))
	for i := range msg {
		stream.XORKeyStream(pieces[i:i+1], msg[i:i+1])
	}
	if !bytes.Equal(bulk, pieces) {
		t.Fatalf("bulk %x != bytewise %x", bulk, pieces)
	}
}

func TestInPlace(t *testing.T) {
	key := unhex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	iv := make([]byte, 16)
	msg := []byte("in place operation")

	block, _ := aes.NewCipher(key)
	want := make([]byte, len(msg))
	NewEncrypter(block, iv).XORKeyStream(want, msg)

	buf := append([]byte(nil), msg...)
	NewEncrypter(block, iv).XORKeyStream(buf, buf)
	if !bytes.Equal(buf, want) {
		t.Fatalf("in-place %x != separate %x", buf, want)
	}
}
