package cmac_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper/cmac"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

// NIST SP 800-38B AES-128 examples.
func TestSumKnownAnswers(t *testing.T) {
	key := unhex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	tests := []struct {
		msg  string
		want string
	}{
		{"", "bb1d6929e95937287fa37d129b756746"},
		{"6bc1bee22e409f96e93d7e117393172a", "070a16b46b4d4144f79bdd9dd04a287c"},
	}
	for _, tc := range tests {
		got, err := cmac.Sum(key, unhex(t, tc.msg))
		if err != nil {
			t.Fatalf("Sum(%q): %v", tc.msg, err)
		}
		if hex.EncodeToString(got) != tc.want {
			t.Errorf("Sum(%q) = %x, want %s", tc.msg, got, tc.want)
		}
	}
}

func TestIncrementalMatchesOneShot(t *testing.T) {
	key := unhex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	msg := unhex(t, "6bc1bee22e409f96e93d7e117393172a")

	m, err := cmac.New(key)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Close()
	if err := m.Update(msg[:7]); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := m.Update(msg[7:]); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := m.Final()
	if err != nil {
		t.Fatalf("Final: %v", err)
	}
	oneShot, err := cmac.Sum(key, msg)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if !bytes.Equal(got, oneShot) {
		t.Fatalf("incremental %x != one-shot %x", got, oneShot)
	}
	if got := m.Size(); got != cmac.TagSize {
		t.Fatalf("Size() = %d, want %d", got, cmac.TagSize)
	}
}

func TestFinalSequence(t *testing.T) {
	m, err := cmac.New(make([]byte, 16))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Close()
	if _, err := m.Final(); err != nil {
		t.Fatalf("Final: %v", err)
	}
	if err := m.Update([]byte("x")); !errors.Is(err, ccwrapper.ErrCallSequence) {
		t.Fatalf("Update after Final err = %v, want ErrCallSequence", err)
	}
	if err := m.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if err := m.Update([]byte("x")); err != nil {
		t.Fatalf("Update after Reset: %v", err)
	}
}

func TestVerify(t *testing.T) {
	key := make([]byte, 32)
	msg := []byte("authenticate me")
	mac, err := cmac.Sum(key, msg)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if err := cmac.Verify(key, msg, mac); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	mac[3] ^= 0x80
	if err := cmac.Verify(key, msg, mac); !errors.Is(err, ccwrapper.ErrNotVerified) {
		t.Fatalf("Verify(tampered) err = %v, want ErrNotVerified", err)
	}
}

func TestKeySizeValidation(t *testing.T) {
	for _, n := range []int{0, 8, 15, 17, 33, 64} {
		if _, err := cmac.Sum(make([]byte, n), nil); !errors.Is(err, ccwrapper.ErrKeySize) {
			t.Errorf("Sum with %d-byte key err = %v, want ErrKeySize", n, err)
		}
	}
	for _, n := range []int{16, 24, 32} {
		if _, err := cmac.Sum(make([]byte, n), nil); err != nil {
			t.Errorf("Sum with %d-byte key: %v", n, err)
		}
	}
}
