// Package kdf provides the key derivation functions: PBKDF2 with round
// calibration, HKDF, NIST SP 800-108 counter mode and ANSI X9.63.
package kdf

import (
	"crypto/hmac"
	"encoding/binary"
	"hash"
	"io"
	"time"

	baokdf "github.com/openbao/openbao/sdk/v2/helper/kdf"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"

	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper/digest"
)

// calibrationRounds is the sample iteration count used to measure PBKDF2
// throughput during calibration.
const calibrationRounds = 10000

func hashFunc(alg digest.Algorithm) (func() hash.Hash, error) {
	if _, err := digest.New(alg); err != nil {
		return nil, ccwrapper.ErrUnimplemented
	}
	return func() hash.Hash {
		h, _ := digest.New(alg)
		return h
	}, nil
}

// PBKDF2 derives length bytes from a password and salt using the given number
// of rounds of HMAC over the digest algorithm (RFC 2898).
func PBKDF2(alg digest.Algorithm, password, salt []byte, rounds, length int) ([]byte, error) {
	if rounds <= 0 || length <= 0 {
		return nil, ccwrapper.Wrap("kdf.PBKDF2", ccwrapper.ErrParam)
	}
	h, err := hashFunc(alg)
	if err != nil {
		return nil, ccwrapper.Wrap("kdf.PBKDF2", err)
	}
	return pbkdf2.Key(password, salt, rounds, length, h), nil
}

// CalibratePBKDF2 returns a round count so that deriving length bytes from a
// password and salt of the given sizes takes approximately target on the
// current host. The result is at least one.
func CalibratePBKDF2(alg digest.Algorithm, passwordLen, saltLen, length int, target time.Duration) (int, error) {
	if passwordLen <= 0 || saltLen <= 0 || length <= 0 || target <= 0 {
		return 0, ccwrapper.Wrap("kdf.CalibratePBKDF2", ccwrapper.ErrParam)
	}
	h, err := hashFunc(alg)
	if err != nil {
		return 0, ccwrapper.Wrap("kdf.CalibratePBKDF2", err)
	}
	password := make([]byte, passwordLen)
	salt := make([]byte, saltLen)
	for i := range password {
		password[i] = 'p'
	}
	for i := range salt {
		salt[i] = 's'
	}
	start := time.Now()
	pbkdf2.Key(password, salt, calibrationRounds, length, h)
	elapsed := time.Since(start)
	if elapsed <= 0 {
		elapsed = time.Nanosecond
	}
	rounds := int(float64(calibrationRounds) * float64(target) / float64(elapsed))
	if rounds < 1 {
		rounds = 1
	}
	return rounds, nil
}

// HKDF derives length bytes from input keying material using the extract and
// expand construction of RFC 5869. Salt and info may be nil.
func HKDF(alg digest.Algorithm, ikm, salt, info []byte, length int) ([]byte, error) {
	if length <= 0 {
		return nil, ccwrapper.Wrap("kdf.HKDF", ccwrapper.ErrParam)
	}
	h, err := hashFunc(alg)
	if err != nil {
		return nil, ccwrapper.Wrap("kdf.HKDF", err)
	}
	if length > 255*alg.Size() {
		return nil, ccwrapper.Wrap("kdf.HKDF", ccwrapper.ErrParam)
	}
	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.New(h, ikm, salt, info), out); err != nil {
		return nil, ccwrapper.Wrap("kdf.HKDF", ccwrapper.ErrParam)
	}
	return out, nil
}

// HKDFExtract performs only the extract step of RFC 5869, returning a
// pseudorandom key of the digest size.
func HKDFExtract(alg digest.Algorithm, ikm, salt []byte) ([]byte, error) {
	h, err := hashFunc(alg)
	if err != nil {
		return nil, ccwrapper.Wrap("kdf.HKDFExtract", err)
	}
	return hkdf.Extract(h, ikm, salt), nil
}

// HKDFExpand performs only the expand step of RFC 5869 over an existing
// pseudorandom key.
func HKDFExpand(alg digest.Algorithm, prk, info []byte, length int) ([]byte, error) {
	if length <= 0 {
		return nil, ccwrapper.Wrap("kdf.HKDFExpand", ccwrapper.ErrParam)
	}
	h, err := hashFunc(alg)
	if err != nil {
		return nil, ccwrapper.Wrap("kdf.HKDFExpand", err)
	}
	if length > 255*alg.Size() {
		return nil, ccwrapper.Wrap("kdf.HKDFExpand", ccwrapper.ErrParam)
	}
	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.Expand(h, prk, info), out); err != nil {
		return nil, ccwrapper.Wrap("kdf.HKDFExpand", ccwrapper.ErrParam)
	}
	return out, nil
}

// Counter derives length bytes using the NIST SP 800-108 counter construction
// over HMAC with the digest algorithm. The fixed input is assembled as
// label || 0x00 || context.
func Counter(alg digest.Algorithm, key, label, context []byte, length int) ([]byte, error) {
	if length <= 0 {
		return nil, ccwrapper.Wrap("kdf.Counter", ccwrapper.ErrParam)
	}
	fixed := make([]byte, 0, len(label)+1+len(context))
	fixed = append(fixed, label...)
	fixed = append(fixed, 0x00)
	fixed = append(fixed, context...)

	var prf baokdf.PRF
	var prfLen uint32
	if alg == digest.SHA256 {
		prf = baokdf.HMACSHA256PRF
		prfLen = baokdf.HMACSHA256PRFLen
	} else {
		h, err := hashFunc(alg)
		if err != nil {
			return nil, ccwrapper.Wrap("kdf.Counter", err)
		}
		prf = func(key, data []byte) ([]byte, error) {
			mac := hmac.New(h, key)
			mac.Write(data)
			return mac.Sum(nil), nil
		}
		prfLen = uint32(alg.Size()) * 8
	}
	out, err := baokdf.CounterMode(prf, prfLen, key, fixed, uint32(length)*8)
	if err != nil {
		return nil, ccwrapper.Wrap("kdf.Counter", ccwrapper.ErrParam)
	}
	return out, nil
}

// X963 derives length bytes from a shared secret using the ANSI X9.63 KDF:
// the concatenation of Hash(secret || counter || sharedInfo) for a big-endian
// counter starting at one.
func X963(alg digest.Algorithm, secret, sharedInfo []byte, length int) ([]byte, error) {
	if length <= 0 {
		return nil, ccwrapper.Wrap("kdf.X963", ccwrapper.ErrParam)
	}
	h, err := digest.New(alg)
	if err != nil {
		return nil, ccwrapper.Wrap("kdf.X963", ccwrapper.ErrUnimplemented)
	}
	out := make([]byte, 0, length+alg.Size())
	var counter [4]byte
	for i := uint32(1); len(out) < length; i++ {
		binary.BigEndian.PutUint32(counter[:], i)
		h.Reset()
		h.Write(secret)
		h.Write(counter[:])
		h.Write(sharedInfo)
		out = h.Sum(out)
	}
	return out[:length], nil
}
