// Package rsa provides RSA key management, signatures and encryption with
// PKCS#1 v1.5, PSS and OAEP padding.
//
// Keys import and export in PKCS#1 DER form and as raw big-endian
// components. Signing hashes the message internally with the selected digest
// algorithm. Private keys hold sensitive material and must be released with
// Close.
package rsa

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"math/big"
	"runtime"

	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper/digest"
)

// Padding selects the RSA padding scheme. Raw values match the SecPadding
// selectors.
type Padding int32

const (
	PaddingPKCS1 Padding = 1001
	PaddingOAEP  Padding = 1002
	PaddingPSS   Padding = 1005
)

// String returns a human-readable name for the padding scheme.
func (p Padding) String() string {
	switch p {
	case PaddingPKCS1:
		return "PKCS1"
	case PaddingOAEP:
		return "OAEP"
	case PaddingPSS:
		return "PSS"
	default:
		return "Unknown"
	}
}

// PublicKey is an RSA public key.
type PublicKey struct {
	k *rsa.PublicKey
}

// PrivateKey is an RSA private key. Release it with Close to zeroize the
// private components.
type PrivateKey struct {
	k *rsa.PrivateKey
}

// Components holds the raw big-endian key material. The private fields are
// only populated when exported from a private key.
type Components struct {
	Modulus  []byte
	Exponent []byte
	D        []byte
	P        []byte
	Q        []byte
}

// GenerateKey creates an RSA key pair. The size must be a multiple of eight
// between 1024 and 8192 bits.
func GenerateKey(bits int) (*PrivateKey, error) {
	const op = "rsa.GenerateKey"
	if bits < 1024 || bits > 8192 || bits%8 != 0 {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	k, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrRNG)
	}
	return wrapPrivate(k), nil
}

func wrapPrivate(k *rsa.PrivateKey) *PrivateKey {
	priv := &PrivateKey{k: k}
	runtime.SetFinalizer(priv, (*PrivateKey).Close)
	return priv
}

// PrivateKeyFromDER parses a PKCS#1 encoded private key.
func PrivateKeyFromDER(der []byte) (*PrivateKey, error) {
	const op = "rsa.PrivateKeyFromDER"
	k, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrDecode)
	}
	if err := k.Validate(); err != nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrInvalidKey)
	}
	return wrapPrivate(k), nil
}

// PublicKeyFromDER parses a PKCS#1 encoded public key.
func PublicKeyFromDER(der []byte) (*PublicKey, error) {
	const op = "rsa.PublicKeyFromDER"
	k, err := x509.ParsePKCS1PublicKey(der)
	if err != nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrDecode)
	}
	return &PublicKey{k: k}, nil
}

// PrivateKeyFromComponents rebuilds a private key from its raw parts. The
// key is validated before use.
func PrivateKeyFromComponents(modulus, exponent, d, p, q []byte) (*PrivateKey, error) {
	const op = "rsa.PrivateKeyFromComponents"
	e, err := exponentInt(exponent)
	if err != nil {
		return nil, ccwrapper.Wrap(op, err)
	}
	k := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{
			N: new(big.Int).SetBytes(modulus),
			E: e,
		},
		D: new(big.Int).SetBytes(d),
		Primes: []*big.Int{
			new(big.Int).SetBytes(p),
			new(big.Int).SetBytes(q),
		},
	}
	if err := k.Validate(); err != nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrInvalidKey)
	}
	k.Precompute()
	return wrapPrivate(k), nil
}

// PublicKeyFromComponents rebuilds a public key from its modulus and
// exponent.
func PublicKeyFromComponents(modulus, exponent []byte) (*PublicKey, error) {
	const op = "rsa.PublicKeyFromComponents"
	e, err := exponentInt(exponent)
	if err != nil {
		return nil, ccwrapper.Wrap(op, err)
	}
	n := new(big.Int).SetBytes(modulus)
	if n.Sign() <= 0 {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	return &PublicKey{k: &rsa.PublicKey{N: n, E: e}}, nil
}

func exponentInt(exponent []byte) (int, error) {
	e := new(big.Int).SetBytes(exponent)
	if e.Sign() <= 0 || e.BitLen() > 31 {
		return 0, ccwrapper.ErrParam
	}
	return int(e.Int64()), nil
}

// PublicKey returns the public half of the key.
func (k *PrivateKey) PublicKey() (*PublicKey, error) {
	if k == nil || k.k == nil {
		return nil, ccwrapper.Wrap("rsa.PublicKey", ccwrapper.ErrParam)
	}
	pub := k.k.PublicKey
	return &PublicKey{k: &pub}, nil
}

// DER exports the key in PKCS#1 form.
func (k *PrivateKey) DER() ([]byte, error) {
	if k == nil || k.k == nil {
		return nil, ccwrapper.Wrap("rsa.DER", ccwrapper.ErrParam)
	}
	return x509.MarshalPKCS1PrivateKey(k.k), nil
}

// DER exports the key in PKCS#1 form.
func (k *PublicKey) DER() ([]byte, error) {
	if k == nil || k.k == nil {
		return nil, ccwrapper.Wrap("rsa.DER", ccwrapper.ErrParam)
	}
	return x509.MarshalPKCS1PublicKey(k.k), nil
}

// Components exports the raw key material, including the private parts.
func (k *PrivateKey) Components() (Components, error) {
	if k == nil || k.k == nil {
		return Components{}, ccwrapper.Wrap("rsa.Components", ccwrapper.ErrParam)
	}
	return Components{
		Modulus:  k.k.N.Bytes(),
		Exponent: big.NewInt(int64(k.k.E)).Bytes(),
		D:        k.k.D.Bytes(),
		P:        k.k.Primes[0].Bytes(),
		Q:        k.k.Primes[1].Bytes(),
	}, nil
}

// Components exports the modulus and public exponent.
func (k *PublicKey) Components() (Components, error) {
	if k == nil || k.k == nil {
		return Components{}, ccwrapper.Wrap("rsa.Components", ccwrapper.ErrParam)
	}
	return Components{
		Modulus:  k.k.N.Bytes(),
		Exponent: big.NewInt(int64(k.k.E)).Bytes(),
	}, nil
}

// Size returns the modulus size in bytes.
func (k *PrivateKey) Size() int {
	if k == nil || k.k == nil {
		return 0
	}
	return k.k.Size()
}

// Size returns the modulus size in bytes.
func (k *PublicKey) Size() int {
	if k == nil || k.k == nil {
		return 0
	}
	return k.k.Size()
}

// Sign hashes data with the digest algorithm and signs it. PaddingPKCS1 and
// PaddingPSS are supported; PSS uses a salt of the digest length.
func (k *PrivateKey) Sign(pad Padding, alg digest.Algorithm, data []byte) ([]byte, error) {
	const op = "rsa.Sign"
	if k == nil || k.k == nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	h, hashed, err := hashMessage(alg, data)
	if err != nil {
		return nil, ccwrapper.Wrap(op, err)
	}
	switch pad {
	case PaddingPKCS1:
		if alg == digest.MD4 {
			// No DigestInfo prefix is defined for MD4.
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
		}
		sig, err := rsa.SignPKCS1v15(rand.Reader, k.k, h, hashed)
		if err != nil {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
		}
		return sig, nil
	case PaddingPSS:
		sig, err := rsa.SignPSS(rand.Reader, k.k, h, hashed, &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash})
		if err != nil {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
		}
		return sig, nil
	default:
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
}

// Verify hashes data and checks sig against it, returning nil on success and
// ErrNotVerified on mismatch.
func (k *PublicKey) Verify(pad Padding, alg digest.Algorithm, data, sig []byte) error {
	const op = "rsa.Verify"
	if k == nil || k.k == nil {
		return ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	h, hashed, err := hashMessage(alg, data)
	if err != nil {
		return ccwrapper.Wrap(op, err)
	}
	switch pad {
	case PaddingPKCS1:
		if alg == digest.MD4 {
			return ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
		}
		if err := rsa.VerifyPKCS1v15(k.k, h, hashed, sig); err != nil {
			return ccwrapper.Wrap(op, ccwrapper.ErrNotVerified)
		}
		return nil
	case PaddingPSS:
		opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash}
		if err := rsa.VerifyPSS(k.k, h, hashed, sig, opts); err != nil {
			return ccwrapper.Wrap(op, ccwrapper.ErrNotVerified)
		}
		return nil
	default:
		return ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
}

// Encrypt encrypts plain under the public key. PaddingPKCS1 and PaddingOAEP
// are supported; alg selects the OAEP digest and is ignored for PKCS#1 v1.5.
func (k *PublicKey) Encrypt(pad Padding, alg digest.Algorithm, plain []byte) ([]byte, error) {
	const op = "rsa.Encrypt"
	if k == nil || k.k == nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	switch pad {
	case PaddingPKCS1:
		ct, err := rsa.EncryptPKCS1v15(rand.Reader, k.k, plain)
		if err != nil {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
		}
		return ct, nil
	case PaddingOAEP:
		h, err := digest.New(alg)
		if err != nil {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
		}
		ct, err := rsa.EncryptOAEP(h, rand.Reader, k.k, plain, nil)
		if err != nil {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
		}
		return ct, nil
	default:
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
}

// Decrypt decrypts ct with the private key. Malformed padding or a wrong key
// yields ErrDecode.
func (k *PrivateKey) Decrypt(pad Padding, alg digest.Algorithm, ct []byte) ([]byte, error) {
	const op = "rsa.Decrypt"
	if k == nil || k.k == nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	switch pad {
	case PaddingPKCS1:
		plain, err := rsa.DecryptPKCS1v15(rand.Reader, k.k, ct)
		if err != nil {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrDecode)
		}
		return plain, nil
	case PaddingOAEP:
		h, err := digest.New(alg)
		if err != nil {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
		}
		plain, err := rsa.DecryptOAEP(h, rand.Reader, k.k, ct, nil)
		if err != nil {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrDecode)
		}
		return plain, nil
	default:
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
}

// Close zeroizes the private key material. It is safe to call multiple
// times.
func (k *PrivateKey) Close() error {
	if k == nil || k.k == nil {
		return nil
	}
	wipeInt(k.k.D)
	for _, p := range k.k.Primes {
		wipeInt(p)
	}
	wipeInt(k.k.Precomputed.Dp)
	wipeInt(k.k.Precomputed.Dq)
	wipeInt(k.k.Precomputed.Qinv)
	k.k = nil
	runtime.SetFinalizer(k, nil)
	return nil
}

// hashMessage maps the digest algorithm to its crypto.Hash and hashes data.
func hashMessage(alg digest.Algorithm, data []byte) (crypto.Hash, []byte, error) {
	h, err := cryptoHash(alg)
	if err != nil {
		return 0, nil, err
	}
	sum, err := digest.Sum(alg, data)
	if err != nil {
		return 0, nil, err
	}
	return h, sum, nil
}

func cryptoHash(alg digest.Algorithm) (crypto.Hash, error) {
	switch alg {
	case digest.MD4:
		return crypto.MD4, nil
	case digest.MD5:
		return crypto.MD5, nil
	case digest.RMD160:
		return crypto.RIPEMD160, nil
	case digest.SHA1:
		return crypto.SHA1, nil
	case digest.SHA224:
		return crypto.SHA224, nil
	case digest.SHA256:
		return crypto.SHA256, nil
	case digest.SHA384:
		return crypto.SHA384, nil
	case digest.SHA512:
		return crypto.SHA512, nil
	default:
		return 0, ccwrapper.ErrUnimplemented
	}
}

// wipeInt clears the words backing a big integer.
func wipeInt(v *big.Int) {
	if v == nil {
		return
	}
	w := v.Bits()
	for i := range w {
		w[i] = 0
	}
	runtime.KeepAlive(w)
}
