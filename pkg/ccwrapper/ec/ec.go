// Package ec implements elliptic curve key management, ECDSA signatures and
// ECDH key agreement over the NIST curves and secp256k1.
//
// Keys move between three wire formats: the X9.63 representation
// (04 || X || Y for public keys, with the scalar appended for private keys),
// ASN.1 DER (SEC 1 private keys, PKIX public keys) and the compact form,
// which stores only the x coordinate and resolves the smaller of the two
// possible y values on import. The secp256k1 curve has no DER form here.
//
// Private keys hold the scalar and must be released with Close.
package ec

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"math/big"
	"runtime"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
)

// Format selects a key wire format.
type Format int32

const (
	// FormatBinary is the X9.63 representation.
	FormatBinary Format = 0
	// FormatDER is ASN.1 DER: SEC 1 for private keys, PKIX for public keys.
	FormatDER Format = 1
	// FormatCompact is the x-only representation with implicit minimal y.
	FormatCompact Format = 2
)

// String returns a human-readable name for the format.
func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatDER:
		return "DER"
	case FormatCompact:
		return "compact"
	default:
		return "Unknown"
	}
}

// KeyType distinguishes the two halves of a key pair.
type KeyType int32

const (
	KeyTypePublic  KeyType = 0
	KeyTypePrivate KeyType = 1
)

// String returns a human-readable name for the key type.
func (t KeyType) String() string {
	switch t {
	case KeyTypePublic:
		return "public"
	case KeyTypePrivate:
		return "private"
	default:
		return "Unknown"
	}
}

// PublicKey is a point on one of the supported curves.
type PublicKey struct {
	curve Curve
	x, y  *big.Int
}

// PrivateKey is a scalar with its public point. Release it with Close to
// zeroize the scalar.
type PrivateKey struct {
	pub PublicKey
	d   *big.Int
}

// GenerateKey creates a key pair on the curve.
func GenerateKey(curve Curve) (*PrivateKey, error) {
	const op = "ec.GenerateKey"
	ell := curve.ec()
	if ell == nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	if curve.nid == Secp256k1.nid {
		k, err := btcec.NewPrivateKey()
		if err != nil {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrRNG)
		}
		pub := k.PubKey()
		priv := wrapPrivate(curve, pub.X(), pub.Y(), new(big.Int).SetBytes(k.Serialize()))
		k.Zero()
		return priv, nil
	}
	d, x, y, err := elliptic.GenerateKey(ell, rand.Reader)
	if err != nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrRNG)
	}
	priv := wrapPrivate(curve, x, y, new(big.Int).SetBytes(d))
	ccwrapper.ZeroizeBytes(d)
	return priv, nil
}

func wrapPrivate(curve Curve, x, y, d *big.Int) *PrivateKey {
	k := &PrivateKey{pub: PublicKey{curve: curve, x: x, y: y}, d: d}
	runtime.SetFinalizer(k, (*PrivateKey).Close)
	return k
}

// ImportPublicKey parses a public key in the given format.
func ImportPublicKey(curve Curve, format Format, data []byte) (*PublicKey, error) {
	const op = "ec.ImportPublicKey"
	ell := curve.ec()
	if ell == nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	size := curve.Size()
	switch format {
	case FormatBinary:
		if len(data) != 1+2*size || data[0] != 0x04 {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrDecode)
		}
		x := new(big.Int).SetBytes(data[1 : 1+size])
		y := new(big.Int).SetBytes(data[1+size:])
		if !onCurve(ell, x, y) {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrInvalidKey)
		}
		return &PublicKey{curve: curve, x: x, y: y}, nil
	case FormatCompact:
		if len(data) != size {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrDecode)
		}
		x := new(big.Int).SetBytes(data)
		y, err := minimalY(curve, x)
		if err != nil {
			return nil, ccwrapper.Wrap(op, err)
		}
		return &PublicKey{curve: curve, x: x, y: y}, nil
	case FormatDER:
		if curve.nid == Secp256k1.nid {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
		}
		parsed, err := x509.ParsePKIXPublicKey(data)
		if err != nil {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrDecode)
		}
		ecPub, ok := parsed.(*ecdsa.PublicKey)
		if !ok {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrDecode)
		}
		if ecPub.Curve != ell {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
		}
		return &PublicKey{curve: curve, x: ecPub.X, y: ecPub.Y}, nil
	default:
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
}

// ImportPrivateKey parses a private key in the given format. The embedded or
// derived public point is checked for consistency with the scalar.
func ImportPrivateKey(curve Curve, format Format, data []byte) (*PrivateKey, error) {
	const op = "ec.ImportPrivateKey"
	ell := curve.ec()
	if ell == nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	size := curve.Size()
	switch format {
	case FormatBinary:
		if len(data) != 1+3*size || data[0] != 0x04 {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrDecode)
		}
		x := new(big.Int).SetBytes(data[1 : 1+size])
		y := new(big.Int).SetBytes(data[1+size : 1+2*size])
		d := new(big.Int).SetBytes(data[1+2*size:])
		if err := checkScalar(ell, d); err != nil {
			return nil, ccwrapper.Wrap(op, err)
		}
		gx, gy := ell.ScalarBaseMult(d.Bytes())
		if gx.Cmp(x) != 0 || gy.Cmp(y) != 0 {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrInvalidKey)
		}
		return wrapPrivate(curve, x, y, d), nil
	case FormatCompact:
		if len(data) != size {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrDecode)
		}
		d := new(big.Int).SetBytes(data)
		if err := checkScalar(ell, d); err != nil {
			return nil, ccwrapper.Wrap(op, err)
		}
		x, y := ell.ScalarBaseMult(d.Bytes())
		// The compact form pins the public point to the smaller y, so the
		// scalar flips to its negative when the derived point has the
		// larger one.
		p := ell.Params().P
		other := new(big.Int).Sub(p, y)
		if y.Cmp(other) > 0 {
			d.Sub(ell.Params().N, d)
			y = other
		}
		return wrapPrivate(curve, x, y, d), nil
	case FormatDER:
		if curve.nid == Secp256k1.nid {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
		}
		parsed, err := x509.ParseECPrivateKey(data)
		if err != nil {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrDecode)
		}
		if parsed.Curve != ell {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
		}
		return wrapPrivate(curve, parsed.X, parsed.Y, parsed.D), nil
	default:
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
}

// Export serializes the public key.
func (k *PublicKey) Export(format Format) ([]byte, error) {
	const op = "ec.Export"
	if k == nil || k.x == nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	size := k.curve.Size()
	switch format {
	case FormatBinary:
		out := make([]byte, 1+2*size)
		out[0] = 0x04
		k.x.FillBytes(out[1 : 1+size])
		k.y.FillBytes(out[1+size:])
		return out, nil
	case FormatCompact:
		out := make([]byte, size)
		k.x.FillBytes(out)
		return out, nil
	case FormatDER:
		if k.curve.nid == Secp256k1.nid {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
		}
		der, err := x509.MarshalPKIXPublicKey(k.ecdsaKey())
		if err != nil {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrUnspecified)
		}
		return der, nil
	default:
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
}

// Export serializes the private key.
func (k *PrivateKey) Export(format Format) ([]byte, error) {
	const op = "ec.Export"
	if k == nil || k.d == nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	size := k.pub.curve.Size()
	switch format {
	case FormatBinary:
		out := make([]byte, 1+3*size)
		out[0] = 0x04
		k.pub.x.FillBytes(out[1 : 1+size])
		k.pub.y.FillBytes(out[1+size : 1+2*size])
		k.d.FillBytes(out[1+2*size:])
		return out, nil
	case FormatCompact:
		out := make([]byte, size)
		k.d.FillBytes(out)
		return out, nil
	case FormatDER:
		if k.pub.curve.nid == Secp256k1.nid {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
		}
		der, err := x509.MarshalECPrivateKey(k.ecdsaKey())
		if err != nil {
			return nil, ccwrapper.Wrap(op, ccwrapper.ErrUnspecified)
		}
		return der, nil
	default:
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
}

// PublicKey returns the public half of the key pair.
func (k *PrivateKey) PublicKey() (*PublicKey, error) {
	if k == nil || k.d == nil {
		return nil, ccwrapper.Wrap("ec.PublicKey", ccwrapper.ErrParam)
	}
	pub := k.pub
	pub.x = new(big.Int).Set(k.pub.x)
	pub.y = new(big.Int).Set(k.pub.y)
	return &pub, nil
}

// Curve returns the curve the key lives on.
func (k *PublicKey) Curve() Curve {
	if k == nil {
		return Curve{}
	}
	return k.curve
}

// Curve returns the curve the key lives on.
func (k *PrivateKey) Curve() Curve {
	if k == nil {
		return Curve{}
	}
	return k.pub.curve
}

// Type reports KeyTypePublic.
func (k *PublicKey) Type() KeyType { return KeyTypePublic }

// Type reports KeyTypePrivate.
func (k *PrivateKey) Type() KeyType { return KeyTypePrivate }

// Close zeroizes the private scalar. It is safe to call multiple times.
func (k *PrivateKey) Close() error {
	if k == nil || k.d == nil {
		return nil
	}
	w := k.d.Bits()
	for i := range w {
		w[i] = 0
	}
	runtime.KeepAlive(w)
	k.d = nil
	runtime.SetFinalizer(k, nil)
	return nil
}

// ecdsaKey adapts the key for the standard library.
func (k *PublicKey) ecdsaKey() *ecdsa.PublicKey {
	return &ecdsa.PublicKey{Curve: k.curve.ec(), X: k.x, Y: k.y}
}

// ecdsaKey adapts the key for the standard library.
func (k *PrivateKey) ecdsaKey() *ecdsa.PrivateKey {
	return &ecdsa.PrivateKey{PublicKey: *k.pub.ecdsaKey(), D: k.d}
}

// onCurve reports whether (x, y) is a valid non-identity point.
func onCurve(ell elliptic.Curve, x, y *big.Int) bool {
	if x.Sign() == 0 && y.Sign() == 0 {
		return false
	}
	return ell.IsOnCurve(x, y)
}

// checkScalar verifies 1 <= d < n.
func checkScalar(ell elliptic.Curve, d *big.Int) error {
	if d.Sign() <= 0 || d.Cmp(ell.Params().N) >= 0 {
		return ccwrapper.ErrInvalidKey
	}
	return nil
}

// minimalY solves the curve equation for x and returns the smaller root.
func minimalY(curve Curve, x *big.Int) (*big.Int, error) {
	ell := curve.ec()
	p := ell.Params().P
	if x.Sign() <= 0 || x.Cmp(p) >= 0 {
		return nil, ccwrapper.ErrInvalidKey
	}
	y := new(big.Int).ModSqrt(curve.rhs(x), p)
	if y == nil {
		return nil, ccwrapper.ErrInvalidKey
	}
	other := new(big.Int).Sub(p, y)
	if y.Cmp(other) > 0 {
		y = other
	}
	return y, nil
}
