package ec

import (
	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
)

// SharedSecret computes the ECDH shared secret between the private scalar
// and the peer's public point: the x coordinate of d * P as fixed-width
// big-endian bytes. Both keys must live on the same curve. The raw secret
// is not uniform; derive keys from it with the kdf package.
func SharedSecret(priv *PrivateKey, pub *PublicKey) ([]byte, error) {
	const op = "ec.SharedSecret"
	if priv == nil || priv.d == nil || pub == nil || pub.x == nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	if priv.pub.curve.nid != pub.curve.nid {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	ell := pub.curve.ec()
	if !onCurve(ell, pub.x, pub.y) {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrInvalidKey)
	}
	scalar := priv.compactScalar()
	defer ccwrapper.ZeroizeBytes(scalar)
	x, _ := ell.ScalarMult(pub.x, pub.y, scalar)
	if x.Sign() == 0 {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrInvalidKey)
	}
	out := make([]byte, pub.curve.Size())
	x.FillBytes(out)
	w := x.Bits()
	for i := range w {
		w[i] = 0
	}
	return out, nil
}
