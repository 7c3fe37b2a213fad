package ec

import (
	"crypto/elliptic"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
)

// Curve represents an elliptic curve. The zero value is invalid; use the
// package constants.
type Curve struct {
	nid int
}

// Curve constants identified by OpenSSL NID.
var (
	P224      = Curve{nid: 713}
	P256      = Curve{nid: 415}
	P384      = Curve{nid: 715}
	P521      = Curve{nid: 716}
	Secp256k1 = Curve{nid: 714}
)

// CurveFromNID constructs a Curve from its OpenSSL NID.
func CurveFromNID(nid int) (Curve, error) {
	c := Curve{nid: nid}
	if c.ec() == nil {
		return Curve{}, ccwrapper.Wrap("ec.CurveFromNID", ccwrapper.ErrParam)
	}
	return c, nil
}

// NID returns the OpenSSL NID of the curve.
func (c Curve) NID() int {
	return c.nid
}

// Size returns the scalar and field element width in bytes.
func (c Curve) Size() int {
	ec := c.ec()
	if ec == nil {
		return 0
	}
	return (ec.Params().BitSize + 7) / 8
}

// String returns a human-readable curve name.
func (c Curve) String() string {
	switch c.nid {
	case P224.nid:
		return "P-224"
	case P256.nid:
		return "P-256"
	case P384.nid:
		return "P-384"
	case P521.nid:
		return "P-521"
	case Secp256k1.nid:
		return "secp256k1"
	default:
		return "Unknown"
	}
}

// ec maps the curve onto its arithmetic implementation: the standard library
// for the NIST curves, btcec for secp256k1.
func (c Curve) ec() elliptic.Curve {
	switch c.nid {
	case P224.nid:
		return elliptic.P224()
	case P256.nid:
		return elliptic.P256()
	case P384.nid:
		return elliptic.P384()
	case P521.nid:
		return elliptic.P521()
	case Secp256k1.nid:
		return btcec.S256()
	default:
		return nil
	}
}

// rhs evaluates the curve equation right hand side x^3 + ax + b mod p, with
// a = -3 for the NIST curves and a = 0 for secp256k1.
func (c Curve) rhs(x *big.Int) *big.Int {
	params := c.ec().Params()
	y2 := new(big.Int).Mul(x, x)
	y2.Mul(y2, x)
	if c.nid != Secp256k1.nid {
		ax := new(big.Int).Lsh(x, 1)
		ax.Add(ax, x)
		y2.Sub(y2, ax)
	}
	y2.Add(y2, params.B)
	return y2.Mod(y2, params.P)
}
