package ec

import (
	"crypto/ecdsa"
	"crypto/rand"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper/digest"
)

// Sign hashes data with the digest algorithm and signs it, returning an
// ASN.1 DER encoded ECDSA signature.
func (k *PrivateKey) Sign(alg digest.Algorithm, data []byte) ([]byte, error) {
	const op = "ec.Sign"
	if k == nil || k.d == nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	hashed, err := digest.Sum(alg, data)
	if err != nil {
		return nil, ccwrapper.Wrap(op, err)
	}
	if k.pub.curve.nid == Secp256k1.nid {
		scalar := k.compactScalar()
		defer ccwrapper.ZeroizeBytes(scalar)
		priv, _ := btcec.PrivKeyFromBytes(scalar)
		defer priv.Zero()
		return btcecdsa.Sign(priv, hashed).Serialize(), nil
	}
	sig, err := ecdsa.SignASN1(rand.Reader, k.ecdsaKey(), hashed)
	if err != nil {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrUnspecified)
	}
	return sig, nil
}

// Verify hashes data and checks the DER encoded signature against it,
// returning nil on success and ErrNotVerified on mismatch.
func (k *PublicKey) Verify(alg digest.Algorithm, data, sig []byte) error {
	const op = "ec.Verify"
	if k == nil || k.x == nil {
		return ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	hashed, err := digest.Sum(alg, data)
	if err != nil {
		return ccwrapper.Wrap(op, err)
	}
	if k.curve.nid == Secp256k1.nid {
		pub, err := btcec.ParsePubKey(k.uncompressed())
		if err != nil {
			return ccwrapper.Wrap(op, ccwrapper.ErrInvalidKey)
		}
		parsed, err := btcecdsa.ParseDERSignature(sig)
		if err != nil {
			return ccwrapper.Wrap(op, ccwrapper.ErrNotVerified)
		}
		if !parsed.Verify(hashed, pub) {
			return ccwrapper.Wrap(op, ccwrapper.ErrNotVerified)
		}
		return nil
	}
	if !ecdsa.VerifyASN1(k.ecdsaKey(), hashed, sig) {
		return ccwrapper.Wrap(op, ccwrapper.ErrNotVerified)
	}
	return nil
}

// compactScalar returns the scalar as fixed-width big-endian bytes.
func (k *PrivateKey) compactScalar() []byte {
	out := make([]byte, k.pub.curve.Size())
	k.d.FillBytes(out)
	return out
}

// uncompressed returns the 04 || X || Y point encoding.
func (k *PublicKey) uncompressed() []byte {
	size := k.curve.Size()
	out := make([]byte, 1+2*size)
	out[0] = 0x04
	k.x.FillBytes(out[1 : 1+size])
	k.y.FillBytes(out[1+size:])
	return out
}
