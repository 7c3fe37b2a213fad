package rsa_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper/digest"
	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper/rsa"
)

var (
	keyOnce sync.Once
	key     *rsa.PrivateKey
	keyErr  error
)

// sharedKey hands out one 1024 bit key for the read-only tests.
func sharedKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	keyOnce.Do(func() {
		key, keyErr = rsa.GenerateKey(1024)
	})
	require.NoError(t, keyErr)
	return key
}

func TestGenerateKeyValidatesBits(t *testing.T) {
	for _, bits := range []int{-8, 0, 512, 1020, 8200} {
		_, err := rsa.GenerateKey(bits)
		require.ErrorIs(t, err, ccwrapper.ErrParam, "bits %d", bits)
	}
}

func TestPrivateKeyDERRoundTrip(t *testing.T) {
	priv := sharedKey(t)

	der, err := priv.DER()
	require.NoError(t, err)

	again, err := rsa.PrivateKeyFromDER(der)
	require.NoError(t, err)
	defer again.Close()

	der2, err := again.DER()
	require.NoError(t, err)
	require.True(t, bytes.Equal(der, der2))

	_, err = rsa.PrivateKeyFromDER([]byte("not a key"))
	require.ErrorIs(t, err, ccwrapper.ErrDecode)
}

func TestPublicKeyDERRoundTrip(t *testing.T) {
	priv := sharedKey(t)
	pub, err := priv.PublicKey()
	require.NoError(t, err)

	der, err := pub.DER()
	require.NoError(t, err)

	again, err := rsa.PublicKeyFromDER(der)
	require.NoError(t, err)

	der2, err := again.DER()
	require.NoError(t, err)
	require.True(t, bytes.Equal(der, der2))

	_, err = rsa.PublicKeyFromDER(der[:10])
	require.ErrorIs(t, err, ccwrapper.ErrDecode)
}

func TestComponentsRoundTrip(t *testing.T) {
	priv := sharedKey(t)
	msg := []byte("component export")

	comps, err := priv.Components()
	require.NoError(t, err)
	require.NotEmpty(t, comps.Modulus)
	require.NotEmpty(t, comps.D)

	rebuilt, err := rsa.PrivateKeyFromComponents(comps.Modulus, comps.Exponent, comps.D, comps.P, comps.Q)
	require.NoError(t, err)
	defer rebuilt.Close()

	sig, err := rebuilt.Sign(rsa.PaddingPKCS1, digest.SHA256, msg)
	require.NoError(t, err)

	pub, err := priv.PublicKey()
	require.NoError(t, err)
	require.NoError(t, pub.Verify(rsa.PaddingPKCS1, digest.SHA256, msg, sig))

	pubComps, err := pub.Components()
	require.NoError(t, err)
	require.Empty(t, pubComps.D)

	rebuiltPub, err := rsa.PublicKeyFromComponents(pubComps.Modulus, pubComps.Exponent)
	require.NoError(t, err)
	require.NoError(t, rebuiltPub.Verify(rsa.PaddingPKCS1, digest.SHA256, msg, sig))
}

func TestComponentsRejectBadExponent(t *testing.T) {
	priv := sharedKey(t)
	comps, err := priv.Components()
	require.NoError(t, err)

	_, err = rsa.PublicKeyFromComponents(comps.Modulus, nil)
	require.ErrorIs(t, err, ccwrapper.ErrParam)

	// A mangled prime must not validate.
	badP := append([]byte(nil), comps.P...)
	badP[0] ^= 1
	_, err = rsa.PrivateKeyFromComponents(comps.Modulus, comps.Exponent, comps.D, badP, comps.Q)
	require.ErrorIs(t, err, ccwrapper.ErrInvalidKey)
}

func TestSignVerifyPKCS1(t *testing.T) {
	priv := sharedKey(t)
	pub, err := priv.PublicKey()
	require.NoError(t, err)
	msg := []byte("message to sign")

	for _, alg := range []digest.Algorithm{digest.SHA1, digest.SHA256, digest.SHA512} {
		sig, err := priv.Sign(rsa.PaddingPKCS1, alg, msg)
		require.NoError(t, err, "%v", alg)
		require.Len(t, sig, priv.Size())
		require.NoError(t, pub.Verify(rsa.PaddingPKCS1, alg, msg, sig))

		err = pub.Verify(rsa.PaddingPKCS1, alg, []byte("other message"), sig)
		require.ErrorIs(t, err, ccwrapper.ErrNotVerified)

		sig[len(sig)-1] ^= 1
		err = pub.Verify(rsa.PaddingPKCS1, alg, msg, sig)
		require.ErrorIs(t, err, ccwrapper.ErrNotVerified)
	}
}

func TestSignVerifyPSS(t *testing.T) {
	priv := sharedKey(t)
	pub, err := priv.PublicKey()
	require.NoError(t, err)
	msg := []byte("probabilistic signature scheme")

	sig1, err := priv.Sign(rsa.PaddingPSS, digest.SHA256, msg)
	require.NoError(t, err)
	sig2, err := priv.Sign(rsa.PaddingPSS, digest.SHA256, msg)
	require.NoError(t, err)

	// The salt is random, so two signatures differ yet both verify.
	require.False(t, bytes.Equal(sig1, sig2))
	require.NoError(t, pub.Verify(rsa.PaddingPSS, digest.SHA256, msg, sig1))
	require.NoError(t, pub.Verify(rsa.PaddingPSS, digest.SHA256, msg, sig2))

	err = pub.Verify(rsa.PaddingPSS, digest.SHA256, []byte("altered"), sig1)
	require.ErrorIs(t, err, ccwrapper.ErrNotVerified)
}

func TestSignPaddingRules(t *testing.T) {
	priv := sharedKey(t)
	pub, err := priv.PublicKey()
	require.NoError(t, err)
	msg := []byte("padding rules")

	_, err = priv.Sign(rsa.PaddingOAEP, digest.SHA256, msg)
	require.ErrorIs(t, err, ccwrapper.ErrParam)
	err = pub.Verify(rsa.PaddingOAEP, digest.SHA256, msg, nil)
	require.ErrorIs(t, err, ccwrapper.ErrParam)

	_, err = priv.Sign(rsa.PaddingPKCS1, digest.MD4, msg)
	require.ErrorIs(t, err, ccwrapper.ErrUnimplemented)
}

func TestEncryptDecryptPKCS1(t *testing.T) {
	priv := sharedKey(t)
	pub, err := priv.PublicKey()
	require.NoError(t, err)
	msg := []byte("RSA encrypted secret")

	ct1, err := pub.Encrypt(rsa.PaddingPKCS1, digest.SHA256, msg)
	require.NoError(t, err)
	ct2, err := pub.Encrypt(rsa.PaddingPKCS1, digest.SHA256, msg)
	require.NoError(t, err)
	require.False(t, bytes.Equal(ct1, ct2), "PKCS#1 v1.5 blinding must randomize")

	pt, err := priv.Decrypt(rsa.PaddingPKCS1, digest.SHA256, ct1)
	require.NoError(t, err)
	require.Equal(t, msg, pt)

	_, err = pub.Encrypt(rsa.PaddingPSS, digest.SHA256, msg)
	require.ErrorIs(t, err, ccwrapper.ErrParam)
	_, err = priv.Decrypt(rsa.PaddingPSS, digest.SHA256, ct1)
	require.ErrorIs(t, err, ccwrapper.ErrParam)
}

func TestEncryptDecryptOAEP(t *testing.T) {
	priv := sharedKey(t)
	pub, err := priv.PublicKey()
	require.NoError(t, err)
	msg := []byte("OAEP encrypted secret")

	ct, err := pub.Encrypt(rsa.PaddingOAEP, digest.SHA256, msg)
	require.NoError(t, err)

	pt, err := priv.Decrypt(rsa.PaddingOAEP, digest.SHA256, ct)
	require.NoError(t, err)
	require.Equal(t, msg, pt)

	// The OAEP digest binds the ciphertext.
	_, err = priv.Decrypt(rsa.PaddingOAEP, digest.SHA1, ct)
	require.ErrorIs(t, err, ccwrapper.ErrDecode)

	ct[5] ^= 1
	_, err = priv.Decrypt(rsa.PaddingOAEP, digest.SHA256, ct)
	require.ErrorIs(t, err, ccwrapper.ErrDecode)
}

func TestEncryptMessageTooLong(t *testing.T) {
	priv := sharedKey(t)
	pub, err := priv.PublicKey()
	require.NoError(t, err)

	// A 1024 bit key holds at most 62 OAEP-SHA256 and 117 PKCS#1 bytes.
	_, err = pub.Encrypt(rsa.PaddingOAEP, digest.SHA256, make([]byte, 63))
	require.ErrorIs(t, err, ccwrapper.ErrParam)
	_, err = pub.Encrypt(rsa.PaddingPKCS1, digest.SHA256, make([]byte, 118))
	require.ErrorIs(t, err, ccwrapper.ErrParam)
}

func TestClosedKeyRejected(t *testing.T) {
	priv, err := rsa.GenerateKey(1024)
	require.NoError(t, err)
	require.NoError(t, priv.Close())
	require.NoError(t, priv.Close())

	_, err = priv.Sign(rsa.PaddingPKCS1, digest.SHA256, []byte("m"))
	require.ErrorIs(t, err, ccwrapper.ErrParam)
	_, err = priv.Decrypt(rsa.PaddingPKCS1, digest.SHA256, nil)
	require.ErrorIs(t, err, ccwrapper.ErrParam)
	_, err = priv.DER()
	require.ErrorIs(t, err, ccwrapper.ErrParam)
	_, err = priv.Components()
	require.ErrorIs(t, err, ccwrapper.ErrParam)
	_, err = priv.PublicKey()
	require.ErrorIs(t, err, ccwrapper.ErrParam)
}

func TestKeySizes(t *testing.T) {
	priv := sharedKey(t)
	pub, err := priv.PublicKey()
	require.NoError(t, err)
	require.Equal(t, 128, priv.Size())
	require.Equal(t, 128, pub.Size())
}
