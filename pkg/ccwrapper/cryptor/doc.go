// Package cryptor implements the symmetric cipher engine: block, stream and
// authenticated encryption under a single incremental interface.
//
// # Lifecycle
//
// A context is created with New, optionally tuned through AddParameter and
// AddParameterSize, fed with Update, completed with Final and released with
// Close. OutputLength sizes the output buffers. Reset rewinds a feedback or
// authenticated context for a fresh message under the same key.
//
//	c, err := cryptor.New(cryptor.Encrypt, cryptor.AES, cryptor.ModeCBC,
//		cryptor.PaddingPKCS7, key, iv, nil)
//	if err != nil {
//		// handle error
//	}
//	defer c.Close()
//
//	out := make([]byte, c.OutputLength(len(msg), true))
//	n, err := c.Update(msg, out)
//	if err != nil {
//		// handle error
//	}
//	m, err := c.Final(out[n:])
//	if err != nil {
//		// handle error
//	}
//	out = out[:n+m]
//
// # Algorithms and modes
//
// AES, DES, 3DES, CAST, RC2 and Blowfish operate in the ECB, CBC, CFB,
// CFB8, OFB and CTR modes; AES additionally supports XTS, GCM and CCM. RC4
// is a stream cipher and pairs only with ModeRC4. PKCS#7 padding applies to
// ECB and CBC.
//
// # Authenticated modes
//
// GCM and CCM follow a strict parameter order: nonce material, then
// additional authenticated data, then payload. CCM further requires the tag
// size and total payload length before the first Update. On decryption the
// expected tag is supplied with AddParameter(ParameterAuthTag, ...) and the
// payload is only released when it verifies; the computed tag is available
// through GetParameter after Final. CCM alone can decrypt without a
// supplied tag, deferring the comparison to the caller.
//
// # Data blocks
//
// EncryptDataBlock and DecryptDataBlock process an aligned chunk with an
// explicit IV outside the incremental state. CBC uses them for random
// access at block granularity, XTS for full data units addressed by sector
// number. A context created with the Both operation serves both directions
// of these calls.
package cryptor
