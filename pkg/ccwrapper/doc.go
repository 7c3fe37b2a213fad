// Package ccwrapper is the root of a pure-Go cryptographic primitive library
// modeled on the CommonCrypto service surface. It defines the shared status
// taxonomy, error wrapping conventions and zeroization helpers used by the
// primitive subpackages.
//
// # Subpackages
//
//   - cryptor: symmetric cipher contexts (block, stream and AEAD modes)
//   - bignum: signed arbitrary-precision integers
//   - digest: message digest algorithms
//   - hmac: keyed-hash message authentication
//   - cmac: AES-CMAC message authentication
//   - kdf: PBKDF2, HKDF, SP 800-108 counter and ANSI X9.63 derivation
//   - rsa: RSA key management, signatures and encryption
//   - ec: elliptic curve key management, ECDSA and ECDH
//   - random: cryptographically secure random bytes
//   - logging: structured logging surface for applications embedding the library
//
// # Errors
//
// Every failure maps to one of the Status values, which mirror CommonCrypto's
// CCCryptorStatus codes so callers interoperating with Apple platforms can
// translate errors one to one. Each failure Status has a matching sentinel
// error; subpackages wrap sentinels with the failing operation:
//
//	if errors.Is(err, ccwrapper.ErrNotVerified) {
//		// authentication failed: a normal outcome, not a program bug
//	}
//
// # Sensitive material
//
// Types holding key material provide Close or Free methods that zeroize
// internal state. Callers should release contexts as soon as they are done:
//
//	ctx, err := cryptor.New(...)
//	if err != nil { ... }
//	defer ctx.Close()
package ccwrapper
