package bignum

import (
	"crypto/rand"
	"math/big"
	"runtime"

	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
)

// primeRounds is the number of Miller-Rabin iterations used by IsPrime.
const primeRounds = 20

// BigNum is a signed arbitrary-precision integer. The zero value is not usable;
// obtain values through the constructors. A BigNum is not safe for concurrent
// use.
type BigNum struct {
	v *big.Int
}

func wrap(v *big.Int) *BigNum {
	b := &BigNum{v: v}
	runtime.SetFinalizer(b, (*BigNum).Free)
	return b
}

// New returns a BigNum holding zero.
func New() *BigNum {
	return wrap(new(big.Int))
}

// FromBytes interprets data as an unsigned big-endian integer. An empty slice
// yields zero. The input is copied.
func FromBytes(data []byte) *BigNum {
	return wrap(new(big.Int).SetBytes(data))
}

// FromHex parses a hexadecimal string with an optional leading minus sign.
func FromHex(s string) (*BigNum, error) {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, ccwrapper.Wrap("bignum.FromHex", ccwrapper.ErrDecode)
	}
	return wrap(v), nil
}

// FromDecimal parses a decimal string with an optional leading minus sign.
func FromDecimal(s string) (*BigNum, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, ccwrapper.Wrap("bignum.FromDecimal", ccwrapper.ErrDecode)
	}
	return wrap(v), nil
}

// Random returns a uniformly random value in [0, 2^bits).
func Random(bits int) (*BigNum, error) {
	if bits <= 0 {
		return nil, ccwrapper.Wrap("bignum.Random", ccwrapper.ErrParam)
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	v, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return nil, ccwrapper.Wrap("bignum.Random", ccwrapper.ErrRNG)
	}
	return wrap(v), nil
}

func (b *BigNum) usable() bool {
	return b != nil && b.v != nil
}

// Bytes returns the magnitude as big-endian bytes. Zero yields an empty slice.
func (b *BigNum) Bytes() []byte {
	if !b.usable() {
		return nil
	}
	return b.v.Bytes()
}

// Hex returns the value in lowercase hexadecimal with a leading minus sign for
// negative values.
func (b *BigNum) Hex() string {
	if !b.usable() {
		return "0"
	}
	return b.v.Text(16)
}

// Decimal returns the value in base 10.
func (b *BigNum) Decimal() string {
	if !b.usable() {
		return "0"
	}
	return b.v.Text(10)
}

// ByteCount returns the number of bytes needed to hold the magnitude.
func (b *BigNum) ByteCount() int {
	return (b.BitCount() + 7) / 8
}

// BitCount returns the length of the magnitude in bits. Zero has length 0.
func (b *BigNum) BitCount() int {
	if !b.usable() {
		return 0
	}
	return b.v.BitLen()
}

// IsZero reports whether the value is zero.
func (b *BigNum) IsZero() bool {
	return !b.usable() || b.v.Sign() == 0
}

// IsNegative reports whether the value is strictly negative.
func (b *BigNum) IsNegative() bool {
	return b.usable() && b.v.Sign() < 0
}

// IsPrime reports whether the value is probably prime, using 20 Miller-Rabin
// rounds. Values below two are never prime.
func (b *BigNum) IsPrime() bool {
	if !b.usable() || b.v.Sign() <= 0 {
		return false
	}
	return b.v.ProbablyPrime(primeRounds)
}

// Cmp compares b and other, returning -1, 0 or +1. Freed values compare as
// zero.
func (b *BigNum) Cmp(other *BigNum) int {
	bv, ov := big.NewInt(0), big.NewInt(0)
	if b.usable() {
		bv = b.v
	}
	if other.usable() {
		ov = other.v
	}
	return bv.Cmp(ov)
}

// CmpUint compares b against an unsigned value, returning -1, 0 or +1.
func (b *BigNum) CmpUint(u uint64) int {
	if !b.usable() {
		b = New()
	}
	return b.v.Cmp(new(big.Int).SetUint64(u))
}

func binaryOp(op string, a, b *BigNum, f func(z, x, y *big.Int) *big.Int) (*BigNum, error) {
	if !a.usable() || !b.usable() {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	return wrap(f(new(big.Int), a.v, b.v)), nil
}

// Add returns b + other.
func (b *BigNum) Add(other *BigNum) (*BigNum, error) {
	return binaryOp("bignum.Add", b, other, (*big.Int).Add)
}

// Sub returns b - other.
func (b *BigNum) Sub(other *BigNum) (*BigNum, error) {
	return binaryOp("bignum.Sub", b, other, (*big.Int).Sub)
}

// Mul returns b * other.
func (b *BigNum) Mul(other *BigNum) (*BigNum, error) {
	return binaryOp("bignum.Mul", b, other, (*big.Int).Mul)
}

func uintOp(op string, b *BigNum, u uint64, f func(z, x, y *big.Int) *big.Int) (*BigNum, error) {
	if !b.usable() {
		return nil, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	return wrap(f(new(big.Int), b.v, new(big.Int).SetUint64(u))), nil
}

// AddUint returns b + u.
func (b *BigNum) AddUint(u uint64) (*BigNum, error) {
	return uintOp("bignum.AddUint", b, u, (*big.Int).Add)
}

// SubUint returns b - u. The result may be negative.
func (b *BigNum) SubUint(u uint64) (*BigNum, error) {
	return uintOp("bignum.SubUint", b, u, (*big.Int).Sub)
}

// MulUint returns b * u.
func (b *BigNum) MulUint(u uint64) (*BigNum, error) {
	return uintOp("bignum.MulUint", b, u, (*big.Int).Mul)
}

// floorQuoRem computes floored division: q rounded toward negative infinity,
// with a non-zero remainder taking the sign of the divisor.
func floorQuoRem(a, d *big.Int) (*big.Int, *big.Int) {
	q, r := new(big.Int).QuoRem(a, d, new(big.Int))
	if r.Sign() != 0 && (r.Sign() < 0) != (d.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
		r.Add(r, d)
	}
	return q, r
}

// Div returns the floored quotient and remainder of b / d. The quotient is
// rounded toward negative infinity; a non-zero remainder has the sign of d.
// Division by zero fails with a parameter error.
func (b *BigNum) Div(d *BigNum) (*BigNum, *BigNum, error) {
	if !b.usable() || !d.usable() {
		return nil, nil, ccwrapper.Wrap("bignum.Div", ccwrapper.ErrParam)
	}
	if d.v.Sign() == 0 {
		return nil, nil, ccwrapper.Wrap("bignum.Div", ccwrapper.ErrParam)
	}
	q, r := floorQuoRem(b.v, d.v)
	return wrap(q), wrap(r), nil
}

// Mod returns the floored remainder of b / m, carrying the sign of m when
// non-zero.
func (b *BigNum) Mod(m *BigNum) (*BigNum, error) {
	_, r, err := b.Div(m)
	if err != nil {
		return nil, ccwrapper.Wrap("bignum.Mod", ccwrapper.ErrParam)
	}
	return r, nil
}

// ModUint returns b mod m for an unsigned modulus. The result is always in
// [0, m).
func (b *BigNum) ModUint(m uint64) (uint64, error) {
	if !b.usable() || m == 0 {
		return 0, ccwrapper.Wrap("bignum.ModUint", ccwrapper.ErrParam)
	}
	r := new(big.Int).Mod(b.v, new(big.Int).SetUint64(m))
	return r.Uint64(), nil
}

// MulMod returns (b * other) mod m with floored modulus semantics.
func (b *BigNum) MulMod(other, m *BigNum) (*BigNum, error) {
	if !b.usable() || !other.usable() || !m.usable() || m.v.Sign() == 0 {
		return nil, ccwrapper.Wrap("bignum.MulMod", ccwrapper.ErrParam)
	}
	p := new(big.Int).Mul(b.v, other.v)
	_, r := floorQuoRem(p, m.v)
	return wrap(r), nil
}

// ExpMod returns b^e mod m with the result in [0, |m|). A zero exponent yields
// 1 mod m, so the result is zero when |m| is one. Negative bases are first
// normalized into [0, |m|). Negative exponents and a zero modulus fail with a
// parameter error.
func (b *BigNum) ExpMod(e, m *BigNum) (*BigNum, error) {
	if !b.usable() || !e.usable() || !m.usable() {
		return nil, ccwrapper.Wrap("bignum.ExpMod", ccwrapper.ErrParam)
	}
	if m.v.Sign() == 0 || e.v.Sign() < 0 {
		return nil, ccwrapper.Wrap("bignum.ExpMod", ccwrapper.ErrParam)
	}
	mod := new(big.Int).Abs(m.v)
	base := new(big.Int).Mod(b.v, mod)
	return wrap(new(big.Int).Exp(base, e.v, mod)), nil
}

// Lsh returns b shifted left by n bits.
func (b *BigNum) Lsh(n uint) (*BigNum, error) {
	if !b.usable() {
		return nil, ccwrapper.Wrap("bignum.Lsh", ccwrapper.ErrParam)
	}
	return wrap(new(big.Int).Lsh(b.v, n)), nil
}

// Rsh returns b shifted right by n bits, rounding toward negative infinity,
// so -1 >> 1 is -1.
func (b *BigNum) Rsh(n uint) (*BigNum, error) {
	if !b.usable() {
		return nil, ccwrapper.Wrap("bignum.Rsh", ccwrapper.ErrParam)
	}
	return wrap(new(big.Int).Rsh(b.v, n)), nil
}

// SetValue overwrites b in place with the small unsigned integer u.
func (b *BigNum) SetValue(u uint64) error {
	if !b.usable() {
		return ccwrapper.Wrap("bignum.SetValue", ccwrapper.ErrParam)
	}
	b.v.SetUint64(u)
	return nil
}

// SetNegative sets the sign of b in place. Zero is unaffected and stays
// non-negative.
func (b *BigNum) SetNegative(negative bool) error {
	if !b.usable() {
		return ccwrapper.Wrap("bignum.SetNegative", ccwrapper.ErrParam)
	}
	if b.v.Sign() == 0 {
		return nil
	}
	abs := new(big.Int).Abs(b.v)
	if negative {
		b.v.Neg(abs)
	} else {
		b.v.Set(abs)
	}
	return nil
}

// Copy returns an independent copy of b.
func (b *BigNum) Copy() (*BigNum, error) {
	if !b.usable() {
		return nil, ccwrapper.Wrap("bignum.Copy", ccwrapper.ErrParam)
	}
	return wrap(new(big.Int).Set(b.v)), nil
}

// Clear resets the value to zero in place, zeroizing the current limbs.
func (b *BigNum) Clear() error {
	if !b.usable() {
		return ccwrapper.Wrap("bignum.Clear", ccwrapper.ErrParam)
	}
	zeroizeInt(b.v)
	b.v.SetInt64(0)
	return nil
}

// Free zeroizes the underlying limbs and releases the value. It is safe to
// call multiple times; most operations on a freed value fail with a parameter
// error while accessors report zero.
func (b *BigNum) Free() {
	if b == nil || b.v == nil {
		return
	}
	zeroizeInt(b.v)
	b.v = nil
	runtime.SetFinalizer(b, nil)
}

func zeroizeInt(v *big.Int) {
	words := v.Bits()
	for i := range words {
		words[i] = 0
	}
	runtime.KeepAlive(words)
}
