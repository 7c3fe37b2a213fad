// Package bignum provides signed arbitrary-precision integers with explicit
// lifecycle management.
//
// Values are immutable through the arithmetic API: every operation returns a
// fresh value and leaves its operands untouched. The only two mutating
// operations are SetValue and SetNegative, both documented as in-place;
// Clear and Free wipe the value as part of its lifecycle.
//
// Division and modulus use floored semantics: the quotient is rounded toward
// negative infinity and a non-zero remainder takes the sign of the divisor.
// Right shifts of negative values likewise round toward negative infinity.
//
// # Usage
//
//	a, _ := bignum.FromDecimal("-7")
//	defer a.Free()
//	d, _ := bignum.FromDecimal("3")
//	defer d.Free()
//
//	q, r, err := a.Div(d) // q = -3, r = 2
//
// Free zeroizes the underlying limbs; call it as soon as a value holding
// sensitive material is no longer needed. A finalizer performs the same
// cleanup as a safety net for values that escape.
package bignum
