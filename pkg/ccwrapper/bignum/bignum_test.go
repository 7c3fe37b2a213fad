package bignum_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"
	"github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper/bignum"
)

func mustDecimal(t *testing.T, s string) *bignum.BigNum {
	t.Helper()
	b, err := bignum.FromDecimal(s)
	if err != nil {
		t.Fatalf("FromDecimal(%q): %v", s, err)
	}
	return b
}

func TestFromDecimalRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "-1", "255", "-255", "18446744073709551616", "-340282366920938463463374607431768211456"} {
		b := mustDecimal(t, s)
		if got := b.Decimal(); got != s {
			t.Errorf("Decimal() = %q, want %q", got, s)
		}
		b.Free()
	}
	if _, err := bignum.FromDecimal("12x3"); !errors.Is(err, ccwrapper.ErrDecode) {
		t.Errorf("FromDecimal(garbage) err = %v, want ErrDecode", err)
	}
	if _, err := bignum.FromDecimal(""); !errors.Is(err, ccwrapper.ErrDecode) {
		t.Errorf("FromDecimal(empty) err = %v, want ErrDecode", err)
	}
}

func TestFromHexRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "ff", "-ff", "deadbeef", "123456789abcdef0123456789abcdef"} {
		b, err := bignum.FromHex(s)
		if err != nil {
			t.Fatalf("FromHex(%q): %v", s, err)
		}
		if got := b.Hex(); got != s {
			t.Errorf("Hex() = %q, want %q", got, s)
		}
		b.Free()
	}
	if _, err := bignum.FromHex("xyz"); !errors.Is(err, ccwrapper.ErrDecode) {
		t.Errorf("FromHex(garbage) err = %v, want ErrDecode", err)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0xff}
	b := bignum.FromBytes(data)
	defer b.Free()
	if got := b.Bytes(); !bytes.Equal(got, data) {
		t.Fatalf("Bytes() = %x, want %x", got, data)
	}
	if got := b.Decimal(); got != "16909311" {
		t.Fatalf("Decimal() = %q, want 16909311", got)
	}
	if got := b.ByteCount(); got != 4 {
		t.Fatalf("ByteCount() = %d, want 4", got)
	}
	if got := b.BitCount(); got != 25 {
		t.Fatalf("BitCount() = %d, want 25", got)
	}

	zero := bignum.FromBytes(nil)
	defer zero.Free()
	if !zero.IsZero() {
		t.Fatal("FromBytes(nil) is not zero")
	}
	if got := zero.Bytes(); len(got) != 0 {
		t.Fatalf("zero Bytes() = %x, want empty", got)
	}
	if got := zero.ByteCount(); got != 0 {
		t.Fatalf("zero ByteCount() = %d, want 0", got)
	}
}

// Floored division: quotient toward negative infinity, remainder sign follows
// the divisor.
func TestDivFloored(t *testing.T) {
	tests := []struct {
		a, d, q, r string
	}{
		{"7", "3", "2", "1"},
		{"-7", "3", "-3", "2"},
		{"7", "-3", "-3", "-2"},
		{"-7", "-3", "2", "-1"},
		{"6", "3", "2", "0"},
		{"-6", "3", "-2", "0"},
		{"0", "5", "0", "0"},
		{"1", "-2", "-1", "-1"},
	}
	for _, tc := range tests {
		a := mustDecimal(t, tc.a)
		d := mustDecimal(t, tc.d)
		q, r, err := a.Div(d)
		if err != nil {
			t.Fatalf("Div(%s, %s): %v", tc.a, tc.d, err)
		}
		if got := q.Decimal(); got != tc.q {
			t.Errorf("Div(%s, %s) q = %s, want %s", tc.a, tc.d, got, tc.q)
		}
		if got := r.Decimal(); got != tc.r {
			t.Errorf("Div(%s, %s) r = %s, want %s", tc.a, tc.d, got, tc.r)
		}
		m, err := a.Mod(d)
		if err != nil {
			t.Fatalf("Mod(%s, %s): %v", tc.a, tc.d, err)
		}
		if got := m.Decimal(); got != tc.r {
			t.Errorf("Mod(%s, %s) = %s, want %s", tc.a, tc.d, got, tc.r)
		}
		for _, b := range []*bignum.BigNum{a, d, q, r, m} {
			b.Free()
		}
	}
}

func TestDivByZero(t *testing.T) {
	a := mustDecimal(t, "42")
	defer a.Free()
	zero := bignum.New()
	defer zero.Free()
	if _, _, err := a.Div(zero); !errors.Is(err, ccwrapper.ErrParam) {
		t.Fatalf("Div by zero err = %v, want ErrParam", err)
	}
	if _, err := a.Mod(zero); !errors.Is(err, ccwrapper.ErrParam) {
		t.Fatalf("Mod by zero err = %v, want ErrParam", err)
	}
	if _, err := a.ModUint(0); !errors.Is(err, ccwrapper.ErrParam) {
		t.Fatalf("ModUint(0) err = %v, want ErrParam", err)
	}
}

func TestModUint(t *testing.T) {
	a := mustDecimal(t, "1000003")
	defer a.Free()
	got, err := a.ModUint(97)
	if err != nil {
		t.Fatalf("ModUint: %v", err)
	}
	if got != 1000003%97 {
		t.Fatalf("ModUint = %d, want %d", got, uint64(1000003%97))
	}
	neg := mustDecimal(t, "-1")
	defer neg.Free()
	got, err = neg.ModUint(5)
	if err != nil {
		t.Fatalf("ModUint(-1, 5): %v", err)
	}
	if got != 4 {
		t.Fatalf("ModUint(-1, 5) = %d, want 4", got)
	}
}

func TestExpMod(t *testing.T) {
	tests := []struct {
		base, exp, mod, want string
	}{
		{"4", "13", "497", "445"},
		{"2", "10", "1000", "24"},
		// A zero exponent yields 1 mod m.
		{"12345", "0", "7", "1"},
		{"0", "0", "7", "1"},
		// A modulus of one collapses everything to zero.
		{"12345", "0", "1", "0"},
		{"5", "3", "1", "0"},
		// Negative bases are normalized into [0, m) first.
		{"-2", "3", "5", "2"},
		{"-1", "2", "7", "1"},
		{"2", "5", "-7", "4"},
	}
	for _, tc := range tests {
		b := mustDecimal(t, tc.base)
		e := mustDecimal(t, tc.exp)
		m := mustDecimal(t, tc.mod)
		got, err := b.ExpMod(e, m)
		if err != nil {
			t.Fatalf("ExpMod(%s, %s, %s): %v", tc.base, tc.exp, tc.mod, err)
		}
		if s := got.Decimal(); s != tc.want {
			t.Errorf("ExpMod(%s, %s, %s) = %s, want %s", tc.base, tc.exp, tc.mod, s, tc.want)
		}
		for _, v := range []*bignum.BigNum{b, e, m, got} {
			v.Free()
		}
	}
}

func TestExpModRejects(t *testing.T) {
	b := mustDecimal(t, "2")
	defer b.Free()
	negExp := mustDecimal(t, "-3")
	defer negExp.Free()
	m := mustDecimal(t, "7")
	defer m.Free()
	zero := bignum.New()
	defer zero.Free()

	if _, err := b.ExpMod(negExp, m); !errors.Is(err, ccwrapper.ErrParam) {
		t.Errorf("negative exponent err = %v, want ErrParam", err)
	}
	if _, err := b.ExpMod(m, zero); !errors.Is(err, ccwrapper.ErrParam) {
		t.Errorf("zero modulus err = %v, want ErrParam", err)
	}
}

func TestMulMod(t *testing.T) {
	a := mustDecimal(t, "12345")
	defer a.Free()
	b := mustDecimal(t, "67890")
	defer b.Free()
	m := mustDecimal(t, "997")
	defer m.Free()
	got, err := a.MulMod(b, m)
	if err != nil {
		t.Fatalf("MulMod: %v", err)
	}
	defer got.Free()
	if s := got.Decimal(); s != "919" {
		t.Fatalf("MulMod = %s, want 919", s)
	}
}

func TestShifts(t *testing.T) {
	tests := []struct {
		in    string
		n     uint
		left  string
		right string
	}{
		{"1", 10, "1024", "0"},
		{"5", 1, "10", "2"},
		{"-5", 1, "-10", "-3"},
		{"-1", 1, "-2", "-1"},
		{"1024", 3, "8192", "128"},
	}
	for _, tc := range tests {
		v := mustDecimal(t, tc.in)
		l, err := v.Lsh(tc.n)
		if err != nil {
			t.Fatalf("Lsh(%s, %d): %v", tc.in, tc.n, err)
		}
		if got := l.Decimal(); got != tc.left {
			t.Errorf("Lsh(%s, %d) = %s, want %s", tc.in, tc.n, got, tc.left)
		}
		r, err := v.Rsh(tc.n)
		if err != nil {
			t.Fatalf("Rsh(%s, %d): %v", tc.in, tc.n, err)
		}
		if got := r.Decimal(); got != tc.right {
			t.Errorf("Rsh(%s, %d) = %s, want %s", tc.in, tc.n, got, tc.right)
		}
		for _, b := range []*bignum.BigNum{v, l, r} {
			b.Free()
		}
	}
}

func TestCmp(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"0", "0", 0},
		{"1", "0", 1},
		{"-1", "0", -1},
		{"-5", "-3", -1},
		{"100", "99", 1},
		{"-100", "100", -1},
	}
	for _, tc := range tests {
		a := mustDecimal(t, tc.a)
		b := mustDecimal(t, tc.b)
		if got := a.Cmp(b); got != tc.want {
			t.Errorf("Cmp(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
		if got := b.Cmp(a); got != -tc.want {
			t.Errorf("Cmp(%s, %s) = %d, want %d", tc.b, tc.a, got, -tc.want)
		}
		a.Free()
		b.Free()
	}

	v := mustDecimal(t, "42")
	defer v.Free()
	if got := v.CmpUint(42); got != 0 {
		t.Errorf("CmpUint(42) = %d, want 0", got)
	}
	if got := v.CmpUint(43); got != -1 {
		t.Errorf("CmpUint(43) = %d, want -1", got)
	}
	neg := mustDecimal(t, "-42")
	defer neg.Free()
	if got := neg.CmpUint(0); got != -1 {
		t.Errorf("CmpUint on negative = %d, want -1", got)
	}
}

func TestUintArithmetic(t *testing.T) {
	v := mustDecimal(t, "10")
	defer v.Free()

	sum, err := v.AddUint(5)
	if err != nil {
		t.Fatalf("AddUint: %v", err)
	}
	defer sum.Free()
	if got := sum.Decimal(); got != "15" {
		t.Errorf("AddUint = %s, want 15", got)
	}

	diff, err := v.SubUint(25)
	if err != nil {
		t.Fatalf("SubUint: %v", err)
	}
	defer diff.Free()
	if got := diff.Decimal(); got != "-15" {
		t.Errorf("SubUint = %s, want -15", got)
	}

	prod, err := v.MulUint(1 << 40)
	if err != nil {
		t.Fatalf("MulUint: %v", err)
	}
	defer prod.Free()
	if got := prod.Decimal(); got != "10995116277760" {
		t.Errorf("MulUint = %s, want 10995116277760", got)
	}

	// Operands stay untouched.
	if got := v.Decimal(); got != "10" {
		t.Errorf("operand mutated: %s", got)
	}
}

func TestIsPrime(t *testing.T) {
	primes := []string{"2", "3", "104729", "2305843009213693951"}
	for _, p := range primes {
		v := mustDecimal(t, p)
		if !v.IsPrime() {
			t.Errorf("IsPrime(%s) = false, want true", p)
		}
		v.Free()
	}
	composites := []string{"0", "1", "-7", "561", "104730"}
	for _, c := range composites {
		v := mustDecimal(t, c)
		if v.IsPrime() {
			t.Errorf("IsPrime(%s) = true, want false", c)
		}
		v.Free()
	}
}

func TestSetNegative(t *testing.T) {
	v := mustDecimal(t, "42")
	defer v.Free()
	if err := v.SetNegative(true); err != nil {
		t.Fatalf("SetNegative: %v", err)
	}
	if got := v.Decimal(); got != "-42" {
		t.Fatalf("after SetNegative(true): %s, want -42", got)
	}
	if !v.IsNegative() {
		t.Fatal("IsNegative() = false after SetNegative(true)")
	}
	if err := v.SetNegative(false); err != nil {
		t.Fatalf("SetNegative: %v", err)
	}
	if got := v.Decimal(); got != "42" {
		t.Fatalf("after SetNegative(false): %s, want 42", got)
	}

	zero := bignum.New()
	defer zero.Free()
	if err := zero.SetNegative(true); err != nil {
		t.Fatalf("SetNegative on zero: %v", err)
	}
	if zero.IsNegative() {
		t.Fatal("zero became negative")
	}
}

func TestSetValueAndCopy(t *testing.T) {
	a := mustDecimal(t, "-7")
	defer a.Free()

	if err := a.SetValue(99); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if got := a.Decimal(); got != "99" {
		t.Fatalf("after SetValue: %s, want 99", got)
	}
	if a.IsNegative() {
		t.Fatal("SetValue kept the old sign")
	}

	c, err := a.Copy()
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	defer c.Free()
	if err := a.SetValue(1); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if got := c.Decimal(); got != "99" {
		t.Fatalf("copy not independent: %s, want 99", got)
	}
}

func TestRandom(t *testing.T) {
	a, err := bignum.Random(256)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	defer a.Free()
	if got := a.BitCount(); got > 256 {
		t.Fatalf("BitCount() = %d, want <= 256", got)
	}
	b, err := bignum.Random(256)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	defer b.Free()
	if a.Cmp(b) == 0 {
		t.Fatal("two 256-bit random draws are equal")
	}
	if _, err := bignum.Random(0); !errors.Is(err, ccwrapper.ErrParam) {
		t.Fatalf("Random(0) err = %v, want ErrParam", err)
	}
}

func TestFreeSemantics(t *testing.T) {
	v := mustDecimal(t, "12345")
	v.Free()
	v.Free() // idempotent

	if !v.IsZero() {
		t.Error("freed value should report zero")
	}
	if got := v.Decimal(); got != "0" {
		t.Errorf("freed Decimal() = %q, want 0", got)
	}
	if _, err := v.AddUint(1); !errors.Is(err, ccwrapper.ErrParam) {
		t.Errorf("AddUint on freed err = %v, want ErrParam", err)
	}
	if err := v.SetNegative(true); !errors.Is(err, ccwrapper.ErrParam) {
		t.Errorf("SetNegative on freed err = %v, want ErrParam", err)
	}
}

func TestClear(t *testing.T) {
	v := mustDecimal(t, "123456789123456789")
	defer v.Free()
	if err := v.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if !v.IsZero() {
		t.Fatal("value not zero after Clear")
	}
	// The value stays usable after Clear, unlike Free.
	if err := v.SetValue(5); err != nil {
		t.Fatalf("SetValue after Clear: %v", err)
	}
	if got := v.Decimal(); got != "5" {
		t.Fatalf("after Clear+SetValue: %s, want 5", got)
	}
}
