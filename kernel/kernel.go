// Package kernel implements the arithmetic primitives that operate on
// unpacked floating values: add, sub, mul, div, neg, and compare. Every
// operation works at the long-double (x80) working precision. Engine
// wraps the arena its operations allocate scratch BigInts from, and
// each operation is one method with its special-value cases spelled
// out up front before the arithmetic path.
package kernel

import (
	"github.com/sarchlab/softfp/bigint"
	"github.com/sarchlab/softfp/fpfmt"
	"github.com/sarchlab/softfp/fpval"
	"github.com/sarchlab/softfp/round"
)

// Engine performs arithmetic at the working (x80) precision, allocating
// scratch BigInts from a single arena shared across a statement.
type Engine struct {
	arena *bigint.Arena
}

// New returns an Engine whose scratch BigInts are served by arena.
func New(arena *bigint.Arena) *Engine {
	return &Engine{arena: arena}
}

func (e *Engine) params() round.Params {
	return fpfmt.Working().RoundParams()
}

// mant returns a scratch copy of v's mantissa shifted so its top bit
// sits at the working format's hidden-bit position. Operands arrive at
// whatever width they were decoded or unpacked at (a binary64 literal
// carries 53 bits, an x80 subnormal fewer); since Exp tracks the
// mantissa's most-significant bit, the shift changes no value, it only
// gives every operation a single alignment reference.
func (e *Engine) mant(v fpval.Value) *bigint.Int {
	m := bigint.New(e.arena).Set(v.Mant)
	bno := fpfmt.Working().Nbits - 1
	if t := bigint.Topbit(m); t < bno {
		m.Shl(bno - t)
	}
	return m
}

// settled converts a Normalize result back into the uniform
// exponent-of-the-top-bit convention kernel values carry. Normalize
// pins a subnormal's exponent to the format floor with the mantissa
// short of the hidden-bit position; reading the exponent off the
// actual top bit instead keeps every finite nonzero result a plain
// Normal value, which the packers reclassify on the way to wire bits.
func settled(p round.Params, class fpval.Class, sign, exp int, m *bigint.Int) fpval.Value {
	switch class {
	case fpval.Zero:
		return fpval.Value{Class: fpval.Zero, Sign: sign}
	case fpval.Infinite:
		return fpval.Value{Class: fpval.Infinite, Sign: sign}
	case fpval.Subnormal:
		exp -= (p.Nbits - 1) - bigint.Topbit(m)
	}
	return fpval.Value{Class: fpval.Normal, Sign: sign, Exp: exp, Mant: m}
}

// Neg flips the sign of v. It never inspects Mant, so it is valid for
// every class including NaN, matching the wire-level "flip the sign
// bit" contract.
func Neg(v fpval.Value) fpval.Value {
	v.Sign ^= 1
	return v
}

// Add computes x1+x2 at working precision.
func (e *Engine) Add(x1, x2 fpval.Value) fpval.Value {
	switch {
	case x1.Class == fpval.NaN || x2.Class == fpval.NaN:
		return fpval.Value{Class: fpval.NaN}
	case x1.Class == fpval.Infinite && x2.Class == fpval.Infinite:
		if x1.Sign == x2.Sign {
			return fpval.Value{Class: fpval.Infinite, Sign: x1.Sign}
		}
		return fpval.Value{Class: fpval.NaN}
	case x1.Class == fpval.Infinite:
		return fpval.Value{Class: fpval.Infinite, Sign: x1.Sign}
	case x2.Class == fpval.Infinite:
		return fpval.Value{Class: fpval.Infinite, Sign: x2.Sign}
	case x1.Class == fpval.Zero && x2.Class == fpval.Zero:
		// Round-to-nearest zero sum: only -0 + -0 keeps the negative
		// sign, so the result is the same whichever operand came first.
		return fpval.Value{Class: fpval.Zero, Sign: x1.Sign & x2.Sign}
	case x1.Class == fpval.Zero:
		return x2
	case x2.Class == fpval.Zero:
		return x1
	}

	f := fpfmt.Working()
	bno := f.Nbits - 1
	ediff := x1.Exp - x2.Exp
	if ediff > f.Nbits+1 {
		return x1
	}
	if ediff < -(f.Nbits + 1) {
		return x2
	}

	var base int
	var m1, m2 *bigint.Int
	switch {
	case ediff > 0:
		base = x2.Exp
		m1 = e.mant(x1).Shl(ediff)
		m2 = e.mant(x2)
	case ediff < 0:
		base = x1.Exp
		m1 = e.mant(x1)
		m2 = e.mant(x2).Shl(-ediff)
	default:
		base = x1.Exp
		m1 = e.mant(x1)
		m2 = e.mant(x2)
	}

	result := bigint.New(e.arena)
	neg := bigint.AddSigned(result, m1, x1.Sign == 1, m2, x2.Sign == 1)

	if result.IsZero() {
		return fpval.Value{Class: fpval.Zero, Sign: 0}
	}

	// Both mantissas are in units of 2^(base-bno) after the alignment
	// shift above, so the sum's exponent reads straight off its top bit.
	exp := base + bigint.Topbit(result) - bno
	sign := 0
	if neg {
		sign = 1
	}

	class := round.Normalize(e.params(), &exp, result)
	return settled(e.params(), class, sign, exp, result)
}

// Sub computes x1-x2 at working precision.
func (e *Engine) Sub(x1, x2 fpval.Value) fpval.Value {
	return e.Add(x1, Neg(x2))
}

// Mul computes x1*x2 at working precision.
func (e *Engine) Mul(x1, x2 fpval.Value) fpval.Value {
	sign := x1.Sign ^ x2.Sign

	switch {
	case x1.Class == fpval.NaN || x2.Class == fpval.NaN:
		return fpval.Value{Class: fpval.NaN}
	case x1.Class == fpval.Zero && x2.Class == fpval.Infinite,
		x1.Class == fpval.Infinite && x2.Class == fpval.Zero:
		return fpval.Value{Class: fpval.NaN}
	case x1.Class == fpval.Infinite || x2.Class == fpval.Infinite:
		return fpval.Value{Class: fpval.Infinite, Sign: sign}
	case x1.Class == fpval.Zero || x2.Class == fpval.Zero:
		return fpval.Value{Class: fpval.Zero, Sign: sign}
	}

	f := fpfmt.Working()
	bno := f.Nbits - 1

	product := bigint.New(e.arena).Mul(e.mant(x1), e.mant(x2))
	exp := x1.Exp + x2.Exp + (bigint.Topbit(product) - 2*bno)

	class := round.Normalize(e.params(), &exp, product)
	return settled(e.params(), class, sign, exp, product)
}

// Div computes x1/x2 at working precision.
func (e *Engine) Div(x1, x2 fpval.Value) fpval.Value {
	sign := x1.Sign ^ x2.Sign

	switch {
	case x1.Class == fpval.NaN || x2.Class == fpval.NaN:
		return fpval.Value{Class: fpval.NaN}
	case x1.Class == fpval.Infinite && x2.Class == fpval.Infinite:
		return fpval.Value{Class: fpval.NaN}
	case x1.Class == fpval.Zero && x2.Class == fpval.Zero:
		return fpval.Value{Class: fpval.NaN}
	case x2.Class == fpval.Zero:
		return fpval.Value{Class: fpval.Infinite, Sign: sign}
	case x1.Class == fpval.Infinite:
		return fpval.Value{Class: fpval.Infinite, Sign: sign}
	case x2.Class == fpval.Infinite:
		return fpval.Value{Class: fpval.Zero, Sign: sign}
	case x1.Class == fpval.Zero:
		return fpval.Value{Class: fpval.Zero, Sign: sign}
	}

	f := fpfmt.Working()
	nbits := f.Nbits

	num := e.mant(x1).Shl(nbits)
	den := e.mant(x2)
	q1 := bigint.New(e.arena)
	r1 := bigint.New(e.arena)
	bigint.QuoRem(q1, r1, num, den)

	r1.Shl(nbits)
	q2 := bigint.New(e.arena)
	r2 := bigint.New(e.arena)
	bigint.QuoRem(q2, r2, r1, den)

	combined := bigint.New(e.arena).Set(q1).Shl(nbits)
	combined.Add(combined, q2)
	if !r2.IsZero() && combined.Bit(0) == 0 {
		// r2 is the remainder below the second quotient digit: fold it
		// in as a sticky bit (only needs to be nonzero, never carries)
		// so it survives GRSRound's guard/sticky split instead of
		// silently rounding as if the division were exact.
		combined.Add(combined, bigint.New(nil).SetUint16(1))
	}

	exp := x1.Exp - x2.Exp + bigint.Topbit(q1) - nbits

	if exp > f.Maxexp {
		return fpval.Value{Class: fpval.Infinite, Sign: sign}
	}
	if exp < f.Minexp {
		class := round.Normalize(e.params(), &exp, combined)
		return settled(e.params(), class, sign, exp, combined)
	}

	round.GRSRound(e.params(), combined)
	if combined.IsZero() {
		return fpval.Value{Class: fpval.Zero, Sign: sign}
	}
	if bigint.Topbit(combined) == nbits {
		exp++
		combined.Shr(1, false)
		if exp > f.Maxexp {
			return fpval.Value{Class: fpval.Infinite, Sign: sign}
		}
	}
	return fpval.Value{Class: fpval.Normal, Sign: sign, Exp: exp, Mant: combined}
}

// Ordering is the result of Compare.
type Ordering int

const (
	Unordered Ordering = iota
	Less
	Equal
	Greater
)

// Compare orders x1 against x2. Either operand being NaN yields
// Unordered, so every relational operator built atop this is false
// when a NaN is involved, NaN==NaN included.
func Compare(x1, x2 fpval.Value) Ordering {
	if x1.Class == fpval.NaN || x2.Class == fpval.NaN {
		return Unordered
	}

	z1 := x1.Class == fpval.Zero
	z2 := x2.Class == fpval.Zero
	if z1 && z2 {
		return Equal
	}

	if x1.Sign != x2.Sign {
		if z1 || z2 {
			// +0 vs -0 already handled above; a zero compared against
			// a nonzero signed value orders by the nonzero operand's sign.
			if z1 {
				if x2.Sign == 1 {
					return Greater
				}
				return Less
			}
			if x1.Sign == 1 {
				return Less
			}
			return Greater
		}
		if x1.Sign == 1 {
			return Less
		}
		return Greater
	}

	neg := x1.Sign == 1
	mag := compareMagnitude(x1, x2)
	switch {
	case mag == Equal:
		return Equal
	case neg:
		if mag == Less {
			return Greater
		}
		return Less
	default:
		return mag
	}
}

func compareMagnitude(x1, x2 fpval.Value) Ordering {
	c1 := x1.Class == fpval.Infinite
	c2 := x2.Class == fpval.Infinite
	switch {
	case c1 && c2:
		return Equal
	case c1:
		return Greater
	case c2:
		return Less
	}

	z1 := x1.Class == fpval.Zero
	z2 := x2.Class == fpval.Zero
	switch {
	case z1 && z2:
		return Equal
	case z1:
		return Less
	case z2:
		return Greater
	}

	if x1.Exp != x2.Exp {
		if x1.Exp < x2.Exp {
			return Less
		}
		return Greater
	}

	// Same exponent: compare mantissas with their top bits aligned.
	// Operands can carry different widths (a binary64-precision value
	// against an x80-precision one), and Exp names the top bit's
	// weight, so padding the narrower one low is value-neutral.
	m1 := bigint.New(nil).Set(x1.Mant)
	m2 := bigint.New(nil).Set(x2.Mant)
	t1 := bigint.Topbit(m1)
	t2 := bigint.Topbit(m2)
	if t1 < t2 {
		m1.Shl(t2 - t1)
	} else if t2 < t1 {
		m2.Shl(t1 - t2)
	}
	switch bigint.Cmp(m1, m2) {
	case 0:
		return Equal
	case -1:
		return Less
	default:
		return Greater
	}
}

// IsZero reports whether v is the Zero class.
func IsZero(v fpval.Value) bool {
	return v.Class == fpval.Zero
}
