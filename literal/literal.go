// Package literal decodes decimal and hexadecimal floating-point
// literal text into a working-precision value, the way a compiler
// front end turns source text like "3.14" or "0x1.8p3" into a
// constant: a small stateless Decoder with one entry point and a
// handful of private per-field helpers.
package literal

import (
	"strconv"
	"strings"

	"github.com/sarchlab/softfp/bigint"
	"github.com/sarchlab/softfp/fpfmt"
	"github.com/sarchlab/softfp/fpval"
)

// maxExpDigits bounds the exponent field's digit count; more than this
// many digits is treated as a sure overflow/underflow rather than
// decoded.
const maxExpDigits = 4

// Decoder parses literal text into an fpval.Value at the precision of
// a target format.
type Decoder struct{}

// NewDecoder returns a ready-to-use Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// rational is the exact value mmant/mexp a literal decodes to before
// it is scaled and rounded into a target format's precision.
type rational struct {
	mant *bigint.Int
	div  *bigint.Int

	// forced is set when the exponent sanity gate fires: the literal's
	// magnitude is decided (Zero or Infinite) without ever forming a
	// mantissa.
	forced      bool
	forcedClass fpval.Class
}

// Decode parses s (a decimal or hex floating literal, e.g. "3.14",
// "1e10", "0x1.8p3") and returns its value rounded to f's precision.
// sign is 0 or 1 and is applied independently of s, matching a
// compiler front end handing the unary minus down separately from the
// numeric text.
func (d *Decoder) Decode(s string, sign int, f *fpfmt.Format, arena *bigint.Arena) fpval.Value {
	var r rational
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		r = hexbig(s[2:], arena)
	} else {
		r = decbig(s, arena)
	}

	if r.forced {
		return fpval.Value{Class: r.forcedClass, Sign: sign}
	}
	return str2num(r, sign, f, arena)
}

// decbig decodes a decimal literal into an exact mmant/mexp pair.
func decbig(s string, arena *bigint.Arena) rational {
	mant := bigint.New(arena).SetUint16(0)
	div := bigint.New(arena).SetUint16(1)
	ten := bigint.New(arena).SetUint16(10)

	exp10 := 0
	seenDot := false
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			mant = bigint.New(arena).Mul(mant, ten)
			if c != '0' {
				mant.Add(mant, bigint.New(arena).SetUint16(uint16(c-'0')))
			}
			if seenDot {
				exp10--
			}
			i++
		case c == '.' && !seenDot:
			seenDot = true
			i++
		case c == 'e' || c == 'E':
			val, digits, ok := readSignedExp(s[i+1:])
			if !ok {
				return rational{forced: true, forcedClass: forcedClassFor(s[i+1:])}
			}
			if digits > maxExpDigits {
				return rational{forced: true, forcedClass: forcedClassFor(s[i+1:])}
			}
			exp10 += val
			i = len(s)
		default:
			i = len(s) // terminal suffix (f, F, l, L, i, I, ...)
		}
	}

	return scaleDecimal(mant, div, exp10, arena)
}

// hexbig decodes a hex literal (with the "0x"/"0X" prefix already
// stripped) into an exact mmant/mexp pair.
func hexbig(s string, arena *bigint.Arena) rational {
	mant := bigint.New(arena).SetUint16(0)
	exp2 := 0
	seenDot := false
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case isHexDigit(c):
			mant = mant.Shl(4)
			if v := hexVal(c); v != 0 {
				mant.Add(mant, bigint.New(arena).SetUint16(uint16(v)))
			}
			if seenDot {
				exp2 -= 4
			}
			i++
		case c == '.' && !seenDot:
			seenDot = true
			i++
		case c == 'p' || c == 'P':
			val, digits, ok := readSignedExp(s[i+1:])
			if !ok {
				return rational{forced: true, forcedClass: forcedClassFor(s[i+1:])}
			}
			if digits > maxExpDigits {
				return rational{forced: true, forcedClass: forcedClassFor(s[i+1:])}
			}
			exp2 += val
			i = len(s)
		default:
			i = len(s)
		}
	}

	if exp2 < 0 {
		div := bigint.New(arena).SetUint16(1).Shl(-exp2)
		return rational{mant: mant, div: div}
	}
	mant = mant.Shl(exp2)
	return rational{mant: mant, div: bigint.New(arena).SetUint16(1)}
}

func scaleDecimal(mant, div *bigint.Int, exp10 int, arena *bigint.Arena) rational {
	if exp10 == 0 {
		return rational{mant: mant, div: div}
	}
	pow := bigint.New(arena).SetUint16(1)
	ten := bigint.New(arena).SetUint16(10)
	n := exp10
	if n < 0 {
		n = -n
	}
	for i := 0; i < n; i++ {
		pow = bigint.New(arena).Mul(pow, ten)
	}
	if exp10 >= 0 {
		mant = bigint.New(arena).Mul(mant, pow)
	} else {
		div = pow
	}
	return rational{mant: mant, div: div}
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

// readSignedExp parses an optional sign followed by decimal digits
// from the start of s, stopping at the first non-digit. It reports
// the digit count actually consumed so the sanity gate can fire on an
// over-long exponent field.
func readSignedExp(s string) (val int, digits int, ok bool) {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	digits = i - start
	if digits == 0 {
		return 0, 0, false
	}
	n, err := strconv.Atoi(s[start:i])
	if err != nil {
		return 0, digits, false
	}
	if neg {
		n = -n
	}
	return n, digits, true
}

// forcedClassFor decides whether an unreadable/over-long exponent
// field should be treated as an overflow (Infinite) or underflow
// (Zero): a leading '-' means the true exponent is deeply negative.
func forcedClassFor(expField string) fpval.Class {
	if strings.HasPrefix(expField, "-") {
		return fpval.Zero
	}
	return fpval.Infinite
}

// str2num scales the exact rational mmant/mexp into f's precision,
// rounding half-to-even exactly once via mround. Throughout, scale
// tracks the invariant q ~= (mmant/mexp) * 2^scale, so the final
// exponent of the quotient's top bit is topbit(q) - scale.
func str2num(r rational, sign int, f *fpfmt.Format, arena *bigint.Arena) fpval.Value {
	mant := bigint.New(arena).Set(r.mant)
	div := bigint.New(arena).Set(r.div)
	if mant.IsZero() {
		return fpval.Value{Class: fpval.Zero, Sign: sign}
	}

	t := bigint.Topbit(mant)
	u := bigint.Topbit(div)
	scale := f.Nbits - (t - u) - 1

	// A literal landing below f's normal range has its scale reduced
	// here. The quotient loop below still widens the quotient to the
	// full Nbits bits, so the reduction leaves the result unchanged and
	// only adds redivisions to that loop.
	if f.Nbits-scale-1 <= -(f.Bias - 1) {
		scale -= -(f.Nbits - scale - 1) - (f.Bias - 2)
	}

	// Scale the numerator up, or the divisor for a value wider than
	// nbits; shifting the numerator down instead would discard the low
	// bits the rounding decision depends on.
	if scale >= 0 {
		mant.Shl(scale)
	} else {
		div.Shl(-scale)
	}
	m := bigint.New(arena)
	d := bigint.New(arena)
	bigint.QuoRem(m, d, mant, div)

	for m.IsZero() || bigint.Topbit(m) < f.Nbits-1 {
		mant.Shl(1)
		bigint.QuoRem(m, d, mant, div)
		scale++
	}

	mround(m, d, div)

	if bigint.Topbit(m) == f.Nbits {
		m.Shr(1, false)
		scale--
	}

	exp := bigint.Topbit(m) - scale - f.Expadj
	if exp > f.Maxexp {
		return fpval.Value{Class: fpval.Infinite, Sign: sign}
	}

	// Class is always Normal on the way out, even when exp/m denote a
	// subnormal magnitude: every Format.Pack takes a Normal Value and
	// reclassifies it via round.Normalize, the same convention
	// packFloat64/packFloat32/packX80 rely on elsewhere.
	return fpval.Value{Class: fpval.Normal, Sign: sign, Exp: exp, Mant: m}
}

// mround rounds m (the integer quotient) half-to-even using the
// leftover remainder d against the divisor mexp: 2d >= mexp means the
// true quotient is at or past the halfway point.
func mround(m, d, mexp *bigint.Int) {
	twiceD := bigint.New(nil).Set(d).Shl(1)
	if bigint.Cmp(twiceD, mexp) < 0 {
		return
	}
	if bigint.Cmp(twiceD, mexp) > 0 || m.Bit(0) == 1 {
		m.Add(m, bigint.New(nil).SetUint16(1))
	}
}
