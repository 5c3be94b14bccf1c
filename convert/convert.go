// Package convert implements the cross-type conversions: integer to
// float, float to integer (truncating), and float to float (narrowing
// or widening through a real pack/unpack round trip so precision loss
// happens exactly where the hardware would lose it).
package convert

import (
	"github.com/sarchlab/softfp/bigint"
	"github.com/sarchlab/softfp/fpfmt"
	"github.com/sarchlab/softfp/fpval"
)

// IntToFloat converts a signed 64-bit integer to the working (x80)
// precision value it denotes.
func IntToFloat(v int64, arena *bigint.Arena) fpval.Value {
	f := fpfmt.Working()

	if v == 0 {
		return fpval.Value{Class: fpval.Zero}
	}

	sign := 0
	if v < 0 {
		sign = 1
	}

	if v == -1<<63 {
		// INT64_MIN cannot be negated in two's complement; its
		// magnitude (2^63) and exponent are known directly.
		mant := bigint.New(arena).SetUint64(1 << 63)
		return fpval.Value{Class: fpval.Normal, Sign: 1, Exp: 63, Mant: mant}
	}

	mag := uint64(v)
	if sign == 1 {
		mag = uint64(-v)
	}

	mant := bigint.New(arena).SetUint64(mag)
	exp := bigint.Topbit(mant)
	mant.Shl(f.Nbits - 1 - exp)

	return fpval.Value{Class: fpval.Normal, Sign: sign, Exp: exp, Mant: mant}
}

// FloatToInt truncates v toward zero into a signed 64-bit integer.
// Non-Normal values (Zero, Infinite, NaN) convert to 0; callers
// needing saturation or an invalid-operation signal apply that on top
// of this.
func FloatToInt(v fpval.Value) int64 {
	if v.Class != fpval.Normal {
		return 0
	}

	mant := v.Mant.Uint64()
	shift := v.Exp - bigint.Topbit(v.Mant)

	var mag uint64
	if shift >= 0 && shift < 64 {
		mag = mant << uint(shift)
	} else if shift < 0 && shift > -64 {
		mag = mant >> uint(-shift)
	}

	if v.Sign == 1 {
		return -int64(mag)
	}
	return int64(mag)
}

// FloatToFloat casts v (already unpacked at working precision) into
// dst's precision: pack at dst, unpack, then pack and unpack at
// working precision. Packing into dst is where rounding actually
// narrows the value; the working-precision round trip hands back a
// working-precision Value so the result composes with the rest of
// the kernel.
func FloatToFloat(v fpval.Value, dst *fpfmt.Format, arena *bigint.Arena) fpval.Value {
	w := dst.Pack(v, arena)
	narrowed := dst.Unpack(w, arena)
	work := fpfmt.Working()
	if dst == work {
		return narrowed
	}
	return work.Unpack(work.Pack(narrowed, arena), arena)
}
