package fpfmt

import (
	"github.com/sarchlab/softfp/bigint"
	"github.com/sarchlab/softfp/fpval"
	"github.com/sarchlab/softfp/round"
)

const (
	f64Nbits  = 53
	f64Bias   = 1023
	f64Minexp = 1 - f64Bias
	f64Maxexp = f64Bias

	f64ExpMask  = 0x7FF
	f64ExpShift = 52
	f64FracMask = 1<<52 - 1
	f64QuietBit = uint64(1) << 51
)

var float64Format = &Format{
	ID:       Float64,
	Nbits:    f64Nbits,
	Storage:  64,
	Bias:     f64Bias,
	Minexp:   f64Minexp,
	Maxexp:   f64Maxexp,
	Classify: classifyFloat64,
	Unpack:   unpackFloat64,
	Pack:     packFloat64,
}

func f64Bits(w fpval.Wire) uint64 {
	return uint64(w[1])<<32 | uint64(w[0])
}

func f64Wire(bits uint64) fpval.Wire {
	return fpval.Wire{uint32(bits), uint32(bits >> 32)}
}

func classifyFloat64(w fpval.Wire) fpval.Class {
	bits := f64Bits(w)
	expField := (bits >> f64ExpShift) & f64ExpMask
	frac := bits & f64FracMask
	switch {
	case expField == f64ExpMask:
		if frac == 0 {
			return fpval.Infinite
		}
		return fpval.NaN
	case expField == 0:
		if frac == 0 {
			return fpval.Zero
		}
		return fpval.Subnormal
	default:
		return fpval.Normal
	}
}

func unpackFloat64(w fpval.Wire, arena *bigint.Arena) fpval.Value {
	bits := f64Bits(w)
	sign := int(bits>>63) & 1
	expField := (bits >> f64ExpShift) & f64ExpMask
	frac := bits & f64FracMask

	switch {
	case expField == f64ExpMask:
		if frac == 0 {
			return fpval.Value{Class: fpval.Infinite, Sign: sign}
		}
		return fpval.Value{Class: fpval.NaN}
	case expField == 0 && frac == 0:
		return fpval.Value{Class: fpval.Zero, Sign: sign}
	case expField == 0:
		// Subnormal: no hidden bit. The exponent still reads off the
		// mantissa's actual top bit, landing below Minexp by however
		// many leading bits the subnormal lacks; Pack re-detects the
		// subnormal range from that.
		mant := bigint.New(arena).SetUint64(frac)
		exp := f64Minexp - (f64Nbits - 1 - bigint.Topbit(mant))
		return fpval.Value{Class: fpval.Normal, Sign: sign, Exp: exp, Mant: mant}
	default:
		mant := bigint.New(arena).SetUint64(frac | uint64(1)<<(f64Nbits-1))
		return fpval.Value{Class: fpval.Normal, Sign: sign, Exp: int(expField) - f64Bias, Mant: mant}
	}
}

func packFloat64(v fpval.Value, arena *bigint.Arena) fpval.Wire {
	sign := uint64(v.Sign&1) << 63

	switch v.Class {
	case fpval.Zero:
		return f64Wire(sign)
	case fpval.Infinite:
		return f64Wire(sign | f64ExpMask<<f64ExpShift)
	case fpval.NaN:
		return f64Wire(f64ExpMask<<f64ExpShift | f64QuietBit)
	case fpval.Normal:
		e := v.Exp
		m := bigint.New(arena).Set(v.Mant)
		class := round.Normalize(round.Params{Nbits: f64Nbits, Minexp: f64Minexp, Maxexp: f64Maxexp}, &e, m)
		switch class {
		case fpval.Zero:
			return f64Wire(sign)
		case fpval.Infinite:
			return f64Wire(sign | f64ExpMask<<f64ExpShift)
		case fpval.Subnormal:
			frac := m.Uint64() & f64FracMask
			return f64Wire(sign | frac)
		default: // Normal
			frac := m.Uint64() & f64FracMask
			expField := uint64(e+f64Bias) & f64ExpMask
			return f64Wire(sign | expField<<f64ExpShift | frac)
		}
	default:
		panic("fpfmt: pack given invalid class")
	}
}
