package fpfmt

import (
	"github.com/sarchlab/softfp/bigint"
	"github.com/sarchlab/softfp/fpval"
	"github.com/sarchlab/softfp/round"
)

const (
	f32Nbits  = 24
	f32Bias   = 127
	f32Minexp = 1 - f32Bias
	f32Maxexp = f32Bias

	f32SignMask = 1 << 31
	f32ExpMask  = 0xFF
	f32ExpShift = 23
	f32FracMask = 1<<23 - 1
	f32QuietBit = 1 << 22
)

var float32Format = &Format{
	ID:       Float32,
	Nbits:    f32Nbits,
	Storage:  32,
	Bias:     f32Bias,
	Minexp:   f32Minexp,
	Maxexp:   f32Maxexp,
	Classify: classifyFloat32,
	Unpack:   unpackFloat32,
	Pack:     packFloat32,
}

func classifyFloat32(w fpval.Wire) fpval.Class {
	bits := w[0]
	expField := (bits >> f32ExpShift) & f32ExpMask
	frac := bits & f32FracMask
	switch {
	case expField == f32ExpMask:
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

func unpackFloat32(w fpval.Wire, arena *bigint.Arena) fpval.Value {
	bits := w[0]
	sign := int(bits>>31) & 1
	expField := (bits >> f32ExpShift) & f32ExpMask
	frac := bits & f32FracMask

	switch {
	case expField == f32ExpMask:
		if frac == 0 {
			return fpval.Value{Class: fpval.Infinite, Sign: sign}
		}
		return fpval.Value{Class: fpval.NaN}
	case expField == 0 && frac == 0:
		return fpval.Value{Class: fpval.Zero, Sign: sign}
	case expField == 0:
		// Subnormal: no hidden bit; the exponent reads off the actual
		// top bit, below Minexp by the missing leading bits.
		mant := bigint.New(arena).SetUint64(uint64(frac))
		exp := f32Minexp - (f32Nbits - 1 - bigint.Topbit(mant))
		return fpval.Value{Class: fpval.Normal, Sign: sign, Exp: exp, Mant: mant}
	default:
		mant := bigint.New(arena).SetUint64(uint64(frac) | uint64(1<<(f32Nbits-1)))
		return fpval.Value{Class: fpval.Normal, Sign: sign, Exp: int(expField) - f32Bias, Mant: mant}
	}
}

func packFloat32(v fpval.Value, arena *bigint.Arena) fpval.Wire {
	sign := uint32(v.Sign&1) << 31

	switch v.Class {
	case fpval.Zero:
		return fpval.Wire{sign}
	case fpval.Infinite:
		return fpval.Wire{sign | f32ExpMask<<f32ExpShift}
	case fpval.NaN:
		return fpval.Wire{f32ExpMask<<f32ExpShift | f32QuietBit}
	case fpval.Normal:
		e := v.Exp
		m := bigint.New(arena).Set(v.Mant)
		class := round.Normalize(round.Params{Nbits: f32Nbits, Minexp: f32Minexp, Maxexp: f32Maxexp}, &e, m)
		switch class {
		case fpval.Zero:
			return fpval.Wire{sign}
		case fpval.Infinite:
			return fpval.Wire{sign | f32ExpMask<<f32ExpShift}
		case fpval.Subnormal:
			frac := uint32(m.Uint64()) & f32FracMask
			return fpval.Wire{sign | frac}
		default: // Normal
			frac := uint32(m.Uint64()) & f32FracMask
			expField := uint32(e+f32Bias) & f32ExpMask
			return fpval.Wire{sign | expField<<f32ExpShift | frac}
		}
	default:
		panic("fpfmt: pack given invalid class")
	}
}
