package fpfmt

import (
	"github.com/sarchlab/softfp/bigint"
	"github.com/sarchlab/softfp/fpval"
	"github.com/sarchlab/softfp/round"
)

const (
	x80Nbits  = 64
	x80Bias   = 16383
	x80Minexp = 1 - x80Bias
	x80Maxexp = x80Bias

	x80ExpMask  = 0x7FFF
	x80SignBit  = uint32(1) << 15
	x80IntBit   = uint64(1) << 63
	x80QuietBit = uint64(1) << 62
)

var x80Format = &Format{
	ID:       X80,
	Nbits:    x80Nbits,
	Storage:  80,
	Bias:     x80Bias,
	Minexp:   x80Minexp,
	Maxexp:   x80Maxexp,
	Classify: classifyX80,
	Unpack:   unpackX80,
	Pack:     packX80,
}

func x80Mantissa(w fpval.Wire) uint64 {
	return uint64(w[1])<<32 | uint64(w[0])
}

func x80Wire(sign int, expField uint32, mant uint64) fpval.Wire {
	w := fpval.Wire{uint32(mant), uint32(mant >> 32)}
	w[2] = uint32(sign&1)<<15 | expField&x80ExpMask
	return w
}

func classifyX80(w fpval.Wire) fpval.Class {
	expField := w[2] & x80ExpMask
	mant := x80Mantissa(w)

	switch {
	case expField == x80ExpMask:
		if mant == x80IntBit {
			return fpval.Infinite
		}
		return fpval.NaN
	case expField == 0:
		if mant == 0 {
			return fpval.Zero
		}
		return fpval.Subnormal
	default:
		return fpval.Normal
	}
}

func unpackX80(w fpval.Wire, arena *bigint.Arena) fpval.Value {
	sign := int(w[2]>>15) & 1
	expField := w[2] & x80ExpMask
	mant := x80Mantissa(w)

	switch {
	case expField == x80ExpMask:
		if mant == x80IntBit {
			return fpval.Value{Class: fpval.Infinite, Sign: sign}
		}
		return fpval.Value{Class: fpval.NaN}
	case expField == 0 && mant == 0:
		return fpval.Value{Class: fpval.Zero, Sign: sign}
	case expField == 0:
		// Subnormal: the explicit integer bit is clear; the exponent
		// reads off the actual top bit, below Minexp by the missing
		// leading bits.
		m := bigint.New(arena).SetUint64(mant)
		exp := x80Minexp - (x80Nbits - 1 - bigint.Topbit(m))
		return fpval.Value{Class: fpval.Normal, Sign: sign, Exp: exp, Mant: m}
	default:
		return fpval.Value{Class: fpval.Normal, Sign: sign, Exp: int(expField) - x80Bias, Mant: bigint.New(arena).SetUint64(mant)}
	}
}

func packX80(v fpval.Value, arena *bigint.Arena) fpval.Wire {
	switch v.Class {
	case fpval.Zero:
		return x80Wire(v.Sign, 0, 0)
	case fpval.Infinite:
		return x80Wire(v.Sign, x80ExpMask, x80IntBit)
	case fpval.NaN:
		return x80Wire(0, x80ExpMask, x80IntBit|x80QuietBit)
	case fpval.Normal:
		e := v.Exp
		m := bigint.New(arena).Set(v.Mant)
		class := round.Normalize(round.Params{Nbits: x80Nbits, Minexp: x80Minexp, Maxexp: x80Maxexp}, &e, m)
		switch class {
		case fpval.Zero:
			return x80Wire(v.Sign, 0, 0)
		case fpval.Infinite:
			return x80Wire(v.Sign, x80ExpMask, x80IntBit)
		case fpval.Subnormal:
			return x80Wire(v.Sign, 0, m.Uint64())
		default: // Normal: the hidden bit is explicit for x80, stored as-is.
			return x80Wire(v.Sign, uint32(e+x80Bias), m.Uint64())
		}
	default:
		panic("fpfmt: pack given invalid class")
	}
}
