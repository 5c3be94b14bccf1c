// Package fpval defines the internal floating-point value representation
// shared by every layer of the engine above bigint: the five-way class
// partition, the (class, sign, exponent, mantissa) tuple computation is
// performed on, and the fixed-size wire form each target format's bits
// are read from and written to.
package fpval

import "github.com/sarchlab/softfp/bigint"

// Class partitions every floating value into five disjoint kinds.
type Class int

const (
	Zero Class = iota
	Infinite
	NaN
	Normal
	Subnormal
)

func (c Class) String() string {
	switch c {
	case Zero:
		return "Zero"
	case Infinite:
		return "Infinite"
	case NaN:
		return "NaN"
	case Normal:
		return "Normal"
	case Subnormal:
		return "Subnormal"
	default:
		return "Invalid"
	}
}

// Value is the internal tuple computation is performed on: a class, a
// sign bit, an unbiased exponent, and a mantissa. For Normal and
// Subnormal, Mant carries the significand (top bit set at position
// nbits-1 for a settled Normal value). Exp and Mant are ignored for
// Zero, Infinite, and NaN.
//
// Every Value denotes Mant * 2^(Exp - topbit(Mant)): Exp is the
// exponent of Mant's most-significant bit, whatever width Mant
// currently occupies. A value in a format's subnormal range simply
// has Exp below that format's Minexp; the pinned-to-Minexp mantissa
// layout the wire formats store exists only transiently between
// round.Normalize and the packers. Kernel arithmetic that grows or
// shrinks Mant's width before rounding keeps Exp tracking the MSB as
// it goes; in-progress values settle through round.Normalize (or
// Format.Pack, which calls it).
type Value struct {
	Class Class
	Sign  int
	Exp   int
	Mant  *bigint.Int
}

// Wire is the fixed-size little-endian-word wire encoding, sized to
// hold the widest target format (x80: lo32, mid32, sign+exponent 16).
type Wire [3]uint32
