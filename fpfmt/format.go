// Package fpfmt describes the three live target formats (binary32,
// binary64, binaryx80) as immutable descriptors with a small vtable of
// classify/unpack/pack operations, plus the wire-layout codecs for
// each. Exactly three instances exist; they are process-wide constants
// built once at package initialization.
package fpfmt

import (
	"fmt"

	"github.com/sarchlab/softfp/bigint"
	"github.com/sarchlab/softfp/fpval"
	"github.com/sarchlab/softfp/round"
)

// ID names a target format. Float16 and Float128 are reserved for
// future targets: they have IDs so callers can name them, but no
// descriptor, so Lookup panics clearly rather than guessing at
// semantics nobody has implemented yet.
type ID int

const (
	Float16 ID = iota
	Float32
	Float64
	X80
	Float128
)

func (id ID) String() string {
	switch id {
	case Float16:
		return "binary16"
	case Float32:
		return "binary32"
	case Float64:
		return "binary64"
	case X80:
		return "binaryx80"
	case Float128:
		return "binary128"
	default:
		return "unknown"
	}
}

// Format is the immutable per-target-format descriptor: the bit-width
// constants of the format plus the three codec operations.
type Format struct {
	ID ID

	// Nbits is the significand width including the hidden bit.
	Nbits int
	// Storage is the wire width in bits.
	Storage int
	Bias    int
	Minexp  int
	Maxexp  int
	// Expadj is the positional correction applied when composing the
	// exponent. The codecs here use a single mantissa convention
	// (value = mantissa * 2^(exp-topbit(mantissa)), see fpval.Value) across all three
	// formats, so it is 0 for every live descriptor.
	Expadj int

	Classify func(fpval.Wire) fpval.Class
	Unpack   func(fpval.Wire, *bigint.Arena) fpval.Value
	Pack     func(fpval.Value, *bigint.Arena) fpval.Wire
}

// RoundParams returns the subset of the descriptor the round package
// needs for normalization.
func (f *Format) RoundParams() round.Params {
	return round.Params{Nbits: f.Nbits, Minexp: f.Minexp, Maxexp: f.Maxexp}
}

// Lookup returns the live descriptor for id, or panics for a
// recognized-but-unimplemented format (Float16, Float128) or an
// unknown ID. The engine never silently substitutes a format.
func Lookup(id ID) *Format {
	switch id {
	case Float32:
		return float32Format
	case Float64:
		return float64Format
	case X80:
		return x80Format
	case Float16, Float128:
		panic(fmt.Sprintf("fpfmt: format %v is not implemented", id))
	default:
		panic(fmt.Sprintf("fpfmt: unknown format id %d", int(id)))
	}
}

// Working is the widest target format: all intermediate arithmetic in
// the kernel is performed at this precision before narrowing.
func Working() *Format {
	return x80Format
}
