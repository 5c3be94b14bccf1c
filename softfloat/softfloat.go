// Package softfloat is the engine's public facade: the single entry
// point a front end calls to fold floating-point literals and constant
// expressions without touching the host's native float hardware: a
// handful of private components (an arena, a kernel.Engine, a
// literal.Decoder) assembled once by a functional-options constructor,
// with one exported method per operation delegating to them.
package softfloat

import (
	"github.com/sarchlab/softfp/bigint"
	"github.com/sarchlab/softfp/convert"
	"github.com/sarchlab/softfp/fpfmt"
	"github.com/sarchlab/softfp/fpval"
	"github.com/sarchlab/softfp/kernel"
	"github.com/sarchlab/softfp/literal"
)

// Engine performs arithmetic at binaryx80 working precision. Strtosf
// rounds a literal to its target format's precision as it decodes it,
// FloatToFloat rounds a value to a target format's precision, and
// ToWire rounds a value to a target format as it materializes it to
// wire bits.
//
// An Engine is not safe for concurrent use: its arena is shared,
// unsynchronized scratch space, the same way one compiler statement's
// constant-folding is single-threaded.
type Engine struct {
	arena   *bigint.Arena
	kernel  *kernel.Engine
	decoder *literal.Decoder
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithArena supplies the Arena the Engine allocates scratch BigInts
// from, instead of the private one New creates by default. Use this to
// share one Arena's lifetime across several Engines folding the same
// statement.
func WithArena(arena *bigint.Arena) Option {
	return func(e *Engine) {
		e.arena = arena
	}
}

// New returns a ready-to-use Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		decoder: literal.NewDecoder(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.arena == nil {
		e.arena = bigint.NewArena()
	}
	e.kernel = kernel.New(e.arena)

	return e
}

// Reset discards every BigInt the Engine has allocated so far, the way
// a compiler resets its per-statement Arena between folds. Values
// returned before Reset must not be used afterward.
func (e *Engine) Reset() {
	e.arena.Reset()
}

// Strtosf decodes a decimal or hexadecimal floating-point literal (for
// example "3.14", "1e10", "0x1.8p3") into the value it denotes at
// dst's precision. The returned Value's mantissa is as wide as dst's
// significand; it composes with Add/Sub/Mul/Div all the same.
func (e *Engine) Strtosf(s string, sign int, dst fpfmt.ID) fpval.Value {
	f := fpfmt.Lookup(dst)
	return e.decoder.Decode(s, sign, f, e.arena)
}

// IntToFloat converts a signed 64-bit integer to a working-precision
// value.
func (e *Engine) IntToFloat(v int64) fpval.Value {
	return convert.IntToFloat(v, e.arena)
}

// FloatToInt truncates v toward zero into a signed 64-bit integer.
func (e *Engine) FloatToInt(v fpval.Value) int64 {
	return convert.FloatToInt(v)
}

// FloatToFloat narrows or widens v into dst's precision and back,
// rounding exactly where packing into dst would.
func (e *Engine) FloatToFloat(v fpval.Value, dst fpfmt.ID) fpval.Value {
	return convert.FloatToFloat(v, fpfmt.Lookup(dst), e.arena)
}

// Add, Sub, Mul, Div, and Neg perform arithmetic at working precision.

func (e *Engine) Add(x1, x2 fpval.Value) fpval.Value { return e.kernel.Add(x1, x2) }
func (e *Engine) Sub(x1, x2 fpval.Value) fpval.Value { return e.kernel.Sub(x1, x2) }
func (e *Engine) Mul(x1, x2 fpval.Value) fpval.Value { return e.kernel.Mul(x1, x2) }
func (e *Engine) Div(x1, x2 fpval.Value) fpval.Value { return e.kernel.Div(x1, x2) }

// Neg flips v's sign.
func (e *Engine) Neg(v fpval.Value) fpval.Value { return kernel.Neg(v) }

// Compare orders x1 against x2.
func (e *Engine) Compare(x1, x2 fpval.Value) kernel.Ordering {
	return kernel.Compare(x1, x2)
}

// IsZero reports whether v is the Zero class.
func (e *Engine) IsZero(v fpval.Value) bool {
	return kernel.IsZero(v)
}

// Classify reports the class a wire-encoded value at format id would
// unpack to, without actually unpacking it.
func (e *Engine) Classify(w fpval.Wire, id fpfmt.ID) fpval.Class {
	return fpfmt.Lookup(id).Classify(w)
}

// NaN returns the canonical (unsigned) NaN value at working precision.
// payload is accepted for interface compatibility but ignored: this
// engine never distinguishes NaN payloads, only the single quiet NaN
// bit pattern each format packs.
func (e *Engine) NaN(payload string) fpval.Value {
	_ = payload
	return fpval.Value{Class: fpval.NaN}
}

// HugeVal returns signed infinity at working precision, the value
// HUGE_VAL/HUGE_VALF denote on overflow.
func (e *Engine) HugeVal(sign int) fpval.Value {
	return fpval.Value{Class: fpval.Infinite, Sign: sign}
}

// ToWire packs a working-precision value into id's wire encoding,
// rounding to id's precision in the process.
func (e *Engine) ToWire(v fpval.Value, id fpfmt.ID) fpval.Wire {
	return fpfmt.Lookup(id).Pack(v, e.arena)
}

// FromWire unpacks id's wire encoding into a working-precision value.
func (e *Engine) FromWire(w fpval.Wire, id fpfmt.ID) fpval.Value {
	v := fpfmt.Lookup(id).Unpack(w, e.arena)
	if id == fpfmt.X80 {
		return v
	}
	return convert.FloatToFloat(v, fpfmt.Working(), e.arena)
}
