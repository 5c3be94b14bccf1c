// Package round implements the rounding and normalization step shared
// by every format's pack operation: scaling an arbitrary-precision
// mantissa to a target bit width with guard/round/sticky
// round-to-nearest-even, and detecting the overflow-to-infinity and
// underflow-to-subnormal-or-zero cases along the way.
package round

import (
	"github.com/sarchlab/softfp/bigint"
	"github.com/sarchlab/softfp/fpval"
)

// RndBit is the number of extra low bits kept below the target
// mantissa width while rounding: one guard bit plus sticky coverage.
const RndBit = 10

// Params is the subset of a format descriptor normalization needs.
type Params struct {
	Nbits  int
	Minexp int
	Maxexp int
}

// Normalize scales m (mutated in place) so it occupies exactly
// p.Nbits bits with the hidden bit at position p.Nbits-1, rounds
// half-to-even, and returns the resulting class. e is mutated in
// place to the final unbiased exponent (meaningless for the returned
// Zero/Infinite classes).
//
// On entry, (*e, m) must satisfy fpval's value convention: value =
// m * 2^(*e - topbit(m)). m need not already be p.Nbits wide; e is
// the exponent of m's current MSB, not of some fixed target bit.
// alignToRndBit relies on this to rescale m without touching *e: the
// shift changes topbit(m) and m together, so the value they denote is
// unchanged. *e is only ever rewritten where the exponent itself
// genuinely changes (subnormal clamp, round-up carry).
func Normalize(p Params, e *int, m *bigint.Int) fpval.Class {
	if m.IsZero() {
		return fpval.Zero
	}

	bno := p.Nbits - 1
	alignToRndBit(m, bno)

	issub := false
	if *e < p.Minexp {
		m.Shr(p.Minexp-*e, true)
		*e = p.Minexp
		issub = true
	}
	if *e > p.Maxexp {
		return fpval.Infinite
	}

	roundHalfToEven(m)

	if m.IsZero() {
		return fpval.Zero
	}

	tb := bigint.Topbit(m)
	if tb == p.Nbits {
		// Round-up carried the mantissa from 2^nbits-1 to 2^nbits.
		*e++
		m.Shr(1, false)
		if *e > p.Maxexp {
			return fpval.Infinite
		}
		issub = false
	} else if issub && tb >= bno {
		// A subnormal rounded up into the smallest normal value.
		issub = false
	}

	if issub {
		return fpval.Subnormal
	}
	return fpval.Normal
}

// GRSRound applies only the alignment and half-to-even rounding
// steps, skipping the exponent range checks. Division produces a
// doubled-width quotient with an exponent it has already range-checked
// via its own normal path, so it only needs the bit-width reduction.
func GRSRound(p Params, m *bigint.Int) {
	alignToRndBit(m, p.Nbits-1)
	roundHalfToEven(m)
}

// alignToRndBit shifts m so that exactly RndBit extra low bits sit
// below the bit at position bno (the eventual top mantissa bit). e is
// left untouched: topbit(m) moves with the shift, so the value m and
// e together denote is unchanged.
func alignToRndBit(m *bigint.Int, bno int) {
	t := bigint.Topbit(m)
	shift := RndBit - (t - bno)
	switch {
	case shift > 0:
		m.Shl(shift)
	case shift < 0:
		m.Shr(-shift, true)
	}
}

// roundHalfToEven drops the low RndBit bits of m (the guard bit at
// RndBit-1, round and sticky below it) and rounds the remaining high
// bits to nearest, ties to even.
func roundHalfToEven(m *bigint.Int) {
	guard := m.Bit(RndBit - 1)
	stickyOrRound := false
	for i := 0; i < RndBit-1; i++ {
		if m.Bit(i) == 1 {
			stickyOrRound = true
			break
		}
	}
	m.Shr(RndBit, false)

	if guard == 0 {
		return
	}
	odd := m.Bit(0) == 1
	if stickyOrRound || odd {
		one := bigint.New(nil).SetUint16(1)
		m.Add(m, one)
	}
}
