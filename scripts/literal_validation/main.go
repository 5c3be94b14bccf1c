// Validate the literal decoder against golden hex outputs: decode a
// fixed table of decimal/hex literals and report any mismatch against
// the known-good binary64 bit patterns.
package main

import (
	"fmt"
	"os"

	"github.com/sarchlab/softfp/fpfmt"
	"github.com/sarchlab/softfp/softfloat"
)

type literalCase struct {
	text string
	hi   uint32
	lo   uint32
}

func main() {
	cases := []literalCase{
		{"1.0", 0x3FF00000, 0x00000000},
		{"0.1", 0x3FB99999, 0x9999999A},
		{"0x1.fffffffffffffp+1023", 0x7FEFFFFF, 0xFFFFFFFF},
		{"0x1p-1074", 0x00000000, 0x00000001},
	}

	fmt.Println("Literal decoder validation against golden bit patterns")
	fmt.Println("==============================================================")

	mismatches := 0
	for _, c := range cases {
		eng := softfloat.New()
		v := eng.Strtosf(c.text, 0, fpfmt.Float64)
		w := eng.ToWire(v, fpfmt.Float64)
		hi, lo := w[1], w[0]

		if hi != c.hi || lo != c.lo {
			fmt.Printf("MISMATCH %-28s got %08X:%08X want %08X:%08X\n", c.text, hi, lo, c.hi, c.lo)
			mismatches++
			continue
		}
		fmt.Printf("ok       %-28s %08X:%08X\n", c.text, hi, lo)
	}

	fmt.Println("==============================================================")
	if mismatches == 0 {
		fmt.Println("all literals decode to their golden bit patterns")
		os.Exit(0)
	}
	fmt.Printf("%d literal(s) mismatched\n", mismatches)
	os.Exit(1)
}
