// Package main provides a CLI tool to check that every live format
// descriptor round-trips its special values correctly: print a single
// count to stdout for scripting, and a readable pass/fail breakdown to
// stderr for a human running it by hand.
package main

import (
	"fmt"
	"os"

	"github.com/sarchlab/softfp/bigint"
	"github.com/sarchlab/softfp/fpfmt"
	"github.com/sarchlab/softfp/fpval"
)

type check struct {
	name string
	err  error
}

func main() {
	arena := bigint.NewArena()
	var checks []check

	for _, id := range []fpfmt.ID{fpfmt.Float32, fpfmt.Float64, fpfmt.X80} {
		f := fpfmt.Lookup(id)
		checks = append(checks, checkZero(f, arena), checkInfinite(f, arena), checkNaN(f, arena))
	}

	passing := 0
	for _, c := range checks {
		if c.err == nil {
			passing++
		}
	}

	fmt.Printf("%d\n", passing)

	fmt.Fprintf(os.Stderr, "\nFormat checks (%d/%d passing):\n", passing, len(checks))
	for _, c := range checks {
		if c.err == nil {
			fmt.Fprintf(os.Stderr, "  ok   %s\n", c.name)
		} else {
			fmt.Fprintf(os.Stderr, "  FAIL %s: %v\n", c.name, c.err)
		}
	}

	if passing != len(checks) {
		os.Exit(1)
	}
}

func checkZero(f *fpfmt.Format, arena *bigint.Arena) check {
	name := fmt.Sprintf("%v: zero round-trip", f.ID)
	for _, sign := range []int{0, 1} {
		w := f.Pack(fpval.Value{Class: fpval.Zero, Sign: sign}, arena)
		if f.Classify(w) != fpval.Zero {
			return check{name, fmt.Errorf("classify(pack(Zero, sign=%d)) != Zero", sign)}
		}
		if f.Unpack(w, arena).Class != fpval.Zero {
			return check{name, fmt.Errorf("unpack(pack(Zero, sign=%d)).Class != Zero", sign)}
		}
	}
	return check{name, nil}
}

func checkInfinite(f *fpfmt.Format, arena *bigint.Arena) check {
	name := fmt.Sprintf("%v: infinite round-trip", f.ID)
	for _, sign := range []int{0, 1} {
		w := f.Pack(fpval.Value{Class: fpval.Infinite, Sign: sign}, arena)
		if f.Classify(w) != fpval.Infinite {
			return check{name, fmt.Errorf("classify(pack(Infinite, sign=%d)) != Infinite", sign)}
		}
		back := f.Unpack(w, arena)
		if back.Class != fpval.Infinite || back.Sign != sign {
			return check{name, fmt.Errorf("unpack(pack(Infinite, sign=%d)) mismatch", sign)}
		}
	}
	return check{name, nil}
}

func checkNaN(f *fpfmt.Format, arena *bigint.Arena) check {
	name := fmt.Sprintf("%v: NaN round-trip", f.ID)
	w := f.Pack(fpval.Value{Class: fpval.NaN}, arena)
	if f.Classify(w) != fpval.NaN {
		return check{name, fmt.Errorf("classify(pack(NaN)) != NaN")}
	}
	if f.Unpack(w, arena).Class != fpval.NaN {
		return check{name, fmt.Errorf("unpack(pack(NaN)).Class != NaN")}
	}
	return check{name, nil}
}
