// Package main provides the entry point for fpeval.
// fpeval folds a single floating-point literal or two-operand
// expression at a chosen target precision, printing the resulting wire
// bits in hex — a small command-line front end over package softfloat
// for exercising the engine without writing Go.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/softfp/fpfmt"
	"github.com/sarchlab/softfp/fpval"
	"github.com/sarchlab/softfp/softfloat"
)

var (
	format  = flag.String("format", "binary64", "target format: binary32, binary64, or binaryx80")
	op      = flag.String("op", "", "operation to apply to two operands: add, sub, mul, div")
	verbose = flag.Bool("v", false, "print the decoded class alongside the wire bits")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: fpeval [options] <literal> [literal2]\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	id, err := lookupFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	eng := softfloat.New()
	a := eng.Strtosf(flag.Arg(0), 0, id)

	result := a
	if flag.NArg() >= 2 {
		if *op == "" {
			fmt.Fprintf(os.Stderr, "Error: -op is required when two operands are given\n")
			os.Exit(1)
		}
		b := eng.Strtosf(flag.Arg(1), 0, id)
		result, err = apply(eng, *op, a, b)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	w := eng.ToWire(result, id)
	printResult(eng, w, id)
}

func apply(eng *softfloat.Engine, op string, a, b fpval.Value) (fpval.Value, error) {
	switch op {
	case "add":
		return eng.Add(a, b), nil
	case "sub":
		return eng.Sub(a, b), nil
	case "mul":
		return eng.Mul(a, b), nil
	case "div":
		return eng.Div(a, b), nil
	default:
		return fpval.Value{}, fmt.Errorf("unknown op %q (want add, sub, mul, div)", op)
	}
}

func lookupFormat(name string) (fpfmt.ID, error) {
	switch name {
	case "binary32":
		return fpfmt.Float32, nil
	case "binary64":
		return fpfmt.Float64, nil
	case "binaryx80":
		return fpfmt.X80, nil
	default:
		return 0, fmt.Errorf("unknown format %q (want binary32, binary64, or binaryx80)", name)
	}
}

func printResult(eng *softfloat.Engine, w fpval.Wire, id fpfmt.ID) {
	switch id {
	case fpfmt.Float32:
		fmt.Printf("0x%08x\n", w[0])
	case fpfmt.Float64:
		fmt.Printf("0x%08x%08x\n", w[1], w[0])
	default:
		fmt.Printf("0x%04x%08x%08x\n", w[2], w[1], w[0])
	}
	if *verbose {
		fmt.Printf("class: %v\n", eng.Classify(w, id))
	}
}
