// Package main provides a benchmark harness for the floating-point
// engine, timing a fixed table of literal-fold and arithmetic
// workloads, with an optional CPU profile dump via -cpuprofile.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sarchlab/softfp/fpfmt"
	"github.com/sarchlab/softfp/softfloat"
)

var (
	csvOutput  = flag.Bool("csv", false, "output results in CSV format")
	iterations = flag.Int("iterations", 100000, "iterations per workload")
	cpuProfile = flag.String("cpuprofile", "", "write cpu profile to file")
)

type workload struct {
	name string
	run  func(eng *softfloat.Engine)
}

func workloads() []workload {
	return []workload{
		{"decode_decimal", func(eng *softfloat.Engine) {
			eng.Strtosf("3.14159", 0, fpfmt.Float64)
		}},
		{"decode_hex", func(eng *softfloat.Engine) {
			eng.Strtosf("0x1.91eb851eb851fp1", 0, fpfmt.Float64)
		}},
		{"add_chain", func(eng *softfloat.Engine) {
			a := eng.Strtosf("1.5", 0, fpfmt.Float64)
			b := eng.Strtosf("2.25", 0, fpfmt.Float64)
			eng.Add(a, b)
		}},
		{"mul_chain", func(eng *softfloat.Engine) {
			a := eng.Strtosf("1.5", 0, fpfmt.Float64)
			b := eng.Strtosf("2.25", 0, fpfmt.Float64)
			eng.Mul(a, b)
		}},
		{"div_repeating", func(eng *softfloat.Engine) {
			a := eng.Strtosf("1", 0, fpfmt.Float64)
			b := eng.Strtosf("3", 0, fpfmt.Float64)
			eng.Div(a, b)
		}},
		{"narrow_to_binary32", func(eng *softfloat.Engine) {
			v := eng.Strtosf("1.5", 0, fpfmt.Float64)
			eng.FloatToFloat(v, fpfmt.Float32)
		}},
	}
}

type result struct {
	name       string
	iterations int
	nsPerOp    float64
}

func main() {
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if !*csvOutput {
		fmt.Println("Softfp Arithmetic Benchmark Harness")
		fmt.Println("====================================")
		fmt.Printf("Iterations per workload: %d\n\n", *iterations)
	}

	var results []result
	for _, w := range workloads() {
		results = append(results, run(w, *iterations))
	}

	if *csvOutput {
		printCSV(results)
	} else {
		printResults(results)
	}
}

func run(w workload, iterations int) result {
	eng := softfloat.New()
	start := time.Now()
	for i := 0; i < iterations; i++ {
		w.run(eng)
		if i%1000 == 0 {
			// Bound the arena's growth: production folding is one
			// statement per arena, so reclaim periodically here to
			// keep the benchmark's own allocation pattern realistic.
			eng.Reset()
		}
	}
	elapsed := time.Since(start)
	return result{
		name:       w.name,
		iterations: iterations,
		nsPerOp:    float64(elapsed.Nanoseconds()) / float64(iterations),
	}
}

func printResults(results []result) {
	for _, r := range results {
		fmt.Printf("%-20s %10d iterations  %10.1f ns/op\n", r.name, r.iterations, r.nsPerOp)
	}
}

func printCSV(results []result) {
	fmt.Println("name,iterations,ns_per_op")
	for _, r := range results {
		fmt.Printf("%s,%d,%.1f\n", r.name, r.iterations, r.nsPerOp)
	}
}
