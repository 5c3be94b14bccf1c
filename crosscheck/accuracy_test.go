// Package crosscheck is a standalone diagnostic suite, driven entirely
// over softfloat's public API, that compares the engine's binary64
// results against Go's native float64 arithmetic (the host FPU)
// bit-for-bit. It is never compiled into the core: the engine must
// produce identical results on any host, so the host's own FPU is a
// cheap second opinion rather than a dependency.
package crosscheck

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/sarchlab/softfp/fpfmt"
	"github.com/sarchlab/softfp/softfloat"
)

// CaseData is the fixture shape loaded from testdata/cases.json.
type CaseData struct {
	Metadata struct {
		Description string `json:"description"`
		Methodology string `json:"methodology"`
	} `json:"metadata"`
	Cases []Case `json:"cases"`
}

// Case is a single operand pair and operator checked against the host.
type Case struct {
	Name string `json:"name"`
	A    string `json:"a"`
	B    string `json:"b"`
	Op   string `json:"op"`
}

func loadCases(t *testing.T) *CaseData {
	_, filename, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(filename), "testdata", "cases.json")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load cases: %v", err)
	}

	var cd CaseData
	if err := json.Unmarshal(data, &cd); err != nil {
		t.Fatalf("failed to parse cases: %v", err)
	}
	return &cd
}

// splitSign strips a leading '-' off s (the engine's Strtosf takes
// sign separately from the literal text, the way a compiler front end
// hands the unary minus down independently of the numeric text).
func splitSign(s string) (int, string) {
	if strings.HasPrefix(s, "-") {
		return 1, s[1:]
	}
	return 0, s
}

func TestAccuracyAgainstHostFloat64(t *testing.T) {
	cd := loadCases(t)

	for _, c := range cd.Cases {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			eng := softfloat.New()

			aSign, aText := splitSign(c.A)
			bSign, bText := splitSign(c.B)
			a := eng.Strtosf(aText, aSign, fpfmt.Float64)
			b := eng.Strtosf(bText, bSign, fpfmt.Float64)

			nativeA, err := strconv.ParseFloat(c.A, 64)
			if err != nil {
				t.Fatalf("host could not parse %q: %v", c.A, err)
			}
			nativeB, err := strconv.ParseFloat(c.B, 64)
			if err != nil {
				t.Fatalf("host could not parse %q: %v", c.B, err)
			}

			var result float64
			var engineResult uint64

			switch c.Op {
			case "add":
				sum := eng.Add(a, b)
				engineResult = wireToBits(eng.ToWire(sum, fpfmt.Float64))
				result = nativeA + nativeB
			case "sub":
				diff := eng.Sub(a, b)
				engineResult = wireToBits(eng.ToWire(diff, fpfmt.Float64))
				result = nativeA - nativeB
			case "mul":
				prod := eng.Mul(a, b)
				engineResult = wireToBits(eng.ToWire(prod, fpfmt.Float64))
				result = nativeA * nativeB
			case "div":
				quot := eng.Div(a, b)
				engineResult = wireToBits(eng.ToWire(quot, fpfmt.Float64))
				result = nativeA / nativeB
			default:
				t.Fatalf("unknown op %q", c.Op)
			}

			hostBits := math.Float64bits(result)
			if engineResult != hostBits {
				t.Errorf("%s %s %s: engine=%016x host=%016x (engine=%v host=%v)",
					c.A, c.Op, c.B, engineResult, hostBits,
					math.Float64frombits(engineResult), result)
			}
		})
	}
}

func wireToBits(w [3]uint32) uint64 {
	return uint64(w[1])<<32 | uint64(w[0])
}
