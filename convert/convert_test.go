package convert_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/softfp/bigint"
	"github.com/sarchlab/softfp/convert"
	"github.com/sarchlab/softfp/fpfmt"
	"github.com/sarchlab/softfp/fpval"
)

func TestConvert(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Convert Suite")
}

var _ = Describe("IntToFloat and FloatToInt", func() {
	var arena *bigint.Arena

	BeforeEach(func() {
		arena = bigint.NewArena()
	})

	It("round-trips zero", func() {
		v := convert.IntToFloat(0, arena)
		Expect(v.Class).To(Equal(fpval.Zero))
		Expect(convert.FloatToInt(v)).To(Equal(int64(0)))
	})

	DescribeTable("round-trips small integers exactly",
		func(n int64) {
			v := convert.IntToFloat(n, arena)
			Expect(convert.FloatToInt(v)).To(Equal(n))
		},
		Entry("positive", int64(1)),
		Entry("negative", int64(-1)),
		Entry("a power of two", int64(1<<40)),
		Entry("a negative power of two", int64(-(1 << 40))),
		Entry("odd and large", int64(123456789012345)),
	)

	It("round-trips INT64_MIN, which cannot be negated directly", func() {
		v := convert.IntToFloat(-1<<63, arena)
		Expect(v.Class).To(Equal(fpval.Normal))
		Expect(v.Sign).To(Equal(1))
		Expect(convert.FloatToInt(v)).To(Equal(int64(-1 << 63)))
	})

	It("truncates a non-Normal value to 0", func() {
		Expect(convert.FloatToInt(fpval.Value{Class: fpval.NaN})).To(Equal(int64(0)))
		Expect(convert.FloatToInt(fpval.Value{Class: fpval.Infinite})).To(Equal(int64(0)))
		Expect(convert.FloatToInt(fpval.Value{Class: fpval.Zero})).To(Equal(int64(0)))
	})
})

var _ = Describe("FloatToFloat", func() {
	var arena *bigint.Arena

	BeforeEach(func() {
		arena = bigint.NewArena()
	})

	It("narrows a working-precision integer into binary32 exactly", func() {
		v := convert.IntToFloat(4, arena)
		narrowed := convert.FloatToFloat(v, fpfmt.Lookup(fpfmt.Float32), arena)
		Expect(narrowed.Class).To(Equal(fpval.Normal))
		Expect(narrowed.Exp).To(Equal(2))
	})

	It("preserves class across Infinity and NaN", func() {
		inf := fpval.Value{Class: fpval.Infinite, Sign: 1}
		Expect(convert.FloatToFloat(inf, fpfmt.Lookup(fpfmt.Float32), arena).Class).
			To(Equal(fpval.Infinite))

		nan := fpval.Value{Class: fpval.NaN}
		Expect(convert.FloatToFloat(nan, fpfmt.Lookup(fpfmt.Float64), arena).Class).
			To(Equal(fpval.NaN))
	})

	It("rounds a value too large for binary32 to Infinity", func() {
		huge := convert.IntToFloat(1, arena)
		huge.Exp = fpfmt.Lookup(fpfmt.Float32).Maxexp + 1
		narrowed := convert.FloatToFloat(huge, fpfmt.Lookup(fpfmt.Float32), arena)
		Expect(narrowed.Class).To(Equal(fpval.Infinite))
	})
})
