package fpfmt_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/softfp/bigint"
	"github.com/sarchlab/softfp/fpfmt"
	"github.com/sarchlab/softfp/fpval"
)

func TestFpfmt(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Fpfmt Suite")
}

var allFormats = []*fpfmt.Format{
	fpfmt.Lookup(fpfmt.Float32),
	fpfmt.Lookup(fpfmt.Float64),
	fpfmt.Lookup(fpfmt.X80),
}

var _ = Describe("Format codecs", func() {
	var arena *bigint.Arena

	BeforeEach(func() {
		arena = bigint.NewArena()
	})

	DescribeTable("round-trips ZERO, INFINITE, and NaN-class",
		func(f *fpfmt.Format) {
			for _, sign := range []int{0, 1} {
				zero := f.Pack(fpval.Value{Class: fpval.Zero, Sign: sign}, arena)
				Expect(f.Classify(zero)).To(Equal(fpval.Zero))
				Expect(f.Unpack(zero, arena).Class).To(Equal(fpval.Zero))

				inf := f.Pack(fpval.Value{Class: fpval.Infinite, Sign: sign}, arena)
				Expect(f.Classify(inf)).To(Equal(fpval.Infinite))
				Expect(f.Unpack(inf, arena).Sign).To(Equal(sign))
			}

			nan := f.Pack(fpval.Value{Class: fpval.NaN}, arena)
			Expect(f.Classify(nan)).To(Equal(fpval.NaN))
			Expect(f.Unpack(nan, arena).Class).To(Equal(fpval.NaN))
		},
		Entry("binary32", fpfmt.Lookup(fpfmt.Float32)),
		Entry("binary64", fpfmt.Lookup(fpfmt.Float64)),
		Entry("binaryx80", fpfmt.Lookup(fpfmt.X80)),
	)

	DescribeTable("canonical zero has an all-zero mantissa field",
		func(f *fpfmt.Format) {
			w := f.Pack(fpval.Value{Class: fpval.Zero, Sign: 0}, arena)
			Expect(w[0]).To(Equal(uint32(0)))
			Expect(w[1]).To(Equal(uint32(0)))
		},
		Entry("binary32", fpfmt.Lookup(fpfmt.Float32)),
		Entry("binary64", fpfmt.Lookup(fpfmt.Float64)),
		Entry("binaryx80", fpfmt.Lookup(fpfmt.X80)),
	)

	It("round-trips a normal binary64 value exactly", func() {
		f := fpfmt.Lookup(fpfmt.Float64)
		mant := bigint.New(arena).SetUint64(1 << 52) // 1.0
		v := fpval.Value{Class: fpval.Normal, Sign: 0, Exp: 0, Mant: mant}
		w := f.Pack(v, arena)
		Expect(w[1]).To(Equal(uint32(0x3FF00000)))
		Expect(w[0]).To(Equal(uint32(0)))

		back := f.Unpack(w, arena)
		Expect(back.Class).To(Equal(fpval.Normal))
		Expect(back.Exp).To(Equal(0))
	})

	It("packs the smallest binary64 subnormal from a one-bit mantissa", func() {
		f := fpfmt.Lookup(fpfmt.Float64)
		mant := bigint.New(arena).SetUint64(1)
		v := fpval.Value{Class: fpval.Normal, Sign: 0, Exp: f.Minexp - 52, Mant: mant}
		w := f.Pack(v, arena)
		Expect(w[1]).To(Equal(uint32(0)))
		Expect(w[0]).To(Equal(uint32(1)))
		Expect(f.Classify(w)).To(Equal(fpval.Subnormal))
	})

	It("Lookup panics for the stubbed binary16/binary128 formats", func() {
		Expect(func() { fpfmt.Lookup(fpfmt.Float16) }).To(Panic())
		Expect(func() { fpfmt.Lookup(fpfmt.Float128) }).To(Panic())
	})
})
