package literal_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/softfp/bigint"
	"github.com/sarchlab/softfp/fpfmt"
	"github.com/sarchlab/softfp/fpval"
	"github.com/sarchlab/softfp/literal"
)

func TestLiteral(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Literal Suite")
}

var _ = Describe("Decoder", func() {
	var (
		arena *bigint.Arena
		d     *literal.Decoder
		f64   *fpfmt.Format
	)

	BeforeEach(func() {
		arena = bigint.NewArena()
		d = literal.NewDecoder()
		f64 = fpfmt.Lookup(fpfmt.Float64)
	})

	It("decodes a whole decimal integer", func() {
		v := d.Decode("2", 0, f64, arena)
		Expect(v.Class).To(Equal(fpval.Normal))
		Expect(v.Exp).To(Equal(1))
	})

	It("decodes a decimal fraction", func() {
		v := d.Decode("0.5", 0, f64, arena)
		Expect(v.Class).To(Equal(fpval.Normal))
		Expect(v.Exp).To(Equal(-1))
	})

	It("applies sign independently of the literal text", func() {
		v := d.Decode("1", 1, f64, arena)
		Expect(v.Sign).To(Equal(1))
	})

	It("decodes a decimal exponent", func() {
		v := d.Decode("1e3", 0, f64, arena)
		w := f64.Pack(v, arena)
		back := f64.Unpack(w, arena)
		Expect(back.Exp).To(Equal(9)) // 1000 in [2^9, 2^10)
	})

	It("decodes a hex literal with binary exponent", func() {
		v := d.Decode("0x1p4", 0, f64, arena)
		Expect(v.Class).To(Equal(fpval.Normal))
		Expect(v.Exp).To(Equal(4))
	})

	It("decodes a hex fraction", func() {
		v := d.Decode("0x1.8p0", 0, f64, arena)
		w := f64.Pack(v, arena)
		back := f64.Unpack(w, arena)
		Expect(back.Exp).To(Equal(0))
	})

	It("treats an absurdly large exponent field as overflow to Infinite", func() {
		v := d.Decode("1e99999", 0, f64, arena)
		Expect(v.Class).To(Equal(fpval.Infinite))
	})

	It("treats an absurdly negative exponent field as underflow to Zero", func() {
		v := d.Decode("1e-99999", 0, f64, arena)
		Expect(v.Class).To(Equal(fpval.Zero))
	})

	It("decodes the smallest binary64 subnormal", func() {
		v := d.Decode("4.9406564584124654e-324", 0, f64, arena)
		w := f64.Pack(v, arena)
		Expect(f64.Classify(w)).To(Equal(fpval.Subnormal))
	})

	It("round-trips through Pack without losing a power-of-two value", func() {
		v := d.Decode("8", 0, f64, arena)
		w := f64.Pack(v, arena)
		back := f64.Unpack(w, arena)
		Expect(back.Exp).To(Equal(3))
	})
})
