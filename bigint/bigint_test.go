package bigint_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/softfp/bigint"
)

func TestBigint(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "BigInt Suite")
}

var _ = Describe("Int", func() {
	var arena *bigint.Arena

	BeforeEach(func() {
		arena = bigint.NewArena()
	})

	Describe("basic construction", func() {
		It("is zero by default", func() {
			z := bigint.New(arena)
			Expect(z.IsZero()).To(BeTrue())
		})

		It("holds a single limb value", func() {
			z := bigint.New(arena).SetUint16(42)
			Expect(z.IsZero()).To(BeFalse())
			Expect(bigint.Topbit(z)).To(Equal(5))
		})

		It("holds wide values across limbs", func() {
			z := bigint.New(arena).SetUint64(1 << 40)
			Expect(bigint.Topbit(z)).To(Equal(40))
		})
	})

	Describe("shifts", func() {
		It("Shl multiplies by a power of two", func() {
			z := bigint.New(arena).SetUint16(1).Shl(20)
			Expect(bigint.Topbit(z)).To(Equal(20))
		})

		It("Shr divides and reports stickiness", func() {
			z := bigint.New(arena).SetUint16(0b1011).Shr(2, true)
			// 0b1011 >> 2 == 0b10, with a 1 bit shifted out -> sticky OR'd in
			Expect(bigint.Topbit(z)).To(Equal(1))
			Expect(z.Bit(0)).To(Equal(uint(1)))
		})

		It("Shr without sticky discards low bits cleanly", func() {
			z := bigint.New(arena).SetUint16(0b1000).Shr(3, false)
			Expect(z.Bit(0)).To(Equal(uint(1)))
		})

		It("shifting entirely past the value leaves only the sticky bit when something was lost", func() {
			z := bigint.New(arena).SetUint16(1).Shr(10, true)
			Expect(z.IsZero()).To(BeFalse())
			Expect(z.Bit(0)).To(Equal(uint(1)))
		})
	})

	DescribeTable("Add is commutative",
		func(x, y uint64) {
			a := bigint.New(arena).SetUint64(x)
			b := bigint.New(arena).SetUint64(y)
			c1 := bigint.New(arena).Add(a, b)
			c2 := bigint.New(arena).Add(b, a)
			Expect(bigint.Cmp(c1, c2)).To(Equal(0))
		},
		Entry("small", uint64(3), uint64(5)),
		Entry("cross-limb", uint64(1<<16-1), uint64(2)),
		Entry("large", uint64(1<<50), uint64(1<<49)),
	)

	DescribeTable("Mul is commutative",
		func(x, y uint64) {
			a := bigint.New(arena).SetUint64(x)
			b := bigint.New(arena).SetUint64(y)
			c1 := bigint.New(arena).Mul(a, b)
			c2 := bigint.New(arena).Mul(b, a)
			Expect(bigint.Cmp(c1, c2)).To(Equal(0))
		},
		Entry("small", uint64(7), uint64(9)),
		Entry("cross-limb", uint64(70000), uint64(70001)),
	)

	It("QuoRem satisfies n == q*d + r with 0 <= r < d", func() {
		n := bigint.New(arena).SetUint64(1_000_003)
		d := bigint.New(arena).SetUint64(17)
		q := bigint.New(arena)
		r := bigint.New(arena)
		bigint.QuoRem(q, r, n, d)

		check := bigint.New(arena).Mul(q, d)
		check.Add(check, r)
		Expect(bigint.Cmp(check, n)).To(Equal(0))
		Expect(bigint.Geq(r, d)).To(BeFalse())
	})

	It("Geq is a total order on canonical magnitudes", func() {
		a := bigint.New(arena).SetUint64(100)
		b := bigint.New(arena).SetUint64(200)
		Expect(bigint.Geq(a, b)).To(BeFalse())
		Expect(bigint.Geq(b, a)).To(BeTrue())
		Expect(bigint.Geq(a, a)).To(BeTrue())
	})

	It("AddSigned folds a larger negative operand into a negative magnitude", func() {
		a := bigint.New(arena).SetUint64(5)
		b := bigint.New(arena).SetUint64(12)
		z := bigint.New(arena)
		neg := bigint.AddSigned(z, a, false, b, true) // 5 - 12
		Expect(neg).To(BeTrue())
		Expect(bigint.Cmp(z, bigint.New(arena).SetUint64(7))).To(Equal(0))
	})

	It("exhausts a capacity-limited arena", func() {
		tiny := bigint.NewArena()
		z := bigint.New(tiny).SetUint16(1)
		Expect(func() {
			for i := 0; i < bigint.MaxLimbs+100; i++ {
				z.Shl(limbWidth)
			}
		}).To(Panic())
	})
})

const limbWidth = 16
