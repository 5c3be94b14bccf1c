package bigint

import "fmt"

// MaxLimbs bounds how much backing storage a single Arena will hand
// out before reporting exhaustion. The real compiler ties one Arena
// to a statement's constant folding; this default is generous enough
// for any literal or intermediate product this engine produces.
const MaxLimbs = 1 << 20

// ErrArenaExhausted is returned by Arena.alloc when a single Arena has
// handed out more than MaxLimbs limbs across its lifetime. Per the
// spec this is unrecoverable for the compile unit: callers should
// treat it as fatal rather than try to continue folding.
var ErrArenaExhausted = fmt.Errorf("bigint: arena exhausted (limit %d limbs)", MaxLimbs)

// Arena is a statement-scoped backing allocator for BigInt growth.
// The host compiler creates one Arena per statement being folded and
// calls Reset between statements; individual buffers are never freed
// one at a time.
type Arena struct {
	issued int
}

// NewArena returns a fresh, empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// Reset discards bookkeeping for all limbs issued so far. The backing
// slices themselves become garbage; the arena resets wholesale rather
// than freeing values one at a time.
func (a *Arena) Reset() {
	a.issued = 0
}

func (a *Arena) alloc(n int) ([]uint16, error) {
	if a == nil {
		return make([]uint16, n), nil
	}
	if a.issued+n > MaxLimbs {
		return nil, ErrArenaExhausted
	}
	a.issued += n
	return make([]uint16, n), nil
}
