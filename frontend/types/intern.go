package types

import (
	"sync/atomic"

	"github.com/benbjohnson/immutable"
)

// The interning table maps structural hashes to their canonical instance.
// It is copy-on-write: readers never lock, and writers race on a
// compare-and-swap of the whole map. Types are immutable after
// construction, so handing out a previously interned instance is safe.
var interned atomic.Pointer[immutable.Map[uint64, Type]]

func init() {
	interned.Store(immutable.NewMap[uint64, Type](nil))
}

// Intern returns the canonical shared instance of t.
func Intern(t Type) Type {
	for {
		m := interned.Load()
		if got, ok := m.Get(t.Hash()); ok && Equal(got, t) {
			return got
		}
		next := m.Set(t.Hash(), t)
		if interned.CompareAndSwap(m, next) {
			return t
		}
	}
}
