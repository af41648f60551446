package submit

import (
	"sync"
	"sync/atomic"
)

// PointerLock is the page-level pointer lock. The app drops mouse input while
// it is held. It is reference counted so overlapping submissions on different
// forms keep the page locked until the last one restores.
type PointerLock struct {
	holders atomic.Int32
}

// Acquire takes one reference. The returned release is idempotent.
func (l *PointerLock) Acquire() (release func()) {
	l.holders.Add(1)
	var once sync.Once
	return func() {
		once.Do(func() { l.holders.Add(-1) })
	}
}

func (l *PointerLock) Locked() bool {
	return l.holders.Load() > 0
}
