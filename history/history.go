// Package history keeps the in-process section history and lets an open
// overlay intercept back navigation.
package history

import (
	"sync"

	"github.com/andareed/shopfront/logging"
)

// Navigator is the cancelable navigation surface the overlay coordinator
// depends on.
type Navigator interface {
	// PushGuard adds one blocking entry on top of the history.
	PushGuard()
	// OnBackAttempt registers fn to run after the user navigates back. The
	// returned func removes the registration.
	OnBackAttempt(fn func()) (cancel func())
	// ConsumeGuard removes one blocking entry without notifying listeners.
	ConsumeGuard()
	Depth() int
}

type Section string

const (
	SectionCatalog Section = "catalog"
	SectionCart    Section = "cart"
	SectionOrders  Section = "orders"
	SectionProfile Section = "profile"
)

type entry struct {
	section Section
	guard   bool
}

// Stack is the section history. Guard entries repeat the section beneath them,
// so popping one never changes what is shown.
type Stack struct {
	mu        sync.Mutex
	entries   []entry
	listeners map[int]func()
	order     []int
	nextID    int
}

func NewStack(start Section) *Stack {
	return &Stack{
		entries:   []entry{{section: start}},
		listeners: make(map[int]func()),
	}
}

// Push navigates to a section.
func (s *Stack) Push(sec Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.top().section == sec && !s.top().guard {
		return
	}
	s.entries = append(s.entries, entry{section: sec})
	logging.Debugf("history: push %s depth=%d", sec, len(s.entries))
}

func (s *Stack) Current() Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.top().section
}

func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Back is a user-initiated back navigation: it pops one entry and then
// notifies back-attempt listeners, which may push a new guard. It reports
// whether anything was popped; the first entry is never popped.
func (s *Stack) Back() bool {
	s.mu.Lock()
	if len(s.entries) <= 1 {
		s.mu.Unlock()
		return false
	}
	s.entries = s.entries[:len(s.entries)-1]
	fns := make([]func(), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.listeners[id])
	}
	logging.Debugf("history: back depth=%d listeners=%d", len(s.entries), len(fns))
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return true
}

func (s *Stack) PushGuard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry{section: s.top().section, guard: true})
	logging.Debugf("history: guard pushed depth=%d", len(s.entries))
}

func (s *Stack) ConsumeGuard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) <= 1 || !s.top().guard {
		logging.Warnf("history: consume without a guard on top (depth=%d)", len(s.entries))
		return
	}
	s.entries = s.entries[:len(s.entries)-1]
	logging.Debugf("history: guard consumed depth=%d", len(s.entries))
}

func (s *Stack) OnBackAttempt(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Listeners returns how many back-attempt listeners are registered.
func (s *Stack) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// DropStaleGuards removes guard entries left on top of the stack, e.g. when a
// session starts while a previous overlay's guard is still recorded. It must
// only be called while no overlay is open.
func (s *Stack) DropStaleGuards() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for len(s.entries) > 1 && s.top().guard {
		s.entries = s.entries[:len(s.entries)-1]
		n++
	}
	return n
}

func (s *Stack) top() entry {
	return s.entries[len(s.entries)-1]
}
