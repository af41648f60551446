package element

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// State is the visual state of a controllable region.
type State int

const (
	StateUninitialized State = iota
	StateOpen
	StateClosed
)

// String returns the attribute form used at the rendering boundary.
func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "null"
	}
}

func ParseState(s string) (State, error) {
	switch s {
	case "open":
		return StateOpen, nil
	case "closed":
		return StateClosed, nil
	case "null", "":
		return StateUninitialized, nil
	default:
		return StateUninitialized, fmt.Errorf("unknown data-state %q", s)
	}
}

// Kind tags what an element is, mostly for logs and the view.
type Kind string

const (
	KindButton  Kind = "button"
	KindContent Kind = "content"
	KindOverlay Kind = "overlay"
	KindForm    Kind = "form"
	KindRow     Kind = "row"
)

// Element is a node of the rendered UI. The view reads it while submissions
// mutate labels and disabled flags from other goroutines, so every accessor
// takes the lock.
type Element struct {
	id     string
	kind   Kind
	parent *Element

	mu       sync.RWMutex
	state    State
	hasState bool
	shown    bool
	disabled bool
	label    string
	markers  map[string]bool
	data     map[string]any
}

func New(kind Kind, label string) *Element {
	return &Element{
		id:    uuid.NewString(),
		kind:  kind,
		label: label,
	}
}

// NewChild creates an element nested under parent.
func NewChild(parent *Element, kind Kind, label string) *Element {
	e := New(kind, label)
	e.parent = parent
	return e
}

func (e *Element) ID() string       { return e.id }
func (e *Element) Kind() Kind       { return e.kind }
func (e *Element) Parent() *Element { return e.parent }

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

func (e *Element) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// HasState reports whether the data-state attribute was ever written.
func (e *Element) HasState() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hasState
}

// Attr returns the data-state attribute, "" when it was never set.
func (e *Element) Attr() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.hasState {
		return ""
	}
	return e.state.String()
}

func (e *Element) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.hasState = true
	e.mu.Unlock()
}

func (e *Element) Shown() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.shown
}

func (e *Element) SetShown(v bool) {
	e.mu.Lock()
	e.shown = v
	e.mu.Unlock()
}

func (e *Element) Disabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.disabled
}

func (e *Element) SetDisabled(v bool) {
	e.mu.Lock()
	e.disabled = v
	e.mu.Unlock()
}

func (e *Element) Label() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.label
}

func (e *Element) SetLabel(s string) {
	e.mu.Lock()
	e.label = s
	e.mu.Unlock()
}

// HasMarker reports whether a bookkeeping marker is set, e.g. "close-listener".
func (e *Element) HasMarker(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.markers[name]
}

func (e *Element) SetMarker(name string) {
	e.mu.Lock()
	if e.markers == nil {
		e.markers = make(map[string]bool)
	}
	e.markers[name] = true
	e.mu.Unlock()
}

func (e *Element) Data(key string) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.data[key]
	return v, ok
}

func (e *Element) SetData(key string, v any) {
	e.mu.Lock()
	if e.data == nil {
		e.data = make(map[string]any)
	}
	e.data[key] = v
	e.mu.Unlock()
}

func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s)", e.kind, e.Label())
}

// Toggle flips el between open and closed, or forces the given value. An
// element without a data-state is first initialised to "null". It returns
// whether the element is now open.
func Toggle(el *Element, force ...bool) bool {
	if !el.HasState() {
		el.setState(StateUninitialized)
	}
	var open bool
	if len(force) > 0 {
		open = force[0]
	} else {
		open = el.State() != StateOpen
	}
	if open {
		el.setState(StateOpen)
	} else {
		el.setState(StateClosed)
	}
	return open
}
