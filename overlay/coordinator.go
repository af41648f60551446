// Package overlay makes one overlay at a time dismissible through three
// channels: a click on the backdrop, the Escape key and back navigation.
//
// The coordinator is a single slot. Opening a second overlay while the first
// is still open rebinds all three channels to the second one and leaves the
// first open with no dismiss wiring; callers that need stacking must close
// first.
package overlay

import (
	"sync"

	"github.com/andareed/shopfront/element"
	"github.com/andareed/shopfront/events"
	"github.com/andareed/shopfront/history"
	"github.com/andareed/shopfront/logging"
	"github.com/sirupsen/logrus"
)

// Channel names one dismiss trigger.
type Channel int

const (
	OutsideClick Channel = iota
	EscapeKey
	BackNavigation
)

func (c Channel) String() string {
	switch c {
	case OutsideClick:
		return "outside-click"
	case EscapeKey:
		return "escape-key"
	case BackNavigation:
		return "back-navigation"
	default:
		return "unknown"
	}
}

// Affordance is an element hidden while an overlay is open, such as the
// scroll-to-top hint.
type Affordance interface {
	SetSuppressed(bool)
}

type Option func(*Coordinator)

func WithAffordance(a Affordance) Option {
	return func(c *Coordinator) { c.affordance = a }
}

type Coordinator struct {
	bus        *events.Bus
	nav        history.Navigator
	affordance Affordance

	mu        sync.Mutex
	owner     *element.Element
	onDismiss func()

	outsideClick events.ID
	escapeKey    events.ID
	backCancel   func()
}

func New(bus *events.Bus, nav history.Navigator, opts ...Option) *Coordinator {
	c := &Coordinator{bus: bus, nav: nav}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open shows overlay and makes it the dismiss target. Handlers already present
// are kept, not duplicated; they always dismiss the current owner.
func (c *Coordinator) Open(overlay *element.Element, onDismiss func()) {
	overlay.SetShown(true)

	c.mu.Lock()
	if c.owner != nil && c.owner != overlay {
		logging.With(logrus.Fields{"previous": c.owner.String(), "next": overlay.String()}).
			Warn("overlay: opened over an open overlay, dismissal rebound")
	}
	c.owner = overlay
	c.onDismiss = onDismiss

	if c.outsideClick == "" {
		c.outsideClick = c.bus.Subscribe(events.KindClick, c.handleClick)
	}
	if c.escapeKey == "" {
		c.escapeKey = c.bus.Subscribe(events.KindKey, c.handleKey)
	}
	pushGuard := false
	if c.backCancel == nil {
		c.backCancel = c.nav.OnBackAttempt(c.handleBack)
		pushGuard = true
	}
	c.mu.Unlock()

	if pushGuard {
		c.nav.PushGuard()
	}
	if c.affordance != nil {
		c.affordance.SetSuppressed(true)
	}
	logging.Debugf("overlay: open %s", overlay)
}

// Close hides overlay and removes every registered handler no matter which
// overlay owns them. When the back handler was registered the guard entry
// pushed by Open is consumed.
func (c *Coordinator) Close(overlay *element.Element) {
	overlay.SetShown(false)

	c.mu.Lock()
	click, key, back := c.outsideClick, c.escapeKey, c.backCancel
	c.outsideClick, c.escapeKey, c.backCancel = "", "", nil
	wasOpen := c.owner != nil
	c.owner, c.onDismiss = nil, nil
	c.mu.Unlock()

	if click != "" {
		c.bus.Unsubscribe(click)
	}
	if key != "" {
		c.bus.Unsubscribe(key)
	}
	if back != nil {
		back()
		c.nav.ConsumeGuard()
	}
	if wasOpen && c.affordance != nil {
		c.affordance.SetSuppressed(false)
	}
	logging.Debugf("overlay: close %s", overlay)
}

// Owner returns the overlay the dismiss channels currently act on.
func (c *Coordinator) Owner() *element.Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.owner
}

// Active reports whether the handler for ch is registered.
func (c *Coordinator) Active(ch Channel) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch ch {
	case OutsideClick:
		return c.outsideClick != ""
	case EscapeKey:
		return c.escapeKey != ""
	case BackNavigation:
		return c.backCancel != nil
	}
	return false
}

func (c *Coordinator) dismiss(ch Channel) {
	c.mu.Lock()
	fn, owner := c.onDismiss, c.owner
	c.mu.Unlock()
	if fn == nil {
		return
	}
	logging.Debugf("overlay: dismiss %s via %s", owner, ch)
	fn()
}

func (c *Coordinator) handleClick(ev events.Event) {
	c.mu.Lock()
	owner := c.owner
	c.mu.Unlock()
	// clicks bubbling up from inside the content do not count
	if owner == nil || ev.Target != owner {
		return
	}
	c.dismiss(OutsideClick)
}

func (c *Coordinator) handleKey(ev events.Event) {
	if ev.Key != "esc" {
		return
	}
	c.dismiss(EscapeKey)
}

func (c *Coordinator) handleBack() {
	c.mu.Lock()
	open := c.owner != nil
	c.mu.Unlock()
	if !open {
		return
	}
	// the user's back already popped our guard; block again until closed
	c.nav.PushGuard()
	c.dismiss(BackNavigation)
}
