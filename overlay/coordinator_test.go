package overlay

import (
	"testing"

	"github.com/andareed/shopfront/element"
	"github.com/andareed/shopfront/events"
	"github.com/andareed/shopfront/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type affordance struct{ suppressed bool }

func (a *affordance) SetSuppressed(v bool) { a.suppressed = v }

type fixture struct {
	bus   *events.Bus
	nav   *history.Stack
	aff   *affordance
	coord *Coordinator
}

func newFixture() *fixture {
	f := &fixture{
		bus: events.NewBus(),
		nav: history.NewStack(history.SectionCatalog),
		aff: &affordance{},
	}
	f.coord = New(f.bus, f.nav, WithAffordance(f.aff))
	return f
}

// openWithClose wires onDismiss to close the overlay, the way regions do.
func (f *fixture) openWithClose(ov *element.Element, dismissed *int) {
	f.coord.Open(ov, func() {
		*dismissed++
		f.coord.Close(ov)
	})
}

func TestOpenInstallsOneHandlerPerChannel(t *testing.T) {
	f := newFixture()
	ov := element.New(element.KindOverlay, "modal")

	f.coord.Open(ov, func() {})
	f.coord.Open(ov, func() {})

	assert.True(t, ov.Shown())
	assert.Equal(t, 1, f.bus.Count(events.KindClick))
	assert.Equal(t, 1, f.bus.Count(events.KindKey))
	assert.Equal(t, 1, f.nav.Listeners())
	assert.Equal(t, 2, f.nav.Depth(), "one guard for the open overlay")
	assert.True(t, f.aff.suppressed)
	for _, ch := range []Channel{OutsideClick, EscapeKey, BackNavigation} {
		assert.True(t, f.coord.Active(ch), ch.String())
	}

	f.coord.Close(ov)
	assert.False(t, ov.Shown())
	assert.Zero(t, f.bus.Count(events.KindClick))
	assert.Zero(t, f.bus.Count(events.KindKey))
	assert.Zero(t, f.nav.Listeners())
	assert.Equal(t, 1, f.nav.Depth())
	assert.False(t, f.aff.suppressed)
	assert.Nil(t, f.coord.Owner())
}

func TestCloseWhenNothingOpenIsNoop(t *testing.T) {
	f := newFixture()
	ov := element.New(element.KindOverlay, "modal")
	f.coord.Close(ov)
	assert.Equal(t, 1, f.nav.Depth())
	assert.False(t, f.aff.suppressed)
}

func TestNoHandlerLeakAcrossCycles(t *testing.T) {
	f := newFixture()
	ov := element.New(element.KindOverlay, "modal")
	for range 10 {
		f.coord.Open(ov, func() {})
		f.coord.Close(ov)
	}
	assert.Zero(t, f.bus.Count(events.KindClick))
	assert.Zero(t, f.bus.Count(events.KindKey))
	assert.Zero(t, f.nav.Listeners())
	assert.Equal(t, 1, f.nav.Depth())
}

func TestOutsideClickOnlyOnBackdrop(t *testing.T) {
	f := newFixture()
	ov := element.New(element.KindOverlay, "modal")
	content := element.NewChild(ov, element.KindContent, "content")
	btn := element.NewChild(content, element.KindButton, "save")

	n := 0
	f.openWithClose(ov, &n)

	f.bus.Dispatch(events.Click(content))
	f.bus.Dispatch(events.Click(btn))
	assert.Zero(t, n)

	f.bus.Dispatch(events.Click(ov))
	assert.Equal(t, 1, n)
	assert.False(t, ov.Shown())
}

func TestEscape(t *testing.T) {
	f := newFixture()
	ov := element.New(element.KindOverlay, "modal")
	n := 0

	f.bus.Dispatch(events.Key("esc"))
	assert.Zero(t, n, "closed: no-op")

	f.openWithClose(ov, &n)
	f.bus.Dispatch(events.Key("enter"))
	assert.Zero(t, n)
	f.bus.Dispatch(events.Key("esc"))
	assert.Equal(t, 1, n)

	f.bus.Dispatch(events.Key("esc"))
	assert.Equal(t, 1, n)
}

func TestBackNavigationKeepsDepth(t *testing.T) {
	f := newFixture()
	f.nav.Push(history.SectionCart)
	before := f.nav.Depth()

	ov := element.New(element.KindOverlay, "modal")
	n := 0
	f.openWithClose(ov, &n)
	require.Equal(t, before+1, f.nav.Depth())

	require.True(t, f.nav.Back())
	assert.Equal(t, 1, n)
	assert.Equal(t, before, f.nav.Depth())
	assert.Equal(t, history.SectionCart, f.nav.Current())
	assert.Zero(t, f.nav.Listeners())
}

func TestBackNavigationWithoutCloseKeepsGuard(t *testing.T) {
	f := newFixture()
	ov := element.New(element.KindOverlay, "modal")
	n := 0
	f.coord.Open(ov, func() { n++ })

	f.nav.Back()
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, f.nav.Depth(), "still blocked until closed")

	f.coord.Close(ov)
	assert.Equal(t, 1, f.nav.Depth())
}

func TestSecondOpenRebindsDismissal(t *testing.T) {
	f := newFixture()
	a := element.New(element.KindOverlay, "a")
	b := element.New(element.KindOverlay, "b")
	na, nb := 0, 0

	f.openWithClose(a, &na)
	f.openWithClose(b, &nb)
	assert.Equal(t, b, f.coord.Owner())
	assert.Equal(t, 1, f.bus.Count(events.KindKey))

	f.bus.Dispatch(events.Key("esc"))
	assert.Zero(t, na)
	assert.Equal(t, 1, nb)
	assert.True(t, a.Shown(), "first overlay is left open")
	assert.False(t, b.Shown())

	// a is orphaned: nothing dismisses it any more
	f.bus.Dispatch(events.Click(a))
	f.bus.Dispatch(events.Key("esc"))
	assert.Zero(t, na)
}
