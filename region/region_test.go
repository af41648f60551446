package region

import (
	"testing"

	"github.com/andareed/shopfront/element"
	"github.com/andareed/shopfront/events"
	"github.com/andareed/shopfront/history"
	"github.com/andareed/shopfront/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parts struct {
	trigger, close, content, overlay *element.Element
}

func newParts(name string) parts {
	ov := element.New(element.KindOverlay, name)
	content := element.NewChild(ov, element.KindContent, name)
	return parts{
		trigger: element.New(element.KindButton, "open "+name),
		close:   element.NewChild(content, element.KindButton, "close"),
		content: content,
		overlay: ov,
	}
}

type env struct {
	bus   *events.Bus
	nav   *history.Stack
	coord *overlay.Coordinator
}

func newEnv() *env {
	e := &env{bus: events.NewBus(), nav: history.NewStack(history.SectionCatalog)}
	e.coord = overlay.New(e.bus, e.nav)
	return e
}

func (e *env) region(t *testing.T, p parts, cfg Config) *Region {
	t.Helper()
	cfg.Trigger, cfg.Close, cfg.Content, cfg.Overlay = p.trigger, p.close, p.content, p.overlay
	r, err := New(e.coord, e.bus, cfg)
	require.NoError(t, err)
	return r
}

func TestMissingWiring(t *testing.T) {
	e := newEnv()
	_, err := New(e.coord, e.bus, Config{Content: element.New(element.KindContent, "x")})
	require.ErrorIs(t, err, ErrMissingWiring)
	assert.Contains(t, err.Error(), "close")
	assert.Contains(t, err.Error(), "overlay")
	assert.NotContains(t, err.Error(), "content")
}

func TestTriggerOpensAndCloseControlCloses(t *testing.T) {
	e := newEnv()
	p := newParts("edit")
	var opened []OpenContext
	var closed []Params
	r := e.region(t, p, Config{
		Params:  Params{"mode": "edit"},
		OnOpen:  func(c OpenContext) { opened = append(opened, c) },
		OnClose: func(ps Params) { closed = append(closed, ps) },
	})

	e.bus.Dispatch(events.Click(p.trigger))
	require.Len(t, opened, 1)
	assert.Equal(t, p.trigger, opened[0].Event.Target)
	assert.Equal(t, "edit", opened[0].Params["mode"])
	assert.True(t, r.IsOpen())
	assert.True(t, p.overlay.Shown())

	e.bus.Dispatch(events.Click(p.close))
	assert.Equal(t, element.StateClosed, r.State())
	assert.False(t, p.overlay.Shown())
	require.Len(t, closed, 1)
	assert.Equal(t, "edit", closed[0]["mode"])
}

func TestCloseReceivesDefaultsOnly(t *testing.T) {
	e := newEnv()
	p := newParts("edit")
	var closed Params
	r := e.region(t, p, Config{
		Params:  Params{"mode": "edit"},
		OnClose: func(ps Params) { closed = ps },
	})

	r.Open(Params{"sku": "A-1", "mode": "copy"})
	r.Close()
	assert.Equal(t, Params{"mode": "edit"}, closed)
}

func TestOpenMergesParams(t *testing.T) {
	e := newEnv()
	p := newParts("edit")
	defaults := Params{"mode": "edit", "sku": "none"}
	var got OpenContext
	r := e.region(t, p, Config{
		Params: defaults,
		OnOpen: func(c OpenContext) { got = c },
	})

	r.Handle().Open(Params{"sku": "A-1"})
	assert.Equal(t, Params{"mode": "edit", "sku": "A-1"}, got.Params)
	assert.Nil(t, got.Event.Target, "programmatic opens carry no event")
	assert.Equal(t, "none", defaults["sku"], "defaults are not mutated")

	r.Open(nil)
	assert.Equal(t, "none", got.Params["sku"])
}

func TestGateVetoesWithoutSideEffects(t *testing.T) {
	e := newEnv()
	p := newParts("cart")
	allow := false
	gateCalls, openCalls := 0, 0
	r := e.region(t, p, Config{
		ShouldOpen: func(events.Event) bool { gateCalls++; return allow },
		OnOpen:     func(OpenContext) { openCalls++ },
	})

	e.bus.Dispatch(events.Click(p.trigger))
	r.Open(nil)
	assert.Equal(t, 2, gateCalls)
	assert.Zero(t, openCalls)
	assert.False(t, p.content.HasState())
	assert.False(t, p.overlay.Shown())
	assert.Nil(t, e.coord.Owner())

	allow = true
	r.Open(nil)
	assert.Equal(t, 1, openCalls)
	assert.True(t, r.IsOpen())
}

func TestOpenCloseCyclesDoNotLeak(t *testing.T) {
	e := newEnv()
	p := newParts("edit")
	r := e.region(t, p, Config{})
	clicks := e.bus.Count(events.KindClick)

	r.Close()
	for range 5 {
		r.Open(nil)
		r.Close()
	}
	assert.Equal(t, element.StateClosed, r.State())
	// trigger and close listeners stay, the coordinator's are gone
	assert.Equal(t, clicks+1, e.bus.Count(events.KindClick))
	assert.Zero(t, e.bus.Count(events.KindKey))
	assert.Equal(t, 1, e.nav.Depth())
}

func TestReopenReassertsOpen(t *testing.T) {
	e := newEnv()
	p := newParts("edit")
	r := e.region(t, p, Config{})
	r.Open(nil)
	r.Open(nil)
	assert.True(t, r.IsOpen())
	r.Close()
	assert.False(t, r.IsOpen())
}

func TestTriggerListenerAttachedOnce(t *testing.T) {
	e := newEnv()
	p := newParts("edit")
	n := 0
	e.region(t, p, Config{OnOpen: func(OpenContext) { n++ }})
	e.region(t, p, Config{OnOpen: func(OpenContext) { n++ }})

	e.bus.Dispatch(events.Click(p.trigger))
	assert.Equal(t, 1, n)
}

func TestDismissChannelsCloseRegion(t *testing.T) {
	cases := map[string]func(e *env, p parts){
		"backdrop": func(e *env, p parts) { e.bus.Dispatch(events.Click(p.overlay)) },
		"escape":   func(e *env, p parts) { e.bus.Dispatch(events.Key("esc")) },
		"back":     func(e *env, p parts) { e.nav.Back() },
	}
	for name, dismiss := range cases {
		t.Run(name, func(t *testing.T) {
			e := newEnv()
			p := newParts("edit")
			closed := 0
			r := e.region(t, p, Config{OnClose: func(Params) { closed++ }})

			r.Open(nil)
			dismiss(e, p)
			assert.Equal(t, 1, closed)
			assert.Equal(t, element.StateClosed, r.State())
			assert.Equal(t, 1, e.nav.Depth())
		})
	}
}

func TestClickInsideContentDoesNotClose(t *testing.T) {
	e := newEnv()
	p := newParts("edit")
	r := e.region(t, p, Config{})
	r.Open(nil)

	e.bus.Dispatch(events.Click(p.content))
	assert.True(t, r.IsOpen())
}

func TestSecondRegionOrphansFirst(t *testing.T) {
	e := newEnv()
	pa, pb := newParts("a"), newParts("b")
	a := e.region(t, pa, Config{})
	b := e.region(t, pb, Config{})

	a.Open(nil)
	b.Open(nil)
	e.bus.Dispatch(events.Key("esc"))

	assert.Equal(t, element.StateClosed, b.State())
	assert.Equal(t, element.StateOpen, a.State())
	assert.True(t, pa.overlay.Shown())
}
