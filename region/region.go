// Package region binds a trigger, a close control, a content element and an
// overlay backdrop into one open/closed state machine.
package region

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/andareed/shopfront/element"
	"github.com/andareed/shopfront/events"
	"github.com/andareed/shopfront/logging"
	"github.com/andareed/shopfront/overlay"
)

// ErrMissingWiring is returned by New when a required element is absent.
var ErrMissingWiring = errors.New("region: missing required elements")

const (
	markerOpenListener  = "open-listener"
	markerCloseListener = "close-listener"
)

// Params is the parameter bag merged on every open.
type Params map[string]any

// Gate may veto an open. It runs before any state changes and is responsible
// for telling the user why, if it wants to. The event is zero for
// programmatic opens.
type Gate func(ev events.Event) bool

// OpenContext is what the open callback receives. Params are the defaults
// overlaid with the per-open values.
type OpenContext struct {
	Event  events.Event
	Params Params
}

type OpenFunc func(OpenContext)

// CloseFunc receives the region's default parameters. Per-open values are
// only seen by the open callback.
type CloseFunc func(Params)

// Config is read once by New and not retained by reference.
type Config struct {
	Trigger *element.Element // optional
	Close   *element.Element
	Content *element.Element
	Overlay *element.Element

	ShouldOpen Gate
	OnOpen     OpenFunc
	OnClose    CloseFunc
	Params     Params
}

// Handle is what callers keep to open the region from anywhere.
type Handle struct {
	Open func(Params)
}

type Region struct {
	coord *overlay.Coordinator
	bus   *events.Bus
	cfg   Config
}

// New validates cfg and attaches the trigger listener. Binding a trigger that
// already carries an open listener does not attach a second one.
func New(coord *overlay.Coordinator, bus *events.Bus, cfg Config) (*Region, error) {
	var missing []string
	if cfg.Close == nil {
		missing = append(missing, "close")
	}
	if cfg.Content == nil {
		missing = append(missing, "content")
	}
	if cfg.Overlay == nil {
		missing = append(missing, "overlay")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingWiring, strings.Join(missing, ", "))
	}

	cfg.Params = maps.Clone(cfg.Params)
	r := &Region{coord: coord, bus: bus, cfg: cfg}

	if t := cfg.Trigger; t != nil && !t.HasMarker(markerOpenListener) {
		bus.Subscribe(events.KindClick, func(ev events.Event) {
			if ev.Target != t {
				return
			}
			r.open(ev, nil)
		})
		t.SetMarker(markerOpenListener)
	}
	return r, nil
}

// Open opens the region programmatically with extra parameters.
func (r *Region) Open(extra Params) {
	r.open(events.Event{}, extra)
}

func (r *Region) Handle() Handle {
	return Handle{Open: r.Open}
}

// Close runs the close path, the same one the dismiss channels use.
func (r *Region) Close() {
	r.close()
}

func (r *Region) State() element.State { return r.cfg.Content.State() }

func (r *Region) IsOpen() bool { return r.State() == element.StateOpen }

func (r *Region) open(ev events.Event, extra Params) {
	if r.cfg.ShouldOpen != nil && !r.cfg.ShouldOpen(ev) {
		logging.Debugf("region: open of %s vetoed by gate", r.cfg.Content)
		return
	}

	params := make(Params, len(r.cfg.Params)+len(extra))
	maps.Copy(params, r.cfg.Params)
	maps.Copy(params, extra)

	if r.cfg.OnOpen != nil {
		r.cfg.OnOpen(OpenContext{Event: ev, Params: params})
	}
	element.Toggle(r.cfg.Content, true)
	r.coord.Open(r.cfg.Overlay, r.close)

	if c := r.cfg.Close; !c.HasMarker(markerCloseListener) {
		r.bus.Subscribe(events.KindClick, func(ev events.Event) {
			if ev.Target == c {
				r.close()
			}
		})
		c.SetMarker(markerCloseListener)
	}
}

func (r *Region) close() {
	if r.cfg.OnClose != nil {
		r.cfg.OnClose(maps.Clone(r.cfg.Params))
	}
	element.Toggle(r.cfg.Content, false)
	r.coord.Close(r.cfg.Overlay)
}
