// Package submit runs one logical submission of a form at a time, with the
// page locked and the form's submit buttons disabled while it is in flight.
package submit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andareed/shopfront/element"
	"github.com/andareed/shopfront/logging"
	"github.com/andareed/shopfront/loop"
	"github.com/sirupsen/logrus"
)

// DefaultTrailingDelay pads the settle callback so a fast response still shows
// its feedback before a modal closes or the section changes.
const DefaultTrailingDelay = 300 * time.Millisecond

var ErrSubmitPanicked = errors.New("submit: operation panicked")

type Button = element.Button

// Control is a form-like control owning a submission guard.
type Control interface {
	// TryAcquire sets the guard and reports whether it was clear.
	TryAcquire() bool
	Release()
	Submitting() bool
	SubmitButtons() []Button
}

// Request describes one submission.
type Request struct {
	Control Control
	// Submit is the operation itself, usually a backend round trip. It is
	// required.
	Submit func(ctx context.Context) error
	// OnSettled runs on the loop after MinDisplay plus the trailing delay,
	// whether Submit failed or not.
	OnSettled   func()
	ShowSpinner bool
	// MinDisplay keeps the spinner up at least this long.
	MinDisplay time.Duration
}

type Option func(*Pipeline)

func WithTrailingDelay(d time.Duration) Option {
	return func(p *Pipeline) { p.trailing = d }
}

// WithSpinner sets how a button label is rendered while its form submits.
func WithSpinner(fn func(label string) string) Option {
	return func(p *Pipeline) { p.spinner = fn }
}

type Pipeline struct {
	loop     loop.Loop
	lock     *PointerLock
	trailing time.Duration
	spinner  func(string) string
}

func New(l loop.Loop, lock *PointerLock, opts ...Option) *Pipeline {
	p := &Pipeline{
		loop:     l,
		lock:     lock,
		trailing: DefaultTrailingDelay,
		spinner:  func(label string) string { return "⟳ " + label },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run performs req. A control already submitting makes Run return nil without
// calling Submit. Otherwise Run blocks for the duration of Submit and returns
// its error unchanged. The controls are restored before Run returns unless a
// spinner has to stay up for MinDisplay, in which case restoration is
// scheduled on the loop. The settle callback always goes to the loop.
func (p *Pipeline) Run(ctx context.Context, req Request) error {
	if req.Submit == nil {
		return errors.New("submit: request has no operation")
	}
	c := req.Control
	if !c.TryAcquire() {
		logging.Debug("submit: dropped duplicate submission")
		return nil
	}
	unlock := p.lock.Acquire()

	buttons := c.SubmitButtons()
	labels := make([]string, len(buttons))
	for i, b := range buttons {
		labels[i] = b.Label()
		b.SetDisabled(true)
		if req.ShowSpinner {
			b.SetLabel(p.spinner(labels[i]))
		}
	}

	start := time.Now()
	err := call(ctx, req.Submit)
	log := logging.With(logrus.Fields{"elapsed": time.Since(start).Round(time.Millisecond)})
	if err != nil {
		log.WithError(err).Warn("submit: operation failed")
	} else {
		log.Debug("submit: operation done")
	}

	if req.OnSettled != nil {
		p.loop.After(req.MinDisplay+p.trailing, req.OnSettled)
	}

	restore := func() {
		for i, b := range buttons {
			b.SetLabel(labels[i])
			b.SetDisabled(false)
		}
		c.Release()
		unlock()
	}
	if req.ShowSpinner && req.MinDisplay > 0 {
		p.loop.After(req.MinDisplay, restore)
		return err
	}
	restore()
	// repaint with the restored labels
	p.loop.Post(func() {})
	return err
}

func call(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSubmitPanicked, r)
		}
	}()
	return fn(ctx)
}
