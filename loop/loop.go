// Package loop schedules continuations onto the UI goroutine. Everything that
// touches view state after an asynchronous boundary goes through a Loop, so
// the model only ever changes inside Bubble Tea's Update.
package loop

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Loop accepts work to run on the UI goroutine.
type Loop interface {
	// Post runs fn on the loop after the current handler returns.
	Post(fn func())
	// After runs fn on the loop once d has elapsed.
	After(d time.Duration, fn func())
}

// Msg carries a posted continuation into Update.
type Msg struct {
	fn func()
}

func (m Msg) Run() {
	if m.fn != nil {
		m.fn()
	}
}

// Sender is the part of *tea.Program the adapter needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Program feeds posted work into a running Bubble Tea program. Posts made
// before Attach are buffered and delivered in order once attached.
//
// tea.Program.Send blocks until Update reads the message, and Post is often
// called from inside Update, so delivery happens on a separate pump goroutine.
type Program struct {
	mu      sync.Mutex
	sender  Sender
	queue   []func()
	wake    chan struct{}
	started bool
}

func NewProgram() *Program {
	return &Program{wake: make(chan struct{}, 1)}
}

// Attach starts delivering to s until ctx is done.
func (p *Program) Attach(ctx context.Context, s Sender) {
	p.mu.Lock()
	p.sender = s
	start := !p.started
	p.started = true
	p.mu.Unlock()

	if start {
		go p.pump(ctx)
	}
	p.signal()
}

func (p *Program) Post(fn func()) {
	p.mu.Lock()
	p.queue = append(p.queue, fn)
	p.mu.Unlock()
	p.signal()
}

func (p *Program) After(d time.Duration, fn func()) {
	if d <= 0 {
		p.Post(fn)
		return
	}
	time.AfterFunc(d, func() { p.Post(fn) })
}

func (p *Program) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Program) pump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.wake:
		}

		p.mu.Lock()
		s, batch := p.sender, p.queue
		p.queue = nil
		p.mu.Unlock()

		for _, fn := range batch {
			s.Send(Msg{fn: fn})
		}
	}
}
