// Package events is the listener registry that stands in for document-level
// event listeners: the view turns key presses and mouse clicks into events and
// dispatches them here, and the overlay and region packages subscribe.
package events

import (
	"sync"

	"github.com/andareed/shopfront/element"
	"github.com/andareed/shopfront/logging"
	"github.com/google/uuid"
)

type Kind int

const (
	KindClick Kind = iota
	KindKey
)

func (k Kind) String() string {
	switch k {
	case KindClick:
		return "click"
	case KindKey:
		return "key"
	default:
		return "unknown"
	}
}

// Event is a single UI event. Target is set for clicks, Key for key presses
// (bubbletea key strings such as "esc" or "enter").
type Event struct {
	Kind   Kind
	Target *element.Element
	Key    string
}

func Click(target *element.Element) Event { return Event{Kind: KindClick, Target: target} }
func Key(k string) Event                  { return Event{Kind: KindKey, Key: k} }

type Handler func(Event)

// ID identifies one subscription.
type ID string

type listener struct {
	id ID
	fn Handler
}

type Bus struct {
	mu        sync.Mutex
	listeners map[Kind][]listener
}

func NewBus() *Bus {
	return &Bus{listeners: make(map[Kind][]listener)}
}

func (b *Bus) Subscribe(kind Kind, fn Handler) ID {
	id := ID(uuid.NewString())
	b.mu.Lock()
	b.listeners[kind] = append(b.listeners[kind], listener{id: id, fn: fn})
	b.mu.Unlock()
	logging.Debugf("events: subscribed %s listener %s", kind, id)
	return id
}

// Unsubscribe removes a listener and reports whether it was registered.
func (b *Bus) Unsubscribe(id ID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for kind, ls := range b.listeners {
		for i, l := range ls {
			if l.id == id {
				b.listeners[kind] = append(ls[:i:i], ls[i+1:]...)
				logging.Debugf("events: removed %s listener %s", kind, id)
				return true
			}
		}
	}
	return false
}

// Dispatch calls every listener of the event's kind in subscription order.
// The listener list is snapshotted first, so handlers may subscribe or
// unsubscribe while being dispatched.
func (b *Bus) Dispatch(ev Event) {
	b.mu.Lock()
	ls := append([]listener(nil), b.listeners[ev.Kind]...)
	b.mu.Unlock()
	for _, l := range ls {
		l.fn(ev)
	}
}

func (b *Bus) Count(kind Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[kind])
}
