package events

import (
	"testing"

	"github.com/andareed/shopfront/element"
	"github.com/stretchr/testify/assert"
)

func TestDispatchByKind(t *testing.T) {
	b := NewBus()
	var clicks, keys []string
	b.Subscribe(KindClick, func(ev Event) { clicks = append(clicks, ev.Target.Label()) })
	b.Subscribe(KindKey, func(ev Event) { keys = append(keys, ev.Key) })

	b.Dispatch(Click(element.New(element.KindButton, "ok")))
	b.Dispatch(Key("esc"))

	assert.Equal(t, []string{"ok"}, clicks)
	assert.Equal(t, []string{"esc"}, keys)
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus()
	n := 0
	id := b.Subscribe(KindKey, func(Event) { n++ })
	assert.Equal(t, 1, b.Count(KindKey))

	assert.True(t, b.Unsubscribe(id))
	assert.False(t, b.Unsubscribe(id))
	b.Dispatch(Key("esc"))
	assert.Zero(t, n)
	assert.Zero(t, b.Count(KindKey))
}

func TestDispatchSnapshotsListeners(t *testing.T) {
	b := NewBus()
	var order []string
	var second ID
	b.Subscribe(KindKey, func(Event) {
		order = append(order, "first")
		b.Unsubscribe(second)
		b.Subscribe(KindKey, func(Event) { order = append(order, "late") })
	})
	second = b.Subscribe(KindKey, func(Event) { order = append(order, "second") })

	b.Dispatch(Key("x"))
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 2, b.Count(KindKey))
}
