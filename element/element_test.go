package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleInitialisesThenFlips(t *testing.T) {
	el := New(KindContent, "panel")
	assert.False(t, el.HasState())
	assert.Equal(t, "", el.Attr())

	assert.True(t, Toggle(el))
	assert.Equal(t, "open", el.Attr())

	assert.False(t, Toggle(el))
	assert.Equal(t, StateClosed, el.State())
}

func TestToggleForce(t *testing.T) {
	el := New(KindContent, "panel")
	assert.True(t, Toggle(el, true))
	assert.True(t, Toggle(el, true), "forcing open twice stays open")
	assert.False(t, Toggle(el, false))
	assert.False(t, Toggle(el, false))
}

func TestParseState(t *testing.T) {
	for _, s := range []State{StateUninitialized, StateOpen, StateClosed} {
		got, err := ParseState(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseState("ajar")
	assert.Error(t, err)
}

func TestContains(t *testing.T) {
	modal := New(KindOverlay, "modal")
	content := NewChild(modal, KindContent, "content")
	btn := NewChild(content, KindButton, "ok")
	other := New(KindButton, "other")

	assert.True(t, modal.Contains(btn))
	assert.True(t, modal.Contains(modal))
	assert.False(t, btn.Contains(modal))
	assert.False(t, modal.Contains(other))
}

func TestMarkersAndData(t *testing.T) {
	el := New(KindButton, "close")
	assert.False(t, el.HasMarker("close-listener"))
	el.SetMarker("close-listener")
	assert.True(t, el.HasMarker("close-listener"))

	_, ok := el.Data("sku")
	assert.False(t, ok)
	el.SetData("sku", "A-1")
	v, ok := el.Data("sku")
	assert.True(t, ok)
	assert.Equal(t, "A-1", v)
}

func TestFormGuard(t *testing.T) {
	f := NewForm(nil, "checkout")
	f.AddSubmit("Pay")
	f.AddSubmit("Pay later")

	assert.True(t, f.TryAcquire())
	assert.False(t, f.TryAcquire())
	assert.True(t, f.Submitting())
	f.Release()
	assert.False(t, f.Submitting())

	require.Len(t, f.SubmitButtons(), 2)
	assert.Equal(t, "Pay", f.SubmitButtons()[0].Label())
	assert.True(t, f.Contains(f.Buttons()[1]))
}
