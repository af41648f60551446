package loop

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualDrainRunsInOrder(t *testing.T) {
	m := NewManual()
	var got []int
	m.Post(func() { got = append(got, 1) })
	m.Post(func() {
		got = append(got, 2)
		m.Post(func() { got = append(got, 4) })
	})
	m.Post(func() { got = append(got, 3) })

	assert.Equal(t, 3, m.Pending())
	assert.Equal(t, 4, m.Drain())
	assert.Equal(t, []int{1, 2, 3, 4}, got)
	assert.Zero(t, m.Pending())
}

func TestManualAdvanceFiresDueTimers(t *testing.T) {
	m := NewManual()
	var got []string
	m.After(300*time.Millisecond, func() { got = append(got, "late") })
	m.After(100*time.Millisecond, func() {
		got = append(got, "early")
		m.Post(func() { got = append(got, "posted") })
	})
	m.After(100*time.Millisecond, func() { got = append(got, "early2") })

	m.Advance(99 * time.Millisecond)
	assert.Empty(t, got)

	m.Advance(time.Millisecond)
	assert.Equal(t, []string{"early", "posted", "early2"}, got)
	assert.Equal(t, 100*time.Millisecond, m.Now())

	m.Advance(time.Second)
	assert.Equal(t, []string{"early", "posted", "early2", "late"}, got)
	assert.Equal(t, 1100*time.Millisecond, m.Now())
	assert.Zero(t, m.Pending())
}

func TestManualTimerArmedDuringAdvance(t *testing.T) {
	m := NewManual()
	fired := false
	m.After(50*time.Millisecond, func() {
		m.After(50*time.Millisecond, func() { fired = true })
	})
	m.Advance(100 * time.Millisecond)
	assert.True(t, fired)
}

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
	got  chan struct{}
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
	r.got <- struct{}{}
}

func TestProgramBuffersUntilAttached(t *testing.T) {
	p := NewProgram()
	var got []int
	p.Post(func() { got = append(got, 1) })
	p.Post(func() { got = append(got, 2) })

	s := &recordingSender{got: make(chan struct{}, 8)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Attach(ctx, s)

	for range 2 {
		select {
		case <-s.got:
		case <-time.After(time.Second):
			t.Fatal("message not delivered")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	require.Len(t, s.msgs, 2)
	for _, msg := range s.msgs {
		m, ok := msg.(Msg)
		require.True(t, ok)
		m.Run()
	}
	assert.Equal(t, []int{1, 2}, got)
}
