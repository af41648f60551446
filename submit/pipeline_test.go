package submit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andareed/shopfront/element"
	"github.com/andareed/shopfront/loop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newForm() (*element.Form, *element.Element) {
	f := element.NewForm(nil, "edit product")
	b := f.AddSubmit("Save")
	return f, b
}

func TestRunSuccessRestoresAndSettles(t *testing.T) {
	m := loop.NewManual()
	lock := &PointerLock{}
	p := New(m, lock)
	form, btn := newForm()

	settled := 0
	err := p.Run(context.Background(), Request{
		Control: form,
		Submit: func(ctx context.Context) error {
			assert.True(t, btn.Disabled())
			assert.True(t, form.Submitting())
			assert.True(t, lock.Locked())
			return nil
		},
		OnSettled: func() { settled++ },
	})
	require.NoError(t, err)

	assert.False(t, btn.Disabled())
	assert.False(t, form.Submitting())
	assert.False(t, lock.Locked())
	assert.Equal(t, "Save", btn.Label())

	m.Advance(DefaultTrailingDelay - time.Millisecond)
	assert.Zero(t, settled)
	m.Advance(time.Millisecond)
	assert.Equal(t, 1, settled)
}

func TestRunFailureStillSettlesAndReturnsError(t *testing.T) {
	m := loop.NewManual()
	p := New(m, &PointerLock{})
	form, btn := newForm()
	boom := errors.New("x")

	settled := false
	err := p.Run(context.Background(), Request{
		Control:   form,
		Submit:    func(context.Context) error { return boom },
		OnSettled: func() { settled = true },
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, btn.Disabled())
	assert.False(t, form.Submitting())

	m.Advance(DefaultTrailingDelay)
	assert.True(t, settled)
}

func TestRunRetryAfterFailureIsAccepted(t *testing.T) {
	m := loop.NewManual()
	lock := &PointerLock{}
	p := New(m, lock)
	form, _ := newForm()

	calls := 0
	req := Request{
		Control: form,
		Submit: func(context.Context) error {
			calls++
			if calls == 1 {
				return errors.New("503")
			}
			return nil
		},
	}
	require.Error(t, p.Run(context.Background(), req))
	// no loop turn in between
	require.NoError(t, p.Run(context.Background(), req))
	assert.Equal(t, 2, calls)
	assert.False(t, lock.Locked())
}

func TestRunPanicIsRecovered(t *testing.T) {
	m := loop.NewManual()
	lock := &PointerLock{}
	p := New(m, lock)
	form, btn := newForm()

	err := p.Run(context.Background(), Request{
		Control: form,
		Submit:  func(context.Context) error { panic("network gone") },
	})
	require.ErrorIs(t, err, ErrSubmitPanicked)
	assert.Contains(t, err.Error(), "network gone")

	assert.False(t, btn.Disabled())
	assert.False(t, form.Submitting())
	assert.False(t, lock.Locked())
}

func TestRunDropsDuplicateWhileInFlight(t *testing.T) {
	m := loop.NewManual()
	p := New(m, &PointerLock{})
	form, _ := newForm()

	var calls atomic.Int32
	entered := make(chan struct{})
	proceed := make(chan struct{})
	req := Request{
		Control: form,
		Submit: func(context.Context) error {
			calls.Add(1)
			close(entered)
			<-proceed
			return nil
		},
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, p.Run(context.Background(), req))
	}()
	<-entered

	// second submit while the first is in flight
	require.NoError(t, p.Run(context.Background(), req))
	close(proceed)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())

	assert.False(t, form.Submitting())
}

func TestRunSpinnerMinimumDisplay(t *testing.T) {
	m := loop.NewManual()
	p := New(m, &PointerLock{}, WithSpinner(func(l string) string { return "* " + l }))
	form, btn := newForm()

	var seen string
	settled := false
	err := p.Run(context.Background(), Request{
		Control: form,
		Submit: func(context.Context) error {
			seen = btn.Label()
			return nil
		},
		OnSettled:   func() { settled = true },
		ShowSpinner: true,
		MinDisplay:  500 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, "* Save", seen)

	m.Drain()
	assert.Equal(t, "* Save", btn.Label(), "restore waits for the minimum display")
	assert.True(t, btn.Disabled())

	m.Advance(500 * time.Millisecond)
	assert.Equal(t, "Save", btn.Label())
	assert.False(t, btn.Disabled())
	assert.False(t, settled)

	m.Advance(DefaultTrailingDelay)
	assert.True(t, settled)
}

func TestRunMinDisplayWithoutSpinnerRestoresImmediately(t *testing.T) {
	m := loop.NewManual()
	p := New(m, &PointerLock{}, WithTrailingDelay(0))
	form, btn := newForm()

	require.NoError(t, p.Run(context.Background(), Request{
		Control:    form,
		Submit:     func(context.Context) error { return nil },
		MinDisplay: time.Second,
	}))
	assert.False(t, btn.Disabled())
}

func TestRunIndependentControlsOverlap(t *testing.T) {
	m := loop.NewManual()
	lock := &PointerLock{}
	p := New(m, lock)
	a, _ := newForm()
	b, _ := newForm()

	inner := 0
	require.NoError(t, p.Run(context.Background(), Request{
		Control: a,
		Submit: func(ctx context.Context) error {
			return p.Run(ctx, Request{
				Control: b,
				Submit:  func(context.Context) error { inner++; return nil },
			})
		},
	}))
	assert.Equal(t, 1, inner)
	assert.False(t, lock.Locked())
}

func TestPointerLockReleaseIsIdempotent(t *testing.T) {
	var l PointerLock
	r1 := l.Acquire()
	r2 := l.Acquire()
	r1()
	r1()
	assert.True(t, l.Locked())
	r2()
	assert.False(t, l.Locked())
}
