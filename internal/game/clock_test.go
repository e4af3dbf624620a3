package game

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClock() *Clock {
	c := NewClock()
	c.interval = 2 * time.Millisecond
	return c
}

func TestClock_Ticks_Down_Then_Expires_Once(t *testing.T) {
	req := require.New(t)
	clock := newTestClock()

	var mu sync.Mutex
	var ticks []int
	expired := make(chan struct{})

	clock.Start("ROOM01", 3,
		func(remaining int) {
			mu.Lock()
			ticks = append(ticks, remaining)
			mu.Unlock()
		},
		func() { close(expired) },
	)

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("countdown never expired")
	}

	mu.Lock()
	defer mu.Unlock()
	req.Equal([]int{2, 1}, ticks)
}

func TestClock_Cancel_Suppresses_Expiry(t *testing.T) {
	req := require.New(t)
	clock := newTestClock()

	var fired atomic.Int32
	clock.Start("ROOM01", 2, nil, func() { fired.Add(1) })
	clock.Cancel("ROOM01")

	time.Sleep(50 * time.Millisecond)
	req.Zero(fired.Load())
}

func TestClock_Cancel_Without_Countdown_Is_Noop(t *testing.T) {
	clock := newTestClock()
	clock.Cancel("NOSUCH")
}

func TestClock_Restart_Replaces_Previous_Countdown(t *testing.T) {
	req := require.New(t)
	clock := newTestClock()

	var firstFired atomic.Int32
	second := make(chan struct{})

	clock.Start("ROOM01", 2, nil, func() { firstFired.Add(1) })
	clock.Start("ROOM01", 2, nil, func() { close(second) })

	select {
	case <-second:
	case <-time.After(time.Second):
		t.Fatal("replacement countdown never expired")
	}
	req.Zero(firstFired.Load())
}

func TestClock_Rooms_Count_Down_Independently(t *testing.T) {
	req := require.New(t)
	clock := newTestClock()

	var aFired atomic.Int32
	b := make(chan struct{})

	clock.Start("ROOMAA", 500, nil, func() { aFired.Add(1) })
	clock.Start("ROOMBB", 2, nil, func() { close(b) })

	select {
	case <-b:
	case <-time.After(time.Second):
		t.Fatal("second room's countdown never expired")
	}
	req.Zero(aFired.Load())
	clock.Cancel("ROOMAA")
}
