package game

import (
	"sync"
	"time"
)

// countdown is one running per-room timer. Cancellation closes stop exactly
// once; the run loop checks stop before firing the terminal callback so it
// can never double-fire or fire after a cancel that won the race.
type countdown struct {
	code     string
	stop     chan struct{}
	stopOnce sync.Once
}

func (cd *countdown) cancel() {
	cd.stopOnce.Do(func() { close(cd.stop) })
}

// Clock schedules per-room countdowns at one-second resolution. At most one
// countdown is active per room code; starting a new one replaces and cancels
// the previous one. Cancelling a room with no countdown is a no-op.
type Clock struct {
	mu       sync.Mutex
	active   map[string]*countdown
	interval time.Duration
}

// NewClock creates a clock ticking at one-second resolution.
func NewClock() *Clock {
	return &Clock{
		active:   make(map[string]*countdown),
		interval: time.Second,
	}
}

// Start schedules a countdown of the given number of ticks for a room.
// onTick, when non-nil, receives the remaining tick count after each elapsed
// interval; onExpire fires once when the countdown reaches zero.
func (c *Clock) Start(code string, seconds int, onTick func(remaining int), onExpire func()) {
	c.mu.Lock()
	if prev, ok := c.active[code]; ok {
		prev.cancel()
	}
	cd := &countdown{code: code, stop: make(chan struct{})}
	c.active[code] = cd
	c.mu.Unlock()

	go c.run(cd, seconds, onTick, onExpire)
}

// Cancel stops the room's countdown, if any, without firing its terminal
// callback.
func (c *Clock) Cancel(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cd, ok := c.active[code]; ok {
		cd.cancel()
		delete(c.active, code)
	}
}

func (c *Clock) run(cd *countdown, seconds int, onTick func(int), onExpire func()) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	remaining := seconds
	for {
		select {
		case <-cd.stop:
			return
		case <-ticker.C:
			remaining--
			if remaining > 0 {
				if onTick != nil {
					onTick(remaining)
				}
				continue
			}

			c.mu.Lock()
			if c.active[cd.code] == cd {
				delete(c.active, cd.code)
			}
			c.mu.Unlock()

			// A concurrent Cancel may have closed stop between the tick
			// and this point; honor it.
			select {
			case <-cd.stop:
				return
			default:
			}
			onExpire()
			return
		}
	}
}
