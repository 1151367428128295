// Package clock provides a small abstraction over the time package so that
// components which block on timers or pace themselves with tickers can be
// driven by a mock clock in tests.
package clock

import "time"

// Interface represents a clock with the same core functionality available as in the stdlib time package.
type Interface interface {
	Now() time.Time
	Sleep(time.Duration)
	NewTimer(time.Duration) Timer
	NewTicker(time.Duration) Ticker
}

// Timer represents an event source triggered at a particular time.  It is the analog of time.Timer.
type Timer interface {
	C() <-chan time.Time
	Reset(time.Duration) bool
	Stop() bool
}

// Ticker represents a repeating event source.  It is the analog of time.Ticker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// System returns a clock backed by the time package.
func System() Interface {
	return systemClock{}
}

// WrapTimer exposes a time.Timer as a clock.Timer, e.g. WrapTimer(time.NewTimer(time.Second)).
func WrapTimer(t *time.Timer) Timer {
	return systemTimer{t}
}

// WrapTicker exposes a time.Ticker as a clock.Ticker.
func WrapTicker(t *time.Ticker) Ticker {
	return systemTicker{t}
}

type systemClock struct{}

func (sc systemClock) Now() time.Time {
	return time.Now()
}

func (sc systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (sc systemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{time.NewTimer(d)}
}

func (sc systemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

type systemTimer struct {
	*time.Timer
}

func (st systemTimer) C() <-chan time.Time {
	return st.Timer.C
}

type systemTicker struct {
	*time.Ticker
}

func (st systemTicker) C() <-chan time.Time {
	return st.Ticker.C
}
