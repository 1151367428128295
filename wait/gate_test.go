package wait

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadsafe-go/threadsafe/clock/clocktest"
)

func TestStatusString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("success", Success.String())
	assert.Equal("timeout", Timeout.String())
	assert.Equal("unknown", Status(47).String())
}

func testWaitForNilPredicate(t *testing.T) {
	assert := assert.New(t)
	g := NewGate()
	assert.Panics(func() {
		g.WaitFor(time.Second, nil)
	})
}

func testWaitForImmediateSuccess(t *testing.T) {
	assert := assert.New(t)
	g := NewGate()

	// a predicate that already holds must not block, even with a zero timeout
	assert.Equal(Success, g.WaitFor(0, func() bool { return true }))
	assert.Equal(Success, g.WaitFor(Forever, func() bool { return true }))
}

func testWaitForTimeout(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		mockClock = new(clocktest.Mock)
		mockTimer = new(clocktest.MockTimer)
		deadline  = make(chan time.Time, 1)
	)

	mockClock.OnNewTimer(time.Minute, mockTimer).Once()
	mockTimer.OnC((<-chan time.Time)(deadline))
	mockTimer.OnStop(true).Once()

	g := NewGate(WithClock(mockClock))
	require.NotNil(g)

	deadline <- time.Now()
	assert.Equal(Timeout, g.WaitFor(time.Minute, func() bool { return false }))

	mockClock.AssertExpectations(t)
	mockTimer.AssertExpectations(t)
}

func testWaitForPredicateTrueAtDeadline(t *testing.T) {
	var (
		assert = assert.New(t)

		mockClock = new(clocktest.Mock)
		mockTimer = new(clocktest.MockTimer)
		deadline  = make(chan time.Time, 1)
	)

	mockClock.OnNewTimer(time.Minute, mockTimer).Once()
	mockTimer.OnC((<-chan time.Time)(deadline))
	mockTimer.OnStop(true).Once()

	var calls int32
	g := NewGate(WithClock(mockClock))

	deadline <- time.Now()

	// false on the first check, true on the re-check after the deadline fires
	assert.Equal(Success, g.WaitFor(time.Minute, func() bool {
		return atomic.AddInt32(&calls, 1) > 1
	}))
}

func testWaitForNotify(t *testing.T) {
	var (
		assert = assert.New(t)

		g     = NewGate()
		flag  int32
		done  = make(chan Status, 1)
		ready = make(chan struct{})
	)

	go func() {
		close(ready)
		done <- g.WaitFor(Forever, func() bool {
			return atomic.LoadInt32(&flag) != 0
		})
	}()

	<-ready
	atomic.StoreInt32(&flag, 1)
	g.Notify()

	select {
	case s := <-done:
		assert.Equal(Success, s)
	case <-time.After(5 * time.Second):
		assert.FailNow("WaitFor did not observe the notification")
	}
}

func testWaitForNegativeTimeout(t *testing.T) {
	var (
		assert = assert.New(t)

		g    = NewGate()
		flag int32
		done = make(chan Status, 1)
	)

	go func() {
		done <- g.WaitFor(-1, func() bool {
			return atomic.LoadInt32(&flag) != 0
		})
	}()

	atomic.StoreInt32(&flag, 1)

	// keep notifying until the waiter exits, in case the store raced the
	// waiter's first predicate check
	for {
		g.Notify()
		select {
		case s := <-done:
			assert.Equal(Success, s)
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestWaitFor(t *testing.T) {
	t.Run("NilPredicate", testWaitForNilPredicate)
	t.Run("ImmediateSuccess", testWaitForImmediateSuccess)
	t.Run("Timeout", testWaitForTimeout)
	t.Run("PredicateTrueAtDeadline", testWaitForPredicateTrueAtDeadline)
	t.Run("Notify", testWaitForNotify)
	t.Run("NegativeTimeout", testWaitForNegativeTimeout)
}

func TestNotifyWithoutWaiters(t *testing.T) {
	assert := assert.New(t)
	g := NewGate()

	assert.NotPanics(func() {
		g.Notify()
		g.Notify()
	})
}

func TestNoLostWakeups(t *testing.T) {
	const waiters = 20

	var (
		assert = assert.New(t)

		g    = NewGate()
		flag int32
		wg   sync.WaitGroup

		results = make(chan Status, waiters)
	)

	wg.Add(waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			defer wg.Done()
			results <- g.WaitFor(10*time.Second, func() bool {
				return atomic.LoadInt32(&flag) != 0
			})
		}()
	}

	atomic.StoreInt32(&flag, 1)
	g.Notify()
	wg.Wait()
	close(results)

	for s := range results {
		assert.Equal(Success, s)
	}
}
