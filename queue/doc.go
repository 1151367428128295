/*
Package queue provides a bounded, thread-safe FIFO queue with configurable
discard and admission-control policies.

Producers hand elements to consumers through Push and Pop, which block (bounded
by a caller-supplied timeout) when the queue is full or empty.  A Settings value
fixes the queue's capacity, its behavior under capacity pressure (block, reject
the newest element, or evict the oldest), and which sides of the queue can be
opened and closed at runtime.  Closing a gate unblocks any goroutines waiting on
that side, so gating doubles as a cancellation mechanism.

All failures are expected runtime conditions and are reported as boolean
returns, never as errors or panics.  An Instrument decorator adds go-kit metrics
around any queue.
*/
package queue
