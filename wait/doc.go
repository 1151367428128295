/*
Package wait provides a broadcast wakeup primitive with timeout-bounded,
predicate-driven blocking.

A Gate is a monitor in the style of a condition variable, built from a
mutex-guarded generation channel so that waits can be bounded by a timer.
Waiters always re-check their predicate in a loop after each wakeup, so a
wakeup never implies the awaited condition holds.
*/
package wait
