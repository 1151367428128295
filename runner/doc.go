/*
Package runner provides a managed background-execution unit: a named goroutine
that runs a bound function once or repeatedly under a caller-supplied
continuation predicate, with start, result, and exit hooks.

A Unit is bound to exactly one function before it starts.  Stop is idempotent,
safe to call on a unit that never started, and joins the goroutine before
returning.  Thread priority is modeled as a capability: a pure mapping from an
abstract Priority to a native scheduling value, plus a side-effecting Applier
supplied by the embedding application.
*/
package runner
