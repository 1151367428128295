package queue

import (
	"fmt"
	"math"
	"strings"
)

// Discard is the policy applied when a push arrives at a full queue.
type Discard uint32

const (
	// NoDiscard blocks the pusher until space frees, the timeout elapses,
	// or the push gate closes.  This is the default.
	NoDiscard Discard = iota

	// DiscardOldest evicts the head element to make room for the incoming one.
	DiscardOldest

	// DiscardNewest rejects the incoming element, leaving the queue unchanged.
	DiscardNewest
)

func (d Discard) String() string {
	switch d {
	case NoDiscard:
		return "no_discard"
	case DiscardOldest:
		return "discard_oldest"
	case DiscardNewest:
		return "discard_newest"
	default:
		return fmt.Sprintf("invalid(%d)", uint32(d))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Discard) MarshalText() ([]byte, error) {
	if d > DiscardNewest {
		return nil, fmt.Errorf("invalid discard policy: %d", uint32(d))
	}

	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.  Matching is case-insensitive.
func (d *Discard) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "no_discard":
		*d = NoDiscard
	case "discard_oldest":
		*d = DiscardOldest
	case "discard_newest":
		*d = DiscardNewest
	default:
		return fmt.Errorf("invalid discard policy: %s", text)
	}

	return nil
}

// Control determines which gates (push, pop, both, or neither) are externally
// toggleable.  A side not covered by the control policy is permanently open.
type Control uint32

const (
	// NoControl leaves both sides permanently open.  This is the default.
	NoControl Control = iota

	// ControlPush makes only the push gate toggleable.
	ControlPush

	// ControlPop makes only the pop gate toggleable.
	ControlPop

	// FullControl makes both gates toggleable.
	FullControl
)

func (c Control) String() string {
	switch c {
	case NoControl:
		return "no_control"
	case ControlPush:
		return "push"
	case ControlPop:
		return "pop"
	case FullControl:
		return "full_control"
	default:
		return fmt.Sprintf("invalid(%d)", uint32(c))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Control) MarshalText() ([]byte, error) {
	if c > FullControl {
		return nil, fmt.Errorf("invalid control policy: %d", uint32(c))
	}

	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.  Matching is case-insensitive.
func (c *Control) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "no_control":
		*c = NoControl
	case "push":
		*c = ControlPush
	case "pop":
		*c = ControlPop
	case "full_control":
		*c = FullControl
	default:
		return fmt.Errorf("invalid control policy: %s", text)
	}

	return nil
}

// Settings configures a queue.  The zero value describes an unbounded,
// always-available queue that blocks pushers when full (which, for an
// unbounded queue, never happens).
//
// Settings are immutable once a queue has been constructed from them.
type Settings struct {
	// Discard is the policy applied when a push arrives at a full queue.
	Discard Discard `json:"discard" mapstructure:"discard"`

	// Control determines which gates can be toggled at runtime.  Controlled
	// sides start closed and must be explicitly opened.
	Control Control `json:"control" mapstructure:"control"`

	// Size is the capacity limit.  A nonpositive Size means unbounded.
	Size int `json:"size" mapstructure:"size"`
}

// Validate checks that both policies are recognized values.
func (s Settings) Validate() error {
	if s.Discard > DiscardNewest {
		return fmt.Errorf("invalid discard policy: %d", uint32(s.Discard))
	}

	if s.Control > FullControl {
		return fmt.Errorf("invalid control policy: %d", uint32(s.Control))
	}

	return nil
}

func (s Settings) pushControllable() bool {
	return s.Control == ControlPush || s.Control == FullControl
}

func (s Settings) popControllable() bool {
	return s.Control == ControlPop || s.Control == FullControl
}

func (s Settings) capacity() int {
	if s.Size > 0 {
		return s.Size
	}

	return math.MaxInt
}
