package runner

// Priority is an abstract scheduling priority for a Unit.
type Priority uint32

const (
	Lowest Priority = iota
	BelowNormal
	Normal
	AboveNormal
	Highest
	TimeCritical
)

func (p Priority) String() string {
	switch p {
	case Lowest:
		return "lowest"
	case BelowNormal:
		return "below_normal"
	case Normal:
		return "normal"
	case AboveNormal:
		return "above_normal"
	case Highest:
		return "highest"
	case TimeCritical:
		return "time_critical"
	default:
		return "unknown"
	}
}

// DefaultNativePriorities provides the default mapping of Priority to native
// scheduling values, in the shape of Unix nice values.
func DefaultNativePriorities() map[Priority]int32 {
	return map[Priority]int32{
		Lowest:       19,
		BelowNormal:  10,
		Normal:       0,
		AboveNormal:  -5,
		Highest:      -10,
		TimeCritical: -20,
	}
}

// Applier applies a native scheduling value to the execution context of the
// calling goroutine.  Implementations typically pin the goroutine to its OS
// thread and invoke a platform scheduling call.  The zero configuration has
// no Applier, and priorities are not applied.
type Applier interface {
	Apply(native int32) error
}

// ApplierFunc is a function type that implements Applier
type ApplierFunc func(int32) error

func (f ApplierFunc) Apply(native int32) error {
	return f(native)
}
