package codescope

// Depth is the granularity level at which a Searcher wants callbacks.
// Depths are totally ordered: DepthTarget < DepthModule < DepthCompUnit <
// DepthFunction. The engine never invokes a callback shallower than the
// requested depth and never descends past it.
type Depth int

const (
	// DepthTarget requests a single callback for the session root.
	DepthTarget Depth = iota
	// DepthModule requests callbacks per qualifying module.
	DepthModule
	// DepthCompUnit requests callbacks per qualifying compile unit.
	DepthCompUnit
	// DepthFunction is reserved; function enumeration is a documented stub
	// and produces no callbacks today.
	DepthFunction
)

// String implements fmt.Stringer.
func (d Depth) String() string {
	switch d {
	case DepthTarget:
		return "target"
	case DepthModule:
		return "module"
	case DepthCompUnit:
		return "comp-unit"
	case DepthFunction:
		return "function"
	default:
		return "unknown"
	}
}

// CallbackReturn is the tri-state instruction a Searcher callback returns.
type CallbackReturn int

const (
	// CallbackReturnContinue proceeds normally: next sibling, or deeper if
	// applicable.
	CallbackReturnContinue CallbackReturn = iota
	// CallbackReturnPop abandons the remainder of the current subtree and
	// resumes at the next entry one level up. At the outermost loop there is
	// no level to pop out of and Pop degenerates to Continue.
	CallbackReturnPop
	// CallbackReturnStop aborts the entire search immediately.
	CallbackReturnStop
)

// String implements fmt.Stringer.
func (r CallbackReturn) String() string {
	switch r {
	case CallbackReturnContinue:
		return "continue"
	case CallbackReturnPop:
		return "pop"
	case CallbackReturnStop:
		return "stop"
	default:
		return "unknown"
	}
}

// ScopeItem is a bitmask naming which MatchContext fields are meaningful.
// Callers pass it to ContextPasses to declare the scope they vouch for; a
// filter that needs a field outside the declared scope fails closed.
type ScopeItem uint32

const (
	// ScopeTarget marks the Target field as meaningful.
	ScopeTarget ScopeItem = 1 << iota
	// ScopeModule marks the Module field as meaningful.
	ScopeModule
	// ScopeCompUnit marks the CompUnit field as meaningful.
	ScopeCompUnit
	// ScopeFunction marks the Function field as meaningful.
	ScopeFunction
)

// ScopeNone is the empty scope: an unconstrained filter needs nothing.
const ScopeNone ScopeItem = 0

// Contains reports whether every bit of items is set in s.
func (s ScopeItem) Contains(items ScopeItem) bool {
	return s&items == items
}
