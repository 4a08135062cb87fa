package codescope

import (
	"io"

	"github.com/hupe1980/codescope/target"
)

// Searcher is the visitor half of a search: it declares the depth it wants
// callbacks at and receives one callback per qualifying node at that depth.
// Implementation state lives in the concrete searcher, not in the engine.
type Searcher interface {
	// Depth is the level at which SearchCallback should be invoked.
	// Traversal stops descending once this depth is reached.
	Depth() Depth

	// SearchCallback is invoked once per qualifying node. addr is non-nil
	// only for address-bearing matches (reserved for function-level
	// descent); containerOnly signals that the match identifies a container
	// rather than a concrete code point. The return value steers the
	// traversal (see CallbackReturn).
	SearchCallback(f Filter, mc MatchContext, addr *target.Address, containerOnly bool) CallbackReturn

	// Describe appends a human-readable description of the searcher to w.
	Describe(w io.Writer)
}

// SearcherFunc adapts a plain callback to the Searcher interface at a fixed
// depth. Handy for tests and one-shot resolvers.
type SearcherFunc struct {
	SearchDepth Depth
	Callback    func(f Filter, mc MatchContext, addr *target.Address, containerOnly bool) CallbackReturn
}

// Depth implements Searcher.
func (s *SearcherFunc) Depth() Depth { return s.SearchDepth }

// SearchCallback implements Searcher.
func (s *SearcherFunc) SearchCallback(f Filter, mc MatchContext, addr *target.Address, containerOnly bool) CallbackReturn {
	if s.Callback == nil {
		return CallbackReturnContinue
	}
	return s.Callback(f, mc, addr, containerOnly)
}

// Describe implements Searcher. It writes nothing.
func (s *SearcherFunc) Describe(io.Writer) {}
