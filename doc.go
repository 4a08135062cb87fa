// Package codescope locates the points inside a debugging target's loaded
// code that satisfy a caller-supplied constraint, so a visitor can be
// invoked exactly at the matching nodes.
//
// A search combines three parts: a catalog (the target's ordered modules,
// their compile units, and eventually their functions), a Filter deciding
// which nodes qualify, and a Searcher declaring the depth it wants callbacks
// at and steering the traversal with a tri-state return value.
//
// # Quick Start
//
//	tgt := target.New()
//	libc := tgt.AddModule("/usr/lib/libc.so")
//	libc.AddCompUnit("malloc.c")
//	libc.AddCompUnit("free.c")
//
//	filter := codescope.NewByModule(tgt, "libc.so")
//	searcher := &codescope.SearcherFunc{
//	    SearchDepth: codescope.DepthCompUnit,
//	    Callback: func(f codescope.Filter, mc codescope.MatchContext, _ *target.Address, _ bool) codescope.CallbackReturn {
//	        fmt.Println(mc.CompUnit.FileSpec())
//	        return codescope.CallbackReturnContinue
//	    },
//	}
//	filter.Search(searcher)
//
// # Traversal Protocol
//
// The callback's return value steers the walk:
//
//   - CallbackReturnContinue proceeds to the next sibling or deeper.
//   - CallbackReturnPop abandons the rest of the current subtree and
//     resumes one level up (at the outermost loop it degenerates to
//     Continue).
//   - CallbackReturnStop aborts the whole search; no further callbacks at
//     any level.
//
// Degenerate conditions are silent no-ops rather than errors: a filter with
// a nil target produces zero callbacks, empty constraint lists match
// everything at their level, and context queries outside the caller's
// declared scope fail closed.
//
// # Filter Variants
//
//   - Unconstrained: every module and compile unit qualifies.
//   - ExcludeDenylisted: every module except those the target denylists.
//   - ByModule: modules matching one path spec.
//   - ByModuleList: modules in a spec list (empty list matches all).
//   - ByModuleListAndCU: module-list membership plus compile-unit-list
//     membership.
//
// # Concurrency
//
// A search is single-threaded and synchronous. The engine takes no locks:
// the catalog must not be mutated while a search over it is in flight.
// Cancellation is cooperative only, via CallbackReturnStop.
package codescope
