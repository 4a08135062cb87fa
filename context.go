package codescope

import (
	"github.com/hupe1980/codescope/target"
)

// MatchContext is the accumulated identity of one traversal position. Fields
// above the current depth are nil. Contexts are values: descent copies and
// extends them rather than mutating shared state, so backtracking after a
// Pop never observes a half-cleared context. Once a field is set it stays
// set for everything derived from that context; only a fresh sibling context
// resets it.
type MatchContext struct {
	Target   *target.Target
	Module   *target.Module
	CompUnit *target.CompUnit
	Function *target.Function
}

// WithModule returns a copy of mc scoped to mod.
func (mc MatchContext) WithModule(mod *target.Module) MatchContext {
	mc.Module = mod
	return mc
}

// WithCompUnit returns a copy of mc scoped to cu.
func (mc MatchContext) WithCompUnit(cu *target.CompUnit) MatchContext {
	mc.CompUnit = cu
	return mc
}

// Scope returns the bitmask of fields that are populated in mc.
func (mc MatchContext) Scope() ScopeItem {
	var s ScopeItem
	if mc.Target != nil {
		s |= ScopeTarget
	}
	if mc.Module != nil {
		s |= ScopeModule
	}
	if mc.CompUnit != nil {
		s |= ScopeCompUnit
	}
	if mc.Function != nil {
		s |= ScopeFunction
	}
	return s
}
