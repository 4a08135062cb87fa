package codescope

import (
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/codescope/filespec"
	"github.com/hupe1980/codescope/target"
)

// ByModuleList selects the modules whose path spec is a member of a list.
// An empty list is the documented sentinel for "match every module"; it is
// neither an error nor "match nothing".
type ByModuleList struct {
	filterBase
	moduleSpecs *filespec.List
}

// NewByModuleList creates a filter constrained to modules matching any of
// modulePaths. With no paths the filter passes every module.
func NewByModuleList(tgt *target.Target, modulePaths []string, optFns ...Option) *ByModuleList {
	b := newFilterBase(tgt, optFns)
	return &ByModuleList{
		filterBase:  b,
		moduleSpecs: filespec.NewList(b.opts.compare, modulePaths...),
	}
}

// ModuleSpecs returns the constraining list.
func (f *ByModuleList) ModuleSpecs() *filespec.List { return f.moduleSpecs }

// ModulePasses implements Filter: true iff the list is empty or spec is a
// member.
func (f *ByModuleList) ModulePasses(spec filespec.FileSpec) bool {
	if f.moduleSpecs.Len() == 0 {
		return true
	}
	return f.moduleSpecs.Contains(spec)
}

// ContextPasses implements Filter.
func (f *ByModuleList) ContextPasses(mc MatchContext, validScope ScopeItem) bool {
	if !validScope.Contains(ScopeModule) {
		return false
	}
	if f.moduleSpecs.Len() == 0 {
		return true
	}
	return mc.Module != nil && f.moduleSpecs.Contains(mc.Module.FileSpec())
}

// RequiredItems implements Filter.
func (f *ByModuleList) RequiredItems() ScopeItem { return ScopeModule }

// Describe implements Filter.
func (f *ByModuleList) Describe(w io.Writer, verbose bool) {
	describeSpecList(w, "module", "modules", f.moduleSpecs, verbose)
}

// Search implements Filter: scan only list members, then descend with the
// module pinned.
func (f *ByModuleList) Search(s Searcher) {
	if f.tgt == nil {
		return
	}

	mc := MatchContext{Target: f.tgt}
	if s.Depth() == DepthTarget {
		s.SearchCallback(f, mc, nil, false)
		return
	}

	f.opts.logger.WithKind("by-module-list").WithDepth(s.Depth()).Debug("searching catalog")

	modules := f.tgt.Modules()
	for i := 0; i < modules.Len(); i++ {
		mod := modules.At(i)
		if !f.ModulePasses(mod.FileSpec()) {
			continue
		}
		if descendModules(f, mc.WithModule(mod), s) == CallbackReturnStop {
			return
		}
	}
}

// SearchInModules implements Filter.
func (f *ByModuleList) SearchInModules(s Searcher, modules *target.ModuleList) {
	searchModules(f, s, modules, f.opts.logger)
}

// ByModuleListAndCU narrows ByModuleList further: compile units must also be
// members of a second list. Either list may be empty, meaning unconstrained
// at that level.
type ByModuleListAndCU struct {
	ByModuleList
	cuSpecs *filespec.List
}

// NewByModuleListAndCU creates a filter requiring both module-list and
// compile-unit-list membership.
func NewByModuleListAndCU(tgt *target.Target, modulePaths, cuPaths []string, optFns ...Option) *ByModuleListAndCU {
	b := newFilterBase(tgt, optFns)
	return &ByModuleListAndCU{
		ByModuleList: ByModuleList{
			filterBase:  b,
			moduleSpecs: filespec.NewList(b.opts.compare, modulePaths...),
		},
		cuSpecs: filespec.NewList(b.opts.compare, cuPaths...),
	}
}

// CompUnitSpecs returns the compile-unit constraint list.
func (f *ByModuleListAndCU) CompUnitSpecs() *filespec.List { return f.cuSpecs }

// CompUnitPasses implements Filter: true iff the unit list is empty or spec
// is a member.
func (f *ByModuleListAndCU) CompUnitPasses(spec filespec.FileSpec) bool {
	if f.cuSpecs.Len() == 0 {
		return true
	}
	return f.cuSpecs.Contains(spec)
}

// ContextPasses implements Filter: the module constraint must pass and the
// caller must additionally vouch for the compile-unit field.
func (f *ByModuleListAndCU) ContextPasses(mc MatchContext, validScope ScopeItem) bool {
	if !f.ByModuleList.ContextPasses(mc, validScope) {
		return false
	}
	if !validScope.Contains(ScopeCompUnit) {
		return false
	}
	if mc.CompUnit != nil && !f.CompUnitPasses(mc.CompUnit.FileSpec()) {
		return false
	}
	return true
}

// RequiredItems implements Filter.
func (f *ByModuleListAndCU) RequiredItems() ScopeItem {
	return ScopeModule | ScopeCompUnit
}

// Describe implements Filter.
func (f *ByModuleListAndCU) Describe(w io.Writer, verbose bool) {
	describeSpecList(w, "module", "modules", f.moduleSpecs, verbose)
	describeSpecList(w, "comp unit", "comp units", f.cuSpecs, verbose)
}

// Search implements Filter. At compile-unit depth the modules × units double
// loop is inlined so both memberships are applied exactly once before
// dispatching, instead of re-filtering each pinned unit on the way down.
func (f *ByModuleListAndCU) Search(s Searcher) {
	if f.tgt == nil {
		return
	}

	mc := MatchContext{Target: f.tgt}
	if s.Depth() == DepthTarget {
		s.SearchCallback(f, mc, nil, false)
		return
	}

	f.opts.logger.WithKind("by-module-list-and-cu").WithDepth(s.Depth()).Debug("searching catalog")

	modules := f.tgt.Modules()
	for i := 0; i < modules.Len(); i++ {
		mod := modules.At(i)
		if !f.ModulePasses(mod.FileSpec()) {
			continue
		}

		if s.Depth() == DepthModule {
			if descendModules(f, mc.WithModule(mod), s) == CallbackReturnStop {
				return
			}
			continue
		}

		modCtx := mc.WithModule(mod)
	units:
		for j := 0; j < mod.NumCompUnits(); j++ {
			cu := mod.CompUnitAt(j)
			if !f.CompUnitPasses(cu.FileSpec()) {
				continue
			}

			if s.Depth() == DepthCompUnit {
				switch s.SearchCallback(f, modCtx.WithCompUnit(cu), nil, false) {
				case CallbackReturnStop:
					return
				case CallbackReturnPop:
					// Done with this module; move on to the next.
					break units
				}
			} else {
				if descendFunctions(f, cu, modCtx.WithCompUnit(cu), s) == CallbackReturnStop {
					return
				}
			}
		}
	}
}

// SearchInModules implements Filter.
func (f *ByModuleListAndCU) SearchInModules(s Searcher, modules *target.ModuleList) {
	searchModules(f, s, modules, f.opts.logger)
}

func describeSpecList(w io.Writer, singular, plural string, l *filespec.List, verbose bool) {
	switch l.Len() {
	case 0:
	case 1:
		if verbose {
			fmt.Fprintf(w, ", %s = %s", singular, l.At(0).Path())
		} else {
			fmt.Fprintf(w, ", %s = %s", singular, l.At(0).Base())
		}
	default:
		names := make([]string, l.Len())
		for i := range names {
			if verbose {
				names[i] = l.At(i).Path()
			} else {
				names[i] = l.At(i).Base()
			}
		}
		fmt.Fprintf(w, ", %s(%d) = %s", plural, l.Len(), strings.Join(names, ", "))
	}
}
