package codescope

import (
	"fmt"
	"io"

	"github.com/hupe1980/codescope/filespec"
	"github.com/hupe1980/codescope/target"
)

// ByModule selects the modules matching a single path spec. A spec without
// a directory component matches by base name; glob metacharacters match with
// pattern semantics (see filespec.Match).
type ByModule struct {
	filterBase
	spec filespec.FileSpec
}

// NewByModule creates a filter constrained to modules matching modulePath.
func NewByModule(tgt *target.Target, modulePath string, optFns ...Option) *ByModule {
	return &ByModule{
		filterBase: newFilterBase(tgt, optFns),
		spec:       filespec.New(modulePath),
	}
}

// ModuleSpec returns the constraining path spec.
func (f *ByModule) ModuleSpec() filespec.FileSpec { return f.spec }

// ModulePasses implements Filter: true iff spec matches the constraint.
func (f *ByModule) ModulePasses(spec filespec.FileSpec) bool {
	return filespec.Match(f.spec, spec, f.opts.compare)
}

// ContextPasses implements Filter. The caller must vouch for the module
// field; out-of-scope queries fail closed.
func (f *ByModule) ContextPasses(mc MatchContext, validScope ScopeItem) bool {
	if !validScope.Contains(ScopeModule) {
		return false
	}
	return mc.Module != nil && f.ModulePasses(mc.Module.FileSpec())
}

// RequiredItems implements Filter.
func (f *ByModule) RequiredItems() ScopeItem { return ScopeModule }

// Describe implements Filter.
func (f *ByModule) Describe(w io.Writer, verbose bool) {
	if verbose {
		fmt.Fprintf(w, ", module = %s", f.spec.Path())
	} else {
		fmt.Fprintf(w, ", module = %s", f.spec.Base())
	}
}

// Search implements Filter: scan only the modules matching the spec, then
// descend with the module pinned.
func (f *ByModule) Search(s Searcher) {
	if f.tgt == nil {
		return
	}

	mc := MatchContext{Target: f.tgt}
	if s.Depth() == DepthTarget {
		s.SearchCallback(f, mc, nil, false)
		return
	}

	f.opts.logger.WithKind("by-module").WithDepth(s.Depth()).Debug("searching catalog")

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
func (f *ByModule) SearchInModules(s Searcher, modules *target.ModuleList) {
	searchModules(f, s, modules, f.opts.logger)
}
