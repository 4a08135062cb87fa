package codescope

import (
	"io"

	"github.com/hupe1980/codescope/filespec"
	"github.com/hupe1980/codescope/target"
)

// Filter decides which catalog nodes qualify during a search. All predicate
// methods are pure: no side effects, no I/O. A filter owns a reference to
// its Target; a filter whose Target is nil performs no work and every
// operation on it is a silent no-op.
//
// Filters are shallow-copyable: copies share the Target.
type Filter interface {
	// Target returns the session root the filter searches, or nil.
	Target() *target.Target

	// ModulePasses reports whether a module with the given path spec
	// qualifies. Unconstrained filters return true.
	ModulePasses(spec filespec.FileSpec) bool

	// CompUnitPasses reports whether a compile unit with the given path
	// spec qualifies. Unconstrained filters return true.
	CompUnitPasses(spec filespec.FileSpec) bool

	// ContextPasses reports whether mc qualifies, evaluated under the
	// caller's declared scope. validScope is the caller's assertion of
	// which context fields are meaningful; a filter that needs a field not
	// covered by validScope returns false even if the field happens to be
	// populated.
	ContextPasses(mc MatchContext, validScope ScopeItem) bool

	// AddressPasses reports whether addr qualifies. Reserved for future
	// function- and line-level constraints; unconstrained today.
	AddressPasses(addr target.Address) bool

	// RequiredItems returns the minimal scope the filter needs to render a
	// meaningful decision.
	RequiredItems() ScopeItem

	// Describe appends a human-readable fragment describing the constraint
	// to w. verbose selects full paths over base names.
	Describe(w io.Writer, verbose bool)

	// Search walks the Target's catalog to the searcher's depth, invoking
	// its callback at every qualifying node.
	Search(s Searcher)

	// SearchInModules is like Search but walks the supplied module list
	// instead of the Target's images.
	SearchInModules(s Searcher, modules *target.ModuleList)
}

// filterBase carries the shared Target reference and construction options,
// and provides the unconstrained defaults for the predicate methods.
type filterBase struct {
	tgt  *target.Target
	opts options
}

func newFilterBase(tgt *target.Target, optFns []Option) filterBase {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return filterBase{tgt: tgt, opts: o}
}

// Target implements Filter.
func (b *filterBase) Target() *target.Target { return b.tgt }

// ModulePasses implements Filter. Unconstrained: always true.
func (b *filterBase) ModulePasses(filespec.FileSpec) bool { return true }

// CompUnitPasses implements Filter. Unconstrained: always true.
func (b *filterBase) CompUnitPasses(filespec.FileSpec) bool { return true }

// ContextPasses implements Filter. Unconstrained: always true.
func (b *filterBase) ContextPasses(MatchContext, ScopeItem) bool { return true }

// AddressPasses implements Filter. Unconstrained: always true.
func (b *filterBase) AddressPasses(target.Address) bool { return true }

// RequiredItems implements Filter. An unconstrained filter needs nothing.
func (b *filterBase) RequiredItems() ScopeItem { return ScopeNone }

// Describe implements Filter. It writes nothing.
func (b *filterBase) Describe(io.Writer, bool) {}

// Unconstrained is the filter that matches everything: every module and
// every compile unit of the Target qualifies.
type Unconstrained struct {
	filterBase
}

// NewUnconstrained creates a filter that passes every catalog node of tgt.
func NewUnconstrained(tgt *target.Target, optFns ...Option) *Unconstrained {
	return &Unconstrained{filterBase: newFilterBase(tgt, optFns)}
}

// Search implements Filter.
func (f *Unconstrained) Search(s Searcher) {
	searchCatalog(f, s, f.opts.logger)
}

// SearchInModules implements Filter.
func (f *Unconstrained) SearchInModules(s Searcher, modules *target.ModuleList) {
	searchModules(f, s, modules, f.opts.logger)
}

// ExcludeDenylisted matches every module except those the Target denylists
// for unconstrained searches. This is the filter breakpoint resolvers use
// when the user named no module at all.
type ExcludeDenylisted struct {
	filterBase
}

// NewExcludeDenylisted creates a filter consulting tgt's denylist.
func NewExcludeDenylisted(tgt *target.Target, optFns ...Option) *ExcludeDenylisted {
	return &ExcludeDenylisted{filterBase: newFilterBase(tgt, optFns)}
}

// ModulePasses implements Filter: false iff the Target denylists spec.
func (f *ExcludeDenylisted) ModulePasses(spec filespec.FileSpec) bool {
	return !f.tgt.ExcludedForUnconstrainedSearches(spec)
}

// Search implements Filter.
func (f *ExcludeDenylisted) Search(s Searcher) {
	searchCatalog(f, s, f.opts.logger)
}

// SearchInModules implements Filter.
func (f *ExcludeDenylisted) SearchInModules(s Searcher, modules *target.ModuleList) {
	searchModules(f, s, modules, f.opts.logger)
}
