package codescope

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/codescope/filespec"
	"github.com/hupe1980/codescope/target"
)

func TestUnconstrained_Defaults(t *testing.T) {
	tgt := buildTarget(t)
	f := NewUnconstrained(tgt)

	assert.True(t, f.ModulePasses(filespec.New("anything.so")))
	assert.True(t, f.CompUnitPasses(filespec.New("anything.c")))
	assert.True(t, f.ContextPasses(MatchContext{}, ScopeNone))
	assert.True(t, f.AddressPasses(target.Address{}))
	assert.Equal(t, ScopeNone, f.RequiredItems())

	var sb strings.Builder
	f.Describe(&sb, true)
	assert.Empty(t, sb.String())
}

func TestExcludeDenylisted(t *testing.T) {
	tgt := buildTarget(t)
	tgt.Denylist("b.so")

	f := NewExcludeDenylisted(tgt)
	assert.True(t, f.ModulePasses(filespec.New("a.so")))
	assert.False(t, f.ModulePasses(filespec.New("b.so")))
	assert.Equal(t, ScopeNone, f.RequiredItems())

	rec := &recorder{depth: DepthModule}
	f.Search(rec.searcher())
	assert.Equal(t, []string{"a.so"}, rec.visits)
}

func TestByModule_Matching(t *testing.T) {
	tgt := buildTarget(t)

	tests := []struct {
		name string
		spec string
		opts []Option
		pass []string
		fail []string
	}{
		{
			name: "base name only",
			spec: "libc.so",
			pass: []string{"libc.so", "/usr/lib/libc.so"},
			fail: []string{"libm.so", "/usr/lib/libm.so"},
		},
		{
			name: "full path",
			spec: "/usr/lib/libc.so",
			pass: []string{"/usr/lib/libc.so"},
			fail: []string{"/opt/lib/libc.so", "libc.so"},
		},
		{
			name: "case sensitive by default",
			spec: "LibC.so",
			pass: []string{"LibC.so"},
			fail: []string{"libc.so"},
		},
		{
			name: "case insensitive option",
			spec: "LibC.so",
			opts: []Option{CaseInsensitive()},
			pass: []string{"libc.so", "LIBC.SO"},
			fail: []string{"libm.so"},
		},
		{
			name: "glob",
			spec: "lib*.so",
			pass: []string{"libc.so", "/usr/lib/libm.so"},
			fail: []string{"ld-linux.so.2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewByModule(tgt, tt.spec, tt.opts...)
			for _, p := range tt.pass {
				assert.True(t, f.ModulePasses(filespec.New(p)), p)
			}
			for _, p := range tt.fail {
				assert.False(t, f.ModulePasses(filespec.New(p)), p)
			}
			assert.True(t, f.CompUnitPasses(filespec.New("whatever.c")))
		})
	}
}

func TestByModule_Search(t *testing.T) {
	tgt := buildTarget(t)

	rec := &recorder{depth: DepthCompUnit}
	NewByModule(tgt, "a.so").Search(rec.searcher())

	assert.Equal(t, []string{"a.so/x.c", "a.so/y.c"}, rec.visits)
}

func TestByModuleList_EmptyListMatchesEverything(t *testing.T) {
	tgt := buildTarget(t)
	f := NewByModuleList(tgt, nil)

	assert.True(t, f.ModulePasses(filespec.New("a.so")))
	assert.True(t, f.ModulePasses(filespec.New("anything-at-all.so")))

	rec := &recorder{depth: DepthModule}
	f.Search(rec.searcher())
	assert.Equal(t, []string{"a.so", "b.so"}, rec.visits)
}

func TestByModuleList_Membership(t *testing.T) {
	tgt := buildTarget(t)
	f := NewByModuleList(tgt, []string{"b.so", "c.so"})

	assert.False(t, f.ModulePasses(filespec.New("a.so")))
	assert.True(t, f.ModulePasses(filespec.New("b.so")))

	rec := &recorder{depth: DepthCompUnit}
	f.Search(rec.searcher())
	assert.Equal(t, []string{"b.so/z.c"}, rec.visits)
}

func TestByModuleListAndCU_RequiresBothMemberships(t *testing.T) {
	tgt := buildTarget(t)

	rec := &recorder{depth: DepthCompUnit}
	NewByModuleListAndCU(tgt, []string{"a.so"}, []string{"x.c"}).Search(rec.searcher())
	require.Equal(t, []string{"a.so/x.c"}, rec.visits,
		"y.c and all of b.so must produce zero callbacks")

	// Removing x.c from the unit list skips it even though a.so stays in
	// the module list.
	rec = &recorder{depth: DepthCompUnit}
	NewByModuleListAndCU(tgt, []string{"a.so"}, []string{"y.c"}).Search(rec.searcher())
	assert.Equal(t, []string{"a.so/y.c"}, rec.visits)
}

func TestByModuleListAndCU_EmptyUnitListMatchesAllUnits(t *testing.T) {
	tgt := buildTarget(t)

	rec := &recorder{depth: DepthCompUnit}
	NewByModuleListAndCU(tgt, []string{"a.so"}, nil).Search(rec.searcher())

	assert.Equal(t, []string{"a.so/x.c", "a.so/y.c"}, rec.visits)
}

func TestByModuleListAndCU_ModuleDepthDelegates(t *testing.T) {
	tgt := buildTarget(t)

	rec := &recorder{depth: DepthModule}
	NewByModuleListAndCU(tgt, []string{"a.so", "b.so"}, []string{"x.c"}).Search(rec.searcher())

	assert.Equal(t, []string{"a.so", "b.so"}, rec.visits)
}

func TestByModuleListAndCU_StopAndPop(t *testing.T) {
	tgt := buildTarget(t)
	a := tgt.Modules().At(0)
	a.AddCompUnit("w.c") // a.so now has x.c, y.c, w.c

	t.Run("stop aborts everything", func(t *testing.T) {
		rec := &recorder{
			depth: DepthCompUnit,
			steer: func(MatchContext) CallbackReturn { return CallbackReturnStop },
		}
		NewByModuleListAndCU(tgt, nil, nil).Search(rec.searcher())
		assert.Equal(t, []string{"a.so/x.c"}, rec.visits)
	})

	t.Run("pop moves to next module", func(t *testing.T) {
		rec := &recorder{
			depth: DepthCompUnit,
			steer: func(mc MatchContext) CallbackReturn {
				if mc.CompUnit.FileSpec().Base() == "x.c" {
					return CallbackReturnPop
				}
				return CallbackReturnContinue
			},
		}
		NewByModuleListAndCU(tgt, nil, nil).Search(rec.searcher())
		assert.Equal(t, []string{"a.so/x.c", "b.so/z.c"}, rec.visits)
	})
}

func TestContextPasses_FailsClosedOutsideDeclaredScope(t *testing.T) {
	tgt := buildTarget(t)
	mod := tgt.Modules().At(0)
	cu := mod.CompUnitAt(0)
	full := MatchContext{Target: tgt, Module: mod, CompUnit: cu}

	t.Run("by module", func(t *testing.T) {
		f := NewByModule(tgt, "a.so")
		assert.True(t, f.ContextPasses(full, ScopeTarget|ScopeModule))
		// Module is populated but the caller did not vouch for it.
		assert.False(t, f.ContextPasses(full, ScopeTarget))
	})

	t.Run("by module list", func(t *testing.T) {
		f := NewByModuleList(tgt, []string{"a.so"})
		assert.True(t, f.ContextPasses(full, ScopeModule))
		assert.False(t, f.ContextPasses(full, ScopeCompUnit))
	})

	t.Run("by module list and cu", func(t *testing.T) {
		f := NewByModuleListAndCU(tgt, []string{"a.so"}, []string{"x.c"})
		assert.True(t, f.ContextPasses(full, ScopeModule|ScopeCompUnit))
		assert.False(t, f.ContextPasses(full, ScopeModule))
		assert.False(t, f.ContextPasses(full, ScopeCompUnit))
	})
}

func TestContextPasses_Membership(t *testing.T) {
	tgt := buildTarget(t)
	a := tgt.Modules().At(0)
	b := tgt.Modules().At(1)

	f := NewByModuleListAndCU(tgt, []string{"a.so"}, []string{"x.c"})
	scope := ScopeModule | ScopeCompUnit

	assert.True(t, f.ContextPasses(MatchContext{Target: tgt, Module: a, CompUnit: a.CompUnitAt(0)}, scope))
	assert.False(t, f.ContextPasses(MatchContext{Target: tgt, Module: a, CompUnit: a.CompUnitAt(1)}, scope),
		"y.c is not in the unit list")
	assert.False(t, f.ContextPasses(MatchContext{Target: tgt, Module: b, CompUnit: b.CompUnitAt(0)}, scope),
		"b.so is not in the module list")
}

// RequiredItems must never claim more than ContextPasses actually inspects:
// a fully-populated context declared with exactly the required scope has to
// be decidable.
func TestRequiredItems_MatchesInspectedFields(t *testing.T) {
	tgt := buildTarget(t)
	mod := tgt.Modules().At(0)
	full := MatchContext{Target: tgt, Module: mod, CompUnit: mod.CompUnitAt(0)}

	tests := []struct {
		name   string
		filter Filter
		want   ScopeItem
	}{
		{"unconstrained", NewUnconstrained(tgt), ScopeNone},
		{"exclude denylisted", NewExcludeDenylisted(tgt), ScopeNone},
		{"by module", NewByModule(tgt, "a.so"), ScopeModule},
		{"by module list", NewByModuleList(tgt, []string{"a.so"}), ScopeModule},
		{"by module list and cu", NewByModuleListAndCU(tgt, []string{"a.so"}, []string{"x.c"}), ScopeModule | ScopeCompUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.filter.RequiredItems())
			assert.True(t, tt.filter.ContextPasses(full, tt.filter.RequiredItems()),
				"declared scope must be sufficient for a decision")
		})
	}
}

func TestDescribe(t *testing.T) {
	tgt := buildTarget(t)

	tests := []struct {
		name    string
		filter  Filter
		verbose bool
		want    string
	}{
		{"by module terse", NewByModule(tgt, "/usr/lib/libc.so"), false, ", module = libc.so"},
		{"by module verbose", NewByModule(tgt, "/usr/lib/libc.so"), true, ", module = /usr/lib/libc.so"},
		{"single module list", NewByModuleList(tgt, []string{"a.so"}), false, ", module = a.so"},
		{"multi module list", NewByModuleList(tgt, []string{"a.so", "b.so"}), false, ", modules(2) = a.so, b.so"},
		{
			"list and cu",
			NewByModuleListAndCU(tgt, []string{"a.so"}, []string{"x.c", "y.c"}),
			false,
			", module = a.so, comp units(2) = x.c, y.c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			tt.filter.Describe(&sb, tt.verbose)
			assert.Equal(t, tt.want, sb.String())
		})
	}
}

func TestMatchContext_CopyOnDescend(t *testing.T) {
	tgt := buildTarget(t)
	mod := tgt.Modules().At(0)

	base := MatchContext{Target: tgt}
	scoped := base.WithModule(mod)

	assert.Nil(t, base.Module, "descending must not mutate the parent context")
	assert.Same(t, mod, scoped.Module)
	assert.Equal(t, ScopeTarget, base.Scope())
	assert.Equal(t, ScopeTarget|ScopeModule, scoped.Scope())
}
