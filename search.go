package codescope

import (
	"github.com/hupe1980/codescope/target"
)

// This file implements the recursive-descent traversal shared by the filter
// variants: target → modules → compile units (→ functions, reserved). The
// tri-state protocol is encoded explicitly at each loop boundary: Stop
// always propagates outward, Pop is absorbed by the loop that owns the
// abandoned subtree.

// searchCatalog is the default Search: walk the filter's whole Target.
func searchCatalog(f Filter, s Searcher, log *Logger) {
	tgt := f.Target()
	if tgt == nil {
		return
	}

	mc := MatchContext{Target: tgt}

	// A target-depth searcher gets exactly one callback; no module or
	// compile unit is ever evaluated.
	if s.Depth() == DepthTarget {
		s.SearchCallback(f, mc, nil, false)
		return
	}

	log.WithDepth(s.Depth()).Debug("searching catalog")
	descendModules(f, mc, s)
}

// searchModules walks a caller-supplied module list instead of the Target's
// images, with identical depth and tri-state semantics.
func searchModules(f Filter, s Searcher, modules *target.ModuleList, log *Logger) {
	tgt := f.Target()
	if tgt == nil {
		return
	}

	mc := MatchContext{Target: tgt}

	if s.Depth() == DepthTarget {
		s.SearchCallback(f, mc, nil, false)
		return
	}

	log.WithDepth(s.Depth()).Debug("searching module list", "modules", modules.Len())

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

// descendModules dispatches at module level. A context that already pins a
// module skips the list scan entirely and its callback result is returned to
// the caller unmodified.
func descendModules(f Filter, mc MatchContext, s Searcher) CallbackReturn {
	if s.Depth() < DepthModule {
		return CallbackReturnContinue
	}

	if mc.Module != nil {
		if s.Depth() == DepthModule {
			return s.SearchCallback(f, mc, nil, false)
		}
		return descendCompUnits(f, mc.Module, mc, s)
	}

	modules := mc.Target.Modules()
	for i := 0; i < modules.Len(); i++ {
		mod := modules.At(i)
		if !f.ModulePasses(mod.FileSpec()) {
			continue
		}

		if s.Depth() == DepthModule {
			if s.SearchCallback(f, mc.WithModule(mod), nil, false) == CallbackReturnStop {
				return CallbackReturnStop
			}
			// There is no level above the module loop for a Pop to bubble
			// out of; Pop and Continue both advance to the next module.
		} else {
			ret := descendCompUnits(f, mod, mc.WithModule(mod), s)
			if ret == CallbackReturnStop {
				return CallbackReturnStop
			}
			// A Pop means this module's subtree has nothing more to offer;
			// absorb it and try the next module.
		}
	}
	return CallbackReturnContinue
}

// descendCompUnits dispatches at compile-unit level within mod. A context
// that already pins a unit gets at most one callback, its result returned
// raw.
func descendCompUnits(f Filter, mod *target.Module, mc MatchContext, s Searcher) CallbackReturn {
	if mc.CompUnit != nil {
		if !f.CompUnitPasses(mc.CompUnit.FileSpec()) {
			return CallbackReturnContinue
		}
		if s.Depth() == DepthCompUnit {
			return s.SearchCallback(f, mc, nil, false)
		}
		return descendFunctions(f, mc.CompUnit, mc, s)
	}

	for i := 0; i < mod.NumCompUnits(); i++ {
		cu := mod.CompUnitAt(i)
		if !f.CompUnitPasses(cu.FileSpec()) {
			continue
		}

		if s.Depth() == DepthCompUnit {
			switch s.SearchCallback(f, mc.WithCompUnit(cu), nil, false) {
			case CallbackReturnStop:
				return CallbackReturnStop
			case CallbackReturnPop:
				// Abandon the remaining units of this module. The caller's
				// module loop resumes with the next module, so the Pop is
				// converted to a Continue here.
				return CallbackReturnContinue
			}
		} else {
			if descendFunctions(f, cu, mc.WithCompUnit(cu), s) == CallbackReturnStop {
				return CallbackReturnStop
			}
		}
	}
	return CallbackReturnContinue
}

// descendFunctions is the reserved function-level extension point. Function
// enumeration is out of scope for this engine, so every qualifying compile
// unit passes through unvisited.
func descendFunctions(Filter, *target.CompUnit, MatchContext, Searcher) CallbackReturn {
	return CallbackReturnContinue
}
