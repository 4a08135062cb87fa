package codescope

import (
	"errors"
	"fmt"

	"github.com/hupe1980/codescope/codec"
	"github.com/hupe1980/codescope/filespec"
	"github.com/hupe1980/codescope/target"
)

// Filter kind tags as stored in serialized envelopes. These are stable
// names: renaming one breaks every persisted filter set that uses it.
const (
	KindUnconstrained     = "unconstrained"
	KindExcludeDenylisted = "exclude-denylisted"
	KindByModule          = "by-module"
	KindByModuleList      = "by-module-list"
	KindByModuleListAndCU = "by-module-list-and-cu"
)

// filterEnvelope is the serialized form of a filter: a kind tag plus the
// constraint data. The Target is never serialized; deserialization binds the
// filter to the caller-supplied Target.
type filterEnvelope struct {
	Kind          string   `json:"kind"`
	Modules       []string `json:"modules,omitempty"`
	CompUnits     []string `json:"comp_units,omitempty"`
	CaseSensitive bool     `json:"case_sensitive"`
}

// MarshalFilter serializes f with c into a kind-tagged envelope.
func MarshalFilter(c codec.Codec, f Filter) ([]byte, error) {
	if c == nil {
		return nil, ErrNilCodec
	}

	var env filterEnvelope
	switch v := f.(type) {
	case *Unconstrained:
		env = filterEnvelope{
			Kind:          KindUnconstrained,
			CaseSensitive: v.opts.compare.CaseSensitive,
		}
	case *ExcludeDenylisted:
		env = filterEnvelope{
			Kind:          KindExcludeDenylisted,
			CaseSensitive: v.opts.compare.CaseSensitive,
		}
	case *ByModule:
		env = filterEnvelope{
			Kind:          KindByModule,
			Modules:       []string{v.spec.Path()},
			CaseSensitive: v.opts.compare.CaseSensitive,
		}
	case *ByModuleListAndCU:
		env = filterEnvelope{
			Kind:          KindByModuleListAndCU,
			Modules:       v.moduleSpecs.Strings(),
			CompUnits:     v.cuSpecs.Strings(),
			CaseSensitive: v.opts.compare.CaseSensitive,
		}
	case *ByModuleList:
		env = filterEnvelope{
			Kind:          KindByModuleList,
			Modules:       v.moduleSpecs.Strings(),
			CaseSensitive: v.opts.compare.CaseSensitive,
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownFilterKind, f)
	}

	return c.Marshal(env)
}

// UnmarshalFilter decodes a filter envelope with c and binds the resulting
// filter to tgt. Unknown kind tags return ErrUnknownFilterKind;
// malformed payloads return a *DecodeError.
func UnmarshalFilter(c codec.Codec, data []byte, tgt *target.Target) (Filter, error) {
	if c == nil {
		return nil, ErrNilCodec
	}

	var env filterEnvelope
	if err := c.Unmarshal(data, &env); err != nil {
		return nil, &DecodeError{cause: err}
	}

	opts := []Option{
		WithCompareOptions(filespec.CompareOptions{CaseSensitive: env.CaseSensitive}),
	}

	switch env.Kind {
	case KindUnconstrained:
		return NewUnconstrained(tgt, opts...), nil
	case KindExcludeDenylisted:
		return NewExcludeDenylisted(tgt, opts...), nil
	case KindByModule:
		if len(env.Modules) != 1 {
			return nil, &DecodeError{
				Kind:  env.Kind,
				cause: fmt.Errorf("want exactly one module spec, got %d", len(env.Modules)),
			}
		}
		return NewByModule(tgt, env.Modules[0], opts...), nil
	case KindByModuleList:
		return NewByModuleList(tgt, env.Modules, opts...), nil
	case KindByModuleListAndCU:
		return NewByModuleListAndCU(tgt, env.Modules, env.CompUnits, opts...), nil
	case "":
		return nil, &DecodeError{cause: errors.New("missing kind tag")}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilterKind, env.Kind)
	}
}
