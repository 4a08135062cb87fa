package filespec

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
)

// FileSpec is a resolved path specification: a directory component plus a
// base name. Specs describe files inside the debugged target, so they use
// slash-separated target paths regardless of the host platform.
//
// The zero value is the empty spec.
type FileSpec struct {
	dir  string
	base string
}

// New parses p into a FileSpec. The path is cleaned; a path without a
// directory component yields a base-only spec.
func New(p string) FileSpec {
	if p == "" {
		return FileSpec{}
	}

	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if p == "." {
		return FileSpec{}
	}

	dir, base := path.Split(p)
	return FileSpec{
		dir:  strings.TrimSuffix(dir, "/"),
		base: base,
	}
}

// Dir returns the directory component, without a trailing slash.
func (f FileSpec) Dir() string { return f.dir }

// Base returns the file name component.
func (f FileSpec) Base() string { return f.base }

// Path returns the full path.
func (f FileSpec) Path() string {
	if f.dir == "" {
		return f.base
	}
	return f.dir + "/" + f.base
}

// IsEmpty reports whether the spec has neither directory nor base name.
func (f FileSpec) IsEmpty() bool { return f.dir == "" && f.base == "" }

// HasGlob reports whether the spec contains glob metacharacters and is
// therefore matched with pattern semantics rather than literal comparison.
func (f FileSpec) HasGlob() bool {
	return strings.ContainsAny(f.dir, globMeta) || strings.ContainsAny(f.base, globMeta)
}

// String implements fmt.Stringer.
func (f FileSpec) String() string { return f.Path() }

const globMeta = `*?[{`

// CompareOptions controls how specs are compared.
type CompareOptions struct {
	// CaseSensitive selects case-sensitive comparison. The default
	// (POSIX-like) is case-sensitive; callers targeting case-preserving
	// platforms opt out explicitly.
	CaseSensitive bool
}

// DefaultCompareOptions returns the documented default: case-sensitive.
func DefaultCompareOptions() CompareOptions {
	return CompareOptions{CaseSensitive: true}
}

func (o CompareOptions) fold(s string) string {
	if o.CaseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// Match reports whether candidate satisfies pattern.
//
// A pattern without a directory component constrains the base name only; a
// pattern with a directory constrains the full path. Patterns containing
// glob metacharacters are matched with doublestar glob semantics. The empty
// pattern matches only the empty candidate.
func Match(pattern, candidate FileSpec, opts CompareOptions) bool {
	if pattern.IsEmpty() {
		return candidate.IsEmpty()
	}

	if pattern.HasGlob() {
		subject := candidate.base
		if pattern.dir != "" {
			subject = candidate.Path()
		}
		ok, err := doublestar.Match(opts.fold(pattern.Path()), opts.fold(subject))
		return err == nil && ok
	}

	if pattern.dir == "" {
		return opts.fold(pattern.base) == opts.fold(candidate.base)
	}
	return opts.fold(pattern.Path()) == opts.fold(candidate.Path())
}

// Equal reports whether a and b name the same file. When full is false and
// either side lacks a directory component, only base names are compared.
func Equal(a, b FileSpec, full bool, opts CompareOptions) bool {
	if !full && (a.dir == "" || b.dir == "") {
		return opts.fold(a.base) == opts.fold(b.base)
	}
	return opts.fold(a.Path()) == opts.fold(b.Path())
}

// BaseKey returns the membership-index key for a base name under o: the
// xxhash of the folded name. Collections that index specs by base name use
// it so their keys agree with Match's folding.
func (o CompareOptions) BaseKey(base string) uint64 {
	return xxhash.Sum64String(o.fold(base))
}
