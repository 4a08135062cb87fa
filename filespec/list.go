package filespec

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// List is an ordered collection of FileSpecs with fast membership queries.
//
// Literal specs are indexed by a hash of their (case-folded) base name, with
// a roaring bitmap of list positions per key; glob specs cannot be indexed
// and are kept in a separate position bitmap that is always scanned. Lookup
// order is list order: FindIndex returns the smallest matching position.
//
// List is not safe for concurrent mutation. Comparison options are fixed at
// construction because the index keys depend on the folding in effect.
type List struct {
	opts  CompareOptions
	specs []FileSpec

	byBase map[uint64]*roaring.Bitmap
	globs  *roaring.Bitmap
}

// NewList builds a List from paths using opts for all comparisons.
func NewList(opts CompareOptions, paths ...string) *List {
	l := &List{
		opts:   opts,
		byBase: make(map[uint64]*roaring.Bitmap),
		globs:  roaring.New(),
	}
	for _, p := range paths {
		l.Append(New(p))
	}
	return l
}

// NewListOfSpecs builds a List from already-parsed specs.
func NewListOfSpecs(opts CompareOptions, specs ...FileSpec) *List {
	l := &List{
		opts:   opts,
		byBase: make(map[uint64]*roaring.Bitmap),
		globs:  roaring.New(),
	}
	for _, s := range specs {
		l.Append(s)
	}
	return l
}

// Append adds spec at the end of the list.
func (l *List) Append(spec FileSpec) {
	pos := uint32(len(l.specs))
	l.specs = append(l.specs, spec)

	if spec.HasGlob() {
		l.globs.Add(pos)
		return
	}
	key := l.opts.BaseKey(spec.base)
	bm, ok := l.byBase[key]
	if !ok {
		bm = roaring.New()
		l.byBase[key] = bm
	}
	bm.Add(pos)
}

// Len returns the number of specs in the list.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.specs)
}

// At returns the spec at position i.
func (l *List) At(i int) FileSpec { return l.specs[i] }

// Options returns the comparison options the list was built with.
func (l *List) Options() CompareOptions { return l.opts }

// FindIndex returns the position of the first spec matching candidate, or
// -1 if no spec matches.
func (l *List) FindIndex(candidate FileSpec) int {
	if l.Len() == 0 {
		return -1
	}

	scan := l.globs
	if bm, ok := l.byBase[l.opts.BaseKey(candidate.base)]; ok {
		scan = roaring.Or(bm, l.globs)
	}

	it := scan.Iterator()
	for it.HasNext() {
		pos := it.Next()
		if Match(l.specs[pos], candidate, l.opts) {
			return int(pos)
		}
	}
	return -1
}

// Contains reports whether any spec in the list matches candidate.
func (l *List) Contains(candidate FileSpec) bool {
	return l.FindIndex(candidate) >= 0
}

// Strings returns the paths of all specs in list order.
func (l *List) Strings() []string {
	if l.Len() == 0 {
		return nil
	}
	out := make([]string, len(l.specs))
	for i, s := range l.specs {
		out[i] = s.Path()
	}
	return out
}
