// Package filespec provides path specifications for files inside a debugged
// target and membership queries over ordered spec lists.
//
// A FileSpec splits a target path into a directory and a base name. Specs
// without a directory component match by base name only, which is how users
// typically name shared libraries and source files. Comparison semantics
// (case sensitivity) are an explicit CompareOptions knob with a documented
// case-sensitive default.
//
// Specs containing glob metacharacters (*, ?, [, {) are matched with
// doublestar pattern semantics:
//
//	filespec.Match(filespec.New("lib*.so"), filespec.New("/usr/lib/libc.so"), opts) // true
//
// List offers ordered membership with a roaring-bitmap index keyed by hashed
// base names, so the common "is this module in the user's list" query avoids
// a linear scan.
package filespec
