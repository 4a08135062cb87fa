package filespec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		in   string
		dir  string
		base string
		path string
	}{
		{"", "", "", ""},
		{"libc.so", "", "libc.so", "libc.so"},
		{"/usr/lib/libc.so", "/usr/lib", "libc.so", "/usr/lib/libc.so"},
		{"/usr/lib//libc.so", "/usr/lib", "libc.so", "/usr/lib/libc.so"},
		{"./src/main.c", "src", "main.c", "src/main.c"},
		{`C:\code\main.c`, "C:/code", "main.c", "C:/code/main.c"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := New(tt.in)
			assert.Equal(t, tt.dir, got.Dir())
			assert.Equal(t, tt.base, got.Base())
			assert.Equal(t, tt.path, got.Path())
		})
	}
}

func TestMatch(t *testing.T) {
	cs := DefaultCompareOptions()
	ci := CompareOptions{CaseSensitive: false}

	tests := []struct {
		name      string
		pattern   string
		candidate string
		opts      CompareOptions
		want      bool
	}{
		{"base vs base", "libc.so", "libc.so", cs, true},
		{"base vs full path", "libc.so", "/usr/lib/libc.so", cs, true},
		{"base mismatch", "libm.so", "/usr/lib/libc.so", cs, false},
		{"full path exact", "/usr/lib/libc.so", "/usr/lib/libc.so", cs, true},
		{"full path wrong dir", "/usr/lib/libc.so", "/opt/lib/libc.so", cs, false},
		{"full path vs bare base", "/usr/lib/libc.so", "libc.so", cs, false},
		{"case sensitive", "LibC.so", "libc.so", cs, false},
		{"case insensitive", "LibC.so", "libc.so", ci, true},
		{"glob base", "lib*.so", "/usr/lib/libpthread.so", cs, true},
		{"glob base miss", "lib*.so", "ld-linux.so.2", cs, false},
		{"glob with dir", "/usr/*/libc.so", "/usr/lib/libc.so", cs, true},
		{"glob with dir miss", "/usr/*/libc.so", "/opt/lib/libc.so", cs, false},
		{"glob case insensitive", "Lib*.SO", "libc.so", ci, true},
		{"glob alternatives", "lib{c,m}.so", "libm.so", cs, true},
		{"empty pattern empty candidate", "", "", cs, true},
		{"empty pattern nonempty candidate", "", "libc.so", cs, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(New(tt.pattern), New(tt.candidate), tt.opts)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEqual(t *testing.T) {
	opts := DefaultCompareOptions()

	a := New("/usr/lib/libc.so")
	b := New("libc.so")

	assert.True(t, Equal(a, b, false, opts), "one side without a dir compares by base")
	assert.False(t, Equal(a, b, true, opts), "full comparison needs both paths")
	assert.True(t, Equal(a, a, true, opts))
}

func TestHasGlob(t *testing.T) {
	assert.False(t, New("/usr/lib/libc.so").HasGlob())
	assert.True(t, New("lib*.so").HasGlob())
	assert.True(t, New("/usr/*/libc.so").HasGlob())
	assert.True(t, New("lib[cm].so").HasGlob())
}

func TestBaseKey_FoldsWithOptions(t *testing.T) {
	cs := DefaultCompareOptions()
	ci := CompareOptions{CaseSensitive: false}

	assert.NotEqual(t, cs.BaseKey("LibC.so"), cs.BaseKey("libc.so"))
	assert.Equal(t, ci.BaseKey("LibC.so"), ci.BaseKey("libc.so"))
}
