package codescope

import (
	"github.com/hupe1980/codescope/filespec"
)

type options struct {
	compare filespec.CompareOptions
	logger  *Logger
}

func defaultOptions() options {
	return options{
		compare: filespec.DefaultCompareOptions(),
		logger:  NoopLogger(),
	}
}

// Option configures filter construction.
//
// Today options exist mainly to pin down path-comparison semantics without
// exploding the constructor surface.
type Option func(*options)

// CaseInsensitive makes the filter compare path specs without regard to
// case. The documented default is case-sensitive (POSIX-like) comparison.
func CaseInsensitive() Option {
	return func(o *options) {
		o.compare.CaseSensitive = false
	}
}

// WithCompareOptions replaces the path-comparison options wholesale.
func WithCompareOptions(opts filespec.CompareOptions) Option {
	return func(o *options) {
		o.compare = opts
	}
}

// WithLogger configures the logger filters use for debug tracing.
//
// If nil is passed, logging stays disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
