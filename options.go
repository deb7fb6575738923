package magickit

import (
	"time"

	"github.com/gobeaver/magickit/magic"
)

// DefaultReadSize is how many leading bytes of a file or reader are
// examined when the caller did not configure a window.
const DefaultReadSize = 2048

// Option represents a detector configuration option
type Option func(*Options)

// Options contains all possible options for building a Detector
type Options struct {
	// ReadSize is the number of leading bytes read from files and readers
	// before matching.
	ReadSize int

	// ErrorCallback receives rule lines that failed to parse. When nil,
	// bad lines are silently skipped.
	ErrorCallback magic.ErrorCallback

	// Cache stores compiled rule sets keyed by the digest of their source,
	// so repeated loads of the same rules skip recompilation.
	Cache Cache

	// CacheTTL bounds how long compiled rule sets stay cached. Zero means
	// no expiration.
	CacheTTL time.Duration

	// FilePattern is the glob pattern selecting rule files when loading a
	// directory.
	FilePattern string

	// StrengthOrdering re-sorts top-level rules by declared strength,
	// strongest first, instead of declaration order.
	StrengthOrdering bool
}

// defaultOptions returns the options used when none are given.
func defaultOptions() Options {
	return Options{
		ReadSize:    DefaultReadSize,
		FilePattern: "*",
	}
}

// WithReadSize sets how many leading bytes are examined
func WithReadSize(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.ReadSize = size
		}
	}
}

// WithErrorCallback sets the callback receiving unparseable rule lines
func WithErrorCallback(cb magic.ErrorCallback) Option {
	return func(o *Options) {
		o.ErrorCallback = cb
	}
}

// WithCache sets the cache for compiled rule sets
func WithCache(cache Cache) Option {
	return func(o *Options) {
		o.Cache = cache
	}
}

// WithCacheTTL sets the lifetime of cached compiled rule sets
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *Options) {
		o.CacheTTL = ttl
	}
}

// WithFilePattern sets the glob pattern used to select rule files when
// loading a directory, e.g. "*.magic"
func WithFilePattern(pattern string) Option {
	return func(o *Options) {
		if pattern != "" {
			o.FilePattern = pattern
		}
	}
}

// WithStrengthOrdering orders top-level rules by declared strength instead
// of declaration order
func WithStrengthOrdering(enabled bool) Option {
	return func(o *Options) {
		o.StrengthOrdering = enabled
	}
}
