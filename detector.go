package magickit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/gobwas/glob"

	"github.com/gobeaver/magickit/magic"
)

// Detector owns an ordered collection of compiled level-0 magic rule trees
// and classifies content against them. Rules are tried in order until one
// produces a classification; the per-tree matching itself lives in the
// magic package.
//
// A Detector is safe for concurrent use. Reload swaps the rule set
// atomically, in-flight matches finish against the set they started with.
type Detector struct {
	mu      sync.RWMutex
	entries []*magic.Entry

	opts Options

	// sourcePath backs Reload and Watch for file- and directory-loaded
	// detectors; empty otherwise.
	sourcePath string
	loader     func() ([]*magic.Entry, error)
}

// New creates a detector using the built-in rule set.
func New(opts ...Option) *Detector {
	d := newDetector(opts)
	d.loader = func() ([]*magic.Entry, error) {
		return d.compile([]byte(builtinRules)), nil
	}
	d.entries, _ = d.loader()
	return d
}

// NewFromReader creates a detector from magic rule text.
func NewFromReader(r io.Reader, opts ...Option) (*Detector, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read magic rules: %w", err)
	}

	d := newDetector(opts)
	d.loader = func() ([]*magic.Entry, error) {
		return d.compile(data), nil
	}
	return d.load()
}

// NewFromFile creates a detector from a magic rule file. The detector
// remembers the path, so it can be reloaded and watched.
func NewFromFile(path string, opts ...Option) (*Detector, error) {
	d := newDetector(opts)
	d.sourcePath = path
	d.loader = func() ([]*magic.Entry, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read magic file: %w", err)
		}
		return d.compile(data), nil
	}
	return d.load()
}

// NewFromDirectory creates a detector from every rule file in a directory
// whose name matches the configured glob pattern (see WithFilePattern).
// Files load in name order, so rule priority follows file naming.
func NewFromDirectory(dir string, opts ...Option) (*Detector, error) {
	d := newDetector(opts)

	pattern, err := glob.Compile(d.opts.FilePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", d.opts.FilePattern, err)
	}

	d.sourcePath = dir
	d.loader = func() ([]*magic.Entry, error) {
		dirEntries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read magic directory: %w", err)
		}

		var names []string
		for _, de := range dirEntries {
			if de.IsDir() || !pattern.Match(de.Name()) {
				continue
			}
			names = append(names, de.Name())
		}
		if len(names) == 0 {
			return nil, ErrNoRuleFiles
		}
		sort.Strings(names)

		var entries []*magic.Entry
		for _, name := range names {
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return nil, fmt.Errorf("failed to read magic file %s: %w", name, err)
			}
			entries = append(entries, d.compile(data)...)
		}
		return entries, nil
	}
	return d.load()
}

func newDetector(opts []Option) *Detector {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Detector{opts: o}
}

// load runs the loader once and validates the outcome.
func (d *Detector) load() (*Detector, error) {
	entries, err := d.loader()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoRules
	}
	d.entries = entries
	return d, nil
}

// compile parses rule text into entry trees, going through the configured
// cache when one is set.
func (d *Detector) compile(data []byte) []*magic.Entry {
	if d.opts.Cache == nil {
		return d.order(magic.ParseBytes(data, d.opts.ErrorCallback))
	}

	key := RuleDigest(data)
	if cached, ok := d.opts.Cache.Get(key); ok {
		if entries, ok := cached.([]*magic.Entry); ok {
			return entries
		}
	}
	entries := d.order(magic.ParseBytes(data, d.opts.ErrorCallback))
	d.opts.Cache.Set(key, entries, d.opts.CacheTTL)
	return entries
}

// order applies strength ordering when enabled. The sort is stable, so
// equally strong rules keep their declaration order.
func (d *Detector) order(entries []*magic.Entry) []*magic.Entry {
	if d.opts.StrengthOrdering {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Strength() > entries[j].Strength()
		})
	}
	return entries
}

// Reload recompiles the rule set from its source and swaps it in.
func (d *Detector) Reload() error {
	entries, err := d.loader()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return ErrNoRules
	}
	d.mu.Lock()
	d.entries = entries
	d.mu.Unlock()
	return nil
}

// EntryCount returns the number of top-level rules currently loaded.
func (d *Detector) EntryCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// FindMatch classifies the leading bytes of some content. Rules are tried
// in order; the first one producing a classification wins. Returns nil when
// nothing matched, which is an expected outcome rather than an error.
func (d *Detector) FindMatch(data []byte) *ContentInfo {
	d.mu.RLock()
	entries := d.entries
	d.mu.RUnlock()

	for _, entry := range entries {
		if result := entry.Match(data); result != nil {
			return fromResult(result)
		}
	}
	return nil
}

// FindReaderMatch reads the configured window of leading bytes from a
// reader and classifies them.
func (d *Detector) FindReaderMatch(r io.Reader) (*ContentInfo, error) {
	buf := make([]byte, d.opts.ReadSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	return d.FindMatch(buf[:n]), nil
}

// FindFileMatch classifies a file by its leading bytes.
func (d *Detector) FindFileMatch(path string) (*ContentInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return d.FindReaderMatch(f)
}
