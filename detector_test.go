package magickit

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gobeaver/magickit/magic"
)

const testRules = "0\tstring\tfLaC\tFLAC audio bitstream data\n" +
	"!:mime\taudio/x-flac\n" +
	"0\tstring\tOggS\tOgg data\n" +
	"!:mime\tapplication/ogg\n"

func TestNewFromReader(t *testing.T) {
	d, err := NewFromReader(strings.NewReader(testRules))
	if err != nil {
		t.Fatalf("NewFromReader: %v", err)
	}
	if d.EntryCount() != 2 {
		t.Errorf("EntryCount = %d, want 2", d.EntryCount())
	}

	info := d.FindMatch([]byte("fLaC\x00\x00\x00\x22"))
	if info == nil {
		t.Fatal("expected a match")
	}
	if info.Name != "FLAC" || info.MimeType != "audio/x-flac" {
		t.Errorf("got %q / %q", info.Name, info.MimeType)
	}

	if info := d.FindMatch([]byte("garbage")); info != nil {
		t.Errorf("expected nil for unmatched content, got %+v", info)
	}
}

func TestNewFromReaderEmpty(t *testing.T) {
	if _, err := NewFromReader(strings.NewReader("")); !IsNoRules(err) {
		t.Errorf("err = %v, want no-rules", err)
	}
	if _, err := NewFromReader(strings.NewReader("# comments only\n")); !IsNoRules(err) {
		t.Errorf("err = %v, want no-rules", err)
	}
}

func TestFindReaderMatch(t *testing.T) {
	d, err := NewFromReader(strings.NewReader(testRules), WithReadSize(8))
	if err != nil {
		t.Fatal(err)
	}

	info, err := d.FindReaderMatch(bytes.NewReader([]byte("OggS\x00\x02rest of stream")))
	if err != nil {
		t.Fatalf("FindReaderMatch: %v", err)
	}
	if info == nil || info.Name != "Ogg" {
		t.Fatalf("got %+v", info)
	}

	// Shorter than the read window is fine.
	info, err = d.FindReaderMatch(bytes.NewReader([]byte("OggS")))
	if err != nil {
		t.Fatalf("FindReaderMatch short: %v", err)
	}
	if info == nil || info.Name != "Ogg" {
		t.Fatalf("got %+v", info)
	}
}

func TestFindFileMatch(t *testing.T) {
	d, err := NewFromReader(strings.NewReader(testRules))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "sound.flac")
	if err := os.WriteFile(path, []byte("fLaC\x00\x00\x00\x22"), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := d.FindFileMatch(path)
	if err != nil {
		t.Fatalf("FindFileMatch: %v", err)
	}
	if info == nil || info.Name != "FLAC" {
		t.Fatalf("got %+v", info)
	}

	if _, err := d.FindFileMatch(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestNewFromFileAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.magic")
	if err := os.WriteFile(path, []byte(testRules), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}
	if d.EntryCount() != 2 {
		t.Fatalf("EntryCount = %d, want 2", d.EntryCount())
	}

	more := testRules + "0\tstring\tMThd\tStandard MIDI data\n"
	if err := os.WriteFile(path, []byte(more), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := d.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if d.EntryCount() != 3 {
		t.Errorf("EntryCount after reload = %d, want 3", d.EntryCount())
	}

	// A reload that fails keeps the old rules.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := d.Reload(); err == nil {
		t.Error("Reload of a removed file should fail")
	}
	if d.EntryCount() != 3 {
		t.Errorf("EntryCount after failed reload = %d, want 3", d.EntryCount())
	}
}

func TestNewFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeRule := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeRule("10-flac.magic", "0\tstring\tfLaC\tFLAC audio bitstream data\n")
	writeRule("20-ogg.magic", "0\tstring\tOggS\tOgg data\n")
	writeRule("notes.txt", "not rules at all")

	d, err := NewFromDirectory(dir, WithFilePattern("*.magic"))
	if err != nil {
		t.Fatalf("NewFromDirectory: %v", err)
	}
	if d.EntryCount() != 2 {
		t.Errorf("EntryCount = %d, want 2", d.EntryCount())
	}

	if _, err := NewFromDirectory(dir, WithFilePattern("*.nope")); !IsNoRules(err) {
		t.Errorf("err = %v, want no-rule-files", err)
	}
	if _, err := NewFromDirectory(dir, WithFilePattern("[")); err == nil {
		t.Error("invalid glob pattern accepted")
	}
}

func TestStrengthOrdering(t *testing.T) {
	// The weak rule would win on declaration order alone.
	rules := "0\tstring\tABCD\tweak match\n" +
		"!:strength 1\n" +
		"0\tstring\tABCD\tstrong match\n" +
		"!:strength 90\n"

	d, err := NewFromReader(strings.NewReader(rules))
	if err != nil {
		t.Fatal(err)
	}
	if info := d.FindMatch([]byte("ABCDxx")); info == nil || info.Name != "weak" {
		t.Fatalf("declaration order: got %+v", info)
	}

	d, err = NewFromReader(strings.NewReader(rules), WithStrengthOrdering(true))
	if err != nil {
		t.Fatal(err)
	}
	if info := d.FindMatch([]byte("ABCDxx")); info == nil || info.Name != "strong" {
		t.Fatalf("strength order: got %+v", info)
	}
}

func TestCompileCache(t *testing.T) {
	cache := NewMemoryCache()
	data := []byte(testRules)

	d, err := NewFromReader(bytes.NewReader(data), WithCache(cache))
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Get(RuleDigest(data)); !ok {
		t.Error("compiled rules were not cached")
	}

	// A second detector over the same source reuses the compiled set.
	d2, err := NewFromReader(bytes.NewReader(data), WithCache(cache))
	if err != nil {
		t.Fatal(err)
	}
	if d.EntryCount() != d2.EntryCount() {
		t.Errorf("entry counts differ: %d vs %d", d.EntryCount(), d2.EntryCount())
	}
}

func TestErrorCallbackOption(t *testing.T) {
	var reported []*magic.ParseError
	rules := testRules + "0\tnosuchtype\tx\tbroken\n"

	d, err := NewFromReader(strings.NewReader(rules),
		WithErrorCallback(func(e *magic.ParseError) { reported = append(reported, e) }))
	if err != nil {
		t.Fatal(err)
	}
	if len(reported) != 1 {
		t.Errorf("callback fired %d times, want 1", len(reported))
	}
	if d.EntryCount() != 2 {
		t.Errorf("EntryCount = %d, want 2", d.EntryCount())
	}
}

func TestRuleDigest(t *testing.T) {
	a := RuleDigest([]byte(testRules))
	if a == "" {
		t.Fatal("empty digest")
	}
	if a != RuleDigest([]byte(testRules)) {
		t.Error("digest is not deterministic")
	}
	if a == RuleDigest([]byte(testRules+"x")) {
		t.Error("different sources share a digest")
	}
}
