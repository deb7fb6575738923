package magic

import (
	"testing"
)

func TestUnescapeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{`a\nb`, "a\nb"},
		{`a\rb`, "a\rb"},
		{`a\tb`, "a\tb"},
		{`\a\f\v`, "\x07\x0c\x0b"},
		{`\x89PNG`, "\x89PNG"},
		{`\xff\xfe`, "\xff\xfe"},
		{`\x7fELF`, "\x7fELF"},
		{`\0`, "\x00"},
		{`\377`, "\xff"},
		{`\101BC`, "ABC"},
		{`a\ b`, "a b"},
		{`a\\b`, `a\b`},
		{`\.`, "."},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := unescapeString(tt.in)
			if err != nil {
				t.Fatalf("unescapeString: %v", err)
			}
			if got != tt.want {
				t.Errorf("unescapeString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	for _, bad := range []string{`abc\`, `\xzz`} {
		if _, err := unescapeString(bad); err == nil {
			t.Errorf("unescapeString(%q) accepted", bad)
		}
	}
}

func TestStringMatch(t *testing.T) {
	tests := []struct {
		desc    string
		typeStr string
		test    string
		data    string
		offset  int
		want    bool
	}{
		{"exact hit", "string", "GIF8", "GIF89a", 0, true},
		{"exact miss", "string", "GIF8", "GIF-9a", 0, false},
		{"mid-buffer", "string", "WAVE", "RIFFxxxxWAVE", 8, true},
		{"runs past end", "string", "WAVEfmt", "RIFFxxxxWAVE", 8, false},
		{"negative offset", "string", "GIF8", "GIF89a", -1, false},
		{"case fold hit", "string/c", "gif8", "GIF89a", 0, true},
		{"case fold miss without flag", "string", "gif8", "GIF89a", 0, false},
		{"compact whitespace", "string/W", "a b", "a    b", 0, true},
		{"compact needs one space", "string/W", "a b", "ab", 0, false},
		{"optional whitespace", "string/w", "a b", "ab", 0, true},
		{"greater than hit", "string", ">\\0", "x", 0, true},
		{"greater than miss", "string", ">x", "x", 0, false},
		{"less than hit", "string", "<b", "a", 0, true},
		{"less than miss", "string", "<a", "b", 0, false},
	}
	m := mustMatcher(t, "string")
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			test, err := m.ParseTest(tt.typeStr, tt.test)
			if err != nil {
				t.Fatalf("ParseTest: %v", err)
			}
			_, ok := m.IsMatch(test, nil, false, "", tt.offset, []byte(tt.data))
			if ok != tt.want {
				t.Errorf("IsMatch = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestPStringMatch(t *testing.T) {
	m := mustMatcher(t, "pstring")
	test, err := m.ParseTest("pstring", "hello")
	if err != nil {
		t.Fatal(err)
	}

	data := append([]byte{5}, []byte("helloXXX")...)
	if _, ok := m.IsMatch(test, nil, false, "", 0, data); !ok {
		t.Error("pstring should match within its declared length")
	}

	// Length byte shorter than the pattern.
	data = append([]byte{3}, []byte("helloXXX")...)
	if _, ok := m.IsMatch(test, nil, false, "", 0, data); ok {
		t.Error("pstring matched beyond its declared length")
	}

	if _, ok := m.IsMatch(test, nil, false, "", 20, data); ok {
		t.Error("pstring matched past the buffer")
	}
}

func TestSearchMatch(t *testing.T) {
	m := mustMatcher(t, "search")

	test, err := m.ParseTest("search/16", "needle")
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := m.IsMatch(test, nil, false, "", 0, []byte("xxxxxneedlexxx")); !ok {
		t.Error("search should find the pattern within range")
	}
	far := append(make([]byte, 30), []byte("needle")...)
	if _, ok := m.IsMatch(test, nil, false, "", 0, far); ok {
		t.Error("search found a pattern beyond its range")
	}
	// The range counts from the rule offset, not from zero.
	if _, ok := m.IsMatch(test, nil, false, "", 20, far); !ok {
		t.Error("search should find the pattern relative to its offset")
	}

	st := test.(*SearchTest)
	if st.MaxOffset != 16 {
		t.Errorf("MaxOffset = %d, want 16", st.MaxOffset)
	}

	// No explicit range gets the default.
	test, err = m.ParseTest("search", "x")
	if err != nil {
		t.Fatal(err)
	}
	if got := test.(*SearchTest).MaxOffset; got != defaultSearchRange {
		t.Errorf("default MaxOffset = %d, want %d", got, defaultSearchRange)
	}
}

func TestRegexMatch(t *testing.T) {
	m := mustMatcher(t, "regex")

	test, err := m.ParseTest("regex", "[0-9]+\\.[0-9]+")
	if err != nil {
		t.Fatal(err)
	}
	v, ok := m.IsMatch(test, nil, false, "", 0, []byte("%PDF-1.4"))
	if !ok {
		t.Fatal("regex should match")
	}
	if v.(string) != "1.4" {
		t.Errorf("matched %q, want %q", v, "1.4")
	}

	if _, ok := m.IsMatch(test, nil, false, "", 0, []byte("no digits")); ok {
		t.Error("regex matched without digits")
	}

	// Case folding via the /c modifier.
	test, err = m.ParseTest("regex/c", "html")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.IsMatch(test, nil, false, "", 0, []byte("<HTML>")); !ok {
		t.Error("regex/c should fold case")
	}

	if _, err := m.ParseTest("regex", "(unclosed"); err == nil {
		t.Error("invalid regex accepted")
	}
}
