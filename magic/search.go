package magic

import (
	"fmt"
	"strconv"
	"strings"
)

// defaultSearchRange bounds how many start positions a search rule probes
// when the type carries no explicit "/N" range.
const defaultSearchRange = 8192

// SearchTest is the parsed test value of a "search/N" rule: a string test
// tried at successive offsets within a bounded window.
type SearchTest struct {
	StringTest

	// MaxOffset is the number of start positions probed past the rule's
	// offset.
	MaxOffset int
}

// searchMatcher scans forward from the rule offset for a byte pattern.
type searchMatcher struct{}

func (m *searchMatcher) ParseTest(typeStr, test string) (interface{}, error) {
	st, err := parseStringTest(typeStr, test)
	if err != nil {
		return nil, err
	}

	srch := &SearchTest{StringTest: *st, MaxOffset: defaultSearchRange}
	for _, mod := range strings.Split(typeStr, "/")[1:] {
		if mod == "" {
			continue
		}
		if mod[0] >= '0' && mod[0] <= '9' {
			n, err := strconv.ParseInt(mod, 0, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid search range %q: %w", mod, err)
			}
			srch.MaxOffset = int(n)
		}
	}
	return srch, nil
}

func (m *searchMatcher) Extract(offset int, data []byte) (interface{}, bool) {
	return "", true
}

func (m *searchMatcher) IsMatch(test interface{}, andValue *uint64, unsigned bool, value interface{}, offset int, data []byte) (interface{}, bool) {
	st, ok := test.(*SearchTest)
	if !ok {
		return nil, false
	}
	if offset < 0 {
		return nil, false
	}
	last := offset + st.MaxOffset
	if last > len(data) {
		last = len(data)
	}
	for start := offset; start <= last; start++ {
		if s, _, ok := st.StringTest.match(data, start); ok {
			return s, true
		}
	}
	return nil, false
}

func (m *searchMatcher) Render(sb *strings.Builder, value interface{}, f *Formatter) {
	s, _ := value.(string)
	f.Format(sb, s)
}
