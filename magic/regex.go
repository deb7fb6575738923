package magic

import (
	"fmt"
	"regexp"
	"strings"
)

// RegexTest is the parsed test value of a "regex" rule.
type RegexTest struct {
	re *regexp.Regexp
}

func (t *RegexTest) String() string {
	return t.re.String()
}

// regexMatcher applies a regular expression to the buffer from the rule
// offset onward. The matched value is the matched text.
type regexMatcher struct{}

func (m *regexMatcher) ParseTest(typeStr, test string) (interface{}, error) {
	pattern, err := unescapeString(test)
	if err != nil {
		return nil, err
	}
	if strings.Contains(typeStr, "/c") {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile("(?m)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex test %q: %w", test, err)
	}
	return &RegexTest{re: re}, nil
}

func (m *regexMatcher) Extract(offset int, data []byte) (interface{}, bool) {
	return "", true
}

func (m *regexMatcher) IsMatch(test interface{}, andValue *uint64, unsigned bool, value interface{}, offset int, data []byte) (interface{}, bool) {
	rt, ok := test.(*RegexTest)
	if !ok {
		return nil, false
	}
	if offset < 0 || offset > len(data) {
		return nil, false
	}
	found := rt.re.Find(data[offset:])
	if found == nil {
		return nil, false
	}
	return string(found), true
}

func (m *regexMatcher) Render(sb *strings.Builder, value interface{}, f *Formatter) {
	s, _ := value.(string)
	f.Format(sb, s)
}
