package magic

import "strings"

// defaultMatcher backs the "default" type: a rule that always matches and
// exists only to attach a message or MIME type when its siblings did not
// refine the classification.
type defaultMatcher struct{}

func (m *defaultMatcher) ParseTest(typeStr, test string) (interface{}, error) {
	// The test value is conventionally "x" and carries no information.
	return test, nil
}

func (m *defaultMatcher) Extract(offset int, data []byte) (interface{}, bool) {
	return "", true
}

func (m *defaultMatcher) IsMatch(test interface{}, andValue *uint64, unsigned bool, value interface{}, offset int, data []byte) (interface{}, bool) {
	return value, true
}

func (m *defaultMatcher) Render(sb *strings.Builder, value interface{}, f *Formatter) {
	f.Format(sb, "")
}
