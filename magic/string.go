package magic

import (
	"fmt"
	"strings"
)

// StringTest is the parsed test value of a string rule: a comparison
// operator, the pattern bytes (escapes already decoded), and the matching
// flags taken from the type field ("string/c" and friends).
type StringTest struct {
	// Operator is '=', '<' or '>'.
	Operator byte

	// Pattern is the decoded byte pattern.
	Pattern string

	// CompactWhitespace makes one pattern space match a run of spaces.
	CompactWhitespace bool

	// OptionalWhitespace makes a pattern space match zero or more spaces.
	OptionalWhitespace bool

	// CaseInsensitive folds ASCII case on both sides before comparing.
	CaseInsensitive bool
}

func (t *StringTest) String() string {
	return fmt.Sprintf("%c%s", t.Operator, t.Pattern)
}

// parseStringFlags applies the "/..." modifiers from the type field.
func (t *StringTest) parseStringFlags(typeStr string) {
	idx := strings.IndexByte(typeStr, '/')
	if idx < 0 {
		return
	}
	for _, c := range typeStr[idx+1:] {
		switch c {
		case 'c':
			t.CaseInsensitive = true
		case 'B', 'W':
			t.CompactWhitespace = true
		case 'b', 'w':
			t.OptionalWhitespace = true
		}
	}
}

// parseStringTest builds a StringTest from the type and test fields.
func parseStringTest(typeStr, test string) (*StringTest, error) {
	st := &StringTest{Operator: '='}
	if len(test) > 0 && (test[0] == '=' || test[0] == '<' || test[0] == '>') {
		st.Operator = test[0]
		test = test[1:]
	}
	pattern, err := unescapeString(test)
	if err != nil {
		return nil, err
	}
	if pattern == "" {
		return nil, fmt.Errorf("empty string test value")
	}
	st.Pattern = pattern
	st.parseStringFlags(typeStr)
	return st, nil
}

func foldASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// match compares the pattern against data starting at offset, honoring the
// whitespace and case flags. It returns the consumed bytes and the index
// past them. For '<' and '>' the comparison is lexicographic and strict.
func (t *StringTest) match(data []byte, offset int) (string, int, bool) {
	if offset < 0 {
		return "", 0, false
	}
	idx := offset
	var out []byte
	for i := 0; i < len(t.Pattern); i++ {
		pc := t.Pattern[i]

		if pc == ' ' && (t.CompactWhitespace || t.OptionalWhitespace) {
			n := 0
			for idx < len(data) && data[idx] == ' ' {
				out = append(out, ' ')
				idx++
				n++
			}
			if n == 0 && !t.OptionalWhitespace {
				return "", 0, false
			}
			continue
		}

		if idx >= len(data) {
			return "", 0, false
		}
		c := data[idx]
		idx++
		out = append(out, c)

		cc, pp := c, pc
		if t.CaseInsensitive {
			cc, pp = foldASCII(c), foldASCII(pc)
		}
		switch t.Operator {
		case '>':
			if cc > pp {
				return string(out), idx, true
			}
			if cc < pp {
				return "", 0, false
			}
		case '<':
			if cc < pp {
				return string(out), idx, true
			}
			if cc > pp {
				return "", 0, false
			}
		default:
			if cc != pp {
				return "", 0, false
			}
		}
	}

	// The pattern was fully consumed with every byte equal; for the strict
	// orderings that is a miss.
	if t.Operator == '>' || t.Operator == '<' {
		return "", 0, false
	}
	return string(out), idx, true
}

// stringMatcher tests a byte pattern in place. Extraction cannot fail on
// its own; the work happens against the pattern in IsMatch.
type stringMatcher struct{}

func (m *stringMatcher) ParseTest(typeStr, test string) (interface{}, error) {
	return parseStringTest(typeStr, test)
}

func (m *stringMatcher) Extract(offset int, data []byte) (interface{}, bool) {
	return "", true
}

func (m *stringMatcher) IsMatch(test interface{}, andValue *uint64, unsigned bool, value interface{}, offset int, data []byte) (interface{}, bool) {
	st, ok := test.(*StringTest)
	if !ok {
		return nil, false
	}
	s, _, ok := st.match(data, offset)
	if !ok {
		return nil, false
	}
	return s, true
}

func (m *stringMatcher) Render(sb *strings.Builder, value interface{}, f *Formatter) {
	s, _ := value.(string)
	f.Format(sb, s)
}

// pstringMatcher handles Pascal-style strings: a length byte followed by
// that many bytes of text. The pattern is compared within the declared
// length only.
type pstringMatcher struct{}

func (m *pstringMatcher) ParseTest(typeStr, test string) (interface{}, error) {
	return parseStringTest(typeStr, test)
}

func (m *pstringMatcher) Extract(offset int, data []byte) (interface{}, bool) {
	if offset < 0 || offset >= len(data) {
		return nil, false
	}
	return "", true
}

func (m *pstringMatcher) IsMatch(test interface{}, andValue *uint64, unsigned bool, value interface{}, offset int, data []byte) (interface{}, bool) {
	st, ok := test.(*StringTest)
	if !ok {
		return nil, false
	}
	if offset < 0 || offset >= len(data) {
		return nil, false
	}
	length := int(data[offset])
	end := offset + 1 + length
	if end > len(data) {
		end = len(data)
	}
	content := data[offset+1 : end]
	s, _, ok := st.match(content, 0)
	if !ok {
		return nil, false
	}
	return s, true
}

func (m *pstringMatcher) Render(sb *strings.Builder, value interface{}, f *Formatter) {
	s, _ := value.(string)
	f.Format(sb, s)
}

// unescapeString decodes the C-style escapes allowed in magic test strings:
// \n \r \t \a \b \f \v \\ \' \" \ (space), octal (\0 to \377) and hex
// (\xHH) forms. An unknown escape keeps the escaped character.
func unescapeString(s string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("trailing backslash in %q", s)
		}
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'a':
			sb.WriteByte(0x07)
		case 'b':
			sb.WriteByte(0x08)
		case 'f':
			sb.WriteByte(0x0C)
		case 'v':
			sb.WriteByte(0x0B)
		case 'x':
			val, n := parseHexByte(s[i+1:])
			if n == 0 {
				return "", fmt.Errorf("invalid hex escape in %q", s)
			}
			sb.WriteByte(val)
			i += n
		case '0', '1', '2', '3', '4', '5', '6', '7':
			val := int(s[i] - '0')
			n := 1
			for n < 3 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7' && val*8+int(s[i+1]-'0') <= 0xFF {
				i++
				val = val*8 + int(s[i]-'0')
				n++
			}
			sb.WriteByte(byte(val))
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String(), nil
}

// parseHexByte reads up to two hex digits, returning the value and how many
// characters were consumed.
func parseHexByte(s string) (byte, int) {
	hexVal := func(c byte) (int, bool) {
		switch {
		case c >= '0' && c <= '9':
			return int(c - '0'), true
		case c >= 'a' && c <= 'f':
			return int(c-'a') + 10, true
		case c >= 'A' && c <= 'F':
			return int(c-'A') + 10, true
		}
		return 0, false
	}

	if len(s) == 0 {
		return 0, 0
	}
	v, ok := hexVal(s[0])
	if !ok {
		return 0, 0
	}
	if len(s) > 1 {
		if v2, ok := hexVal(s[1]); ok {
			return byte(v*16 + v2), 2
		}
	}
	return byte(v), 1
}
