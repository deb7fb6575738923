package magic

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gobeaver/magickit/endian"
)

// numericKind selects how a matched number is rendered.
type numericKind int

const (
	kindPlain numericKind = iota
	kindDateUTC
	kindDateLocal
)

// Unix timestamps render in ctime form, like file(1).
const dateRenderLayout = "Mon Jan  2 15:04:05 2006"

// NumericTest is the parsed test value of a fixed-width integer rule: a
// comparison operator and the number to compare against.
type NumericTest struct {
	// Operator is one of '=' '!' '<' '>' '&' '^' '~'.
	Operator byte

	// Value holds the test number as raw two's-complement bits.
	Value uint64
}

func (t *NumericTest) String() string {
	return fmt.Sprintf("%c%d", t.Operator, t.Value)
}

// numericMatcher handles all fixed-width integer kinds: plain numbers,
// dates, and the ID3 synchsafe lengths. Width, byte order and rendering are
// fixed per registered type name.
type numericMatcher struct {
	size int
	conv endian.Converter
	kind numericKind
	id3  bool
}

func newNumericMatcher(size int, order endian.Type, kind numericKind) *numericMatcher {
	return &numericMatcher{size: size, conv: endian.ConverterFor(order), kind: kind}
}

func newID3Matcher(size int, order endian.Type) *numericMatcher {
	return &numericMatcher{size: size, conv: endian.ConverterFor(order), id3: true}
}

// sizeMask covers the bits of one extracted value.
func (m *numericMatcher) sizeMask() uint64 {
	return ^uint64(0) >> (64 - 8*m.size)
}

// signExtend interprets the low size bytes of bits as a signed number.
func (m *numericMatcher) signExtend(bits uint64) int64 {
	shift := 64 - 8*m.size
	return int64(bits<<shift) >> shift
}

func (m *numericMatcher) ParseTest(typeStr, test string) (interface{}, error) {
	op := byte('=')
	if len(test) > 0 && strings.IndexByte("=!<>&^~", test[0]) >= 0 {
		op = test[0]
		test = strings.TrimSpace(test[1:])
	}
	if test == "" {
		return nil, fmt.Errorf("empty numeric test value")
	}

	var bits uint64
	if u, err := strconv.ParseUint(test, 0, 64); err == nil {
		bits = u
	} else if s, err := strconv.ParseInt(test, 0, 64); err == nil {
		bits = uint64(s)
	} else {
		return nil, fmt.Errorf("invalid numeric test value %q", test)
	}
	return &NumericTest{Operator: op, Value: bits}, nil
}

// Extract decodes size bytes at offset, sign-extended to an int64. The
// signed/unsigned distinction only matters for ordering comparisons and is
// applied in IsMatch.
func (m *numericMatcher) Extract(offset int, data []byte) (interface{}, bool) {
	var raw uint64
	var ok bool
	if m.id3 {
		raw, ok = m.conv.ConvertID3(offset, data, m.size)
	} else {
		raw, ok = m.conv.ConvertNumber(offset, data, m.size)
	}
	if !ok {
		return nil, false
	}
	return m.signExtend(raw), true
}

func (m *numericMatcher) IsMatch(test interface{}, andValue *uint64, unsigned bool, value interface{}, offset int, data []byte) (interface{}, bool) {
	nt, ok := test.(*NumericTest)
	if !ok {
		return nil, false
	}
	extracted, ok := value.(int64)
	if !ok {
		return nil, false
	}

	mask := m.sizeMask()
	bits := uint64(extracted) & mask
	if andValue != nil {
		bits &= *andValue
	}
	want := nt.Value & mask

	var matched bool
	switch nt.Operator {
	case '=':
		matched = bits == want
	case '!':
		matched = bits != want
	case '<':
		if unsigned {
			matched = bits < want
		} else {
			matched = m.signExtend(bits) < m.signExtend(want)
		}
	case '>':
		if unsigned {
			matched = bits > want
		} else {
			matched = m.signExtend(bits) > m.signExtend(want)
		}
	case '&':
		matched = bits&want == want
	case '^':
		matched = bits&want == 0
	case '~':
		matched = (^bits)&mask == want
	}
	if !matched {
		return nil, false
	}
	return m.signExtend(bits), true
}

func (m *numericMatcher) Render(sb *strings.Builder, value interface{}, f *Formatter) {
	v, _ := value.(int64)
	switch m.kind {
	case kindDateUTC:
		f.Format(sb, time.Unix(v, 0).UTC().Format(dateRenderLayout))
	case kindDateLocal:
		f.Format(sb, time.Unix(v, 0).Format(dateRenderLayout))
	default:
		f.Format(sb, v)
	}
}
