package magic

import (
	"strings"

	"github.com/gobeaver/magickit/endian"
)

// Matcher implements the extraction, comparison and rendering of one kind of
// magic value. The match tree depends only on this interface; the concrete
// kinds live in this package and are looked up by type name.
//
// Implementations are stateless and shared; per-rule data is carried in the
// parsed test value.
type Matcher interface {
	// ParseTest converts a rule's textual test value into the kind's
	// internal form. typeStr is the full type field (it may carry
	// modifiers such as "search/100" or "string/c").
	ParseTest(typeStr, test string) (interface{}, error)

	// Extract reads a candidate value at offset. Returns false when the
	// buffer cannot supply a value of this kind there; that is an ordinary
	// non-match, never an error.
	Extract(offset int, data []byte) (interface{}, bool)

	// IsMatch applies the optional bitmask, signedness and comparison.
	// Returns the matched value and true on a match.
	IsMatch(test interface{}, andValue *uint64, unsigned bool, value interface{}, offset int, data []byte) (interface{}, bool)

	// Render appends the display form of a matched value through the
	// formatter. It does not fail for well-formed templates.
	Render(sb *strings.Builder, value interface{}, f *Formatter)
}

// matchers maps magic(5) type names to their implementations. The plain
// names use platform byte order; the be/le/me prefixes select one
// explicitly. Unsigned variants are handled by the parser stripping the "u"
// prefix, the kinds themselves are shared.
var matchers = map[string]Matcher{
	"byte": newNumericMatcher(1, endian.Native, kindPlain),

	"short":   newNumericMatcher(2, endian.Native, kindPlain),
	"beshort": newNumericMatcher(2, endian.Big, kindPlain),
	"leshort": newNumericMatcher(2, endian.Little, kindPlain),

	"long":   newNumericMatcher(4, endian.Native, kindPlain),
	"belong": newNumericMatcher(4, endian.Big, kindPlain),
	"lelong": newNumericMatcher(4, endian.Little, kindPlain),
	"melong": newNumericMatcher(4, endian.Middle, kindPlain),

	"quad":   newNumericMatcher(8, endian.Native, kindPlain),
	"bequad": newNumericMatcher(8, endian.Big, kindPlain),
	"lequad": newNumericMatcher(8, endian.Little, kindPlain),

	"date":   newNumericMatcher(4, endian.Native, kindDateUTC),
	"bedate": newNumericMatcher(4, endian.Big, kindDateUTC),
	"ledate": newNumericMatcher(4, endian.Little, kindDateUTC),
	"medate": newNumericMatcher(4, endian.Middle, kindDateUTC),

	"ldate":   newNumericMatcher(4, endian.Native, kindDateLocal),
	"beldate": newNumericMatcher(4, endian.Big, kindDateLocal),
	"leldate": newNumericMatcher(4, endian.Little, kindDateLocal),
	"meldate": newNumericMatcher(4, endian.Middle, kindDateLocal),

	"qdate":   newNumericMatcher(8, endian.Native, kindDateUTC),
	"beqdate": newNumericMatcher(8, endian.Big, kindDateUTC),
	"leqdate": newNumericMatcher(8, endian.Little, kindDateUTC),

	"qldate":   newNumericMatcher(8, endian.Native, kindDateLocal),
	"beqldate": newNumericMatcher(8, endian.Big, kindDateLocal),
	"leqldate": newNumericMatcher(8, endian.Little, kindDateLocal),

	"beid3": newID3Matcher(4, endian.Big),
	"leid3": newID3Matcher(4, endian.Little),

	"string":  &stringMatcher{},
	"pstring": &pstringMatcher{},
	"search":  &searchMatcher{},
	"regex":   &regexMatcher{},
	"default": &defaultMatcher{},
}

// MatcherForType returns the matcher registered for a base type name.
func MatcherForType(name string) (Matcher, bool) {
	m, ok := matchers[name]
	return m, ok
}
