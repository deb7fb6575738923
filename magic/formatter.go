package magic

import (
	"fmt"
	"strings"
)

// Formatter renders a matched value into display text. A magic message is a
// template with at most one substitution point ("ELF, version %d"); text
// around it is emitted as-is. "%%" produces a literal percent sign.
type Formatter struct {
	prefix string
	verb   string
	suffix string
}

// printf length modifiers that Go's fmt does not use.
const lengthModifiers = "hlLqjzt"

// NewFormatter parses a magic message template.
func NewFormatter(format string) *Formatter {
	f := &Formatter{}
	var prefix strings.Builder

	i := 0
	for i < len(format) {
		c := format[i]
		if c != '%' {
			prefix.WriteByte(c)
			i++
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			prefix.WriteByte('%')
			i += 2
			continue
		}

		// First real conversion; translate it to a Go verb.
		start := i
		i++
		for i < len(format) && strings.ContainsRune("-+ #0123456789.", rune(format[i])) {
			i++
		}
		for i < len(format) && strings.ContainsRune(lengthModifiers, rune(format[i])) {
			i++
		}
		if i >= len(format) {
			// Trailing bare percent, keep it literal.
			prefix.WriteString(format[start:])
			break
		}

		verb := format[i]
		spec := format[start:i]
		spec = removeLengthModifiers(spec)
		switch verb {
		case 'i', 'u':
			// fmt has no %i/%u; both print as decimal.
			verb = 'd'
		}
		f.verb = spec + string(verb)
		f.suffix = format[i+1:]
		break
	}

	f.prefix = prefix.String()
	return f
}

// removeLengthModifiers strips C length modifiers ("%lld" -> "%d") from a
// partial conversion spec.
func removeLengthModifiers(spec string) string {
	var sb strings.Builder
	for i := 0; i < len(spec); i++ {
		if strings.ContainsRune(lengthModifiers, rune(spec[i])) {
			continue
		}
		sb.WriteByte(spec[i])
	}
	return sb.String()
}

// Format appends the rendered template to sb, substituting value at the
// template's conversion point if it has one.
func (f *Formatter) Format(sb *strings.Builder, value interface{}) {
	sb.WriteString(f.prefix)
	if f.verb != "" {
		fmt.Fprintf(sb, f.verb, value)
		sb.WriteString(f.suffix)
	}
}

// String returns the original shape of the template for diagnostics.
func (f *Formatter) String() string {
	return f.prefix + f.verb + f.suffix
}
