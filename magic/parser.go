package magic

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseError reports a rule line that could not be compiled. Parsing is
// tolerant: bad lines are reported through the callback and skipped, the
// rest of the file still loads.
type ParseError struct {
	// Line is the 1-based line number in the rule source.
	Line int

	// Text is the offending line.
	Text string

	// Err is the reason the line was rejected.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("magic line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrorCallback receives rule lines that failed to parse. A nil callback
// discards them.
type ErrorCallback func(err *ParseError)

// ParseBytes compiles magic rule text into frozen level-0 entry trees.
func ParseBytes(data []byte, cb ErrorCallback) []*Entry {
	entries, _ := ParseReader(bytes.NewReader(data), cb)
	return entries
}

// ParseReader compiles magic rule text from a reader into frozen level-0
// entry trees. The returned error reports read failures only; malformed
// lines go to the callback.
func ParseReader(r io.Reader, cb ErrorCallback) ([]*Entry, error) {
	p := &parser{cb: cb}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		p.parseLine(lineNum, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read magic rules: %w", err)
	}

	for _, root := range p.roots {
		root.freeze()
	}
	return p.roots, nil
}

// parser accumulates entry trees while walking a rule file line by line.
type parser struct {
	cb    ErrorCallback
	roots []*Entry

	// lastByLevel[n] is the most recent entry at level n, the attachment
	// point for a following level n+1 line.
	lastByLevel []*Entry

	// prev receives "!:mime" and "!:strength" extension lines.
	prev *Entry
}

func (p *parser) fail(line int, text string, err error) {
	if p.cb != nil {
		p.cb(&ParseError{Line: line, Text: text, Err: err})
	}
}

func (p *parser) parseLine(lineNum int, line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}

	if strings.HasPrefix(trimmed, "!:") {
		p.parseExtension(lineNum, trimmed)
		return
	}

	level := 0
	for level < len(line) && line[level] == '>' {
		level++
	}

	fields, message := splitRuleLine(line[level:])
	if len(fields) < 3 {
		p.fail(lineNum, line, fmt.Errorf("expected offset, type and test fields"))
		return
	}

	entry := &Entry{level: level, strength: 1}

	if err := p.parseOffset(entry, fields[0]); err != nil {
		p.fail(lineNum, line, err)
		return
	}
	if err := p.parseType(entry, fields[1]); err != nil {
		p.fail(lineNum, line, err)
		return
	}
	if err := p.parseTest(entry, fields[1], fields[2]); err != nil {
		p.fail(lineNum, line, err)
		return
	}
	p.parseMessage(entry, message)

	if level == 0 {
		p.roots = append(p.roots, entry)
	} else {
		if len(p.lastByLevel) < level || p.lastByLevel[level-1] == nil {
			p.fail(lineNum, line, fmt.Errorf("level %d rule has no parent", level))
			return
		}
		if err := p.lastByLevel[level-1].addChild(entry); err != nil {
			p.fail(lineNum, line, err)
			return
		}
	}

	p.lastByLevel = append(p.lastByLevel[:level], entry)
	p.prev = entry
}

// parseOffset fills the static, parent-relative or dynamic offset of an
// entry from the first rule field.
func (p *parser) parseOffset(entry *Entry, field string) error {
	if strings.HasPrefix(field, "&") {
		entry.addOffset = true
		field = field[1:]
	}
	if strings.HasPrefix(field, "(") {
		if entry.addOffset {
			return fmt.Errorf("indirect offset cannot be parent-relative: %q", field)
		}
		oi, err := parseOffsetInfo(field)
		if err != nil {
			return err
		}
		entry.offsetInfo = oi
		return nil
	}
	offset, err := strconv.ParseInt(field, 0, 32)
	if err != nil {
		return fmt.Errorf("invalid offset %q: %w", field, err)
	}
	entry.offset = int(offset)
	return nil
}

// parseType resolves the type field: optional "u" unsigned prefix, the base
// kind (with any "/" modifiers handled by the kind itself), and an optional
// "&mask" suffix.
func (p *parser) parseType(entry *Entry, field string) error {
	typeStr := field
	if idx := strings.IndexByte(typeStr, '&'); idx >= 0 {
		mask, err := strconv.ParseUint(typeStr[idx+1:], 0, 64)
		if err != nil {
			return fmt.Errorf("invalid mask in type %q: %w", field, err)
		}
		entry.andValue = &mask
		typeStr = typeStr[:idx]
	}

	base := baseTypeName(typeStr)
	if m, ok := MatcherForType(base); ok {
		entry.matcher = m
		return nil
	}
	if strings.HasPrefix(base, "u") {
		if m, ok := MatcherForType(base[1:]); ok {
			entry.unsignedType = true
			entry.matcher = m
			return nil
		}
	}
	return fmt.Errorf("unknown magic type %q", field)
}

// parseTest converts the test field. A bare "x" means the entry always
// matches and only contributes formatting.
func (p *parser) parseTest(entry *Entry, typeField, field string) error {
	if field == "x" {
		return nil
	}
	typeStr := typeField
	if idx := strings.IndexByte(typeStr, '&'); idx >= 0 {
		typeStr = typeStr[:idx]
	}
	if strings.HasPrefix(baseTypeName(typeStr), "u") {
		typeStr = typeStr[1:]
	}
	test, err := entry.matcher.ParseTest(typeStr, field)
	if err != nil {
		return err
	}
	entry.testValue = test
	return nil
}

// parseMessage handles the free-text remainder: the "\b" no-space marker,
// the display template, and the entry name derived from the first word. A
// "\b" continuation extends the parent's text, so it contributes no name of
// its own; a fresh message may rebrand the aggregate classification, which
// is how a more specific child claims the name.
func (p *parser) parseMessage(entry *Entry, message string) {
	entry.formatSpacePrefix = true
	continuation := false
	if strings.HasPrefix(message, `\b`) {
		entry.formatSpacePrefix = false
		continuation = true
		message = message[2:]
	}
	if message == "" {
		return
	}
	entry.formatter = NewFormatter(message)
	if continuation {
		return
	}

	words := strings.Fields(message)
	if len(words) == 0 {
		return
	}
	name := strings.TrimRight(words[0], ",:;")
	if name == "" || strings.ContainsRune(name, '%') {
		return
	}
	entry.name = name
	entry.hasName = true
}

// parseExtension applies "!:" lines to the preceding entry.
func (p *parser) parseExtension(lineNum int, line string) {
	if p.prev == nil {
		p.fail(lineNum, line, fmt.Errorf("extension line without a preceding rule"))
		return
	}
	fields := strings.Fields(line[2:])
	if len(fields) == 0 {
		p.fail(lineNum, line, fmt.Errorf("empty extension line"))
		return
	}

	switch fields[0] {
	case "mime":
		if len(fields) < 2 {
			p.fail(lineNum, line, fmt.Errorf("mime extension needs a value"))
			return
		}
		p.prev.mimeType = fields[1]
	case "strength":
		if err := applyStrength(p.prev, fields[1:]); err != nil {
			p.fail(lineNum, line, err)
		}
	case "apple", "ext", "optional":
		// Accepted for compatibility, nothing to do with them here.
	default:
		p.fail(lineNum, line, fmt.Errorf("unknown extension %q", fields[0]))
	}
}

// applyStrength adjusts an entry's strength: "+N", "-N", "*N", "/N" modify
// the default, a bare number replaces it.
func applyStrength(entry *Entry, fields []string) error {
	if len(fields) == 0 {
		return fmt.Errorf("strength extension needs a value")
	}

	op := byte(0)
	text := fields[0]
	if len(text) == 1 && strings.IndexByte("+-*/", text[0]) >= 0 {
		if len(fields) < 2 {
			return fmt.Errorf("strength operator %q needs a value", text)
		}
		op = text[0]
		text = fields[1]
	} else if strings.IndexByte("+*/", text[0]) >= 0 {
		op = text[0]
		text = text[1:]
	}

	val, err := strconv.ParseInt(text, 0, 32)
	if err != nil {
		return fmt.Errorf("invalid strength value %q: %w", text, err)
	}

	switch op {
	case '+':
		entry.strength += int(val)
	case '-':
		entry.strength -= int(val)
	case '*':
		entry.strength *= int(val)
	case '/':
		if val == 0 {
			return fmt.Errorf("strength division by zero")
		}
		entry.strength /= int(val)
	default:
		entry.strength = int(val)
	}
	return nil
}

// baseTypeName strips "/" modifiers from a type field.
func baseTypeName(typeStr string) string {
	if idx := strings.IndexByte(typeStr, '/'); idx >= 0 {
		return typeStr[:idx]
	}
	return typeStr
}

// splitRuleLine splits a rule line into its offset, type and test fields
// plus the message remainder. Whitespace inside the test field can be
// escaped with a backslash, so a plain strings.Fields will not do.
func splitRuleLine(line string) ([]string, string) {
	var fields []string
	i := 0
	for len(fields) < 3 {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= len(line) {
			return fields, ""
		}
		start := i
		for i < len(line) && line[i] != ' ' && line[i] != '\t' {
			if line[i] == '\\' && i+1 < len(line) {
				i++
			}
			i++
		}
		fields = append(fields, line[start:i])
	}
	message := strings.TrimLeft(line[i:], " \t")
	return fields, message
}
