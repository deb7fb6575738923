package magic

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errEntryFrozen   = errors.New("entry tree is frozen")
	errEntryAttached = errors.New("entry already attached to a parent")
)

// Entry is one node of a magic rule tree. Level-0 entries are independent
// top-level candidates; deeper entries refine the classification of their
// parent. An Entry is built by the rule parser and frozen before matching;
// after that it is immutable and safe for concurrent use against independent
// buffers.
type Entry struct {
	level             int
	name              string
	hasName           bool
	offset            int
	addOffset         bool
	offsetInfo        *offsetInfo
	matcher           Matcher
	andValue          *uint64
	unsignedType      bool
	testValue         interface{}
	formatSpacePrefix bool
	formatter         *Formatter
	strength          int
	mimeType          string

	// childList grows during parsing; freeze moves it into children and
	// drops it, making the tree append-proof before the first match.
	childList []*Entry
	children  []*Entry
	frozen    bool
	attached  bool
}

// Result is the classification produced by matching an entry tree against a
// buffer.
type Result struct {
	// Name is the short label of the matched content type.
	Name string

	// MimeType is the MIME type declared by the matching rules, empty when
	// none of them declared one.
	MimeType string

	// Message is the accumulated human-readable description.
	Message string

	// Partial is true when the rule set could have produced a more specific
	// answer but no leaf rule confirmed one.
	Partial bool
}

func (r *Result) String() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Name
}

// Level returns the depth of the entry in its rule hierarchy. Level-0
// entries start the matching process.
func (e *Entry) Level() int {
	return e.level
}

// Strength returns the priority weight of the entry. It is not consulted
// while matching; callers use it to order top-level candidates.
func (e *Entry) Strength() int {
	return e.strength
}

// MimeType returns the MIME type declared for the entry, if any.
func (e *Entry) MimeType() string {
	return e.mimeType
}

// String describes the entry for diagnostics.
func (e *Entry) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "level %d", e.level)
	if e.hasName {
		fmt.Fprintf(&sb, ",name '%s'", e.name)
	}
	if e.mimeType != "" {
		fmt.Fprintf(&sb, ",mime '%s'", e.mimeType)
	}
	if e.testValue != nil {
		fmt.Fprintf(&sb, ",test '%v'", e.testValue)
	}
	if e.formatter != nil {
		fmt.Fprintf(&sb, ",format '%s'", e.formatter)
	}
	return sb.String()
}

// addChild appends a child during parsing. It fails once the tree has been
// frozen, and refuses entries that are already part of a tree so the
// parent/child structure stays acyclic.
func (e *Entry) addChild(child *Entry) error {
	if e.frozen {
		return errEntryFrozen
	}
	if child == e || child.attached {
		return errEntryAttached
	}
	child.attached = true
	e.childList = append(e.childList, child)
	return nil
}

// freeze converts the growable child list into the fixed slice used while
// matching and recurses into the children. Called once per tree when parsing
// completes; no children can be added afterwards.
func (e *Entry) freeze() {
	if e.frozen {
		return
	}
	e.frozen = true
	if len(e.childList) > 0 {
		e.children = make([]*Entry, len(e.childList))
		copy(e.children, e.childList)
		e.childList = nil
		for _, child := range e.children {
			child.freeze()
		}
	}
}

// contentData accumulates the classification for one top-level Match call.
// It is created lazily on the first matching node and never escapes the call.
type contentData struct {
	name     string
	hasName  bool
	mimeType string
	partial  bool
	sb       strings.Builder
}

// Match evaluates the entry tree against the leading bytes of some content.
// It returns nil when the tree produces no classification; that is the
// normal "try the next candidate" outcome, not an error.
func (e *Entry) Match(data []byte) *Result {
	cd := e.match(data, 0, nil)
	if cd == nil || !cd.hasName {
		return nil
	}
	return &Result{
		Name:     cd.name,
		MimeType: cd.mimeType,
		Message:  cd.sb.String(),
		Partial:  cd.partial,
	}
}

// match is the recursive core. parentOffset is the offset at which the
// parent entry matched; cd is the shared accumulator, nil until the first
// node matches. A node that does not match returns cd untouched.
func (e *Entry) match(data []byte, parentOffset int, cd *contentData) *contentData {
	offset := e.offset
	if e.offsetInfo != nil {
		resolved, ok := e.offsetInfo.resolve(data)
		if !ok {
			return cd
		}
		offset = resolved
	} else if e.addOffset {
		offset = parentOffset + e.offset
	}

	val, ok := e.matcher.Extract(offset, data)
	if !ok {
		return cd
	}
	if e.testValue != nil {
		val, ok = e.matcher.IsMatch(e.testValue, e.andValue, e.unsignedType, val, offset, data)
		if !ok {
			return cd
		}
	}

	if cd == nil {
		// A deeper rule may still sharpen the answer, so start pessimistic
		// and let a matching leaf clear the flag.
		cd = &contentData{partial: true}
	}

	if e.formatter != nil {
		if e.formatSpacePrefix && cd.sb.Len() > 0 {
			cd.sb.WriteByte(' ')
		}
		e.matcher.Render(&cd.sb, val, e.formatter)
	}

	if len(e.children) == 0 {
		cd.partial = false
	} else {
		for _, child := range e.children {
			// Every child gets a try; siblings matching at different
			// offsets each contribute their own fragment.
			child.match(data, offset, cd)
		}
	}

	// Children ran first, so the most specific rules have already claimed
	// the name and MIME type if they had one.
	if e.hasName && !cd.hasName {
		cd.name = e.name
		cd.hasName = true
	}
	if e.mimeType != "" && cd.mimeType == "" {
		cd.mimeType = e.mimeType
	}
	return cd
}
