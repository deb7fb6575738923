package magickit

import (
	"github.com/gobeaver/magickit/magic"
)

// ContentInfo describes classified content.
type ContentInfo struct {
	// Name is the short label of the content type, e.g. "PNG".
	Name string

	// MimeType is the detected MIME type, empty when the matching rules
	// declared none.
	MimeType string

	// Message is the full human-readable description accumulated from the
	// matching rules, e.g. "PNG image data, 8-bit/color RGBA".
	Message string

	// Partial is true when the rules recognized the content but a more
	// specific sub-classification existed and did not confirm.
	Partial bool
}

// String returns the description, falling back to the name when the
// matching rules produced no message text.
func (ci *ContentInfo) String() string {
	if ci.Message != "" {
		return ci.Message
	}
	return ci.Name
}

// fromResult converts the rule engine's match result.
func fromResult(r *magic.Result) *ContentInfo {
	if r == nil {
		return nil
	}
	return &ContentInfo{
		Name:     r.Name,
		MimeType: r.MimeType,
		Message:  r.Message,
		Partial:  r.Partial,
	}
}
