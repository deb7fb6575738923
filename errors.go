package magickit

import "errors"

// Common detector errors
var (
	ErrNoRules      = errors.New("no magic rules loaded")
	ErrNoRuleFiles  = errors.New("no magic rule files matched")
	ErrNotWatchable = errors.New("detector has no file-backed rule source")
)

// IsNoRules reports whether an error indicates an empty or missing rule set.
func IsNoRules(err error) bool {
	return errors.Is(err, ErrNoRules) || errors.Is(err, ErrNoRuleFiles)
}

// IsNotWatchable reports whether an error indicates a detector whose rules
// did not come from the filesystem and therefore cannot be watched.
func IsNotWatchable(err error) bool {
	return errors.Is(err, ErrNotWatchable)
}
