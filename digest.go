package magickit

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// RuleDigest returns a fast digest of magic rule source bytes. Detectors
// use it as the cache key for compiled rule sets, so identical rule text is
// compiled once no matter how many times it is loaded.
func RuleDigest(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}
