package magic

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/gobeaver/magickit/endian"
)

// offsetInfo describes an offset computed from the buffer itself: a pointer
// value read at a fixed position, decoded with a declared width and byte
// order, plus a constant addend.
type offsetInfo struct {
	offset    int
	converter endian.Converter
	id3       bool
	size      int
	add       int
}

// resolve reads the pointer out of data and returns the effective offset.
// A buffer too short for the decode makes the offset unresolvable.
func (oi *offsetInfo) resolve(data []byte) (int, bool) {
	var val uint64
	var ok bool
	if oi.id3 {
		val, ok = oi.converter.ConvertID3(oi.offset, data, oi.size)
	} else {
		val, ok = oi.converter.ConvertNumber(oi.offset, data, oi.size)
	}
	if !ok {
		return 0, false
	}
	return int(int64(val)) + oi.add, true
}

// Indirect offsets look like "(0x3c.l+4)": position, optional width/order
// letter, optional signed displacement.
var offsetInfoPattern = regexp.MustCompile(`^\(([0-9a-fA-FxX]+)(?:\.([bsilmBSIL]))?([+-](?:0[xX][0-9a-fA-F]+|[0-9]+))?\)$`)

// parseOffsetInfo parses the textual form of a dynamic offset. The width
// letters follow magic(5): b/s/l for little-endian 1/2/4 bytes, uppercase
// for big-endian, i/I for the 4-byte ID3 synchsafe variants, m for
// middle-endian. A missing letter means little-endian 4 bytes.
func parseOffsetInfo(text string) (*offsetInfo, error) {
	parts := offsetInfoPattern.FindStringSubmatch(text)
	if parts == nil {
		return nil, fmt.Errorf("invalid indirect offset %q", text)
	}

	pos, err := strconv.ParseInt(parts[1], 0, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid indirect offset position %q: %w", parts[1], err)
	}

	oi := &offsetInfo{offset: int(pos)}
	switch parts[2] {
	case "b":
		oi.size, oi.converter = 1, endian.ConverterFor(endian.Little)
	case "B":
		oi.size, oi.converter = 1, endian.ConverterFor(endian.Big)
	case "s":
		oi.size, oi.converter = 2, endian.ConverterFor(endian.Little)
	case "S":
		oi.size, oi.converter = 2, endian.ConverterFor(endian.Big)
	case "l", "":
		oi.size, oi.converter = 4, endian.ConverterFor(endian.Little)
	case "L":
		oi.size, oi.converter = 4, endian.ConverterFor(endian.Big)
	case "i":
		oi.size, oi.converter, oi.id3 = 4, endian.ConverterFor(endian.Little), true
	case "I":
		oi.size, oi.converter, oi.id3 = 4, endian.ConverterFor(endian.Big), true
	case "m":
		oi.size, oi.converter = 4, endian.ConverterFor(endian.Middle)
	}

	if parts[3] != "" {
		add, err := strconv.ParseInt(parts[3], 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid indirect offset displacement %q: %w", parts[3], err)
		}
		oi.add = int(add)
	}
	return oi, nil
}
