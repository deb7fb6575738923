// Package endian provides endian-aware integer decoding for magic rule
// evaluation.
//
// Magic rules read fixed-width numbers out of a byte buffer in whatever byte
// order the rule declares: big-endian, little-endian, the half-swapped
// "middle" (PDP-11) order, or the byte order of the running platform. Dynamic
// offsets additionally support the ID3 "synchsafe" encoding, where each byte
// contributes only its low 7 bits.
//
// All decoders report failure instead of panicking when the buffer is too
// short for the requested width.
package endian

import "encoding/binary"

// Type identifies a byte order.
type Type string

const (
	// Big is most-significant byte first.
	Big Type = "big"

	// Little is least-significant byte first.
	Little Type = "little"

	// Middle is the PDP-11 half-swapped order: a 32-bit value is stored as
	// two big-endian 16-bit words, least-significant word first.
	Middle Type = "middle"

	// Native is the byte order of the running platform.
	Native Type = "native"
)

// Converter decodes unsigned integers from a byte buffer.
//
// Implementations are stateless and safe for concurrent use.
type Converter interface {
	// ConvertNumber decodes size bytes starting at offset as an unsigned
	// integer. Returns false if the buffer cannot supply size bytes at
	// offset or the size is unsupported.
	ConvertNumber(offset int, data []byte, size int) (uint64, bool)

	// ConvertID3 decodes size bytes starting at offset using the ID3
	// synchsafe encoding (7 bits per byte, high bit ignored). Returns false
	// if the buffer cannot supply size bytes at offset.
	ConvertID3(offset int, data []byte, size int) (uint64, bool)
}

// ConverterFor returns the Converter for a byte order.
func ConverterFor(t Type) Converter {
	switch t {
	case Big:
		return bigConverter{}
	case Little:
		return littleConverter{}
	case Middle:
		return middleConverter{}
	default:
		return nativeConverter()
	}
}

// nativeConverter picks the converter matching the platform byte order.
func nativeConverter() Converter {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 0x0102)
	if probe[0] == 0x01 {
		return bigConverter{}
	}
	return littleConverter{}
}

// inRange reports whether size bytes at offset fit within data.
func inRange(offset int, data []byte, size int) bool {
	return offset >= 0 && size > 0 && offset+size <= len(data)
}

// id3Convert decodes a synchsafe integer, 7 bits per byte, most-significant
// byte first.
func id3Convert(offset int, data []byte, size int) (uint64, bool) {
	if !inRange(offset, data, size) || size > 8 {
		return 0, false
	}
	var val uint64
	for _, b := range data[offset : offset+size] {
		val = val<<7 | uint64(b&0x7f)
	}
	return val, true
}

type bigConverter struct{}

func (bigConverter) ConvertNumber(offset int, data []byte, size int) (uint64, bool) {
	if !inRange(offset, data, size) || size > 8 {
		return 0, false
	}
	var val uint64
	for _, b := range data[offset : offset+size] {
		val = val<<8 | uint64(b)
	}
	return val, true
}

func (bigConverter) ConvertID3(offset int, data []byte, size int) (uint64, bool) {
	return id3Convert(offset, data, size)
}

type littleConverter struct{}

func (littleConverter) ConvertNumber(offset int, data []byte, size int) (uint64, bool) {
	if !inRange(offset, data, size) || size > 8 {
		return 0, false
	}
	var val uint64
	for i := size - 1; i >= 0; i-- {
		val = val<<8 | uint64(data[offset+i])
	}
	return val, true
}

func (littleConverter) ConvertID3(offset int, data []byte, size int) (uint64, bool) {
	if !inRange(offset, data, size) || size > 8 {
		return 0, false
	}
	var val uint64
	for i := size - 1; i >= 0; i-- {
		val = val<<7 | uint64(data[offset+i]&0x7f)
	}
	return val, true
}

type middleConverter struct{}

// ConvertNumber decodes a 32-bit middle-endian value: byte order 1,0,3,2
// relative to big-endian. Only size 4 is meaningful; other sizes fall back
// to big-endian.
func (middleConverter) ConvertNumber(offset int, data []byte, size int) (uint64, bool) {
	if size != 4 {
		return bigConverter{}.ConvertNumber(offset, data, size)
	}
	if !inRange(offset, data, size) {
		return 0, false
	}
	d := data[offset : offset+4]
	val := uint64(d[1])<<24 | uint64(d[0])<<16 | uint64(d[3])<<8 | uint64(d[2])
	return val, true
}

func (middleConverter) ConvertID3(offset int, data []byte, size int) (uint64, bool) {
	return id3Convert(offset, data, size)
}
