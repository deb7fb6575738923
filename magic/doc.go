// Package magic implements the rule engine behind magickit: parsing
// magic(5)-style rule text into immutable entry trees and recursively
// matching those trees against the leading bytes of some content.
//
// A rule file is line oriented. Each line holds an offset, a value type, a
// test and an optional message; leading '>' characters nest a line under the
// closest preceding line with one less of them:
//
//	0	string		RIFF		RIFF data
//	>8	string		WAVE		\b, WAVE audio
//	!:mime	audio/wav
//
// [ParseBytes] and [ParseReader] compile such text into level-0 [Entry]
// trees. Matching one tree against a buffer with [Entry.Match] resolves each
// node's offset (static, parent-relative or read out of the buffer itself),
// extracts and tests a value there, accumulates the description text, and
// recurses into the children; the most specific matching rule supplies the
// final name and MIME type. A tree that produces no classification returns
// nil, which is the normal "try the next candidate" outcome.
//
// Entry trees are frozen when parsing completes and never mutated by
// matching, so one tree can serve many goroutines classifying independent
// buffers concurrently.
//
// Supported value types: byte, short, long and quad integers in native,
// big, little and (for long) middle endianness with an optional "u" prefix
// for unsigned comparisons and an "&mask" suffix; date, ldate, qdate and
// qldate timestamps; beid3/leid3 synchsafe lengths; string, pstring,
// search/N and regex text kinds; and default, which always matches.
package magic
