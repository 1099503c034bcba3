// Package reader provides the streaming character source the runtime
// driver consumes, together with the bookmark manager used to mark and
// roll back to match positions.
//
// The engine depends only on the Reader capability; how a source buffers
// its input is its own business. Source is the bundled implementation,
// decoding UTF-8 lazily from an io.Reader while retaining decoded history
// so that bookmarks can be rewound to.
package reader

import (
	"errors"

	"github.com/gnoswap-labs/flexer/automata"
)

var (
	// ErrEndOfInput marks the end-of-input pseudo-character. It drives
	// normal finalization and is not a fault.
	ErrEndOfInput = errors.New("reader: end of input")
	// ErrInvalidEncoding marks a unit that could not be decoded. The
	// symbol is still lexable as the invalid-decoding marker.
	ErrInvalidEncoding = errors.New("reader: invalid encoding")
)

// Char is one decoded unit of input: a symbol plus the condition under
// which it was produced. Err is nil for ordinary characters, ErrEndOfInput
// at the end of the stream, ErrInvalidEncoding for undecodable bytes, and
// the underlying error for any other I/O fault.
type Char struct {
	Sym automata.Symbol
	Err error
}

// IsEOF reports whether the character is the end-of-input marker.
func (c Char) IsEOF() bool {
	return c.Sym.IsEOF()
}

// Rune returns the decoded rune of an ordinary character.
func (c Char) Rune() rune {
	return rune(c.Sym)
}

// Reader is the capability contract the runtime driver requires of a
// character source.
type Reader interface {
	// Current returns the character at the reading position without
	// consuming it.
	Current() Char
	// Advance moves to the next character. Advancing past end of input
	// is a no-op. The bookmark set travels along so implementations that
	// window their buffers can keep bookmarks consistent.
	Advance(bm *Bookmarks)
	// AppendMatch adds r to the in-progress match buffer.
	AppendMatch(r rune)
	// PopMatch takes the match buffer, leaving it empty.
	PopMatch() string
	// Finished reports whether the input is exhausted at the current
	// position.
	Finished(bm *Bookmarks) bool
	// Offset is the reading position, counted in characters.
	Offset() int
	// MatchLen is the current match buffer length, counted in runes.
	MatchLen() int
	// Rewind repositions the reader and truncates the match buffer.
	// Bookmarks use it to implement backtracking.
	Rewind(offset, matchLen int)
}
