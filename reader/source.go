package reader

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gnoswap-labs/flexer/automata"
)

// Source is a rune-buffered Reader over an io.Reader. Input is decoded
// lazily, one rune per Advance, and the decoded history is retained so the
// driver can rewind to bookmarks.
type Source struct {
	br      *bufio.Reader
	history []Char
	drained bool // underlying stream fully consumed
	pos     int  // index into history of the current character
	match   []rune
}

// NewSource wraps an io.Reader. The source starts one position before the
// first character; the driver's leading Advance makes it current.
func NewSource(r io.Reader) *Source {
	return &Source{br: bufio.NewReader(r), pos: -1}
}

// NewSourceString reads from an in-memory string.
func NewSourceString(s string) *Source {
	return NewSource(strings.NewReader(s))
}

// fill decodes input until history covers position i or the stream ends.
func (s *Source) fill(i int) {
	for !s.drained && len(s.history) <= i {
		r, size, err := s.br.ReadRune()
		switch {
		case err == io.EOF:
			s.drained = true
		case err != nil:
			s.history = append(s.history, Char{Sym: automata.SymbolEOF, Err: err})
			s.drained = true
		case r == utf8.RuneError && size == 1:
			s.history = append(s.history, Char{Sym: automata.SymbolInvalid, Err: ErrInvalidEncoding})
		default:
			s.history = append(s.history, Char{Sym: automata.SymbolOf(r)})
		}
	}
}

// Current returns the character at the reading position. Before the first
// Advance there is no current character and the null symbol is reported.
func (s *Source) Current() Char {
	if s.pos < 0 {
		return Char{}
	}
	s.fill(s.pos)
	if s.pos >= len(s.history) {
		return Char{Sym: automata.SymbolEOF, Err: ErrEndOfInput}
	}
	return s.history[s.pos]
}

// Advance moves one character forward. Past end of input it is a no-op.
func (s *Source) Advance(bm *Bookmarks) {
	if s.Current().IsEOF() {
		return
	}
	s.pos++
}

// AppendMatch adds r to the match buffer.
func (s *Source) AppendMatch(r rune) {
	s.match = append(s.match, r)
}

// PopMatch takes the match buffer.
func (s *Source) PopMatch() string {
	out := string(s.match)
	s.match = s.match[:0]
	return out
}

// Finished reports whether the reading position is past the last
// character.
func (s *Source) Finished(bm *Bookmarks) bool {
	return s.Current().IsEOF()
}

// Offset returns the reading position in characters.
func (s *Source) Offset() int {
	return s.pos
}

// MatchLen returns the match buffer length in runes.
func (s *Source) MatchLen() int {
	return len(s.match)
}

// Rewind repositions to a previously visited offset and truncates the
// match buffer.
func (s *Source) Rewind(offset, matchLen int) {
	if offset < 0 || offset > s.pos {
		panic("reader: rewind to an unvisited offset")
	}
	if matchLen > len(s.match) {
		panic("reader: rewind to a longer match buffer")
	}
	s.pos = offset
	s.match = s.match[:matchLen]
}
