package reader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/flexer/automata"
)

func advanceAll(src *Source, bm *Bookmarks) []Char {
	var out []Char
	for {
		src.Advance(bm)
		c := src.Current()
		if c.IsEOF() {
			return out
		}
		out = append(out, c)
	}
}

func TestSourceDecodesRunes(t *testing.T) {
	bm := NewBookmarks()
	src := NewSourceString("aé€")

	chars := advanceAll(src, bm)
	require.Len(t, chars, 3)
	assert.Equal(t, 'a', chars[0].Rune())
	assert.Equal(t, 'é', chars[1].Rune())
	assert.Equal(t, '€', chars[2].Rune())
	for _, c := range chars {
		assert.NoError(t, c.Err)
	}
}

func TestSourceStartsBeforeFirstCharacter(t *testing.T) {
	src := NewSourceString("x")
	c := src.Current()
	assert.False(t, c.IsEOF())
	assert.Equal(t, automata.Symbol(0), c.Sym)
	assert.Equal(t, -1, src.Offset())
}

func TestSourceEndOfInput(t *testing.T) {
	bm := NewBookmarks()
	src := NewSourceString("")

	src.Advance(bm)
	c := src.Current()
	assert.True(t, c.IsEOF())
	assert.ErrorIs(t, c.Err, ErrEndOfInput)
	assert.True(t, src.Finished(bm))

	// advancing past the end stays put
	src.Advance(bm)
	src.Advance(bm)
	assert.Equal(t, 0, src.Offset())
	assert.True(t, src.Current().IsEOF())
}

func TestSourceInvalidEncoding(t *testing.T) {
	bm := NewBookmarks()
	src := NewSourceString("a\xffb")

	chars := advanceAll(src, bm)
	require.Len(t, chars, 3)
	assert.Equal(t, 'a', chars[0].Rune())
	assert.Equal(t, automata.SymbolInvalid, chars[1].Sym)
	assert.ErrorIs(t, chars[1].Err, ErrInvalidEncoding)
	assert.Equal(t, 'b', chars[2].Rune())
}

func TestMatchBuffer(t *testing.T) {
	src := NewSourceString("")
	src.AppendMatch('f')
	src.AppendMatch('o')
	src.AppendMatch('o')
	assert.Equal(t, 3, src.MatchLen())

	assert.Equal(t, "foo", src.PopMatch())
	assert.Equal(t, 0, src.MatchLen())
	assert.Equal(t, "", src.PopMatch())
}

func TestRewindRestoresPositionAndMatch(t *testing.T) {
	bm := NewBookmarks()
	src := NewSourceString("abcd")

	src.Advance(bm) // 'a' current
	src.AppendMatch(src.Current().Rune())
	src.Advance(bm)

	mark := bm.Create()
	bm.Bookmark(mark, src)
	assert.Equal(t, 1, bm.Offset(mark))

	src.AppendMatch(src.Current().Rune()) // 'b'
	src.Advance(bm)
	src.AppendMatch(src.Current().Rune()) // 'c'
	src.Advance(bm)
	assert.Equal(t, 3, src.MatchLen())

	bm.Rewind(mark, src)
	assert.Equal(t, 1, src.Offset())
	assert.Equal(t, 'b', src.Current().Rune())
	assert.Equal(t, "a", src.PopMatch())
}

func TestRewindBoundsArePanics(t *testing.T) {
	bm := NewBookmarks()
	src := NewSourceString("ab")
	src.Advance(bm)

	assert.Panics(t, func() { src.Rewind(5, 0) }, "unvisited offset")
	assert.Panics(t, func() { src.Rewind(0, 1) }, "match buffer longer than present")
}

func TestMatchedBookmarkExists(t *testing.T) {
	bm := NewBookmarks()
	assert.False(t, bm.Matched.IsNil())
	assert.Equal(t, 0, bm.Offset(bm.Matched))

	src := NewSourceString("ab")
	src.Advance(bm)
	src.Advance(bm)
	bm.Bookmark(bm.Matched, src)
	assert.Equal(t, 1, bm.Offset(bm.Matched))
}

func TestUnknownBookmarkPanics(t *testing.T) {
	bm := NewBookmarks()
	other := NewBookmarks()
	other.Create()
	stray := other.Create()

	assert.Panics(t, func() { bm.Offset(stray) })
}

func TestReadError(t *testing.T) {
	bm := NewBookmarks()
	boom := errors.New("disk gone")
	src := NewSource(&failingReader{data: []byte("ok"), err: boom})

	src.Advance(bm)
	assert.Equal(t, 'o', src.Current().Rune())
	src.Advance(bm)
	assert.Equal(t, 'k', src.Current().Rune())
	src.Advance(bm)

	c := src.Current()
	assert.True(t, c.IsEOF())
	assert.ErrorIs(t, c.Err, boom)
}

// failingReader yields its data and then a non-EOF error.
type failingReader struct {
	data []byte
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}
