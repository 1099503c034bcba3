package reader

import (
	"fmt"

	"github.com/gnoswap-labs/flexer/internal/arena"
	"github.com/gnoswap-labs/flexer/internal/index"
)

type bookmarkDomain struct{}

// BookmarkID identifies a saved reader position.
type BookmarkID = index.ID[bookmarkDomain]

type bookmark struct {
	offset   int
	matchLen int
}

// Bookmarks is the bookmark manager. It always carries the distinguished
// Matched bookmark, which the driver advances every time a rule fires, so
// that it records the end of the longest match consumed so far.
type Bookmarks struct {
	marks arena.Arena[bookmark]

	// Matched is the position of the last fired match.
	Matched BookmarkID
}

// NewBookmarks creates a manager with the Matched bookmark at position
// zero.
func NewBookmarks() *Bookmarks {
	b := &Bookmarks{}
	b.Matched = b.Create()
	return b
}

// Create registers a new bookmark at position zero.
func (b *Bookmarks) Create() BookmarkID {
	return index.New[bookmarkDomain](b.marks.Insert(bookmark{}))
}

func (b *Bookmarks) mark(id BookmarkID) *bookmark {
	m, ok := b.marks.Get(id.Int())
	if !ok {
		panic(fmt.Sprintf("reader: unknown bookmark %s", id))
	}
	return m
}

// Bookmark records the reader's current position and match buffer length
// under id.
func (b *Bookmarks) Bookmark(id BookmarkID, rd Reader) {
	m := b.mark(id)
	m.offset = rd.Offset()
	m.matchLen = rd.MatchLen()
}

// Rewind repositions the reader to the bookmarked position, truncating the
// match buffer to the bookmarked length.
func (b *Bookmarks) Rewind(id BookmarkID, rd Reader) {
	m := b.mark(id)
	rd.Rewind(m.offset, m.matchLen)
}

// Offset returns the bookmarked reader position.
func (b *Bookmarks) Offset(id BookmarkID) int {
	return b.mark(id).offset
}
