// Package index provides type-tagged opaque indices.
//
// An ID carries a phantom Domain type parameter so that indices into
// unrelated tables (lexer groups, automaton states, reader bookmarks)
// cannot be mixed up at compile time. IDs support equality and map keys
// only; there is no arithmetic and no conversion between domains.
package index

import "fmt"

// ID is an opaque index tagged with a Domain type. The zero value is the
// nil ID, which refers to nothing.
type ID[Domain any] struct {
	// idx stores slot+1 so that the zero value stays distinguishable
	// from a valid index 0.
	idx int
}

// New wraps a raw slot number into a tagged ID.
func New[Domain any](slot int) ID[Domain] {
	if slot < 0 {
		panic(fmt.Sprintf("index: negative slot %d", slot))
	}
	return ID[Domain]{idx: slot + 1}
}

// IsNil reports whether the ID is the zero value.
func (id ID[Domain]) IsNil() bool {
	return id.idx == 0
}

// Int returns the raw slot number. Calling Int on a nil ID is a
// programming error.
func (id ID[Domain]) Int() int {
	if id.IsNil() {
		panic("index: Int called on nil ID")
	}
	return id.idx - 1
}

func (id ID[Domain]) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("#%d", id.idx-1)
}
