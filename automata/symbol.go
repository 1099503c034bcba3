package automata

import (
	"fmt"
	"unicode"
)

// Symbol is a single input unit of the automaton alphabet. Ordinary symbols
// are Unicode code points; two pseudo-symbols sit above the code point range
// so that decoding faults and end-of-input compose with the same machinery
// as ordinary characters.
type Symbol uint32

const (
	// SymbolMaxRune is the largest ordinary symbol.
	SymbolMaxRune Symbol = Symbol(unicode.MaxRune)
	// SymbolInvalid marks a unit the reader could not decode. Wildcards
	// match it; explicit ranges never do.
	SymbolInvalid Symbol = SymbolMaxRune + 1
	// SymbolEOF is the end-of-input pseudo-symbol. Only EndOfInput
	// patterns reach it.
	SymbolEOF Symbol = SymbolInvalid + 1
	// SymbolMax is the upper bound of the alphabet, inclusive.
	SymbolMax = SymbolEOF
)

// SymbolOf converts a decoded rune into a symbol.
func SymbolOf(r rune) Symbol {
	if r < 0 || r > unicode.MaxRune {
		return SymbolInvalid
	}
	return Symbol(r)
}

// IsEOF reports whether s is the end-of-input pseudo-symbol.
func (s Symbol) IsEOF() bool {
	return s == SymbolEOF
}

func (s Symbol) String() string {
	switch {
	case s == SymbolEOF:
		return "<eof>"
	case s == SymbolInvalid:
		return "<invalid>"
	case s <= SymbolMaxRune && unicode.IsPrint(rune(s)):
		return fmt.Sprintf("%q", rune(s))
	default:
		return fmt.Sprintf("U+%04X", uint32(s))
	}
}
