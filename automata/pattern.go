package automata

import (
	"fmt"

	"github.com/gnoswap-labs/flexer/internal/interval"
)

// Pattern is a declarative description of the strings a lexical rule
// accepts. Patterns are immutable expression trees built with the
// combinators below; they are pure values and carry no side effects.
//
// A malformed construction (an inverted range, an empty alternative) does
// not fail at the combinator call. The fault is recorded in the node and
// reported by Validate, which rule registration runs before any automaton
// is built.
type Pattern interface {
	isPattern()
	check() error
}

// Literal matches exactly one character.
type Literal struct {
	Char rune
}

// SymbolRange matches any single character in the inclusive range [Lo, Hi].
type SymbolRange struct {
	Lo, Hi rune
}

// CharClass matches any single character in a set of ranges.
type CharClass struct {
	set *interval.Set
}

// Sequence matches First followed by Second.
type Sequence struct {
	First, Second Pattern
}

// Alternative matches First or Second. Choice is ordered: when both
// branches accept a prefix of equal maximal length, the first-listed branch
// wins. The tie-break is resolved during DFA construction by rule
// declaration order.
type Alternative struct {
	First, Second Pattern
}

// Repetition matches Min to Max occurrences of Body. A negative Max means
// unbounded.
type Repetition struct {
	Body Pattern
	Min  int
	Max  int
}

// Wildcard matches any single symbol, including the invalid-decoding
// marker, but never end-of-input.
type Wildcard struct{}

// EndOfInput matches only the end-of-input pseudo-symbol.
type EndOfInput struct{}

// empty matches the empty string. It is not part of the public algebra;
// Seq() and Str("") produce it.
type empty struct{}

// invalid is a poisoned node recording a construction fault.
type invalid struct {
	err error
}

func (Literal) isPattern()     {}
func (SymbolRange) isPattern() {}
func (CharClass) isPattern()   {}
func (Sequence) isPattern()    {}
func (Alternative) isPattern() {}
func (Repetition) isPattern()  {}
func (Wildcard) isPattern()    {}
func (EndOfInput) isPattern()  {}
func (empty) isPattern()       {}
func (invalid) isPattern()     {}

func (Literal) check() error { return nil }

func (p SymbolRange) check() error {
	if p.Lo > p.Hi {
		return fmt.Errorf("automata: inverted range %q..%q", p.Lo, p.Hi)
	}
	return nil
}

func (p CharClass) check() error {
	if p.set == nil || p.set.Empty() {
		return fmt.Errorf("automata: empty character class")
	}
	return nil
}

func (p Sequence) check() error {
	if err := p.First.check(); err != nil {
		return err
	}
	return p.Second.check()
}

func (p Alternative) check() error {
	if err := p.First.check(); err != nil {
		return err
	}
	return p.Second.check()
}

func (p Repetition) check() error {
	if p.Min < 0 {
		return fmt.Errorf("automata: negative repetition minimum %d", p.Min)
	}
	if p.Max >= 0 && p.Max < p.Min {
		return fmt.Errorf("automata: repetition maximum %d below minimum %d", p.Max, p.Min)
	}
	return p.Body.check()
}

func (Wildcard) check() error   { return nil }
func (EndOfInput) check() error { return nil }
func (empty) check() error      { return nil }
func (p invalid) check() error  { return p.err }

// Validate reports the first construction fault in the pattern tree, if
// any. It is run when a rule is registered so that definition errors never
// reach automaton build time.
func Validate(p Pattern) error {
	if p == nil {
		return fmt.Errorf("automata: nil pattern")
	}
	return p.check()
}

// === Combinators ===

// Char matches the single character r.
func Char(r rune) Pattern {
	return Literal{Char: r}
}

// CharRange matches any character in the inclusive range [lo, hi].
func CharRange(lo, hi rune) Pattern {
	return SymbolRange{Lo: lo, Hi: hi}
}

// OneOf matches any one of the given characters.
func OneOf(chars string) Pattern {
	if chars == "" {
		return invalid{err: fmt.Errorf("automata: empty character class")}
	}
	set := &interval.Set{}
	for _, r := range chars {
		set.InsertPoint(uint32(SymbolOf(r)))
	}
	return CharClass{set: set}
}

// NoneOf matches any one symbol not among the given characters. Like
// Wildcard, the complement ranges over the whole symbol space short of
// end-of-input, so the invalid-decoding marker is included.
func NoneOf(chars string) Pattern {
	excluded := &interval.Set{}
	for _, r := range chars {
		excluded.InsertPoint(uint32(SymbolOf(r)))
	}
	set := &interval.Set{}
	next := uint32(0)
	for _, r := range excluded.Ranges() {
		if r.Lo > next {
			set.Insert(next, r.Lo-1)
		}
		next = r.Hi + 1
	}
	if next <= uint32(SymbolInvalid) {
		set.Insert(next, uint32(SymbolInvalid))
	}
	return CharClass{set: set}
}

// ClassOf matches any one character covered by the given rune ranges.
func ClassOf(ranges ...SymbolRange) Pattern {
	set := &interval.Set{}
	for _, r := range ranges {
		if r.Lo > r.Hi {
			return invalid{err: fmt.Errorf("automata: inverted range %q..%q", r.Lo, r.Hi)}
		}
		set.Insert(uint32(SymbolOf(r.Lo)), uint32(SymbolOf(r.Hi)))
	}
	return CharClass{set: set}
}

// Str matches the characters of s in order. Str("") matches the empty
// string.
func Str(s string) Pattern {
	var ps []Pattern
	for _, r := range s {
		ps = append(ps, Char(r))
	}
	return Seq(ps...)
}

// Seq matches the given patterns in order. Seq() matches the empty string.
func Seq(ps ...Pattern) Pattern {
	if len(ps) == 0 {
		return empty{}
	}
	out := ps[len(ps)-1]
	for i := len(ps) - 2; i >= 0; i-- {
		out = Sequence{First: ps[i], Second: out}
	}
	return out
}

// Or matches the first of the given patterns to apply, in order.
func Or(ps ...Pattern) Pattern {
	if len(ps) == 0 {
		return invalid{err: fmt.Errorf("automata: empty alternative")}
	}
	out := ps[len(ps)-1]
	for i := len(ps) - 2; i >= 0; i-- {
		out = Alternative{First: ps[i], Second: out}
	}
	return out
}

// Repeat matches between min and max occurrences of p. A negative max means
// unbounded.
func Repeat(p Pattern, min, max int) Pattern {
	return Repetition{Body: p, Min: min, Max: max}
}

// Many matches zero or more occurrences of p.
func Many(p Pattern) Pattern {
	return Repeat(p, 0, -1)
}

// Many1 matches one or more occurrences of p.
func Many1(p Pattern) Pattern {
	return Repeat(p, 1, -1)
}

// Opt matches zero or one occurrence of p.
func Opt(p Pattern) Pattern {
	return Repeat(p, 0, 1)
}

// Any matches any single symbol, including the invalid-decoding marker.
func Any() Pattern {
	return Wildcard{}
}

// Eof matches end of input.
func Eof() Pattern {
	return EndOfInput{}
}
