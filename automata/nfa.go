package automata

import (
	"fmt"

	"github.com/gnoswap-labs/flexer/internal/arena"
	"github.com/gnoswap-labs/flexer/internal/index"
)

type stateDomain struct{}

// StateID identifies an NFA state. It is tagged so that automaton state
// indices cannot be confused with group or bookmark identifiers.
type StateID = index.ID[stateDomain]

type nfaEdge struct {
	lo, hi Symbol
	to     StateID
}

type nfaState struct {
	epsilon []StateID
	edges   []nfaEdge
	rule    int // accepting rule index, -1 when not accepting
}

// NFA is the nondeterministic automaton built from a group's rules by
// Thompson construction. It exists only as an intermediate step; callers
// hand it to Determinize and drop it.
type NFA struct {
	states arena.Arena[nfaState]
	start  StateID
}

// NewNFA creates an automaton with a single start state.
func NewNFA() *NFA {
	n := &NFA{}
	n.start = n.newState()
	return n
}

// Start returns the single start state.
func (n *NFA) Start() StateID {
	return n.start
}

// Len reports the number of states.
func (n *NFA) Len() int {
	return n.states.Len()
}

// AddRule compiles p into a fragment hanging off the start state by an
// epsilon edge and tags the fragment's accepting state with ruleIndex.
// Rules must be added in declaration order; the index doubles as match
// priority during determinization.
func (n *NFA) AddRule(p Pattern, ruleIndex int) error {
	if err := Validate(p); err != nil {
		return err
	}
	if ruleIndex < 0 {
		return fmt.Errorf("automata: negative rule index %d", ruleIndex)
	}
	in := n.newState()
	n.addEpsilon(n.start, in)
	out := n.fragment(p, in)
	n.state(out).rule = ruleIndex
	return nil
}

func (n *NFA) newState() StateID {
	return index.New[stateDomain](n.states.Insert(nfaState{rule: -1}))
}

func stateIDOf(slot int) StateID {
	return index.New[stateDomain](slot)
}

// state resolves id to its node. Arena pointers are invalidated by
// newState, so callers re-fetch after creating states.
func (n *NFA) state(id StateID) *nfaState {
	s, ok := n.states.Get(id.Int())
	if !ok {
		panic("automata: unknown NFA state " + id.String())
	}
	return s
}

func (n *NFA) addEpsilon(from, to StateID) {
	s := n.state(from)
	s.epsilon = append(s.epsilon, to)
}

func (n *NFA) addEdge(from StateID, lo, hi Symbol, to StateID) {
	s := n.state(from)
	s.edges = append(s.edges, nfaEdge{lo: lo, hi: hi, to: to})
}

func (n *NFA) symbolEdge(from StateID, lo, hi Symbol) StateID {
	to := n.newState()
	n.addEdge(from, lo, hi, to)
	return to
}

// fragment wires p between from and the returned exit state.
func (n *NFA) fragment(p Pattern, from StateID) StateID {
	switch p := p.(type) {
	case Literal:
		sym := SymbolOf(p.Char)
		return n.symbolEdge(from, sym, sym)
	case SymbolRange:
		return n.symbolEdge(from, SymbolOf(p.Lo), SymbolOf(p.Hi))
	case CharClass:
		to := n.newState()
		for _, r := range p.set.Ranges() {
			n.addEdge(from, Symbol(r.Lo), Symbol(r.Hi), to)
		}
		return to
	case Wildcard:
		return n.symbolEdge(from, 0, SymbolInvalid)
	case EndOfInput:
		return n.symbolEdge(from, SymbolEOF, SymbolEOF)
	case empty:
		return from
	case Sequence:
		mid := n.fragment(p.First, from)
		return n.fragment(p.Second, mid)
	case Alternative:
		out := n.newState()
		aIn := n.newState()
		n.addEpsilon(from, aIn)
		n.addEpsilon(n.fragment(p.First, aIn), out)
		bIn := n.newState()
		n.addEpsilon(from, bIn)
		n.addEpsilon(n.fragment(p.Second, bIn), out)
		return out
	case Repetition:
		cur := from
		for i := 0; i < p.Min; i++ {
			cur = n.fragment(p.Body, cur)
		}
		if p.Max < 0 {
			loop := n.newState()
			n.addEpsilon(cur, loop)
			n.addEpsilon(n.fragment(p.Body, loop), loop)
			return loop
		}
		exits := []StateID{cur}
		for i := p.Min; i < p.Max; i++ {
			cur = n.fragment(p.Body, cur)
			exits = append(exits, cur)
		}
		join := n.newState()
		for _, e := range exits {
			n.addEpsilon(e, join)
		}
		return join
	case invalid:
		// Validate rejects these before construction starts.
		panic("automata: fragment built from invalid pattern: " + p.err.Error())
	default:
		panic(fmt.Sprintf("automata: unknown pattern node %T", p))
	}
}
