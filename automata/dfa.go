package automata

import (
	"fmt"
	"sort"
)

// DFA is the deterministic automaton produced by subset construction.
// State 0 is the initial state. Each state's transition table is a list of
// ascending disjoint symbol ranges that together cover the whole alphabet,
// end-of-input included; ranges with no viable transition carry an invalid
// target rather than being omitted.
type DFA struct {
	States []DFAState
}

// DFAState is one subset-construction state.
type DFAState struct {
	Branches []DFABranch
	// Rule is the accepting rule baked in at construction time: the
	// smallest rule index among the member NFA accepting states, or -1.
	// Declaration order therefore settles equal-length ambiguity before
	// the runtime ever runs.
	Rule int
}

// DFABranch maps the inclusive symbol range [Lo, Hi] to the next state.
// Target is -1 when the automaton has no transition on the range.
type DFABranch struct {
	Lo, Hi Symbol
	Target int
}

// Lookup returns the branch covering sym. Branch tables are total, so a
// miss is an internal invariant violation.
func (s DFAState) Lookup(sym Symbol) DFABranch {
	i := sort.Search(len(s.Branches), func(k int) bool { return s.Branches[k].Hi >= sym })
	if i == len(s.Branches) || s.Branches[i].Lo > sym {
		panic(fmt.Sprintf("automata: no branch for symbol %s", sym))
	}
	return s.Branches[i]
}

// Determinize runs subset construction over n. Transition labels are
// handled as whole segments of the alphabet rather than per-symbol, so the
// resulting tables scan a handful of ranges per state.
func Determinize(n *NFA) *DFA {
	divs := n.divisions()
	subsetKey := func(ids []int) string { return fmt.Sprint(ids) }

	startSet := n.closure([]int{n.start.Int()})
	d := &DFA{}
	seen := map[string]int{subsetKey(startSet): 0}
	d.States = append(d.States, DFAState{Rule: n.acceptOf(startSet)})
	queue := [][]int{startSet}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curIdx := seen[subsetKey(cur)]

		var branches []DFABranch
		for i, lo := range divs {
			hi := SymbolMax
			if i+1 < len(divs) {
				hi = divs[i+1] - 1
			}
			target := -1
			if mv := n.move(cur, lo); len(mv) > 0 {
				next := n.closure(mv)
				k := subsetKey(next)
				idx, ok := seen[k]
				if !ok {
					idx = len(d.States)
					seen[k] = idx
					d.States = append(d.States, DFAState{Rule: n.acceptOf(next)})
					queue = append(queue, next)
				}
				target = idx
			}
			// merge with the previous branch when the target repeats
			if k := len(branches); k > 0 && branches[k-1].Target == target {
				branches[k-1].Hi = hi
				continue
			}
			branches = append(branches, DFABranch{Lo: lo, Hi: hi, Target: target})
		}
		d.States[curIdx].Branches = branches
	}
	return d
}

// divisions returns the ascending start points of the alphabet
// segmentation: within each segment every edge behaves uniformly, so one
// representative symbol stands in for the whole range.
func (n *NFA) divisions() []Symbol {
	points := map[Symbol]struct{}{0: {}}
	n.states.Each(func(_ int, s *nfaState) {
		for _, e := range s.edges {
			points[e.lo] = struct{}{}
			if e.hi < SymbolMax {
				points[e.hi+1] = struct{}{}
			}
		}
	})
	divs := make([]Symbol, 0, len(points))
	for p := range points {
		divs = append(divs, p)
	}
	sort.Slice(divs, func(i, j int) bool { return divs[i] < divs[j] })
	return divs
}

// closure expands ids with everything reachable over epsilon edges and
// returns the subset as sorted state numbers.
func (n *NFA) closure(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	stack := append([]int(nil), ids...)
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range n.state(stateIDOf(id)).epsilon {
			if _, ok := seen[next.Int()]; !ok {
				seen[next.Int()] = struct{}{}
				stack = append(stack, next.Int())
			}
		}
	}
	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// move returns the unsorted set of states reachable from the subset on the
// alphabet segment starting at sym.
func (n *NFA) move(ids []int, sym Symbol) []int {
	seen := map[int]struct{}{}
	for _, id := range ids {
		for _, e := range n.state(stateIDOf(id)).edges {
			if e.lo <= sym && sym <= e.hi {
				seen[e.to.Int()] = struct{}{}
			}
		}
	}
	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	return out
}

// acceptOf returns the smallest rule index accepting in the subset, -1 if
// none.
func (n *NFA) acceptOf(ids []int) int {
	best := -1
	for _, id := range ids {
		if r := n.state(stateIDOf(id)).rule; r >= 0 && (best < 0 || r < best) {
			best = r
		}
	}
	return best
}
