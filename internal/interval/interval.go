// Package interval implements an ordered set of disjoint numeric ranges.
//
// Ranges merge on insert, so the set is always the minimal list of disjoint
// ascending ranges equal to the union of everything inserted. The same
// structure backs pattern character classes and the range-compressed
// transition tables of the generated automata.
package interval

import (
	"fmt"
	"sort"
	"strings"
)

// Range is an inclusive range of symbol values.
type Range struct {
	Lo, Hi uint32
}

func (r Range) String() string {
	if r.Lo == r.Hi {
		return fmt.Sprintf("%d", r.Lo)
	}
	return fmt.Sprintf("%d..%d", r.Lo, r.Hi)
}

// Set is a merged set of disjoint ranges. The zero value is an empty set.
type Set struct {
	ranges []Range
}

// Of builds a set from the given ranges.
func Of(ranges ...Range) *Set {
	s := &Set{}
	for _, r := range ranges {
		s.Insert(r.Lo, r.Hi)
	}
	return s
}

// Insert adds the inclusive range [lo, hi], merging it with any overlapping
// or adjacent ranges. Inserting an inverted range is a programming error.
func (s *Set) Insert(lo, hi uint32) {
	if lo > hi {
		panic(fmt.Sprintf("interval: inverted range %d..%d", lo, hi))
	}
	n := len(s.ranges)
	// i is the first range that overlaps or is adjacent on the left,
	// j is the first range strictly beyond the right edge.
	i := sort.Search(n, func(k int) bool { return uint64(s.ranges[k].Hi)+1 >= uint64(lo) })
	j := sort.Search(n, func(k int) bool { return uint64(s.ranges[k].Lo) > uint64(hi)+1 })
	if i < j {
		lo = min(lo, s.ranges[i].Lo)
		hi = max(hi, s.ranges[j-1].Hi)
	}
	merged := append(s.ranges[:i:i], Range{Lo: lo, Hi: hi})
	s.ranges = append(merged, s.ranges[j:]...)
}

// InsertPoint adds a single value.
func (s *Set) InsertPoint(v uint32) {
	s.Insert(v, v)
}

// Contains reports whether v is a member of the set.
func (s *Set) Contains(v uint32) bool {
	i := sort.Search(len(s.ranges), func(k int) bool { return s.ranges[k].Hi >= v })
	return i < len(s.ranges) && s.ranges[i].Lo <= v
}

// Covers reports whether every value in [lo, hi] is a member. Because the
// representation is merged, contiguous coverage means a single range spans
// the whole query.
func (s *Set) Covers(lo, hi uint32) bool {
	i := sort.Search(len(s.ranges), func(k int) bool { return s.ranges[k].Hi >= lo })
	return i < len(s.ranges) && s.ranges[i].Lo <= lo && s.ranges[i].Hi >= hi
}

// Ranges returns the disjoint ranges in ascending order. The slice is a copy
// and safe to retain.
func (s *Set) Ranges() []Range {
	out := make([]Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Len reports the number of disjoint ranges.
func (s *Set) Len() int {
	return len(s.ranges)
}

// Empty reports whether the set has no members.
func (s *Set) Empty() bool {
	return len(s.ranges) == 0
}

func (s *Set) String() string {
	parts := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		parts[i] = r.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
