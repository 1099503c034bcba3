package interval

import (
	"testing"
)

func TestInsertMergesOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		insert []Range
		want   []Range
	}{
		{
			name:   "disjoint_stay_separate",
			insert: []Range{{1, 3}, {10, 12}},
			want:   []Range{{1, 3}, {10, 12}},
		},
		{
			name:   "overlapping_merge",
			insert: []Range{{1, 5}, {4, 9}},
			want:   []Range{{1, 9}},
		},
		{
			name:   "adjacent_merge",
			insert: []Range{{1, 4}, {5, 9}},
			want:   []Range{{1, 9}},
		},
		{
			name:   "bridge_joins_neighbors",
			insert: []Range{{1, 2}, {8, 9}, {3, 7}},
			want:   []Range{{1, 9}},
		},
		{
			name:   "contained_is_absorbed",
			insert: []Range{{1, 9}, {3, 5}},
			want:   []Range{{1, 9}},
		},
		{
			name:   "out_of_order_sorted",
			insert: []Range{{20, 25}, {1, 3}, {10, 12}},
			want:   []Range{{1, 3}, {10, 12}, {20, 25}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Of(tc.insert...)
			got := s.Ranges()
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestInsertOrderIndependent(t *testing.T) {
	a := Of(Range{1, 2}, Range{5, 9}, Range{3, 4})
	b := Of(Range{3, 4}, Range{1, 2}, Range{5, 9})
	if a.String() != b.String() {
		t.Errorf("insertion order changed result: %v vs %v", a, b)
	}
	if a.Len() != 1 {
		t.Errorf("expected 1 merged range, got %v", a)
	}
}

func TestInsertFullSymbolSpace(t *testing.T) {
	// Boundary arithmetic must not overflow at either end of uint32.
	s := &Set{}
	s.Insert(0, ^uint32(0))
	s.InsertPoint(0)
	s.InsertPoint(^uint32(0))
	if s.Len() != 1 || !s.Covers(0, ^uint32(0)) {
		t.Errorf("full-space set broken: %v", s)
	}
}

func TestContains(t *testing.T) {
	s := Of(Range{10, 20}, Range{30, 30})
	for _, v := range []uint32{10, 15, 20, 30} {
		if !s.Contains(v) {
			t.Errorf("Contains(%d) = false, want true", v)
		}
	}
	for _, v := range []uint32{0, 9, 21, 29, 31} {
		if s.Contains(v) {
			t.Errorf("Contains(%d) = true, want false", v)
		}
	}
}

func TestCovers(t *testing.T) {
	s := Of(Range{10, 20}, Range{22, 30})
	if !s.Covers(12, 18) {
		t.Error("Covers(12, 18) = false, want true")
	}
	if s.Covers(15, 25) {
		t.Error("Covers(15, 25) = true, want false: 21 is a gap")
	}
	s.InsertPoint(21)
	if !s.Covers(10, 30) {
		t.Error("Covers(10, 30) = false after filling the gap")
	}
}

func TestEmpty(t *testing.T) {
	var s Set
	if !s.Empty() || s.Len() != 0 || s.Contains(0) || s.Covers(0, 0) {
		t.Error("zero-value set should be empty")
	}
}

func TestInvertedRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on inverted range")
		}
	}()
	(&Set{}).Insert(5, 4)
}
