package index

import (
	"testing"
)

type testDomain struct{}

func TestZeroValueIsNil(t *testing.T) {
	var id ID[testDomain]
	if !id.IsNil() {
		t.Error("zero value should be nil")
	}
	if id.String() != "<nil>" {
		t.Errorf("String() = %q", id.String())
	}
}

func TestRoundTrip(t *testing.T) {
	for _, slot := range []int{0, 1, 41} {
		id := New[testDomain](slot)
		if id.IsNil() {
			t.Errorf("New(%d) is nil", slot)
		}
		if id.Int() != slot {
			t.Errorf("New(%d).Int() = %d", slot, id.Int())
		}
	}
}

func TestEquality(t *testing.T) {
	a := New[testDomain](3)
	b := New[testDomain](3)
	c := New[testDomain](4)
	if a != b {
		t.Error("same slot should compare equal")
	}
	if a == c {
		t.Error("different slots should compare unequal")
	}
}

func TestIntOnNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	var id ID[testDomain]
	_ = id.Int()
}

func TestNegativeSlotPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	New[testDomain](-1)
}
