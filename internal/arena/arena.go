// Package arena implements a sparse, slot-stable container.
//
// Values are stored in numbered slots. Removing a value leaves a tombstone
// behind instead of shifting later entries, so every other live slot number
// stays valid. A later insert may reuse a tombstoned slot, but an index is
// never handed out twice while its slot is still live.
package arena

import (
	"errors"
	"fmt"
)

// ErrNotFound is reported when a slot is tombstoned or was never allocated.
var ErrNotFound = errors.New("arena: slot not found")

type slot[T any] struct {
	value T
	live  bool
}

// Arena is a tombstone-reusing slot container. The zero value is ready to use.
type Arena[T any] struct {
	slots []slot[T]
	free  []int // tombstoned slot numbers available for reuse
}

// Insert stores v and returns its slot number. Tombstoned slots are reused
// before the arena grows.
func (a *Arena[T]) Insert(v T) int {
	if n := len(a.free); n > 0 {
		i := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[i] = slot[T]{value: v, live: true}
		return i
	}
	a.slots = append(a.slots, slot[T]{value: v, live: true})
	return len(a.slots) - 1
}

// Get returns a pointer to the value in slot i, or false when the slot is
// tombstoned or out of range.
func (a *Arena[T]) Get(i int) (*T, bool) {
	if i < 0 || i >= len(a.slots) || !a.slots[i].live {
		return nil, false
	}
	return &a.slots[i].value, true
}

// Remove tombstones slot i so it can be reused by a later Insert.
func (a *Arena[T]) Remove(i int) error {
	if i < 0 || i >= len(a.slots) || !a.slots[i].live {
		return fmt.Errorf("%w: %d", ErrNotFound, i)
	}
	var zero T
	a.slots[i] = slot[T]{value: zero}
	a.free = append(a.free, i)
	return nil
}

// Len reports the number of live slots.
func (a *Arena[T]) Len() int {
	return len(a.slots) - len(a.free)
}

// Each calls fn for every live slot in ascending slot order.
func (a *Arena[T]) Each(fn func(i int, v *T)) {
	for i := range a.slots {
		if a.slots[i].live {
			fn(i, &a.slots[i].value)
		}
	}
}
