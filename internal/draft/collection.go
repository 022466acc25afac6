package draft

// collection is an ordered, index-addressable list backing one repeatable
// form section. It enforces the form's rules: the list never shrinks below
// one row through removal, and a removal re-indexes the remaining rows
// contiguously.
type collection[T any] struct {
	items []T
}

// append adds item to the end and returns the new row count.
func (c *collection[T]) append(item T) int {
	c.items = append(c.items, item)
	return len(c.items)
}

// removeAt removes the row at i and reports whether a row was removed.
// Removing the sole remaining row is a no-op, as is an out-of-range index.
func (c *collection[T]) removeAt(i int) bool {
	if len(c.items) <= 1 || i < 0 || i >= len(c.items) {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// update applies fn to the row at i, leaving every other row untouched.
// Out-of-range indexes are ignored.
func (c *collection[T]) update(i int, fn func(*T)) {
	if i < 0 || i >= len(c.items) {
		return
	}
	fn(&c.items[i])
}

func (c *collection[T]) len() int { return len(c.items) }

// snapshot returns a copy of the rows, suitable for projection into a draft.
func (c *collection[T]) snapshot() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}
