package gfx2d

// arena is a fixed-capacity staging area for one vertex layout.
// The slice length is the cursor; the backing array is allocated once.
type arena[V any] struct {
	recs []V
}

func newArena[V any](capacity int) arena[V] {
	return arena[V]{recs: make([]V, 0, capacity)}
}

func (a *arena[V]) Len() int   { return len(a.recs) }
func (a *arena[V]) Full() bool { return len(a.recs) == cap(a.recs) }

// Push appends v. The caller must flush first when the arena is Full.
func (a *arena[V]) Push(v V) {
	a.recs = append(a.recs, v)
}

// Records returns the staged records. The slice is only valid until the
// next Push, Reset or Consume.
func (a *arena[V]) Records() []V {
	return a.recs
}

// Reset empties the arena without releasing its storage.
func (a *arena[V]) Reset() {
	a.recs = a.recs[:0]
}

// Consume drops the first n records and moves the rest to the front.
func (a *arena[V]) Consume(n int) {
	rest := copy(a.recs, a.recs[n:])
	a.recs = a.recs[:rest]
}

// trianglePrefix returns the largest multiple of 3 not above n.
func trianglePrefix(n int) int {
	return n - n%3
}
