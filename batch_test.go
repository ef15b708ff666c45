package gfx2d

import "testing"

func TestArena(t *testing.T) {
	a := newArena[int](4)
	if a.Len() != 0 || a.Full() {
		t.Fatalf("new arena Len = %d Full = %v, want 0 false", a.Len(), a.Full())
	}
	for i := range 4 {
		a.Push(i)
	}
	if !a.Full() {
		t.Error("arena with 4 of 4 records should be Full")
	}

	a.Consume(3)
	if a.Len() != 1 || a.Records()[0] != 3 {
		t.Errorf("after Consume(3) records = %v, want [3]", a.Records())
	}

	a.Reset()
	if a.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", a.Len())
	}
}

func TestArenaDoesNotReallocate(t *testing.T) {
	a := newArena[Vertex](BufferSize)
	before := &a.recs[:1][0]
	for range BufferSize {
		a.Push(Vertex{})
	}
	a.Consume(BufferSize - 1)
	for range BufferSize - 1 {
		a.Push(Vertex{})
	}
	if &a.recs[0] != before {
		t.Error("arena reallocated its backing array")
	}
}

func TestTrianglePrefix(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 0}, {2, 0}, {3, 3}, {1023, 1023}, {1024, 1023}, {1026, 1026},
	}
	for _, tt := range tests {
		if got := trianglePrefix(tt.n); got != tt.want {
			t.Errorf("trianglePrefix(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
