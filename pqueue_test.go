package huffman

import (
	"errors"
	"math/rand"
	"testing"
)

func intLess(a, b int) bool    { return a < b }
func intGreater(a, b int) bool { return a > b }

func expectTop[T comparable](t *testing.T, pq *PQueue[T], expect T) {
	t.Helper()
	actual, err := pq.Top()
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if expect != actual {
		t.Errorf("wrong top:\n\texpect: %v\n\tactual: %v", expect, actual)
	}
}

func TestPQueue_Less(t *testing.T) {
	pq := NewPQueue(intLess)
	pq.Push(42)
	pq.Push(23)
	pq.Push(2)
	pq.Push(34)

	expectTop(t, pq, 2)
	if pq.Size() != 4 {
		t.Errorf("expected size 4, got %d", pq.Size())
	}
	if _, err := pq.Pop(); err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	expectTop(t, pq, 23)
}

func TestPQueue_Greater(t *testing.T) {
	pq := NewPQueue(intGreater)
	pq.Push(42)
	pq.Push(23)
	pq.Push(2)
	pq.Push(34)

	expectTop(t, pq, 42)
	if pq.Size() != 4 {
		t.Errorf("expected size 4, got %d", pq.Size())
	}
	if _, err := pq.Pop(); err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	expectTop(t, pq, 34)
}

type boxed struct {
	n int
}

func TestPQueue_CustomType(t *testing.T) {
	items := []*boxed{{42}, {23}, {2}, {34}}
	pq := NewPQueue(func(a, b *boxed) bool { return a.n < b.n })
	for _, item := range items {
		pq.Push(item)
	}
	expectTop(t, pq, items[2])
	if _, err := pq.Pop(); err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	expectTop(t, pq, items[1])
}

func TestPQueue_Underflow(t *testing.T) {
	pq := NewPQueue(intLess)
	if _, err := pq.Top(); !errors.Is(err, ErrUnderflow) {
		t.Errorf("Top: expected ErrUnderflow, got %v", err)
	}
	if _, err := pq.Pop(); !errors.Is(err, ErrUnderflow) {
		t.Errorf("Pop: expected ErrUnderflow, got %v", err)
	}
	if pq.Size() != 0 {
		t.Errorf("expected size 0, got %d", pq.Size())
	}

	pq.Push(7)
	expectTop(t, pq, 7)
	if _, err := pq.Pop(); err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	if _, err := pq.Pop(); !errors.Is(err, ErrUnderflow) {
		t.Errorf("Pop: expected ErrUnderflow, got %v", err)
	}
}

func TestPQueue_Ordering(t *testing.T) {
	rng := rand.New(rand.NewSource(0x5a025ca1))
	pq := NewPQueue(intLess)

	last := -1
	for i := 0; i < 2000; i++ {
		if pq.Size() == 0 || rng.Intn(3) != 0 {
			pq.Push(rng.Intn(500))
			last = -1
			continue
		}

		top, err := pq.Top()
		if err != nil {
			t.Fatalf("Top failed: %v", err)
		}
		popped, err := pq.Pop()
		if err != nil {
			t.Fatalf("Pop failed: %v", err)
		}
		if top != popped {
			t.Fatalf("Top returned %d but Pop returned %d", top, popped)
		}
		if popped < last {
			t.Fatalf("Pop returned %d after %d", popped, last)
		}
		last = popped
	}

	last = -1
	for pq.Size() != 0 {
		popped, err := pq.Pop()
		if err != nil {
			t.Fatalf("Pop failed: %v", err)
		}
		if popped < last {
			t.Fatalf("Pop returned %d after %d", popped, last)
		}
		last = popped
	}
}
