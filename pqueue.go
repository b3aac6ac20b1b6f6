package huffman

import (
	"github.com/pkg/errors"
)

// PQueue is a binary heap ordered by an injected comparison.  The element for
// which less reports true against every other element sits at the top; pass a
// "greater" function to get a max-heap.
//
// The zero value is not usable; call NewPQueue.
type PQueue[T any] struct {
	items []T
	less  func(a, b T) bool
}

// NewPQueue returns an empty PQueue ordered by less.
func NewPQueue[T any](less func(a, b T) bool) *PQueue[T] {
	return &PQueue[T]{less: less}
}

// Size returns the number of queued items.
func (pq *PQueue[T]) Size() int {
	return len(pq.items)
}

// Top returns the minimum item without removing it.
func (pq *PQueue[T]) Top() (T, error) {
	if len(pq.items) == 0 {
		var zero T
		return zero, errors.Wrap(ErrUnderflow, "top of empty queue")
	}
	return pq.items[0], nil
}

// Push inserts item in O(log n).
func (pq *PQueue[T]) Push(item T) {
	pq.items = append(pq.items, item)
	pq.up(len(pq.items) - 1)
}

// Pop removes and returns the minimum item in O(log n).
func (pq *PQueue[T]) Pop() (T, error) {
	n := len(pq.items)
	if n == 0 {
		var zero T
		return zero, errors.Wrap(ErrUnderflow, "pop of empty queue")
	}
	top := pq.items[0]
	last := n - 1
	pq.items[0] = pq.items[last]
	var zero T
	pq.items[last] = zero
	pq.items = pq.items[:last]
	pq.down(0)
	return top, nil
}

func (pq *PQueue[T]) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !pq.less(pq.items[i], pq.items[parent]) {
			break
		}
		pq.swap(i, parent)
		i = parent
	}
}

func (pq *PQueue[T]) down(i int) {
	n := len(pq.items)
	for {
		child := 2*i + 1
		if child >= n {
			break
		}
		if right := child + 1; right < n && pq.less(pq.items[right], pq.items[child]) {
			child = right
		}
		if !pq.less(pq.items[child], pq.items[i]) {
			break
		}
		pq.swap(i, child)
		i = child
	}
}

func (pq *PQueue[T]) swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
}
