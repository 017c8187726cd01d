// Package frontier provides the open-set priority queue used by the path
// planner: a binary min-heap keyed by float64 score with membership tests and
// decrease-key.
//
// Complexity:
//
//   - Push, Pop, Update: O(log n).
//   - Contains, Score, Len, Peek: O(1).
//
// Items are compared by identity (T is comparable), never by score. Equal
// scores pop in insertion order; callers should not rely on more than that.
package frontier

import "container/heap"

// entry is one heap slot. index is kept current by entries.Swap so Update
// can call heap.Fix directly.
type entry[T comparable] struct {
	item  T
	score float64
	seq   uint64
	index int
}

type entries[T comparable] []*entry[T]

func (h entries[T]) Len() int { return len(h) }

func (h entries[T]) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score < h[j].score
	}
	return h[i].seq < h[j].seq
}

func (h entries[T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entries[T]) Push(x any) {
	e := x.(*entry[T])
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entries[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Queue is a min-priority queue of distinct items. The zero value is not
// usable; call New.
type Queue[T comparable] struct {
	heap  entries[T]
	index map[T]*entry[T]
	seq   uint64
}

// New returns an empty Queue.
func New[T comparable]() *Queue[T] {
	return &Queue[T]{index: make(map[T]*entry[T])}
}

// NewWithCapacity returns an empty Queue with room for n items.
func NewWithCapacity[T comparable](n int) *Queue[T] {
	return &Queue[T]{
		heap:  make(entries[T], 0, n),
		index: make(map[T]*entry[T], n),
	}
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return len(q.heap) }

// Push inserts item with score. If item is already queued its score is
// replaced, as with Update.
func (q *Queue[T]) Push(item T, score float64) {
	if q.Update(item, score) {
		return
	}
	e := &entry[T]{item: item, score: score, seq: q.seq}
	q.seq++
	q.index[item] = e
	heap.Push(&q.heap, e)
}

// Pop removes and returns the item with the lowest score. ok is false when
// the queue is empty.
func (q *Queue[T]) Pop() (item T, ok bool) {
	if len(q.heap) == 0 {
		return item, false
	}
	e := heap.Pop(&q.heap).(*entry[T])
	delete(q.index, e.item)
	return e.item, true
}

// Peek returns the lowest-score item and its score without removing it.
func (q *Queue[T]) Peek() (item T, score float64, ok bool) {
	if len(q.heap) == 0 {
		return item, 0, false
	}
	e := q.heap[0]
	return e.item, e.score, true
}

// Contains reports whether item is queued.
func (q *Queue[T]) Contains(item T) bool {
	_, ok := q.index[item]
	return ok
}

// Score returns the current score of a queued item.
func (q *Queue[T]) Score(item T) (float64, bool) {
	e, ok := q.index[item]
	if !ok {
		return 0, false
	}
	return e.score, true
}

// Update changes the score of a queued item and restores heap order. It
// reports false, leaving the queue unchanged, when item is not queued.
// Scores may move in either direction.
func (q *Queue[T]) Update(item T, score float64) bool {
	e, ok := q.index[item]
	if !ok {
		return false
	}
	e.score = score
	heap.Fix(&q.heap, e.index)
	return true
}
