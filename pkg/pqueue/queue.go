// Package pqueue implements an indexed binary min-heap with decrease-key,
// the queue behind every shortest-path search in sparsestress.
//
// A Queue is created with a fixed number of slots. Each slot id in
// [0, capacity) carries a value that starts at +Inf and can only decrease.
// The first finite assignment inserts the slot; later, smaller assignments
// move it up. Values stay readable after the slot has been popped, which
// lets Dijkstra-style callers use the queue as their distance array.
//
//	q := pqueue.New(n)
//	q.Upsert(src, 0)
//	for !q.Empty() {
//	    u := q.Pop()
//	    d := q.Value(u)
//	    ...
//	}
package pqueue

import (
	"fmt"
	"math"
)

// MaxCapacity is the largest slot count a Queue can address.
// Slot ids and heap positions are stored as int32.
const MaxCapacity = math.MaxInt32

// Queue is an indexed min-heap over slot ids 0..capacity-1.
// It is not safe for concurrent use.
type Queue struct {
	size  int
	pos   []int32 // slot -> 1-based heap position, 0 when not queued
	heap  []int32 // 1-based; heap[0] unused
	value []float64
}

// New returns an empty queue with the given number of slots.
// It panics if capacity is negative or exceeds MaxCapacity; callers
// validate untrusted sizes with errors.ValidatePivotCapacity first.
func New(capacity int) *Queue {
	if capacity < 0 || capacity > MaxCapacity {
		panic(fmt.Sprintf("pqueue: capacity %d out of range", capacity))
	}
	q := &Queue{
		pos:   make([]int32, capacity),
		heap:  make([]int32, capacity+1),
		value: make([]float64, capacity),
	}
	for i := range q.value {
		q.value[i] = math.Inf(1)
	}
	return q
}

// Cap returns the number of slots.
func (q *Queue) Cap() int { return len(q.value) }

// Len returns the number of queued slots.
func (q *Queue) Len() int { return q.size }

// Empty reports whether no slot is queued.
func (q *Queue) Empty() bool { return q.size == 0 }

// Value returns the current value of slot id, +Inf if it was never set.
// The value survives Pop.
func (q *Queue) Value(id int) float64 { return q.value[id] }

// Upsert lowers the value of slot id to v. It is a no-op unless v is
// strictly smaller than the current value. A slot that is not queued is
// inserted.
func (q *Queue) Upsert(id int, v float64) {
	if !(v < q.value[id]) {
		return
	}
	q.value[id] = v
	if q.pos[id] == 0 {
		q.size++
		q.pos[id] = int32(q.size)
		q.heap[q.size] = int32(id)
	}
	q.up(int(q.pos[id]))
}

// Peek returns the slot with the minimum value without removing it.
// It panics on an empty queue.
func (q *Queue) Peek() int {
	if q.size == 0 {
		panic("pqueue: Peek on empty queue")
	}
	return int(q.heap[1])
}

// Pop removes and returns the slot with the minimum value.
// Ties are broken by heap position. It panics on an empty queue.
func (q *Queue) Pop() int {
	if q.size == 0 {
		panic("pqueue: Pop on empty queue")
	}
	min := q.heap[1]
	last := q.heap[q.size]
	q.size--
	q.pos[min] = 0
	if q.size > 0 {
		q.heap[1] = last
		q.pos[last] = 1
		q.down(1)
	}
	return int(min)
}

// Reset clears every value back to +Inf and empties the queue.
func (q *Queue) Reset() {
	for i := 1; i <= q.size; i++ {
		q.pos[q.heap[i]] = 0
	}
	q.size = 0
	for i := range q.value {
		q.value[i] = math.Inf(1)
	}
}

func (q *Queue) up(c int) {
	id := q.heap[c]
	v := q.value[id]
	for p := c >> 1; p >= 1 && v < q.value[q.heap[p]]; p = c >> 1 {
		q.heap[c] = q.heap[p]
		q.pos[q.heap[c]] = int32(c)
		c = p
	}
	q.heap[c] = id
	q.pos[id] = int32(c)
}

func (q *Queue) down(p int) {
	id := q.heap[p]
	v := q.value[id]
	for c := p << 1; c <= q.size; c = p << 1 {
		if c < q.size && q.value[q.heap[c]] > q.value[q.heap[c+1]] {
			c++
		}
		if !(v > q.value[q.heap[c]]) {
			break
		}
		q.heap[p] = q.heap[c]
		q.pos[q.heap[p]] = int32(p)
		p = c
	}
	q.heap[p] = id
	q.pos[id] = int32(p)
}
