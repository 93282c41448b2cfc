package smpl

import "container/heap"

// eventList is the future-event list (EL): an ordered collection of
// pending events keyed by simulated time, totally ordered by
// (time, insertion sequence) per invariant 2. It is a thin
// container/heap priority queue, the same shape as the teacher's
// EventHeap (cluster/event_heap.go), minus that type's
// domain-specific event-type-priority tier — the spec needs only the
// two-level (time, seq) key.
type eventList[T comparable] struct {
	records []eventRecord[T]
}

func newEventList[T comparable]() *eventList[T] {
	el := &eventList[T]{records: make([]eventRecord[T], 0)}
	heap.Init(el)
	return el
}

// Len implements heap.Interface.
func (el *eventList[T]) Len() int { return len(el.records) }

// Less implements heap.Interface: earlier time first, insertion
// sequence breaks ties (invariant 2 — stable FIFO on ties).
func (el *eventList[T]) Less(i, j int) bool {
	ri, rj := el.records[i], el.records[j]
	if ri.event.Time != rj.event.Time {
		return ri.event.Time < rj.event.Time
	}
	return ri.seq < rj.seq
}

// Swap implements heap.Interface.
func (el *eventList[T]) Swap(i, j int) {
	el.records[i], el.records[j] = el.records[j], el.records[i]
}

// Push implements heap.Interface.
func (el *eventList[T]) Push(x any) {
	el.records = append(el.records, x.(eventRecord[T]))
}

// Pop implements heap.Interface.
func (el *eventList[T]) Pop() any {
	old := el.records
	n := len(old)
	item := old[n-1]
	el.records = old[:n-1]
	return item
}

// insert places an event with the given insertion sequence.
func (el *eventList[T]) insert(rec eventRecord[T]) {
	heap.Push(el, rec)
}

// popMin removes and returns the earliest event, and true. Returns
// the zero eventRecord and false when the list is empty.
func (el *eventList[T]) popMin() (eventRecord[T], bool) {
	if el.Len() == 0 {
		return eventRecord[T]{}, false
	}
	return heap.Pop(el).(eventRecord[T]), true
}
