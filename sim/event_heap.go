package sim

import "container/heap"

// EventHeap implements a priority queue with deterministic ordering.
// Ordering: timestamp → insertion order. The insertion sequence number is
// assigned by Schedule, so events scheduled at the same tick are executed
// FIFO regardless of heap internals. This tie-break is part of the engine's
// determinism contract.
type EventHeap struct {
	entries []eventEntry
	nextSeq uint64
}

type eventEntry struct {
	ev  Event
	seq uint64
}

// NewEventHeap creates an empty event heap.
func NewEventHeap() *EventHeap {
	h := &EventHeap{entries: make([]eventEntry, 0)}
	heap.Init(h)
	return h
}

// Len implements heap.Interface.
func (h *EventHeap) Len() int {
	return len(h.entries)
}

// Less implements heap.Interface with deterministic ordering.
func (h *EventHeap) Less(i, j int) bool {
	ei, ej := h.entries[i], h.entries[j]

	// Primary: timestamp (lower first)
	if ei.ev.Timestamp() != ej.ev.Timestamp() {
		return ei.ev.Timestamp() < ej.ev.Timestamp()
	}

	// Secondary: insertion order (lower first, deterministic tie-breaker)
	return ei.seq < ej.seq
}

// Swap implements heap.Interface.
func (h *EventHeap) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
}

// Push implements heap.Interface.
func (h *EventHeap) Push(x any) {
	h.entries = append(h.entries, x.(eventEntry))
}

// Pop implements heap.Interface.
func (h *EventHeap) Pop() any {
	old := h.entries
	n := len(old)
	item := old[n-1]
	h.entries = old[0 : n-1]
	return item
}

// Schedule adds an event to the heap, stamping its insertion sequence.
func (h *EventHeap) Schedule(e Event) {
	heap.Push(h, eventEntry{ev: e, seq: h.nextSeq})
	h.nextSeq++
}

// PopNext removes and returns the next event, or nil if the heap is empty.
func (h *EventHeap) PopNext() Event {
	if h.Len() == 0 {
		return nil
	}
	return heap.Pop(h).(eventEntry).ev
}

// Peek returns the next event without removing it, or nil if empty.
func (h *EventHeap) Peek() Event {
	if h.Len() == 0 {
		return nil
	}
	return h.entries[0].ev
}
