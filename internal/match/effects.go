package match

import "container/heap"

type effect struct {
	slot   string
	expiry float64
	index  int
}

// effectHeap is a min-heap on expiry.
type effectHeap []*effect

func (h effectHeap) Len() int           { return len(h) }
func (h effectHeap) Less(i, j int) bool { return h[i].expiry < h[j].expiry }
func (h effectHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *effectHeap) Push(x any) {
	e := x.(*effect)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *effectHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// activeEffects holds one expiry per ability slot.
type activeEffects struct {
	heap   effectHeap
	bySlot map[string]*effect
}

func (a *activeEffects) set(slot string, expiry float64) {
	if a.bySlot == nil {
		a.bySlot = make(map[string]*effect)
	}
	if e, ok := a.bySlot[slot]; ok {
		e.expiry = expiry
		heap.Fix(&a.heap, e.index)
		return
	}
	e := &effect{slot: slot, expiry: expiry}
	heap.Push(&a.heap, e)
	a.bySlot[slot] = e
}

// prune drops every effect whose expiry is at or before now.
func (a *activeEffects) prune(now float64) {
	for len(a.heap) > 0 && a.heap[0].expiry <= now {
		e := heap.Pop(&a.heap).(*effect)
		delete(a.bySlot, e.slot)
	}
}

// anyActive reports whether some effect outlives now.
func (a *activeEffects) anyActive(now float64) bool {
	for _, e := range a.heap {
		if e.expiry > now {
			return true
		}
	}
	return false
}

func (a *activeEffects) reset() {
	a.heap = nil
	clear(a.bySlot)
}

func (a *activeEffects) slots() map[string]float64 {
	out := make(map[string]float64, len(a.heap))
	for _, e := range a.heap {
		out[e.slot] = e.expiry
	}
	return out
}
