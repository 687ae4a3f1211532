package search

import (
	"cmp"
	"container/heap"
	"slices"
)

// cell is one evaluated pair, identified by its row-major index i*cols+j.
type cell struct {
	index int
	err   float64
}

// compareCells orders by absolute error, then by index. Indices are unique, so
// this is a total order and the ranking is deterministic.
func compareCells(a, b cell) int {
	if c := cmp.Compare(a.err, b.err); c != 0 {
		return c
	}
	return cmp.Compare(a.index, b.index)
}

// boundedTop keeps the k best cells seen so far in a max-heap rooted at the worst.
type boundedTop struct {
	k     int
	cells []cell
}

func newBoundedTop(k int) *boundedTop {
	return &boundedTop{k: k, cells: make([]cell, 0, k)}
}

func (t *boundedTop) Len() int           { return len(t.cells) }
func (t *boundedTop) Less(i, j int) bool { return compareCells(t.cells[i], t.cells[j]) > 0 }
func (t *boundedTop) Swap(i, j int)      { t.cells[i], t.cells[j] = t.cells[j], t.cells[i] }
func (t *boundedTop) Push(x any)         { t.cells = append(t.cells, x.(cell)) }

func (t *boundedTop) Pop() any {
	last := t.cells[len(t.cells)-1]
	t.cells = t.cells[:len(t.cells)-1]
	return last
}

func (t *boundedTop) offer(c cell) {
	if len(t.cells) < t.k {
		heap.Push(t, c)
		return
	}
	if compareCells(c, t.cells[0]) < 0 {
		t.cells[0] = c
		heap.Fix(t, 0)
	}
}

// sorted returns the retained cells in rank order. The heap is consumed.
func (t *boundedTop) sorted() []cell {
	out := t.cells
	t.cells = nil
	slices.SortFunc(out, compareCells)
	return out
}

// head points at the next unconsumed cell of one sorted partial list.
type head struct {
	list, pos int
}

type headHeap struct {
	lists [][]cell
	heads []head
}

func (h *headHeap) Len() int { return len(h.heads) }
func (h *headHeap) Less(i, j int) bool {
	a, b := h.heads[i], h.heads[j]
	return compareCells(h.lists[a.list][a.pos], h.lists[b.list][b.pos]) < 0
}
func (h *headHeap) Swap(i, j int) { h.heads[i], h.heads[j] = h.heads[j], h.heads[i] }
func (h *headHeap) Push(x any)    { h.heads = append(h.heads, x.(head)) }

func (h *headHeap) Pop() any {
	last := h.heads[len(h.heads)-1]
	h.heads = h.heads[:len(h.heads)-1]
	return last
}

// mergeTopK k-way merges sorted partial rankings and keeps the first k cells.
func mergeTopK(lists [][]cell, k int) []cell {
	if len(lists) == 1 {
		return lists[0][:min(k, len(lists[0]))]
	}

	h := &headHeap{lists: lists}
	for n, l := range lists {
		if len(l) > 0 {
			h.heads = append(h.heads, head{list: n})
		}
	}
	heap.Init(h)

	out := make([]cell, 0, k)
	for len(out) < k && h.Len() > 0 {
		top := h.heads[0]
		out = append(out, lists[top.list][top.pos])
		if top.pos+1 < len(lists[top.list]) {
			h.heads[0].pos++
			heap.Fix(h, 0)
		} else {
			heap.Pop(h)
		}
	}
	return out
}
