package astar

// nodeItem is one open-set entry: a row-major cell index with its priority.
// seq is the insertion counter used to break f ties, earliest first.
type nodeItem struct {
	idx int32
	f   float64
	seq uint64
}

// nodePQ is a min-heap of nodeItem ordered by (f, seq).
// Lazy decrease-key: improved nodes are pushed again and stale entries are
// ignored when popped.
type nodePQ []nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by f, then by insertion sequence.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap. Called by heap.Push.
func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(nodeItem)) }

// Pop removes and returns the last element. Called by heap.Pop.
func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
