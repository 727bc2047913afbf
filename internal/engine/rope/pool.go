package rope

import "sync"

// stackPool recycles the explicit stacks used by traversals that start and
// finish inside a single call (String, WriteTo, Equal, Rebalance). Iterators
// handed to callers allocate their own stack, since nothing tells us when
// the caller is done with them.
var stackPool = sync.Pool{
	New: func() any {
		s := make([]*node, 0, 32)
		return &s
	},
}

// getStack retrieves an empty node stack from the pool.
func getStack() *[]*node {
	s := stackPool.Get().(*[]*node)
	*s = (*s)[:0]
	return s
}

// putStack returns a stack to the pool. The stack's backing array may have
// grown since getStack; the larger one is kept.
func putStack(p *[]*node, grown []*node) {
	if cap(grown) > cap(*p) {
		*p = grown
	}
	// Clear references so pooled stacks do not pin old trees.
	clear((*p)[:cap(*p)])
	*p = (*p)[:0]
	stackPool.Put(p)
}

// pooledWalker returns a walker whose stack comes from stackPool. Call
// release once the walk is over.
func pooledWalker[T any](root *node, leaf unpacker[T]) walker[T] {
	p := getStack()
	w := walker[T]{leaf: leaf, pooled: p, stack: *p}
	if root != nil {
		w.stack = append(w.stack, root)
	}
	return w
}

// release hands a pooled walker's stack back to stackPool.
func (w *walker[T]) release() {
	if w.pooled == nil {
		return
	}
	putStack(w.pooled, w.stack)
	w.pooled, w.stack = nil, nil
}

// eachChunk calls fn with every non-empty chunk in document order until fn
// returns false.
func (r Rope) eachChunk(fn func(Chunk) bool) {
	w := pooledWalker[Chunk](r.root, &chunkUnpacker{})
	defer w.release()
	for c, ok := w.next(); ok; c, ok = w.next() {
		if !fn(c) {
			return
		}
	}
}
