package rope

// node is either a leaf wrapping a Chunk or an internal node joining two
// non-empty subtrees. A node with a nil left child is a leaf.
//
// leftLen and leftLines cache the size of the left subtree, and height the
// depth of the node. They are set when the node is built and never
// recomputed; subtrees are immutable, so the cache cannot go stale.
type node struct {
	chunk Chunk // leaf content

	left      *node
	right     *node
	leftLen   ByteOffset
	leftLines uint32
	height    int
}

// newLeaf wraps a chunk in a leaf node.
func newLeaf(c Chunk) *node {
	return &node{chunk: c}
}

// join builds the internal node for a followed by b. Either side may be nil,
// in which case the other is returned unchanged. aLen must equal a.len().
func join(a, b *node, aLen ByteOffset) *node {
	if a == nil || aLen == 0 {
		return b
	}
	if b == nil {
		return a
	}
	return &node{
		left:      a,
		right:     b,
		leftLen:   aLen,
		leftLines: a.lines(),
		height:    1 + max(a.height, b.height),
	}
}

// isLeaf returns true if this is a leaf node.
func (n *node) isLeaf() bool {
	return n.left == nil
}

// len walks the right spine summing cached left lengths.
func (n *node) len() ByteOffset {
	var total ByteOffset
	for !n.isLeaf() {
		total += n.leftLen
		n = n.right
	}
	return total + ByteOffset(n.chunk.Len())
}

// lines walks the right spine summing cached left newline counts.
func (n *node) lines() uint32 {
	var total uint32
	for !n.isLeaf() {
		total += n.leftLines
		n = n.right
	}
	return total + n.chunk.Lines()
}

// substr extracts cnt bytes starting at idx. total is the byte length of n
// and lets whole subtrees be shared instead of rebuilt. A zero-length
// request yields nil.
func (n *node) substr(idx, cnt, total ByteOffset) *node {
	if cnt == 0 {
		return nil
	}
	if idx == 0 && cnt == total {
		return n
	}
	if n.isLeaf() {
		return newLeaf(n.chunk.Substr(int(idx), int(cnt)))
	}

	switch {
	case idx >= n.leftLen:
		return n.right.substr(idx-n.leftLen, cnt, total-n.leftLen)
	case idx+cnt <= n.leftLen:
		return n.left.substr(idx, cnt, n.leftLen)
	default:
		// Straddles the split point: take the tail of the left side and
		// the head of the right side.
		head := n.leftLen - idx
		left := n.left.substr(idx, head, n.leftLen)
		right := n.right.substr(0, cnt-head, total-n.leftLen)
		return join(left, right, head)
	}
}

// lineStart returns the byte offset where the given line begins.
func (n *node) lineStart(line uint32) ByteOffset {
	var offset ByteOffset
	for !n.isLeaf() {
		if line <= n.leftLines {
			n = n.left
			continue
		}
		line -= n.leftLines
		offset += n.leftLen
		n = n.right
	}
	return offset + lineStartIn(n.chunk.String(), line)
}

// byteAt returns the byte at idx. idx must be less than n.len().
func (n *node) byteAt(idx ByteOffset) byte {
	for !n.isLeaf() {
		if idx < n.leftLen {
			n = n.left
			continue
		}
		idx -= n.leftLen
		n = n.right
	}
	return n.chunk.String()[idx]
}

// depth returns the height of the subtree; a leaf has depth 0.
func (n *node) depth() int {
	return n.height
}

// appendLeaves appends the non-empty leaves of n in document order.
func (n *node) appendLeaves(dst []*node) []*node {
	p := getStack()
	stack := append(*p, n)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch {
		case !cur.isLeaf():
			stack = append(stack, cur.right, cur.left)
		case !cur.chunk.IsEmpty():
			dst = append(dst, cur)
		}
	}
	putStack(p, stack)
	return dst
}

// buildBalanced joins leaves pairwise into a tree of minimal height.
func buildBalanced(leaves []*node) *node {
	switch len(leaves) {
	case 0:
		return nil
	case 1:
		return leaves[0]
	}
	mid := len(leaves) / 2
	left := buildBalanced(leaves[:mid])
	right := buildBalanced(leaves[mid:])
	return join(left, right, left.len())
}
