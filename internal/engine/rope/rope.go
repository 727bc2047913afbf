package rope

import (
	"io"
	"strings"
)

// Rope is an immutable rope data structure for text storage.
// Operations return new Rope values; the original is never modified.
// This enables cheap snapshots and thread-safe concurrent read access.
//
// The zero value is an empty rope ready to use.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() Rope {
	return Rope{}
}

// FromString creates a rope holding s in a single leaf.
func FromString(s string) Rope {
	return Rope{root: newLeaf(NewChunk(s))}
}

// FromChunk creates a rope whose only leaf is c.
func FromChunk(c Chunk) Rope {
	return Rope{root: newLeaf(c)}
}

// Concat returns the rope representing a followed by b.
// If either side is empty the other is returned as is; otherwise exactly one
// internal node is allocated, sharing both inputs.
func Concat(a, b Rope) Rope {
	aLen := a.Len()
	if aLen == 0 {
		return b
	}
	if b.Len() == 0 {
		return a
	}
	return Rope{root: join(a.root, b.root, aLen)}
}

// Concat returns r followed by other.
func (r Rope) Concat(other Rope) Rope {
	return Concat(r, other)
}

// Len returns the total byte length.
// Cost is proportional to the depth of the right spine.
func (r Rope) Len() ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.len()
}

// LenLines returns the number of newline characters in the rope.
// A trailing line without a newline is not counted.
func (r Rope) LenLines() uint32 {
	if r.root == nil {
		return 0
	}
	return r.root.lines()
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() uint32 {
	return r.LenLines() + 1
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// CharSubstr returns the n bytes starting at idx.
// It panics with a *RangeError if idx+n exceeds Len().
func (r Rope) CharSubstr(idx, n ByteOffset) Rope {
	total := r.Len()
	if idx > total || n > total-idx {
		panicRange("substr", Span(uint64(idx), uint64(idx)+uint64(n)), ErrOffsetOutOfRange)
	}
	if r.root == nil {
		return r
	}
	return Rope{root: r.root.substr(idx, n, total)}
}

// CharSlice returns the bytes selected by rg. An unbounded end resolves to
// Len(). It panics with a *RangeError if the range is inverted or exceeds
// the rope.
func (r Rope) CharSlice(rg Range) Rope {
	start, n := rg.resolve("slice", r.Len())
	return r.CharSubstr(start, n)
}

// LineStart returns the byte offset at which the given zero-based line
// begins. Lines past the last newline resolve to Len().
func (r Rope) LineStart(line uint32) ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.lineStart(line)
}

// LineSubstr returns n lines starting at line idx, including the newline
// that terminates the last of them when present.
func (r Rope) LineSubstr(idx, n uint32) Rope {
	return r.LineSlice(Span(uint64(idx), uint64(idx)+uint64(n)))
}

// LineSlice returns the lines selected by rg. An included end line keeps its
// terminating newline.
func (r Rope) LineSlice(rg Range) Rope {
	var start ByteOffset
	switch rg.Start.Kind {
	case Included:
		start = r.LineStart(lineIndex(rg.Start.Value))
	case Excluded:
		start = r.LineStart(nextLineIndex(rg.Start.Value))
	}

	switch rg.End.Kind {
	case Included:
		end := r.LineStart(nextLineIndex(rg.End.Value))
		return r.CharSlice(Span(uint64(start), uint64(end)))
	case Excluded:
		end := r.LineStart(lineIndex(rg.End.Value))
		return r.CharSlice(Span(uint64(start), uint64(end)))
	default:
		return r.CharSlice(From(uint64(start)))
	}
}

// Line returns the given line including its newline, if any.
func (r Rope) Line(line uint32) Rope {
	return r.LineSubstr(line, 1)
}

// ByteAt returns the byte at the given offset.
// Returns 0 and false if offset is out of range.
func (r Rope) ByteAt(offset ByteOffset) (byte, bool) {
	if offset >= r.Len() {
		return 0, false
	}
	return r.root.byteAt(offset), true
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	var sb strings.Builder
	sb.Grow(int(r.Len()))
	r.eachChunk(func(c Chunk) bool {
		sb.WriteString(c.String())
		return true
	})
	return sb.String()
}

// WriteTo writes the rope's text to w chunk by chunk.
func (r Rope) WriteTo(w io.Writer) (int64, error) {
	var (
		total int64
		err   error
	)
	r.eachChunk(func(c Chunk) bool {
		var n int
		n, err = io.WriteString(w, c.String())
		total += int64(n)
		return err == nil
	})
	return total, err
}

// Depth returns the height of the rope tree. An empty rope and a single leaf
// both have depth 0.
func (r Rope) Depth() int {
	if r.root == nil {
		return 0
	}
	return r.root.depth()
}

// IsBalanced reports whether the tree is no deeper than maxDepth.
func (r Rope) IsBalanced(maxDepth int) bool {
	return r.Depth() <= maxDepth
}

// LeafCount returns the number of non-empty leaves.
func (r Rope) LeafCount() int {
	if r.root == nil {
		return 0
	}
	return len(r.root.appendLeaves(nil))
}

// Rebalance returns a rope with the same content and leaves arranged in a
// tree of minimal height. Query results are unchanged; only their cost is.
func (r Rope) Rebalance() Rope {
	if r.root == nil || r.root.isLeaf() {
		return r
	}
	return Rope{root: buildBalanced(r.root.appendLeaves(nil))}
}
