package rope

// LineIterator iterates over the logical lines of a rope. Each line is a
// Rope sharing structure with the original and keeps its terminating
// newline; a final line without one is yielded as is.
//
// Each step slices the first line off the remaining view and then re-slices
// the view past it, so a full pass costs O(n log n) rather than O(n).
type LineIterator struct {
	rest  Rope
	line  Rope
	index uint32
	start ByteOffset
	next  ByteOffset
	begun bool
}

// Lines returns an iterator over all lines in the rope. An empty rope has no
// lines.
func (r Rope) Lines() *LineIterator {
	return &LineIterator{rest: r}
}

// Next advances to the next line.
// Returns true if there is a line, false if iteration is complete.
func (it *LineIterator) Next() bool {
	if it.rest.IsEmpty() {
		return false
	}
	if it.begun {
		it.index++
	}
	it.begun = true

	it.line = it.rest.LineSlice(Span(0, 1))
	it.rest = it.rest.LineSlice(From(1))
	it.start = it.next
	it.next += it.line.Len()
	return true
}

// Line returns the current line, including its newline if present.
func (it *LineIterator) Line() Rope {
	return it.line
}

// Text returns the current line as a string, including its newline.
func (it *LineIterator) Text() string {
	return it.line.String()
}

// Index returns the current line number (0-indexed).
func (it *LineIterator) Index() uint32 {
	return it.index
}

// StartOffset returns the byte offset of the start of the current line.
func (it *LineIterator) StartOffset() ByteOffset {
	return it.start
}

// Remaining returns the part of the rope not yet visited.
func (it *LineIterator) Remaining() Rope {
	return it.rest
}
