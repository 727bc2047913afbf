package rope

import (
	"iter"
	"unicode/utf8"
)

// unpacker expands the content of one leaf into a sequence of values. The
// set of unpackers is closed: chunks, runes and bytes.
type unpacker[T any] interface {
	// load activates the unpacker over a new leaf.
	load(c Chunk)
	// next returns the next value of the active leaf, or false once the
	// leaf is drained.
	next() (T, bool)
}

// finisher is implemented by unpackers that may hold state across leaves and
// need a final flush when the traversal ends.
type finisher[T any] interface {
	finish() (T, bool)
}

// walker is the depth-first traversal shared by every iterator. It keeps an
// explicit stack of subtrees; a popped internal node pushes its right child
// and then its left child so that leaves come off in document order.
type walker[T any] struct {
	stack  []*node
	pooled *[]*node
	leaf   unpacker[T]
	active bool
}

func newWalker[T any](root *node, leaf unpacker[T]) walker[T] {
	w := walker[T]{leaf: leaf}
	if root != nil {
		w.stack = make([]*node, 1, 16)
		w.stack[0] = root
	}
	return w
}

// next returns the next value in document order.
func (w *walker[T]) next() (T, bool) {
	for {
		if w.active {
			if v, ok := w.leaf.next(); ok {
				return v, true
			}
			w.active = false
		}

		if len(w.stack) == 0 {
			if f, ok := w.leaf.(finisher[T]); ok {
				return f.finish()
			}
			var zero T
			return zero, false
		}

		n := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if n.isLeaf() {
			w.leaf.load(n.chunk)
			w.active = true
			continue
		}
		w.stack = append(w.stack, n.right, n.left)
	}
}

// chunkUnpacker yields a leaf's chunk whole. Empty leaves yield nothing.
type chunkUnpacker struct {
	chunk   Chunk
	pending bool
}

func (u *chunkUnpacker) load(c Chunk) {
	u.chunk = c
	u.pending = !c.IsEmpty()
}

func (u *chunkUnpacker) next() (Chunk, bool) {
	if !u.pending {
		return Chunk{}, false
	}
	u.pending = false
	return u.chunk, true
}

// runeValue is a decoded rune and the number of bytes it occupied.
type runeValue struct {
	r    rune
	size int
}

// runeUnpacker decodes UTF-8 one rune at a time. Slicing works on bytes, so
// a rune may be split across two leaves; its leading bytes are held in
// partial until the next leaf completes it.
type runeUnpacker struct {
	s       string
	partial []byte
}

func (u *runeUnpacker) load(c Chunk) {
	u.s = c.String()
}

func (u *runeUnpacker) next() (runeValue, bool) {
	for len(u.partial) > 0 {
		if len(u.s) == 0 {
			return runeValue{}, false
		}
		u.partial = append(u.partial, u.s[0])
		u.s = u.s[1:]
		if utf8.FullRune(u.partial) {
			return u.takePartial(), true
		}
	}

	if len(u.s) == 0 {
		return runeValue{}, false
	}
	if !utf8.FullRuneInString(u.s) {
		u.partial = append(u.partial[:0], u.s...)
		u.s = ""
		return runeValue{}, false
	}
	r, size := utf8.DecodeRuneInString(u.s)
	u.s = u.s[size:]
	return runeValue{r: r, size: size}, true
}

// takePartial decodes the front of partial. Bytes left over after an
// invalid sequence go back in front of the current leaf.
func (u *runeUnpacker) takePartial() runeValue {
	r, size := utf8.DecodeRune(u.partial)
	if rest := u.partial[size:]; len(rest) > 0 {
		u.s = string(rest) + u.s
	}
	u.partial = u.partial[:0]
	return runeValue{r: r, size: size}
}

// finish reports bytes of an incomplete trailing sequence as RuneError, one
// byte at a time, the way ranging over a string does.
func (u *runeUnpacker) finish() (runeValue, bool) {
	if len(u.partial) == 0 {
		return runeValue{}, false
	}
	u.partial = u.partial[1:]
	return runeValue{r: utf8.RuneError, size: 1}, true
}

// byteUnpacker yields a leaf's bytes one at a time.
type byteUnpacker struct {
	s string
}

func (u *byteUnpacker) load(c Chunk) {
	u.s = c.String()
}

func (u *byteUnpacker) next() (byte, bool) {
	if len(u.s) == 0 {
		return 0, false
	}
	b := u.s[0]
	u.s = u.s[1:]
	return b, true
}

// ChunkIterator iterates over the leaf chunks of a rope in document order.
type ChunkIterator struct {
	w      walker[Chunk]
	chunk  Chunk
	offset ByteOffset
	next   ByteOffset
}

// Chunks returns an iterator over all non-empty chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{w: newWalker[Chunk](r.root, &chunkUnpacker{})}
}

// Next advances to the next chunk.
// Returns true if there is a chunk, false if iteration is complete.
func (it *ChunkIterator) Next() bool {
	c, ok := it.w.next()
	if !ok {
		return false
	}
	it.chunk = c
	it.offset = it.next
	it.next += ByteOffset(c.Len())
	return true
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Offset returns the byte offset of the start of the current chunk.
func (it *ChunkIterator) Offset() ByteOffset {
	return it.offset
}

// RuneIterator iterates over runes in a rope.
type RuneIterator struct {
	w      walker[runeValue]
	cur    runeValue
	offset ByteOffset
	next   ByteOffset
}

// Runes returns an iterator over all runes in the rope. Invalid UTF-8 is
// reported as utf8.RuneError with size 1.
func (r Rope) Runes() *RuneIterator {
	return &RuneIterator{w: newWalker[runeValue](r.root, &runeUnpacker{})}
}

// Next advances to the next rune.
// Returns true if there is a rune, false if iteration is complete.
func (it *RuneIterator) Next() bool {
	v, ok := it.w.next()
	if !ok {
		return false
	}
	it.cur = v
	it.offset = it.next
	it.next += ByteOffset(v.size)
	return true
}

// Rune returns the current rune.
func (it *RuneIterator) Rune() rune {
	return it.cur.r
}

// Size returns the byte size of the current rune.
func (it *RuneIterator) Size() int {
	return it.cur.size
}

// Offset returns the byte offset of the current rune.
func (it *RuneIterator) Offset() ByteOffset {
	return it.offset
}

// ByteIterator iterates over bytes in a rope.
type ByteIterator struct {
	w      walker[byte]
	cur    byte
	offset ByteOffset
	count  ByteOffset
}

// Bytes returns an iterator over all bytes in the rope.
func (r Rope) Bytes() *ByteIterator {
	return &ByteIterator{w: newWalker[byte](r.root, &byteUnpacker{})}
}

// Next advances to the next byte.
// Returns true if there is a byte, false if iteration is complete.
func (it *ByteIterator) Next() bool {
	b, ok := it.w.next()
	if !ok {
		return false
	}
	it.cur = b
	it.offset = it.count
	it.count++
	return true
}

// Byte returns the current byte.
func (it *ByteIterator) Byte() byte {
	return it.cur
}

// Offset returns the byte offset of the current byte.
func (it *ByteIterator) Offset() ByteOffset {
	return it.offset
}

// ChunkSeq returns the rope's chunk texts as a range-over-func sequence.
func (r Rope) ChunkSeq() iter.Seq[string] {
	return func(yield func(string) bool) {
		it := r.Chunks()
		for it.Next() {
			if !yield(it.Chunk().String()) {
				return
			}
		}
	}
}

// RuneSeq returns the rope's runes keyed by byte offset.
func (r Rope) RuneSeq() iter.Seq2[ByteOffset, rune] {
	return func(yield func(ByteOffset, rune) bool) {
		it := r.Runes()
		for it.Next() {
			if !yield(it.Offset(), it.Rune()) {
				return
			}
		}
	}
}

// LineSeq returns the rope's lines keyed by line index.
func (r Rope) LineSeq() iter.Seq2[uint32, Rope] {
	return func(yield func(uint32, Rope) bool) {
		it := r.Lines()
		for it.Next() {
			if !yield(it.Index(), it.Line()) {
				return
			}
		}
	}
}
