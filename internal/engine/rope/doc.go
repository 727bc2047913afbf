// Package rope provides an immutable rope data structure for text storage and
// manipulation.
//
// A rope is a binary tree. Leaves wrap a Chunk of text; internal nodes
// represent the concatenation of two subtrees and cache the byte count and
// newline count of their left subtree. Caches are written once, when the node
// is built, and stay valid forever because subtrees never change.
//
// Key properties:
//   - Concat is O(1) and is the only primitive that creates internal nodes
//   - Slicing, Insert and Delete are built from CharSubstr and Concat
//   - Operations return new ropes; prior values remain valid (cheap snapshots)
//   - Equality compares content, never tree shape
//   - Safe for concurrent readers without locking
//
// All offsets are byte offsets. Line indices are zero-based and name the span
// that starts right after the n-th newline; LenLines counts newline bytes,
// not lines.
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r = r.InsertString(5, ",")        // "hello, world"
//	r = r.Delete(rope.Span(0, 7))      // "world"
//	text := r.String()                 // "world"
//
// Low-level operations treat out-of-range offsets as a caller bug and panic.
// Ranges whose start lies past their end panic with a *RangeError wrapping
// ErrInvalidRange. Callers that need error returns should validate first, as
// the buffer package does.
//
// Concat never rebalances. Repeated one-sided editing can deepen the tree;
// Rebalance rebuilds it without changing any observable result.
package rope
