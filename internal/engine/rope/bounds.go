package rope

import (
	"fmt"
	"math"
)

// BoundKind distinguishes the three forms a range endpoint can take.
type BoundKind uint8

const (
	// Unbounded extends the range to the start or end of the text.
	Unbounded BoundKind = iota
	// Included makes the endpoint part of the range.
	Included
	// Excluded leaves the endpoint out of the range.
	Excluded
)

// Bound is one endpoint of a Range. The zero value is unbounded.
type Bound struct {
	Kind  BoundKind
	Value uint64
}

// Inclusive returns a bound that includes v.
func Inclusive(v uint64) Bound {
	return Bound{Kind: Included, Value: v}
}

// Exclusive returns a bound that excludes v.
func Exclusive(v uint64) Bound {
	return Bound{Kind: Excluded, Value: v}
}

// Range selects a contiguous span of bytes or lines. Which unit applies
// depends on the operation receiving it.
type Range struct {
	Start Bound
	End   Bound
}

// Span returns the half-open range [lo, hi).
func Span(lo, hi uint64) Range {
	return Range{Start: Inclusive(lo), End: Exclusive(hi)}
}

// SpanInclusive returns the closed range [lo, hi].
func SpanInclusive(lo, hi uint64) Range {
	return Range{Start: Inclusive(lo), End: Inclusive(hi)}
}

// From returns the range starting at lo and running to the end.
func From(lo uint64) Range {
	return Range{Start: Inclusive(lo)}
}

// To returns the range from the beginning up to, but excluding, hi.
func To(hi uint64) Range {
	return Range{End: Exclusive(hi)}
}

// ToInclusive returns the range from the beginning through hi.
func ToInclusive(hi uint64) Range {
	return Range{End: Inclusive(hi)}
}

// Full returns the unbounded range covering everything.
func Full() Range {
	return Range{}
}

// String renders the range in start..end notation.
func (r Range) String() string {
	var start string
	switch r.Start.Kind {
	case Included:
		start = fmt.Sprint(r.Start.Value)
	case Excluded:
		start = fmt.Sprintf("(%d", r.Start.Value)
	}
	switch r.End.Kind {
	case Included:
		return fmt.Sprintf("%s..=%d", start, r.End.Value)
	case Excluded:
		return fmt.Sprintf("%s..%d", start, r.End.Value)
	default:
		return start + ".."
	}
}

// resolve turns r into a concrete (start, length) pair over a text of size
// total. The length computation is guarded against underflow.
func (r Range) resolve(op string, total ByteOffset) (ByteOffset, ByteOffset) {
	var start ByteOffset
	switch r.Start.Kind {
	case Included:
		start = ByteOffset(r.Start.Value)
	case Excluded:
		if r.Start.Value == math.MaxUint64 {
			panicRange(op, r, ErrOffsetOutOfRange)
		}
		start = ByteOffset(r.Start.Value) + 1
	}

	switch r.End.Kind {
	case Included:
		hi := ByteOffset(r.End.Value)
		if hi == math.MaxUint64 {
			panicRange(op, r, ErrOffsetOutOfRange)
		}
		if start > hi+1 {
			panicRange(op, r, ErrInvalidRange)
		}
		return start, hi + 1 - start
	case Excluded:
		hi := ByteOffset(r.End.Value)
		if start > hi {
			panicRange(op, r, ErrInvalidRange)
		}
		return start, hi - start
	default:
		if start > total {
			panicRange(op, r, ErrInvalidRange)
		}
		return start, total - start
	}
}

// lineIndex narrows a range value to a line index. Values past the
// representable range saturate, which LineStart resolves to end of text.
func lineIndex(v uint64) uint32 {
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

// nextLineIndex returns lineIndex(v+1) without overflowing.
func nextLineIndex(v uint64) uint32 {
	if v >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v) + 1
}
