package rope

// Insert returns a rope with ins placed at byte offset idx.
// Inserting a slice of r into r is fine: no subtree can end up referencing
// itself, since nodes only ever point at trees that already exist.
func (r Rope) Insert(idx ByteOffset, ins Rope) Rope {
	left := r.CharSlice(To(uint64(idx)))
	right := r.CharSlice(From(uint64(idx)))

	// Attach the new text to the larger side first so the smaller side stays
	// near the root.
	if left.Len() > right.Len() {
		return Concat(left, Concat(ins, right))
	}
	return Concat(Concat(left, ins), right)
}

// InsertString inserts text at byte offset idx.
func (r Rope) InsertString(idx ByteOffset, text string) Rope {
	if len(text) == 0 {
		return r
	}
	return r.Insert(idx, FromString(text))
}

// Delete returns a rope with the bytes selected by rg removed.
//
// Any combination of an unbounded or included start with an unbounded,
// included or excluded end is accepted. An excluded start is not: Delete
// panics with a *RangeError wrapping ErrUnsupportedBound.
func (r Rope) Delete(rg Range) Rope {
	switch rg.Start.Kind {
	case Unbounded:
		switch rg.End.Kind {
		case Unbounded:
			return New()
		case Included:
			_, n := rg.resolve("delete", r.Len())
			return r.CharSlice(From(uint64(n)))
		default:
			return r.CharSlice(From(rg.End.Value))
		}
	case Included:
		if rg.End.Kind == Unbounded {
			return r.CharSlice(To(rg.Start.Value))
		}
		start, n := rg.resolve("delete", r.Len())
		return Concat(
			r.CharSlice(To(uint64(start))),
			r.CharSlice(From(uint64(start+n))))
	default:
		panicRange("delete", rg, ErrUnsupportedBound)
		return Rope{}
	}
}

// Replace returns a rope with the bytes selected by rg replaced by with.
// The same bound restrictions as Delete apply.
func (r Rope) Replace(rg Range, with Rope) Rope {
	var at ByteOffset
	if rg.Start.Kind == Included {
		at = ByteOffset(rg.Start.Value)
	}
	return r.Delete(rg).Insert(at, with)
}

// Split splits the rope at offset, returning two ropes.
// Left rope contains [0, offset), right contains [offset, end).
func (r Rope) Split(offset ByteOffset) (Rope, Rope) {
	return r.CharSlice(To(uint64(offset))), r.CharSlice(From(uint64(offset)))
}

// Append concatenates ropes onto r, left to right.
func (r Rope) Append(ropes ...Rope) Rope {
	for _, other := range ropes {
		r = Concat(r, other)
	}
	return r
}

// Join concatenates multiple ropes with a separator.
func Join(ropes []Rope, sep string) Rope {
	if len(ropes) == 0 {
		return New()
	}

	result := ropes[0]
	sepRope := FromString(sep)
	for _, other := range ropes[1:] {
		result = result.Append(sepRope, other)
	}
	return result
}
