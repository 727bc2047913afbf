package rope

// Equal reports whether a and b hold the same text. Tree shape is
// irrelevant: both chunk streams are walked in parallel.
func Equal(a, b Rope) bool {
	if a.Len() != b.Len() {
		return false
	}

	wa := pooledWalker[Chunk](a.root, &chunkUnpacker{})
	defer wa.release()
	wb := pooledWalker[Chunk](b.root, &chunkUnpacker{})
	defer wb.release()

	var sa, sb string
	for {
		if len(sa) == 0 {
			c, _ := wa.next()
			sa = c.String()
		}
		if len(sb) == 0 {
			c, _ := wb.next()
			sb = c.String()
		}
		if len(sa) == 0 || len(sb) == 0 {
			return len(sa) == len(sb)
		}

		n := min(len(sa), len(sb))
		if sa[:n] != sb[:n] {
			return false
		}
		sa, sb = sa[n:], sb[n:]
	}
}

// Equal reports whether r and other hold the same text.
func (r Rope) Equal(other Rope) bool {
	return Equal(r, other)
}

// EqualString reports whether r holds exactly the text s.
func (r Rope) EqualString(s string) bool {
	if r.Len() != ByteOffset(len(s)) {
		return false
	}

	equal := true
	r.eachChunk(func(c Chunk) bool {
		text := c.String()
		if s[:len(text)] != text {
			equal = false
			return false
		}
		s = s[len(text):]
		return true
	})
	return equal && len(s) == 0
}

// EqualString reports whether s is exactly the text of r. It is the mirror
// of Rope.EqualString.
func EqualString(s string, r Rope) bool {
	return r.EqualString(s)
}
