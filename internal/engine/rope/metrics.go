package rope

import "strings"

// ByteOffset represents an absolute byte position in the rope.
type ByteOffset uint64

// CountLines returns the number of newlines in a string.
func CountLines(s string) uint32 {
	return uint32(strings.Count(s, "\n"))
}

// lineStartIn returns the byte offset just past the line-th newline of s.
// Asking for more lines than s contains resolves to len(s).
func lineStartIn(s string, line uint32) ByteOffset {
	pos := 0
	for ; line > 0; line-- {
		i := strings.IndexByte(s[pos:], '\n')
		if i < 0 {
			return ByteOffset(len(s))
		}
		pos += i + 1
	}
	return ByteOffset(pos)
}
