package rope

import (
	"strings"
	"testing"
	"testing/quick"
)

// ropeOf builds a right-nested rope with one leaf per part.
func ropeOf(parts ...string) Rope {
	if len(parts) == 1 {
		return FromString(parts[0])
	}
	return Concat(FromString(parts[0]), ropeOf(parts[1:]...))
}

func abc() Rope {
	return ropeOf("aaa", "bbb", "ccc")
}

func TestNew(t *testing.T) {
	r := New()
	if r.Len() != 0 {
		t.Errorf("New rope should have length 0, got %d", r.Len())
	}
	if !r.IsEmpty() {
		t.Error("New rope should be empty")
	}
	if r.String() != "" {
		t.Errorf("New rope String() should be empty, got %q", r.String())
	}
	if r.LenLines() != 0 {
		t.Errorf("New rope should have 0 newlines, got %d", r.LenLines())
	}

	var zero Rope
	if !zero.Equal(r) {
		t.Error("zero value should equal New()")
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single char", "a"},
		{"short string", "hello"},
		{"with newline", "hello\nworld"},
		{"multiple newlines", "a\nb\nc\nd"},
		{"unicode", "hello 世界 🌍"},
		{"long string", strings.Repeat("abcdefghij", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.input)
			if r.String() != tt.input {
				t.Errorf("String() = %q, want %q", r.String(), tt.input)
			}
			if r.Len() != ByteOffset(len(tt.input)) {
				t.Errorf("Len() = %d, want %d", r.Len(), len(tt.input))
			}
			if r.Depth() != 0 {
				t.Errorf("Depth() = %d, want a single leaf", r.Depth())
			}
			if !r.EqualString(tt.input) || !EqualString(tt.input, r) {
				t.Error("rope should compare equal to its source text")
			}
		})
	}
}

func TestConcat(t *testing.T) {
	tests := []struct {
		name     string
		left     string
		right    string
		expected string
		depth    int
	}{
		{"concat two strings", "hello ", "world", "hello world", 1},
		{"concat with empty left", "", "hello", "hello", 0},
		{"concat with empty right", "hello", "", "hello", 0},
		{"concat two empty", "", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Concat(FromString(tt.left), FromString(tt.right))
			if result.String() != tt.expected {
				t.Errorf("got %q, want %q", result.String(), tt.expected)
			}
			if result.Depth() != tt.depth {
				t.Errorf("Depth() = %d, want %d", result.Depth(), tt.depth)
			}
		})
	}
}

func TestConcatIdentity(t *testing.T) {
	r := abc()
	if got := Concat(New(), r); got.root != r.root {
		t.Error("concat with empty left should return the right operand")
	}
	if got := Concat(r, FromString("")); got.root != r.root {
		t.Error("concat with empty right should return the left operand")
	}
}

func TestLen(t *testing.T) {
	r := abc()
	if r.Len() != 9 {
		t.Errorf("Len() = %d, want 9", r.Len())
	}
	if r.LenLines() != 0 {
		t.Errorf("LenLines() = %d, want 0", r.LenLines())
	}
	if FromString("").Len() != 0 {
		t.Error("empty rope should have length 0")
	}
}

func TestLenLines(t *testing.T) {
	r := ropeOf("aaa\n", "b\nb\nb", "ccc\n")
	if r.LenLines() != 4 {
		t.Errorf("LenLines() = %d, want 4", r.LenLines())
	}
	if r.LineCount() != 5 {
		t.Errorf("LineCount() = %d, want 5", r.LineCount())
	}
	if FromString("").LenLines() != 0 {
		t.Error("empty rope should have no newlines")
	}
	if FromString("\n").LenLines() != 1 {
		t.Error(`"\n" should have one newline`)
	}
}

func TestCharSubstr(t *testing.T) {
	r := abc()
	tests := []struct {
		idx, n   ByteOffset
		expected string
	}{
		{1, 4, "aabb"},
		{0, 9, "aaabbbccc"},
		{4, 0, ""},
		{3, 6, "bbbccc"},
		{2, 5, "abbbc"},
		{8, 1, "c"},
		{9, 0, ""},
	}

	for _, tt := range tests {
		if got := r.CharSubstr(tt.idx, tt.n); !got.EqualString(tt.expected) {
			t.Errorf("CharSubstr(%d, %d) = %q, want %q", tt.idx, tt.n, got.String(), tt.expected)
		}
	}
}

func TestCharSubstrSharesSubtrees(t *testing.T) {
	r := abc()
	right := r.CharSubstr(3, 6)
	if right.root != r.root.right {
		t.Error("a substring covering a whole subtree should reuse it")
	}
	if whole := r.CharSubstr(0, r.Len()); whole.root != r.root {
		t.Error("a full substring should reuse the root")
	}
}

func TestCharSlice(t *testing.T) {
	r := abc()
	tests := []struct {
		rg       Range
		expected string
	}{
		{Span(1, 5), "aabb"},
		{Full(), "aaabbbccc"},
		{Span(4, 4), ""},
		{Span(3, 9), "bbbccc"},
		{SpanInclusive(1, 4), "aabb"},
		{To(3), "aaa"},
		{ToInclusive(3), "aaab"},
		{From(6), "ccc"},
		{From(9), ""},
		{Range{Start: Exclusive(0), End: Exclusive(3)}, "aa"},
	}

	for _, tt := range tests {
		if got := r.CharSlice(tt.rg); !got.EqualString(tt.expected) {
			t.Errorf("CharSlice(%s) = %q, want %q", tt.rg, got.String(), tt.expected)
		}
	}
}

func TestLineStart(t *testing.T) {
	tests := []struct {
		name     string
		rope     Rope
		line     uint32
		expected ByteOffset
	}{
		{"leading newline line 0", FromString("\nhel"), 0, 0},
		{"leading newline line 1", FromString("\nhel"), 1, 1},
		{"past last line clamps", FromString("\nhel"), 2, 4},
		{"leaf line 0", FromString("hello\nworld\nhi\n"), 0, 0},
		{"leaf line 1", FromString("hello\nworld\nhi\n"), 1, 6},
		{"leaf line 2", FromString("hello\nworld\nhi\n"), 2, 12},
		{"leaf trailing line", FromString("hello\nworld\nhi\n"), 3, 15},
		{"node line 0", ropeOf("hello\n", "world\n"), 0, 0},
		{"node line 1", ropeOf("hello\n", "world\n"), 1, 6},
		{"split before newline 0", ropeOf("hello", "\nworld\n"), 0, 0},
		{"split before newline 1", ropeOf("hello", "\nworld\n"), 1, 6},
		{"split before newline 2", ropeOf("hello", "\nworld\n"), 2, 12},
		{"empty left", ropeOf("", "world\n"), 0, 0},
		{"empty rope", New(), 3, 0},
		{"far past end", ropeOf("a\n", "b\n"), 1 << 30, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rope.LineStart(tt.line); got != tt.expected {
				t.Errorf("LineStart(%d) = %d, want %d", tt.line, got, tt.expected)
			}
		})
	}
}

func TestLineSubstr(t *testing.T) {
	r := ropeOf("aa\na", "\nbbb\n", "ccc")
	tests := []struct {
		idx, n   uint32
		expected string
	}{
		{0, 4, "aa\na\nbbb\nccc"},
		{1, 2, "a\nbbb\n"},
		{2, 1, "bbb\n"},
		{3, 1, "ccc"},
		{4, 1, ""},
	}

	for _, tt := range tests {
		if got := r.LineSubstr(tt.idx, tt.n); !got.EqualString(tt.expected) {
			t.Errorf("LineSubstr(%d, %d) = %q, want %q", tt.idx, tt.n, got.String(), tt.expected)
		}
	}
}

func TestLineSlice(t *testing.T) {
	r := ropeOf("aa\na", "\nbbb\n", "ccc")
	tests := []struct {
		rg       Range
		expected string
	}{
		{Full(), "aa\na\nbbb\nccc"},
		{SpanInclusive(1, 2), "a\nbbb\n"},
		{Span(2, 3), "bbb\n"},
		{From(2), "bbb\nccc"},
		{To(1), "aa\n"},
		{ToInclusive(1), "aa\na\n"},
		{Range{Start: Exclusive(0), End: Inclusive(1)}, "a\n"},
		{SpanInclusive(3, 1 << 40), "ccc"},
	}

	for _, tt := range tests {
		if got := r.LineSlice(tt.rg); !got.EqualString(tt.expected) {
			t.Errorf("LineSlice(%s) = %q, want %q", tt.rg, got.String(), tt.expected)
		}
	}
}

func TestLine(t *testing.T) {
	r := FromString("one\ntwo\nthree")
	want := []string{"one\n", "two\n", "three", ""}
	for i, w := range want {
		if got := r.Line(uint32(i)).String(); got != w {
			t.Errorf("Line(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestByteAt(t *testing.T) {
	r := abc()
	for i, want := range []byte("aaabbbccc") {
		got, ok := r.ByteAt(ByteOffset(i))
		if !ok || got != want {
			t.Errorf("ByteAt(%d) = %q, %v; want %q", i, got, ok, want)
		}
	}
	if _, ok := r.ByteAt(9); ok {
		t.Error("ByteAt past the end should fail")
	}
	if _, ok := New().ByteAt(0); ok {
		t.Error("ByteAt on an empty rope should fail")
	}
}

func TestImmutability(t *testing.T) {
	original := abc()
	before := original.String()

	_ = original.InsertString(4, "XYZ")
	_ = original.Delete(Span(0, 5))
	_ = original.Concat(FromString("tail"))
	_ = original.Rebalance()

	if original.String() != before {
		t.Errorf("original changed: got %q, want %q", original.String(), before)
	}
}

func TestWriteTo(t *testing.T) {
	var sb strings.Builder
	n, err := abc().WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != 9 || sb.String() != "aaabbbccc" {
		t.Errorf("WriteTo wrote %d bytes %q", n, sb.String())
	}
}

func TestRebalance(t *testing.T) {
	r := New()
	for i := 0; i < 100; i++ {
		r = r.InsertString(0, string(rune('a'+i%26))+"\n")
	}
	if r.Depth() < 50 {
		t.Fatalf("prepending should degrade depth, got %d", r.Depth())
	}

	balanced := r.Rebalance()
	if balanced.Depth() > 7 {
		t.Errorf("balanced depth = %d, want <= 7", balanced.Depth())
	}
	if r.IsBalanced(7) || !balanced.IsBalanced(7) {
		t.Errorf("IsBalanced(7) = %v before, %v after", r.IsBalanced(7), balanced.IsBalanced(7))
	}
	if !balanced.Equal(r) {
		t.Fatal("rebalance changed content")
	}
	if balanced.LeafCount() != r.LeafCount() {
		t.Errorf("LeafCount() = %d, want %d", balanced.LeafCount(), r.LeafCount())
	}
	for line := uint32(0); line <= r.LenLines()+1; line++ {
		if got, want := balanced.LineStart(line), r.LineStart(line); got != want {
			t.Errorf("LineStart(%d) = %d after rebalance, want %d", line, got, want)
		}
	}
}

func TestInsertDeleteProperty(t *testing.T) {
	f := func(s string, offset int, insert string) bool {
		if len(s) == 0 {
			offset = 0
		} else {
			offset = offset % (len(s) + 1)
			if offset < 0 {
				offset = -offset
			}
		}

		r := FromString(s)
		end := uint64(offset + len(insert))
		r = r.InsertString(ByteOffset(offset), insert).Delete(Span(uint64(offset), end))
		return r.EqualString(s)
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestConcatSplitProperty(t *testing.T) {
	f := func(s string, offset int) bool {
		if len(s) == 0 {
			return true
		}
		offset = offset % (len(s) + 1)
		if offset < 0 {
			offset = -offset
		}

		left, right := FromString(s).Split(ByteOffset(offset))
		return left.Concat(right).EqualString(s)
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestLenLinesProperty(t *testing.T) {
	f := func(a, b string) bool {
		r := Concat(FromString(a), FromString(b))
		return r.LenLines() == uint32(strings.Count(a+b, "\n")) &&
			r.Len() == ByteOffset(len(a)+len(b))
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
