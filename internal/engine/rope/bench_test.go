package rope

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

// generateText creates a string of the given size with realistic content.
func generateText(size int) string {
	var sb strings.Builder
	sb.Grow(size)

	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog", "hello", "world"}
	lineLen := 0

	for sb.Len() < size {
		word := words[rand.Intn(len(words))]
		if sb.Len()+len(word)+1 > size {
			break
		}

		if sb.Len() > 0 {
			if lineLen > 60 {
				sb.WriteByte('\n')
				lineLen = 0
			} else {
				sb.WriteByte(' ')
				lineLen++
			}
		}

		sb.WriteString(word)
		lineLen += len(word)
	}

	return sb.String()
}

// generateTextWithLines creates text with approximately the given number of lines.
func generateTextWithLines(lines int, avgLineLen int) string {
	var sb strings.Builder
	sb.Grow(lines * (avgLineLen + 1))

	for i := 0; i < lines; i++ {
		lineLen := avgLineLen + rand.Intn(21) - 10 // +/- 10
		if lineLen < 10 {
			lineLen = 10
		}
		for j := 0; j < lineLen; j++ {
			sb.WriteByte(byte('a' + rand.Intn(26)))
		}
		if i < lines-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// buildText assembles text into a multi-leaf rope.
func buildText(text string) Rope {
	b := NewBuilder(DefaultChunkSize)
	b.WriteString(text)
	return b.Build()
}

var benchSizes = []int{1000, 10000, 100000}

func BenchmarkBuilder(b *testing.B) {
	for _, size := range []int{1000, 10000, 100000, 1000000} {
		text := generateText(size)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = buildText(text)
			}
		})
	}
}

func BenchmarkInsertStart(b *testing.B) {
	for _, size := range benchSizes {
		r := buildText(generateText(size))
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = r.InsertString(0, "x")
			}
		})
	}
}

func BenchmarkInsertMiddle(b *testing.B) {
	for _, size := range benchSizes {
		r := buildText(generateText(size))
		mid := r.Len() / 2
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = r.InsertString(mid, "x")
			}
		})
	}
}

func BenchmarkInsertRandom(b *testing.B) {
	for _, size := range benchSizes {
		r := buildText(generateText(size))
		n := int(r.Len())
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = r.InsertString(ByteOffset(rand.Intn(n)), "x")
			}
		})
	}
}

// BenchmarkRepeatedPrepend shows the cost of an unbalanced tree and what
// Rebalance recovers.
func BenchmarkRepeatedPrepend(b *testing.B) {
	r := New()
	for i := 0; i < 2000; i++ {
		r = r.InsertString(0, "line\n")
	}
	balanced := r.Rebalance()

	b.Run("unbalanced", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = r.LineStart(uint32(i % 2000))
		}
	})
	b.Run("rebalanced", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = balanced.LineStart(uint32(i % 2000))
		}
	})
}

func BenchmarkDeleteMiddle(b *testing.B) {
	for _, size := range benchSizes {
		r := buildText(generateText(size))
		mid := uint64(r.Len() / 2)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = r.Delete(Span(mid-50, mid+50))
			}
		})
	}
}

func BenchmarkConcat(b *testing.B) {
	r1 := buildText(generateText(10000))
	r2 := buildText(generateText(10000))
	for i := 0; i < b.N; i++ {
		_ = Concat(r1, r2)
	}
}

func BenchmarkByteAt(b *testing.B) {
	for _, size := range benchSizes {
		r := buildText(generateText(size))
		n := r.Len()
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = r.ByteAt(ByteOffset(i) % n)
			}
		})
	}
}

func BenchmarkLineStart(b *testing.B) {
	for _, lines := range []int{100, 1000, 10000} {
		r := buildText(generateTextWithLines(lines, 60))
		b.Run(fmt.Sprintf("lines=%d", lines), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = r.LineStart(uint32(i % lines))
			}
		})
	}
}

func BenchmarkChunkIterator(b *testing.B) {
	r := buildText(generateText(100000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := r.Chunks()
		for it.Next() {
		}
	}
}

func BenchmarkRuneIterator(b *testing.B) {
	r := buildText(generateText(100000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := r.Runes()
		for it.Next() {
		}
	}
}

func BenchmarkLineIterator(b *testing.B) {
	for _, lines := range []int{100, 1000} {
		r := buildText(generateTextWithLines(lines, 60))
		b.Run(fmt.Sprintf("lines=%d", lines), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				it := r.Lines()
				for it.Next() {
				}
			}
		})
	}
}

func BenchmarkEqual(b *testing.B) {
	text := generateText(100000)
	r1 := buildText(text)
	r2 := FromString(text)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r1.Equal(r2)
	}
}
