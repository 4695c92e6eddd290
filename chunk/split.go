package chunk

// Source is random access input, such as a memory mapped file.
type Source interface {
	Len() int
	At(i int) byte
}

// Span is a newline-aligned byte range of a source. Offset is the first byte
// of a line and Offset+Length is one past a newline, or the end of input.
type Span struct {
	Offset int
	Length int
}

// Spans cuts src into spans of at least size bytes (the last one may be
// shorter), each extended to the next newline. The spans are contiguous and
// cover all of src.
func Spans(src Source, size int) []Span {
	if size < 1 {
		size = 1
	}
	var (
		spans []Span
		n     = src.Len()
		i, j  int // start and stop index
	)
	for i < n {
		j = i + size - 1
		if j >= n {
			spans = append(spans, Span{Offset: i, Length: n - i})
			break
		}
		for j < n-1 && src.At(j) != '\n' {
			j++
		}
		spans = append(spans, Span{Offset: i, Length: j - i + 1})
		i = j + 1
	}
	return spans
}

type byteSource []byte

func (b byteSource) Len() int      { return len(b) }
func (b byteSource) At(i int) byte { return b[i] }

// Split cuts buf into at most n contiguous, newline-aligned parts of
// roughly equal size. The parts refer to buf.
func Split(buf []byte, n int) [][]byte {
	if len(buf) == 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	size := (len(buf) + n - 1) / n
	var parts [][]byte
	for _, s := range Spans(byteSource(buf), size) {
		parts = append(parts, buf[s.Offset:s.Offset+s.Length])
	}
	return parts
}
