package chunk

import (
	"bytes"
	"errors"
	"io"
)

// Reader cuts a stream into newline-aligned blocks. Each block is a fresh
// allocation, so blocks can be handed to other goroutines.
type Reader struct {
	r    io.Reader
	size int
	rest []byte // leftover after the last newline
	err  error
}

// NewReader returns a reader that reads about size bytes per block.
func NewReader(r io.Reader, size int) *Reader {
	if size < 1 {
		size = 1
	}
	return &Reader{r: r, size: size}
}

// Next returns the next block, which ends with a newline unless it is the
// last one. It returns io.EOF after the last block.
func (r *Reader) Next() ([]byte, error) {
	for r.err == nil {
		buf := make([]byte, len(r.rest)+r.size)
		k := copy(buf, r.rest)
		n, err := io.ReadFull(r.r, buf[k:])
		buf = buf[:k+n]
		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			r.err, r.rest = io.EOF, nil
			if len(buf) == 0 {
				return nil, io.EOF
			}
			return buf, nil
		default:
			r.err = err
			return nil, err
		}
		idx := bytes.LastIndexByte(buf, '\n')
		if idx == -1 {
			// line longer than block size, keep reading
			r.rest = buf
			continue
		}
		r.rest = append(r.rest[:0:0], buf[idx+1:]...)
		return buf[:idx+1], nil
	}
	return nil, r.err
}
