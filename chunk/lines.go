// Package chunk splits input into lines and into newline-aligned partitions,
// so that no record ever spans two partitions.
package chunk

import "bytes"

// Lines iterates over the lines of a buffer without allocating. Lines do not
// include the newline and empty lines are skipped.
type Lines struct {
	buf []byte
	off int
}

// NewLines returns an iterator positioned at the start of buf.
func NewLines(buf []byte) *Lines {
	return &Lines{buf: buf}
}

// Next returns the next non-empty line, which refers to the underlying
// buffer, and false once the buffer is exhausted.
func (l *Lines) Next() ([]byte, bool) {
	for l.off < len(l.buf) {
		rest := l.buf[l.off:]
		j := bytes.IndexByte(rest, '\n')
		if j == -1 {
			l.off = len(l.buf)
			return rest, true
		}
		l.off += j + 1
		if j > 0 {
			return rest[:j], true
		}
	}
	return nil, false
}

// Reset rewinds the iterator to the start of the buffer.
func (l *Lines) Reset() {
	l.off = 0
}
