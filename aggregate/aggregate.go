// Package aggregate runs the decoder over an input and folds the results
// into one table, either sequentially or with a pool of workers that each
// own a table, merged once they are done.
package aggregate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"sync"

	"github.com/miku/1brc/chunk"
	"github.com/miku/1brc/measure"
)

// Options for the parallel runs.
type Options struct {
	// Workers is the number of concurrent workers, runtime.NumCPU() if
	// zero or negative.
	Workers int
	// ChunkSize is the approximate number of bytes handed to a worker at
	// once, DefaultChunkSize if zero or negative.
	ChunkSize int
	// Log receives progress messages, if not nil.
	Log *log.Logger
}

const DefaultChunkSize = 67108864

func (o Options) workers() int {
	if o.Workers < 1 {
		return runtime.NumCPU()
	}
	return o.Workers
}

func (o Options) chunkSize() int {
	if o.ChunkSize < 1 {
		return DefaultChunkSize
	}
	return o.ChunkSize
}

func (o Options) logf(format string, v ...any) {
	if o.Log != nil {
		o.Log.Printf(format, v...)
	}
}

// Fold decodes every line of buf into t. It stops at the first malformed
// line.
func Fold[T measure.Number](t measure.Table[T], buf []byte, f measure.Format[T]) error {
	lines := chunk.NewLines(buf)
	for line, ok := lines.Next(); ok; line, ok = lines.Next() {
		m, err := f.Decode(line)
		if err != nil {
			return err
		}
		t.Update(m)
	}
	return nil
}

// Sequential reads r line by line into a single table. Lines are cut at
// newlines only, as in Fold, and may be of any length.
func Sequential[T measure.Number](r io.Reader, f measure.Format[T]) (measure.Table[T], error) {
	var (
		data = make(measure.Table[T])
		br   = bufio.NewReader(r)
		long []byte // line that did not fit into the reader buffer
	)
	for {
		line, err := br.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			long = append(long, line...)
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read: %w", err)
		}
		if len(long) > 0 {
			line = append(long, line...)
			long = line[:0]
		}
		if n := len(line); n > 0 && line[n-1] == '\n' {
			line = line[:n-1]
		}
		if len(line) > 0 {
			m, derr := f.Decode(line)
			if derr != nil {
				return nil, derr
			}
			data.Update(m)
		}
		if err != nil {
			return data, nil
		}
	}
}

// Parallel folds blocks from a channel with a pool of workers. Blocks must
// be newline-aligned and must not be modified while the run is going on.
// The run returns after blocks is closed.
func Parallel[T measure.Number](blocks <-chan []byte, f measure.Format[T], opts Options) (measure.Table[T], error) {
	return run(blocks, opts, func() func(measure.Table[T], []byte) error {
		return func(t measure.Table[T], block []byte) error {
			opts.logf("block of %d bytes", len(block))
			return Fold(t, block, f)
		}
	})
}

// RandomAccess is input that can be partitioned without reading it
// sequentially, like *mmap.ReaderAt.
type RandomAccess interface {
	io.ReaderAt
	chunk.Source
}

// Mapped cuts ra into newline-aligned spans and folds them with a pool of
// workers. Each worker copies its span into a buffer it reuses.
func Mapped[T measure.Number](ra RandomAccess, f measure.Format[T], opts Options) (measure.Table[T], error) {
	spans := chunk.Spans(ra, opts.chunkSize())
	opts.logf("%d bytes in %d spans", ra.Len(), len(spans))
	queue := make(chan chunk.Span)
	go func() {
		defer close(queue)
		for _, s := range spans {
			queue <- s
		}
	}()
	return run[chunk.Span, T](queue, opts, func() func(measure.Table[T], chunk.Span) error {
		var buf []byte
		return func(t measure.Table[T], s chunk.Span) error {
			if cap(buf) < s.Length {
				buf = make([]byte, s.Length)
			}
			buf = buf[:s.Length]
			if n, err := ra.ReadAt(buf, int64(s.Offset)); n < len(buf) {
				return fmt.Errorf("read span at %d: %w", s.Offset, err)
			}
			opts.logf("span %d %d", s.Offset, s.Length)
			return Fold(t, buf, f)
		}
	})
}

// run starts the workers and a merger. Every worker gets its own fold
// function from newFold and its own table. After the first error of a
// worker, its remaining jobs are drained without being processed.
func run[J any, T measure.Number](queue <-chan J, opts Options, newFold func() func(measure.Table[T], J) error) (measure.Table[T], error) {
	var (
		n      = opts.workers()
		result = make(chan measure.Table[T])
		done   = make(chan bool)
		errs   = make([]error, n)
		wg     sync.WaitGroup
		// accumulate all results here
		data = make(measure.Table[T])
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go worker[J, T](queue, result, newFold(), &errs[i], &wg)
	}
	go merger[T](data, result, done)
	wg.Wait()
	close(result)
	<-done
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

func worker[J any, T measure.Number](queue <-chan J, result chan<- measure.Table[T], fold func(measure.Table[T], J) error, errp *error, wg *sync.WaitGroup) {
	defer wg.Done()
	var data = make(measure.Table[T])
	for job := range queue {
		if *errp != nil {
			continue
		}
		*errp = fold(data, job)
	}
	if *errp == nil {
		result <- data
	}
}

func merger[T measure.Number](data measure.Table[T], result <-chan measure.Table[T], done chan<- bool) {
	for m := range result {
		data.Merge(m)
	}
	done <- true
}
