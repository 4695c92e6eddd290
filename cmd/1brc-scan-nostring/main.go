// 1brc-scan-nostring reads measurements from stdin in newline-aligned blocks
// and fans them out to workers, using fixed-point temperatures.
//
// data:
//
// Tamale;27.5
// Bergen;9.6
// Lodwar;37.1
// Whitehorse;-3.8
// Ouarzazate;19.1
package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/miku/1brc/aggregate"
	"github.com/miku/1brc/chunk"
	"github.com/miku/1brc/measure"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "file to write cpu profile to")
	workers    = flag.Int("workers", 0, "number of workers, 0 means one per cpu")
	blockSize  = flag.Int("chunk-size", 16777216, "approximate bytes per block")
	verbose    = flag.Bool("v", false, "log blocks")
)

func main() {
	flag.Parse()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	var (
		queue = make(chan []byte)
		rerr  = make(chan error, 1)
		opts  = aggregate.Options{Workers: *workers}
	)
	if *verbose {
		opts.Log = log.Default()
	}
	// start reading stdin and fan out
	go func() {
		defer close(queue)
		br := chunk.NewReader(os.Stdin, *blockSize)
		for {
			b, err := br.Next()
			if errors.Is(err, io.EOF) {
				rerr <- nil
				return
			}
			if err != nil {
				rerr <- err
				return
			}
			queue <- b
		}
	}()
	data, err := aggregate.Parallel(queue, measure.Fixed, opts)
	if err != nil {
		log.Fatal(err)
	}
	if err := <-rerr; err != nil {
		log.Fatal(err)
	}
	results, err := measure.Project(data, measure.Fixed.Scale)
	if err != nil {
		log.Fatal(err)
	}
	if err := measure.Write(os.Stdout, results); err != nil {
		log.Fatal(err)
	}
}
