// 1brc-mmap maps a measurements file into memory and aggregates it with a
// worker per span, using fixed-point temperatures.
//
//	$ 1brc-mmap -workers 16 measurements.txt
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/miku/1brc/aggregate"
	"github.com/miku/1brc/measure"
	"golang.org/x/exp/mmap"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "file to write cpu profile to")
	workers    = flag.Int("workers", 0, "number of workers, 0 means one per cpu")
	chunkSize  = flag.Int("chunk-size", aggregate.DefaultChunkSize, "approximate bytes per span")
	verbose    = flag.Bool("v", false, "log spans")
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
	fn := "measurements.txt"
	if flag.NArg() > 0 {
		fn = flag.Arg(0)
	}
	r, err := mmap.Open(fn)
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()
	opts := aggregate.Options{Workers: *workers, ChunkSize: *chunkSize}
	if *verbose {
		opts.Log = log.Default()
	}
	data, err := aggregate.Mapped(r, measure.Fixed, opts)
	if err != nil {
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
