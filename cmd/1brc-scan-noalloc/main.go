// 1brc-scan-noalloc reads measurements from stdin line by line into a single
// table, using fixed-point temperatures. Lines are never converted to
// strings; a name is copied once, when a station is first seen.
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
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/miku/1brc/aggregate"
	"github.com/miku/1brc/measure"
)

var cpuprofile = flag.String("cpuprofile", "", "file to write cpu profile to")

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
	data, err := aggregate.Sequential(os.Stdin, measure.Fixed)
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
