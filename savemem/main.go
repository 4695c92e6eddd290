// savemem reads measurements from stdin into a single table, keeping float64
// temperatures; there is no need to keep all numbers around, we can compute
// min, max and mean on the fly.
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
	"bufio"
	"log"
	"os"

	"github.com/miku/1brc/aggregate"
	"github.com/miku/1brc/measure"
)

func main() {
	data, err := aggregate.Sequential(bufio.NewReader(os.Stdin), measure.Float)
	if err != nil {
		log.Fatal(err)
	}
	results, err := measure.Project(data, measure.Float.Scale)
	if err != nil {
		log.Fatal(err)
	}
	if err := measure.Write(os.Stdout, results); err != nil {
		log.Fatal(err)
	}
}
