package measure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"golang.org/x/exp/maps"
)

// ErrInvalidName is returned when a station name is not valid UTF-8.
var ErrInvalidName = errors.New("invalid station name")

// Result is the final statistics of one station.
type Result struct {
	Name string
	Final
}

// Project converts every accumulator in t to degrees and returns the results
// sorted by name, byte-wise. Names are checked for valid UTF-8 here, as the
// decoders do not look at them. The table is not modified.
func Project[T Number](t Table[T], scale float64) ([]Result, error) {
	keys := maps.Keys(t)
	sort.Strings(keys)
	results := make([]Result, 0, len(keys))
	for _, k := range keys {
		if !utf8.ValidString(k) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, k)
		}
		results = append(results, Result{Name: k, Final: t[k].Final(scale)})
	}
	return results, nil
}

// Write writes results as a single line: {a=min/avg/max, b=min/avg/max}.
func Write(w io.Writer, results []Result) error {
	bw := bufio.NewWriter(w)
	bw.WriteByte('{')
	for i, r := range results {
		if i > 0 {
			bw.WriteString(", ")
		}
		bw.WriteString(r.Name)
		bw.WriteByte('=')
		bw.WriteString(r.Final.String())
	}
	bw.WriteString("}\n")
	return bw.Flush()
}
