package measure

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Number is a representation of a temperature.
type Number interface {
	constraints.Signed | constraints.Float
}

// Acc, as there is no need to keep all numbers around, we can compute
// them on the fly.
type Acc[T Number] struct {
	Min   T
	Max   T
	Total T
	Count int
}

// NewAcc returns the statistics of a single observation.
func NewAcc[T Number](v T) *Acc[T] {
	return &Acc[T]{Min: v, Max: v, Total: v, Count: 1}
}

// Add records one more observation.
func (a *Acc[T]) Add(v T) {
	if v > a.Max {
		a.Max = v
	}
	if v < a.Min {
		a.Min = v
	}
	a.Total = a.Total + v
	a.Count++
}

// Merge combines the statistics of o into a.
func (a *Acc[T]) Merge(o *Acc[T]) {
	if o.Min < a.Min {
		a.Min = o.Min
	}
	if o.Max > a.Max {
		a.Max = o.Max
	}
	a.Total = a.Total + o.Total
	a.Count = a.Count + o.Count
}

// Final converts to degrees, given the number of units per degree.
func (a *Acc[T]) Final(scale float64) Final {
	return Final{
		Min: float64(a.Min) / scale,
		Max: float64(a.Max) / scale,
		Avg: float64(a.Total) / float64(a.Count) / scale,
	}
}

// Final statistics of a station, in degrees.
type Final struct {
	Min float64
	Avg float64
	Max float64
}

func (f Final) String() string {
	return fmt.Sprintf("%.1f/%.1f/%.1f", f.Min, f.Avg, f.Max)
}

// Table maps station names to their running statistics. A table is owned by
// a single goroutine until it is merged.
type Table[T Number] map[string]*Acc[T]

// Update folds a measurement into the table. The name is copied only when
// a station is seen for the first time, so the table never refers to the
// buffer the measurement was decoded from.
func (t Table[T]) Update(m Measurement[T]) {
	if acc, ok := t[string(m.Name)]; ok {
		acc.Add(m.Value)
		return
	}
	t[string(m.Name)] = NewAcc(m.Value)
}

// Merge folds o into t and returns t. The accumulators of o may be adopted
// by t, so o must not be used afterwards.
func (t Table[T]) Merge(o Table[T]) Table[T] {
	for k, v := range o {
		if acc, ok := t[k]; ok {
			acc.Merge(v)
		} else {
			t[k] = v
		}
	}
	return t
}

// Reduce merges tables pairwise until one is left. It returns an empty
// table if there are none. All given tables are consumed.
func Reduce[T Number](tables ...Table[T]) Table[T] {
	if len(tables) == 0 {
		return make(Table[T])
	}
	for len(tables) > 1 {
		var next []Table[T]
		for i := 0; i < len(tables); i += 2 {
			if i+1 == len(tables) {
				next = append(next, tables[i])
				break
			}
			next = append(next, tables[i].Merge(tables[i+1]))
		}
		tables = next
	}
	return tables[0]
}
