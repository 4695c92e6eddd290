package measure

import (
	"reflect"
	"testing"
)

var records = []string{
	"Hamburg;12.0",
	"Bulawayo;8.9",
	"Palembang;38.8",
	"St. John's;15.2",
	"Cracow;12.6",
	"Bridgetown;26.9",
	"Istanbul;6.2",
	"Roseau;34.4",
	"Conakry;31.2",
	"Istanbul;23.0",
	"Hamburg;-4.1",
	"Reykjavik;-3.2",
	"Reykjavik;1.0",
	"Cracow;-0.5",
	"Hamburg;14.0",
	"Conakry;-99.9",
	"Roseau;99.9",
}

func tableOf(t *testing.T, lines []string) Table[int64] {
	t.Helper()
	data := make(Table[int64])
	for _, line := range lines {
		m, err := Decode([]byte(line))
		if err != nil {
			t.Fatal(err)
		}
		data.Update(m)
	}
	return data
}

func TestUpdate(t *testing.T) {
	data := tableOf(t, []string{"Hamburg;12.0", "Bulawayo;8.9", "Hamburg;14.0", "Hamburg;-1.5"})
	want := Table[int64]{
		"Hamburg":  {Min: -150, Max: 1400, Total: 2450, Count: 3},
		"Bulawayo": {Min: 890, Max: 890, Total: 890, Count: 1},
	}
	if !reflect.DeepEqual(data, want) {
		t.Fatalf("got %v, want %v", data, want)
	}
}

func TestUpdateCopiesName(t *testing.T) {
	line := []byte("Hamburg;12.0")
	m, err := Decode(line)
	if err != nil {
		t.Fatal(err)
	}
	data := make(Table[int64])
	data.Update(m)
	copy(line, "Xxxxxxx")
	if _, ok := data["Hamburg"]; !ok {
		t.Fatalf("table key changed with source buffer: %v", data)
	}
}

// partitions returns the records cut into n contiguous groups and into n
// interleaved groups.
func partitions(lines []string, n int) [][][]string {
	var contiguous, interleaved = make([][]string, n), make([][]string, n)
	size := (len(lines) + n - 1) / n
	for i, line := range lines {
		contiguous[i/size] = append(contiguous[i/size], line)
		interleaved[i%n] = append(interleaved[i%n], line)
	}
	return [][][]string{contiguous, interleaved}
}

func TestMergeIndependentOfPartitioning(t *testing.T) {
	want := tableOf(t, records)
	for n := 1; n <= len(records); n++ {
		for _, groups := range partitions(records, n) {
			// left to right
			got := make(Table[int64])
			for _, g := range groups {
				got.Merge(tableOf(t, g))
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("n=%d, forward: got %v, want %v", n, got, want)
			}
			// right to left
			got = make(Table[int64])
			for i := len(groups) - 1; i >= 0; i-- {
				got = tableOf(t, groups[i]).Merge(got)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("n=%d, backward: got %v, want %v", n, got, want)
			}
			// balanced tree
			var tables []Table[int64]
			for _, g := range groups {
				tables = append(tables, tableOf(t, g))
			}
			if got = Reduce(tables...); !reflect.DeepEqual(got, want) {
				t.Fatalf("n=%d, reduce: got %v, want %v", n, got, want)
			}
		}
	}
}

func TestMergeCommutes(t *testing.T) {
	a, b := records[:7], records[7:]
	ab := tableOf(t, a).Merge(tableOf(t, b))
	ba := tableOf(t, b).Merge(tableOf(t, a))
	if !reflect.DeepEqual(ab, ba) {
		t.Fatalf("got %v and %v", ab, ba)
	}
}

func TestReduceEmpty(t *testing.T) {
	if got := Reduce[int64](); len(got) != 0 {
		t.Fatalf("got %v, want empty table", got)
	}
}

func TestMeanWithinBounds(t *testing.T) {
	data := tableOf(t, records)
	data.Merge(tableOf(t, records[3:11]))
	for k, acc := range data {
		mean := float64(acc.Total) / float64(acc.Count)
		if float64(acc.Min) > mean || mean > float64(acc.Max) {
			t.Fatalf("%s: mean %v not within [%d, %d]", k, mean, acc.Min, acc.Max)
		}
	}
}

func TestFloatAcc(t *testing.T) {
	acc := NewAcc(12.0)
	acc.Add(14.0)
	other := NewAcc(-3.5)
	acc.Merge(other)
	want := Acc[float64]{Min: -3.5, Max: 14.0, Total: 22.5, Count: 3}
	if *acc != want {
		t.Fatalf("got %v, want %v", *acc, want)
	}
	if got := acc.Final(Float.Scale).String(); got != "-3.5/7.5/14.0" {
		t.Fatalf("got %s", got)
	}
}

func BenchmarkUpdate(b *testing.B) {
	data := make(Table[int64])
	m := Measurement[int64]{Name: []byte("Las Palmas de Gran Canaria"), Value: -2120}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		data.Update(m)
	}
}
