// Package measure decodes "name;temperature" records and keeps running
// statistics per station.
//
// data:
//
// Tamale;27.5
// Bergen;9.6
// Lodwar;37.1
// Whitehorse;-3.8
// Ouarzazate;19.1
package measure

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformed is returned for a record that does not match the
// "name;[-]d[d].d" shape.
var ErrMalformed = errors.New("malformed record")

// Measurement is a single decoded record. Name points into the decoded
// line and is only valid as long as the line is.
type Measurement[T Number] struct {
	Name  []byte
	Value T
}

// Decode decodes a line into a name and a temperature in hundredths of a
// degree, e.g. "Bergen;9.6" yields 960. The value must have exactly one
// fractional digit, one or two integer digits and an optional minus sign.
// The separator is not searched for, but found at one of the three
// possible positions counted from the end of the line.
func Decode(line []byte) (Measurement[int64], error) {
	var (
		n      = len(line)
		offset int
	)
	switch {
	case n >= 5 && line[n-4] == ';':
		offset = 4 // 9.9
	case n >= 6 && line[n-5] == ';':
		offset = 5 // 99.9, -9.9
	case n >= 7 && line[n-6] == ';':
		offset = 6 // -99.9
	default:
		return Measurement[int64]{}, fmt.Errorf("%w: %q", ErrMalformed, line)
	}
	v, ok := fixed(line[n-offset+1:])
	if !ok {
		return Measurement[int64]{}, fmt.Errorf("%w: invalid temp: %q", ErrMalformed, line)
	}
	return Measurement[int64]{Name: line[:n-offset], Value: v}, nil
}

// fixed parses "[-]d[d].d" into hundredths. The sign comes from the minus
// byte, so "-0.5" is -50.
func fixed(b []byte) (int64, bool) {
	var neg bool
	if len(b) == 0 {
		return 0, false
	}
	if b[0] == '-' {
		neg = true
		b = b[1:]
	}
	if len(b) < 3 || len(b) > 4 || b[len(b)-2] != '.' {
		return 0, false
	}
	var v int64
	for _, c := range b[:len(b)-2] {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int64(c-'0')
	}
	d := b[len(b)-1]
	if d < '0' || d > '9' {
		return 0, false
	}
	v = v*100 + int64(d-'0')*10
	if neg {
		v = -v
	}
	return v, true
}

// DecodeFloat is the simpler decoder: it splits at the last semicolon and
// parses the rest as a float64 in degrees. The value must have the same
// shape as for Decode, so NaN, Inf or exponents are malformed.
func DecodeFloat(line []byte) (Measurement[float64], error) {
	index := bytes.LastIndexByte(line, ';')
	if index < 1 {
		return Measurement[float64]{}, fmt.Errorf("%w: expected a semicolon: %q", ErrMalformed, line)
	}
	value := line[index+1:]
	if _, ok := fixed(value); !ok {
		return Measurement[float64]{}, fmt.Errorf("%w: invalid temp: %q", ErrMalformed, line)
	}
	temp, err := strconv.ParseFloat(string(value), 64)
	if err != nil {
		return Measurement[float64]{}, fmt.Errorf("%w: invalid temp: %q", ErrMalformed, line)
	}
	return Measurement[float64]{Name: line[:index], Value: temp}, nil
}

// Format couples a decoder with the scale of the values it produces, so
// that Value/Scale is in degrees.
type Format[T Number] struct {
	Decode func(line []byte) (Measurement[T], error)
	Scale  float64
}

var (
	// Fixed decodes into exact hundredths of a degree.
	Fixed = Format[int64]{Decode: Decode, Scale: 100}
	// Float decodes into float64 degrees.
	Float = Format[float64]{Decode: DecodeFloat, Scale: 1}
)
