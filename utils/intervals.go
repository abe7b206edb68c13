package utils

import (
	"fmt"
	"math"
	"strconv"
)

// SliceParser holds one "start:stop:period" slice of time steps.
type SliceParser struct {
	Start, Stop, Period int
}

// NewSliceParser parses a slice in the form "start:stop:period". Empty fields
// take the defaults start = 0, stop = unbounded, period = 1. A bare integer
// "n" is read as a period of n starting at step 0.
func NewSliceParser(instr string) (sp SliceParser, err error) {
	var (
		fields = Split(instr, ":", true)
	)
	sp = SliceParser{Start: 0, Stop: math.MaxInt, Period: 1}
	if len(fields) > 3 {
		err = fmt.Errorf("too many fields in slice %q, expected start:stop:period", instr)
		return
	}
	if len(fields) == 1 {
		sp.Period, err = parseSliceField(fields[0], sp.Period)
		return
	}
	if sp.Start, err = parseSliceField(fields[0], sp.Start); err != nil {
		return
	}
	if sp.Stop, err = parseSliceField(fields[1], sp.Stop); err != nil {
		return
	}
	if len(fields) == 3 {
		sp.Period, err = parseSliceField(fields[2], sp.Period)
	}
	return
}

func parseSliceField(field string, def int) (val int, err error) {
	if len(field) == 0 {
		return def, nil
	}
	if val, err = strconv.Atoi(field); err != nil {
		err = fmt.Errorf("unable to parse slice field %q: %w", field, err)
	}
	return
}

// Contains returns true if step n is in the slice
func (sp SliceParser) Contains(n int) bool {
	if sp.Period <= 0 || n > sp.Stop || n < sp.Start {
		return false
	}
	return (n-sp.Start)%sp.Period == 0
}

// NextContains returns the smallest step greater than n that is in the slice,
// or math.MaxInt if there is none.
func (sp SliceParser) NextContains(n int) (next int) {
	if sp.Period <= 0 {
		return math.MaxInt
	}
	next = sp.Start
	if n >= sp.Start {
		next = ((n-sp.Start)/sp.Period+1)*sp.Period + sp.Start
	}
	if next > sp.Stop {
		next = math.MaxInt
	}
	return
}

// IntervalsParser is a comma separated list of slices, e.g. "0:100:10,500"
type IntervalsParser struct {
	Slices []SliceParser
}

func NewIntervalsParser(instr string) (ip IntervalsParser, err error) {
	for _, s := range Split(instr, ",", true) {
		if len(s) == 0 {
			continue
		}
		var sp SliceParser
		if sp, err = NewSliceParser(s); err != nil {
			return
		}
		ip.Slices = append(ip.Slices, sp)
	}
	return
}

func (ip IntervalsParser) Contains(n int) bool {
	for _, sp := range ip.Slices {
		if sp.Contains(n) {
			return true
		}
	}
	return false
}

func (ip IntervalsParser) NextContains(n int) (next int) {
	next = math.MaxInt
	for _, sp := range ip.Slices {
		next = min(next, sp.NextContains(n))
	}
	return
}

// IsActivated returns true if at least one slice has a positive period
func (ip IntervalsParser) IsActivated() bool {
	for _, sp := range ip.Slices {
		if sp.Period > 0 {
			return true
		}
	}
	return false
}
