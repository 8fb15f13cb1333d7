package ostn

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
)

// ParseCSV reads the OS-published OSTN15 data file (one row per lattice node:
// point id, ETRS89 easting, ETRS89 northing, east shift, north shift, geoid
// shift, datum flag) and builds the full lattice. A leading header row is
// skipped. Every node must appear exactly once; nodes whose datum flag is
// zero are kept but treated as unpublished by Lookup.
func ParseCSV(r io.Reader) (*Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	nodes := make([]Node, Cols*Rows)
	filled := make([]bool, Cols*Rows)
	seen := 0
	line := 0

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		line++
		if len(rec) < 7 {
			return nil, fmt.Errorf("%w: line %d has %d fields, want at least 7", ErrFormat, line, len(rec))
		}
		if line == 1 {
			// Header row: the easting column is not numeric.
			if _, err := strconv.ParseFloat(rec[1], 64); err != nil {
				continue
			}
		}

		e, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d easting %q", ErrFormat, line, rec[1])
		}
		n, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d northing %q", ErrFormat, line, rec[2])
		}
		eShift, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d east shift %q", ErrFormat, line, rec[3])
		}
		nShift, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d north shift %q", ErrFormat, line, rec[4])
		}
		flag, err := strconv.ParseUint(rec[6], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d datum flag %q", ErrFormat, line, rec[6])
		}

		i := int(math.Round(e / Spacing))
		j := int(math.Round(n / Spacing))
		if i < 0 || i >= Cols || j < 0 || j >= Rows ||
			e != float64(i)*Spacing || n != float64(j)*Spacing {
			return nil, fmt.Errorf("%w: line %d is not a lattice node (%g, %g)", ErrFormat, line, e, n)
		}
		k := j*Cols + i
		if filled[k] {
			return nil, fmt.Errorf("%w: duplicate node (%g, %g)", ErrFormat, e, n)
		}
		filled[k] = true
		nodes[k] = Node{East: eShift, North: nShift, Flag: uint16(flag)}
		seen++
	}

	if seen != Cols*Rows {
		return nil, errRecordCount(seen)
	}
	return &Grid{nodes: nodes}, nil
}
