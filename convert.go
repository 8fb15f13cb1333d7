// Package osgb converts between latitude/longitude and the OSGB national grid.
//
// The precise path projects a WGS84 point onto the grid plane with the
// Transverse Mercator formulae and corrects it with the OSTN shift lattice,
// giving sub-centimetre agreement with the published OS figures. Outside the
// lattice coverage the conversion falls back to a fixed Helmert datum
// transform, good to about five metres; the returned Accuracy says which path
// was taken. Selecting the OSGB36 datum bypasses both and runs the plain
// projection, matching the latitude/longitude graticule printed on older OS
// maps.
package osgb

import (
	"fmt"
	"math"

	"github.com/osgrid/osgb/coord"
	"github.com/osgrid/osgb/ostn"
)

// Datum selects the ellipsoid model a latitude/longitude is expressed in.
type Datum int

const (
	// WGS84 is the GPS datum, the default for modern coordinates.
	WGS84 Datum = iota
	// OSGB36 is the traditional UK datum printed on older OS maps.
	OSGB36
)

func (d Datum) String() string {
	switch d {
	case WGS84:
		return "WGS84"
	case OSGB36:
		return "OSGB36"
	}
	return fmt.Sprintf("Datum(%d)", int(d))
}

// Accuracy reports which conversion path produced a result.
type Accuracy int

const (
	// Precise marks the OSTN shift-grid path, sub-centimetre.
	Precise Accuracy = iota
	// Approximate marks the Helmert fallback path, about +/-5 m.
	Approximate
)

func (a Accuracy) String() string {
	if a == Precise {
		return "precise"
	}
	return "approximate"
}

// Shift-grid inversion: tolerance per axis in metres and the iteration bound.
// In-coverage points converge in two to four rounds.
const (
	shiftTolerance  = 0.0001
	shiftIterations = 20
)

// Converter performs the two conversions against one shift grid. It holds no
// other state and is safe for concurrent use. A Converter built with a nil
// grid still handles the OSGB36 datum exactly and degrades every WGS84
// conversion to the Helmert path.
type Converter struct {
	grid *ostn.Grid
}

// NewConverter returns a Converter using the given shift grid.
func NewConverter(grid *ostn.Grid) *Converter {
	return &Converter{grid: grid}
}

// LLToGrid converts a latitude/longitude in decimal degrees on datum to a
// national grid easting/northing in metres from the false origin.
func (c *Converter) LLToGrid(lat, lon float64, datum Datum) (easting, northing float64, acc Accuracy, err error) {
	if err := checkLatLon(lat, lon); err != nil {
		return 0, 0, 0, err
	}

	switch datum {
	case OSGB36:
		easting, northing = coord.Project(coord.Airy1830, coord.NationalGrid, lat, lon)
		return easting, northing, Precise, nil

	case WGS84:
		// Pseudo-grid position, then the OSTN correction on top.
		easting, northing = coord.Project(coord.WGS84, coord.NationalGrid, lat, lon)
		if s, ok := c.grid.Lookup(easting, northing); ok {
			return easting + s.East, northing + s.North, Precise, nil
		}
		olat, olon := coord.WGS84ToOSGB36(lat, lon)
		easting, northing = coord.Project(coord.Airy1830, coord.NationalGrid, olat, olon)
		return easting, northing, Approximate, nil

	default:
		return 0, 0, 0, fmt.Errorf("%w: %d", ErrUnknownDatum, int(datum))
	}
}

// GridToLL converts a national grid easting/northing in metres to a
// latitude/longitude in decimal degrees on datum.
func (c *Converter) GridToLL(easting, northing float64, datum Datum) (lat, lon float64, acc Accuracy, err error) {
	if !isFinite(easting) || !isFinite(northing) {
		return 0, 0, 0, fmt.Errorf("%w: (%v, %v)", ErrNotFinite, easting, northing)
	}

	switch datum {
	case OSGB36:
		lat, lon = coord.Unproject(coord.Airy1830, coord.NationalGrid, easting, northing)
		return lat, lon, Precise, nil

	case WGS84:
		pe, pn, ok, err := c.pseudoGrid(easting, northing)
		if err != nil {
			return 0, 0, 0, err
		}
		if ok {
			lat, lon = coord.Unproject(coord.WGS84, coord.NationalGrid, pe, pn)
			return lat, lon, Precise, nil
		}
		olat, olon := coord.Unproject(coord.Airy1830, coord.NationalGrid, easting, northing)
		lat, lon = coord.OSGB36ToWGS84(olat, olon)
		return lat, lon, Approximate, nil

	default:
		return 0, 0, 0, fmt.Errorf("%w: %d", ErrUnknownDatum, int(datum))
	}
}

// pseudoGrid recovers the pseudo-grid position whose shifted image is the
// given true grid position. The shift lattice is indexed by pseudo-grid
// coordinates, so there is no closed form: starting from the true position
// (within a few hundred metres of the answer, well inside one cell) we
// re-look-up the shift at each estimate until it stops moving. ok is false
// when the point, or an iterated estimate, leaves lattice coverage; the
// caller then takes the Helmert path instead.
func (c *Converter) pseudoGrid(easting, northing float64) (pe, pn float64, ok bool, err error) {
	s, ok := c.grid.Lookup(easting, northing)
	if !ok {
		return 0, 0, false, nil
	}
	pe = easting - s.East
	pn = northing - s.North

	for iter := 0; iter < shiftIterations; iter++ {
		s, ok = c.grid.Lookup(pe, pn)
		if !ok {
			// Shifted off the edge of coverage.
			return 0, 0, false, nil
		}
		ne := easting - s.East
		nn := northing - s.North
		if math.Abs(ne-pe) < shiftTolerance && math.Abs(nn-pn) < shiftTolerance {
			return ne, nn, true, nil
		}
		pe, pn = ne, nn
	}
	return 0, 0, false, ErrNonConvergence
}

func checkLatLon(lat, lon float64) error {
	if !isFinite(lat) || !isFinite(lon) {
		return fmt.Errorf("%w: (%v, %v)", ErrNotFinite, lat, lon)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: %g", ErrLatitudeRange, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%w: %g", ErrLongitudeRange, lon)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
