package osgb

import "github.com/osgrid/osgb/gridref"

// The wrappers below reproduce the interface older callers expect: longitude
// before latitude, OSGB36 datum, grid references as strings. Unlike the old
// interface they never guess at the argument order; the order is fixed.

// LonLatToGridRef converts an OSGB36 longitude/latitude to a spaced grid
// reference with the given number of figures, e.g. "TM 114 525".
func (c *Converter) LonLatToGridRef(lon, lat float64, figures int) (string, error) {
	easting, northing, _, err := c.LLToGrid(lat, lon, OSGB36)
	if err != nil {
		return "", err
	}
	return gridref.Format(easting, northing, figures)
}

// GridRefToLonLat converts a grid reference string to an OSGB36
// longitude/latitude. Case, spacing and figure count are detected by the
// parser, so "TM114 525", "TM 11400 52500" and "tm114525" all work.
func (c *Converter) GridRefToLonLat(ref string) (lon, lat float64, err error) {
	easting, northing, err := gridref.Parse(ref)
	if err != nil {
		return 0, 0, err
	}
	lat, lon, _, err = c.GridToLL(easting, northing, OSGB36)
	if err != nil {
		return 0, 0, err
	}
	return lon, lat, nil
}
