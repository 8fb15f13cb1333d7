package coord

import (
	"math"
	"testing"
)

// Reference figures from the OSGB worked examples and from surveyed points
// on OS sheets. All are on the OSGB36 datum, so they exercise the projection
// alone, with no shift grid or datum transform involved.
//
// Forward fixtures are published rounded to the millimetre; inverse fixtures
// carry the full precision of the reference implementation.

var forwardFixtures = []struct {
	name              string
	lat, lon          float64
	easting, northing float64
	tolM              float64
}{
	{
		name: "true origin",
		lat:  49, lon: -2,
		easting: 400000, northing: -100000,
		tolM: 1e-6,
	},
	{
		name: "central meridian at 52N",
		lat:  52, lon: -2,
		easting: 400000, northing: 233553.73133031745,
		tolM: 1e-6,
	},
	{
		name: "Cobham (SW corner of Explorer 161)",
		lat:  51.3333333333, lon: -0.416666666667,
		easting: 510290.252, northing: 160605.816,
		tolM: 0.0006,
	},
	{
		name: "Glendessary",
		lat:  57, lon: -320.0 / 60,
		easting: 197573.181, northing: 794792.843,
		tolM: 0.0006,
	},
	{
		name: "OSGB worked example",
		lat:  52 + 39.0/60 + 27.2531/3600, lon: 1 + 43.0/60 + 4.5177/3600,
		easting: 651409.903, northing: 313177.270,
		tolM: 0.0006,
	},
}

func TestProject_OSGB36Fixtures(t *testing.T) {
	for _, fix := range forwardFixtures {
		t.Run(fix.name, func(t *testing.T) {
			e, n := Project(Airy1830, NationalGrid, fix.lat, fix.lon)
			if d := math.Abs(e - fix.easting); d > fix.tolM {
				t.Errorf("easting: got %.6f, want %.6f (delta=%.6f > tol=%.6f)",
					e, fix.easting, d, fix.tolM)
			}
			if d := math.Abs(n - fix.northing); d > fix.tolM {
				t.Errorf("northing: got %.6f, want %.6f (delta=%.6f > tol=%.6f)",
					n, fix.northing, d, fix.tolM)
			}
		})
	}
}

var inverseFixtures = []struct {
	name              string
	easting, northing float64
	lat, lon          float64
	tolDeg            float64
}{
	{
		name:    "Cranbourne Chase (on the central meridian)",
		easting: 400000, northing: 122350.044,
		lat: 51.0, lon: -2.0,
		tolDeg: 1e-9,
	},
	{
		name:    "OSGB worked example",
		easting: 651409.903, northing: 313177.27,
		lat: 52.6575703, lon: 1.71792158,
		tolDeg: 1e-8,
	},
	{
		name:    "Hoy",
		easting: 323223, northing: 1004000,
		lat: 58.91680150461385, lon: -3.3333320035568224,
		tolDeg: 1e-9,
	},
	{
		name:    "Glen Achcall",
		easting: 217380, northing: 896060,
		lat: 57.91671633292687, lon: -5.083330213971718,
		tolDeg: 1e-9,
	},
}

func TestUnproject_OSGB36Fixtures(t *testing.T) {
	for _, fix := range inverseFixtures {
		t.Run(fix.name, func(t *testing.T) {
			lat, lon := Unproject(Airy1830, NationalGrid, fix.easting, fix.northing)
			if d := math.Abs(lat - fix.lat); d > fix.tolDeg {
				t.Errorf("lat: got %.10f, want %.10f (delta=%.2e)", lat, fix.lat, d)
			}
			if d := math.Abs(lon - fix.lon); d > fix.tolDeg {
				t.Errorf("lon: got %.10f, want %.10f (delta=%.2e)", lon, fix.lon, d)
			}
		})
	}
}

func TestProjectUnproject_RoundTrip(t *testing.T) {
	// A degree in latitude is about 111 km, so 1e-8 degrees is ~1 mm.
	const tolDeg = 1e-8

	for _, ell := range []Ellipsoid{Airy1830, WGS84} {
		for lat := 49.5; lat <= 61.0; lat += 1.15 {
			for lon := -7.5; lon <= 1.8; lon += 0.93 {
				e, n := Project(ell, NationalGrid, lat, lon)
				gotLat, gotLon := Unproject(ell, NationalGrid, e, n)
				if math.Abs(gotLat-lat) > tolDeg || math.Abs(gotLon-lon) > tolDeg {
					t.Errorf("%s (%.2f, %.2f): round trip gave (%.10f, %.10f)",
						ell.Name, lat, lon, gotLat, gotLon)
				}
			}
		}
	}
}

func TestUnprojectProject_RoundTrip(t *testing.T) {
	const tolM = 0.001

	for easting := 100000.0; easting <= 650000; easting += 137000 {
		for northing := 0.0; northing <= 1200000; northing += 171000 {
			lat, lon := Unproject(Airy1830, NationalGrid, easting, northing)
			e, n := Project(Airy1830, NationalGrid, lat, lon)
			if math.Abs(e-easting) > tolM || math.Abs(n-northing) > tolM {
				t.Errorf("(%.0f, %.0f): round trip gave (%.5f, %.5f)", easting, northing, e, n)
			}
		}
	}
}
