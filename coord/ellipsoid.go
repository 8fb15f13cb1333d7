package coord

// Ellipsoid holds the defining constants of a reference ellipsoid.
// N (third flattening) and E2 (first eccentricity squared) are derived from
// A and B but stored to full precision so the projection series use exactly
// the same values as the published OSGB worked examples.
type Ellipsoid struct {
	Name string
	A    float64 // semi-major axis (m)
	B    float64 // semi-minor axis (m)
	N    float64 // third flattening (A-B)/(A+B)
	E2   float64 // first eccentricity squared
}

// The two ellipsoid models needed for the British grid: WGS84 for GPS
// coordinates and Airy 1830, the model underlying the OSGB36 datum.
var (
	WGS84 = Ellipsoid{
		Name: "WGS84",
		A:    6378137.000,
		B:    6356752.31424518,
		N:    0.0016792203863836474,
		E2:   0.006694379990141316996137233540,
	}

	Airy1830 = Ellipsoid{
		Name: "Airy1830",
		A:    6377563.396,
		B:    6356256.909,
		N:    0.0016732203289875152,
		E2:   0.006670540074149231821114893873561,
	}
)

// degPerRad matches the constant used in the OSGB reference figures.
const degPerRad = 57.29577951308232087679815481410517
