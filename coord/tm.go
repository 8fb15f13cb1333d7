package coord

import "math"

// Frame defines a Transverse Mercator grid: the true origin on the ellipsoid,
// the false origin offsets in metres, and the central meridian scale factor.
type Frame struct {
	OriginLat     float64 // true origin latitude (degrees)
	OriginLon     float64 // true origin longitude (degrees)
	FalseEasting  float64 // easting of the true origin (m)
	FalseNorthing float64 // northing of the true origin (m)
	ScaleFactor   float64 // scale on the central meridian
}

// NationalGrid is the OSGB grid definition: true origin 49N 2W, false origin
// 400 km west and 100 km north of it, central meridian scale 0.9996012717.
var NationalGrid = Frame{
	OriginLat:     49,
	OriginLon:     -2,
	FalseEasting:  400000,
	FalseNorthing: -100000,
	ScaleFactor:   0.9996012717,
}

// meridianArc returns the scaled meridional arc length from the frame origin
// latitude to phi (both in radians), following the OSGB series expansion in
// the ellipsoid's third flattening.
func meridianArc(ell Ellipsoid, scale, phi, originPhi float64) float64 {
	n := ell.N
	pp := phi + originPhi
	pm := phi - originPhi

	return ell.B * scale * ((1+n*(1+5.0/4.0*n*(1+n)))*pm -
		3*n*(1+n*(1+7.0/8.0*n))*math.Sin(pm)*math.Cos(pp) +
		15.0/8.0*n*(n*(1+n))*math.Sin(2*pm)*math.Cos(2*pp) -
		35.0/24.0*n*n*n*math.Sin(3*pm)*math.Cos(3*pp))
}

// Project converts a latitude/longitude in degrees on ell to grid
// easting/northing in metres from the false origin of f.
//
// This is the ellipsoidal Transverse Mercator forward formula. The local
// variable names (I, II, III...) follow the OSGB projection notes; the series
// is designed for roughly 1 mm of truncation error over Great Britain.
func Project(ell Ellipsoid, f Frame, lat, lon float64) (easting, northing float64) {
	phi := lat / degPerRad
	originPhi := f.OriginLat / degPerRad
	originLam := f.OriginLon / degPerRad

	cp := math.Cos(phi)
	sp := math.Sin(phi)
	tp := sp / cp // cos phi cannot be zero in GB

	I := meridianArc(ell, f.ScaleFactor, phi, originPhi)

	nu := ell.A * f.ScaleFactor / math.Sqrt(1-ell.E2*sp*sp)
	eta2 := (1-ell.E2*sp*sp)/(1-ell.E2) - 1

	cp3 := cp * cp * cp
	cp5 := cp3 * cp * cp

	II := nu / 2 * sp * cp
	III := nu / 24 * sp * cp3 * (5 - tp*tp + 9*eta2)
	IIIA := nu / 720 * sp * cp5 * (61 - (58+tp*tp)*tp*tp)

	IV := nu * cp
	V := nu / 6 * cp3 * (eta2 + 1 - tp*tp)
	VI := nu / 120 * cp5 * (5 + (-18+tp*tp)*tp*tp + 14*eta2 - 58*tp*tp*eta2)

	dl := lon/degPerRad - originLam

	northing = f.FalseNorthing + I + (II+(III+IIIA*dl*dl)*dl*dl)*dl*dl
	easting = f.FalseEasting + (IV+(V+VI*dl*dl)*dl*dl)*dl
	return easting, northing
}

// Unproject converts grid easting/northing in metres back to a
// latitude/longitude in degrees on ell.
//
// The footpoint latitude is found by a fixed-point iteration on the
// meridional arc, converging to a hundredth of a millimetre in a handful of
// steps anywhere near the grid.
func Unproject(ell Ellipsoid, f Frame, easting, northing float64) (lat, lon float64) {
	originPhi := f.OriginLat / degPerRad
	originLam := f.OriginLon / degPerRad

	af := ell.A * f.ScaleFactor

	dn := northing - f.FalseNorthing
	de := easting - f.FalseEasting

	phi := originPhi + dn/af
	for {
		m := meridianArc(ell, f.ScaleFactor, phi, originPhi)
		if math.Abs(dn-m) < 1e-5 { // hundredth of a mm
			break
		}
		phi += (dn - m) / af
	}

	cp := math.Cos(phi)
	sp := math.Sin(phi)
	tp := sp / cp

	splat := 1 - ell.E2*sp*sp
	sqrtsplat := math.Sqrt(splat)
	nu := af / sqrtsplat
	rho := af * (1 - ell.E2) / (splat * sqrtsplat)
	eta2 := nu/rho - 1

	nu3 := nu * nu * nu
	nu5 := nu3 * nu * nu
	nu7 := nu5 * nu * nu

	VII := tp / (2 * rho * nu)
	VIII := tp / (24 * rho * nu3) * (5 + 3*tp*tp + eta2 - 9*tp*tp*eta2)
	IX := tp / (720 * rho * nu5) * (61 + (90+45*tp*tp)*tp*tp)

	secp := 1 / cp

	X := secp / nu
	XI := secp / (6 * nu3) * (nu/rho + 2*tp*tp)
	XII := secp / (120 * nu5) * (5 + (28+24*tp*tp)*tp*tp)
	XIIA := secp / (5040 * nu7) * (61 + (662+(1320+720*tp*tp)*tp*tp)*tp*tp)

	phi += (-VII + (VIII-IX*de*de)*de*de) * de * de
	lam := originLam + (X+(-XI+(XII-XIIA*de*de)*de*de)*de*de)*de

	return phi * degPerRad, lam * degPerRad
}
