package coord

import "math"

// Helmert holds the parameters of a 3D similarity (translate, small-angle
// rotate, scale) transform between two datums: translations in metres,
// rotations in arc-seconds, scale offset in parts per million.
type Helmert struct {
	TX, TY, TZ float64 // translation (m)
	RX, RY, RZ float64 // rotation (arc-seconds)
	PPM        float64 // scale offset (ppm)
}

// OSGB36Helmert is the OS published WGS84 to OSGB36 transform. It is designed
// for about +/-5 m accuracy over the OSGB area and is used only where the
// OSTN shift grid has no coverage.
var OSGB36Helmert = Helmert{
	TX: -446.448, TY: 125.157, TZ: -542.060,
	RX: -0.1502, RY: -0.2470, RZ: -0.8421,
	PPM: 20.4894,
}

// apply runs the transform on geocentric coordinates. dir is +1 for the
// forward (WGS84 to OSGB36) direction and -1 for the reverse; the small-angle
// transform is its own inverse under negated parameters.
func (h Helmert) apply(dir, xa, ya, za float64) (xb, yb, zb float64) {
	tx := dir * h.TX
	ty := dir * h.TY
	tz := dir * h.TZ
	s := dir*h.PPM*1e-6 + 1
	rx := dir * h.RX / 3600 / degPerRad
	ry := dir * h.RY / 3600 / degPerRad
	rz := dir * h.RZ / 3600 / degPerRad

	xb = tx + s*xa - rz*ya + ry*za
	yb = ty + rz*xa + s*ya - rx*za
	zb = tz - ry*xa + rx*ya + s*za
	return xb, yb, zb
}

// Geocentric converts a latitude/longitude in degrees and an ellipsoidal
// height in metres to geocentric Cartesian coordinates on ell.
func Geocentric(ell Ellipsoid, lat, lon, height float64) (x, y, z float64) {
	phi := lat / degPerRad
	sp := math.Sin(phi)
	cp := math.Cos(phi)

	lam := lon / degPerRad
	sl := math.Sin(lam)
	cl := math.Cos(lam)

	nu := ell.A / math.Sqrt(1-ell.E2*sp*sp)

	x = (nu + height) * cp * cl
	y = (nu + height) * cp * sl
	z = ((1-ell.E2)*nu + height) * sp
	return x, y, z
}

// Geodetic converts geocentric Cartesian coordinates back to a
// latitude/longitude in degrees and an ellipsoidal height in metres on ell.
// The latitude is recovered by a short fixed-point iteration.
func Geodetic(ell Ellipsoid, x, y, z float64) (lat, lon, height float64) {
	p := math.Sqrt(x*x + y*y)
	lam := math.Atan2(y, x)
	phi := math.Atan2(z, p*(1-ell.E2))

	var nu float64
	for {
		sp := math.Sin(phi)
		nu = ell.A / math.Sqrt(1-ell.E2*sp*sp)
		oldphi := phi
		phi = math.Atan2(z+ell.E2*nu*sp, p)
		if math.Abs(oldphi-phi) < 1e-12 {
			break
		}
	}

	return phi * degPerRad, lam * degPerRad, p/math.Cos(phi) - nu
}

// WGS84ToOSGB36 converts a WGS84 latitude/longitude (degrees, zero height) to
// the OSGB36 datum via the fixed Helmert transform. Accuracy about +/-5 m.
func WGS84ToOSGB36(lat, lon float64) (float64, float64) {
	x, y, z := Geocentric(WGS84, lat, lon, 0)
	x, y, z = OSGB36Helmert.apply(1, x, y, z)
	olat, olon, _ := Geodetic(Airy1830, x, y, z)
	return olat, olon
}

// OSGB36ToWGS84 is the reverse of WGS84ToOSGB36.
func OSGB36ToWGS84(lat, lon float64) (float64, float64) {
	x, y, z := Geocentric(Airy1830, lat, lon, 0)
	x, y, z = OSGB36Helmert.apply(-1, x, y, z)
	wlat, wlon, _ := Geodetic(WGS84, x, y, z)
	return wlat, wlon
}
