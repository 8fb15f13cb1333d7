package osgb

import "errors"

var (
	// ErrLatitudeRange indicates a latitude outside [-90, 90] degrees.
	ErrLatitudeRange = errors.New("osgb: latitude out of range")
	// ErrLongitudeRange indicates a longitude outside [-180, 180] degrees.
	ErrLongitudeRange = errors.New("osgb: longitude out of range")
	// ErrNotFinite indicates a NaN or infinite coordinate.
	ErrNotFinite = errors.New("osgb: coordinate is not finite")
	// ErrUnknownDatum indicates a Datum value other than WGS84 or OSGB36.
	ErrUnknownDatum = errors.New("osgb: unknown datum")
	// ErrNonConvergence indicates the shift-grid inversion failed to settle
	// within its iteration bound. This never happens for legitimate grid
	// coordinates; it signals corrupt shift data or a wild input.
	ErrNonConvergence = errors.New("osgb: shift grid inversion did not converge")
	// ErrNoGridFile indicates Default was used without OSTN_GRID_FILE set.
	ErrNoGridFile = errors.New("osgb: OSTN_GRID_FILE is not set")
)
