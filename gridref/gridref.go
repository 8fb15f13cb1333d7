// Package gridref formats and parses traditional OSGB grid reference strings
// such as "TQ 213 455". A reference names a 100 km square with two letters
// and a position inside it with one to five figures each of easting and
// northing; fewer figures name a larger square. Following OS practice the
// figures are truncated, not rounded, so a reference always names the
// south-west corner of the square it refers to.
package gridref

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// The 25 letters (I is unused) index 100 km squares in a 5x5 pattern that
// repeats inside 500 km super-squares, starting from the south-west.
const squareLetters = "VWXYZQRSTULMNOPFGHJKABCDE"

const (
	gridSize  = 5
	minorSize = 100000              // 100 km square
	majorSize = gridSize * minorSize // 500 km super-square

	// The grid's false origin sits two super-squares east and one north of
	// the letter scheme's origin, placing square SV at (0,0).
	eastingOffset  = 2 * majorSize
	northingOffset = 1 * majorSize

	maxGridSize = minorSize * gridSize * gridSize
)

var (
	// ErrOffGrid indicates coordinates outside the lettered grid scheme.
	ErrOffGrid = errors.New("gridref: coordinates outside the lettered grid")
	// ErrBadReference indicates a string that is not a grid reference.
	ErrBadReference = errors.New("gridref: malformed grid reference")
	// ErrBadFigures indicates a figure count outside 1..5.
	ErrBadFigures = errors.New("gridref: figures must be between 1 and 5")
)

// Square returns the two-letter 100 km square identifier containing the
// given easting/northing. Negative coordinates are allowed as long as they
// stay inside the letter scheme, which extends well beyond the grid proper.
func Square(easting, northing float64) (string, error) {
	e := easting + eastingOffset
	n := northing + northingOffset

	if e < 0 || e >= maxGridSize || n < 0 || n >= maxGridSize {
		return "", fmt.Errorf("%w: (%g, %g)", ErrOffGrid, easting, northing)
	}

	major := int(e/majorSize) + gridSize*int(n/majorSize)
	e = math.Mod(e, majorSize)
	n = math.Mod(n, majorSize)
	minor := int(e/minorSize) + gridSize*int(n/minorSize)

	return string(squareLetters[major]) + string(squareLetters[minor]), nil
}

// SquareOrigin returns the easting/northing of the south-west corner of a
// two-letter square. The origin may be negative or beyond the grid proper
// for pseudo-squares like "WE" or "XD".
func SquareOrigin(sq string) (easting, northing float64, err error) {
	if len(sq) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadReference, sq)
	}
	a := strings.IndexByte(squareLetters, sq[0])
	b := strings.IndexByte(squareLetters, sq[1])
	if a < 0 || b < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadReference, sq)
	}

	majorRow, majorCol := a/gridSize, a%gridSize
	minorRow, minorCol := b/gridSize, b%gridSize

	easting = float64(majorSize*majorCol - eastingOffset + minorSize*minorCol)
	northing = float64(majorSize*majorRow - northingOffset + minorSize*minorRow)
	return easting, northing, nil
}

// Format renders an easting/northing as a spaced grid reference with the
// given number of figures each, e.g. Format(438710.908, 114792.248, 3) is
// "SU 387 147".
func Format(easting, northing float64, figures int) (string, error) {
	return format(easting, northing, figures, " ")
}

// FormatCompact is Format without the spaces: "SU387147".
func FormatCompact(easting, northing float64, figures int) (string, error) {
	return format(easting, northing, figures, "")
}

func format(easting, northing float64, figures int, sep string) (string, error) {
	if figures < 1 || figures > 5 {
		return "", fmt.Errorf("%w: %d", ErrBadFigures, figures)
	}
	sq, err := Square(easting, northing)
	if err != nil {
		return "", err
	}

	// Truncate to the square named by the reference.
	div := 1
	for i := figures; i < 5; i++ {
		div *= 10
	}
	e := int(math.Floor(math.Mod(easting+maxGridSize, minorSize))) / div
	n := int(math.Floor(math.Mod(northing+maxGridSize, minorSize))) / div

	return fmt.Sprintf("%s%s%0*d%s%0*d", sq, sep, figures, e, sep, figures, n), nil
}

// Parse extracts an easting/northing from a grid reference string. Case and
// whitespace are ignored; the figure count is detected from the digits, so
// "TQ 213 455", "tq213455" and "TQ 21300 45500" all parse. A bare square
// like "TQ" names its south-west corner.
func Parse(ref string) (easting, northing float64, err error) {
	s := strings.ToUpper(strings.Join(strings.Fields(ref), ""))
	if len(s) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadReference, ref)
	}

	easting, northing, err = SquareOrigin(s[:2])
	if err != nil {
		return 0, 0, err
	}
	digits := s[2:]
	if digits == "" {
		return easting, northing, nil
	}
	if len(digits)%2 != 0 || len(digits) > 10 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadReference, ref)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, 0, fmt.Errorf("%w: %q", ErrBadReference, ref)
		}
	}

	figures := len(digits) / 2
	scale := 1.0
	for i := figures; i < 5; i++ {
		scale *= 10
	}

	var e, n int
	for i := 0; i < figures; i++ {
		e = e*10 + int(digits[i]-'0')
		n = n*10 + int(digits[figures+i]-'0')
	}
	return easting + float64(e)*scale, northing + float64(n)*scale, nil
}
