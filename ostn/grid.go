// Package ostn holds the OSTN correction lattice that turns a pseudo-grid
// position (the plain Transverse Mercator projection of a WGS84 point) into a
// true national grid position. The lattice is a regular 1 km grid of
// east/north shift vectors covering the rectangle (0,0)-(700000,1250000);
// queries between nodes are answered by bilinear interpolation.
package ostn

const (
	// Spacing is the lattice node spacing in metres.
	Spacing = 1000.0

	// Cols and Rows are the lattice dimensions: easting 0..700000 and
	// northing 0..1250000 inclusive at 1 km steps.
	Cols = 701
	Rows = 1251

	// MaxEasting and MaxNorthing bound the coverage rectangle (closed).
	MaxEasting  = (Cols - 1) * Spacing
	MaxNorthing = (Rows - 1) * Spacing
)

// Shift is an east/north correction in metres, either stored at a lattice
// node or interpolated at a query point.
type Shift struct {
	East  float64
	North float64
}

// Node is one lattice record. Flag zero marks a node with no published
// correction (outside OS survey coverage), which excludes the node from
// interpolation; nonzero values carry the OS datum flag verbatim.
type Node struct {
	East  float64
	North float64
	Flag  uint16
}

// Grid is the full correction lattice, row-major with northing rows outermost.
// It is immutable once built and safe for use from any number of goroutines.
type Grid struct {
	nodes []Node
}

// New builds a Grid from a complete row-major node slice. The slice is
// retained; callers must not modify it afterwards.
func New(nodes []Node) (*Grid, error) {
	if len(nodes) != Cols*Rows {
		return nil, errRecordCount(len(nodes))
	}
	return &Grid{nodes: nodes}, nil
}

// Node returns the stored record at lattice indices (i, j), where node (i, j)
// sits at easting i*1000, northing j*1000.
func (g *Grid) Node(i, j int) Node {
	return g.nodes[j*Cols+i]
}

// Lookup bilinearly interpolates the shift at an easting/northing given in
// metres. ok is false when the point lies outside the coverage rectangle or
// when any corner of the surrounding cell has no published correction; the
// caller is expected to fall back to the Helmert transform in that case.
// Points exactly on the far edge of the rectangle resolve to the last cell
// with a fractional offset of one, so the closed rectangle is fully covered.
// A nil Grid reports every point as uncovered.
func (g *Grid) Lookup(easting, northing float64) (Shift, bool) {
	if g == nil {
		return Shift{}, false
	}
	// NaN fails these comparisons too.
	if !(easting >= 0 && easting <= MaxEasting && northing >= 0 && northing <= MaxNorthing) {
		return Shift{}, false
	}

	i := int(easting / Spacing)
	j := int(northing / Spacing)
	if i > Cols-2 {
		i = Cols - 2
	}
	if j > Rows-2 {
		j = Rows - 2
	}
	dx := easting/Spacing - float64(i)
	dy := northing/Spacing - float64(j)

	v00 := g.Node(i, j)
	v10 := g.Node(i+1, j)
	v01 := g.Node(i, j+1)
	v11 := g.Node(i+1, j+1)

	if v00.Flag == 0 || v10.Flag == 0 || v01.Flag == 0 || v11.Flag == 0 {
		return Shift{}, false
	}

	f00 := (1 - dx) * (1 - dy)
	f10 := dx * (1 - dy)
	f01 := (1 - dx) * dy
	f11 := dx * dy

	return Shift{
		East:  f00*v00.East + f10*v10.East + f01*v01.East + f11*v11.East,
		North: f00*v00.North + f10*v10.North + f01*v01.North + f11*v11.North,
	}, true
}
