package ostn

import (
	"math"
	"testing"
)

// buildGrid fills the whole lattice from a node function.
func buildGrid(t *testing.T, fn func(i, j int) Node) *Grid {
	t.Helper()
	nodes := make([]Node, Cols*Rows)
	for j := 0; j < Rows; j++ {
		for i := 0; i < Cols; i++ {
			nodes[j*Cols+i] = fn(i, j)
		}
	}
	g, err := New(nodes)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

// linearField is a smooth synthetic shift field in the same range as the
// real OSTN data: east shifts near +91 m, north shifts near -81 m, varying
// gently across the lattice.
func linearField(i, j int) Node {
	return Node{
		East:  91.0 + 0.004*float64(i) + 0.002*float64(j),
		North: -81.0 - 0.003*float64(i) + 0.005*float64(j),
		Flag:  1,
	}
}

func TestLookup_NodeExact(t *testing.T) {
	g := buildGrid(t, linearField)

	// At a lattice node the interpolation weights collapse onto the single
	// stored record, so the result must be exact, not merely close.
	for _, node := range [][2]int{{0, 0}, {331, 431}, {700, 1250}, {1, 1250}, {700, 0}} {
		i, j := node[0], node[1]
		want := g.Node(i, j)
		s, ok := g.Lookup(float64(i)*Spacing, float64(j)*Spacing)
		if !ok {
			t.Fatalf("node (%d, %d): unexpectedly uncovered", i, j)
		}
		if s.East != want.East || s.North != want.North {
			t.Errorf("node (%d, %d): got (%v, %v), want (%v, %v)",
				i, j, s.East, s.North, want.East, want.North)
		}
	}
}

func TestLookup_Bilinear(t *testing.T) {
	g := buildGrid(t, linearField)

	// Hand-computed weights at fractional offsets (0.4, 0.25) in cell (80, 1).
	const e, n = 80400.0, 1250.0
	v00 := g.Node(80, 1)
	v10 := g.Node(81, 1)
	v01 := g.Node(80, 2)
	v11 := g.Node(81, 2)

	wantE := 0.6*0.75*v00.East + 0.4*0.75*v10.East + 0.6*0.25*v01.East + 0.4*0.25*v11.East
	wantN := 0.6*0.75*v00.North + 0.4*0.75*v10.North + 0.6*0.25*v01.North + 0.4*0.25*v11.North

	s, ok := g.Lookup(e, n)
	if !ok {
		t.Fatal("unexpectedly uncovered")
	}
	if math.Abs(s.East-wantE) > 1e-12 || math.Abs(s.North-wantN) > 1e-12 {
		t.Errorf("got (%v, %v), want (%v, %v)", s.East, s.North, wantE, wantN)
	}
}

func TestLookup_CoverageBounds(t *testing.T) {
	g := buildGrid(t, linearField)

	inside := [][2]float64{
		{0, 0},
		{700000, 1250000}, // far corner: the rectangle is closed
		{700000, 0},
		{0, 1250000},
		{699999.99, 1249999.99},
		{350123.4, 624987.6},
	}
	for _, p := range inside {
		if _, ok := g.Lookup(p[0], p[1]); !ok {
			t.Errorf("(%v, %v): want covered", p[0], p[1])
		}
	}

	outside := [][2]float64{
		{-0.01, 500000},
		{500000, -0.01},
		{700000.01, 500000},
		{500000, 1250000.01},
		{math.NaN(), 500000},
		{500000, math.Inf(1)},
	}
	for _, p := range outside {
		if _, ok := g.Lookup(p[0], p[1]); ok {
			t.Errorf("(%v, %v): want coverage miss", p[0], p[1])
		}
	}
}

func TestLookup_FarEdgeUsesLastCell(t *testing.T) {
	g := buildGrid(t, linearField)

	// Exactly on the far edge the query resolves to the last cell with a
	// fractional offset of one, i.e. the edge node values themselves.
	want := g.Node(700, 625)
	s, ok := g.Lookup(700000, 625000)
	if !ok {
		t.Fatal("far edge: unexpectedly uncovered")
	}
	if math.Abs(s.East-want.East) > 1e-9 || math.Abs(s.North-want.North) > 1e-9 {
		t.Errorf("far edge: got (%v, %v), want (%v, %v)", s.East, s.North, want.East, want.North)
	}
}

func TestLookup_UnpublishedCorner(t *testing.T) {
	g := buildGrid(t, func(i, j int) Node {
		n := linearField(i, j)
		if i == 100 && j == 200 {
			n.Flag = 0
		}
		return n
	})

	// Any cell touching the unpublished node is a coverage miss.
	for _, p := range [][2]float64{
		{100000, 200000}, // the node itself
		{99500, 199500},
		{100500, 200500},
		{99500, 200500},
		{100500, 199500},
	} {
		if _, ok := g.Lookup(p[0], p[1]); ok {
			t.Errorf("(%v, %v): want miss near unpublished node", p[0], p[1])
		}
	}

	// Two cells away the lattice is intact.
	if _, ok := g.Lookup(102500, 202500); !ok {
		t.Error("(102500, 202500): want covered")
	}
}

func TestLookup_NilGrid(t *testing.T) {
	var g *Grid
	if _, ok := g.Lookup(400000, 200000); ok {
		t.Error("nil grid: want coverage miss everywhere")
	}
}

func TestNew_WrongCount(t *testing.T) {
	if _, err := New(make([]Node, 100)); err == nil {
		t.Error("want error for short node slice")
	}
}
