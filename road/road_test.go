package road

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lixenwraith/pricerider/track"
	"github.com/lixenwraith/pricerider/vmath"
)

func newSeries(t *testing.T, prices ...int64) *track.Series {
	t.Helper()
	ds := make([]decimal.Decimal, len(prices))
	for i, p := range prices {
		ds[i] = decimal.NewFromInt(p)
	}
	s, err := track.NewSeries("TEST", "Test", ds, nil, track.DefaultBuildOptions())
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	return s
}

func TestCurvePassesThroughControlPoints(t *testing.T) {
	pts := []vmath.Vec3F{{X: 0, Y: 0}, {X: 8, Y: 25}, {X: 16, Y: 12.5}, {X: 24, Y: 50}}
	c := NewCurve(pts, 0.5)

	for i, p := range pts {
		got := c.PointT(float64(i) / float64(len(pts)-1))
		if vmath.V3FDist(got, p) > 1e-9 {
			t.Errorf("PointT at knot %d = %+v, want %+v", i, got, p)
		}
	}

	if vmath.V3FDist(c.Point(0), pts[0]) > 1e-9 {
		t.Errorf("Point(0) = %+v, want first control point", c.Point(0))
	}
	if vmath.V3FDist(c.Point(1), pts[3]) > 1e-9 {
		t.Errorf("Point(1) = %+v, want last control point", c.Point(1))
	}

	// Arc length is at least the chord length
	chord := 0.0
	for i := 1; i < len(pts); i++ {
		chord += vmath.V3FDist(pts[i-1], pts[i])
	}
	if c.Length() < chord-1e-9 {
		t.Errorf("Length = %v, shorter than control polygon %v", c.Length(), chord)
	}
	t.Logf("✓ curve length %.3f over chord %.3f", c.Length(), chord)
}

func TestCurveArcLengthSpacing(t *testing.T) {
	c := NewCurve([]vmath.Vec3F{{X: 0}, {X: 8, Y: 4}, {X: 16}, {X: 24, Y: 2}}, 0.5)
	pts := c.SpacedPoints(40)
	step := c.Length() / 40

	for i := 1; i < len(pts); i++ {
		d := vmath.V3FDist(pts[i-1], pts[i])
		if math.Abs(d-step) > step*0.1 {
			t.Errorf("segment %d length %.4f, want about %.4f", i, d, step)
		}
	}
}

func TestCurveTangentUnit(t *testing.T) {
	c := NewCurve([]vmath.Vec3F{{X: 0}, {X: 8, Y: 8}, {X: 16, Y: 8}}, 0.5)
	for _, u := range []float64{0, 0.25, 0.5, 0.75, 1} {
		tan := c.Tangent(u)
		if math.Abs(vmath.V3FMag(tan)-1) > 1e-9 {
			t.Errorf("Tangent(%v) magnitude %v, want 1", u, vmath.V3FMag(tan))
		}
		if tan.X <= 0 {
			t.Errorf("Tangent(%v) = %+v, want forward x", u, tan)
		}
	}
}

func TestCurveDegenerate(t *testing.T) {
	for _, pts := range [][]vmath.Vec3F{nil, {{X: 3, Y: 7}}} {
		c := NewCurve(pts, 0.5)
		if len(c.Points()) != 2 {
			t.Fatalf("points %v: degenerate curve has %d control points, want 2", pts, len(c.Points()))
		}
		if c.Length() <= 0 {
			t.Errorf("points %v: degenerate curve length %v, want positive", pts, c.Length())
		}
		a, b := c.Point(0), c.Point(1)
		if a.Y != b.Y {
			t.Errorf("points %v: degenerate curve not flat: %v vs %v", pts, a.Y, b.Y)
		}
	}
}

func TestExtrudeTopology(t *testing.T) {
	c := NewCurve([]vmath.Vec3F{{X: 0}, {X: 8, Y: 4}, {X: 16}}, 0.5)
	steps := 30
	m := Extrude(c, RibbonProfile(6, 1), steps)

	if m.Rings != steps+1 || m.RingSize != 4 {
		t.Fatalf("rings %d size %d, want %d and 4", m.Rings, m.RingSize, steps+1)
	}
	if len(m.Vertices) != 4*(steps+1) {
		t.Errorf("vertices = %d, want %d", len(m.Vertices), 4*(steps+1))
	}
	if got, want := m.TriangleCount(), 8*steps+4; got != want {
		t.Errorf("triangles = %d, want %d", got, want)
	}
	for _, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}

	lo, hi := m.Bounds()
	if math.Abs(lo.Z+3) > 1e-9 || math.Abs(hi.Z-3) > 1e-9 {
		t.Errorf("lateral extent [%v, %v], want [-3, 3]", lo.Z, hi.Z)
	}
}

func TestExtrudeTopFaceFacesUp(t *testing.T) {
	c := NewCurve([]vmath.Vec3F{{X: 0}, {X: 8}}, 0.5)
	m := Extrude(c, RibbonProfile(6, 1), 4)

	// First two triangles of each segment form the top quad
	for seg := 0; seg < 4; seg++ {
		a, b, cc := m.Triangle(seg * 8)
		n := vmath.V3FCross(vmath.V3FSub(b, a), vmath.V3FSub(cc, a))
		if n.Y <= 0 {
			t.Errorf("segment %d top normal %+v points down", seg, n)
		}
	}
}

func TestBuildScenario(t *testing.T) {
	s := newSeries(t, 100, 200, 150, 300)
	r, err := Build(s, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []vmath.Vec3F{{X: 0, Y: 0}, {X: 8, Y: 25}, {X: 16, Y: 12.5}, {X: 24, Y: 50}}
	for i, p := range r.Curve.Points() {
		if vmath.V3FDist(p, want[i]) > 1e-9 {
			t.Errorf("control %d = %+v, want %+v", i, p, want[i])
		}
	}

	if r.Mesh.Rings != s.Len()*10+1 {
		t.Errorf("rings = %d, want %d", r.Mesh.Rings, s.Len()*10+1)
	}
	if vmath.V3FDist(r.Start(), want[0]) > 1e-6 {
		t.Errorf("Start = %+v, want %+v", r.Start(), want[0])
	}
	if vmath.V3FDist(r.End(), want[3]) > 1e-6 {
		t.Errorf("End = %+v, want %+v", r.End(), want[3])
	}
	if r.Offset != (vmath.Vec3F{}) {
		t.Errorf("uncentered road has offset %+v", r.Offset)
	}
}

func TestBuildHeightAtKnots(t *testing.T) {
	r, err := Build(newSeries(t, 100, 200, 150, 300), DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, tc := range []struct{ x, y float64 }{{0, 0}, {8, 25}, {16, 12.5}, {24, 50}} {
		h, ok := r.HeightAt(tc.x)
		if !ok {
			t.Fatalf("HeightAt(%v) outside road", tc.x)
		}
		// Knots fall between rings, allow interpolation error
		if math.Abs(h-tc.y) > 1.0 {
			t.Errorf("HeightAt(%v) = %v, want about %v", tc.x, h, tc.y)
		}
	}

	if _, ok := r.HeightAt(-1); ok {
		t.Error("HeightAt before start reported on road")
	}
	if _, ok := r.HeightAt(25); ok {
		t.Error("HeightAt past end reported on road")
	}
}

func TestBuildCentered(t *testing.T) {
	opts := DefaultOptions()
	opts.Center = true
	r, err := Build(newSeries(t, 100, 200, 150, 300), opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	lo, hi := r.Mesh.Bounds()
	mid := vmath.V3FScale(vmath.V3FAdd(lo, hi), 0.5)
	if vmath.V3FMag(mid) > 1e-9 {
		t.Errorf("centered bounds midpoint %+v, want origin", mid)
	}

	// Curve moves with the mesh so the two stay consistent
	h, ok := r.HeightAt(r.Curve.Point(0.5).X)
	if !ok || math.Abs(h-r.Curve.Point(0.5).Y) > 0.5 {
		t.Errorf("centered curve and mesh disagree: mesh %v curve %v", h, r.Curve.Point(0.5).Y)
	}
}

func TestBuildSingleSampleIsFlat(t *testing.T) {
	r, err := Build(newSeries(t, 42), DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if r.Start().Y != r.End().Y || r.Start().Y != 0 {
		t.Errorf("single sample road not flat at floor: start %v end %v", r.Start().Y, r.End().Y)
	}
	if r.End().X <= r.Start().X {
		t.Errorf("single sample road has no length")
	}
}

func TestBuildEmpty(t *testing.T) {
	if _, err := Build(nil, DefaultOptions()); !errors.Is(err, track.ErrEmptySeries) {
		t.Errorf("Build(nil) error = %v, want ErrEmptySeries", err)
	}
}

func TestSpawnPoint(t *testing.T) {
	r, err := Build(newSeries(t, 100, 100, 100), DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := r.SpawnPoint(4, 2)
	if math.Abs(p.X-4) > 1e-9 || math.Abs(p.Y-2) > 1e-6 || p.Z != 0 {
		t.Errorf("SpawnPoint = %+v, want (4, 2, 0)", p)
	}
}
