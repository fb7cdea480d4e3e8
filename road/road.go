package road

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/pricerider/parameter"
	"github.com/lixenwraith/pricerider/track"
	"github.com/lixenwraith/pricerider/vmath"
)

// Options controls road generation
type Options struct {
	// Center translates the geometry so its bounding box is centered on the origin
	// Leave false when the road start must stay at its series coordinates
	Center bool

	Width          float64
	Thickness      float64
	StepsPerSample int
	Tension        float64
}

// DefaultOptions returns the road shape used by the game
func DefaultOptions() Options {
	return Options{
		Width:          parameter.RoadWidth,
		Thickness:      parameter.RoadThickness,
		StepsPerSample: parameter.RoadStepsPerSample,
		Tension:        parameter.CurveTension,
	}
}

// Road is the drivable path generated from one price series
// Mesh is the single geometry source for both the visual and the collision surface
type Road struct {
	Series *track.Series
	Curve  *Curve
	Mesh   *Mesh

	// Offset is the translation applied by centering (zero otherwise)
	Offset vmath.Vec3F

	Width     float64
	Thickness float64

	// top holds the top-surface centerline, one point per ring, increasing x
	top []vmath.Vec3F
}

// Build generates curve and geometry for series
func Build(series *track.Series, opts Options) (*Road, error) {
	if series == nil || series.Len() == 0 {
		return nil, fmt.Errorf("road build: %w", track.ErrEmptySeries)
	}
	if opts.StepsPerSample < 1 {
		opts.StepsPerSample = parameter.RoadStepsPerSample
	}
	if opts.Width <= 0 {
		opts.Width = parameter.RoadWidth
	}
	if opts.Thickness <= 0 {
		opts.Thickness = parameter.RoadThickness
	}
	if opts.Tension <= 0 {
		opts.Tension = parameter.CurveTension
	}

	curve := NewCurve(series.Points(), opts.Tension)
	mesh := Extrude(curve, RibbonProfile(opts.Width, opts.Thickness), series.Len()*opts.StepsPerSample)

	r := &Road{Series: series, Curve: curve, Mesh: mesh, Width: opts.Width, Thickness: opts.Thickness}

	if opts.Center {
		lo, hi := mesh.Bounds()
		center := vmath.V3FScale(vmath.V3FAdd(lo, hi), 0.5)
		r.Offset = vmath.V3FNeg(center)
		mesh.translate(r.Offset)

		shifted := curve.Points()
		for i := range shifted {
			shifted[i] = vmath.V3FAdd(shifted[i], r.Offset)
		}
		r.Curve = NewCurve(shifted, opts.Tension)
	}

	r.top = make([]vmath.Vec3F, mesh.Rings)
	for i := 0; i < mesh.Rings; i++ {
		a := mesh.Vertices[i*mesh.RingSize]
		b := mesh.Vertices[i*mesh.RingSize+1]
		r.top[i] = vmath.V3FScale(vmath.V3FAdd(a, b), 0.5)
	}
	sort.SliceStable(r.top, func(i, j int) bool { return r.top[i].X < r.top[j].X })

	return r, nil
}

// Start returns the first point of the road surface
func (r *Road) Start() vmath.Vec3F {
	return r.top[0]
}

// End returns the last point of the road surface
func (r *Road) End() vmath.Vec3F {
	return r.top[len(r.top)-1]
}

// TopProfile returns the top-surface centerline taken from the mesh vertices
func (r *Road) TopProfile() []vmath.Vec3F {
	out := make([]vmath.Vec3F, len(r.top))
	copy(out, r.top)
	return out
}

// HeightAt returns the top-surface height at x by interpolating mesh rings
// ok is false outside the road's horizontal extent
func (r *Road) HeightAt(x float64) (h float64, ok bool) {
	n := len(r.top)
	if n == 0 || x < r.top[0].X || x > r.top[n-1].X {
		return 0, false
	}
	i := sort.Search(n, func(i int) bool { return r.top[i].X >= x })
	if i == 0 {
		return r.top[0].Y, true
	}
	a, b := r.top[i-1], r.top[i]
	if b.X == a.X {
		return b.Y, true
	}
	return vmath.Lerp(a.Y, b.Y, (x-a.X)/(b.X-a.X)), true
}

// SpawnPoint returns a position offset along and above the road start
func (r *Road) SpawnPoint(alongX, clearance float64) vmath.Vec3F {
	x := r.Start().X + alongX
	if x > r.End().X {
		x = r.End().X
	}
	h, ok := r.HeightAt(x)
	if !ok {
		h = r.Start().Y
	}
	return vmath.Vec3F{X: x, Y: h + clearance}
}
