package road

import (
	"sort"

	"github.com/lixenwraith/pricerider/parameter"
	"github.com/lixenwraith/pricerider/vmath"
)

// Curve is a Catmull-Rom spline through control points with an arc-length table
// Parameter u in [0,1] is arc-length normalized; t in [0,1] is segment-uniform
type Curve struct {
	points  []vmath.Vec3F
	tension float64

	// arc[i] is the cumulative length at t = i / (len(arc)-1)
	arc []float64
}

// NewCurve builds a curve through points
// Fewer than two points degrade to a flat segment of one road step at the first point's height
func NewCurve(points []vmath.Vec3F, tension float64) *Curve {
	pts := make([]vmath.Vec3F, len(points))
	copy(pts, points)

	switch len(pts) {
	case 0:
		pts = []vmath.Vec3F{{Y: parameter.RoadFloorHeight}, {X: parameter.RoadXStep, Y: parameter.RoadFloorHeight}}
	case 1:
		pts = append(pts, vmath.Vec3F{X: pts[0].X + parameter.RoadXStep, Y: pts[0].Y, Z: pts[0].Z})
	}

	c := &Curve{points: pts, tension: tension}
	c.buildArcTable(parameter.CurveArcSamples * (len(pts) - 1))
	return c
}

// Points returns a copy of the control points
func (c *Curve) Points() []vmath.Vec3F {
	out := make([]vmath.Vec3F, len(c.points))
	copy(out, c.points)
	return out
}

// Length returns the approximate arc length
func (c *Curve) Length() float64 {
	return c.arc[len(c.arc)-1]
}

// PointT evaluates the curve at segment-uniform parameter t
func (c *Curve) PointT(t float64) vmath.Vec3F {
	n := len(c.points)
	t = vmath.Clamp(t, 0, 1)

	seg := t * float64(n-1)
	i := int(seg)
	w := seg - float64(i)
	if i >= n-1 {
		i = n - 2
		w = 1
	}

	p1 := c.points[i]
	p2 := c.points[i+1]

	// Mirror endpoints so the curve starts and ends on the outer control points
	var p0, p3 vmath.Vec3F
	if i > 0 {
		p0 = c.points[i-1]
	} else {
		p0 = vmath.V3FSub(vmath.V3FScale(p1, 2), p2)
	}
	if i+2 < n {
		p3 = c.points[i+2]
	} else {
		p3 = vmath.V3FSub(vmath.V3FScale(p2, 2), p1)
	}

	return vmath.Vec3F{
		X: cubic(p0.X, p1.X, p2.X, p3.X, c.tension, w),
		Y: cubic(p0.Y, p1.Y, p2.Y, p3.Y, c.tension, w),
		Z: cubic(p0.Z, p1.Z, p2.Z, p3.Z, c.tension, w),
	}
}

// Point evaluates the curve at arc-length parameter u
func (c *Curve) Point(u float64) vmath.Vec3F {
	return c.PointT(c.uToT(u))
}

// Tangent returns the unit tangent at arc-length parameter u
func (c *Curve) Tangent(u float64) vmath.Vec3F {
	const delta = 1e-4
	t := c.uToT(u)
	t1 := vmath.Clamp(t-delta, 0, 1)
	t2 := vmath.Clamp(t+delta, 0, 1)
	tan := vmath.V3FNormalize(vmath.V3FSub(c.PointT(t2), c.PointT(t1)))
	if tan == (vmath.Vec3F{}) {
		return vmath.UnitX
	}
	return tan
}

// SpacedPoints returns divisions+1 points equally spaced by arc length
func (c *Curve) SpacedPoints(divisions int) []vmath.Vec3F {
	if divisions < 1 {
		divisions = 1
	}
	out := make([]vmath.Vec3F, divisions+1)
	for i := range out {
		out[i] = c.Point(float64(i) / float64(divisions))
	}
	return out
}

// cubic evaluates one Catmull-Rom component with the given tension
func cubic(p0, p1, p2, p3, tension, t float64) float64 {
	t0 := tension * (p2 - p0)
	t1 := tension * (p3 - p1)

	c0 := p1
	c1 := t0
	c2 := -3*p1 + 3*p2 - 2*t0 - t1
	c3 := 2*p1 - 2*p2 + t0 + t1

	t2 := t * t
	return c0 + c1*t + c2*t2 + c3*t2*t
}

func (c *Curve) buildArcTable(divisions int) {
	c.arc = make([]float64, divisions+1)
	prev := c.PointT(0)
	for i := 1; i <= divisions; i++ {
		p := c.PointT(float64(i) / float64(divisions))
		c.arc[i] = c.arc[i-1] + vmath.V3FDist(prev, p)
		prev = p
	}
}

// uToT maps arc-length fraction to the uniform parameter
func (c *Curve) uToT(u float64) float64 {
	u = vmath.Clamp(u, 0, 1)
	total := c.Length()
	if total == 0 {
		return u
	}
	target := u * total

	n := len(c.arc)
	i := sort.SearchFloat64s(c.arc, target)
	if i <= 0 {
		return 0
	}
	if i >= n {
		return 1
	}

	segLen := c.arc[i] - c.arc[i-1]
	frac := 0.0
	if segLen > 0 {
		frac = (target - c.arc[i-1]) / segLen
	}
	return (float64(i-1) + frac) / float64(n-1)
}
