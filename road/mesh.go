package road

import (
	"github.com/lixenwraith/pricerider/vmath"
)

// Mesh is an indexed triangle mesh shared by rendering and collision
type Mesh struct {
	Vertices []vmath.Vec3F
	Indices  []int // three per triangle

	// RingSize is the vertex count of one cross-section ring
	RingSize int
	// Rings is the number of cross-sections along the path
	Rings int
}

// Triangle returns the three corners of triangle i
func (m *Mesh) Triangle(i int) (a, b, c vmath.Vec3F) {
	return m.Vertices[m.Indices[3*i]], m.Vertices[m.Indices[3*i+1]], m.Vertices[m.Indices[3*i+2]]
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the axis-aligned bounding box of all vertices
func (m *Mesh) Bounds() (min, max vmath.Vec3F) {
	if len(m.Vertices) == 0 {
		return
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}
	return
}

// translate shifts every vertex by d
func (m *Mesh) translate(d vmath.Vec3F) {
	for i := range m.Vertices {
		m.Vertices[i] = vmath.V3FAdd(m.Vertices[i], d)
	}
}

// Profile is a closed 2D cross-section in (lateral, vertical) coordinates
type Profile []struct{ Lateral, Vertical float64 }

// RibbonProfile returns the rectangular road section with its top edge at vertical 0
// Order: top-back, top-front, bottom-front, bottom-back
func RibbonProfile(width, thickness float64) Profile {
	hw := width / 2
	return Profile{
		{-hw, 0},
		{hw, 0},
		{hw, -thickness},
		{-hw, -thickness},
	}
}

// Extrude sweeps the profile along the curve in steps segments
// The travel plane is z=0: the lateral axis maps to +Z, the vertical axis to the in-plane normal
func Extrude(c *Curve, profile Profile, steps int) *Mesh {
	if steps < 1 {
		steps = 1
	}
	ring := len(profile)
	m := &Mesh{
		Vertices: make([]vmath.Vec3F, 0, ring*(steps+1)),
		Indices:  make([]int, 0, 3*(2*ring*steps+2*(ring-2))),
		RingSize: ring,
		Rings:    steps + 1,
	}

	for i := 0; i <= steps; i++ {
		u := float64(i) / float64(steps)
		p := c.Point(u)
		tan := c.Tangent(u)
		normal := vmath.Vec3F{X: -tan.Y, Y: tan.X}

		for _, s := range profile {
			v := vmath.V3FAdd(p, vmath.V3FScale(normal, s.Vertical))
			v = vmath.V3FAdd(v, vmath.V3FScale(vmath.UnitZ, s.Lateral))
			m.Vertices = append(m.Vertices, v)
		}
	}

	// Side walls: one quad per profile edge per segment
	for i := 0; i < steps; i++ {
		base := i * ring
		next := base + ring
		for k := 0; k < ring; k++ {
			k1 := (k + 1) % ring
			m.Indices = append(m.Indices,
				base+k, base+k1, next+k,
				base+k1, next+k1, next+k,
			)
		}
	}

	// End caps as triangle fans
	last := steps * ring
	for k := 1; k < ring-1; k++ {
		m.Indices = append(m.Indices, 0, k+1, k)
		m.Indices = append(m.Indices, last, last+k, last+k+1)
	}

	return m
}
