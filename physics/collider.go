package physics

import (
	"math"

	"github.com/lixenwraith/pricerider/vmath"
)

// ColliderID identifies a static collider inside a World
type ColliderID uint32

// RayHit describes the nearest intersection of a ray with static geometry
type RayHit struct {
	Distance float64
	Point    vmath.Vec3F
	Normal   vmath.Vec3F // unit, facing against the ray
	Collider ColliderID
}

// MeshCollider is static triangle geometry with a one-axis bucket grid
// Roads extend along X, so buckets partition X only
type MeshCollider struct {
	vertices []vmath.Vec3F
	indices  []int

	cellSize float64
	minX     float64
	buckets  [][]int // triangle indices per X cell
}

// NewMeshCollider copies the mesh and indexes its triangles by X extent
func NewMeshCollider(vertices []vmath.Vec3F, indices []int, cellSize float64) *MeshCollider {
	m := &MeshCollider{
		vertices: append([]vmath.Vec3F(nil), vertices...),
		indices:  append([]int(nil), indices[:len(indices)/3*3]...),
		cellSize: cellSize,
	}
	if m.cellSize <= 0 {
		m.cellSize = 1
	}
	if len(m.vertices) == 0 {
		return m
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, v := range m.vertices {
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
	}
	m.minX = minX
	m.buckets = make([][]int, m.cell(maxX)+1)

	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		lo := m.cell(math.Min(a.X, math.Min(b.X, c.X)))
		hi := m.cell(math.Max(a.X, math.Max(b.X, c.X)))
		for i := lo; i <= hi; i++ {
			m.buckets[i] = append(m.buckets[i], t)
		}
	}
	return m
}

// TriangleCount returns the number of triangles
func (m *MeshCollider) TriangleCount() int {
	return len(m.indices) / 3
}

// Triangle returns the corners of triangle t
func (m *MeshCollider) Triangle(t int) (a, b, c vmath.Vec3F) {
	return m.vertices[m.indices[3*t]], m.vertices[m.indices[3*t+1]], m.vertices[m.indices[3*t+2]]
}

func (m *MeshCollider) cell(x float64) int {
	i := int(math.Floor((x - m.minX) / m.cellSize))
	if i < 0 {
		return 0
	}
	if i >= len(m.buckets) && len(m.buckets) > 0 {
		return len(m.buckets) - 1
	}
	return i
}

// castRay returns the nearest hit within maxDist; dir must be unit length
func (m *MeshCollider) castRay(origin, dir vmath.Vec3F, maxDist float64) (RayHit, bool) {
	if len(m.buckets) == 0 {
		return RayHit{}, false
	}

	endX := origin.X + dir.X*maxDist
	loX, hiX := math.Min(origin.X, endX), math.Max(origin.X, endX)
	if hiX < m.minX || loX > m.minX+float64(len(m.buckets))*m.cellSize {
		return RayHit{}, false
	}

	best := RayHit{Distance: math.Inf(1)}
	found := false
	lo, hi := m.cell(loX), m.cell(hiX)
	for i := lo; i <= hi; i++ {
		for _, t := range m.buckets[i] {
			a, b, c := m.Triangle(t)
			d, n, ok := intersectTriangle(origin, dir, a, b, c)
			if !ok || d > maxDist || d >= best.Distance {
				continue
			}
			if vmath.V3FDot(n, dir) > 0 {
				n = vmath.V3FNeg(n)
			}
			best = RayHit{
				Distance: d,
				Point:    vmath.V3FAdd(origin, vmath.V3FScale(dir, d)),
				Normal:   n,
			}
			found = true
		}
	}
	return best, found
}

// intersectTriangle is a two-sided Möller–Trumbore test
func intersectTriangle(origin, dir, a, b, c vmath.Vec3F) (float64, vmath.Vec3F, bool) {
	const eps = 1e-12
	// Edge tolerance so rays on a shared diagonal hit at least one triangle
	const edge = 1e-9

	e1 := vmath.V3FSub(b, a)
	e2 := vmath.V3FSub(c, a)
	p := vmath.V3FCross(dir, e2)
	det := vmath.V3FDot(e1, p)
	if math.Abs(det) < eps {
		return 0, vmath.Vec3F{}, false
	}
	invDet := 1 / det

	s := vmath.V3FSub(origin, a)
	u := vmath.V3FDot(s, p) * invDet
	if u < -edge || u > 1+edge {
		return 0, vmath.Vec3F{}, false
	}
	q := vmath.V3FCross(s, e1)
	v := vmath.V3FDot(dir, q) * invDet
	if v < -edge || u+v > 1+edge {
		return 0, vmath.Vec3F{}, false
	}
	d := vmath.V3FDot(e2, q) * invDet
	if d < 0 {
		return 0, vmath.Vec3F{}, false
	}
	return d, vmath.V3FNormalize(vmath.V3FCross(e1, e2)), true
}
