package physics

import (
	"math"
	"sort"

	"github.com/lixenwraith/pricerider/parameter"
	"github.com/lixenwraith/pricerider/vmath"
)

// contactIterations is the number of sequential impulse passes per step
const contactIterations = 4

// World owns dynamic bodies and static colliders and advances them in fixed steps
// All methods must be called from the simulation goroutine
type World struct {
	Gravity vmath.Vec3F

	bodies    []*Body
	colliders map[ColliderID]*MeshCollider
	nextID    ColliderID

	stepCount int64
}

// NewWorld creates an empty world
func NewWorld(gravity vmath.Vec3F) *World {
	return &World{
		Gravity:   gravity,
		colliders: make(map[ColliderID]*MeshCollider),
	}
}

// AddBody registers a dynamic body
func (w *World) AddBody(b *Body) {
	w.bodies = append(w.bodies, b)
}

// RemoveBody unregisters a body, reporting whether it was present
func (w *World) RemoveBody(b *Body) bool {
	for i, x := range w.bodies {
		if x == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return true
		}
	}
	return false
}

// AddCollider registers static geometry and returns its handle
func (w *World) AddCollider(m *MeshCollider) ColliderID {
	w.nextID++
	w.colliders[w.nextID] = m
	return w.nextID
}

// RemoveCollider unregisters static geometry, reporting whether it was present
func (w *World) RemoveCollider(id ColliderID) bool {
	if _, ok := w.colliders[id]; !ok {
		return false
	}
	delete(w.colliders, id)
	return true
}

// ColliderCount returns the number of registered static colliders
func (w *World) ColliderCount() int {
	return len(w.colliders)
}

// StepCount returns the number of completed steps
func (w *World) StepCount() int64 {
	return w.stepCount
}

// CastRay returns the nearest static-geometry hit along dir within maxDist
// Bodies are not ray targets, so a ray starting inside the chassis never hits it
func (w *World) CastRay(origin, dir vmath.Vec3F, maxDist float64) (RayHit, bool) {
	dir = vmath.V3FNormalize(dir)
	if dir == (vmath.Vec3F{}) || maxDist <= 0 {
		return RayHit{}, false
	}

	// Deterministic order regardless of map iteration
	ids := make([]ColliderID, 0, len(w.colliders))
	for id := range w.colliders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var best RayHit
	found := false
	for _, id := range ids {
		hit, ok := w.colliders[id].castRay(origin, dir, maxDist)
		if ok && (!found || hit.Distance < best.Distance) {
			hit.Collider = id
			best = hit
			found = true
		}
	}
	return best, found
}

// Step integrates every awake body by dt and resolves contacts with static geometry
func (w *World) Step(dt float64) {
	if dt <= 0 || !vmath.IsFinite(dt) {
		return
	}
	for _, b := range w.bodies {
		if b.IsSleeping() {
			continue
		}
		b.integrate(dt, w.Gravity)
		w.resolveContacts(b)
		b.updateSleepState(dt)
	}
	w.stepCount++
}

type contact struct {
	point  vmath.Vec3F
	normal vmath.Vec3F
	depth  float64
}

// findContacts probes center-to-corner segments against static geometry
// A hit before the corner means the corner has crossed the surface
func (w *World) findContacts(b *Body) []contact {
	var out []contact
	center := b.position
	for _, corner := range b.corners() {
		seg := vmath.V3FSub(corner, center)
		segLen := vmath.V3FMag(seg)
		if segLen == 0 {
			continue
		}
		dir := vmath.V3FScale(seg, 1/segLen)
		hit, ok := w.CastRay(center, dir, segLen+parameter.ContactSlop)
		if !ok {
			continue
		}
		depth := (segLen - hit.Distance) * math.Abs(vmath.V3FDot(dir, hit.Normal))
		out = append(out, contact{point: corner, normal: hit.Normal, depth: depth})
	}
	return out
}

// resolveContacts pushes the body out of static geometry and removes approaching velocity
func (w *World) resolveContacts(b *Body) {
	contacts := w.findContacts(b)
	if len(contacts) == 0 {
		return
	}

	// Position: deepest penetration per step, less slop
	var push vmath.Vec3F
	for _, c := range contacts {
		d := c.depth - parameter.ContactSlop
		if d <= 0 {
			continue
		}
		along := vmath.V3FDot(push, c.normal)
		if d > along {
			push = vmath.V3FAdd(push, vmath.V3FScale(c.normal, d-along))
		}
	}
	if b.Locks.TranslationZ {
		push.Z = 0
	}
	b.position = vmath.V3FAdd(b.position, push)

	for iter := 0; iter < contactIterations; iter++ {
		for _, c := range contacts {
			w.solveContactVelocity(b, c)
		}
	}
}

func (w *World) solveContactVelocity(b *Body, c contact) {
	r := vmath.V3FSub(c.point, b.position)
	vp := b.VelocityAtPoint(c.point)
	vn := vmath.V3FDot(vp, c.normal)
	if vn >= 0 {
		return
	}

	k := b.effectiveMassInv(r, c.normal)
	if k <= 0 {
		return
	}
	jn := -(1 + parameter.ContactRestitution) * vn / k
	b.applyContactImpulse(vmath.V3FScale(c.normal, jn), r)

	// Coulomb friction bounded by the normal impulse
	vp = b.VelocityAtPoint(c.point)
	vt := vmath.V3FSub(vp, vmath.V3FScale(c.normal, vmath.V3FDot(vp, c.normal)))
	speed := vmath.V3FMag(vt)
	if speed < 1e-9 {
		return
	}
	tangent := vmath.V3FScale(vt, 1/speed)
	kt := b.effectiveMassInv(r, tangent)
	if kt <= 0 {
		return
	}
	jt := math.Min(speed/kt, parameter.ContactFriction*jn)
	b.applyContactImpulse(vmath.V3FScale(tangent, -jt), r)
}

// applyContactImpulse applies an impulse at offset r without touching sleep state
func (b *Body) applyContactImpulse(j, r vmath.Vec3F) {
	b.linvel = vmath.V3FAdd(b.linvel, vmath.V3FScale(j, b.invMass))
	b.angvel = vmath.V3FAdd(b.angvel, b.invInertiaWorld(vmath.V3FCross(r, j)))
	b.applyLocks()
}
