package camera

import (
	"github.com/lixenwraith/pricerider/parameter"
	"github.com/lixenwraith/pricerider/vmath"
)

// Follow tracks a moving target from a fixed side offset with frame-rate independent smoothing
type Follow struct {
	Offset       vmath.Vec3F
	Lookahead    float64
	Smoothing    float64 // fraction closed per reference frame
	ReferenceFPS float64

	position vmath.Vec3F
	lookAt   vmath.Vec3F
	placed   bool
}

// NewFollow returns a camera with the default side-view rig
func NewFollow() *Follow {
	return &Follow{
		Offset: vmath.Vec3F{
			X: parameter.CameraOffsetX,
			Y: parameter.CameraOffsetY,
			Z: parameter.CameraOffsetZ,
		},
		Lookahead:    parameter.CameraLookahead,
		Smoothing:    parameter.CameraSmoothing,
		ReferenceFPS: parameter.CameraReferenceFPS,
	}
}

// Target returns the desired camera position for a chassis at pos moving at vel
func (f *Follow) Target(pos, vel vmath.Vec3F) vmath.Vec3F {
	lead := vmath.Vec3F{X: vel.X * f.Lookahead, Y: vel.Y * f.Lookahead}
	return vmath.V3FAdd(vmath.V3FAdd(pos, f.Offset), lead)
}

// Update moves the camera toward its target
// The first update after construction or Reset snaps
func (f *Follow) Update(dt float64, pos, vel vmath.Vec3F) {
	target := f.Target(pos, vel)
	f.lookAt = vmath.Vec3F{X: pos.X, Y: pos.Y}

	if !f.placed || !vmath.V3FIsFinite(f.position) {
		f.position = target
		f.placed = true
		return
	}
	if dt <= 0 || !vmath.IsFinite(dt) {
		return
	}

	alpha := vmath.SmoothingFactor(f.Smoothing, f.ReferenceFPS, dt)
	f.position = vmath.V3FLerp(f.position, target, alpha)
}

// Reset snaps the camera onto its target
func (f *Follow) Reset(pos, vel vmath.Vec3F) {
	f.placed = false
	f.Update(0, pos, vel)
}

// Position returns the camera position
func (f *Follow) Position() vmath.Vec3F { return f.position }

// LookAt returns the point the camera faces, on the travel plane
func (f *Follow) LookAt() vmath.Vec3F { return f.lookAt }
