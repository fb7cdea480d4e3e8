package parameter

// Camera follow
const (
	// CameraOffsetX/Y/Z is the side-view offset from the chassis
	CameraOffsetX = 0.0
	CameraOffsetY = 5.0
	CameraOffsetZ = 20.0

	// CameraLookahead scales chassis velocity into a forward target shift (seconds)
	CameraLookahead = 0.25

	// CameraSmoothing is the per-frame interpolation factor at CameraReferenceFPS
	CameraSmoothing    = 0.1
	CameraReferenceFPS = 60.0
)
