package parameter

// Road generation
const (
	// RoadFloorHeight and RoadCeilingHeight bound the normalized elevation band
	RoadFloorHeight   = 0.0
	RoadCeilingHeight = 50.0

	// RoadXStep is the horizontal distance between consecutive samples
	RoadXStep = 8.0

	// RoadWidth and RoadThickness define the rectangular cross-section
	RoadWidth     = 6.0
	RoadThickness = 1.0

	// RoadStepsPerSample is the extrusion resolution (segments per series sample)
	RoadStepsPerSample = 10

	// CurveTension is the Catmull-Rom tangent scale (0.5 = standard uniform spline)
	CurveTension = 0.5

	// CurveArcSamples is the number of arc-length table entries per curve segment
	CurveArcSamples = 16
)
