package parameter

// Integration constants, float domain
const (
	// PhysicTimeFactor slows the simulated world relative to wall time
	PhysicTimeFactor = 0.005

	// ConstraintVerticalFactor softens the vertical push of constraint regions
	ConstraintVerticalFactor = 0.75

	// CameraMaxTweenStepMs caps the dt used by the camera follow
	CameraMaxTweenStepMs = 10.0

	// DefaultMass for entities created without explicit mass
	DefaultMass = 1.0

	// LifespanInfinite disables aging
	LifespanInfinite = -1.0
)

// Default material profile
const (
	DefaultMaterialName       = "default"
	DefaultMaterialDensity    = 1.0
	DefaultMaterialElasticity = 0.70
	DefaultMaterialFriction   = 0.98
)

// Default world
const (
	DefaultPlayAreaWidth  = 320.0
	DefaultPlayAreaHeight = 200.0
)
