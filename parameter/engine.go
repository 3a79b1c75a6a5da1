package parameter

import "time"

// Frame loop cadence
const (
	// TargetFPS is the nominal frame rate
	TargetFPS = 60

	// TargetFrameMs is the integer frame budget, 1000/60 truncated as the loop sleeps in whole ms
	TargetFrameMs = 1000 / TargetFPS

	// ClampedFrameMs replaces dt when a frame overruns the budget
	ClampedFrameMs = 16.0

	// MinSleep is the floor of the per-frame pacing sleep
	MinSleep = 1 * time.Millisecond

	// StatsWindowMs is the fps/ups accumulation window
	StatsWindowMs = 1000

	// StatsRefreshMs is the cadence at which the stats line is refreshed
	StatsRefreshMs = 333
)

// Debug levels
const (
	DebugOff     = 0
	DebugMax     = 5
	DebugVectors = 2 // Bounding boxes, play area and force vectors
)

// Registry sizing
const (
	RegistryInitialCapacity = 64
)
