package parameter

// Star field emitter
const (
	StarMax       = 200
	StarsPerChunk = 10
	StarSize      = 0.5
	StarShades    = 15
	StarPriority  = -10
)
