package parameter

import "time"

// Audio output
const (
	AudioSampleRate = 44100

	// AudioBufferDuration sizes the speaker buffer, trading latency for underrun safety
	AudioBufferDuration = 100 * time.Millisecond

	// AudioResampleQuality is the beep resampler quality for files recorded at another rate
	AudioResampleQuality = 4
)

// Synthesized fallback sounds, used when no file is configured
const (
	ToneClicHz  = 1200.0
	ToneClicDur = 30 * time.Millisecond

	ToneTicHz  = 880.0
	ToneTicDur = 40 * time.Millisecond

	ToneTocHz  = 440.0
	ToneTocDur = 60 * time.Millisecond
)
