package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/platform2d/log"
	"github.com/lixenwraith/platform2d/parameter"
)

// DefaultSampleRate is used when Init receives a non-positive rate
const DefaultSampleRate = parameter.AudioSampleRate


// ErrUnknownSound is returned by Play for names never loaded
var ErrUnknownSound = errors.New("audio: unknown sound")

// SoundManager holds decoded sound effects and plays them through one mixer
// Sounds can be loaded before Init, playback is silent until Init succeeds
type SoundManager struct {
	mu          sync.Mutex
	log         log.Log
	rate        beep.SampleRate
	mixer       *beep.Mixer
	buffers     map[string]*beep.Buffer
	playing     map[string]*beep.Ctrl
	initialized bool
}

// NewSoundManager creates a silent sound manager
func NewSoundManager(logger log.Log) *SoundManager {
	if logger == nil {
		logger = log.Nop()
	}
	return &SoundManager{
		log:     logger,
		rate:    DefaultSampleRate,
		mixer:   &beep.Mixer{},
		buffers: make(map[string]*beep.Buffer),
		playing: make(map[string]*beep.Ctrl),
	}
}

// Init opens the speaker, sounds loaded earlier at another rate must be reloaded
func (sm *SoundManager) Init(sampleRate int) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	sm.rate = beep.SampleRate(sampleRate)

	if err := speaker.Init(sm.rate, sm.rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Debug("audio initialized", log.Int("sample_rate", sampleRate))
	return nil
}

// Enabled reports whether playback reaches the speaker
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Load decodes a WAV file into memory under name, replacing any previous sound
func (sm *SoundManager) Load(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("sound %q: %w", name, err)
	}
	defer f.Close()
	return sm.LoadReader(name, f)
}

// LoadReader decodes WAV data into memory under name
func (sm *SoundManager) LoadReader(name string, r io.Reader) error {
	stream, format, err := wav.Decode(r)
	if err != nil {
		return fmt.Errorf("sound %q: decode: %w", name, err)
	}
	defer stream.Close()

	sm.mu.Lock()
	defer sm.mu.Unlock()

	var s beep.Streamer = stream
	if format.SampleRate != sm.rate {
		s = beep.Resample(parameter.AudioResampleQuality, format.SampleRate, sm.rate, stream)
		format.SampleRate = sm.rate
	}
	buf := beep.NewBuffer(format)
	buf.Append(s)
	if err := stream.Err(); err != nil {
		return fmt.Errorf("sound %q: stream: %w", name, err)
	}
	sm.buffers[name] = buf
	return nil
}

// Tone synthesizes a sine beep under name, used when no sound file is configured
func (sm *SoundManager) Tone(name string, freq float64, d time.Duration) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sine, err := generators.SineTone(sm.rate, freq)
	if err != nil {
		return fmt.Errorf("tone %q: %w", name, err)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: sm.rate, NumChannels: 2, Precision: 2})
	buf.Append(beep.Take(sm.rate.N(d), sine))
	sm.buffers[name] = buf
	return nil
}

// Len returns the number of samples of a loaded sound, 0 when unknown
func (sm *SoundManager) Len(name string) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if buf, ok := sm.buffers[name]; ok {
		return buf.Len()
	}
	return 0
}

// Play restarts a loaded sound from its beginning
func (sm *SoundManager) Play(name string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	buf, ok := sm.buffers[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	if !sm.initialized {
		return nil
	}

	ctrl := &beep.Ctrl{Streamer: buf.Streamer(0, buf.Len())}
	speaker.Lock()
	if prev, ok := sm.playing[name]; ok {
		prev.Paused = true
	}
	sm.mixer.Add(ctrl)
	speaker.Unlock()
	sm.playing[name] = ctrl
	return nil
}

// Stop pauses a playing sound, unknown names are ignored
func (sm *SoundManager) Stop(name string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ctrl, ok := sm.playing[name]
	if !ok {
		return
	}
	delete(sm.playing, name)
	if sm.initialized {
		speaker.Lock()
		ctrl.Paused = true
		speaker.Unlock()
	}
}

// StopAll stops every sound and clears the mixer
func (sm *SoundManager) StopAll() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.stopAllLocked()
}

func (sm *SoundManager) stopAllLocked() {
	if sm.initialized {
		speaker.Lock()
		for _, ctrl := range sm.playing {
			ctrl.Paused = true
		}
		sm.mixer.Clear()
		speaker.Unlock()
	}
	clear(sm.playing)
}

// Close stops playback, releases the speaker and drops loaded sounds
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.stopAllLocked()
	if sm.initialized {
		speaker.Close()
		sm.initialized = false
	}
	clear(sm.buffers)
}
