package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/platform2d/parameter"
)

// DefaultPath is read when no config argument is given
const DefaultPath = "platform2d.yaml"

var (
	// ErrMissing is returned with the defaults when the config file does not exist
	ErrMissing = errors.New("config file not found")
	// ErrInvalid wraps every validation and parse failure
	ErrInvalid = errors.New("invalid config")
)

// Size is a "WxH" dimension
type Size struct {
	W, H int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// ParseSize parses "320x200"
func ParseSize(v string) (Size, error) {
	ws, hs, ok := strings.Cut(strings.TrimSpace(strings.ToLower(v)), "x")
	if !ok {
		return Size{}, fmt.Errorf("%w: size %q is not WxH", ErrInvalid, v)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return Size{}, fmt.Errorf("%w: size %q width: %v", ErrInvalid, v, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return Size{}, fmt.Errorf("%w: size %q height: %v", ErrInvalid, v, err)
	}
	if w <= 0 || h <= 0 {
		return Size{}, fmt.Errorf("%w: size %q must be positive", ErrInvalid, v)
	}
	return Size{W: w, H: h}, nil
}

func (s Size) MarshalYAML() (any, error) {
	return s.String(), nil
}

func (s *Size) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseSize(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Profile modes
const (
	ProfileCPU = "cpu"
	ProfileMem = "mem"
)

// Audio configures the sound manager
type Audio struct {
	Enabled    bool              `yaml:"enabled"`
	SampleRate int               `yaml:"sample_rate"`
	Sounds     map[string]string `yaml:"sounds,omitempty"`
}

// Telemetry configures the websocket debug feed
type Telemetry struct {
	Addr  string `yaml:"addr"`  // Empty disables the feed
	Every int    `yaml:"every"` // Snapshot period in frames
}

// Config is the application configuration
type Config struct {
	Debug        int       `yaml:"debug"`
	DebugFilter  string    `yaml:"debug_filter"`
	Buffer       Size      `yaml:"buffer"`
	Window       Size      `yaml:"window"`
	DefaultScene string    `yaml:"default_scene"`
	Scenes       []string  `yaml:"scenes"`
	TestMode     bool      `yaml:"test"`
	Workers      int       `yaml:"workers"`
	AssetRoot    string    `yaml:"asset_root"`
	LogFile      string    `yaml:"log_file"`
	Audio        Audio     `yaml:"audio"`
	Telemetry    Telemetry `yaml:"telemetry"`
	Profile      string    `yaml:"profile,omitempty"` // cpu, mem or empty

	// Path is the file the config was read from, set by Resolve
	Path string `yaml:"-"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Debug:        0,
		Buffer:       Size{W: 320, H: 200},
		Window:       Size{W: 640, H: 400},
		DefaultScene: "title",
		Scenes:       []string{"title", "demo"},
		Workers:      1,
		AssetRoot:    "assets",
		Audio: Audio{
			Enabled:    true,
			SampleRate: parameter.AudioSampleRate,
		},
		Telemetry: Telemetry{Every: 10},
		Path:      DefaultPath,
	}
}

// Decode overlays YAML from r onto c, keys absent from the document keep their value
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Load overlays the file at path onto c
// A missing file leaves c untouched and returns ErrMissing
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrMissing)
		}
		return err
	}
	defer f.Close()
	if err := c.Decode(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	c.Path = path
	return nil
}

// Encode writes c as YAML
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	if c.Debug < 0 || c.Debug > 5 {
		return fmt.Errorf("%w: debug level %d outside 0..5", ErrInvalid, c.Debug)
	}
	if c.Buffer.W <= 0 || c.Buffer.H <= 0 {
		return fmt.Errorf("%w: buffer %s", ErrInvalid, c.Buffer)
	}
	if len(c.Scenes) == 0 {
		return fmt.Errorf("%w: empty scene list", ErrInvalid)
	}
	if !slices.Contains(c.Scenes, c.DefaultScene) {
		return fmt.Errorf("%w: default scene %q not in %v", ErrInvalid, c.DefaultScene, c.Scenes)
	}
	switch c.Profile {
	case "", ProfileCPU, ProfileMem:
	default:
		return fmt.Errorf("%w: profile %q", ErrInvalid, c.Profile)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	return nil
}
