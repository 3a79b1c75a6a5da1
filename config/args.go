package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Each setting accepts its property key, a long and a short argument name
var aliases = map[string]string{
	"configuration.file": "config", "config": "config", "cf": "config",
	"app.screen.size": "buffer", "buffer": "buffer", "b": "buffer",
	"app.window.size": "window", "window": "window", "w": "window",
	"app.debug.level": "debug", "debug": "debug", "d": "debug",
	"app.debug.filter": "filter", "filter": "filter", "df": "filter",
	"app.test.mode": "test", "test": "test",
	"app.scenes.default": "default", "default": "default",
	"app.scenes.list": "scenes", "scenes": "scenes",
	"workers": "workers",
	"log": "log",
	"telemetry": "telemetry",
	"audio": "audio",
	"profile": "profile",
}

// ApplyArgs applies key=value arguments in order
// Unknown keys are returned for the caller to report, malformed values abort
func (c *Config) ApplyArgs(args []string) (unknown []string, err error) {
	var errs []error
	for _, arg := range args {
		key, value, ok := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !ok {
			unknown = append(unknown, arg)
			continue
		}
		canonical, known := aliases[key]
		if !known {
			unknown = append(unknown, arg)
			continue
		}
		if err := c.set(canonical, value); err != nil {
			errs = append(errs, fmt.Errorf("argument %q: %w", arg, err))
		}
	}
	return unknown, errors.Join(errs...)
}

func (c *Config) set(key, value string) error {
	switch key {
	case "config":
		c.Path = value
	case "buffer":
		s, err := ParseSize(value)
		if err != nil {
			return err
		}
		c.Buffer = s
	case "window":
		s, err := ParseSize(value)
		if err != nil {
			return err
		}
		c.Window = s
	case "debug":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: debug %q", ErrInvalid, value)
		}
		c.Debug = n
	case "filter":
		c.DebugFilter = value
	case "test":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: test %q", ErrInvalid, value)
		}
		c.TestMode = b
	case "default":
		c.DefaultScene = value
	case "scenes":
		c.Scenes = splitList(value)
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: workers %q", ErrInvalid, value)
		}
		c.Workers = n
	case "log":
		c.LogFile = value
	case "telemetry":
		c.Telemetry.Addr = value
	case "audio":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: audio %q", ErrInvalid, value)
		}
		c.Audio.Enabled = b
	case "profile":
		c.Profile = value
	}
	return nil
}

// splitList splits "a,b:impl,c" keeping the scene key before any ':'
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if name, _, _ := strings.Cut(item, ":"); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Resolve builds the effective configuration: defaults, then the config file named by
// args (or DefaultPath), then args again so the command line wins
// A missing file is reported through warnings, not as an error
func Resolve(args []string) (cfg *Config, warnings []string, err error) {
	cfg = Default()

	if _, err := cfg.ApplyArgs(args); err != nil {
		return nil, nil, err
	}
	if err := cfg.Load(cfg.Path); err != nil {
		if !errors.Is(err, ErrMissing) {
			return nil, nil, err
		}
		warnings = append(warnings, err.Error())
	}
	unknown, err := cfg.ApplyArgs(args)
	if err != nil {
		return nil, nil, err
	}
	for _, u := range unknown {
		warnings = append(warnings, fmt.Sprintf("unknown argument %s", u))
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, warnings, nil
}
