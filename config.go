package glboot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config describes a render session.
type Config struct {
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Title      string `yaml:"title" toml:"title"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`

	API APIConfig `yaml:"api" toml:"api"`

	LogFile string `yaml:"logFile" toml:"log_file"`

	ShaderDir      string `yaml:"shaderDir" toml:"shader_dir"`
	VertexShader   string `yaml:"vertexShader" toml:"vertex_shader"`
	FragmentShader string `yaml:"fragmentShader" toml:"fragment_shader"`
	WatchShaders   bool   `yaml:"watchShaders" toml:"watch_shaders"`

	ClearColor  [4]float32 `yaml:"clearColor" toml:"clear_color"`
	Colour      [4]float32 `yaml:"colour" toml:"colour"`
	ExitKey     string     `yaml:"exitKey" toml:"exit_key"`
	FPSInterval float64    `yaml:"fpsInterval" toml:"fps_interval"`
}

// APIConfig is the requested OpenGL context.
type APIConfig struct {
	Major             int    `yaml:"major" toml:"major"`
	Minor             int    `yaml:"minor" toml:"minor"`
	Profile           string `yaml:"profile" toml:"profile"`
	ForwardCompatible bool   `yaml:"forwardCompatible" toml:"forward_compatible"`
	Samples           int    `yaml:"samples" toml:"samples"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Width:  640,
		Height: 480,
		Title:  "OpenGL",
		VSync:  true,
		API: APIConfig{
			Major:             4,
			Minor:             1,
			Profile:           "core",
			ForwardCompatible: true,
			Samples:           4,
		},
		LogFile:        DefaultLogFile,
		VertexShader:   "test.vert",
		FragmentShader: "test.frag",
		ClearColor:     DefaultClearColor,
		Colour:         [4]float32{1, 0, 0, 1},
		ExitKey:        "escape",
		FPSInterval:    DefaultFPSInterval,
	}
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) file over
// DefaultConfig, so keys the file omits keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Width == 0 {
		c.Width = def.Width
	}
	if c.Height == 0 {
		c.Height = def.Height
	}
	if c.Title == "" {
		c.Title = def.Title
	}
	if c.API.Major == 0 {
		c.API.Major = def.API.Major
		c.API.Minor = def.API.Minor
	}
	if c.API.Profile == "" {
		c.API.Profile = def.API.Profile
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
	if c.VertexShader == "" {
		c.VertexShader = def.VertexShader
	}
	if c.FragmentShader == "" {
		c.FragmentShader = def.FragmentShader
	}
	if c.ExitKey == "" {
		c.ExitKey = def.ExitKey
	}
	if c.FPSInterval == 0 {
		c.FPSInterval = def.FPSInterval
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.API.Major < 1 || c.API.Minor < 0 {
		errs = append(errs, fmt.Errorf("invalid API version %d.%d", c.API.Major, c.API.Minor))
	}
	if _, err := ParseProfile(c.API.Profile); err != nil {
		errs = append(errs, err)
	}
	if c.API.Samples < 0 {
		errs = append(errs, fmt.Errorf("samples %d must not be negative", c.API.Samples))
	}
	if k, err := ParseKey(c.ExitKey); err != nil {
		errs = append(errs, fmt.Errorf("exit key: %w", err))
	} else if k == KeyNone {
		errs = append(errs, fmt.Errorf("exit key %q leaves no way to close the window", c.ExitKey))
	}
	if c.FPSInterval < 0 {
		errs = append(errs, fmt.Errorf("fps interval %v must not be negative", c.FPSInterval))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Hints returns the context hints for the configured API.
func (c Config) Hints() Hints {
	profile, _ := ParseProfile(c.API.Profile)
	return Hints{
		Major:             c.API.Major,
		Minor:             c.API.Minor,
		Profile:           profile,
		ForwardCompatible: c.API.ForwardCompatible,
		Samples:           c.API.Samples,
	}
}

// Key returns the parsed exit key.
func (c Config) Key() Key {
	k, _ := ParseKey(c.ExitKey)
	return k
}

// ParseProfile parses a profile name: "core", "compat" or "any".
func ParseProfile(name string) (Profile, error) {
	switch strings.ToLower(name) {
	case "core", "":
		return ProfileCore, nil
	case "compat", "compatibility":
		return ProfileCompat, nil
	case "any":
		return ProfileAny, nil
	}
	return ProfileAny, fmt.Errorf("unknown profile %q", name)
}
