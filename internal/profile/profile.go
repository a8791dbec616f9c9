// Package profile loads the aurasetup setup profile, a small TOML file that
// pins where the sandbox, manifest, config file, and AURA400 entry points
// live. Every field has a default so the tool runs without any profile.
package profile

import (
	"fmt"
	"os"

	gotoml "github.com/pelletier/go-toml/v2"
)

// Version is the profile schema version this build understands
const Version = "v1"

// Profile is the full setup profile
type Profile struct {
	Version  string        `toml:"version"`
	LogLevel string        `toml:"log_level"`
	Sandbox  SandboxConfig `toml:"sandbox"`
	App      AppConfig     `toml:"app"`
	Demo     DemoConfig    `toml:"demo"`
}

// SandboxConfig locates the isolated environment and its manifest
type SandboxConfig struct {
	Dir      string `toml:"dir"`
	Manifest string `toml:"manifest"`

	// Interpreter optionally pins the Python binary used to build the sandbox
	Interpreter string `toml:"interpreter"`
}

// AppConfig locates the AURA400 application pieces
type AppConfig struct {
	Config string `toml:"config"`
	Port   int    `toml:"port"`
	Core   string `toml:"core"`
	Web    string `toml:"web"`
}

// DemoConfig tunes the scripted emotion demo
type DemoConfig struct {
	Shots    int       `toml:"shots"`
	Emotions []Emotion `toml:"emotions"`
}

// Emotion is one demo invocation: a named emotion and its intensity (0..1)
type Emotion struct {
	Name      string  `toml:"name"`
	Intensity float64 `toml:"intensity"`
}

// Default returns a profile with all stock settings
func Default() *Profile {
	return &Profile{
		Version:  Version,
		LogLevel: "info",
		Sandbox: SandboxConfig{
			Dir:      ".venv",
			Manifest: "requirements.txt",
		},
		App: AppConfig{
			Config: ".env",
			Port:   5000,
			Core:   "aura400_prod.py",
			Web:    "aura_live.py",
		},
		Demo: DemoConfig{
			Shots: 1024,
		},
	}
}

// Load reads a profile from disk. An empty path returns the defaults.
// Fields left unset in the file fall back to their defaults.
func Load(path string) (*Profile, error) {
	if path == "" {
		return Default(), nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	return parse(source)
}

func parse(source []byte) (*Profile, error) {
	if len(source) == 0 {
		return nil, ErrNoSourceData
	}

	// First, extract just the version to check compatibility
	var versionCheck struct {
		Version string `toml:"version"`
	}
	if err := gotoml.Unmarshal(source, &versionCheck); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseToml, err)
	}
	if versionCheck.Version == "" {
		versionCheck.Version = Version
	}
	if versionCheck.Version != Version {
		return nil, fmt.Errorf("version %s is not supported: %w",
			versionCheck.Version, ErrUnsupportedVersion)
	}

	p := Default()
	if err := gotoml.Unmarshal(source, p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseToml, err)
	}
	p.applyDefaults()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// applyDefaults backfills any field zeroed out by the TOML unmarshal
func (p *Profile) applyDefaults() {
	d := Default()
	if p.LogLevel == "" {
		p.LogLevel = d.LogLevel
	}
	if p.Sandbox.Dir == "" {
		p.Sandbox.Dir = d.Sandbox.Dir
	}
	if p.Sandbox.Manifest == "" {
		p.Sandbox.Manifest = d.Sandbox.Manifest
	}
	if p.App.Config == "" {
		p.App.Config = d.App.Config
	}
	if p.App.Port == 0 {
		p.App.Port = d.App.Port
	}
	if p.App.Core == "" {
		p.App.Core = d.App.Core
	}
	if p.App.Web == "" {
		p.App.Web = d.App.Web
	}
	if p.Demo.Shots == 0 {
		p.Demo.Shots = d.Demo.Shots
	}
}

// Validate checks the profile for usable values
func (p *Profile) Validate() error {
	if p.App.Port < 1 || p.App.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidProfile, p.App.Port)
	}
	if p.Demo.Shots < 1 {
		return fmt.Errorf("%w: shots must be positive, got %d", ErrInvalidProfile, p.Demo.Shots)
	}
	for _, e := range p.Demo.Emotions {
		if e.Name == "" {
			return fmt.Errorf("%w: emotion with empty name", ErrInvalidProfile)
		}
		if e.Intensity < 0 || e.Intensity > 1 {
			return fmt.Errorf("%w: emotion %q intensity %v outside 0..1",
				ErrInvalidProfile, e.Name, e.Intensity)
		}
	}
	return nil
}
