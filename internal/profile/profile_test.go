package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aurasetup.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("empty_path_returns_defaults", func(t *testing.T) {
		p, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, ".venv", p.Sandbox.Dir)
		assert.Equal(t, "requirements.txt", p.Sandbox.Manifest)
		assert.Equal(t, 5000, p.App.Port)
		assert.Equal(t, 1024, p.Demo.Shots)
		assert.Equal(t, "info", p.LogLevel)
	})

	t.Run("partial_profile_backfills_defaults", func(t *testing.T) {
		path := writeProfile(t, `
version = "v1"

[sandbox]
dir = "env"

[app]
port = 8080
`)
		p, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "env", p.Sandbox.Dir)
		assert.Equal(t, 8080, p.App.Port)
		assert.Equal(t, "requirements.txt", p.Sandbox.Manifest)
		assert.Equal(t, "aura400_prod.py", p.App.Core)
		assert.Equal(t, 1024, p.Demo.Shots)
	})

	t.Run("emotions_parsed", func(t *testing.T) {
		path := writeProfile(t, `
[demo]
shots = 2048

[[demo.emotions]]
name = "alegria"
intensity = 0.9

[[demo.emotions]]
name = "miedo"
intensity = 0.2
`)
		p, err := Load(path)
		require.NoError(t, err)
		require.Len(t, p.Demo.Emotions, 2)
		assert.Equal(t, Emotion{Name: "alegria", Intensity: 0.9}, p.Demo.Emotions[0])
		assert.Equal(t, 2048, p.Demo.Shots)
	})

	t.Run("missing_version_defaults_to_current", func(t *testing.T) {
		path := writeProfile(t, `log_level = "debug"`)
		p, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, Version, p.Version)
		assert.Equal(t, "debug", p.LogLevel)
	})

	t.Run("unsupported_version_rejected", func(t *testing.T) {
		path := writeProfile(t, `version = "v99"`)
		_, err := Load(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("malformed_toml_rejected", func(t *testing.T) {
		path := writeProfile(t, `[sandbox`)
		_, err := Load(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParseToml)
	})

	t.Run("nonexistent_file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr bool
	}{
		{"defaults_valid", func(p *Profile) {}, false},
		{"port_too_low", func(p *Profile) { p.App.Port = 0 }, true},
		{"port_too_high", func(p *Profile) { p.App.Port = 70000 }, true},
		{"zero_shots", func(p *Profile) { p.Demo.Shots = 0 }, true},
		{"empty_emotion_name", func(p *Profile) {
			p.Demo.Emotions = []Emotion{{Name: "", Intensity: 0.5}}
		}, true},
		{"intensity_above_one", func(p *Profile) {
			p.Demo.Emotions = []Emotion{{Name: "ira", Intensity: 1.5}}
		}, true},
		{"intensity_boundaries_ok", func(p *Profile) {
			p.Demo.Emotions = []Emotion{
				{Name: "tristeza", Intensity: 0},
				{Name: "alegria", Intensity: 1},
			}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(p)

			err := p.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidProfile)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
