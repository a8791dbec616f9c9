package provision

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializeConfig(t *testing.T) {
	t.Run("writes_fresh_config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")

		created, err := MaterializeConfig(path, DefaultConfig(), nil)
		require.NoError(t, err)
		assert.True(t, created)

		content, err := os.ReadFile(path)
		require.NoError(t, err)

		text := string(content)
		assert.Contains(t, text, "SECRET_KEY=")
		assert.Contains(t, text, "PORT=5000")
		assert.Contains(t, text, "DEBUG=true")
		assert.Contains(t, text, "LOG_LEVEL=INFO")
		assert.Contains(t, text, "QUANTUM_BACKEND=aer_simulator")
		assert.Contains(t, text, "N_BLOCKS=100")
		assert.Contains(t, text, "QUBITS_PER_BLOCK=4")
	})

	t.Run("existing_config_preserved", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		custom := "SECRET_KEY=user-set\nPORT=9999\n"
		require.NoError(t, os.WriteFile(path, []byte(custom), 0o600))

		created, err := MaterializeConfig(path, DefaultConfig(), nil)
		require.NoError(t, err)
		assert.False(t, created)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, custom, string(content))
	})

	t.Run("secret_key_is_random", func(t *testing.T) {
		dir := t.TempDir()
		pathA := filepath.Join(dir, "a.env")
		pathB := filepath.Join(dir, "b.env")

		_, err := MaterializeConfig(pathA, DefaultConfig(), nil)
		require.NoError(t, err)
		_, err = MaterializeConfig(pathB, DefaultConfig(), nil)
		require.NoError(t, err)

		assert.NotEqual(t, secretFrom(t, pathA), secretFrom(t, pathB))
	})

	t.Run("unwritable_path_is_config_error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "no-such-dir", ".env")

		_, err := MaterializeConfig(path, DefaultConfig(), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfigWrite)
	})
}

func secretFrom(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, line := range strings.Split(string(content), "\n") {
		if v, ok := strings.CutPrefix(line, "SECRET_KEY="); ok {
			require.NotEmpty(t, v)
			return v
		}
	}
	t.Fatalf("no SECRET_KEY in %s", path)
	return ""
}
