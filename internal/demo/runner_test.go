package demo

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aura400/aurasetup/internal/provision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	mu      sync.Mutex
	calls   [][]string
	handler func(name string, args ...string) (string, error)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()

	if f.handler == nil {
		return "", nil
	}
	return f.handler(name, args...)
}

func testSandbox(t *testing.T) *provision.SandboxContext {
	t.Helper()
	dir := filepath.Join(t.TempDir(), ".venv")
	return &provision.SandboxContext{
		Dir:    dir,
		Python: filepath.Join(dir, "bin", "python"),
		Pip:    filepath.Join(dir, "bin", "pip"),
	}
}

func TestRunnerRun(t *testing.T) {
	t.Run("invokes_core_per_emotion", func(t *testing.T) {
		fr := &fakeRunner{}
		r := NewRunner(testSandbox(t), "aura400_prod.py",
			WithCommandRunner(fr), WithShots(2048))

		emotions := []Emotion{
			{Name: "alegria", Intensity: 0.9},
			{Name: "miedo", Intensity: 0.2},
		}
		results := r.Run(t.Context(), emotions)
		require.Len(t, results, 2)
		require.Len(t, fr.calls, 2)

		first := strings.Join(fr.calls[0], " ")
		assert.Contains(t, first, "aura400_prod.py")
		assert.Contains(t, first, "--emotion alegria")
		assert.Contains(t, first, "--intensity 0.9")
		assert.Contains(t, first, "--shots 2048")
	})

	t.Run("failures_do_not_stop_remaining_emotions", func(t *testing.T) {
		fr := &fakeRunner{handler: func(name string, args ...string) (string, error) {
			for i, a := range args {
				if a == "--emotion" && args[i+1] == "ira" {
					return "backend exploded", fmt.Errorf("exit status 1")
				}
			}
			return "ok", nil
		}}
		r := NewRunner(testSandbox(t), "aura400_prod.py", WithCommandRunner(fr))

		emotions := []Emotion{
			{Name: "alegria", Intensity: 0.9},
			{Name: "ira", Intensity: 0.3},
			{Name: "sorpresa", Intensity: 0.8},
			{Name: "asco", Intensity: 0.15},
			{Name: "confianza", Intensity: 0.7},
		}
		results := r.Run(t.Context(), emotions)

		// All five attempted regardless of the failure in the middle
		require.Len(t, results, 5)
		require.Len(t, fr.calls, 5)

		ok, failed := Summarize(results)
		assert.Equal(t, 4, ok)
		assert.Equal(t, 1, failed)

		assert.ErrorIs(t, results[1].Err, ErrInvocation)
		assert.Contains(t, results[1].Output, "backend exploded")
		assert.NoError(t, results[2].Err)
	})
}

func TestRunnerListInfo(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		fr := &fakeRunner{handler: func(name string, args ...string) (string, error) {
			return "alegria\ntristeza", nil
		}}
		r := NewRunner(testSandbox(t), "aura400_prod.py", WithCommandRunner(fr))

		out, err := r.List(t.Context())
		require.NoError(t, err)
		assert.Contains(t, out, "alegria")
		assert.Equal(t, "--list", fr.calls[0][len(fr.calls[0])-1])
	})

	t.Run("info_failure", func(t *testing.T) {
		fr := &fakeRunner{handler: func(name string, args ...string) (string, error) {
			return "", fmt.Errorf("exit status 2")
		}}
		r := NewRunner(testSandbox(t), "aura400_prod.py", WithCommandRunner(fr))

		_, err := r.Info(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvocation)
	})
}

func TestDefaultEmotions(t *testing.T) {
	emotions := DefaultEmotions()
	require.Len(t, emotions, 8)

	for _, e := range emotions {
		assert.NotEmpty(t, e.Name)
		assert.GreaterOrEqual(t, e.Intensity, 0.0)
		assert.LessOrEqual(t, e.Intensity, 1.0)
	}
	assert.Equal(t, Emotion{Name: "alegria", Intensity: 0.9}, emotions[0])
}
