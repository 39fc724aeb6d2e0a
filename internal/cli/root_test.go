package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leaplint/internal/cli/commands"
	"github.com/leapstack-labs/leaplint/internal/config"
	"github.com/leapstack-labs/leaplint/internal/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"lint failed", commands.ErrLintFailed, 1},
		{"wrapped lint failed", fmt.Errorf("check: %w", commands.ErrLintFailed), 1},
		{"not found", &plugin.LoadError{Kind: plugin.PluginNotFound}, 3},
		{"invalid library", &plugin.LoadError{Kind: plugin.PluginLibraryInvalid}, 4},
		{"version mismatch", &plugin.LoadError{Kind: plugin.VersionMismatch}, 5},
		{"duplicate lint", fmt.Errorf("load: %w", &plugin.LoadError{Kind: plugin.DuplicateLintID}), 6},
		{"dispatch fault", &plugin.LoadError{Kind: plugin.DispatchFault}, 7},
		{"config error", &config.Error{Key: "output", Message: "bad"}, 2},
		{"anything else", errors.New("boom"), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot(t *testing.T) {
	t.Setenv(config.EnvPlugins, "")
	fixturePath, err := filepath.Abs(filepath.Join("..", "fixture", "testdata", "single_static.yaml"))
	require.NoError(t, err)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: text\n"), 0o600))
	t.Chdir(dir)

	t.Run("check without plugins", func(t *testing.T) {
		out, err := run(t, "check", fixturePath)
		require.NoError(t, err)
		assert.Contains(t, out, "single: 3 nodes visited")
	})

	t.Run("missing plugin", func(t *testing.T) {
		_, err := run(t, "check", fixturePath, "--plugin", filepath.Join(dir, "gone.so"))
		assert.Equal(t, 3, ExitCode(err))
		assert.ErrorIs(t, err, plugin.ErrPluginNotFound)
	})

	t.Run("bad output flag", func(t *testing.T) {
		_, err := run(t, "check", fixturePath, "-o", "html")
		var cfgErr *config.Error
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, 2, ExitCode(err))
	})

	t.Run("explicit config", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), "other.yaml")
		require.NoError(t, os.WriteFile(other, []byte("output: json\n"), 0o600))

		out, err := run(t, "--config", other, "check", fixturePath)
		require.NoError(t, err)
		assert.Contains(t, out, `"crate": "single"`)
	})

	t.Run("version", func(t *testing.T) {
		out, err := run(t, "version")
		require.NoError(t, err)
		assert.Contains(t, out, "leaplint v"+Version)
	})

	t.Run("completion", func(t *testing.T) {
		out, err := run(t, "completion", "bash")
		require.NoError(t, err)
		assert.Contains(t, out, "leaplint")
	})

	t.Run("snapshot then check", func(t *testing.T) {
		dst := filepath.Join(t.TempDir(), "single.llast")
		_, err := run(t, "snapshot", fixturePath, "--out", dst)
		require.NoError(t, err)

		out, err := run(t, "check", dst)
		require.NoError(t, err)
		assert.Contains(t, out, "single: 3 nodes visited")
	})
}
