package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/config"
	"github.com/leapstack-labs/leaplint/internal/fixture"
	"github.com/leapstack-labs/leaplint/pkg/ast"
	"github.com/spf13/cobra"
)

// ErrLintFailed is returned when a run reports Deny or Forbid diagnostics.
// The diagnostics have already been rendered.
var ErrLintFailed = errors.New("lint errors found")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext reads the configuration stored by the root command and
// builds a renderer. format overrides the configured output mode.
func NewCommandContext(cmd *cobra.Command, format string) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	mode := output.Mode(cfg.Output)
	if format != "" {
		mode = output.Mode(format)
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

func isFixture(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// loadCrate reads a crate from a YAML fixture or a binary snapshot.
func loadCrate(path string) (*ast.Crate, error) {
	if isFixture(path) {
		return fixture.Load(path)
	}
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to open crate: %w", err)
	}
	defer func() { _ = f.Close() }()

	crate, err := ast.ReadSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read crate %s: %w", path, err)
	}
	return crate, nil
}

func validFormat(format string) error {
	switch output.Mode(format) {
	case "", output.ModeAuto, output.ModeText, output.ModeMarkdown, output.ModeJSON:
		return nil
	}
	return fmt.Errorf("unknown format %q: want text, markdown or json", format)
}
