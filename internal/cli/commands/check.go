package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/engine"
	"github.com/leapstack-labs/leaplint/internal/plugin"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format string   // Output format: text, markdown, json
	Allow  []string // Lint IDs to allow
	Warn   []string // Lint IDs to warn on
	Deny   []string // Lint IDs to deny
	Forbid []string // Lint IDs to forbid

	opener plugin.Opener
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return newCheckCommand(&CheckOptions{})
}

func newCheckCommand(opts *CheckOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <crate>",
		Short: "Run the configured lint plugins over a crate",
		Long: `Load every configured plugin, walk the crate once and report what the
plugins found.

The crate is either a binary snapshot (.llast) or a YAML fixture (.yaml, .yml).
Plugins come from leaplint.yaml, LEAPLINT_PLUGINS (';'-separated paths) or
--plugin. Exit status is 1 when any diagnostic is at deny or forbid, and 3 to 7
when a plugin fails to load or faults.`,
		Example: `  # Check a fixture with the plugins from leaplint.yaml
  leaplint check testdata/single_static.yaml

  # Load a plugin directly and raise its lint
  leaplint check crate.llast --plugin ./testlint.so --deny TEST_LINT

  # Machine-readable output
  leaplint check crate.llast -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Allow, "allow", nil, "Lint IDs to allow")
	cmd.Flags().StringSliceVar(&opts.Warn, "warn", nil, "Lint IDs to warn on")
	cmd.Flags().StringSliceVar(&opts.Deny, "deny", nil, "Lint IDs to deny")
	cmd.Flags().StringSliceVar(&opts.Forbid, "forbid", nil, "Lint IDs to forbid")

	return cmd
}

// levelConfig applies command-line levels over the configured ones.
func levelConfig(base *lint.LevelConfig, opts *CheckOptions) *lint.LevelConfig {
	for _, set := range []struct {
		ids   []string
		level lint.Level
	}{
		{opts.Allow, lint.Allow},
		{opts.Warn, lint.Warn},
		{opts.Deny, lint.Deny},
		{opts.Forbid, lint.Forbid},
	} {
		for _, id := range set.ids {
			if id = strings.TrimSpace(id); id != "" {
				base.SetLevel(id, set.level)
			}
		}
	}
	return base
}

func runCheck(cmd *cobra.Command, path string, opts *CheckOptions) error {
	if err := validFormat(opts.Format); err != nil {
		return err
	}
	cmdCtx := NewCommandContext(cmd, opts.Format)
	cfg := cmdCtx.Cfg

	levels, err := cfg.Levels()
	if err != nil {
		return err
	}

	crate, err := loadCrate(path)
	if err != nil {
		return err
	}

	eng, err := engine.New(engine.Config{
		Environment: cfg.Environment(),
		Levels:      levelConfig(levels, opts),
		Options:     cfg.Options(),
		Opener:      opts.opener,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	result, err := eng.Run(cmd.Context(), crate)
	if err != nil {
		return err
	}

	if err := renderResult(cmdCtx.Renderer, result); err != nil {
		return err
	}
	if result.Failed() {
		return ErrLintFailed
	}
	return nil
}

func renderResult(r *output.Renderer, result *engine.Result) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(result)
	case output.ModeMarkdown:
		renderResultMarkdown(r, result)
	default:
		renderResultText(r, result)
	}
	return nil
}

func levelStyle(styles *output.Styles, level lint.Level) lipgloss.Style {
	switch level {
	case lint.Forbid, lint.Deny:
		return styles.Error
	case lint.Warn:
		return styles.Warning
	default:
		return styles.Muted
	}
}

func renderResultText(r *output.Renderer, result *engine.Result) {
	styles := r.Styles()
	for _, d := range result.Diagnostics {
		r.Printf("%s%s %s\n",
			levelStyle(styles, d.Level).Render(d.Level.String()),
			styles.Bold.Render("["+d.Lint+"]:"),
			d.Message)
		r.Printf("  %s %s\n", styles.Muted.Render("-->"), d.Span)
		for _, note := range d.Notes {
			r.Printf("  %s %s\n", styles.Info.Render("= note:"), note)
		}
		r.Println()
	}
	r.Println(styles.Muted.Render(summary(result)))
}

func renderResultMarkdown(r *output.Renderer, result *engine.Result) {
	r.Header("Diagnostics for " + result.Crate)
	if len(result.Diagnostics) == 0 {
		r.Println("No diagnostics.")
		r.Println()
	}
	for _, d := range result.Diagnostics {
		r.Printf("- **%s** `%s` %s: %s\n", d.Level, d.Lint, d.Span, d.Message)
		for _, note := range d.Notes {
			r.Printf("  - note: %s\n", note)
		}
	}
	if len(result.Diagnostics) > 0 {
		r.Println()
	}
	r.Println(summary(result))
}

func summary(result *engine.Result) string {
	return fmt.Sprintf("%s: %d nodes visited, %d forbid, %d deny, %d warn",
		result.Crate,
		result.Visited(),
		result.Count(lint.Forbid),
		result.Count(lint.Deny),
		result.Count(lint.Warn))
}
