package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/engine"
	"github.com/leapstack-labs/leaplint/internal/plugin"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/spf13/cobra"
)

// LintsOptions holds options for the lints command.
type LintsOptions struct {
	Format string // Output format: text, markdown, json

	opener plugin.Opener
}

// lintRow is one registered lint with its configured level.
type lintRow struct {
	lint.LintInfo
	Level lint.Level `json:"level"`
}

// NewLintsCommand creates the lints command.
func NewLintsCommand() *cobra.Command {
	return newLintsCommand(&LintsOptions{})
}

func newLintsCommand(opts *LintsOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lints [lint-id]",
		Short: "List the lints declared by the configured plugins",
		Long: `Load the configured plugins and list every lint they declare, with its
default level and the level the current configuration gives it.`,
		Example: `  # List all lints
  leaplint lints --plugin ./testlint.so

  # Show one lint
  leaplint lints TEST_LINT

  # Output as JSON
  leaplint lints -f json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			return listLints(cmd, id, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func listLints(cmd *cobra.Command, id string, opts *LintsOptions) error {
	if err := validFormat(opts.Format); err != nil {
		return err
	}
	cmdCtx := NewCommandContext(cmd, opts.Format)
	levels, err := cmdCtx.Cfg.Levels()
	if err != nil {
		return err
	}

	eng, err := engine.New(engine.Config{
		Environment: cmdCtx.Cfg.Environment(),
		Levels:      levels,
		Opener:      opts.opener,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	reg := eng.Registry()
	rows := make([]lintRow, 0, reg.Len())
	for _, info := range eng.Lints() {
		if id != "" && info.ID != id {
			continue
		}
		l, _ := reg.Lookup(info.ID)
		rows = append(rows, lintRow{LintInfo: info, Level: levels.Effective(l)})
	}
	if id != "" && len(rows) == 0 {
		return fmt.Errorf("unknown lint %q", id)
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rows)
	case output.ModeMarkdown:
		renderLintsTable(r, rows, true)
	default:
		renderLintsTable(r, rows, false)
	}
	return nil
}

func renderLintsTable(r *output.Renderer, rows []lintRow, markdown bool) {
	if len(rows) == 0 {
		r.Println("No lints registered.")
		return
	}

	styles := r.Styles()
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Lint", "Plugin", "Default", "Level", "Description"})
	for _, row := range rows {
		level := row.Level.String()
		if !markdown {
			level = levelStyle(styles, row.Level).Render(level)
		}
		t.AppendRow(table.Row{row.ID, row.Plugin, row.DefaultLevel, level, row.Doc})
	}

	if markdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	r.Printf("(%d lints)\n", len(rows))
}
