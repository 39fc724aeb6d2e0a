package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leaplint/internal/fixture"
	"github.com/leapstack-labs/leaplint/pkg/ast"
	"github.com/spf13/cobra"
)

// SnapshotExt is the file extension of binary crate snapshots.
const SnapshotExt = ".llast"

// SnapshotOptions holds options for the snapshot command.
type SnapshotOptions struct {
	Out string // Destination path; defaults to the fixture path with SnapshotExt
}

// NewSnapshotCommand creates the snapshot command.
func NewSnapshotCommand() *cobra.Command {
	opts := &SnapshotOptions{}
	cmd := &cobra.Command{
		Use:   "snapshot <fixture.yaml>",
		Short: "Convert a YAML crate fixture into a binary snapshot",
		Long: `Build the crate described by a YAML fixture and write it in the binary
snapshot format read by check. Snapshots record the AST layout version and are
rejected by builds with a different layout.`,
		Example: `  leaplint snapshot testdata/shapes.yaml
  leaplint snapshot shapes.yaml --out /tmp/shapes.llast`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "Output path (default: <fixture>"+SnapshotExt+")")

	return cmd
}

func runSnapshot(cmd *cobra.Command, path string, opts *SnapshotOptions) error {
	if !isFixture(path) {
		return fmt.Errorf("%s is not a YAML fixture", path)
	}
	crate, err := fixture.Load(path)
	if err != nil {
		return err
	}

	out := opts.Out
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + SnapshotExt
	}
	if err := writeSnapshot(out, crate); err != nil {
		return err
	}

	NewCommandContext(cmd, "").Renderer.Printf("wrote %s (%d nodes)\n", out, crate.NodeCount())
	return nil
}

func writeSnapshot(path string, crate *ast.Crate) (err error) {
	f, err := os.Create(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := ast.WriteSnapshot(f, crate); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
