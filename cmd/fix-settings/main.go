package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EHAB0O0/school-activity/internal/config"
	"github.com/EHAB0O0/school-activity/internal/logging"
	"github.com/EHAB0O0/school-activity/internal/tactile"
	"github.com/EHAB0O0/school-activity/internal/truncate"
	"github.com/EHAB0O0/school-activity/internal/ux"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string
	targetFile string
	boundary   int

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fix-settings",
	Short: "Truncate the settings page to a fixed number of lines",
	Long: `Keeps the first 1002 lines of src/pages/SettingsPage.jsx and discards the
rest. The lines on either side of the cut are printed before writing, and the
file is re-read afterwards to confirm the new line count.

The cut is irreversible; there is no backup. Exits with status 1 when the file
does not exist.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := logging.Initialize(c.Logging.ToLogging(), verbose); err != nil {
			return err
		}
		logging.Boot("fix-settings starting: file=%s boundary=%d", c.Truncate.File, c.Truncate.Boundary)
		cfg = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runTruncate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Front-end project root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/.fixup/config.yaml)")
	rootCmd.Flags().StringVarP(&targetFile, "file", "f", "", "File to truncate, relative to the workspace (default: "+config.DefaultTruncateFile+")")
	rootCmd.Flags().IntVarP(&boundary, "boundary", "n", config.DefaultTruncateBoundary, "Number of lines to keep")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Not-found was already reported by runTruncate.
		if !errors.Is(err, truncate.ErrNotFound) {
			fmt.Fprintln(os.Stderr, err)
		}
		// PersistentPostRun is skipped when RunE fails.
		logging.Sync()
		os.Exit(1)
	}
}

func resolveWorkspace() string {
	if workspace != "" {
		return workspace
	}
	ws, _ := os.Getwd()
	return ws
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath(resolveWorkspace())
	}
	c, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if targetFile != "" {
		c.Truncate.File = targetFile
	}
	if cmd.Flags().Changed("boundary") {
		c.Truncate.Boundary = boundary
	}
	if err := c.ValidateTruncate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// runTruncate fails fast on a missing file; any other error propagates.
func runTruncate(cmd *cobra.Command, args []string) error {
	out := ux.NewReporter(cmd.OutOrStdout())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	ws := resolveWorkspace()
	n := cfg.Truncate.Boundary
	out.Field("Current working directory", ws)
	out.Field("Target file", cfg.Truncate.File)

	editor := tactile.NewFileEditor()
	editor.SetWorkingDir(ws)
	tr := truncate.New(editor)

	preview, err := tr.Inspect(ctx, cfg.Truncate.File, n)
	if errors.Is(err, truncate.ErrNotFound) {
		out.Error("File not found!")
		return err
	}
	if err != nil {
		return err
	}

	out.Field("Original line count", preview.OriginalLines)
	out.Field(fmt.Sprintf("Line %d content", n), lineOrNA(preview.BoundaryLine, preview.HasBoundaryLine))
	out.Field(fmt.Sprintf("Line %d content", n+1), lineOrNA(preview.NextLine, preview.HasNextLine))

	out.Line("Truncating to %d lines...", preview.Kept())
	res, err := tr.Apply(ctx, preview)
	if err != nil {
		return err
	}
	out.Line("File written.")
	out.Success("New line count: %d", res.NewLines)
	return nil
}

func lineOrNA(line string, ok bool) string {
	if !ok {
		return "N/A"
	}
	return line
}
