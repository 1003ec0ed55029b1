package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EHAB0O0/school-activity/internal/config"
	"github.com/EHAB0O0/school-activity/internal/diff"
	"github.com/EHAB0O0/school-activity/internal/logging"
	"github.com/EHAB0O0/school-activity/internal/rewrite"
	"github.com/EHAB0O0/school-activity/internal/tactile"
	"github.com/EHAB0O0/school-activity/internal/ux"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string
	targetFile string
	dryRun     bool
	diffLines  int

	cfg    *config.Config
	cfgErr error
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fix-opacity-classes",
	Short: "Replace Tailwind slash-opacity classes with rgba arbitrary values",
	Long: `Rewrites classes such as bg-white/10 to bg-[rgba(255,255,255,0.1)] in one
front-end source file. Longer class names are replaced first, so bg-white/10
is never mistaken for bg-white/5 followed by a stray 0.

The file is overwritten in place only when something changed. No backup is
made; use --dry-run to see the diff first.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Config failures are reported by runRewrite, like any other failure.
		cfgErr = nil
		c, err := loadConfig()
		if err != nil {
			cfgErr = err
			c = config.DefaultConfig()
		}
		if err := logging.Initialize(c.Logging.ToLogging(), verbose); err != nil {
			cfgErr = err
			return nil
		}
		logging.Boot("fix-opacity-classes starting: file=%s dry-run=%t", c.Rewrite.File, dryRun)
		cfg = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runRewrite,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Front-end project root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/.fixup/config.yaml)")
	rootCmd.Flags().StringVarP(&targetFile, "file", "f", "", "File to rewrite, relative to the workspace (default: "+config.DefaultRewriteFile+")")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the diff; do not modify the file")
	rootCmd.Flags().IntVar(&diffLines, "context", 3, "Lines of context in the --dry-run diff")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
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

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath(resolveWorkspace())
	}
	c, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if targetFile != "" {
		c.Rewrite.File = targetFile
	}
	if err := c.ValidateRewrite(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

func buildTable(entries []config.Replacement) (*rewrite.Table, error) {
	if len(entries) == 0 {
		return rewrite.DefaultTable(), nil
	}
	table := make([]rewrite.Replacement, 0, len(entries))
	for _, e := range entries {
		table = append(table, rewrite.Replacement{From: e.From, To: e.To})
	}
	return rewrite.NewTable(table)
}

// runRewrite reports every failure on stdout and returns nil: a failed
// rewrite leaves the file as it was and is not a process error.
func runRewrite(cmd *cobra.Command, args []string) (err error) {
	out := ux.NewReporter(cmd.OutOrStdout())
	defer func() {
		if r := recover(); r != nil {
			logging.RewriteError("Recovered: %v", r)
			out.Error("%v", r)
			err = nil
		}
	}()

	ws := resolveWorkspace()
	out.Field("Working directory", ws)
	if cfgErr != nil {
		logging.RewriteError("Config: %v", cfgErr)
		out.Error("%v", cfgErr)
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	out.Field("Target file", cfg.Rewrite.File)

	table, err := buildTable(cfg.Rewrite.Replacements)
	if err != nil {
		out.Error("%v", err)
		return nil
	}

	editor := tactile.NewFileEditor()
	editor.SetWorkingDir(ws)
	rw := rewrite.New(table,
		rewrite.WithEditor(editor),
		rewrite.WithDryRun(dryRun),
		rewrite.WithDiffEngine(diff.NewEngine(diffLines)),
	)

	res, err := rw.Run(ctx, cfg.Rewrite.File)
	if err != nil {
		out.Error("%v", err)
		return nil
	}

	for _, m := range res.Matches {
		out.Line("Replaced %s -> %s", m.From, m.To)
	}

	switch {
	case !res.Changed:
		out.Line("No matches found.")
	case dryRun:
		out.Block(res.Diff.Unified())
		out.Line("dry-run: %d types of opacity classes would be replaced (no files written)", len(res.Matches))
	default:
		out.Success("Successfully replaced %d types of opacity classes.", len(res.Matches))
	}
	return nil
}
