// Package main implements the kma command: the interactive Knowledge Management
// maturity assessment and its scripting subcommands.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"kma/internal/config"
	"kma/internal/logging"
	"kma/internal/rubric"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries the flags and the state built by PersistentPreRunE.
type app struct {
	verbose    bool
	workspace  string
	configPath string
	rubricPath string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "kma",
		Short: "KMA - Knowledge Management maturity assessment",
		Long: `kma rates an organization against the Knowledge Management maturity rubric.

Every question is scored on five levels (Insufficient to Optimal). Section averages
and the overall score are recalculated as you edit.

Run without arguments to open the interactive assessment form.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
		RunE:              a.runInteractive,
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVarP(&a.workspace, "workspace", "w", "", "Workspace directory (default: current)")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: <workspace>/.kma/config.yaml)")
	root.PersistentFlags().StringVar(&a.rubricPath, "rubric", "", "Rubric catalog YAML replacing the built-in rubric")

	root.AddCommand(a.rubricCmd())
	root.AddCommand(a.scoreCmd())
	root.AddCommand(a.themeCmd())
	root.AddCommand(a.envCmd())
	return root
}

// setup loads .env and the config file, then starts the category logs. Subcommands
// also get a zap production logger; the interactive form owns the terminal, so it
// logs to files only.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	ws := a.workspace
	if ws == "" {
		var err error
		if ws, err = os.Getwd(); err != nil {
			return fmt.Errorf("failed to resolve workspace: %w", err)
		}
	}
	ws, err := filepath.Abs(ws)
	if err != nil {
		return fmt.Errorf("failed to resolve workspace: %w", err)
	}
	a.workspace = ws

	if err := config.LoadEnvFile(filepath.Join(ws, ".env")); err != nil {
		return err
	}

	path := a.configPath
	if path == "" {
		path = config.DefaultConfigPath(ws)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.rubricPath != "" {
		cfg.Rubric.Path = a.rubricPath
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	if err := logging.Initialize(ws, cfg.Logging.Logger()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logging.Boot("kma %s: command=%s workspace=%s", cfg.Version, cmd.Name(), ws)

	if cmd == cmd.Root() {
		a.logger = zap.NewNop()
		return nil
	}

	zc := zap.NewProductionConfig()
	if a.verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	a.logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	logging.CloseAll()
}

// resolve makes p absolute relative to the workspace.
func (a *app) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.workspace, p)
}

// loadAssessment returns the configured catalog, or the built-in rubric.
func (a *app) loadAssessment() (rubric.AssessmentData, error) {
	if a.cfg.Rubric.Path == "" {
		return rubric.LoadInitialAssessment(), nil
	}
	path := a.resolve(a.cfg.Rubric.Path)
	cat, err := rubric.LoadFile(path)
	if err != nil {
		return rubric.AssessmentData{}, fmt.Errorf("failed to load rubric %s: %w", path, err)
	}
	a.logger.Debug("loaded rubric", zap.String("path", path))
	return cat.Assessment(), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
