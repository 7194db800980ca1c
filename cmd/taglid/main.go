package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/taglid/internal/logging"
	"github.com/cognicore/taglid/pkg/taglid/config"
	"github.com/cognicore/taglid/pkg/taglid/dataset"
	"github.com/cognicore/taglid/pkg/taglid/internalerr"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	resources  string
	edits      int
	logLevel   string
	color      string
}

func main() {
	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", describe(err))
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	g := &globalFlags{}
	id := &identifyFlags{}

	root := &cobra.Command{
		Use:   "taglid",
		Short: "Word-level Tagalog/English language identification",
		Long: `taglid labels every word of a Taglish text with English and Tagalog
weights and the rule that decided it. Without --text it reads lines
interactively until "exit".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIdentify(cmd, g, id)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "YAML config file (default $"+config.PathEnv+")")
	pf.StringVar(&g.resources, "resources", "", "directory holding the lexical resources")
	pf.IntVar(&g.edits, "edits", 2, "maximum edits for spelling correction (0 disables)")
	pf.StringVar(&g.logLevel, "log-level", "", "log level (debug|info|warn|error)")
	pf.StringVar(&g.color, "color", "auto", "colorize output (auto|on|off)")

	f := root.Flags()
	f.StringArrayVarP(&id.text, "text", "t", nil, "text to label; repeat to pass several words")
	f.BoolVarP(&id.simplify, "simplify", "s", false, "print one collapsed label per word")
	f.BoolVar(&id.html, "html", false, "strip HTML markup before tokenizing")

	root.AddCommand(newDatasetCmd(g))
	root.AddCommand(newStatsCmd(g))
	root.AddCommand(newRunsCmd(g))
	return root
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command, g *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("resources") {
		cfg.Resources.Dir = g.resources
	}
	if flags.Changed("edits") {
		cfg.Classifier.MaxEdits = g.edits
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = g.logLevel
	}
	return cfg, cfg.Validate()
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	log := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	slog.SetDefault(log)
	return log
}

// describe turns sentinel errors into short user-facing messages.
func describe(err error) string {
	switch {
	case errors.Is(err, internalerr.ErrResourceLoad):
		return fmt.Sprintf("could not load resources: %v", err)
	case errors.Is(err, internalerr.ErrInvalidConfig):
		return fmt.Sprintf("bad configuration: %v", err)
	case errors.Is(err, dataset.ErrOutputExists):
		return fmt.Sprintf("%v (use --force to overwrite)", err)
	case errors.Is(err, internalerr.ErrStoreUnavailable):
		return fmt.Sprintf("run store unavailable: %v", err)
	case errors.Is(err, internalerr.ErrNotFound):
		return fmt.Sprintf("not found: %v", err)
	default:
		return err.Error()
	}
}
