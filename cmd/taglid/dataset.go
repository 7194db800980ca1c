package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/c-bata/go-prompt"
	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cognicore/taglid/pkg/taglid"
	"github.com/cognicore/taglid/pkg/taglid/dataset"
)

type datasetFlags struct {
	inSheet  string
	outSheet string
	index    string
	force    bool
	workers  int
	db       string
}

func newDatasetCmd(g *globalFlags) *cobra.Command {
	df := &datasetFlags{}
	cmd := &cobra.Command{
		Use:   "dataset <in.xlsx|in.csv> <out.xlsx|out.csv|out.json|out.msgpack>",
		Short: "Label every cell of a spreadsheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDataset(cmd, g, df, args[0], args[1])
		},
	}
	f := cmd.Flags()
	f.StringVar(&df.inSheet, "in-sheet", "", "input sheet (default first sheet)")
	f.StringVar(&df.outSheet, "out-sheet", "", "output sheet name")
	f.StringVar(&df.index, "index", "", "input column holding row labels")
	f.BoolVarP(&df.force, "force", "f", false, "overwrite an existing output file")
	f.IntVar(&df.workers, "workers", 0, "concurrent cells (0 uses all CPUs)")
	f.StringVar(&df.db, "db", "", "record the run in this SQLite database")
	return cmd
}

func runDataset(cmd *cobra.Command, g *globalFlags, df *datasetFlags, in, out string) error {
	cfg, err := loadConfig(cmd, g)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Dataset.Workers = df.workers
	}
	if df.db != "" {
		cfg.Store.Path = df.db
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	overwrite := df.force
	if err := dataset.CheckOutput(out, overwrite); err != nil {
		if !errors.Is(err, dataset.ErrOutputExists) || !stdinIsTerminal(cmd) {
			return err
		}
		answer := prompt.Choose(fmt.Sprintf("%s exists, overwrite? ", out), []string{"yes", "no"})
		if answer != "yes" && answer != "y" {
			return err
		}
		overwrite = true
	}

	log := newLogger(cmd, cfg)
	tg, err := taglid.Open(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer tg.Close()

	opts := taglid.FileOptions{
		Read:      dataset.ReadOptions{Sheet: df.inSheet, IndexColumn: df.index},
		Write:     dataset.WriteOptions{Sheet: df.outSheet},
		Overwrite: overwrite,
	}

	var bar *uiprogress.Bar
	if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		uiprogress.Start()
		opts.Progress = func(done, total int) {
			if bar == nil {
				bar = uiprogress.AddBar(total)
				bar.AppendCompleted()
				bar.PrependElapsed()
			}
			bar.Incr()
		}
	}

	run, res, err := tg.LabelFile(cmd.Context(), in, out, opts)
	if opts.Progress != nil {
		uiprogress.Stop()
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "labeled %d cells, %d words, %d skipped -> %s\n", res.Cells, len(res.Records), len(res.Skipped), out)
	for _, s := range res.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "  skipped %s\n", s.Error())
	}
	if df.db != "" {
		fmt.Fprintf(w, "run %s saved to %s\n", run.ID, df.db)
	}
	return nil
}

func stdinIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
