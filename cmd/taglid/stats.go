package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/taglid/pkg/taglid/config"
	"github.com/cognicore/taglid/pkg/taglid/internalerr"
)

func newStatsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print resource table sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}
			comp, err := (&config.Loader{Config: cfg, Logger: newLogger(cmd, cfg)}).Load(cmd.Context())
			if err != nil {
				return err
			}
			defer comp.Close()

			r, err := newRenderer(cmd, g)
			if err != nil {
				return err
			}
			return r.Stats(comp.Resources.Stats())
		},
	}
}

func newRunsCmd(g *globalFlags) *cobra.Command {
	var (
		db    string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List recorded dataset runs, or show the flag tally of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}
			if db != "" {
				cfg.Store.Path = db
			}
			if cfg.Store.Path == "" {
				return fmt.Errorf("%w: no run database; pass --db or set store.path", internalerr.ErrInvalidConfig)
			}
			st, err := config.OpenStore(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			defer st.Close()

			r, err := newRenderer(cmd, g)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				runs, err := st.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				return r.Runs(runs)
			}
			counts, err := st.FlagCounts(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return r.FlagCounts(counts)
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "SQLite database written by dataset --db")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list (0 lists all)")
	return cmd
}
