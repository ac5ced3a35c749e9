package main

import (
	"fmt"

	"github.com/spf13/cobra"

	gq "nickandperla.net/genetic_queens"
)

func newHistoryCommand() *cobra.Command {
	var (
		limit    int
		runID    uint
		xlsxPath string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs, show one run's generations, or export to xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := gq.LoadConfig(configPath)
			if err != nil {
				return err
			}
			ledger, err := gq.NewLedger(&cfg.Ledger)
			if err != nil {
				return err
			}
			defer ledger.Shutdown()

			out := cmd.OutOrStdout()

			if runID != 0 {
				run, err := ledger.LoadRun(runID)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, gq.RenderGenerations(run))
				if xlsxPath != "" {
					return gq.ExportWorkbook(xlsxPath, []gq.RunRecord{*run})
				}
				return nil
			}

			runs, err := ledger.ListRuns(limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, gq.RenderRuns(runs))
			if xlsxPath != "" {
				if err := gq.ExportWorkbook(xlsxPath, runs); err != nil {
					return err
				}
				fmt.Fprintf(out, "Exported %d runs to %s\n", len(runs), xlsxPath)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of most recent runs to list (0 lists all)")
	cmd.Flags().UintVar(&runID, "run", 0, "Show the generations of one run")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also export to this xlsx file")
	return cmd
}
