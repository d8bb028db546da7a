package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyLimit int

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past fix runs from the run history",
		Example: `  netfix history
  netfix history --limit 5`,
		RunE: historyRun,
	}

	cmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to list")

	return cmd
}

func historyRun(cmd *cobra.Command, args []string) error {
	st := openStore()
	if st == nil {
		return fmt.Errorf("run history unavailable at %s", globalCfg.History.DBPath)
	}
	defer st.Close()

	runs, err := st.ListFixRuns(historyLimit)
	if err != nil {
		return fmt.Errorf("reading run history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No fix runs recorded")
		return nil
	}

	fmt.Printf("%-5s %-12s %-10s %-20s %s\n", "ID", "Mode", "Status", "Started", "Error")
	fmt.Println(strings.Repeat("-", 70))
	for _, run := range runs {
		fmt.Printf("%-5d %-12s %-10s %-20s %s\n",
			run.ID,
			run.Mode,
			run.Status,
			run.StartTime.Format("2006-01-02 15:04:05"),
			run.ErrorMessage,
		)
	}

	return nil
}
