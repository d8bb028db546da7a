package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bitpy2023/netfix/internal/backup"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the managed files and the most recent fix run",
		Long: `Show whether the managed configuration files and their backups exist,
and the outcome of the most recent fix run from the run history.`,
		Example: `  netfix status`,
		RunE:    statusRun,
	}
}

func statusRun(cmd *cobra.Command, args []string) error {
	fmt.Println("Managed Files")
	fmt.Println("=============")
	fmt.Println("")
	fmt.Printf("%-30s %10s %10s\n", "File", "Present", "Backup")
	fmt.Println(strings.Repeat("-", 52))

	for _, path := range []string{globalCfg.Files.SourcesList, globalCfg.Files.ResolvConf, globalCfg.Files.SysctlConf} {
		fmt.Printf("%-30s %10s %10s\n", path, yesNo(fileExists(path)), yesNo(fileExists(path+backup.Suffix)))
	}

	st := openStore()
	if st == nil {
		fmt.Println("\nNo run history available")
		return nil
	}
	defer st.Close()

	last, err := st.LastFixRun()
	if err != nil {
		return fmt.Errorf("reading run history: %w", err)
	}
	if last == nil {
		fmt.Println("\nNo fix has been run yet")
		return nil
	}

	fmt.Println("\nLast Run")
	fmt.Println("========")
	fmt.Printf("Mode:    %s\n", last.Mode)
	fmt.Printf("Status:  %s\n", last.Status)
	fmt.Printf("Started: %s\n", last.StartTime.Format("2006-01-02 15:04:05"))
	if last.ErrorMessage != "" {
		fmt.Printf("Error:   %s\n", last.ErrorMessage)
	}

	steps, err := st.ListStepResults(last.ID)
	if err != nil {
		return fmt.Errorf("reading step results: %w", err)
	}
	for _, s := range steps {
		glyph := glyphOK
		switch s.Severity {
		case "advisory":
			glyph = glyphAdvisory
		case "fatal":
			glyph = glyphFatal
		}
		fmt.Printf("  %s %-10s %s\n", glyph, s.Step, s.Message)
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
