package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitpy2023/netfix/internal/apt"
	"github.com/bitpy2023/netfix/internal/engine"
	"github.com/bitpy2023/netfix/internal/sysinfo"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var fixMode string

var (
	glyphOK       = color.New(color.FgGreen).Sprint("✔")
	glyphAdvisory = color.New(color.FgYellow).Sprint("⚠")
	glyphFatal    = color.New(color.FgRed).Sprint("✖")
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Back up, rewrite DNS and mirrors, bootstrap keyrings, tune the network",
		Long: `Run the full repair pipeline: back up the sources list and resolver
file, rewrite the resolver with the mode's DNS list, install the mode's
mirror set, refresh package indexes and install the repository keyrings,
then apply kernel network tuning.

The normal mode uses the primary mirror; the aggressive mode switches to
the fallback mirror set and a longer DNS list.`,
		Example: `  netfix fix
  netfix fix --mode aggressive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := engine.ParseMode(fixMode)
			if err != nil {
				return err
			}
			return runFix(cmd, mode)
		},
	}

	cmd.Flags().StringVar(&fixMode, "mode", "normal", "fix mode (normal or aggressive)")

	return cmd
}

// runFix executes the repair pipeline for the given mode
func runFix(cmd *cobra.Command, mode engine.Mode) error {
	if err := sysinfo.CheckRoot(); err != nil {
		return err
	}
	arch, err := sysinfo.Architecture()
	if err != nil {
		return err
	}
	logger.Info("starting fix", "mode", mode, "arch", arch)

	// Interrupt and terminate unwind through the context; the guard's
	// deferred release still runs.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := openStore()
	if st != nil {
		defer st.Close()
	}

	guard := engine.AcquireResolver(globalCfg.Files.ResolvConf, logger)
	defer guard.Release()

	steps := engine.FixSteps(globalCfg, mode, apt.ExecRunner, guard)
	p := engine.NewPipeline(mode, steps, st, logger, printStep)
	if err := p.Run(ctx); err != nil {
		return fmt.Errorf("fix aborted: %w", err)
	}

	fmt.Printf("\n%s configuration repaired (%s mode)\n", glyphOK, mode)
	return nil
}

// printStep renders one severity-glyph status line per pipeline step
func printStep(res engine.StepResult) {
	switch res.Severity {
	case engine.SeverityOK:
		fmt.Printf("%s %-10s %s\n", glyphOK, res.Name, res.Message)
	case engine.SeverityAdvisory:
		fmt.Printf("%s %-10s %v\n", glyphAdvisory, res.Name, res.Err)
	default:
		fmt.Printf("%s %-10s %v\n", glyphFatal, res.Name, res.Err)
	}
}
