package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/bitpy2023/netfix/internal/probe"
	"github.com/spf13/cobra"
)

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Probe mirror and DNS reachability without changing anything",
		Long: `Issue a header-only HTTP request to each configured endpoint and one
DNS lookup, and report reachable or unreachable per endpoint. Probe
results are informational and never affect the exit code.`,
		Example: `  netfix test`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd)
		},
	}
}

// runProbe runs the connectivity prober and prints its report
func runProbe(cmd *cobra.Command) error {
	timeout := time.Duration(globalCfg.Probe.TimeoutSeconds) * time.Second
	p := probe.New(timeout, logger)

	fmt.Println("Connectivity Test")
	fmt.Println("=================")
	fmt.Println("")

	report := p.Run(cmd.Context(), globalCfg.Probe.Endpoints, globalCfg.Probe.LookupHost)

	for _, r := range report.Endpoints {
		if r.Reachable {
			fmt.Printf("%s %-45s reachable (%d, %dms)\n", glyphOK, r.URL, r.StatusCode, r.LatencyMs)
		} else if r.Error != "" {
			fmt.Printf("%s %-45s unreachable (%s)\n", glyphFatal, r.URL, shortError(r.Error))
		} else {
			fmt.Printf("%s %-45s unreachable (%d)\n", glyphFatal, r.URL, r.StatusCode)
		}
	}

	fmt.Println("")
	if report.DNS.Error != "" {
		fmt.Printf("%s DNS lookup %s failed: %s\n", glyphFatal, report.DNS.Host, shortError(report.DNS.Error))
	} else {
		fmt.Printf("%s DNS lookup %s -> %s\n", glyphOK, report.DNS.Host, strings.Join(report.DNS.Addresses, ", "))
	}

	return nil
}

// shortError trims an error string to its last, most specific segment
func shortError(s string) string {
	if idx := strings.LastIndex(s, ": "); idx >= 0 && idx+2 < len(s) {
		return s[idx+2:]
	}
	return s
}
