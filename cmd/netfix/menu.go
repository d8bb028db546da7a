package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bitpy2023/netfix/internal/engine"
	"github.com/spf13/cobra"
)

// runMenu offers the same choices as the mode flags through an interactive
// numbered menu, looping until a terminal choice is made
func runMenu(cmd *cobra.Command) error {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("")
		fmt.Println("netfix — repair mirrors and DNS")
		fmt.Println("  1) Fix (normal)")
		fmt.Println("  2) Fix (aggressive)")
		fmt.Println("  3) Test connectivity")
		fmt.Println("  4) Help")
		fmt.Println("  5) Exit")
		fmt.Print("Select an option [1-5]: ")

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Println("")
				return nil
			}
			return fmt.Errorf("reading selection: %w", err)
		}

		switch strings.TrimSpace(line) {
		case "1":
			return runFix(cmd, engine.ModeNormal)
		case "2":
			return runFix(cmd, engine.ModeAggressive)
		case "3":
			return runProbe(cmd)
		case "4":
			return cmd.Help()
		case "5":
			return nil
		default:
			fmt.Printf("%s invalid choice %q\n", glyphAdvisory, strings.TrimSpace(line))
		}
	}
}
