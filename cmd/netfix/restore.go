package main

import (
	"fmt"

	"github.com/bitpy2023/netfix/internal/backup"
	"github.com/bitpy2023/netfix/internal/resolver"
	"github.com/bitpy2023/netfix/internal/sysinfo"
	"github.com/spf13/cobra"
)

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore the sources list and resolver file from their backups",
		Long: `Copy the .bak backups written by a previous fix back over the live
files. The resolver file's immutable attribute is cleared first so the
restore can write it.`,
		Example: `  netfix restore`,
		RunE:    restoreRun,
	}
}

func restoreRun(cmd *cobra.Command, args []string) error {
	if err := sysinfo.CheckRoot(); err != nil {
		return err
	}

	if err := resolver.ClearImmutable(globalCfg.Files.ResolvConf); err != nil {
		logger.Debug("could not clear immutable attribute", "error", err)
	}

	restored, err := backup.Restore(globalCfg.Files.SourcesList, globalCfg.Files.ResolvConf)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	for _, path := range restored {
		fmt.Printf("%s restored %s\n", glyphOK, path)
	}
	return nil
}
