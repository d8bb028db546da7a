// Package backup copies the configuration files the fixer rewrites to .bak
// siblings before any mutation, and restores them on request.
package backup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Suffix is appended to a file's path to form its backup path.
const Suffix = ".bak"

// Run backs up the sources list and resolver files to .bak siblings.
// A missing sources list is fatal: without a known-good target there is
// nothing safe to overwrite later. A missing resolver file is skipped.
// An existing backup is overwritten; backups are not rotated.
// The returned slice lists the backup files that were written.
func Run(sourcesList, resolvConf string) ([]string, error) {
	if _, err := os.Stat(sourcesList); err != nil {
		return nil, fmt.Errorf("sources list %s not found: %w", sourcesList, err)
	}

	var written []string

	if err := copyFile(sourcesList, sourcesList+Suffix); err != nil {
		return nil, fmt.Errorf("backing up %s: %w", sourcesList, err)
	}
	written = append(written, sourcesList+Suffix)

	if _, err := os.Stat(resolvConf); err == nil {
		if err := copyFile(resolvConf, resolvConf+Suffix); err != nil {
			return written, fmt.Errorf("backing up %s: %w", resolvConf, err)
		}
		written = append(written, resolvConf+Suffix)
	}

	return written, nil
}

// Restore copies each existing .bak file back over its original.
// It fails only when no backup exists at all.
func Restore(sourcesList, resolvConf string) ([]string, error) {
	var restored []string

	for _, path := range []string{sourcesList, resolvConf} {
		bak := path + Suffix
		if _, err := os.Stat(bak); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return restored, fmt.Errorf("checking backup %s: %w", bak, err)
		}
		if err := copyFile(bak, path); err != nil {
			return restored, fmt.Errorf("restoring %s: %w", path, err)
		}
		restored = append(restored, path)
	}

	if len(restored) == 0 {
		return nil, fmt.Errorf("no backups found for %s or %s", sourcesList, resolvConf)
	}
	return restored, nil
}

// copyFile copies src to dst, preserving the source file mode.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy contents: %w", err)
	}
	return out.Close()
}
