// Package apt rewrites the APT sources list and bootstraps the keyring
// packages through the system package manager.
package apt

import (
	"fmt"
	"os"
	"strings"
)

// WriteSources replaces the sources list at path with the given mirror
// lines, verbatim and in order. The lines are not validated; the tool's
// job is to install a known set, not to probe it.
func WriteSources(path string, lines []string) error {
	if len(lines) == 0 {
		return fmt.Errorf("no mirror lines given")
	}

	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
