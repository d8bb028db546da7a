// Package sysctl appends kernel network tuning parameters to the system
// control configuration and reloads them.
package sysctl

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Runner executes an external command, blocking until it exits.
type Runner func(ctx context.Context, name string, args ...string) error

// EnsureParams appends each "key = value" line missing from the control
// file, keyed on the parameter name so repeated runs never duplicate a
// line. The returned slice lists the lines that were appended.
func EnsureParams(path string, params []string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	content := string(data)

	var missing []string
	for _, param := range params {
		key := strings.TrimSpace(strings.SplitN(param, "=", 2)[0])
		if key == "" {
			return nil, fmt.Errorf("malformed sysctl parameter %q", param)
		}
		if !strings.Contains(content, key) {
			missing = append(missing, param)
		}
	}

	if len(missing) == 0 {
		return nil, nil
	}

	var buf strings.Builder
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		buf.WriteString("\n")
	}
	for _, param := range missing {
		buf.WriteString(param)
		buf.WriteString("\n")
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := f.WriteString(buf.String()); err != nil {
		f.Close()
		return nil, fmt.Errorf("appending to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing %s: %w", path, err)
	}

	return missing, nil
}

// Reload asks the kernel to re-read the control file. This step is
// advisory; callers log a failure and continue.
func Reload(ctx context.Context, run Runner, path string) error {
	if err := run(ctx, "sysctl", "-p", path); err != nil {
		return fmt.Errorf("reloading kernel parameters: %w", err)
	}
	return nil
}
