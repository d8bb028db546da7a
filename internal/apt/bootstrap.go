package apt

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner executes an external command, blocking until it exits.
// Tests substitute a stub; production code uses ExecRunner.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs commands through os/exec, inheriting stdout and stderr
// so apt-get progress stays visible.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// Bootstrap refreshes the package indexes and installs the keyring packages
// that validate future repository signatures. The refresh allows insecure
// repositories: the keyrings that would validate the new mirrors are not
// installed yet, so signature checks cannot pass on the first update.
func Bootstrap(ctx context.Context, run CommandRunner, keyrings []string) error {
	if len(keyrings) == 0 {
		return fmt.Errorf("no keyring packages configured")
	}

	if err := run(ctx, "apt-get", "update", "--allow-insecure-repositories"); err != nil {
		return fmt.Errorf("refreshing package indexes: %w", err)
	}

	args := append([]string{"install", "-y", "--allow-unauthenticated"}, keyrings...)
	if err := run(ctx, "apt-get", args...); err != nil {
		return fmt.Errorf("installing keyring packages: %w", err)
	}
	return nil
}
