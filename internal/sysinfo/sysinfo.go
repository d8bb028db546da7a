package sysinfo

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Arch identifies a supported CPU architecture.
type Arch string

const (
	ArchAMD64 Arch = "amd64"
	ArchARM64 Arch = "arm64"
)

// CheckRoot verifies the process runs with root privileges.
func CheckRoot() error {
	if euid := os.Geteuid(); euid != 0 {
		return fmt.Errorf("root privileges required (running as uid %d)", euid)
	}
	return nil
}

// Architecture maps the kernel's reported machine type to an Arch.
// Unrecognized machine types are an error.
func Architecture() (Arch, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", fmt.Errorf("reading system information: %w", err)
	}
	return archFromMachine(unix.ByteSliceToString(uts.Machine[:]))
}

func archFromMachine(machine string) (Arch, error) {
	switch machine {
	case "x86_64":
		return ArchAMD64, nil
	case "aarch64":
		return ArchARM64, nil
	default:
		return "", fmt.Errorf("unsupported architecture %q", machine)
	}
}
