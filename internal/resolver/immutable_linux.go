package resolver

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// fsImmutableFl is FS_IMMUTABLE_FL from <linux/fs.h>; golang.org/x/sys/unix
// does not export it.
const fsImmutableFl = 0x00000010

// SetImmutable sets the filesystem immutable attribute on path so other
// services (DHCP clients, resolvconf) cannot silently rewrite it.
// Filesystems without attribute support report an error; callers treat
// that as advisory.
func SetImmutable(path string) error {
	return updateFlags(path, func(flags int) int { return flags | fsImmutableFl })
}

// ClearImmutable removes the immutable attribute. A file that does not
// carry the attribute is left as is.
func ClearImmutable(path string) error {
	return updateFlags(path, func(flags int) int { return flags &^ fsImmutableFl })
}

func updateFlags(path string, change func(int) int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	flags, err := unix.IoctlGetInt(int(f.Fd()), unix.FS_IOC_GETFLAGS)
	if err != nil {
		return fmt.Errorf("reading attributes of %s: %w", path, err)
	}

	next := change(flags)
	if next == flags {
		return nil
	}

	if err := unix.IoctlSetPointerInt(int(f.Fd()), unix.FS_IOC_SETFLAGS, next); err != nil {
		return fmt.Errorf("updating attributes of %s: %w", path, err)
	}
	return nil
}
