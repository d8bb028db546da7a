// Package resolver rewrites the system resolver configuration and manages
// the file's immutable attribute.
package resolver

import (
	"bytes"
	"fmt"
	"os"
)

// Write replaces the resolver configuration at path with one
// "nameserver <addr>" line per server, preserving input order.
// An empty server list is an error and the file is left untouched.
func Write(path string, servers []string) error {
	if len(servers) == 0 {
		return fmt.Errorf("no nameservers given")
	}

	var buf bytes.Buffer
	for _, s := range servers {
		fmt.Fprintf(&buf, "nameserver %s\n", s)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
