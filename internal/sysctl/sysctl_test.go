package sysctl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var tuningParams = []string{
	"net.core.default_qdisc = fq",
	"net.ipv4.tcp_congestion_control = bbr",
}

func countOccurrences(t *testing.T, path, substr string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return strings.Count(string(data), substr)
}

func TestEnsureParamsAppendsMissingLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysctl.conf")
	if err := os.WriteFile(path, []byte("# kernel settings\nvm.swappiness = 10\n"), 0644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	added, err := EnsureParams(path, tuningParams)
	if err != nil {
		t.Fatalf("EnsureParams returned error: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("expected 2 added lines, got %v", added)
	}

	for _, param := range tuningParams {
		if n := countOccurrences(t, path, param); n != 1 {
			t.Errorf("param %q occurs %d times, want 1", param, n)
		}
	}
	// Existing content untouched
	if n := countOccurrences(t, path, "vm.swappiness = 10"); n != 1 {
		t.Errorf("existing line occurs %d times, want 1", n)
	}
}

func TestEnsureParamsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysctl.conf")

	if _, err := EnsureParams(path, tuningParams); err != nil {
		t.Fatalf("first EnsureParams returned error: %v", err)
	}
	added, err := EnsureParams(path, tuningParams)
	if err != nil {
		t.Fatalf("second EnsureParams returned error: %v", err)
	}
	if len(added) != 0 {
		t.Fatalf("second run added lines: %v", added)
	}

	for _, param := range tuningParams {
		if n := countOccurrences(t, path, param); n != 1 {
			t.Errorf("param %q occurs %d times after two runs, want 1", param, n)
		}
	}
}

func TestEnsureParamsMatchesOnKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysctl.conf")
	// Same key, different value: the line must not be duplicated
	if err := os.WriteFile(path, []byte("net.core.default_qdisc = cake\n"), 0644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	added, err := EnsureParams(path, tuningParams)
	if err != nil {
		t.Fatalf("EnsureParams returned error: %v", err)
	}
	if len(added) != 1 || added[0] != tuningParams[1] {
		t.Fatalf("added = %v, want only the congestion control line", added)
	}
}

func TestEnsureParamsCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysctl.conf")

	added, err := EnsureParams(path, tuningParams)
	if err != nil {
		t.Fatalf("EnsureParams returned error: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("expected 2 added lines, got %v", added)
	}
}

func TestEnsureParamsMalformedParam(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysctl.conf")
	if _, err := EnsureParams(path, []string{"= broken"}); err == nil {
		t.Fatal("expected error for malformed parameter")
	}
}

func TestReload(t *testing.T) {
	var got []string
	run := func(ctx context.Context, name string, args ...string) error {
		got = append([]string{name}, args...)
		return nil
	}

	if err := Reload(context.Background(), run, "/etc/sysctl.conf"); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}
	if strings.Join(got, " ") != "sysctl -p /etc/sysctl.conf" {
		t.Errorf("command = %q", strings.Join(got, " "))
	}

	failing := func(ctx context.Context, name string, args ...string) error {
		return errors.New("sysctl: permission denied")
	}
	if err := Reload(context.Background(), failing, "/etc/sysctl.conf"); err == nil {
		t.Fatal("expected error from failing runner")
	}
}
