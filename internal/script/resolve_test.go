package script

import (
	"os"
	"path/filepath"
	"testing"
)

func writeExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveCommand_Relative(t *testing.T) {
	dir := t.TempDir()
	want := writeExecutable(t, dir, "disk.sh")

	got, err := resolveCommand("file://disk.sh", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("resolved = %q, want %q", got, want)
	}
}

func TestResolveCommand_Absolute(t *testing.T) {
	path := writeExecutable(t, t.TempDir(), "disk.sh")

	got, err := resolveCommand("file://"+path, "/unused")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != path {
		t.Errorf("resolved = %q, want %q", got, path)
	}
}

func TestResolveCommand_NotFound(t *testing.T) {
	if _, err := resolveCommand("file://missing.sh", t.TempDir()); err == nil {
		t.Fatal("expected error for missing check")
	}
}

func TestResolveCommand_NotExecutable(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "plain.sh"), []byte("#!/bin/sh\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveCommand("file://plain.sh", dir); err == nil {
		t.Fatal("expected error for non-executable check")
	}
}

func TestResolveCommand_Directory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveCommand("file://sub", dir); err == nil {
		t.Fatal("expected error for directory")
	}
}

func TestResolveCommand_BadScheme(t *testing.T) {
	if _, err := resolveCommand("https://example.com/check", t.TempDir()); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}
