package script

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/howl-sh/howl/internal/alert"
)

func writeScript(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "check.sh"), []byte(content), 0o755); err != nil {
		t.Fatal(err)
	}
}

type fakeResolver struct {
	registered map[string]any
}

func (r *fakeResolver) ResolveLookupKey(key string) string {
	if strings.HasPrefix(key, "{{") && strings.HasSuffix(key, "}}") {
		return strings.TrimSuffix(strings.TrimPrefix(key, "{{"), "}}")
	}
	return key
}

func (r *fakeResolver) ResolveLookupValue(key string) any {
	if v, ok := r.registered[key]; ok {
		return v
	}
	return key
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "#!/bin/sh\necho status=critical\necho usage=92\n")

	c := New(Opts{Command: "file://check.sh", ChecksDir: dir, Timeout: 5 * time.Second})
	state, args, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != alert.StateCritical {
		t.Errorf("state = %s, want CRITICAL", state)
	}
	if len(args) != 1 || args[0] != "92" {
		t.Errorf("args = %v, want [92]", args)
	}
}

func TestCheck_ResolvesParameterizedArgs(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "#!/bin/sh\necho status=ok\necho port=$1\n")

	c := New(Opts{
		Command:   "file://check.sh",
		Args:      []string{"{{hdfs.datanode.http.port}}"},
		ChecksDir: dir,
		Timeout:   5 * time.Second,
	})
	c.Bind(&fakeResolver{registered: map[string]any{"hdfs.datanode.http.port": "50075"}})

	state, args, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != alert.StateOK {
		t.Errorf("state = %s, want OK", state)
	}
	if len(args) != 1 || args[0] != "50075" {
		t.Errorf("args = %v, want the resolved port", args)
	}
}

func TestCheck_NonZeroExit(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "#!/bin/sh\necho status=warning\necho usage=85\nexit 1\n")

	c := New(Opts{Command: "file://check.sh", ChecksDir: dir, Timeout: 5 * time.Second})
	state, _, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}
	if state != alert.StateWarning {
		t.Errorf("state = %s, want WARNING", state)
	}
}

func TestCheck_Timeout(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "#!/bin/sh\nsleep 5\necho status=ok\n")

	c := New(Opts{Command: "file://check.sh", ChecksDir: dir, Timeout: 100 * time.Millisecond})
	_, _, err := c.Check(context.Background())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("error = %v, want timeout", err)
	}
}

func TestCheck_MissingCommand(t *testing.T) {
	c := New(Opts{Command: "file://missing.sh", ChecksDir: t.TempDir()})
	state, _, err := c.Check(context.Background())
	if err == nil {
		t.Fatal("expected error for missing check")
	}
	if state != alert.StateUnknown {
		t.Errorf("state = %s, want UNKNOWN", state)
	}
}

// The executor itself is the production resolver: parameterized args are
// registered as lookup keys and resolved against the value table.
func TestCheck_WithExecutorResolver(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "#!/bin/sh\necho status=ok\necho got=$1\n")

	c := New(Opts{
		Command:   "file://check.sh",
		Args:      []string{"{{some.config.path}}"},
		ChecksDir: dir,
		Timeout:   5 * time.Second,
	})
	exec := alert.New(alert.Meta{"name": "t"}, alert.SourceMeta{}, c, nil)
	c.Bind(exec)
	exec.AttachRuntime(discardSink{}, map[string]any{"some.config.path": "resolved-value"})

	_, args, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(args) != 1 || args[0] != "resolved-value" {
		t.Errorf("args = %v", args)
	}
	if keys := exec.LookupKeys(); len(keys) != 1 || keys[0] != "some.config.path" {
		t.Errorf("lookup keys = %v", keys)
	}
}

type discardSink struct{}

func (discardSink) Put(string, alert.Record) {}
