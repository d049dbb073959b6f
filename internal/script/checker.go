// Package script implements the exec-backed alert check: it resolves a
// file:// command against the checks directory, runs it, and parses its
// status output into a health state and reporting arguments.
package script

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/howl-sh/howl/internal/alert"
)

// Resolver resolves parameterized configuration references in check
// arguments. The alert executor provides this.
type Resolver interface {
	ResolveLookupKey(key string) string
	ResolveLookupValue(key string) any
}

// Checker runs an external check executable. It implements alert.Checker.
type Checker struct {
	command   string
	args      []string
	timeout   time.Duration
	checksDir string
	resolver  Resolver
}

// Opts configures a script checker.
type Opts struct {
	Command   string   // file:// URI of the check executable
	Args      []string // raw arguments, possibly {{parameterized}}
	Timeout   time.Duration
	ChecksDir string
}

func New(opts Opts) *Checker {
	return &Checker{
		command:   opts.Command,
		args:      opts.Args,
		timeout:   opts.Timeout,
		checksDir: opts.ChecksDir,
	}
}

// Bind attaches the lookup resolver. Called after the owning executor is
// constructed, because the resolver is the executor itself.
func (c *Checker) Bind(r Resolver) {
	c.resolver = r
}

// Check resolves the command and its arguments, runs the executable, and
// parses stdout into a state and template arguments. Non-zero exit codes
// are not errors; the script signals health through its status line.
func (c *Checker) Check(ctx context.Context) (alert.State, []any, error) {
	path, err := resolveCommand(c.command, c.checksDir)
	if err != nil {
		return alert.StateUnknown, nil, err
	}

	stdout, err := c.run(ctx, path)
	if err != nil {
		return alert.StateUnknown, nil, err
	}

	out, err := ParseOutput(stdout)
	if err != nil {
		return alert.StateUnknown, nil, fmt.Errorf("parsing output of %s: %w", path, err)
	}

	return out.State, out.Args, nil
}

// resolveArgs maps the raw argument list through the lookup machinery:
// parameterized references are replaced with their configured values, an
// unconfigured reference becomes the empty string, literals pass through.
func (c *Checker) resolveArgs() []string {
	argv := make([]string, 0, len(c.args))
	for _, raw := range c.args {
		if c.resolver == nil {
			argv = append(argv, raw)
			continue
		}
		key := c.resolver.ResolveLookupKey(raw)
		v := c.resolver.ResolveLookupValue(key)
		if v == nil {
			argv = append(argv, "")
			continue
		}
		argv = append(argv, fmt.Sprint(v))
	}
	return argv
}

func (c *Checker) run(ctx context.Context, path string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path, c.resolveArgs()...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("check timed out after %s", c.timeout)
		}
		if _, ok := err.(*exec.ExitError); ok {
			return stdout.String(), nil
		}
		return "", fmt.Errorf("executing check: %w", err)
	}

	return stdout.String(), nil
}
