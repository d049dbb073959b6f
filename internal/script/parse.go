package script

import (
	"fmt"
	"strings"

	"github.com/howl-sh/howl/internal/alert"
)

// Output holds the parsed result of a check script run.
type Output struct {
	State  alert.State
	Args   []any             // reporting-template arguments, in stdout order
	Fields map[string]string // all parsed pairs, status included
}

// ParseOutput parses KEY=VALUE lines from check stdout. Lines without '='
// are ignored. The "status" key is required and names the health state;
// every other value becomes a positional template argument in the order it
// appeared.
func ParseOutput(stdout string) (*Output, error) {
	out := &Output{
		Fields: make(map[string]string),
	}

	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}

		out.Fields[key] = value
		if key != "status" {
			out.Args = append(out.Args, value)
		}
	}

	status, ok := out.Fields["status"]
	if !ok {
		return nil, fmt.Errorf("check output missing required 'status' key")
	}
	out.State = alert.ParseState(status)

	return out, nil
}
