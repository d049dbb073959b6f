// Package alert holds the execution contract every alert check satisfies:
// a check-specific hook produces a (state, arguments) pair, and the
// Executor turns that into a normalized record delivered to a sink, no
// matter how the hook misbehaves.
package alert

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"runtime/debug"
	"slices"
	"strings"
)

// Meta holds per-alert metadata (name, label, service, componentName,
// interval). Keys may be absent; lookups never panic.
type Meta map[string]any

// SourceMeta holds the alert source definition, most importantly the
// "reporting" sub-table keyed by lowercase state name.
type SourceMeta map[string]any

// Record is the normalized outcome of one execution. It is immutable once
// handed to a sink.
type Record struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	State     State  `json:"state"`
	Text      string `json:"text"`
	Cluster   string `json:"cluster"`
	Service   string `json:"service"`
	Component string `json:"component"`
}

// Sink receives normalized records. Delivery guarantees are the sink's
// concern, not the executor's.
type Sink interface {
	Put(cluster string, rec Record)
}

// Checker is the hook each concrete alert variant implements. It returns
// the health state and the ordered arguments for the state's reporting
// template, or an error when the check itself could not run.
type Checker interface {
	Check(ctx context.Context) (State, []any, error)
}

// defaultText is the reporting template used when no configured template
// applies. Its single argument is the failure description.
const defaultText = "Unknown {0}"

var lookupPattern = regexp.MustCompile(`\{\{(\S+)\}\}`)

// Executor runs one alert check and guarantees a well-formed Record is
// emitted regardless of what the check logic does. It is not safe for
// concurrent Execute calls on the same instance; the scheduler keeps at
// most one in flight.
type Executor struct {
	meta    Meta
	source  SourceMeta
	checker Checker
	logger  *slog.Logger

	cluster  string
	hostname string

	sink   Sink
	values map[string]any

	lookupKeys []string
}

// New configures an executor with its metadata tables and the concrete
// check hook. A nil Checker is a programmer error and panics immediately
// rather than surfacing as a runtime condition.
func New(meta Meta, source SourceMeta, checker Checker, logger *slog.Logger) *Executor {
	if checker == nil {
		panic("alert: Executor requires a Checker implementation")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		meta:    meta,
		source:  source,
		checker: checker,
		logger:  logger,
	}
}

// AttachRuntime injects the result sink and the configuration value table.
// These arrive after construction because runtime context (which cluster,
// which host) is only established once the agent has registered.
func (e *Executor) AttachRuntime(sink Sink, values map[string]any) {
	e.sink = sink
	e.values = values
}

// SetCluster records the cluster and host identifiers used to tag emitted
// records.
func (e *Executor) SetCluster(cluster, host string) {
	e.cluster = cluster
	e.hostname = host
}

// Interval returns the configured run interval in minutes, never below 1.
// A missing or malformed interval defaults to 1 so a bad definition cannot
// hand the scheduler a zero or negative period.
func (e *Executor) Interval() int {
	v, ok := e.meta["interval"]
	if !ok {
		return 1
	}
	n := 1
	switch i := v.(type) {
	case int:
		n = i
	case int64:
		n = int(i)
	case uint64:
		n = int(i)
	case float64:
		n = int(i)
	default:
		return 1
	}
	if n < 1 {
		return 1
	}
	return n
}

// Execute runs the check once and submits exactly one Record to the sink.
// It never returns an error and never panics: hook failures, hook panics,
// missing reporting templates, and argument mismatches all degrade to an
// UNKNOWN record carrying the failure text.
func (e *Executor) Execute(ctx context.Context) {
	state, args := StateUnknown, []any{}
	text := defaultText

	st, a, err := e.runCheck(ctx)
	if err == nil {
		state, args = st, a
		text, err = e.reportingText(st)
	}
	if err != nil {
		e.logger.Error("check failed", "alert", e.findValue("name"), "error", err)
		state, args, text = StateUnknown, []any{err.Error()}, defaultText
	}

	formatted, ferr := FormatPositional(text, args)
	if ferr != nil {
		e.logger.Warn("reporting text mismatch", "alert", e.findValue("name"), "error", ferr)
		formatted, _ = FormatPositional(defaultText, []any{ferr.Error()})
	}

	rec := Record{
		Name:      e.findValue("name"),
		Label:     e.findValue("label"),
		State:     state,
		Text:      formatted,
		Cluster:   e.cluster,
		Service:   e.findValue("service"),
		Component: e.findValue("componentName"),
	}

	if e.sink == nil {
		e.logger.Error("no sink attached, dropping record", "alert", rec.Name, "state", rec.State)
		return
	}
	e.sink.Put(e.cluster, rec)
}

// runCheck invokes the hook, converting a panic into an ordinary error so
// a broken check implementation cannot take down the scheduler.
func (e *Executor) runCheck(ctx context.Context) (state State, args []any, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("check panicked",
				"alert", e.findValue("name"), "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("check panicked: %v", r)
		}
	}()
	return e.checker.Check(ctx)
}

// reportingText finds the configured template for a state. The reporting
// table is keyed by lowercase state name.
func (e *Executor) reportingText(state State) (string, error) {
	rep, ok := e.source["reporting"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("alert %q has no reporting section", e.findValue("name"))
	}
	entry, ok := rep[strings.ToLower(string(state))].(map[string]any)
	if !ok {
		return "", fmt.Errorf("no reporting entry for state %s", state)
	}
	text, ok := entry["text"].(string)
	if !ok {
		return "", fmt.Errorf("reporting entry for state %s has no text", state)
	}
	return text, nil
}

// findValue reads a metadata key for record output. Absent keys yield the
// empty string, never an error.
func (e *Executor) findValue(key string) string {
	v, ok := e.meta[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// ResolveLookupKey checks whether a raw configuration key is parameterized
// ({{path.to.value}}). If so, the inner path is registered as a lookup key
// (once; re-resolving the same key does not duplicate it) and returned as
// the canonical key. Keys without the pattern are literals and come back
// unchanged. Only the first token in a key is extracted.
func (e *Executor) ResolveLookupKey(key string) string {
	m := lookupPattern.FindStringSubmatch(key)
	if m == nil {
		return key
	}
	inner := m[1]
	if !slices.Contains(e.lookupKeys, inner) {
		e.logger.Debug("found parameterized key", "alert", e.findValue("name"), "key", inner)
		e.lookupKeys = append(e.lookupKeys, inner)
	}
	return inner
}

// ResolveLookupValue resolves a key against the injected configuration
// value table. Keys never registered via ResolveLookupKey are literals and
// come back unchanged; registered keys absent from the table yield nil.
func (e *Executor) ResolveLookupValue(key string) any {
	if !slices.Contains(e.lookupKeys, key) {
		return key
	}
	if v, ok := e.values[key]; ok {
		return v
	}
	return nil
}

// LookupKeys returns a snapshot of the parameterized keys seen so far. The
// set accumulates for the lifetime of the executor instance.
func (e *Executor) LookupKeys() []string {
	return slices.Clone(e.lookupKeys)
}
