// Package agent wires configuration into runnable alert executors.
package agent

import (
	"log/slog"
	"sort"

	"github.com/howl-sh/howl/internal/alert"
	"github.com/howl-sh/howl/internal/config"
	"github.com/howl-sh/howl/internal/notify"
	"github.com/howl-sh/howl/internal/script"
)

// Entry pairs an alert name with its ready-to-run executor.
type Entry struct {
	Name string
	Exec *alert.Executor
}

// Build constructs one executor per alert definition, each backed by a
// script checker and attached to the given sink, the value table, and the
// cluster identity from the config.
func Build(cfg *config.Config, sink alert.Sink, logger *slog.Logger) []Entry {
	entries := make([]Entry, 0, len(cfg.Alerts))
	for i := range cfg.Alerts {
		def := &cfg.Alerts[i]

		chk := script.New(script.Opts{
			Command:   def.Command,
			Args:      def.Args,
			Timeout:   def.TimeoutDuration(),
			ChecksDir: cfg.Options.ChecksDir,
		})

		exec := alert.New(def.Meta(), def.SourceMeta(), chk, logger.With("alert", def.Name))
		chk.Bind(exec)
		exec.AttachRuntime(sink, cfg.Values)
		exec.SetCluster(cfg.Cluster, cfg.Hostname)

		entries = append(entries, Entry{Name: def.Name, Exec: exec})
	}
	return entries
}

// Services maps the configured notification services into notify targets,
// ordered by name.
func Services(cfg *config.Config) []notify.Service {
	services := make([]notify.Service, 0, len(cfg.Services))
	for name, svc := range cfg.Services {
		services = append(services, notify.Service{
			Name:     name,
			URL:      svc.URL,
			Template: svc.Template,
			Params:   svc.Params,
		})
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services
}
