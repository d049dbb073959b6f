package notify

import (
	"log/slog"

	"github.com/howl-sh/howl/internal/alert"
)

// Notifier is a result sink that forwards non-OK records to every
// configured service. Render and send failures are logged and swallowed;
// a sink must never fail the executor that feeds it.
type Notifier struct {
	services []Service
	host     string
	logger   *slog.Logger
	send     func(Service, string) error
}

func NewNotifier(services []Service, host string, logger *slog.Logger) *Notifier {
	return &Notifier{
		services: services,
		host:     host,
		logger:   logger,
		send:     Send,
	}
}

// Put implements alert.Sink. OK records are suppressed; only warning,
// critical, and unknown states notify.
func (n *Notifier) Put(cluster string, rec alert.Record) {
	if rec.State == alert.StateOK {
		return
	}

	data := TemplateData{Record: rec, Host: n.host}
	for _, svc := range n.services {
		tmplStr := svc.Template
		if tmplStr == "" {
			tmplStr = DefaultTemplate
		}

		msg, err := Render(tmplStr, data)
		if err != nil {
			n.logger.Error("rendering notification failed",
				"service", svc.Name, "alert", rec.Name, "error", err)
			continue
		}

		if err := n.send(svc, msg); err != nil {
			n.logger.Error("sending notification failed",
				"service", svc.Name, "alert", rec.Name, "error", err)
			continue
		}
		n.logger.Info("notification sent",
			"service", svc.Name, "alert", rec.Name, "state", rec.State)
	}
}
