package notify

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/howl-sh/howl/internal/alert"
)

// DefaultTemplate is the message used when a service does not configure
// its own.
const DefaultTemplate = `{{record.state_emoji}} {{record.state}} {{record.label}} on {{record.host}}: {{record.text}}`

// TemplateData holds everything available to notification templates.
type TemplateData struct {
	Record alert.Record
	Host   string
}

// Render executes a Go text/template string with Sprig functions plus the
// "record" accessor, so {{record.state}} reads a field of the emitted
// record.
func Render(tmplStr string, data TemplateData) (string, error) {
	funcMap := sprig.TxtFuncMap()
	funcMap["record"] = func() map[string]string { return recordMap(data) }

	t, err := template.New("notify").Funcs(funcMap).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

func recordMap(data TemplateData) map[string]string {
	rec := data.Record
	return map[string]string{
		"name":        rec.Name,
		"label":       rec.Label,
		"state":       string(rec.State),
		"state_lower": strings.ToLower(string(rec.State)),
		"state_emoji": stateEmoji(rec.State),
		"text":        rec.Text,
		"cluster":     rec.Cluster,
		"service":     rec.Service,
		"component":   rec.Component,
		"host":        data.Host,
	}
}

func stateEmoji(state alert.State) string {
	switch state {
	case alert.StateCritical:
		return "\U0001f534" // 🔴
	case alert.StateWarning:
		return "\U0001f7e1" // 🟡
	case alert.StateOK:
		return "\U0001f7e2" // 🟢
	default:
		return "❓" // ❓
	}
}
