package notify

import (
	"testing"

	"github.com/howl-sh/howl/internal/alert"
)

func sampleData(state alert.State) TemplateData {
	return TemplateData{
		Record: alert.Record{
			Name:      "disk_check",
			Label:     "Disk Usage",
			State:     state,
			Text:      "Disk CRITICAL: 92% used",
			Cluster:   "prod",
			Service:   "HDFS",
			Component: "DATANODE",
		},
		Host: "node-1",
	}
}

func TestRender_Default(t *testing.T) {
	got, err := Render(DefaultTemplate, sampleData(alert.StateCritical))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "\U0001f534 CRITICAL Disk Usage on node-1: Disk CRITICAL: 92% used"
	if got != want {
		t.Errorf("rendered = %q, want %q", got, want)
	}
}

func TestRender_RecordAccessor(t *testing.T) {
	got, err := Render(`{{record.service}}/{{record.component}} in {{record.cluster}}`,
		sampleData(alert.StateWarning))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "HDFS/DATANODE in prod" {
		t.Errorf("rendered = %q", got)
	}
}

func TestRender_SprigFunctions(t *testing.T) {
	got, err := Render(`{{record.state_lower | upper}}`, sampleData(alert.StateWarning))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "WARNING" {
		t.Errorf("rendered = %q, want %q", got, "WARNING")
	}
}

func TestRender_StateEmoji(t *testing.T) {
	tests := []struct {
		state alert.State
		emoji string
	}{
		{alert.StateOK, "\U0001f7e2"},
		{alert.StateWarning, "\U0001f7e1"},
		{alert.StateCritical, "\U0001f534"},
		{alert.StateUnknown, "❓"},
	}
	for _, tt := range tests {
		got, err := Render(`{{record.state_emoji}}`, sampleData(tt.state))
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.state, err)
		}
		if got != tt.emoji {
			t.Errorf("state=%s: emoji = %q, want %q", tt.state, got, tt.emoji)
		}
	}
}

func TestRender_InvalidTemplate(t *testing.T) {
	if _, err := Render(`{{record.state | nonexistent}}`, sampleData(alert.StateOK)); err == nil {
		t.Fatal("expected error for invalid template function")
	}
}
