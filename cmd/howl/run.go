package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/howl-sh/howl/internal/agent"
	"github.com/howl-sh/howl/internal/alert"
	"github.com/howl-sh/howl/internal/collector"
	"github.com/howl-sh/howl/internal/config"
)

var runCmd = &cobra.Command{
	Use:   "run [alert_name]",
	Short: "Run alerts once",
	Long:  "Runs a single alert by name, or all alerts if no name is given, and prints the emitted records.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := setupLogger()

		cfg, err := config.Resolve(cfgFile)
		if err != nil {
			return err
		}

		col := collector.New()
		entries := agent.Build(cfg, col, logger)

		if len(args) == 1 {
			entries = filterEntries(entries, args[0])
			if len(entries) == 0 {
				return fmt.Errorf("alert %q not found in config", args[0])
			}
		}

		ctx := context.Background()
		for _, e := range entries {
			e.Exec.Execute(ctx)
		}

		hasBad := false
		for _, rec := range col.Drain() {
			printRecord(rec)
			if rec.State != alert.StateOK {
				hasBad = true
			}
		}

		if hasBad {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func filterEntries(entries []agent.Entry, name string) []agent.Entry {
	var out []agent.Entry
	for _, e := range entries {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

var stateStyles = map[alert.State]lipgloss.Style{
	alert.StateOK:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	alert.StateWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	alert.StateCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	alert.StateUnknown:  lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
}

func renderState(st alert.State) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return string(st)
	}
	if style, ok := stateStyles[st]; ok {
		return style.Render(string(st))
	}
	return string(st)
}

func printRecord(rec alert.Record) {
	fmt.Printf("%s  %s\n", renderState(rec.State), rec.Name)
	fmt.Printf("  Text: %s\n", rec.Text)
	if rec.Service != "" || rec.Component != "" {
		fmt.Printf("  Source: %s/%s\n", rec.Service, rec.Component)
	}
	if rec.Cluster != "" {
		fmt.Printf("  Cluster: %s\n", rec.Cluster)
	}
}
