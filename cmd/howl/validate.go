package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/howl-sh/howl/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the howl configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Find(cfgFile)
		if err != nil {
			return err
		}

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		fmt.Printf("✓ %s\n", path)
		fmt.Printf("  Cluster: %s\n", cfg.Cluster)
		fmt.Printf("  Alerts: %d\n", len(cfg.Alerts))
		fmt.Printf("  Services: %d\n", len(cfg.Services))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
