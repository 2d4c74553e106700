package main

import (
	"os"

	"potarig/internal/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	simulateRig bool
)

var rootCmd = &cobra.Command{
	Use:          "potarig",
	Short:        "POTA spot viewer with flrig tuning and ADIF contact logging",
	SilenceUsage: true,
	RunE:         func(cmd *cobra.Command, args []string) error { return serve() },
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default configs/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&simulateRig, "simulate-rig", false, "use the built-in rig simulator instead of flrig")
	rootCmd.AddCommand(serveCmd, spotsCmd, tuneCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if simulateRig {
		cfg.Flrig.Simulate = true
	}
	return cfg, nil
}
