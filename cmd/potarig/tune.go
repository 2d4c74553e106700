package main

import (
	"fmt"
	"io"

	"potarig/internal/service"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var tuneCmd = &cobra.Command{
	Use:     "tune <mode> <freqKHz>",
	Short:   "Tune the rig once, as a click on a spot would",
	Example: "  potarig tune SSB 7200\n  potarig tune CW 14062.5 --simulate-rig",
	Args:    cobra.ExactArgs(2),
	RunE:    runTune,
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	report := a.services.Tune(ctx, args[0], args[1])
	printReport(cmd.OutOrStdout(), report)
	if report.Failed() {
		return fmt.Errorf("tune %s %s: rig command failed", args[0], args[1])
	}
	return nil
}

func printReport(out io.Writer, r service.TuneReport) {
	fmt.Fprintf(out, "requested  %s %s\n", r.RequestedMode, humanize.SIWithDigits(r.FrequencyHz, 4, "Hz"))
	fmt.Fprintf(out, "rig        %s %s\n", r.Mode, humanize.SIWithDigits(r.VFOHz, 4, "Hz"))
	if r.Corrected {
		fmt.Fprintln(out, "frequency corrected after mode change")
	}
	for _, c := range r.Commands {
		if c.OK {
			fmt.Fprintf(out, "  %-14s ok\n", c.Command)
			continue
		}
		fmt.Fprintf(out, "  %-14s %s: %s\n", c.Command, c.Kind, c.Error)
	}
}
