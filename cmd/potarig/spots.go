package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"potarig/internal/band"
	"potarig/internal/models"
	"potarig/internal/service"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var spotsFlags struct {
	band, mode, program, sortBy string
	excludeQRT                  bool
}

var spotsCmd = &cobra.Command{
	Use:   "spots",
	Short: "Print the latest spots through the saved filter",
	Long: "Print the latest spot per activator, filtered and sorted by the saved filter.\n" +
		"Flags override the saved filter for this run only.",
	Args: cobra.NoArgs,
	RunE: runSpots,
}

func init() {
	f := spotsCmd.Flags()
	f.StringVar(&spotsFlags.band, "band", "", "band, e.g. 40M or ALL")
	f.StringVar(&spotsFlags.mode, "mode", "", "mode, e.g. CW or ALL")
	f.StringVar(&spotsFlags.program, "program", "", "program prefix, e.g. US or ALL")
	f.StringVar(&spotsFlags.sortBy, "sort", "", "sort key: activator, frequency, mode, location, time")
	f.BoolVar(&spotsFlags.excludeQRT, "exclude-qrt", false, "hide activators that went QRT")
}

func runSpots(cmd *cobra.Command, _ []string) error {
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
	criteria := a.services.Filters.Get(ctx)
	if cmd.Flags().Changed("band") {
		criteria.Band = strings.ToUpper(spotsFlags.band)
	}
	if cmd.Flags().Changed("mode") {
		criteria.Mode = strings.ToUpper(spotsFlags.mode)
	}
	if cmd.Flags().Changed("program") {
		criteria.Program = strings.ToUpper(spotsFlags.program)
	}
	if cmd.Flags().Changed("sort") {
		criteria.SortBy = spotsFlags.sortBy
	}
	if cmd.Flags().Changed("exclude-qrt") {
		criteria.ExcludeTerminated = spotsFlags.excludeQRT
	}

	spots := service.Filter(a.services.FetchLatest(ctx), criteria)
	return printSpots(cmd.OutOrStdout(), spots, time.Now())
}

func printSpots(out io.Writer, spots []models.Spot, now time.Time) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTIVATOR\tFREQUENCY\tBAND\tMODE\tREFERENCE\tPARK\tLOCATION\tSPOTTED\tCOMMENTS")
	for _, sp := range spots {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			sp.Activator,
			humanize.SIWithDigits(sp.FrequencyKHz*1000, 4, "Hz"),
			band.Classify(sp.FrequencyKHz),
			sp.Mode,
			sp.Reference,
			sp.Name,
			sp.LocationDesc,
			humanize.RelTime(time.Unix(sp.SpotTime, 0), now, "ago", "from now"),
			sp.Comments,
		)
	}
	fmt.Fprintf(tw, "\n%d spots\n", len(spots))
	return tw.Flush()
}
