// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/numusel/internal/plotting"
	"github.com/pdiddy/numusel/pkg/types"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render visible-energy histograms from tabulated rows",
	Long: `Plot reads the tabulated selection rows produced by process and renders
true against reconstructed visible energy for the selected sample. The
output format follows the file extension (.png, .pdf, .svg).`,
	RunE: runPlot,
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg := plotConfig(cmd)

	h, err := plotting.EnergyHist(cfg.Input, cfg.Bins, cfg.Min, cfg.Max)
	if err != nil {
		return err
	}
	return plotting.Render(h, cfg.Title, cfg.Output)
}

func plotConfig(cmd *cobra.Command) types.PlotConfig {
	bins, _ := cmd.Flags().GetInt("bins")
	min, _ := cmd.Flags().GetFloat64("min")
	max, _ := cmd.Flags().GetFloat64("max")
	return types.PlotConfig{
		Input:  setting(cmd, "input", "plot.input"),
		Output: setting(cmd, "output", "plot.output"),
		Title:  setting(cmd, "title", "plot.title"),
		Bins:   bins,
		Min:    min,
		Max:    max,
	}
}

func init() {
	plotCmd.Flags().String("input", "output_mc.log", "tabulated row input file")
	plotCmd.Flags().String("output", "energy.png", "histogram output file")
	plotCmd.Flags().String("title", "Selected 1muNp candidates", "plot title")
	plotCmd.Flags().Int("bins", 50, "number of histogram bins")
	plotCmd.Flags().Float64("min", 0, "histogram lower edge (MeV)")
	plotCmd.Flags().Float64("max", 3000, "histogram upper edge (MeV)")

	rootCmd.AddCommand(plotCmd)
}
