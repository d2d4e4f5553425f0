// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plotting builds comparison histograms from tabulated
// selection rows: true against reconstructed visible energy for the
// selected sample.
package plotting

import (
	"bufio"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"
)

// Row indices in the full selection rows. A row is tag, run, event,
// subrun, source, nu id, truth id, reco id, trigger time, three
// category columns, truth energy, reco energy, selection flag.
const (
	tagIndex         = 0
	truthEnergyIndex = 12
	recoEnergyIndex  = 13
	numRowFields     = 15
)

// Hists holds the paired visible-energy histograms of one sample.
type Hists struct {
	Truth *hbook.H1D
	Reco  *hbook.H1D
}

// EnergyHist fills visible-energy histograms from the tabulated rows in
// path. Diagnostic rows and rows with non-finite energies are skipped.
func EnergyHist(path string, bins int, min, max float64) (Hists, error) {
	f, err := os.Open(path)
	if err != nil {
		return Hists{}, fmt.Errorf("opening tabulated rows: %w", err)
	}
	defer f.Close()

	h := Hists{
		Truth: hbook.NewH1D(bins, min, max),
		Reco:  hbook.NewH1D(bins, min, max),
	}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Split(sc.Text(), ",")
		if len(fields) < numRowFields || fields[tagIndex] == "UNMATCHED" {
			continue
		}
		truth, err := strconv.ParseFloat(fields[truthEnergyIndex], 64)
		if err != nil {
			continue
		}
		reco, err := strconv.ParseFloat(fields[recoEnergyIndex], 64)
		if err != nil {
			continue
		}
		if math.IsNaN(truth) || math.IsNaN(reco) {
			continue
		}
		h.Truth.Fill(truth, 1)
		h.Reco.Fill(reco, 1)
	}
	if err := sc.Err(); err != nil {
		return Hists{}, fmt.Errorf("reading tabulated rows: %w", err)
	}
	return h, nil
}

// Render draws the histogram pair to out (format from the extension).
func Render(h Hists, title, out string) error {
	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = "Visible energy (MeV)"
	p.Y.Label.Text = "Candidates"

	for _, entry := range []struct {
		hist  *hbook.H1D
		label string
		color color.RGBA
	}{
		{h.Truth, "True", color.RGBA{A: 255}},
		{h.Reco, "Reconstructed", color.RGBA{B: 255, A: 255}},
	} {
		line := hplot.NewH1D(entry.hist)
		line.FillColor = nil
		line.LineStyle.Color = entry.color
		line.Infos.Style = hplot.HInfoNone
		p.Add(line)
		p.Legend.Add(entry.label, line)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, out); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
