// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ProcessConfig holds settings for the process command. Cut thresholds
// and beam windows are fixed constants of the selection, not
// configuration.
type ProcessConfig struct {
	// InputDir is the directory of spill files (.json/.jsonl, one spill
	// per line).
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// Output is the CSV row file, opened once per run and shared across
	// all spills. A fresh run truncates it; a resumed run appends.
	Output string `json:"output" yaml:"output"`

	// Summary is the YAML run summary file. Empty disables the summary.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// StateDB is the SQLite bookkeeping database consulted by Resume.
	StateDB string `json:"state_db,omitempty" yaml:"state_db,omitempty"`

	// Resume skips input files already processed with an unchanged
	// modification time.
	Resume bool `json:"resume" yaml:"resume"`
}

// PlotConfig holds settings for the plot command.
type PlotConfig struct {
	// Input is the selection CSV to read pair rows from.
	Input string `json:"input" yaml:"input"`

	// Output is the PNG file to write.
	Output string `json:"output" yaml:"output"`

	// Title is the plot title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Bins is the histogram bin count (default 50).
	Bins int `json:"bins" yaml:"bins"`

	// Min and Max bound the visible-energy axis in MeV.
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}
