// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report pairs truth and reconstructed interaction candidates
// within a spill and tabulates the selection variables as CSV rows.
// Each row carries a leading tag naming why it was written: SIGNAL for
// a true 1muNp candidate, SELECTED for a reconstructed candidate
// passing the full selection, UNMATCHED for a true signal candidate
// with no reconstructed partner.
package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/pdiddy/numusel/internal/cuts"
	"github.com/pdiddy/numusel/internal/vars"
	"github.com/pdiddy/numusel/pkg/types"
)

// Row tags.
const (
	TagSignal    = "SIGNAL"
	TagSelected  = "SELECTED"
	TagUnmatched = "UNMATCHED"
)

// infSentinel replaces infinite variable values in the output, keeping
// the rows parseable downstream.
const infSentinel = -9999

// Summary aggregates the per-spill tallies of a processing run.
type Summary struct {
	Spills     int    `json:"spills" yaml:"spills"`
	Signal     int    `json:"signal" yaml:"signal"`
	Selected   int    `json:"selected" yaml:"selected"`
	Unmatched  int    `json:"unmatched" yaml:"unmatched"`
	ByCategory [4]int `json:"by_category" yaml:"by_category"`
}

// Reporter writes selection rows for the spills it is fed and keeps a
// running summary. Not safe for concurrent use.
type Reporter struct {
	f   *os.File
	w   *bufio.Writer
	log io.Writer
	sum Summary
}

// New creates the output file at path, truncating any previous run.
// With appendRows, rows from a previous run are kept so a resumed run
// can continue the file. Diagnostics about malformed records go to log.
func New(path string, appendRows bool, log io.Writer) (*Reporter, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendRows {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	return &Reporter{f: f, w: bufio.NewWriter(f), log: log}, nil
}

// Summary returns the tallies accumulated so far.
func (r *Reporter) Summary() Summary { return r.sum }

// Close flushes and closes the output file. Closing twice is a no-op.
func (r *Reporter) Close() error {
	if r.f == nil {
		return nil
	}
	f := r.f
	r.f = nil
	if err := r.w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flushing output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

// Process tabulates one spill. True signal candidates are written as
// SIGNAL rows (or UNMATCHED diagnostics when reconstruction lost them),
// and reconstructed candidates passing the full selection as SELECTED
// rows. The returned slice is the per-spill weight vector, a single
// unit entry.
func (r *Reporter) Process(s *types.Spill) ([]float64, error) {
	r.sum.Spills++

	recoByID := make(map[int64]*types.RecoInteraction, len(s.RecoInteractions))
	for k := range s.RecoInteractions {
		recoByID[s.RecoInteractions[k].ID] = &s.RecoInteractions[k]
	}
	truthByID := make(map[int64]*types.TruthInteraction, len(s.TruthInteractions))
	for k := range s.TruthInteractions {
		truthByID[s.TruthInteractions[k].ID] = &s.TruthInteractions[k]
	}

	for k := range s.TruthInteractions {
		ti := &s.TruthInteractions[k]
		if !cuts.Neutrino(ti) {
			continue
		}
		cat := vars.Category(ti)
		r.sum.ByCategory[cat]++
		if cat != 0 {
			continue
		}
		r.sum.Signal++
		if !cuts.Matched(ti) {
			r.sum.Unmatched++
			r.writeFileInfo(s, ti)
			continue
		}
		ri, ok := recoByID[ti.Matches()[0]]
		if !ok {
			fmt.Fprintf(r.log, "run %d event %d: truth candidate %d matches unknown reco id %d, skipping\n",
				s.Header.Run, s.Header.Event, ti.ID, ti.Matches()[0])
			continue
		}
		r.writePair(TagSignal, s, ti, ri)
	}

	for k := range s.RecoInteractions {
		ri := &s.RecoInteractions[k]
		if !cuts.All1muNp(ri) || !cuts.Matched(ri) {
			continue
		}
		ti, ok := truthByID[ri.Matches()[0]]
		if !ok {
			fmt.Fprintf(r.log, "run %d event %d: reco candidate %d matches unknown truth id %d, skipping\n",
				s.Header.Run, s.Header.Event, ri.ID, ri.Matches()[0])
			continue
		}
		r.sum.Selected++
		r.writePair(TagSelected, s, ti, ri)
	}

	if err := r.w.Flush(); err != nil {
		return nil, fmt.Errorf("flushing output: %w", err)
	}
	return []float64{1}, nil
}

// writePair emits one full selection row for a truth/reco pair. The
// category columns are always judged on the truth side.
func (r *Reporter) writePair(tag string, s *types.Spill, ti *types.TruthInteraction, ri *types.RecoInteraction) {
	r.writeRow(
		tag,
		intField(s.Header.Run),
		intField(s.Header.Event),
		intField(s.Header.Subrun),
		s.Header.SourceName,
		intField(ti.NuID),
		intField(ti.ID),
		intField(ri.ID),
		floatField(s.Header.Trigger.GlobalTriggerTime),
		intField(int64(vars.Category(ti))),
		intField(int64(vars.CategoryTopology(ti))),
		intField(int64(vars.CategoryInteractionMode(ti))),
		floatField(vars.VisibleEnergy(ti)),
		floatField(vars.VisibleEnergy(ri)),
		boolField(cuts.All1muNp(ri)),
	)
}

// writeFileInfo emits a short diagnostic row locating a true signal
// candidate that reconstruction did not match.
func (r *Reporter) writeFileInfo(s *types.Spill, ti *types.TruthInteraction) {
	p, err := vars.LeadingPrimaryP(ti)
	if err != nil {
		p = infSentinel
	}
	r.writeRow(
		TagUnmatched,
		intField(s.Header.Run),
		intField(s.Header.Event),
		intField(s.Header.Subrun),
		intField(ti.NuID),
		floatField(p),
		intField(ti.ID),
		s.Header.SourceName,
	)
}

// writeRow writes the fields with a trailing comma after every field,
// including the last.
func (r *Reporter) writeRow(fields ...string) {
	for _, f := range fields {
		r.w.WriteString(f)
		r.w.WriteByte(',')
	}
	r.w.WriteByte('\n')
}

func intField(v int64) string { return strconv.FormatInt(v, 10) }

func floatField(v float64) string {
	if math.IsInf(v, 0) {
		v = infSentinel
	}
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func boolField(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
