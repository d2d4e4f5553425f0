// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the spill record model shared by the selection
// stages: truth and reconstructed interaction candidates, their
// final-state particles, and the configuration structs for the CLI.
//
// The truth and reco variants are two explicit schemas. Code that is
// indifferent to the variant consumes the Interaction and FinalState
// accessor interfaces; the only behavioral difference between the
// variants is which energy field KE resolves to.
package types

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Species codes for final-state particles.
const (
	Photon   = 0
	Electron = 1
	Muon     = 2
	Pion     = 3
	Proton   = 4

	// NumSpecies is the number of particle classes the reconstruction
	// distinguishes.
	NumSpecies = 5
)

// FinalState is the variant-independent view of one final-state
// particle within an interaction candidate.
type FinalState interface {
	// Species returns the particle class code (0-4).
	Species() int

	// Primary reports whether the particle is attributed directly to
	// the interaction vertex.
	Primary() bool

	// KE returns the kinetic energy used for selection thresholds and
	// energy sums. Truth particles use deposited energy; reco particles
	// use calorimetric energy for showers (photon, electron) and CSDA
	// range energy for tracks (muon, pion, proton).
	KE() float64

	// Mom returns the 3-momentum.
	Mom() r3.Vec

	// Start returns the start point of the particle trajectory.
	Start() r3.Vec

	// Dir returns the unit direction at the start point.
	Dir() r3.Vec

	// Score returns the classifier confidence for the given species,
	// or NaN if the score vector does not cover it.
	Score(species int) float64
}

// Interaction is the variant-independent view of one interaction
// candidate.
type Interaction interface {
	// Ident returns the candidate id, unique within its collection for
	// one spill.
	Ident() int64

	// NeutrinoID returns the matched simulated neutrino id, or -1 for
	// cosmic candidates.
	NeutrinoID() int64

	// Current returns the current type (0 charged, 1 neutral).
	Current() int

	// PDG returns the incident neutrino PDG code.
	PDG() int

	// Mode returns the generator process category.
	Mode() int

	// Vtx returns the interaction vertex position.
	Vtx() r3.Vec

	// Fiducial reports whether the vertex is inside the fiducial volume.
	Fiducial() bool

	// Contained reports whether all trajectories stay inside the active
	// volume.
	Contained() bool

	// Flash returns the matched flash time and whether a flash match
	// exists.
	Flash() (time float64, matched bool)

	// Matches returns the ordered ids of matched candidates in the
	// opposite collection. Empty means unmatched; consumers only ever
	// use the first entry.
	Matches() []int64

	// FinalStates returns the particle records of the candidate.
	FinalStates() []FinalState
}

// TruthParticle is one simulated final-state particle.
type TruthParticle struct {
	ID            int64     `json:"id" yaml:"id"`
	PID           int       `json:"pid" yaml:"pid"`
	IsPrimary     bool      `json:"is_primary" yaml:"is_primary"`
	EnergyDeposit float64   `json:"energy_deposit" yaml:"energy_deposit"`
	Momentum      r3.Vec    `json:"momentum" yaml:"momentum"`
	StartPoint    r3.Vec    `json:"start_point" yaml:"start_point"`
	StartDir      r3.Vec    `json:"start_dir" yaml:"start_dir"`
	PIDScores     []float64 `json:"pid_scores" yaml:"pid_scores"`
}

func (p *TruthParticle) Species() int { return p.PID }
func (p *TruthParticle) Primary() bool { return p.IsPrimary }
func (p *TruthParticle) KE() float64 { return p.EnergyDeposit }
func (p *TruthParticle) Mom() r3.Vec { return p.Momentum }
func (p *TruthParticle) Start() r3.Vec { return p.StartPoint }
func (p *TruthParticle) Dir() r3.Vec { return p.StartDir }

func (p *TruthParticle) Score(species int) float64 {
	return score(p.PIDScores, species)
}

// RecoParticle is one reconstructed final-state particle.
type RecoParticle struct {
	ID         int64     `json:"id" yaml:"id"`
	PID        int       `json:"pid" yaml:"pid"`
	IsPrimary  bool      `json:"is_primary" yaml:"is_primary"`
	CaloKE     float64   `json:"calo_ke" yaml:"calo_ke"`
	CSDAKE     float64   `json:"csda_ke" yaml:"csda_ke"`
	Momentum   r3.Vec    `json:"momentum" yaml:"momentum"`
	StartPoint r3.Vec    `json:"start_point" yaml:"start_point"`
	StartDir   r3.Vec    `json:"start_dir" yaml:"start_dir"`
	PIDScores  []float64 `json:"pid_scores" yaml:"pid_scores"`
}

func (p *RecoParticle) Species() int { return p.PID }
func (p *RecoParticle) Primary() bool { return p.IsPrimary }

// KE selects the reconstruction-appropriate energy: calorimetric for
// showers, CSDA range energy for tracks.
func (p *RecoParticle) KE() float64 {
	if p.PID > Electron {
		return p.CSDAKE
	}
	return p.CaloKE
}

func (p *RecoParticle) Mom() r3.Vec { return p.Momentum }
func (p *RecoParticle) Start() r3.Vec { return p.StartPoint }
func (p *RecoParticle) Dir() r3.Vec { return p.StartDir }

func (p *RecoParticle) Score(species int) float64 {
	return score(p.PIDScores, species)
}

func score(scores []float64, species int) float64 {
	if species < 0 || species >= len(scores) {
		return math.NaN()
	}
	return scores[species]
}

// TruthInteraction is one simulated interaction candidate.
// TruthParticles runs parallel to Particles and carries the generator
// truth attributes for the same final states.
type TruthInteraction struct {
	ID              int64           `json:"id" yaml:"id"`
	NuID            int64           `json:"nu_id" yaml:"nu_id"`
	CurrentType     int             `json:"current_type" yaml:"current_type"`
	PDGCode         int             `json:"pdg_code" yaml:"pdg_code"`
	InteractionMode int             `json:"interaction_mode" yaml:"interaction_mode"`
	Vertex          r3.Vec          `json:"vertex" yaml:"vertex"`
	IsFiducial      bool            `json:"is_fiducial" yaml:"is_fiducial"`
	IsContained     bool            `json:"is_contained" yaml:"is_contained"`
	FlashTime       float64         `json:"flash_time" yaml:"flash_time"`
	IsFlashMatched  bool            `json:"is_flash_matched" yaml:"is_flash_matched"`
	MatchIDs        []int64         `json:"match_ids" yaml:"match_ids"`
	Particles       []TruthParticle `json:"particles" yaml:"particles"`
	TruthParticles  []TruthParticle `json:"truth_particles" yaml:"truth_particles"`
}

func (i *TruthInteraction) Ident() int64 { return i.ID }
func (i *TruthInteraction) NeutrinoID() int64 { return i.NuID }
func (i *TruthInteraction) Current() int { return i.CurrentType }
func (i *TruthInteraction) PDG() int { return i.PDGCode }
func (i *TruthInteraction) Mode() int { return i.InteractionMode }
func (i *TruthInteraction) Vtx() r3.Vec { return i.Vertex }
func (i *TruthInteraction) Fiducial() bool { return i.IsFiducial }
func (i *TruthInteraction) Contained() bool { return i.IsContained }
func (i *TruthInteraction) Flash() (float64, bool) { return i.FlashTime, i.IsFlashMatched }
func (i *TruthInteraction) Matches() []int64 { return i.MatchIDs }

func (i *TruthInteraction) FinalStates() []FinalState {
	out := make([]FinalState, len(i.Particles))
	for k := range i.Particles {
		out[k] = &i.Particles[k]
	}
	return out
}

// RecoInteraction is one reconstructed interaction candidate.
type RecoInteraction struct {
	ID              int64          `json:"id" yaml:"id"`
	NuID            int64          `json:"nu_id" yaml:"nu_id"`
	CurrentType     int            `json:"current_type" yaml:"current_type"`
	PDGCode         int            `json:"pdg_code" yaml:"pdg_code"`
	InteractionMode int            `json:"interaction_mode" yaml:"interaction_mode"`
	Vertex          r3.Vec         `json:"vertex" yaml:"vertex"`
	IsFiducial      bool           `json:"is_fiducial" yaml:"is_fiducial"`
	IsContained     bool           `json:"is_contained" yaml:"is_contained"`
	FlashTime       float64        `json:"flash_time" yaml:"flash_time"`
	IsFlashMatched  bool           `json:"is_flash_matched" yaml:"is_flash_matched"`
	MatchIDs        []int64        `json:"match_ids" yaml:"match_ids"`
	Particles       []RecoParticle `json:"particles" yaml:"particles"`
}

func (i *RecoInteraction) Ident() int64 { return i.ID }
func (i *RecoInteraction) NeutrinoID() int64 { return i.NuID }
func (i *RecoInteraction) Current() int { return i.CurrentType }
func (i *RecoInteraction) PDG() int { return i.PDGCode }
func (i *RecoInteraction) Mode() int { return i.InteractionMode }
func (i *RecoInteraction) Vtx() r3.Vec { return i.Vertex }
func (i *RecoInteraction) Fiducial() bool { return i.IsFiducial }
func (i *RecoInteraction) Contained() bool { return i.IsContained }
func (i *RecoInteraction) Flash() (float64, bool) { return i.FlashTime, i.IsFlashMatched }
func (i *RecoInteraction) Matches() []int64 { return i.MatchIDs }

func (i *RecoInteraction) FinalStates() []FinalState {
	out := make([]FinalState, len(i.Particles))
	for k := range i.Particles {
		out[k] = &i.Particles[k]
	}
	return out
}

// TriggerInfo carries the trigger timing of one spill.
type TriggerInfo struct {
	// GlobalTriggerTime is the global trigger detector time.
	GlobalTriggerTime float64 `json:"global_trigger_det_time" yaml:"global_trigger_det_time"`
}

// Header identifies one spill within the dataset.
type Header struct {
	Run        int64       `json:"run" yaml:"run"`
	Event      int64       `json:"evt" yaml:"evt"`
	Subrun     int64       `json:"subrun" yaml:"subrun"`
	SourceName string      `json:"sourceName" yaml:"sourceName"`
	Trigger    TriggerInfo `json:"triggerinfo" yaml:"triggerinfo"`
}

// Spill is the unit of iteration: one header plus the truth and
// reconstructed interaction collections. The selection core only reads
// spills; it never mutates or retains them.
type Spill struct {
	Header            Header             `json:"hdr" yaml:"hdr"`
	TruthInteractions []TruthInteraction `json:"dlp_true" yaml:"dlp_true"`
	RecoInteractions  []RecoInteraction  `json:"dlp" yaml:"dlp"`
}
