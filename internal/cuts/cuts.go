// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cuts implements the boolean selection predicates applied to
// interaction candidates and their final-state particles. Every
// predicate is a pure function over the record model: it reads the
// candidate and returns a verdict, with no side effects and no error
// conditions. A candidate with no particles yields zero counts and
// false predicates.
package cuts

import (
	"fmt"
	"math"

	"github.com/pdiddy/numusel/pkg/types"
)

// Kinetic-energy thresholds (MeV) for final-state signal particles.
// The muon threshold corresponds to a 50 cm track length.
const (
	muonKEMin   = 143.425
	protonKEMin = 50
	otherKEMin  = 25
)

// In-time flash windows (us) for the two beams.
const (
	flashWindowBNB  = 1.6
	flashWindowNuMI = 9.6
)

// Dead-region box near the downstream face, excluded from the fiducial
// volume.
const (
	deadRegionXMin = 210.215
	deadRegionYMin = 60.0
	deadRegionZMin = 290.0
	deadRegionZMax = 390.0
)

// Matched reports whether the candidate has at least one match into the
// opposite collection.
func Matched(i types.Interaction) bool { return len(i.Matches()) > 0 }

// ValidFlashMatch reports whether the candidate carries a usable flash
// match: matched to a flash, with a finite flash time.
func ValidFlashMatch(i types.Interaction) bool {
	t, ok := i.Flash()
	return ok && !math.IsNaN(t)
}

// FinalStateSignal reports whether the particle counts toward the
// interaction topology. The particle must be primary and above the
// kinetic-energy threshold for its species; species outside the
// reconstructed classes never pass.
func FinalStateSignal(p types.FinalState) bool {
	if !p.Primary() {
		return false
	}
	e := p.KE()
	switch s := p.Species(); {
	case s == types.Muon:
		return e > muonKEMin
	case s == types.Proton:
		return e > protonKEMin
	case s >= types.Photon && s < types.Proton:
		return e > otherKEMin
	default:
		return false
	}
}

// Counts holds the number of signal primaries per species, indexed by
// the species code.
type Counts [types.NumSpecies]int

// Topology renders the counts in canonical form, e.g. "0ph0e1mu0pi1p".
func (c Counts) Topology() string {
	return fmt.Sprintf("%dph%de%dmu%dpi%dp",
		c[types.Photon], c[types.Electron], c[types.Muon], c[types.Pion], c[types.Proton])
}

// CountPrimaries tallies the final-state signal particles of the
// candidate per species.
func CountPrimaries(i types.Interaction) Counts {
	var c Counts
	for _, p := range i.FinalStates() {
		if FinalStateSignal(p) {
			c[p.Species()]++
		}
	}
	return c
}

// Topology returns the canonical topology string of the candidate.
func Topology(i types.Interaction) string {
	return CountPrimaries(i).Topology()
}

// Topological1muNp reports whether the candidate has exactly one signal
// muon, at least one signal proton, and nothing else.
func Topological1muNp(i types.Interaction) bool {
	c := CountPrimaries(i)
	return c[types.Photon] == 0 && c[types.Electron] == 0 &&
		c[types.Muon] == 1 && c[types.Pion] == 0 && c[types.Proton] >= 1
}

// FiducialCut reports whether the vertex is inside the fiducial volume
// and outside the dead-region box.
func FiducialCut(i types.Interaction) bool {
	v := i.Vtx()
	inDeadRegion := v.X > deadRegionXMin && v.Y > deadRegionYMin &&
		v.Z > deadRegionZMin && v.Z < deadRegionZMax
	return i.Fiducial() && !inDeadRegion
}

// ContainmentCut reports whether all trajectories of the candidate stay
// inside the active volume.
func ContainmentCut(i types.Interaction) bool { return i.Contained() }

// FlashCutBNB reports whether the candidate is matched to a flash
// inside the BNB beam window.
func FlashCutBNB(i types.Interaction) bool { return flashCut(i, flashWindowBNB) }

// FlashCutNuMI reports whether the candidate is matched to a flash
// inside the NuMI beam window.
func FlashCutNuMI(i types.Interaction) bool { return flashCut(i, flashWindowNuMI) }

func flashCut(i types.Interaction, window float64) bool {
	if !ValidFlashMatch(i) {
		return false
	}
	t, _ := i.Flash()
	return t >= 0 && t <= window
}

// All1muNp is the full selection: 1muNp topology, fiducial vertex,
// containment, and an in-time NuMI flash.
func All1muNp(i types.Interaction) bool {
	return Topological1muNp(i) && FiducialCut(i) && ContainmentCut(i) && FlashCutNuMI(i)
}

// Neutrino reports whether the candidate is matched to a simulated
// neutrino.
func Neutrino(i types.Interaction) bool { return i.NeutrinoID() > -1 }

// Cosmic reports whether the candidate is a cosmic.
func Cosmic(i types.Interaction) bool { return i.NeutrinoID() == -1 }

// MatchedNeutrino reports whether the candidate is a matched neutrino.
func MatchedNeutrino(i types.Interaction) bool { return Matched(i) && Neutrino(i) }

// MatchedCosmic reports whether the candidate is a matched cosmic.
func MatchedCosmic(i types.Interaction) bool { return Matched(i) && Cosmic(i) }

// Signal1muNp reports whether the candidate is a neutrino with 1muNp
// topology.
func Signal1muNp(i types.Interaction) bool {
	return Topological1muNp(i) && Neutrino(i)
}

// OtherNu1muNp reports whether the candidate is a neutrino without
// 1muNp topology.
func OtherNu1muNp(i types.Interaction) bool {
	return !Topological1muNp(i) && Neutrino(i)
}
