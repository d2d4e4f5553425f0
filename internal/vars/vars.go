// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vars implements the derived quantities computed per
// interaction candidate or per particle: category enumerations, visible
// energy, and track kinematics. Like the cuts, every variable is a pure
// function over the record model. Arithmetic edge cases (empty momentum
// groups, arccos domain violations) propagate as NaN by design;
// only the leading-particle lookups signal an explicit error.
package vars

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pdiddy/numusel/internal/cuts"
	"github.com/pdiddy/numusel/pkg/types"
)

// Particle rest masses (MeV/c^2).
const (
	ElectronMass = 0.5109989461
	MuonMass     = 105.6583745
	PionMass     = 139.57039
	ProtonMass   = 938.2720813
)

// numiBeamOrigin is the NuMI beam production point in detector
// coordinates (cm), used for the off-axis angle.
var numiBeamOrigin = r3.Vec{X: 31512.0380, Y: 3364.4912, Z: 73363.2532}

// ErrNoSuchParticle reports a leading-particle lookup for a species the
// candidate has no primary of.
var ErrNoSuchParticle = errors.New("no primary particle of requested species")

// Ident returns the candidate id within its collection.
func Ident(i types.Interaction) int64 { return i.Ident() }

// Category buckets the candidate into the coarse signal/background
// enumeration:
//
//	0: 1muNp signal, fiducial and contained
//	1: 1muNp signal, not fiducial or not contained
//	2: other neutrino
//	3: cosmic
func Category(i types.Interaction) int {
	switch {
	case cuts.Signal1muNp(i):
		if cuts.FiducialCut(i) && cuts.ContainmentCut(i) {
			return 0
		}
		return 1
	case cuts.OtherNu1muNp(i):
		return 2
	default:
		return 3
	}
}

// CategoryTopology buckets the candidate by its visible final states:
//
//	2: contained, fiducial 1muNp
//	4: other numu CC
//	5: NC
//	6: unclassified (cosmic, or no matching branch)
//	7: 1muNp failing containment or fiducial
func CategoryTopology(i types.Interaction) int {
	if i.NeutrinoID() < 0 {
		return 6
	}
	c := cuts.CountPrimaries(i)
	if c[types.Photon] == 0 && c[types.Electron] == 0 && c[types.Muon] == 1 {
		switch {
		case c[types.Pion] == 0 && c[types.Proton] == 1 && i.Contained() && i.Fiducial():
			return 2
		case c[types.Pion] == 0 && c[types.Proton] == 1:
			return 7
		case c[types.Pion] == 0 && c[types.Proton] == 0:
			return 4
		case c[types.Pion] == 0 && c[types.Proton] > 1 && i.Contained() && i.Fiducial():
			return 2
		case c[types.Pion] == 0 && c[types.Proton] > 1:
			return 7
		case c[types.Pion] == 1 && c[types.Proton] == 1:
			return 4
		case i.Current() == 0:
			return 4
		}
		return 6
	}
	if i.Current() == 0 {
		return 4
	}
	if i.Current() == 1 {
		return 5
	}
	return 6
}

// CategoryInteractionMode buckets the candidate by the generator
// process:
//
//	0: numu CC QE     1: numu CC Res   2: numu CC MEC
//	3: numu CC DIS    4: numu CC Coh   5: nu_e CC
//	6: NC             7: cosmic        8: unrecognized numu CC mode
func CategoryInteractionMode(i types.Interaction) int {
	if i.NeutrinoID() < 0 {
		return 7
	}
	if i.Current() != 0 {
		return 6
	}
	if abs(i.PDG()) != 14 {
		return 5
	}
	switch i.Mode() {
	case 0:
		return 0
	case 1:
		return 1
	case 10:
		return 2
	case 2:
		return 3
	case 3:
		return 4
	default:
		return 8
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// VisibleEnergy sums the variant kinetic energy of every primary
// particle and adds the rest mass for muons and pions.
func VisibleEnergy(i types.Interaction) float64 {
	var energy float64
	for _, p := range i.FinalStates() {
		if !p.Primary() {
			continue
		}
		energy += p.KE()
		switch p.Species() {
		case types.Muon:
			energy += MuonMass
		case types.Pion:
			energy += PionMass
		}
	}
	return energy
}

// Momentum returns the momentum magnitude of the particle.
func Momentum(p types.FinalState) float64 { return r3.Norm(p.Mom()) }

// PolarAngle returns the angle of the particle direction to the z axis.
func PolarAngle(p types.FinalState) float64 { return math.Acos(p.Dir().Z) }

// AzimuthalAngle returns the angle of the transverse projection of the
// particle direction to the x axis.
func AzimuthalAngle(p types.FinalState) float64 {
	d := p.Dir()
	return math.Acos(d.X / math.Hypot(d.X, d.Y))
}

// NuMIAngle returns the angle between the particle direction and the
// line of sight from the particle start point to the NuMI beam origin.
func NuMIAngle(p types.FinalState) float64 {
	beam := r3.Unit(r3.Sub(numiBeamOrigin, p.Start()))
	return math.Acos(r3.Dot(beam, p.Dir()))
}

// LeadingIndex returns the index (into FinalStates) of the
// highest-energy primary of the given species, and whether one exists.
func LeadingIndex(i types.Interaction, species int) (int, bool) {
	best := -1
	var bestKE float64
	for k, p := range i.FinalStates() {
		if !p.Primary() || p.Species() != species {
			continue
		}
		if best < 0 || p.KE() > bestKE {
			best, bestKE = k, p.KE()
		}
	}
	return best, best >= 0
}

func leading(i types.Interaction, species int) (types.FinalState, error) {
	k, ok := LeadingIndex(i, species)
	if !ok {
		return nil, ErrNoSuchParticle
	}
	return i.FinalStates()[k], nil
}

func leadingVar(i types.Interaction, species int, f func(types.FinalState) float64) (float64, error) {
	p, err := leading(i, species)
	if err != nil {
		return 0, err
	}
	return f(p), nil
}

// LeadingMuonKE returns the kinetic energy of the leading muon.
func LeadingMuonKE(i types.Interaction) (float64, error) {
	return leadingVar(i, types.Muon, types.FinalState.KE)
}

// LeadingProtonP returns the momentum magnitude of the leading proton.
func LeadingProtonP(i types.Interaction) (float64, error) {
	return leadingVar(i, types.Proton, Momentum)
}

// TrueLeadingProtonP returns the generator-truth momentum magnitude of
// the particle parallel to the leading proton of a truth candidate.
func TrueLeadingProtonP(i *types.TruthInteraction) (float64, error) {
	k, ok := LeadingIndex(i, types.Proton)
	if !ok || k >= len(i.TruthParticles) {
		return 0, ErrNoSuchParticle
	}
	return r3.Norm(i.TruthParticles[k].Momentum), nil
}

// LeadingPrimaryP returns the momentum magnitude of the
// highest-momentum primary of any species.
func LeadingPrimaryP(i types.Interaction) (float64, error) {
	best := -1
	var bestP float64
	for k, p := range i.FinalStates() {
		if !p.Primary() {
			continue
		}
		if m := Momentum(p); best < 0 || m > bestP {
			best, bestP = k, m
		}
	}
	if best < 0 {
		return 0, ErrNoSuchParticle
	}
	return bestP, nil
}

// ElectronPolarAngle returns the polar angle of the leading
// electron-class particle.
func ElectronPolarAngle(i types.Interaction) (float64, error) {
	return leadingVar(i, types.Electron, PolarAngle)
}

// ElectronAzimuthalAngle returns the azimuthal angle of the leading
// electron-class particle.
func ElectronAzimuthalAngle(i types.Interaction) (float64, error) {
	return leadingVar(i, types.Electron, AzimuthalAngle)
}

// ElectronNuMIAngle returns the beam angle of the leading
// electron-class particle.
func ElectronNuMIAngle(i types.Interaction) (float64, error) {
	return leadingVar(i, types.Electron, NuMIAngle)
}

// ProtonPolarAngle returns the polar angle of the leading proton.
func ProtonPolarAngle(i types.Interaction) (float64, error) {
	return leadingVar(i, types.Proton, PolarAngle)
}

// ProtonAzimuthalAngle returns the azimuthal angle of the leading
// proton.
func ProtonAzimuthalAngle(i types.Interaction) (float64, error) {
	return leadingVar(i, types.Proton, AzimuthalAngle)
}

// OpeningAngle returns the angle between the leading electron-class and
// leading proton-class particle directions.
func OpeningAngle(i types.Interaction) (float64, error) {
	e, err := leading(i, types.Electron)
	if err != nil {
		return 0, err
	}
	p, err := leading(i, types.Proton)
	if err != nil {
		return 0, err
	}
	return math.Acos(r3.Dot(e.Dir(), p.Dir())), nil
}

// ElectronSoftmax returns the electron confidence score of the leading
// electron-class particle.
func ElectronSoftmax(i types.Interaction) (float64, error) {
	p, err := leading(i, types.Electron)
	if err != nil {
		return 0, err
	}
	return p.Score(types.Electron), nil
}

// ProtonSoftmax returns the proton confidence score of the leading
// proton.
func ProtonSoftmax(i types.Interaction) (float64, error) {
	p, err := leading(i, types.Proton)
	if err != nil {
		return 0, err
	}
	return p.Score(types.Proton), nil
}

// PhiT is the transverse-momentum-balance angle between the muon group
// and the hadronic group of the signal final states. NaN when either
// group is empty.
func PhiT(i types.Interaction) float64 {
	var lx, ly, hx, hy float64
	for _, p := range i.FinalStates() {
		if !cuts.FinalStateSignal(p) {
			continue
		}
		m := p.Mom()
		switch {
		case p.Species() > types.Muon:
			hx += m.X
			hy += m.Y
		case p.Species() == types.Muon:
			lx += m.X
			ly += m.Y
		}
	}
	return math.Acos((-hx*lx - hy*ly) / (math.Hypot(hx, hy) * math.Hypot(lx, ly)))
}

// AlphaT is the transverse-momentum-balance angle between the light
// group (species up to the muon) and the full signal final state. NaN
// when a group is empty or the total transverse momentum vanishes.
func AlphaT(i types.Interaction) float64 {
	var lx, ly, px, py float64
	for _, p := range i.FinalStates() {
		if !cuts.FinalStateSignal(p) {
			continue
		}
		m := p.Mom()
		if p.Species() <= types.Muon {
			lx += m.X
			ly += m.Y
		}
		px += m.X
		py += m.Y
	}
	return math.Acos((-px*lx - py*ly) / (math.Hypot(px, py) * math.Hypot(lx, ly)))
}
