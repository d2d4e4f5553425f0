// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vars

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pdiddy/numusel/pkg/types"
)

const tol = 1e-9

func truthPrimary(pid int, deposit float64) types.TruthParticle {
	return types.TruthParticle{PID: pid, IsPrimary: true, EnergyDeposit: deposit}
}

func recoPrimary(pid int, ke float64) types.RecoParticle {
	p := types.RecoParticle{PID: pid, IsPrimary: true}
	if pid > types.Electron {
		p.CSDAKE = ke
	} else {
		p.CaloKE = ke
	}
	return p
}

// signalTruth builds a truth 1muNp candidate, fiducial and contained.
func signalTruth() types.TruthInteraction {
	return types.TruthInteraction{
		ID:          0,
		NuID:        0,
		IsFiducial:  true,
		IsContained: true,
		Particles: []types.TruthParticle{
			truthPrimary(types.Muon, 200),
			truthPrimary(types.Proton, 60),
		},
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.TruthInteraction)
		want   int
	}{
		{"signal fiducial contained", func(*types.TruthInteraction) {}, 0},
		{"signal not contained", func(i *types.TruthInteraction) { i.IsContained = false }, 1},
		{"signal not fiducial", func(i *types.TruthInteraction) { i.IsFiducial = false }, 1},
		{"neutrino without topology", func(i *types.TruthInteraction) { i.Particles = i.Particles[:1] }, 2},
		{"cosmic", func(i *types.TruthInteraction) { i.NuID = -1 }, 3},
		{"cosmic without topology", func(i *types.TruthInteraction) {
			i.NuID = -1
			i.Particles = nil
		}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := signalTruth()
			tt.mutate(&i)
			got := Category(&i)
			if got != tt.want {
				t.Errorf("Category = %d, want %d", got, tt.want)
			}
			if got < 0 || got > 3 {
				t.Errorf("Category = %d, outside [0,3]", got)
			}
		})
	}
}

func TestCategoryTopology(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.TruthInteraction)
		want   int
	}{
		{"contained fiducial 1mu1p", func(*types.TruthInteraction) {}, 2},
		{"uncontained 1mu1p", func(i *types.TruthInteraction) { i.IsContained = false }, 7},
		{"contained fiducial 1mu2p", func(i *types.TruthInteraction) {
			i.Particles = append(i.Particles, truthPrimary(types.Proton, 120))
		}, 2},
		{"uncontained 1mu2p", func(i *types.TruthInteraction) {
			i.Particles = append(i.Particles, truthPrimary(types.Proton, 120))
			i.IsFiducial = false
		}, 7},
		{"1mu0p", func(i *types.TruthInteraction) { i.Particles = i.Particles[:1] }, 4},
		{"1mu1pi1p", func(i *types.TruthInteraction) {
			i.Particles = append(i.Particles, truthPrimary(types.Pion, 50))
		}, 4},
		{"1mu2pi CC falls back to CC", func(i *types.TruthInteraction) {
			i.Particles = append(i.Particles,
				truthPrimary(types.Pion, 50), truthPrimary(types.Pion, 50))
			i.CurrentType = 0
		}, 4},
		{"1mu2pi NC has no branch", func(i *types.TruthInteraction) {
			i.Particles = append(i.Particles,
				truthPrimary(types.Pion, 50), truthPrimary(types.Pion, 50))
			i.CurrentType = 1
		}, 6},
		{"electron topology CC", func(i *types.TruthInteraction) {
			i.Particles = []types.TruthParticle{truthPrimary(types.Electron, 100)}
			i.CurrentType = 0
		}, 4},
		{"electron topology NC", func(i *types.TruthInteraction) {
			i.Particles = []types.TruthParticle{truthPrimary(types.Electron, 100)}
			i.CurrentType = 1
		}, 5},
		{"cosmic", func(i *types.TruthInteraction) { i.NuID = -1 }, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := signalTruth()
			tt.mutate(&i)
			if got := CategoryTopology(&i); got != tt.want {
				t.Errorf("CategoryTopology = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCategoryInteractionMode(t *testing.T) {
	tests := []struct {
		name    string
		nuID    int64
		current int
		pdg     int
		mode    int
		want    int
	}{
		{"numu CC QE", 0, 0, 14, 0, 0},
		{"numu CC Res", 0, 0, 14, 1, 1},
		{"numu CC MEC", 0, 0, 14, 10, 2},
		{"numu CC DIS", 0, 0, 14, 2, 3},
		{"numu CC Coh", 0, 0, 14, 3, 4},
		{"antinumu CC QE", 0, 0, -14, 0, 0},
		{"unrecognized numu CC mode", 0, 0, 14, 99, 8},
		{"nue CC", 0, 0, 12, 0, 5},
		{"NC", 0, 1, 14, 0, 6},
		{"cosmic", -1, 0, 14, 0, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := types.TruthInteraction{
				NuID:            tt.nuID,
				CurrentType:     tt.current,
				PDGCode:         tt.pdg,
				InteractionMode: tt.mode,
			}
			if got := CategoryInteractionMode(&i); got != tt.want {
				t.Errorf("CategoryInteractionMode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVisibleEnergyTruth(t *testing.T) {
	i := signalTruth()
	want := 200 + MuonMass + 60
	if got := VisibleEnergy(&i); math.Abs(got-want) > tol {
		t.Errorf("VisibleEnergy = %v, want %v", got, want)
	}

	// Sub-threshold primaries still contribute; non-primaries never do.
	i.Particles = append(i.Particles, truthPrimary(types.Photon, 5))
	nonPrimary := truthPrimary(types.Pion, 300)
	nonPrimary.IsPrimary = false
	i.Particles = append(i.Particles, nonPrimary)
	want += 5
	if got := VisibleEnergy(&i); math.Abs(got-want) > tol {
		t.Errorf("VisibleEnergy with extras = %v, want %v", got, want)
	}
}

func TestVisibleEnergyReco(t *testing.T) {
	i := types.RecoInteraction{Particles: []types.RecoParticle{
		recoPrimary(types.Electron, 50),
		recoPrimary(types.Muon, 200),
		recoPrimary(types.Pion, 80),
	}}
	want := 50 + 200 + MuonMass + 80 + PionMass
	if got := VisibleEnergy(&i); math.Abs(got-want) > tol {
		t.Errorf("VisibleEnergy = %v, want %v", got, want)
	}
}

func TestMomentumAndAngles(t *testing.T) {
	p := &types.RecoParticle{
		Momentum: r3.Vec{X: 3, Y: 4, Z: 0},
		StartDir: r3.Vec{X: 0, Y: 0, Z: 1},
	}
	if got := Momentum(p); math.Abs(got-5) > tol {
		t.Errorf("Momentum = %v, want 5", got)
	}
	if got := PolarAngle(p); math.Abs(got) > tol {
		t.Errorf("PolarAngle forward = %v, want 0", got)
	}

	p.StartDir = r3.Vec{X: 1, Y: 0, Z: 0}
	if got := PolarAngle(p); math.Abs(got-math.Pi/2) > tol {
		t.Errorf("PolarAngle transverse = %v, want pi/2", got)
	}
	if got := AzimuthalAngle(p); math.Abs(got) > tol {
		t.Errorf("AzimuthalAngle along x = %v, want 0", got)
	}

	p.StartDir = r3.Vec{X: 0, Y: 1, Z: 0}
	if got := AzimuthalAngle(p); math.Abs(got-math.Pi/2) > tol {
		t.Errorf("AzimuthalAngle along y = %v, want pi/2", got)
	}
}

func TestNuMIAngle(t *testing.T) {
	// Start the track directly below the beam origin so the line of
	// sight is exactly +z.
	start := r3.Vec{X: 31512.0380, Y: 3364.4912, Z: 63363.2532}

	aligned := &types.RecoParticle{StartPoint: start, StartDir: r3.Vec{Z: 1}}
	if got := NuMIAngle(aligned); math.Abs(got) > 1e-6 {
		t.Errorf("aligned NuMIAngle = %v, want 0", got)
	}

	opposed := &types.RecoParticle{StartPoint: start, StartDir: r3.Vec{Z: -1}}
	if got := NuMIAngle(opposed); math.Abs(got-math.Pi) > 1e-6 {
		t.Errorf("opposed NuMIAngle = %v, want pi", got)
	}

	transverse := &types.RecoParticle{StartPoint: start, StartDir: r3.Vec{X: 1}}
	if got := NuMIAngle(transverse); math.Abs(got-math.Pi/2) > 1e-6 {
		t.Errorf("transverse NuMIAngle = %v, want pi/2", got)
	}
}

func TestLeadingIndex(t *testing.T) {
	i := types.RecoInteraction{Particles: []types.RecoParticle{
		recoPrimary(types.Muon, 100),
		recoPrimary(types.Proton, 60),
		recoPrimary(types.Muon, 300),
	}}

	k, ok := LeadingIndex(&i, types.Muon)
	if !ok || k != 2 {
		t.Errorf("LeadingIndex(muon) = %d,%v, want 2,true", k, ok)
	}
	if _, ok := LeadingIndex(&i, types.Electron); ok {
		t.Error("LeadingIndex(electron) should report no particle")
	}

	// Non-primary particles are never leading.
	secondary := recoPrimary(types.Muon, 500)
	secondary.IsPrimary = false
	i.Particles = append(i.Particles, secondary)
	if k, _ := LeadingIndex(&i, types.Muon); k != 2 {
		t.Errorf("LeadingIndex should skip non-primaries, got %d", k)
	}
}

func TestLeadingVariables(t *testing.T) {
	mu := recoPrimary(types.Muon, 250)
	pr := recoPrimary(types.Proton, 60)
	pr.Momentum = r3.Vec{X: 0, Y: 0, Z: 400}
	pr.StartDir = r3.Vec{X: 1, Y: 0, Z: 0}
	pr.PIDScores = []float64{0, 0, 0, 0.1, 0.9}
	el := recoPrimary(types.Electron, 80)
	el.StartDir = r3.Vec{X: 0, Y: 0, Z: 1}
	el.PIDScores = []float64{0.05, 0.95, 0, 0, 0}
	i := types.RecoInteraction{Particles: []types.RecoParticle{mu, pr, el}}

	ke, err := LeadingMuonKE(&i)
	if err != nil || ke != 250 {
		t.Errorf("LeadingMuonKE = %v,%v, want 250,nil", ke, err)
	}
	p, err := LeadingProtonP(&i)
	if err != nil || math.Abs(p-400) > tol {
		t.Errorf("LeadingProtonP = %v,%v, want 400,nil", p, err)
	}
	angle, err := OpeningAngle(&i)
	if err != nil || math.Abs(angle-math.Pi/2) > tol {
		t.Errorf("OpeningAngle = %v,%v, want pi/2,nil", angle, err)
	}
	s, err := ElectronSoftmax(&i)
	if err != nil || s != 0.95 {
		t.Errorf("ElectronSoftmax = %v,%v, want 0.95,nil", s, err)
	}
	s, err = ProtonSoftmax(&i)
	if err != nil || s != 0.9 {
		t.Errorf("ProtonSoftmax = %v,%v, want 0.9,nil", s, err)
	}
	pa, err := ProtonPolarAngle(&i)
	if err != nil || math.Abs(pa-math.Pi/2) > tol {
		t.Errorf("ProtonPolarAngle = %v,%v, want pi/2,nil", pa, err)
	}
	ea, err := ElectronPolarAngle(&i)
	if err != nil || math.Abs(ea) > tol {
		t.Errorf("ElectronPolarAngle = %v,%v, want 0,nil", ea, err)
	}
}

func TestLeadingVariablesNoParticle(t *testing.T) {
	i := types.RecoInteraction{Particles: []types.RecoParticle{
		recoPrimary(types.Muon, 250),
	}}

	if _, err := LeadingProtonP(&i); !errors.Is(err, ErrNoSuchParticle) {
		t.Errorf("LeadingProtonP err = %v, want ErrNoSuchParticle", err)
	}
	if _, err := ElectronNuMIAngle(&i); !errors.Is(err, ErrNoSuchParticle) {
		t.Errorf("ElectronNuMIAngle err = %v, want ErrNoSuchParticle", err)
	}
	if _, err := OpeningAngle(&i); !errors.Is(err, ErrNoSuchParticle) {
		t.Errorf("OpeningAngle err = %v, want ErrNoSuchParticle", err)
	}

	empty := types.RecoInteraction{}
	if _, err := LeadingPrimaryP(&empty); !errors.Is(err, ErrNoSuchParticle) {
		t.Errorf("LeadingPrimaryP err = %v, want ErrNoSuchParticle", err)
	}
}

func TestTrueLeadingProtonP(t *testing.T) {
	i := signalTruth()
	i.TruthParticles = []types.TruthParticle{
		{PID: types.Muon, Momentum: r3.Vec{X: 0, Y: 0, Z: 300}},
		{PID: types.Proton, Momentum: r3.Vec{X: 0, Y: 500, Z: 0}},
	}

	p, err := TrueLeadingProtonP(&i)
	if err != nil || math.Abs(p-500) > tol {
		t.Errorf("TrueLeadingProtonP = %v,%v, want 500,nil", p, err)
	}

	i.TruthParticles = i.TruthParticles[:1]
	if _, err := TrueLeadingProtonP(&i); !errors.Is(err, ErrNoSuchParticle) {
		t.Errorf("err = %v, want ErrNoSuchParticle when parallel record missing", err)
	}
}

func TestPhiT(t *testing.T) {
	mu := recoPrimary(types.Muon, 200)
	mu.Momentum = r3.Vec{X: 1, Y: 0, Z: 2}
	pr := recoPrimary(types.Proton, 60)
	pr.Momentum = r3.Vec{X: -1, Y: 0, Z: 3}
	i := types.RecoInteraction{Particles: []types.RecoParticle{mu, pr}}

	// Perfectly balanced transverse momenta: phiT = 0.
	if got := PhiT(&i); math.Abs(got) > tol {
		t.Errorf("balanced PhiT = %v, want 0", got)
	}

	// Aligned transverse momenta: phiT = pi.
	i.Particles[1].Momentum = r3.Vec{X: 1, Y: 0, Z: 3}
	if got := PhiT(&i); math.Abs(got-math.Pi) > tol {
		t.Errorf("aligned PhiT = %v, want pi", got)
	}

	// Empty hadronic group: NaN, preserved rather than signaled.
	i.Particles = i.Particles[:1]
	if got := PhiT(&i); !math.IsNaN(got) {
		t.Errorf("PhiT without protons = %v, want NaN", got)
	}
}

func TestAlphaT(t *testing.T) {
	mu := recoPrimary(types.Muon, 200)
	mu.Momentum = r3.Vec{X: 1, Y: 0, Z: 2}
	pr := recoPrimary(types.Proton, 60)
	pr.Momentum = r3.Vec{X: -2, Y: 0, Z: 3}
	i := types.RecoInteraction{Particles: []types.RecoParticle{mu, pr}}

	// Total transverse momentum anti-parallel to the light group: alphaT = 0.
	if got := AlphaT(&i); math.Abs(got) > tol {
		t.Errorf("AlphaT = %v, want 0", got)
	}

	// Exactly balanced event: zero total transverse momentum, NaN.
	i.Particles[1].Momentum = r3.Vec{X: -1, Y: 0, Z: 3}
	if got := AlphaT(&i); !math.IsNaN(got) {
		t.Errorf("balanced AlphaT = %v, want NaN", got)
	}
}

func TestIdent(t *testing.T) {
	i := types.RecoInteraction{ID: 42}
	if got := Ident(&i); got != 42 {
		t.Errorf("Ident = %d, want 42", got)
	}
}
