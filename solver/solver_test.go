package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dairdre/gonature/hf"
	"github.com/dairdre/gonature/molecule"
)

func hydrogenProblem(distance float64) *molecule.Problem {
	return molecule.NewProblem(&hf.Driver{
		Atoms: []hf.Atom{
			{Z: 1, Coords: [3]float64{0, 0, 0}},
			{Z: 1, Coords: [3]float64{0, 0, distance}},
		},
		Basis: "sto-3g",
	})
}

func TestGroundStateHydrogen(t *testing.T) {
	gs := GroundStateSolver{Problem: hydrogenProblem(0.735)}
	res, err := gs.Solve()
	require.NoError(t, err)

	assert.InDelta(t, -1.8572750302023797, res.ElectronicEnergy, 1e-6)
	assert.InDelta(t, -1.1373060356951, res.TotalEnergy, 1e-6)
	assert.Less(t, res.TotalEnergy, res.HFEnergy)

	assert.InDelta(t, 2.0, res.ParticleNumber, 1e-8)
	assert.InDelta(t, 0.0, res.Magnetization, 1e-8)
	assert.InDelta(t, 0.0, res.AngularMomentum, 1e-8)

	// homonuclear diatomic: no permanent dipole
	require.NotNil(t, res.Dipole)
	for axis := 0; axis < 3; axis++ {
		assert.InDelta(t, 0.0, res.Dipole[axis], 1e-6)
	}
}

func TestGroundStateFrozenCoreShift(t *testing.T) {
	// freezing nothing must not move the energy
	plain := GroundStateSolver{Problem: hydrogenProblem(0.735)}
	frozen := GroundStateSolver{Problem: molecule.NewProblem(&hf.Driver{
		Atoms: []hf.Atom{
			{Z: 1, Coords: [3]float64{0, 0, 0}},
			{Z: 1, Coords: [3]float64{0, 0, 0.735}},
		},
		Basis: "sto-3g",
	}, molecule.FreezeCore(0))}

	a, err := plain.Solve()
	require.NoError(t, err)
	b, err := frozen.Solve()
	require.NoError(t, err)
	assert.InDelta(t, a.TotalEnergy, b.TotalEnergy, 1e-10)
}

func TestSurfaceSampler(t *testing.T) {
	sampler := SurfaceSampler{ProblemAt: hydrogenProblem}
	points := []float64{0.7, 1.0, 1.3}
	surf, err := sampler.Sample(points)
	require.NoError(t, err)

	want := []float64{-1.13618945, -1.10115033, -1.03518627}
	require.Len(t, surf.Energies, len(want))
	for i := range want {
		assert.InDelta(t, want[i], surf.Energies[i], 1e-2)
	}

	pt, e := surf.MinPoint()
	assert.Equal(t, 0.7, pt)
	assert.Equal(t, surf.Energies[0], e)
}

func TestFitMorseRecovery(t *testing.T) {
	truth := MorsePotential{D: 0.2, Alpha: 1.1, R0: 0.74, E0: -1.17}
	surf := &Surface{}
	for r := 0.4; r <= 2.0; r += 0.1 {
		surf.Points = append(surf.Points, r)
		surf.Energies = append(surf.Energies, truth.Eval(r))
	}

	fit, err := FitMorse(surf)
	require.NoError(t, err)
	for _, r := range []float64{0.5, 0.74, 1.0, 1.5, 1.9} {
		assert.InDelta(t, truth.Eval(r), fit.Eval(r), 1e-4)
	}
	assert.InDelta(t, truth.R0, fit.R0, 1e-3)
	assert.InDelta(t, truth.E0, fit.E0, 1e-3)
}

func TestFitMorseNeedsEnoughPoints(t *testing.T) {
	surf := &Surface{Points: []float64{0.7, 1.0, 1.3}, Energies: []float64{-1.1, -1.0, -0.9}}
	_, err := FitMorse(surf)
	require.ErrorIs(t, err, ErrSurfaceFit)
}

func TestMorseEvalMinimum(t *testing.T) {
	m := MorsePotential{D: 0.2, Alpha: 1.1, R0: 0.74, E0: -1.17}
	assert.Equal(t, m.E0, m.Eval(m.R0))
	assert.True(t, math.Abs(m.Eval(0.9)-m.E0) > 0)
	assert.InDelta(t, m.E0+m.D, m.Eval(100), 1e-12)
}
