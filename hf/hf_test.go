package hf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/dairdre/gonature"
)

// H2 at 1.4 bohr, the textbook geometry.
func h2Atoms() []Atom {
	return []Atom{
		{Z: 1, Coords: [3]float64{0, 0, 0}},
		{Z: 1, Coords: [3]float64{0, 0, 1.4 * Bohr}},
	}
}

func h2AOs(t *testing.T, basis string) []AO {
	t.Helper()
	var aos []AO
	for _, a := range h2Atoms() {
		b, err := BasisFor(a, basis)
		require.NoError(t, err)
		aos = append(aos, b...)
	}
	return aos
}

func TestBasisFor(t *testing.T) {
	h := Atom{Z: 1}
	sto, err := BasisFor(h, "sto-3g")
	require.NoError(t, err)
	require.Len(t, sto, 1)
	assert.Len(t, sto[0].Primitives, 3)

	split, err := BasisFor(h, "6-31g")
	require.NoError(t, err)
	require.Len(t, split, 2)
	assert.Len(t, split[0].Primitives, 3)
	assert.Len(t, split[1].Primitives, 1)

	_, err = BasisFor(h, "cc-pvdz")
	require.ErrorIs(t, err, ErrBasis)
	_, err = BasisFor(Atom{Z: 6}, "sto-3g")
	require.ErrorIs(t, err, ErrBasis)
}

func TestOverlapHydrogenDimer(t *testing.T) {
	s := Overlap(h2AOs(t, "sto-3g"))
	// contracted STO-3G 1s functions are normalized
	assert.InDelta(t, 1.0, s[0][0], 1e-6)
	assert.InDelta(t, 1.0, s[1][1], 1e-6)
	// Szabo & Ostlund value at 1.4 bohr
	assert.InDelta(t, 0.6593, s[0][1], 1e-3)
	assert.InDelta(t, s[0][1], s[1][0], 1e-12)
}

func TestKineticHydrogenDimer(t *testing.T) {
	k := Kinetic(h2AOs(t, "sto-3g"))
	assert.InDelta(t, 0.7600, k[0][0], 1e-3)
	assert.InDelta(t, k[0][1], k[1][0], 1e-12)
}

func TestElectronRepulsionHydrogenDimer(t *testing.T) {
	v := ElectronRepulsion(h2AOs(t, "sto-3g"))
	assert.InDelta(t, 0.7746, v[0][0][0][0], 1e-3)
	assert.InDelta(t, 0.5697, v[0][0][1][1], 1e-3)
	// chemist tensor symmetry (ij|kl) = (ji|kl) = (kl|ij)
	assert.InDelta(t, v[0][1][0][1], v[1][0][0][1], 1e-12)
	assert.InDelta(t, v[0][0][1][1], v[1][1][0][0], 1e-12)
}

func TestNuclearRepulsion(t *testing.T) {
	assert.InDelta(t, 1.0/1.4, NuclearRepulsion(h2Atoms()), 1e-10)
}

func TestNuclearDipole(t *testing.T) {
	d := NuclearDipole(h2Atoms())
	assert.InDelta(t, 0.0, d[0], 1e-12)
	assert.InDelta(t, 0.0, d[1], 1e-12)
	assert.InDelta(t, 1.4, d[2], 1e-10)
}

func TestMatrixSqrtInverse(t *testing.T) {
	s := Overlap(h2AOs(t, "sto-3g"))
	a, err := MatrixSqrtInverse(s)
	require.NoError(t, err)

	n := len(s)
	sm := mat.NewDense(n, n, flatten(s))
	am := mat.NewDense(n, n, flatten(a))
	var prod mat.Dense
	prod.Mul(am, sm)
	prod.Mul(&prod, am)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, prod.At(i, j), 1e-10)
		}
	}
}

func TestSCFHydrogenSTO3G(t *testing.T) {
	aos := h2AOs(t, "sto-3g")
	atoms := h2Atoms()
	res, err := RunSCF(Overlap(aos), Kinetic(aos), NuclearAttraction(aos, atoms), ElectronRepulsion(aos), 1, SCFOptions{})
	require.NoError(t, err)

	total := res.Energy + NuclearRepulsion(atoms)
	assert.InDelta(t, -1.1167, total, 2e-3)
	assert.Greater(t, res.Iterations, 1)
	require.Len(t, res.OrbitalEnergies, 2)
	assert.Less(t, res.OrbitalEnergies[0], res.OrbitalEnergies[1])
}

func TestSCFNotConverged(t *testing.T) {
	aos := h2AOs(t, "sto-3g")
	atoms := h2Atoms()
	_, err := RunSCF(Overlap(aos), Kinetic(aos), NuclearAttraction(aos, atoms), ElectronRepulsion(aos), 1, SCFOptions{MaxIter: 1})
	require.ErrorIs(t, err, gonature.ErrSCFNotConverged)
}

func TestDriverSnapshot(t *testing.T) {
	drv := &Driver{Atoms: h2Atoms(), Basis: "sto-3g"}
	q, err := drv.Run()
	require.NoError(t, err)

	assert.Equal(t, 4, q.NumModes())
	assert.Equal(t, 1, q.NumAlpha)
	assert.Equal(t, 1, q.NumBeta)
	assert.True(t, q.HasDipoleIntegrals())
	assert.InDelta(t, 1.0/1.4, q.NuclearRepulsion, 1e-10)
	assert.InDelta(t, -1.1167, q.HFEnergy, 2e-3)

	// spin blocks are identical, cross blocks vanish
	assert.InDelta(t, q.OneBody[0][0], q.OneBody[2][2], 1e-12)
	assert.Zero(t, q.OneBody[0][2])

	// mixed-spin repulsion survives only in the exchange-free slots
	assert.NotZero(t, q.TwoBody[0][2][2][0])
	assert.Zero(t, q.TwoBody[0][2][0][2])

	// closed-shell H2 along z has no net dipole: electronic expectation over
	// the occupied spin orbitals cancels the nuclear term
	electronic := q.DipoleZ[0][0] + q.DipoleZ[2][2]
	assert.InDelta(t, q.NuclearDipole[2], electronic, 1e-8)
}

func TestDriverSplitValenceModeCount(t *testing.T) {
	drv := &Driver{Atoms: h2Atoms(), Basis: "6-31g"}
	q, err := drv.Run()
	require.NoError(t, err)
	assert.Equal(t, 8, q.NumModes())
	assert.Len(t, q.OrbitalEnergies, 4)
	// split-valence lowers the mean-field energy below the minimal basis
	assert.Less(t, q.HFEnergy, -1.1167+2e-3)
}

func TestDriverValidation(t *testing.T) {
	_, err := (&Driver{}).Run()
	require.ErrorIs(t, err, gonature.ErrInvalidModeCount)

	_, err = (&Driver{Atoms: []Atom{{Z: 1}}}).Run()
	require.ErrorIs(t, err, gonature.ErrSCFNotConverged)

	_, err = (&Driver{Atoms: h2Atoms(), Basis: "nope"}).Run()
	require.ErrorIs(t, err, ErrBasis)
}

func TestBoys(t *testing.T) {
	assert.InDelta(t, 1.0, boys(0, 0), 1e-12)
	assert.InDelta(t, 1.0/3.0, boys(0, 1), 1e-12)
	// F0(x) = sqrt(pi/(4x)) erf(sqrt(x))
	for _, x := range []float64{0.1, 0.5, 1.0, 3.0, 10.0} {
		want := 0.5 * math.Sqrt(math.Pi/x) * math.Erf(math.Sqrt(x))
		assert.InDelta(t, want, boys(x, 0), 1e-10)
	}
}
