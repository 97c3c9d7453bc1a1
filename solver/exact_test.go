package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dairdre/gonature/fermion"
)

func TestSectorBasis(t *testing.T) {
	assert.Equal(t, []uint64{0b0101, 0b0110, 0b1001, 0b1010}, sectorBasis(4, [2]int{1, 1}))
	assert.Equal(t, []uint64{0b0001, 0b0010}, sectorBasis(4, [2]int{1, 0}))
	assert.Equal(t, []uint64{0b1111}, sectorBasis(4, [2]int{2, 2}))
	assert.Empty(t, sectorBasis(4, [2]int{3, 0}))
}

func TestApplyActionsSigns(t *testing.T) {
	parse := func(label string) []fermion.Action {
		actions, err := fermion.ParseLabel(label, 4)
		require.NoError(t, err)
		return actions
	}

	// annihilating above an occupied mode picks up a sign
	st, sign, ok := applyActions(parse("-_1"), 0b0011)
	require.True(t, ok)
	assert.Equal(t, uint64(0b0001), st)
	assert.Equal(t, -1.0, sign)

	// no occupied mode below, no sign
	st, sign, ok = applyActions(parse("-_0"), 0b0011)
	require.True(t, ok)
	assert.Equal(t, uint64(0b0010), st)
	assert.Equal(t, 1.0, sign)

	// double annihilation kills the state
	_, _, ok = applyActions(parse("-_0 -_0"), 0b0001)
	assert.False(t, ok)

	// creation on an occupied mode kills the state
	_, _, ok = applyActions(parse("+_0"), 0b0001)
	assert.False(t, ok)

	// number operator is the identity on an occupied mode
	st, sign, ok = applyActions(parse("+_1 -_1"), 0b0010)
	require.True(t, ok)
	assert.Equal(t, uint64(0b0010), st)
	assert.Equal(t, 1.0, sign)
}

func TestGroundStateTwoSiteHopping(t *testing.T) {
	// two alpha sites with on-site energy 0.5 and hopping -0.2:
	// one-particle eigenvalues 0.5 -+ 0.2
	op, err := fermion.New(4, map[string]complex128{
		"+_0 -_0": 0.5,
		"+_1 -_1": 0.5,
		"+_0 -_1": -0.2,
		"+_1 -_0": -0.2,
	})
	require.NoError(t, err)

	state, err := ExactEigensolver{NumParticles: [2]int{1, 0}}.GroundState(op)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, state.Energy, 1e-12)

	number, err := fermion.New(4, map[string]complex128{
		"+_0 -_0": 1, "+_1 -_1": 1, "+_2 -_2": 1, "+_3 -_3": 1,
	})
	require.NoError(t, err)
	n, err := state.Expectation(number)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, n, 1e-12)
}

func TestGroundStateRejectsEmptySector(t *testing.T) {
	op, err := fermion.New(4, map[string]complex128{"+_0 -_0": 1})
	require.NoError(t, err)
	_, err = ExactEigensolver{NumParticles: [2]int{3, 0}}.GroundState(op)
	require.ErrorIs(t, err, ErrNotRealSymmetric)
}

func TestGroundStateRejectsNonSymmetric(t *testing.T) {
	op, err := fermion.New(4, map[string]complex128{"+_0 -_1": 1})
	require.NoError(t, err)
	_, err = ExactEigensolver{NumParticles: [2]int{1, 0}}.GroundState(op)
	require.ErrorIs(t, err, ErrNotRealSymmetric)
}

func TestGroundStateRejectsComplexCoefficients(t *testing.T) {
	op, err := fermion.New(4, map[string]complex128{"+_0 -_0": 1i})
	require.NoError(t, err)
	_, err = ExactEigensolver{NumParticles: [2]int{1, 0}}.GroundState(op)
	require.ErrorIs(t, err, ErrNotRealSymmetric)
}

func TestExpectationModeMismatch(t *testing.T) {
	op, err := fermion.New(4, map[string]complex128{"+_0 -_0": 1})
	require.NoError(t, err)
	state, err := ExactEigensolver{NumParticles: [2]int{1, 0}}.GroundState(op)
	require.NoError(t, err)

	other, err := fermion.New(6, map[string]complex128{"+_0 -_0": 1})
	require.NoError(t, err)
	_, err = state.Expectation(other)
	require.ErrorIs(t, err, ErrNotRealSymmetric)
}
