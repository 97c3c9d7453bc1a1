package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dairdre/gonature"
	"github.com/dairdre/gonature/qubit"
)

func TestNewRejectsNonPositiveWidth(t *testing.T) {
	_, err := New(0)
	require.ErrorIs(t, err, gonature.ErrIncompatibleMapping)
	_, err = New(-3)
	require.ErrorIs(t, err, gonature.ErrIncompatibleMapping)
}

func TestXBoundsCheck(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)
	require.NoError(t, c.X(1))
	require.ErrorIs(t, c.X(2), gonature.ErrIncompatibleMapping)
	require.ErrorIs(t, c.X(-1), gonature.ErrIncompatibleMapping)
	require.Len(t, c.Gates(), 1)
}

func TestEvolveRegistersParametersOnce(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)
	require.NoError(t, c.Evolve("XYII", "t[0]", 0.5))
	require.NoError(t, c.Evolve("YXII", "t[0]", -0.5))
	require.NoError(t, c.Evolve("IIXY", "t[1]", 0.5))

	assert.Equal(t, []string{"t[0]", "t[1]"}, c.Parameters())
	assert.Equal(t, 2, c.NumParameters())

	gates := c.Gates()
	require.Len(t, gates, 3)
	assert.Equal(t, "pauli_evolution", gates[0].Name)
	assert.Equal(t, []int{0, 1}, gates[0].Qubits)
	assert.Equal(t, "XYII", gates[0].Pauli)
}

func TestEvolveValidation(t *testing.T) {
	c, err := New(3)
	require.NoError(t, err)
	require.ErrorIs(t, c.Evolve("XY", "t", 1), gonature.ErrIncompatibleMapping)
	require.ErrorIs(t, c.Evolve("XQZ", "t", 1), gonature.ErrIncompatibleMapping)

	// pure identity evolution is a global phase: accepted, no gate emitted
	require.NoError(t, c.Evolve("III", "t", 1))
	assert.Empty(t, c.Gates())
	assert.Zero(t, c.NumParameters())
}

func TestAppendMergesParameterTables(t *testing.T) {
	a, err := New(2)
	require.NoError(t, err)
	require.NoError(t, a.Evolve("XY", "t[0]", 1))

	b, err := New(2)
	require.NoError(t, err)
	require.NoError(t, b.Evolve("YX", "t[0]", -1))
	require.NoError(t, b.Evolve("ZZ", "t[1]", 1))

	require.NoError(t, a.Append(b))
	assert.Equal(t, []string{"t[0]", "t[1]"}, a.Parameters())
	assert.Len(t, a.Gates(), 3)

	wide, err := New(3)
	require.NoError(t, err)
	require.ErrorIs(t, a.Append(wide), gonature.ErrIncompatibleMapping)
}

func TestHartreeFockJordanWigner(t *testing.T) {
	conv := &qubit.Converter{Mapper: qubit.JordanWigner{}, NumParticles: [2]int{1, 1}}
	c, err := HartreeFock(conv, 4)
	require.NoError(t, err)

	assert.Equal(t, 4, c.NumQubits())
	gates := c.Gates()
	require.Len(t, gates, 2)
	assert.Equal(t, []int{0}, gates[0].Qubits)
	assert.Equal(t, []int{2}, gates[1].Qubits)
}

func TestHartreeFockParityReduced(t *testing.T) {
	conv := &qubit.Converter{
		Mapper:            qubit.Parity{},
		TwoQubitReduction: true,
		NumParticles:      [2]int{1, 1},
	}
	c, err := HartreeFock(conv, 4)
	require.NoError(t, err)

	// parity encoding of 1010 is 1100; dropping qubits 1 and 3 leaves 10
	assert.Equal(t, 2, c.NumQubits())
	gates := c.Gates()
	require.Len(t, gates, 1)
	assert.Equal(t, []int{0}, gates[0].Qubits)
}

func TestHartreeFockPropagatesConverterErrors(t *testing.T) {
	conv := &qubit.Converter{Mapper: qubit.JordanWigner{}, NumParticles: [2]int{3, 0}}
	_, err := HartreeFock(conv, 4)
	require.ErrorIs(t, err, gonature.ErrIncompatibleMapping)
}

func TestGatesDetachedFromCircuit(t *testing.T) {
	c, err := New(3)
	require.NoError(t, err)
	require.NoError(t, c.X(0))
	require.NoError(t, c.Evolve("XYI", "t[0]", 1))

	gates := c.Gates()
	gates[0].Qubits[0] = 2
	gates[1].Qubits[1] = 2
	assert.Equal(t, []int{0}, c.Gates()[0].Qubits)
	assert.Equal(t, []int{0, 1}, c.Gates()[1].Qubits)
}

func TestAppendDoesNotAliasSource(t *testing.T) {
	src, err := New(2)
	require.NoError(t, err)
	require.NoError(t, src.X(1))

	dst, err := New(2)
	require.NoError(t, err)
	require.NoError(t, dst.Append(src))

	dst.Gates()[0].Qubits[0] = 0
	assert.Equal(t, []int{1}, src.Gates()[0].Qubits)
	assert.Equal(t, []int{1}, dst.Gates()[0].Qubits)
}
