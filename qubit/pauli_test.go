package qubit

import (
	"fmt"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dairdre/gonature"
	"github.com/dairdre/gonature/fermion"
)

// termMatrix applies one conventional Pauli string to every basis state.
// Basis index bit q is the state of qubit q.
func termMatrix(n int, t Term) [][]complex128 {
	dim := 1 << uint(n)
	m := make([][]complex128, dim)
	for i := range m {
		m[i] = make([]complex128, dim)
	}
	for j := 0; j < dim; j++ {
		out := j
		phase := t.Coeff
		for q := 0; q < n; q++ {
			bit := j >> uint(q) & 1
			switch t.Pauli[q] {
			case 'X':
				out ^= 1 << uint(q)
			case 'Y':
				out ^= 1 << uint(q)
				if bit == 0 {
					phase *= 1i
				} else {
					phase *= -1i
				}
			case 'Z':
				if bit == 1 {
					phase *= -1
				}
			}
		}
		m[out][j] += phase
	}
	return m
}

func opMatrix(o *Op) [][]complex128 {
	dim := 1 << uint(o.Qubits())
	m := make([][]complex128, dim)
	for i := range m {
		m[i] = make([]complex128, dim)
	}
	for _, t := range o.StdTerms() {
		tm := termMatrix(o.Qubits(), t)
		for i := range m {
			for j := range m {
				m[i][j] += tm[i][j]
			}
		}
	}
	return m
}

func matEqual(t *testing.T, a, b [][]complex128, tol float64) {
	t.Helper()
	require.Equal(t, len(a), len(b))
	for i := range a {
		for j := range a[i] {
			if cmplx.Abs(a[i][j]-b[i][j]) > tol {
				t.Fatalf("matrices differ at (%d,%d): %v vs %v", i, j, a[i][j], b[i][j])
			}
		}
	}
}

func TestMulPhases(t *testing.T) {
	x := &Op{qubits: 1, terms: map[label]complex128{{x: 1}: 1}}
	z := &Op{qubits: 1, terms: map[label]complex128{{z: 1}: 1}}

	xz, err := x.Mul(z)
	require.NoError(t, err)
	terms := xz.StdTerms()
	require.Len(t, terms, 1)
	assert.Equal(t, "Y", terms[0].Pauli)
	assert.InDelta(t, 0, real(terms[0].Coeff), 1e-15)
	assert.InDelta(t, -1, imag(terms[0].Coeff), 1e-15)

	zx, err := z.Mul(x)
	require.NoError(t, err)
	terms = zx.StdTerms()
	require.Len(t, terms, 1)
	assert.InDelta(t, 1, imag(terms[0].Coeff), 1e-15)

	// X^2 = I
	xx, err := x.Mul(x)
	require.NoError(t, err)
	terms = xx.StdTerms()
	require.Len(t, terms, 1)
	assert.Equal(t, "I", terms[0].Pauli)
	assert.Equal(t, complex128(1), terms[0].Coeff)
}

func TestCommutes(t *testing.T) {
	x0 := &Op{qubits: 2, terms: map[label]complex128{{x: 1}: 1}}
	z0 := &Op{qubits: 2, terms: map[label]complex128{{z: 1}: 1}}
	z1 := &Op{qubits: 2, terms: map[label]complex128{{z: 2}: 1}}
	xx := &Op{qubits: 2, terms: map[label]complex128{{x: 3}: 1}}
	zz := &Op{qubits: 2, terms: map[label]complex128{{z: 3}: 1}}

	assert.False(t, x0.Commutes(z0))
	assert.True(t, x0.Commutes(z1))
	assert.True(t, xx.Commutes(zz))
}

func TestJordanWignerNumberOperator(t *testing.T) {
	numOp, err := fermion.New(2, map[string]complex128{"+_0 -_0": 1, "+_1 -_1": 1})
	require.NoError(t, err)
	mapped, err := JordanWigner{}.Map(numOp)
	require.NoError(t, err)

	want := map[string]complex128{"II": 1, "ZI": -0.5, "IZ": -0.5}
	terms := mapped.StdTerms()
	require.Len(t, terms, len(want))
	for _, term := range terms {
		assert.InDelta(t, real(want[term.Pauli]), real(term.Coeff), 1e-14, term.Pauli)
		assert.InDelta(t, 0, imag(term.Coeff), 1e-14, term.Pauli)
	}
}

func TestJordanWignerHopping(t *testing.T) {
	hop, err := fermion.New(2, map[string]complex128{"+_0 -_1": 1, "+_1 -_0": 1})
	require.NoError(t, err)
	mapped, err := JordanWigner{}.Map(hop)
	require.NoError(t, err)

	// a†0 a1 + a†1 a0 = (X0X1 + Y0Y1)/2
	want := map[string]float64{"XX": 0.5, "YY": 0.5}
	terms := mapped.StdTerms()
	require.Len(t, terms, 2)
	for _, term := range terms {
		assert.InDelta(t, want[term.Pauli], real(term.Coeff), 1e-14, term.Pauli)
	}
}

// TestParityIsBasisPermutationOfJW checks both encodings agree: the parity
// basis is the prefix-xor relabelling of the occupation basis, so the parity
// matrix must equal the permuted Jordan-Wigner matrix.
func TestParityIsBasisPermutationOfJW(t *testing.T) {
	n := 4
	fop, err := fermion.New(n, map[string]complex128{
		"+_0 -_0":         -1.25,
		"+_0 -_1":         0.3,
		"+_1 -_0":         0.3,
		"+_0 +_2 -_2 -_0": 0.5,
		"+_1 +_3 -_3 -_1": 0.25,
	})
	require.NoError(t, err)

	jw, err := JordanWigner{}.Map(fop)
	require.NoError(t, err)
	par, err := Parity{}.Map(fop)
	require.NoError(t, err)

	jwM := opMatrix(jw)
	parM := opMatrix(par)
	dim := 1 << uint(n)

	perm := func(b int) int {
		out, run := 0, 0
		for q := 0; q < n; q++ {
			run ^= b >> uint(q) & 1
			out |= run << uint(q)
		}
		return out
	}
	permuted := make([][]complex128, dim)
	for i := range permuted {
		permuted[i] = make([]complex128, dim)
	}
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			permuted[perm(i)][perm(j)] = jwM[i][j]
		}
	}
	matEqual(t, parM, permuted, 1e-12)
}

func TestTwoQubitReduction(t *testing.T) {
	n := 4
	fop, err := fermion.New(n, map[string]complex128{
		"+_0 -_0":         -1.0,
		"+_2 -_2":         -0.7,
		"+_0 +_2 -_2 -_0": 0.6,
	})
	require.NoError(t, err)

	conv := &Converter{Mapper: Parity{}, TwoQubitReduction: true, NumParticles: [2]int{1, 1}}
	reduced, err := conv.Convert(fop)
	require.NoError(t, err)
	assert.Equal(t, 2, reduced.Qubits())

	// Project the full parity matrix onto the symmetry sector
	// (qubit 1 parity = n_alpha mod 2 = 1, qubit 3 parity = N mod 2 = 0)
	// and compare against the reduced matrix.
	full, err := Parity{}.Map(fop)
	require.NoError(t, err)
	fullM := opMatrix(full)
	redM := opMatrix(reduced)

	var sector []int
	for b := 0; b < 1<<uint(n); b++ {
		if b>>1&1 == 1 && b>>3&1 == 0 {
			sector = append(sector, b)
		}
	}
	require.Len(t, sector, 1<<uint(n-2))
	for i, bi := range sector {
		for j, bj := range sector {
			ri := bi&1 | (bi>>2&1)<<1
			rj := bj&1 | (bj>>2&1)<<1
			if cmplx.Abs(fullM[bi][bj]-redM[ri][rj]) > 1e-12 {
				t.Fatalf("sector mismatch at (%d,%d): %v vs %v", i, j, fullM[bi][bj], redM[ri][rj])
			}
		}
	}
}

func TestTwoQubitReductionRejectsJordanWigner(t *testing.T) {
	fop, err := fermion.New(4, map[string]complex128{"+_0 -_0": 1})
	require.NoError(t, err)
	conv := &Converter{Mapper: JordanWigner{}, TwoQubitReduction: true}
	_, err = conv.Convert(fop)
	require.ErrorIs(t, err, gonature.ErrIncompatibleMapping)
}

func TestOccupationBits(t *testing.T) {
	jw := &Converter{Mapper: JordanWigner{}, NumParticles: [2]int{1, 1}}
	bits, err := jw.OccupationBits(4)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, false}, bits)

	par := &Converter{Mapper: Parity{}, NumParticles: [2]int{1, 1}}
	bits, err = par.OccupationBits(4)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false, false}, bits)

	red := &Converter{Mapper: Parity{}, TwoQubitReduction: true, NumParticles: [2]int{1, 1}}
	bits, err = red.OccupationBits(4)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, bits)
}

func TestAddStdRoundTrip(t *testing.T) {
	op, err := NewOp(3)
	require.NoError(t, err)
	require.NoError(t, op.AddStd("XYZ", 2i))
	require.NoError(t, op.AddStd("IIY", 1))

	terms := op.StdTerms()
	require.Len(t, terms, 2)
	assert.Equal(t, Term{Pauli: "IIY", Coeff: 1}, terms[0])
	assert.Equal(t, Term{Pauli: "XYZ", Coeff: 2i}, terms[1])

	// same string accumulates and can cancel
	require.NoError(t, op.AddStd("IIY", -1))
	assert.Equal(t, 1, op.Len())

	require.Error(t, op.AddStd("XX", 1))
	require.Error(t, op.AddStd("XQZ", 1))
}

func TestAddStdPhaseConsistentWithMul(t *testing.T) {
	y, err := NewOp(1)
	require.NoError(t, err)
	require.NoError(t, y.AddStd("Y", 1))

	sq, err := y.Mul(y)
	require.NoError(t, err)
	id, err := Identity(1, 1)
	require.NoError(t, err)
	assert.True(t, sq.Equal(id, 1e-14))
}

func TestTaperedQubitCount(t *testing.T) {
	conv := &Converter{Mapper: JordanWigner{}}
	n, err := conv.TaperedQubitCount(4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	conv.Taper = func(op *Op) (*Op, error) {
		return Identity(op.Qubits()-1, 1)
	}
	n, err = conv.TaperedQubitCount(4)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	conv.Taper = func(op *Op) (*Op, error) {
		return nil, fmt.Errorf("no symmetry sector")
	}
	_, err = conv.TaperedQubitCount(4)
	require.ErrorIs(t, err, gonature.ErrIncompatibleMapping)
}
