// exact.go --  This file is part of gonature project.
// Mirzaeva Irina, 2024
//
//	gonature is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------

// Package solver provides reference (non-variational) solvers: exact
// diagonalization of second-quantized operators in the occupation-number
// basis, a ground-state pipeline over a molecular problem, and a
// potential-energy-surface sampler with a Morse potential fit.
package solver

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"gonum.org/v1/gonum/mat"

	"github.com/dairdre/gonature/fermion"
)

// ErrNotRealSymmetric reports an operator whose sector matrix is not a real
// symmetric matrix within tolerance. The exact solver only handles Hermitian
// operators with real coefficients.
var ErrNotRealSymmetric = errors.New("solver: operator matrix is not real symmetric")

const symTol = 1e-9

// ExactEigensolver diagonalizes fermionic operators exactly, restricted to
// the occupation-number states with fixed alpha and beta particle counts
// under the blocked spin convention.
type ExactEigensolver struct {
	NumParticles [2]int
}

// EigenState is the lowest eigenpair of an operator in one particle sector.
// It retains the sector basis so expectation values of further operators can
// be taken in the same state.
type EigenState struct {
	Energy float64

	modes     int
	states    []uint64
	stateIdx  map[uint64]int
	amplitude []float64
}

// sectorBasis lists all occupation bitmasks with the requested particle
// count per spin block, in increasing numeric order.
func sectorBasis(modes int, np [2]int) []uint64 {
	half := modes / 2
	var states []uint64
	for s := uint64(0); s < 1<<uint(modes); s++ {
		alpha := bits.OnesCount64(s & (1<<uint(half) - 1))
		beta := bits.OnesCount64(s >> uint(half))
		if alpha == np[0] && beta == np[1] {
			states = append(states, s)
		}
	}
	return states
}

// applyActions acts an operator string on a basis state, right to left,
// tracking the fermionic sign from anticommuting past occupied lower modes.
// ok is false when the string annihilates the state.
func applyActions(actions []fermion.Action, state uint64) (uint64, float64, bool) {
	sign := 1.0
	for i := len(actions) - 1; i >= 0; i-- {
		a := actions[i]
		bit := uint64(1) << uint(a.Mode)
		occupied := state&bit != 0
		if a.Creation == occupied {
			return 0, 0, false
		}
		if bits.OnesCount64(state&(bit-1))%2 == 1 {
			sign = -sign
		}
		state ^= bit
	}
	return state, sign, true
}

// sectorMatrix realizes the operator as a dense matrix over the sector basis.
func sectorMatrix(op *fermion.Op, states []uint64, stateIdx map[uint64]int) (*mat.SymDense, error) {
	dim := len(states)
	dense := mat.NewDense(dim, dim, nil)
	for _, term := range op.Terms() {
		if math.Abs(imag(term.Coeff)) > symTol {
			return nil, fmt.Errorf("%w: term %q has complex coefficient %v", ErrNotRealSymmetric, term.Label, term.Coeff)
		}
		actions, err := fermion.ParseLabel(term.Label, op.Modes())
		if err != nil {
			return nil, err
		}
		for j, st := range states {
			ns, sign, ok := applyActions(actions, st)
			if !ok {
				continue
			}
			i, inSector := stateIdx[ns]
			if !inSector {
				// the operator leaves the particle sector; a number-conserving
				// Hamiltonian never does
				return nil, fmt.Errorf("%w: term %q maps state %b outside the sector", ErrNotRealSymmetric, term.Label, st)
			}
			dense.Set(i, j, dense.At(i, j)+real(term.Coeff)*sign)
		}
	}

	for i := 0; i < dim; i++ {
		for j := i + 1; j < dim; j++ {
			if math.Abs(dense.At(i, j)-dense.At(j, i)) > symTol {
				return nil, fmt.Errorf("%w: asymmetry %g at (%d, %d)", ErrNotRealSymmetric,
					dense.At(i, j)-dense.At(j, i), i, j)
			}
		}
	}
	sym := mat.NewSymDense(dim, nil)
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			sym.SetSym(i, j, 0.5*(dense.At(i, j)+dense.At(j, i)))
		}
	}
	return sym, nil
}

// GroundState computes the lowest eigenpair of the operator in the
// configured particle sector.
func (e ExactEigensolver) GroundState(op *fermion.Op) (*EigenState, error) {
	modes := op.Modes()
	if modes%2 != 0 {
		return nil, fmt.Errorf("%w: %d modes is not a blocked spin-orbital count", ErrNotRealSymmetric, modes)
	}
	states := sectorBasis(modes, e.NumParticles)
	if len(states) == 0 {
		return nil, fmt.Errorf("%w: empty sector (%d, %d) over %d modes", ErrNotRealSymmetric,
			e.NumParticles[0], e.NumParticles[1], modes)
	}
	stateIdx := make(map[uint64]int, len(states))
	for i, s := range states {
		stateIdx[s] = i
	}

	sym, err := sectorMatrix(op, states, stateIdx)
	if err != nil {
		return nil, err
	}
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(sym, true); !ok {
		return nil, fmt.Errorf("%w: eigendecomposition failed", ErrNotRealSymmetric)
	}
	var vecs mat.Dense
	eigsym.VectorsTo(&vecs)

	dim := len(states)
	amp := make([]float64, dim)
	for i := 0; i < dim; i++ {
		amp[i] = vecs.At(i, 0)
	}
	return &EigenState{
		Energy:    eigsym.Values(nil)[0],
		modes:     modes,
		states:    states,
		stateIdx:  stateIdx,
		amplitude: amp,
	}, nil
}

// Expectation evaluates <psi|op|psi> for an operator over the same modes.
func (s *EigenState) Expectation(op *fermion.Op) (float64, error) {
	if op.Modes() != s.modes {
		return 0, fmt.Errorf("%w: operator has %d modes, state has %d", ErrNotRealSymmetric, op.Modes(), s.modes)
	}
	res := 0.0
	for _, term := range op.Terms() {
		if math.Abs(imag(term.Coeff)) > symTol {
			return 0, fmt.Errorf("%w: term %q has complex coefficient %v", ErrNotRealSymmetric, term.Label, term.Coeff)
		}
		actions, err := fermion.ParseLabel(term.Label, s.modes)
		if err != nil {
			return 0, err
		}
		for j, st := range s.states {
			ns, sign, ok := applyActions(actions, st)
			if !ok {
				continue
			}
			if i, inSector := s.stateIdx[ns]; inSector {
				res += s.amplitude[i] * real(term.Coeff) * sign * s.amplitude[j]
			}
		}
	}
	return res, nil
}
