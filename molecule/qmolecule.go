// qmolecule.go --  This file is part of gonature project.
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

// Package molecule holds the molecular integral snapshot produced by
// electronic-structure drivers, the transformer chain that reduces it, the
// auxiliary integral calculators and the molecular problem that turns all of
// it into second-quantized operators.
//
// Spin-orbital modes use the blocked convention throughout: for n spatial
// orbitals, modes 0..n-1 are the alpha spin orbitals and modes n..2n-1 the
// beta spin orbitals of the same spatial orbital, in the same order.
package molecule

import (
	"fmt"

	"github.com/dairdre/gonature"
)

// QMolecule is an immutable snapshot of molecular integrals in the
// spin-orbital basis. A driver produces one per Run call; transformers derive
// new snapshots from it without mutating the original. OneBody[p][q] is the
// coefficient of a†_p a_q and TwoBody[p][q][r][s] the coefficient of
// a†_p a†_q a_r a_s (before the builder's 1/2 prefactor), matching
// fermion.FromIntegrals.
type QMolecule struct {
	// OneBody is the 2n x 2n spin-orbital core-Hamiltonian tensor.
	OneBody [][]float64
	// TwoBody is the 2n^4 spin-orbital electron-repulsion tensor.
	TwoBody [][][][]float64

	// DipoleX, DipoleY, DipoleZ are optional one-body dipole moment tensors.
	// All three are present or all three are nil.
	DipoleX [][]float64
	DipoleY [][]float64
	DipoleZ [][]float64

	// NumAlpha and NumBeta are the particle counts per spin block.
	NumAlpha int
	NumBeta  int

	// OrbitalEnergies are the spatial molecular orbital energies.
	OrbitalEnergies []float64

	// NuclearRepulsion is the classical nucleus-nucleus energy.
	NuclearRepulsion float64
	// NuclearDipole is the nuclear contribution to the dipole moment.
	NuclearDipole [3]float64

	// CoreEnergy and CoreDipole accumulate contributions of orbitals removed
	// by the transformer chain. Zero for a fresh driver snapshot.
	CoreEnergy float64
	CoreDipole [3]float64

	// HFEnergy is the driver's converged mean-field total energy, when the
	// driver computes one.
	HFEnergy float64
}

// NumModes returns the number of spin-orbital modes.
func (q *QMolecule) NumModes() int { return len(q.OneBody) }

// HasDipoleIntegrals reports whether the snapshot carries dipole tensors.
func (q *QMolecule) HasDipoleIntegrals() bool {
	return q.DipoleX != nil && q.DipoleY != nil && q.DipoleZ != nil
}

// Validate checks internal shape consistency of the snapshot.
func (q *QMolecule) Validate() error {
	n := q.NumModes()
	if n == 0 || n%2 != 0 {
		return fmt.Errorf("%w: snapshot has %d modes", gonature.ErrInvalidModeCount, n)
	}
	for i, row := range q.OneBody {
		if len(row) != n {
			return fmt.Errorf("%w: one-body row %d has %d entries, want %d",
				gonature.ErrShapeMismatch, i, len(row), n)
		}
	}
	if q.TwoBody != nil && len(q.TwoBody) != n {
		return fmt.Errorf("%w: two-body tensor has %d modes, one-body has %d",
			gonature.ErrShapeMismatch, len(q.TwoBody), n)
	}
	for _, d := range [][][]float64{q.DipoleX, q.DipoleY, q.DipoleZ} {
		if d != nil && len(d) != n {
			return fmt.Errorf("%w: dipole tensor has %d modes, one-body has %d",
				gonature.ErrShapeMismatch, len(d), n)
		}
	}
	return nil
}

// copyMatrix clones a square matrix.
func copyMatrix(m [][]float64) [][]float64 {
	if m == nil {
		return nil
	}
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
