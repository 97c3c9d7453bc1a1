// builder.go --  This file is part of gonature project.
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
package fermion

import (
	"fmt"

	"github.com/dairdre/gonature"
)

// CoeffThreshold is the magnitude below which integral entries are skipped.
// Dropping them keeps the operator size proportional to the physically
// meaningful content of the tensors.
const CoeffThreshold = 1e-12

// FromIntegrals builds a second-quantized operator from a one-body integral
// matrix and an optional two-body integral tensor.
//
// Index convention, fixed once for the whole library: oneBody[p][q] is the
// coefficient of a†_p a_q, and twoBody[p][q][r][s] is the coefficient of
// a†_p a†_q a_r a_s with a prefactor of 1/2 applied here. Drivers store their
// physicist-notation integrals reordered into this direct form, so no index
// permutation happens downstream of this function.
//
// Input tensors are never mutated. The result is deterministic for identical
// inputs: coefficients land in a map keyed by unique labels, and Terms()
// iterates in sorted label order.
func FromIntegrals(oneBody [][]float64, twoBody [][][][]float64) (*Op, error) {
	n := len(oneBody)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty one-body matrix", gonature.ErrShapeMismatch)
	}
	for i, row := range oneBody {
		if len(row) != n {
			return nil, fmt.Errorf("%w: one-body matrix row %d has %d entries, want %d",
				gonature.ErrShapeMismatch, i, len(row), n)
		}
	}
	if err := checkTwoBodyShape(twoBody, n); err != nil {
		return nil, err
	}

	op := &Op{modes: n, terms: make(map[string]complex128)}
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			if isZero(oneBody[p][q]) {
				continue
			}
			label := fmt.Sprintf("+_%d -_%d", p, q)
			op.terms[label] = complex(oneBody[p][q], 0)
		}
	}
	if twoBody == nil {
		return op, nil
	}
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				for s := 0; s < n; s++ {
					v := twoBody[p][q][r][s]
					if isZero(v) {
						continue
					}
					label := fmt.Sprintf("+_%d +_%d -_%d -_%d", p, q, r, s)
					op.terms[label] = complex(0.5*v, 0)
				}
			}
		}
	}
	return op, nil
}

func checkTwoBodyShape(twoBody [][][][]float64, n int) error {
	if twoBody == nil {
		return nil
	}
	if len(twoBody) != n {
		return fmt.Errorf("%w: two-body tensor has %d modes, one-body has %d",
			gonature.ErrShapeMismatch, len(twoBody), n)
	}
	for p := range twoBody {
		if len(twoBody[p]) != n {
			return fmt.Errorf("%w: two-body tensor dim 2 is %d at p=%d, want %d",
				gonature.ErrShapeMismatch, len(twoBody[p]), p, n)
		}
		for q := range twoBody[p] {
			if len(twoBody[p][q]) != n {
				return fmt.Errorf("%w: two-body tensor dim 3 is %d at p=%d q=%d, want %d",
					gonature.ErrShapeMismatch, len(twoBody[p][q]), p, q, n)
			}
			for r := range twoBody[p][q] {
				if len(twoBody[p][q][r]) != n {
					return fmt.Errorf("%w: two-body tensor dim 4 is %d at p=%d q=%d r=%d, want %d",
						gonature.ErrShapeMismatch, len(twoBody[p][q][r]), p, q, r, n)
				}
			}
		}
	}
	return nil
}
