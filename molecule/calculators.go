// calculators.go --  This file is part of gonature project.
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
package molecule

import (
	"fmt"

	"github.com/dairdre/gonature"
)

// The calculators below are pure: for a given mode count they return fresh
// tensors describing one observable each, in the same index convention as
// fermion.FromIntegrals (two-body slot [p][q][r][s] multiplies a†_p a†_q a_r a_s
// with the builder applying the 1/2 prefactor).

func checkModeCount(numModes int) error {
	if numModes <= 0 || numModes%2 != 0 {
		return fmt.Errorf("%w: %d is not a positive even integer", gonature.ErrInvalidModeCount, numModes)
	}
	return nil
}

func zeroMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

func zeroTensor4(n int) [][][][]float64 {
	t := make([][][][]float64, n)
	for p := range t {
		t[p] = make([][][]float64, n)
		for q := range t[p] {
			t[p][q] = make([][]float64, n)
			for r := range t[p][q] {
				t[p][q][r] = make([]float64, n)
			}
		}
	}
	return t
}

// ParticleNumberIntegrals returns the one-body tensor of the total particle
// number operator: the identity matrix over all spin-orbital modes.
func ParticleNumberIntegrals(numModes int) ([][]float64, error) {
	if err := checkModeCount(numModes); err != nil {
		return nil, err
	}
	h1 := zeroMatrix(numModes)
	for p := 0; p < numModes; p++ {
		h1[p][p] = 1
	}
	return h1, nil
}

// MagnetizationIntegrals returns the one-body tensor of the total spin
// projection S_z: +1/2 on alpha modes, -1/2 on beta modes under the blocked
// spin layout.
func MagnetizationIntegrals(numModes int) ([][]float64, error) {
	if err := checkModeCount(numModes); err != nil {
		return nil, err
	}
	h1 := zeroMatrix(numModes)
	half := numModes / 2
	for p := 0; p < numModes; p++ {
		if p < half {
			h1[p][p] = 0.5
		} else {
			h1[p][p] = -0.5
		}
	}
	return h1, nil
}

// AngularMomentumIntegrals returns one- and two-body tensors of the total
// spin operator S² = S_z² + (S₊S₋ + S₋S₊)/2. A single electron yields the
// eigenvalue 3/4, a closed-shell pair 0 and a same-spin pair 2, which the
// tests check through exact diagonalization.
func AngularMomentumIntegrals(numModes int) ([][]float64, [][][][]float64, error) {
	if err := checkModeCount(numModes); err != nil {
		return nil, nil, err
	}
	half := numModes / 2
	h1 := zeroMatrix(numModes)
	h2 := zeroTensor4(numModes)

	for p := 0; p < half; p++ {
		pa, pb := p, p+half

		// S_z² diagonal (1/4)(n_pα + n_pβ) plus the ladder diagonal
		// (1/2)(n_pα + n_pβ) give 3/4 per mode.
		h1[pa][pa] += 0.75
		h1[pb][pb] += 0.75

		// Same-orbital pair contributions: -(1/2) n_pα n_pβ from S_z²
		// and from each ladder ordering. Slot values are twice the operator
		// coefficient because the builder halves them.
		h2[pa][pb][pb][pa] += -2 // S_z² (-1) and S₊S₋/2 (-1)
		h2[pb][pa][pa][pb] += -1 // S₋S₊/2

		for q := 0; q < half; q++ {
			if q == p {
				continue
			}
			qa, qb := q, q+half

			// S_z² cross terms (±1/4) n_pσ n_qτ.
			h2[pa][qa][qa][pa] += 0.5
			h2[pb][qb][qb][pb] += 0.5
			h2[pa][qb][qb][pa] += -0.5
			h2[pb][qa][qa][pb] += -0.5

			// Ladder exchange: (1/2) a†_pα a†_qβ a_qα a_pβ and its
			// spin-flipped partner.
			h2[pa][qb][qa][pb] += 1
			h2[pb][qa][qb][pa] += 1
		}
	}
	return h1, h2, nil
}
