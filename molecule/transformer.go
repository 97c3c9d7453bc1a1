// transformer.go --  This file is part of gonature project.
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

// Transformer maps one integral snapshot to a new one. Implementations must
// be pure: the input snapshot is never mutated. Transformers chain
// left-to-right inside a Problem.
type Transformer func(*QMolecule) (*QMolecule, error)

// FreezeCore returns a transformer that removes the numCore lowest spatial
// orbitals, folding their mean-field contribution into CoreEnergy and
// CoreDipole of the reduced snapshot.
func FreezeCore(numCore int) Transformer {
	return func(q *QMolecule) (*QMolecule, error) {
		n := q.NumModes() / 2
		if numCore < 0 || numCore >= n {
			return nil, fmt.Errorf("%w: cannot freeze %d of %d spatial orbitals",
				gonature.ErrInvalidActiveSpace, numCore, n)
		}
		if numCore > q.NumAlpha || numCore > q.NumBeta {
			return nil, fmt.Errorf("%w: freezing %d orbitals but only (%d, %d) particles",
				gonature.ErrInvalidActiveSpace, numCore, q.NumAlpha, q.NumBeta)
		}
		frozen := seq(0, numCore)
		active := seq(numCore, n)
		return reduceOrbitals(q, frozen, active)
	}
}

// ActiveSpace returns a transformer that keeps numOrbitals spatial orbitals
// around the Fermi level holding numElectrons electrons, freezing the lower
// occupied orbitals and truncating the higher virtuals.
func ActiveSpace(numElectrons, numOrbitals int) Transformer {
	return func(q *QMolecule) (*QMolecule, error) {
		n := q.NumModes() / 2
		if numElectrons <= 0 || numElectrons%2 != 0 {
			return nil, fmt.Errorf("%w: active electron count %d must be positive and even",
				gonature.ErrInvalidActiveSpace, numElectrons)
		}
		occupied := q.NumAlpha // closed-shell reference
		numFrozen := occupied - numElectrons/2
		if numFrozen < 0 {
			return nil, fmt.Errorf("%w: %d active electrons exceed %d occupied orbitals",
				gonature.ErrInvalidActiveSpace, numElectrons, occupied)
		}
		if numFrozen+numOrbitals > n || numOrbitals <= 0 {
			return nil, fmt.Errorf("%w: window [%d, %d) outside %d spatial orbitals",
				gonature.ErrInvalidActiveSpace, numFrozen, numFrozen+numOrbitals, n)
		}
		frozen := seq(0, numFrozen)
		active := seq(numFrozen, numFrozen+numOrbitals)
		return reduceOrbitals(q, frozen, active)
	}
}

func seq(lo, hi int) []int {
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}

// reduceOrbitals produces a new snapshot over the active spatial orbitals,
// folding the frozen (doubly occupied) orbitals into effective one-body
// integrals and a scalar core energy. The effective integrals come from the
// usual inactive Fock contraction written in the library's direct tensor
// convention: T[p][q][r][s] multiplies a†_p a†_q a_r a_s, so the physicist
// element <pq|rs> is T[p][q][s][r].
func reduceOrbitals(q *QMolecule, frozenSpatial, activeSpatial []int) (*QMolecule, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	n := q.NumModes() / 2
	frozen := make([]int, 0, 2*len(frozenSpatial))
	for _, f := range frozenSpatial {
		frozen = append(frozen, f, f+n)
	}
	kept := make([]int, 0, 2*len(activeSpatial))
	for _, a := range activeSpatial {
		kept = append(kept, a)
	}
	for _, a := range activeSpatial {
		kept = append(kept, a+n)
	}

	// Effective one-body tensor over the original modes.
	eff := copyMatrix(q.OneBody)
	if q.TwoBody != nil {
		for t := 0; t < 2*n; t++ {
			for u := 0; u < 2*n; u++ {
				for _, i := range frozen {
					eff[t][u] += q.TwoBody[t][i][i][u] - q.TwoBody[t][i][u][i]
				}
			}
		}
	}

	coreEnergy := 0.0
	for _, i := range frozen {
		coreEnergy += q.OneBody[i][i]
	}
	if q.TwoBody != nil {
		for _, i := range frozen {
			for _, j := range frozen {
				coreEnergy += 0.5 * (q.TwoBody[i][j][j][i] - q.TwoBody[i][j][i][j])
			}
		}
	}

	out := &QMolecule{
		OneBody:          subMatrix(eff, kept),
		NumAlpha:         q.NumAlpha - len(frozenSpatial),
		NumBeta:          q.NumBeta - len(frozenSpatial),
		NuclearRepulsion: q.NuclearRepulsion,
		NuclearDipole:    q.NuclearDipole,
		CoreEnergy:       q.CoreEnergy + coreEnergy,
		CoreDipole:       q.CoreDipole,
		HFEnergy:         q.HFEnergy,
	}
	if q.TwoBody != nil {
		out.TwoBody = subTensor4(q.TwoBody, kept)
	}
	if q.HasDipoleIntegrals() {
		for axis, d := range [][][]float64{q.DipoleX, q.DipoleY, q.DipoleZ} {
			for _, i := range frozen {
				out.CoreDipole[axis] += d[i][i]
			}
		}
		out.DipoleX = subMatrix(q.DipoleX, kept)
		out.DipoleY = subMatrix(q.DipoleY, kept)
		out.DipoleZ = subMatrix(q.DipoleZ, kept)
	}
	if q.OrbitalEnergies != nil {
		es := make([]float64, 0, len(activeSpatial))
		for _, a := range activeSpatial {
			es = append(es, q.OrbitalEnergies[a])
		}
		out.OrbitalEnergies = es
	}
	return out, nil
}

func subMatrix(m [][]float64, kept []int) [][]float64 {
	out := make([][]float64, len(kept))
	for i, p := range kept {
		out[i] = make([]float64, len(kept))
		for j, r := range kept {
			out[i][j] = m[p][r]
		}
	}
	return out
}

func subTensor4(t [][][][]float64, kept []int) [][][][]float64 {
	k := len(kept)
	out := make([][][][]float64, k)
	for a, p := range kept {
		out[a] = make([][][]float64, k)
		for b, q := range kept {
			out[a][b] = make([][]float64, k)
			for c, r := range kept {
				out[a][b][c] = make([]float64, k)
				for d, s := range kept {
					out[a][b][c][d] = t[p][q][r][s]
				}
			}
		}
	}
	return out
}
