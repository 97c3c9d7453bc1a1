// mapper.go --  This file is part of gonature project.
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
package qubit

import (
	"fmt"

	"github.com/dairdre/gonature/fermion"
)

// Mapper converts a second-quantized fermionic operator into a qubit
// operator over as many qubits as there are modes. Mappings must use the
// same mode-index convention as the fermion package (blocked spins, no
// index gaps).
type Mapper interface {
	Map(op *fermion.Op) (*Op, error)
}

// modeSets describes one mode's ladder operator in the update/parity/
// remainder form common to the occupation-basis encodings:
//
//	a_p  = 1/2 X_U (X_p Z_P + i Y_p Z_R)
//
// and the creation operator with -i in place of +i. Jordan-Wigner uses
// U = {}, P = R = {0..p-1}; the parity encoding uses U = {p+1..}, P = {p-1},
// R = {}.
type modeSets func(p, n int) (update, parity, remainder uint64)

// ladder builds a_p (or a†_p for dagger) as a two-string Pauli operator.
func ladder(sets modeSets, p, n int, dagger bool) *Op {
	update, par, rem := sets(p, n)
	bit := uint64(1) << uint(p)
	op := &Op{qubits: n, terms: map[label]complex128{}}
	// X_U X_p Z_P term.
	op.terms[label{x: update | bit, z: par}] = 0.5
	// i Y_p = i (i X_p Z_p) = -X_p Z_p, so the second string lives at
	// masks (U|p, R|p) with coefficient -1/2, flipped for the creation op.
	c := complex128(-0.5)
	if dagger {
		c = 0.5
	}
	op.terms[label{x: update | bit, z: rem | bit}] = c
	return op
}

func mapWithSets(op *fermion.Op, sets modeSets) (*Op, error) {
	n := op.Modes()
	if n > MaxQubits {
		return nil, fmt.Errorf("operator over %d modes exceeds %d-qubit mapper limit", n, MaxQubits)
	}
	out, err := NewOp(n)
	if err != nil {
		return nil, err
	}
	for _, term := range op.Terms() {
		actions, err := fermion.ParseLabel(term.Label, n)
		if err != nil {
			return nil, err
		}
		acc, err := Identity(n, term.Coeff)
		if err != nil {
			return nil, err
		}
		for _, a := range actions {
			if acc, err = acc.Mul(ladder(sets, a.Mode, n, a.Creation)); err != nil {
				return nil, err
			}
		}
		if out, err = out.Add(acc); err != nil {
			return nil, err
		}
	}
	return out.Simplify(1e-12), nil
}

// JordanWigner maps mode p onto qubit p with a Z parity chain on all lower
// qubits. Occupation numbers map one-to-one onto qubit states.
type JordanWigner struct{}

// Map implements Mapper.
func (JordanWigner) Map(op *fermion.Op) (*Op, error) {
	return mapWithSets(op, func(p, n int) (uint64, uint64, uint64) {
		below := uint64(1)<<uint(p) - 1
		return 0, below, below
	})
}

// Parity stores running occupation parities: qubit j holds the parity of
// modes 0..j. The last qubit of each spin block then carries a conserved
// value, which TwoQubitReduction exploits.
type Parity struct{}

// Map implements Mapper.
func (Parity) Map(op *fermion.Op) (*Op, error) {
	return mapWithSets(op, func(p, n int) (uint64, uint64, uint64) {
		var above uint64
		for j := p + 1; j < n; j++ {
			above |= 1 << uint(j)
		}
		var prev uint64
		if p > 0 {
			prev = 1 << uint(p-1)
		}
		return above, prev, 0
	})
}
