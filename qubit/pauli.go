// pauli.go --  This file is part of gonature project.
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

// Package qubit implements sparse Pauli-sum operators and the standard
// fermion-to-qubit mappings (Jordan-Wigner, parity) together with the
// two-qubit reduction applied in the parity basis.
package qubit

import (
	"fmt"
	"math/bits"
	"math/cmplx"
	"sort"
	"strings"
)

// label identifies one Pauli string in symplectic form: bit q of x flags an X
// factor on qubit q, bit q of z a Z factor. Both set means the product XZ
// (equal to -iY); the StdTerms accessor folds that phase back so callers see
// conventional X/Y/Z strings.
type label struct {
	x, z uint64
}

// Op is a sparse sum of Pauli strings with complex coefficients over a fixed
// qubit count. The internal string value is the per-qubit product X^x Z^z.
type Op struct {
	qubits int
	terms  map[label]complex128
}

// MaxQubits bounds operators to one machine word of symplectic masks.
const MaxQubits = 64

// NewOp returns the zero operator over the given qubit count.
func NewOp(qubits int) (*Op, error) {
	if qubits <= 0 || qubits > MaxQubits {
		return nil, fmt.Errorf("qubit count %d outside [1, %d]", qubits, MaxQubits)
	}
	return &Op{qubits: qubits, terms: map[label]complex128{}}, nil
}

// Identity returns coeff times the identity string.
func Identity(qubits int, coeff complex128) (*Op, error) {
	op, err := NewOp(qubits)
	if err != nil {
		return nil, err
	}
	op.terms[label{}] = coeff
	return op, nil
}

// Qubits returns the operator width.
func (o *Op) Qubits() int { return o.qubits }

// Len returns the number of stored strings.
func (o *Op) Len() int { return len(o.terms) }

func (o *Op) clone() *Op {
	out := &Op{qubits: o.qubits, terms: make(map[label]complex128, len(o.terms))}
	for l, c := range o.terms {
		out.terms[l] = c
	}
	return out
}

// AddTerm accumulates coeff on the XZ-form string given by the masks.
func (o *Op) addTerm(l label, coeff complex128) {
	c := o.terms[l] + coeff
	if c == 0 {
		delete(o.terms, l)
	} else {
		o.terms[l] = c
	}
}

// AddStd accumulates coeff times a conventional Pauli string (letters I, X,
// Y, Z, qubit 0 first) onto the operator. Inverse of StdTerms: the XZ = -iY
// phase is unfolded back into the stored coefficient.
func (o *Op) AddStd(pauli string, coeff complex128) error {
	if len(pauli) != o.qubits {
		return fmt.Errorf("Pauli string %q has %d qubits, operator has %d", pauli, len(pauli), o.qubits)
	}
	var l label
	ys := 0
	for q := 0; q < len(pauli); q++ {
		bit := uint64(1) << uint(q)
		switch pauli[q] {
		case 'I':
		case 'X':
			l.x |= bit
		case 'Y':
			l.x |= bit
			l.z |= bit
			ys++
		case 'Z':
			l.z |= bit
		default:
			return fmt.Errorf("invalid Pauli letter %q in %q", pauli[q], pauli)
		}
	}
	// conventional Y = i XZ, one factor i per Y position
	phase := complex128(1)
	switch ys % 4 {
	case 1:
		phase = 1i
	case 2:
		phase = -1
	case 3:
		phase = -1i
	}
	o.addTerm(l, coeff*phase)
	return nil
}

// Add returns the sum of two operators of equal width.
func (o *Op) Add(other *Op) (*Op, error) {
	if o.qubits != other.qubits {
		return nil, fmt.Errorf("adding %d-qubit operator to %d-qubit operator", other.qubits, o.qubits)
	}
	out := o.clone()
	for l, c := range other.terms {
		out.addTerm(l, c)
	}
	return out, nil
}

// Scale returns the operator multiplied by a scalar.
func (o *Op) Scale(c complex128) *Op {
	out := &Op{qubits: o.qubits, terms: make(map[label]complex128, len(o.terms))}
	if c == 0 {
		return out
	}
	for l, v := range o.terms {
		out.terms[l] = c * v
	}
	return out
}

// Mul returns the operator product o * other. Per qubit, Z^b X^c = (-1)^(b c)
// X^c Z^b, so the crossing phase is (-1)^popcount(z1 & x2) and the masks XOR.
func (o *Op) Mul(other *Op) (*Op, error) {
	if o.qubits != other.qubits {
		return nil, fmt.Errorf("multiplying %d-qubit operator by %d-qubit operator", o.qubits, other.qubits)
	}
	out := &Op{qubits: o.qubits, terms: map[label]complex128{}}
	for l1, c1 := range o.terms {
		for l2, c2 := range other.terms {
			sign := complex128(1)
			if bits.OnesCount64(l1.z&l2.x)%2 == 1 {
				sign = -1
			}
			out.addTerm(label{x: l1.x ^ l2.x, z: l1.z ^ l2.z}, sign*c1*c2)
		}
	}
	return out, nil
}

// Simplify drops strings with coefficient magnitude below tol.
func (o *Op) Simplify(tol float64) *Op {
	out := &Op{qubits: o.qubits, terms: make(map[label]complex128, len(o.terms))}
	for l, c := range o.terms {
		if cmplx.Abs(c) > tol {
			out.terms[l] = c
		}
	}
	return out
}

// Commutes reports whether every pair of strings across the two operators
// commutes. Two Pauli strings commute exactly when the symplectic products
// cancel: popcount(z1&x2) + popcount(x1&z2) is even.
func (o *Op) Commutes(other *Op) bool {
	for l1 := range o.terms {
		for l2 := range other.terms {
			n := bits.OnesCount64(l1.z&l2.x) + bits.OnesCount64(l1.x&l2.z)
			if n%2 == 1 {
				return false
			}
		}
	}
	return true
}

// Term is one Pauli string in conventional notation: qubit 0 is the first
// character, letters I, X, Y, Z.
type Term struct {
	Pauli string
	Coeff complex128
}

// StdTerms converts the internal XZ form to conventional Pauli strings,
// folding the XZ = -iY phase into the coefficient. Output is sorted by
// string for determinism.
func (o *Op) StdTerms() []Term {
	out := make([]Term, 0, len(o.terms))
	for l, c := range o.terms {
		var sb strings.Builder
		ys := 0
		for q := 0; q < o.qubits; q++ {
			xb := l.x>>uint(q)&1 == 1
			zb := l.z>>uint(q)&1 == 1
			switch {
			case xb && zb:
				sb.WriteByte('Y')
				ys++
			case xb:
				sb.WriteByte('X')
			case zb:
				sb.WriteByte('Z')
			default:
				sb.WriteByte('I')
			}
		}
		// X Z = -iY, so each Y position contributes a factor -i once the
		// string is rewritten with conventional Y letters.
		phase := complex128(1)
		switch ys % 4 {
		case 1:
			phase = -1i
		case 2:
			phase = -1
		case 3:
			phase = 1i
		}
		out = append(out, Term{Pauli: sb.String(), Coeff: c * phase})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pauli < out[j].Pauli })
	return out
}

// Equal compares operators term by term within tol.
func (o *Op) Equal(other *Op, tol float64) bool {
	if o.qubits != other.qubits {
		return false
	}
	for l, c := range o.terms {
		if cmplx.Abs(c-other.terms[l]) > tol {
			return false
		}
	}
	for l, c := range other.terms {
		if _, ok := o.terms[l]; !ok && cmplx.Abs(c) > tol {
			return false
		}
	}
	return true
}

// IsHermitian reports whether all conventional coefficients are real within tol.
func (o *Op) IsHermitian(tol float64) bool {
	for _, t := range o.StdTerms() {
		if cmplx.Abs(complex(0, imag(t.Coeff))) > tol {
			return false
		}
	}
	return true
}

// String renders the operator in conventional notation.
func (o *Op) String() string {
	terms := o.StdTerms()
	if len(terms) == 0 {
		return "0"
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = fmt.Sprintf("(%g%+gi)*%s", real(t.Coeff), imag(t.Coeff), t.Pauli)
	}
	return strings.Join(parts, " + ")
}
