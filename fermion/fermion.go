// fermion.go --  This file is part of gonature project.
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

// Package fermion implements second-quantized fermionic operators: weighted
// sums of creation/annihilation operator strings over a fixed number of
// spin-orbital modes, plus the builder that produces them from one- and
// two-body molecular integral tensors.
package fermion

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strconv"
	"strings"

	"github.com/dairdre/gonature"
)

// Action is a single creation or annihilation operator acting on one mode.
type Action struct {
	Creation bool
	Mode     int
}

// Label returns the token form of the action, e.g. "+_3" or "-_0".
func (a Action) Label() string {
	if a.Creation {
		return "+_" + strconv.Itoa(a.Mode)
	}
	return "-_" + strconv.Itoa(a.Mode)
}

// Op is an immutable weighted sum of creation/annihilation operator strings
// over Modes spin-orbital modes. Terms are keyed by label strings such as
// "+_0 -_1": whitespace-separated actions, applied right to left. Every mode
// index in a label lies in [0, Modes). Add and Scale return new operators;
// an Op is never mutated after construction.
type Op struct {
	modes int
	terms map[string]complex128
}

// New builds an operator over the given number of modes from a label-to-
// coefficient map. The input map is copied. Labels are validated against the
// mode count.
func New(modes int, terms map[string]complex128) (*Op, error) {
	if modes <= 0 {
		return nil, fmt.Errorf("%w: %d modes", gonature.ErrInvalidModeCount, modes)
	}
	op := &Op{modes: modes, terms: make(map[string]complex128, len(terms))}
	for label, coeff := range terms {
		if _, err := ParseLabel(label, modes); err != nil {
			return nil, err
		}
		if coeff != 0 {
			op.terms[label] = coeff
		}
	}
	return op, nil
}

// Zero returns the zero operator over the given number of modes.
func Zero(modes int) *Op {
	return &Op{modes: modes, terms: map[string]complex128{}}
}

// ParseLabel splits an operator label into actions, validating every mode
// index against the mode count.
func ParseLabel(label string, modes int) ([]Action, error) {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty operator label", gonature.ErrShapeMismatch)
	}
	actions := make([]Action, 0, len(fields))
	for _, f := range fields {
		var creation bool
		switch {
		case strings.HasPrefix(f, "+_"):
			creation = true
		case strings.HasPrefix(f, "-_"):
			creation = false
		default:
			return nil, fmt.Errorf("%w: malformed action %q in label %q", gonature.ErrShapeMismatch, f, label)
		}
		mode, err := strconv.Atoi(f[2:])
		if err != nil {
			return nil, fmt.Errorf("%w: malformed mode index %q in label %q", gonature.ErrShapeMismatch, f, label)
		}
		if mode < 0 || mode >= modes {
			return nil, fmt.Errorf("%w: mode %d outside [0, %d) in label %q", gonature.ErrShapeMismatch, mode, modes, label)
		}
		actions = append(actions, Action{Creation: creation, Mode: mode})
	}
	return actions, nil
}

// Modes returns the number of spin-orbital modes the operator acts on.
func (o *Op) Modes() int { return o.modes }

// Len returns the number of stored terms.
func (o *Op) Len() int { return len(o.terms) }

// Coeff returns the coefficient of the given label, zero when absent.
func (o *Op) Coeff(label string) complex128 { return o.terms[label] }

// Term is one labelled summand of an operator.
type Term struct {
	Label string
	Coeff complex128
}

// Terms returns the operator terms sorted by label. The order is
// deterministic so that repeated runs on the same input produce identical
// downstream operators.
func (o *Op) Terms() []Term {
	out := make([]Term, 0, len(o.terms))
	for label, coeff := range o.terms {
		out = append(out, Term{Label: label, Coeff: coeff})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// Add returns the sum of two operators over the same mode count.
func (o *Op) Add(other *Op) (*Op, error) {
	if other.modes != o.modes {
		return nil, fmt.Errorf("%w: adding operator over %d modes to operator over %d modes",
			gonature.ErrShapeMismatch, other.modes, o.modes)
	}
	sum := &Op{modes: o.modes, terms: make(map[string]complex128, len(o.terms)+len(other.terms))}
	for label, coeff := range o.terms {
		sum.terms[label] = coeff
	}
	for label, coeff := range other.terms {
		c := sum.terms[label] + coeff
		if c == 0 {
			delete(sum.terms, label)
		} else {
			sum.terms[label] = c
		}
	}
	return sum, nil
}

// Compose returns the operator product o*other (other acts first). Labels
// concatenate without normal ordering; the result stays exact because action
// strings apply right to left.
func (o *Op) Compose(other *Op) (*Op, error) {
	if other.modes != o.modes {
		return nil, fmt.Errorf("%w: composing operator over %d modes with operator over %d modes",
			gonature.ErrShapeMismatch, o.modes, other.modes)
	}
	out := &Op{modes: o.modes, terms: make(map[string]complex128, len(o.terms)*len(other.terms))}
	for la, ca := range o.terms {
		for lb, cb := range other.terms {
			label := la + " " + lb
			c := out.terms[label] + ca*cb
			if c == 0 {
				delete(out.terms, label)
			} else {
				out.terms[label] = c
			}
		}
	}
	return out, nil
}

// Scale returns the operator multiplied by a scalar.
func (o *Op) Scale(c complex128) *Op {
	out := &Op{modes: o.modes, terms: make(map[string]complex128, len(o.terms))}
	if c == 0 {
		return out
	}
	for label, coeff := range o.terms {
		out.terms[label] = c * coeff
	}
	return out
}

// Dagger returns the Hermitian conjugate: every action string reversed with
// creations and annihilations swapped, coefficients conjugated.
func (o *Op) Dagger() *Op {
	out := &Op{modes: o.modes, terms: make(map[string]complex128, len(o.terms))}
	for label, coeff := range o.terms {
		actions, _ := ParseLabel(label, o.modes)
		parts := make([]string, len(actions))
		for i, a := range actions {
			parts[len(actions)-1-i] = Action{Creation: !a.Creation, Mode: a.Mode}.Label()
		}
		out.terms[strings.Join(parts, " ")] = cmplx.Conj(coeff)
	}
	return out
}

// Equal reports whether two operators agree term by term within tol.
func (o *Op) Equal(other *Op, tol float64) bool {
	if o.modes != other.modes {
		return false
	}
	for label, coeff := range o.terms {
		if cmplx.Abs(coeff-other.terms[label]) > tol {
			return false
		}
	}
	for label, coeff := range other.terms {
		if _, ok := o.terms[label]; !ok && cmplx.Abs(coeff) > tol {
			return false
		}
	}
	return true
}

// String renders the operator with terms in label order.
func (o *Op) String() string {
	var sb strings.Builder
	for i, t := range o.Terms() {
		if i > 0 {
			sb.WriteString(" + ")
		}
		fmt.Fprintf(&sb, "(%g%+gi) %s", real(t.Coeff), imag(t.Coeff), t.Label)
	}
	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}

// isZero reports near-zero magnitude against the builder threshold.
func isZero(v float64) bool { return math.Abs(v) < CoeffThreshold }
