// circuit.go --  This file is part of gonature project.
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

// Package circuit provides a minimal parameterized circuit model: enough
// structure for reference states and Pauli-evolution ansatz terms to be
// assembled, inspected and handed to an external backend. Gate execution is
// out of scope.
package circuit

import (
	"fmt"
	"strings"

	"github.com/dairdre/gonature"
)

// Gate is one circuit instruction. Fixed gates carry only Name and Qubits.
// Parameterized evolution gates additionally carry the Pauli string they
// evolve under, the free parameter name and a fixed angle coefficient: the
// realized rotation angle is Coeff * value(Param).
type Gate struct {
	Name   string
	Qubits []int
	Pauli  string
	Param  string
	Coeff  float64
}

// Circuit is an ordered gate list over a fixed qubit count with named free
// parameters. Parameters are registered in order of first use.
type Circuit struct {
	numQubits int
	gates     []Gate
	params    []string
	seen      map[string]bool
}

// New returns an empty circuit over the given number of qubits.
func New(numQubits int) (*Circuit, error) {
	if numQubits <= 0 {
		return nil, fmt.Errorf("%w: circuit needs a positive qubit count, got %d",
			gonature.ErrIncompatibleMapping, numQubits)
	}
	return &Circuit{numQubits: numQubits, seen: map[string]bool{}}, nil
}

// NumQubits returns the circuit width.
func (c *Circuit) NumQubits() int { return c.numQubits }

// Gates returns the instruction list in application order. Qubit lists are
// copied, so mutating a returned gate cannot corrupt the circuit.
func (c *Circuit) Gates() []Gate {
	out := make([]Gate, len(c.gates))
	for i, g := range c.gates {
		g.Qubits = append([]int(nil), g.Qubits...)
		out[i] = g
	}
	return out
}

// Parameters returns the free parameter names in order of first use.
func (c *Circuit) Parameters() []string { return append([]string(nil), c.params...) }

// NumParameters returns the count of distinct free parameters.
func (c *Circuit) NumParameters() int { return len(c.params) }

func (c *Circuit) checkQubit(q int) error {
	if q < 0 || q >= c.numQubits {
		return fmt.Errorf("%w: qubit %d outside circuit of width %d",
			gonature.ErrIncompatibleMapping, q, c.numQubits)
	}
	return nil
}

// X appends a Pauli-X gate on one qubit.
func (c *Circuit) X(qubit int) error {
	if err := c.checkQubit(qubit); err != nil {
		return err
	}
	c.gates = append(c.gates, Gate{Name: "x", Qubits: []int{qubit}})
	return nil
}

// Evolve appends a Pauli-evolution gate exp(-i/2 * coeff * param * P) acting
// on the non-identity qubits of the Pauli string. The string uses qubit 0 as
// its first character and must span the full circuit width.
func (c *Circuit) Evolve(pauli, param string, coeff float64) error {
	if len(pauli) != c.numQubits {
		return fmt.Errorf("%w: Pauli string %q has %d qubits, circuit has %d",
			gonature.ErrIncompatibleMapping, pauli, len(pauli), c.numQubits)
	}
	var active []int
	for q := 0; q < len(pauli); q++ {
		switch pauli[q] {
		case 'I':
		case 'X', 'Y', 'Z':
			active = append(active, q)
		default:
			return fmt.Errorf("%w: invalid Pauli letter %q in %q",
				gonature.ErrIncompatibleMapping, pauli[q], pauli)
		}
	}
	if len(active) == 0 {
		// global phase, no gate
		return nil
	}
	c.gates = append(c.gates, Gate{Name: "pauli_evolution", Qubits: active, Pauli: pauli, Param: param, Coeff: coeff})
	if param != "" && !c.seen[param] {
		c.seen[param] = true
		c.params = append(c.params, param)
	}
	return nil
}

// Append concatenates another circuit of identical width onto this one.
func (c *Circuit) Append(other *Circuit) error {
	if other.numQubits != c.numQubits {
		return fmt.Errorf("%w: appending %d-qubit circuit to %d-qubit circuit",
			gonature.ErrIncompatibleMapping, other.numQubits, c.numQubits)
	}
	for _, g := range other.gates {
		g.Qubits = append([]int(nil), g.Qubits...)
		c.gates = append(c.gates, g)
		if g.Param != "" && !c.seen[g.Param] {
			c.seen[g.Param] = true
			c.params = append(c.params, g.Param)
		}
	}
	return nil
}

// String renders a compact text form, one gate per line.
func (c *Circuit) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "circuit[%d qubits, %d parameters]\n", c.numQubits, len(c.params))
	for _, g := range c.gates {
		if g.Name == "pauli_evolution" {
			fmt.Fprintf(&sb, "  evolve %s by %g*%s\n", g.Pauli, g.Coeff, g.Param)
		} else {
			fmt.Fprintf(&sb, "  %s %v\n", g.Name, g.Qubits)
		}
	}
	return sb.String()
}
