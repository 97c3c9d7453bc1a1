// converter.go --  This file is part of gonature project.
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

	"github.com/dairdre/gonature"
	"github.com/dairdre/gonature/fermion"
)

// Converter bundles a mapper with the symmetry reductions that must be
// applied identically to every operator and to the reference-state
// occupation bits, so that all circuit pieces live on the same qubit count
// and in the same symmetry sector.
type Converter struct {
	Mapper Mapper

	// TwoQubitReduction removes the two conserved-parity qubits of the
	// parity encoding. Requires the Parity mapper and the particle counts
	// that fix the symmetry sector.
	TwoQubitReduction bool
	NumParticles      [2]int

	// Taper optionally applies an additional symmetry tapering step supplied
	// by an external mapping collaborator. It runs after the two-qubit
	// reduction on operators; TaperBits is its counterpart for the
	// reference-state bits. Set both or neither.
	Taper     func(*Op) (*Op, error)
	TaperBits func([]bool) ([]bool, error)
}

// QubitCount returns the circuit width the converter produces for a given
// number of fermionic modes, before external tapering.
func (c *Converter) QubitCount(numModes int) int {
	if c.TwoQubitReduction {
		return numModes - 2
	}
	return numModes
}

// TaperedQubitCount returns the circuit width including the external
// tapering step, found by pushing an identity probe through Taper. Without a
// Taper hook it equals QubitCount.
func (c *Converter) TaperedQubitCount(numModes int) (int, error) {
	n := c.QubitCount(numModes)
	if c.Taper == nil {
		return n, nil
	}
	probe, err := Identity(n, 1)
	if err != nil {
		return 0, err
	}
	tapered, err := c.Taper(probe)
	if err != nil {
		return 0, fmt.Errorf("%w: tapering identity probe: %v", gonature.ErrIncompatibleMapping, err)
	}
	return tapered.Qubits(), nil
}

// Convert maps a fermionic operator and applies the configured reductions.
func (c *Converter) Convert(op *fermion.Op) (*Op, error) {
	mapped, err := c.Mapper.Map(op)
	if err != nil {
		return nil, err
	}
	if c.TwoQubitReduction {
		if _, ok := c.Mapper.(Parity); !ok {
			return nil, fmt.Errorf("%w: two-qubit reduction requires the parity mapper",
				gonature.ErrIncompatibleMapping)
		}
		if mapped, err = c.reduce(mapped); err != nil {
			return nil, err
		}
	}
	if c.Taper != nil {
		if mapped, err = c.Taper(mapped); err != nil {
			return nil, err
		}
	}
	return mapped, nil
}

// reduce removes the parity-encoding qubits n/2-1 and n-1, replacing their Z
// factors by the sector eigenvalues fixed by the particle counts:
// (-1)^n_alpha on the spin-block boundary, (-1)^(n_alpha+n_beta) on the last
// qubit. Any X factor on a removed qubit means the operator leaves the
// symmetry sector and cannot be reduced.
func (c *Converter) reduce(op *Op) (*Op, error) {
	n := op.qubits
	if n < 4 || n%2 != 0 {
		return nil, fmt.Errorf("%w: cannot two-qubit-reduce a %d-qubit operator",
			gonature.ErrIncompatibleMapping, n)
	}
	mid, last := n/2-1, n-1

	alphaSign := complex128(1)
	if c.NumParticles[0]%2 == 1 {
		alphaSign = -1
	}
	totalSign := complex128(1)
	if (c.NumParticles[0]+c.NumParticles[1])%2 == 1 {
		totalSign = -1
	}

	out := &Op{qubits: n - 2, terms: map[label]complex128{}}
	for l, coeff := range op.terms {
		for _, q := range []int{mid, last} {
			if l.x>>uint(q)&1 == 1 {
				return nil, fmt.Errorf("%w: operator flips conserved parity qubit %d",
					gonature.ErrIncompatibleMapping, q)
			}
		}
		if l.z>>uint(mid)&1 == 1 {
			coeff *= alphaSign
		}
		if l.z>>uint(last)&1 == 1 {
			coeff *= totalSign
		}
		out.addTerm(label{x: squeezeBits(l.x, mid, last), z: squeezeBits(l.z, mid, last)}, coeff)
	}
	return out.Simplify(1e-12), nil
}

// squeezeBits deletes bit positions a < b from the mask, shifting the higher
// bits down.
func squeezeBits(mask uint64, a, b int) uint64 {
	mask = deleteBit(mask, b)
	return deleteBit(mask, a)
}

func deleteBit(mask uint64, pos int) uint64 {
	low := mask & (1<<uint(pos) - 1)
	high := mask >> uint(pos+1)
	return low | high<<uint(pos)
}

// OccupationBits transforms blocked-convention occupation numbers through
// the same encoding and reduction as Convert, yielding the bits a reference
// state must set. The filled occupation follows the Fermi level per spin
// block: the lowest NumParticles[0] alpha and NumParticles[1] beta modes.
func (c *Converter) OccupationBits(numModes int) ([]bool, error) {
	if numModes <= 0 || numModes%2 != 0 {
		return nil, fmt.Errorf("%w: %d modes", gonature.ErrInvalidModeCount, numModes)
	}
	half := numModes / 2
	if c.NumParticles[0] > half || c.NumParticles[1] > half {
		return nil, fmt.Errorf("%w: particle counts (%d, %d) exceed %d orbitals per spin",
			gonature.ErrIncompatibleMapping, c.NumParticles[0], c.NumParticles[1], half)
	}
	occ := make([]bool, numModes)
	for i := 0; i < c.NumParticles[0]; i++ {
		occ[i] = true
	}
	for i := 0; i < c.NumParticles[1]; i++ {
		occ[half+i] = true
	}

	bitsOut := occ
	if _, parity := c.Mapper.(Parity); parity {
		bitsOut = make([]bool, numModes)
		run := false
		for i, b := range occ {
			run = run != b
			bitsOut[i] = run
		}
	}
	if c.TwoQubitReduction {
		if _, ok := c.Mapper.(Parity); !ok {
			return nil, fmt.Errorf("%w: two-qubit reduction requires the parity mapper",
				gonature.ErrIncompatibleMapping)
		}
		mid, last := half-1, numModes-1
		reduced := make([]bool, 0, numModes-2)
		for i, b := range bitsOut {
			if i != mid && i != last {
				reduced = append(reduced, b)
			}
		}
		bitsOut = reduced
	}
	if c.TaperBits != nil {
		return c.TaperBits(bitsOut)
	}
	return bitsOut, nil
}
