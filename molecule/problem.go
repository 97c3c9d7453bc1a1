// problem.go --  This file is part of gonature project.
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
	"github.com/dairdre/gonature/fermion"
)

// Operator positions in the slice returned by SecondQOps. Downstream
// consumers index into the list positionally, so the order is part of the
// contract.
const (
	OpElectronic = iota
	OpMagnetization
	OpAngularMomentum
	OpParticleNumber
	OpDipoleX
	OpDipoleY
	OpDipoleZ
)

// Problem orchestrates a driver and a transformer chain into the full list of
// second-quantized operators for one molecule. Instances hold no mutable
// state across calls; independent Problems (or repeated SecondQOps calls over
// potential-energy-surface points) are safe to run from parallel goroutines.
type Problem struct {
	driver       Driver
	transformers []Transformer
}

// NewProblem wires a driver with an optional transformer chain, applied
// left-to-right on every run.
func NewProblem(driver Driver, transformers ...Transformer) *Problem {
	return &Problem{driver: driver, transformers: transformers}
}

// Run invokes the driver and pushes the snapshot through the transformer
// chain. Driver and transformer errors are returned unchanged.
func (p *Problem) Run() (*QMolecule, error) {
	q, err := p.driver.Run()
	if err != nil {
		return nil, err
	}
	for _, t := range p.transformers {
		if q, err = t(q); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// SecondQOps runs the driver plus transformers and builds the operator list:
// electronic Hamiltonian, total magnetization, total angular momentum, total
// particle number, and x/y/z dipole operators when the snapshot carries
// dipole integrals. Without dipole data the list has exactly 4 entries; the
// dipoles are omitted silently rather than erroring, callers that require
// them use DipoleOps.
func (p *Problem) SecondQOps() ([]*fermion.Op, error) {
	q, err := p.Run()
	if err != nil {
		return nil, err
	}
	return BuildOps(q)
}

// BuildOps derives the operator list from an already-transformed snapshot.
func BuildOps(q *QMolecule) ([]*fermion.Op, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	n := q.NumModes()

	electronic, err := fermion.FromIntegrals(q.OneBody, q.TwoBody)
	if err != nil {
		return nil, fmt.Errorf("electronic operator: %w", err)
	}
	magInts, err := MagnetizationIntegrals(n)
	if err != nil {
		return nil, err
	}
	magnetization, err := fermion.FromIntegrals(magInts, nil)
	if err != nil {
		return nil, err
	}
	angH1, angH2, err := AngularMomentumIntegrals(n)
	if err != nil {
		return nil, err
	}
	angular, err := fermion.FromIntegrals(angH1, angH2)
	if err != nil {
		return nil, err
	}
	numInts, err := ParticleNumberIntegrals(n)
	if err != nil {
		return nil, err
	}
	particle, err := fermion.FromIntegrals(numInts, nil)
	if err != nil {
		return nil, err
	}

	ops := []*fermion.Op{electronic, magnetization, angular, particle}
	if q.HasDipoleIntegrals() {
		dipoles, err := DipoleOps(q)
		if err != nil {
			return nil, err
		}
		ops = append(ops, dipoles[:]...)
	}
	return ops, nil
}

// DipoleOps builds the x, y, z dipole operators. Unlike SecondQOps, which
// quietly skips absent dipole data, this explicit accessor fails with
// ErrMissingDipoleData so a caller that asked for dipoles finds out.
func DipoleOps(q *QMolecule) ([3]*fermion.Op, error) {
	var out [3]*fermion.Op
	if !q.HasDipoleIntegrals() {
		return out, fmt.Errorf("%w: snapshot over %d modes has no dipole integrals",
			gonature.ErrMissingDipoleData, q.NumModes())
	}
	for i, d := range [][][]float64{q.DipoleX, q.DipoleY, q.DipoleZ} {
		op, err := fermion.FromIntegrals(d, nil)
		if err != nil {
			return out, fmt.Errorf("dipole axis %d: %w", i, err)
		}
		out[i] = op
	}
	return out, nil
}
