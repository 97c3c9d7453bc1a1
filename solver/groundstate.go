// groundstate.go --  This file is part of gonature project.
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

package solver

import (
	"go.uber.org/zap"

	"github.com/dairdre/gonature/molecule"
)

// GroundStateSolver runs a molecular problem end to end: driver, transformer
// chain, operator construction, exact diagonalization and expectation values
// of the auxiliary observables.
type GroundStateSolver struct {
	Problem *molecule.Problem
	Logger  *zap.Logger
}

// GroundStateResult is the solved electronic structure of one geometry.
type GroundStateResult struct {
	// ElectronicEnergy is the lowest eigenvalue of the electronic Hamiltonian
	// over the active space.
	ElectronicEnergy float64
	// TotalEnergy adds nuclear repulsion and the frozen-core shift.
	TotalEnergy float64

	NuclearRepulsion float64
	HFEnergy         float64

	ParticleNumber  float64
	Magnetization   float64
	AngularMomentum float64

	// Dipole is the total dipole moment (nuclear minus electronic), present
	// only when the snapshot carries dipole integrals.
	Dipole *[3]float64
}

// Solve computes the exact ground state for the problem's current geometry.
func (g *GroundStateSolver) Solve() (*GroundStateResult, error) {
	logger := g.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	q, err := g.Problem.Run()
	if err != nil {
		return nil, err
	}
	ops, err := molecule.BuildOps(q)
	if err != nil {
		return nil, err
	}

	eigen := ExactEigensolver{NumParticles: [2]int{q.NumAlpha, q.NumBeta}}
	state, err := eigen.GroundState(ops[molecule.OpElectronic])
	if err != nil {
		return nil, err
	}

	res := &GroundStateResult{
		ElectronicEnergy: state.Energy,
		TotalEnergy:      state.Energy + q.NuclearRepulsion + q.CoreEnergy,
		NuclearRepulsion: q.NuclearRepulsion,
		HFEnergy:         q.HFEnergy,
	}
	if res.Magnetization, err = state.Expectation(ops[molecule.OpMagnetization]); err != nil {
		return nil, err
	}
	if res.AngularMomentum, err = state.Expectation(ops[molecule.OpAngularMomentum]); err != nil {
		return nil, err
	}
	if res.ParticleNumber, err = state.Expectation(ops[molecule.OpParticleNumber]); err != nil {
		return nil, err
	}

	if q.HasDipoleIntegrals() {
		var dipole [3]float64
		for axis, op := range ops[molecule.OpDipoleX : molecule.OpDipoleZ+1] {
			electronic, err := state.Expectation(op)
			if err != nil {
				return nil, err
			}
			// CoreDipole holds the electronic dipole of frozen orbitals and
			// carries the electron sign with it
			dipole[axis] = q.NuclearDipole[axis] - q.CoreDipole[axis] - electronic
		}
		res.Dipole = &dipole
	}

	logger.Info("ground state solved",
		zap.Float64("electronic", res.ElectronicEnergy),
		zap.Float64("total", res.TotalEnergy),
		zap.Float64("particleNumber", res.ParticleNumber),
		zap.Float64("spinSquared", res.AngularMomentum))
	return res, nil
}
