// driver.go --  This file is part of gonature project.
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

package hf

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dairdre/gonature"
	"github.com/dairdre/gonature/molecule"
)

// Driver runs the built-in restricted Hartree-Fock engine and delivers the
// molecular-orbital integral snapshot. It implements molecule.Driver.
type Driver struct {
	Atoms  []Atom
	Basis  string
	Charge int

	SCF    SCFOptions
	Logger *zap.Logger
}

// Run computes AO integrals, converges the mean field and returns the
// spin-orbital snapshot in the MO basis.
func (d *Driver) Run() (*molecule.QMolecule, error) {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(d.Atoms) == 0 {
		return nil, fmt.Errorf("%w: driver has no atoms", gonature.ErrInvalidModeCount)
	}

	nelec := -d.Charge
	for _, a := range d.Atoms {
		nelec += a.Z
	}
	if nelec <= 0 || nelec%2 != 0 {
		return nil, fmt.Errorf("%w: restricted driver needs an even electron count, got %d",
			gonature.ErrSCFNotConverged, nelec)
	}

	var aos []AO
	for _, a := range d.Atoms {
		basis, err := BasisFor(a, d.Basis)
		if err != nil {
			return nil, err
		}
		aos = append(aos, basis...)
	}
	logger.Info("built basis",
		zap.Int("atoms", len(d.Atoms)),
		zap.Int("aos", len(aos)),
		zap.String("basis", d.Basis))

	s := Overlap(aos)
	t := Kinetic(aos)
	ven := NuclearAttraction(aos, d.Atoms)
	vee := ElectronRepulsion(aos)
	dipX, dipY, dipZ := DipoleMoment(aos)

	opts := d.SCF
	if opts.Logger == nil {
		opts.Logger = logger
	}
	res, err := RunSCF(s, t, ven, vee, nelec/2, opts)
	if err != nil {
		return nil, err
	}

	enn := NuclearRepulsion(d.Atoms)
	logger.Info("mean field converged",
		zap.Float64("electronic", res.Energy),
		zap.Float64("nuclearRepulsion", enn),
		zap.Float64("total", res.Energy+enn))

	n := len(aos)
	h1 := zeroMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			h1[i][j] = t[i][j] + ven[i][j]
		}
	}
	h1MO := transformOneBody(h1, res.Coeffs)
	eriMO := transformTwoBody(vee, res.Coeffs)

	q := &molecule.QMolecule{
		OneBody:          expandOneBody(h1MO),
		TwoBody:          expandTwoBody(eriMO),
		DipoleX:          expandOneBody(transformOneBody(dipX, res.Coeffs)),
		DipoleY:          expandOneBody(transformOneBody(dipY, res.Coeffs)),
		DipoleZ:          expandOneBody(transformOneBody(dipZ, res.Coeffs)),
		NumAlpha:         nelec / 2,
		NumBeta:          nelec / 2,
		OrbitalEnergies:  res.OrbitalEnergies,
		NuclearRepulsion: enn,
		NuclearDipole:    NuclearDipole(d.Atoms),
		HFEnergy:         res.Energy + enn,
	}
	return q, q.Validate()
}

// transformOneBody rotates an AO matrix into the MO basis, C^T M C.
func transformOneBody(m [][]float64, coeffs [][]float64) [][]float64 {
	n := len(m)
	out := zeroMatrix(n)
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					out[p][q] += coeffs[i][p] * m[i][j] * coeffs[j][q]
				}
			}
		}
	}
	return out
}

// transformTwoBody rotates the chemist AO tensor (ij|kl) into (pq|rs). The
// basis sizes here stay small, the quartic loop nest is fine.
func transformTwoBody(vee [][][][]float64, coeffs [][]float64) [][][][]float64 {
	n := len(vee)
	out := make([][][][]float64, n)
	for p := range out {
		out[p] = make([][][]float64, n)
		for q := range out[p] {
			out[p][q] = make([][]float64, n)
			for r := range out[p][q] {
				out[p][q][r] = make([]float64, n)
				for sdx := range out[p][q][r] {
					acc := 0.0
					for i := 0; i < n; i++ {
						for j := 0; j < n; j++ {
							for k := 0; k < n; k++ {
								for l := 0; l < n; l++ {
									acc += coeffs[i][p] * coeffs[j][q] * coeffs[k][r] * coeffs[l][sdx] * vee[i][j][k][l]
								}
							}
						}
					}
					out[p][q][r][sdx] = acc
				}
			}
		}
	}
	return out
}

// expandOneBody lifts a spatial MO matrix to the blocked spin-orbital basis.
func expandOneBody(m [][]float64) [][]float64 {
	n := len(m)
	out := zeroMatrix(2 * n)
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			out[p][q] = m[p][q]
			out[p+n][q+n] = m[p][q]
		}
	}
	return out
}

// expandTwoBody lifts the chemist MO tensor to the a†_p a†_q a_r a_s
// coefficient tensor over spin orbitals: T[p][q][r][s] is the chemist
// integral (P(p) P(s) | P(q) P(r)) when the spins pair up as
// sigma_p = sigma_s and sigma_q = sigma_r, zero otherwise.
func expandTwoBody(eri [][][][]float64) [][][][]float64 {
	n := len(eri)
	m := 2 * n
	out := make([][][][]float64, m)
	for p := range out {
		out[p] = make([][][]float64, m)
		for q := range out[p] {
			out[p][q] = make([][]float64, m)
			for r := range out[p][q] {
				out[p][q][r] = make([]float64, m)
			}
		}
	}
	spatial := func(p int) int { return p % n }
	spin := func(p int) int { return p / n }
	for p := 0; p < m; p++ {
		for q := 0; q < m; q++ {
			for r := 0; r < m; r++ {
				for s := 0; s < m; s++ {
					if spin(p) != spin(s) || spin(q) != spin(r) {
						continue
					}
					out[p][q][r][s] = eri[spatial(p)][spatial(s)][spatial(q)][spatial(r)]
				}
			}
		}
	}
	return out
}
