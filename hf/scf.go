// scf.go --  This file is part of gonature project.
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
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/dairdre/gonature"
)

// SCFOptions tunes the self-consistent-field loop.
type SCFOptions struct {
	// TolEnergy and TolDensity are the convergence thresholds on the energy
	// change and on the RMS of the DIIS residual.
	TolEnergy  float64
	TolDensity float64
	MaxIter    int
	Logger     *zap.Logger
}

func (o SCFOptions) withDefaults() SCFOptions {
	if o.TolEnergy == 0 {
		o.TolEnergy = 1e-10
	}
	if o.TolDensity == 0 {
		o.TolDensity = 1e-8
	}
	if o.MaxIter == 0 {
		o.MaxIter = 100
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// SCFResult is the converged restricted mean field.
type SCFResult struct {
	// Energy is the electronic energy, without nuclear repulsion.
	Energy float64
	// Coeffs[i][o] is the weight of AO i in molecular orbital o.
	Coeffs [][]float64
	// OrbitalEnergies holds the Fock eigenvalues of the final iteration.
	OrbitalEnergies []float64
	Iterations      int
}

type scf struct {
	occupied int
	h1       [][]float64 // kinetic + nuclear attraction
	s        [][]float64
	vee      [][][][]float64
	s2inv    *mat.Dense
	coeffs   [][]float64
	density  [][]float64

	fockList  []*mat.Dense
	residuals []*mat.Dense
}

func flatten(arr [][]float64) []float64 {
	dim := len(arr)
	res := make([]float64, dim*dim)
	for i := range arr {
		for j := range arr[i] {
			res[i*dim+j] = arr[i][j]
		}
	}
	return res
}

// MatrixSqrtInverse computes S^{-1/2} by eigendecomposition of the symmetric
// positive-definite matrix S.
func MatrixSqrtInverse(s [][]float64) ([][]float64, error) {
	n := len(s)
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(mat.NewSymDense(n, flatten(s)), true); !ok {
		return nil, fmt.Errorf("%w: overlap eigendecomposition failed", gonature.ErrSCFNotConverged)
	}
	var ev mat.Dense
	eigsym.VectorsTo(&ev)
	vals := eigsym.Values(nil)
	sqrtVec := make([]float64, n)
	for i, v := range vals {
		if v <= 0 {
			return nil, fmt.Errorf("%w: overlap matrix is not positive definite (eigenvalue %g)",
				gonature.ErrSCFNotConverged, v)
		}
		sqrtVec[i] = math.Sqrt(v)
	}
	var sqrtInv mat.Dense
	sqrtInv.Mul(&ev, mat.NewDiagDense(n, sqrtVec))
	var evInv mat.Dense
	if err := evInv.Inverse(&ev); err != nil {
		return nil, fmt.Errorf("%w: %v", gonature.ErrSCFNotConverged, err)
	}
	sqrtInv.Mul(&sqrtInv, &evInv)
	if err := sqrtInv.Inverse(&sqrtInv); err != nil {
		return nil, fmt.Errorf("%w: %v", gonature.ErrSCFNotConverged, err)
	}

	out := make([][]float64, n)
	for i := range out {
		out[i] = append([]float64(nil), sqrtInv.RawRowView(i)...)
	}
	return out, nil
}

// RunSCF iterates the restricted Hartree-Fock equations with DIIS
// acceleration. occupied is the number of doubly occupied spatial orbitals.
func RunSCF(s, t, ven [][]float64, vee [][][][]float64, occupied int, opts SCFOptions) (*SCFResult, error) {
	opts = opts.withDefaults()
	n := len(s)
	if occupied <= 0 || occupied > n {
		return nil, fmt.Errorf("%w: %d occupied orbitals in a basis of %d",
			gonature.ErrSCFNotConverged, occupied, n)
	}

	h1 := zeroMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			h1[i][j] = t[i][j] + ven[i][j]
		}
	}

	s2inv, err := MatrixSqrtInverse(s)
	if err != nil {
		return nil, err
	}

	run := &scf{
		occupied: occupied,
		h1:       h1,
		s:        s,
		vee:      vee,
		s2inv:    mat.NewDense(n, n, flatten(s2inv)),
	}
	if err := run.initialGuess(); err != nil {
		return nil, err
	}
	run.buildDensity()

	energy := 0.0
	for iter := 1; iter <= opts.MaxIter; iter++ {
		prev := energy
		g := run.buildG()
		energy = run.electronicEnergy(g)

		fock := mat.NewDense(n, n, flatten(g))
		fock.Add(fock, mat.NewDense(n, n, flatten(run.h1)))
		run.fockList = append(run.fockList, mat.DenseCopyOf(fock))
		run.buildResidual(fock)
		drms := run.residualRMS()

		opts.Logger.Info("scf iteration",
			zap.Int("iter", iter),
			zap.Float64("energy", energy),
			zap.Float64("dE", energy-prev),
			zap.Float64("dRMS", drms))

		if math.Abs(energy-prev) < opts.TolEnergy && drms < opts.TolDensity {
			vals, err := run.updateOrbitals(fock)
			if err != nil {
				return nil, err
			}
			opts.Logger.Info("scf converged", zap.Int("iterations", iter), zap.Float64("energy", energy))
			return &SCFResult{
				Energy:          energy,
				Coeffs:          run.coeffs,
				OrbitalEnergies: vals,
				Iterations:      iter,
			}, nil
		}

		if iter > 1 {
			if extrap := run.extrapolateFock(n); extrap != nil {
				fock = extrap
			}
		}
		if _, err := run.updateOrbitals(fock); err != nil {
			return nil, err
		}
		run.buildDensity()
	}

	opts.Logger.Warn("scf did not converge", zap.Int("maxIter", opts.MaxIter))
	return nil, fmt.Errorf("%w: after %d iterations, last energy %g",
		gonature.ErrSCFNotConverged, opts.MaxIter, energy)
}

// initialGuess diagonalizes the core Hamiltonian.
func (r *scf) initialGuess() error {
	_, err := r.updateOrbitals(mat.NewDense(len(r.h1), len(r.h1), flatten(r.h1)))
	return err
}

// updateOrbitals solves F C = S C e through the orthogonalized eigenproblem
// and stores the new MO coefficients.
func (r *scf) updateOrbitals(fock *mat.Dense) ([]float64, error) {
	n := len(r.h1)
	var fp mat.Dense
	fp.Mul(fock, r.s2inv)
	fp.Mul(r.s2inv, &fp)

	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(mat.NewSymDense(n, fp.RawMatrix().Data), true); !ok {
		return nil, fmt.Errorf("%w: Fock eigendecomposition failed", gonature.ErrSCFNotConverged)
	}
	var ev mat.Dense
	eigsym.VectorsTo(&ev)
	ev.Mul(r.s2inv, &ev)

	r.coeffs = make([][]float64, n)
	for i := range r.coeffs {
		r.coeffs[i] = append([]float64(nil), ev.RawRowView(i)...)
	}
	return eigsym.Values(nil), nil
}

// buildDensity forms D_ij = sum_occ C_io C_jo (occupation 1 convention, the
// factor 2 of the closed shell lives in the G and energy expressions).
func (r *scf) buildDensity() {
	n := len(r.coeffs)
	r.density = zeroMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for o := 0; o < r.occupied; o++ {
				r.density[i][j] += r.coeffs[i][o] * r.coeffs[j][o]
			}
		}
	}
}

// buildG forms the two-electron part of the Fock matrix, 2J - K.
func (r *scf) buildG() [][]float64 {
	n := len(r.h1)
	g := zeroMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					g[i][j] += r.density[k][l] * (2*r.vee[i][j][k][l] - r.vee[i][l][k][j])
				}
			}
		}
	}
	return g
}

func (r *scf) electronicEnergy(g [][]float64) float64 {
	res := 0.0
	for i := range r.h1 {
		for j := range r.h1 {
			res += r.density[i][j] * (2*r.h1[i][j] + g[i][j])
		}
	}
	return res
}

// buildResidual appends the DIIS residual A (FDS - SDF) A.
func (r *scf) buildResidual(fock *mat.Dense) {
	n := len(r.h1)
	sMat := mat.NewDense(n, n, flatten(r.s))
	dMat := mat.NewDense(n, n, flatten(r.density))
	term1 := mat.NewDense(n, n, nil)
	term2 := mat.NewDense(n, n, nil)
	term1.Mul(fock, dMat)
	term1.Mul(term1, sMat)
	term2.Mul(sMat, dMat)
	term2.Mul(term2, fock)
	term1.Sub(term1, term2)
	term1.Mul(r.s2inv, term1)
	term1.Mul(term1, r.s2inv)
	r.residuals = append(r.residuals, term1)
}

func (r *scf) residualRMS() float64 {
	res := mat.DenseCopyOf(r.residuals[len(r.residuals)-1])
	res.MulElem(res, res)
	return math.Sqrt(stat.Mean(res.RawMatrix().Data, nil))
}

// extrapolateFock solves the DIIS linear system over the stored Fock history.
// A nil return keeps the unextrapolated Fock of the current iteration.
func (r *scf) extrapolateFock(n int) *mat.Dense {
	dim := len(r.fockList) + 1
	b := mat.NewDense(dim, dim, nil)
	for i := 0; i < dim-1; i++ {
		b.Set(i, dim-1, -1)
		b.Set(dim-1, i, -1)
	}
	for i := range r.fockList {
		for j := range r.fockList {
			prod := mat.NewDense(n, n, nil)
			prod.MulElem(r.residuals[i], r.residuals[j])
			b.Set(i, j, mat.Sum(prod))
		}
	}

	rhs := mat.NewVecDense(dim, nil)
	rhs.SetVec(dim-1, -1)

	var lu mat.LU
	lu.Factorize(b)
	var coeffs mat.VecDense
	if err := lu.SolveVecTo(&coeffs, false, rhs); err != nil {
		return nil
	}

	fock := mat.NewDense(n, n, nil)
	for j := range r.fockList {
		part := mat.NewDense(n, n, nil)
		part.Scale(coeffs.AtVec(j), r.fockList[j])
		fock.Add(fock, part)
	}
	return fock
}
