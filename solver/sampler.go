// sampler.go --  This file is part of gonature project.
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
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"

	"github.com/dairdre/gonature/molecule"
)

// ErrSurfaceFit reports a potential fit that could not be performed.
var ErrSurfaceFit = errors.New("solver: surface fit failed")

// SurfaceSampler maps out a Born-Oppenheimer potential-energy surface by
// solving one independent molecular problem per geometry point. Points share
// no state, so a caller may also sample them from parallel goroutines with
// one sampler per goroutine.
type SurfaceSampler struct {
	// ProblemAt builds the molecular problem for one value of the scanned
	// coordinate (typically a bond distance in Angstrom).
	ProblemAt func(point float64) *molecule.Problem
	Logger    *zap.Logger
}

// Surface is a sampled potential-energy curve.
type Surface struct {
	Points   []float64
	Energies []float64 // total ground-state energies
}

// MinPoint returns the sampled point with the lowest energy.
func (s *Surface) MinPoint() (point, energy float64) {
	point, energy = s.Points[0], s.Energies[0]
	for i, e := range s.Energies {
		if e < energy {
			point, energy = s.Points[i], e
		}
	}
	return point, energy
}

// Sample solves the ground state at every point, in order.
func (s *SurfaceSampler) Sample(points []float64) (*Surface, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	surf := &Surface{
		Points:   append([]float64(nil), points...),
		Energies: make([]float64, len(points)),
	}
	for i, pt := range points {
		gs := GroundStateSolver{Problem: s.ProblemAt(pt), Logger: logger}
		res, err := gs.Solve()
		if err != nil {
			return nil, fmt.Errorf("surface point %g: %w", pt, err)
		}
		surf.Energies[i] = res.TotalEnergy
		logger.Info("surface point solved", zap.Float64("point", pt), zap.Float64("energy", res.TotalEnergy))
	}
	logger.Info("surface sampled",
		zap.Int("points", len(points)),
		zap.Float64("meanEnergy", stat.Mean(surf.Energies, nil)))
	return surf, nil
}

// MorsePotential is E(r) = E0 + D*(1 - exp(-alpha*(r - R0)))^2.
type MorsePotential struct {
	D     float64
	Alpha float64
	R0    float64
	E0    float64
}

// Eval evaluates the potential at r.
func (m MorsePotential) Eval(r float64) float64 {
	e := 1 - math.Exp(-m.Alpha*(r-m.R0))
	return m.E0 + m.D*e*e
}

// FitMorse fits a Morse potential to the sampled surface with Nelder-Mead,
// minimizing the sum of squared residuals. The surface needs at least four
// points, one per free parameter.
func FitMorse(surf *Surface) (*MorsePotential, error) {
	if len(surf.Points) < 4 || len(surf.Points) != len(surf.Energies) {
		return nil, fmt.Errorf("%w: need at least 4 sampled points, got %d", ErrSurfaceFit, len(surf.Points))
	}

	r0, e0 := surf.MinPoint()
	maxE := surf.Energies[0]
	for _, e := range surf.Energies {
		if e > maxE {
			maxE = e
		}
	}
	depth := maxE - e0
	if depth <= 0 {
		depth = 0.1
	}

	residual := func(x []float64) float64 {
		m := MorsePotential{D: x[0], Alpha: x[1], R0: x[2], E0: x[3]}
		sum := 0.0
		for i, r := range surf.Points {
			d := m.Eval(r) - surf.Energies[i]
			sum += d * d
		}
		return sum
	}

	problem := optimize.Problem{Func: residual}
	init := []float64{depth, 1.0, r0, e0}
	result, err := optimize.Minimize(problem, init, &optimize.Settings{}, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurfaceFit, err)
	}
	return &MorsePotential{D: result.X[0], Alpha: result.X[1], R0: result.X[2], E0: result.X[3]}, nil
}
