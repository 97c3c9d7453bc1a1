// errors.go --  This file is part of gonature project.
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
package gonature

import "errors"

// Sentinel errors for caller configuration mistakes. All of them surface
// immediately: a silently wrong operator or circuit is worse than a hard
// failure in a chemistry simulation. Callers match with errors.Is; the
// wrapping site adds the offending shape, index or count.
var (
	// ErrInvalidModeCount reports a spin-orbital mode count that is not a
	// positive even integer.
	ErrInvalidModeCount = errors.New("invalid spin-orbital mode count")

	// ErrShapeMismatch reports integral tensors with inconsistent dimensions.
	ErrShapeMismatch = errors.New("integral shape mismatch")

	// ErrMissingDipoleData reports an explicit request for dipole operators
	// on a molecule snapshot that carries no dipole integrals.
	ErrMissingDipoleData = errors.New("missing dipole integral data")

	// ErrInvalidActiveSpace reports active occupied/virtual orbital indices
	// outside the spin-orbital range or overlapping partitions.
	ErrInvalidActiveSpace = errors.New("invalid active space")

	// ErrIncompatibleMapping reports a reference state whose qubit count does
	// not match the mapped excitation operators.
	ErrIncompatibleMapping = errors.New("incompatible qubit mapping")

	// ErrSCFNotConverged reports a self-consistent field cycle that ran out
	// of iterations before reaching the requested tolerance.
	ErrSCFNotConverged = errors.New("SCF not converged")
)
