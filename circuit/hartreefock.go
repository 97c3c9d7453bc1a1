// hartreefock.go --  This file is part of gonature project.
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

package circuit

import (
	"github.com/dairdre/gonature/qubit"
)

// HartreeFock builds the reference-state circuit: X gates on every qubit
// that is set in the converter's image of the Hartree-Fock determinant over
// numModes spin orbitals. The circuit width accounts for any two-qubit
// reduction or tapering the converter applies.
func HartreeFock(conv *qubit.Converter, numModes int) (*Circuit, error) {
	bits, err := conv.OccupationBits(numModes)
	if err != nil {
		return nil, err
	}
	c, err := New(len(bits))
	if err != nil {
		return nil, err
	}
	for q, b := range bits {
		if b {
			if err := c.X(q); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}
