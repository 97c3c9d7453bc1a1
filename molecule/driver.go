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
package molecule

// Driver is an electronic-structure backend producing integral snapshots.
// Run may block for however long the underlying computation takes; its errors
// (I/O, convergence) are propagated unchanged by the problem layer. The hf
// package ships a built-in pure-Go restricted Hartree-Fock driver.
type Driver interface {
	Run() (*QMolecule, error)
}

// DriverFunc adapts a plain function to the Driver interface.
type DriverFunc func() (*QMolecule, error)

// Run implements Driver.
func (f DriverFunc) Run() (*QMolecule, error) { return f() }
