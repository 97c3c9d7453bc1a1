// doc.go --  This file is part of gonature project.
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

// Package gonature is a quantum-chemistry simulation library for quantum
// circuits. It builds second-quantized fermionic operators from molecular
// integrals, maps them to qubit operators, constructs unitary coupled-cluster
// ansatz circuits and drives exact ground-state solvers over potential energy
// surfaces.
//
// The root package holds the error taxonomy shared by all subpackages.
// The pipeline runs driver -> molecule.Problem -> fermion operators ->
// qubit mapping -> ucc ansatz / solver.
package gonature
