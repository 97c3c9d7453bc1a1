// basis.go --  This file is part of gonature project.
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

// Package hf is a restricted Hartree-Fock engine over contracted s-type
// Gaussians. It produces molecular-orbital integrals in the spin-orbital
// basis and plugs into the molecular problem as a molecule.Driver.
package hf

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrBasis reports a molecule the tabulated basis sets cannot describe.
var ErrBasis = errors.New("hf: unsupported basis")

// Bohr is the Bohr radius in Angstrom. Atom coordinates enter in Angstrom
// and are converted once; all integrals are computed in atomic units.
const Bohr = 0.52917721092

// PrimitiveGaussian is one unnormalized s-type primitive: exponent, contraction
// coefficient and center in Bohr.
type PrimitiveGaussian struct {
	Alpha  float64
	Coeff  float64
	Center [3]float64
}

// Norm is the normalization constant of an s-type primitive.
func (p PrimitiveGaussian) Norm() float64 {
	return math.Pow(2*p.Alpha/math.Pi, 0.75)
}

// AO is a contracted atomic orbital.
type AO struct {
	Primitives []PrimitiveGaussian
}

// Atom is a nucleus with charge Z at Coords (Angstrom).
type Atom struct {
	Z      int
	Coords [3]float64
}

// bohrCoords converts the atom position to atomic units.
func (a Atom) bohrCoords() [3]float64 {
	return [3]float64{a.Coords[0] / Bohr, a.Coords[1] / Bohr, a.Coords[2] / Bohr}
}

// hydrogen 1s exponents and contraction coefficients
var sto3gHydrogen = []PrimitiveGaussian{
	{Alpha: 0.3425250914e+01, Coeff: 0.1543289673e+00},
	{Alpha: 0.6239137298e+00, Coeff: 0.5353281423e+00},
	{Alpha: 0.1688554040e+00, Coeff: 0.4446345422e+00},
}

var g631Hydrogen = [][]PrimitiveGaussian{
	{
		{Alpha: 0.1873113696e+02, Coeff: 0.3349460434e-01},
		{Alpha: 0.2825394365e+01, Coeff: 0.2347269535e+00},
		{Alpha: 0.6401216923e+00, Coeff: 0.8137573261e+00},
	},
	{
		{Alpha: 0.1612777588e+00, Coeff: 1.0},
	},
}

// BasisFor builds the contracted orbitals of one atom in the named basis set.
// Only hydrogen is tabulated; heavier elements need an external driver.
func BasisFor(atom Atom, name string) ([]AO, error) {
	if atom.Z != 1 {
		return nil, fmt.Errorf("%w: no tabulated basis for element Z=%d", ErrBasis, atom.Z)
	}
	center := atom.bohrCoords()
	at := func(prims []PrimitiveGaussian) AO {
		out := make([]PrimitiveGaussian, len(prims))
		for i, p := range prims {
			p.Center = center
			out[i] = p
		}
		return AO{Primitives: out}
	}
	switch strings.ToLower(name) {
	case "", "sto-3g", "sto3g":
		return []AO{at(sto3gHydrogen)}, nil
	case "6-31g", "631g":
		return []AO{at(g631Hydrogen[0]), at(g631Hydrogen[1])}, nil
	default:
		return nil, fmt.Errorf("%w: unknown basis set %q", ErrBasis, name)
	}
}
