// integrals.go --  This file is part of gonature project.
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
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"
)

func distSq(a, b [3]float64) float64 {
	va := mat.NewVecDense(3, a[:])
	vb := mat.NewVecDense(3, b[:])
	d := mat.NewVecDense(3, nil)
	d.SubVec(vb, va)
	d.MulElemVec(d, d)
	return mat.Sum(d)
}

// productCenter is the center of the Gaussian product of two primitives,
// (a1*v1 + a2*v2) / (a1 + a2).
func productCenter(a1, a2 float64, v1, v2 [3]float64) [3]float64 {
	vv1 := mat.NewVecDense(3, v1[:])
	vv2 := mat.NewVecDense(3, v2[:])
	sum := mat.NewVecDense(3, nil)
	vv1.ScaleVec(a1, vv1)
	sum.AddScaledVec(vv1, a2, vv2)
	var res [3]float64
	for i := range res {
		res[i] = sum.AtVec(i) / (a1 + a2)
	}
	return res
}

// boys is the zeroth and higher Boys function via the regularized incomplete
// gamma function.
func boys(x float64, n int) float64 {
	nf := float64(n)
	if x == 0 {
		return 1.0 / (2.0*nf + 1)
	}
	return mathext.GammaIncReg(nf+0.5, x) * math.Gamma(nf+0.5) / (2.0 * math.Pow(x, nf+0.5))
}

// primitive pair data shared by every one-electron integral
type pairTerm struct {
	p       float64 // combined exponent
	overlap float64 // normalized primitive overlap including coefficients
	center  [3]float64
}

func pair(g1, g2 PrimitiveGaussian) pairTerm {
	p := g1.Alpha + g2.Alpha
	q := g1.Alpha * g2.Alpha / p
	n := g1.Norm() * g2.Norm() * g1.Coeff * g2.Coeff
	s := n * math.Exp(-q*distSq(g1.Center, g2.Center)) * math.Pow(math.Pi/p, 1.5)
	return pairTerm{p: p, overlap: s, center: productCenter(g1.Alpha, g2.Alpha, g1.Center, g2.Center)}
}

func zeroMatrix(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}
	return out
}

// Overlap computes the AO overlap matrix.
func Overlap(aos []AO) [][]float64 {
	res := zeroMatrix(len(aos))
	for i := range aos {
		for j := range aos {
			for _, g1 := range aos[i].Primitives {
				for _, g2 := range aos[j].Primitives {
					res[i][j] += pair(g1, g2).overlap
				}
			}
		}
	}
	return res
}

// Kinetic computes the AO kinetic-energy matrix.
func Kinetic(aos []AO) [][]float64 {
	res := zeroMatrix(len(aos))
	for i := range aos {
		for j := range aos {
			for _, g1 := range aos[i].Primitives {
				for _, g2 := range aos[j].Primitives {
					pt := pair(g1, g2)
					a2 := g2.Alpha
					res[i][j] += 3 * a2 * pt.overlap
					for x := 0; x < 3; x++ {
						pg2 := pt.center[x] - g2.Center[x]
						res[i][j] -= 2 * a2 * a2 * pt.overlap * (pg2*pg2 + 0.5/pt.p)
					}
				}
			}
		}
	}
	return res
}

// NuclearAttraction computes the electron-nucleus attraction matrix.
func NuclearAttraction(aos []AO, atoms []Atom) [][]float64 {
	res := zeroMatrix(len(aos))
	for _, atom := range atoms {
		nuc := atom.bohrCoords()
		for i := range aos {
			for j := range aos {
				for _, g1 := range aos[i].Primitives {
					for _, g2 := range aos[j].Primitives {
						pt := pair(g1, g2)
						// the pi^{3/2}/p^{3/2} of the pair overlap folds into
						// the 2*pi/p Coulomb prefactor
						pre := pt.overlap / math.Pow(math.Pi/pt.p, 1.5) * (2 * math.Pi / pt.p)
						res[i][j] -= float64(atom.Z) * pre * boys(pt.p*distSq(pt.center, nuc), 0)
					}
				}
			}
		}
	}
	return res
}

// DipoleMoment computes the three AO dipole matrices, the expectation of the
// electron position operator. For s-type products the position integral is
// the product center coordinate times the pair overlap.
func DipoleMoment(aos []AO) (x, y, z [][]float64) {
	n := len(aos)
	x, y, z = zeroMatrix(n), zeroMatrix(n), zeroMatrix(n)
	out := [3][][]float64{x, y, z}
	for i := range aos {
		for j := range aos {
			for _, g1 := range aos[i].Primitives {
				for _, g2 := range aos[j].Primitives {
					pt := pair(g1, g2)
					for c := 0; c < 3; c++ {
						out[c][i][j] += pt.center[c] * pt.overlap
					}
				}
			}
		}
	}
	return x, y, z
}

// ElectronRepulsion computes the chemist-notation AO tensor (ij|kl).
func ElectronRepulsion(aos []AO) [][][][]float64 {
	n := len(aos)
	res := make([][][][]float64, n)
	for i := range res {
		res[i] = make([][][]float64, n)
		for j := range res[i] {
			res[i][j] = make([][]float64, n)
			for k := range res[i][j] {
				res[i][j][k] = make([]float64, n)
			}
		}
	}

	for i := range aos {
		for j := range aos {
			for k := range aos {
				for l := range aos {
					for _, g1 := range aos[i].Primitives {
						for _, g2 := range aos[j].Primitives {
							for _, g3 := range aos[k].Primitives {
								for _, g4 := range aos[l].Primitives {
									norm := g1.Norm() * g2.Norm() * g3.Norm() * g4.Norm() *
										g1.Coeff * g2.Coeff * g3.Coeff * g4.Coeff

									pij := g1.Alpha + g2.Alpha
									pkl := g3.Alpha + g4.Alpha
									cij := productCenter(g1.Alpha, g2.Alpha, g1.Center, g2.Center)
									ckl := productCenter(g3.Alpha, g4.Alpha, g3.Center, g4.Center)

									qij := g1.Alpha * g2.Alpha / pij
									qkl := g3.Alpha * g4.Alpha / pkl

									term := 2.0 * math.Pi * math.Pi / (pij * pkl) *
										math.Sqrt(math.Pi/(pij+pkl)) *
										math.Exp(-qij*distSq(g1.Center, g2.Center)) *
										math.Exp(-qkl*distSq(g3.Center, g4.Center))

									denom := 1.0/pij + 1.0/pkl
									res[i][j][k][l] += norm * term * boys(distSq(cij, ckl)/denom, 0)
								}
							}
						}
					}
				}
			}
		}
	}
	return res
}

// NuclearRepulsion is the classical nucleus-nucleus Coulomb energy.
func NuclearRepulsion(atoms []Atom) float64 {
	res := 0.0
	for i := range atoms {
		ci := atoms[i].bohrCoords()
		for j := 0; j < i; j++ {
			cj := atoms[j].bohrCoords()
			res += float64(atoms[i].Z) * float64(atoms[j].Z) / math.Sqrt(distSq(ci, cj))
		}
	}
	return res
}

// NuclearDipole is the nuclear contribution to the dipole moment, in atomic
// units.
func NuclearDipole(atoms []Atom) [3]float64 {
	var res [3]float64
	for _, a := range atoms {
		c := a.bohrCoords()
		for x := 0; x < 3; x++ {
			res[x] += float64(a.Z) * c[x]
		}
	}
	return res
}
