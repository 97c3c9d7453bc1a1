// excitation.go --  This file is part of gonature project.
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

// Package ucc enumerates electronic excitations and assembles unitary
// coupled-cluster style ansatz circuits from them.
package ucc

import (
	"fmt"
	"sort"

	"golang.org/x/exp/slices"

	"github.com/dairdre/gonature"
)

// Excitation is an interleaved index tuple over spin-orbital modes:
// [i, a] for a single (annihilate occupied i, create virtual a) and
// [i, a, j, b] for a double. Modes follow the blocked spin convention.
type Excitation []int

// Group bundles symmetry-equivalent excitations that share one variational
// parameter. Enumeration methods other than MethodSUCCFull produce
// single-excitation groups.
type Group []Excitation

// Type selects which excitation ranks to enumerate.
type Type int

const (
	Singles Type = iota
	Doubles
	SinglesDoubles
)

// Method selects the restriction policy applied to double excitations.
type Method int

const (
	// MethodUCC keeps every spin-conserving double.
	MethodUCC Method = iota
	// MethodPUCC keeps only paired doubles: both electrons of one spatial
	// orbital move together to one target spatial orbital.
	MethodPUCC
	// MethodSUCC keeps one representative per singlet equivalence class,
	// deduplicated by the unordered set of spatial (occupied, virtual) pairs.
	MethodSUCC
	// MethodSUCCFull is MethodSUCC with each representative grouped together
	// with its symmetry-equivalent mirrors.
	MethodSUCCFull
)

// Config drives Enumerate. NumSpinOrbitals must be even; the occupied set is
// the lowest NumParticles[0] alpha and NumParticles[1] beta modes. Optional
// ActiveOccupied / ActiveUnoccupied restrict the index pools to the listed
// spin-orbital modes.
type Config struct {
	NumParticles     [2]int
	NumSpinOrbitals  int
	Type             Type
	Method           Method
	ActiveOccupied   []int
	ActiveUnoccupied []int

	// SpinFlipSingles additionally admits singles that move an electron
	// between spin blocks. Off by default: singles conserve S_z.
	SpinFlipSingles bool
}

type pools struct {
	half     int
	occAlpha []int
	occBeta  []int
	virAlpha []int
	virBeta  []int
}

func buildPools(cfg Config) (*pools, error) {
	n := cfg.NumSpinOrbitals
	if n <= 0 || n%2 != 0 {
		return nil, fmt.Errorf("%w: %d spin orbitals", gonature.ErrInvalidModeCount, n)
	}
	half := n / 2
	if cfg.NumParticles[0] < 0 || cfg.NumParticles[1] < 0 ||
		cfg.NumParticles[0] > half || cfg.NumParticles[1] > half {
		return nil, fmt.Errorf("%w: particle counts (%d, %d) do not fit %d orbitals per spin",
			gonature.ErrInvalidActiveSpace, cfg.NumParticles[0], cfg.NumParticles[1], half)
	}

	occupied := func(m int) bool {
		if m < half {
			return m < cfg.NumParticles[0]
		}
		return m-half < cfg.NumParticles[1]
	}

	for _, m := range cfg.ActiveOccupied {
		if m < 0 || m >= n {
			return nil, fmt.Errorf("%w: active occupied index %d outside [0, %d)",
				gonature.ErrInvalidActiveSpace, m, n)
		}
	}
	for _, m := range cfg.ActiveUnoccupied {
		if m < 0 || m >= n {
			return nil, fmt.Errorf("%w: active unoccupied index %d outside [0, %d)",
				gonature.ErrInvalidActiveSpace, m, n)
		}
		if slices.Contains(cfg.ActiveOccupied, m) {
			return nil, fmt.Errorf("%w: index %d listed as both occupied and unoccupied",
				gonature.ErrInvalidActiveSpace, m)
		}
	}
	for _, m := range cfg.ActiveOccupied {
		if !occupied(m) {
			return nil, fmt.Errorf("%w: active occupied index %d is above the Fermi level",
				gonature.ErrInvalidActiveSpace, m)
		}
	}
	for _, m := range cfg.ActiveUnoccupied {
		if occupied(m) {
			return nil, fmt.Errorf("%w: active unoccupied index %d is below the Fermi level",
				gonature.ErrInvalidActiveSpace, m)
		}
	}

	keep := func(active []int, m int) bool {
		return active == nil || slices.Contains(active, m)
	}
	p := &pools{half: half}
	for m := 0; m < n; m++ {
		switch {
		case occupied(m) && keep(cfg.ActiveOccupied, m):
			if m < half {
				p.occAlpha = append(p.occAlpha, m)
			} else {
				p.occBeta = append(p.occBeta, m)
			}
		case !occupied(m) && keep(cfg.ActiveUnoccupied, m):
			if m < half {
				p.virAlpha = append(p.virAlpha, m)
			} else {
				p.virBeta = append(p.virBeta, m)
			}
		}
	}
	return p, nil
}

// Enumerate lists the excitations selected by cfg. MethodSUCCFull bundles
// symmetry-equivalent doubles into shared-parameter groups; every other
// method yields one-excitation groups.
func Enumerate(cfg Config) ([]Group, error) {
	p, err := buildPools(cfg)
	if err != nil {
		return nil, err
	}

	var groups []Group
	if cfg.Type == Singles || cfg.Type == SinglesDoubles {
		for _, exc := range singles(p, cfg.SpinFlipSingles) {
			groups = append(groups, Group{exc})
		}
	}
	if cfg.Type == Doubles || cfg.Type == SinglesDoubles {
		d, err := doubles(p, cfg.Method)
		if err != nil {
			return nil, err
		}
		groups = append(groups, d...)
	}
	return groups, nil
}

// Flatten concatenates all group members into one excitation list.
func Flatten(groups []Group) []Excitation {
	var out []Excitation
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func singles(p *pools, spinFlip bool) []Excitation {
	var out []Excitation
	for _, i := range p.occAlpha {
		for _, a := range p.virAlpha {
			out = append(out, Excitation{i, a})
		}
	}
	for _, i := range p.occBeta {
		for _, a := range p.virBeta {
			out = append(out, Excitation{i, a})
		}
	}
	if spinFlip {
		for _, i := range p.occAlpha {
			for _, a := range p.virBeta {
				out = append(out, Excitation{i, a})
			}
		}
		for _, i := range p.occBeta {
			for _, a := range p.virAlpha {
				out = append(out, Excitation{i, a})
			}
		}
	}
	return out
}

func doubles(p *pools, method Method) ([]Group, error) {
	switch method {
	case MethodUCC:
		return wrapSingleton(uccDoubles(p)), nil
	case MethodPUCC:
		return wrapSingleton(puccDoubles(p)), nil
	case MethodSUCC:
		reps, _ := succDoubles(p)
		return wrapSingleton(reps), nil
	case MethodSUCCFull:
		_, groups := succDoubles(p)
		return groups, nil
	default:
		return nil, fmt.Errorf("%w: unknown doubles method %d", gonature.ErrInvalidActiveSpace, method)
	}
}

func wrapSingleton(excs []Excitation) []Group {
	groups := make([]Group, len(excs))
	for i, e := range excs {
		groups[i] = Group{e}
	}
	return groups
}

// uccDoubles enumerates every double that conserves the number of alpha and
// beta electrons: same-spin pairs within each block plus mixed alpha-beta
// pairs.
func uccDoubles(p *pools) []Excitation {
	var out []Excitation
	sameSpin := func(occ, vir []int) {
		for ii := 0; ii < len(occ); ii++ {
			for jj := ii + 1; jj < len(occ); jj++ {
				for aa := 0; aa < len(vir); aa++ {
					for bb := aa + 1; bb < len(vir); bb++ {
						out = append(out, Excitation{occ[ii], vir[aa], occ[jj], vir[bb]})
					}
				}
			}
		}
	}
	sameSpin(p.occAlpha, p.virAlpha)
	sameSpin(p.occBeta, p.virBeta)
	for _, i := range p.occAlpha {
		for _, a := range p.virAlpha {
			for _, j := range p.occBeta {
				for _, b := range p.virBeta {
					out = append(out, Excitation{i, a, j, b})
				}
			}
		}
	}
	return out
}

// puccDoubles keeps doubles where both electrons of one spatial orbital move
// together into one target spatial orbital.
func puccDoubles(p *pools) []Excitation {
	var out []Excitation
	for _, i := range p.occAlpha {
		if !slices.Contains(p.occBeta, i+p.half) {
			continue
		}
		for _, a := range p.virAlpha {
			if !slices.Contains(p.virBeta, a+p.half) {
				continue
			}
			out = append(out, Excitation{i, a, i + p.half, a + p.half})
		}
	}
	return out
}

// succDoubles reduces the mixed-spin doubles to singlet equivalence classes.
// Two doubles are equivalent when their unordered sets of spatial
// (occupied, virtual) pairs coincide; the first excitation encountered in
// enumeration order is the class representative. The singlet ansatz targets
// closed shells, so same-spin doubles are not generated here.
func succDoubles(p *pools) ([]Excitation, []Group) {
	byKey := map[string]int{}
	var reps []Excitation
	var groups []Group

	add := func(exc Excitation, key string) {
		if idx, ok := byKey[key]; ok {
			groups[idx] = append(groups[idx], exc)
			return
		}
		byKey[key] = len(groups)
		reps = append(reps, exc)
		groups = append(groups, Group{exc})
	}

	for _, i := range p.occAlpha {
		for _, a := range p.virAlpha {
			for _, j := range p.occBeta {
				for _, b := range p.virBeta {
					pairs := [2][2]int{
						{i % p.half, a % p.half},
						{j % p.half, b % p.half},
					}
					sort.Slice(pairs[:], func(x, y int) bool {
						if pairs[x][0] != pairs[y][0] {
							return pairs[x][0] < pairs[y][0]
						}
						return pairs[x][1] < pairs[y][1]
					})
					add(Excitation{i, a, j, b}, fmt.Sprint(pairs))
				}
			}
		}
	}
	return reps, groups
}
