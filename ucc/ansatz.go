// ansatz.go --  This file is part of gonature project.
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

package ucc

import (
	"fmt"
	"math"

	"github.com/dairdre/gonature"
	"github.com/dairdre/gonature/circuit"
	"github.com/dairdre/gonature/fermion"
	"github.com/dairdre/gonature/qubit"
)

const coeffTol = 1e-12

// AnsatzConfig assembles a unitary coupled-cluster circuit. Every group
// contributes one free parameter shared by all of its excitations; each
// excitation becomes the Pauli evolution of its mapped anti-Hermitian
// generator T - T†.
type AnsatzConfig struct {
	Converter       *qubit.Converter
	NumSpinOrbitals int
	Groups          []Group

	// Reference is prepended to the ansatz. When nil, the Hartree-Fock
	// circuit for the converter's particle counts is built.
	Reference *circuit.Circuit

	// ParamPrefix names the free parameters; "t" when empty.
	ParamPrefix string

	// SkipCommuteTest disables the check that every mapped generator's Pauli
	// terms mutually commute. Term-by-term evolution reproduces exp of the
	// generator exactly only under that condition, so skipping the check
	// trades safety for speed, not correctness.
	SkipCommuteTest bool
}

// BuildAnsatz produces the parameterized circuit. The parameter count equals
// the number of groups. Returns ErrIncompatibleMapping when the reference
// circuit width disagrees with the width the converter yields for the
// excitation operators, or when a mapped generator fails the commutation
// check.
func BuildAnsatz(cfg AnsatzConfig) (*circuit.Circuit, error) {
	if cfg.Converter == nil {
		return nil, fmt.Errorf("%w: ansatz needs a qubit converter", gonature.ErrIncompatibleMapping)
	}
	width, err := cfg.Converter.TaperedQubitCount(cfg.NumSpinOrbitals)
	if err != nil {
		return nil, err
	}

	ref := cfg.Reference
	if ref == nil {
		if ref, err = circuit.HartreeFock(cfg.Converter, cfg.NumSpinOrbitals); err != nil {
			return nil, err
		}
	}
	if ref.NumQubits() != width {
		return nil, fmt.Errorf("%w: reference state has %d qubits, mapped excitations need %d",
			gonature.ErrIncompatibleMapping, ref.NumQubits(), width)
	}

	prefix := cfg.ParamPrefix
	if prefix == "" {
		prefix = "t"
	}

	out, err := circuit.New(width)
	if err != nil {
		return nil, err
	}
	if err := out.Append(ref); err != nil {
		return nil, err
	}

	for k, group := range cfg.Groups {
		param := fmt.Sprintf("%s[%d]", prefix, k)
		mapped := make([]*qubit.Op, len(group))
		for e, exc := range group {
			gen, err := generator(exc, cfg.NumSpinOrbitals)
			if err != nil {
				return nil, err
			}
			op, err := cfg.Converter.Convert(gen)
			if err != nil {
				return nil, err
			}
			if !cfg.SkipCommuteTest && !op.Commutes(op) {
				return nil, fmt.Errorf("%w: mapped generator of excitation %v has non-commuting terms",
					gonature.ErrIncompatibleMapping, exc)
			}
			mapped[e] = op
		}
		for _, op := range mapped {
			if err := evolveGenerator(out, op, param); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// generator builds T - T† for one excitation tuple.
func generator(exc Excitation, numModes int) (*fermion.Op, error) {
	var label string
	switch len(exc) {
	case 2:
		label = fmt.Sprintf("+_%d -_%d", exc[1], exc[0])
	case 4:
		label = fmt.Sprintf("+_%d +_%d -_%d -_%d", exc[1], exc[3], exc[2], exc[0])
	default:
		return nil, fmt.Errorf("%w: excitation tuple %v has %d entries, want 2 or 4",
			gonature.ErrInvalidActiveSpace, exc, len(exc))
	}
	t, err := fermion.New(numModes, map[string]complex128{label: 1})
	if err != nil {
		return nil, err
	}
	return t.Add(t.Dagger().Scale(-1))
}

// evolveGenerator appends exp(theta*G) for an anti-Hermitian mapped
// generator G = sum_P i*h_P*P, one Pauli-evolution gate per term.
func evolveGenerator(c *circuit.Circuit, op *qubit.Op, param string) error {
	for _, t := range op.StdTerms() {
		if math.Abs(real(t.Coeff)) > coeffTol {
			return fmt.Errorf("%w: generator term %s has non-imaginary coefficient %v",
				gonature.ErrIncompatibleMapping, t.Pauli, t.Coeff)
		}
		h := imag(t.Coeff)
		if math.Abs(h) < coeffTol {
			continue
		}
		// exp(i*h*theta*P) written as the rotation exp(-i/2 * coeff * theta * P)
		if err := c.Evolve(t.Pauli, param, -2*h); err != nil {
			return err
		}
	}
	return nil
}

// UCCSD builds the full singles-and-doubles ansatz.
func UCCSD(conv *qubit.Converter, numSpinOrbitals int, numParticles [2]int) (*circuit.Circuit, error) {
	return methodAnsatz(conv, numSpinOrbitals, numParticles, SinglesDoubles, MethodUCC)
}

// PUCCD builds the paired-doubles ansatz.
func PUCCD(conv *qubit.Converter, numSpinOrbitals int, numParticles [2]int) (*circuit.Circuit, error) {
	return methodAnsatz(conv, numSpinOrbitals, numParticles, Doubles, MethodPUCC)
}

// SUCCD builds the singlet-doubles ansatz from class representatives only.
func SUCCD(conv *qubit.Converter, numSpinOrbitals int, numParticles [2]int) (*circuit.Circuit, error) {
	return methodAnsatz(conv, numSpinOrbitals, numParticles, Doubles, MethodSUCC)
}

// SUCCDFull builds the singlet-doubles ansatz with every equivalence class
// evolved in full under one shared parameter.
func SUCCDFull(conv *qubit.Converter, numSpinOrbitals int, numParticles [2]int) (*circuit.Circuit, error) {
	return methodAnsatz(conv, numSpinOrbitals, numParticles, Doubles, MethodSUCCFull)
}

func methodAnsatz(conv *qubit.Converter, numSpinOrbitals int, numParticles [2]int, typ Type, method Method) (*circuit.Circuit, error) {
	groups, err := Enumerate(Config{
		NumParticles:    numParticles,
		NumSpinOrbitals: numSpinOrbitals,
		Type:            typ,
		Method:          method,
	})
	if err != nil {
		return nil, err
	}
	return BuildAnsatz(AnsatzConfig{
		Converter:       conv,
		NumSpinOrbitals: numSpinOrbitals,
		Groups:          groups,
	})
}

// EnumerateVibrational lists modal excitations for a vibrational problem
// encoded one-hot: modals of mode m occupy a contiguous index block and the
// reference places each mode in its lowest modal. Singles move one mode to a
// higher modal; doubles move two distinct modes simultaneously.
func EnumerateVibrational(numModals []int, typ Type) ([]Group, error) {
	base := make([]int, len(numModals))
	total := 0
	for m, k := range numModals {
		if k < 1 {
			return nil, fmt.Errorf("%w: mode %d has %d modals", gonature.ErrInvalidModeCount, m, k)
		}
		base[m] = total
		total += k
	}

	var groups []Group
	if typ == Singles || typ == SinglesDoubles {
		for m := range numModals {
			for k := 1; k < numModals[m]; k++ {
				groups = append(groups, Group{{base[m], base[m] + k}})
			}
		}
	}
	if typ == Doubles || typ == SinglesDoubles {
		for m := 0; m < len(numModals); m++ {
			for n := m + 1; n < len(numModals); n++ {
				for k := 1; k < numModals[m]; k++ {
					for l := 1; l < numModals[n]; l++ {
						groups = append(groups, Group{{base[m], base[m] + k, base[n], base[n] + l}})
					}
				}
			}
		}
	}
	return groups, nil
}

// UVCC builds the vibrational unitary coupled-cluster circuit over a one-hot
// modal encoding with the Jordan-Wigner mapping and no reduction.
func UVCC(numModals []int, typ Type) (*circuit.Circuit, error) {
	groups, err := EnumerateVibrational(numModals, typ)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, k := range numModals {
		total += k
	}

	ref, err := circuit.New(total)
	if err != nil {
		return nil, err
	}
	for m := range numModals {
		start := 0
		for _, k := range numModals[:m] {
			start += k
		}
		if err := ref.X(start); err != nil {
			return nil, err
		}
	}

	return BuildAnsatz(AnsatzConfig{
		Converter:       &qubit.Converter{Mapper: qubit.JordanWigner{}},
		NumSpinOrbitals: total,
		Groups:          groups,
		Reference:       ref,
	})
}
