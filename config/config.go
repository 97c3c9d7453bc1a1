// config.go --  This file is part of gonature project.
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

// Package config loads gonature run configurations from YAML and wires them
// into drivers, molecular problems and qubit converters.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dairdre/gonature/hf"
	"github.com/dairdre/gonature/molecule"
	"github.com/dairdre/gonature/qubit"
)

// Config represents one complete gonature calculation.
type Config struct {
	Molecule MoleculeConfig `yaml:"molecule"`
	SCF      SCFConfig      `yaml:"scf"`
	Active   ActiveConfig   `yaml:"active"`
	Mapping  MappingConfig  `yaml:"mapping"`
	Scan     ScanConfig     `yaml:"scan"`
}

// MoleculeConfig describes the nuclear frame and the basis set.
type MoleculeConfig struct {
	Atoms []AtomConfig `yaml:"atoms"`
	// Basis is the basis set name (e.g. "sto-3g", "6-31g")
	Basis  string `yaml:"basis"`
	Charge int    `yaml:"charge"`
}

// AtomConfig is one nucleus: charge Z and Cartesian coordinates in Angstrom.
type AtomConfig struct {
	Z      int        `yaml:"z"`
	Coords [3]float64 `yaml:"coords"`
}

// SCFConfig tunes the mean-field iteration. Zero values fall back to the
// driver defaults.
type SCFConfig struct {
	TolEnergy  float64 `yaml:"tolEnergy"`
	TolDensity float64 `yaml:"tolDensity"`
	MaxIter    int     `yaml:"maxIter"`
}

// ActiveConfig restricts the orbital space before operator construction.
type ActiveConfig struct {
	// FreezeCore removes that many lowest spatial orbitals
	FreezeCore int `yaml:"freezeCore"`
	// Electrons and Orbitals select an active space around the Fermi level;
	// both zero means no restriction
	Electrons int `yaml:"electrons"`
	Orbitals  int `yaml:"orbitals"`
}

// MappingConfig selects the fermion-to-qubit encoding.
type MappingConfig struct {
	// Mapper is "jordan-wigner" or "parity"
	Mapper string `yaml:"mapper"`
	// TwoQubitReduction removes the two conserved-parity qubits; parity only
	TwoQubitReduction bool `yaml:"twoQubitReduction"`
}

// ScanConfig describes a potential-energy-surface scan: one atom moved along
// one Cartesian axis through the listed coordinate values.
type ScanConfig struct {
	Atom   int       `yaml:"atom"`
	Axis   int       `yaml:"axis"`
	Points []float64 `yaml:"points"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Molecule: MoleculeConfig{Basis: "sto-3g"},
		Mapping:  MappingConfig{Mapper: "jordan-wigner"},
		Scan:     ScanConfig{Axis: 2},
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if len(c.Molecule.Atoms) == 0 {
		return fmt.Errorf("molecule.atoms is required")
	}
	if c.Molecule.Basis == "" {
		return fmt.Errorf("molecule.basis is required")
	}
	for i, a := range c.Molecule.Atoms {
		if a.Z < 1 {
			return fmt.Errorf("molecule.atoms[%d].z must be positive", i)
		}
	}
	if c.Active.FreezeCore < 0 {
		return fmt.Errorf("active.freezeCore must not be negative")
	}
	if (c.Active.Electrons == 0) != (c.Active.Orbitals == 0) {
		return fmt.Errorf("active.electrons and active.orbitals must be set together")
	}
	switch c.Mapping.Mapper {
	case "jordan-wigner", "parity":
	default:
		return fmt.Errorf("mapping.mapper must be jordan-wigner or parity, got %q", c.Mapping.Mapper)
	}
	if c.Mapping.TwoQubitReduction && c.Mapping.Mapper != "parity" {
		return fmt.Errorf("mapping.twoQubitReduction requires the parity mapper")
	}
	if len(c.Scan.Points) > 0 {
		if c.Scan.Atom < 0 || c.Scan.Atom >= len(c.Molecule.Atoms) {
			return fmt.Errorf("scan.atom %d out of range", c.Scan.Atom)
		}
		if c.Scan.Axis < 0 || c.Scan.Axis > 2 {
			return fmt.Errorf("scan.axis %d out of range", c.Scan.Axis)
		}
	}
	return nil
}

// LoadFromFile loads a configuration from a YAML file, on top of defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveToFile writes the configuration as YAML, creating parent directories.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Driver builds the mean-field driver for the configured molecule.
func (c *Config) Driver() *hf.Driver {
	atoms := make([]hf.Atom, len(c.Molecule.Atoms))
	for i, a := range c.Molecule.Atoms {
		atoms[i] = hf.Atom{Z: a.Z, Coords: a.Coords}
	}
	return &hf.Driver{
		Atoms:  atoms,
		Basis:  c.Molecule.Basis,
		Charge: c.Molecule.Charge,
		SCF: hf.SCFOptions{
			TolEnergy:  c.SCF.TolEnergy,
			TolDensity: c.SCF.TolDensity,
			MaxIter:    c.SCF.MaxIter,
		},
	}
}

// transformers assembles the configured orbital-space reductions.
func (c *Config) transformers() []molecule.Transformer {
	var ts []molecule.Transformer
	if c.Active.FreezeCore > 0 {
		ts = append(ts, molecule.FreezeCore(c.Active.FreezeCore))
	}
	if c.Active.Electrons > 0 {
		ts = append(ts, molecule.ActiveSpace(c.Active.Electrons, c.Active.Orbitals))
	}
	return ts
}

// Problem wires the driver and transformer chain for the base geometry.
func (c *Config) Problem() *molecule.Problem {
	return molecule.NewProblem(c.Driver(), c.transformers()...)
}

// ProblemAt is Problem with the scanned coordinate replaced, for use with a
// surface sampler.
func (c *Config) ProblemAt(point float64) *molecule.Problem {
	d := c.Driver()
	d.Atoms[c.Scan.Atom].Coords[c.Scan.Axis] = point
	return molecule.NewProblem(d, c.transformers()...)
}

// Converter builds the configured fermion-to-qubit converter for a given
// particle sector.
func (c *Config) Converter(numParticles [2]int) *qubit.Converter {
	conv := &qubit.Converter{NumParticles: numParticles}
	switch c.Mapping.Mapper {
	case "parity":
		conv.Mapper = qubit.Parity{}
		conv.TwoQubitReduction = c.Mapping.TwoQubitReduction
	default:
		conv.Mapper = qubit.JordanWigner{}
	}
	return conv
}
