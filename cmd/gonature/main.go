// main.go --  This file is part of gonature project.
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
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/dairdre/gonature/config"
	"github.com/dairdre/gonature/molecule"
	"github.com/dairdre/gonature/solver"
)

func main() {
	configPath := flag.String("config", "gonature.yaml", "path to the run configuration")
	verbose := flag.Bool("v", false, "verbose iteration logging")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintln(os.Stderr, "gonature:", err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	if err := run(*configPath, logger); err != nil {
		fmt.Fprintln(os.Stderr, "gonature:", err)
		os.Exit(1)
	}
}

func run(configPath string, logger *zap.Logger) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return err
	}

	if len(cfg.Scan.Points) > 0 {
		return runScan(cfg, logger)
	}
	return runSinglePoint(cfg.Problem(), logger)
}

func runSinglePoint(problem *molecule.Problem, logger *zap.Logger) error {
	gs := solver.GroundStateSolver{Problem: problem, Logger: logger}
	res, err := gs.Solve()
	if err != nil {
		return err
	}

	fmt.Printf("Hartree-Fock energy      %16.10f Ha\n", res.HFEnergy)
	fmt.Printf("Electronic ground state  %16.10f Ha\n", res.ElectronicEnergy)
	fmt.Printf("Nuclear repulsion        %16.10f Ha\n", res.NuclearRepulsion)
	fmt.Printf("Total energy             %16.10f Ha\n", res.TotalEnergy)
	fmt.Printf("Particle number          %16.10f\n", res.ParticleNumber)
	fmt.Printf("Spin squared             %16.10f\n", res.AngularMomentum)
	fmt.Printf("Magnetization            %16.10f\n", res.Magnetization)
	if res.Dipole != nil {
		d := *res.Dipole
		fmt.Printf("Dipole moment            %12.6f %12.6f %12.6f a.u.\n", d[0], d[1], d[2])
	}
	return nil
}

func runScan(cfg *config.Config, logger *zap.Logger) error {
	sampler := solver.SurfaceSampler{ProblemAt: cfg.ProblemAt, Logger: logger}
	surf, err := sampler.Sample(cfg.Scan.Points)
	if err != nil {
		return err
	}

	fmt.Println("Potential energy surface:")
	for i, pt := range surf.Points {
		fmt.Printf("  %10.4f  %16.10f Ha\n", pt, surf.Energies[i])
	}
	pt, e := surf.MinPoint()
	fmt.Printf("Sampled minimum at %.4f (%.10f Ha)\n", pt, e)

	morse, err := solver.FitMorse(surf)
	if err != nil {
		// a sparse scan is still useful without the fit
		logger.Warn("Morse fit skipped", zap.Error(err))
		return nil
	}
	fmt.Printf("Morse fit: D=%.6f alpha=%.6f r0=%.6f E0=%.10f\n",
		morse.D, morse.Alpha, morse.R0, morse.E0)
	return nil
}
