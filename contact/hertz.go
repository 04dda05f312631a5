/*package contact finds touching particle pairs in a snapshot and evaluates
the Hertz-Mindlin normal force between them.
*/
package contact

import (
	"fmt"
	"math"
)

const (
	// Defaults used when a config file does not override them. Lengths are
	// in meters and moduli in Pascals.
	DefaultDiameter      = 0.0002
	DefaultYoungsModulus = 1e6
	DefaultPoissonRatio  = 0.3
)

// Material describes identical spherical particles. A Material should be
// constructed once and shared by every snapshot in a batch.
type Material struct {
	Diameter      float64
	YoungsModulus float64
	PoissonRatio  float64
}

// DefaultMaterial returns the Material used when nothing is configured.
func DefaultMaterial() *Material {
	return &Material{
		Diameter:      DefaultDiameter,
		YoungsModulus: DefaultYoungsModulus,
		PoissonRatio:  DefaultPoissonRatio,
	}
}

// Check returns an error if the Material cannot produce physical forces.
func (mat *Material) Check() error {
	if !(mat.Diameter > 0) {
		return fmt.Errorf(
			"Particle diameter must be positive, but is %g.", mat.Diameter,
		)
	} else if !(mat.YoungsModulus > 0) {
		return fmt.Errorf(
			"Young's modulus must be positive, but is %g.", mat.YoungsModulus,
		)
	} else if !(mat.PoissonRatio > -1 && mat.PoissonRatio <= 0.5) {
		return fmt.Errorf(
			"Poisson's ratio must be in range (-1, 0.5], but is %g.",
			mat.PoissonRatio,
		)
	}
	return nil
}

// Radius returns the particle radius.
func (mat *Material) Radius() float64 { return mat.Diameter / 2 }

// EffectiveModulus returns E* for two particles with matching Young's
// modulus and Poisson's ratio.
func (mat *Material) EffectiveModulus() float64 {
	nu := mat.PoissonRatio
	return mat.YoungsModulus / (2 * (1 - nu*nu))
}

// ReducedRadius returns R* for two particles of equal radius.
func (mat *Material) ReducedRadius() float64 { return mat.Radius() / 2 }

// NormalForce returns the Hertz-Mindlin normal force for a penetration depth
// of delta:
//
//     F_n = (4/3) E* sqrt(R*) delta^(3/2)
//
// delta must be non-negative. Negative depths are not clamped and give NaN.
func (mat *Material) NormalForce(delta float64) float64 {
	return (4.0 / 3.0) * mat.EffectiveModulus() *
		math.Sqrt(mat.ReducedRadius()) * math.Pow(delta, 1.5)
}
