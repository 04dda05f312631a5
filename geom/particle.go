/*package geom contains the geometric primitives shared by the contact and
mesh packages.
*/
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Particle is a single labeled particle from a snapshot. Particles are never
// modified after they have been read.
type Particle struct {
	ID  int64
	Pos r3.Vec
}

// Distance returns the Euclidean distance between two particles.
func Distance(p1, p2 *Particle) float64 {
	return r3.Norm(r3.Sub(p1.Pos, p2.Pos))
}

// Key is the exact bit pattern of a position. Two positions have the same
// Key if and only if their coordinates are bit-for-bit identical.
type Key [3]uint64

// KeyOf returns the Key of a position.
func KeyOf(v r3.Vec) Key {
	return Key{
		math.Float64bits(v.X), math.Float64bits(v.Y), math.Float64bits(v.Z),
	}
}
