package contact

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/forcechain/geom"
)

// Contact is a single touching pair. Positions are copied out of the
// snapshot so that a Contact remains valid after the particles are dropped.
type Contact struct {
	ID1, ID2   int64
	Pos1, Pos2 r3.Vec

	Distance float64 // Center-to-center distance
	Delta    float64 // Penetration depth, Diameter - Distance
	Force    float64 // Normal force
}

// Detect checks every unordered pair of particles for contact. Pairs are
// visited as (0, 1), (0, 2), ..., (1, 2), ... and contacts are returned in
// that order. Particles exactly one diameter apart are touching.
//
// found is false if no pair is in contact. This is not an error.
func Detect(ps []geom.Particle, mat *Material) (cs []Contact, found bool) {
	D := mat.Diameter
	for i := range ps {
		p1 := &ps[i]
		for j := i + 1; j < len(ps); j++ {
			p2 := &ps[j]

			dist := geom.Distance(p1, p2)
			if !(dist <= D) { continue }

			delta := D - dist
			cs = append(cs, Contact{
				ID1: p1.ID, ID2: p2.ID,
				Pos1: p1.Pos, Pos2: p2.Pos,
				Distance: dist,
				Delta: delta,
				Force: mat.NormalForce(delta),
			})
		}
	}
	return cs, len(cs) > 0
}

// CoordinationNumber returns the mean number of contacts per particle for
// a snapshot of n particles.
func CoordinationNumber(cs []Contact, n int) float64 {
	if n == 0 { return 0 }
	return 2 * float64(len(cs)) / float64(n)
}
