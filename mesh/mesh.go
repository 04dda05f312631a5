/*package mesh turns a list of contacts into a line mesh which can be written
to disk. Each contact becomes one line segment between two pooled vertices,
and each segment carries the contact's normal force.
*/
package mesh

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/forcechain/contact"
	"github.com/phil-mansfield/forcechain/geom"
)

// ForceName is the name under which segment forces are exported.
const ForceName = "Force"

var (
	// ErrMalformedGeometry is returned by Check when a mesh's points or
	// lines are not well formed. Such a mesh must not be written.
	ErrMalformedGeometry = errors.New("malformed mesh geometry")
	// ErrScalarMismatch is returned by Check when the number of per-line
	// scalars differs from the number of lines. The mesh can still be
	// written once its scalars are dropped.
	ErrScalarMismatch = errors.New("line/scalar count mismatch")
)

// VertexPool assigns stable indices to unique positions. Positions are
// compared bit-for-bit.
type VertexPool struct {
	idxs   map[geom.Key]int
	points []r3.Vec
}

// NewVertexPool creates an empty VertexPool.
func NewVertexPool() *VertexPool {
	return &VertexPool{idxs: map[geom.Key]int{}}
}

// Index returns the index of v, inserting it at the end of the pool if it
// has not been seen before.
func (pool *VertexPool) Index(v r3.Vec) int {
	key := geom.KeyOf(v)
	if idx, ok := pool.idxs[key]; ok { return idx }

	idx := len(pool.points)
	pool.idxs[key] = idx
	pool.points = append(pool.points, v)
	return idx
}

// Len returns the number of unique positions in the pool.
func (pool *VertexPool) Len() int { return len(pool.points) }

// Points returns the pooled positions in index order.
func (pool *VertexPool) Points() []r3.Vec { return pool.points }

// Mesh is a line mesh with one scalar per line. Points is a flat array of
// coordinates, three per vertex, and each element of Lines holds the two
// vertex indices of a segment.
type Mesh struct {
	Points []float64
	Lines  [][]int
	Forces []float64
}

// Assemble builds a Mesh from contacts. Lines and Forces are in the same
// order as cs.
func Assemble(cs []contact.Contact) *Mesh {
	pool := NewVertexPool()
	m := &Mesh{
		Lines:  make([][]int, 0, len(cs)),
		Forces: make([]float64, 0, len(cs)),
	}

	for i := range cs {
		i1 := pool.Index(cs[i].Pos1)
		i2 := pool.Index(cs[i].Pos2)
		m.Lines = append(m.Lines, []int{i1, i2})
		m.Forces = append(m.Forces, cs[i].Force)
	}

	m.Points = make([]float64, 0, 3*pool.Len())
	for _, v := range pool.Points() {
		m.Points = append(m.Points, v.X, v.Y, v.Z)
	}

	return m
}

// Vertices returns the number of vertices in the mesh.
func (m *Mesh) Vertices() int { return len(m.Points) / 3 }

// HasScalars returns true if the mesh carries per-line forces.
func (m *Mesh) HasScalars() bool { return m.Forces != nil }

// DropScalars removes the per-line forces from the mesh.
func (m *Mesh) DropScalars() { m.Forces = nil }

// Check validates the mesh. Geometry problems are reported with
// ErrMalformedGeometry and take precedence over ErrScalarMismatch.
func (m *Mesh) Check() error {
	if len(m.Points)%3 != 0 {
		return fmt.Errorf(
			"%w: %d coordinates do not form three-component points",
			ErrMalformedGeometry, len(m.Points),
		)
	}

	n := m.Vertices()
	for i, line := range m.Lines {
		if len(line) != 2 {
			return fmt.Errorf(
				"%w: line %d references %d vertices instead of 2",
				ErrMalformedGeometry, i, len(line),
			)
		}
		for _, idx := range line {
			if idx < 0 || idx >= n {
				return fmt.Errorf(
					"%w: line %d references vertex %d of %d",
					ErrMalformedGeometry, i, idx, n,
				)
			}
		}
	}

	if m.HasScalars() && len(m.Forces) != len(m.Lines) {
		return fmt.Errorf(
			"%w: %d forces and %d lines",
			ErrScalarMismatch, len(m.Forces), len(m.Lines),
		)
	}

	return nil
}
