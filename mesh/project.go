package mesh

import (
	"gonum.org/v1/gonum/floats"
)

// ProjectOntoPlane returns a copy of m with every node replaced by its
// orthogonal projection onto the plane given by origin and normal. Cell
// connectivity and identifiers are preserved exactly; property arrays
// are not carried over since the projected mesh only serves geometric
// queries. The input mesh is left untouched.
func ProjectOntoPlane(m *Mesh, origin Node, normal [3]float64) *Mesh {
	nrm := floats.Norm(normal[:], 2)
	n := normal
	if nrm != 0 {
		n = [3]float64{normal[0] / nrm, normal[1] / nrm, normal[2] / nrm}
	}

	nodes := make([]Node, len(m.Nodes))
	for i, p := range m.Nodes {
		d := (p.X-origin.X)*n[0] + (p.Y-origin.Y)*n[1] + (p.Z-origin.Z)*n[2]
		nodes[i] = Node{
			X: p.X - d*n[0],
			Y: p.Y - d*n[1],
			Z: p.Z - d*n[2],
		}
	}

	cells := make([]Cell, len(m.Cells))
	for i, c := range m.Cells {
		nn := make([]int, len(c.Nodes))
		copy(nn, c.Nodes)
		cells[i] = Cell{Type: c.Type, Nodes: nn}
	}

	return &Mesh{Name: m.Name, Nodes: nodes, Cells: cells}
}
