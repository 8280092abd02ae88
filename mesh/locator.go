package mesh

import (
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// meshNode adapts a node to the rtree Spatial interface while keeping
// its index around for lookups.
type meshNode struct {
	geom.Point
	id int
}

// PointLocator answers planar point queries against a mesh: nearest
// node and containing cell. It indexes the node (x, y) positions only,
// so callers working with 3D meshes should hand it a mesh projected
// onto the z=0 plane first. The locator is read-only over the mesh and
// is meant to be built, queried and discarded within one operation.
type PointLocator struct {
	m         *Mesh
	tree      *rtree.Rtree
	incidence [][]int
}

// NewPointLocator builds the spatial index over the mesh nodes.
func NewPointLocator(m *Mesh) (*PointLocator, error) {
	if len(m.Nodes) == 0 || len(m.Cells) == 0 {
		return nil, ErrInvalidMesh
	}
	tree := rtree.NewTree(25, 50)
	for i, n := range m.Nodes {
		tree.Insert(&meshNode{Point: geom.Point{X: n.X, Y: n.Y}, id: i})
	}
	return &PointLocator{m: m, tree: tree, incidence: m.NodeCells()}, nil
}

// NearestNode returns the index of the node closest to (x, y).
func (l *PointLocator) NearestNode(x, y float64) int {
	return l.tree.NearestNeighbor(geom.Point{X: x, Y: y}).(*meshNode).id
}

// Locate finds the cell whose planar footprint contains (x, y): it
// takes the nearest node and scans the cells incident to it in
// incidence order, returning the first one containing the point. Points
// on a shared cell edge land in the first incident cell that reports
// containment. ok is false when no incident cell contains the point,
// which includes all points outside the mesh footprint.
func (l *PointLocator) Locate(x, y float64) (cell int, ok bool) {
	pt := geom.Point{X: x, Y: y}
	nearest := l.NearestNode(x, y)
	for _, ci := range l.incidence[nearest] {
		if l.cellContains(ci, pt) {
			return ci, true
		}
	}
	return -1, false
}

func (l *PointLocator) cellContains(ci int, pt geom.Point) bool {
	c := l.m.Cells[ci]
	if c.Type.Dimension() != 2 {
		return false
	}
	ring := make([]geom.Point, len(c.Nodes))
	for i, n := range c.Nodes {
		ring[i] = geom.Point{X: l.m.Nodes[n].X, Y: l.m.Nodes[n].Y}
	}
	return pt.Within(geom.Polygon{ring}) != geom.Outside
}

// Barycentric returns the barycentric weights of (x, y) with respect to
// the triangle (a, b, c) in the plane. ok is false for a degenerate
// triangle. The point lies inside the triangle iff all weights are
// non-negative (up to epsilon).
func Barycentric(a, b, c Node, x, y float64) (wa, wb, wc float64, ok bool) {
	v0x, v0y := b.X-a.X, b.Y-a.Y
	v1x, v1y := c.X-a.X, c.Y-a.Y
	v2x, v2y := x-a.X, y-a.Y

	denom := v0x*v1y - v0y*v1x
	if math.Abs(denom) < 1e-12 {
		return 0, 0, 0, false
	}
	wb = (v2x*v1y - v2y*v1x) / denom
	wc = (v0x*v2y - v0y*v2x) / denom
	wa = 1 - wb - wc
	return wa, wb, wc, true
}
