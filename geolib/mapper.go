package geolib

import (
	"fmt"

	"github.com/ufz-vislab/EmiReader/mesh"
)

// MapOnSurface drapes the geometry's points onto a DEM surface mesh:
// each point's z is replaced by the surface height at its (x, y)
// position, interpolated over the containing cell. Points outside the
// surface footprint fall back to the elevation of the nearest surface
// node. Polylines and surfaces are untouched since only coordinates
// change.
func MapOnSurface(g *Geometry, dem *mesh.Mesh) error {
	if dem.Dimension() != 2 {
		return fmt.Errorf("surface mesh %q is not 2D", dem.Name)
	}
	flat := mesh.ProjectOntoPlane(dem, mesh.Node{}, [3]float64{0, 0, -1})
	loc, err := mesh.NewPointLocator(flat)
	if err != nil {
		return err
	}

	for i, p := range g.Points {
		g.Points[i].Z = surfaceHeight(dem, loc, p.X, p.Y)
	}
	return nil
}

func surfaceHeight(dem *mesh.Mesh, loc *mesh.PointLocator, x, y float64) float64 {
	nearest := loc.NearestNode(x, y)
	ci, ok := loc.Locate(x, y)
	if !ok {
		return dem.Nodes[nearest].Z
	}

	c := dem.Cells[ci]
	for _, tri := range triangleFans(c) {
		a, b, cc := dem.Nodes[tri[0]], dem.Nodes[tri[1]], dem.Nodes[tri[2]]
		wa, wb, wc, ok := mesh.Barycentric(a, b, cc, x, y)
		if !ok {
			continue
		}
		const eps = 1e-9
		if wa >= -eps && wb >= -eps && wc >= -eps {
			return wa*a.Z + wb*b.Z + wc*cc.Z
		}
	}
	return dem.Nodes[nearest].Z
}

// triangleFans splits a 2D cell into triangles fanned from its first
// node, in node order.
func triangleFans(c mesh.Cell) [][3]int {
	fans := make([][3]int, 0, len(c.Nodes)-2)
	for i := 1; i < len(c.Nodes)-1; i++ {
		fans = append(fans, [3]int{c.Nodes[0], c.Nodes[i], c.Nodes[i+1]})
	}
	return fans
}
