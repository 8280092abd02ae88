// Package geolib holds named geometry collections of points, polylines
// and triangulated surfaces, with readers and writers for the XML
// geometry format and for shapefile footprints. Polylines and surface
// triangles reference points by index into the owning collection.
package geolib

import "fmt"

// Point is a 3D survey coordinate.
type Point struct {
	X, Y, Z float64
}

// Polyline is an ordered run of point indices. A polyline is closed
// when its first and last index coincide.
type Polyline struct {
	Name   string
	Points []int
}

// Closed reports whether the polyline ends where it starts.
func (p Polyline) Closed() bool {
	return len(p.Points) > 2 && p.Points[0] == p.Points[len(p.Points)-1]
}

// Triangle references three points of the owning geometry.
type Triangle [3]int

// Surface is a set of triangles over the geometry's points.
type Surface struct {
	Name      string
	Triangles []Triangle
}

// Geometry is a named collection owning its points; polylines and
// surfaces index into Points.
type Geometry struct {
	Name      string
	Points    []Point
	Polylines []Polyline
	Surfaces  []Surface
}

// Validate checks that all polyline and surface point references are in
// range.
func (g *Geometry) Validate() error {
	n := len(g.Points)
	for i, pl := range g.Polylines {
		for _, p := range pl.Points {
			if p < 0 || p >= n {
				return fmt.Errorf("polyline %d references point %d of %d", i, p, n)
			}
		}
	}
	for i, s := range g.Surfaces {
		for _, tri := range s.Triangles {
			for _, p := range tri {
				if p < 0 || p >= n {
					return fmt.Errorf("surface %d references point %d of %d", i, p, n)
				}
			}
		}
	}
	return nil
}
