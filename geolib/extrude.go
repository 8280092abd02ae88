package geolib

// Extrude turns building outlines into simple 3D shells: the input
// points, polylines and surfaces are copied, a height-shifted copy of
// every point is appended, each polyline grows a wall surface (two
// triangles per segment between the original and the shifted run) and
// each input surface gets a shifted roof copy. The result is a new
// collection named name; g is left unchanged.
func Extrude(g *Geometry, height float64, name string) *Geometry {
	n := len(g.Points)
	out := &Geometry{Name: name}

	out.Points = make([]Point, 0, 2*n)
	out.Points = append(out.Points, g.Points...)
	for _, p := range g.Points {
		out.Points = append(out.Points, Point{X: p.X, Y: p.Y, Z: p.Z + height})
	}

	out.Polylines = make([]Polyline, 0, len(g.Polylines))
	for _, pl := range g.Polylines {
		pts := make([]int, len(pl.Points))
		copy(pts, pl.Points)
		out.Polylines = append(out.Polylines, Polyline{Name: pl.Name, Points: pts})
	}

	for _, s := range g.Surfaces {
		tris := make([]Triangle, len(s.Triangles))
		copy(tris, s.Triangles)
		out.Surfaces = append(out.Surfaces, Surface{Name: s.Name, Triangles: tris})
	}

	// walls: for each segment, the quad between the original and the
	// lifted run as two triangles
	for _, pl := range g.Polylines {
		wall := Surface{}
		for i := 1; i < len(pl.Points); i++ {
			prev, cur := pl.Points[i-1], pl.Points[i]
			wall.Triangles = append(wall.Triangles,
				Triangle{cur, prev, prev + n},
				Triangle{cur, prev + n, cur + n})
		}
		if len(wall.Triangles) > 0 {
			out.Surfaces = append(out.Surfaces, wall)
		}
	}

	// roofs: lifted copies of the input surfaces
	for _, s := range g.Surfaces {
		roof := Surface{}
		for _, tri := range s.Triangles {
			roof.Triangles = append(roof.Triangles,
				Triangle{tri[0] + n, tri[1] + n, tri[2] + n})
		}
		out.Surfaces = append(out.Surfaces, roof)
	}

	return out
}
