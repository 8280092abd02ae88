package geolib

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
)

// ReadFootprints loads polygon outlines from a shapefile into a
// geometry collection of closed polylines, one per polygon ring. The
// shapefile carries no elevation for our purposes; all points get z=0.
func ReadFootprints(path string) (*Geometry, error) {
	dec, err := shp.NewDecoder(path)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	g := &Geometry{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	var row struct{ Geom geom.Geom }
	for dec.DecodeRow(&row) {
		switch t := row.Geom.(type) {
		case geom.Polygon:
			addPolygonRings(g, t)
		case geom.MultiPolygon:
			for _, poly := range t {
				addPolygonRings(g, poly)
			}
		default:
			return nil, fmt.Errorf("%s: unsupported shape type %T", path, row.Geom)
		}
	}
	if err := dec.Error(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func addPolygonRings(g *Geometry, poly geom.Polygon) {
	for _, ring := range poly {
		if len(ring) < 3 {
			continue
		}
		// drop an explicit closing vertex; closure is restored by index
		if ring[0].Equals(ring[len(ring)-1]) {
			ring = ring[:len(ring)-1]
		}
		start := len(g.Points)
		line := Polyline{Points: make([]int, 0, len(ring)+1)}
		for i, p := range ring {
			g.Points = append(g.Points, Point{X: p.X, Y: p.Y})
			line.Points = append(line.Points, start+i)
		}
		line.Points = append(line.Points, start)
		g.Polylines = append(g.Polylines, line)
	}
}
