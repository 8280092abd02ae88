package geolib

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
)

// The .gml geometry layout: one named collection per file with points,
// polylines referencing point ids and surfaces made of point-id
// triangles.

type gmlFile struct {
	XMLName   xml.Name      `xml:"OpenGeoSysGLI"`
	Name      string        `xml:"name"`
	Points    []gmlPoint    `xml:"points>point"`
	Polylines []gmlPolyline `xml:"polylines>polyline"`
	Surfaces  []gmlSurface  `xml:"surfaces>surface"`
}

type gmlPoint struct {
	ID   int     `xml:"id,attr"`
	X    float64 `xml:"x,attr"`
	Y    float64 `xml:"y,attr"`
	Z    float64 `xml:"z,attr"`
	Name string  `xml:"name,attr,omitempty"`
}

type gmlPolyline struct {
	ID     int    `xml:"id,attr"`
	Name   string `xml:"name,attr,omitempty"`
	Points []int  `xml:"pnt"`
}

type gmlSurface struct {
	ID       int          `xml:"id,attr"`
	Name     string       `xml:"name,attr,omitempty"`
	Elements []gmlElement `xml:"element"`
}

type gmlElement struct {
	P1 int `xml:"p1,attr"`
	P2 int `xml:"p2,attr"`
	P3 int `xml:"p3,attr"`
}

// ReadGML loads a geometry collection from an XML geometry file. Point
// ids are remapped to positional indices when the file numbers them
// sparsely.
func ReadGML(path string) (*Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file gmlFile
	if err := xml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	g := &Geometry{Name: file.Name}
	idx := make(map[int]int, len(file.Points))
	for i, p := range file.Points {
		idx[p.ID] = i
		g.Points = append(g.Points, Point{X: p.X, Y: p.Y, Z: p.Z})
	}

	lookup := func(id int) (int, error) {
		i, ok := idx[id]
		if !ok {
			return 0, fmt.Errorf("%s: unknown point id %d", path, id)
		}
		return i, nil
	}

	for _, pl := range file.Polylines {
		line := Polyline{Name: pl.Name}
		for _, id := range pl.Points {
			i, err := lookup(id)
			if err != nil {
				return nil, err
			}
			line.Points = append(line.Points, i)
		}
		g.Polylines = append(g.Polylines, line)
	}

	for _, s := range file.Surfaces {
		sfc := Surface{Name: s.Name}
		for _, e := range s.Elements {
			var tri Triangle
			for j, id := range [3]int{e.P1, e.P2, e.P3} {
				i, err := lookup(id)
				if err != nil {
					return nil, err
				}
				tri[j] = i
			}
			sfc.Triangles = append(sfc.Triangles, tri)
		}
		g.Surfaces = append(g.Surfaces, sfc)
	}
	return g, nil
}

// WriteGML stores the geometry collection as an XML geometry file.
func WriteGML(path string, g *Geometry) error {
	if err := g.Validate(); err != nil {
		return err
	}
	file := gmlFile{Name: g.Name}
	for i, p := range g.Points {
		file.Points = append(file.Points, gmlPoint{ID: i, X: p.X, Y: p.Y, Z: p.Z})
	}
	for i, pl := range g.Polylines {
		name := pl.Name
		if name == "" {
			name = "ply_" + strconv.Itoa(i)
		}
		file.Polylines = append(file.Polylines, gmlPolyline{ID: i, Name: name, Points: pl.Points})
	}
	for i, s := range g.Surfaces {
		sfc := gmlSurface{ID: i, Name: s.Name}
		for _, tri := range s.Triangles {
			sfc.Elements = append(sfc.Elements, gmlElement{P1: tri[0], P2: tri[1], P3: tri[2]})
		}
		file.Surfaces = append(file.Surfaces, sfc)
	}

	out, err := xml.MarshalIndent(file, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(xml.Header), out...), 0644)
}
