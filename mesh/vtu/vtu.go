// Package vtu reads and writes VTK XML unstructured-grid files (.vtu)
// in ascii encoding, covering the surface the conversion tools need:
// point coordinates, line/triangle/quad cells and named per-node or
// per-cell scalar arrays.
package vtu

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ufz-vislab/EmiReader/mesh"
)

// VTK cell type codes.
const (
	vtkLine     = 3
	vtkTriangle = 5
	vtkQuad     = 9
)

var ErrUnsupportedCell = errors.New("unsupported VTK cell type")

type vtkFile struct {
	XMLName   xml.Name `xml:"VTKFile"`
	Type      string   `xml:"type,attr"`
	Version   string   `xml:"version,attr"`
	ByteOrder string   `xml:"byte_order,attr"`
	Grid      vtkGrid  `xml:"UnstructuredGrid"`
}

type vtkGrid struct {
	Pieces []vtkPiece `xml:"Piece"`
}

type vtkPiece struct {
	NumberOfPoints int       `xml:"NumberOfPoints,attr"`
	NumberOfCells  int       `xml:"NumberOfCells,attr"`
	PointData      *vtkData  `xml:"PointData,omitempty"`
	CellData       *vtkData  `xml:"CellData,omitempty"`
	Points         vtkPoints `xml:"Points"`
	Cells          vtkCells  `xml:"Cells"`
}

type vtkData struct {
	Arrays []vtkArray `xml:"DataArray"`
}

type vtkPoints struct {
	Array vtkArray `xml:"DataArray"`
}

type vtkCells struct {
	Arrays []vtkArray `xml:"DataArray"`
}

type vtkArray struct {
	Type       string `xml:"type,attr"`
	Name       string `xml:"Name,attr,omitempty"`
	Components int    `xml:"NumberOfComponents,attr,omitempty"`
	Format     string `xml:"format,attr"`
	Data       string `xml:",chardata"`
}

func (a vtkArray) floats() ([]float64, error) {
	fields := strings.Fields(a.Data)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("array %q: %w", a.Name, err)
		}
		out[i] = v
	}
	return out, nil
}

func (a vtkArray) ints() ([]int, error) {
	fields := strings.Fields(a.Data)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("array %q: %w", a.Name, err)
		}
		out[i] = v
	}
	return out, nil
}

func isIntType(t string) bool {
	switch t {
	case "Int8", "UInt8", "Int16", "UInt16", "Int32", "UInt32", "Int64", "UInt64":
		return true
	}
	return false
}

// Read parses a .vtu file into a mesh named after the file.
func Read(path string) (*mesh.Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file vtkFile
	if err := xml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if file.Type != "UnstructuredGrid" || len(file.Grid.Pieces) == 0 {
		return nil, fmt.Errorf("%s: not an unstructured grid", path)
	}
	piece := file.Grid.Pieces[0]

	coords, err := piece.Points.Array.floats()
	if err != nil {
		return nil, err
	}
	if len(coords) != 3*piece.NumberOfPoints {
		return nil, fmt.Errorf("%s: %d coordinates for %d points", path, len(coords), piece.NumberOfPoints)
	}
	nodes := make([]mesh.Node, piece.NumberOfPoints)
	for i := range nodes {
		nodes[i] = mesh.Node{X: coords[3*i], Y: coords[3*i+1], Z: coords[3*i+2]}
	}

	cells, err := readCells(piece.Cells, piece.NumberOfCells)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := mesh.New(name, nodes, cells)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := attachData(m, piece.PointData, mesh.NodeData); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := attachData(m, piece.CellData, mesh.CellData); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func readCells(vc vtkCells, numCells int) ([]mesh.Cell, error) {
	var conn, offsets, types []int
	for _, a := range vc.Arrays {
		vals, err := a.ints()
		if err != nil {
			return nil, err
		}
		switch a.Name {
		case "connectivity":
			conn = vals
		case "offsets":
			offsets = vals
		case "types":
			types = vals
		}
	}
	if len(offsets) != numCells || len(types) != numCells {
		return nil, fmt.Errorf("cell arrays have %d/%d entries for %d cells",
			len(offsets), len(types), numCells)
	}

	cells := make([]mesh.Cell, numCells)
	start := 0
	for i := 0; i < numCells; i++ {
		end := offsets[i]
		if end < start || end > len(conn) {
			return nil, fmt.Errorf("cell %d: bad offset %d", i, end)
		}
		var ct mesh.CellType
		switch types[i] {
		case vtkLine:
			ct = mesh.Line
		case vtkTriangle:
			ct = mesh.Triangle
		case vtkQuad:
			ct = mesh.Quad
		default:
			return nil, fmt.Errorf("cell %d: %w: %d", i, ErrUnsupportedCell, types[i])
		}
		cells[i] = mesh.Cell{Type: ct, Nodes: conn[start:end]}
		start = end
	}
	return cells, nil
}

func attachData(m *mesh.Mesh, d *vtkData, loc mesh.ItemType) error {
	if d == nil {
		return nil
	}
	for _, a := range d.Arrays {
		if a.Components > 1 {
			// vector arrays are outside the tools' needs; skipped on read
			continue
		}
		if isIntType(a.Type) {
			vals, err := a.ints()
			if err != nil {
				return err
			}
			ints := make([]int32, len(vals))
			for i, v := range vals {
				ints[i] = int32(v)
			}
			if err := m.AddIntProperty(a.Name, loc, ints); err != nil {
				return err
			}
			continue
		}
		vals, err := a.floats()
		if err != nil {
			return err
		}
		if err := m.AddFloatProperty(a.Name, loc, vals); err != nil {
			return err
		}
	}
	return nil
}

// Write stores the mesh as an ascii .vtu file, including all property
// arrays.
func Write(path string, m *mesh.Mesh) error {
	piece := vtkPiece{
		NumberOfPoints: m.NumNodes(),
		NumberOfCells:  m.NumCells(),
	}

	var coords strings.Builder
	for _, n := range m.Nodes {
		coords.WriteString(formatFloat(n.X))
		coords.WriteByte(' ')
		coords.WriteString(formatFloat(n.Y))
		coords.WriteByte(' ')
		coords.WriteString(formatFloat(n.Z))
		coords.WriteByte('\n')
	}
	piece.Points.Array = vtkArray{
		Type: "Float64", Components: 3, Format: "ascii", Data: coords.String(),
	}

	var conn, offsets, types strings.Builder
	offset := 0
	for _, c := range m.Cells {
		for _, n := range c.Nodes {
			conn.WriteString(strconv.Itoa(n))
			conn.WriteByte(' ')
		}
		offset += len(c.Nodes)
		offsets.WriteString(strconv.Itoa(offset))
		offsets.WriteByte(' ')
		switch c.Type {
		case mesh.Line:
			types.WriteString(strconv.Itoa(vtkLine))
		case mesh.Triangle:
			types.WriteString(strconv.Itoa(vtkTriangle))
		case mesh.Quad:
			types.WriteString(strconv.Itoa(vtkQuad))
		}
		types.WriteByte(' ')
	}
	piece.Cells.Arrays = []vtkArray{
		{Type: "Int64", Name: "connectivity", Format: "ascii", Data: conn.String()},
		{Type: "Int64", Name: "offsets", Format: "ascii", Data: offsets.String()},
		{Type: "UInt8", Name: "types", Format: "ascii", Data: types.String()},
	}

	piece.PointData = propertyArrays(m, mesh.NodeData)
	piece.CellData = propertyArrays(m, mesh.CellData)

	file := vtkFile{
		Type:      "UnstructuredGrid",
		Version:   "0.1",
		ByteOrder: "LittleEndian",
		Grid:      vtkGrid{Pieces: []vtkPiece{piece}},
	}
	out, err := xml.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(xml.Header), out...), 0644)
}

func propertyArrays(m *mesh.Mesh, loc mesh.ItemType) *vtkData {
	var arrays []vtkArray
	for _, p := range m.FloatProps {
		if p.Loc != loc {
			continue
		}
		var b strings.Builder
		for _, v := range p.Values {
			b.WriteString(formatFloat(v))
			b.WriteByte(' ')
		}
		arrays = append(arrays, vtkArray{
			Type: "Float64", Name: p.Name, Format: "ascii", Data: b.String(),
		})
	}
	for _, p := range m.IntProps {
		if p.Loc != loc {
			continue
		}
		var b strings.Builder
		for _, v := range p.Values {
			b.WriteString(strconv.FormatInt(int64(v), 10))
			b.WriteByte(' ')
		}
		arrays = append(arrays, vtkArray{
			Type: "Int32", Name: p.Name, Format: "ascii", Data: b.String(),
		})
	}
	if arrays == nil {
		return nil
	}
	return &vtkData{Arrays: arrays}
}

// formatFloat keeps the shortest representation that survives a
// read-back exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
