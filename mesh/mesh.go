// Package mesh holds an unstructured surface mesh as flat node and cell
// arenas addressed by stable integer indices, together with named
// per-node and per-cell property arrays.
package mesh

import (
	"errors"
	"fmt"
)

// CellType identifies the element geometry of a cell.
type CellType int

const (
	Line CellType = iota
	Triangle
	Quad
)

func (ct CellType) String() string {
	return [...]string{"Line", "Triangle", "Quad"}[ct]
}

// NumNodes returns the number of nodes a cell of this type references.
func (ct CellType) NumNodes() int {
	return [...]int{2, 3, 4}[ct]
}

// Dimension returns the topological dimension of the cell type.
func (ct CellType) Dimension() int {
	return [...]int{1, 2, 2}[ct]
}

// Node is a 3D coordinate. Its identifier is its index in Mesh.Nodes.
type Node struct {
	X, Y, Z float64
}

// Cell references its corner nodes by index into Mesh.Nodes, ordered
// counter-clockwise in the plane for 2D cell types. Its identifier is
// its index in Mesh.Cells.
type Cell struct {
	Type  CellType
	Nodes []int
}

// ItemType says whether a property array is defined per node or per cell.
type ItemType int

const (
	NodeData ItemType = iota
	CellData
)

func (it ItemType) String() string {
	return [...]string{"Node", "Cell"}[it]
}

// FloatProperty is a named scalar array attached to the mesh.
type FloatProperty struct {
	Name   string
	Loc    ItemType
	Values []float64
}

// IntProperty is a named integer array attached to the mesh.
type IntProperty struct {
	Name   string
	Loc    ItemType
	Values []int32
}

// Mesh owns its nodes, cells and property arrays. Cell node references
// are indices into Nodes; Validate checks that invariant. The node/cell
// structure is fixed after construction, only properties may be added.
type Mesh struct {
	Name  string
	Nodes []Node
	Cells []Cell

	FloatProps []FloatProperty
	IntProps   []IntProperty

	nodeCells [][]int
}

var ErrInvalidMesh = errors.New("mesh has no nodes or no cells")

// New builds a mesh from node and cell arenas. The slices are owned by
// the mesh afterwards.
func New(name string, nodes []Node, cells []Cell) (*Mesh, error) {
	m := &Mesh{Name: name, Nodes: nodes, Cells: cells}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that every cell has the node count its type requires
// and references only existing nodes.
func (m *Mesh) Validate() error {
	if len(m.Nodes) == 0 || len(m.Cells) == 0 {
		return ErrInvalidMesh
	}
	for i, c := range m.Cells {
		if len(c.Nodes) != c.Type.NumNodes() {
			return fmt.Errorf("cell %d: %s needs %d nodes, has %d",
				i, c.Type, c.Type.NumNodes(), len(c.Nodes))
		}
		for _, n := range c.Nodes {
			if n < 0 || n >= len(m.Nodes) {
				return fmt.Errorf("cell %d references node %d of %d", i, n, len(m.Nodes))
			}
		}
	}
	return nil
}

func (m *Mesh) NumNodes() int { return len(m.Nodes) }

func (m *Mesh) NumCells() int { return len(m.Cells) }

// Dimension returns the highest topological dimension among the cells,
// or 0 for an empty mesh.
func (m *Mesh) Dimension() int {
	dim := 0
	for _, c := range m.Cells {
		if d := c.Type.Dimension(); d > dim {
			dim = d
		}
	}
	return dim
}

// NodeCells returns the node→cell incidence: for each node index, the
// indices of the cells referencing it, in ascending cell order. The
// mapping is derived once and cached; do not modify the returned slices.
func (m *Mesh) NodeCells() [][]int {
	if m.nodeCells == nil {
		nc := make([][]int, len(m.Nodes))
		for ci, c := range m.Cells {
			for _, n := range c.Nodes {
				nc[n] = append(nc[n], ci)
			}
		}
		m.nodeCells = nc
	}
	return m.nodeCells
}

// AddFloatProperty attaches a named scalar array. The array length must
// match the node or cell count and the name must be unused for that
// item type.
func (m *Mesh) AddFloatProperty(name string, loc ItemType, values []float64) error {
	if err := m.checkProperty(name, loc, len(values)); err != nil {
		return err
	}
	m.FloatProps = append(m.FloatProps, FloatProperty{Name: name, Loc: loc, Values: values})
	return nil
}

// AddIntProperty attaches a named integer array under the same rules as
// AddFloatProperty.
func (m *Mesh) AddIntProperty(name string, loc ItemType, values []int32) error {
	if err := m.checkProperty(name, loc, len(values)); err != nil {
		return err
	}
	m.IntProps = append(m.IntProps, IntProperty{Name: name, Loc: loc, Values: values})
	return nil
}

func (m *Mesh) checkProperty(name string, loc ItemType, n int) error {
	want := len(m.Nodes)
	if loc == CellData {
		want = len(m.Cells)
	}
	if n != want {
		return fmt.Errorf("property %q: %d values for %d %s items", name, n, want, loc)
	}
	if _, ok := m.FloatProperty(name, loc); ok {
		return fmt.Errorf("property %q already exists", name)
	}
	if _, ok := m.IntProperty(name, loc); ok {
		return fmt.Errorf("property %q already exists", name)
	}
	return nil
}

// FloatProperty looks up a scalar array by name and item type.
func (m *Mesh) FloatProperty(name string, loc ItemType) ([]float64, bool) {
	for _, p := range m.FloatProps {
		if p.Name == name && p.Loc == loc {
			return p.Values, true
		}
	}
	return nil, false
}

// IntProperty looks up an integer array by name and item type.
func (m *Mesh) IntProperty(name string, loc ItemType) ([]int32, bool) {
	for _, p := range m.IntProps {
		if p.Name == name && p.Loc == loc {
			return p.Values, true
		}
	}
	return nil, false
}
