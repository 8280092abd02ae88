package vtu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufz-vislab/EmiReader/mesh"
)

func writeTempVtu(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.vtu")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestWriteReadRoundTrip(t *testing.T) {
	m, err := mesh.New("strip", []mesh.Node{
		{X: 0, Y: 0, Z: 1.5}, {X: 1, Y: 0, Z: 2.25}, {X: 1, Y: 1, Z: -3},
		{X: 0, Y: 1, Z: 0.125}, {X: 2, Y: 0.5, Z: 4},
	}, []mesh.Cell{
		{Type: mesh.Quad, Nodes: []int{0, 1, 2, 3}},
		{Type: mesh.Triangle, Nodes: []int{1, 4, 2}},
	})
	require.NoError(t, err)
	require.NoError(t, m.AddFloatProperty("TM_DD_H", mesh.CellData, []float64{15, 7.5}))
	require.NoError(t, m.AddIntProperty("MaterialIDs", mesh.CellData, []int32{0, 1}))
	require.NoError(t, m.AddFloatProperty("elevation", mesh.NodeData,
		[]float64{1.5, 2.25, -3, 0.125, 4}))

	path := filepath.Join(t.TempDir(), "strip.vtu")
	require.NoError(t, Write(path, m))

	got, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, "strip", got.Name)
	assert.Equal(t, m.Nodes, got.Nodes)
	assert.Equal(t, m.Cells, got.Cells)

	h, ok := got.FloatProperty("TM_DD_H", mesh.CellData)
	require.True(t, ok)
	assert.Equal(t, []float64{15, 7.5}, h)

	ids, ok := got.IntProperty("MaterialIDs", mesh.CellData)
	require.True(t, ok)
	assert.Equal(t, []int32{0, 1}, ids)

	elev, ok := got.FloatProperty("elevation", mesh.NodeData)
	require.True(t, ok)
	assert.Equal(t, []float64{1.5, 2.25, -3, 0.125, 4}, elev)
}

func TestReadUnsupportedCellType(t *testing.T) {
	// a single tetrahedron (VTK type 10)
	content := `<?xml version="1.0"?>
<VTKFile type="UnstructuredGrid" version="0.1" byte_order="LittleEndian">
  <UnstructuredGrid>
    <Piece NumberOfPoints="4" NumberOfCells="1">
      <Points>
        <DataArray type="Float64" NumberOfComponents="3" format="ascii">
          0 0 0  1 0 0  0 1 0  0 0 1
        </DataArray>
      </Points>
      <Cells>
        <DataArray type="Int64" Name="connectivity" format="ascii">0 1 2 3</DataArray>
        <DataArray type="Int64" Name="offsets" format="ascii">4</DataArray>
        <DataArray type="UInt8" Name="types" format="ascii">10</DataArray>
      </Cells>
    </Piece>
  </UnstructuredGrid>
</VTKFile>`
	_, err := Read(writeTempVtu(t, content))
	assert.ErrorIs(t, err, ErrUnsupportedCell)
}

func TestReadNotUnstructuredGrid(t *testing.T) {
	content := `<?xml version="1.0"?>
<VTKFile type="ImageData" version="0.1" byte_order="LittleEndian">
</VTKFile>`
	_, err := Read(writeTempVtu(t, content))
	assert.Error(t, err)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.vtu"))
	assert.Error(t, err)
}
