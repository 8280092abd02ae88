package geolib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGeometry() *Geometry {
	return &Geometry{
		Name: "buildings",
		Points: []Point{
			{0, 0, 0}, {10, 0, 0}, {10, 5, 0}, {0, 5, 0},
		},
		Polylines: []Polyline{
			{Name: "outline", Points: []int{0, 1, 2, 3, 0}},
		},
		Surfaces: []Surface{
			{Name: "floor", Triangles: []Triangle{{0, 1, 2}, {0, 2, 3}}},
		},
	}
}

func TestGMLRoundTrip(t *testing.T) {
	g := testGeometry()
	path := filepath.Join(t.TempDir(), "buildings.gml")
	require.NoError(t, WriteGML(path, g))

	got, err := ReadGML(path)
	require.NoError(t, err)

	assert.Equal(t, g.Name, got.Name)
	assert.Equal(t, g.Points, got.Points)
	require.Len(t, got.Polylines, 1)
	assert.Equal(t, g.Polylines[0].Points, got.Polylines[0].Points)
	assert.True(t, got.Polylines[0].Closed())
	require.Len(t, got.Surfaces, 1)
	assert.Equal(t, g.Surfaces[0].Triangles, got.Surfaces[0].Triangles)
}

func TestReadGMLSparsePointIDs(t *testing.T) {
	content := `<?xml version="1.0"?>
<OpenGeoSysGLI>
 <name>sparse</name>
 <points>
  <point id="10" x="0" y="0" z="0"/>
  <point id="20" x="1" y="0" z="0"/>
  <point id="30" x="0" y="1" z="2.5"/>
 </points>
 <surfaces>
  <surface id="0">
   <element p1="10" p2="20" p3="30"/>
  </surface>
 </surfaces>
</OpenGeoSysGLI>`
	path := filepath.Join(t.TempDir(), "sparse.gml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	g, err := ReadGML(path)
	require.NoError(t, err)
	require.Len(t, g.Points, 3)
	require.Len(t, g.Surfaces, 1)
	assert.Equal(t, Triangle{0, 1, 2}, g.Surfaces[0].Triangles[0])
}

func TestReadGMLUnknownPointID(t *testing.T) {
	content := `<?xml version="1.0"?>
<OpenGeoSysGLI>
 <name>broken</name>
 <points>
  <point id="0" x="0" y="0" z="0"/>
 </points>
 <polylines>
  <polyline id="0"><pnt>0</pnt><pnt>99</pnt></polyline>
 </polylines>
</OpenGeoSysGLI>`
	path := filepath.Join(t.TempDir(), "broken.gml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := ReadGML(path)
	assert.Error(t, err)
}

func TestWriteGMLInvalidGeometry(t *testing.T) {
	g := &Geometry{
		Name:      "bad",
		Points:    []Point{{0, 0, 0}},
		Polylines: []Polyline{{Points: []int{0, 5}}},
	}
	err := WriteGML(filepath.Join(t.TempDir(), "bad.gml"), g)
	assert.Error(t, err)
}
