package geolib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufz-vislab/EmiReader/mesh"
)

// rampSurface is a two-triangle square whose elevation rises linearly
// with x: z = 10*x.
func rampSurface(t *testing.T) *mesh.Mesh {
	t.Helper()
	m, err := mesh.New("dem", []mesh.Node{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 10}, {X: 1, Y: 1, Z: 10}, {X: 0, Y: 1, Z: 0},
	}, []mesh.Cell{
		{Type: mesh.Triangle, Nodes: []int{0, 1, 2}},
		{Type: mesh.Triangle, Nodes: []int{0, 2, 3}},
	})
	require.NoError(t, err)
	return m
}

func TestMapOnSurfaceInterpolates(t *testing.T) {
	dem := rampSurface(t)
	g := &Geometry{Name: "emi", Points: []Point{
		{X: 0.5, Y: 0.25, Z: 0}, // inside first triangle
		{X: 0.25, Y: 0.75, Z: 0},
		{X: 1, Y: 0, Z: 0}, // on a corner node
	}}
	require.NoError(t, MapOnSurface(g, dem))

	assert.InDelta(t, 5.0, g.Points[0].Z, 1e-9)
	assert.InDelta(t, 2.5, g.Points[1].Z, 1e-9)
	assert.InDelta(t, 10.0, g.Points[2].Z, 1e-9)
}

func TestMapOnSurfaceOutsideFallsBackToNearestNode(t *testing.T) {
	dem := rampSurface(t)
	g := &Geometry{Name: "emi", Points: []Point{{X: 5, Y: 0.5, Z: -1}}}
	require.NoError(t, MapOnSurface(g, dem))

	// nearest node is (1, 0) or (1, 1), both at z=10
	assert.Equal(t, 10.0, g.Points[0].Z)
}

func TestMapOnSurfaceRejectsNonSurfaceMesh(t *testing.T) {
	line, err := mesh.New("line", []mesh.Node{{X: 0}, {X: 1}},
		[]mesh.Cell{{Type: mesh.Line, Nodes: []int{0, 1}}})
	require.NoError(t, err)

	g := &Geometry{Name: "emi", Points: []Point{{X: 0.5}}}
	assert.Error(t, MapOnSurface(g, line))
}

func TestMapOnSurfaceQuadCell(t *testing.T) {
	dem, err := mesh.New("dem", []mesh.Node{
		{X: 0, Y: 0, Z: 4}, {X: 2, Y: 0, Z: 4}, {X: 2, Y: 2, Z: 8}, {X: 0, Y: 2, Z: 8},
	}, []mesh.Cell{{Type: mesh.Quad, Nodes: []int{0, 1, 2, 3}}})
	require.NoError(t, err)

	g := &Geometry{Name: "emi", Points: []Point{{X: 1, Y: 1, Z: 0}}}
	require.NoError(t, MapOnSurface(g, dem))
	assert.InDelta(t, 6.0, g.Points[0].Z, 1e-9)
}
