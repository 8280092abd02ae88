package geolib

import (
	"path/filepath"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFootprints(t *testing.T) {
	type footprint struct {
		Polygon geom.Polygon
		Height  float64
	}

	path := filepath.Join(t.TempDir(), "plans.shp")
	enc, err := shp.NewEncoder(path, footprint{})
	require.NoError(t, err)
	require.NoError(t, enc.Encode(footprint{
		Polygon: geom.Polygon{{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}, {X: 0, Y: 5}, {X: 0, Y: 0},
		}},
		Height: 7,
	}))
	enc.Close()

	g, err := ReadFootprints(path)
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	assert.Equal(t, "plans", g.Name)

	require.Len(t, g.Polylines, 1)
	pl := g.Polylines[0]
	assert.True(t, pl.Closed())
	// closing vertex is by index, not a duplicated point
	assert.Len(t, g.Points, len(pl.Points)-1)

	for _, p := range g.Points {
		assert.Equal(t, 0.0, p.Z)
	}

	xs := map[float64]bool{}
	for _, p := range g.Points {
		xs[p.X] = true
	}
	assert.True(t, xs[0] && xs[10])
}

func TestReadFootprintsMissingFile(t *testing.T) {
	_, err := ReadFootprints(filepath.Join(t.TempDir(), "nope.shp"))
	assert.Error(t, err)
}
