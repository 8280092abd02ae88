package mesh

// Sample is a scattered survey measurement: a planar position and a
// scalar value. Samples have no ownership relation to any mesh.
type Sample struct {
	X, Y  float64
	Value float64
}

// Rasterize transfers scattered samples onto the cells of a mesh. Each
// sample is assigned to the first cell around its nearest node whose
// planar footprint contains it; a cell's output value is the arithmetic
// mean of the samples assigned to it, or 0 when none were. Samples
// outside every candidate footprint are dropped silently.
//
// The mesh is projected onto the z=0 plane before indexing, so 3D
// meshes are handled by their planar footprint; m itself is never
// mutated. The result has exactly one entry per cell, index-aligned
// with m.Cells. An empty sample set is valid and yields an all-zero
// result. Rasterize fails only when the mesh has no nodes or no cells.
func Rasterize(m *Mesh, samples []Sample) ([]float64, error) {
	flat := ProjectOntoPlane(m, Node{}, [3]float64{0, 0, -1})
	loc, err := NewPointLocator(flat)
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(m.Cells))
	counts := make([]int, len(m.Cells))
	for _, s := range samples {
		ci, ok := loc.Locate(s.X, s.Y)
		if !ok {
			continue
		}
		values[ci] += s.Value
		counts[ci]++
	}
	for i, n := range counts {
		if n > 0 {
			values[i] /= float64(n)
		}
	}
	return values, nil
}
