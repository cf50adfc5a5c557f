// Package skybox draws a cube-mapped sky around the camera.
package skybox

// FaceCount is the number of cube map faces.
const FaceCount = 6

// cubeVertices returns the 36 positions of a unit cube seen from inside,
// three floats per vertex.
func cubeVertices() []float32 {
	// Corners of the [-1, 1] cube
	c := [8][3]float32{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	// Two triangles per face, wound to face the cube's center
	faces := [FaceCount][6]int{
		{1, 5, 6, 6, 2, 1}, // +X
		{4, 0, 3, 3, 7, 4}, // -X
		{3, 2, 6, 6, 7, 3}, // +Y
		{4, 5, 1, 1, 0, 4}, // -Y
		{5, 4, 7, 7, 6, 5}, // +Z
		{0, 1, 2, 2, 3, 0}, // -Z
	}

	v := make([]float32, 0, FaceCount*6*3)
	for _, f := range faces {
		for _, i := range f {
			v = append(v, c[i][0], c[i][1], c[i][2])
		}
	}
	return v
}
