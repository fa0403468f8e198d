package geometry

import (
	"testing"

	"github.com/akmonengine/geokernel"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitQuad is the unit square in the XY plane split in two triangles.
func unitQuad(t *testing.T) *TriangleMesh {
	t.Helper()
	mesh, err := NewTriangleMesh(nil,
		[]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		[][3]int32{{0, 1, 2}, {0, 2, 3}},
	)
	require.NoError(t, err)
	return mesh
}

func TestNewTriangleMeshValidatesIndices(t *testing.T) {
	tests := []struct {
		name      string
		triangles [][3]int32
	}{
		{"index past the end", [][3]int32{{0, 1, 3}}},
		{"negative index", [][3]int32{{0, -1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTriangleMesh(nil, triangle, tt.triangles)
			assert.True(t, errors.Is(err, geokernel.ErrInvalidArgument))
		})
	}
}

func TestTriangleMeshBounds(t *testing.T) {
	mesh := unitQuad(t)

	assert.True(t, mesh.HasTriangles())
	assert.False(t, mesh.HasVertexNormals())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, mesh.GetMinBound())
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, mesh.GetMaxBound())
	assertVec3(t, mgl32.Vec3{0.5, 0.5, 0}, mesh.GetCenter())
}

func TestTriangleMeshRotatesAllNormals(t *testing.T) {
	mesh := unitQuad(t)
	up := []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	require.NoError(t, mesh.VertexNormals.CopyFromHost(up))
	require.NoError(t, mesh.TriangleNormals.CopyFromHost(up[:2]))

	mesh.Rotate(mgl32.Rotate3DX(mgl32.DegToRad(90)), true)
	require.NoError(t, mesh.Err())

	for _, n := range mesh.VertexNormals.CopyToHost() {
		assertVec3(t, mgl32.Vec3{0, -1, 0}, n)
	}
	for _, n := range mesh.TriangleNormals.CopyToHost() {
		assertVec3(t, mgl32.Vec3{0, -1, 0}, n)
	}
	assertVec3(t, mgl32.Vec3{0.5, 0.5, 0}, mesh.GetCenter())
}

func TestTriangleMeshTransform(t *testing.T) {
	mesh := unitQuad(t)
	require.NoError(t, mesh.TriangleNormals.CopyFromHost([]mgl32.Vec3{{0, 0, 1}, {0, 0, 1}}))

	mesh.Transform(mgl32.Translate3D(1, 2, 3))
	require.NoError(t, mesh.Err())

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, mesh.GetMinBound())
	assert.Equal(t, mgl32.Vec3{2, 3, 3}, mesh.GetMaxBound())
	assert.Equal(t, []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}}, mesh.TriangleNormals.CopyToHost())
}

func TestTriangleMeshRejectsMismatchedTriangleNormals(t *testing.T) {
	mesh := unitQuad(t)
	require.NoError(t, mesh.TriangleNormals.CopyFromHost([]mgl32.Vec3{{0, 0, 1}}))

	mesh.Rotate(mgl32.Rotate3DZ(1), false)

	assert.True(t, errors.Is(mesh.Err(), geokernel.ErrInvalidArgument))
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, mesh.Vertices.CopyToHost()[1])
}

func TestTriangleMeshScaleAndPaint(t *testing.T) {
	mesh := unitQuad(t)

	mesh.Scale(4, false)
	mesh.PaintUniformColor(colorful.Color{R: 0, G: 0, B: 1})
	require.NoError(t, mesh.Err())

	assert.Equal(t, mgl32.Vec3{4, 4, 0}, mesh.GetMaxBound())
	assert.Equal(t, mesh.Vertices.Len(), mesh.VertexColors.Len())
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, mesh.VertexColors.CopyToHost()[3])

	mesh.Clear()
	assert.True(t, mesh.IsEmpty())
	assert.False(t, mesh.HasTriangles())
}
