package geometry

import (
	"testing"

	"github.com/akmonengine/geokernel"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVoxelGrid(t *testing.T) *VoxelGrid {
	t.Helper()
	pc := newPointCloud(t,
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0.1, 0.1, 0.1},
		mgl32.Vec3{1, 0, 0},
		mgl32.Vec3{1.05, 0, 0},
	)
	require.NoError(t, pc.Colors.CopyFromHost([]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0, 0, 1}}))

	vg, err := CreateVoxelGridFromPointCloud(pc, 0.5)
	require.NoError(t, err)
	return vg
}

func TestCreateVoxelGridFromPointCloud(t *testing.T) {
	vg := newVoxelGrid(t)

	assert.Equal(t, mgl32.Vec3{-0.25, -0.25, -0.25}, vg.Origin)
	assert.Equal(t, 2, vg.Len())

	voxels := vg.Voxels()
	require.Len(t, voxels, 2)
	assert.Equal(t, CellKey{0, 0, 0}, voxels[0].Key)
	assert.Equal(t, CellKey{2, 0, 0}, voxels[1].Key)
	assertVec3(t, mgl32.Vec3{0.5, 0.5, 0}, voxels[0].Color)
	assertVec3(t, mgl32.Vec3{0, 0, 1}, voxels[1].Color)

	assertVec3(t, mgl32.Vec3{0, 0, 0}, vg.GetVoxelCenter(voxels[0].Key))
	assertVec3(t, mgl32.Vec3{1, 0, 0}, vg.GetVoxelCenter(voxels[1].Key))
}

func TestVoxelGridInvalidSize(t *testing.T) {
	pc := newPointCloud(t, triangle...)

	for _, size := range []float32{0, -1} {
		_, err := CreateVoxelGridFromPointCloud(pc, size)
		assert.True(t, errors.Is(err, geokernel.ErrInvalidArgument), "size %v", size)
	}
}

func TestVoxelGridLookup(t *testing.T) {
	vg := newVoxelGrid(t)

	tests := []struct {
		name     string
		point    mgl32.Vec3
		expected bool
	}{
		{"First voxel", mgl32.Vec3{0.2, -0.2, 0}, true},
		{"Second voxel", mgl32.Vec3{0.9, 0, 0}, true},
		{"Gap between voxels", mgl32.Vec3{0.5, 0, 0}, false},
		{"Below origin", mgl32.Vec3{-0.3, 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, vg.HasVoxelAt(tt.point))
		})
	}
}

func TestVoxelGridBounds(t *testing.T) {
	vg := newVoxelGrid(t)

	assertVec3(t, mgl32.Vec3{-0.25, -0.25, -0.25}, vg.GetMinBound())
	assertVec3(t, mgl32.Vec3{1.25, 0.25, 0.25}, vg.GetMaxBound())
	assertVec3(t, mgl32.Vec3{0.5, 0, 0}, vg.GetCenter())

	box := vg.GetAxisAlignedBoundingBox()
	assertVec3(t, vg.GetMinBound(), box.Min)
	assertVec3(t, vg.GetMaxBound(), box.Max)
}

func TestVoxelGridTranslateAndScale(t *testing.T) {
	vg := newVoxelGrid(t)

	vg.Translate(mgl32.Vec3{1, 0, 0}, true)
	assertVec3(t, mgl32.Vec3{1.5, 0, 0}, vg.GetCenter())

	vg.Translate(mgl32.Vec3{0, 0, 0}, false)
	assertVec3(t, mgl32.Vec3{0, 0, 0}, vg.GetCenter())

	vg.Scale(2, true)
	require.NoError(t, vg.Err())
	assert.Equal(t, float32(1), vg.VoxelSize)
	assertVec3(t, mgl32.Vec3{0, 0, 0}, vg.GetCenter())
	assertVec3(t, mgl32.Vec3{-1.5, -0.5, -0.5}, vg.GetMinBound())
	assertVec3(t, mgl32.Vec3{1.5, 0.5, 0.5}, vg.GetMaxBound())
}

func TestVoxelGridErrors(t *testing.T) {
	t.Run("non positive scale", func(t *testing.T) {
		vg := newVoxelGrid(t)
		vg.Scale(0, true)
		assert.True(t, errors.Is(vg.Err(), geokernel.ErrInvalidArgument))
		assert.Equal(t, float32(0.5), vg.VoxelSize)
	})

	t.Run("rotation", func(t *testing.T) {
		vg := newVoxelGrid(t)
		vg.Rotate(mgl32.Rotate3DZ(1), true).Translate(mgl32.Vec3{1, 1, 1}, true)
		assert.True(t, errors.Is(vg.Err(), ErrUnsupported))
		assert.Equal(t, mgl32.Vec3{-0.25, -0.25, -0.25}, vg.Origin)
	})

	t.Run("transform", func(t *testing.T) {
		vg := newVoxelGrid(t)
		vg.Transform(mgl32.Ident4())
		assert.True(t, errors.Is(vg.Err(), ErrUnsupported))
	})
}

func TestEmptyVoxelGrid(t *testing.T) {
	vg, err := NewVoxelGrid(mgl32.Vec3{1, 2, 3}, 1)
	require.NoError(t, err)

	assert.True(t, vg.IsEmpty())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, vg.GetMinBound())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, vg.GetMaxBound())
	assert.Equal(t, mgl32.Vec3{}, vg.GetCenter())

	vg.AddVoxel(Voxel{Key: CellKey{1, 1, 1}})
	assert.False(t, vg.IsEmpty())
	assertVec3(t, mgl32.Vec3{2.5, 3.5, 4.5}, vg.GetCenter())

	vg.Clear()
	assert.Equal(t, 0, vg.Len())
}
