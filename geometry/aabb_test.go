package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(min, max mgl32.Vec3) AxisAlignedBoundingBox {
	return AxisAlignedBoundingBox{Min: min, Max: max}
}

func TestAABBOverlaps_Separated(t *testing.T) {
	tests := []struct {
		name  string
		aabb1 AxisAlignedBoundingBox
		aabb2 AxisAlignedBoundingBox
	}{
		{
			name:  "Separated on X axis",
			aabb1: box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}),
			aabb2: box(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{3, 1, 1}),
		},
		{
			name:  "Separated on Y axis",
			aabb1: box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}),
			aabb2: box(mgl32.Vec3{0, -2, 0}, mgl32.Vec3{1, -1, 1}),
		},
		{
			name:  "Separated on Z axis",
			aabb1: box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}),
			aabb2: box(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{1, 1, 3}),
		},
		{
			name:  "Overlapping on two axes only",
			aabb1: box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 2}),
			aabb2: box(mgl32.Vec3{1, 1, 5}, mgl32.Vec3{3, 3, 6}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.aabb1.Overlaps(tt.aabb2) {
				t.Errorf("AABBs should not overlap")
			}
			// Test symmetry
			if tt.aabb2.Overlaps(tt.aabb1) {
				t.Errorf("AABBs should not overlap (symmetry test)")
			}
		})
	}
}

func TestAABBOverlaps_Overlapping(t *testing.T) {
	tests := []struct {
		name  string
		aabb1 AxisAlignedBoundingBox
		aabb2 AxisAlignedBoundingBox
	}{
		{
			name:  "Identical",
			aabb1: box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}),
			aabb2: box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}),
		},
		{
			name:  "Partial overlap on all axes",
			aabb1: box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 2}),
			aabb2: box(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{3, 3, 3}),
		},
		{
			name:  "Containment",
			aabb1: box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, 10, 10}),
			aabb2: box(mgl32.Vec3{4, 4, 4}, mgl32.Vec3{5, 5, 5}),
		},
		{
			name:  "Face touching",
			aabb1: box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}),
			aabb2: box(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{2, 1, 1}),
		},
		{
			name:  "Corner touching",
			aabb1: box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}),
			aabb2: box(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{2, 2, 2}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.aabb1.Overlaps(tt.aabb2) {
				t.Errorf("AABBs should overlap")
			}
			if !tt.aabb2.Overlaps(tt.aabb1) {
				t.Errorf("AABBs should overlap (symmetry test)")
			}
		})
	}
}

func TestAABBContainsPoint(t *testing.T) {
	aabb := box(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})

	tests := []struct {
		name     string
		point    mgl32.Vec3
		expected bool
	}{
		{"Center", mgl32.Vec3{0, 0, 0}, true},
		{"Min corner", mgl32.Vec3{-1, -1, -1}, true},
		{"Max corner", mgl32.Vec3{1, 1, 1}, true},
		{"On face", mgl32.Vec3{1, 0, 0}, true},
		{"Outside X", mgl32.Vec3{1.5, 0, 0}, false},
		{"Outside Y", mgl32.Vec3{0, -1.5, 0}, false},
		{"Outside Z", mgl32.Vec3{0, 0, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := aabb.ContainsPoint(tt.point); got != tt.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestNewAxisAlignedBoundingBoxOrdersCorners(t *testing.T) {
	b := NewAxisAlignedBoundingBox(mgl32.Vec3{3, -1, 2}, mgl32.Vec3{1, 4, -2})

	assert.Equal(t, mgl32.Vec3{1, -1, -2}, b.Min)
	assert.Equal(t, mgl32.Vec3{3, 4, 2}, b.Max)
	assert.Equal(t, mgl32.Vec3{2, 5, 4}, b.GetExtent())
	assert.Equal(t, float32(5), b.GetMaxExtent())
	assert.Equal(t, float32(40), b.Volume())
	assert.False(t, b.IsEmpty())
}

func TestAABBCenterIsMidpoint(t *testing.T) {
	b := box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 4, 6})

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, b.GetCenter())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, b.GetHalfExtent())
}

func TestAABBBoxPoints(t *testing.T) {
	b := box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 2, 3})
	points := b.GetBoxPoints()

	seen := make(map[mgl32.Vec3]bool)
	for _, p := range points {
		assert.True(t, b.ContainsPoint(p))
		seen[p] = true
	}
	assert.Len(t, seen, 8)
}

func TestAABBTranslateAndScale(t *testing.T) {
	b := box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 2})

	b.Translate(mgl32.Vec3{1, 0, 0}, true)
	assert.Equal(t, box(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{3, 2, 2}), b)

	b.Translate(mgl32.Vec3{0, 0, 0}, false)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, b.GetCenter())

	b.Scale(2, true)
	assert.Equal(t, box(mgl32.Vec3{-2, -2, -2}, mgl32.Vec3{2, 2, 2}), b)

	b.Scale(-1, false)
	assert.Equal(t, box(mgl32.Vec3{-2, -2, -2}, mgl32.Vec3{2, 2, 2}), b, "negative scale keeps min below max")
	require.NoError(t, b.Err())
}

func TestAABBRotationIsUnsupported(t *testing.T) {
	b := box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})

	b.Rotate(mgl32.Rotate3DZ(1), true).Translate(mgl32.Vec3{5, 5, 5}, true)

	assert.True(t, errors.Is(b.Err(), ErrUnsupported))
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, b.Min, "mutations after a failure are skipped")
}

func TestAABBEnclose(t *testing.T) {
	b := box(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})

	enclosed := b.Enclose(mgl32.Translate3D(3, 0, 0).Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(45))))

	s := float32(1.41421356)
	assertVec3(t, mgl32.Vec3{3 - s, -s, -1}, enclosed.Min)
	assertVec3(t, mgl32.Vec3{3 + s, s, 1}, enclosed.Max)
	assert.Equal(t, box(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}), b)
}
