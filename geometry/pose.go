package geometry

import (
	"github.com/akmonengine/geokernel/rotation"
	"github.com/go-gl/mathgl/mgl32"
)

// Pose represents a placement in 3D space
type Pose struct {
	Position mgl32.Vec3
	// Rotation is a quaternion laid out as (w, x, y, z).
	Rotation mgl32.Vec4
}

// NewPose creates an identity pose
func NewPose() Pose {
	return Pose{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.Vec4{1, 0, 0, 0},
	}
}

// Matrix returns the homogeneous transform rotating then translating.
func (p Pose) Matrix() mgl32.Mat4 {
	r := rotation.FromQuaternion(p.Rotation)
	m := r.Mat4()
	m.SetCol(3, p.Position.Vec4(1))
	return m
}

// Apply places g at p, rotating about the origin and then translating.
func (p Pose) Apply(g Geometry3D) Geometry3D {
	return g.Rotate(rotation.FromQuaternion(p.Rotation), false).Translate(p.Position, true)
}
