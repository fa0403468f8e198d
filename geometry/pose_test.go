package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestNewPoseIsIdentity(t *testing.T) {
	require.True(t, NewPose().Matrix().ApproxEqual(mgl32.Ident4()))
}

func TestPoseApply(t *testing.T) {
	q := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1})
	pose := Pose{
		Position: mgl32.Vec3{10, 0, 0},
		Rotation: mgl32.Vec4{q.W, q.V[0], q.V[1], q.V[2]},
	}

	pc := newPointCloud(t, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 2, 0})
	pose.Apply(pc)
	require.NoError(t, pc.Err())

	expected := []mgl32.Vec3{{10, 1, 0}, {8, 0, 0}}
	for i, p := range pc.Points.CopyToHost() {
		assertVec3(t, expected[i], p, "point", i)
	}

	m := pose.Matrix()
	for i, p := range []mgl32.Vec3{{1, 0, 0}, {0, 2, 0}} {
		assertVec3(t, expected[i], mgl32.TransformCoordinate(p, m), "matrix", i)
	}
}
