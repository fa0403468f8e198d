// Package geometry defines the Geometry3D contract and the concrete geometries
// that implement it by forwarding to the shared geokernel buffer operations.
//
// Mutators return the receiver so calls can be chained:
//
//	pc.Translate(t, true).Rotate(r, true).Scale(2, true)
//	if err := pc.Err(); err != nil { ... }
//
// The first failure is kept and turns later mutations into no-ops.
package geometry

import (
	"github.com/akmonengine/geokernel"
	"github.com/akmonengine/geokernel/device"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// GeometryType tags the concrete kind behind a Geometry3D.
type GeometryType int

const (
	GeometryTypeUnspecified GeometryType = iota
	GeometryTypePointCloud
	GeometryTypeTriangleMesh
	GeometryTypeGraph
	GeometryTypeVoxelGrid
	GeometryTypeAxisAlignedBoundingBox
)

func (t GeometryType) String() string {
	switch t {
	case GeometryTypePointCloud:
		return "PointCloud"
	case GeometryTypeTriangleMesh:
		return "TriangleMesh"
	case GeometryTypeGraph:
		return "Graph"
	case GeometryTypeVoxelGrid:
		return "VoxelGrid"
	case GeometryTypeAxisAlignedBoundingBox:
		return "AxisAlignedBoundingBox"
	default:
		return "Unspecified"
	}
}

// ErrUnsupported is returned by Err when a geometry cannot perform a mutation,
// such as rotating an axis aligned box.
var ErrUnsupported = errors.New("operation not supported")

// Geometry3D is implemented by every 3D geometry.
type Geometry3D interface {
	Type() GeometryType
	// Clear removes all elements.
	Clear() Geometry3D
	IsEmpty() bool
	// GetMinBound returns the componentwise minimum of the coordinates.
	GetMinBound() mgl32.Vec3
	// GetMaxBound returns the componentwise maximum of the coordinates.
	GetMaxBound() mgl32.Vec3
	// GetCenter returns the center of the geometry coordinates.
	GetCenter() mgl32.Vec3
	GetAxisAlignedBoundingBox() AxisAlignedBoundingBox
	// Transform applies a 4x4 homogeneous transformation.
	Transform(m mgl32.Mat4) Geometry3D
	// Translate moves the geometry by t when relative is true, otherwise it
	// moves the geometry center onto t.
	Translate(t mgl32.Vec3, relative bool) Geometry3D
	// Scale multiplies the coordinates by s, about the center when center is
	// true and about the origin otherwise.
	Scale(s float32, center bool) Geometry3D
	// Rotate applies r, about the center when center is true and about the
	// origin otherwise.
	Rotate(r mgl32.Mat3, center bool) Geometry3D
	// Err returns the first failure of a mutation.
	Err() error
}

// vertexSet carries the state shared by the buffer backed geometries: the
// context they run on and the sticky error.
type vertexSet struct {
	// Context runs the geometry operations. nil means device.Default().
	Context device.Context

	err error
}

func (v *vertexSet) Err() error {
	return v.err
}

func (v *vertexSet) context() device.Context {
	if v.Context == nil {
		return device.Default()
	}
	return v.Context
}

func (v *vertexSet) fail(err error) {
	if v.err == nil {
		v.err = err
	}
}

// attribute is a per vertex buffer that must stay parallel to the vertices.
type attribute struct {
	name string
	buf  *device.Buffer[mgl32.Vec3]
}

// ready reports whether a mutation may run, recording a length mismatch
// between points and any attribute.
func (v *vertexSet) ready(points *device.Buffer[mgl32.Vec3], attrs ...attribute) bool {
	if v.err != nil {
		return false
	}
	for _, a := range attrs {
		if err := geokernel.CheckParallel(a.name, points, a.buf); err != nil {
			v.fail(err)
			return false
		}
	}
	return true
}

func (v *vertexSet) bounds(points *device.Buffer[mgl32.Vec3]) geokernel.Bounds {
	return geokernel.ComputeBoundsOn(v.context(), points).Wait()
}

func (v *vertexSet) transform(m mgl32.Mat4, points *device.Buffer[mgl32.Vec3], normals ...attribute) {
	if !v.ready(points, normals...) {
		return
	}
	ctx := v.context()
	geokernel.TransformPointsOn(ctx, m, points)
	for _, n := range normals {
		geokernel.TransformNormalsOn(ctx, m, n.buf)
	}
}

func (v *vertexSet) translate(t mgl32.Vec3, points *device.Buffer[mgl32.Vec3], relative bool) {
	if !v.ready(points) {
		return
	}
	geokernel.TranslatePointsOn(v.context(), t, points, relative)
}

func (v *vertexSet) scale(s float32, points *device.Buffer[mgl32.Vec3], center bool) {
	if !v.ready(points) {
		return
	}
	geokernel.ScalePointsOn(v.context(), s, points, center)
}

func (v *vertexSet) rotate(r mgl32.Mat3, points *device.Buffer[mgl32.Vec3], center bool, normals ...attribute) {
	if !v.ready(points, normals...) {
		return
	}
	ctx := v.context()
	geokernel.RotatePointsOn(ctx, r, points, center)
	for _, n := range normals {
		geokernel.RotateNormalsOn(ctx, r, n.buf)
	}
}

func newVec3Buffer(dev *device.Device, host []mgl32.Vec3) (*device.Buffer[mgl32.Vec3], error) {
	return device.FromHost(dev, host)
}
