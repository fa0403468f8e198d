package geometry

import (
	"github.com/akmonengine/geokernel"
	"github.com/akmonengine/geokernel/device"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// TriangleMesh is an indexed triangle mesh. VertexNormals and VertexColors
// are parallel to Vertices, TriangleNormals to Triangles.
type TriangleMesh struct {
	vertexSet

	Vertices        *device.Buffer[mgl32.Vec3]
	VertexNormals   *device.Buffer[mgl32.Vec3]
	VertexColors    *device.Buffer[mgl32.Vec3]
	Triangles       *device.Buffer[[3]int32]
	TriangleNormals *device.Buffer[mgl32.Vec3]
}

// NewTriangleMesh copies the vertices and triangles onto dev. Every triangle
// index must refer to a vertex.
func NewTriangleMesh(dev *device.Device, vertices []mgl32.Vec3, triangles [][3]int32) (*TriangleMesh, error) {
	for i, tri := range triangles {
		for _, idx := range tri {
			if idx < 0 || int(idx) >= len(vertices) {
				return nil, errors.Wrapf(geokernel.ErrInvalidArgument, "triangle %d references vertex %d of %d", i, idx, len(vertices))
			}
		}
	}

	v, err := newVec3Buffer(dev, vertices)
	if err != nil {
		return nil, err
	}
	dev = v.Device()
	t, err := device.FromHost(dev, triangles)
	if err != nil {
		return nil, err
	}
	mesh := &TriangleMesh{Vertices: v, Triangles: t}
	for _, b := range []**device.Buffer[mgl32.Vec3]{&mesh.VertexNormals, &mesh.VertexColors, &mesh.TriangleNormals} {
		if *b, err = newVec3Buffer(dev, nil); err != nil {
			return nil, err
		}
	}
	return mesh, nil
}

func (m *TriangleMesh) Type() GeometryType {
	return GeometryTypeTriangleMesh
}

func (m *TriangleMesh) Clear() Geometry3D {
	m.Vertices.Clear()
	m.VertexNormals.Clear()
	m.VertexColors.Clear()
	m.Triangles.Clear()
	m.TriangleNormals.Clear()
	return m
}

func (m *TriangleMesh) IsEmpty() bool {
	return m.Vertices.IsEmpty()
}

func (m *TriangleMesh) HasTriangles() bool {
	return !m.Vertices.IsEmpty() && !m.Triangles.IsEmpty()
}

func (m *TriangleMesh) HasVertexNormals() bool {
	return !m.Vertices.IsEmpty() && m.VertexNormals.Len() == m.Vertices.Len()
}

func (m *TriangleMesh) GetMinBound() mgl32.Vec3 {
	return geokernel.ComputeMinBoundOn(m.context(), m.Vertices).Wait()
}

func (m *TriangleMesh) GetMaxBound() mgl32.Vec3 {
	return geokernel.ComputeMaxBoundOn(m.context(), m.Vertices).Wait()
}

// GetCenter returns the mean of the vertices.
func (m *TriangleMesh) GetCenter() mgl32.Vec3 {
	return geokernel.ComputeCenterOn(m.context(), m.Vertices).Wait()
}

func (m *TriangleMesh) GetAxisAlignedBoundingBox() AxisAlignedBoundingBox {
	b := m.bounds(m.Vertices)
	return AxisAlignedBoundingBox{Min: b.Min, Max: b.Max}
}

// checkTriangleNormals verifies TriangleNormals against Triangles, which the
// vertex attribute check cannot cover.
func (m *TriangleMesh) checkTriangleNormals() bool {
	if m.err != nil {
		return false
	}
	if n := m.TriangleNormals.Len(); n != 0 && n != m.Triangles.Len() {
		m.fail(errors.Wrapf(geokernel.ErrInvalidArgument, "triangle normals has %d elements for %d triangles", n, m.Triangles.Len()))
		return false
	}
	return true
}

func (m *TriangleMesh) vertexNormals() attribute {
	return attribute{name: "vertex normals", buf: m.VertexNormals}
}

func (m *TriangleMesh) Transform(t mgl32.Mat4) Geometry3D {
	if !m.checkTriangleNormals() {
		return m
	}
	m.transform(t, m.Vertices, m.vertexNormals())
	if m.err == nil {
		geokernel.TransformNormalsOn(m.context(), t, m.TriangleNormals)
	}
	return m
}

func (m *TriangleMesh) Translate(t mgl32.Vec3, relative bool) Geometry3D {
	m.translate(t, m.Vertices, relative)
	return m
}

func (m *TriangleMesh) Scale(s float32, center bool) Geometry3D {
	m.scale(s, m.Vertices, center)
	return m
}

func (m *TriangleMesh) Rotate(r mgl32.Mat3, center bool) Geometry3D {
	if !m.checkTriangleNormals() {
		return m
	}
	m.rotate(r, m.Vertices, center, m.vertexNormals())
	if m.err == nil {
		geokernel.RotateNormalsOn(m.context(), r, m.TriangleNormals)
	}
	return m
}

// PaintUniformColor assigns color to every vertex.
func (m *TriangleMesh) PaintUniformColor(color colorful.Color) *TriangleMesh {
	if m.err != nil {
		return m
	}
	if err := geokernel.ResizeAndPaintUniformColorOn(m.context(), m.VertexColors, m.Vertices.Len(), ColorToVec3(color)); err != nil {
		m.fail(err)
	}
	return m
}
