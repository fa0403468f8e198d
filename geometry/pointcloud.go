package geometry

import (
	"github.com/akmonengine/geokernel"
	"github.com/akmonengine/geokernel/device"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// PointCloud is a set of points with optional per point normals and colors.
// Normals and Colors are either empty or parallel to Points.
type PointCloud struct {
	vertexSet

	Points  *device.Buffer[mgl32.Vec3]
	Normals *device.Buffer[mgl32.Vec3]
	Colors  *device.Buffer[mgl32.Vec3]
}

// NewPointCloud copies points onto dev, or the default device when dev is nil.
func NewPointCloud(dev *device.Device, points []mgl32.Vec3) (*PointCloud, error) {
	p, err := newVec3Buffer(dev, points)
	if err != nil {
		return nil, err
	}
	normals, err := newVec3Buffer(p.Device(), nil)
	if err != nil {
		return nil, err
	}
	colors, err := newVec3Buffer(p.Device(), nil)
	if err != nil {
		return nil, err
	}

	return &PointCloud{Points: p, Normals: normals, Colors: colors}, nil
}

func (pc *PointCloud) Type() GeometryType {
	return GeometryTypePointCloud
}

func (pc *PointCloud) Clear() Geometry3D {
	pc.Points.Clear()
	pc.Normals.Clear()
	pc.Colors.Clear()
	return pc
}

func (pc *PointCloud) IsEmpty() bool {
	return pc.Points.IsEmpty()
}

func (pc *PointCloud) HasNormals() bool {
	return !pc.Points.IsEmpty() && pc.Normals.Len() == pc.Points.Len()
}

func (pc *PointCloud) HasColors() bool {
	return !pc.Points.IsEmpty() && pc.Colors.Len() == pc.Points.Len()
}

func (pc *PointCloud) GetMinBound() mgl32.Vec3 {
	return geokernel.ComputeMinBoundOn(pc.context(), pc.Points).Wait()
}

func (pc *PointCloud) GetMaxBound() mgl32.Vec3 {
	return geokernel.ComputeMaxBoundOn(pc.context(), pc.Points).Wait()
}

// GetCenter returns the mean of the points.
func (pc *PointCloud) GetCenter() mgl32.Vec3 {
	return geokernel.ComputeCenterOn(pc.context(), pc.Points).Wait()
}

func (pc *PointCloud) GetAxisAlignedBoundingBox() AxisAlignedBoundingBox {
	b := pc.bounds(pc.Points)
	return AxisAlignedBoundingBox{Min: b.Min, Max: b.Max}
}

func (pc *PointCloud) normals() attribute {
	return attribute{name: "normals", buf: pc.Normals}
}

func (pc *PointCloud) Transform(m mgl32.Mat4) Geometry3D {
	pc.transform(m, pc.Points, pc.normals())
	return pc
}

func (pc *PointCloud) Translate(t mgl32.Vec3, relative bool) Geometry3D {
	pc.translate(t, pc.Points, relative)
	return pc
}

func (pc *PointCloud) Scale(s float32, center bool) Geometry3D {
	pc.scale(s, pc.Points, center)
	return pc
}

func (pc *PointCloud) Rotate(r mgl32.Mat3, center bool) Geometry3D {
	pc.rotate(r, pc.Points, center, pc.normals())
	return pc
}

// NormalizeNormals rescales every normal to unit length. Transform leaves
// normals unnormalized, so call this after non rigid transforms.
func (pc *PointCloud) NormalizeNormals() *PointCloud {
	if !pc.ready(pc.Points, pc.normals()) {
		return pc
	}
	device.Transform(pc.context(), pc.Normals, normalize)
	return pc
}

// PaintUniformColor assigns color to every point.
func (pc *PointCloud) PaintUniformColor(color colorful.Color) *PointCloud {
	if pc.err != nil {
		return pc
	}
	if err := geokernel.ResizeAndPaintUniformColorOn(pc.context(), pc.Colors, pc.Points.Len(), ColorToVec3(color)); err != nil {
		pc.fail(err)
	}
	return pc
}

// ColorToVec3 converts an sRGB color to an RGB vector with components in [0, 1].
func ColorToVec3(c colorful.Color) mgl32.Vec3 {
	c = c.Clamped()
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}

// Vec3ToColor is the inverse of ColorToVec3.
func Vec3ToColor(v mgl32.Vec3) colorful.Color {
	return colorful.Color{R: float64(v[0]), G: float64(v[1]), B: float64(v[2])}.Clamped()
}

func normalize(n mgl32.Vec3) mgl32.Vec3 {
	if l := n.Len(); l > 0 {
		return n.Mul(1 / l)
	}
	return n
}
