package geometry

import (
	"github.com/akmonengine/geokernel"
	"github.com/akmonengine/geokernel/device"
	"github.com/akmonengine/geokernel/logging"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// AxisAlignedBoundingBox represents an axis-aligned bounding box
type AxisAlignedBoundingBox struct {
	Min mgl32.Vec3
	Max mgl32.Vec3

	err error
}

// NewAxisAlignedBoundingBox orders min and max componentwise.
func NewAxisAlignedBoundingBox(min, max mgl32.Vec3) AxisAlignedBoundingBox {
	box := AxisAlignedBoundingBox{Min: min, Max: max}
	box.normalize()
	return box
}

// CreateFromPoints returns the smallest box holding every point.
func CreateFromPoints(points *device.Buffer[mgl32.Vec3]) AxisAlignedBoundingBox {
	bounds := geokernel.ComputeBounds(points)
	return AxisAlignedBoundingBox{Min: bounds.Min, Max: bounds.Max}
}

func (a *AxisAlignedBoundingBox) normalize() {
	for i := 0; i < 3; i++ {
		if a.Min[i] > a.Max[i] {
			a.Min[i], a.Max[i] = a.Max[i], a.Min[i]
		}
	}
}

func (a *AxisAlignedBoundingBox) Type() GeometryType {
	return GeometryTypeAxisAlignedBoundingBox
}

func (a *AxisAlignedBoundingBox) Clear() Geometry3D {
	a.Min = mgl32.Vec3{}
	a.Max = mgl32.Vec3{}
	return a
}

// IsEmpty reports a box without volume.
func (a *AxisAlignedBoundingBox) IsEmpty() bool {
	return a.Volume() <= 0
}

func (a *AxisAlignedBoundingBox) GetMinBound() mgl32.Vec3 {
	return a.Min
}

func (a *AxisAlignedBoundingBox) GetMaxBound() mgl32.Vec3 {
	return a.Max
}

// GetCenter returns the midpoint of Min and Max.
func (a *AxisAlignedBoundingBox) GetCenter() mgl32.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a *AxisAlignedBoundingBox) GetAxisAlignedBoundingBox() AxisAlignedBoundingBox {
	return AxisAlignedBoundingBox{Min: a.Min, Max: a.Max}
}

func (a *AxisAlignedBoundingBox) GetExtent() mgl32.Vec3 {
	return a.Max.Sub(a.Min)
}

func (a *AxisAlignedBoundingBox) GetHalfExtent() mgl32.Vec3 {
	return a.GetExtent().Mul(0.5)
}

func (a *AxisAlignedBoundingBox) GetMaxExtent() float32 {
	e := a.GetExtent()
	return max(e[0], e[1], e[2])
}

func (a *AxisAlignedBoundingBox) Volume() float32 {
	e := a.GetExtent()
	return e[0] * e[1] * e[2]
}

// GetBoxPoints returns the 8 corners of the box.
func (a *AxisAlignedBoundingBox) GetBoxPoints() [8]mgl32.Vec3 {
	lo, hi := a.Min, a.Max
	return [8]mgl32.Vec3{
		{lo[0], lo[1], lo[2]},
		{hi[0], lo[1], lo[2]},
		{lo[0], hi[1], lo[2]},
		{hi[0], hi[1], lo[2]},
		{lo[0], lo[1], hi[2]},
		{hi[0], lo[1], hi[2]},
		{lo[0], hi[1], hi[2]},
		{hi[0], hi[1], hi[2]},
	}
}

// ContainsPoint checks if a point is inside the AABB
func (a *AxisAlignedBoundingBox) ContainsPoint(point mgl32.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a *AxisAlignedBoundingBox) Overlaps(other AxisAlignedBoundingBox) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Enclose returns the box holding the 8 corners of a transformed by m. The
// box itself is left untouched, since a rotated box is no longer axis aligned.
func (a *AxisAlignedBoundingBox) Enclose(m mgl32.Mat4) AxisAlignedBoundingBox {
	corners := a.GetBoxPoints()

	// Transform the first corner to seed min/max
	first := m.Mul4x1(corners[0].Vec4(1)).Vec3()
	lo, hi := first, first

	// Extend with the remaining corners
	for i := 1; i < 8; i++ {
		c := m.Mul4x1(corners[i].Vec4(1)).Vec3()
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], c[k])
			hi[k] = max(hi[k], c[k])
		}
	}

	return AxisAlignedBoundingBox{Min: lo, Max: hi}
}

func (a *AxisAlignedBoundingBox) Err() error {
	return a.err
}

func (a *AxisAlignedBoundingBox) unsupported(op string) Geometry3D {
	if a.err == nil {
		a.err = errors.Wrapf(ErrUnsupported, "%s of an axis aligned bounding box, use Enclose", op)
		logging.Logger().Warnw("unsupported geometry operation", "geometry", a.Type().String(), "operation", op)
	}
	return a
}

func (a *AxisAlignedBoundingBox) Transform(m mgl32.Mat4) Geometry3D {
	return a.unsupported("transform")
}

func (a *AxisAlignedBoundingBox) Rotate(r mgl32.Mat3, center bool) Geometry3D {
	return a.unsupported("rotation")
}

// Translate moves the box by t, or moves its midpoint onto t when relative is false.
func (a *AxisAlignedBoundingBox) Translate(t mgl32.Vec3, relative bool) Geometry3D {
	if a.err != nil {
		return a
	}
	shift := t
	if !relative {
		shift = t.Sub(a.GetCenter())
	}
	a.Min = a.Min.Add(shift)
	a.Max = a.Max.Add(shift)
	return a
}

// Scale scales the box about its midpoint or about the origin.
func (a *AxisAlignedBoundingBox) Scale(s float32, center bool) Geometry3D {
	if a.err != nil {
		return a
	}
	var pivot mgl32.Vec3
	if center {
		pivot = a.GetCenter()
	}
	a.Min = a.Min.Sub(pivot).Mul(s).Add(pivot)
	a.Max = a.Max.Sub(pivot).Mul(s).Add(pivot)
	a.normalize()
	return a
}
