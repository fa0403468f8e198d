package geokernel

import (
	"github.com/akmonengine/geokernel/device"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// ClampColor limits every component of color to [0, 1].
func ClampColor(color mgl32.Vec3) mgl32.Vec3 {
	for i := range color {
		color[i] = mgl32.Clamp(color[i], 0, 1)
	}
	return color
}

// ResizeAndPaintUniformColor resizes colors to size elements and sets all of
// them to color, clamped to [0, 1].
func ResizeAndPaintUniformColor(colors *device.Buffer[mgl32.Vec3], size int, color mgl32.Vec3) error {
	return ResizeAndPaintUniformColorOn(device.Default(), colors, size, color)
}

func ResizeAndPaintUniformColorOn(ctx device.Context, colors *device.Buffer[mgl32.Vec3], size int, color mgl32.Vec3) error {
	return device.ResizeAndFill(ctx, colors, size, ClampColor(color))
}

// CheckParallel verifies that attr, a per point attribute such as normals or
// colors, is either empty or holds exactly one element per point.
func CheckParallel(name string, points, attr *device.Buffer[mgl32.Vec3]) error {
	if attr.Len() != 0 && attr.Len() != points.Len() {
		return errors.Wrapf(ErrInvalidArgument, "%s has %d elements for %d points", name, attr.Len(), points.Len())
	}
	return nil
}
