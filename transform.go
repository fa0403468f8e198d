package geokernel

import (
	"github.com/akmonengine/geokernel/device"
	"github.com/go-gl/mathgl/mgl32"
)

// transformPoint applies m to p in homogeneous coordinates. The result is
// divided by w only when w differs from 1, which keeps affine transforms exact.
func transformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	h := m.Mul4x1(p.Vec4(1))
	if h[3] != 1 {
		return h.Vec3().Mul(1 / h[3])
	}
	return h.Vec3()
}

// TransformPoints replaces every point p with m·p. m is trusted: it is not
// checked for being affine or invertible.
func TransformPoints(m mgl32.Mat4, points *device.Buffer[mgl32.Vec3]) {
	TransformPointsOn(device.Default(), m, points)
}

func TransformPointsOn(ctx device.Context, m mgl32.Mat4, points *device.Buffer[mgl32.Vec3]) {
	device.Transform(ctx, points, func(p mgl32.Vec3) mgl32.Vec3 {
		return transformPoint(m, p)
	})
}

// TransformNormals applies the linear 3x3 part of m to every normal. Results
// are not renormalized, and no inverse transpose is taken, so non uniform
// scale or shear skews the normals.
func TransformNormals(m mgl32.Mat4, normals *device.Buffer[mgl32.Vec3]) {
	TransformNormalsOn(device.Default(), m, normals)
}

func TransformNormalsOn(ctx device.Context, m mgl32.Mat4, normals *device.Buffer[mgl32.Vec3]) {
	linear := m.Mat3()
	device.Transform(ctx, normals, func(n mgl32.Vec3) mgl32.Vec3 {
		return linear.Mul3x1(n)
	})
}

// TranslatePoints adds translation to every point when relative is true.
// Otherwise the points are shifted so that their mean lands on translation.
func TranslatePoints(translation mgl32.Vec3, points *device.Buffer[mgl32.Vec3], relative bool) {
	TranslatePointsOn(device.Default(), translation, points, relative)
}

func TranslatePointsOn(ctx device.Context, translation mgl32.Vec3, points *device.Buffer[mgl32.Vec3], relative bool) {
	if relative {
		device.Transform(ctx, points, func(p mgl32.Vec3) mgl32.Vec3 {
			return p.Add(translation)
		})
		return
	}

	center := ComputeCenterOn(ctx, points)
	device.TransformLazy(ctx, points, func() func(mgl32.Vec3) mgl32.Vec3 {
		shift := translation.Sub(center.Wait())
		return func(p mgl32.Vec3) mgl32.Vec3 {
			return p.Add(shift)
		}
	})
}

// ScalePoints multiplies every point by scale, about the mean of the points
// when center is true and about the origin otherwise.
func ScalePoints(scale float32, points *device.Buffer[mgl32.Vec3], center bool) {
	ScalePointsOn(device.Default(), scale, points, center)
}

func ScalePointsOn(ctx device.Context, scale float32, points *device.Buffer[mgl32.Vec3], center bool) {
	if !center {
		device.Transform(ctx, points, func(p mgl32.Vec3) mgl32.Vec3 {
			return p.Mul(scale)
		})
		return
	}

	c := ComputeCenterOn(ctx, points)
	device.TransformLazy(ctx, points, func() func(mgl32.Vec3) mgl32.Vec3 {
		pivot := c.Wait()
		return func(p mgl32.Vec3) mgl32.Vec3 {
			return p.Sub(pivot).Mul(scale).Add(pivot)
		}
	})
}

// RotatePoints applies r to every point, about the mean of the points when
// center is true and about the origin otherwise.
func RotatePoints(r mgl32.Mat3, points *device.Buffer[mgl32.Vec3], center bool) {
	RotatePointsOn(device.Default(), r, points, center)
}

func RotatePointsOn(ctx device.Context, r mgl32.Mat3, points *device.Buffer[mgl32.Vec3], center bool) {
	if !center {
		device.Transform(ctx, points, func(p mgl32.Vec3) mgl32.Vec3 {
			return r.Mul3x1(p)
		})
		return
	}

	c := ComputeCenterOn(ctx, points)
	device.TransformLazy(ctx, points, func() func(mgl32.Vec3) mgl32.Vec3 {
		pivot := c.Wait()
		return func(p mgl32.Vec3) mgl32.Vec3 {
			return r.Mul3x1(p.Sub(pivot)).Add(pivot)
		}
	})
}

// RotateNormals applies r to every normal. Normals always rotate about the origin.
func RotateNormals(r mgl32.Mat3, normals *device.Buffer[mgl32.Vec3]) {
	RotateNormalsOn(device.Default(), r, normals)
}

func RotateNormalsOn(ctx device.Context, r mgl32.Mat3, normals *device.Buffer[mgl32.Vec3]) {
	device.Transform(ctx, normals, func(n mgl32.Vec3) mgl32.Vec3 {
		return r.Mul3x1(n)
	})
}
