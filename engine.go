// Package geokernel implements the parallel buffer operations shared by every
// 3D geometry: bound and center reductions, and in place affine transform,
// translation, scaling and rotation of point and normal buffers.
//
// Each operation comes in two forms. The plain form runs on device.Default()
// and returns once the work is done. The On form takes an explicit
// device.Context; on a device.Stream it only enqueues the work, and reductions
// return a device.Future to read after the stream has progressed.
//
// The functions hold no state. Callers own the buffers and must not mutate a
// buffer from two contexts at once.
package geokernel

import (
	"math"

	"github.com/akmonengine/geokernel/device"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidArgument reports a checked precondition violation.
var ErrInvalidArgument = device.ErrInvalidArgument

// Bounds is the componentwise extent of a set of points.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

type boundAcc struct {
	min, max mgl32.Vec3
	n        int
}

var emptyBound = boundAcc{
	min: mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
	max: mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
}

func pointBound(p mgl32.Vec3) boundAcc {
	return boundAcc{min: p, max: p, n: 1}
}

func mergeBound(a, b boundAcc) boundAcc {
	for i := 0; i < 3; i++ {
		if b.min[i] < a.min[i] {
			a.min[i] = b.min[i]
		}
		if b.max[i] > a.max[i] {
			a.max[i] = b.max[i]
		}
	}
	a.n += b.n
	return a
}

// ComputeMinBound returns the componentwise minimum of points, or the zero
// vector for an empty buffer.
func ComputeMinBound(points *device.Buffer[mgl32.Vec3]) mgl32.Vec3 {
	return ComputeMinBoundOn(device.Default(), points).Wait()
}

func ComputeMinBoundOn(ctx device.Context, points *device.Buffer[mgl32.Vec3]) *device.Future[mgl32.Vec3] {
	return device.ReduceFinal(ctx, points, emptyBound, pointBound, mergeBound, func(acc boundAcc) mgl32.Vec3 {
		if acc.n == 0 {
			return mgl32.Vec3{}
		}
		return acc.min
	})
}

// ComputeMaxBound returns the componentwise maximum of points, or the zero
// vector for an empty buffer.
func ComputeMaxBound(points *device.Buffer[mgl32.Vec3]) mgl32.Vec3 {
	return ComputeMaxBoundOn(device.Default(), points).Wait()
}

func ComputeMaxBoundOn(ctx device.Context, points *device.Buffer[mgl32.Vec3]) *device.Future[mgl32.Vec3] {
	return device.ReduceFinal(ctx, points, emptyBound, pointBound, mergeBound, func(acc boundAcc) mgl32.Vec3 {
		if acc.n == 0 {
			return mgl32.Vec3{}
		}
		return acc.max
	})
}

// ComputeBounds returns both bounds in a single pass.
func ComputeBounds(points *device.Buffer[mgl32.Vec3]) Bounds {
	return ComputeBoundsOn(device.Default(), points).Wait()
}

func ComputeBoundsOn(ctx device.Context, points *device.Buffer[mgl32.Vec3]) *device.Future[Bounds] {
	return device.ReduceFinal(ctx, points, emptyBound, pointBound, mergeBound, func(acc boundAcc) Bounds {
		if acc.n == 0 {
			return Bounds{}
		}
		return Bounds{Min: acc.min, Max: acc.max}
	})
}

// sumAcc accumulates in float64 so large clouds keep their precision.
type sumAcc struct {
	sum [3]float64
	n   int
}

func pointSum(p mgl32.Vec3) sumAcc {
	return sumAcc{sum: [3]float64{float64(p[0]), float64(p[1]), float64(p[2])}, n: 1}
}

func mergeSum(a, b sumAcc) sumAcc {
	a.sum[0] += b.sum[0]
	a.sum[1] += b.sum[1]
	a.sum[2] += b.sum[2]
	a.n += b.n
	return a
}

func mean(acc sumAcc) mgl32.Vec3 {
	if acc.n == 0 {
		return mgl32.Vec3{}
	}
	n := float64(acc.n)
	return mgl32.Vec3{float32(acc.sum[0] / n), float32(acc.sum[1] / n), float32(acc.sum[2] / n)}
}

// ComputeCenter returns the arithmetic mean of points, or the zero vector for
// an empty buffer. This is not the center of the bounding box.
func ComputeCenter(points *device.Buffer[mgl32.Vec3]) mgl32.Vec3 {
	return ComputeCenterOn(device.Default(), points).Wait()
}

func ComputeCenterOn(ctx device.Context, points *device.Buffer[mgl32.Vec3]) *device.Future[mgl32.Vec3] {
	return device.ReduceFinal(ctx, points, sumAcc{}, pointSum, mergeSum, mean)
}
