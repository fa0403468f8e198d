// Package rotation builds 3x3 rotation matrices from Euler angles, axis-angle
// vectors and quaternions.
//
// Euler orders are intrinsic and act on column vectors: the matrix for order
// ABC with angles (a, b, c) is R_A(a) · R_B(b) · R_C(c). For example
// FromEuler(XYZ, (π/2, 0, 0)) maps (0, 1, 0) to (0, 0, 1).
//
// Every function computes in float64 and rounds once to float32, so identical
// input always produces identical output.
package rotation

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// Order names the axis sequence of an Euler rotation.
type Order int

const (
	XYZ Order = iota
	YZX
	ZXY
	XZY
	ZYX
	YXZ
)

const (
	axisX = iota
	axisY
	axisZ
)

var orderAxes = [...][3]int{
	XYZ: {axisX, axisY, axisZ},
	YZX: {axisY, axisZ, axisX},
	ZXY: {axisZ, axisX, axisY},
	XZY: {axisX, axisZ, axisY},
	ZYX: {axisZ, axisY, axisX},
	YXZ: {axisY, axisX, axisZ},
}

var orderNames = [...]string{
	XYZ: "XYZ",
	YZX: "YZX",
	ZXY: "ZXY",
	XZY: "XZY",
	ZYX: "ZYX",
	YXZ: "YXZ",
}

func (o Order) String() string {
	if o < XYZ || o > YXZ {
		return fmt.Sprintf("Order(%d)", int(o))
	}
	return orderNames[o]
}

// ParseOrder accepts the names returned by Order.String.
func ParseOrder(s string) (Order, error) {
	for o, name := range orderNames {
		if name == s {
			return Order(o), nil
		}
	}
	return XYZ, errors.Errorf("unknown euler order %q", s)
}

// mat3 is a row major float64 matrix used for the intermediate products.
type mat3 [3][3]float64

func (a mat3) mul(b mat3) mat3 {
	var m mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
		}
	}
	return m
}

// toMat3 rounds to float32 in mathgl's column major layout.
func (a mat3) toMat3() mgl32.Mat3 {
	var m mgl32.Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m[col*3+row] = float32(a[row][col])
		}
	}
	return m
}

// elementary is the rotation by angle about a single coordinate axis.
func elementary(axis int, angle float64) mat3 {
	s, c := math.Sincos(angle)
	switch axis {
	case axisX:
		return mat3{
			{1, 0, 0},
			{0, c, -s},
			{0, s, c},
		}
	case axisY:
		return mat3{
			{c, 0, s},
			{0, 1, 0},
			{-s, 0, c},
		}
	default:
		return mat3{
			{c, -s, 0},
			{s, c, 0},
			{0, 0, 1},
		}
	}
}

// FromEuler composes the elementary rotations of order, angle i belonging to
// the i-th axis of the order. Angles are in radians.
func FromEuler(order Order, angles mgl32.Vec3) mgl32.Mat3 {
	if order < XYZ || order > YXZ {
		order = XYZ
	}
	axes := orderAxes[order]

	m := elementary(axes[0], float64(angles[0]))
	m = m.mul(elementary(axes[1], float64(angles[1])))
	m = m.mul(elementary(axes[2], float64(angles[2])))
	return m.toMat3()
}

// FromXYZ returns Rx(a[0]) · Ry(a[1]) · Rz(a[2]).
func FromXYZ(angles mgl32.Vec3) mgl32.Mat3 { return FromEuler(XYZ, angles) }

// FromYZX returns Ry(a[0]) · Rz(a[1]) · Rx(a[2]).
func FromYZX(angles mgl32.Vec3) mgl32.Mat3 { return FromEuler(YZX, angles) }

// FromZXY returns Rz(a[0]) · Rx(a[1]) · Ry(a[2]).
func FromZXY(angles mgl32.Vec3) mgl32.Mat3 { return FromEuler(ZXY, angles) }

// FromXZY returns Rx(a[0]) · Rz(a[1]) · Ry(a[2]).
func FromXZY(angles mgl32.Vec3) mgl32.Mat3 { return FromEuler(XZY, angles) }

// FromZYX returns Rz(a[0]) · Ry(a[1]) · Rx(a[2]).
func FromZYX(angles mgl32.Vec3) mgl32.Mat3 { return FromEuler(ZYX, angles) }

// FromYXZ returns Ry(a[0]) · Rx(a[1]) · Rz(a[2]).
func FromYXZ(angles mgl32.Vec3) mgl32.Mat3 { return FromEuler(YXZ, angles) }

// FromAxisAngle rotates about v/|v| by |v| radians. The zero vector yields
// the identity.
func FromAxisAngle(v mgl32.Vec3) mgl32.Mat3 {
	x, y, z := float64(v[0]), float64(v[1]), float64(v[2])
	theta := math.Sqrt(x*x + y*y + z*z)
	if theta == 0 {
		return mgl32.Ident3()
	}
	x, y, z = x/theta, y/theta, z/theta

	s, c := math.Sincos(theta)
	t := 1 - c
	return mat3{
		{t*x*x + c, t*x*y - s*z, t*x*z + s*y},
		{t*x*y + s*z, t*y*y + c, t*y*z - s*x},
		{t*x*z - s*y, t*y*z + s*x, t*z*z + c},
	}.toMat3()
}

// FromQuaternion converts q, laid out as (w, x, y, z). q is normalized first;
// a zero or non finite quaternion yields the identity.
func FromQuaternion(q mgl32.Vec4) mgl32.Mat3 {
	n := quat.Number{Real: float64(q[0]), Imag: float64(q[1]), Jmag: float64(q[2]), Kmag: float64(q[3])}
	norm := quat.Abs(n)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return mgl32.Ident3()
	}
	n = quat.Scale(1/norm, n)

	w, x, y, z := n.Real, n.Imag, n.Jmag, n.Kmag
	return mat3{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	}.toMat3()
}

// IsRotation reports whether m is orthonormal with determinant +1 within eps.
func IsRotation(m mgl32.Mat3, eps float32) bool {
	if !m.Transpose().Mul3(m).ApproxEqualThreshold(mgl32.Ident3(), eps) {
		return false
	}
	return mgl32.Abs(m.Det()-1) <= eps
}
