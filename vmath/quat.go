package vmath

import (
	"math"
)

// Quat is a unit quaternion rotation, W is the scalar part
type Quat struct {
	W, X, Y, Z float64
}

// QuatIdentity is the no-op rotation
var QuatIdentity = Quat{W: 1}

// QuatAxisAngle builds a rotation of deg degrees about axis (right-handed)
func QuatAxisAngle(axis Vec3, deg float64) Quat {
	axis = V3Normalize(axis)
	half := deg * Deg2Rad * 0.5
	s := math.Sin(half)
	return Quat{W: math.Cos(half), X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s}
}

// QuatRotX rotates about +X; maps +Y toward +Z
func QuatRotX(deg float64) Quat { return QuatAxisAngle(Vec3X, deg) }

// QuatRotY rotates about +Y; maps +Z toward +X
func QuatRotY(deg float64) Quat { return QuatAxisAngle(Vec3Y, deg) }

// QuatRotZ rotates about +Z; maps +X toward +Y
func QuatRotZ(deg float64) Quat { return QuatAxisAngle(Vec3Z, deg) }

// QMul returns a*b: applying the result rotates by b first, then a
func QMul(a, b Quat) Quat {
	return Quat{
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
	}
}

// QConj is the inverse for unit quaternions
func QConj(q Quat) Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// QNormalize rescales to unit length, identity for zero input
func QNormalize(q Quat) Quat {
	m := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if m == 0 {
		return QuatIdentity
	}
	inv := 1 / m
	return Quat{q.W * inv, q.X * inv, q.Y * inv, q.Z * inv}
}

// QRotate applies q to v
func QRotate(q Quat, v Vec3) Vec3 {
	// v' = v + 2w(u x v) + 2u x (u x v), u = vector part
	u := Vec3{q.X, q.Y, q.Z}
	t := V3Scale(V3Cross(u, v), 2)
	return V3Add(V3Add(v, V3Scale(t, q.W)), V3Cross(u, t))
}

// QNearlyEqual treats q and -q as the same rotation
func QNearlyEqual(a, b Quat, eps float64) bool {
	dot := a.W*b.W + a.X*b.X + a.Y*b.Y + a.Z*b.Z
	return math.Abs(math.Abs(dot)-1) <= eps
}
