package vmath

// Transform is a rigid transform: rotate, then translate
type Transform struct {
	Position Vec3
	Rotation Quat
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{Rotation: QuatIdentity}
}

// Apply maps a local point into the parent space
func (t Transform) Apply(p Vec3) Vec3 {
	return V3Add(t.Position, QRotate(t.Rotation, p))
}

// ApplyDir maps a local direction, ignoring translation
func (t Transform) ApplyDir(d Vec3) Vec3 {
	return QRotate(t.Rotation, d)
}

// Translate moves along the transform's own axes
func (t Transform) Translate(local Vec3) Transform {
	t.Position = V3Add(t.Position, QRotate(t.Rotation, local))
	return t
}

// Rotate appends a rotation in the transform's own frame
func (t Transform) Rotate(q Quat) Transform {
	t.Rotation = QNormalize(QMul(t.Rotation, q))
	return t
}

// Inverse returns the transform mapping parent space back to local
func (t Transform) Inverse() Transform {
	inv := QConj(t.Rotation)
	return Transform{
		Position: V3Neg(QRotate(inv, t.Position)),
		Rotation: inv,
	}
}

// Compose returns parent*child: child expressed in parent's parent space
func Compose(parent, child Transform) Transform {
	return Transform{
		Position: parent.Apply(child.Position),
		Rotation: QNormalize(QMul(parent.Rotation, child.Rotation)),
	}
}

// TransformNearlyEqual compares position and rotation
func TransformNearlyEqual(a, b Transform, eps float64) bool {
	return V3NearlyEqual(a.Position, b.Position, eps) && QNearlyEqual(a.Rotation, b.Rotation, eps)
}
