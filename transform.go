package ghost

import "math"

// Mat4 is a row-major 4x4 affine matrix. Translation lives in [3], [7], [11].
type Mat4 [16]float64

// identityMatrix is the identity affine matrix.
var identityMatrix = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// computeLocalMatrix computes the local matrix from the node's channels.
//
// Composition order:
//
//	Scale -> RotateX -> RotateY -> RotateZ -> Translate
func computeLocalMatrix(n *Node) Mat4 {
	sx, sy, sz := n.Scale.X, n.Scale.Y, n.Scale.Z
	sinX, cosX := math.Sincos(n.Rotate.X * math.Pi / 180)
	sinY, cosY := math.Sincos(n.Rotate.Y * math.Pi / 180)
	sinZ, cosZ := math.Sincos(n.Rotate.Z * math.Pi / 180)

	// R = Rz * Ry * Rx
	r00 := cosZ * cosY
	r01 := cosZ*sinY*sinX - sinZ*cosX
	r02 := cosZ*sinY*cosX + sinZ*sinX
	r10 := sinZ * cosY
	r11 := sinZ*sinY*sinX + cosZ*cosX
	r12 := sinZ*sinY*cosX - cosZ*sinX
	r20 := -sinY
	r21 := cosY * sinX
	r22 := cosY * cosX

	return Mat4{
		r00 * sx, r01 * sy, r02 * sz, n.Translate.X,
		r10 * sx, r11 * sy, r12 * sz, n.Translate.Y,
		r20 * sx, r21 * sy, r22 * sz, n.Translate.Z,
		0, 0, 0, 1,
	}
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * o[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// Apply transforms a point by m.
func (m Mat4) Apply(p Vec3) Vec3 {
	return Vec3{
		X: m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		Y: m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		Z: m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

// Inverse returns the inverse of an affine matrix. ok is false when the
// linear part is singular (a zero scale).
func (m Mat4) Inverse() (inv Mat4, ok bool) {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[4], m[5], m[6]
	g, h, i := m[8], m[9], m[10]

	c00 := e*i - f*h
	c01 := f*g - d*i
	c02 := d*h - e*g
	det := a*c00 + b*c01 + c*c02
	if math.Abs(det) < 1e-12 {
		return Mat4{}, false
	}
	r := 1 / det
	inv = Mat4{
		c00 * r, (c*h - b*i) * r, (b*f - c*e) * r, 0,
		c01 * r, (a*i - c*g) * r, (c*d - a*f) * r, 0,
		c02 * r, (b*g - a*h) * r, (a*e - b*d) * r, 0,
		0, 0, 0, 1,
	}
	t := inv.Apply(Vec3{m[3], m[7], m[11]})
	inv[3], inv[7], inv[11] = -t.X, -t.Y, -t.Z
	return inv, true
}

// decompose splits an affine matrix into translate, rotate (degrees, in the
// Rz*Ry*Rx order of computeLocalMatrix) and scale. Shear is dropped. A
// negative determinant is folded into the X scale.
func (m Mat4) decompose() (translate, rotate, scale Vec3) {
	translate = Vec3{m[3], m[7], m[11]}
	col := func(j int) Vec3 { return Vec3{m[j], m[4+j], m[8+j]} }
	x, y, z := col(0), col(1), col(2)
	scale = Vec3{length(x), length(y), length(z)}
	det := x.X*(y.Y*z.Z-z.Y*y.Z) - y.X*(x.Y*z.Z-z.Y*x.Z) + z.X*(x.Y*y.Z-y.Y*x.Z)
	if det < 0 {
		scale.X = -scale.X
	}
	if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
		return translate, Vec3{}, scale
	}
	r00, r10, r20 := x.X/scale.X, x.Y/scale.X, x.Z/scale.X
	r11, r21 := y.Y/scale.Y, y.Z/scale.Y
	r12, r22 := z.Y/scale.Z, z.Z/scale.Z

	sy := math.Max(-1, math.Min(1, -r20))
	ry := math.Asin(sy)
	var rx, rz float64
	if math.Abs(math.Cos(ry)) > 1e-9 {
		rx = math.Atan2(r21, r22)
		rz = math.Atan2(r10, r00)
	} else {
		// Gimbal lock: fold the whole roll into X.
		rx = math.Atan2(-r12, r11)
	}
	const deg = 180 / math.Pi
	return translate, Vec3{rx * deg, ry * deg, rz * deg}, scale
}

func length(v Vec3) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// updateWorldMatrix recomputes a node's worldMatrix and that of its subtree.
// parentRecomputed forces recomputation of this node even if it's not dirty.
func updateWorldMatrix(n *Node, parent Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		if n.Type.isShape() {
			// Shapes have no channels of their own; they sit at the
			// transform's frame.
			n.worldMatrix = parent
		} else {
			n.worldMatrix = parent.Mul(computeLocalMatrix(n))
		}
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldMatrix(child, n.worldMatrix, recompute)
	}
}

// WorldMatrix returns the node's world matrix, refreshing dirty ancestors first.
func (n *Node) WorldMatrix() Mat4 {
	top := n
	dirty := false
	for p := n; p != nil; p = p.Parent {
		if p.transformDirty {
			top = p
			dirty = true
		}
	}
	if !dirty {
		return n.worldMatrix
	}
	parent := identityMatrix
	if top.Parent != nil {
		parent = top.Parent.worldMatrix
	}
	updateWorldMatrix(top, parent, false)
	return n.worldMatrix
}

// --- Channel access ---

// channelRef returns a pointer to the field backing channel c.
func (n *Node) channelRef(c Channel) *float64 {
	switch c {
	case ChannelTranslateX:
		return &n.Translate.X
	case ChannelTranslateY:
		return &n.Translate.Y
	case ChannelTranslateZ:
		return &n.Translate.Z
	case ChannelRotateX:
		return &n.Rotate.X
	case ChannelRotateY:
		return &n.Rotate.Y
	case ChannelRotateZ:
		return &n.Rotate.Z
	case ChannelScaleX:
		return &n.Scale.X
	case ChannelScaleY:
		return &n.Scale.Y
	default:
		return &n.Scale.Z
	}
}

// ChannelValue returns the current value of channel c.
func (n *Node) ChannelValue(c Channel) float64 {
	return *n.channelRef(c)
}

// SetChannel sets channel c and marks the node dirty. Fails with
// ErrChannelLocked when the channel is locked.
func (n *Node) SetChannel(c Channel, v float64) error {
	if n.channels[c].Locked {
		return ErrChannelLocked
	}
	n.setChannel(c, v)
	return nil
}

// setChannel writes a channel without the lock check; curves drive locked
// channels too.
func (n *Node) setChannel(c Channel, v float64) {
	*n.channelRef(c) = v
	markSubtreeDirty(n)
}

// ChannelFlags returns the manipulation flags of channel c.
func (n *Node) ChannelFlags(c Channel) ChannelFlags {
	return n.channels[c]
}

// SetChannelFlags replaces the manipulation flags of channel c.
func (n *Node) SetChannelFlags(c Channel, f ChannelFlags) {
	n.channels[c] = f
}

// LockHideTransforms locks every transform channel and hides it from the
// channel box and from keying.
func (n *Node) LockHideTransforms() {
	for _, c := range AllChannels {
		n.channels[c] = lockedHidden
	}
}

// SetPosition sets the node's translation and marks it dirty. Locked channels
// are left untouched.
func (n *Node) SetPosition(x, y, z float64) {
	_ = n.SetChannel(ChannelTranslateX, x)
	_ = n.SetChannel(ChannelTranslateY, y)
	_ = n.SetChannel(ChannelTranslateZ, z)
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next world matrix query. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	markSubtreeDirty(n)
}
