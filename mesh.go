package ghost

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Geometry is an indexed triangle mesh in the local space of its shape.
type Geometry struct {
	Points  []Vec3
	Indices []uint16
}

// Clone returns a deep copy of g. A nil geometry clones to nil.
func (g *Geometry) Clone() *Geometry {
	if g == nil {
		return nil
	}
	return &Geometry{
		Points:  append([]Vec3(nil), g.Points...),
		Indices: append([]uint16(nil), g.Indices...),
	}
}

// NumTriangles returns the number of triangles described by Indices.
func (g *Geometry) NumTriangles() int {
	if g == nil {
		return 0
	}
	return len(g.Indices) / 3
}

// mergeGeometry concatenates the given meshes into one, baking each part's
// matrix into its points and offsetting indices. Parts with nil geometry are
// skipped.
func mergeGeometry(parts []*Geometry, matrices []Mat4) (*Geometry, error) {
	total := 0
	for _, p := range parts {
		if p != nil {
			total += len(p.Points)
		}
	}
	if total > math.MaxUint16+1 {
		return nil, ErrMeshTooLarge
	}
	out := &Geometry{Points: make([]Vec3, 0, total)}
	for i, p := range parts {
		if p == nil {
			continue
		}
		base := uint16(len(out.Points))
		m := matrices[i]
		for _, pt := range p.Points {
			out.Points = append(out.Points, m.Apply(pt))
		}
		for _, idx := range p.Indices {
			out.Indices = append(out.Indices, base+idx)
		}
	}
	return out, nil
}

// Bounds is an axis-aligned box.
type Bounds struct {
	Min, Max Vec3
}

// computeBounds scans the points and returns their bounding box.
func computeBounds(points []Vec3) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Min.Z = math.Min(b.Min.Z, p.Z)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
		b.Max.Z = math.Max(b.Max.Z, p.Z)
	}
	return b
}

// Bounds returns the local-space bounding box of g.
func (g *Geometry) Bounds() Bounds {
	if g == nil {
		return Bounds{}
	}
	return computeBounds(g.Points)
}

// projectVertices applies world and view matrices to the points of g and
// writes screen-space vertices tinted by tint into dst, which is grown as
// needed and returned. The projection is orthographic: view maps world space
// to screen pixels and Z is dropped.
//
// Color components are premultiplied by the tint's alpha.
func projectVertices(dst []ebiten.Vertex, g *Geometry, world Mat4, view Mat4, tint Color) []ebiten.Vertex {
	need := len(g.Points)
	if cap(dst) < need {
		dst = make([]ebiten.Vertex, need)
	}
	dst = dst[:need]

	m := view.Mul(world)
	cr := float32(tint.R * tint.A)
	cg := float32(tint.G * tint.A)
	cb := float32(tint.B * tint.A)
	ca := float32(tint.A)

	for i, p := range g.Points {
		w := m.Apply(p)
		dst[i] = ebiten.Vertex{
			DstX:   float32(w.X),
			DstY:   float32(w.Y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}
	return dst
}
