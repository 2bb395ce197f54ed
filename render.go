package ghost

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- White pixel singleton ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Used as the source texture of every untextured triangle.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// referenceShade dims members of reference layers; templateShade turns
// members of template layers into a faint gray.
var (
	referenceShade = Color{0.6, 0.6, 0.7, 0.8}
	templateShade  = Color{0.5, 0.5, 0.5, 0.35}
)

// ScreenView returns a view matrix that centers the world origin on a w x h
// screen at the given zoom (pixels per unit), with world Y pointing up.
func ScreenView(w, h int, zoom float64) Mat4 {
	return Mat4{
		zoom, 0, 0, float64(w) / 2,
		0, -zoom, 0, float64(h) / 2,
		0, 0, zoom, 0,
		0, 0, 0, 1,
	}
}

// Draw renders every visible mesh, then the outline passes of every
// outline-render node's connected input slots.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.Background.A > 0 {
		screen.Fill(s.Background.toRGBA())
	}
	updateWorldMatrix(s.root, identityMatrix, false)
	s.drawMeshes(screen, s.root)
	walk(s.root, func(n *Node) {
		if n.Type == NodeTypeOutline && visibleInTree(n) {
			s.drawOutline(screen, n)
		}
	})
	s.flushCaptures(screen)
}

// visibleInTree reports whether n and all its ancestors are visible.
func visibleInTree(n *Node) bool {
	for p := n; p != nil; p = p.Parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

func (s *Scene) drawMeshes(screen *ebiten.Image, n *Node) {
	if !n.Visible {
		return
	}
	if n.Type == NodeTypeMesh && n.Geometry.NumTriangles() > 0 {
		tint := n.Color
		if l := s.layerOf(n); l != nil {
			if !l.Visible {
				return
			}
			switch l.DisplayType {
			case DisplayReference:
				tint = Color{tint.R * referenceShade.R, tint.G * referenceShade.G, tint.B * referenceShade.B, tint.A * referenceShade.A}
			case DisplayTemplate:
				tint = templateShade
			}
		}
		s.vertexBuf = projectVertices(s.vertexBuf, n.Geometry, n.worldMatrix, s.View, tint)
		screen.DrawTriangles(s.vertexBuf, n.Geometry.Indices, ensureWhitePixel(), &ebiten.DrawTrianglesOptions{})
	}
	for _, c := range n.children {
		s.drawMeshes(screen, c)
	}
}

// drawOutline draws each slot's geometry in the 8 cardinal/diagonal offsets
// with the outline color, then the interior faintly on top. Thickness in
// pixels is lineWidth*4, at least 1.
func (s *Scene) drawOutline(screen *ebiten.Image, outline *Node) {
	t := math.Max(1, outline.Attr("lineWidth")*4)
	offsets := [8][2]float32{
		{-1, 0}, {1, 0}, {0, -1}, {0, 1},
		{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
	}
	fill := outline.Color
	fill.A *= 0.25 * clamp01(outline.Attr("displayPercent")/100)

	for _, slot := range s.InputSlots(outline.Name) {
		shape, world, ok := s.resolveSlot(slot)
		if !ok {
			continue
		}
		base := projectVertices(nil, shape.Geometry, world, s.View, outline.Color)
		for _, off := range offsets {
			s.vertexBuf = append(s.vertexBuf[:0], base...)
			for i := range s.vertexBuf {
				s.vertexBuf[i].DstX += off[0] * float32(t)
				s.vertexBuf[i].DstY += off[1] * float32(t)
			}
			screen.DrawTriangles(s.vertexBuf, shape.Geometry.Indices, ensureWhitePixel(), &ebiten.DrawTrianglesOptions{})
		}
		s.vertexBuf = projectVertices(s.vertexBuf, shape.Geometry, world, s.View, fill)
		screen.DrawTriangles(s.vertexBuf, shape.Geometry.Indices, ensureWhitePixel(), &ebiten.DrawTrianglesOptions{})
	}
}

// resolveSlot finds the mesh shape and world matrix feeding a slot.
func (s *Scene) resolveSlot(slot Slot) (*Node, Mat4, bool) {
	sp, err := ParsePlug(slot.Surface)
	if err != nil {
		return nil, Mat4{}, false
	}
	shape := s.names[sp.Node]
	if shape == nil || shape.Geometry.NumTriangles() == 0 {
		return nil, Mat4{}, false
	}
	world := shape.worldMatrix
	if mp, err := ParsePlug(slot.WorldMatrix); err == nil {
		if src := s.names[mp.Node]; src != nil {
			world = src.worldMatrix
		}
	}
	return shape, world, true
}
