package ghost

import "fmt"

// Baseline display attributes of the outline render shape.
var renderShapeDefaults = []struct {
	attr  string
	value float64
}{
	{"overrideEnabled", 1},
	{"overrideDisplayType", float64(DisplayReference)},
	{"creaseLines", 0},
	{"borderLines", 0},
	{"displayPercent", 100},
}

// ensureSingletons binds the session to the render node, snapshot container
// and timeline container, creating each one that does not exist yet.
func (s *Session) ensureSingletons() error {
	g := s.graph
	s.renderNode = s.cfg.RenderNode
	s.renderShape = s.cfg.renderShape()
	s.container = s.cfg.Container
	s.timeline = s.cfg.Timeline

	if !g.Exists(s.renderNode) {
		if err := s.createRenderNode(); err != nil {
			return err
		}
	} else if !g.Exists(s.renderShape) {
		return fmt.Errorf("ghost: render node %s has no shape %s: %w", s.renderNode, s.renderShape, ErrNotShape)
	}

	for _, name := range []*string{&s.container, &s.timeline} {
		if g.Exists(*name) {
			continue
		}
		created, err := g.CreateGroup(*name, "")
		if err != nil {
			return fmt.Errorf("ghost: create %s: %w", *name, err)
		}
		*name = created
		s.log.Debug("created session group", "node", created)
	}
	return nil
}

// createRenderNode creates the outline render node, renames it to its
// reserved name, locks its transform and applies the baseline display
// attributes.
func (s *Session) createRenderNode() error {
	g := s.graph
	xform, _, err := g.CreateShapeNode("", NodeTypeOutline, "")
	if err != nil {
		return fmt.Errorf("ghost: create render node: %w", err)
	}
	if s.renderNode, err = g.Rename(xform, s.renderNode); err != nil {
		return fmt.Errorf("ghost: rename render node: %w", err)
	}
	s.renderShape = s.renderNode + "Shape"
	if err := s.lockHide(s.renderNode); err != nil {
		return err
	}
	for _, d := range renderShapeDefaults {
		if err := g.SetAttr(s.renderShape, d.attr, d.value); err != nil {
			return err
		}
	}
	if err := g.SetAttr(s.renderShape, "lineWidth", s.cfg.LineWidth); err != nil {
		return err
	}
	s.log.Debug("created render node", "node", s.renderNode, "shape", s.renderShape)
	return nil
}
