package ghost

import (
	"errors"
	"fmt"
)

// MeshSources resolves names to the mesh transforms a snapshot can be built
// from. With no names the graph's current selection is used. Groups expand to
// every mesh transform beneath them, mesh shapes resolve to their transform,
// and everything else is dropped. The session's own nodes are never sources.
// The result keeps first-seen order without duplicates; an unknown name fails
// with ErrNotFound.
func (s *Session) MeshSources(names ...string) ([]string, error) {
	g := s.graph
	if len(names) == 0 {
		names = g.Selection()
	}
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	var visit func(name string) error
	visit = func(name string) error {
		if s.reserved(name) {
			return nil
		}
		typ, err := g.NodeTypeOf(name)
		if err != nil {
			return err
		}
		switch typ {
		case NodeTypeMesh:
			parent, err := g.ParentOf(name)
			if err != nil {
				return err
			}
			if parent != "" && !s.reserved(parent) {
				add(parent)
			}
			return nil
		case NodeTypeTransform:
			kids, err := g.ListChildren(name)
			if err != nil {
				return err
			}
			for _, k := range kids {
				kt, err := g.NodeTypeOf(k)
				if err != nil {
					return err
				}
				if kt == NodeTypeMesh {
					add(name)
					continue
				}
				if kt == NodeTypeTransform {
					if err := visit(k); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}

	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, fmt.Errorf("ghost: resolve source %q: %w", name, err)
		}
	}
	return out, nil
}

// reserved reports whether name is one of the session's singleton nodes.
func (s *Session) reserved(name string) bool {
	return name == s.container || name == s.timeline || name == s.renderNode
}

// meshShape returns the first mesh shape of the transform name. Anything that
// is not a transform holding a mesh fails with ErrNotShape.
func (s *Session) meshShape(name string) (string, error) {
	g := s.graph
	typ, err := g.NodeTypeOf(name)
	if err != nil {
		return "", err
	}
	if typ != NodeTypeTransform {
		return "", fmt.Errorf("ghost: %s is a %s: %w", name, typ, ErrNotShape)
	}
	kids, err := g.ListChildren(name)
	if err != nil {
		return "", err
	}
	for _, k := range kids {
		kt, err := g.NodeTypeOf(k)
		if err != nil {
			return "", err
		}
		if kt == NodeTypeMesh {
			return k, nil
		}
	}
	return "", fmt.Errorf("ghost: %s has no mesh shape: %w", name, ErrNotShape)
}

// checkSources verifies every source is an existing mesh transform.
func (s *Session) checkSources(sources []string) error {
	for _, src := range sources {
		if !s.graph.Exists(src) {
			return fmt.Errorf("ghost: snapshot source %q: %w", src, ErrNotFound)
		}
		if _, err := s.meshShape(src); err != nil {
			if errors.Is(err, ErrNotShape) {
				return fmt.Errorf("ghost: snapshot source: %w", err)
			}
			return err
		}
	}
	return nil
}
