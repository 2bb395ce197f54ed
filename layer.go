package ghost

import "fmt"

// DisplayLayer groups nodes that share a display mode. Membership is
// inherited: a node belongs to the layer of its nearest member ancestor.
type DisplayLayer struct {
	Name        string
	DisplayType DisplayType
	Visible     bool
	members     []*Node
}

// Members returns the direct members in insertion order.
func (l *DisplayLayer) Members() []*Node {
	return l.members
}

func (l *DisplayLayer) has(n *Node) bool {
	for _, m := range l.members {
		if m == n {
			return true
		}
	}
	return false
}

func (l *DisplayLayer) remove(n *Node) {
	for i, m := range l.members {
		if m == n {
			l.members = append(l.members[:i], l.members[i+1:]...)
			return
		}
	}
}

// LayerExists reports whether a display layer with the given name exists.
func (s *Scene) LayerExists(name string) bool {
	_, ok := s.layers[name]
	return ok
}

// CreateDisplayLayer creates an empty, visible, normal display layer and
// returns its final name.
func (s *Scene) CreateDisplayLayer(name string) (string, error) {
	if name == "" {
		name = "layer1"
	}
	final := s.uniqueName(name)
	s.layers[final] = &DisplayLayer{Name: final, Visible: true}
	s.layerOrder = append(s.layerOrder, final)
	return final, nil
}

// Layer returns the named display layer, or nil.
func (s *Scene) Layer(name string) *DisplayLayer {
	return s.layers[name]
}

func (s *Scene) deleteLayer(l *DisplayLayer) {
	delete(s.layers, l.Name)
	for i, name := range s.layerOrder {
		if name == l.Name {
			s.layerOrder = append(s.layerOrder[:i], s.layerOrder[i+1:]...)
			break
		}
	}
}

// SetLayerDisplayType sets the display mode of a layer.
func (s *Scene) SetLayerDisplayType(name string, dt DisplayType) error {
	l := s.layers[name]
	if l == nil {
		return fmt.Errorf("ghost: layer %q: %w", name, ErrNotFound)
	}
	l.DisplayType = dt
	return nil
}

// AddLayerMembers moves the named nodes into a layer. A node belongs to at most
// one layer; re-adding a member is a no-op.
func (s *Scene) AddLayerMembers(layer string, names ...string) error {
	l := s.layers[layer]
	if l == nil {
		return fmt.Errorf("ghost: layer %q: %w", layer, ErrNotFound)
	}
	for _, name := range names {
		n, err := s.lookup(name)
		if err != nil {
			return err
		}
		if l.has(n) {
			continue
		}
		for _, other := range s.layers {
			other.remove(n)
		}
		l.members = append(l.members, n)
	}
	return nil
}

// LayerMembers returns the names of a layer's direct members.
func (s *Scene) LayerMembers(layer string) ([]string, error) {
	l := s.layers[layer]
	if l == nil {
		return nil, fmt.Errorf("ghost: layer %q: %w", layer, ErrNotFound)
	}
	out := make([]string, len(l.members))
	for i, m := range l.members {
		out[i] = m.Name
	}
	return out, nil
}

// layerOf returns the display layer governing n, or nil.
func (s *Scene) layerOf(n *Node) *DisplayLayer {
	for p := n; p != nil; p = p.Parent {
		for _, name := range s.layerOrder {
			if l := s.layers[name]; l.has(p) {
				return l
			}
		}
	}
	return nil
}

// Selectable reports whether the named node can be picked interactively.
// Nodes governed by a template or reference layer cannot.
func (s *Scene) Selectable(name string) bool {
	n := s.names[name]
	if n == nil {
		return false
	}
	l := s.layerOf(n)
	return l == nil || l.DisplayType == DisplayNormal
}
