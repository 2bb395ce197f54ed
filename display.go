package ghost

import "fmt"

// AssignToReferenceLayer puts objects in the named display layer ("" for the
// configured one), creating it if needed, and sets the layer to reference
// display so its members cannot be picked. Returns the layer name.
func (s *Session) AssignToReferenceLayer(objects []string, layer string) (string, error) {
	g := s.graph
	if layer == "" {
		layer = s.cfg.Layer
	}
	if !g.LayerExists(layer) {
		name, err := g.CreateDisplayLayer(layer)
		if err != nil {
			return "", fmt.Errorf("ghost: create layer %s: %w", layer, err)
		}
		layer = name
	}
	if err := g.SetLayerDisplayType(layer, DisplayReference); err != nil {
		return "", err
	}
	if len(objects) == 0 {
		return layer, nil
	}
	if err := g.AddLayerMembers(layer, objects...); err != nil {
		return "", fmt.Errorf("ghost: add to layer %s: %w", layer, err)
	}
	return layer, nil
}
