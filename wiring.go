package ghost

import "fmt"

// slotBinding is the pair of source plugs one render slot should carry.
type slotBinding struct {
	surface string
	matrix  string
}

// planSlots maps snapshot i to slot i: its shape's mesh output feeds the
// geometry stream and its world matrix the transform stream.
func planSlots(snaps []Snapshot) []slotBinding {
	plan := make([]slotBinding, len(snaps))
	for i, sn := range snaps {
		plan[i] = slotBinding{
			surface: Plug{Node: sn.Shape, Attr: attrOutMesh, Index: -1}.String(),
			matrix:  Plug{Node: sn.Shape, Attr: attrWorldMatrix, Index: 0}.String(),
		}
	}
	return plan
}

// RewireSlots brings the render node's input slots in line with the cached
// snapshot listing. Slots that already carry the right streams are left
// alone, the rest are reconnected, and populated slots past the last
// snapshot are cleared. Returns the number of slots touched.
func (s *Session) RewireSlots() (int, error) {
	g := s.graph
	plan := planSlots(s.snapshots)
	touched := 0

	for i, want := range plan {
		surf := SlotPlug(s.renderShape, i, attrSurface)
		mat := SlotPlug(s.renderShape, i, attrInputWorldMatrix)
		haveSurf, _ := g.ConnectionSource(surf)
		haveMat, _ := g.ConnectionSource(mat)
		if haveSurf == want.surface && haveMat == want.matrix {
			continue
		}
		if err := s.clearSlot(i); err != nil {
			return touched, err
		}
		if err := g.Connect(want.surface, surf); err != nil {
			return touched, fmt.Errorf("ghost: wire slot %d: %w", i, err)
		}
		if err := g.Connect(want.matrix, mat); err != nil {
			return touched, fmt.Errorf("ghost: wire slot %d: %w", i, err)
		}
		touched++
	}

	for _, i := range g.ConnectedIndices(s.renderShape, attrInputSurface) {
		if i < len(plan) {
			continue
		}
		if err := s.clearSlot(i); err != nil {
			return touched, err
		}
		touched++
	}

	s.metrics.observe(len(s.snapshots), len(plan), touched)
	if touched > 0 {
		s.log.Debug("rewired render slots", "slots", len(plan), "touched", touched)
	}
	return touched, nil
}

func (s *Session) clearSlot(i int) error {
	for _, child := range []string{attrSurface, attrInputWorldMatrix} {
		if _, err := s.graph.Disconnect(SlotPlug(s.renderShape, i, child)); err != nil {
			return fmt.Errorf("ghost: clear slot %d: %w", i, err)
		}
	}
	return nil
}
