package ghost

import "fmt"

// CreateAtCurrentTime snapshots objects for character at the graph's current
// time, wires the snapshot into the render node, keys the character's
// timeline and moves the container into the reference layer. Objects are
// resolved with MeshSources, so no objects means the current selection.
// Nothing to ghost is a no-op returning nil.
func (s *Session) CreateAtCurrentTime(character string, objects []string) (*Snapshot, error) {
	sources, err := s.MeshSources(objects...)
	if err != nil || len(sources) == 0 {
		return nil, err
	}
	return s.create(character, sources)
}

// CreateAtTime is CreateAtCurrentTime at time t. The current time is restored
// afterwards, even on failure.
func (s *Session) CreateAtTime(character string, objects []string, t int) (*Snapshot, error) {
	sources, err := s.MeshSources(objects...)
	if err != nil || len(sources) == 0 {
		return nil, err
	}
	prev := s.graph.CurrentTime()
	s.graph.SetCurrentTime(t)
	defer s.graph.SetCurrentTime(prev)
	return s.create(character, sources)
}

// CreateOverRange snapshots objects at start, start+increment, ... while
// below end, then at end. Objects are resolved once, before the first
// snapshot. The current time is left at end.
func (s *Session) CreateOverRange(character string, objects []string, start, end, increment int) ([]Snapshot, error) {
	if increment <= 0 {
		return nil, fmt.Errorf("ghost: increment %d: %w", increment, ErrInvalidIncrement)
	}
	sources, err := s.MeshSources(objects...)
	if err != nil || len(sources) == 0 {
		return nil, err
	}
	var out []Snapshot
	for t := start; t < end; t += increment {
		s.graph.SetCurrentTime(t)
		snap, err := s.create(character, sources)
		if err != nil {
			return out, err
		}
		out = append(out, *snap)
	}
	s.graph.SetCurrentTime(end)
	snap, err := s.create(character, sources)
	if err != nil {
		return out, err
	}
	return append(out, *snap), nil
}

// CreateOverPlaybackRange is CreateOverRange over the graph's playback range.
// increment <= 0 uses the configured increment.
func (s *Session) CreateOverPlaybackRange(character string, objects []string, increment int) ([]Snapshot, error) {
	if increment <= 0 {
		increment = s.cfg.Increment
	}
	start, end := s.graph.PlaybackRange()
	return s.CreateOverRange(character, objects, start, end, increment)
}

// DeleteAll removes every snapshot and KeyHolder.
func (s *Session) DeleteAll() (int, error) {
	return s.Delete(DeleteAll, "")
}

// DeleteByCharacter removes every snapshot of character and its KeyHolder.
func (s *Session) DeleteByCharacter(character string) (int, error) {
	return s.Delete(DeleteByCharacter, character)
}

// DeleteAtCurrentTime removes character's snapshot at the current time and
// its timeline key.
func (s *Session) DeleteAtCurrentTime(character string) (int, error) {
	return s.Delete(DeleteAtCurrentTime, character)
}

// SetLineWidth sets the outline width of the render node.
func (s *Session) SetLineWidth(w float64) error {
	return s.graph.SetAttr(s.renderShape, "lineWidth", w)
}

// frameCapturer is a graph that can save its next drawn frame.
type frameCapturer interface {
	Capture(label string)
}

// create runs the full creation pipeline at the current time.
func (s *Session) create(character string, objects []string) (*Snapshot, error) {
	if len(objects) == 0 {
		return nil, nil
	}
	character = s.character(character)
	t := s.graph.CurrentTime()
	snap, err := s.CreateSnapshot(character, t, objects)
	if err != nil {
		return nil, err
	}
	if err := s.refreshSnapshots(); err != nil {
		return nil, err
	}
	if _, err := s.RewireSlots(); err != nil {
		return nil, err
	}
	if _, err := s.RecordKeyframe(character, t); err != nil {
		return nil, err
	}
	if err := s.refreshKeyHolders(); err != nil {
		return nil, err
	}
	if _, err := s.AssignToReferenceLayer([]string{s.container}, ""); err != nil {
		return nil, err
	}
	if err := s.graph.Select(); err != nil {
		return nil, err
	}
	if c, ok := s.graph.(frameCapturer); ok && s.cfg.CaptureOnCreate {
		c.Capture(snap.Name)
	}
	s.log.Info("created ghost", "character", character, "time", t, "snapshot", snap.Name)
	return snap, nil
}
