package ghost

import (
	"errors"
	"fmt"
)

// RecordKeyframe keys character's KeyHolder at time t with a step tangent,
// creating the KeyHolder under the timeline container first if needed.
// Returns the KeyHolder name.
func (s *Session) RecordKeyframe(character string, t int) (string, error) {
	g := s.graph
	character = s.character(character)
	holder := KeyHolderName(character)
	if !g.Exists(holder) {
		name, err := g.CreateGroup(holder, s.timeline)
		if err != nil {
			return "", fmt.Errorf("ghost: create keyholder %s: %w", holder, err)
		}
		holder = name
		if err := g.SetStringAttr(holder, attrCharacter, character); err != nil {
			return "", err
		}
	}
	if err := g.SetKeyframe(holder, t, TangentStep); err != nil {
		return "", fmt.Errorf("ghost: key %s at %d: %w", holder, t, err)
	}
	if err := s.lockHide(holder); err != nil {
		return "", err
	}
	s.emit(EventKeyRecorded, character, t, holder)
	return holder, nil
}

// GhostTimes returns the times at which character currently has a snapshot,
// read from its KeyHolder. A character with no KeyHolder has none.
func (s *Session) GhostTimes(character string) ([]int, error) {
	times, err := s.graph.Keyframes(KeyHolderName(s.character(character)))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return times, err
}

// SelectTimeline selects character's KeyHolder so its keys show up as time
// markers.
func (s *Session) SelectTimeline(character string) error {
	holder := KeyHolderName(s.character(character))
	if !s.graph.Exists(holder) {
		return fmt.Errorf("ghost: keyholder %s: %w", holder, ErrNotFound)
	}
	return s.graph.Select(holder)
}
