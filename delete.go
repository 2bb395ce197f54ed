package ghost

import "fmt"

// DeleteMode selects which snapshots Session.Delete removes.
type DeleteMode uint8

const (
	DeleteAll           DeleteMode = iota // every snapshot and KeyHolder
	DeleteByCharacter                     // one character's snapshots and KeyHolder
	DeleteAtCurrentTime                   // one character's snapshot at the current time
)

// String returns the mode name.
func (m DeleteMode) String() string {
	switch m {
	case DeleteAll:
		return "all"
	case DeleteByCharacter:
		return "character"
	case DeleteAtCurrentTime:
		return "current-time"
	default:
		return "unknown"
	}
}

// Delete removes snapshots according to mode and returns how many were
// deleted. character is ignored by DeleteAll. Missing targets are logged as
// warnings, not errors. Whatever the outcome, the listings are re-read and
// the render slots rewired before Delete returns.
func (s *Session) Delete(mode DeleteMode, character string) (int, error) {
	var n int
	var err error
	switch mode {
	case DeleteAll:
		n, err = s.deleteAll()
	case DeleteByCharacter:
		n, err = s.deleteByCharacter(s.character(character))
	case DeleteAtCurrentTime:
		n, err = s.deleteAtCurrentTime(s.character(character))
	default:
		err = fmt.Errorf("ghost: unknown delete mode %d", mode)
	}
	if rerr := s.Refresh(); rerr != nil && err == nil {
		err = rerr
	}
	if _, werr := s.RewireSlots(); werr != nil && err == nil {
		err = werr
	}
	s.metrics.snapshotsDeleted(mode, n)
	return n, err
}

func (s *Session) deleteAll() (int, error) {
	g := s.graph
	snaps, err := s.listSnapshots()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, sn := range snaps {
		if err := g.Delete(sn.Name); err != nil {
			return n, fmt.Errorf("ghost: delete %s: %w", sn.Name, err)
		}
		n++
		s.emit(EventSnapshotDeleted, sn.Character, sn.Time, sn.Name)
	}
	holders, err := g.ListChildren(s.timeline)
	if err != nil {
		return n, fmt.Errorf("ghost: list keyholders: %w", err)
	}
	for _, h := range holders {
		character, _, _ := g.StringAttr(h, attrCharacter)
		if err := g.Delete(h); err != nil {
			return n, fmt.Errorf("ghost: delete %s: %w", h, err)
		}
		s.emit(EventKeyHolderDeleted, character, 0, h)
	}
	s.log.Info("deleted all ghosts", "snapshots", n, "keyholders", len(holders))
	return n, nil
}

func (s *Session) deleteByCharacter(character string) (int, error) {
	g := s.graph
	holder := KeyHolderName(character)
	if g.Exists(holder) {
		if err := g.Delete(holder); err != nil {
			return 0, fmt.Errorf("ghost: delete %s: %w", holder, err)
		}
		s.emit(EventKeyHolderDeleted, character, 0, holder)
	} else {
		s.log.Warn("no keyholder for character", "character", character)
	}

	snaps, err := s.listSnapshots()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, sn := range snaps {
		if sn.Character != character {
			continue
		}
		if err := g.Delete(sn.Name); err != nil {
			return n, fmt.Errorf("ghost: delete %s: %w", sn.Name, err)
		}
		n++
		s.emit(EventSnapshotDeleted, sn.Character, sn.Time, sn.Name)
		s.log.Debug("deleted snapshot", "snapshot", sn.Name)
	}
	if n == 0 {
		s.log.Warn("no ghosts found for character", "character", character)
	}
	return n, nil
}

func (s *Session) deleteAtCurrentTime(character string) (int, error) {
	g := s.graph
	t := g.CurrentTime()
	name := SnapshotName(character, t)
	if !g.Exists(name) {
		s.log.Warn("no ghost on current frame", "character", character, "time", t)
		return 0, nil
	}
	if err := g.Delete(name); err != nil {
		return 0, fmt.Errorf("ghost: delete %s: %w", name, err)
	}
	s.emit(EventSnapshotDeleted, character, t, name)

	holder := KeyHolderName(character)
	if !g.Exists(holder) {
		s.log.Warn("no keyholder for character", "character", character)
		return 1, nil
	}
	if _, err := g.CutKeys(holder, t, t); err != nil {
		return 1, fmt.Errorf("ghost: cut %s at %d: %w", holder, t, err)
	}
	return 1, nil
}
