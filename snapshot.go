package ghost

import (
	"fmt"
	"strconv"
	"strings"
)

// Ownership stamps written on every snapshot and KeyHolder.
const (
	attrCharacter = "ghostCharacter"
	attrTime      = "ghostTime"
	attrSeq       = "ghostSeq"
)

const (
	snapshotSuffix  = "_ghost"
	keyHolderSuffix = "_keyholder"
)

// Snapshot is one live ghost: a locked duplicate of a character's geometry at
// one time, parented under the snapshot container.
type Snapshot struct {
	Character string
	Time      int
	Seq       int    // creation sequence; slot order
	Name      string // transform
	Shape     string // shape feeding the render slot
}

// SnapshotName returns the node name of the snapshot of character at time t.
func SnapshotName(character string, t int) string {
	return character + "_" + strconv.Itoa(t) + snapshotSuffix
}

// KeyHolderName returns the node name of character's KeyHolder.
func KeyHolderName(character string) string {
	return character + keyHolderSuffix
}

// ParseSnapshotName splits "<character>_<time>_ghost" into its parts. The
// character may itself contain underscores.
func ParseSnapshotName(name string) (character string, t int, ok bool) {
	rest, found := strings.CutSuffix(name, snapshotSuffix)
	if !found {
		return "", 0, false
	}
	i := strings.LastIndexByte(rest, '_')
	if i <= 0 {
		return "", 0, false
	}
	t, err := strconv.Atoi(rest[i+1:])
	if err != nil {
		return "", 0, false
	}
	return rest[:i], t, true
}

// CreateSnapshot duplicates the source transforms into one locked snapshot of
// character at time t and parents it under the container, keeping its world
// placement. Several sources are merged into a single mesh; a single source is
// duplicated as is and hidden. A snapshot already present for (character, t)
// is replaced once the new one is built.
//
// Every source must be a transform holding a mesh shape: an unknown source
// fails with ErrNotFound and any other node with ErrNotShape, before the graph
// is touched. A failed build leaves no partial snapshot behind. No sources is a
// no-op returning nil. CreateSnapshot neither rewires the render slots nor
// keys the timeline.
func (s *Session) CreateSnapshot(character string, t int, sources []string) (*Snapshot, error) {
	if len(sources) == 0 {
		return nil, nil
	}
	g := s.graph
	character = s.character(character)
	if err := s.checkSources(sources); err != nil {
		return nil, err
	}

	name := SnapshotName(character, t)
	var built string
	var err error
	if len(sources) > 1 {
		built, err = s.uniteSources(sources, name+buildSuffix)
	} else {
		built, err = s.duplicateSource(sources[0], name+buildSuffix)
	}
	if err != nil {
		return nil, err
	}
	if err := s.finishSnapshot(built, character, t, s.seq+1); err != nil {
		s.discard(built)
		return nil, err
	}

	if g.Exists(name) {
		if err := g.Delete(name); err != nil {
			s.discard(built)
			return nil, fmt.Errorf("ghost: replace %s: %w", name, err)
		}
		s.log.Debug("replaced snapshot", "snapshot", name)
		s.emit(EventSnapshotDeleted, character, t, name)
	}
	final, err := g.Rename(built, name)
	if err != nil {
		s.discard(built)
		return nil, fmt.Errorf("ghost: rename %s: %w", built, err)
	}
	shape, err := s.meshShape(final)
	if err != nil {
		return nil, fmt.Errorf("ghost: snapshot %s: %w", final, err)
	}
	s.seq++

	s.metrics.snapshotCreated(character)
	s.emit(EventSnapshotCreated, character, t, final)
	s.log.Debug("created snapshot", "snapshot", final, "sources", len(sources))
	return &Snapshot{Character: character, Time: t, Seq: s.seq, Name: final, Shape: shape}, nil
}

// buildSuffix marks a snapshot that is still being assembled.
const buildSuffix = "_build"

// finishSnapshot strips history from a freshly built snapshot, moves it under
// the container, then locks and stamps it.
func (s *Session) finishSnapshot(name, character string, t, seq int) error {
	g := s.graph
	if err := g.DeleteHistory(name); err != nil {
		return err
	}
	if err := g.Parent(name, s.container); err != nil {
		return fmt.Errorf("ghost: parent %s: %w", name, err)
	}
	if err := s.lockHide(name); err != nil {
		return err
	}
	if err := s.stamp(name, character, t, seq); err != nil {
		return err
	}
	if _, err := s.meshShape(name); err != nil {
		return fmt.Errorf("ghost: snapshot %s: %w", name, err)
	}
	return nil
}

// discard deletes a partially built snapshot.
func (s *Session) discard(name string) {
	if err := s.graph.Delete(name); err != nil {
		s.log.Warn("could not discard partial snapshot", "node", name, "err", err)
	}
}

// uniteSources duplicates each source, merges the duplicates into one mesh
// named name and deletes the intermediates.
func (s *Session) uniteSources(sources []string, name string) (string, error) {
	g := s.graph
	dups := make([]string, 0, len(sources))
	cleanup := func() {
		if len(dups) > 0 {
			if err := g.Delete(dups...); err != nil {
				s.log.Warn("could not delete intermediate duplicates", "err", err)
			}
		}
	}
	for _, src := range sources {
		d, err := g.Duplicate(src, "")
		if err != nil {
			cleanup()
			return "", fmt.Errorf("ghost: duplicate %s: %w", src, err)
		}
		dups = append(dups, d)
	}
	united, err := g.Unite(dups, name)
	cleanup()
	if err != nil {
		return "", fmt.Errorf("ghost: unite %s: %w", name, err)
	}
	return united, nil
}

// duplicateSource duplicates one source as name and hides it.
func (s *Session) duplicateSource(src, name string) (string, error) {
	dup, err := s.graph.Duplicate(src, name)
	if err != nil {
		return "", fmt.Errorf("ghost: duplicate %s: %w", src, err)
	}
	if err := s.graph.SetVisible(dup, false); err != nil {
		return "", err
	}
	return dup, nil
}

func (s *Session) stamp(name, character string, t, seq int) error {
	g := s.graph
	if err := g.SetStringAttr(name, attrCharacter, character); err != nil {
		return err
	}
	if err := g.SetAttr(name, attrTime, float64(t)); err != nil {
		return err
	}
	return g.SetAttr(name, attrSeq, float64(seq))
}
