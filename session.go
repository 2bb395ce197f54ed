package ghost

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// Session is the snapshot engine bound to one scene graph. It holds the names
// of the three singleton nodes and the snapshot and KeyHolder listings last
// read from the graph. The graph, not the cache, is the source of truth: every
// mutating operation re-reads the listings before returning.
//
// A Session is not safe for concurrent use.
type Session struct {
	graph   SceneGraph
	cfg     Config
	log     *slog.Logger
	metrics *Metrics
	sink    EventSink

	renderNode  string
	renderShape string
	container   string
	timeline    string

	snapshots  []Snapshot
	keyHolders []string
	seq        int
}

// NewSession binds to the singleton render node, snapshot container and
// timeline container of graph, creating whichever are missing, and reads the
// current snapshot and KeyHolder listings. Calling it again on the same graph
// binds to the same nodes.
func NewSession(graph SceneGraph, cfg Config) (*Session, error) {
	s := &Session{
		graph: graph,
		cfg:   cfg.withDefaults(),
		log:   slog.Default(),
	}
	if err := s.ensureSingletons(); err != nil {
		return nil, err
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	for _, snap := range s.snapshots {
		if snap.Seq > s.seq {
			s.seq = snap.Seq
		}
	}
	s.log.Info("ghost session ready",
		"render_node", s.renderNode,
		"snapshots", len(s.snapshots),
		"keyholders", len(s.keyHolders))
	return s, nil
}

// SetLogger replaces the session logger. nil restores slog.Default().
func (s *Session) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	s.log = l
}

// SetMetrics sets the optional metrics collectors.
func (s *Session) SetMetrics(m *Metrics) {
	s.metrics = m
}

// SetEventSink sets the optional lifecycle event sink.
func (s *Session) SetEventSink(sink EventSink) {
	s.sink = sink
}

// Config returns the effective configuration.
func (s *Session) Config() Config { return s.cfg }

// Graph returns the scene graph the session drives.
func (s *Session) Graph() SceneGraph { return s.graph }

// RenderNode returns the name of the outline render transform.
func (s *Session) RenderNode() string { return s.renderNode }

// RenderShape returns the name of the outline render shape that owns the
// input slots.
func (s *Session) RenderShape() string { return s.renderShape }

// Container returns the name of the snapshot container.
func (s *Session) Container() string { return s.container }

// Timeline returns the name of the timeline container.
func (s *Session) Timeline() string { return s.timeline }

// Snapshots returns the cached snapshot listing in slot order.
func (s *Session) Snapshots() []Snapshot {
	return append([]Snapshot(nil), s.snapshots...)
}

// KeyHolders returns the cached KeyHolder names in scene order.
func (s *Session) KeyHolders() []string {
	return append([]string(nil), s.keyHolders...)
}

// character substitutes the default character for an empty name.
func (s *Session) character(name string) string {
	if name == "" {
		return s.cfg.DefaultCharacter
	}
	return name
}

func (s *Session) emit(t EventType, character string, time int, node string) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(Event{Type: t, Character: character, Time: time, Node: node})
}

// --- Listings ---

// Refresh re-reads the snapshot and KeyHolder listings from the graph.
func (s *Session) Refresh() error {
	if err := s.refreshSnapshots(); err != nil {
		return err
	}
	return s.refreshKeyHolders()
}

func (s *Session) refreshSnapshots() error {
	snaps, err := s.listSnapshots()
	if err != nil {
		return err
	}
	s.snapshots = snaps
	return nil
}

func (s *Session) refreshKeyHolders() error {
	holders, err := s.graph.ListChildren(s.timeline)
	if err != nil {
		return fmt.Errorf("ghost: list keyholders: %w", err)
	}
	s.keyHolders = holders
	return nil
}

// listSnapshots reads every child of the container that has a mesh shape,
// with its character, time and sequence stamps, ordered by sequence. Children
// without stamps are identified from their names and keep scene order ahead
// of stamped ones.
func (s *Session) listSnapshots() ([]Snapshot, error) {
	g := s.graph
	names, err := g.ListChildren(s.container)
	if err != nil {
		return nil, fmt.Errorf("ghost: list snapshots: %w", err)
	}
	snaps := make([]Snapshot, 0, len(names))
	for _, name := range names {
		shape, err := s.meshShape(name)
		if errors.Is(err, ErrNotShape) {
			s.log.Debug("skipping container child without mesh shape", "node", name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("ghost: list snapshot %s: %w", name, err)
		}
		snap := Snapshot{Name: name, Shape: shape}
		character, ok, err := g.StringAttr(name, attrCharacter)
		if err != nil {
			return nil, err
		}
		if ok {
			t, err := g.Attr(name, attrTime)
			if err != nil {
				return nil, err
			}
			seq, err := g.Attr(name, attrSeq)
			if err != nil {
				return nil, err
			}
			snap.Character, snap.Time, snap.Seq = character, int(t), int(seq)
		} else if c, t, ok := ParseSnapshotName(name); ok {
			snap.Character, snap.Time = c, t
		}
		snaps = append(snaps, snap)
	}
	sort.SliceStable(snaps, func(i, j int) bool { return snaps[i].Seq < snaps[j].Seq })
	return snaps, nil
}

// lockHide locks and hides every transform channel of the named node.
func (s *Session) lockHide(name string) error {
	for _, c := range AllChannels {
		if err := s.graph.SetChannelFlags(name, c, lockedHidden); err != nil {
			return fmt.Errorf("ghost: lock %s.%s: %w", name, c, err)
		}
	}
	return nil
}
