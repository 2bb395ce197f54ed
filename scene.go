package ghost

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree, the name index, the
// attribute connections, display layers and the time line.
//
// A Scene is not safe for concurrent use; every operation runs to completion on
// the calling goroutine.
type Scene struct {
	root  *Node
	debug bool

	names       map[string]*Node
	connections map[string]string // destination plug -> source plug
	layers      map[string]*DisplayLayer
	layerOrder  []string
	selection   []*Node

	currentTime   int
	playbackStart int
	playbackEnd   int

	// Render state. View maps world space to screen pixels. A Background
	// with nonzero alpha is filled before anything is drawn.
	View       Mat4
	Background Color
	vertexBuf  []ebiten.Vertex

	// CaptureDir is where queued frame captures are written.
	CaptureDir   string
	captureQueue []string
}

// NewScene creates a new scene with a pre-created root transform. The playback
// range defaults to 1..120.
func NewScene() *Scene {
	root := NewTransform("root")
	s := &Scene{
		root:          root,
		names:         make(map[string]*Node),
		connections:   make(map[string]string),
		layers:        make(map[string]*DisplayLayer),
		currentTime:   1,
		playbackStart: 1,
		playbackEnd:   120,
		View:          identityMatrix,
		CaptureDir:    "captures",
	}
	root.scene = s
	return s
}

// Root returns the scene's root transform. The root has no addressable name.
func (s *Scene) Root() *Node {
	return s.root
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and tree depth and child count warnings are printed to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// --- Name index ---

// Node returns the node registered under name, or nil.
func (s *Scene) Node(name string) *Node {
	return s.names[name]
}

// Exists reports whether a node or display layer with the given name exists.
func (s *Scene) Exists(name string) bool {
	if _, ok := s.names[name]; ok {
		return true
	}
	_, ok := s.layers[name]
	return ok
}

// NodeTypeOf returns the type of the named node.
func (s *Scene) NodeTypeOf(name string) (NodeType, error) {
	n, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	return n.Type, nil
}

// lookup returns the named node or a wrapped ErrNotFound.
func (s *Scene) lookup(name string) (*Node, error) {
	n := s.names[name]
	if n == nil {
		return nil, fmt.Errorf("ghost: %q: %w", name, ErrNotFound)
	}
	return n, nil
}

// uniqueName returns base if it is free, otherwise base with the smallest
// numeric suffix that is free. Trailing digits of base are replaced.
func (s *Scene) uniqueName(base string) string {
	if !s.Exists(base) {
		return base
	}
	stem := strings.TrimRightFunc(base, func(r rune) bool { return r >= '0' && r <= '9' })
	for i := 1; ; i++ {
		name := stem + strconv.Itoa(i)
		if !s.Exists(name) {
			return name
		}
	}
}

// register names n (uniquified) and adds it to the index.
func (s *Scene) register(n *Node, name string) {
	if name == "" {
		name = n.Type.String() + "1"
	}
	n.Name = s.uniqueName(name)
	n.scene = s
	s.names[n.Name] = n
}

// forget removes n from the index, the selection, display layers and every
// connection that touches it.
func (s *Scene) forget(n *Node) {
	if s.names[n.Name] == n {
		delete(s.names, n.Name)
	}
	for i, sel := range s.selection {
		if sel == n {
			s.selection = append(s.selection[:i], s.selection[i+1:]...)
			break
		}
	}
	for _, l := range s.layers {
		l.remove(n)
	}
	prefix := n.Name + "."
	for dst, src := range s.connections {
		if strings.HasPrefix(dst, prefix) || strings.HasPrefix(src, prefix) {
			delete(s.connections, dst)
		}
	}
}

// adopt registers every node of an unregistered subtree.
func (s *Scene) adopt(n *Node) {
	walk(n, func(c *Node) {
		if c.scene != s {
			s.register(c, c.Name)
		}
	})
}

// parentNode resolves a parent name; the empty name is the root.
func (s *Scene) parentNode(name string) (*Node, error) {
	if name == "" {
		return s.root, nil
	}
	return s.lookup(name)
}

// --- Creation ---

// AddNode attaches a detached node (and its subtree) under parent ("" for the
// root) and registers it. Taken names are uniquified. Returns the final name.
func (s *Scene) AddNode(n *Node, parent string) (string, error) {
	p, err := s.parentNode(parent)
	if err != nil {
		return "", err
	}
	p.AddChild(n)
	s.adopt(n)
	return n.Name, nil
}

// CreateGroup creates an empty transform under parent ("" for the root) and
// returns its final name.
func (s *Scene) CreateGroup(name, parent string) (string, error) {
	if name == "" {
		name = "group1"
	}
	return s.AddNode(NewTransform(name), parent)
}

// CreateShapeNode creates a transform named name holding a shape of the given
// type named "<transform>Shape". Returns both final names.
func (s *Scene) CreateShapeNode(name string, typ NodeType, parent string) (xform, shape string, err error) {
	if name == "" {
		name = typ.String() + "1"
	}
	var sh *Node
	switch typ {
	case NodeTypeMesh:
		sh = NewMeshShape("", &Geometry{})
	case NodeTypeOutline:
		sh = NewOutlineShape("")
	default:
		return "", "", fmt.Errorf("ghost: %s is not a shape type", typ)
	}
	x := NewTransform(name)
	if xform, err = s.AddNode(x, parent); err != nil {
		return "", "", err
	}
	x.AddChild(sh)
	s.register(sh, xform+"Shape")
	return xform, sh.Name, nil
}

// CreateMesh creates a mesh transform+shape holding g under parent.
func (s *Scene) CreateMesh(name string, g *Geometry, parent string) (xform, shape string, err error) {
	xform, shape, err = s.CreateShapeNode(name, NodeTypeMesh, parent)
	if err != nil {
		return "", "", err
	}
	s.names[shape].Geometry = g
	return xform, shape, nil
}

// --- Renaming & deletion ---

// Rename renames a node, uniquifying newName if taken. Shapes named
// "<old>Shape" follow their transform. Returns the final name.
func (s *Scene) Rename(name, newName string) (string, error) {
	n, err := s.lookup(name)
	if err != nil {
		return "", err
	}
	if name == newName {
		return name, nil
	}
	delete(s.names, name)
	final := s.uniqueName(newName)
	n.Name = final
	s.names[final] = n
	s.renamePlugs(name, final)
	for _, c := range n.children {
		if c.Type.isShape() && c.Name == name+"Shape" {
			if _, err := s.Rename(c.Name, final+"Shape"); err != nil {
				return "", err
			}
		}
	}
	return final, nil
}

// renamePlugs rewrites connection endpoints after a rename.
func (s *Scene) renamePlugs(oldName, newName string) {
	prefix := oldName + "."
	renamed := make(map[string]string, len(s.connections))
	for dst, src := range s.connections {
		if strings.HasPrefix(dst, prefix) {
			dst = newName + "." + strings.TrimPrefix(dst, prefix)
		}
		if strings.HasPrefix(src, prefix) {
			src = newName + "." + strings.TrimPrefix(src, prefix)
		}
		renamed[dst] = src
	}
	s.connections = renamed
}

// Delete disposes the named nodes and their descendants and breaks every
// connection touching them. Display layers are deleted by name too. Fails with
// ErrNotFound on the first unknown name; names before it are already deleted.
func (s *Scene) Delete(names ...string) error {
	for _, name := range names {
		if l, ok := s.layers[name]; ok {
			s.deleteLayer(l)
			continue
		}
		n, err := s.lookup(name)
		if err != nil {
			return err
		}
		n.Dispose()
	}
	return nil
}

// --- Duplication ---

// Duplicate deep-copies a node and its subtree under the same parent. Channel
// values, flags, attributes and geometry are copied; construction history and
// animation curves are not. newName "" derives the name from the source.
// Returns the final name.
func (s *Scene) Duplicate(name, newName string) (string, error) {
	n, err := s.lookup(name)
	if err != nil {
		return "", err
	}
	if newName == "" {
		newName = name
	}
	dup := cloneSubtree(n)
	parent := n.Parent
	if parent == nil {
		parent = s.root
	}
	parent.AddChild(dup)
	s.register(dup, newName)
	for _, c := range dup.children {
		base := c.Name
		if c.Type.isShape() {
			base = dup.Name + "Shape"
		}
		walk(c, func(d *Node) {
			if d == c {
				s.register(d, base)
				return
			}
			s.register(d, d.Name)
		})
	}
	return dup.Name, nil
}

// cloneSubtree copies n and its descendants into detached nodes that keep the
// source names as registration hints.
func cloneSubtree(n *Node) *Node {
	c := &Node{Name: n.Name, Type: n.Type}
	nodeDefaults(c)
	c.Translate, c.Rotate, c.Scale = n.Translate, n.Rotate, n.Scale
	c.channels = n.channels
	c.Visible = n.Visible
	c.Color = n.Color
	c.Geometry = n.Geometry.Clone()
	c.copyAttrs(n)
	for _, child := range n.children {
		c.AddChild(cloneSubtree(child))
	}
	return c
}

// Unite merges the meshes under the named transforms into one new mesh
// transform under the root. Points are baked to world space, so the result
// has an identity transform. The new shape records polyUnite history naming
// its inputs. Returns the final transform name.
func (s *Scene) Unite(names []string, newName string) (string, error) {
	var parts []*Geometry
	var mats []Mat4
	for _, name := range names {
		n, err := s.lookup(name)
		if err != nil {
			return "", err
		}
		walk(n, func(c *Node) {
			if c.Type == NodeTypeMesh && c.Geometry != nil {
				parts = append(parts, c.Geometry)
				mats = append(mats, c.WorldMatrix())
			}
		})
	}
	merged, err := mergeGeometry(parts, mats)
	if err != nil {
		return "", err
	}
	if newName == "" {
		newName = "polySurface1"
	}
	xform, shape, err := s.CreateMesh(newName, merged, "")
	if err != nil {
		return "", err
	}
	sh := s.names[shape]
	sh.History = append([]string{"polyUnite"}, names...)
	return xform, nil
}

// DeleteHistory clears the construction history of a node and its shapes.
func (s *Scene) DeleteHistory(name string) error {
	n, err := s.lookup(name)
	if err != nil {
		return err
	}
	walk(n, func(c *Node) { c.History = nil })
	return nil
}

// --- Attributes ---

// SetAttr sets a numeric attribute on the named node.
func (s *Scene) SetAttr(name, attr string, v float64) error {
	n, err := s.lookup(name)
	if err != nil {
		return err
	}
	if err := n.SetAttr(attr, v); err != nil {
		return fmt.Errorf("ghost: set %s.%s: %w", name, attr, err)
	}
	return nil
}

// Attr reads a numeric attribute of the named node.
func (s *Scene) Attr(name, attr string) (float64, error) {
	n, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	return n.Attr(attr), nil
}

// SetStringAttr sets a string attribute on the named node.
func (s *Scene) SetStringAttr(name, attr, v string) error {
	n, err := s.lookup(name)
	if err != nil {
		return err
	}
	n.SetStringAttr(attr, v)
	return nil
}

// StringAttr reads a string attribute of the named node; ok is false when the
// attribute is unset.
func (s *Scene) StringAttr(name, attr string) (v string, ok bool, err error) {
	n, err := s.lookup(name)
	if err != nil {
		return "", false, err
	}
	v, ok = n.StringAttr(attr)
	return v, ok, nil
}

// SetVisible shows or hides the named node.
func (s *Scene) SetVisible(name string, visible bool) error {
	n, err := s.lookup(name)
	if err != nil {
		return err
	}
	n.Visible = visible
	return nil
}

// SetChannelFlags sets the manipulation flags of one channel of a transform.
func (s *Scene) SetChannelFlags(name string, c Channel, f ChannelFlags) error {
	n, err := s.lookup(name)
	if err != nil {
		return err
	}
	n.SetChannelFlags(c, f)
	return nil
}

// ChannelFlags returns the manipulation flags of one channel of a transform.
func (s *Scene) ChannelFlags(name string, c Channel) (ChannelFlags, error) {
	n, err := s.lookup(name)
	if err != nil {
		return ChannelFlags{}, err
	}
	return n.ChannelFlags(c), nil
}

// --- Hierarchy ---

// Parent moves child under parent ("" for the root). A transform keeps its
// world placement: its channels are recomputed relative to the new parent,
// locked or not. Under a parent with a singular matrix the local channel
// values are kept instead.
func (s *Scene) Parent(child, parent string) error {
	c, err := s.lookup(child)
	if err != nil {
		return err
	}
	p, err := s.parentNode(parent)
	if err != nil {
		return err
	}
	if isAncestor(c, p) {
		return fmt.Errorf("ghost: parent %q under %q: %w", child, parent, ErrCycle)
	}
	if c.Parent == p {
		return nil
	}
	if !c.Type.isShape() {
		if inv, ok := p.WorldMatrix().Inverse(); ok {
			c.Translate, c.Rotate, c.Scale = inv.Mul(c.WorldMatrix()).decompose()
		}
	}
	p.AddChild(c)
	return nil
}

// ListChildren returns the names of the direct children of name ("" for the
// root) in scene order.
func (s *Scene) ListChildren(name string) ([]string, error) {
	n, err := s.parentNode(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(n.children))
	for i, c := range n.children {
		out[i] = c.Name
	}
	return out, nil
}

// ParentOf returns the name of the node's parent, "" for root children.
func (s *Scene) ParentOf(name string) (string, error) {
	n, err := s.lookup(name)
	if err != nil {
		return "", err
	}
	if n.Parent == nil || n.Parent == s.root {
		return "", nil
	}
	return n.Parent.Name, nil
}

// --- Time ---

// CurrentTime returns the current frame.
func (s *Scene) CurrentTime() int {
	return s.currentTime
}

// SetCurrentTime moves to frame t and evaluates every animation curve onto
// its attribute.
func (s *Scene) SetCurrentTime(t int) {
	s.currentTime = t
	walk(s.root, func(n *Node) {
		if len(n.curves) > 0 {
			n.evaluateCurves(t)
		}
	})
}

// PlaybackRange returns the playback start and end frames.
func (s *Scene) PlaybackRange() (start, end int) {
	return s.playbackStart, s.playbackEnd
}

// SetPlaybackRange sets the playback start and end frames.
func (s *Scene) SetPlaybackRange(start, end int) {
	s.playbackStart, s.playbackEnd = start, end
}

// --- Selection ---

// Select replaces the selection with the named nodes. No names clears it.
func (s *Scene) Select(names ...string) error {
	sel := make([]*Node, 0, len(names))
	for _, name := range names {
		n, err := s.lookup(name)
		if err != nil {
			return err
		}
		sel = append(sel, n)
	}
	s.selection = sel
	return nil
}

// Selection returns the names of the selected nodes in selection order.
func (s *Scene) Selection() []string {
	out := make([]string, len(s.selection))
	for i, n := range s.selection {
		out[i] = n.Name
	}
	return out
}
