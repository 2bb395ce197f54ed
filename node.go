package ghost

// --- ID counter ---

// nodeIDCounter is not atomic; the graph is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used for
// transforms and shapes alike; Type selects which fields are meaningful.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node
	scene    *Scene // owning scene, nil for detached nodes

	// Transform (local). Rotation is in degrees, applied X then Y then Z.
	Translate Vec3
	Rotate    Vec3
	Scale     Vec3
	channels  [numChannels]ChannelFlags

	// Computed (unexported, refreshed lazily by updateWorldMatrix)
	worldMatrix    Mat4
	transformDirty bool

	// Visibility & shading
	Visible bool
	Color   Color

	// Mesh fields (NodeTypeMesh)
	Geometry *Geometry

	// History lists the operations that produced this node's geometry.
	History []string

	// Attributes
	attrs    map[string]float64
	strAttrs map[string]string
	curves   map[string]*AnimCurve

	// Internal
	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Scale = Vec3{1, 1, 1}
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
	n.worldMatrix = identityMatrix
	for i := range n.channels {
		n.channels[i] = defaultChannelFlags
	}
}

// NewTransform creates an empty transform (group) node.
func NewTransform(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeTransform}
	nodeDefaults(n)
	return n
}

// NewMeshShape creates a mesh shape holding the given geometry.
func NewMeshShape(name string, g *Geometry) *Node {
	n := &Node{Name: name, Type: NodeTypeMesh, Geometry: g}
	nodeDefaults(n)
	return n
}

// NewOutlineShape creates an outline-render shape with no connected slots.
func NewOutlineShape(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeOutline}
	nodeDefaults(n)
	n.Color = Color{0, 0, 0, 1}
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("ghost: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("ghost: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("ghost: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list in scene order. The returned slice MUST NOT
// be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Shape returns the first shape child of a transform, or nil.
func (n *Node) Shape() *Node {
	for _, c := range n.children {
		if c.Type.isShape() {
			return c
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	if n.scene != nil {
		n.scene.forget(n)
	}
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.scene = nil
	n.Geometry = nil
	n.History = nil
	n.attrs = nil
	n.strAttrs = nil
	n.curves = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// walk calls fn for node and every descendant, parents first.
func walk(node *Node, fn func(*Node)) {
	fn(node)
	for _, child := range node.children {
		walk(child, fn)
	}
}
