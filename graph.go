package ghost

// SceneGraph is the scene-graph service a Session drives. Nodes, plugs and
// layers are addressed by name. *Scene implements it; a host binding can too.
type SceneGraph interface {
	// Nodes
	Exists(name string) bool
	NodeTypeOf(name string) (NodeType, error)
	CreateGroup(name, parent string) (string, error)
	CreateShapeNode(name string, typ NodeType, parent string) (xform, shape string, err error)
	Rename(name, newName string) (string, error)
	Delete(names ...string) error
	Duplicate(name, newName string) (string, error)
	Unite(names []string, newName string) (string, error)
	DeleteHistory(name string) error

	// Attributes
	SetAttr(name, attr string, v float64) error
	Attr(name, attr string) (float64, error)
	SetStringAttr(name, attr, v string) error
	StringAttr(name, attr string) (v string, ok bool, err error)
	SetVisible(name string, visible bool) error
	SetChannelFlags(name string, c Channel, f ChannelFlags) error

	// Hierarchy
	Parent(child, parent string) error
	ParentOf(name string) (string, error)
	ListChildren(name string) ([]string, error)

	// Connections
	Connect(src, dst string) error
	Disconnect(dst string) (bool, error)
	ConnectionSource(dst string) (string, bool)
	ConnectedIndices(node, attr string) []int

	// Keys and time
	SetKeyframe(name string, t int, tangent TangentType) error
	CutKeys(name string, from, to int) (int, error)
	Keyframes(name string) ([]int, error)
	CurrentTime() int
	SetCurrentTime(t int)
	PlaybackRange() (start, end int)

	// Display layers and selection
	LayerExists(name string) bool
	CreateDisplayLayer(name string) (string, error)
	SetLayerDisplayType(name string, dt DisplayType) error
	AddLayerMembers(layer string, names ...string) error
	Select(names ...string) error
	Selection() []string
}

var _ SceneGraph = (*Scene)(nil)
