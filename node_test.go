package ghost

import "testing"

// --- Constructor defaults ---

func TestNewTransformDefaults(t *testing.T) {
	n := NewTransform("grp")
	assertNodeDefaults(t, n, "grp", NodeTypeTransform)
	if n.Geometry != nil {
		t.Error("transform should have no geometry")
	}
}

func TestNewMeshShapeDefaults(t *testing.T) {
	g := NewBoxGeometry(1, 1, 1)
	n := NewMeshShape("boxShape", g)
	assertNodeDefaults(t, n, "boxShape", NodeTypeMesh)
	if n.Geometry != g {
		t.Error("Geometry not set")
	}
}

func TestNewOutlineShapeDefaults(t *testing.T) {
	n := NewOutlineShape("outlineShape")
	if n.Type != NodeTypeOutline {
		t.Errorf("Type = %s, want outlineRender", n.Type)
	}
	if n.Color != (Color{0, 0, 0, 1}) {
		t.Errorf("Color = %v, want black", n.Color)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %s, want %s", n.Type, typ)
	}
	if n.Scale != (Vec3{1, 1, 1}) {
		t.Errorf("Scale = %v, want (1, 1, 1)", n.Scale)
	}
	if n.Color != ColorWhite {
		t.Errorf("Color = %v, want white", n.Color)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
	for _, c := range AllChannels {
		if f := n.ChannelFlags(c); f.Locked || !f.Keyable {
			t.Errorf("channel %s flags = %+v, want keyable and unlocked", c, f)
		}
	}
}

// --- Unique IDs ---

func TestUniqueIDs(t *testing.T) {
	a := NewTransform("a")
	b := NewTransform("b")
	if a.ID == b.ID {
		t.Errorf("IDs should be unique, both %d", a.ID)
	}
}

// --- Tree manipulation ---

func TestAddChild(t *testing.T) {
	parent := NewTransform("parent")
	child := NewTransform("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("parent should hold child")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewTransform("a")
	b := NewTransform("b")
	child := NewTransform("child")
	a.AddChild(child)
	b.AddChild(child)

	if a.NumChildren() != 0 {
		t.Errorf("old parent children = %d, want 0", a.NumChildren())
	}
	if child.Parent != b {
		t.Error("child.Parent should be the new parent")
	}
}

func TestAddChildNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on nil child")
		}
	}()
	NewTransform("p").AddChild(nil)
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewTransform("a")
	b := NewTransform("b")
	a.AddChild(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on cycle")
		}
	}()
	b.AddChild(a)
}

func TestRemoveChild(t *testing.T) {
	parent := NewTransform("parent")
	child := NewTransform("child")
	parent.AddChild(child)
	parent.RemoveChild(child)

	if child.Parent != nil {
		t.Error("child.Parent should be nil")
	}
	if parent.NumChildren() != 0 {
		t.Error("parent should have no children")
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	a := NewTransform("a")
	child := NewTransform("child")
	defer func() {
		if recover() == nil {
			t.Error("expected panic removing a non-child")
		}
	}()
	a.RemoveChild(child)
}

func TestRemoveFromParentNoParent(t *testing.T) {
	NewTransform("orphan").RemoveFromParent() // must not panic
}

func TestChildrenOrder(t *testing.T) {
	parent := NewTransform("parent")
	names := []string{"a", "b", "c"}
	for _, n := range names {
		parent.AddChild(NewTransform(n))
	}
	for i, c := range parent.Children() {
		if c.Name != names[i] {
			t.Errorf("child %d = %q, want %q", i, c.Name, names[i])
		}
	}
}

func TestShape(t *testing.T) {
	x := NewTransform("box")
	if x.Shape() != nil {
		t.Error("empty transform should have no shape")
	}
	x.AddChild(NewTransform("sub"))
	sh := NewMeshShape("boxShape", NewBoxGeometry(1, 1, 1))
	x.AddChild(sh)
	if x.Shape() != sh {
		t.Error("Shape should return the mesh child")
	}
}

// --- Disposal ---

func TestDisposeRecursive(t *testing.T) {
	parent := NewTransform("parent")
	child := NewTransform("child")
	grandchild := NewMeshShape("gc", NewBoxGeometry(1, 1, 1))
	parent.AddChild(child)
	child.AddChild(grandchild)

	child.Dispose()

	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("subtree should be disposed")
	}
	if parent.NumChildren() != 0 {
		t.Error("disposed child should be detached")
	}
	if grandchild.Geometry != nil {
		t.Error("disposed shape should release its geometry")
	}
	child.Dispose() // second call is a no-op
}

func TestDisposeForgetsName(t *testing.T) {
	s := NewScene()
	name, err := s.CreateGroup("grp", "")
	if err != nil {
		t.Fatal(err)
	}
	s.Node(name).Dispose()
	if s.Exists(name) {
		t.Error("disposed node should leave the name index")
	}
}
