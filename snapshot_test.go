package ghost

import (
	"errors"
	"testing"
)

func TestSnapshotNames(t *testing.T) {
	if got := SnapshotName("Bob", 10); got != "Bob_10_ghost" {
		t.Errorf("SnapshotName = %q", got)
	}
	if got := KeyHolderName("Bob"); got != "Bob_keyholder" {
		t.Errorf("KeyHolderName = %q", got)
	}
}

func TestParseSnapshotName(t *testing.T) {
	tests := []struct {
		name      string
		character string
		time      int
		ok        bool
	}{
		{"Bob_10_ghost", "Bob", 10, true},
		{"left_arm_-3_ghost", "left_arm", -3, true},
		{"Bob_keyholder", "", 0, false},
		{"Bob_x_ghost", "", 0, false},
		{"_10_ghost", "", 0, false},
		{"10_ghost", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, tm, ok := ParseSnapshotName(tt.name)
			if c != tt.character || tm != tt.time || ok != tt.ok {
				t.Errorf("ParseSnapshotName = %q, %d, %v", c, tm, ok)
			}
		})
	}
}

func TestCreateSnapshotSingleSource(t *testing.T) {
	s := newTestSession(t)
	scene := sceneOf(s)
	_ = scene.SetAttr("hero", "tx", 2)

	snap, err := s.CreateSnapshot("Bob", 10, []string{"hero"})
	if err != nil {
		t.Fatal(err)
	}
	if snap.Name != "Bob_10_ghost" || snap.Shape != "Bob_10_ghostShape" {
		t.Errorf("snapshot = %+v", snap)
	}
	n := scene.Node(snap.Name)
	if n.Visible {
		t.Error("single-source snapshot should be hidden")
	}
	if n.Translate.X != 2 {
		t.Errorf("tx = %v, want source pose 2", n.Translate.X)
	}
	if p, _ := scene.ParentOf(snap.Name); p != s.Container() {
		t.Errorf("parent = %q, want container", p)
	}
	if n.Shape().History != nil {
		t.Error("history should be stripped")
	}
	assertLocked(t, n)
	if c, _ := n.StringAttr(attrCharacter); c != "Bob" {
		t.Errorf("character stamp = %q", c)
	}
	if n.Attr(attrTime) != 10 || n.Attr(attrSeq) != 1 {
		t.Errorf("stamps = %v/%v", n.Attr(attrTime), n.Attr(attrSeq))
	}
	// The source is untouched.
	if !scene.Node("hero").Visible || scene.Node("hero").ChannelFlags(ChannelTranslateX).Locked {
		t.Error("source should stay visible and unlocked")
	}
}

func TestCreateSnapshotMergesSources(t *testing.T) {
	s := newTestSession(t)
	scene := sceneOf(s)
	before := scene.Root().NumChildren()

	snap, err := s.CreateSnapshot("Bob", 10, []string{"hero", "blade"})
	if err != nil {
		t.Fatal(err)
	}
	n := scene.Node(snap.Name)
	if !n.Visible {
		t.Error("merged snapshot should be visible")
	}
	if got := len(n.Shape().Geometry.Points); got != 8+3 {
		t.Errorf("merged points = %d, want 11", got)
	}
	if n.Shape().History != nil {
		t.Error("unite history should be stripped")
	}
	assertLocked(t, n)
	if scene.Root().NumChildren() != before {
		t.Error("intermediate duplicates should be deleted")
	}
	if scene.Exists("hero1") || scene.Exists("blade1") {
		t.Error("intermediate duplicates left behind")
	}
}

// A second creation for the same key replaces the first.
func TestCreateSnapshotOverwrite(t *testing.T) {
	s := newTestSession(t)
	scene := sceneOf(s)

	if _, err := s.CreateAtTime("Bob", []string{"hero", "blade"}, 10); err != nil {
		t.Fatal(err)
	}
	snap, err := s.CreateAtTime("Bob", []string{"hero"}, 10)
	if err != nil {
		t.Fatal(err)
	}
	kids, _ := scene.ListChildren(s.Container())
	if len(kids) != 1 || kids[0] != "Bob_10_ghost" {
		t.Fatalf("container = %v, want [Bob_10_ghost]", kids)
	}
	if got := len(scene.Node(snap.Shape).Geometry.Points); got != 8 {
		t.Errorf("points = %d, want 8 from the second source set", got)
	}
	if scene.Node(snap.Name).Visible {
		t.Error("second creation was single-source and should be hidden")
	}
	times, _ := s.GhostTimes("Bob")
	if len(times) != 1 || times[0] != 10 {
		t.Errorf("times = %v, want [10]", times)
	}
	assertSlotsMatch(t, s)
}

func TestCreateSnapshotEmptySources(t *testing.T) {
	s := newTestSession(t)
	snap, err := s.CreateSnapshot("Bob", 1, nil)
	if snap != nil || err != nil {
		t.Errorf("empty sources = %v, %v, want nil, nil", snap, err)
	}
	if kids, _ := sceneOf(s).ListChildren(s.Container()); len(kids) != 0 {
		t.Errorf("container = %v, want empty", kids)
	}
}

func TestCreateSnapshotMissingSource(t *testing.T) {
	s := newTestSession(t)
	if _, err := s.CreateAtTime("Bob", []string{"hero"}, 4); err != nil {
		t.Fatal(err)
	}
	_, err := s.CreateSnapshot("Bob", 4, []string{"hero", "ghoul"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if !sceneOf(s).Exists("Bob_4_ghost") {
		t.Error("existing snapshot should survive a rejected replacement")
	}
}

func TestCreateSnapshotDefaultCharacter(t *testing.T) {
	s := newTestSession(t)
	snap, err := s.CreateSnapshot("", 2, []string{"hero"})
	if err != nil {
		t.Fatal(err)
	}
	if snap.Name != "untitled_2_ghost" || snap.Character != "untitled" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestCreateAtTimeGroupSource(t *testing.T) {
	s := newTestSession(t)
	scene := sceneOf(s)
	grp, _ := scene.CreateGroup("rig", "")
	_ = scene.Parent("hero", grp)
	_ = scene.Parent("blade", grp)
	_ = scene.SetAttr(grp, "ty", 5)

	snap, err := s.CreateAtTime("rig", []string{grp, "hero"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	b := scene.Node(snap.Shape).Geometry.Bounds()
	if b.Max.Y != 6 {
		t.Errorf("max Y = %v, want 6: group transform should be baked", b.Max.Y)
	}
	if got := len(scene.Node(snap.Shape).Geometry.Points); got != 8+3 {
		t.Errorf("points = %d, want 11: hero listed twice is merged once", got)
	}
}

func TestCreateSnapshotNestedSourceKeepsPlacement(t *testing.T) {
	s := newTestSession(t)
	scene := sceneOf(s)
	rig, _ := scene.CreateGroup("rig", "")
	_ = scene.Parent("hero", rig)
	_ = scene.SetAttr(rig, "ty", 5)
	_ = scene.SetAttr(rig, "rz", 90)
	_ = scene.SetAttr(rig, "sx", 2)
	_ = scene.SetAttr("hero", "tx", 1)
	want := scene.Node("hero").WorldMatrix()

	snap, err := s.CreateSnapshot("Bob", 1, []string{"hero"})
	if err != nil {
		t.Fatal(err)
	}
	n := scene.Node(snap.Name)
	if p, _ := scene.ParentOf(snap.Name); p != s.Container() {
		t.Fatalf("parent = %q, want container", p)
	}
	if got := n.WorldMatrix(); !approxMat(got, want) {
		t.Errorf("snapshot world = %v, want source world %v", got, want)
	}
	if got := n.Translate; !approxVec(got, Vec3{0, 7, 0}) {
		t.Errorf("translate = %v, want (0, 7, 0)", got)
	}
	assertLocked(t, n)
}

func TestCreateSnapshotRejectsNonMeshSources(t *testing.T) {
	s := newTestSession(t)
	scene := sceneOf(s)
	rig, _ := scene.CreateGroup("rig", "")
	_ = scene.Parent("hero", rig)
	if _, err := s.CreateAtTime("Bob", []string{"blade"}, 3); err != nil {
		t.Fatal(err)
	}
	rootKids := scene.Root().NumChildren()

	for _, sources := range [][]string{
		{rig},
		{"heroShape"},
		{"blade", rig},
		{s.RenderNode()},
	} {
		_, err := s.CreateSnapshot("Bob", 3, sources)
		if !errors.Is(err, ErrNotShape) {
			t.Errorf("%v: err = %v, want ErrNotShape", sources, err)
		}
	}

	kids, _ := scene.ListChildren(s.Container())
	if len(kids) != 1 || kids[0] != "Bob_3_ghost" {
		t.Errorf("container = %v, want [Bob_3_ghost]", kids)
	}
	if scene.Root().NumChildren() != rootKids {
		t.Error("rejected sources left nodes behind")
	}
	if times, _ := s.GhostTimes("Bob"); len(times) != 1 || times[0] != 3 {
		t.Errorf("times = %v, want [3]", times)
	}
	if got := len(s.Snapshots()); got != 1 {
		t.Errorf("snapshots = %d, want 1", got)
	}
}

func TestCreateSnapshotFailedReplacementRollsBack(t *testing.T) {
	scene := NewScene()
	_, _, _ = scene.CreateMesh("hero", NewBoxGeometry(1, 1, 1), "")
	_, _, _ = scene.CreateMesh("blade", NewBoxGeometry(1, 1, 1), "")
	g := &failingGraph{Scene: scene, fail: "Bob_4_ghost"}
	s, err := NewSession(g, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	captureLog(s)
	first, err := s.CreateAtTime("Bob", []string{"hero"}, 4)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.CreateAtTime("Bob", []string{"hero", "blade"}, 4); !errors.Is(err, errDeleteRefused) {
		t.Fatalf("err = %v, want errDeleteRefused", err)
	}
	kids, _ := scene.ListChildren(s.Container())
	if len(kids) != 1 || kids[0] != first.Name {
		t.Errorf("container = %v, want [%s]", kids, first.Name)
	}
	if scene.Node(first.Shape) == nil || len(scene.Node(first.Shape).Geometry.Points) != 8 {
		t.Error("original snapshot geometry should be kept")
	}
	if times, _ := s.GhostTimes("Bob"); len(times) != 1 || times[0] != 4 {
		t.Errorf("times = %v, want [4]", times)
	}
	assertSlotsMatch(t, s)

	// The next creation works as usual.
	if _, err := s.CreateAtTime("Bob", []string{"blade"}, 8); err != nil {
		t.Fatal(err)
	}
	assertSlotsMatch(t, s)
}

func assertLocked(t *testing.T, n *Node) {
	t.Helper()
	for _, c := range AllChannels {
		if f := n.ChannelFlags(c); !f.Locked || f.Keyable || f.ChannelBox {
			t.Errorf("%s.%s flags = %+v, want locked and hidden", n.Name, c, f)
		}
	}
}
