package ghost

import (
	"errors"
	"testing"
)

func TestParsePlug(t *testing.T) {
	tests := []struct {
		path string
		want Plug
	}{
		{"boxShape.outMesh", Plug{Node: "boxShape", Attr: "outMesh", Index: -1}},
		{"boxShape.worldMatrix[0]", Plug{Node: "boxShape", Attr: "worldMatrix", Index: 0}},
		{"outShape.inputSurface[3].surface", Plug{Node: "outShape", Attr: "inputSurface", Index: 3, Child: "surface"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParsePlug(tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ParsePlug = %+v, want %+v", got, tt.want)
			}
			if got.String() != tt.path {
				t.Errorf("String = %q, want %q", got.String(), tt.path)
			}
		})
	}
}

func TestParsePlugInvalid(t *testing.T) {
	for _, path := range []string{"", "node", ".attr", "node.", "node.attr[", "node.attr[x]", "node.attr[-1]", "node.attr[0].", "node.[0]"} {
		if _, err := ParsePlug(path); !errors.Is(err, ErrInvalidPlug) {
			t.Errorf("ParsePlug(%q) err = %v, want ErrInvalidPlug", path, err)
		}
	}
}

func newWiredScene(t *testing.T) (*Scene, string) {
	t.Helper()
	s := NewScene()
	if _, _, err := s.CreateMesh("box", NewBoxGeometry(1, 1, 1), ""); err != nil {
		t.Fatal(err)
	}
	_, outShape, err := s.CreateShapeNode("out", NodeTypeOutline, "")
	if err != nil {
		t.Fatal(err)
	}
	return s, outShape
}

func TestConnect(t *testing.T) {
	s, out := newWiredScene(t)
	if err := s.Connect("boxShape.outMesh", SlotPlug(out, 0, "surface")); err != nil {
		t.Fatal(err)
	}
	if err := s.Connect("boxShape.worldMatrix", SlotPlug(out, 0, "inputWorldMatrix")); err != nil {
		t.Fatal(err)
	}
	src, ok := s.ConnectionSource(SlotPlug(out, 0, "inputWorldMatrix"))
	if !ok || src != "boxShape.worldMatrix[0]" {
		t.Errorf("source = %q, want boxShape.worldMatrix[0]", src)
	}
	slots := s.InputSlots(out)
	if len(slots) != 1 || slots[0].Surface != "boxShape.outMesh" || slots[0].WorldMatrix != "boxShape.worldMatrix[0]" {
		t.Errorf("slots = %+v", slots)
	}
}

func TestConnectAlreadyConnected(t *testing.T) {
	s, out := newWiredScene(t)
	dst := SlotPlug(out, 0, "surface")
	_ = s.Connect("boxShape.outMesh", dst)
	if err := s.Connect("boxShape.outMesh", dst); !errors.Is(err, ErrAlreadyConnected) {
		t.Errorf("err = %v, want ErrAlreadyConnected", err)
	}
}

func TestConnectInvalidEnds(t *testing.T) {
	s, out := newWiredScene(t)
	tests := []struct{ src, dst string }{
		{"box.outMesh", SlotPlug(out, 0, "surface")},             // transform has no outMesh
		{"boxShape.outMesh", "boxShape.inputSurface[0].surface"}, // mesh has no input slots
		{"boxShape.outMesh", out + ".inputSurface[0].color"},     // unknown slot child
	}
	for _, tt := range tests {
		if err := s.Connect(tt.src, tt.dst); !errors.Is(err, ErrInvalidPlug) {
			t.Errorf("Connect(%s, %s) err = %v, want ErrInvalidPlug", tt.src, tt.dst, err)
		}
	}
	if err := s.Connect("nope.outMesh", SlotPlug(out, 0, "surface")); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDisconnect(t *testing.T) {
	s, out := newWiredScene(t)
	dst := SlotPlug(out, 2, "surface")
	_ = s.Connect("boxShape.outMesh", dst)

	ok, err := s.Disconnect(dst)
	if err != nil || !ok {
		t.Fatalf("Disconnect = %v, %v", ok, err)
	}
	ok, err = s.Disconnect(dst)
	if err != nil || ok {
		t.Errorf("second Disconnect = %v, %v, want false", ok, err)
	}
}

func TestConnectedIndicesSorted(t *testing.T) {
	s, out := newWiredScene(t)
	for _, i := range []int{5, 0, 2} {
		_ = s.Connect("boxShape.outMesh", SlotPlug(out, i, "surface"))
	}
	_ = s.Connect("boxShape.worldMatrix", SlotPlug(out, 2, "inputWorldMatrix"))
	got := s.ConnectedIndices(out, "inputSurface")
	want := []int{0, 2, 5}
	if len(got) != len(want) {
		t.Fatalf("indices = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("indices = %v, want %v", got, want)
		}
	}
}
