package ghost

import (
	"errors"
	"testing"
)

func TestSetKeyframeKeysKeyableChannels(t *testing.T) {
	s := NewScene()
	grp, _ := s.CreateGroup("grp", "")
	_ = s.SetAttr(grp, "tx", 2)
	if err := s.SetKeyframe(grp, 5, TangentStep); err != nil {
		t.Fatal(err)
	}
	n := s.Node(grp)
	if len(n.curves) != numChannels {
		t.Errorf("curves = %d, want %d", len(n.curves), numChannels)
	}
	if k := n.Curve("tx").Keys(); len(k) != 1 || k[0].Value != 2 || k[0].Time != 5 {
		t.Errorf("tx keys = %+v", k)
	}
}

func TestSetKeyframeLockedNodeWithCurves(t *testing.T) {
	s := NewScene()
	grp, _ := s.CreateGroup("grp", "")
	_ = s.SetKeyframe(grp, 1, TangentStep)
	s.Node(grp).LockHideTransforms()

	if err := s.SetKeyframe(grp, 9, TangentStep); err != nil {
		t.Fatalf("locked node with curves should still key: %v", err)
	}
	times, _ := s.Keyframes(grp)
	if len(times) != 2 || times[0] != 1 || times[1] != 9 {
		t.Errorf("times = %v, want [1 9]", times)
	}
}

func TestSetKeyframeNothingKeyable(t *testing.T) {
	s := NewScene()
	grp, _ := s.CreateGroup("grp", "")
	s.Node(grp).LockHideTransforms()
	if err := s.SetKeyframe(grp, 1, TangentStep); err == nil {
		t.Error("expected error keying a node with nothing keyable")
	}
	if err := s.SetKeyframe("missing", 1, TangentStep); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCutKeys(t *testing.T) {
	s := NewScene()
	grp, _ := s.CreateGroup("grp", "")
	for _, tm := range []int{1, 5, 9} {
		_ = s.SetKeyframe(grp, tm, TangentStep)
	}
	n, err := s.CutKeys(grp, 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("removed %d times, want 1", n)
	}
	times, _ := s.Keyframes(grp)
	if len(times) != 2 || times[0] != 1 || times[1] != 9 {
		t.Errorf("times = %v, want [1 9]", times)
	}
	if n, _ := s.CutKeys(grp, 20, 30); n != 0 {
		t.Errorf("cutting an empty range removed %d", n)
	}
}

func TestSetKeyframeAttrLongName(t *testing.T) {
	s := NewScene()
	grp, _ := s.CreateGroup("grp", "")
	if err := s.SetKeyframeAttr(grp, "translateY", 3, 1, TangentLinear); err != nil {
		t.Fatal(err)
	}
	if s.Node(grp).Curve("ty") == nil {
		t.Error("long channel name should key the short-named curve")
	}
}
