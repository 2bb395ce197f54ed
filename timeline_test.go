package ghost

import (
	"errors"
	"testing"
)

func TestRecordKeyframe(t *testing.T) {
	s := newTestSession(t)
	scene := sceneOf(s)

	holder, err := s.RecordKeyframe("Ann", 4)
	if err != nil {
		t.Fatal(err)
	}
	if holder != "Ann_keyholder" {
		t.Errorf("holder = %q", holder)
	}
	if p, _ := scene.ParentOf(holder); p != s.Timeline() {
		t.Errorf("parent = %q, want timeline", p)
	}
	n := scene.Node(holder)
	assertLocked(t, n)
	if c, _ := n.StringAttr(attrCharacter); c != "Ann" {
		t.Errorf("character stamp = %q", c)
	}
	for _, attr := range n.curveAttrs() {
		for _, k := range n.Curve(attr).Keys() {
			if k.Tangent != TangentStep {
				t.Errorf("%s key at %d has %s tangent, want step", attr, k.Time, k.Tangent)
			}
		}
	}
}

func TestRecordKeyframeRepeatAndLocked(t *testing.T) {
	s := newTestSession(t)
	for _, tm := range []int{4, 4, 8} {
		if _, err := s.RecordKeyframe("Ann", tm); err != nil {
			t.Fatalf("key at %d: %v", tm, err)
		}
	}
	times, err := s.GhostTimes("Ann")
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 2 || times[0] != 4 || times[1] != 8 {
		t.Errorf("times = %v, want [4 8]", times)
	}
}

func TestGhostTimesUnknownCharacter(t *testing.T) {
	s := newTestSession(t)
	times, err := s.GhostTimes("nobody")
	if err != nil || times != nil {
		t.Errorf("GhostTimes = %v, %v, want nil, nil", times, err)
	}
}

func TestSelectTimeline(t *testing.T) {
	s := newTestSession(t)
	if err := s.SelectTimeline("Ann"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	_, _ = s.CreateAtCurrentTime("Ann", []string{"hero"})
	if err := s.SelectTimeline("Ann"); err != nil {
		t.Fatal(err)
	}
	if sel := sceneOf(s).Selection(); len(sel) != 1 || sel[0] != "Ann_keyholder" {
		t.Errorf("selection = %v", sel)
	}
}

// A snapshot exists at (c, t) iff c's KeyHolder has a key at t.
func TestKeyframeSnapshotParity(t *testing.T) {
	s := newTestSession(t)
	scene := sceneOf(s)
	steps := []func() error{
		func() error { _, err := s.CreateOverRange("Ann", []string{"hero"}, 1, 9, 3); return err },
		func() error { _, err := s.CreateOverRange("AnnB", []string{"hero", "blade"}, 2, 6, 2); return err },
		func() error { scene.SetCurrentTime(4); _, err := s.DeleteAtCurrentTime("Ann"); return err },
		func() error { _, err := s.CreateAtTime("Ann", []string{"blade"}, 7); return err },
		func() error { _, err := s.DeleteByCharacter("AnnB"); return err },
		func() error { _, err := s.CreateAtTime("Cy", []string{"hero"}, 30); return err },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		assertParity(t, s)
	}
}

func assertParity(t *testing.T, s *Session) {
	t.Helper()
	live := map[string]map[int]bool{}
	for _, sn := range s.Snapshots() {
		if live[sn.Character] == nil {
			live[sn.Character] = map[int]bool{}
		}
		live[sn.Character][sn.Time] = true
	}
	for _, holder := range s.KeyHolders() {
		c, _, _ := s.graph.StringAttr(holder, attrCharacter)
		times, _ := s.graph.Keyframes(holder)
		if len(times) != len(live[c]) {
			t.Errorf("%s keys %v, live snapshots %v", c, times, live[c])
		}
		for _, tm := range times {
			if !live[c][tm] {
				t.Errorf("%s keyed at %d without a snapshot", c, tm)
			}
		}
	}
	for c, times := range live {
		got, _ := s.GhostTimes(c)
		if len(got) != len(times) {
			t.Errorf("%s has snapshots %v but keys %v", c, times, got)
		}
	}
}
