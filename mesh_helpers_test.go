package ghost

import "testing"

func TestNewPolygonGeometryFan(t *testing.T) {
	g := NewPolygonGeometry([]Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	if len(g.Points) != 4 {
		t.Fatalf("points = %d, want 4", len(g.Points))
	}
	want := []uint16{0, 1, 2, 0, 2, 3}
	if len(g.Indices) != len(want) {
		t.Fatalf("indices = %v, want %v", g.Indices, want)
	}
	for i := range want {
		if g.Indices[i] != want[i] {
			t.Errorf("index %d = %d, want %d", i, g.Indices[i], want[i])
		}
	}
	if g.NumTriangles() != 2 {
		t.Errorf("triangles = %d, want 2", g.NumTriangles())
	}
}

func TestNewPolygonGeometryDegenerate(t *testing.T) {
	g := NewPolygonGeometry([]Vec2{{0, 0}, {1, 0}})
	if g.NumTriangles() != 0 || len(g.Points) != 0 {
		t.Errorf("two points should give empty geometry, got %+v", g)
	}
}

func TestNewBoxGeometry(t *testing.T) {
	g := NewBoxGeometry(2, 2, 2)
	if len(g.Points) != 8 {
		t.Errorf("points = %d, want 8", len(g.Points))
	}
	if g.NumTriangles() != 12 {
		t.Errorf("triangles = %d, want 12", g.NumTriangles())
	}
	for _, idx := range g.Indices {
		if int(idx) >= len(g.Points) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}
