package ghost

// --- Polygon ---

// NewPolygonGeometry creates a flat polygon in the XY plane from the given
// outline. Uses fan triangulation (convex polygons). Fewer than three points
// yield an empty geometry.
func NewPolygonGeometry(points []Vec2) *Geometry {
	pts, inds := buildPolygonFan(points)
	return &Geometry{Points: pts, Indices: inds}
}

// buildPolygonFan generates points and indices for a fan-triangulated polygon.
// N points, 3*(N-2) indices.
func buildPolygonFan(points []Vec2) ([]Vec3, []uint16) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}

	pts := make([]Vec3, n)
	inds := make([]uint16, (n-2)*3)

	for i, p := range points {
		pts[i] = Vec3{X: p.X, Y: p.Y}
	}

	// Fan triangulation: point 0 is the hub.
	for i := 0; i < n-2; i++ {
		inds[i*3+0] = 0
		inds[i*3+1] = uint16(i + 1)
		inds[i*3+2] = uint16(i + 2)
	}

	return pts, inds
}

// --- Box ---

// boxFaces lists the corner indices of each quad face of a unit box.
var boxFaces = [6][4]uint16{
	{0, 1, 2, 3}, // -Z
	{5, 4, 7, 6}, // +Z
	{4, 0, 3, 7}, // -X
	{1, 5, 6, 2}, // +X
	{3, 2, 6, 7}, // +Y
	{4, 5, 1, 0}, // -Y
}

// NewBoxGeometry creates an axis-aligned box centered on the origin.
func NewBoxGeometry(w, h, d float64) *Geometry {
	hw, hh, hd := w/2, h/2, d/2
	pts := []Vec3{
		{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {-hw, hh, -hd},
		{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd},
	}
	inds := make([]uint16, 0, 36)
	for _, f := range boxFaces {
		inds = append(inds, f[0], f[1], f[2], f[0], f[2], f[3])
	}
	return &Geometry{Points: pts, Indices: inds}
}
