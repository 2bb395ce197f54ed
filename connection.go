package ghost

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Plug addresses one attribute of a node: "node.attr", "node.attr[i]" or
// "node.attr[i].child". Index is -1 when the attribute is not an array element.
type Plug struct {
	Node  string
	Attr  string
	Index int
	Child string
}

// ParsePlug parses a plug path.
func ParsePlug(path string) (Plug, error) {
	dot := strings.IndexByte(path, '.')
	if dot <= 0 || dot == len(path)-1 {
		return Plug{}, fmt.Errorf("ghost: plug %q: %w", path, ErrInvalidPlug)
	}
	p := Plug{Node: path[:dot], Index: -1}
	rest := path[dot+1:]
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		p.Child = rest[i+1:]
		rest = rest[:i]
		if p.Child == "" || strings.ContainsAny(p.Child, ".[]") {
			return Plug{}, fmt.Errorf("ghost: plug %q: %w", path, ErrInvalidPlug)
		}
	}
	if open := strings.IndexByte(rest, '['); open >= 0 {
		if !strings.HasSuffix(rest, "]") {
			return Plug{}, fmt.Errorf("ghost: plug %q: %w", path, ErrInvalidPlug)
		}
		idx, err := strconv.Atoi(rest[open+1 : len(rest)-1])
		if err != nil || idx < 0 {
			return Plug{}, fmt.Errorf("ghost: plug %q: bad index: %w", path, ErrInvalidPlug)
		}
		p.Index = idx
		rest = rest[:open]
	}
	if rest == "" {
		return Plug{}, fmt.Errorf("ghost: plug %q: %w", path, ErrInvalidPlug)
	}
	p.Attr = rest
	return p, nil
}

// String formats the plug back into its path.
func (p Plug) String() string {
	var b strings.Builder
	b.WriteString(p.Node)
	b.WriteByte('.')
	b.WriteString(p.Attr)
	if p.Index >= 0 {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(p.Index))
		b.WriteByte(']')
	}
	if p.Child != "" {
		b.WriteByte('.')
		b.WriteString(p.Child)
	}
	return b.String()
}

// Attribute names of the outline-render input slots and the streams that feed
// them.
const (
	attrInputSurface     = "inputSurface"
	attrSurface          = "surface"
	attrInputWorldMatrix = "inputWorldMatrix"
	attrOutMesh          = "outMesh"
	attrWorldMatrix      = "worldMatrix"
)

// SlotPlug returns the path of one stream of an outline node's input slot.
// child is "surface" or "inputWorldMatrix".
func SlotPlug(node string, index int, child string) string {
	return Plug{Node: node, Attr: attrInputSurface, Index: index, Child: child}.String()
}

// checkSource validates an output plug.
func (s *Scene) checkSource(p Plug) error {
	n, err := s.lookup(p.Node)
	if err != nil {
		return err
	}
	switch {
	case p.Attr == attrOutMesh && n.Type == NodeTypeMesh && p.Index < 0 && p.Child == "":
		return nil
	case p.Attr == attrWorldMatrix && p.Index <= 0 && p.Child == "":
		return nil
	}
	return fmt.Errorf("ghost: %s is not an output of a %s: %w", p, n.Type, ErrInvalidPlug)
}

// checkDestination validates an input plug.
func (s *Scene) checkDestination(p Plug) error {
	n, err := s.lookup(p.Node)
	if err != nil {
		return err
	}
	if n.Type == NodeTypeOutline && p.Attr == attrInputSurface && p.Index >= 0 &&
		(p.Child == attrSurface || p.Child == attrInputWorldMatrix) {
		return nil
	}
	return fmt.Errorf("ghost: %s is not an input of a %s: %w", p, n.Type, ErrInvalidPlug)
}

// Connect feeds the destination plug from the source plug. A destination
// takes one source; connecting into a fed plug fails with ErrAlreadyConnected.
func (s *Scene) Connect(src, dst string) error {
	sp, err := ParsePlug(src)
	if err != nil {
		return err
	}
	dp, err := ParsePlug(dst)
	if err != nil {
		return err
	}
	if err := s.checkSource(sp); err != nil {
		return err
	}
	if err := s.checkDestination(dp); err != nil {
		return err
	}
	if sp.Attr == attrWorldMatrix && sp.Index < 0 {
		sp.Index = 0
	}
	key := dp.String()
	if cur, ok := s.connections[key]; ok {
		return fmt.Errorf("ghost: %s already fed by %s: %w", key, cur, ErrAlreadyConnected)
	}
	s.connections[key] = sp.String()
	return nil
}

// Disconnect breaks whatever feeds the destination plug and reports whether a
// connection existed.
func (s *Scene) Disconnect(dst string) (bool, error) {
	dp, err := ParsePlug(dst)
	if err != nil {
		return false, err
	}
	key := dp.String()
	if _, ok := s.connections[key]; !ok {
		return false, nil
	}
	delete(s.connections, key)
	return true, nil
}

// ConnectionSource returns the plug feeding dst.
func (s *Scene) ConnectionSource(dst string) (string, bool) {
	dp, err := ParsePlug(dst)
	if err != nil {
		return "", false
	}
	src, ok := s.connections[dp.String()]
	return src, ok
}

// ConnectedIndices returns, sorted, the indices of an array attribute of node
// that have at least one connected element.
func (s *Scene) ConnectedIndices(node, attr string) []int {
	seen := make(map[int]struct{})
	for dst := range s.connections {
		p, err := ParsePlug(dst)
		if err != nil || p.Node != node || p.Attr != attr || p.Index < 0 {
			continue
		}
		seen[p.Index] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Slot is one populated input slot of an outline-render node.
type Slot struct {
	Index       int
	Surface     string // source plug feeding the geometry stream, "" if unfed
	WorldMatrix string // source plug feeding the transform stream, "" if unfed
}

// InputSlots returns every populated input slot of an outline node in index
// order.
func (s *Scene) InputSlots(node string) []Slot {
	idx := s.ConnectedIndices(node, attrInputSurface)
	slots := make([]Slot, len(idx))
	for i, index := range idx {
		slots[i].Index = index
		slots[i].Surface = s.connections[SlotPlug(node, index, attrSurface)]
		slots[i].WorldMatrix = s.connections[SlotPlug(node, index, attrInputWorldMatrix)]
	}
	return slots
}
