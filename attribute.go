package ghost

import "sort"

// Attr returns the value of a numeric attribute. Channel names ("tx",
// "translateX", ...) and "visibility" read the corresponding fields. Unknown
// attributes read as 0.
func (n *Node) Attr(name string) float64 {
	if c, ok := channelByAttr(name); ok {
		return n.ChannelValue(c)
	}
	if name == "visibility" || name == "v" {
		if n.Visible {
			return 1
		}
		return 0
	}
	return n.attrs[name]
}

// HasAttr reports whether a numeric attribute has been set on the node.
// Channels and visibility always exist.
func (n *Node) HasAttr(name string) bool {
	if _, ok := channelByAttr(name); ok {
		return true
	}
	if name == "visibility" || name == "v" {
		return true
	}
	_, ok := n.attrs[name]
	return ok
}

// SetAttr sets a numeric attribute, creating it on first use. Writing a
// locked channel fails with ErrChannelLocked.
func (n *Node) SetAttr(name string, v float64) error {
	if c, ok := channelByAttr(name); ok {
		return n.SetChannel(c, v)
	}
	if name == "visibility" || name == "v" {
		n.Visible = v != 0
		return nil
	}
	if n.attrs == nil {
		n.attrs = make(map[string]float64)
	}
	n.attrs[name] = v
	return nil
}

// BoolAttr reads a numeric attribute as a boolean.
func (n *Node) BoolAttr(name string) bool {
	return n.Attr(name) != 0
}

// SetBoolAttr stores a boolean as 0 or 1.
func (n *Node) SetBoolAttr(name string, v bool) error {
	if v {
		return n.SetAttr(name, 1)
	}
	return n.SetAttr(name, 0)
}

// StringAttr returns a string attribute and whether it is set.
func (n *Node) StringAttr(name string) (string, bool) {
	v, ok := n.strAttrs[name]
	return v, ok
}

// SetStringAttr sets a string attribute.
func (n *Node) SetStringAttr(name, v string) {
	if n.strAttrs == nil {
		n.strAttrs = make(map[string]string)
	}
	n.strAttrs[name] = v
}

// copyAttrs copies every attribute map of src into n.
func (n *Node) copyAttrs(src *Node) {
	if len(src.attrs) > 0 {
		n.attrs = make(map[string]float64, len(src.attrs))
		for k, v := range src.attrs {
			n.attrs[k] = v
		}
	}
	if len(src.strAttrs) > 0 {
		n.strAttrs = make(map[string]string, len(src.strAttrs))
		for k, v := range src.strAttrs {
			n.strAttrs[k] = v
		}
	}
}

// --- Curves ---

// Curve returns the animation curve driving attr, or nil.
func (n *Node) Curve(attr string) *AnimCurve {
	return n.curves[attr]
}

// ensureCurve returns the curve driving attr, creating it if needed.
func (n *Node) ensureCurve(attr string) *AnimCurve {
	if n.curves == nil {
		n.curves = make(map[string]*AnimCurve)
	}
	c := n.curves[attr]
	if c == nil {
		c = &AnimCurve{}
		n.curves[attr] = c
	}
	return c
}

// curveAttrs returns the names of the node's animated attributes, sorted.
func (n *Node) curveAttrs() []string {
	names := make([]string, 0, len(n.curves))
	for k := range n.curves {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// keyTimes returns the sorted union of key times across every curve.
func (n *Node) keyTimes() []int {
	seen := make(map[int]struct{})
	for _, c := range n.curves {
		for _, k := range c.keys {
			seen[k.Time] = struct{}{}
		}
	}
	times := make([]int, 0, len(seen))
	for t := range seen {
		times = append(times, t)
	}
	sort.Ints(times)
	return times
}

// evaluateCurves writes every curve's value at time t onto its attribute.
// Locked channels are driven too.
func (n *Node) evaluateCurves(t int) {
	for attr, c := range n.curves {
		if c.Len() == 0 {
			continue
		}
		v := c.Evaluate(float64(t))
		if ch, ok := channelByAttr(attr); ok {
			n.setChannel(ch, v)
			continue
		}
		_ = n.SetAttr(attr, v)
	}
}
