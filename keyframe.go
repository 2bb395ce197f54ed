package ghost

import "fmt"

// SetKeyframe keys the named node at time t with the given tangent. Every
// attribute that already has a curve is keyed, locked or not, along with every
// unlocked keyable channel. Each key stores the attribute's current value.
func (s *Scene) SetKeyframe(name string, t int, tangent TangentType) error {
	n, err := s.lookup(name)
	if err != nil {
		return err
	}
	keyed := 0
	for _, attr := range n.curveAttrs() {
		n.curves[attr].SetKey(Keyframe{Time: t, Value: n.Attr(attr), Tangent: tangent})
		keyed++
	}
	for _, c := range AllChannels {
		f := n.channels[c]
		if f.Locked || !f.Keyable {
			continue
		}
		attr := c.String()
		if n.Curve(attr) != nil {
			continue
		}
		n.ensureCurve(attr).SetKey(Keyframe{Time: t, Value: n.ChannelValue(c), Tangent: tangent})
		keyed++
	}
	if keyed == 0 {
		return fmt.Errorf("ghost: %q has no keyable attributes", name)
	}
	return nil
}

// SetKeyframeAttr keys one attribute of the named node at time t. Channel
// attributes may use short or long names.
func (s *Scene) SetKeyframeAttr(name, attr string, t int, value float64, tangent TangentType) error {
	n, err := s.lookup(name)
	if err != nil {
		return err
	}
	if c, ok := channelByAttr(attr); ok {
		attr = c.String()
	}
	n.ensureCurve(attr).SetKey(Keyframe{Time: t, Value: value, Tangent: tangent})
	return nil
}

// CutKeys removes every key of the named node with from <= time <= to and
// returns the number of distinct times removed.
func (s *Scene) CutKeys(name string, from, to int) (int, error) {
	n, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	before := n.keyTimes()
	for _, c := range n.curves {
		c.Cut(from, to)
	}
	return len(before) - len(n.keyTimes()), nil
}

// Keyframes returns the sorted times at which the named node has a key on
// any attribute.
func (s *Scene) Keyframes(name string) ([]int, error) {
	n, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	return n.keyTimes(), nil
}
