package ghost

import (
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// --- Keyframe curves ---

// Keyframe is one key of an AnimCurve.
type Keyframe struct {
	Time    int
	Value   float64
	Tangent TangentType // how the curve leaves this key
}

// AnimCurve is a sorted list of keys driving a single attribute.
type AnimCurve struct {
	keys []Keyframe
}

// SetKey inserts a key, replacing any key already at the same time.
func (c *AnimCurve) SetKey(k Keyframe) {
	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Time >= k.Time })
	if i < len(c.keys) && c.keys[i].Time == k.Time {
		c.keys[i] = k
		return
	}
	c.keys = append(c.keys, Keyframe{})
	copy(c.keys[i+1:], c.keys[i:])
	c.keys[i] = k
}

// Cut removes every key with from <= Time <= to and returns how many were
// removed.
func (c *AnimCurve) Cut(from, to int) int {
	kept := c.keys[:0]
	removed := 0
	for _, k := range c.keys {
		if k.Time >= from && k.Time <= to {
			removed++
			continue
		}
		kept = append(kept, k)
	}
	c.keys = kept
	return removed
}

// Keys returns the keys in time order. The returned slice MUST NOT be mutated.
func (c *AnimCurve) Keys() []Keyframe {
	return c.keys
}

// Len returns the number of keys.
func (c *AnimCurve) Len() int {
	return len(c.keys)
}

// Evaluate returns the curve value at time t. Before the first key and after
// the last the curve holds the end values. An empty curve evaluates to 0.
func (c *AnimCurve) Evaluate(t float64) float64 {
	n := len(c.keys)
	if n == 0 {
		return 0
	}
	if t <= float64(c.keys[0].Time) {
		return c.keys[0].Value
	}
	if t >= float64(c.keys[n-1].Time) {
		return c.keys[n-1].Value
	}
	i := sort.Search(n, func(i int) bool { return float64(c.keys[i].Time) > t }) - 1
	a, b := c.keys[i], c.keys[i+1]

	var fn ease.TweenFunc
	switch a.Tangent {
	case TangentLinear:
		fn = ease.Linear
	case TangentEase:
		fn = ease.InOutQuad
	default:
		return a.Value
	}
	tw := gween.New(float32(a.Value), float32(b.Value), float32(b.Time-a.Time), fn)
	v, _ := tw.Set(float32(t - float64(a.Time)))
	return float64(v)
}

// --- Tweens ---

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenAttr, TweenColor) and call
// Update(dt) each frame. If the target node is disposed, the group stops
// immediately.
//
// There is no global animation manager; callers run Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(i int, v float64)
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target.
// If the target node has been disposed, Done is set to true and no writes
// occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.apply(i, float64(val))
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenAttr creates a TweenGroup that animates a numeric attribute of node to
// the given value over the specified duration using the easing function.
func TweenAttr(node *Node, attr string, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.Attr(attr)
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(from), float32(to), duration, fn)
	g.apply = func(_ int, v float64) { _ = node.SetAttr(attr, v) }
	return g
}

// TweenColor creates a TweenGroup that animates all four components of
// node.Color (R, G, B, A) to the target color over the specified duration.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: node}
	g.tweens[0] = gween.New(float32(node.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(node.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(node.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(node.Color.A), float32(to.A), duration, fn)
	fields := [4]*float64{&node.Color.R, &node.Color.G, &node.Color.B, &node.Color.A}
	g.apply = func(i int, v float64) { *fields[i] = v }
	return g
}
