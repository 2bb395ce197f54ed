package ghost

import (
	"fmt"
	"image/color"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default shading color of mesh shapes.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector, used for polygon outlines and screen-space offsets.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector used for positions, rotations (degrees) and scales.
type Vec3 struct {
	X, Y, Z float64
}

// NodeType distinguishes the role of a Node in the graph.
type NodeType uint8

const (
	NodeTypeTransform NodeType = iota // transform or empty group, no geometry of its own
	NodeTypeMesh                      // geometry shape, child of a transform
	NodeTypeOutline                   // outline-render shape with indexed input surface slots
)

// String returns the host-style type name.
func (t NodeType) String() string {
	switch t {
	case NodeTypeTransform:
		return "transform"
	case NodeTypeMesh:
		return "mesh"
	case NodeTypeOutline:
		return "outlineRender"
	default:
		return fmt.Sprintf("NodeType(%d)", uint8(t))
	}
}

// isShape reports whether nodes of this type sit under a transform.
func (t NodeType) isShape() bool {
	return t == NodeTypeMesh || t == NodeTypeOutline
}

// Channel identifies one of the nine local transform channels.
type Channel uint8

const (
	ChannelTranslateX Channel = iota
	ChannelTranslateY
	ChannelTranslateZ
	ChannelRotateX
	ChannelRotateY
	ChannelRotateZ
	ChannelScaleX
	ChannelScaleY
	ChannelScaleZ

	numChannels = 9
)

// channelAttrs maps each channel to its short attribute name.
var channelAttrs = [numChannels]string{"tx", "ty", "tz", "rx", "ry", "rz", "sx", "sy", "sz"}

// String returns the short attribute name, e.g. "tx".
func (c Channel) String() string {
	if int(c) < numChannels {
		return channelAttrs[c]
	}
	return fmt.Sprintf("Channel(%d)", uint8(c))
}

// AllChannels lists every transform channel in attribute order.
var AllChannels = [numChannels]Channel{
	ChannelTranslateX, ChannelTranslateY, ChannelTranslateZ,
	ChannelRotateX, ChannelRotateY, ChannelRotateZ,
	ChannelScaleX, ChannelScaleY, ChannelScaleZ,
}

// channelByAttr resolves a short or long channel attribute name.
func channelByAttr(attr string) (Channel, bool) {
	switch attr {
	case "tx", "translateX":
		return ChannelTranslateX, true
	case "ty", "translateY":
		return ChannelTranslateY, true
	case "tz", "translateZ":
		return ChannelTranslateZ, true
	case "rx", "rotateX":
		return ChannelRotateX, true
	case "ry", "rotateY":
		return ChannelRotateY, true
	case "rz", "rotateZ":
		return ChannelRotateZ, true
	case "sx", "scaleX":
		return ChannelScaleX, true
	case "sy", "scaleY":
		return ChannelScaleY, true
	case "sz", "scaleZ":
		return ChannelScaleZ, true
	}
	return 0, false
}

// ChannelFlags are the per-channel manipulation flags of a transform.
type ChannelFlags struct {
	Locked     bool // value cannot be set
	Keyable    bool // included when keying the node as a whole
	ChannelBox bool // shown in the channel box even when not keyable
}

// defaultChannelFlags is the state of a freshly created transform channel.
var defaultChannelFlags = ChannelFlags{Keyable: true}

// lockedHidden locks a channel and removes it from manipulation UIs.
var lockedHidden = ChannelFlags{Locked: true}

// DisplayType is a display layer's drawing mode.
type DisplayType uint8

const (
	DisplayNormal    DisplayType = iota // selectable, normal shading
	DisplayTemplate                     // wireframe, not selectable
	DisplayReference                    // shaded, not selectable
)

// String returns the display type name.
func (d DisplayType) String() string {
	switch d {
	case DisplayNormal:
		return "normal"
	case DisplayTemplate:
		return "template"
	case DisplayReference:
		return "reference"
	default:
		return fmt.Sprintf("DisplayType(%d)", uint8(d))
	}
}

// TangentType controls how an animation curve leaves a key.
type TangentType uint8

const (
	TangentStep   TangentType = iota // hold the key value until the next key
	TangentLinear                    // straight interpolation to the next key
	TangentEase                      // ease-in-out interpolation to the next key
)

// String returns the tangent name.
func (t TangentType) String() string {
	switch t {
	case TangentStep:
		return "step"
	case TangentLinear:
		return "linear"
	case TangentEase:
		return "ease"
	default:
		return fmt.Sprintf("TangentType(%d)", uint8(t))
	}
}
