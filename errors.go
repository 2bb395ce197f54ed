package ghost

import "errors"

// Sentinel errors returned (wrapped) by the scene graph and the session.
// Test for them with errors.Is.
var (
	ErrNotFound         = errors.New("ghost: node not found")
	ErrChannelLocked    = errors.New("ghost: channel is locked")
	ErrInvalidPlug      = errors.New("ghost: invalid plug")
	ErrAlreadyConnected = errors.New("ghost: destination plug already connected")
	ErrInvalidIncrement = errors.New("ghost: increment must be positive")
	ErrMeshTooLarge     = errors.New("ghost: merged mesh exceeds 65535 vertices")
	ErrCycle            = errors.New("ghost: parenting would create a cycle")
	ErrNotShape         = errors.New("ghost: node has no shape")
)
