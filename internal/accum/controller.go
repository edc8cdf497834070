// Package accum decides, frame to frame, whether the ray tracer may blend
// with the previously accumulated image or has to start over.
package accum

import "strings"

// Reason is a bit set of the rules that forced a reset
type Reason uint8

const (
	ReasonCameraMoved Reason = 1 << iota
	ReasonSunChanged
	ReasonSkyChanged
	ReasonBufferInvalid
	ReasonStillDisabled
)

func (r Reason) String() string {
	if r == 0 {
		return "none"
	}
	var parts []string
	if r&ReasonCameraMoved != 0 {
		parts = append(parts, "camera")
	}
	if r&ReasonSunChanged != 0 {
		parts = append(parts, "sun")
	}
	if r&ReasonSkyChanged != 0 {
		parts = append(parts, "sky")
	}
	if r&ReasonBufferInvalid != 0 {
		parts = append(parts, "invalid-buffer")
	}
	if r&ReasonStillDisabled != 0 {
		parts = append(parts, "still-disabled")
	}
	return strings.Join(parts, "|")
}

// State is the accumulation bookkeeping owned by the frame loop.
// FrameIndex is always >= 1.
type State struct {
	FrameIndex    uint32
	Valid         bool
	Width, Height int
}

// Inputs are the per-frame facts the controller decides on
type Inputs struct {
	CameraChanged bool
	SunChanged    bool
	SkyChanged    bool

	// AccumulateWhenStill mirrors the settings toggle. When it is off and the
	// camera is static every frame resets.
	AccumulateWhenStill bool
}

// Decision is what the shader gets told for the current frame
type Decision struct {
	FrameIndex  uint32
	UsePrevious bool
	Reset       bool
	Reason      Reason
}

// Controller is the reset/accumulate state machine
type Controller struct {
	state State
}

// NewController starts in the resetting state for a framebuffer of the given size
func NewController(width, height int) *Controller {
	return &Controller{state: State{FrameIndex: 1, Width: width, Height: height}}
}

// State returns a copy of the current state
func (c *Controller) State() State {
	return c.state
}

// Resize records the framebuffer size. It returns true when the size differs
// from the stored one, in which case the accumulated image is discarded and
// the caller must reallocate the previous-frame texture.
func (c *Controller) Resize(width, height int) bool {
	if width == c.state.Width && height == c.state.Height {
		return false
	}
	c.state.Width = width
	c.state.Height = height
	c.state.Valid = false
	c.state.FrameIndex = 1
	return true
}

// Advance evaluates the reset rules for this frame and updates the state
func (c *Controller) Advance(in Inputs) Decision {
	var reason Reason
	if in.CameraChanged {
		reason |= ReasonCameraMoved
	}
	if in.SunChanged {
		reason |= ReasonSunChanged
	}
	if in.SkyChanged {
		reason |= ReasonSkyChanged
	}
	if !c.state.Valid {
		reason |= ReasonBufferInvalid
	}
	if !in.AccumulateWhenStill && !in.CameraChanged {
		reason |= ReasonStillDisabled
	}

	reset := reason != 0
	if reset {
		c.state.FrameIndex = 1
		c.state.Valid = false
	} else {
		c.state.FrameIndex++
	}

	return Decision{
		FrameIndex:  c.state.FrameIndex,
		UsePrevious: !reset && c.state.Valid,
		Reset:       reset,
		Reason:      reason,
	}
}

// MarkCopied records that the freshly drawn frame is now in the previous-frame texture
func (c *Controller) MarkCopied() {
	c.state.Valid = true
}
