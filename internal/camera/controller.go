package camera

import (
	"gl-raytracer/internal/input"
	"gl-raytracer/internal/scene"
)

// Input is the subset of the input manager the controller reads
type Input interface {
	IsActive(action input.Action) bool
	JustPressed(action input.Action) bool
}

const maxPitch = 89.0

// Controller turns mouse and keyboard input into fly-camera motion.
// It only moves the camera while input is captured.
type Controller struct {
	Captured    bool
	Sensitivity float32 // degrees per pixel
	Speed       float32 // units per second

	firstMouse bool
	lastX      float64
	lastY      float64
}

// NewController creates a controller with input released
func NewController(sensitivity, speed float32) *Controller {
	return &Controller{
		Sensitivity: sensitivity,
		Speed:       speed,
		firstMouse:  true,
	}
}

// Update applies one frame of input to cam. cursorX/cursorY is the current
// cursor position in screen coordinates and dt the frame time in seconds.
// It returns true when the capture mode was toggled this frame so the caller
// can switch the cursor mode.
func (c *Controller) Update(cam *scene.Camera, in Input, cursorX, cursorY float64, dt float32) bool {
	toggled := false
	if in.JustPressed(input.ActionToggleCapture) {
		c.Captured = !c.Captured
		if c.Captured {
			c.firstMouse = true
		}
		toggled = true
	}

	if !c.Captured {
		return toggled
	}

	c.look(cam, cursorX, cursorY)
	c.move(cam, in, dt)
	return toggled
}

func (c *Controller) look(cam *scene.Camera, xpos, ypos float64) {
	if c.firstMouse {
		c.lastX = xpos
		c.lastY = ypos
		c.firstMouse = false
	}

	xoffset := float32(xpos - c.lastX)
	// Reversed since y-coordinates go from top to bottom
	yoffset := float32(c.lastY - ypos)
	c.lastX = xpos
	c.lastY = ypos

	cam.Yaw += xoffset * c.Sensitivity
	cam.Pitch += yoffset * c.Sensitivity

	// Constrain pitch
	if cam.Pitch > maxPitch {
		cam.Pitch = maxPitch
	}
	if cam.Pitch < -maxPitch {
		cam.Pitch = -maxPitch
	}

	cam.Direction = scene.DirectionFromAngles(cam.Yaw, cam.Pitch)
}

func (c *Controller) move(cam *scene.Camera, in Input, dt float32) {
	step := c.Speed * dt
	forward := cam.Direction.Mul(step)
	right := scene.Right(cam.Direction).Mul(step)

	if in.IsActive(input.ActionMoveForward) {
		cam.Position = cam.Position.Add(forward)
	}
	if in.IsActive(input.ActionMoveBackward) {
		cam.Position = cam.Position.Sub(forward)
	}
	if in.IsActive(input.ActionMoveRight) {
		cam.Position = cam.Position.Add(right)
	}
	if in.IsActive(input.ActionMoveLeft) {
		cam.Position = cam.Position.Sub(right)
	}
	if in.IsActive(input.ActionMoveUp) {
		cam.Position[1] += step
	}
	if in.IsActive(input.ActionMoveDown) {
		cam.Position[1] -= step
	}
}
