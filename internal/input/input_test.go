package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestToggleIsEdgeTriggered(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyTab, glfw.Press)
	if !im.JustPressed(ActionToggleCapture) {
		t.Fatalf("Expected JustPressed after press")
	}
	im.PostUpdate()

	// Holding the key repeats but must not produce another edge
	im.HandleKeyEvent(glfw.KeyTab, glfw.Repeat)
	if im.JustPressed(ActionToggleCapture) {
		t.Errorf("Expected no edge while held")
	}
	if !im.IsActive(ActionToggleCapture) {
		t.Errorf("Expected action to stay active while held")
	}
	im.PostUpdate()

	im.HandleKeyEvent(glfw.KeyTab, glfw.Release)
	if !im.JustReleased(ActionToggleCapture) || im.IsActive(ActionToggleCapture) {
		t.Errorf("Expected release edge")
	}
	im.PostUpdate()

	im.HandleKeyEvent(glfw.KeyTab, glfw.Press)
	if !im.JustPressed(ActionToggleCapture) {
		t.Errorf("Expected a new edge after release and press")
	}
}

func TestDefaultBindings(t *testing.T) {
	im := NewInputManager()
	keys := map[glfw.Key]Action{
		glfw.KeyW:         ActionMoveForward,
		glfw.KeyS:         ActionMoveBackward,
		glfw.KeyA:         ActionMoveLeft,
		glfw.KeyD:         ActionMoveRight,
		glfw.KeySpace:     ActionMoveUp,
		glfw.KeyLeftShift: ActionMoveDown,
		glfw.KeyEscape:    ActionQuit,
	}
	for key, action := range keys {
		im.HandleKeyEvent(key, glfw.Press)
		if !im.IsActive(action) {
			t.Errorf("key %v: expected action %d active", key, action)
		}
	}

	im.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)
	if !im.JustPressed(ActionMouseLeft) {
		t.Errorf("Expected mouse left edge")
	}
}

func TestUnboundKeyIgnored(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyF12, glfw.Press)
	for a := Action(0); a < ActionCount; a++ {
		if im.IsActive(a) {
			t.Errorf("action %d unexpectedly active", a)
		}
	}
	if im.IsActive(ActionCount) || im.JustPressed(-1) {
		t.Errorf("Out-of-range actions must report false")
	}
}

func TestUnbindKey(t *testing.T) {
	im := NewInputManager()
	im.UnbindKey(glfw.KeyW)
	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	if im.IsActive(ActionMoveForward) {
		t.Errorf("Expected unbound key to be ignored")
	}
	im.BindKey(glfw.KeyUp, ActionMoveForward)
	im.HandleKeyEvent(glfw.KeyUp, glfw.Press)
	if !im.IsActive(ActionMoveForward) {
		t.Errorf("Expected rebound key to drive the action")
	}
}
