package app

import (
	"fmt"

	"gl-raytracer/internal/config"
	"gl-raytracer/internal/input"
	"gl-raytracer/internal/logger"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// GLFWWindow adapts a *glfw.Window to the Window interface
type GLFWWindow struct {
	*glfw.Window
}

// FramebufferSize returns the framebuffer size in pixels
func (w GLFWWindow) FramebufferSize() (int, int) {
	return w.GetFramebufferSize()
}

// Size returns the window size in screen coordinates
func (w GLFWWindow) Size() (int, int) {
	return w.GetSize()
}

// CursorPos returns the cursor position in screen coordinates
func (w GLFWWindow) CursorPos() (float64, float64) {
	return w.GetCursorPos()
}

// SetCaptured hides and locks the cursor while captured
func (w GLFWWindow) SetCaptured(captured bool) {
	if captured {
		w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// PollEvents processes pending window events
func (w GLFWWindow) PollEvents() {
	glfw.PollEvents()
}

// Time returns seconds since GLFW was initialized
func (w GLFWWindow) Time() float64 {
	return glfw.GetTime()
}

// InitGLFW initializes GLFW. The binding reports GLFW errors as returned
// errors, so there is no separate error callback to install.
func InitGLFW() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	logger.Log.Debug("glfw initialized", zap.String("version", glfw.GetVersionString()))
	return nil
}

// SetupWindow creates the window with a current OpenGL 4.1 core context.
// The caller loads the GL function pointers afterwards.
func SetupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	width, height := config.GetWindowSize()
	window, err := glfw.CreateWindow(width, height, config.GetWindowTitle(), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	glfw.SwapInterval(config.GetSwapInterval())
	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)

	return window, nil
}

// SetupInputHandlers feeds keyboard and mouse button events into the input manager
func SetupInputHandlers(window *glfw.Window, im *input.InputManager) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
}
