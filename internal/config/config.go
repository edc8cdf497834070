package config

import (
	"path/filepath"
	"sync"
)

// RenderSettings holds runtime render configuration
type RenderSettings struct {
	mu sync.RWMutex

	windowWidth  int
	windowHeight int
	windowTitle  string

	shadersDir   string
	vertexFile   string
	fragmentFile string

	swapInterval        int
	fpsLimit            int // 0 disables the limiter
	accumulateWhenStill bool

	mouseSensitivity float32 // degrees per pixel
	moveSpeed        float32 // units per second
}

var globalRenderSettings = &RenderSettings{
	windowWidth:         1024,
	windowHeight:        768,
	windowTitle:         "OpenGL Ray Tracer",
	shadersDir:          "assets/shaders",
	vertexFile:          "shader.vert",
	fragmentFile:        "shader.frag",
	swapInterval:        1,
	fpsLimit:            0,
	accumulateWhenStill: true,
	mouseSensitivity:    0.1,
	moveSpeed:           2.5,
}

// GetWindowSize returns the initial window size in screen coordinates
func GetWindowSize() (int, int) {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.windowWidth, globalRenderSettings.windowHeight
}

// GetWindowTitle returns the window title
func GetWindowTitle() string {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.windowTitle
}

// GetShadersDir returns the directory the shader sources are read from
func GetShadersDir() string {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.shadersDir
}

// SetShadersDir overrides the shader directory
func SetShadersDir(dir string) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.shadersDir = dir
}

// GetShaderPaths returns the vertex and fragment shader paths of the ray tracing program
func GetShaderPaths() (string, string) {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	s := globalRenderSettings
	return filepath.Join(s.shadersDir, s.vertexFile), filepath.Join(s.shadersDir, s.fragmentFile)
}

// GetSwapInterval returns the buffer swap interval (1 = vsync)
func GetSwapInterval() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.swapInterval
}

// GetFPSLimit returns the frame cap, 0 when uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap. Values <= 0 disable it.
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRenderSettings.fpsLimit = limit
}

// GetAccumulateWhenStill returns the accumulation toggle
func GetAccumulateWhenStill() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.accumulateWhenStill
}

// SetAccumulateWhenStill sets the accumulation toggle
func SetAccumulateWhenStill(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.accumulateWhenStill = enabled
}

// GetMouseSensitivity returns the look sensitivity in degrees per pixel
func GetMouseSensitivity() float32 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.mouseSensitivity
}

// SetMouseSensitivity sets the look sensitivity, clamped to [0.01, 1]
func SetMouseSensitivity(s float32) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if s < 0.01 {
		s = 0.01
	}
	if s > 1 {
		s = 1
	}

	globalRenderSettings.mouseSensitivity = s
}

// GetMoveSpeed returns the fly speed in units per second
func GetMoveSpeed() float32 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.moveSpeed
}

// SetMoveSpeed sets the fly speed. Negative values clamp to 0.
func SetMoveSpeed(speed float32) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	if speed < 0 {
		speed = 0
	}
	globalRenderSettings.moveSpeed = speed
}
