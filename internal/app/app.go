package app

import (
	"time"

	"gl-raytracer/internal/accum"
	"gl-raytracer/internal/camera"
	"gl-raytracer/internal/config"
	"gl-raytracer/internal/input"
	"gl-raytracer/internal/logger"
	"gl-raytracer/internal/profiling"
	"gl-raytracer/internal/scene"
	"gl-raytracer/internal/ui"

	"go.uber.org/zap"
)

// Uniform names read by the ray tracing fragment shader
const (
	UniformTime          = "iTime"
	UniformResolution    = "iResolution"
	UniformFrameIndex    = "u_frame_index"
	UniformUsePrevious   = "u_use_prev"
	UniformPrevFrame     = "u_prev_frame"
	UniformCameraPos     = "u_camera.position"
	UniformCameraDir     = "u_camera.direction"
	UniformCameraFOV     = "u_camera.fov"
	UniformSunDirection  = "u_sun_direction"
	UniformSunColor      = "u_sun_color"
	UniformSunIntensity  = "u_sun_intensity"
	UniformSkyColor      = "u_sky_color"
	UniformSkyIntensity  = "u_sky_intensity"
	prevFrameTextureUnit = 0
)

// Frames whose CPU work takes longer than this are logged with a profile breakdown
var slowFrameThreshold = 50 * time.Millisecond

// Window is the platform window the loop drives
type Window interface {
	FramebufferSize() (int, int)
	Size() (int, int)
	CursorPos() (float64, float64)
	SetCaptured(captured bool)
	ShouldClose() bool
	SetShouldClose(close bool)
	SwapBuffers()
	PollEvents()
	Time() float64
}

// Program is the ray tracing shader program
type Program interface {
	Use()
	SetBool(name string, value bool)
	SetInt(name string, value int32)
	SetFloat(name string, value float32)
	SetVector2(name string, x, y float32)
	SetVector3(name string, x, y, z float32)
}

// FrameTarget is the previous-frame texture
type FrameTarget interface {
	Resize(width, height int)
	Bind(unit uint32)
	CaptureFramebuffer(width, height int)
}

// Screen clears the viewport and draws the full-screen triangle
type Screen interface {
	Begin(width, height int)
	Draw()
}

// Overlay is the immediate-mode UI drawn on top of the traced image
type Overlay interface {
	BeginFrame(width, height int, cursor ui.Cursor)
	PerformanceWindow(stats ui.Stats)
	SettingsPanel(settings ui.Settings) bool
	Hint(text string)
	Flush()
}

// Deps are the collaborators of the frame loop
type Deps struct {
	Window  Window
	Input   *input.InputManager
	Program Program
	Target  FrameTarget
	Screen  Screen
	Overlay Overlay
}

// App owns the scene state and runs the per-frame render sequence
type App struct {
	window  Window
	input   *input.InputManager
	program Program
	target  FrameTarget
	screen  Screen
	overlay Overlay

	cam *camera.Controller

	camera scene.Camera
	sun    scene.Sun
	sky    scene.Sky

	detector scene.Detector
	accum    *accum.Controller
	last     accum.Decision

	fpsLimiter *FPSLimiter
	lastTime   float64
	frameTime  float32
	fps        float32
}

// New creates the application with default scene state. The previous-frame
// target is expected to match the current framebuffer size.
func New(d Deps) *App {
	fbW, fbH := d.Window.FramebufferSize()
	return &App{
		window:     d.Window,
		input:      d.Input,
		program:    d.Program,
		target:     d.Target,
		screen:     d.Screen,
		overlay:    d.Overlay,
		cam:        camera.NewController(config.GetMouseSensitivity(), config.GetMoveSpeed()),
		camera:     scene.DefaultCamera(),
		sun:        scene.DefaultSun(),
		sky:        scene.DefaultSky(),
		accum:      accum.NewController(fbW, fbH),
		fpsLimiter: NewFPSLimiter(),
		lastTime:   d.Window.Time(),
	}
}

// Run renders frames until the window is asked to close
func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

// Frame returns the accumulation decision of the last rendered frame
func (a *App) Frame() accum.Decision {
	return a.last
}

// Stats returns the performance numbers of the last rendered frame
func (a *App) Stats() ui.Stats {
	return ui.Stats{FPS: a.fps, FrameTime: a.frameTime, FrameIndex: a.last.FrameIndex}
}

// Camera returns the current camera state
func (a *App) Camera() scene.Camera {
	return a.camera
}

// Captured reports whether mouse and keyboard drive the camera
func (a *App) Captured() bool {
	return a.cam.Captured
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now()

	// Resize
	fbW, fbH := a.window.FramebufferSize()
	if a.accum.Resize(fbW, fbH) {
		a.target.Resize(fbW, fbH)
		logger.Log.Debug("framebuffer resized", zap.Int("width", fbW), zap.Int("height", fbH))
	}

	// Timing
	now := a.window.Time()
	a.frameTime = float32(now - a.lastTime)
	a.fps = 1 / a.frameTime
	a.lastTime = now

	// Camera
	cx, cy := a.window.CursorPos()
	if a.cam.Update(&a.camera, a.input, cx, cy, a.frameTime) {
		a.window.SetCaptured(a.cam.Captured)
	}

	// UI
	a.buildOverlay()

	// Change detection and accumulation
	cur := a.snapshot()
	changes := a.detector.Compare(cur)
	a.last = a.accum.Advance(accum.Inputs{
		CameraChanged:       changes.Camera,
		SunChanged:          changes.Sun,
		SkyChanged:          changes.Sky,
		AccumulateWhenStill: config.GetAccumulateWhenStill(),
	})
	if a.last.Reset {
		logger.Log.Debug("accumulation reset", zap.Stringer("reason", a.last.Reason))
	}

	// Trace
	stopDraw := profiling.Track("frame.draw")
	a.screen.Begin(fbW, fbH)
	a.uploadUniforms(now, fbW, fbH)
	a.screen.Draw()
	stopDraw()

	// Copy-back
	stopCopy := profiling.Track("frame.copy")
	a.target.CaptureFramebuffer(fbW, fbH)
	a.accum.MarkCopied()
	stopCopy()

	// Overlay, present
	stopUI := profiling.Track("frame.ui")
	a.overlay.Flush()
	stopUI()

	if d := time.Since(startTick); d > slowFrameThreshold {
		fields := []zap.Field{
			zap.Duration("cpu", d),
			zap.Duration("frame_total", profiling.SumWithPrefix("frame.")),
		}
		logger.Log.Warn("slow frame", append(fields, profiling.Fields(3)...)...)
	}

	a.window.SwapBuffers()
	a.input.PostUpdate()
	a.window.PollEvents()
	if a.input.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}

	// Snapshot for the next frame
	a.detector.Remember(cur)

	a.fpsLimiter.Wait()
}

func (a *App) buildOverlay() {
	winW, winH := a.window.Size()

	var cursor ui.Cursor
	if !a.cam.Captured {
		cx, cy := a.window.CursorPos()
		cursor = ui.Cursor{
			X:       float32(cx),
			Y:       float32(cy),
			Down:    a.input.IsActive(input.ActionMouseLeft),
			Pressed: a.input.JustPressed(input.ActionMouseLeft),
		}
	}

	a.overlay.BeginFrame(winW, winH, cursor)
	a.overlay.PerformanceWindow(ui.Stats{FPS: a.fps, FrameTime: a.frameTime, FrameIndex: a.last.FrameIndex})
	if a.cam.Captured {
		a.overlay.Hint(ui.CaptureHint)
		return
	}
	// Preferences round-trip through config so its clamps apply
	acc := config.GetAccumulateWhenStill()
	sens := config.GetMouseSensitivity()
	speed := config.GetMoveSpeed()
	edited := a.overlay.SettingsPanel(ui.Settings{
		FOV:                 &a.camera.FOV,
		Sun:                 &a.sun,
		Sky:                 &a.sky,
		AccumulateWhenStill: &acc,
		MouseSensitivity:    &sens,
		MoveSpeed:           &speed,
	})
	if edited {
		config.SetAccumulateWhenStill(acc)
		config.SetMouseSensitivity(sens)
		config.SetMoveSpeed(speed)
		a.cam.Sensitivity = config.GetMouseSensitivity()
		a.cam.Speed = config.GetMoveSpeed()
	}
}

func (a *App) snapshot() scene.Snapshot {
	return scene.Snapshot{Camera: a.camera, Sun: a.sun, Sky: a.sky}
}

func (a *App) uploadUniforms(now float64, width, height int) {
	p := a.program
	p.Use()
	p.SetFloat(UniformTime, float32(now))
	p.SetVector2(UniformResolution, float32(width), float32(height))
	p.SetInt(UniformFrameIndex, int32(a.last.FrameIndex))
	p.SetBool(UniformUsePrevious, a.last.UsePrevious)
	p.SetInt(UniformPrevFrame, prevFrameTextureUnit)
	a.target.Bind(prevFrameTextureUnit)

	c := a.camera
	p.SetVector3(UniformCameraPos, c.Position.X(), c.Position.Y(), c.Position.Z())
	p.SetVector3(UniformCameraDir, c.Direction.X(), c.Direction.Y(), c.Direction.Z())
	p.SetFloat(UniformCameraFOV, c.FOV)

	p.SetVector3(UniformSunDirection, a.sun.Direction.X(), a.sun.Direction.Y(), a.sun.Direction.Z())
	p.SetVector3(UniformSunColor, a.sun.Color.X(), a.sun.Color.Y(), a.sun.Color.Z())
	p.SetFloat(UniformSunIntensity, a.sun.Intensity)
	p.SetVector3(UniformSkyColor, a.sky.Color.X(), a.sky.Color.Y(), a.sky.Color.Z())
	p.SetFloat(UniformSkyIntensity, a.sky.Intensity)
}

type deleter interface{ Delete() }
type disposer interface{ Dispose() }

// Close releases the GPU resources handed to the loop
func (a *App) Close() {
	for _, v := range []any{a.overlay, a.screen, a.target, a.program} {
		switch r := v.(type) {
		case disposer:
			r.Dispose()
		case deleter:
			r.Delete()
		}
	}
}
