package app

import (
	"testing"
	"time"

	"gl-raytracer/internal/accum"
	"gl-raytracer/internal/config"
	"gl-raytracer/internal/input"
	"gl-raytracer/internal/logger"
	"gl-raytracer/internal/ui"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type callLog []string

func (l *callLog) add(s string) { *l = append(*l, s) }

type fakeWindow struct {
	log      *callLog
	fbW, fbH int
	now      float64
	close    bool
	captured []bool
	// onPoll runs inside PollEvents with the 1-based frame number
	onPoll func(frame int)
	frames int
}

func (w *fakeWindow) FramebufferSize() (int, int)   { return w.fbW, w.fbH }
func (w *fakeWindow) Size() (int, int)              { return w.fbW, w.fbH }
func (w *fakeWindow) CursorPos() (float64, float64) { return 100, 100 }
func (w *fakeWindow) SetCaptured(c bool)            { w.captured = append(w.captured, c) }
func (w *fakeWindow) ShouldClose() bool             { return w.close }
func (w *fakeWindow) SetShouldClose(c bool)         { w.close = c }
func (w *fakeWindow) Time() float64                 { return w.now }

func (w *fakeWindow) SwapBuffers() {
	w.log.add("swap")
	w.now += 1.0 / 60
}

func (w *fakeWindow) PollEvents() {
	w.log.add("poll")
	w.frames++
	if w.onPoll != nil {
		w.onPoll(w.frames)
	}
}

type fakeProgram struct {
	log    *callLog
	ints   map[string][]int32
	bools  map[string][]bool
	floats map[string]float32
	vec2   map[string][2]float32
	vec3   map[string][3]float32
}

func newFakeProgram(log *callLog) *fakeProgram {
	return &fakeProgram{
		log:    log,
		ints:   map[string][]int32{},
		bools:  map[string][]bool{},
		floats: map[string]float32{},
		vec2:   map[string][2]float32{},
		vec3:   map[string][3]float32{},
	}
}

func (p *fakeProgram) Use()                                 { p.log.add("use") }
func (p *fakeProgram) SetBool(name string, v bool)          { p.bools[name] = append(p.bools[name], v) }
func (p *fakeProgram) SetInt(name string, v int32)          { p.ints[name] = append(p.ints[name], v) }
func (p *fakeProgram) SetFloat(name string, v float32)      { p.floats[name] = v }
func (p *fakeProgram) SetVector2(name string, x, y float32) { p.vec2[name] = [2]float32{x, y} }
func (p *fakeProgram) SetVector3(name string, x, y, z float32) {
	p.vec3[name] = [3]float32{x, y, z}
}

type fakeTarget struct {
	log     *callLog
	resizes [][2]int
	deleted bool
}

func (t *fakeTarget) Resize(w, h int)             { t.resizes = append(t.resizes, [2]int{w, h}) }
func (t *fakeTarget) Bind(unit uint32)            { t.log.add("bind") }
func (t *fakeTarget) CaptureFramebuffer(w, h int) { t.log.add("copy") }
func (t *fakeTarget) Delete()                     { t.deleted = true }

type fakeScreen struct{ log *callLog }

func (s *fakeScreen) Begin(w, h int) { s.log.add("begin") }
func (s *fakeScreen) Draw()          { s.log.add("draw") }

type fakeOverlay struct {
	log      *callLog
	settings int
	hints    []string
	disposed bool
	// edit runs inside SettingsPanel with the 1-based panel count
	edit func(n int, s ui.Settings) bool
}

func (o *fakeOverlay) BeginFrame(w, h int, c ui.Cursor) { o.log.add("ui.begin") }
func (o *fakeOverlay) PerformanceWindow(s ui.Stats)     {}
func (o *fakeOverlay) SettingsPanel(s ui.Settings) bool {
	o.settings++
	if o.edit != nil {
		return o.edit(o.settings, s)
	}
	return false
}
func (o *fakeOverlay) Hint(text string) { o.hints = append(o.hints, text) }
func (o *fakeOverlay) Flush()           { o.log.add("ui.flush") }
func (o *fakeOverlay) Dispose()         { o.disposed = true }

type fixture struct {
	log     *callLog
	window  *fakeWindow
	input   *input.InputManager
	program *fakeProgram
	target  *fakeTarget
	overlay *fakeOverlay
	app     *App
}

func newFixture() *fixture {
	log := &callLog{}
	f := &fixture{
		log:     log,
		window:  &fakeWindow{log: log, fbW: 800, fbH: 600, now: 1},
		input:   input.NewInputManager(),
		program: newFakeProgram(log),
		target:  &fakeTarget{log: log},
		overlay: &fakeOverlay{log: log},
	}
	f.app = New(Deps{
		Window:  f.window,
		Input:   f.input,
		Program: f.program,
		Target:  f.target,
		Screen:  &fakeScreen{log: log},
		Overlay: f.overlay,
	})
	return f
}

func TestThreeStillFramesAccumulate(t *testing.T) {
	f := newFixture()
	for i := 0; i < 3; i++ {
		f.app.tick()
	}

	idx := f.program.ints[UniformFrameIndex]
	want := []int32{1, 2, 3}
	if len(idx) != len(want) {
		t.Fatalf("frame indices = %v, want %v", idx, want)
	}
	for i := range want {
		if idx[i] != want[i] {
			t.Errorf("frame %d: u_frame_index = %d, want %d", i+1, idx[i], want[i])
		}
	}

	usePrev := f.program.bools[UniformUsePrevious]
	wantPrev := []bool{false, true, true}
	for i := range wantPrev {
		if usePrev[i] != wantPrev[i] {
			t.Errorf("frame %d: u_use_prev = %v, want %v", i+1, usePrev[i], wantPrev[i])
		}
	}

	if len(f.target.resizes) != 0 {
		t.Errorf("unexpected texture resizes: %v", f.target.resizes)
	}
}

func TestResizeForcesReset(t *testing.T) {
	f := newFixture()
	f.app.tick()
	f.app.tick()

	f.window.fbW, f.window.fbH = 1024, 768
	f.app.tick()

	if len(f.target.resizes) != 1 || f.target.resizes[0] != [2]int{1024, 768} {
		t.Fatalf("resizes = %v, want one to 1024x768", f.target.resizes)
	}
	d := f.app.Frame()
	if !d.Reset || d.FrameIndex != 1 || d.UsePrevious {
		t.Errorf("decision after resize = %+v", d)
	}
	if got := f.program.vec2[UniformResolution]; got != [2]float32{1024, 768} {
		t.Errorf("iResolution = %v", got)
	}

	f.app.tick()
	if d := f.app.Frame(); d.FrameIndex != 2 || !d.UsePrevious {
		t.Errorf("decision after resized frame = %+v", d)
	}
}

func TestFrameStepOrder(t *testing.T) {
	f := newFixture()
	f.app.tick()

	want := []string{"ui.begin", "begin", "use", "bind", "draw", "copy", "ui.flush", "swap", "poll"}
	got := *f.log
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls = %v, want %v", got, want)
		}
	}
}

func TestAllUniformsUploaded(t *testing.T) {
	f := newFixture()
	f.app.tick()

	for _, name := range []string{UniformTime, UniformCameraFOV, UniformSunIntensity, UniformSkyIntensity} {
		if _, ok := f.program.floats[name]; !ok {
			t.Errorf("float uniform %q not uploaded", name)
		}
	}
	for _, name := range []string{UniformCameraPos, UniformCameraDir, UniformSunDirection, UniformSunColor, UniformSkyColor} {
		if _, ok := f.program.vec3[name]; !ok {
			t.Errorf("vec3 uniform %q not uploaded", name)
		}
	}
	if got := f.program.ints[UniformPrevFrame]; len(got) != 1 || got[0] != 0 {
		t.Errorf("u_prev_frame = %v, want [0]", got)
	}
	if got := f.program.vec3[UniformCameraPos]; got != [3]float32{0, 0.5, 3} {
		t.Errorf("u_camera.position = %v", got)
	}
	if got := f.program.floats[UniformCameraFOV]; got != 45 {
		t.Errorf("u_camera.fov = %v", got)
	}
}

func TestFrameTimeAndFPS(t *testing.T) {
	f := newFixture()
	f.window.now = 1.5
	f.app.tick()

	s := f.app.Stats()
	if s.FrameTime != 0.5 {
		t.Errorf("FrameTime = %v, want 0.5", s.FrameTime)
	}
	if s.FPS != 2 {
		t.Errorf("FPS = %v, want 2", s.FPS)
	}
}

func TestEscapeClosesWindow(t *testing.T) {
	f := newFixture()
	f.window.onPoll = func(frame int) {
		if frame == 2 {
			f.input.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
		}
	}

	f.app.Run()

	if f.window.frames != 2 {
		t.Errorf("rendered %d frames, want 2", f.window.frames)
	}
}

func TestTabTogglesCaptureAndHint(t *testing.T) {
	f := newFixture()
	f.window.onPoll = func(frame int) {
		switch frame {
		case 1:
			f.input.HandleKeyEvent(glfw.KeyTab, glfw.Press)
		case 2:
			// held key must not toggle again
			f.input.HandleKeyEvent(glfw.KeyTab, glfw.Repeat)
		}
	}

	f.app.tick()
	if f.app.Captured() || f.overlay.settings != 1 {
		t.Fatalf("frame 1: captured=%v settings=%d", f.app.Captured(), f.overlay.settings)
	}

	f.app.tick()
	if !f.app.Captured() {
		t.Fatal("Tab did not capture input")
	}
	if len(f.window.captured) != 1 || !f.window.captured[0] {
		t.Errorf("SetCaptured calls = %v, want [true]", f.window.captured)
	}
	if len(f.overlay.hints) != 1 || f.overlay.hints[0] != ui.CaptureHint {
		t.Errorf("hints = %v", f.overlay.hints)
	}
	if f.overlay.settings != 1 {
		t.Errorf("settings panel drawn while captured")
	}

	f.app.tick()
	if !f.app.Captured() || len(f.window.captured) != 1 {
		t.Errorf("held Tab toggled capture: %v", f.window.captured)
	}
}

func TestCloseReleasesResources(t *testing.T) {
	f := newFixture()
	f.app.Close()
	if !f.target.deleted {
		t.Error("target not deleted")
	}
	if !f.overlay.disposed {
		t.Error("overlay not disposed")
	}
}

func TestSettingsEditResetsAccumulation(t *testing.T) {
	f := newFixture()
	f.overlay.edit = func(n int, s ui.Settings) bool {
		if n == 3 {
			s.Sun.Intensity += 1
			return true
		}
		return false
	}

	f.app.tick()
	f.app.tick()
	if d := f.app.Frame(); d.FrameIndex != 2 {
		t.Fatalf("frame 2 index = %d, want 2", d.FrameIndex)
	}

	f.app.tick()
	d := f.app.Frame()
	if !d.Reset || d.FrameIndex != 1 || d.UsePrevious {
		t.Errorf("decision after sun edit = %+v", d)
	}
	if d.Reason&accum.ReasonSunChanged == 0 {
		t.Errorf("reason = %v, want sun", d.Reason)
	}

	f.app.tick()
	if d := f.app.Frame(); d.Reset || d.FrameIndex != 2 {
		t.Errorf("decision after edit settled = %+v", d)
	}
}

func TestCameraMoveResetsAccumulation(t *testing.T) {
	f := newFixture()
	f.window.onPoll = func(frame int) {
		switch frame {
		case 1:
			f.input.HandleKeyEvent(glfw.KeyTab, glfw.Press)
		case 2:
			f.input.HandleKeyEvent(glfw.KeyW, glfw.Press)
		}
	}

	f.app.tick()
	f.app.tick()
	if d := f.app.Frame(); d.Reset || d.FrameIndex != 2 {
		t.Fatalf("capturing without moving reset accumulation: %+v", d)
	}

	f.app.tick()
	d := f.app.Frame()
	if !d.Reset || d.FrameIndex != 1 {
		t.Errorf("decision after moving forward = %+v", d)
	}
	if d.Reason&accum.ReasonCameraMoved == 0 {
		t.Errorf("reason = %v, want camera", d.Reason)
	}
}

func TestAccumulateToggleOffRendersFreshFrames(t *testing.T) {
	defer config.SetAccumulateWhenStill(config.GetAccumulateWhenStill())

	f := newFixture()
	f.overlay.edit = func(n int, s ui.Settings) bool {
		if n == 2 {
			*s.AccumulateWhenStill = false
			return true
		}
		return false
	}

	f.app.tick()
	f.app.tick()
	d := f.app.Frame()
	if !d.Reset || d.FrameIndex != 1 || d.Reason&accum.ReasonStillDisabled == 0 {
		t.Errorf("decision with toggle off = %+v", d)
	}
	if config.GetAccumulateWhenStill() {
		t.Error("toggle not written back to config")
	}

	f.app.tick()
	if d := f.app.Frame(); !d.Reset || d.FrameIndex != 1 {
		t.Errorf("still frame accumulated with toggle off: %+v", d)
	}
}

func TestSettingsEditAppliesClampedCameraPreferences(t *testing.T) {
	defer config.SetMouseSensitivity(config.GetMouseSensitivity())
	defer config.SetMoveSpeed(config.GetMoveSpeed())

	f := newFixture()
	f.overlay.edit = func(n int, s ui.Settings) bool {
		*s.MouseSensitivity = 5
		*s.MoveSpeed = 7
		return true
	}

	f.app.tick()
	if got := f.app.cam.Sensitivity; got != 1 {
		t.Errorf("Sensitivity = %v, want clamped to 1", got)
	}
	if got := f.app.cam.Speed; got != 7 {
		t.Errorf("Speed = %v, want 7", got)
	}
	if got := config.GetMoveSpeed(); got != 7 {
		t.Errorf("config move speed = %v, want 7", got)
	}
}

func TestSlowFrameLogsProfileFields(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	prevLog, prevThreshold := logger.Log, slowFrameThreshold
	logger.Log = zap.New(core)
	slowFrameThreshold = -1
	defer func() {
		logger.Log = prevLog
		slowFrameThreshold = prevThreshold
	}()

	f := newFixture()
	f.app.tick()

	entries := logs.FilterMessage("slow frame").All()
	if len(entries) != 1 {
		t.Fatalf("slow frame entries = %d, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	for _, key := range []string{"cpu", "frame_total", "frame.draw"} {
		if _, ok := ctx[key]; !ok {
			t.Errorf("field %q missing from %v", key, ctx)
		}
	}
	total, _ := ctx["frame_total"].(time.Duration)
	draw, _ := ctx["frame.draw"].(time.Duration)
	if total < draw {
		t.Errorf("frame_total = %v, less than frame.draw = %v", total, draw)
	}
}
