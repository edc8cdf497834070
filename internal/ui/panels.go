package ui

import (
	"gl-raytracer/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	overlayWidth  = 220
	settingsWidth = 300
	margin        = 10
)

// Ranges of the settings panel controls
const (
	MinFOV          = 20
	MaxFOV          = 120
	MaxSunIntensity = 10
	MaxSkyIntensity = 5

	MinMouseSensitivity = 0.01
	MaxMouseSensitivity = 1
	MinMoveSpeed        = 0.5
	MaxMoveSpeed        = 20
)

// CaptureHint is shown at the bottom of the window while the mouse is captured
const CaptureHint = "Press TAB to release mouse"

// Stats is the data shown by the performance overlay
type Stats struct {
	FPS        float32
	FrameTime  float32 // seconds
	FrameIndex uint32
}

// Settings points at the live values the settings panel edits
type Settings struct {
	FOV                 *float32
	Sun                 *scene.Sun
	Sky                 *scene.Sky
	AccumulateWhenStill *bool
	MouseSensitivity    *float32
	MoveSpeed           *float32
}

// PerformanceWindow draws FPS, frame time and accumulated sample count in the top-left corner
func (u *UI) PerformanceWindow(s Stats) {
	u.BeginPanel("Performance", margin, margin, overlayWidth)
	u.Text("FPS: %6.1f", s.FPS)
	u.Text("Frame Time: %6.1f ms", s.FrameTime*1000)
	u.Text("Samples: %d", s.FrameIndex)
	u.EndPanel()
}

// SettingsPanel draws the camera and lighting controls in the top-right corner.
// It reports whether any value was edited this frame.
func (u *UI) SettingsPanel(s Settings) bool {
	x := u.width - settingsWidth - margin
	if x < margin {
		x = margin
	}

	changed := false
	u.BeginPanel("Settings", x, margin, settingsWidth)

	if s.FOV != nil {
		changed = u.SliderFloat("FOV", s.FOV, MinFOV, MaxFOV) || changed
	}
	if s.Sun != nil {
		changed = u.SliderFloat3("Sun Direction", &s.Sun.Direction, -1, 1) || changed
		changed = u.ColorEdit3("Sun Color", &s.Sun.Color) || changed
		changed = u.SliderFloat("Sun Intensity", &s.Sun.Intensity, 0, MaxSunIntensity) || changed
	}
	if s.Sky != nil {
		changed = u.ColorEdit3("Sky Color", &s.Sky.Color) || changed
		changed = u.SliderFloat("Sky Intensity", &s.Sky.Intensity, 0, MaxSkyIntensity) || changed
	}
	if s.AccumulateWhenStill != nil {
		changed = u.Checkbox("Accumulate when still", s.AccumulateWhenStill) || changed
	}
	if s.MouseSensitivity != nil {
		changed = u.SliderFloat("Mouse Sensitivity", s.MouseSensitivity, MinMouseSensitivity, MaxMouseSensitivity) || changed
	}
	if s.MoveSpeed != nil {
		changed = u.SliderFloat("Move Speed", s.MoveSpeed, MinMoveSpeed, MaxMoveSpeed) || changed
	}

	u.EndPanel()
	return changed
}

// Hint draws a single line of text centred at the bottom of the window
func (u *UI) Hint(text string) {
	w, _ := u.MeasureText(text)
	x := (u.width - w) * 0.5
	y := u.height - margin - u.LineHeight()*0.2
	u.DrawFilledRect(x-6, y-u.LineHeight(), w+12, u.LineHeight()+6, mgl32.Vec3{0, 0, 0}, 0.5)
	u.DrawText(text, x, y, hintColor)
}
